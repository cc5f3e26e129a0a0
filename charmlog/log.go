// Package charmlog provides an implementation of tgmini.Logger using charmbracelet/log
package charmlog

import (
	"io"
	"os"
	"time"

	"github.com/benjamonnguyen/tgmini"
	"github.com/charmbracelet/log"
)

type Options struct {
	Writer io.Writer
	Level  string
	Prefix string
}

func NewLogger(opts Options) tgmini.Logger {
	var w io.Writer = os.Stdout
	if opts.Writer != nil {
		w = opts.Writer
	}

	lvl, err := log.ParseLevel(opts.Level)
	if err != nil {
		lvl = log.InfoLevel
	}

	return log.NewWithOptions(w, log.Options{
		Level:           lvl,
		Prefix:          opts.Prefix,
		ReportTimestamp: true,
		TimeFormat:      time.TimeOnly,
	})
}
