package sqlite

import "github.com/benjamonnguyen/tgmini"

// ErrNotFound is tgmini.ErrNotFound so callers need not import this package to test for it.
var ErrNotFound = tgmini.ErrNotFound

type scannable interface {
	Scan(...any) error
}
