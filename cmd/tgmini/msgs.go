package main

import (
	"fmt"

	"github.com/benjamonnguyen/tgmini"
)

type LoggedInMsg struct {
	user    tgmini.User
	err     error
	refresh bool
}

type LoggedOutMsg struct{}

type TestsLoadedMsg struct {
	tests    []tgmini.Test
	subjects []string
	err      error
}

type ResultLoadedMsg struct {
	result tgmini.TestResult
	err    error
}

type HistoryLoadedMsg struct {
	history []tgmini.TestResult
	err     error
}

type AdminLoadedMsg struct {
	tests []tgmini.Test
	users []tgmini.User
	err   error
}

type AdminDoneMsg struct {
	action string
	err    error
}

type ErrorMsg struct {
	err error
}

func errorMsg(format string, args ...any) ErrorMsg {
	return ErrorMsg{
		err: fmt.Errorf(format, args...),
	}
}
