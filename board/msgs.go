package board

import (
	"github.com/benjamonnguyen/tgmini"
	"github.com/google/uuid"
)

type boardMsg interface {
	boardID() uuid.UUID
}

type TasksLoadedMsg struct {
	board uuid.UUID
	seq   int
	tasks []tgmini.Task
	err   error
}

type StatisticsMsg struct {
	board uuid.UUID
	stats tgmini.TaskStatistics
	err   error
}

type StatusUpdatedMsg struct {
	board    uuid.UUID
	taskID   int
	status   tgmini.TaskStatus
	original tgmini.Task
	source   tgmini.TaskStatus
	err      error
}

type TaskCreatedMsg struct {
	board uuid.UUID
	task  tgmini.Task
	err   error
}

type TaskDeletedMsg struct {
	board  uuid.UUID
	taskID int
	err    error
}

func (m TasksLoadedMsg) boardID() uuid.UUID   { return m.board }
func (m StatisticsMsg) boardID() uuid.UUID    { return m.board }
func (m StatusUpdatedMsg) boardID() uuid.UUID { return m.board }
func (m TaskCreatedMsg) boardID() uuid.UUID   { return m.board }
func (m TaskDeletedMsg) boardID() uuid.UUID   { return m.board }

// Err is the failure carried by the message, if any.
func (m TasksLoadedMsg) Err() error   { return m.err }
func (m StatusUpdatedMsg) Err() error { return m.err }
func (m TaskCreatedMsg) Err() error   { return m.err }
func (m TaskDeletedMsg) Err() error   { return m.err }
