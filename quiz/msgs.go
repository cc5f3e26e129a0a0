package quiz

import (
	"github.com/benjamonnguyen/tgmini"
	"github.com/google/uuid"
)

type sessionMsg interface {
	sessionID() uuid.UUID
}

type StartedMsg struct {
	session    uuid.UUID
	userTestID int
	resumed    bool
	err        error
}

type ProgressMsg struct {
	session   uuid.UUID
	progress  tgmini.TestProgress
	fetchNext bool
	err       error
}

type QuestionMsg struct {
	session  uuid.UUID
	question tgmini.Question
	none     bool
	err      error
}

type AnswerSubmittedMsg struct {
	session uuid.UUID
	err     error
}

type CompletedMsg struct {
	session uuid.UUID
	forced  bool
	err     error
}

// TickMsg advances the local countdown by one second.
type TickMsg struct {
	session uuid.UUID
	gen     int
}

// FinishedMsg hands a finished attempt over to the result view.
type FinishedMsg struct {
	UserTestID int
	TestID     int
}

func (m StartedMsg) sessionID() uuid.UUID         { return m.session }
func (m ProgressMsg) sessionID() uuid.UUID        { return m.session }
func (m QuestionMsg) sessionID() uuid.UUID        { return m.session }
func (m AnswerSubmittedMsg) sessionID() uuid.UUID { return m.session }
func (m CompletedMsg) sessionID() uuid.UUID       { return m.session }
func (m TickMsg) sessionID() uuid.UUID            { return m.session }

func (m StartedMsg) Err() error         { return m.err }
func (m ProgressMsg) Err() error        { return m.err }
func (m QuestionMsg) Err() error        { return m.err }
func (m AnswerSubmittedMsg) Err() error { return m.err }
func (m CompletedMsg) Err() error       { return m.err }
