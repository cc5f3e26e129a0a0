// Package quiz drives one timed test attempt: resume or start, one question
// at a time, a local countdown resynchronised from the server, and a forced
// completion when time runs out.
package quiz

import (
	"errors"
	"slices"
	"time"

	"github.com/benjamonnguyen/tgmini"
	"github.com/benjamonnguyen/tgmini/notify"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
)

const TickInterval = time.Second

// Ticker schedules a message after d. tea.Tick is the default.
type Ticker func(d time.Duration, fn func(time.Time) tea.Msg) tea.Cmd

type Session struct {
	// supplied
	userID   int
	testID   int
	svc      tgmini.QuizService
	notifier notify.Notifier
	l        tgmini.Logger
	timeout  time.Duration
	ticker   Ticker

	// state
	id          uuid.UUID
	state       State
	userTestID  int
	resumed     bool
	progress    *tgmini.TestProgress
	remaining   int
	question    *tgmini.Question
	selected    []int
	started     bool
	submitting  bool
	completing  bool
	expired     bool
	ticking     bool
	tickGen     int
	forcedCount int
	closed      bool
}

type Option func(*Session)

func WithLogger(l tgmini.Logger) Option {
	return func(s *Session) {
		s.l = l
	}
}

func WithTimeout(d time.Duration) Option {
	return func(s *Session) {
		s.timeout = d
	}
}

func WithTicker(t Ticker) Option {
	return func(s *Session) {
		s.ticker = t
	}
}

func New(userID, testID int, svc tgmini.QuizService, n notify.Notifier, opts ...Option) *Session {
	s := &Session{
		userID:   userID,
		testID:   testID,
		svc:      svc,
		notifier: n,
		l:        tgmini.NopLogger,
		ticker:   tea.Tick,
		id:       uuid.New(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Session) ID() uuid.UUID          { return s.id }
func (s *Session) State() State           { return s.state }
func (s *Session) TestID() int            { return s.testID }
func (s *Session) UserTestID() int        { return s.userTestID }
func (s *Session) Resumed() bool          { return s.resumed }
func (s *Session) Submitting() bool       { return s.submitting }
func (s *Session) Completing() bool       { return s.completing }
func (s *Session) ForcedCompletions() int { return s.forcedCount }

// Remaining is the local countdown, never negative.
func (s *Session) Remaining() int {
	return max(s.remaining, 0)
}

func (s *Session) Progress() (tgmini.TestProgress, bool) {
	if s.progress == nil {
		return tgmini.TestProgress{}, false
	}
	return *s.progress, true
}

func (s *Session) Question() (tgmini.Question, bool) {
	if s.question == nil {
		return tgmini.Question{}, false
	}
	return *s.question, true
}

func (s *Session) Selected() []int {
	return slices.Clone(s.selected)
}

func (s *Session) IsSelected(optionID int) bool {
	return slices.Contains(s.selected, optionID)
}

// CanSubmit mirrors the submit preconditions so a view can disable the action.
func (s *Session) CanSubmit() bool {
	return s.state == AwaitingAnswer && s.question != nil && len(s.selected) > 0 &&
		!s.submitting && !s.expired && !s.completing
}

// Close detaches the session. Late results are dropped and ticking stops.
func (s *Session) Close() {
	s.closed = true
	s.ticking = false
}

// ResumeOrStart reuses the user's active attempt for this test when there is
// one and starts a new attempt otherwise. It only runs once per session.
func (s *Session) ResumeOrStart() tea.Cmd {
	if s.started || s.closed {
		return nil
	}
	s.started = true

	id, svc, timeout, userID, testID := s.id, s.svc, s.timeout, s.userID, s.testID
	return func() tea.Msg {
		ctx, cancel := tgmini.RequestContext(timeout)
		defer cancel()

		active, err := svc.GetActiveTests(ctx, userID)
		if err != nil {
			return StartedMsg{session: id, err: err}
		}
		for _, a := range active {
			if a.TestID == testID {
				return StartedMsg{session: id, userTestID: a.UserTestID, resumed: true}
			}
		}

		started, err := svc.StartTest(ctx, testID, userID)
		if err != nil {
			return StartedMsg{session: id, err: err}
		}
		return StartedMsg{session: id, userTestID: started.ID}
	}
}

// RefreshProgress polls the server. With fetchNext the next question is
// requested once the progress has been applied.
func (s *Session) RefreshProgress(fetchNext bool) tea.Cmd {
	if s.userTestID == 0 || s.closed || s.state == Finished {
		return nil
	}
	id, svc, timeout, userTestID := s.id, s.svc, s.timeout, s.userTestID
	return func() tea.Msg {
		ctx, cancel := tgmini.RequestContext(timeout)
		defer cancel()
		p, err := svc.GetProgress(ctx, userTestID)
		return ProgressMsg{session: id, progress: p, fetchNext: fetchNext, err: err}
	}
}

func (s *Session) FetchNextQuestion() tea.Cmd {
	if s.userTestID == 0 || s.closed || s.state == Finished {
		return nil
	}
	id, svc, timeout, userTestID := s.id, s.svc, s.timeout, s.userTestID
	return func() tea.Msg {
		ctx, cancel := tgmini.RequestContext(timeout)
		defer cancel()
		q, err := svc.NextQuestion(ctx, userTestID)
		if errors.Is(err, tgmini.ErrNoMoreQuestions) {
			return QuestionMsg{session: id, none: true}
		}
		return QuestionMsg{session: id, question: q, err: err}
	}
}

// SelectOption replaces the selection for single choice questions and
// toggles membership for multiple choice ones.
func (s *Session) SelectOption(optionID int) {
	if s.state != AwaitingAnswer || s.question == nil || s.submitting || s.expired || s.completing {
		return
	}
	known := slices.ContainsFunc(s.question.Options, func(o tgmini.Option) bool {
		return o.OptionID == optionID
	})
	if !known {
		return
	}

	if s.question.QuestionType == tgmini.MultipleChoice {
		if i := slices.Index(s.selected, optionID); i >= 0 {
			s.selected = slices.Delete(s.selected, i, i+1)
		} else {
			s.selected = append(s.selected, optionID)
		}
		return
	}
	s.selected = []int{optionID}
}

// SubmitAnswer sends the selection for the current question. It does nothing
// without a question or with an empty selection.
func (s *Session) SubmitAnswer() tea.Cmd {
	if !s.CanSubmit() || s.closed {
		return nil
	}
	s.submitting = true

	answer := tgmini.AnswerSubmission{
		QuestionID: s.question.QuestionID,
		OptionIDs:  slices.Clone(s.selected),
	}
	id, svc, timeout, userTestID := s.id, s.svc, s.timeout, s.userTestID
	return func() tea.Msg {
		ctx, cancel := tgmini.RequestContext(timeout)
		defer cancel()
		err := svc.SubmitAnswer(ctx, userTestID, answer)
		return AnswerSubmittedMsg{session: id, err: err}
	}
}

// CompleteTest finishes the attempt once every question is answered, or
// retries after a failed completion on expiry.
func (s *Session) CompleteTest() tea.Cmd {
	if (s.state != AllAnswered && !s.expired) || s.state == Finished || s.completing || s.closed {
		return nil
	}
	return s.complete(false)
}

// forceComplete finishes the attempt on expiry whatever the state. The
// expired flag keeps it to one call per expiry.
func (s *Session) forceComplete() tea.Cmd {
	if s.expired || s.state == Finished || s.userTestID == 0 {
		return nil
	}
	s.expired = true
	s.forcedCount++
	s.l.Info("time is up, completing test", "userTest", s.userTestID)
	if s.completing {
		return nil
	}
	return s.complete(true)
}

func (s *Session) complete(forced bool) tea.Cmd {
	s.completing = true
	id, svc, timeout, userTestID := s.id, s.svc, s.timeout, s.userTestID
	return func() tea.Msg {
		ctx, cancel := tgmini.RequestContext(timeout)
		defer cancel()
		err := svc.CompleteTest(ctx, userTestID)
		return CompletedMsg{session: id, forced: forced, err: err}
	}
}

func (s *Session) finish() tea.Cmd {
	if s.state == Finished {
		return nil
	}
	s.state = Finished
	s.question = nil
	s.selected = nil
	s.ticking = false
	s.completing = false
	s.submitting = false

	done := FinishedMsg{UserTestID: s.userTestID, TestID: s.testID}
	return func() tea.Msg {
		return done
	}
}

func (s *Session) tick() tea.Cmd {
	id, gen := s.id, s.tickGen
	return s.ticker(TickInterval, func(time.Time) tea.Msg {
		return TickMsg{session: id, gen: gen}
	})
}

func (s *Session) startTicking() tea.Cmd {
	if s.ticking || s.state == Finished {
		return nil
	}
	s.ticking = true
	s.tickGen++
	return s.tick()
}

// Update applies results of this session's commands. Messages of another
// session, or arriving after Close, are ignored.
func (s *Session) Update(msg tea.Msg) tea.Cmd {
	m, ok := msg.(sessionMsg)
	if !ok || m.sessionID() != s.id || s.closed {
		return nil
	}

	switch msg := msg.(type) {
	case StartedMsg:
		if msg.err != nil {
			s.started = false
			s.l.Warn("failed starting test", "test", s.testID, "error", msg.err)
			return s.notifier.Push(notify.VariantDestructive, "Error", "Failed to start the test.")
		}
		s.userTestID = msg.userTestID
		s.resumed = msg.resumed
		s.state = InProgress
		s.l.Info("test attempt ready", "test", s.testID, "userTest", s.userTestID, "resumed", msg.resumed)
		return s.RefreshProgress(true)

	case ProgressMsg:
		if s.state == Finished {
			return nil
		}
		var next tea.Cmd
		if msg.fetchNext {
			next = s.FetchNextQuestion()
		}
		if msg.err != nil {
			s.l.Warn("failed loading progress", "userTest", s.userTestID, "error", msg.err)
			return tea.Batch(
				s.notifier.Push(notify.VariantDestructive, "Error", "Failed to load test progress."),
				next,
			)
		}
		p := msg.progress
		s.progress = &p
		s.remaining = p.RemainingSeconds
		if p.IsCompleted {
			return s.finish()
		}
		if s.remaining > 0 {
			s.expired = false
		} else if cmd := s.forceComplete(); cmd != nil {
			return cmd
		}
		return tea.Batch(s.startTicking(), next)

	case QuestionMsg:
		if s.state == Finished {
			return nil
		}
		if msg.err != nil {
			s.l.Warn("failed loading question", "userTest", s.userTestID, "error", msg.err)
			return s.notifier.Push(notify.VariantDestructive, "Error", "Failed to load the question.")
		}
		s.selected = nil
		if msg.none {
			s.question = nil
			s.state = AllAnswered
			return nil
		}
		q := msg.question
		s.question = &q
		s.state = AwaitingAnswer
		return nil

	case AnswerSubmittedMsg:
		s.submitting = false
		if s.state == Finished {
			return nil
		}
		if msg.err != nil {
			s.l.Warn("failed submitting answer", "userTest", s.userTestID, "error", msg.err)
			return s.notifier.Push(notify.VariantDestructive, "Error", "Failed to submit the answer.")
		}
		s.question = nil
		s.selected = nil
		s.state = InProgress
		return s.RefreshProgress(true)

	case CompletedMsg:
		s.completing = false
		if s.state == Finished {
			return nil
		}
		if msg.err != nil {
			s.l.Warn("failed completing test", "userTest", s.userTestID, "forced", msg.forced, "error", msg.err)
			notice := s.notifier.Push(notify.VariantDestructive, "Error", "Failed to complete the test.")
			if msg.forced {
				return tea.Batch(notice, s.RefreshProgress(false))
			}
			return notice
		}
		return s.finish()

	case TickMsg:
		if !s.ticking || msg.gen != s.tickGen || s.state == Finished {
			return nil
		}
		if s.remaining > 0 {
			s.remaining--
		}
		if s.remaining <= 0 {
			return tea.Batch(s.forceComplete(), s.tick())
		}
		return s.tick()
	}
	return nil
}
