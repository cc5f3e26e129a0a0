package main

import (
	"context"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/benjamonnguyen/tgmini"
	"github.com/benjamonnguyen/tgmini/api"
	"github.com/benjamonnguyen/tgmini/auth"
	"github.com/benjamonnguyen/tgmini/notify"
	tea "github.com/charmbracelet/bubbletea"
)

type countingAuth struct {
	mu     sync.Mutex
	logins int
}

func (a *countingAuth) Login(ctx context.Context, telegramID string) (tgmini.AuthResponse, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.logins++
	return tgmini.AuthResponse{User: tgmini.User{ID: 7, Username: "tester"}, AccessToken: "tok"}, nil
}

// rejectingBackend answers every task load with status.
type rejectingBackend struct {
	mu     sync.Mutex
	status int
	loads  int
}

func (b *rejectingBackend) reject(path string) error {
	return &api.Error{StatusCode: b.status, Method: http.MethodGet, Path: path}
}

func (b *rejectingBackend) GetUserTasks(ctx context.Context, userID int) ([]tgmini.Task, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.loads++
	return nil, b.reject("/api/tasks/user/7")
}

func (b *rejectingBackend) CreateTask(context.Context, int, tgmini.TaskInput) (tgmini.Task, error) {
	return tgmini.Task{}, b.reject("/api/tasks/user/7")
}

func (b *rejectingBackend) UpdateTaskStatus(context.Context, int, tgmini.TaskStatus) (tgmini.Task, error) {
	return tgmini.Task{}, b.reject("/api/tasks/status")
}

func (b *rejectingBackend) DeleteTask(context.Context, int) error {
	return b.reject("/api/tasks")
}

func (b *rejectingBackend) GetTaskStatistics(context.Context, int) (tgmini.TaskStatistics, error) {
	return tgmini.TaskStatistics{}, b.reject("/api/tasks/user/7/statistics")
}

func (b *rejectingBackend) GetActiveTests(context.Context, int) ([]tgmini.ActiveTest, error) {
	return nil, nil
}

func (b *rejectingBackend) StartTest(context.Context, int, int) (tgmini.StartedTest, error) {
	return tgmini.StartedTest{}, nil
}

func (b *rejectingBackend) GetProgress(context.Context, int) (tgmini.TestProgress, error) {
	return tgmini.TestProgress{}, nil
}

func (b *rejectingBackend) NextQuestion(context.Context, int) (tgmini.Question, error) {
	return tgmini.Question{}, tgmini.ErrNoMoreQuestions
}

func (b *rejectingBackend) SubmitAnswer(context.Context, int, tgmini.AnswerSubmission) error {
	return nil
}

func (b *rejectingBackend) CompleteTest(context.Context, int) error {
	return nil
}

func (b *rejectingBackend) GetResult(context.Context, int) (tgmini.TestResult, error) {
	return tgmini.TestResult{}, nil
}

func (b *rejectingBackend) GetTests(context.Context) ([]tgmini.Test, error) {
	return nil, nil
}

func (b *rejectingBackend) GetSubjects(context.Context) ([]string, error) {
	return nil, nil
}

func (b *rejectingBackend) GetHistory(context.Context, int) ([]tgmini.TestResult, error) {
	return nil, nil
}

func newTestModel(svc Backend, authSvc tgmini.AuthService) model {
	return newModel(modelConfig{
		l:          tgmini.NopLogger,
		auth:       auth.NewAuthenticator(authSvc, nil, auth.NewSession(), nil),
		svc:        svc,
		toasts:     notify.NewCenter().WithTTL(time.Millisecond),
		telegramID: "42",
	})
}

// drive runs cmd through the model like the event loop until nothing is left.
func drive(t *testing.T, m model, cmd tea.Cmd) model {
	t.Helper()
	queue := []tea.Cmd{cmd}
	for steps := 0; len(queue) > 0; steps++ {
		if steps > 500 {
			t.Fatalf("model did not settle, %d commands pending", len(queue))
		}
		c := queue[0]
		queue = queue[1:]
		if c == nil {
			continue
		}
		switch msg := c().(type) {
		case nil:
		case tea.BatchMsg:
			queue = append(queue, msg...)
		default:
			next, cmd := m.Update(msg)
			m = next.(model)
			queue = append(queue, cmd)
		}
	}
	return m
}

func TestRejectedTokenRefreshesOnce(t *testing.T) {
	svc := &rejectingBackend{status: http.StatusUnauthorized}
	authSvc := &countingAuth{}
	m := newTestModel(svc, authSvc)

	m = drive(t, m, m.login(m.telegramID))

	if authSvc.logins != 2 {
		t.Errorf("logins = %d, want the first one and a single refresh", authSvc.logins)
	}
	if svc.loads != 2 {
		t.Errorf("task loads = %d, want 2", svc.loads)
	}
	if m.user != nil || m.screen != screenLogin {
		t.Errorf("session should end after a second rejection: user = %v screen = %v", m.user, m.screen)
	}
	if m.auth.Session().Authenticated() {
		t.Error("token kept after the session ended")
	}
}

func TestForbiddenDoesNotRefresh(t *testing.T) {
	svc := &rejectingBackend{status: http.StatusForbidden}
	authSvc := &countingAuth{}
	m := newTestModel(svc, authSvc)

	m = drive(t, m, m.login(m.telegramID))

	if authSvc.logins != 1 || svc.loads != 1 {
		t.Errorf("logins = %d task loads = %d, want 1 and 1", authSvc.logins, svc.loads)
	}
	if m.user == nil || m.screen != screenBoard {
		t.Errorf("user should stay on the board: user = %v screen = %v", m.user, m.screen)
	}
	if m.board.b.LoadErr() == nil {
		t.Error("load error not recorded")
	}
}
