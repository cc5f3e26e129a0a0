package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/benjamonnguyen/tgmini"
	"github.com/benjamonnguyen/tgmini/api"
	"github.com/benjamonnguyen/tgmini/auth"
	"github.com/benjamonnguyen/tgmini/board"
	"github.com/benjamonnguyen/tgmini/notify"
	"github.com/benjamonnguyen/tgmini/quiz"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Backend is the part of the REST API the screens drive.
type Backend interface {
	tgmini.TaskService
	tgmini.QuizService
	tgmini.CatalogService
}

type screen int

const (
	screenLogin screen = iota
	screenBoard
	screenTests
	screenHistory
	screenAdmin
	screenQuiz
	screenResult
)

type modelConfig struct {
	l          tgmini.Logger
	auth       *auth.Authenticator
	svc        Backend
	admin      AdminSvc
	toasts     *notify.Center
	telegramID string
	timeout    time.Duration
	timeFormat string
}

type model struct {
	// children
	idInput textinput.Model
	spinner spinner.Model

	board   *boardScreen
	tests   *testsScreen
	quiz    *quizScreen
	result  *resultScreen
	history *historyScreen
	admin   *adminScreen

	// supplied
	l        tgmini.Logger
	auth     *auth.Authenticator
	svc      Backend
	adminSvc AdminSvc
	toasts   *notify.Center

	// state
	screen     screen
	resultFrom screen
	user       *tgmini.User
	loggingIn  bool
	refreshing bool // a silent re-login is in flight
	refreshed  bool // re-logged in, no call has succeeded since
	telegramID string
	w, h       int

	// configuration
	timeout    time.Duration
	timeFormat string
}

func newModel(cfg modelConfig) model {
	idInput := textinput.New()
	idInput.Placeholder = "telegram id"
	idInput.Prompt = "> "
	idInput.CharLimit = 32
	idInput.PromptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("221"))
	idInput.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return model{
		idInput:    idInput,
		spinner:    sp,
		tests:      newTestsScreen(),
		history:    &historyScreen{},
		admin:      &adminScreen{},
		l:          cfg.l,
		auth:       cfg.auth,
		svc:        cfg.svc,
		adminSvc:   cfg.admin,
		toasts:     cfg.toasts,
		telegramID: cfg.telegramID,
		loggingIn:  cfg.telegramID != "",
		timeout:    cfg.timeout,
		timeFormat: cfg.timeFormat,
	}
}

func (m model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.spinner.Tick, textinput.Blink}
	if m.telegramID != "" {
		cmds = append(cmds, m.login(m.telegramID))
	}
	return tea.Batch(cmds...)
}

func (m model) newTimeout() (context.Context, context.CancelFunc) {
	return tgmini.RequestContext(m.timeout)
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	cmds := []tea.Cmd{m.toasts.Update(msg)}

	m, cmd = m.updateParent(msg)
	cmds = append(cmds, cmd)

	// controllers filter their own results; input only goes to the visible screen
	_, isKey := msg.(tea.KeyMsg)
	_, isMouse := msg.(tea.MouseMsg)
	input := isKey || isMouse
	if m.board != nil && (!input || m.screen == screenBoard) {
		cmds = append(cmds, m.board.Update(msg))
	}
	if m.quiz != nil && (!input || m.screen == screenQuiz) && !isMouse {
		cmds = append(cmds, m.quiz.Update(msg))
	}
	if m.result != nil && m.screen == screenResult && input {
		cmds = append(cmds, m.result.Update(msg))
	}
	if m.screen == screenLogin && isKey {
		m.idInput, cmd = m.idInput.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

func (m model) updateParent(msg tea.Msg) (model, tea.Cmd) {
	if e, ok := msg.(interface{ Err() error }); ok && m.user != nil {
		if cmd, handled := m.checkToken(e.Err()); handled {
			return m, cmd
		}
	}

	switch msg := msg.(type) {
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case tea.WindowSizeMsg:
		m.w, m.h = msg.Width, msg.Height
		m.idInput.Width = msg.Width - 4
		if m.board != nil {
			m.board.resize(m.w, m.h)
		}
		if m.result != nil {
			m.result.resize(m.w, m.h)
		}
		return m, nil
	case ErrorMsg:
		m.l.Error("unexpected error", "error", msg.err)
		return m, m.toasts.Failure("Error", msg.err)
	case LoggedInMsg:
		if msg.refresh {
			if !m.refreshing {
				return m, nil
			}
			m.refreshing = false
			if msg.err != nil {
				m.l.Warn("re-login failed", "error", msg.err)
				return m, m.expireSession()
			}
			m.refreshed = true
			return m.startSession(msg.user)
		}
		m.loggingIn = false
		if msg.err != nil {
			m.l.Warn("login failed", "error", msg.err)
			return m, m.toasts.Failure("Login failed", msg.err)
		}
		return m.startSession(msg.user)
	case LoggedOutMsg:
		m.endSession()
		return m, m.toasts.Success("Logged out", "")
	case TestsLoadedMsg:
		m.tests.loaded(msg)
		if msg.err != nil {
			return m, m.toasts.Failure("Failed to load tests", msg.err)
		}
		return m, nil
	case HistoryLoadedMsg:
		m.history.loading = false
		if msg.err != nil {
			return m, m.toasts.Failure("Failed to load history", msg.err)
		}
		m.history.results = msg.history
		m.history.cursor = min(m.history.cursor, max(len(msg.history)-1, 0))
		return m, nil
	case ResultLoadedMsg:
		if msg.err != nil {
			return m, m.toasts.Failure("Failed to load result", msg.err)
		}
		if m.result != nil {
			m.result.set(msg.result, m.timeFormat)
		}
		return m, nil
	case AdminLoadedMsg:
		m.admin.loaded(msg)
		if msg.err != nil {
			return m, m.toasts.Failure("Failed to load admin data", msg.err)
		}
		return m, nil
	case AdminDoneMsg:
		if msg.err != nil {
			return m, tea.Batch(m.toasts.Failure("Admin action failed", msg.err), m.loadAdmin())
		}
		return m, tea.Batch(m.toasts.Success("Done", msg.action), m.loadAdmin())
	case quiz.FinishedMsg:
		if m.quiz == nil || m.quiz.s.UserTestID() != msg.UserTestID {
			return m, nil
		}
		m.quiz.Close()
		m.quiz = nil
		return m.openResult(msg.UserTestID, screenTests)
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

// checkToken logs in again once when the backend rejects the token. A second
// rejection before any call succeeds ends the session.
func (m *model) checkToken(err error) (tea.Cmd, bool) {
	switch {
	case err == nil:
		m.refreshed = false
		return nil, false
	case !api.IsUnauthorized(err):
		return nil, false
	case m.refreshing:
		return nil, true
	case m.refreshed || m.telegramID == "":
		m.l.Warn("token rejected again, ending session", "error", err)
		return m.expireSession(), true
	}
	m.l.Warn("token rejected, logging in again")
	m.refreshing = true
	return m.refresh(), true
}

func (m *model) expireSession() tea.Cmd {
	m.endSession()
	a, timeout := m.auth, m.timeout
	return tea.Batch(
		m.toasts.Push(notify.VariantDestructive, "Session expired", "Log in again."),
		func() tea.Msg {
			ctx, cancel := tgmini.RequestContext(timeout)
			defer cancel()
			if err := a.Logout(ctx); err != nil {
				return errorMsg("logout: %w", err)
			}
			return nil
		},
	)
}

func (m model) capturesKeys() bool {
	switch m.screen {
	case screenLogin:
		return true
	case screenBoard:
		return m.board != nil && m.board.capturesKeys()
	case screenTests:
		return m.tests.capturesKeys()
	}
	return false
}

func (m model) handleKey(msg tea.KeyMsg) (model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}

	if m.screen == screenLogin {
		if msg.Type == tea.KeyEnter && !m.loggingIn {
			id := strings.TrimSpace(m.idInput.Value())
			if id == "" {
				return m, m.toasts.Push(notify.VariantDestructive, "Login failed", tgmini.ErrMissingTelegramID.Error())
			}
			m.telegramID = id
			m.loggingIn = true
			return m, m.login(id)
		}
		return m, nil
	}

	if m.capturesKeys() {
		return m, nil
	}

	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "1":
		return m.switchTo(screenBoard)
	case "2":
		return m.switchTo(screenTests)
	case "3":
		return m.switchTo(screenHistory)
	case "4":
		if m.user != nil && m.user.IsAdmin() {
			return m.switchTo(screenAdmin)
		}
		return m, nil
	case "L":
		if m.user != nil {
			return m, m.logout()
		}
		return m, nil
	}

	if m.user == nil {
		return m, nil
	}

	switch m.screen {
	case screenTests:
		if msg.String() == "r" {
			m.tests.loading = true
			return m, m.loadTests()
		}
		chosen, cmd := m.tests.Update(msg)
		if chosen != nil {
			return m.openQuiz(*chosen)
		}
		return m, cmd
	case screenQuiz:
		if msg.Type == tea.KeyEsc {
			m.quiz.Close()
			m.quiz = nil
			m.screen = screenTests
		}
		return m, nil
	case screenResult:
		if msg.Type == tea.KeyEsc {
			m.screen = m.resultFrom
			m.result = nil
		}
		return m, nil
	case screenHistory:
		if msg.String() == "r" {
			m.history.loading = true
			return m, m.loadHistory()
		}
		if chosen := m.history.Update(msg); chosen != nil {
			return m.openResult(chosen.UserTestID, screenHistory)
		}
		return m, nil
	case screenAdmin:
		if msg.String() == "r" {
			return m, m.loadAdmin()
		}
		return m, m.admin.Update(msg, m.adminSvc, m.user.ID, m.newTimeout)
	}
	return m, nil
}

func (m model) switchTo(s screen) (model, tea.Cmd) {
	if m.screen == screenQuiz && m.quiz != nil {
		m.quiz.Close()
		m.quiz = nil
	}
	m.screen = s
	if m.user == nil {
		return m, nil
	}
	switch s {
	case screenTests:
		if len(m.tests.all) == 0 {
			m.tests.loading = true
			return m, m.loadTests()
		}
	case screenHistory:
		m.history.loading = true
		return m, m.loadHistory()
	case screenAdmin:
		return m, m.loadAdmin()
	}
	return m, nil
}

func (m model) startSession(u tgmini.User) (model, tea.Cmd) {
	if m.user != nil && m.user.ID == u.ID && m.board != nil {
		// token refresh for the same user
		m.user = &u
		return m, m.board.Init()
	}
	m.endSession()
	m.user = &u
	m.l.Info("logged in", "user", u.ID, "admin", u.IsAdmin())

	b := board.New(u.ID, m.svc, m.toasts,
		board.WithLogger(m.l),
		board.WithTimeout(m.timeout),
	)
	m.board = newBoardScreen(b, m.toasts)
	m.board.resize(m.w, m.h)
	m.screen = screenBoard

	name := strings.TrimSpace(u.FirstName + " " + u.LastName)
	if name == "" {
		name = u.Username
	}
	return m, tea.Batch(m.board.Init(), m.toasts.Success("Welcome", name))
}

func (m *model) endSession() {
	if m.board != nil {
		m.board.Close()
		m.board = nil
	}
	if m.quiz != nil {
		m.quiz.Close()
		m.quiz = nil
	}
	m.user = nil
	m.refreshing, m.refreshed = false, false
	m.result = nil
	m.tests = newTestsScreen()
	m.history = &historyScreen{}
	m.admin = &adminScreen{}
	m.screen = screenLogin
	m.idInput.Reset()
	m.idInput.Focus()
}

func (m model) openQuiz(t tgmini.Test) (model, tea.Cmd) {
	s := quiz.New(m.user.ID, t.ID, m.svc, m.toasts,
		quiz.WithLogger(m.l),
		quiz.WithTimeout(m.timeout),
	)
	m.quiz = newQuizScreen(s, t, m.w)
	m.screen = screenQuiz
	return m, m.quiz.Init()
}

func (m model) openResult(userTestID int, from screen) (model, tea.Cmd) {
	m.result = newResultScreen(m.w, m.h)
	m.resultFrom = from
	m.screen = screenResult

	svc := m.svc
	return m, func() tea.Msg {
		ctx, cancel := m.newTimeout()
		defer cancel()
		r, err := svc.GetResult(ctx, userTestID)
		return ResultLoadedMsg{result: r, err: err}
	}
}

func (m model) login(telegramID string) tea.Cmd {
	a := m.auth
	return func() tea.Msg {
		ctx, cancel := m.newTimeout()
		defer cancel()
		u, err := a.Login(ctx, telegramID)
		return LoggedInMsg{user: u, err: err}
	}
}

func (m model) refresh() tea.Cmd {
	a, id := m.auth, m.telegramID
	return func() tea.Msg {
		ctx, cancel := m.newTimeout()
		defer cancel()
		u, err := a.Refresh(ctx, id)
		return LoggedInMsg{user: u, err: err, refresh: true}
	}
}

func (m model) logout() tea.Cmd {
	a := m.auth
	return func() tea.Msg {
		ctx, cancel := m.newTimeout()
		defer cancel()
		if err := a.Logout(ctx); err != nil {
			return errorMsg("logout: %w", err)
		}
		return LoggedOutMsg{}
	}
}

func (m model) loadTests() tea.Cmd {
	svc, l := m.svc, m.l
	return func() tea.Msg {
		ctx, cancel := m.newTimeout()
		defer cancel()
		tests, err := svc.GetTests(ctx)
		if err != nil {
			return TestsLoadedMsg{err: err}
		}
		subjects, err := svc.GetSubjects(ctx)
		if err != nil {
			l.Warn("failed loading subjects", "error", err)
		}
		return TestsLoadedMsg{tests: tests, subjects: subjects}
	}
}

func (m model) loadHistory() tea.Cmd {
	svc, userID := m.svc, m.user.ID
	return func() tea.Msg {
		ctx, cancel := m.newTimeout()
		defer cancel()
		h, err := svc.GetHistory(ctx, userID)
		return HistoryLoadedMsg{history: h, err: err}
	}
}

func (m model) loadAdmin() tea.Cmd {
	m.admin.loading = true
	svc := m.adminSvc
	return func() tea.Msg {
		ctx, cancel := m.newTimeout()
		defer cancel()
		tests, err := svc.AdminTests(ctx)
		if err != nil {
			return AdminLoadedMsg{err: err}
		}
		users, err := svc.AdminUsers(ctx)
		return AdminLoadedMsg{tests: tests, users: users, err: err}
	}
}

func (m model) View() string {
	loading := m.spinner.View()

	var body string
	switch {
	case m.screen == screenLogin:
		body = m.renderLogin(loading)
	case m.user == nil:
		body = authGate(m.w)
	case m.screen == screenBoard && m.board != nil:
		body = m.board.View(loading)
	case m.screen == screenTests:
		body = m.tests.View(m.w, loading)
	case m.screen == screenQuiz && m.quiz != nil:
		body = m.quiz.View(m.w, loading)
	case m.screen == screenResult && m.result != nil:
		body = m.result.View(loading)
	case m.screen == screenHistory:
		body = m.history.View(m.w, m.timeFormat, loading)
	case m.screen == screenAdmin:
		body = m.admin.View(m.w, loading)
	}

	parts := []string{m.renderTabs(), body}
	if toasts := renderToasts(m.toasts.Toasts(), m.w); toasts != "" {
		parts = append(parts, "", toasts)
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

type tab struct {
	s     screen
	label string
}

func (m model) renderTabs() string {
	tabs := []tab{
		{screenBoard, "1 Board"},
		{screenTests, "2 Tests"},
		{screenHistory, "3 History"},
	}
	if m.user != nil && m.user.IsAdmin() {
		tabs = append(tabs, tab{screenAdmin, "4 Admin"})
	}

	current := m.screen
	switch m.screen {
	case screenQuiz:
		current = screenTests
	case screenResult:
		current = m.resultFrom
	}

	parts := []string{titleStyle.Render("tgmini")}
	for _, t := range tabs {
		if t.s == current {
			parts = append(parts, activeStyle.Render(t.label))
		} else {
			parts = append(parts, faintStyle.Render(t.label))
		}
	}
	if m.user != nil {
		parts = append(parts, faintStyle.Render(fmt.Sprintf("@%s (L logout, q quit)", m.user.Username)))
	}
	return lipgloss.NewStyle().MaxWidth(max(m.w, 20)).Render(strings.Join(parts, "  "))
}

func (m model) renderLogin(loading string) string {
	var sb strings.Builder
	sb.WriteString("\n")
	sb.WriteString(titleStyle.Render("Log in"))
	sb.WriteString("\n\nEnter your Telegram id.\n\n")
	if m.loggingIn {
		sb.WriteString(loading + " logging in")
	} else {
		sb.WriteString(m.idInput.View())
	}
	sb.WriteString("\n\n")
	sb.WriteString(faintStyle.Render("(enter to log in, ctrl+c to quit)"))
	return sb.String()
}
