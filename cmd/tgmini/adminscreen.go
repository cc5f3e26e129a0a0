package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/benjamonnguyen/tgmini"
	tea "github.com/charmbracelet/bubbletea"
)

const adminHelp = "tab tests/users  ↑/↓ select  a activate/deactivate  x delete test  o toggle admin role  r reload"

// AdminSvc is the admin surface of the backend. It has no controller of its
// own: every action reloads the lists.
type AdminSvc interface {
	AdminTests(ctx context.Context) ([]tgmini.Test, error)
	SetTestActive(ctx context.Context, testID int, active bool) error
	DeleteTest(ctx context.Context, testID int) error
	AdminUsers(ctx context.Context) ([]tgmini.User, error)
	ChangeUserRole(ctx context.Context, userID int, role string, currentUserID int) error
}

const (
	adminTabTests = iota
	adminTabUsers
)

type adminScreen struct {
	tests   []tgmini.Test
	users   []tgmini.User
	tab     int
	cursor  int
	loading bool
}

func (s *adminScreen) loaded(msg AdminLoadedMsg) {
	s.loading = false
	if msg.err != nil {
		return
	}
	s.tests = msg.tests
	s.users = msg.users
	s.clamp()
}

func (s *adminScreen) size() int {
	if s.tab == adminTabUsers {
		return len(s.users)
	}
	return len(s.tests)
}

func (s *adminScreen) clamp() {
	s.cursor = min(max(s.cursor, 0), max(s.size()-1, 0))
}

// Update returns the admin action for the key, nil when there is none.
func (s *adminScreen) Update(msg tea.KeyMsg, svc AdminSvc, currentUserID int, newCtx func() (context.Context, context.CancelFunc)) tea.Cmd {
	switch msg.String() {
	case "tab":
		s.tab = (s.tab + 1) % 2
		s.cursor = 0
	case "up", "k":
		s.cursor--
		s.clamp()
	case "down", "j":
		s.cursor++
		s.clamp()
	case "a":
		if s.tab != adminTabTests || s.cursor >= len(s.tests) {
			return nil
		}
		t := s.tests[s.cursor]
		return adminAction(fmt.Sprintf("toggled %q", t.Title), newCtx, func(ctx context.Context) error {
			return svc.SetTestActive(ctx, t.ID, !t.IsActive)
		})
	case "x":
		if s.tab != adminTabTests || s.cursor >= len(s.tests) {
			return nil
		}
		t := s.tests[s.cursor]
		return adminAction(fmt.Sprintf("deleted %q", t.Title), newCtx, func(ctx context.Context) error {
			return svc.DeleteTest(ctx, t.ID)
		})
	case "o":
		if s.tab != adminTabUsers || s.cursor >= len(s.users) {
			return nil
		}
		u := s.users[s.cursor]
		role := "ADMIN"
		if u.IsAdmin() {
			role = "USER"
		}
		return adminAction(fmt.Sprintf("%s is now %s", u.Username, role), newCtx, func(ctx context.Context) error {
			return svc.ChangeUserRole(ctx, u.ID, role, currentUserID)
		})
	}
	return nil
}

func adminAction(action string, newCtx func() (context.Context, context.CancelFunc), fn func(context.Context) error) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := newCtx()
		defer cancel()
		return AdminDoneMsg{
			action: action,
			err:    fn(ctx),
		}
	}
}

func (s *adminScreen) View(width int, loading string) string {
	var sb strings.Builder
	tabs := []string{"Tests", "Users"}
	for i, t := range tabs {
		if i == s.tab {
			tabs[i] = activeStyle.Render(t)
		} else {
			tabs[i] = faintStyle.Render(t)
		}
	}
	sb.WriteString(titleStyle.Render("Admin") + "  " + strings.Join(tabs, " | "))
	if s.loading {
		sb.WriteString(" " + loading)
	}
	sb.WriteString("\n\n")

	if s.tab == adminTabTests {
		for i, t := range s.tests {
			state := "inactive"
			if t.IsActive {
				state = "active"
			}
			row := truncate(fmt.Sprintf("%-6d %s · %s · %s", t.ID, t.Title, t.Subject, state), width-2)
			if i == s.cursor {
				row = cursorStyle.Render(row)
			}
			sb.WriteString(row)
			sb.WriteRune('\n')
		}
	} else {
		for i, u := range s.users {
			role := u.Role
			if role == "" {
				role = "USER"
			}
			row := truncate(fmt.Sprintf("%-6d %s %s (@%s) · %s", u.ID, u.FirstName, u.LastName, u.Username, role), width-2)
			if i == s.cursor {
				row = cursorStyle.Render(row)
			}
			sb.WriteString(row)
			sb.WriteRune('\n')
		}
	}
	sb.WriteRune('\n')
	sb.WriteString(faintStyle.Render(adminHelp))
	return sb.String()
}
