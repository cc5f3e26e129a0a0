// Package auth holds the logged in user and the access token the REST client sends.
package auth

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/benjamonnguyen/tgmini"
	"github.com/golang-jwt/jwt/v5"
)

// Session is the single owner of the current user and token. It satisfies
// api.TokenSource and is handed to the REST client at construction.
type Session struct {
	mu        sync.RWMutex
	user      *tgmini.User
	token     string
	expiresAt time.Time
}

func NewSession() *Session {
	return &Session{}
}

// Set replaces the credentials. Pass a nil user to log out.
func (s *Session) Set(user *tgmini.User, token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if user == nil || token == "" {
		s.user, s.token, s.expiresAt = nil, "", time.Time{}
		return
	}
	u := *user
	s.user = &u
	s.token = token
	s.expiresAt = TokenExpiry(token)
}

func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// User returns the logged in user, or false when logged out.
func (s *Session) User() (tgmini.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return tgmini.User{}, false
	}
	return *s.user, true
}

func (s *Session) Authenticated() bool {
	_, ok := s.User()
	return ok
}

// ExpiresAt is the token's exp claim, zero when the token has none.
func (s *Session) ExpiresAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.expiresAt
}

// TokenExpiry reads the exp claim without verifying the signature; the
// backend verifies. Opaque tokens report no expiry.
func TokenExpiry(token string) time.Time {
	claims := jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return time.Time{}
	}
	if claims.ExpiresAt == nil {
		return time.Time{}
	}
	return claims.ExpiresAt.Time
}

func expired(token string, now time.Time) bool {
	exp := TokenExpiry(token)
	return !exp.IsZero() && !now.Before(exp)
}

// Authenticator runs the login and logout flows against the backend and the
// local session store.
type Authenticator struct {
	svc     tgmini.AuthService
	repo    tgmini.SessionRepo
	session *Session
	l       tgmini.Logger
	now     func() time.Time

	// login and logout run inside tea.Cmd goroutines
	mu         sync.Mutex
	telegramID string
}

func NewAuthenticator(svc tgmini.AuthService, repo tgmini.SessionRepo, session *Session, logger tgmini.Logger) *Authenticator {
	if logger == nil {
		logger = tgmini.NopLogger
	}
	return &Authenticator{
		svc:     svc,
		repo:    repo,
		session: session,
		l:       logger,
		now:     time.Now,
	}
}

func (a *Authenticator) Session() *Session {
	return a.session
}

// Login restores a stored unexpired session for telegramID, falling back to
// the backend. A fresh login is persisted; persistence failures are logged
// and do not fail the login.
func (a *Authenticator) Login(ctx context.Context, telegramID string) (tgmini.User, error) {
	if telegramID == "" {
		return tgmini.User{}, tgmini.ErrMissingTelegramID
	}

	if a.repo != nil {
		stored, err := a.repo.GetSession(ctx, telegramID)
		switch {
		case err == nil && !expired(stored.AccessToken, a.now()):
			a.l.Info("restored session", "telegramID", telegramID, "userID", stored.User.ID)
			a.session.Set(&stored.User, stored.AccessToken)
			a.setTelegramID(telegramID)
			return stored.User, nil
		case err == nil:
			a.l.Info("stored session expired", "telegramID", telegramID)
		case !errors.Is(err, tgmini.ErrNotFound):
			a.l.Warn("failed to read stored session", "error", err)
		}
	}

	return a.Refresh(ctx, telegramID)
}

// Refresh always asks the backend for a new token.
func (a *Authenticator) Refresh(ctx context.Context, telegramID string) (tgmini.User, error) {
	res, err := a.svc.Login(ctx, telegramID)
	if err != nil {
		a.session.Set(nil, "")
		return tgmini.User{}, fmt.Errorf("authentication failed: %w", err)
	}
	a.session.Set(&res.User, res.AccessToken)
	a.setTelegramID(telegramID)
	a.l.Info("logged in", "telegramID", telegramID, "userID", res.User.ID)

	if a.repo != nil {
		if _, err := a.repo.SaveSession(ctx, tgmini.SessionRecord{
			TelegramID:  telegramID,
			User:        res.User,
			AccessToken: res.AccessToken,
		}); err != nil {
			a.l.Warn("failed to persist session", "error", err)
		}
	}
	return res.User, nil
}

// TelegramID is the id of the current login, empty when logged out.
func (a *Authenticator) TelegramID() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.telegramID
}

func (a *Authenticator) setTelegramID(id string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.telegramID = id
}

func (a *Authenticator) Logout(ctx context.Context) error {
	a.mu.Lock()
	telegramID := a.telegramID
	a.telegramID = ""
	a.mu.Unlock()
	a.session.Set(nil, "")
	if telegramID == "" || a.repo == nil {
		return nil
	}
	return a.repo.DeleteSession(ctx, telegramID)
}
