package tgmini

import (
	"context"
	"time"
)

// SessionRepo persists the logged in user and access token between runs.
type SessionRepo interface {
	GetSession(ctx context.Context, telegramID string) (ExistingSessionRecord, error)
	SaveSession(ctx context.Context, session SessionRecord) (ExistingSessionRecord, error)
	DeleteSession(ctx context.Context, telegramID string) error
}

type SessionRecord struct {
	TelegramID  string
	User        User
	AccessToken string
}

type ExistingSessionRecord struct {
	SessionRecord
	CreatedAt time.Time
	UpdatedAt time.Time
}
