package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Thiht/transactor"
	txStdLib "github.com/Thiht/transactor/stdlib"

	"github.com/benjamonnguyen/tgmini"
)

const (
	SelectAllSessions = "SELECT telegram_id, user_json, access_token, created_at, updated_at FROM sessions"
)

type sessionEntity struct {
	TelegramID  string
	UserJSON    string
	AccessToken string
	CreatedAt   int64
	UpdatedAt   int64
}

// sessionRepo
type sessionRepo struct {
	transactor transactor.Transactor
	dbGetter   txStdLib.DBGetter
	l          tgmini.Logger
}

var _ tgmini.SessionRepo = (*sessionRepo)(nil)

func NewSessionRepo(db *sql.DB, logger tgmini.Logger) tgmini.SessionRepo {
	tx, dbGetter := txStdLib.NewTransactor(db, txStdLib.NestedTransactionsSavepoints)
	return &sessionRepo{
		transactor: tx,
		dbGetter:   dbGetter,
		l:          logger,
	}
}

func (r *sessionRepo) GetSession(ctx context.Context, telegramID string) (tgmini.ExistingSessionRecord, error) {
	if telegramID == "" {
		return tgmini.ExistingSessionRecord{}, fmt.Errorf("provide telegramID")
	}

	row := r.dbGetter(ctx).QueryRowContext(
		ctx,
		fmt.Sprintf("%s WHERE telegram_id=?", SelectAllSessions), telegramID,
	)
	return extractSession(row)
}

// SaveSession replaces any stored session for the same telegram id,
// keeping the original created_at.
func (r *sessionRepo) SaveSession(ctx context.Context, session tgmini.SessionRecord) (tgmini.ExistingSessionRecord, error) {
	if session.TelegramID == "" {
		return tgmini.ExistingSessionRecord{}, fmt.Errorf("provide required field 'TelegramID'")
	}
	if session.AccessToken == "" {
		return tgmini.ExistingSessionRecord{}, fmt.Errorf("provide required field 'AccessToken'")
	}

	var saved tgmini.ExistingSessionRecord
	err := r.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		now := time.Now()
		saved = tgmini.ExistingSessionRecord{
			SessionRecord: session,
			CreatedAt:     now,
			UpdatedAt:     now,
		}

		existing, err := r.GetSession(ctx, session.TelegramID)
		switch {
		case err == nil:
			saved.CreatedAt = existing.CreatedAt
		case !errors.Is(err, ErrNotFound):
			return err
		}

		e, err := mapToSessionEntity(saved)
		if err != nil {
			return err
		}
		query := `INSERT INTO sessions (telegram_id, user_json, access_token, created_at, updated_at) VALUES (?, ?, ?, ?, ?)
ON CONFLICT(telegram_id) DO UPDATE SET user_json = excluded.user_json, access_token = excluded.access_token, updated_at = excluded.updated_at`
		r.l.Debug("saving session", "telegramID", e.TelegramID, "userID", session.User.ID)
		_, err = r.dbGetter(ctx).ExecContext(ctx, query, e.TelegramID, e.UserJSON, e.AccessToken, e.CreatedAt, e.UpdatedAt)
		return err
	})
	if err != nil {
		return tgmini.ExistingSessionRecord{}, err
	}
	return saved, nil
}

func (r *sessionRepo) DeleteSession(ctx context.Context, telegramID string) error {
	if telegramID == "" {
		return fmt.Errorf("provide telegramID")
	}
	query := "DELETE FROM sessions WHERE telegram_id = ?"
	r.l.Debug("deleting session", "telegramID", telegramID)
	_, err := r.dbGetter(ctx).ExecContext(ctx, query, telegramID)
	return err
}

func extractSession(s scannable) (tgmini.ExistingSessionRecord, error) {
	var e sessionEntity
	if err := s.Scan(&e.TelegramID, &e.UserJSON, &e.AccessToken, &e.CreatedAt, &e.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return tgmini.ExistingSessionRecord{}, fmt.Errorf("failed to extract session: %w", ErrNotFound)
		}
		return tgmini.ExistingSessionRecord{}, err
	}
	return mapToExistingSessionRecord(e)
}

func mapToSessionEntity(session tgmini.ExistingSessionRecord) (sessionEntity, error) {
	userJSON, err := json.Marshal(session.User)
	if err != nil {
		return sessionEntity{}, err
	}
	return sessionEntity{
		TelegramID:  session.TelegramID,
		UserJSON:    string(userJSON),
		AccessToken: session.AccessToken,
		CreatedAt:   session.CreatedAt.Unix(),
		UpdatedAt:   session.UpdatedAt.Unix(),
	}, nil
}

func mapToExistingSessionRecord(e sessionEntity) (tgmini.ExistingSessionRecord, error) {
	var user tgmini.User
	if err := json.Unmarshal([]byte(e.UserJSON), &user); err != nil {
		return tgmini.ExistingSessionRecord{}, fmt.Errorf("decode stored user: %w", err)
	}
	return tgmini.ExistingSessionRecord{
		CreatedAt: time.Unix(e.CreatedAt, 0).Local(),
		UpdatedAt: time.Unix(e.UpdatedAt, 0).Local(),
		SessionRecord: tgmini.SessionRecord{
			TelegramID:  e.TelegramID,
			User:        user,
			AccessToken: e.AccessToken,
		},
	}, nil
}
