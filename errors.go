package tgmini

import "errors"

var (
	ErrNotFound          = errors.New("not found")
	ErrNoMoreQuestions   = errors.New("no more questions")
	ErrUnauthenticated   = errors.New("authentication required")
	ErrMissingTelegramID = errors.New("no telegram id available")
)
