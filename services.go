package tgmini

import (
	"context"
)

// TaskService is the task half of the REST API.
type TaskService interface {
	GetUserTasks(ctx context.Context, userID int) ([]Task, error)
	CreateTask(ctx context.Context, userID int, in TaskInput) (Task, error)
	UpdateTaskStatus(ctx context.Context, taskID int, status TaskStatus) (Task, error)
	DeleteTask(ctx context.Context, taskID int) error
	GetTaskStatistics(ctx context.Context, userID int) (TaskStatistics, error)
}

// QuizService is the quiz half of the REST API. NextQuestion returns
// ErrNoMoreQuestions when the server answers 204.
type QuizService interface {
	GetActiveTests(ctx context.Context, userID int) ([]ActiveTest, error)
	StartTest(ctx context.Context, testID, userID int) (StartedTest, error)
	GetProgress(ctx context.Context, userTestID int) (TestProgress, error)
	NextQuestion(ctx context.Context, userTestID int) (Question, error)
	SubmitAnswer(ctx context.Context, userTestID int, answer AnswerSubmission) error
	CompleteTest(ctx context.Context, userTestID int) error
	GetResult(ctx context.Context, userTestID int) (TestResult, error)
}

// CatalogService lists tests and past attempts.
type CatalogService interface {
	GetTests(ctx context.Context) ([]Test, error)
	GetSubjects(ctx context.Context) ([]string, error)
	GetHistory(ctx context.Context, userID int) ([]TestResult, error)
}

type AuthService interface {
	Login(ctx context.Context, telegramID string) (AuthResponse, error)
}
