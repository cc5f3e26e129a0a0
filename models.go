package tgmini

import (
	"time"
)

type User struct {
	ID          int      `json:"id"`
	Username    string   `json:"username"`
	FirstName   string   `json:"firstName"`
	LastName    string   `json:"lastName"`
	TelegramID  string   `json:"telegramId"`
	Role        string   `json:"role,omitempty"`
	Permissions []string `json:"permissions,omitempty"`
}

func (u User) IsAdmin() bool {
	return u.Role == "ADMIN"
}

type AuthResponse struct {
	User        User   `json:"user"`
	AccessToken string `json:"accessToken"`
}

type TaskStatus string

const (
	StatusCreated    TaskStatus = "CREATED"
	StatusInProgress TaskStatus = "IN_PROGRESS"
	StatusCompleted  TaskStatus = "COMPLETED"
)

// Statuses lists the board buckets in display order.
var Statuses = [...]TaskStatus{StatusCreated, StatusInProgress, StatusCompleted}

func (s TaskStatus) Valid() bool {
	switch s {
	case StatusCreated, StatusInProgress, StatusCompleted:
		return true
	}
	return false
}

type Task struct {
	ID          int        `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Status      TaskStatus `json:"status"`
	DueDate     string     `json:"dueDate"`
	Priority    int        `json:"priority"`
	Category    string     `json:"category"`
	IsImportant bool       `json:"isImportant"`
	CreatedAt   string     `json:"createdAt"`
	CompletedAt *Timestamp `json:"completedAt,omitempty"`
}

type TaskInput struct {
	Title       string     `json:"title" validate:"required,max=255"`
	Description string     `json:"description" validate:"max=2000"`
	Status      TaskStatus `json:"status" validate:"required,oneof=CREATED IN_PROGRESS COMPLETED"`
	DueDate     string     `json:"dueDate" validate:"required,datetime=2006-01-02T15:04:05"`
	Priority    int        `json:"priority" validate:"min=1,max=5"`
	Category    string     `json:"category" validate:"required,max=100"`
	IsImportant bool       `json:"isImportant"`
}

type TaskStatistics struct {
	Total      int `json:"total"`
	Completed  int `json:"completed"`
	InProgress int `json:"inProgress"`
	Created    int `json:"created"`
	Overdue    int `json:"overdue"`
}

type Test struct {
	ID              int    `json:"id"`
	Title           string `json:"title"`
	Subject         string `json:"subject"`
	Description     string `json:"description"`
	StartTime       string `json:"startTime"`
	EndTime         string `json:"endTime"`
	DurationMinutes int    `json:"durationMinutes"`
	QuestionCount   int    `json:"questionCount"`
	TotalPoints     int    `json:"totalPoints"`
	IsActive        bool   `json:"isActive,omitempty"`
}

type StartedTest struct {
	ID int `json:"id"`
}

type ActiveTest struct {
	UserTestID int    `json:"userTestId"`
	TestID     int    `json:"testId"`
	TestTitle  string `json:"testTitle"`
	StartedAt  string `json:"startedAt"`
	ExpiresAt  string `json:"expiresAt"`
}

type QuestionType string

const (
	SingleChoice   QuestionType = "SINGLE_CHOICE"
	MultipleChoice QuestionType = "MULTIPLE_CHOICE"
)

type Option struct {
	OptionID   int    `json:"optionId"`
	OptionText string `json:"optionText"`
}

type Question struct {
	QuestionID   int          `json:"questionId"`
	QuestionText string       `json:"questionText"`
	QuestionType QuestionType `json:"questionType"`
	Points       int          `json:"points"`
	Options      []Option     `json:"options"`
}

type TestProgress struct {
	UserTestID         int     `json:"userTestId"`
	TestID             int     `json:"testId"`
	TestTitle          string  `json:"testTitle"`
	StartedAt          string  `json:"startedAt"`
	ExpiresAt          string  `json:"expiresAt"`
	IsCompleted        bool    `json:"isCompleted"`
	RemainingSeconds   int     `json:"remainingSeconds"`
	TotalQuestions     int     `json:"totalQuestions"`
	AnsweredQuestions  int     `json:"answeredQuestions"`
	ProgressPercentage float64 `json:"progressPercentage"`
}

type AnswerSubmission struct {
	QuestionID int   `json:"questionId"`
	OptionIDs  []int `json:"optionIds"`
}

type OptionResult struct {
	OptionID   int    `json:"optionId"`
	OptionText string `json:"optionText"`
	IsCorrect  bool   `json:"isCorrect"`
}

type QuestionResult struct {
	QuestionID        int            `json:"questionId"`
	QuestionText      string         `json:"questionText"`
	Points            int            `json:"points"`
	EarnedPoints      float64        `json:"earnedPoints"`
	IsAnswered        bool           `json:"isAnswered"`
	IsCorrect         bool           `json:"isCorrect"`
	SelectedOptionIDs []int          `json:"selectedOptionIds"`
	Options           []OptionResult `json:"options"`
}

type TestResult struct {
	UserTestID      int              `json:"userTestId"`
	TestID          int              `json:"testId"`
	TestTitle       string           `json:"testTitle"`
	StartedAt       Timestamp        `json:"startedAt"`
	FinishedAt      Timestamp        `json:"finishedAt"`
	Score           float64          `json:"score"`
	MaxScore        float64          `json:"maxScore"`
	ScorePercentage float64          `json:"scorePercentage"`
	QuestionResults []QuestionResult `json:"questionResults,omitempty"`
}

// Duration is the wall time between start and finish, zero if either is unknown.
func (r TestResult) Duration() time.Duration {
	if r.StartedAt.IsZero() || r.FinishedAt.IsZero() {
		return 0
	}
	return r.FinishedAt.Sub(r.StartedAt.Time)
}
