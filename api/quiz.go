package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/benjamonnguyen/tgmini"
)

func (c *Client) GetTests(ctx context.Context) ([]tgmini.Test, error) {
	var tests []tgmini.Test
	if err := c.get(ctx, "/api/quiz/tests", &tests); err != nil {
		return nil, err
	}
	return tests, nil
}

func (c *Client) GetSubjects(ctx context.Context) ([]string, error) {
	var subjects []string
	if err := c.get(ctx, "/api/quiz/subjects", &subjects); err != nil {
		return nil, err
	}
	return subjects, nil
}

func (c *Client) StartTest(ctx context.Context, testID, userID int) (tgmini.StartedTest, error) {
	var started tgmini.StartedTest
	_, err := c.do(ctx, request{
		method: http.MethodPost,
		path:   fmt.Sprintf("/api/quiz/tests/%d/start", testID),
		query:  url.Values{"userId": {strconv.Itoa(userID)}},
	}, &started)
	if err != nil {
		return tgmini.StartedTest{}, err
	}
	if started.ID == 0 {
		return tgmini.StartedTest{}, fmt.Errorf("start test %d: response carried no attempt id", testID)
	}
	return started, nil
}

func (c *Client) GetActiveTests(ctx context.Context, userID int) ([]tgmini.ActiveTest, error) {
	var active []tgmini.ActiveTest
	if err := c.get(ctx, fmt.Sprintf("/api/quiz/users/%d/active-tests", userID), &active); err != nil {
		return nil, err
	}
	return active, nil
}

func (c *Client) GetProgress(ctx context.Context, userTestID int) (tgmini.TestProgress, error) {
	var progress tgmini.TestProgress
	if err := c.get(ctx, fmt.Sprintf("/api/quiz/tests/progress/%d", userTestID), &progress); err != nil {
		return tgmini.TestProgress{}, err
	}
	return progress, nil
}

// NextQuestion returns tgmini.ErrNoMoreQuestions when the pool is exhausted.
func (c *Client) NextQuestion(ctx context.Context, userTestID int) (tgmini.Question, error) {
	var q tgmini.Question
	status, err := c.do(ctx, request{
		method:  http.MethodGet,
		path:    fmt.Sprintf("/api/quiz/tests/%d/next-question", userTestID),
		allowNo: true,
	}, &q)
	if err != nil {
		return tgmini.Question{}, err
	}
	if status == http.StatusNoContent {
		return tgmini.Question{}, tgmini.ErrNoMoreQuestions
	}
	return q, nil
}

func (c *Client) SubmitAnswer(ctx context.Context, userTestID int, answer tgmini.AnswerSubmission) error {
	_, err := c.do(ctx, request{
		method: http.MethodPost,
		path:   fmt.Sprintf("/api/quiz/tests/%d/submit-answer", userTestID),
		body:   answer,
	}, nil)
	return err
}

func (c *Client) CompleteTest(ctx context.Context, userTestID int) error {
	_, err := c.do(ctx, request{
		method: http.MethodPost,
		path:   fmt.Sprintf("/api/quiz/tests/%d/complete", userTestID),
	}, nil)
	return err
}

func (c *Client) GetResult(ctx context.Context, userTestID int) (tgmini.TestResult, error) {
	var result tgmini.TestResult
	if err := c.get(ctx, fmt.Sprintf("/api/quiz/tests/%d/result", userTestID), &result); err != nil {
		return tgmini.TestResult{}, err
	}
	return result, nil
}

func (c *Client) GetHistory(ctx context.Context, userID int) ([]tgmini.TestResult, error) {
	var history []tgmini.TestResult
	if err := c.get(ctx, fmt.Sprintf("/api/quiz/users/%d/history", userID), &history); err != nil {
		return nil, err
	}
	return history, nil
}
