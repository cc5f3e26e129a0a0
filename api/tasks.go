package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/benjamonnguyen/tgmini"
)

func (c *Client) GetUserTasks(ctx context.Context, userID int) ([]tgmini.Task, error) {
	var tasks []tgmini.Task
	if err := c.get(ctx, fmt.Sprintf("/api/tasks/user/%d", userID), &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

func (c *Client) GetTask(ctx context.Context, taskID int) (tgmini.Task, error) {
	var task tgmini.Task
	if err := c.get(ctx, fmt.Sprintf("/api/tasks/%d", taskID), &task); err != nil {
		return tgmini.Task{}, err
	}
	return task, nil
}

func (c *Client) CreateTask(ctx context.Context, userID int, in tgmini.TaskInput) (tgmini.Task, error) {
	var task tgmini.Task
	_, err := c.do(ctx, request{
		method: http.MethodPost,
		path:   fmt.Sprintf("/api/tasks/user/%d", userID),
		body:   in,
	}, &task)
	if err != nil {
		return tgmini.Task{}, err
	}
	return task, nil
}

func (c *Client) UpdateTaskStatus(ctx context.Context, taskID int, status tgmini.TaskStatus) (tgmini.Task, error) {
	if !status.Valid() {
		return tgmini.Task{}, fmt.Errorf("invalid status %q", status)
	}
	var task tgmini.Task
	_, err := c.do(ctx, request{
		method:  http.MethodPatch,
		path:    fmt.Sprintf("/api/tasks/%d/status/%s", taskID, status),
		allowNo: true,
	}, &task)
	if err != nil {
		return tgmini.Task{}, err
	}
	return task, nil
}

func (c *Client) DeleteTask(ctx context.Context, taskID int) error {
	_, err := c.do(ctx, request{
		method: http.MethodDelete,
		path:   fmt.Sprintf("/api/tasks/%d", taskID),
	}, nil)
	return err
}

func (c *Client) GetTaskStatistics(ctx context.Context, userID int) (tgmini.TaskStatistics, error) {
	var stats tgmini.TaskStatistics
	if err := c.get(ctx, fmt.Sprintf("/api/tasks/user/%d/statistics", userID), &stats); err != nil {
		return tgmini.TaskStatistics{}, err
	}
	return stats, nil
}
