package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/benjamonnguyen/tgmini"
)

// Admin endpoints are thin CRUD pass-throughs; the server enforces roles.

func (c *Client) AdminTests(ctx context.Context) ([]tgmini.Test, error) {
	var tests []tgmini.Test
	if err := c.get(ctx, "/api/admin/tests", &tests); err != nil {
		return nil, err
	}
	return tests, nil
}

func (c *Client) SetTestActive(ctx context.Context, testID int, active bool) error {
	action := "deactivate"
	if active {
		action = "activate"
	}
	_, err := c.do(ctx, request{
		method: http.MethodPost,
		path:   fmt.Sprintf("/api/admin/tests/%d/%s", testID, action),
	}, nil)
	return err
}

func (c *Client) DeleteTest(ctx context.Context, testID int) error {
	_, err := c.do(ctx, request{
		method: http.MethodDelete,
		path:   fmt.Sprintf("/api/admin/tests/%d", testID),
	}, nil)
	return err
}

func (c *Client) AdminUsers(ctx context.Context) ([]tgmini.User, error) {
	var users []tgmini.User
	if err := c.get(ctx, "/api/admin/users", &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (c *Client) ChangeUserRole(ctx context.Context, userID int, role string, currentUserID int) error {
	_, err := c.do(ctx, request{
		method: http.MethodPatch,
		path:   fmt.Sprintf("/api/admin/users/%d/role/%s", userID, url.PathEscape(role)),
		query:  url.Values{"currentUserId": {strconv.Itoa(currentUserID)}},
	}, nil)
	return err
}
