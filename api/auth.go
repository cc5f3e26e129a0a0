package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/benjamonnguyen/tgmini"
)

// Login exchanges a telegram id for a user and access token. It is the only
// call made without a bearer token.
func (c *Client) Login(ctx context.Context, telegramID string) (tgmini.AuthResponse, error) {
	if telegramID == "" {
		return tgmini.AuthResponse{}, tgmini.ErrMissingTelegramID
	}
	var res tgmini.AuthResponse
	_, err := c.do(ctx, request{
		method: http.MethodGet,
		path:   "/api/webapp/auth",
		query:  url.Values{"telegramId": {telegramID}},
		public: true,
	}, &res)
	if err != nil {
		return tgmini.AuthResponse{}, err
	}
	if res.AccessToken == "" {
		return tgmini.AuthResponse{}, fmt.Errorf("login: response carried no access token")
	}
	return res, nil
}
