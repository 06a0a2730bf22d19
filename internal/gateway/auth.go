package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/url"
)

// Session is the opaque authentication state returned by the gateway's auth
// service. The application only observes presence or absence of a session;
// it never inspects the token.
type Session struct {
	AccessToken  string `json:"access_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int    `json:"expires_in"`
	RefreshToken string `json:"refresh_token"`
}

// SignIn exchanges email/password credentials for a session.
func (c *Client) SignIn(ctx context.Context, email, password string) (*Session, error) {
	payload, err := json.Marshal(map[string]string{
		"email":    email,
		"password": password,
	})
	if err != nil {
		return nil, err
	}
	query := url.Values{"grant_type": []string{"password"}}
	headers := map[string]string{"Content-Type": "application/json"}
	resp, err := c.do(ctx, http.MethodPost, "/auth/v1/token", query, headers, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	var session Session
	if err := json.NewDecoder(resp.Body).Decode(&session); err != nil {
		return nil, err
	}
	return &session, nil
}

// SignOut revokes the session behind the given access token.
func (c *Client) SignOut(ctx context.Context, token string) error {
	headers := map[string]string{"Authorization": "Bearer " + token}
	resp, err := c.do(ctx, http.MethodPost, "/auth/v1/logout", nil, headers, nil)
	if err != nil {
		return err
	}
	resp.Body.Close()
	return nil
}
