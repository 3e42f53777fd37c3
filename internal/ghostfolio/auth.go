package ghostfolio

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

type anonymousAuthRequest struct {
	AccessToken string `json:"accessToken"`
}

type anonymousAuthResponse struct {
	AuthToken string `json:"authToken"`
}

// token returns the bearer token, exchanging the security key on first use.
func (c *Client) token(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.bearer != "" {
		return c.bearer, nil
	}
	if c.creds.Key == "" {
		return "", ErrNoCredentials
	}

	c.logger.Info("no bearer token configured, exchanging security token")
	body, err := c.doRequest(ctx, http.MethodPost, "/api/v1/auth/anonymous", nil,
		anonymousAuthRequest{AccessToken: c.creds.Key}, false)
	if err != nil {
		return "", fmt.Errorf("authenticate: %w", err)
	}

	var resp anonymousAuthResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("authenticate: unmarshal response: %w", err)
	}
	if resp.AuthToken == "" {
		return "", errors.New("authenticate: empty authToken in response")
	}

	c.bearer = resp.AuthToken
	return c.bearer, nil
}

// Authenticate resolves the bearer token up front so credential problems
// surface before any other call.
func (c *Client) Authenticate(ctx context.Context) error {
	_, err := c.token(ctx)
	return err
}
