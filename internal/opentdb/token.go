package opentdb

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/url"
	"os"

	"github.com/abhisek/triviaz/internal/trivia"
)

// errWriter receives non-fatal warnings. Tests may replace it.
var errWriter io.Writer = os.Stderr

// sessionToken returns the current token, requesting one on first use.
// Returns "" when tokens are disabled.
func (c *Client) sessionToken(ctx context.Context) (string, error) {
	if !c.useToken {
		return "", nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.token != "" {
		return c.token, nil
	}

	q := url.Values{}
	q.Set("command", "request")
	tok, err := c.tokenCall(ctx, q)
	if err != nil {
		return "", err
	}
	c.token = tok
	return tok, nil
}

// resetToken asks the API to forget the questions served under token.
func (c *Client) resetToken(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	q := url.Values{}
	q.Set("command", "reset")
	q.Set("token", token)
	tok, err := c.tokenCall(ctx, q)
	if err != nil {
		return err
	}

	c.mu.Lock()
	if c.token == token {
		c.token = tok
	}
	c.mu.Unlock()
	return nil
}

// clearToken drops token so the next fetch requests a fresh one.
func (c *Client) clearToken(token string) {
	c.mu.Lock()
	if c.token == token {
		c.token = ""
	}
	c.mu.Unlock()
}

func (c *Client) tokenCall(ctx context.Context, q url.Values) (string, error) {
	body, err := c.get(ctx, "/api_token.php", q)
	if err != nil {
		return "", err
	}
	var resp tokenResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", &trivia.ProviderError{Op: "token", Err: err}
	}
	if resp.ResponseCode != CodeSuccess || resp.Token == "" {
		return "", &trivia.ProviderError{Op: "token", ResponseCode: resp.ResponseCode,
			Err: fmt.Errorf("token %s rejected: %s", q.Get("command"), resp.ResponseMessage)}
	}
	return resp.Token, nil
}
