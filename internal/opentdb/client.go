// Package opentdb fetches question batches from the Open Trivia Database.
package opentdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"sync"

	"github.com/abhisek/triviaz/internal/trivia"
)

const (
	// DefaultBaseURL is the public Open Trivia DB endpoint.
	DefaultBaseURL = "https://opentdb.com"

	// maxAmount is the largest batch the API serves in one call.
	maxAmount = 50

	// maxBodyBytes bounds how much of a response is read.
	maxBodyBytes = 1 << 20
)

// Response codes returned in the response_code field.
const (
	CodeSuccess       = 0
	CodeNoResults     = 1
	CodeInvalidParam  = 2
	CodeTokenNotFound = 3
	CodeTokenEmpty    = 4
	CodeRateLimit     = 5
)

type apiResponse struct {
	ResponseCode int            `json:"response_code"`
	Results      []trivia.Record `json:"results"`
}

type tokenResponse struct {
	ResponseCode    int    `json:"response_code"`
	ResponseMessage string `json:"response_message"`
	Token           string `json:"token"`
}

// Client is a trivia.Bank backed by the Open Trivia DB HTTP API.
// It is safe for concurrent use.
type Client struct {
	http     *http.Client
	baseURL  string
	category int
	qtype    string
	useToken bool

	mu    sync.Mutex
	token string
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the API root (scheme and host, no trailing path).
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = u }
}

// WithCategory restricts questions to an Open Trivia DB category id.
// Zero means any category.
func WithCategory(id int) Option {
	return func(c *Client) { c.category = id }
}

// WithType restricts questions to "multiple" or "boolean".
func WithType(t string) Option {
	return func(c *Client) { c.qtype = t }
}

// WithSessionToken makes the client request a session token on first use
// so questions are not repeated within a play-through.
func WithSessionToken(enabled bool) Option {
	return func(c *Client) { c.useToken = enabled }
}

// NewClient creates a client. A nil httpClient uses http.DefaultClient.
func NewClient(httpClient *http.Client, opts ...Option) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	c := &Client{
		http:    httpClient,
		baseURL: DefaultBaseURL,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

func (c *Client) Name() string { return "opentdb" }

// FetchBatch requests count questions at difficulty d. It makes exactly one
// api.php call; a token request may precede it the first time.
func (c *Client) FetchBatch(ctx context.Context, count int, d trivia.Difficulty) ([]trivia.Question, error) {
	if count <= 0 {
		return nil, &trivia.EmptyResultError{Requested: count, Difficulty: d}
	}
	amount := min(count, maxAmount)

	token, err := c.sessionToken(ctx)
	if err != nil {
		return nil, err
	}

	q := url.Values{}
	q.Set("amount", strconv.Itoa(amount))
	if d != trivia.DifficultyAny {
		q.Set("difficulty", string(d))
	}
	if c.category > 0 {
		q.Set("category", strconv.Itoa(c.category))
	}
	if c.qtype != "" {
		q.Set("type", c.qtype)
	}
	if token != "" {
		q.Set("token", token)
	}

	body, err := c.get(ctx, "/api.php", q)
	if err != nil {
		return nil, err
	}

	if err := validatePayload(body); err != nil {
		return nil, &trivia.ProviderError{Op: "decode", Err: err}
	}

	var payload apiResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, &trivia.ProviderError{Op: "decode", Err: err}
	}

	switch payload.ResponseCode {
	case CodeSuccess:
	case CodeNoResults:
		return nil, &trivia.EmptyResultError{Requested: count, Difficulty: d}
	case CodeTokenEmpty:
		// Every question for this query has been served with the current
		// token. Reset it so the next batch can draw from the full pool.
		if err := c.resetToken(ctx, token); err != nil {
			fmt.Fprintf(errWriter, "warning: opentdb token reset failed: %v\n", err)
		}
		return nil, &trivia.EmptyResultError{Requested: count, Difficulty: d}
	case CodeTokenNotFound:
		c.clearToken(token)
		return nil, &trivia.ProviderError{Op: "response", ResponseCode: payload.ResponseCode,
			Err: errors.New("session token not found")}
	case CodeInvalidParam:
		return nil, &trivia.ProviderError{Op: "response", ResponseCode: payload.ResponseCode,
			Err: errors.New("invalid parameter")}
	case CodeRateLimit:
		return nil, &trivia.ProviderError{Op: "response", ResponseCode: payload.ResponseCode,
			Err: errors.New("rate limited")}
	default:
		return nil, &trivia.ProviderError{Op: "response", ResponseCode: payload.ResponseCode,
			Err: errors.New("unknown response code")}
	}

	if len(payload.Results) == 0 {
		return nil, &trivia.EmptyResultError{Requested: count, Difficulty: d}
	}
	return trivia.NewQuestions(payload.Results), nil
}

// get performs a GET against path and returns the body of a 2xx response.
func (c *Client) get(ctx context.Context, path string, q url.Values) ([]byte, error) {
	u := c.baseURL + path + "?" + q.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, &trivia.ProviderError{Op: "request", Err: err}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &trivia.ProviderError{Op: "request", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodyBytes))
		return nil, &trivia.ProviderError{Op: "status", StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, &trivia.ProviderError{Op: "read", StatusCode: resp.StatusCode, Err: err}
	}
	return body, nil
}
