package opentdb

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/triviaz/internal/trivia"
)

type roundTripperFunc func(*http.Request) (*http.Response, error)

func (f roundTripperFunc) RoundTrip(r *http.Request) (*http.Response, error) {
	return f(r)
}

func jsonResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(bytes.NewReader([]byte(body))),
		Header:     make(http.Header),
	}
}

func newTestClient(rt http.RoundTripper, opts ...Option) *Client {
	return NewClient(&http.Client{Transport: rt}, opts...)
}

const twoQuestions = `{"response_code":0,"results":[
 {"type":"multiple","difficulty":"easy","category":"Geography",
  "question":"Capital of &quot;France&quot;?","correct_answer":"Paris",
  "incorrect_answers":["Berlin","Madrid","Rome"]},
 {"type":"boolean","difficulty":"easy","category":"Science",
  "question":"Water boils at 100C at sea level.","correct_answer":"True",
  "incorrect_answers":["False"]}]}`

func TestFetchBatch_BuildsQuery(t *testing.T) {
	var seen *http.Request
	client := newTestClient(roundTripperFunc(func(r *http.Request) (*http.Response, error) {
		seen = r
		return jsonResponse(http.StatusOK, twoQuestions), nil
	}), WithBaseURL("http://trivia.test"), WithCategory(9), WithType("multiple"))

	_, err := client.FetchBatch(context.Background(), 5, trivia.Hard)
	require.NoError(t, err)

	require.NotNil(t, seen)
	assert.Equal(t, "/api.php", seen.URL.Path)
	assert.Equal(t, "trivia.test", seen.URL.Host)
	q := seen.URL.Query()
	assert.Equal(t, "5", q.Get("amount"))
	assert.Equal(t, "hard", q.Get("difficulty"))
	assert.Equal(t, "9", q.Get("category"))
	assert.Equal(t, "multiple", q.Get("type"))
	assert.False(t, q.Has("token"))
}

func TestFetchBatch_OmitsDifficultyForAny(t *testing.T) {
	var seen *http.Request
	client := newTestClient(roundTripperFunc(func(r *http.Request) (*http.Response, error) {
		seen = r
		return jsonResponse(http.StatusOK, twoQuestions), nil
	}))

	_, err := client.FetchBatch(context.Background(), 3, trivia.DifficultyAny)
	require.NoError(t, err)
	assert.False(t, seen.URL.Query().Has("difficulty"))
}

func TestFetchBatch_DecodesShortBatch(t *testing.T) {
	client := newTestClient(roundTripperFunc(func(r *http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusOK, twoQuestions), nil
	}))

	qs, err := client.FetchBatch(context.Background(), 5, trivia.Easy)
	require.NoError(t, err)
	require.Len(t, qs, 2)

	assert.Equal(t, `Capital of "France"?`, qs[0].Text)
	assert.Equal(t, []string{"Berlin", "Madrid", "Rome", "Paris"}, qs[0].Choices)
	assert.Equal(t, "Paris", qs[0].CorrectAnswer)
	assert.Equal(t, []string{"False", "True"}, qs[1].Choices)
}

func TestFetchBatch_NonOKStatus(t *testing.T) {
	client := newTestClient(roundTripperFunc(func(r *http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusBadGateway, ""), nil
	}))

	_, err := client.FetchBatch(context.Background(), 5, trivia.Easy)
	var pe *trivia.ProviderError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, http.StatusBadGateway, pe.StatusCode)
}

func TestFetchBatch_TransportError(t *testing.T) {
	boom := errors.New("connection refused")
	client := newTestClient(roundTripperFunc(func(r *http.Request) (*http.Response, error) {
		return nil, boom
	}))

	_, err := client.FetchBatch(context.Background(), 5, trivia.Easy)
	require.True(t, trivia.IsProviderError(err))
	assert.ErrorIs(t, err, boom)
}

func TestFetchBatch_MalformedPayload(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"not json", "not-json"},
		{"missing response_code", `{"results":[]}`},
		{"results not array", `{"response_code":0,"results":"nope"}`},
		{"incorrect_answers not strings", `{"response_code":0,"results":[{"question":"Q","correct_answer":"A","incorrect_answers":[1,2]}]}`},
		{"missing correct_answer", `{"response_code":0,"results":[{"question":"Q","incorrect_answers":["B"]}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(roundTripperFunc(func(r *http.Request) (*http.Response, error) {
				return jsonResponse(http.StatusOK, tt.body), nil
			}))
			_, err := client.FetchBatch(context.Background(), 5, trivia.Easy)
			var pe *trivia.ProviderError
			require.ErrorAs(t, err, &pe)
			assert.Equal(t, "decode", pe.Op)
		})
	}
}

func TestFetchBatch_EmptyResults(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"code 0 with no results", `{"response_code":0,"results":[]}`},
		{"code 1", `{"response_code":1,"results":[]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(roundTripperFunc(func(r *http.Request) (*http.Response, error) {
				return jsonResponse(http.StatusOK, tt.body), nil
			}))
			_, err := client.FetchBatch(context.Background(), 5, trivia.Medium)
			var ee *trivia.EmptyResultError
			require.ErrorAs(t, err, &ee)
			assert.Equal(t, 5, ee.Requested)
			assert.Equal(t, trivia.Medium, ee.Difficulty)
		})
	}
}

func TestFetchBatch_ProviderResponseCodes(t *testing.T) {
	for _, code := range []int{CodeInvalidParam, CodeTokenNotFound, CodeRateLimit, 42} {
		client := newTestClient(roundTripperFunc(func(r *http.Request) (*http.Response, error) {
			return jsonResponse(http.StatusOK, `{"response_code":`+strconv.Itoa(code)+`,"results":[]}`), nil
		}))
		_, err := client.FetchBatch(context.Background(), 5, trivia.Easy)
		var pe *trivia.ProviderError
		require.ErrorAs(t, err, &pe, "code %d", code)
		assert.Equal(t, code, pe.ResponseCode)
	}
}

func TestFetchBatch_SessionTokenLifecycle(t *testing.T) {
	var tokenRequests, resets, fetches atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api_token.php":
			switch r.URL.Query().Get("command") {
			case "request":
				tokenRequests.Add(1)
				io.WriteString(w, `{"response_code":0,"response_message":"ok","token":"tok-1"}`)
			case "reset":
				resets.Add(1)
				assert.Equal(t, "tok-1", r.URL.Query().Get("token"))
				io.WriteString(w, `{"response_code":0,"token":"tok-1"}`)
			}
		case "/api.php":
			n := fetches.Add(1)
			assert.Equal(t, "tok-1", r.URL.Query().Get("token"))
			if n == 1 {
				io.WriteString(w, twoQuestions)
				return
			}
			io.WriteString(w, `{"response_code":4,"results":[]}`)
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	prev := errWriter
	errWriter = io.Discard
	defer func() { errWriter = prev }()

	client := NewClient(srv.Client(), WithBaseURL(srv.URL), WithSessionToken(true))

	qs, err := client.FetchBatch(context.Background(), 2, trivia.Easy)
	require.NoError(t, err)
	assert.Len(t, qs, 2)

	_, err = client.FetchBatch(context.Background(), 2, trivia.Easy)
	assert.True(t, trivia.IsEmptyResult(err), "token exhausted should be an empty result, got %v", err)

	assert.Equal(t, int32(1), tokenRequests.Load(), "token is requested once")
	assert.Equal(t, int32(1), resets.Load())
	assert.Equal(t, int32(2), fetches.Load())
}

func TestFetchBatch_TokenRequestFailure(t *testing.T) {
	client := newTestClient(roundTripperFunc(func(r *http.Request) (*http.Response, error) {
		if strings.HasSuffix(r.URL.Path, "api_token.php") {
			return jsonResponse(http.StatusOK, `{"response_code":2,"response_message":"bad"}`), nil
		}
		t.Fatalf("api.php should not be called without a token")
		return nil, nil
	}), WithSessionToken(true))

	_, err := client.FetchBatch(context.Background(), 5, trivia.Easy)
	var pe *trivia.ProviderError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, "token", pe.Op)
}

func TestFetchBatch_NonPositiveCount(t *testing.T) {
	client := newTestClient(roundTripperFunc(func(r *http.Request) (*http.Response, error) {
		t.Fatal("no request expected")
		return nil, nil
	}))
	_, err := client.FetchBatch(context.Background(), 0, trivia.Easy)
	assert.True(t, trivia.IsEmptyResult(err))
}
