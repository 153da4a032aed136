package web

import (
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/triviaz/internal/quiz"
	"github.com/abhisek/triviaz/internal/trivia"
)

func testBank() *trivia.StaticBank {
	var recs []trivia.Record
	for _, d := range []string{"easy", "medium", "hard"} {
		for _, q := range []string{"Capital of France?", "Largest planet?"} {
			recs = append(recs, trivia.Record{
				Difficulty:       d,
				Category:         "General",
				Question:         d + " " + q,
				CorrectAnswer:    "right",
				IncorrectAnswers: []string{"wrong", "nope", "no"},
			})
		}
	}
	return trivia.NewStaticBank(recs...)
}

type testClient struct {
	t      *testing.T
	srv    *httptest.Server
	client *http.Client
	server *Server
}

func newTestServer(t *testing.T, bank trivia.Bank) *testClient {
	t.Helper()
	s := New(Options{
		Bank:         bank,
		Quiz:         quiz.Config{BatchSize: 2},
		CookieSecret: []byte("0123456789abcdef0123456789abcdef"),
		Logger:       log.New(io.Discard, "", 0),
	})
	srv := httptest.NewServer(s.Handler())
	t.Cleanup(srv.Close)

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &testClient{t: t, srv: srv, client: &http.Client{Jar: jar}, server: s}
}

func (c *testClient) get(path string) (int, string) {
	c.t.Helper()
	resp, err := c.client.Get(c.srv.URL + path)
	require.NoError(c.t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(c.t, err)
	return resp.StatusCode, string(body)
}

func (c *testClient) post(path string, form url.Values) string {
	c.t.Helper()
	resp, err := c.client.PostForm(c.srv.URL+path, form)
	require.NoError(c.t, err)
	defer resp.Body.Close()
	require.Equal(c.t, http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(c.t, err)
	return string(body)
}

func (c *testClient) state() quiz.View {
	c.t.Helper()
	code, body := c.get("/api/state")
	require.Equal(c.t, http.StatusOK, code, body)
	var v quiz.View
	require.NoError(c.t, json.Unmarshal([]byte(body), &v))
	return v
}

// seq returns the answered count a freshly rendered answer form carries.
func (c *testClient) seq() string {
	c.t.Helper()
	return strconv.Itoa(c.state().Answered)
}

func TestIndexWithoutSession(t *testing.T) {
	c := newTestServer(t, testBank())

	code, body := c.get("/")
	assert.Equal(t, http.StatusOK, code)
	assert.Contains(t, body, `action="/start"`)
	assert.Contains(t, body, "static")
}

func TestStateWithoutSession(t *testing.T) {
	c := newTestServer(t, testBank())

	code, body := c.get("/api/state")
	assert.Equal(t, http.StatusNotFound, code)
	assert.Contains(t, body, "no active quiz")
}

func TestStartRendersQuestion(t *testing.T) {
	c := newTestServer(t, testBank())

	body := c.post("/start", url.Values{"username": {"  ada  "}})
	assert.Contains(t, body, "easy Capital of France?")
	assert.Contains(t, body, `class="choice-checkbox"`)
	assert.Contains(t, body, "Player: <strong>ada</strong>")
	assert.Contains(t, body, `id="next-btn" disabled`)
	assert.Equal(t, 1, c.server.Registry().Len())

	v := c.state()
	assert.Equal(t, "ada", v.Username)
	assert.Equal(t, trivia.Easy, v.Difficulty)
	assert.Len(t, v.Choices, 4)
}

func TestAnswerCorrect(t *testing.T) {
	c := newTestServer(t, testBank())
	c.post("/start", nil)
	seq := c.seq()

	body := c.post("/answer", url.Values{"seq": {seq}, "choice": {"right"}})
	assert.Contains(t, body, "Correct! right")

	v := c.state()
	assert.Equal(t, 1, v.Score)
	assert.Equal(t, 1, v.Answered)
	assert.Equal(t, 1, v.Index)
}

func TestAnswerWrongShowsCorrectAnswer(t *testing.T) {
	c := newTestServer(t, testBank())
	c.post("/start", nil)
	seq := c.seq()

	body := c.post("/answer", url.Values{"seq": {seq}, "choice": {"nope"}})
	assert.Contains(t, body, "The answer was right.")
	assert.Equal(t, 0, c.state().Score)
}

func TestAnswerNeedsExactlyOneChoice(t *testing.T) {
	c := newTestServer(t, testBank())
	c.post("/start", nil)
	seq := c.seq()

	body := c.post("/answer", url.Values{"seq": {seq}, "choice": {"right", "nope"}})
	assert.Contains(t, body, "Mark exactly one answer")

	body = c.post("/answer", url.Values{"seq": {seq}})
	assert.Contains(t, body, "Mark exactly one answer")
	assert.Equal(t, 0, c.state().Answered)
}

func TestAnswerStaleQuestion(t *testing.T) {
	c := newTestServer(t, testBank())
	c.post("/start", nil)

	body := c.post("/answer", url.Values{"seq": {"7"}, "choice": {"right"}})
	assert.Contains(t, body, "already answered")
	assert.Equal(t, 0, c.state().Answered)
}

func TestReplayedFormOnWrappedBatch(t *testing.T) {
	bank := trivia.NewStaticBank(trivia.Record{
		Difficulty:       "easy",
		Question:         "Only question?",
		CorrectAnswer:    "right",
		IncorrectAnswers: []string{"wrong", "nope", "no"},
	})
	c := newTestServer(t, bank)
	c.post("/start", nil)

	form := url.Values{"seq": {c.seq()}, "choice": {"right"}}
	c.post("/answer", form)
	// The batch wraps, so the same question text is current again.
	require.Equal(t, "Only question?", c.state().Question)

	body := c.post("/answer", form)
	assert.Contains(t, body, "already answered")
	v := c.state()
	assert.Equal(t, 1, v.Score)
	assert.Equal(t, 1, v.Answered)
}

func TestBatchBoundaryRefetches(t *testing.T) {
	bank := testBank()
	c := newTestServer(t, bank)
	c.post("/start", nil)

	for range 2 {
		seq := c.seq()
		c.post("/answer", url.Values{"seq": {seq}, "choice": {"right"}})
	}

	assert.Len(t, bank.Calls, 2)
	v := c.state()
	assert.Equal(t, 2, v.Score)
	assert.Equal(t, 0, v.Index)
	assert.NotEmpty(t, v.Question)
}

func TestStartFailure(t *testing.T) {
	c := newTestServer(t, trivia.NewStaticBank())

	body := c.post("/start", nil)
	assert.Contains(t, body, "could not start")
	assert.Equal(t, quiz.StateFailed, c.state().State)
}

func TestReset(t *testing.T) {
	c := newTestServer(t, testBank())
	c.post("/start", nil)

	body := c.post("/reset", nil)
	assert.Contains(t, body, `action="/start"`)
	assert.Equal(t, 0, c.server.Registry().Len())

	code, _ := c.get("/api/state")
	assert.Equal(t, http.StatusNotFound, code)
}

func TestRestartReplacesSession(t *testing.T) {
	c := newTestServer(t, testBank())
	c.post("/start", nil)
	c.post("/start", url.Values{"username": {"bob"}})

	assert.Equal(t, 1, c.server.Registry().Len())
	assert.Equal(t, "bob", c.state().Username)
}

func TestAnswerWithoutSession(t *testing.T) {
	c := newTestServer(t, testBank())

	body := c.post("/answer", url.Values{"choice": {"right"}})
	assert.Contains(t, body, "expired")
}

func TestCleanUsername(t *testing.T) {
	assert.Equal(t, "ada", cleanUsername("  ada\n"))
	assert.Equal(t, strings.Repeat("x", maxUsername), cleanUsername(strings.Repeat("x", 40)))
}
