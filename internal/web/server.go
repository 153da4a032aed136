package web

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"html/template"
	"log"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/sessions"

	"github.com/abhisek/triviaz/internal/quiz"
	"github.com/abhisek/triviaz/internal/trivia"
)

const (
	cookieName   = "triviaz"
	sessionIDKey = "sid"
	maxUsername  = 24

	defaultFetchTimeout = 15 * time.Second
	defaultIdleTimeout  = 30 * time.Minute
)

//go:embed templates/*.html
var templateFS embed.FS

var pageTemplate = template.Must(template.New("index.html").Funcs(template.FuncMap{
	"add": func(a, b int) int { return a + b },
}).ParseFS(templateFS, "templates/index.html"))

// Options configures a Server.
type Options struct {
	Bank     trivia.Bank
	Recorder quiz.Recorder
	Quiz     quiz.Config

	// CookieSecret signs the session cookie. It should be at least 32 bytes.
	CookieSecret []byte

	// SecureCookie marks the cookie Secure (HTTPS only).
	SecureCookie bool

	IdleTimeout  time.Duration
	FetchTimeout time.Duration

	Logger *log.Logger
}

// Server is the browser front end. Each browser gets its own quiz session,
// found through a signed cookie.
type Server struct {
	opts     Options
	cookies  *sessions.CookieStore
	registry *Registry
	logger   *log.Logger
}

// New creates a Server.
func New(opts Options) *Server {
	if opts.Recorder == nil {
		opts.Recorder = quiz.NopRecorder{}
	}
	if opts.FetchTimeout <= 0 {
		opts.FetchTimeout = defaultFetchTimeout
	}
	if opts.IdleTimeout <= 0 {
		opts.IdleTimeout = defaultIdleTimeout
	}
	if opts.Logger == nil {
		opts.Logger = log.New(os.Stderr, "web: ", log.LstdFlags)
	}

	store := sessions.NewCookieStore(opts.CookieSecret)
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   int(opts.IdleTimeout / time.Second),
		HttpOnly: true,
		Secure:   opts.SecureCookie,
		SameSite: http.SameSiteLaxMode,
	}

	return &Server{
		opts:     opts,
		cookies:  store,
		registry: NewRegistry(opts.IdleTimeout),
		logger:   opts.Logger,
	}
}

// Registry exposes the live sessions.
func (s *Server) Registry() *Registry { return s.registry }

// Handler returns the HTTP routes.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.HandleFunc("POST /start", s.handleStart)
	mux.HandleFunc("POST /answer", s.handleAnswer)
	mux.HandleFunc("POST /reset", s.handleReset)
	mux.HandleFunc("GET /api/state", s.handleState)
	return mux
}

// ListenAndServe serves on addr until ctx is cancelled, evicting idle
// sessions in the background. Live sessions are closed on the way out.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go s.evictLoop(ctx)

	errCh := make(chan error, 1)
	go func() {
		s.logger.Printf("listening on http://%s", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		s.registry.CloseAll()
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Printf("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	err := srv.Shutdown(shutdownCtx)
	s.registry.CloseAll()
	return err
}

func (s *Server) evictLoop(ctx context.Context) {
	interval := s.opts.IdleTimeout / 4
	if interval < time.Second {
		interval = time.Second
	}
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			if n := s.registry.Evict(); n > 0 {
				s.logger.Printf("evicted %d idle sessions", n)
			}
		}
	}
}

type pageData struct {
	HasSession bool
	View       quiz.View
	Failed     bool
	Flashes    []string
	Source     string
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	cs, _ := s.cookies.Get(r, cookieName)
	data := pageData{Source: s.opts.Bank.Name()}

	if e, ok := s.lookup(cs); ok {
		e.mu.Lock()
		data.HasSession = true
		data.View = e.session.View()
		e.mu.Unlock()
		data.Failed = data.View.State == quiz.StateFailed
	}

	for _, f := range cs.Flashes() {
		if msg, ok := f.(string); ok {
			data.Flashes = append(data.Flashes, msg)
		}
	}
	if err := cs.Save(r, w); err != nil {
		s.logger.Printf("save cookie: %v", err)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pageTemplate.Execute(w, data); err != nil {
		s.logger.Printf("template error: %v", err)
		http.Error(w, "Template error", http.StatusInternalServerError)
	}
}

func (s *Server) handleStart(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Failed to parse form", http.StatusBadRequest)
		return
	}
	cs, _ := s.cookies.Get(r, cookieName)
	if id, ok := cs.Values[sessionIDKey].(string); ok {
		s.registry.Delete(id)
	}

	cfg := s.opts.Quiz
	cfg.Username = cleanUsername(r.FormValue("username"))

	p := &flashPresenter{}
	qs := quiz.New(s.opts.Bank, p, s.opts.Recorder, cfg)
	e := s.registry.put(qs, p)

	e.mu.Lock()
	ctx, cancel := context.WithTimeout(r.Context(), s.opts.FetchTimeout)
	if err := qs.Start(ctx); err != nil {
		s.logger.Printf("session %s: start: %v", qs.ID(), err)
	}
	cancel()
	for _, m := range p.drain() {
		cs.AddFlash(m)
	}
	e.mu.Unlock()

	cs.Values[sessionIDKey] = qs.ID()
	s.saveAndRedirect(w, r, cs)
}

func (s *Server) handleAnswer(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Failed to parse form", http.StatusBadRequest)
		return
	}
	cs, _ := s.cookies.Get(r, cookieName)
	e, ok := s.lookup(cs)
	if !ok {
		cs.AddFlash("Your quiz has expired. Start a new one.")
		s.saveAndRedirect(w, r, cs)
		return
	}

	e.mu.Lock()
	for _, m := range s.answer(r, e) {
		cs.AddFlash(m)
	}
	e.mu.Unlock()

	s.saveAndRedirect(w, r, cs)
}

// answer applies one submitted form to the session. Caller holds e.mu.
func (s *Server) answer(r *http.Request, e *entry) []string {
	// seq is the answered count the form was rendered at; a replayed or
	// stale form carries an older one.
	seq, err := strconv.Atoi(r.PostForm.Get("seq"))
	if _, ok := e.session.Current(); !ok || err != nil || seq != e.session.Answered() {
		return []string{"That question was already answered."}
	}
	if err := e.session.SetSelection(r.PostForm["choice"]); err != nil {
		return []string{err.Error()}
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.opts.FetchTimeout)
	defer cancel()
	_, err = e.session.Submit(ctx)

	msgs := e.presenter.drain()
	if err != nil && quiz.IsInvalidSelection(err) {
		msgs = append(msgs, "Mark exactly one answer before submitting.")
	} else if err != nil && !isFetchError(err) {
		msgs = append(msgs, err.Error())
	}
	return msgs
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	cs, _ := s.cookies.Get(r, cookieName)
	if id, ok := cs.Values[sessionIDKey].(string); ok {
		s.registry.Delete(id)
	}
	delete(cs.Values, sessionIDKey)
	s.saveAndRedirect(w, r, cs)
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	cs, _ := s.cookies.Get(r, cookieName)
	w.Header().Set("Content-Type", "application/json")

	e, ok := s.lookup(cs)
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "no active quiz"})
		return
	}

	e.mu.Lock()
	v := e.session.View()
	e.mu.Unlock()

	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Printf("encode state: %v", err)
	}
}

func (s *Server) lookup(cs *sessions.Session) (*entry, bool) {
	id, _ := cs.Values[sessionIDKey].(string)
	return s.registry.get(id)
}

func (s *Server) saveAndRedirect(w http.ResponseWriter, r *http.Request, cs *sessions.Session) {
	if err := cs.Save(r, w); err != nil {
		s.logger.Printf("save cookie: %v", err)
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func cleanUsername(s string) string {
	s = strings.TrimSpace(s)
	s = strings.Map(func(r rune) rune {
		if r < ' ' {
			return -1
		}
		return r
	}, s)
	if r := []rune(s); len(r) > maxUsername {
		s = string(r[:maxUsername])
	}
	return s
}

// isFetchError reports errors the presenter already showed.
func isFetchError(err error) bool {
	var pe *trivia.ProviderError
	var ee *trivia.EmptyResultError
	return errors.As(err, &pe) || errors.As(err, &ee) || errors.Is(err, context.DeadlineExceeded)
}
