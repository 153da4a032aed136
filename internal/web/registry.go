package web

import (
	"sync"
	"time"

	"github.com/abhisek/triviaz/internal/quiz"
)

// entry is one browser's quiz. Its mutex serialises every request that
// touches the session.
type entry struct {
	mu        sync.Mutex
	session   *quiz.Session
	presenter *flashPresenter
	lastSeen  time.Time
}

// Registry maps session ids to live quiz sessions.
type Registry struct {
	mu      sync.Mutex
	entries map[string]*entry
	idle    time.Duration
	now     func() time.Time
}

// NewRegistry creates a registry that evicts sessions unused for idle.
// A zero idle disables eviction.
func NewRegistry(idle time.Duration) *Registry {
	return &Registry{
		entries: make(map[string]*entry),
		idle:    idle,
		now:     time.Now,
	}
}

func (r *Registry) put(s *quiz.Session, p *flashPresenter) *entry {
	e := &entry{session: s, presenter: p, lastSeen: r.now()}
	r.mu.Lock()
	old := r.entries[s.ID()]
	r.entries[s.ID()] = e
	r.mu.Unlock()
	if old != nil {
		closeEntry(old)
	}
	return e
}

func (r *Registry) get(id string) (*entry, bool) {
	if id == "" {
		return nil, false
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.entries[id]
	if ok {
		e.lastSeen = r.now()
	}
	return e, ok
}

// Delete closes and forgets a session. It reports whether it existed.
func (r *Registry) Delete(id string) bool {
	r.mu.Lock()
	e, ok := r.entries[id]
	delete(r.entries, id)
	r.mu.Unlock()
	if ok {
		closeEntry(e)
	}
	return ok
}

// Evict closes sessions idle for longer than the registry's idle timeout
// and returns how many were removed.
func (r *Registry) Evict() int {
	if r.idle <= 0 {
		return 0
	}
	cutoff := r.now().Add(-r.idle)

	r.mu.Lock()
	var stale []*entry
	for id, e := range r.entries {
		if e.lastSeen.Before(cutoff) {
			stale = append(stale, e)
			delete(r.entries, id)
		}
	}
	r.mu.Unlock()

	for _, e := range stale {
		closeEntry(e)
	}
	return len(stale)
}

// Len returns the number of live sessions.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

// CloseAll closes every session. Used on shutdown.
func (r *Registry) CloseAll() {
	r.mu.Lock()
	all := r.entries
	r.entries = make(map[string]*entry)
	r.mu.Unlock()

	for _, e := range all {
		closeEntry(e)
	}
}

func closeEntry(e *entry) {
	e.mu.Lock()
	defer e.mu.Unlock()
	_ = e.session.Close()
}
