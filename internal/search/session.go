package search

import (
	"context"
	"slices"
	"strings"
	"sync"
	"time"

	"stockdash/internal/model"
)

const maxIdleResults = 10

type Searcher interface {
	Search(ctx context.Context, query string) []model.SearchResult
}

// State is a point-in-time view of a search box.
type State struct {
	Open    bool
	Query   string
	Loading bool
	Results []model.SearchResult
}

type SessionOption func(*Session)

func WithDelay(d time.Duration) SessionOption {
	return func(s *Session) { s.debouncer = NewDebouncer(d) }
}

// WithOnChange registers fn to receive the state after every transition.
// fn runs outside the session lock.
func WithOnChange(fn func(State)) SessionOption {
	return func(s *Session) { s.onChange = fn }
}

// Session is one search box: it turns keystrokes into debounced lookups and
// keeps the results to display. Responses to superseded searches are dropped.
type Session struct {
	ctx       context.Context
	searcher  Searcher
	debouncer *Debouncer
	onChange  func(State)
	initial   []model.SearchResult

	mu      sync.Mutex
	open    bool
	query   string
	loading bool
	results []model.SearchResult
	seq     uint64
}

// NewSession starts a closed search box showing initial. ctx bounds every
// search the session fires; cancelling it aborts in-flight lookups.
func NewSession(ctx context.Context, searcher Searcher, initial []model.SearchResult, opts ...SessionOption) *Session {
	s := &Session{
		ctx:       ctx,
		searcher:  searcher,
		debouncer: NewDebouncer(DefaultDebounceDelay),
		initial:   slices.Clone(initial),
		results:   slices.Clone(initial),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Session) Open() {
	s.update(func() { s.open = true })
}

func (s *Session) Close() {
	s.update(func() { s.open = false })
}

func (s *Session) Toggle() {
	s.update(func() { s.open = !s.open })
}

// Type records the current input and schedules a lookup once typing pauses.
func (s *Session) Type(query string) {
	s.update(func() { s.query = query })
	s.debouncer.Trigger(s.fire)
}

// Select resets the box after the user picks a result.
func (s *Session) Select(symbol string) {
	s.debouncer.Stop()
	s.update(func() {
		s.open = false
		s.query = ""
		s.loading = false
		s.results = slices.Clone(s.initial)
		s.seq++
	})
}

// Stop cancels a pending lookup.
func (s *Session) Stop() {
	s.debouncer.Stop()
}

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stateLocked()
}

// Displayed returns the results to render: the first few defaults while the
// query is blank, the full response otherwise.
func (s *Session) Displayed() []model.SearchResult {
	return s.State().Results
}

func (s *Session) fire() {
	s.mu.Lock()
	query := strings.TrimSpace(s.query)
	s.seq++
	seq := s.seq

	if query == "" {
		s.results = slices.Clone(s.initial)
		s.loading = false
		state := s.stateLocked()
		s.mu.Unlock()
		s.notify(state)
		return
	}

	s.loading = true
	state := s.stateLocked()
	s.mu.Unlock()
	s.notify(state)

	results := s.searcher.Search(s.ctx, query)

	s.mu.Lock()
	if seq != s.seq {
		s.mu.Unlock()
		return
	}
	s.results = results
	s.loading = false
	state = s.stateLocked()
	s.mu.Unlock()
	s.notify(state)
}

func (s *Session) update(fn func()) {
	s.mu.Lock()
	fn()
	state := s.stateLocked()
	s.mu.Unlock()
	s.notify(state)
}

func (s *Session) notify(state State) {
	if s.onChange != nil {
		s.onChange(state)
	}
}

func (s *Session) stateLocked() State {
	results := s.results
	if strings.TrimSpace(s.query) == "" && len(results) > maxIdleResults {
		results = results[:maxIdleResults]
	}

	return State{
		Open:    s.open,
		Query:   s.query,
		Loading: s.loading,
		Results: slices.Clone(results),
	}
}
