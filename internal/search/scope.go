package search

import (
	"context"
	"slices"
	"strings"
	"sync"

	"stockdash/internal/model"

	"golang.org/x/sync/singleflight"
)

// Scope memoizes searches for the lifetime of one incoming request. Build a
// new one per request with Service.NewScope.
type Scope struct {
	svc     *Service
	group   singleflight.Group
	mu      sync.Mutex
	results map[string][]model.SearchResult
}

func (s *Service) NewScope() *Scope {
	return &Scope{svc: s, results: make(map[string][]model.SearchResult)}
}

// Search returns a copy of the memoized result, so callers may mark entries
// without affecting later lookups.
func (sc *Scope) Search(ctx context.Context, query string) []model.SearchResult {
	key := strings.TrimSpace(query)

	sc.mu.Lock()
	cached, ok := sc.results[key]
	sc.mu.Unlock()
	if ok {
		return slices.Clone(cached)
	}

	v, _, _ := sc.group.Do(key, func() (interface{}, error) {
		results := sc.svc.Search(ctx, key)

		sc.mu.Lock()
		sc.results[key] = results
		sc.mu.Unlock()
		return results, nil
	})

	return slices.Clone(v.([]model.SearchResult))
}
