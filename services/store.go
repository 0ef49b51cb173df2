// services/store.go
package services

import (
	"context"
	"sort"
	"strings"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// collators are not safe for concurrent use, so name comparisons share one
// under a lock. Lists are small enough that this never contends.
var (
	nameCollator   = collate.New(language.Und, collate.Loose)
	nameCollatorMu sync.Mutex
)

// CompareNames is a locale-aware, case-folding string comparison used for
// name sorting across every entity list.
func CompareNames(a, b string) int {
	nameCollatorMu.Lock()
	defer nameCollatorMu.Unlock()
	return nameCollator.CompareString(a, b)
}

// View is the derived-list parameter set: free-text search, a categorical
// filter and a sort comparator. Nil members are skipped.
type View[T any] struct {
	Search string
	Filter func(T) bool
	Less   func(a, b T) bool
}

// ListStore holds the authoritative fetched collection for one entity and
// derives visible views from it. The whole pipeline recomputes on every
// change; collections are tens to low hundreds of records, so there is no
// incremental path.
type ListStore[T any] struct {
	name       string
	fetch      func(context.Context) ([]T, error)
	searchText func(T) []string

	mu      sync.RWMutex
	source  []T
	view    View[T]
	visible []T
	lastErr error
}

// NewListStore wires a store to its list fetcher and the text fields the
// free-text search matches against.
func NewListStore[T any](name string, fetch func(context.Context) ([]T, error), searchText func(T) []string) *ListStore[T] {
	return &ListStore[T]{name: name, fetch: fetch, searchText: searchText}
}

// Refresh re-runs the list fetch. A failed fetch empties the collection and
// is surfaced through LastError rather than returned; nothing escapes the
// store boundary.
func (s *ListStore[T]) Refresh(ctx context.Context) {
	items, err := s.fetch(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		zap.L().Warn("list fetch failed", zap.String("store", s.name), zap.Error(err))
		s.source = nil
		s.lastErr = err
	} else {
		s.source = items
		s.lastErr = nil
	}
	s.recompute()
}

// SetItems replaces the source collection directly.
func (s *ListStore[T]) SetItems(items []T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.source = items
	s.lastErr = nil
	s.recompute()
}

// SetSearch updates the free-text term and recomputes.
func (s *ListStore[T]) SetSearch(term string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.view.Search = term
	s.recompute()
}

// SetFilter updates the categorical filter and recomputes.
func (s *ListStore[T]) SetFilter(filter func(T) bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.view.Filter = filter
	s.recompute()
}

// SetSort updates the sort comparator and recomputes.
func (s *ListStore[T]) SetSort(less func(a, b T) bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.view.Less = less
	s.recompute()
}

// Apply installs a complete view in one step and returns the resulting
// visible collection. This is what request handlers use, so concurrent
// requests never observe each other's half-applied parameters.
func (s *ListStore[T]) Apply(view View[T]) []T {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.view = view
	s.recompute()
	out := make([]T, len(s.visible))
	copy(out, s.visible)
	return out
}

// Visible returns a copy of the current derived collection.
func (s *ListStore[T]) Visible() []T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]T, len(s.visible))
	copy(out, s.visible)
	return out
}

// Source returns a copy of the authoritative collection.
func (s *ListStore[T]) Source() []T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]T, len(s.source))
	copy(out, s.source)
	return out
}

// LastError reports the most recent fetch failure, if the current collection
// is the empty result of one.
func (s *ListStore[T]) LastError() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastErr
}

// recompute rebuilds visible as search -> filter -> sort over source.
// Callers hold the write lock.
func (s *ListStore[T]) recompute() {
	out := make([]T, 0, len(s.source))

	term := strings.ToLower(strings.TrimSpace(s.view.Search))
	for _, item := range s.source {
		if term != "" && s.searchText != nil && !matchesSearch(s.searchText(item), term) {
			continue
		}
		if s.view.Filter != nil && !s.view.Filter(item) {
			continue
		}
		out = append(out, item)
	}

	if s.view.Less != nil {
		sort.SliceStable(out, func(i, j int) bool {
			return s.view.Less(out[i], out[j])
		})
	}
	s.visible = out
}

func matchesSearch(fields []string, term string) bool {
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), term) {
			return true
		}
	}
	return false
}
