package search

import "sync"

// HistorySize bounds the recent-query list.
const HistorySize = 10

// History is a bounded, de-duplicated, most-recent-first list of accepted
// queries. Re-submitting an existing query moves it to the front.
type History struct {
	mu      sync.Mutex
	max     int
	queries []string
}

// NewHistory creates a history seeded with initial queries (already ordered
// most recent first, as the persisted store supplies them).
func NewHistory(initial []string) *History {
	h := &History{max: HistorySize}
	for i := len(initial) - 1; i >= 0; i-- {
		h.Add(initial[i])
	}
	return h
}

// Add records an accepted query at the front.
func (h *History) Add(query string) {
	if query == "" {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()

	for i, q := range h.queries {
		if q == query {
			h.queries = append(h.queries[:i], h.queries[i+1:]...)
			break
		}
	}
	h.queries = append([]string{query}, h.queries...)
	if len(h.queries) > h.max {
		h.queries = h.queries[:h.max]
	}
}

// Queries returns a copy of the list, most recent first.
func (h *History) Queries() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]string, len(h.queries))
	copy(out, h.queries)
	return out
}
