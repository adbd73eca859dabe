package search

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHistory_MostRecentFirst(t *testing.T) {
	h := NewHistory(nil)
	h.Add("first")
	h.Add("second")
	h.Add("third")
	assert.Equal(t, []string{"third", "second", "first"}, h.Queries())
}

func TestHistory_DuplicateMovesToFront(t *testing.T) {
	h := NewHistory(nil)
	h.Add("alpha")
	h.Add("beta")
	h.Add("gamma")
	h.Add("alpha")

	got := h.Queries()
	assert.Equal(t, []string{"alpha", "gamma", "beta"}, got)
	assert.Len(t, got, 3, "re-adding must not duplicate")
}

func TestHistory_Bounded(t *testing.T) {
	h := NewHistory(nil)
	for i := 0; i < HistorySize+5; i++ {
		h.Add(fmt.Sprintf("query-%d", i))
	}

	got := h.Queries()
	assert.Len(t, got, HistorySize)
	assert.Equal(t, fmt.Sprintf("query-%d", HistorySize+4), got[0])
	// The oldest entries fell off the end.
	assert.NotContains(t, got, "query-0")
}

func TestHistory_IgnoresEmpty(t *testing.T) {
	h := NewHistory(nil)
	h.Add("")
	assert.Empty(t, h.Queries())
}

func TestNewHistory_SeedOrderPreserved(t *testing.T) {
	h := NewHistory([]string{"newest", "middle", "oldest"})
	assert.Equal(t, []string{"newest", "middle", "oldest"}, h.Queries())
}
