package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ccview/internal/model"
)

func sampleSession() *model.Session {
	return &model.Session{
		ID: "s1",
		Messages: []model.Entry{
			{SessionID: "s1", Type: model.EntryTypeUser, UUID: "u1"},
			{SessionID: "s1", Type: model.EntryTypeAssistant, UUID: "u2"},
			{SessionID: "s1", Type: model.EntryTypeSummary}, // no uuid
		},
	}
}

func TestRegistry_SessionHandleIdentity(t *testing.T) {
	r := New()
	s := sampleSession()

	h1 := r.Session(s)
	h2 := r.Session(s)
	assert.Same(t, h1, h2, "repeat lookups for the same session return the identical handle")

	got, ok := r.LookupSession("s1")
	require.True(t, ok)
	assert.Same(t, h1, got)
}

func TestRegistry_EntryHandleIdentity(t *testing.T) {
	r := New()
	s := sampleSession()

	h1 := r.Entry(s, 0)
	h2 := r.Entry(s, 0)
	require.NotNil(t, h1)
	assert.Same(t, h1, h2)
	assert.Equal(t, "u1", h1.UUID)
	assert.Equal(t, 0, h1.Index)
	assert.Same(t, r.Session(s), h1.Parent(), "entry handles share their session's handle")

	byUUID, ok := r.LookupEntry("s1", "u1")
	require.True(t, ok)
	assert.Same(t, h1, byUUID)
}

func TestRegistry_UUIDlessEntryKeyedByIndex(t *testing.T) {
	r := New()
	s := sampleSession()

	h := r.Entry(s, 2)
	require.NotNil(t, h)
	assert.Empty(t, h.UUID)

	got, ok := r.LookupEntryAt("s1", 2)
	require.True(t, ok)
	assert.Same(t, h, got)

	_, ok = r.LookupEntry("s1", "")
	assert.False(t, ok, "uuid lookup must not resolve uuid-less entries")
}

func TestRegistry_OutOfRangeIndex(t *testing.T) {
	r := New()
	s := sampleSession()
	assert.Nil(t, r.Entry(s, -1))
	assert.Nil(t, r.Entry(s, len(s.Messages)))
}

func TestRegistry_ClearInvalidatesHandles(t *testing.T) {
	r := New()
	s := sampleSession()

	before := r.Session(s)
	beforeEntry := r.Entry(s, 0)
	r.Clear()

	_, ok := r.LookupSession("s1")
	assert.False(t, ok)
	_, ok = r.LookupEntry("s1", "u1")
	assert.False(t, ok)

	// Fresh handles after a clear, even for the same data.
	after := r.Session(s)
	afterEntry := r.Entry(s, 0)
	assert.NotSame(t, before, after)
	assert.NotSame(t, beforeEntry, afterEntry)
}

func TestRegistry_StaleHandleReplacedOnRebuild(t *testing.T) {
	r := New()
	old := sampleSession()
	h1 := r.Session(old)

	// A reload produces a new session value under the same id.
	rebuilt := sampleSession()
	h2 := r.Session(rebuilt)
	assert.NotSame(t, h1, h2)
	assert.Same(t, rebuilt, h2.Session)
}
