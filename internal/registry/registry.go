// Package registry maintains stable handles for sessions and entries so a
// tree consumer can incrementally reveal and select nodes without rebuilding
// ancestry chains.
package registry

import (
	"sync"

	"ccview/internal/model"
)

// SessionHandle is a stable reference to one session within a load
// generation. It has no parent.
type SessionHandle struct {
	ID      string
	Session *model.Session
}

// EntryHandle is a stable reference to one entry. Keyed by the entry's uuid
// when it has one; summary and system entries may not, so the positional
// index keeps those resolvable too.
type EntryHandle struct {
	SessionID string
	UUID      string
	Index     int
	Entry     *model.Entry

	parent *SessionHandle
}

// Parent returns the owning session's handle.
func (h *EntryHandle) Parent() *SessionHandle { return h.parent }

type entryKey struct {
	sessionID string
	uuid      string
	index     int
}

// Registry is the identity cache. Handles survive across lookups within one
// load generation and are invalidated wholesale when sessions are rebuilt;
// partial invalidation is never attempted because session identity and
// membership can change arbitrarily across a reload.
type Registry struct {
	mu       sync.Mutex
	sessions map[string]*SessionHandle
	entries  map[entryKey]*EntryHandle
}

// New returns an empty registry.
func New() *Registry {
	return &Registry{
		sessions: make(map[string]*SessionHandle),
		entries:  make(map[entryKey]*EntryHandle),
	}
}

// Session returns the handle for s, creating it on first use. A cached
// handle is reused only while it still refers to the same underlying
// session object.
func (r *Registry) Session(s *model.Session) *SessionHandle {
	r.mu.Lock()
	defer r.mu.Unlock()

	if h, ok := r.sessions[s.ID]; ok && h.Session == s {
		return h
	}
	h := &SessionHandle{ID: s.ID, Session: s}
	r.sessions[s.ID] = h
	return h
}

// Entry returns the handle for the entry at index within s, creating it on
// first use.
func (r *Registry) Entry(s *model.Session, index int) *EntryHandle {
	r.mu.Lock()
	defer r.mu.Unlock()

	if index < 0 || index >= len(s.Messages) {
		return nil
	}
	e := &s.Messages[index]
	key := entryKey{sessionID: s.ID, uuid: e.UUID, index: index}
	if e.UUID != "" {
		key.index = -1 // uuid-keyed handles ignore position
	}

	if h, ok := r.entries[key]; ok && h.Entry == e && h.Index == index {
		return h
	}

	parent := r.sessionLocked(s)
	h := &EntryHandle{
		SessionID: s.ID,
		UUID:      e.UUID,
		Index:     index,
		Entry:     e,
		parent:    parent,
	}
	r.entries[key] = h
	return h
}

func (r *Registry) sessionLocked(s *model.Session) *SessionHandle {
	if h, ok := r.sessions[s.ID]; ok && h.Session == s {
		return h
	}
	h := &SessionHandle{ID: s.ID, Session: s}
	r.sessions[s.ID] = h
	return h
}

// LookupSession resolves a session handle by id.
func (r *Registry) LookupSession(id string) (*SessionHandle, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	h, ok := r.sessions[id]
	return h, ok
}

// LookupEntry resolves an entry handle by (session id, uuid).
func (r *Registry) LookupEntry(sessionID, uuid string) (*EntryHandle, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	h, ok := r.entries[entryKey{sessionID: sessionID, uuid: uuid, index: -1}]
	return h, ok
}

// LookupEntryAt resolves an entry handle by (session id, index) for entries
// that carry no uuid.
func (r *Registry) LookupEntryAt(sessionID string, index int) (*EntryHandle, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	h, ok := r.entries[entryKey{sessionID: sessionID, index: index}]
	return h, ok
}

// Clear drops every handle. Called on refresh, filter apply, and filter
// clear, before the new session collection is exposed.
func (r *Registry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions = make(map[string]*SessionHandle)
	r.entries = make(map[entryKey]*EntryHandle)
}
