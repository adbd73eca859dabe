// Package engine owns the load lifecycle: lazy initialization, refresh, and
// the session collection shared by the CLI, TUI, and search.
package engine

import (
	"fmt"
	"sync"

	"go.uber.org/zap"

	"ccview/internal/model"
	"ccview/internal/pipeline"
	"ccview/internal/registry"
)

// State of the engine lifecycle.
type State int

// Lifecycle states. Uninitialized transitions to Initializing on first
// access or explicit refresh; Initializing ends in Initialized or Error.
const (
	StateUninitialized State = iota
	StateInitializing
	StateInitialized
	StateError
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateInitializing:
		return "initializing"
	case StateInitialized:
		return "initialized"
	case StateError:
		return "error"
	}
	return "unknown"
}

// PathResolver supplies the log directory to scan. Resolution failure is the
// one condition that surfaces as a user-visible error state.
type PathResolver func() (string, error)

// Engine loads sessions on demand and hands out stable handles through its
// registry. A mutex guards state transitions so concurrent hosts cannot race
// into double initialization; the load itself runs outside the lock, and a
// second refresh during an in-flight load is a no-op.
type Engine struct {
	resolve PathResolver
	opts    pipeline.Options
	log     *zap.Logger

	mu       sync.Mutex
	state    State
	errMsg   string
	sessions []model.Session
	reg      *registry.Registry
}

// New creates an engine. No I/O happens until the first access.
func New(resolve PathResolver, opts pipeline.Options) *Engine {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	return &Engine{
		resolve: resolve,
		opts:    opts,
		log:     log,
		reg:     registry.New(),
	}
}

// State returns the current lifecycle state and, in the error state, its
// human-readable message.
func (e *Engine) State() (State, string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state, e.errMsg
}

// Registry returns the identity cache for the current load generation.
func (e *Engine) Registry() *registry.Registry { return e.reg }

// Sessions returns the session collection, triggering the initial load
// lazily. During an in-flight load it returns the previous generation's
// collection (empty on first load).
func (e *Engine) Sessions() []model.Session {
	e.mu.Lock()
	if e.state == StateUninitialized {
		e.mu.Unlock()
		e.load()
		e.mu.Lock()
	}
	defer e.mu.Unlock()
	return e.sessions
}

// Refresh discards all loaded state and reloads from disk. The identity
// cache is cleared first, so previously issued handles never resolve against
// the new generation. A refresh while a load is in flight is ignored.
func (e *Engine) Refresh() {
	e.mu.Lock()
	if e.state == StateInitializing {
		e.mu.Unlock()
		return
	}
	e.state = StateUninitialized
	e.mu.Unlock()
	e.load()
}

// SetFilter swaps the date filter and reloads. Like Refresh, it invalidates
// every handle; filter changes rebuild sessions from scratch.
func (e *Engine) SetFilter(f *pipeline.DateFilter) {
	e.mu.Lock()
	if e.state == StateInitializing {
		e.mu.Unlock()
		return
	}
	e.opts.Filter = f
	e.state = StateUninitialized
	e.mu.Unlock()
	e.load()
}

// load performs one full aggregation pass. Single-flight: the Initializing
// state set under the lock keeps re-entrant callers out.
func (e *Engine) load() {
	e.mu.Lock()
	if e.state == StateInitializing {
		e.mu.Unlock()
		return
	}
	e.state = StateInitializing
	e.reg.Clear()
	e.sessions = nil
	opts := e.opts
	e.mu.Unlock()

	dir, err := e.resolve()
	if err != nil {
		e.fail(fmt.Sprintf("cannot resolve log directory: %v", err))
		return
	}

	sessions, err := pipeline.Aggregate(dir, opts)
	if err != nil {
		e.fail(fmt.Sprintf("loading sessions from %s: %v", dir, err))
		return
	}

	e.mu.Lock()
	e.sessions = sessions
	e.state = StateInitialized
	e.errMsg = ""
	e.mu.Unlock()

	e.log.Debug("load complete", zap.Int("sessions", len(sessions)))
}

func (e *Engine) fail(msg string) {
	e.mu.Lock()
	e.state = StateError
	e.errMsg = msg
	e.mu.Unlock()
	e.log.Warn("load failed", zap.String("reason", msg))
}
