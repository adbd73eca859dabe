package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fsnotify/fsnotify"
)

// dirWatcher forwards filesystem changes in the log directory as Bubble Tea
// messages. Events are coalesced so a burst of writes triggers one refresh,
// which is always a full reload of every file.
type dirWatcher struct {
	events chan struct{}
	fsw    *fsnotify.Watcher
}

func newDirWatcher(dir string) *dirWatcher {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil
	}
	if err := fsw.Add(dir); err != nil {
		_ = fsw.Close()
		return nil
	}

	w := &dirWatcher{
		events: make(chan struct{}, 1),
		fsw:    fsw,
	}

	go func() {
		var last time.Time
		for {
			select {
			case _, ok := <-fsw.Events:
				if !ok {
					close(w.events)
					return
				}
				if time.Since(last) < time.Second {
					continue
				}
				last = time.Now()
				select {
				case w.events <- struct{}{}:
				default:
				}
			case _, ok := <-fsw.Errors:
				if !ok {
					close(w.events)
					return
				}
			}
		}
	}()

	return w
}

// wait blocks for the next coalesced change event.
func (w *dirWatcher) wait() tea.Cmd {
	if w == nil {
		return nil
	}
	return func() tea.Msg {
		if _, ok := <-w.events; !ok {
			return nil
		}
		return dirChangedMsg{}
	}
}

func (w *dirWatcher) close() {
	if w != nil && w.fsw != nil {
		_ = w.fsw.Close()
	}
}
