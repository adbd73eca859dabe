// Package tui provides the interactive Bubble Tea session browser.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"ccview/internal/cli"
	"ccview/internal/engine"
	"ccview/internal/model"
	"ccview/internal/search"
	"ccview/internal/store"
	"ccview/internal/tui/theme"
)

// sessionsLoadedMsg is sent when the engine finishes a load.
type sessionsLoadedMsg struct {
	sessions []model.Session
	state    engine.State
	errMsg   string
}

// searchQueryMsg is sent when the debouncer accepts a settled query.
type searchQueryMsg string

// dirChangedMsg is sent when the watched log directory changes on disk.
type dirChangedMsg struct{}

type focusArea int

const (
	focusList focusArea = iota
	focusSearch
	focusDetail
)

// App is the root Bubble Tea model: a session list, a detail pane, and a
// debounced search input over the engine's session collection.
type App struct {
	eng     *engine.Engine
	history *search.History
	queries *store.QueryStore // nil when the history db is unavailable
	deb     *search.Debouncer
	watcher *dirWatcher

	searchCh chan string

	sessions []model.Session
	results  []search.Result

	cursor    int
	focus     focusArea
	input     textinput.Model
	detail    viewport.Model
	width     int
	height    int
	loading   bool
	refreshed bool
	errMsg    string
	lastQuery string
}

// NewApp builds the browser. queries may be nil; watchDir may be empty to
// disable auto-refresh.
func NewApp(eng *engine.Engine, queries *store.QueryStore, watchDir string) *App {
	ti := textinput.New()
	ti.Placeholder = "search sessions (press /)"
	ti.CharLimit = 200
	ti.Prompt = "/ "

	var initial []string
	if queries != nil {
		initial, _ = queries.Recent(store.MaxQueries)
	}

	a := &App{
		eng:      eng,
		history:  search.NewHistory(initial),
		queries:  queries,
		input:    ti,
		loading:  true,
		searchCh: make(chan string, 8),
	}
	a.deb = search.NewDebouncer(search.DebounceDelay, func(q string) {
		a.searchCh <- q
	})
	if watchDir != "" {
		a.watcher = newDirWatcher(watchDir)
	}
	return a
}

// Init starts the initial load and the channel pumps.
func (a *App) Init() tea.Cmd {
	cmds := []tea.Cmd{a.loadCmd(), a.waitSearch()}
	if a.watcher != nil {
		cmds = append(cmds, a.watcher.wait())
	}
	return tea.Batch(cmds...)
}

// loadCmd runs the engine's (possibly lazy) load off the UI loop.
func (a *App) loadCmd() tea.Cmd {
	return func() tea.Msg {
		sessions := a.eng.Sessions()
		st, msg := a.eng.State()
		return sessionsLoadedMsg{sessions: sessions, state: st, errMsg: msg}
	}
}

func (a *App) refreshCmd() tea.Cmd {
	return func() tea.Msg {
		a.eng.Refresh()
		sessions := a.eng.Sessions()
		st, msg := a.eng.State()
		return sessionsLoadedMsg{sessions: sessions, state: st, errMsg: msg}
	}
}

func (a *App) waitSearch() tea.Cmd {
	return func() tea.Msg {
		return searchQueryMsg(<-a.searchCh)
	}
}

// Update handles events.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.detail.Width = a.detailWidth()
		a.detail.Height = a.height - 4
		a.renderDetail()
		return a, nil

	case sessionsLoadedMsg:
		a.loading = false
		a.sessions = msg.sessions
		a.errMsg = ""
		if msg.state == engine.StateError {
			a.errMsg = msg.errMsg
		}
		if a.cursor >= a.rowCount() {
			a.cursor = 0
		}
		// Stale results refer to the previous generation's sessions.
		a.results = nil
		if a.lastQuery != "" {
			a.results = search.Search(a.lastQuery, a.sessions, search.DefaultPreviewLen)
		}
		a.renderDetail()
		return a, nil

	case searchQueryMsg:
		q := string(msg)
		a.lastQuery = q
		a.results = search.Search(q, a.sessions, search.DefaultPreviewLen)
		if len(a.results) > 0 {
			a.history.Add(q)
			if a.queries != nil {
				_ = a.queries.Record(q)
			}
		}
		a.cursor = 0
		a.renderDetail()
		return a, a.waitSearch()

	case dirChangedMsg:
		cmds := []tea.Cmd{a.refreshCmd()}
		if a.watcher != nil {
			cmds = append(cmds, a.watcher.wait())
		}
		return a, tea.Batch(cmds...)

	case tea.KeyMsg:
		return a.handleKey(msg)
	}

	return a, nil
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if a.focus == focusSearch {
		switch msg.String() {
		case "esc":
			a.focus = focusList
			a.input.Blur()
			a.input.SetValue("")
			a.lastQuery = ""
			a.results = nil
			a.deb.Submit("")
			a.cursor = 0
			a.renderDetail()
			return a, nil
		case "enter", "down":
			a.focus = focusList
			a.input.Blur()
			return a, nil
		default:
			var cmd tea.Cmd
			a.input, cmd = a.input.Update(msg)
			a.deb.Submit(a.input.Value())
			return a, cmd
		}
	}

	switch msg.String() {
	case "q", "ctrl+c":
		if a.watcher != nil {
			a.watcher.close()
		}
		return a, tea.Quit

	case "/":
		a.focus = focusSearch
		a.input.Focus()
		return a, textinput.Blink

	case "r":
		a.loading = true
		return a, a.refreshCmd()

	case "tab":
		if a.focus == focusList {
			a.focus = focusDetail
		} else {
			a.focus = focusList
		}
		return a, nil

	case "up", "k":
		if a.focus == focusDetail {
			a.detail.LineUp(1)
			return a, nil
		}
		if a.cursor > 0 {
			a.cursor--
			a.renderDetail()
		}
		return a, nil

	case "down", "j":
		if a.focus == focusDetail {
			a.detail.LineDown(1)
			return a, nil
		}
		if a.cursor < a.rowCount()-1 {
			a.cursor++
			a.renderDetail()
		}
		return a, nil

	case "enter":
		a.revealSelection()
		return a, nil
	}

	if a.focus == focusDetail {
		var cmd tea.Cmd
		a.detail, cmd = a.detail.Update(msg)
		return a, cmd
	}
	return a, nil
}

// rowCount is the row set the cursor moves over: results when a search is
// active, the full session list otherwise.
func (a *App) rowCount() int {
	if a.lastQuery != "" {
		return len(a.results)
	}
	return len(a.sessions)
}

// selectedSession resolves the cursor through the identity cache so repeated
// selections of the same node reuse one handle.
func (a *App) selectedSession() (*model.Session, int) {
	if a.lastQuery != "" {
		if a.cursor < len(a.results) {
			r := a.results[a.cursor]
			return r.Session, r.EntryIndex
		}
		return nil, -1
	}
	if a.cursor < len(a.sessions) {
		return &a.sessions[a.cursor], -1
	}
	return nil, -1
}

// revealSelection scrolls the detail pane to the selected entry, resolving
// parent chains through handles rather than recomputing them.
func (a *App) revealSelection() {
	s, entryIdx := a.selectedSession()
	if s == nil {
		return
	}
	reg := a.eng.Registry()
	sh := reg.Session(s)
	a.renderDetail()
	if entryIdx >= 0 {
		if eh := reg.Entry(sh.Session, entryIdx); eh != nil {
			a.detail.SetYOffset(eh.Index + detailHeaderLines)
		}
	}
	a.focus = focusDetail
}

const detailHeaderLines = 4

func (a *App) detailWidth() int {
	w := a.width - a.listWidth() - 3
	if w < 20 {
		w = 20
	}
	return w
}

func (a *App) listWidth() int {
	w := a.width / 2
	if w > 60 {
		w = 60
	}
	if w < 30 {
		w = 30
	}
	return w
}

func (a *App) renderDetail() {
	s, _ := a.selectedSession()
	if s == nil {
		a.detail.SetContent("")
		return
	}

	t := theme.Active
	muted := lipgloss.NewStyle().Foreground(t.TextMuted)
	dim := lipgloss.NewStyle().Foreground(t.TextDim)

	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", muted.Render("session "+s.ID))
	fmt.Fprintf(&b, "%s\n", muted.Render(cli.FormatTimeRange(s.StartTime, s.EndTime)))
	user, assistant, _ := s.MessageCounts()
	fmt.Fprintf(&b, "%d user / %d assistant · %s tokens, %s\n",
		user, assistant, cli.FormatTokens(s.TotalTokens), cli.FormatCost(s.TotalCost))
	fmt.Fprintf(&b, "%s\n", dim.Render(s.ResumeCommand()))

	for i := range s.Messages {
		e := &s.Messages[i]
		label := e.Type
		if label == "" {
			label = "?"
		}
		line := fmt.Sprintf("%-9s %s", label, search.Preview(e, a.detailWidth()-12))
		b.WriteString(line)
		b.WriteString("\n")
	}

	a.detail.SetContent(b.String())
}

// View renders the browser.
func (a *App) View() string {
	t := theme.Active
	title := lipgloss.NewStyle().Bold(true).Foreground(t.TextPrimary)
	muted := lipgloss.NewStyle().Foreground(t.TextMuted)
	errStyle := lipgloss.NewStyle().Foreground(t.Red)

	if a.loading {
		return "\n  " + muted.Render("Loading sessions...") + "\n"
	}
	if a.errMsg != "" {
		return "\n  " + errStyle.Render(a.errMsg) + "\n\n  " +
			muted.Render("r to retry, q to quit") + "\n"
	}

	var header string
	if a.focus == focusSearch || a.input.Value() != "" {
		header = a.input.View()
	} else {
		header = title.Render("ccview") + muted.Render(
			fmt.Sprintf("  %d sessions", len(a.sessions)))
	}

	list := a.renderList()
	body := lipgloss.JoinHorizontal(lipgloss.Top, list, " ", a.detail.View())

	help := muted.Render("  / search · enter reveal · tab focus · r refresh · q quit")

	return header + "\n" + body + "\n" + help
}

func (a *App) renderList() string {
	t := theme.Active
	sel := lipgloss.NewStyle().Foreground(t.Accent).Bold(true)
	norm := lipgloss.NewStyle().Foreground(t.TextPrimary)
	muted := lipgloss.NewStyle().Foreground(t.TextMuted)

	width := a.listWidth()
	maxRows := a.height - 4
	if maxRows < 1 {
		maxRows = 1
	}

	var rows []string
	if a.lastQuery != "" {
		for i, r := range a.results {
			line := fmt.Sprintf("%s  %s", cli.ShortID(r.Session.ID), r.Preview)
			rows = append(rows, a.listRow(line, i == a.cursor, width, sel, norm))
		}
		if len(rows) == 0 {
			rows = append(rows, muted.Render("  no matches"))
		}
	} else {
		for i := range a.sessions {
			s := &a.sessions[i]
			line := fmt.Sprintf("%s  %s  %s",
				s.StartTime.Local().Format("01-02 15:04"),
				cli.FormatCost(s.TotalCost),
				s.Summary)
			rows = append(rows, a.listRow(line, i == a.cursor, width, sel, norm))
		}
		if len(rows) == 0 {
			rows = append(rows, muted.Render("  no sessions"))
		}
	}

	// Keep the cursor on screen.
	start := 0
	if a.cursor >= maxRows {
		start = a.cursor - maxRows + 1
	}
	end := start + maxRows
	if end > len(rows) {
		end = len(rows)
	}

	return strings.Join(rows[start:end], "\n")
}

func (a *App) listRow(line string, selected bool, width int, sel, norm lipgloss.Style) string {
	runes := []rune(line)
	if len(runes) > width-2 {
		line = string(runes[:width-2])
	}
	if selected {
		return sel.Render("> " + line)
	}
	return norm.Render("  " + line)
}
