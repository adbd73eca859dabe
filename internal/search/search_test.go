package search

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ccview/internal/model"
)

func textEntry(uuid, text string) model.Entry {
	return model.Entry{
		Type: model.EntryTypeUser,
		UUID: uuid,
		Message: &model.Message{
			Role:    "user",
			Content: model.MessageContent{Text: text},
		},
	}
}

func structuredEntry(uuid string, items ...model.ContentItem) model.Entry {
	var m model.Message
	raw, _ := json.Marshal(items)
	_ = json.Unmarshal([]byte(`{"content":`+string(raw)+`}`), &m)
	return model.Entry{Type: model.EntryTypeAssistant, UUID: uuid, Message: &m}
}

func TestSearch_EmptyQuery(t *testing.T) {
	sessions := []model.Session{{ID: "s1", Messages: []model.Entry{textEntry("u1", "anything")}}}
	assert.Nil(t, Search("", sessions, 0))
}

func TestSearch_CaseInsensitive(t *testing.T) {
	sessions := []model.Session{{ID: "s1", Messages: []model.Entry{
		textEntry("u1", "Fix the Parser"),
	}}}
	results := Search("pArSeR", sessions, 0)
	require.Len(t, results, 1)
	assert.Equal(t, "u1", results[0].Entry.UUID)
}

func TestSearch_ToolInputOnlyMatch(t *testing.T) {
	// The query appears only inside a tool invocation's serialized input.
	sessions := []model.Session{{ID: "s1", Messages: []model.Entry{
		structuredEntry("a1", model.ContentItem{
			Type:  model.ItemToolUse,
			Name:  "Bash",
			Input: json.RawMessage(`{"command":"grep frobnicate main.go"}`),
		}),
	}}}

	results := Search("frobnicate", sessions, 0)
	require.Len(t, results, 1)
	assert.Equal(t, "a1", results[0].Entry.UUID)
}

func TestSearch_ToolNameMatch(t *testing.T) {
	sessions := []model.Session{{ID: "s1", Messages: []model.Entry{
		structuredEntry("a1", model.ContentItem{Type: model.ItemToolUse, Name: "WebFetch"}),
	}}}
	assert.Len(t, Search("webfetch", sessions, 0), 1)
}

func TestSearch_SummaryAndSystemContent(t *testing.T) {
	sessions := []model.Session{{ID: "s1", Messages: []model.Entry{
		{Type: model.EntryTypeSummary, Summary: "Migrating the database schema"},
		{Type: model.EntryTypeSystem, Content: "command exited with code 1"},
	}}}
	assert.Len(t, Search("schema", sessions, 0), 1)
	assert.Len(t, Search("exited", sessions, 0), 1)
}

func TestSearch_OrderFollowsSessionsThenMessages(t *testing.T) {
	sessions := []model.Session{
		{ID: "recent", Messages: []model.Entry{
			textEntry("r1", "needle one"),
			textEntry("r2", "no match"),
			textEntry("r3", "needle two"),
		}},
		{ID: "older", Messages: []model.Entry{
			textEntry("o1", "needle three"),
		}},
	}

	results := Search("needle", sessions, 0)
	require.Len(t, results, 3)
	assert.Equal(t, "r1", results[0].Entry.UUID)
	assert.Equal(t, "r3", results[1].Entry.UUID)
	assert.Equal(t, "o1", results[2].Entry.UUID)
	assert.Equal(t, 2, results[1].EntryIndex)
}

func TestPreview_Chain(t *testing.T) {
	tests := []struct {
		name  string
		entry model.Entry
		want  string
	}{
		{
			name:  "summary wins",
			entry: model.Entry{Summary: "Session summary", Content: "ignored"},
			want:  "Session summary",
		},
		{
			name:  "system content stripped of ansi",
			entry: model.Entry{Content: "\x1b[31merror:\x1b[0m build failed"},
			want:  "error: build failed",
		},
		{
			name:  "message text",
			entry: textEntry("u1", "  hello\n\tworld  "),
			want:  "hello world",
		},
		{
			name: "tool marker when no text",
			entry: structuredEntry("a1", model.ContentItem{
				Type: model.ItemToolUse, Name: "Bash",
			}),
			want: "Tool: Bash",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Preview(&tt.entry, 0))
		})
	}
}

func TestPreview_Truncation(t *testing.T) {
	e := textEntry("u1", strings.Repeat("a", 150))
	got := Preview(&e, 100)
	assert.Len(t, got, 103)
	assert.True(t, strings.HasSuffix(got, "..."))

	short := textEntry("u2", "brief")
	assert.Equal(t, "brief", Preview(&short, 100))
}
