// Package model defines domain types for log entries, messages, and sessions.
package model

import (
	"encoding/json"
	"time"
)

// Entry types found in Claude Code JSONL session files.
const (
	EntryTypeUser      = "user"
	EntryTypeAssistant = "assistant"
	EntryTypeSummary   = "summary"
	EntryTypeSystem    = "system"
)

// Entry represents a single line in a JSONL session file.
// Entries are immutable after parsing; the one documented exception is the
// Cost field on Usage, which the aggregation pipeline fills in exactly once.
type Entry struct {
	SessionID string   `json:"sessionId,omitempty"`
	Type      string   `json:"type,omitempty"`
	Timestamp string   `json:"timestamp,omitempty"`
	UUID      string   `json:"uuid,omitempty"`
	Message   *Message `json:"message,omitempty"`

	// For system entries
	Content string `json:"content,omitempty"`
	Level   string `json:"level,omitempty"`

	// For summary entries
	Summary  string `json:"summary,omitempty"`
	LeafUUID string `json:"leafUuid,omitempty"`
}

// Time parses the entry's timestamp. ok is false when the timestamp is
// missing or unparseable; callers treat both cases the same.
func (e *Entry) Time() (time.Time, bool) {
	if e.Timestamp == "" {
		return time.Time{}, false
	}
	ts, err := time.Parse(time.RFC3339Nano, e.Timestamp)
	if err != nil {
		return time.Time{}, false
	}
	return ts, true
}

// Message is the message envelope carried by user and assistant entries.
type Message struct {
	Role    string         `json:"role,omitempty"`
	Model   string         `json:"model,omitempty"`
	Content MessageContent `json:"content,omitempty"`
	Usage   *Usage         `json:"usage,omitempty"`
}

// Usage holds token counts from the API response. Cost is not part of the
// wire format; the aggregator computes it once from the pricing table.
type Usage struct {
	InputTokens              int64  `json:"input_tokens"`
	OutputTokens             int64  `json:"output_tokens"`
	CacheCreationInputTokens int64  `json:"cache_creation_input_tokens,omitempty"`
	CacheReadInputTokens     int64  `json:"cache_read_input_tokens,omitempty"`
	ServiceTier              string `json:"service_tier,omitempty"`

	Cost float64 `json:"-"`
}

// MessageContent is either a plain string or an ordered list of content items.
type MessageContent struct {
	Text  string
	Items []ContentItem

	structured bool
}

// IsStructured reports whether the content was a JSON array of items rather
// than a plain string.
func (c MessageContent) IsStructured() bool { return c.structured }

// UnmarshalJSON accepts both content encodings used in session files:
// a bare string and an array of typed blocks.
func (c *MessageContent) UnmarshalJSON(data []byte) error {
	switch {
	case len(data) == 0 || string(data) == "null":
		return nil
	case data[0] == '"':
		return json.Unmarshal(data, &c.Text)
	default:
		c.structured = true
		return json.Unmarshal(data, &c.Items)
	}
}

// MarshalJSON writes the content back in its original shape.
func (c MessageContent) MarshalJSON() ([]byte, error) {
	if c.structured {
		return json.Marshal(c.Items)
	}
	return json.Marshal(c.Text)
}

// Content item kinds. Anything else is ItemUnknown and round-trips verbatim.
const (
	ItemText       = "text"
	ItemToolUse    = "tool_use"
	ItemToolResult = "tool_result"
	ItemThinking   = "thinking"
	ItemImage      = "image"
)

// ContentItem is one block in structured message content. Known kinds expose
// typed fields; unrecognized kinds keep their raw JSON so nothing is lost.
type ContentItem struct {
	Type string `json:"type"`

	// text
	Text string `json:"text,omitempty"`

	// tool_use
	ID    string          `json:"id,omitempty"`
	Name  string          `json:"name,omitempty"`
	Input json.RawMessage `json:"input,omitempty"`

	// tool_result
	ToolUseID string          `json:"tool_use_id,omitempty"`
	Content   json.RawMessage `json:"content,omitempty"`

	// thinking
	Thinking string `json:"thinking,omitempty"`

	// image
	Source json.RawMessage `json:"source,omitempty"`

	raw json.RawMessage
}

// Known reports whether the item's type is one of the recognized kinds.
func (ci *ContentItem) Known() bool {
	switch ci.Type {
	case ItemText, ItemToolUse, ItemToolResult, ItemThinking, ItemImage:
		return true
	}
	return false
}

// Raw returns the original JSON for unknown-type items, nil otherwise.
func (ci *ContentItem) Raw() json.RawMessage { return ci.raw }

type contentItemAlias ContentItem

// UnmarshalJSON keeps a verbatim copy of unrecognized blocks.
func (ci *ContentItem) UnmarshalJSON(data []byte) error {
	var alias contentItemAlias
	if err := json.Unmarshal(data, &alias); err != nil {
		return err
	}
	*ci = ContentItem(alias)
	if !ci.Known() {
		ci.raw = append(json.RawMessage(nil), data...)
	}
	return nil
}

// MarshalJSON emits unknown blocks exactly as they were read.
func (ci ContentItem) MarshalJSON() ([]byte, error) {
	if !ci.Known() && ci.raw != nil {
		return ci.raw, nil
	}
	return json.Marshal(contentItemAlias(ci))
}

// TextContent returns the message's plain text: the string form directly, or
// the first text-typed item of structured content.
func (m *Message) TextContent() string {
	if m == nil {
		return ""
	}
	if !m.Content.IsStructured() {
		return m.Content.Text
	}
	for i := range m.Content.Items {
		if m.Content.Items[i].Type == ItemText {
			return m.Content.Items[i].Text
		}
	}
	return ""
}

// FirstToolName returns the name of the first tool invocation, if any.
func (m *Message) FirstToolName() string {
	if m == nil || !m.Content.IsStructured() {
		return ""
	}
	for i := range m.Content.Items {
		if m.Content.Items[i].Type == ItemToolUse {
			return m.Content.Items[i].Name
		}
	}
	return ""
}
