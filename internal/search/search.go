// Package search scans aggregated sessions for substring matches and builds
// one-line previews for display.
package search

import (
	"regexp"
	"strings"

	"ccview/internal/model"
)

// DefaultPreviewLen is the preview truncation length when the caller does
// not specify one.
const DefaultPreviewLen = 100

// Result is one matching entry with its owning session and display preview.
type Result struct {
	Session    *model.Session
	Entry      *model.Entry
	EntryIndex int
	Preview    string
}

// Search returns entries whose content contains query, case-insensitively.
// Results preserve session iteration order (most recent first) and message
// order within a session; there is no relevance ranking. An empty query
// yields no results.
func Search(query string, sessions []model.Session, previewLen int) []Result {
	if query == "" {
		return nil
	}
	if previewLen <= 0 {
		previewLen = DefaultPreviewLen
	}
	q := strings.ToLower(query)

	var results []Result
	for si := range sessions {
		s := &sessions[si]
		for mi := range s.Messages {
			e := &s.Messages[mi]
			if !entryMatches(e, q) {
				continue
			}
			results = append(results, Result{
				Session:    s,
				Entry:      e,
				EntryIndex: mi,
				Preview:    Preview(e, previewLen),
			})
		}
	}
	return results
}

// entryMatches checks every content shape an entry can carry: plain message
// text, structured items (text, tool names, serialized tool input), summary
// text, and free-text system content. q must already be lowercased.
func entryMatches(e *model.Entry, q string) bool {
	if e.Summary != "" && containsFold(e.Summary, q) {
		return true
	}
	if e.Content != "" && containsFold(e.Content, q) {
		return true
	}

	msg := e.Message
	if msg == nil {
		return false
	}
	if !msg.Content.IsStructured() {
		return containsFold(msg.Content.Text, q)
	}

	for i := range msg.Content.Items {
		item := &msg.Content.Items[i]
		switch item.Type {
		case model.ItemText:
			if containsFold(item.Text, q) {
				return true
			}
		case model.ItemToolUse:
			if containsFold(item.Name, q) {
				return true
			}
			if len(item.Input) > 0 && containsFold(string(item.Input), q) {
				return true
			}
		case model.ItemThinking:
			if containsFold(item.Thinking, q) {
				return true
			}
		}
	}
	return false
}

func containsFold(s, lowerQuery string) bool {
	return strings.Contains(strings.ToLower(s), lowerQuery)
}

var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

// Preview builds the one-line display string for an entry: summary text,
// else ANSI-stripped system content, else message text, else a tool marker.
// Whitespace is collapsed and the result truncated with an ellipsis marker.
func Preview(e *model.Entry, maxLen int) string {
	if maxLen <= 0 {
		maxLen = DefaultPreviewLen
	}

	var text string
	switch {
	case e.Summary != "":
		text = e.Summary
	case e.Content != "":
		text = ansiPattern.ReplaceAllString(e.Content, "")
	default:
		text = e.Message.TextContent()
		if text == "" {
			if name := e.Message.FirstToolName(); name != "" {
				text = "Tool: " + name
			}
		}
	}

	return truncate(collapseWhitespace(text), maxLen)
}

func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "..."
}
