package model

import "testing"

func TestSession_MessageCounts(t *testing.T) {
	s := Session{Messages: []Entry{
		{Type: EntryTypeUser},
		{Type: EntryTypeAssistant},
		{Type: EntryTypeAssistant},
		{Type: EntryTypeSummary},
		{Type: EntryTypeSystem},
	}}
	user, assistant, summary := s.MessageCounts()
	if user != 1 || assistant != 2 || summary != 1 {
		t.Errorf("counts = %d/%d/%d, want 1/2/1", user, assistant, summary)
	}
}

func TestSession_ResumeCommand(t *testing.T) {
	s := Session{ID: "abc-123"}
	if got := s.ResumeCommand(); got != "claude --resume abc-123" {
		t.Errorf("ResumeCommand() = %q", got)
	}
}
