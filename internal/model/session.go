package model

import "time"

// UnknownSessionID is the bucket for files whose entries carry no session id.
// All such files collapse into a single session.
const UnknownSessionID = "unknown"

// Session is a reconstructed conversation, possibly merged from several
// files sharing a session id. Messages are chronological; entries without a
// timestamp keep their relative parse order.
//
// Invariants: StartTime <= EndTime and Messages is never empty (files that
// yield no entries produce no session at all).
type Session struct {
	ID        string
	FilePaths []string
	StartTime time.Time
	EndTime   time.Time
	Messages  []Entry

	TotalTokens int64
	TotalCost   float64
	Summary     string
}

// ResumeCommand returns the shell command that reopens this conversation.
func (s *Session) ResumeCommand() string {
	return "claude --resume " + s.ID
}

// MessageCounts returns per-type entry counts used for synthesized summaries.
func (s *Session) MessageCounts() (user, assistant, summary int) {
	for i := range s.Messages {
		switch s.Messages[i].Type {
		case EntryTypeUser:
			user++
		case EntryTypeAssistant:
			assistant++
		case EntryTypeSummary:
			summary++
		}
	}
	return user, assistant, summary
}
