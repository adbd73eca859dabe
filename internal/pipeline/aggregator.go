// Package pipeline reconstructs sessions from raw log files and computes
// their usage and cost roll-ups.
package pipeline

import (
	"fmt"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"

	"ccview/internal/config"
	"ccview/internal/model"
	"ccview/internal/source"
)

// SummaryMaxLen caps derived one-line summaries.
const SummaryMaxLen = 100

// Options controls a single aggregation pass.
type Options struct {
	MaxFiles int
	Filter   *DateFilter
	Logger   *zap.Logger
	Now      func() time.Time
}

func (o *Options) normalize() {
	if o.MaxFiles <= 0 {
		o.MaxFiles = config.DefaultMaxFiles
	}
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}
	if o.Now == nil {
		o.Now = time.Now
	}
}

// Aggregate scans dir for log files and reconstructs sessions: one
// provisional session per file, merged across files sharing a session id,
// messages chronologically sorted, sessions most-recent-first. A missing
// directory yields an empty result. Only unexpected filesystem failures
// surface as errors; per-file and per-line problems degrade to partial
// results.
func Aggregate(dir string, opts Options) ([]model.Session, error) {
	opts.normalize()
	log := opts.Logger

	files, err := source.ScanDir(dir, opts.MaxFiles)
	if err != nil {
		return nil, fmt.Errorf("scanning %s: %w", dir, err)
	}

	byID := make(map[string]*model.Session)
	var order []string

	for _, f := range files {
		pr := source.ParseFile(f.Path, log)
		if pr.Err != nil {
			log.Warn("skipping unreadable file", zap.String("file", f.Path), zap.Error(pr.Err))
			continue
		}
		if len(pr.Entries) == 0 {
			// Empty or fully corrupt files produce no session.
			continue
		}

		s := buildSession(f, pr.Entries, log)

		if existing, ok := byID[s.ID]; ok {
			mergeSession(existing, &s)
		} else {
			byID[s.ID] = &s
			order = append(order, s.ID)
		}
	}

	var filter DateRange
	if opts.Filter != nil {
		filter = opts.Filter.Resolve(opts.Now())
	}

	sessions := make([]model.Session, 0, len(order))
	for _, id := range order {
		s := byID[id]
		sortMessages(s.Messages)
		s.Summary = deriveSummary(s.Messages)

		if opts.Filter != nil && !filter.Contains(s.StartTime) {
			continue
		}
		sessions = append(sessions, *s)
	}

	sort.SliceStable(sessions, func(i, j int) bool {
		return sessions[i].StartTime.After(sessions[j].StartTime)
	})

	return sessions, nil
}

// buildSession turns one file's entries into a provisional session: resolves
// the session id, derives time bounds, and runs the cost enrichment pass.
func buildSession(f source.CandidateFile, entries []model.Entry, log *zap.Logger) model.Session {
	s := model.Session{
		ID:        model.UnknownSessionID,
		FilePaths: []string{f.Path},
		Messages:  entries,
	}

	for i := range entries {
		if entries[i].SessionID != "" {
			s.ID = entries[i].SessionID
			break
		}
	}

	var haveTime bool
	for i := range entries {
		ts, ok := entries[i].Time()
		if !ok {
			if entries[i].Timestamp != "" {
				log.Warn("invalid timestamp, treating as missing",
					zap.String("file", f.Path),
					zap.String("timestamp", entries[i].Timestamp))
			}
			continue
		}
		if !haveTime {
			s.StartTime, s.EndTime = ts, ts
			haveTime = true
			continue
		}
		if ts.Before(s.StartTime) {
			s.StartTime = ts
		}
		if ts.After(s.EndTime) {
			s.EndTime = ts
		}
	}
	if !haveTime {
		// No entry carried a usable timestamp; the file's mtime bounds both ends.
		s.StartTime, s.EndTime = f.ModTime, f.ModTime
	}

	s.TotalTokens, s.TotalCost = enrichCosts(s.Messages, log)

	return s
}

// enrichCosts is the second phase of the parse/enrich split: entries come out
// of the parser without costs, and this pass fills in Usage.Cost exactly once
// per entry. It returns the file-level token and cost totals.
func enrichCosts(entries []model.Entry, log *zap.Logger) (tokens int64, cost float64) {
	for i := range entries {
		msg := entries[i].Message
		if msg == nil || msg.Usage == nil {
			continue
		}
		u := msg.Usage
		if u.InputTokens == 0 && u.OutputTokens == 0 {
			continue
		}

		bd, known := config.CostFor(u, msg.Model, u.ServiceTier)
		if !known {
			log.Info("unknown model, using default pricing",
				zap.String("model", msg.Model))
		}
		u.Cost = bd.Total

		tokens += u.InputTokens + u.OutputTokens
		cost += bd.Total
	}
	return tokens, cost
}

// mergeSession folds src into dst: same conversation split across files.
// Message order is not fixed up here; the caller re-sorts after all files
// are merged.
func mergeSession(dst *model.Session, src *model.Session) {
	dst.Messages = append(dst.Messages, src.Messages...)
	dst.FilePaths = append(dst.FilePaths, src.FilePaths...)
	if src.StartTime.Before(dst.StartTime) {
		dst.StartTime = src.StartTime
	}
	if src.EndTime.After(dst.EndTime) {
		dst.EndTime = src.EndTime
	}
	dst.TotalTokens += src.TotalTokens
	dst.TotalCost += src.TotalCost
}

// sortMessages orders entries chronologically. Entries without a parseable
// timestamp compare equal to everything, so the stable sort leaves their
// relative order untouched.
func sortMessages(entries []model.Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		ti, iok := entries[i].Time()
		tj, jok := entries[j].Time()
		if !iok || !jok {
			return false
		}
		return ti.Before(tj)
	})
}

// deriveSummary produces the session's one-line summary, first match wins:
// the first user message's text, then a summary entry's text, then a
// synthesized count line.
func deriveSummary(entries []model.Entry) string {
	for i := range entries {
		if entries[i].Type != model.EntryTypeUser {
			continue
		}
		if text := entries[i].Message.TextContent(); text != "" {
			return Truncate(text, SummaryMaxLen)
		}
	}

	for i := range entries {
		if entries[i].Type == model.EntryTypeSummary && entries[i].Summary != "" {
			return entries[i].Summary
		}
	}

	return synthesizeSummary(entries)
}

func synthesizeSummary(entries []model.Entry) string {
	var user, assistant, summary int
	date := "Unknown date"
	haveDate := false

	for i := range entries {
		switch entries[i].Type {
		case model.EntryTypeUser:
			user++
		case model.EntryTypeAssistant:
			assistant++
		case model.EntryTypeSummary:
			summary++
		}
		if !haveDate {
			if ts, ok := entries[i].Time(); ok {
				date = ts.Format("2006-01-02")
				haveDate = true
			}
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%d user, %d assistant", user, assistant)
	if summary > 0 {
		fmt.Fprintf(&b, ", %d summary", summary)
	}
	fmt.Fprintf(&b, " messages - %s", date)
	return b.String()
}

// Truncate shortens s to max runes, appending an ellipsis marker when it cut
// anything off.
func Truncate(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	runes := []rune(s)
	return string(runes[:max]) + "..."
}
