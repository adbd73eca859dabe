package source

import (
	"bufio"
	"bytes"
	"encoding/json"
	"io"
	"os"

	"go.uber.org/zap"

	"ccview/internal/model"
)

// ParseResult holds the output of parsing a single JSONL file.
type ParseResult struct {
	Entries []model.Entry
	Dropped int // malformed lines skipped
	Err     error
}

// ParseFile reads a JSONL session file line by line. Parsing is total below
// the file level: a malformed line is logged and dropped, never fatal.
// Entries without a message payload (summary and system records) are kept.
func ParseFile(path string, log *zap.Logger) ParseResult {
	f, err := os.Open(path)
	if err != nil {
		return ParseResult{Err: err}
	}
	defer func() { _ = f.Close() }()

	entries, dropped := ParseLines(f, path, log)
	return ParseResult{Entries: entries, Dropped: dropped}
}

// ParseLines parses line-delimited records from r. name is used only for
// log context.
func ParseLines(r io.Reader, name string, log *zap.Logger) ([]model.Entry, int) {
	if log == nil {
		log = zap.NewNop()
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 256*1024), 8*1024*1024)

	var entries []model.Entry
	dropped := 0
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}

		var entry model.Entry
		if err := json.Unmarshal(line, &entry); err != nil {
			dropped++
			log.Warn("dropping malformed line",
				zap.String("file", name),
				zap.Int("line", lineNum),
				zap.Error(err))
			continue
		}

		if entry.Message == nil {
			// Summary and system records carry no message payload.
			log.Debug("entry without message payload",
				zap.String("file", name),
				zap.Int("line", lineNum),
				zap.String("type", entry.Type))
		}

		entries = append(entries, entry)
	}

	if err := scanner.Err(); err != nil {
		// Treat a mid-file read error like a truncated file: keep what parsed.
		log.Warn("stopped reading file early",
			zap.String("file", name),
			zap.Error(err))
	}

	return entries, dropped
}
