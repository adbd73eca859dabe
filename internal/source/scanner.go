// Package source discovers and parses Claude Code JSONL session files.
package source

import (
	"os"
	"path/filepath"
	"sort"
	"time"
)

// LogExtension is the file extension of session log files.
const LogExtension = ".jsonl"

// CandidateFile is a log file selected for parsing.
type CandidateFile struct {
	Path    string
	ModTime time.Time
}

// ScanDir enumerates log files in dir, newest first by modification time,
// capped at maxFiles. A missing directory yields an empty result, not an
// error; log directories can be large and only recent activity matters, so
// the cap is a hard limit.
func ScanDir(dir string, maxFiles int) ([]CandidateFile, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var files []CandidateFile
	for _, de := range entries {
		if de.IsDir() || filepath.Ext(de.Name()) != LogExtension {
			continue
		}
		info, err := de.Info()
		if err != nil {
			continue
		}
		files = append(files, CandidateFile{
			Path:    filepath.Join(dir, de.Name()),
			ModTime: info.ModTime(),
		})
	}

	sort.Slice(files, func(i, j int) bool {
		return files[i].ModTime.After(files[j].ModTime)
	})

	if maxFiles > 0 && len(files) > maxFiles {
		files = files[:maxFiles]
	}

	return files, nil
}
