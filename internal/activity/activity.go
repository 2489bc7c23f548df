// Package activity maintains a best-effort JSONL log of task mutations
// in the taskdeck directory.
package activity

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const (
	logFileName   = "activity.jsonl"
	logFileMode   = 0o600
	maxLogEntries = 10000 // oldest entries dropped past this
)

// Entry is one logged mutation. Fields lists which task fields the
// mutation touched (set for edits; create/delete/toggle imply theirs).
type Entry struct {
	Timestamp time.Time `json:"timestamp"`
	Action    string    `json:"action"`
	TaskID    string    `json:"task_id"`
	Title     string    `json:"title,omitempty"`
	Fields    []string  `json:"fields,omitempty"`
}

// Append appends an entry to the activity log, trimming the oldest
// entries once the log exceeds maxLogEntries.
func Append(dir string, entry Entry) error {
	path := filepath.Join(dir, logFileName)

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, logFileMode) //nolint:gosec // log path from trusted taskdeck dir
	if err != nil {
		return fmt.Errorf("opening log file: %w", err)
	}
	defer f.Close()

	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("marshaling log entry: %w", err)
	}

	if _, err := f.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("writing log entry: %w", err)
	}

	// Trimming is best-effort; a failure never loses the new entry.
	_ = trim(path)

	return nil
}

// LogMutation records a task mutation. Errors are discarded because
// logging must never fail a command.
func LogMutation(dir, action, taskID, title string, fields ...string) {
	_ = Append(dir, Entry{
		Timestamp: time.Now(),
		Action:    action,
		TaskID:    taskID,
		Title:     title,
		Fields:    fields,
	})
}

// trim rewrites the log keeping only the newest maxLogEntries lines.
func trim(path string) error {
	data, err := os.ReadFile(path) //nolint:gosec // trusted path
	if err != nil {
		return err
	}

	lines := strings.Split(strings.TrimSuffix(string(data), "\n"), "\n")
	if len(lines) <= maxLogEntries {
		return nil
	}

	kept := strings.Join(lines[len(lines)-maxLogEntries:], "\n") + "\n"
	return os.WriteFile(path, []byte(kept), logFileMode)
}
