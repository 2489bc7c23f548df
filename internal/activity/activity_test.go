package activity

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"
)

func TestAppend(t *testing.T) {
	dir := t.TempDir()

	entries := []Entry{
		{Timestamp: time.Now(), Action: "create", TaskID: "a1", Title: "Buy milk"},
		{Timestamp: time.Now(), Action: "edit", TaskID: "a1", Title: "Buy oat milk", Fields: []string{"title", "priority"}},
	}
	for _, e := range entries {
		if err := Append(dir, e); err != nil {
			t.Fatalf("Append() error = %v", err)
		}
	}

	got := readLog(t, dir)
	if len(got) != len(entries) {
		t.Fatalf("log has %d entries, want %d", len(got), len(entries))
	}
	for i, want := range entries {
		if got[i].Action != want.Action || got[i].TaskID != want.TaskID || got[i].Title != want.Title {
			t.Errorf("entry %d = %+v, want %+v", i, got[i], want)
		}
		if !reflect.DeepEqual(got[i].Fields, want.Fields) {
			t.Errorf("entry %d fields = %v, want %v", i, got[i].Fields, want.Fields)
		}
	}
}

func TestLogMutationIgnoresErrors(t *testing.T) {
	// A missing directory must not panic or surface an error.
	LogMutation(filepath.Join(t.TempDir(), "does-not-exist"), "create", "a1", "x")
}

func TestTrimKeepsMostRecent(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, logFileName)

	// Seed a log at the cap; the next append trims the oldest.
	f, err := os.Create(path) //nolint:gosec // test path
	if err != nil {
		t.Fatalf("creating log: %v", err)
	}
	w := bufio.NewWriter(f)
	for i := 0; i < maxLogEntries; i++ {
		line, err := json.Marshal(Entry{Action: "seed", TaskID: "old"})
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		w.Write(line)
		w.WriteByte('\n')
	}
	if err := w.Flush(); err != nil {
		t.Fatalf("flush: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	if err := Append(dir, Entry{Action: "create", TaskID: "new"}); err != nil {
		t.Fatalf("Append() error = %v", err)
	}

	got := readLog(t, dir)
	if len(got) != maxLogEntries {
		t.Fatalf("log has %d entries after trim, want %d", len(got), maxLogEntries)
	}
	if last := got[len(got)-1]; last.TaskID != "new" {
		t.Errorf("newest entry lost: %+v", last)
	}
	if first := got[0]; first.TaskID != "old" {
		t.Errorf("unexpected oldest entry: %+v", first)
	}
}

func readLog(t *testing.T, dir string) []Entry {
	t.Helper()
	f, err := os.Open(filepath.Join(dir, logFileName)) //nolint:gosec // test path
	if err != nil {
		t.Fatalf("opening log: %v", err)
	}
	defer f.Close()

	var entries []Entry
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var e Entry
		if err := json.Unmarshal(scanner.Bytes(), &e); err != nil {
			t.Fatalf("parsing log line: %v", err)
		}
		entries = append(entries, e)
	}
	if err := scanner.Err(); err != nil {
		t.Fatalf("scanning log: %v", err)
	}
	return entries
}
