package storage

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/taskdeck/taskdeck/internal/apperr"
	"github.com/taskdeck/taskdeck/internal/fileio"
	"github.com/taskdeck/taskdeck/internal/task"
)

func newTestRepo(t *testing.T, format string) *FileRepository {
	t.Helper()
	repo, err := New(format, t.TempDir())
	if err != nil {
		t.Fatalf("New(%s) error = %v", format, err)
	}
	return repo
}

func newTestTask(t *testing.T, title string, priority task.Priority) *task.Task {
	t.Helper()
	tk, err := task.New(title, "", priority)
	if err != nil {
		t.Fatalf("task.New(%q) error = %v", title, err)
	}
	return tk
}

func TestNewFileRepositoryInitializesEmptyStore(t *testing.T) {
	dir := t.TempDir()
	repo, err := New("json", dir)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if repo.Path() != filepath.Join(dir, "tasks.json") {
		t.Errorf("unexpected store path %s", repo.Path())
	}
	if _, err := os.Stat(repo.Path()); err != nil {
		t.Fatalf("store file not created: %v", err)
	}

	count, err := repo.Count()
	if err != nil {
		t.Fatalf("Count() error = %v", err)
	}
	if count != 0 {
		t.Errorf("fresh store Count() = %d, want 0", count)
	}
}

func TestSaveAndFindByID(t *testing.T) {
	for _, format := range SupportedFormats() {
		t.Run(format, func(t *testing.T) {
			repo := newTestRepo(t, format)

			tk := newTestTask(t, "Buy milk", task.PriorityHigh)
			tk.Description = "two liters"
			if err := repo.Save(tk); err != nil {
				t.Fatalf("Save() error = %v", err)
			}

			got, ok, err := repo.FindByID(tk.ID)
			if err != nil {
				t.Fatalf("FindByID() error = %v", err)
			}
			if !ok {
				t.Fatal("saved task not found")
			}
			assertTaskEqual(t, got, tk)
		})
	}
}

func TestFindByIDMissing(t *testing.T) {
	repo := newTestRepo(t, "json")

	got, ok, err := repo.FindByID("nope")
	if err != nil {
		t.Fatalf("FindByID() error = %v", err)
	}
	if ok || got != nil {
		t.Errorf("expected (nil, false) for missing ID, got (%v, %v)", got, ok)
	}
}

func TestSaveUpserts(t *testing.T) {
	repo := newTestRepo(t, "json")

	tk := newTestTask(t, "Buy milk", task.PriorityMedium)
	if err := repo.Save(tk); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	tk.MarkCompleted()
	if err := repo.Save(tk); err != nil {
		t.Fatalf("Save() second call error = %v", err)
	}

	count, err := repo.Count()
	if err != nil {
		t.Fatalf("Count() error = %v", err)
	}
	if count != 1 {
		t.Errorf("Count() = %d after upsert, want 1", count)
	}

	got, _, err := repo.FindByID(tk.ID)
	if err != nil {
		t.Fatalf("FindByID() error = %v", err)
	}
	if !got.Completed {
		t.Error("upsert did not persist the completed flag")
	}
}

func TestFindAllAndCount(t *testing.T) {
	repo := newTestRepo(t, "xml")

	titles := []string{"one", "two", "three"}
	for _, title := range titles {
		if err := repo.Save(newTestTask(t, title, task.PriorityLow)); err != nil {
			t.Fatalf("Save(%s) error = %v", title, err)
		}
	}

	all, err := repo.FindAll()
	if err != nil {
		t.Fatalf("FindAll() error = %v", err)
	}
	if len(all) != len(titles) {
		t.Errorf("FindAll() returned %d tasks, want %d", len(all), len(titles))
	}

	count, err := repo.Count()
	if err != nil {
		t.Fatalf("Count() error = %v", err)
	}
	if count != len(titles) {
		t.Errorf("Count() = %d, want %d", count, len(titles))
	}
}

func TestDeleteIdempotent(t *testing.T) {
	repo := newTestRepo(t, "json")

	tk := newTestTask(t, "Buy milk", task.PriorityMedium)
	if err := repo.Save(tk); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	removed, err := repo.Delete(tk.ID)
	if err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if !removed {
		t.Error("Delete() of existing task returned false")
	}

	removed, err = repo.Delete(tk.ID)
	if err != nil {
		t.Fatalf("repeated Delete() error = %v", err)
	}
	if removed {
		t.Error("Delete() of missing task returned true")
	}

	exists, err := repo.Exists(tk.ID)
	if err != nil {
		t.Fatalf("Exists() error = %v", err)
	}
	if exists {
		t.Error("task still exists after delete")
	}
}

func TestDeleteMissingDoesNotRewrite(t *testing.T) {
	repo := newTestRepo(t, "json")
	if err := repo.Save(newTestTask(t, "keep me", task.PriorityLow)); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	before, err := os.ReadFile(repo.Path())
	if err != nil {
		t.Fatalf("reading store: %v", err)
	}
	info, err := os.Stat(repo.Path())
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	beforeMod := info.ModTime()

	if _, err := repo.Delete("absent"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	after, err := os.ReadFile(repo.Path())
	if err != nil {
		t.Fatalf("reading store: %v", err)
	}
	if string(before) != string(after) {
		t.Error("store file rewritten by a no-op delete")
	}
	info, err = os.Stat(repo.Path())
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if !info.ModTime().Equal(beforeMod) {
		t.Error("store file touched by a no-op delete")
	}
}

func TestUpdateMissingLeavesStoreUnchanged(t *testing.T) {
	repo := newTestRepo(t, "json")
	if err := repo.Save(newTestTask(t, "existing", task.PriorityMedium)); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	before, err := os.ReadFile(repo.Path())
	if err != nil {
		t.Fatalf("reading store: %v", err)
	}

	ghost := newTestTask(t, "ghost", task.PriorityMedium)
	err = repo.Update(ghost)
	if err == nil {
		t.Fatal("expected TASK_NOT_FOUND updating a missing task")
	}
	var appErr *apperr.Error
	if !errors.As(err, &appErr) || appErr.Code != apperr.TaskNotFound {
		t.Errorf("expected TASK_NOT_FOUND, got %v", err)
	}

	after, err := os.ReadFile(repo.Path())
	if err != nil {
		t.Fatalf("reading store: %v", err)
	}
	if string(before) != string(after) {
		t.Error("store changed by a failed update")
	}
}

func TestUpdateExisting(t *testing.T) {
	repo := newTestRepo(t, "xml")

	tk := newTestTask(t, "Buy milk", task.PriorityMedium)
	if err := repo.Save(tk); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	if err := tk.UpdateTitle("Buy oat milk"); err != nil {
		t.Fatalf("UpdateTitle() error = %v", err)
	}
	if err := repo.Update(tk); err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	got, _, err := repo.FindByID(tk.ID)
	if err != nil {
		t.Fatalf("FindByID() error = %v", err)
	}
	if got.Title != "Buy oat milk" {
		t.Errorf("title = %q after update", got.Title)
	}
	if got.UpdatedAt == nil {
		t.Error("updated_at not persisted")
	}
}

func TestRestartDurability(t *testing.T) {
	for _, format := range SupportedFormats() {
		t.Run(format, func(t *testing.T) {
			dir := t.TempDir()

			repo, err := New(format, dir)
			if err != nil {
				t.Fatalf("New() error = %v", err)
			}
			tk := newTestTask(t, "survive restart", task.PriorityHigh)
			tk.MarkCompleted()
			if err := repo.Save(tk); err != nil {
				t.Fatalf("Save() error = %v", err)
			}

			// A fresh repository over the same directory sees the data.
			reopened, err := New(format, dir)
			if err != nil {
				t.Fatalf("reopening: %v", err)
			}
			got, ok, err := reopened.FindByID(tk.ID)
			if err != nil {
				t.Fatalf("FindByID() after reopen error = %v", err)
			}
			if !ok {
				t.Fatal("task lost across restart")
			}
			assertTaskEqual(t, got, tk)
		})
	}
}

func TestCorruptStoreSurfacesErrorAndStaysUntouched(t *testing.T) {
	dir := t.TempDir()
	repo, err := New("json", dir)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	corrupt := []byte("{ invalid")
	if err := os.WriteFile(repo.Path(), corrupt, 0o600); err != nil {
		t.Fatalf("corrupting store: %v", err)
	}

	_, err = repo.FindAll()
	if err == nil {
		t.Fatal("expected error reading corrupt store")
	}
	var appErr *apperr.Error
	if !errors.As(err, &appErr) || appErr.Code != apperr.RepositoryError {
		t.Errorf("expected REPOSITORY_ERROR, got %v", err)
	}

	data, err := os.ReadFile(repo.Path())
	if err != nil {
		t.Fatalf("reading store: %v", err)
	}
	if string(data) != string(corrupt) {
		t.Error("corrupt store bytes modified by a read")
	}
}

func TestEveryRewriteLeavesABackup(t *testing.T) {
	repo := newTestRepo(t, "json")

	// Initialization wrote the empty store; three saves rewrite it three
	// times, each backing up the prior content under a distinct name.
	for _, title := range []string{"one", "two", "three"} {
		if err := repo.Save(newTestTask(t, title, task.PriorityMedium)); err != nil {
			t.Fatalf("Save(%s) error = %v", title, err)
		}
	}

	backups, err := fileio.ListBackups(repo.Path())
	if err != nil {
		t.Fatalf("ListBackups() error = %v", err)
	}
	if len(backups) != 3 {
		t.Fatalf("expected 3 backups, got %d: %v", len(backups), backups)
	}
	seen := make(map[string]bool, len(backups))
	for _, b := range backups {
		if seen[b] {
			t.Errorf("duplicate backup name %s", b)
		}
		seen[b] = true
	}
}

func TestCompletedTaskKeepsOrderedTimestamps(t *testing.T) {
	repo := newTestRepo(t, "json")

	tk := newTestTask(t, "finish report", task.PriorityHigh)
	if err := repo.Save(tk); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	tk.MarkCompleted()
	if err := repo.Update(tk); err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	got, _, err := repo.FindByID(tk.ID)
	if err != nil {
		t.Fatalf("FindByID() error = %v", err)
	}
	if !got.Completed {
		t.Error("completed flag not persisted")
	}
	if got.UpdatedAt == nil {
		t.Fatal("updated_at not persisted")
	}
	if got.UpdatedAt.Before(got.CreatedAt) {
		t.Errorf("updated_at %v precedes created_at %v", got.UpdatedAt, got.CreatedAt)
	}
}

func TestSelectorUnsupportedFormat(t *testing.T) {
	for _, format := range []string{"yaml", "csv", ""} {
		_, err := New(format, t.TempDir())
		if err == nil {
			t.Fatalf("expected error for format %q", format)
		}
		var appErr *apperr.Error
		if !errors.As(err, &appErr) || appErr.Code != apperr.UnsupportedFormat {
			t.Errorf("format %q: expected UNSUPPORTED_FORMAT, got %v", format, err)
		}
	}
}

func TestSelectorCaseInsensitive(t *testing.T) {
	repo, err := New("XML", t.TempDir())
	if err != nil {
		t.Fatalf("New(XML) error = %v", err)
	}
	if filepath.Base(repo.Path()) != "tasks.xml" {
		t.Errorf("expected tasks.xml, got %s", repo.Path())
	}
}
