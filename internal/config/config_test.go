package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestInitAndLoad(t *testing.T) {
	dir := filepath.Join(t.TempDir(), DefaultDir)

	cfg, err := Init(dir, "")
	if err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	if cfg.Storage.Format != DefaultFormat {
		t.Errorf("format = %s, want %s", cfg.Storage.Format, DefaultFormat)
	}
	if cfg.Defaults.Priority != DefaultPriority {
		t.Errorf("priority = %s, want %s", cfg.Defaults.Priority, DefaultPriority)
	}

	// Init creates the config file and an empty store.
	if _, err := os.Stat(cfg.ConfigPath()); err != nil {
		t.Errorf("config file not created: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "tasks.json")); err != nil {
		t.Errorf("store file not created: %v", err)
	}

	loaded, err := Load(dir)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if loaded.Version != CurrentVersion {
		t.Errorf("version = %d, want %d", loaded.Version, CurrentVersion)
	}
	if loaded.Storage.Format != cfg.Storage.Format {
		t.Errorf("format = %s after reload, want %s", loaded.Storage.Format, cfg.Storage.Format)
	}
	if loaded.Dir() != cfg.Dir() {
		t.Errorf("dir = %s after reload, want %s", loaded.Dir(), cfg.Dir())
	}
}

func TestInitXMLFormat(t *testing.T) {
	dir := filepath.Join(t.TempDir(), DefaultDir)

	cfg, err := Init(dir, "xml")
	if err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	if cfg.Storage.Format != "xml" {
		t.Errorf("format = %s, want xml", cfg.Storage.Format)
	}
	if _, err := os.Stat(filepath.Join(dir, "tasks.xml")); err != nil {
		t.Errorf("XML store file not created: %v", err)
	}
}

func TestInitNormalizesFormatCase(t *testing.T) {
	dir := filepath.Join(t.TempDir(), DefaultDir)

	cfg, err := Init(dir, "XML")
	if err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	if cfg.Storage.Format != "xml" {
		t.Errorf("format = %q, want lowercase xml", cfg.Storage.Format)
	}

	// The saved config must survive a reload.
	loaded, err := Load(dir)
	if err != nil {
		t.Fatalf("Load() after mixed-case init error = %v", err)
	}
	if loaded.Storage.Format != "xml" {
		t.Errorf("reloaded format = %q, want xml", loaded.Storage.Format)
	}
}

func TestInitRejectsUnknownFormat(t *testing.T) {
	dir := filepath.Join(t.TempDir(), DefaultDir)

	if _, err := Init(dir, "yaml"); err == nil {
		t.Fatal("expected error for unsupported format")
	}
	if _, err := os.Stat(dir); !os.IsNotExist(err) {
		t.Error("directory created despite invalid format")
	}
}

func TestLoadMissing(t *testing.T) {
	_, err := Load(t.TempDir())
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"bad version", "version: 99\nstorage:\n  format: json\ndefaults:\n  priority: medium\n"},
		{"bad format", "version: 1\nstorage:\n  format: yaml\ndefaults:\n  priority: medium\n"},
		{"bad priority", "version: 1\nstorage:\n  format: json\ndefaults:\n  priority: urgent\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			path := filepath.Join(dir, ConfigFileName)
			if err := os.WriteFile(path, []byte(tt.content), 0o600); err != nil {
				t.Fatalf("writing config: %v", err)
			}

			_, err := Load(dir)
			if !errors.Is(err, ErrInvalid) {
				t.Errorf("expected ErrInvalid, got %v", err)
			}
		})
	}
}

func TestSaveRoundTrip(t *testing.T) {
	dir := t.TempDir()

	cfg := NewDefault()
	cfg.SetDir(dir)
	cfg.Storage.Format = "xml"
	cfg.Defaults.Priority = "high"
	if err := cfg.Save(); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	loaded, err := Load(dir)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if loaded.Storage.Format != "xml" {
		t.Errorf("format = %s, want xml", loaded.Storage.Format)
	}
	if loaded.Defaults.Priority != "high" {
		t.Errorf("priority = %s, want high", loaded.Defaults.Priority)
	}
}

func TestFindDir(t *testing.T) {
	root := t.TempDir()
	deckDir := filepath.Join(root, DefaultDir)
	if _, err := Init(deckDir, ""); err != nil {
		t.Fatalf("Init() error = %v", err)
	}

	nested := filepath.Join(root, "a", "b", "c")
	if err := os.MkdirAll(nested, 0o750); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	t.Run("from root", func(t *testing.T) {
		found, err := FindDir(root)
		if err != nil {
			t.Fatalf("FindDir() error = %v", err)
		}
		assertSamePath(t, found, deckDir)
	})

	t.Run("from nested directory", func(t *testing.T) {
		found, err := FindDir(nested)
		if err != nil {
			t.Fatalf("FindDir() error = %v", err)
		}
		assertSamePath(t, found, deckDir)
	})

	t.Run("from inside the taskdeck directory", func(t *testing.T) {
		found, err := FindDir(deckDir)
		if err != nil {
			t.Fatalf("FindDir() error = %v", err)
		}
		assertSamePath(t, found, deckDir)
	})

	t.Run("not found", func(t *testing.T) {
		_, err := FindDir(t.TempDir())
		if !errors.Is(err, ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})
}

func assertSamePath(t *testing.T, got, want string) {
	t.Helper()
	gotResolved, err := filepath.EvalSymlinks(got)
	if err != nil {
		t.Fatalf("resolving %s: %v", got, err)
	}
	wantResolved, err := filepath.EvalSymlinks(want)
	if err != nil {
		t.Fatalf("resolving %s: %v", want, err)
	}
	if gotResolved != wantResolved {
		t.Errorf("path = %s, want %s", got, want)
	}
}
