// Package fileio provides safe file primitives for the store backends:
// idempotent directory creation, timestamped backups, and atomic
// whole-file replacement via a temporary sibling and rename.
package fileio

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

const (
	fileMode = 0o600
	dirMode  = 0o750

	backupStamp = "20060102150405"
)

// EnsureDir creates the directory (and parents) if it does not exist.
func EnsureDir(dir string) error {
	if err := os.MkdirAll(dir, dirMode); err != nil {
		return fmt.Errorf("creating directory %s: %w", dir, err)
	}
	return nil
}

// Backup copies the file at path to a timestamped sibling named
// <stem>_backup_<YYYYMMDDHHMMSS><ext>. When a backup with the same
// timestamp already exists (sub-second writes), a numeric suffix is
// appended so no prior backup is overwritten. Backups are never pruned
// here; retention is the operator's concern.
func Backup(path string) (string, error) {
	src, err := os.Open(path) //nolint:gosec // store path from trusted config
	if err != nil {
		return "", fmt.Errorf("opening %s for backup: %w", path, err)
	}
	defer src.Close()

	backupPath := backupName(path, time.Now())
	for n := 2; ; n++ {
		if _, err := os.Stat(backupPath); os.IsNotExist(err) {
			break
		}
		ext := filepath.Ext(path)
		backupPath = strings.TrimSuffix(backupName(path, time.Now()), ext) +
			"_" + strconv.Itoa(n) + ext
	}

	dst, err := os.OpenFile(backupPath, os.O_CREATE|os.O_EXCL|os.O_WRONLY, fileMode) //nolint:gosec // sibling of trusted path
	if err != nil {
		return "", fmt.Errorf("creating backup %s: %w", backupPath, err)
	}

	if _, err := io.Copy(dst, src); err != nil {
		_ = dst.Close()
		_ = os.Remove(backupPath)
		return "", fmt.Errorf("copying to backup %s: %w", backupPath, err)
	}
	if err := dst.Close(); err != nil {
		_ = os.Remove(backupPath)
		return "", fmt.Errorf("closing backup %s: %w", backupPath, err)
	}

	return backupPath, nil
}

// WriteAtomic writes data to a temporary sibling of path and renames it
// into place. On any failure the temporary file is removed and the
// target is left in its prior state.
func WriteAtomic(path string, data []byte) error {
	tmpPath := path + ".tmp"

	if err := os.WriteFile(tmpPath, data, fileMode); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("writing temporary file %s: %w", tmpPath, err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("replacing %s: %w", path, err)
	}

	return nil
}

// Replace backs up the existing file (if any) and atomically replaces
// it with data. The target is either fully replaced or untouched.
func Replace(path string, data []byte) error {
	if _, err := os.Stat(path); err == nil {
		if _, err := Backup(path); err != nil {
			return err
		}
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("checking %s: %w", path, err)
	}

	return WriteAtomic(path, data)
}

// ListBackups returns the backup files previously written for path,
// sorted by name (and therefore by timestamp).
func ListBackups(path string) ([]string, error) {
	dir := filepath.Dir(path)
	ext := filepath.Ext(path)
	stem := strings.TrimSuffix(filepath.Base(path), ext)
	prefix := stem + "_backup_"

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading directory %s: %w", dir, err)
	}

	var backups []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasPrefix(name, prefix) || !strings.HasSuffix(name, ext) {
			continue
		}
		backups = append(backups, filepath.Join(dir, name))
	}
	return backups, nil
}

func backupName(path string, now time.Time) string {
	ext := filepath.Ext(path)
	stem := strings.TrimSuffix(filepath.Base(path), ext)
	return filepath.Join(filepath.Dir(path),
		stem+"_backup_"+now.Format(backupStamp)+ext)
}
