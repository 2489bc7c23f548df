package storage

import (
	"os"
	"path/filepath"

	"github.com/taskdeck/taskdeck/internal/apperr"
	"github.com/taskdeck/taskdeck/internal/fileio"
	"github.com/taskdeck/taskdeck/internal/task"
)

// FileRepository satisfies task.Repository over a single store file.
// Every mutation performs a whole-file read-modify-write: the store is
// decoded, changed in memory, re-encoded, and handed to the atomic
// writer. There is no partial-update path; each rewrite is atomic but
// concurrent writers are not serialized (last rename wins).
type FileRepository struct {
	path  string
	codec Codec
}

// NewFileRepository creates a repository backed by the given file.
// The parent directory is created if needed and an absent file is
// initialized to an empty store.
func NewFileRepository(path string, codec Codec) (*FileRepository, error) {
	if err := fileio.EnsureDir(filepath.Dir(path)); err != nil {
		return nil, apperr.Wrap(apperr.RepositoryError, err, "preparing store directory")
	}

	r := &FileRepository{path: path, codec: codec}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := r.persist(Store{}); err != nil {
			return nil, err
		}
	} else if err != nil {
		return nil, apperr.Repository("stat", path, err)
	}

	return r, nil
}

// Path returns the store file path.
func (r *FileRepository) Path() string { return r.path }

// Save upserts a task by ID.
func (r *FileRepository) Save(t *task.Task) error {
	store, err := r.load()
	if err != nil {
		return err
	}
	store[t.ID] = t
	return r.persist(store)
}

// FindByID returns the task and true when present, nil and false when absent.
func (r *FileRepository) FindByID(id string) (*task.Task, bool, error) {
	store, err := r.load()
	if err != nil {
		return nil, false, err
	}
	t, ok := store[id]
	return t, ok, nil
}

// FindAll returns every task in the store, in map order.
func (r *FileRepository) FindAll() ([]*task.Task, error) {
	store, err := r.load()
	if err != nil {
		return nil, err
	}
	tasks := make([]*task.Task, 0, len(store))
	for _, t := range store {
		tasks = append(tasks, t)
	}
	return tasks, nil
}

// Delete removes a task by ID. Deleting a missing ID is a no-op that
// returns false; the file is not rewritten in that case.
func (r *FileRepository) Delete(id string) (bool, error) {
	store, err := r.load()
	if err != nil {
		return false, err
	}
	if _, ok := store[id]; !ok {
		return false, nil
	}
	delete(store, id)
	if err := r.persist(store); err != nil {
		return false, err
	}
	return true, nil
}

// Exists reports whether a task with the given ID is present.
func (r *FileRepository) Exists(id string) (bool, error) {
	_, ok, err := r.FindByID(id)
	return ok, err
}

// Update replaces an existing task, failing with TASK_NOT_FOUND when
// the ID is absent. The store is left unchanged on failure.
func (r *FileRepository) Update(t *task.Task) error {
	store, err := r.load()
	if err != nil {
		return err
	}
	if _, ok := store[t.ID]; !ok {
		return apperr.NotFound(t.ID)
	}
	store[t.ID] = t
	return r.persist(store)
}

// Count returns the number of tasks in the store.
func (r *FileRepository) Count() (int, error) {
	store, err := r.load()
	if err != nil {
		return 0, err
	}
	return len(store), nil
}

// load reads and decodes the whole store file. An absent file decodes
// to an empty store; a decode failure surfaces without touching disk.
func (r *FileRepository) load() (Store, error) {
	data, err := os.ReadFile(r.path) //nolint:gosec // store path from trusted config
	if err != nil {
		if os.IsNotExist(err) {
			return Store{}, nil
		}
		return nil, apperr.Repository("reading", r.path, err)
	}
	return r.codec.Decode(data)
}

// persist encodes the full store and hands it to the atomic writer,
// which backs up the prior content before replacing the file.
func (r *FileRepository) persist(store Store) error {
	data, err := r.codec.Encode(store)
	if err != nil {
		return err
	}
	if err := fileio.Replace(r.path, data); err != nil {
		return apperr.Repository("writing", r.path, err)
	}
	return nil
}
