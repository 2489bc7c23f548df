package task

// Repository is the polymorphic storage contract. Backends surface
// apperr.RepositoryError for I/O or decode failures and never leak
// storage-specific error types.
type Repository interface {
	// Save upserts a task by ID.
	Save(t *Task) error

	// FindByID returns the task and true when present, nil and false
	// when absent. Absence is not an error.
	FindByID(id string) (*Task, bool, error)

	// FindAll returns every task in the store. Order is not guaranteed
	// to be stable across encodings.
	FindAll() ([]*Task, error)

	// Delete removes a task by ID. Returns true if a task was removed;
	// deleting a missing ID returns false without error.
	Delete(id string) (bool, error)

	// Exists reports whether a task with the given ID is present.
	Exists(id string) (bool, error)

	// Update replaces an existing task, failing with TASK_NOT_FOUND
	// when the ID is absent from the store.
	Update(t *Task) error

	// Count returns the number of tasks in the store.
	Count() (int, error)
}
