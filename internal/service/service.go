// Package service exposes the task use cases the interface layer calls.
// It composes entity construction and mutation with the repository and
// adds no error kinds of its own.
package service

import (
	"sort"
	"strings"

	"github.com/taskdeck/taskdeck/internal/apperr"
	"github.com/taskdeck/taskdeck/internal/task"
)

// Service wraps a repository with task use-case operations.
type Service struct {
	repo task.Repository
}

// New creates a Service over the given repository.
func New(repo task.Repository) *Service {
	return &Service{repo: repo}
}

// UpdateRequest carries a partial update: only non-nil fields are applied.
type UpdateRequest struct {
	Title       *string
	Description *string
	Priority    *task.Priority
	Completed   *bool
}

// Empty reports whether the request changes nothing.
func (u UpdateRequest) Empty() bool {
	return u.Title == nil && u.Description == nil && u.Priority == nil && u.Completed == nil
}

// Create validates and persists a new task.
func (s *Service) Create(title, description string, priority task.Priority) (*task.Task, error) {
	t, err := task.New(title, description, priority)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Save(t); err != nil {
		return nil, err
	}
	return t, nil
}

// Get returns the task with the given ID, failing with TASK_NOT_FOUND
// when absent.
func (s *Service) Get(id string) (*task.Task, error) {
	t, ok, err := s.repo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperr.NotFound(id)
	}
	return t, nil
}

// ListResult bundles listed tasks with their completion counts.
type ListResult struct {
	Tasks     []*task.Task `json:"tasks"`
	Total     int          `json:"total"`
	Completed int          `json:"completed"`
	Pending   int          `json:"pending"`
}

// NewListResult computes the counts over the given tasks.
func NewListResult(tasks []*task.Task) ListResult {
	res := ListResult{Tasks: tasks, Total: len(tasks)}
	for _, t := range tasks {
		if t.Completed {
			res.Completed++
		} else {
			res.Pending++
		}
	}
	return res
}

// List returns all tasks ordered by creation time (ties broken by ID)
// so display order is stable across encodings, together with
// total/completed/pending counts.
func (s *Service) List() (ListResult, error) {
	tasks, err := s.repo.FindAll()
	if err != nil {
		return ListResult{}, err
	}
	sortTasks(tasks)
	return NewListResult(tasks), nil
}

// Update applies a partial update to an existing task. Validation runs
// before anything is persisted, so a failed field leaves the store
// unchanged.
func (s *Service) Update(id string, req UpdateRequest) (*task.Task, error) {
	if req.Empty() {
		return nil, apperr.New(apperr.InvalidInput, "no changes specified")
	}

	t, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		if err := t.UpdateTitle(*req.Title); err != nil {
			return nil, err
		}
	}
	if req.Description != nil {
		if err := t.UpdateDescription(*req.Description); err != nil {
			return nil, err
		}
	}
	if req.Priority != nil {
		if err := t.UpdatePriority(*req.Priority); err != nil {
			return nil, err
		}
	}
	if req.Completed != nil {
		if *req.Completed {
			t.MarkCompleted()
		} else {
			t.MarkIncomplete()
		}
	}

	if err := s.repo.Update(t); err != nil {
		return nil, err
	}
	return t, nil
}

// Delete removes a task. Returns false (no error) for a missing ID.
func (s *Service) Delete(id string) (bool, error) {
	return s.repo.Delete(id)
}

// Toggle flips the completion state of a task.
func (s *Service) Toggle(id string) (*task.Task, error) {
	t, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	if t.Completed {
		t.MarkIncomplete()
	} else {
		t.MarkCompleted()
	}

	if err := s.repo.Update(t); err != nil {
		return nil, err
	}
	return t, nil
}

// ByStatus returns tasks filtered by completion state.
func (s *Service) ByStatus(completed bool) ([]*task.Task, error) {
	res, err := s.List()
	if err != nil {
		return nil, err
	}
	var result []*task.Task
	for _, t := range res.Tasks {
		if t.Completed == completed {
			result = append(result, t)
		}
	}
	return result, nil
}

// ByPriority returns tasks filtered by priority level.
func (s *Service) ByPriority(p task.Priority) ([]*task.Task, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	res, err := s.List()
	if err != nil {
		return nil, err
	}
	var result []*task.Task
	for _, t := range res.Tasks {
		if t.Priority == p {
			result = append(result, t)
		}
	}
	return result, nil
}

// ResolveID expands a task ID prefix into the full ID. Exact matches
// win; otherwise the prefix must match exactly one task.
func (s *Service) ResolveID(prefix string) (string, error) {
	if prefix == "" {
		return "", apperr.New(apperr.InvalidInput, "task ID is required")
	}

	ok, err := s.repo.Exists(prefix)
	if err != nil {
		return "", err
	}
	if ok {
		return prefix, nil
	}

	tasks, err := s.repo.FindAll()
	if err != nil {
		return "", err
	}

	var matches []string
	for _, t := range tasks {
		if strings.HasPrefix(t.ID, prefix) {
			matches = append(matches, t.ID)
		}
	}

	switch len(matches) {
	case 0:
		return "", apperr.NotFound(prefix)
	case 1:
		return matches[0], nil
	default:
		return "", apperr.Newf(apperr.AmbiguousID,
			"task ID prefix %q matches %d tasks; provide more characters",
			prefix, len(matches)).
			WithDetails(map[string]any{"prefix": prefix, "matches": len(matches)})
	}
}

func sortTasks(tasks []*task.Task) {
	sort.Slice(tasks, func(i, j int) bool {
		if tasks[i].CreatedAt.Equal(tasks[j].CreatedAt) {
			return tasks[i].ID < tasks[j].ID
		}
		return tasks[i].CreatedAt.Before(tasks[j].CreatedAt)
	})
}
