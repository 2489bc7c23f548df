// Package task defines the task entity, its invariants, and the
// repository contract that storage backends implement.
package task

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/taskdeck/taskdeck/internal/apperr"
)

// Field length bounds, counted in characters after trimming.
const (
	MaxTitleLen       = 200
	MaxDescriptionLen = 1000
)

// Task represents a single tracked task. The JSON tags serve CLI output
// only; the on-disk encoding is owned by the storage codecs.
type Task struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Completed   bool       `json:"completed"`
	Priority    Priority   `json:"priority"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty"`
}

// New constructs a Task with a generated ID and creation timestamp.
// An empty priority falls back to PriorityMedium.
func New(title, description string, priority Priority) (*Task, error) {
	if priority == "" {
		priority = PriorityMedium
	}

	title, err := validateTitle(title)
	if err != nil {
		return nil, err
	}
	if err := validateDescription(description); err != nil {
		return nil, err
	}
	if err := priority.Validate(); err != nil {
		return nil, err
	}

	return &Task{
		ID:          uuid.NewString(),
		Title:       title,
		Description: description,
		Priority:    priority,
		CreatedAt:   time.Now(),
	}, nil
}

// MarkCompleted sets the completed flag and stamps UpdatedAt.
func (t *Task) MarkCompleted() {
	t.Completed = true
	t.touch()
}

// MarkIncomplete clears the completed flag and stamps UpdatedAt.
func (t *Task) MarkIncomplete() {
	t.Completed = false
	t.touch()
}

// UpdateTitle validates and replaces the title. The task is left
// unchanged when validation fails.
func (t *Task) UpdateTitle(title string) error {
	title, err := validateTitle(title)
	if err != nil {
		return err
	}
	t.Title = title
	t.touch()
	return nil
}

// UpdateDescription validates and replaces the description.
func (t *Task) UpdateDescription(description string) error {
	if err := validateDescription(description); err != nil {
		return err
	}
	t.Description = description
	t.touch()
	return nil
}

// UpdatePriority validates and replaces the priority.
func (t *Task) UpdatePriority(priority Priority) error {
	if err := priority.Validate(); err != nil {
		return err
	}
	t.Priority = priority
	t.touch()
	return nil
}

func (t *Task) touch() {
	now := time.Now()
	t.UpdatedAt = &now
}

// validateTitle trims surrounding whitespace and enforces the 1–200
// character bound. Returns the trimmed title.
func validateTitle(title string) (string, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return "", apperr.Validation("title", "title cannot be empty or whitespace")
	}
	if utf8.RuneCountInString(title) > MaxTitleLen {
		return "", apperr.Validation("title",
			fmt.Sprintf("title exceeds maximum length of %d characters", MaxTitleLen))
	}
	return title, nil
}

func validateDescription(description string) error {
	if utf8.RuneCountInString(description) > MaxDescriptionLen {
		return apperr.Validation("description",
			fmt.Sprintf("description exceeds maximum length of %d characters", MaxDescriptionLen))
	}
	return nil
}
