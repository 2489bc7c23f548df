package storage

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/taskdeck/taskdeck/internal/apperr"
	"github.com/taskdeck/taskdeck/internal/task"
)

// jsonCodec stores tasks as a single JSON object keyed by task ID.
type jsonCodec struct{}

// jsonTask is the on-disk record shape. Description and UpdatedAt are
// encoded as null when absent rather than omitted.
type jsonTask struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description *string    `json:"description"`
	Completed   bool       `json:"completed"`
	Priority    string     `json:"priority"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at"`
}

func (jsonCodec) Name() string      { return "json" }
func (jsonCodec) Extension() string { return ".json" }

func (jsonCodec) Decode(data []byte) (Store, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return Store{}, nil
	}

	var records map[string]jsonTask
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, apperr.Wrap(apperr.RepositoryError, err, "parsing JSON store")
	}

	store := make(Store, len(records))
	for id, rec := range records {
		t := &task.Task{
			ID:        rec.ID,
			Title:     rec.Title,
			Completed: rec.Completed,
			Priority:  task.Priority(rec.Priority),
			CreatedAt: rec.CreatedAt,
			UpdatedAt: rec.UpdatedAt,
		}
		if rec.Description != nil {
			t.Description = *rec.Description
		}
		store[id] = t
	}
	return store, nil
}

func (jsonCodec) Encode(store Store) ([]byte, error) {
	records := make(map[string]jsonTask, len(store))
	for id, t := range store {
		rec := jsonTask{
			ID:        t.ID,
			Title:     t.Title,
			Completed: t.Completed,
			Priority:  t.Priority.String(),
			CreatedAt: t.CreatedAt,
			UpdatedAt: t.UpdatedAt,
		}
		if t.Description != "" {
			desc := t.Description
			rec.Description = &desc
		}
		records[id] = rec
	}

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return nil, apperr.Wrap(apperr.RepositoryError, err, "encoding JSON store")
	}
	return append(data, '\n'), nil
}
