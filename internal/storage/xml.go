package storage

import (
	"bytes"
	"encoding/xml"
	"time"

	"github.com/taskdeck/taskdeck/internal/apperr"
	"github.com/taskdeck/taskdeck/internal/task"
)

// xmlCodec stores tasks as a <tasks> root with one <task> child per
// record. The ID rides as an attribute, booleans serialize lowercase,
// and optional fields are omitted when absent.
type xmlCodec struct{}

type xmlStore struct {
	XMLName xml.Name  `xml:"tasks"`
	Tasks   []xmlTask `xml:"task"`
}

type xmlTask struct {
	ID          string  `xml:"id,attr"`
	Title       string  `xml:"title"`
	Description *string `xml:"description,omitempty"`
	Completed   bool    `xml:"completed"`
	Priority    string  `xml:"priority"`
	CreatedAt   string  `xml:"created_at"`
	UpdatedAt   *string `xml:"updated_at,omitempty"`
}

func (xmlCodec) Name() string      { return "xml" }
func (xmlCodec) Extension() string { return ".xml" }

func (xmlCodec) Decode(data []byte) (Store, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return Store{}, nil
	}

	var doc xmlStore
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, apperr.Wrap(apperr.RepositoryError, err, "parsing XML store")
	}

	store := make(Store, len(doc.Tasks))
	for _, rec := range doc.Tasks {
		created, err := time.Parse(time.RFC3339Nano, rec.CreatedAt)
		if err != nil {
			return nil, apperr.Wrap(apperr.RepositoryError, err, "parsing created_at for task %s", rec.ID)
		}

		t := &task.Task{
			ID:        rec.ID,
			Title:     rec.Title,
			Completed: rec.Completed,
			Priority:  task.Priority(rec.Priority),
			CreatedAt: created,
		}
		if rec.Description != nil {
			t.Description = *rec.Description
		}
		if rec.UpdatedAt != nil {
			updated, err := time.Parse(time.RFC3339Nano, *rec.UpdatedAt)
			if err != nil {
				return nil, apperr.Wrap(apperr.RepositoryError, err, "parsing updated_at for task %s", rec.ID)
			}
			t.UpdatedAt = &updated
		}
		store[t.ID] = t
	}
	return store, nil
}

func (xmlCodec) Encode(store Store) ([]byte, error) {
	doc := xmlStore{Tasks: make([]xmlTask, 0, len(store))}
	for _, t := range store {
		rec := xmlTask{
			ID:        t.ID,
			Title:     t.Title,
			Completed: t.Completed,
			Priority:  t.Priority.String(),
			CreatedAt: t.CreatedAt.Format(time.RFC3339Nano),
		}
		if t.Description != "" {
			desc := t.Description
			rec.Description = &desc
		}
		if t.UpdatedAt != nil {
			updated := t.UpdatedAt.Format(time.RFC3339Nano)
			rec.UpdatedAt = &updated
		}
		doc.Tasks = append(doc.Tasks, rec)
	}

	body, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, apperr.Wrap(apperr.RepositoryError, err, "encoding XML store")
	}

	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	buf.Write(body)
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}
