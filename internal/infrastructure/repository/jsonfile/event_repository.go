package jsonfile

import (
	"context"
	"path/filepath"
	"sync"

	"github.com/bracketworks/bracketboard/internal/domain/event"
)

type eventRecord struct {
	ID     string `json:"id"`
	Name   string `json:"name,omitempty"`
	Slug   string `json:"slug"`
	Season int    `json:"season"`
	Tier   string `json:"tier,omitempty"`
}

type EventRepository struct {
	mu   sync.Mutex
	path string
}

func NewEventRepository(dataDir string) *EventRepository {
	return &EventRepository{path: filepath.Join(dataDir, "events.json")}
}

func (r *EventRepository) List(_ context.Context) ([]event.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	records, err := readCollection[eventRecord](r.path)
	if err != nil {
		return nil, err
	}

	out := make([]event.Event, 0, len(records))
	for _, rec := range records {
		out = append(out, event.Event{
			ID:     rec.ID,
			Name:   rec.Name,
			Slug:   rec.Slug,
			Season: rec.Season,
			Tier:   rec.Tier,
		})
	}

	return out, nil
}

func (r *EventRepository) Upsert(_ context.Context, e event.Event) (bool, error) {
	if err := e.Validate(); err != nil {
		return false, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	records, err := readCollection[eventRecord](r.path)
	if err != nil {
		return false, err
	}

	rec := eventRecord{
		ID:     e.ID,
		Name:   e.Name,
		Slug:   e.Slug,
		Season: e.Season,
		Tier:   e.Tier,
	}

	created := true
	for i := range records {
		if records[i].ID == e.ID {
			records[i] = rec
			created = false
			break
		}
	}
	if created {
		records = append(records, rec)
	}

	if err := writeCollection(r.path, records); err != nil {
		return false, err
	}

	return created, nil
}

var _ event.Repository = (*EventRepository)(nil)
