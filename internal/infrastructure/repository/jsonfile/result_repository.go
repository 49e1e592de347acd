package jsonfile

import (
	"context"
	"path/filepath"
	"sync"

	"github.com/bracketworks/bracketboard/internal/domain/result"
)

type resultRecord struct {
	PlayerID  string `json:"playerId"`
	EventID   string `json:"eventId"`
	Placement int    `json:"placement"`
}

type ResultRepository struct {
	mu   sync.Mutex
	path string
}

func NewResultRepository(dataDir string) *ResultRepository {
	return &ResultRepository{path: filepath.Join(dataDir, "results.json")}
}

func (r *ResultRepository) List(_ context.Context) ([]result.Result, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	records, err := r.load()
	if err != nil {
		return nil, err
	}

	return records, nil
}

func (r *ResultRepository) Append(_ context.Context, incoming []result.Result) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, err := r.load()
	if err != nil {
		return 0, err
	}

	merged, appended := result.MergeAppend(existing, incoming)
	if appended == 0 {
		return 0, nil
	}
	if err := r.save(merged); err != nil {
		return 0, err
	}

	return appended, nil
}

func (r *ResultRepository) ReplaceForEvent(_ context.Context, eventID string, incoming []result.Result) (int, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, err := r.load()
	if err != nil {
		return 0, 0, err
	}

	kept, removed := result.DropEvent(existing, eventID)
	merged, appended := result.MergeAppend(kept, incoming)

	// Single write keeps delete-then-append atomic on disk.
	if err := r.save(merged); err != nil {
		return 0, 0, err
	}

	return removed, appended, nil
}

func (r *ResultRepository) load() ([]result.Result, error) {
	records, err := readCollection[resultRecord](r.path)
	if err != nil {
		return nil, err
	}

	out := make([]result.Result, 0, len(records))
	for _, rec := range records {
		out = append(out, result.Result{
			PlayerID:  rec.PlayerID,
			EventID:   rec.EventID,
			Placement: rec.Placement,
		})
	}

	return out, nil
}

func (r *ResultRepository) save(results []result.Result) error {
	records := make([]resultRecord, 0, len(results))
	for _, item := range results {
		records = append(records, resultRecord{
			PlayerID:  item.PlayerID,
			EventID:   item.EventID,
			Placement: item.Placement,
		})
	}

	return writeCollection(r.path, records)
}

var _ result.Repository = (*ResultRepository)(nil)
