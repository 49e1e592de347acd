package jsonfile

import (
	"context"
	"path/filepath"
	"sync"

	"github.com/bracketworks/bracketboard/internal/domain/player"
)

type playerRecord struct {
	ID         string `json:"id"`
	Tag        string `json:"tag"`
	Region     string `json:"region,omitempty"`
	ExternalID *int64 `json:"externalPlayerId,omitempty"`
}

type PlayerRepository struct {
	mu   sync.Mutex
	path string
}

func NewPlayerRepository(dataDir string) *PlayerRepository {
	return &PlayerRepository{path: filepath.Join(dataDir, "players.json")}
}

func (r *PlayerRepository) List(_ context.Context) ([]player.Player, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	records, err := readCollection[playerRecord](r.path)
	if err != nil {
		return nil, err
	}

	out := make([]player.Player, 0, len(records))
	for _, rec := range records {
		out = append(out, player.Player{
			ID:         rec.ID,
			Tag:        rec.Tag,
			Region:     rec.Region,
			ExternalID: rec.ExternalID,
		})
	}

	return out, nil
}

func (r *PlayerRepository) Insert(_ context.Context, p player.Player) error {
	if err := p.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	records, err := readCollection[playerRecord](r.path)
	if err != nil {
		return err
	}

	records = append(records, playerRecord{
		ID:         p.ID,
		Tag:        p.Tag,
		Region:     p.Region,
		ExternalID: p.ExternalID,
	})

	return writeCollection(r.path, records)
}

var _ player.Repository = (*PlayerRepository)(nil)
