package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/bracketworks/bracketboard/internal/domain/player"
	"github.com/bracketworks/bracketboard/internal/platform/id"
	"github.com/bracketworks/bracketboard/internal/platform/logging"
)

type AddPlayerInput struct {
	Tag        string
	Region     string
	ExternalID *int64
}

// PlayerService manages the player registry that the identity mapper reads.
type PlayerService struct {
	players player.Repository
	idGen   id.Generator
	logger  *logging.Logger
}

func NewPlayerService(players player.Repository, idGen id.Generator, logger *logging.Logger) *PlayerService {
	if idGen == nil {
		idGen = id.NewSlugGenerator()
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &PlayerService{
		players: players,
		idGen:   idGen,
		logger:  logger,
	}
}

// ListPlayers returns the registry sorted by tag, case-insensitively.
func (s *PlayerService) ListPlayers(ctx context.Context) ([]player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "PlayerService.ListPlayers")
	defer span.End()

	players, err := s.players.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list players: %w", err)
	}

	sort.SliceStable(players, func(i, j int) bool {
		left := strings.ToLower(players[i].Tag)
		right := strings.ToLower(players[j].Tag)
		if left != right {
			return left < right
		}
		return players[i].ID < players[j].ID
	})

	return players, nil
}

// AddPlayer registers a player, deriving a stable p_<slug> ID from the tag.
// A second registration for the same external ID is rejected; the identity
// mapper must never be fed deliberate duplicates.
func (s *PlayerService) AddPlayer(ctx context.Context, input AddPlayerInput) (player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "PlayerService.AddPlayer")
	defer span.End()

	tag := strings.TrimSpace(input.Tag)
	if tag == "" {
		return player.Player{}, fmt.Errorf("%w: player tag is required", ErrInvalidInput)
	}
	if input.ExternalID != nil && *input.ExternalID <= 0 {
		return player.Player{}, fmt.Errorf("%w: external player id must be greater than zero", ErrInvalidInput)
	}

	existing, err := s.players.List(ctx)
	if err != nil {
		return player.Player{}, fmt.Errorf("list players: %w", err)
	}

	usedIDs := make(map[string]struct{}, len(existing))
	for _, p := range existing {
		usedIDs[p.ID] = struct{}{}
		if input.ExternalID != nil && p.ExternalID != nil && *p.ExternalID == *input.ExternalID {
			return player.Player{}, fmt.Errorf("%w: external player id %d already registered as %s", ErrConflict, *input.ExternalID, p.ID)
		}
	}

	newID, err := s.idGen.NewPlayerID(tag, func(candidate string) bool {
		_, taken := usedIDs[candidate]
		return taken
	})
	if err != nil {
		return player.Player{}, fmt.Errorf("generate player id: %w", err)
	}

	record := player.Player{
		ID:         newID,
		Tag:        tag,
		Region:     strings.TrimSpace(input.Region),
		ExternalID: input.ExternalID,
	}
	if err := s.players.Insert(ctx, record); err != nil {
		return player.Player{}, fmt.Errorf("insert player: %w", err)
	}

	s.logger.InfoContext(ctx, "player registered", "player_id", record.ID, "tag", record.Tag)
	return record, nil
}
