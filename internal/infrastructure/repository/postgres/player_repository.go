package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/bracketworks/bracketboard/internal/domain/player"
	qb "github.com/bracketworks/bracketboard/internal/platform/querybuilder"
	"github.com/bracketworks/bracketboard/internal/usecase"
)

type PlayerRepository struct {
	db *sqlx.DB
}

var playerSelectColumns = []string{
	"id",
	"tag",
	"region",
	"external_player_id",
	"created_at",
}

func NewPlayerRepository(db *sqlx.DB) *PlayerRepository {
	return &PlayerRepository{db: db}
}

func (r *PlayerRepository) List(ctx context.Context) ([]player.Player, error) {
	query, args, err := qb.Select(playerSelectColumns...).From("players").
		OrderBy("created_at", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select players query: %w", err)
	}

	var rows []playerTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select players: %w", err)
	}

	out := make([]player.Player, 0, len(rows))
	for _, row := range rows {
		out = append(out, player.Player{
			ID:         row.ID,
			Tag:        row.Tag,
			Region:     row.Region,
			ExternalID: nullInt64ToPtr(row.ExternalID),
		})
	}

	return out, nil
}

func (r *PlayerRepository) Insert(ctx context.Context, p player.Player) error {
	if err := p.Validate(); err != nil {
		return err
	}

	model := playerTableModel{
		ID:         p.ID,
		Tag:        p.Tag,
		Region:     p.Region,
		ExternalID: ptrToNullInt64(p.ExternalID),
		CreatedAt:  time.Now().UTC(),
	}

	query, args, err := qb.InsertModel("players", model, "")
	if err != nil {
		return fmt.Errorf("build insert player query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		// The unique constraints back up the service-level duplicate check
		// for concurrent inserts.
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return fmt.Errorf("%w: player %s already exists", usecase.ErrConflict, p.ID)
		}
		return fmt.Errorf("insert player: %w", err)
	}

	return nil
}

func nullInt64ToPtr(value sql.NullInt64) *int64 {
	if !value.Valid {
		return nil
	}
	out := value.Int64
	return &out
}

func ptrToNullInt64(value *int64) sql.NullInt64 {
	if value == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *value, Valid: true}
}

var _ player.Repository = (*PlayerRepository)(nil)
