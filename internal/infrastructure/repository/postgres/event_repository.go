package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/bracketworks/bracketboard/internal/domain/event"
	qb "github.com/bracketworks/bracketboard/internal/platform/querybuilder"
)

type EventRepository struct {
	db *sqlx.DB
}

var eventSelectColumns = []string{
	"id",
	"name",
	"slug",
	"season",
	"tier",
	"created_at",
	"updated_at",
}

func NewEventRepository(db *sqlx.DB) *EventRepository {
	return &EventRepository{db: db}
}

func (r *EventRepository) List(ctx context.Context) ([]event.Event, error) {
	query, args, err := qb.Select(eventSelectColumns...).From("events").
		OrderBy("season", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select events query: %w", err)
	}

	var rows []eventTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select events: %w", err)
	}

	out := make([]event.Event, 0, len(rows))
	for _, row := range rows {
		out = append(out, event.Event{
			ID:     row.ID,
			Name:   row.Name,
			Slug:   row.Slug,
			Season: row.Season,
			Tier:   row.Tier,
		})
	}

	return out, nil
}

func (r *EventRepository) Upsert(ctx context.Context, e event.Event) (bool, error) {
	if err := e.Validate(); err != nil {
		return false, err
	}

	now := time.Now().UTC()
	model := eventTableModel{
		ID:        e.ID,
		Name:      e.Name,
		Slug:      e.Slug,
		Season:    e.Season,
		Tier:      e.Tier,
		CreatedAt: now,
		UpdatedAt: now,
	}

	// xmax = 0 only holds for freshly inserted rows, which distinguishes
	// insert from conflict-update in one round trip.
	suffix := "ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name, slug = EXCLUDED.slug, season = EXCLUDED.season, tier = EXCLUDED.tier, updated_at = EXCLUDED.updated_at RETURNING (xmax = 0) AS created"
	query, args, err := qb.InsertModel("events", model, suffix)
	if err != nil {
		return false, fmt.Errorf("build upsert event query: %w", err)
	}

	var created bool
	if err := r.db.GetContext(ctx, &created, query, args...); err != nil {
		return false, fmt.Errorf("upsert event: %w", err)
	}

	return created, nil
}

var _ event.Repository = (*EventRepository)(nil)
