package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/bracketworks/bracketboard/internal/domain/result"
	qb "github.com/bracketworks/bracketboard/internal/platform/querybuilder"
)

type ResultRepository struct {
	db *sqlx.DB
}

var resultSelectColumns = []string{
	"player_id",
	"event_id",
	"placement",
	"created_at",
}

func NewResultRepository(db *sqlx.DB) *ResultRepository {
	return &ResultRepository{db: db}
}

func (r *ResultRepository) List(ctx context.Context) ([]result.Result, error) {
	query, args, err := qb.Select(resultSelectColumns...).From("results").
		OrderBy("created_at", "player_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select results query: %w", err)
	}

	var rows []resultTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select results: %w", err)
	}

	out := make([]result.Result, 0, len(rows))
	for _, row := range rows {
		out = append(out, result.Result{
			PlayerID:  row.PlayerID,
			EventID:   row.EventID,
			Placement: row.Placement,
		})
	}

	return out, nil
}

func (r *ResultRepository) Append(ctx context.Context, incoming []result.Result) (int, error) {
	if len(incoming) == 0 {
		return 0, nil
	}

	query, args, err := buildResultInsert(incoming)
	if err != nil {
		return 0, err
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("insert results: %w", err)
	}
	appended, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("count inserted results: %w", err)
	}

	return int(appended), nil
}

func (r *ResultRepository) ReplaceForEvent(ctx context.Context, eventID string, incoming []result.Result) (int, int, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, 0, fmt.Errorf("begin replace results tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	deleteQuery, deleteArgs, err := qb.DeleteFrom("results").
		Where(qb.Eq("event_id", eventID)).
		ToSQL()
	if err != nil {
		return 0, 0, fmt.Errorf("build delete results query: %w", err)
	}

	res, err := tx.ExecContext(ctx, deleteQuery, deleteArgs...)
	if err != nil {
		return 0, 0, fmt.Errorf("delete results for event: %w", err)
	}
	removed, err := res.RowsAffected()
	if err != nil {
		return 0, 0, fmt.Errorf("count deleted results: %w", err)
	}

	var appended int64
	if len(incoming) > 0 {
		insertQuery, insertArgs, err := buildResultInsert(incoming)
		if err != nil {
			return 0, 0, err
		}
		res, err := tx.ExecContext(ctx, insertQuery, insertArgs...)
		if err != nil {
			return 0, 0, fmt.Errorf("insert replacement results: %w", err)
		}
		if appended, err = res.RowsAffected(); err != nil {
			return 0, 0, fmt.Errorf("count replacement results: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, 0, fmt.Errorf("commit replace results tx: %w", err)
	}

	return int(removed), int(appended), nil
}

func buildResultInsert(incoming []result.Result) (string, []any, error) {
	now := time.Now().UTC()
	builder := qb.InsertInto("results").
		Columns("player_id", "event_id", "placement", "created_at")
	for _, item := range incoming {
		builder.Values(item.PlayerID, item.EventID, item.Placement, now)
	}
	builder.Suffix("ON CONFLICT (player_id, event_id) DO NOTHING")

	query, args, err := builder.ToSQL()
	if err != nil {
		return "", nil, fmt.Errorf("build insert results query: %w", err)
	}

	return query, args, nil
}

var _ result.Repository = (*ResultRepository)(nil)
