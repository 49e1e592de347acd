package postgres

import (
	"database/sql"
	"time"
)

type playerTableModel struct {
	ID         string        `db:"id"`
	Tag        string        `db:"tag"`
	Region     string        `db:"region"`
	ExternalID sql.NullInt64 `db:"external_player_id"`
	CreatedAt  time.Time     `db:"created_at"`
}

type eventTableModel struct {
	ID        string    `db:"id"`
	Name      string    `db:"name"`
	Slug      string    `db:"slug"`
	Season    int       `db:"season"`
	Tier      string    `db:"tier"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

type resultTableModel struct {
	PlayerID  string    `db:"player_id"`
	EventID   string    `db:"event_id"`
	Placement int       `db:"placement"`
	CreatedAt time.Time `db:"created_at"`
}
