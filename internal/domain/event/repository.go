package event

import "context"

// Repository describes event registry persistence needs from use cases.
type Repository interface {
	List(ctx context.Context) ([]Event, error)
	// Upsert inserts or replaces the event by ID and reports whether a new
	// record was created.
	Upsert(ctx context.Context, e Event) (created bool, err error)
}
