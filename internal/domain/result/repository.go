package result

import "context"

// Repository describes result persistence needs from use cases. Writes are
// durable before the calls return.
type Repository interface {
	List(ctx context.Context) ([]Result, error)
	// Append stores incoming results, silently skipping any whose
	// (PlayerID, EventID) key already exists. Returns how many were added.
	Append(ctx context.Context, incoming []Result) (appended int, err error)
	// ReplaceForEvent atomically removes every result for eventID and then
	// appends incoming with the same dedupe rule as Append.
	ReplaceForEvent(ctx context.Context, eventID string, incoming []Result) (removed int, appended int, err error)
}
