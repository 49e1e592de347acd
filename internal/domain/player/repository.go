package player

import "context"

// Repository describes player registry persistence needs from use cases.
type Repository interface {
	List(ctx context.Context) ([]Player, error)
	Insert(ctx context.Context, p Player) error
}
