package player

import "context"

// Repository describes player catalog reads needed by use cases.
type Repository interface {
	List(ctx context.Context, filter Filter) ([]Player, error)
	GetBySlug(ctx context.Context, slug string) (Player, bool, error)
}
