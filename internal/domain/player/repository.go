package player

import "context"

// Repository describes player persistence needs from use cases.
type Repository interface {
	GetByID(ctx context.Context, id int64) (Player, bool, error)
	GetByExternalID(ctx context.Context, externalID int64) (Player, bool, error)
	Create(ctx context.Context, item *Player) error
	ListByIDs(ctx context.Context, ids []int64) ([]Player, error)
}
