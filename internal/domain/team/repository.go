package team

import "context"

// Repository describes team persistence needs from use cases.
type Repository interface {
	GetByExternalID(ctx context.Context, externalID int64) (Team, bool, error)
	Create(ctx context.Context, item *Team) error
	ListByIDs(ctx context.Context, ids []int64) ([]Team, error)
}
