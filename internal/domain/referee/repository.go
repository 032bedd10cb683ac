package referee

import "context"

type Repository interface {
	GetByExternalID(ctx context.Context, externalID int64) (Referee, bool, error)
	Create(ctx context.Context, item *Referee) error
}
