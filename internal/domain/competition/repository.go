package competition

import "context"

// Repository describes competition persistence needs from use cases.
type Repository interface {
	GetByID(ctx context.Context, id int64) (Competition, bool, error)
	GetByKey(ctx context.Context, key Key) (Competition, bool, error)
	Create(ctx context.Context, item *Competition) error
	List(ctx context.Context) ([]Competition, error)
}
