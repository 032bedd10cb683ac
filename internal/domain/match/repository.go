package match

import "context"

// Repository describes match persistence needs from use cases.
type Repository interface {
	GetByID(ctx context.Context, id int64) (Match, bool, error)
	GetByExternalID(ctx context.Context, externalID int64) (Match, bool, error)
	Create(ctx context.Context, item *Match) error
	UpdateZone(ctx context.Context, id int64, zone string) error
	UpdateResult(ctx context.Context, id int64, result Result) error
	ListByCompetition(ctx context.Context, competitionID int64) ([]Match, error)
	ListByIDs(ctx context.Context, ids []int64) ([]Match, error)
	// ListZones returns distinct zone labels of a competition, the
	// interzonal sentinel excluded, sorted ascending.
	ListZones(ctx context.Context, competitionID int64) ([]string, error)
}
