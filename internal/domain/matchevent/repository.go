package matchevent

import "context"

// Repository describes event persistence needs from use cases.
type Repository interface {
	GetByNaturalKey(ctx context.Context, key NaturalKey) (Event, bool, error)
	Create(ctx context.Context, item *Event) error
	UpdateHomeFlag(ctx context.Context, id int64, isHome bool) error
	ListByMatch(ctx context.Context, matchID int64) ([]Event, error)
	ListByMatches(ctx context.Context, matchIDs []int64) ([]Event, error)
	ListByPlayer(ctx context.Context, playerID int64) ([]Event, error)
	// ListMatchIDsByKinds returns distinct match ids having an event whose
	// normalized kind is in kinds.
	ListMatchIDsByKinds(ctx context.Context, kinds []string) ([]int64, error)
}
