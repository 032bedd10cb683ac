package cache

import (
	"context"
	"slices"
	"strconv"
	"strings"

	"github.com/riskibarqy/league-sync/internal/domain/competition"
	"github.com/riskibarqy/league-sync/internal/domain/player"
	"github.com/riskibarqy/league-sync/internal/domain/team"
	basecache "github.com/riskibarqy/league-sync/internal/platform/cache"
	"github.com/riskibarqy/league-sync/internal/usecase"
)

// keyPrefix sits under the read prefix so the post-sync invalidation drops
// repository entries together with computed tables.
const keyPrefix = usecase.ReadCachePrefix + "repo:"

// WrapReadRepositories decorates the lookups the query services repeat on
// every request. Matches and events are left uncached; the computed tables
// built from them are cached one level up.
func WrapReadRepositories(repos usecase.ReadRepositories, store *basecache.Store) usecase.ReadRepositories {
	if store == nil {
		return repos
	}
	repos.Competitions = NewCompetitionRepository(repos.Competitions, store)
	repos.Teams = NewTeamRepository(repos.Teams, store)
	repos.Players = NewPlayerRepository(repos.Players, store)
	return repos
}

type found[T any] struct {
	value  T
	exists bool
}

type CompetitionRepository struct {
	competition.Repository
	cache *basecache.Store
}

func NewCompetitionRepository(next competition.Repository, cache *basecache.Store) *CompetitionRepository {
	return &CompetitionRepository{Repository: next, cache: cache}
}

func (r *CompetitionRepository) List(ctx context.Context) ([]competition.Competition, error) {
	items, err := basecache.GetOrLoad(ctx, r.cache, keyPrefix+"competition:list", r.Repository.List)
	if err != nil {
		return nil, err
	}
	return slices.Clone(items), nil
}

func (r *CompetitionRepository) GetByID(ctx context.Context, id int64) (competition.Competition, bool, error) {
	key := keyPrefix + "competition:id:" + strconv.FormatInt(id, 10)
	cached, err := basecache.GetOrLoad(ctx, r.cache, key, func(ctx context.Context) (found[competition.Competition], error) {
		item, exists, err := r.Repository.GetByID(ctx, id)
		return found[competition.Competition]{value: item, exists: exists}, err
	})
	if err != nil {
		return competition.Competition{}, false, err
	}
	return cached.value, cached.exists, nil
}

type TeamRepository struct {
	team.Repository
	cache *basecache.Store
}

func NewTeamRepository(next team.Repository, cache *basecache.Store) *TeamRepository {
	return &TeamRepository{Repository: next, cache: cache}
}

func (r *TeamRepository) ListByIDs(ctx context.Context, ids []int64) ([]team.Team, error) {
	key := keyPrefix + "team:ids:" + idsKey(ids)
	items, err := basecache.GetOrLoad(ctx, r.cache, key, func(ctx context.Context) ([]team.Team, error) {
		return r.Repository.ListByIDs(ctx, ids)
	})
	if err != nil {
		return nil, err
	}
	return slices.Clone(items), nil
}

type PlayerRepository struct {
	player.Repository
	cache *basecache.Store
}

func NewPlayerRepository(next player.Repository, cache *basecache.Store) *PlayerRepository {
	return &PlayerRepository{Repository: next, cache: cache}
}

func (r *PlayerRepository) GetByID(ctx context.Context, id int64) (player.Player, bool, error) {
	key := keyPrefix + "player:id:" + strconv.FormatInt(id, 10)
	cached, err := basecache.GetOrLoad(ctx, r.cache, key, func(ctx context.Context) (found[player.Player], error) {
		item, exists, err := r.Repository.GetByID(ctx, id)
		return found[player.Player]{value: item, exists: exists}, err
	})
	if err != nil {
		return player.Player{}, false, err
	}
	return cached.value, cached.exists, nil
}

// idsKey is order-insensitive and ignores duplicates.
func idsKey(ids []int64) string {
	sorted := slices.Clone(ids)
	slices.Sort(sorted)
	sorted = slices.Compact(sorted)

	parts := make([]string, 0, len(sorted))
	for _, id := range sorted {
		parts = append(parts, strconv.FormatInt(id, 10))
	}
	return strings.Join(parts, ",")
}
