package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/riskibarqy/league-sync/internal/domain/competition"
	"github.com/riskibarqy/league-sync/internal/domain/player"
	"github.com/riskibarqy/league-sync/internal/domain/team"
	competitionmock "github.com/riskibarqy/league-sync/internal/mocks/domain/competition"
	playermock "github.com/riskibarqy/league-sync/internal/mocks/domain/player"
	teammock "github.com/riskibarqy/league-sync/internal/mocks/domain/team"
	basecache "github.com/riskibarqy/league-sync/internal/platform/cache"
	"github.com/riskibarqy/league-sync/internal/usecase"
)

func TestCompetitionRepository_CachesUntilInvalidated(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := basecache.NewStore(time.Minute)
	next := competitionmock.NewRepository(t)
	next.On("List", mock.Anything).Return([]competition.Competition{{ID: 1, Name: "Liga", Season: "2025"}}, nil).Twice()
	next.On("GetByID", mock.Anything, int64(9)).Return(competition.Competition{}, false, nil).Once()

	repo := NewCompetitionRepository(next, store)
	for range 2 {
		items, err := repo.List(ctx)
		if err != nil || len(items) != 1 {
			t.Fatalf("unexpected list result: %v %v", items, err)
		}
		items[0].Name = "mutated"
		if _, exists, err := repo.GetByID(ctx, 9); err != nil || exists {
			t.Fatalf("expected cached miss, got exists=%t err=%v", exists, err)
		}
	}

	if removed := store.DeletePrefix(ctx, usecase.ReadCachePrefix); removed != 2 {
		t.Fatalf("expected 2 entries under the read prefix, got %d", removed)
	}
	items, err := repo.List(ctx)
	if err != nil || items[0].Name != "Liga" {
		t.Fatalf("expected a fresh load after invalidation: %v %v", items, err)
	}
}

func TestTeamRepository_KeyIgnoresOrder(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	next := teammock.NewRepository(t)
	next.On("ListByIDs", mock.Anything, []int64{3, 1}).Return([]team.Team{{ID: 1}, {ID: 3}}, nil).Once()

	repo := NewTeamRepository(next, basecache.NewStore(time.Minute))
	if _, err := repo.ListByIDs(ctx, []int64{3, 1}); err != nil {
		t.Fatalf("list teams: %v", err)
	}
	items, err := repo.ListByIDs(ctx, []int64{1, 3, 3})
	if err != nil || len(items) != 2 {
		t.Fatalf("expected cached teams, got %v %v", items, err)
	}
}

func TestWrapReadRepositories(t *testing.T) {
	t.Parallel()

	players := playermock.NewRepository(t)
	players.On("GetByID", mock.Anything, int64(5)).Return(player.Player{ID: 5, Name: "Ana"}, true, nil).Once()

	repos := usecase.ReadRepositories{Players: players}
	if got := WrapReadRepositories(repos, nil); got.Players != players {
		t.Fatalf("nil store must leave repositories untouched")
	}

	wrapped := WrapReadRepositories(repos, basecache.NewStore(time.Minute))
	for range 3 {
		item, exists, err := wrapped.Players.GetByID(context.Background(), 5)
		if err != nil || !exists || item.Name != "Ana" {
			t.Fatalf("unexpected player lookup: %+v %t %v", item, exists, err)
		}
	}
}

func TestIDsKey(t *testing.T) {
	t.Parallel()

	if got := idsKey([]int64{9, 2, 9, 4}); got != "2,4,9" {
		t.Fatalf("unexpected key: %q", got)
	}
	if got := idsKey(nil); got != "" {
		t.Fatalf("unexpected empty key: %q", got)
	}
}
