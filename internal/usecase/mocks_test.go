package usecase

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/stretchr/testify/mock"

	"github.com/rocketscienceinc/wuziqi-backend/internal/apperror"
	"github.com/rocketscienceinc/wuziqi-backend/internal/entity"
)

type mockGameRepo struct {
	mock.Mock
}

func (that *mockGameRepo) CreateOrUpdate(ctx context.Context, game *entity.Game) error {
	args := that.Called(ctx, game)
	return args.Error(0)
}

func (that *mockGameRepo) GetByID(ctx context.Context, id string) (*entity.Game, error) {
	args := that.Called(ctx, id)
	game, _ := args.Get(0).(*entity.Game)
	return game, args.Error(1)
}

func (that *mockGameRepo) DeleteByID(ctx context.Context, id string) error {
	args := that.Called(ctx, id)
	return args.Error(0)
}

type mockAgent struct {
	mock.Mock
}

func (that *mockAgent) RequestMove(ctx context.Context, board entity.Board) (entity.MoveResult, error) {
	args := that.Called(ctx, board)
	return args.Get(0).(entity.MoveResult), args.Error(1) //nolint: forcetypeassert // set by the test
}

// memoryGameRepo keeps serialized copies so callers never share state, like the redis repository.
type memoryGameRepo struct {
	mu    sync.Mutex
	games map[string][]byte
}

func newMemoryGameRepo() *memoryGameRepo {
	return &memoryGameRepo{games: make(map[string][]byte)}
}

func (that *memoryGameRepo) CreateOrUpdate(_ context.Context, game *entity.Game) error {
	data, err := json.Marshal(game)
	if err != nil {
		return err
	}

	that.mu.Lock()
	defer that.mu.Unlock()

	that.games[game.ID] = data

	return nil
}

func (that *memoryGameRepo) GetByID(_ context.Context, id string) (*entity.Game, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	data, ok := that.games[id]
	if !ok {
		return &entity.Game{}, apperror.ErrGameNotFound
	}

	var game entity.Game
	if err := json.Unmarshal(data, &game); err != nil {
		return &entity.Game{}, err
	}

	return &game, nil
}

func (that *memoryGameRepo) DeleteByID(_ context.Context, id string) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	if _, ok := that.games[id]; !ok {
		return apperror.ErrGameNotFound
	}
	delete(that.games, id)

	return nil
}
