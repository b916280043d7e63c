package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/rocketscienceinc/wuziqi-backend/internal/apperror"
	"github.com/rocketscienceinc/wuziqi-backend/internal/entity"
	"github.com/rocketscienceinc/wuziqi-backend/internal/gomoku"
	"github.com/rocketscienceinc/wuziqi-backend/internal/pkg"
)

type gameRepo interface {
	CreateOrUpdate(ctx context.Context, game *entity.Game) error
	GetByID(ctx context.Context, id string) (*entity.Game, error)
	DeleteByID(ctx context.Context, id string) error
}

type agentClient interface {
	RequestMove(ctx context.Context, board entity.Board) (entity.MoveResult, error)
}

type starPoints interface {
	ForBoard(boardSize int) []entity.Coordinate
}

// GameManager runs game sessions. Every change to a session happens under that
// session's lock; the agent round-trip runs outside of it.
type GameManager struct {
	logger     *slog.Logger
	gameRepo   gameRepo
	agent      agentClient
	starPoints starPoints
	boardSize  int

	locks sync.Map
}

func NewGameManager(logger *slog.Logger, gameRepo gameRepo, agent agentClient, starPoints starPoints, boardSize int) *GameManager {
	return &GameManager{
		logger:     logger.With("component", "gameManager"),
		gameRepo:   gameRepo,
		agent:      agent,
		starPoints: starPoints,
		boardSize:  boardSize,
	}
}

// CreateGame - opens a new session waiting for the board choice. Zero boardSize uses the configured size.
func (that *GameManager) CreateGame(ctx context.Context, boardSize int) (*entity.Snapshot, error) {
	if boardSize == 0 {
		boardSize = that.boardSize
	}

	if err := entity.ValidateBoardSize(boardSize); err != nil {
		return nil, err
	}

	game := entity.NewGame(pkg.GenerateGameID(), boardSize)
	if err := that.updateGame(ctx, game); err != nil {
		return nil, fmt.Errorf("failed to create game: %w", err)
	}

	that.logger.Info("game created", "gameID", game.ID, "boardSize", boardSize)

	return that.snapshot(game), nil
}

func (that *GameManager) GetSnapshot(ctx context.Context, id string) (*entity.Snapshot, error) {
	game, err := that.getGameByID(ctx, id)
	if err != nil {
		return nil, err
	}

	return that.snapshot(game), nil
}

// StartGame - leaves the board choice and starts play. Zero boardSize keeps the session's size.
func (that *GameManager) StartGame(ctx context.Context, id string, boardSize int) (*entity.Snapshot, error) {
	return that.update(ctx, id, func(game *entity.Game) error {
		if boardSize != 0 && game.IsChoosingBoard() {
			if err := entity.ValidateBoardSize(boardSize); err != nil {
				return err
			}
			game.BoardSize = boardSize
		}

		return gomoku.StartGame(game)
	})
}

func (that *GameManager) RestartGame(ctx context.Context, id string) (*entity.Snapshot, error) {
	return that.update(ctx, id, gomoku.RestartGame)
}

// DeleteGame - closes a session for good.
func (that *GameManager) DeleteGame(ctx context.Context, id string) error {
	lock := that.lockFor(id)
	lock.Lock()
	defer lock.Unlock()

	if err := that.gameRepo.DeleteByID(ctx, id); err != nil {
		if errors.Is(err, apperror.ErrGameNotFound) {
			return err
		}
		return fmt.Errorf("failed to delete game: %w", err)
	}

	that.locks.Delete(id)
	that.logger.Info("game deleted", "gameID", id)

	return nil
}

// MakeTurn - applies the human move. On success the session waits for the agent
// unless the move ended the game.
func (that *GameManager) MakeTurn(ctx context.Context, id string, coord entity.Coordinate) (*entity.Snapshot, error) {
	log := that.logger.With("method", "MakeTurn", "gameID", id)

	snapshot, err := that.update(ctx, id, func(game *entity.Game) error {
		_, err := gomoku.MakeTurn(game, entity.HumanStone, coord)
		return err
	})
	if err != nil {
		log.Debug("human move rejected", "coord", coord, "error", err)
		return snapshot, err
	}

	if snapshot.Game.IsOver() {
		log.Info("game over", "winner", snapshot.Game.Winner)
	}

	return snapshot, nil
}

// PlayTurn - applies the human move and, if the game goes on, waits for the agent's answer.
// An agent failure is returned together with the snapshot parked on the agent's turn.
func (that *GameManager) PlayTurn(ctx context.Context, id string, coord entity.Coordinate) (*entity.Snapshot, error) {
	snapshot, err := that.MakeTurn(ctx, id, coord)
	if err != nil {
		return snapshot, err
	}

	if !snapshot.Game.IsAgentTurn() {
		return snapshot, nil
	}

	return that.RequestAgentMove(ctx, id)
}

// RequestAgentMove - asks the agent for its move and applies the reply. It is
// also the retry path after a failed round-trip. A reply is discarded when the
// session moved on while the agent was thinking.
func (that *GameManager) RequestAgentMove(ctx context.Context, id string) (*entity.Snapshot, error) {
	log := that.logger.With("method", "RequestAgentMove", "gameID", id)

	lock := that.lockFor(id)

	lock.Lock()
	game, err := that.getGameByID(ctx, id)
	if err != nil {
		lock.Unlock()
		return nil, err
	}

	if !game.IsAgentTurn() {
		lock.Unlock()
		return that.snapshot(game), fmt.Errorf("%w: agent move in phase %s", apperror.ErrNotYourTurn, game.Phase)
	}

	board := game.Board
	moveCount := game.MoveCount
	lock.Unlock()

	result, err := that.agent.RequestMove(ctx, board)
	if err != nil {
		log.Warn("agent move failed, waiting for retry", "error", err)
		return that.snapshot(game), err
	}

	lock.Lock()
	defer lock.Unlock()

	game, err = that.getGameByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !game.IsAgentTurn() || game.MoveCount != moveCount {
		log.Warn("discarding stale agent reply", "moveCount", game.MoveCount, "expected", moveCount)
		return that.snapshot(game), apperror.ErrAgentReplyDiscarded
	}

	if result.Kind == entity.MoveResultGameEnded && result.Move != nil && !gomoku.FinalMoveFits(game, result) {
		log.Warn("final agent move does not fit the board, skipping it", "coord", *result.Move, "player", that.playerName(game, entity.AgentStone))
	}

	if err = gomoku.ApplyAgentResult(game, result); err != nil {
		log.Error("agent reply rejected", "error", err)
		return that.snapshot(game), err
	}

	if err = that.updateGame(ctx, game); err != nil {
		return nil, err
	}

	if game.IsOver() {
		log.Info("game over", "winner", game.Winner)
	}

	return that.snapshot(game), nil
}

// update - loads the game under its lock, applies change and stores the result.
// A failed change is not stored and the unchanged state is returned with the error.
func (that *GameManager) update(ctx context.Context, id string, change func(game *entity.Game) error) (*entity.Snapshot, error) {
	lock := that.lockFor(id)
	lock.Lock()
	defer lock.Unlock()

	game, err := that.getGameByID(ctx, id)
	if err != nil {
		return nil, err
	}

	before := *game
	if err = change(game); err != nil {
		return that.snapshot(&before), err
	}

	if err = that.updateGame(ctx, game); err != nil {
		return nil, err
	}

	return that.snapshot(game), nil
}

func (that *GameManager) playerName(game *entity.Game, stone entity.StoneType) string {
	if player := game.PlayerByStone(stone); player != nil {
		return player.Name
	}
	return ""
}

func (that *GameManager) lockFor(id string) *sync.Mutex {
	lock, _ := that.locks.LoadOrStore(id, &sync.Mutex{})
	return lock.(*sync.Mutex) //nolint: forcetypeassert // only mutexes are stored
}

func (that *GameManager) snapshot(game *entity.Game) *entity.Snapshot {
	return &entity.Snapshot{
		Game:       game,
		StarPoints: that.starPoints.ForBoard(game.BoardSize),
	}
}

func (that *GameManager) getGameByID(ctx context.Context, id string) (*entity.Game, error) {
	existingGame, err := that.gameRepo.GetByID(ctx, id)
	if errors.Is(err, apperror.ErrGameNotFound) {
		return nil, err
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get game: %w", err)
	}

	return existingGame, nil
}

func (that *GameManager) updateGame(ctx context.Context, game *entity.Game) error {
	if err := that.gameRepo.CreateOrUpdate(ctx, game); err != nil {
		return fmt.Errorf("failed to update game: %w", err)
	}

	return nil
}
