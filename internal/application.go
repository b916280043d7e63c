package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/rocketscienceinc/wuziqi-backend/internal/agent"
	"github.com/rocketscienceinc/wuziqi-backend/internal/config"
	"github.com/rocketscienceinc/wuziqi-backend/internal/gomoku"
	"github.com/rocketscienceinc/wuziqi-backend/internal/repository"
	"github.com/rocketscienceinc/wuziqi-backend/internal/repository/storage"
	"github.com/rocketscienceinc/wuziqi-backend/internal/usecase"
	"github.com/rocketscienceinc/wuziqi-backend/transport/rest"
	"github.com/rocketscienceinc/wuziqi-backend/transport/websocket"
)

var ErrAddrNotFound = errors.New("redis address string is empty")

// RunApp - runs the application.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	redisAddrString := conf.Redis.GetRedisAddr()
	if redisAddrString == "" {
		return ErrAddrNotFound
	}

	redisStorage, err := storage.New(ctx, redisAddrString)
	if err != nil {
		return fmt.Errorf("could not connect to redis storage: %w", err)
	}

	defer func() {
		if err = redisStorage.Close(); err != nil {
			log.Error("could not close redis storage", "error", err)
		}
	}()

	gameRepo := repository.NewGameRepository(redisStorage, conf.Game.SessionTTL)
	agentClient := agent.NewClient(logger, conf.Agent.URL, conf.Agent.Timeout)
	starPoints := gomoku.NewStarPoints(logger)
	gameUseCase := usecase.NewGameManager(logger, gameRepo, agentClient, starPoints, conf.Game.BoardSize)

	group, ctx := errgroup.WithContext(ctx)

	// run HTTP server
	group.Go(func() error {
		log.Info("Starting HTTP server", "port", conf.HTTPPort)
		if httpErr := rest.Start(ctx, conf.HTTPPort, rest.NewRouter(logger, gameUseCase)); httpErr != nil {
			return fmt.Errorf("HTTP server error: %w", httpErr)
		}
		return nil
	})

	// run Websocket server
	group.Go(func() error {
		log.Info("Starting WebSocket server", "port", conf.SocketPort)
		if wsErr := websocket.New(logger, gameUseCase).Start(ctx, conf.SocketPort); wsErr != nil {
			return fmt.Errorf("WebSocket server error: %w", wsErr)
		}
		return nil
	})

	if err = group.Wait(); err != nil {
		return err
	}

	log.Info("Application context canceled, shutting down")

	return nil
}
