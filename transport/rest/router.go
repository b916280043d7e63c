package rest

import (
	"context"
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/rocketscienceinc/wuziqi-backend/internal/entity"
)

type uGame interface {
	CreateGame(ctx context.Context, boardSize int) (*entity.Snapshot, error)
	GetSnapshot(ctx context.Context, id string) (*entity.Snapshot, error)
	StartGame(ctx context.Context, id string, boardSize int) (*entity.Snapshot, error)
	PlayTurn(ctx context.Context, id string, coord entity.Coordinate) (*entity.Snapshot, error)
	RequestAgentMove(ctx context.Context, id string) (*entity.Snapshot, error)
	RestartGame(ctx context.Context, id string) (*entity.Snapshot, error)
	DeleteGame(ctx context.Context, id string) error
}

// NewRouter - builds the HTTP API over the game use case.
func NewRouter(logger *slog.Logger, uGame uGame) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(gin.Recovery(), requestLogger(logger))

	h := newHandlers(logger, uGame)

	router.GET("/ping", h.ping)

	games := router.Group("/api/games")
	games.POST("", h.createGame)
	games.GET("/:id", h.getGame)
	games.DELETE("/:id", h.deleteGame)
	games.POST("/:id/start", h.startGame)
	games.POST("/:id/turn", h.makeTurn)
	games.POST("/:id/agent", h.agentMove)
	games.POST("/:id/restart", h.restartGame)

	return router
}

func requestLogger(logger *slog.Logger) gin.HandlerFunc {
	log := logger.With("component", "http")

	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		log.Info("request handled",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
			"latency", time.Since(start),
		)
	}
}
