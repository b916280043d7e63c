package rest

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rocketscienceinc/wuziqi-backend/internal/apperror"
	"github.com/rocketscienceinc/wuziqi-backend/internal/entity"
)

type createGameRequest struct {
	BoardSize int `json:"board_size"`
}

type startGameRequest struct {
	BoardSize int `json:"board_size"`
}

type turnRequest struct {
	X *int `json:"x" binding:"required"`
	Y *int `json:"y" binding:"required"`
}

type gameResponse struct {
	*entity.Snapshot
	Error string `json:"error,omitempty"`
}

type handlers struct {
	logger *slog.Logger
	uGame  uGame
}

func newHandlers(logger *slog.Logger, uGame uGame) *handlers {
	return &handlers{
		logger: logger.With("component", "restHandlers"),
		uGame:  uGame,
	}
}

func (that *handlers) ping(c *gin.Context) {
	c.String(http.StatusOK, "pong")
}

func (that *handlers) createGame(c *gin.Context) {
	var req createGameRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	snapshot, err := that.uGame.CreateGame(c.Request.Context(), req.BoardSize)
	if err != nil {
		that.respond(c, "createGame", snapshot, err)
		return
	}

	c.JSON(http.StatusCreated, gameResponse{Snapshot: snapshot})
}

func (that *handlers) getGame(c *gin.Context) {
	snapshot, err := that.uGame.GetSnapshot(c.Request.Context(), c.Param("id"))
	that.respond(c, "getGame", snapshot, err)
}

func (that *handlers) deleteGame(c *gin.Context) {
	if err := that.uGame.DeleteGame(c.Request.Context(), c.Param("id")); err != nil {
		that.respond(c, "deleteGame", nil, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (that *handlers) startGame(c *gin.Context) {
	var req startGameRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	snapshot, err := that.uGame.StartGame(c.Request.Context(), c.Param("id"), req.BoardSize)
	that.respond(c, "startGame", snapshot, err)
}

func (that *handlers) makeTurn(c *gin.Context) {
	var req turnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "x and y are required"})
		return
	}

	coord := entity.Coordinate{X: *req.X, Y: *req.Y}

	snapshot, err := that.uGame.PlayTurn(c.Request.Context(), c.Param("id"), coord)
	that.respond(c, "makeTurn", snapshot, err)
}

func (that *handlers) agentMove(c *gin.Context) {
	snapshot, err := that.uGame.RequestAgentMove(c.Request.Context(), c.Param("id"))
	that.respond(c, "agentMove", snapshot, err)
}

func (that *handlers) restartGame(c *gin.Context) {
	snapshot, err := that.uGame.RestartGame(c.Request.Context(), c.Param("id"))
	that.respond(c, "restartGame", snapshot, err)
}

// respond - writes the snapshot with a status derived from err. Agent failures
// are part of normal play: the snapshot shows the game waiting for the agent.
func (that *handlers) respond(c *gin.Context, method string, snapshot *entity.Snapshot, err error) {
	if err == nil {
		c.JSON(http.StatusOK, gameResponse{Snapshot: snapshot})
		return
	}

	status := statusFor(err)
	if status == http.StatusInternalServerError {
		that.logger.Error("request failed", "method", method, "error", err)
		c.JSON(status, gin.H{"error": "internal error"})
		return
	}

	c.JSON(status, gameResponse{Snapshot: snapshot, Error: err.Error()})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, apperror.ErrGameNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperror.ErrInvalidBoardSize):
		return http.StatusBadRequest
	case isAgentError(err):
		return http.StatusOK
	case errors.Is(err, apperror.ErrOutOfBounds),
		errors.Is(err, apperror.ErrCellOccupied),
		errors.Is(err, apperror.ErrInvalidStone),
		errors.Is(err, apperror.ErrNotYourTurn),
		errors.Is(err, apperror.ErrGameIsNotStarted),
		errors.Is(err, apperror.ErrGameFinished),
		errors.Is(err, apperror.ErrActionNotAllowed):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func isAgentError(err error) bool {
	return errors.Is(err, apperror.ErrAgentUnreachable) ||
		errors.Is(err, apperror.ErrAgentMalformedResponse) ||
		errors.Is(err, apperror.ErrAgentUnavailable) ||
		errors.Is(err, apperror.ErrAgentReplyDiscarded)
}
