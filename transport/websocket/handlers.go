package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rocketscienceinc/wuziqi-backend/internal/apperror"
	"github.com/rocketscienceinc/wuziqi-backend/internal/entity"
)

const (
	actionNewGame   = "game:new"
	actionGetGame   = "game:get"
	actionStartGame = "game:start"
	actionTurn      = "game:turn"
	actionAgent     = "game:agent"
	actionRestart   = "game:restart"
)

func (that *Server) handleNewGame(ctx context.Context, msg *Message, conn *connection) error {
	payloadReq, err := parsePayload(msg)
	if err != nil {
		return that.sendErrorResponse(conn, msg.Action, err)
	}

	snapshot, err := that.uGame.CreateGame(ctx, payloadReq.BoardSize)

	return that.reply(conn, msg.Action, snapshot, err)
}

func (that *Server) handleGetGame(ctx context.Context, msg *Message, conn *connection) error {
	payloadReq, err := parseGamePayload(msg)
	if err != nil {
		return that.sendErrorResponse(conn, msg.Action, err)
	}

	snapshot, err := that.uGame.GetSnapshot(ctx, payloadReq.GameID)

	return that.reply(conn, msg.Action, snapshot, err)
}

func (that *Server) handleStartGame(ctx context.Context, msg *Message, conn *connection) error {
	payloadReq, err := parseGamePayload(msg)
	if err != nil {
		return that.sendErrorResponse(conn, msg.Action, err)
	}

	snapshot, err := that.uGame.StartGame(ctx, payloadReq.GameID, payloadReq.BoardSize)

	return that.reply(conn, msg.Action, snapshot, err)
}

func (that *Server) handleRestartGame(ctx context.Context, msg *Message, conn *connection) error {
	payloadReq, err := parseGamePayload(msg)
	if err != nil {
		return that.sendErrorResponse(conn, msg.Action, err)
	}

	snapshot, err := that.uGame.RestartGame(ctx, payloadReq.GameID)

	return that.reply(conn, msg.Action, snapshot, err)
}

// handleGameTurn - applies the human move and answers right away. When the agent
// is to move, its result follows as a second game:turn message.
func (that *Server) handleGameTurn(ctx context.Context, msg *Message, conn *connection) error {
	log := that.logger.With("method", "handleGameTurn")

	payloadReq, err := parseGamePayload(msg)
	if err != nil {
		return that.sendErrorResponse(conn, msg.Action, err)
	}

	if payloadReq.Cell == nil {
		log.Error("Cell is missing in payload")
		return that.sendErrorResponse(conn, msg.Action, payloadError{reason: "cell is required"})
	}

	snapshot, err := that.uGame.MakeTurn(ctx, payloadReq.GameID, *payloadReq.Cell)
	if sendErr := that.reply(conn, msg.Action, snapshot, err); sendErr != nil {
		return sendErr
	}

	if err == nil && snapshot.Game.IsAgentTurn() {
		that.dispatchAgentMove(ctx, conn, msg.Action, payloadReq.GameID)
	}

	return nil
}

// handleAgentMove - retries the agent round-trip of a game parked on the agent's turn.
func (that *Server) handleAgentMove(ctx context.Context, msg *Message, conn *connection) error {
	payloadReq, err := parseGamePayload(msg)
	if err != nil {
		return that.sendErrorResponse(conn, msg.Action, err)
	}

	that.dispatchAgentMove(ctx, conn, msg.Action, payloadReq.GameID)

	return nil
}

func (that *Server) dispatchAgentMove(ctx context.Context, conn *connection, action, gameID string) {
	log := that.logger.With("method", "dispatchAgentMove", "gameID", gameID)

	conn.agents.Add(1)
	go func() {
		defer conn.agents.Done()

		snapshot, err := that.uGame.RequestAgentMove(ctx, gameID)
		if err != nil {
			log.Warn("agent move failed", "error", err)
		}

		if err = that.reply(conn, action, snapshot, err); err != nil {
			log.Error("failed to send agent move", "error", err)
		}
	}()
}

// reply - sends the snapshot, adding the error text for rule and agent errors.
func (that *Server) reply(conn *connection, action string, snapshot *entity.Snapshot, err error) error {
	payload := newResponse(snapshot)

	if err != nil {
		payload.Error = publicError(err)
	}

	if err = conn.sendMessage(action, payload); err != nil {
		return fmt.Errorf("failed to send response: %w", err)
	}

	return nil
}

func (that *Server) sendErrorResponse(conn *connection, action string, cause error) error {
	if err := conn.sendMessage(action, ResponsePayload{Error: publicError(cause)}); err != nil {
		return fmt.Errorf("failed to send error response: %w", err)
	}

	return nil
}

type payloadError struct {
	reason string
}

func (that payloadError) Error() string {
	return that.reason
}

func parsePayload(msg *Message) (*RequestPayload, error) {
	var payloadReq RequestPayload

	if len(msg.Payload) == 0 {
		return &payloadReq, nil
	}

	if err := json.Unmarshal(msg.Payload, &payloadReq); err != nil {
		return nil, payloadError{reason: "invalid payload"}
	}

	return &payloadReq, nil
}

func parseGamePayload(msg *Message) (*RequestPayload, error) {
	payloadReq, err := parsePayload(msg)
	if err != nil {
		return nil, err
	}

	if payloadReq.GameID == "" {
		return nil, payloadError{reason: "game_id is required"}
	}

	return payloadReq, nil
}

func publicError(err error) string {
	var payloadErr payloadError
	switch {
	case errors.As(err, &payloadErr):
		return payloadErr.reason
	case apperror.IsExpected(err):
		return err.Error()
	default:
		return "internal error"
	}
}
