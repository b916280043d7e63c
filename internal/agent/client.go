package agent

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/rocketscienceinc/wuziqi-backend/internal/apperror"
	"github.com/rocketscienceinc/wuziqi-backend/internal/entity"
)

const DefaultTimeout = 5 * time.Second

// Client asks the remote agent for its next move over HTTP.
type Client struct {
	logger     *slog.Logger
	httpClient *http.Client
	url        string
	timeout    time.Duration
}

func NewClient(logger *slog.Logger, url string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return &Client{
		logger:     logger.With("component", "agentClient"),
		httpClient: &http.Client{},
		url:        url,
		timeout:    timeout,
	}
}

// RequestMove - posts the board to the agent and decodes its reply.
// A reply that does not arrive within the client timeout yields ErrAgentUnavailable.
func (that *Client) RequestMove(ctx context.Context, board entity.Board) (entity.MoveResult, error) {
	log := that.logger.With("method", "RequestMove")

	ctx, cancel := context.WithTimeout(ctx, that.timeout)
	defer cancel()

	body, err := json.Marshal(EncodeBoard(board))
	if err != nil {
		return entity.NoOpResult(), fmt.Errorf("failed to marshal agent request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, that.url, bytes.NewReader(body))
	if err != nil {
		return entity.NoOpResult(), fmt.Errorf("%w: %w", apperror.ErrAgentUnreachable, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := that.httpClient.Do(req)
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			log.Warn("agent did not answer in time", "timeout", that.timeout)
			return entity.NoOpResult(), fmt.Errorf("%w: no reply within %s", apperror.ErrAgentUnavailable, that.timeout)
		}

		log.Error("failed to reach agent", "error", err)
		return entity.NoOpResult(), fmt.Errorf("%w: %w", apperror.ErrAgentUnreachable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		log.Error("agent replied with an error status", "status", resp.StatusCode)
		return entity.NoOpResult(), fmt.Errorf("%w: status %d", apperror.ErrAgentUnreachable, resp.StatusCode)
	}

	var reply Response
	if err = json.NewDecoder(resp.Body).Decode(&reply); err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return entity.NoOpResult(), fmt.Errorf("%w: reply cut off after %s", apperror.ErrAgentUnavailable, that.timeout)
		}

		log.Error("failed to decode agent reply", "error", err)
		return entity.NoOpResult(), fmt.Errorf("%w: %w", apperror.ErrAgentMalformedResponse, err)
	}

	result, err := Decode(board.Size, reply)
	if err != nil {
		log.Error("agent reply rejected", "error", err)
		return entity.NoOpResult(), err
	}

	log.Debug("agent replied", "kind", result.Kind, "move", result.Move, "winner", result.Winner)

	return result, nil
}
