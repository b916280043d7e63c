package agent

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/wuziqi-backend/internal/apperror"
	"github.com/rocketscienceinc/wuziqi-backend/internal/entity"
)

func newTestClient(url string, timeout time.Duration) *Client {
	return NewClient(slog.New(slog.NewJSONHandler(io.Discard, nil)), url, timeout)
}

func openingBoard(t *testing.T) entity.Board {
	t.Helper()

	board, err := entity.NewBoard(7).PlaceStone(entity.Coordinate{X: 0, Y: 0}, entity.HumanStone)
	require.NoError(t, err)

	return board
}

func TestClient_RequestMove(t *testing.T) {
	t.Run("Posts the board and decodes the move", func(t *testing.T) {
		// Given: an agent answering with index 3
		var received Request
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&received))

			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"Agent-Move": 3, "Has-End": false}`))
		}))
		defer server.Close()

		client := newTestClient(server.URL, time.Second)

		// When: a move is requested
		result, err := client.RequestMove(context.Background(), openingBoard(t))
		require.NoError(t, err)

		// Then: the request carried the board and the reply was decoded
		assert.Equal(t, map[string]int{"42": 1}, received.States)
		assert.Equal(t, entity.AgentMoveResult(entity.Coordinate{X: 3, Y: 6}), result)
	})

	t.Run("Error status", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer server.Close()

		result, err := newTestClient(server.URL, time.Second).RequestMove(context.Background(), openingBoard(t))

		require.ErrorIs(t, err, apperror.ErrAgentUnreachable)
		assert.Equal(t, entity.MoveResultNoOp, result.Kind)
	})

	t.Run("Malformed JSON", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{"Agent-Move": "three"`))
		}))
		defer server.Close()

		_, err := newTestClient(server.URL, time.Second).RequestMove(context.Background(), openingBoard(t))

		require.ErrorIs(t, err, apperror.ErrAgentMalformedResponse)
	})

	t.Run("Network error", func(t *testing.T) {
		// Given: a server that is already gone
		server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
		url := server.URL
		server.Close()

		_, err := newTestClient(url, time.Second).RequestMove(context.Background(), openingBoard(t))

		require.ErrorIs(t, err, apperror.ErrAgentUnreachable)
	})

	t.Run("Timeout leaves the agent unavailable", func(t *testing.T) {
		// Given: an agent that never answers
		server := httptest.NewServer(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
			<-r.Context().Done()
		}))
		defer server.Close()

		// When: the client waits for less than the agent takes
		start := time.Now()
		_, err := newTestClient(server.URL, 50*time.Millisecond).RequestMove(context.Background(), openingBoard(t))

		// Then: the call gives up with a recoverable error
		require.ErrorIs(t, err, apperror.ErrAgentUnavailable)
		assert.Less(t, time.Since(start), 5*time.Second)
	})
}
