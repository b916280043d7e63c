package websocket

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/rocketscienceinc/wuziqi-backend/internal/entity"
)

// Message represents a WebSocket message with an action type and a payload.
type Message struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type RequestPayload struct {
	GameID    string             `json:"game_id,omitempty"`
	BoardSize int                `json:"board_size,omitempty"`
	Cell      *entity.Coordinate `json:"cell,omitempty"`
}

type ResponsePayload struct {
	Game       *entity.Game        `json:"game,omitempty"`
	StarPoints []entity.Coordinate `json:"star_points,omitempty"`
	Error      string              `json:"error,omitempty"`
}

// connection serializes writes: replies and agent results are sent from different goroutines.
type connection struct {
	conn *websocket.Conn
	mu   sync.Mutex

	// agent round-trips still running for this connection
	agents sync.WaitGroup
}

func (that *connection) sendMessage(action string, payload ResponsePayload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	that.mu.Lock()
	defer that.mu.Unlock()

	if err = that.conn.WriteJSON(Message{Action: action, Payload: body}); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}

	return nil
}

func newResponse(snapshot *entity.Snapshot) ResponsePayload {
	if snapshot == nil {
		return ResponsePayload{}
	}

	return ResponsePayload{
		Game:       snapshot.Game,
		StarPoints: snapshot.StarPoints,
	}
}
