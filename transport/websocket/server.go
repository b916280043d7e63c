package websocket

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/rocketscienceinc/wuziqi-backend/internal/entity"
)

const shutdownTimeout = 5 * time.Second

type uGame interface {
	CreateGame(ctx context.Context, boardSize int) (*entity.Snapshot, error)
	GetSnapshot(ctx context.Context, id string) (*entity.Snapshot, error)
	StartGame(ctx context.Context, id string, boardSize int) (*entity.Snapshot, error)
	MakeTurn(ctx context.Context, id string, coord entity.Coordinate) (*entity.Snapshot, error)
	RequestAgentMove(ctx context.Context, id string) (*entity.Snapshot, error)
	RestartGame(ctx context.Context, id string) (*entity.Snapshot, error)
}

type Server struct {
	logger   *slog.Logger
	uGame    uGame
	upgrader websocket.Upgrader

	handlers map[string]func(ctx context.Context, message *Message, conn *connection) error
}

func New(logger *slog.Logger, uGame uGame) *Server {
	server := &Server{
		logger: logger.With("component", "websocket"),
		uGame:  uGame,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(*http.Request) bool { return true },
		},

		handlers: make(map[string]func(context.Context, *Message, *connection) error),
	}

	server.handlers[actionNewGame] = server.handleNewGame
	server.handlers[actionGetGame] = server.handleGetGame
	server.handlers[actionStartGame] = server.handleStartGame
	server.handlers[actionTurn] = server.handleGameTurn
	server.handlers[actionAgent] = server.handleAgentMove
	server.handlers[actionRestart] = server.handleRestartGame

	return server
}

// Start - starts WebSocket server.
func (that *Server) Start(ctx context.Context, port string) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		that.HandleWS(ctx, w, r)
	})

	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       30 * time.Second,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		_ = srv.Shutdown(shutdownCtx) //nolint: contextcheck // parent is already canceled
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// HandleWS - upgrades the connection and serves messages until the client leaves or ctx is canceled.
func (that *Server) HandleWS(ctx context.Context, writer http.ResponseWriter, req *http.Request) {
	log := that.logger.With("method", "HandleWS")

	conn, err := that.upgrader.Upgrade(writer, req, nil)
	if err != nil {
		log.Error("failed to upgrade connection", "error", err)
		return
	}

	log.Info("WebSocket connection established", "remote", req.RemoteAddr)

	connCtx, cancel := context.WithCancel(ctx)
	client := &connection{conn: conn}

	defer func() {
		cancel()
		client.agents.Wait()
		_ = conn.Close()
	}()

	go func() {
		<-connCtx.Done()
		_ = conn.Close()
	}()

	that.handleMessages(connCtx, client)
}

// handleMessages - processes messages from the client.
func (that *Server) handleMessages(ctx context.Context, conn *connection) {
	log := that.logger.With("method", "handleMessages")

	for {
		var message Message
		if err := conn.conn.ReadJSON(&message); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Error("error reading message", "error", err)
			}
			return
		}

		handler, ok := that.handlers[message.Action]
		if !ok {
			log.Warn("unknown action", "action", message.Action)
			if err := conn.sendMessage(message.Action, ResponsePayload{Error: "unknown action"}); err != nil {
				log.Error("failed to send error response", "error", err)
			}
			continue
		}

		if err := handler(ctx, &message, conn); err != nil {
			log.Error("error processing message", "action", message.Action, "error", err)
		}
	}
}
