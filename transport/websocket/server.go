package websocket

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

const (
	maxMessageSize = 4096

	// a browser that has not answered a ping for pongWait is considered gone
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
)

type sessionUseCase interface {
	CreateSession(ctx context.Context) (string, *entity.GameSnapshot, error)
	GetState(ctx context.Context, id string) (*entity.GameSnapshot, error)
	StartRound(ctx context.Context, id, nameA, nameB string) (*entity.GameSnapshot, error)
	PlaceMarker(ctx context.Context, id string, row, col int) (*entity.GameSnapshot, error)
	ResetGame(ctx context.Context, id string) (*entity.GameSnapshot, error)
}

type handlerFunc func(ctx context.Context, sessionID string, msg *Message) (*entity.GameSnapshot, error)

// Server feeds input events from one browser connection into that browser's session.
type Server struct {
	logger   *slog.Logger
	sessions sessionUseCase
	upgrader websocket.Upgrader

	pongWait   time.Duration
	pingPeriod time.Duration

	handlers map[string]handlerFunc
}

func New(logger *slog.Logger, sessions sessionUseCase) *Server {
	server := &Server{
		logger:   logger.With("component", "websocket"),
		sessions: sessions,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},

		pongWait:   pongWait,
		pingPeriod: pingPeriod,

		handlers: make(map[string]handlerFunc),
	}

	server.handlers[ActionGameState] = server.handleGameState
	server.handlers[ActionRoundStart] = server.handleRoundStart
	server.handlers[ActionCellPlace] = server.handleCellPlace
	server.handlers[ActionGameReset] = server.handleGameReset

	return server
}

// ServeHTTP upgrades the request and binds the connection to ?session=<id>, creating one when absent.
func (that *Server) ServeHTTP(writer http.ResponseWriter, req *http.Request) {
	log := that.logger.With("method", "ServeHTTP")
	ctx := req.Context()

	sessionID := req.URL.Query().Get("session")

	var (
		game *entity.GameSnapshot
		err  error
	)
	if sessionID == "" {
		sessionID, game, err = that.sessions.CreateSession(ctx)
	} else {
		game, err = that.sessions.GetState(ctx, sessionID)
	}

	if err != nil {
		log.Error("failed to bind session", "session", sessionID, "error", err)
		http.Error(writer, errorText(err), statusFor(err))
		return
	}

	conn, err := that.upgrader.Upgrade(writer, req, nil)
	if err != nil {
		log.Error("failed to upgrade connection", "error", err)
		return
	}
	defer conn.Close()

	conn.SetReadLimit(maxMessageSize)
	if err = conn.SetReadDeadline(time.Now().Add(that.pongWait)); err != nil {
		log.Error("failed to set read deadline", "error", err)
		return
	}
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(that.pongWait))
	})

	done := make(chan struct{})
	defer close(done)
	go that.keepAlive(conn, done)

	log.Info("WebSocket connection established", "session", sessionID)

	if err = that.send(conn, ActionGameState, ResponsePayload{SessionID: sessionID, Game: game}); err != nil {
		log.Error("failed to send initial state", "error", err)
		return
	}

	if err = that.handleMessages(ctx, conn, sessionID); err != nil {
		log.Error("error handling messages", "error", err)
	}
}

// handleMessages - processes messages from the client until it goes away.
func (that *Server) handleMessages(ctx context.Context, conn *websocket.Conn, sessionID string) error {
	log := that.logger.With("method", "handleMessages", "session", sessionID)

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Info("WebSocket connection closed")
				return nil
			}

			return err
		}

		var message Message
		if err = json.Unmarshal(data, &message); err != nil {
			log.Debug("failed to unmarshal message", "error", err)
			if err = that.sendError(conn, "", errInvalidMessage); err != nil {
				return err
			}
			continue
		}

		handler, ok := that.handlers[message.Action]
		if !ok {
			if err := that.sendError(conn, message.Action, errUnknownAction); err != nil {
				return err
			}
			continue
		}

		game, err := handler(ctx, sessionID, &message)
		if err != nil {
			if statusFor(err) == http.StatusInternalServerError {
				log.Error("error processing message", "action", message.Action, "error", err)
			}

			if err = that.sendError(conn, message.Action, err); err != nil {
				return err
			}
			continue
		}

		if err = that.send(conn, message.Action, ResponsePayload{SessionID: sessionID, Game: game}); err != nil {
			return err
		}
	}
}

// keepAlive pings the browser every pingPeriod until done is closed or a ping cannot be written.
func (that *Server) keepAlive(conn *websocket.Conn, done <-chan struct{}) {
	ticker := time.NewTicker(that.pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			// WriteControl may run alongside the writes of the read loop
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				that.logger.Debug("failed to send ping", "error", err)
				return
			}
		}
	}
}
