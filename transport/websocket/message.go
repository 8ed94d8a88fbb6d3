package websocket

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

const (
	ActionGameState  = "game:state"
	ActionRoundStart = "round:start"
	ActionCellPlace  = "cell:place"
	ActionGameReset  = "game:reset"
	ActionError      = "error"

	writeWait = 10 * time.Second
)

var (
	errInvalidMessage = errors.New("invalid message")
	errUnknownAction  = errors.New("unknown action")
	errInvalidPayload = errors.New("invalid payload")
)

// Message represents a WebSocket message with an action type and a payload.
type Message struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type RoundStartPayload struct {
	PlayerA string `json:"player_a"`
	PlayerB string `json:"player_b"`
}

type CellPlacePayload struct {
	Row *int `json:"row"`
	Col *int `json:"col"`
}

type ResponsePayload struct {
	SessionID string               `json:"session_id,omitempty"`
	Game      *entity.GameSnapshot `json:"game,omitempty"`
	Error     string               `json:"error,omitempty"`
}

func (that *Server) send(conn *websocket.Conn, action string, payload ResponsePayload) error {
	payloadJSON, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	if err = conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return fmt.Errorf("failed to set write deadline: %w", err)
	}

	if err = conn.WriteJSON(Message{Action: action, Payload: payloadJSON}); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}

	return nil
}

func (that *Server) sendError(conn *websocket.Conn, action string, err error) error {
	if action == "" {
		action = ActionError
	}

	return that.send(conn, action, ResponsePayload{Error: errorText(err)})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, apperror.ErrOutOfRange),
		errors.Is(err, errInvalidPayload),
		errors.Is(err, errInvalidMessage),
		errors.Is(err, errUnknownAction):
		return http.StatusBadRequest
	case errors.Is(err, apperror.ErrSessionNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// errorText hides internal failures from the client.
func errorText(err error) string {
	if statusFor(err) == http.StatusInternalServerError {
		return http.StatusText(http.StatusInternalServerError)
	}

	return err.Error()
}
