package rest

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

type Handlers interface {
	PingHandler(w http.ResponseWriter, _ *http.Request)

	CreateSession(w http.ResponseWriter, r *http.Request)
	GetSession(w http.ResponseWriter, r *http.Request)
	StartRound(w http.ResponseWriter, r *http.Request)
	PlaceMarker(w http.ResponseWriter, r *http.Request)
	ResetGame(w http.ResponseWriter, r *http.Request)
	EndSession(w http.ResponseWriter, r *http.Request)
}

type sessionUseCase interface {
	CreateSession(ctx context.Context) (string, *entity.GameSnapshot, error)
	GetState(ctx context.Context, id string) (*entity.GameSnapshot, error)
	StartRound(ctx context.Context, id, nameA, nameB string) (*entity.GameSnapshot, error)
	PlaceMarker(ctx context.Context, id string, row, col int) (*entity.GameSnapshot, error)
	ResetGame(ctx context.Context, id string) (*entity.GameSnapshot, error)
	EndSession(ctx context.Context, id string) error
}

const maxBodySize = 4096

type sessionResponse struct {
	SessionID string               `json:"session_id"`
	Game      *entity.GameSnapshot `json:"game"`
}

type errorResponse struct {
	Error string `json:"error"`
}

type startRoundRequest struct {
	PlayerA string `json:"player_a"`
	PlayerB string `json:"player_b"`
}

type placeMarkerRequest struct {
	Row *int `json:"row"`
	Col *int `json:"col"`
}

type handlers struct {
	logger   *slog.Logger
	sessions sessionUseCase
}

func NewHandlers(logger *slog.Logger, sessions sessionUseCase) Handlers {
	return &handlers{
		logger:   logger.With("component", "rest"),
		sessions: sessions,
	}
}

func (that *handlers) PingHandler(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("pong")); err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
}

func (that *handlers) CreateSession(w http.ResponseWriter, r *http.Request) {
	id, game, err := that.sessions.CreateSession(r.Context())
	if err != nil {
		that.writeError(w, "CreateSession", err)
		return
	}

	that.writeJSON(w, http.StatusCreated, sessionResponse{SessionID: id, Game: game})
}

func (that *handlers) GetSession(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	game, err := that.sessions.GetState(r.Context(), id)
	if err != nil {
		that.writeError(w, "GetSession", err)
		return
	}

	that.writeJSON(w, http.StatusOK, sessionResponse{SessionID: id, Game: game})
}

func (that *handlers) StartRound(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var req startRoundRequest
	if err := that.decode(w, r, &req); err != nil {
		that.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	game, err := that.sessions.StartRound(r.Context(), id, req.PlayerA, req.PlayerB)
	if err != nil {
		that.writeError(w, "StartRound", err)
		return
	}

	that.writeJSON(w, http.StatusOK, sessionResponse{SessionID: id, Game: game})
}

func (that *handlers) PlaceMarker(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var req placeMarkerRequest
	if err := that.decode(w, r, &req); err != nil || req.Row == nil || req.Col == nil {
		that.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "row and col are required"})
		return
	}

	game, err := that.sessions.PlaceMarker(r.Context(), id, *req.Row, *req.Col)
	if err != nil {
		that.writeError(w, "PlaceMarker", err)
		return
	}

	that.writeJSON(w, http.StatusOK, sessionResponse{SessionID: id, Game: game})
}

func (that *handlers) ResetGame(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	game, err := that.sessions.ResetGame(r.Context(), id)
	if err != nil {
		that.writeError(w, "ResetGame", err)
		return
	}

	that.writeJSON(w, http.StatusOK, sessionResponse{SessionID: id, Game: game})
}

func (that *handlers) EndSession(w http.ResponseWriter, r *http.Request) {
	if err := that.sessions.EndSession(r.Context(), r.PathValue("id")); err != nil {
		that.writeError(w, "EndSession", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// StatusFor maps engine and session errors onto HTTP status codes.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, apperror.ErrOutOfRange):
		return http.StatusBadRequest
	case errors.Is(err, apperror.ErrSessionNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func (that *handlers) writeError(w http.ResponseWriter, method string, err error) {
	status := StatusFor(err)
	if status == http.StatusInternalServerError {
		that.logger.Error("request failed", "method", method, "error", err)
		that.writeJSON(w, status, errorResponse{Error: http.StatusText(status)})
		return
	}

	that.writeJSON(w, status, errorResponse{Error: err.Error()})
}

// decode reads a JSON body of at most maxBodySize bytes.
func (that *handlers) decode(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)

	return json.NewDecoder(r.Body).Decode(dst)
}

func (that *handlers) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		that.logger.Error("failed to write response", "error", err)
	}
}
