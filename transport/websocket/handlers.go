package websocket

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

func (that *Server) handleGameState(ctx context.Context, sessionID string, _ *Message) (*entity.GameSnapshot, error) {
	return that.sessions.GetState(ctx, sessionID)
}

func (that *Server) handleRoundStart(ctx context.Context, sessionID string, msg *Message) (*entity.GameSnapshot, error) {
	var payload RoundStartPayload
	if len(msg.Payload) > 0 {
		if err := json.Unmarshal(msg.Payload, &payload); err != nil {
			return nil, fmt.Errorf("%w: %w", errInvalidPayload, err)
		}
	}

	return that.sessions.StartRound(ctx, sessionID, payload.PlayerA, payload.PlayerB)
}

func (that *Server) handleCellPlace(ctx context.Context, sessionID string, msg *Message) (*entity.GameSnapshot, error) {
	var payload CellPlacePayload
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		return nil, fmt.Errorf("%w: %w", errInvalidPayload, err)
	}

	if payload.Row == nil || payload.Col == nil {
		return nil, fmt.Errorf("%w: row and col are required", errInvalidPayload)
	}

	return that.sessions.PlaceMarker(ctx, sessionID, *payload.Row, *payload.Col)
}

func (that *Server) handleGameReset(ctx context.Context, sessionID string, _ *Message) (*entity.GameSnapshot, error) {
	return that.sessions.ResetGame(ctx, sessionID)
}
