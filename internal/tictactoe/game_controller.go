package tictactoe

import (
	"fmt"
	"log/slog"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

// GameController turns input events into Game operations. Events the current state does not
// allow are dropped; only caller bugs such as out-of-range cells come back as errors.
type GameController struct {
	logger *slog.Logger
	game   *entity.Game
}

func NewGameController(logger *slog.Logger, game *entity.Game) *GameController {
	return &GameController{
		logger: logger.With("component", "game_controller"),
		game:   game,
	}
}

func (that *GameController) Game() *entity.Game {
	return that.game
}

// StartRound - handles the "new round" input. Names are only used while the game is NEW.
func (that *GameController) StartRound(nameA, nameB string) error {
	if that.game.IsInProgress() {
		that.logger.Debug("start round ignored", "state", that.game.State())
		return nil
	}

	if err := that.game.StartNewRound(nameA, nameB); err != nil {
		return that.absorb("StartRound", err)
	}

	return nil
}

// PlaceMarker - handles a click on cell (row, col).
func (that *GameController) PlaceMarker(row, col int) (entity.RoundResult, error) {
	if !that.game.IsInProgress() {
		if _, err := that.game.Board().MarkerAt(row, col); err != nil {
			return that.game.LastResult(), fmt.Errorf("failed to place marker: %w", err)
		}

		that.logger.Debug("click ignored", "state", that.game.State(), "row", row, "col", col)
		return that.game.LastResult(), nil
	}

	result, err := that.game.PlaceMarkerAt(row, col)
	if err != nil {
		return result, that.absorb("PlaceMarker", err)
	}

	if result.IsTerminal() {
		that.logger.Info("round finished", "result", result)
	}

	return result, nil
}

// Reset - handles the "reset game" input; allowed in every state.
func (that *GameController) Reset() {
	that.game.ResetGame()
}

// absorb drops illegal moves and passes every other error on.
func (that *GameController) absorb(method string, err error) error {
	if apperror.IsIllegalMove(err) {
		that.logger.Debug("illegal move ignored", "method", method, "error", err)
		return nil
	}

	return fmt.Errorf("%s failed: %w", method, err)
}
