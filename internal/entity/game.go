package entity

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
)

const PlayerSlots = 2

// GameState gates which operations a Game accepts.
type GameState int

const (
	StateNew GameState = iota
	StateInProgress
	StateStopped
)

func (that GameState) String() string {
	switch that {
	case StateNew:
		return "new"
	case StateInProgress:
		return "in_progress"
	case StateStopped:
		return "stopped"
	default:
		return "unknown"
	}
}

func (that GameState) MarshalText() ([]byte, error) {
	return []byte(that.String()), nil
}

func (that *GameState) UnmarshalText(text []byte) error {
	for _, state := range []GameState{StateNew, StateInProgress, StateStopped} {
		if state.String() == string(text) {
			*that = state
			return nil
		}
	}

	return fmt.Errorf("%w: unknown game state %q", apperror.ErrInvalidSnapshot, text)
}

type GameOption func(*Game)

// WithTurnResetOnNewRound makes slot 0 open every round instead of carrying the turn over.
func WithTurnResetOnNewRound(reset bool) GameOption {
	return func(game *Game) {
		game.resetTurnOnNewRound = reset
	}
}

// Game is one session of rounds between two players. It is not safe for concurrent use.
type Game struct {
	state             GameState
	players           [PlayerSlots]*Player
	activePlayerIndex int
	board             *Board
	lastResult        RoundResult

	resetTurnOnNewRound bool
}

func NewGame(opts ...GameOption) *Game {
	game := &Game{
		state: StateNew,
		board: NewBoard(),
	}

	for _, opt := range opts {
		opt(game)
	}

	return game
}

func (that *Game) State() GameState {
	return that.state
}

func (that *Game) Board() *Board {
	return that.board
}

// Player returns the player in slot, or false when the slot is empty or unknown.
func (that *Game) Player(slot int) (*Player, bool) {
	if slot < 0 || slot >= PlayerSlots || that.players[slot] == nil {
		return nil, false
	}

	return that.players[slot], true
}

func (that *Game) ActivePlayerIndex() int {
	return that.activePlayerIndex
}

func (that *Game) ActivePlayer() (*Player, bool) {
	return that.Player(that.activePlayerIndex)
}

// LastResult - outcome of the most recent accepted placement in the current round.
func (that *Game) LastResult() RoundResult {
	return that.lastResult
}

func (that *Game) IsNew() bool {
	return that.state == StateNew
}

func (that *Game) IsInProgress() bool {
	return that.state == StateInProgress
}

func (that *Game) IsStopped() bool {
	return that.state == StateStopped
}

// InitializePlayers binds nameA and nameB to the registry teams in slot order.
// Precondition: the game is NEW.
func (that *Game) InitializePlayers(nameA, nameB string) error {
	if !that.IsNew() {
		return fmt.Errorf("%w: game is %s", apperror.ErrPlayersAlreadySet, that.state)
	}

	teams := Teams()
	that.players = [PlayerSlots]*Player{
		NewPlayer(nameA, teams[0]),
		NewPlayer(nameB, teams[1]),
	}

	return nil
}

// StartNewRound moves the game to IN_PROGRESS. From NEW it creates the players first,
// from STOPPED it only clears the board; names are ignored in that case.
func (that *Game) StartNewRound(nameA, nameB string) error {
	switch that.state {
	case StateNew:
		if err := that.InitializePlayers(nameA, nameB); err != nil {
			return err
		}
	case StateStopped:
		that.board.Clear()
	case StateInProgress:
		return apperror.ErrRoundInProgress
	}

	if that.resetTurnOnNewRound {
		that.activePlayerIndex = 0
	}

	that.lastResult = ResultInProgress
	that.state = StateInProgress

	return nil
}

// PlaceMarkerAt places the active player's marker and settles the round.
// Errors wrapping apperror.ErrIllegalMove leave the game untouched.
func (that *Game) PlaceMarkerAt(row, col int) (RoundResult, error) {
	if _, err := that.board.index(row, col); err != nil {
		return that.lastResult, err
	}

	if !that.IsInProgress() {
		return that.lastResult, fmt.Errorf("%w: game is %s", apperror.ErrRoundNotInProgress, that.state)
	}

	player, ok := that.ActivePlayer()
	if !ok {
		return that.lastResult, fmt.Errorf("%w: slot %d is empty", apperror.ErrPlayersNotSet, that.activePlayerIndex)
	}

	marker := player.Marker()
	if err := that.board.PlaceAt(row, col, marker); err != nil {
		return that.lastResult, err
	}

	// the result must be read before the turn passes on, otherwise the win goes to the wrong slot
	result := that.board.evaluate(row, col, marker, that.activePlayerIndex)
	switch result {
	case ResultWinA, ResultWinB:
		player.IncrementScore()
		that.state = StateStopped
	case ResultDraw:
		that.state = StateStopped
	case ResultInProgress:
	}

	that.lastResult = result
	that.activePlayerIndex = 1 - that.activePlayerIndex

	return result, nil
}

// ResetGame returns to NEW and discards players and their scores.
func (that *Game) ResetGame() {
	that.players = [PlayerSlots]*Player{}
	that.activePlayerIndex = 0
	that.lastResult = ResultInProgress
	that.board.Clear()
	that.state = StateNew
}
