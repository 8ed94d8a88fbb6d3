package entity

import (
	"testing"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRunningGame(t *testing.T, opts ...GameOption) *Game {
	t.Helper()

	game := NewGame(opts...)
	require.NoError(t, game.StartNewRound("Alice", "Bob"))

	return game
}

func playMoves(t *testing.T, game *Game, moves [][2]int) RoundResult {
	t.Helper()

	var result RoundResult
	for _, move := range moves {
		var err error
		result, err = game.PlaceMarkerAt(move[0], move[1])
		require.NoError(t, err)
	}

	return result
}

func TestNewGame(t *testing.T) {
	// When: a new game is created
	game := NewGame()

	// Then: it is NEW, without players, slot 0 active and the board empty
	assert.Equal(t, StateNew, game.State())
	assert.Equal(t, 0, game.ActivePlayerIndex())
	assert.False(t, game.Board().IsFull())

	_, ok := game.Player(0)
	assert.False(t, ok)
	_, ok = game.Player(1)
	assert.False(t, ok)
	_, ok = game.Player(2)
	assert.False(t, ok)
}

func TestGame_InitializePlayers(t *testing.T) {
	t.Run("Binds players to the registry teams in slot order", func(t *testing.T) {
		// Given: a new game
		game := NewGame()

		// When: players are initialized
		err := game.InitializePlayers("Alice", "")
		require.NoError(t, err)

		// Then: slot 0 plays Neilts and slot 1 plays Gusses, empty names allowed
		playerA, ok := game.Player(0)
		require.True(t, ok)
		assert.Equal(t, "Alice", playerA.Name())
		assert.Equal(t, TeamNeilName, playerA.Team().Name())
		assert.Equal(t, "images/neil.jpg", playerA.Marker().ImageRef())
		assert.Equal(t, 0, playerA.Score())

		playerB, ok := game.Player(1)
		require.True(t, ok)
		assert.Equal(t, "", playerB.Name())
		assert.Equal(t, TeamGusName, playerB.Team().Name())
	})

	t.Run("Rejected outside NEW", func(t *testing.T) {
		// Given: a game with a round in progress
		game := newRunningGame(t)

		// When: players are initialized again
		err := game.InitializePlayers("Carol", "Dave")

		// Then: an illegal move error is returned and the players stay
		require.ErrorIs(t, err, apperror.ErrPlayersAlreadySet)

		playerA, _ := game.Player(0)
		assert.Equal(t, "Alice", playerA.Name())
	})
}

func TestGame_StartNewRound(t *testing.T) {
	t.Run("From NEW creates players", func(t *testing.T) {
		game := NewGame()

		err := game.StartNewRound("Alice", "Bob")
		require.NoError(t, err)

		assert.Equal(t, StateInProgress, game.State())
		playerB, ok := game.Player(1)
		require.True(t, ok)
		assert.Equal(t, "Bob", playerB.Name())
	})

	t.Run("From STOPPED clears the board and keeps scores", func(t *testing.T) {
		// Given: a round won by slot 0
		game := newRunningGame(t)
		playMoves(t, game, [][2]int{{0, 0}, {1, 0}, {0, 1}, {1, 1}, {0, 2}})
		require.Equal(t, StateStopped, game.State())

		// When: a new round starts with other names
		err := game.StartNewRound("Carol", "Dave")
		require.NoError(t, err)

		// Then: the board is empty, players and scores survive
		assert.Equal(t, StateInProgress, game.State())
		assert.Equal(t, ResultInProgress, game.LastResult())
		empty, err := game.Board().IsEmptyAt(0, 0)
		require.NoError(t, err)
		assert.True(t, empty)

		playerA, _ := game.Player(0)
		assert.Equal(t, "Alice", playerA.Name())
		assert.Equal(t, 1, playerA.Score())
	})

	t.Run("Rejected while IN_PROGRESS", func(t *testing.T) {
		game := newRunningGame(t)
		_, err := game.PlaceMarkerAt(1, 1)
		require.NoError(t, err)

		err = game.StartNewRound("Alice", "Bob")

		require.ErrorIs(t, err, apperror.ErrRoundInProgress)
		empty, err := game.Board().IsEmptyAt(1, 1)
		require.NoError(t, err)
		assert.False(t, empty)
	})

	t.Run("Active slot carries over by default", func(t *testing.T) {
		// Given: slot 0 won with the fifth move, so slot 1 is active afterwards
		game := newRunningGame(t)
		playMoves(t, game, [][2]int{{0, 0}, {1, 0}, {0, 1}, {1, 1}, {0, 2}})

		// When: a new round starts
		require.NoError(t, game.StartNewRound("", ""))

		// Then: slot 1 opens
		assert.Equal(t, 1, game.ActivePlayerIndex())
	})

	t.Run("Active slot resets when configured", func(t *testing.T) {
		game := newRunningGame(t, WithTurnResetOnNewRound(true))
		playMoves(t, game, [][2]int{{0, 0}, {1, 0}, {0, 1}, {1, 1}, {0, 2}})

		require.NoError(t, game.StartNewRound("", ""))

		assert.Equal(t, 0, game.ActivePlayerIndex())
	})
}

func TestGame_PlaceMarkerAt(t *testing.T) {
	t.Run("Places the active marker and toggles the turn", func(t *testing.T) {
		// Given: a running game
		game := newRunningGame(t)

		// When: slot 0 plays (1, 1)
		result, err := game.PlaceMarkerAt(1, 1)
		require.NoError(t, err)

		// Then: the cell holds slot 0's marker and slot 1 is active
		assert.Equal(t, ResultInProgress, result)
		assert.Equal(t, 1, game.ActivePlayerIndex())

		marker, err := game.Board().MarkerAt(1, 1)
		require.NoError(t, err)
		assert.Equal(t, TeamNeilName, marker.ID())

		// When: slot 1 plays, the turn returns to slot 0
		_, err = game.PlaceMarkerAt(0, 0)
		require.NoError(t, err)
		assert.Equal(t, 0, game.ActivePlayerIndex())
	})

	t.Run("Occupied cell changes nothing", func(t *testing.T) {
		// Given: slot 0 played (0, 0)
		game := newRunningGame(t)
		_, err := game.PlaceMarkerAt(0, 0)
		require.NoError(t, err)
		before := game.Snapshot()

		// When: slot 1 plays the same cell
		_, err = game.PlaceMarkerAt(0, 0)

		// Then: an illegal move is reported, board and turn are unchanged
		require.ErrorIs(t, err, apperror.ErrCellOccupied)
		assert.Equal(t, before, game.Snapshot())
		assert.Equal(t, 1, game.ActivePlayerIndex())
	})

	t.Run("Ignored outside IN_PROGRESS", func(t *testing.T) {
		game := NewGame()

		_, err := game.PlaceMarkerAt(0, 0)

		require.ErrorIs(t, err, apperror.ErrRoundNotInProgress)
		assert.True(t, apperror.IsIllegalMove(err))
		empty, err := game.Board().IsEmptyAt(0, 0)
		require.NoError(t, err)
		assert.True(t, empty)
	})

	t.Run("Out of range is reported in any state", func(t *testing.T) {
		game := NewGame()

		_, err := game.PlaceMarkerAt(3, 3)
		require.ErrorIs(t, err, apperror.ErrOutOfRange)

		require.NoError(t, game.StartNewRound("Alice", "Bob"))
		_, err = game.PlaceMarkerAt(-1, 0)
		require.ErrorIs(t, err, apperror.ErrOutOfRange)
		assert.Equal(t, 0, game.ActivePlayerIndex())
	})

	t.Run("Win scores the active player and stops the round", func(t *testing.T) {
		// Given: a running game
		game := newRunningGame(t)

		// When: slot 0 completes the top row on move 5
		result := playMoves(t, game, [][2]int{{0, 0}, {1, 0}, {0, 1}, {1, 1}, {0, 2}})

		// Then: slot 0 wins with score 1, slot 1 has 0 and the turn still toggled
		assert.Equal(t, ResultWinA, result)
		assert.Equal(t, StateStopped, game.State())
		assert.Equal(t, ResultWinA, game.LastResult())
		assert.Equal(t, 1, game.ActivePlayerIndex())

		playerA, _ := game.Player(0)
		playerB, _ := game.Player(1)
		assert.Equal(t, 1, playerA.Score())
		assert.Equal(t, 0, playerB.Score())

		// When: the remaining moves are attempted
		for _, move := range [][2]int{{2, 0}, {2, 1}, {2, 2}, {1, 2}} {
			_, err := game.PlaceMarkerAt(move[0], move[1])
			require.ErrorIs(t, err, apperror.ErrRoundNotInProgress)
		}

		// Then: nothing changes
		assert.Equal(t, StateStopped, game.State())
		assert.Equal(t, 1, playerA.Score())
		empty, err := game.Board().IsEmptyAt(2, 2)
		require.NoError(t, err)
		assert.True(t, empty)
	})

	t.Run("Slot 1 win", func(t *testing.T) {
		game := newRunningGame(t)

		result := playMoves(t, game, [][2]int{{0, 0}, {0, 2}, {1, 0}, {1, 1}, {2, 2}, {2, 0}})

		assert.Equal(t, ResultWinB, result)
		playerB, _ := game.Player(1)
		assert.Equal(t, 1, playerB.Score())
	})

	t.Run("Draw stops the round without scoring", func(t *testing.T) {
		game := newRunningGame(t)

		result := playMoves(t, game, [][2]int{
			{0, 0}, {0, 1}, {0, 2}, {1, 1}, {1, 0}, {1, 2}, {2, 1}, {2, 0}, {2, 2},
		})

		assert.Equal(t, ResultDraw, result)
		assert.Equal(t, StateStopped, game.State())
		assert.True(t, game.Board().IsFull())
		playerA, _ := game.Player(0)
		playerB, _ := game.Player(1)
		assert.Equal(t, 0, playerA.Score())
		assert.Equal(t, 0, playerB.Score())
	})

	t.Run("Fails fast without players", func(t *testing.T) {
		// Given: an IN_PROGRESS game that lost its players
		game := NewGame()
		game.state = StateInProgress

		// When: a marker is placed
		_, err := game.PlaceMarkerAt(0, 0)

		// Then: the invariant violation is reported, not absorbed as a misclick
		require.ErrorIs(t, err, apperror.ErrPlayersNotSet)
		assert.False(t, apperror.IsIllegalMove(err))
	})
}

func TestGame_ResetGame(t *testing.T) {
	// Given: a game where slot 0 scored
	game := newRunningGame(t)
	playMoves(t, game, [][2]int{{0, 0}, {1, 0}, {0, 1}, {1, 1}, {0, 2}})

	// When: the game is reset twice
	game.ResetGame()
	first := game.Snapshot()
	game.ResetGame()

	// Then: both resets give the same NEW state without players
	assert.Equal(t, first, game.Snapshot())
	assert.Equal(t, StateNew, game.State())
	assert.Equal(t, 0, game.ActivePlayerIndex())
	assert.False(t, game.Board().IsFull())
	_, ok := game.Player(0)
	assert.False(t, ok)

	// When: the same names play again
	require.NoError(t, game.StartNewRound("Alice", "Bob"))

	// Then: their scores start from zero
	playerA, _ := game.Player(0)
	assert.Equal(t, 0, playerA.Score())
}
