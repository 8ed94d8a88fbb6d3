package entity

import (
	"testing"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	markerX = NewMarker("X", "images/x.jpg")
	markerO = NewMarker("O", "images/o.jpg")
)

// fillBoard places rows of "X", "O" or "" onto an empty board.
func fillBoard(t *testing.T, board *Board, rows [][]string) {
	t.Helper()

	for row, line := range rows {
		for col, id := range line {
			switch id {
			case "X":
				require.NoError(t, board.PlaceAt(row, col, markerX))
			case "O":
				require.NoError(t, board.PlaceAt(row, col, markerO))
			}
		}
	}
}

func TestBoard_PlaceAt(t *testing.T) {
	t.Run("Places marker into an empty cell", func(t *testing.T) {
		// Given: an empty board
		board := NewBoard()

		// When: a marker is placed at (1, 2)
		err := board.PlaceAt(1, 2, markerX)

		// Then: the cell holds the marker and the others stay empty
		require.NoError(t, err)

		marker, err := board.MarkerAt(1, 2)
		require.NoError(t, err)
		assert.True(t, marker.Equal(markerX))

		empty, err := board.IsEmptyAt(2, 1)
		require.NoError(t, err)
		assert.True(t, empty)
	})

	t.Run("Error on cell already occupied", func(t *testing.T) {
		// Given: a board with X at (0, 0)
		board := NewBoard()
		require.NoError(t, board.PlaceAt(0, 0, markerX))

		// When: O is placed on the same cell
		err := board.PlaceAt(0, 0, markerO)

		// Then: ErrCellOccupied is returned and X stays
		require.ErrorIs(t, err, apperror.ErrCellOccupied)
		assert.True(t, apperror.IsIllegalMove(err))

		marker, err := board.MarkerAt(0, 0)
		require.NoError(t, err)
		assert.True(t, marker.Equal(markerX))
	})

	t.Run("Error on coordinates out of range", func(t *testing.T) {
		board := NewBoard()

		for _, cell := range [][2]int{{-1, 0}, {0, -1}, {3, 0}, {0, 3}, {10, 10}} {
			// When: a marker is placed outside the grid
			err := board.PlaceAt(cell[0], cell[1], markerX)

			// Then: ErrOutOfRange is returned and it is not an illegal move
			require.ErrorIs(t, err, apperror.ErrOutOfRange)
			assert.False(t, apperror.IsIllegalMove(err))
		}
	})
}

func TestBoard_ReadOutOfRange(t *testing.T) {
	board := NewBoard()

	_, err := board.MarkerAt(3, 0)
	require.ErrorIs(t, err, apperror.ErrOutOfRange)

	_, err = board.IsEmptyAt(0, -1)
	require.ErrorIs(t, err, apperror.ErrOutOfRange)
}

func TestBoard_IsFull(t *testing.T) {
	t.Run("IsFull agrees with IsEmptyAt", func(t *testing.T) {
		// Given: a board filled cell by cell
		board := NewBoard()

		for i := 0; i < BoardSize*BoardSize; i++ {
			anyEmpty := false
			for row := 0; row < board.Height(); row++ {
				for col := 0; col < board.Width(); col++ {
					empty, err := board.IsEmptyAt(row, col)
					require.NoError(t, err)
					anyEmpty = anyEmpty || empty
				}
			}

			// Then: the board is full exactly when no cell is empty
			assert.Equal(t, !anyEmpty, board.IsFull())

			require.NoError(t, board.PlaceAt(i/BoardSize, i%BoardSize, markerX))
		}

		assert.True(t, board.IsFull())
	})

	t.Run("Clear empties a full board", func(t *testing.T) {
		// Given: a full board
		board := NewBoard()
		fillBoard(t, board, [][]string{
			{"X", "O", "X"},
			{"X", "O", "O"},
			{"O", "X", "X"},
		})
		require.True(t, board.IsFull())

		// When: the board is cleared
		board.Clear()

		// Then: it is no longer full and every cell is empty
		assert.False(t, board.IsFull())
		for row := 0; row < BoardSize; row++ {
			for col := 0; col < BoardSize; col++ {
				empty, err := board.IsEmptyAt(row, col)
				require.NoError(t, err)
				assert.True(t, empty)
			}
		}
	})
}

func TestBoard_evaluate(t *testing.T) {
	t.Run("Row win", func(t *testing.T) {
		// Given: X at (0,0) and (0,1)
		board := NewBoard()
		fillBoard(t, board, [][]string{{"X", "X", ""}})

		// When: X is placed at (0,2)
		require.NoError(t, board.PlaceAt(0, 2, markerX))
		result := board.evaluate(0, 2, markerX, 0)

		// Then: slot 0 wins
		assert.Equal(t, ResultWinA, result)
	})

	t.Run("Column win is attributed to the active slot", func(t *testing.T) {
		board := NewBoard()
		fillBoard(t, board, [][]string{
			{"", "O", ""},
			{"", "O", ""},
		})

		require.NoError(t, board.PlaceAt(2, 1, markerO))

		assert.Equal(t, ResultWinB, board.evaluate(2, 1, markerO, 1))
	})

	t.Run("Diagonal win", func(t *testing.T) {
		board := NewBoard()
		fillBoard(t, board, [][]string{
			{"X", "", ""},
			{"", "X", ""},
		})

		require.NoError(t, board.PlaceAt(2, 2, markerX))

		assert.Equal(t, ResultWinA, board.evaluate(2, 2, markerX, 0))
	})

	t.Run("Anti-diagonal win", func(t *testing.T) {
		board := NewBoard()
		fillBoard(t, board, [][]string{
			{"", "", "O"},
			{"", "O", ""},
		})

		require.NoError(t, board.PlaceAt(2, 0, markerO))

		assert.Equal(t, ResultWinB, board.evaluate(2, 0, markerO, 1))
	})

	t.Run("Draw on a full board without lines", func(t *testing.T) {
		// Given: a known non-winning board missing its last cell
		board := NewBoard()
		fillBoard(t, board, [][]string{
			{"X", "O", "X"},
			{"X", "O", "O"},
			{"O", "X", ""},
		})

		// When: X fills the last cell
		require.NoError(t, board.PlaceAt(2, 2, markerX))

		// Then: the round is a draw
		assert.Equal(t, ResultDraw, board.evaluate(2, 2, markerX, 0))
	})

	t.Run("Ongoing round", func(t *testing.T) {
		board := NewBoard()
		fillBoard(t, board, [][]string{
			{"X", "O", ""},
			{"", "X", ""},
		})

		require.NoError(t, board.PlaceAt(2, 1, markerO))

		assert.Equal(t, ResultInProgress, board.evaluate(2, 1, markerO, 1))
	})

	t.Run("Mixed line is not a win", func(t *testing.T) {
		board := NewBoard()
		fillBoard(t, board, [][]string{{"X", "O", ""}})

		require.NoError(t, board.PlaceAt(0, 2, markerX))

		assert.Equal(t, ResultInProgress, board.evaluate(0, 2, markerX, 0))
	})

	t.Run("Diagonals are skipped on non-square boards", func(t *testing.T) {
		// Given: a 4x3 board with X on the cells (0,0), (1,1), (2,2)
		board := newBoard(4, 3)
		require.NoError(t, board.PlaceAt(0, 0, markerX))
		require.NoError(t, board.PlaceAt(1, 1, markerX))
		require.NoError(t, board.PlaceAt(2, 2, markerX))

		// Then: no win is reported
		assert.Equal(t, ResultInProgress, board.evaluate(2, 2, markerX, 0))
	})
}
