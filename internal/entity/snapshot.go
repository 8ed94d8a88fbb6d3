package entity

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
)

// PlayerSnapshot is what the view layer needs to draw a player.
type PlayerSnapshot struct {
	Name     string `json:"name"`
	Team     string `json:"team"`
	MarkerID string `json:"marker_id"`
	ImageRef string `json:"image_ref"`
	Score    int    `json:"score"`
}

// GameSnapshot is the read model of a Game. Board cells hold marker IDs, "" for empty.
type GameSnapshot struct {
	State             GameState                    `json:"state"`
	ActivePlayerIndex int                          `json:"active_player_index"`
	Players           [PlayerSlots]*PlayerSnapshot `json:"players"`
	Board             [][]string                   `json:"board"`
	LastResult        RoundResult                  `json:"last_result"`
}

func (that *Game) Snapshot() *GameSnapshot {
	snapshot := &GameSnapshot{
		State:             that.state,
		ActivePlayerIndex: that.activePlayerIndex,
		Board:             make([][]string, that.board.Height()),
		LastResult:        that.lastResult,
	}

	for slot, player := range that.players {
		if player == nil {
			continue
		}

		snapshot.Players[slot] = &PlayerSnapshot{
			Name:     player.Name(),
			Team:     player.Team().Name(),
			MarkerID: player.Marker().ID(),
			ImageRef: player.Marker().ImageRef(),
			Score:    player.Score(),
		}
	}

	for row := range snapshot.Board {
		snapshot.Board[row] = make([]string, that.board.Width())
		for col := range snapshot.Board[row] {
			marker, _ := that.board.MarkerAt(row, col)
			snapshot.Board[row][col] = marker.ID()
		}
	}

	return snapshot
}

// RestoreGame rebuilds a Game from a snapshot. It rejects snapshots no sequence of operations
// could have produced: unknown teams or markers, a state without its players, and a last
// result that does not match the state and the board.
func RestoreGame(snapshot *GameSnapshot, opts ...GameOption) (*Game, error) {
	if snapshot == nil {
		return nil, fmt.Errorf("%w: snapshot is nil", apperror.ErrInvalidSnapshot)
	}

	game := NewGame(opts...)

	if snapshot.ActivePlayerIndex < 0 || snapshot.ActivePlayerIndex >= PlayerSlots {
		return nil, fmt.Errorf("%w: active player index %d", apperror.ErrInvalidSnapshot, snapshot.ActivePlayerIndex)
	}

	markers := make(map[string]Marker, PlayerSlots)
	teams := Teams()
	for slot, player := range snapshot.Players {
		if player == nil {
			continue
		}

		if player.Team != teams[slot].Name() {
			return nil, fmt.Errorf("%w: slot %d has team %q", apperror.ErrInvalidSnapshot, slot, player.Team)
		}

		if player.Score < 0 {
			return nil, fmt.Errorf("%w: negative score for slot %d", apperror.ErrInvalidSnapshot, slot)
		}

		restored := NewPlayer(player.Name, teams[slot])
		restored.score = Score{value: player.Score}
		game.players[slot] = restored
		markers[restored.Marker().ID()] = restored.Marker()
	}

	hasPlayers := game.players[0] != nil && game.players[1] != nil
	switch {
	case snapshot.State != StateNew && !hasPlayers:
		return nil, fmt.Errorf("%w: %s game without players", apperror.ErrInvalidSnapshot, snapshot.State)
	case snapshot.State == StateNew && len(markers) > 0:
		return nil, fmt.Errorf("%w: new game with players", apperror.ErrInvalidSnapshot)
	}

	if err := restoreBoard(game.board, snapshot.Board, markers); err != nil {
		return nil, err
	}

	game.state = snapshot.State
	game.activePlayerIndex = snapshot.ActivePlayerIndex
	game.lastResult = snapshot.LastResult

	if err := checkResult(game); err != nil {
		return nil, err
	}

	return game, nil
}

// checkResult matches the last result against the state and the board.
func checkResult(game *Game) error {
	board := game.board
	lineA := game.players[0] != nil && board.hasLine(game.players[0].Marker())
	lineB := game.players[1] != nil && board.hasLine(game.players[1].Marker())

	var ok bool
	switch {
	case game.IsStopped():
		switch game.lastResult {
		case ResultWinA:
			ok = lineA && !lineB
		case ResultWinB:
			ok = lineB && !lineA
		case ResultDraw:
			ok = board.IsFull() && !lineA && !lineB
		case ResultInProgress:
		}
	default:
		ok = game.lastResult == ResultInProgress && !lineA && !lineB && !board.IsFull()
	}

	if !ok {
		return fmt.Errorf("%w: %s game with result %s", apperror.ErrInvalidSnapshot, game.state, game.lastResult)
	}

	return nil
}

func restoreBoard(board *Board, cells [][]string, markers map[string]Marker) error {
	if len(cells) != board.height {
		return fmt.Errorf("%w: board has %d rows", apperror.ErrInvalidSnapshot, len(cells))
	}

	for row, line := range cells {
		if len(line) != board.width {
			return fmt.Errorf("%w: row %d has %d cells", apperror.ErrInvalidSnapshot, row, len(line))
		}

		for col, id := range line {
			if id == "" {
				continue
			}

			marker, ok := markers[id]
			if !ok {
				return fmt.Errorf("%w: unknown marker %q at row %d, col %d", apperror.ErrInvalidSnapshot, id, row, col)
			}

			if err := board.PlaceAt(row, col, marker); err != nil {
				return fmt.Errorf("failed to restore cell: %w", err)
			}
		}
	}

	return nil
}
