package apperror

import (
	"errors"
	"fmt"
)

var (
	// ErrOutOfRange means the caller addressed a cell outside the grid. It is never absorbed.
	ErrOutOfRange = errors.New("coordinate out of range")

	// ErrIllegalMove covers ordinary misclicks; the controller ignores them.
	ErrIllegalMove = errors.New("illegal move")

	ErrCellOccupied       = fmt.Errorf("%w: cell is already occupied", ErrIllegalMove)
	ErrRoundNotInProgress = fmt.Errorf("%w: round is not in progress", ErrIllegalMove)
	ErrRoundInProgress    = fmt.Errorf("%w: round is already in progress", ErrIllegalMove)
	ErrPlayersAlreadySet  = fmt.Errorf("%w: players are already set", ErrIllegalMove)

	ErrPlayersNotSet   = errors.New("players are not set")
	ErrSessionNotFound = errors.New("session not found")
	ErrInvalidSnapshot = errors.New("invalid game snapshot")
)

func IsIllegalMove(err error) bool {
	return errors.Is(err, ErrIllegalMove)
}
