package entity

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
)

// RoundResult is the outcome of the round after a placement.
type RoundResult int

const (
	ResultInProgress RoundResult = iota
	ResultWinA
	ResultWinB
	ResultDraw
)

func (that RoundResult) String() string {
	switch that {
	case ResultInProgress:
		return "in_progress"
	case ResultWinA:
		return "win_a"
	case ResultWinB:
		return "win_b"
	case ResultDraw:
		return "draw"
	default:
		return "unknown"
	}
}

func (that RoundResult) IsTerminal() bool {
	return that != ResultInProgress
}

type axis int

const (
	axisRow axis = iota
	axisColumn
	axisDiagonal
	axisAntiDiagonal
)

// lineComplete reports whether every cell of the line equals marker.
// index selects the row or column and is ignored for the diagonals.
func (that *Board) lineComplete(a axis, index int, marker Marker) bool {
	length := that.width
	if a == axisColumn {
		length = that.height
	}

	for i := 0; i < length; i++ {
		var row, col int
		switch a {
		case axisRow:
			row, col = index, i
		case axisColumn:
			row, col = i, index
		case axisDiagonal:
			row, col = i, i
		case axisAntiDiagonal:
			row, col = i, that.width-1-i
		}

		if !that.cells[row*that.width+col].Equal(marker) {
			return false
		}
	}

	return true
}

// completesLine checks only the lines through the cell just played, so the cost is O(width+height).
// Both diagonals are checked whenever the board is square; on a 3x3 board that is cheaper than
// working out which diagonal the cell lies on.
func (that *Board) completesLine(row, col int, marker Marker) bool {
	if marker.IsEmpty() {
		return false
	}

	if that.lineComplete(axisRow, row, marker) || that.lineComplete(axisColumn, col, marker) {
		return true
	}

	if that.width != that.height {
		return false
	}

	return that.lineComplete(axisDiagonal, 0, marker) || that.lineComplete(axisAntiDiagonal, 0, marker)
}

// hasLine scans every line on the board for marker.
func (that *Board) hasLine(marker Marker) bool {
	for row := 0; row < that.height; row++ {
		if that.completesLine(row, 0, marker) {
			return true
		}
	}

	for col := 0; col < that.width; col++ {
		if that.lineComplete(axisColumn, col, marker) {
			return true
		}
	}

	return false
}

// evaluate decides the round after marker was placed at (row, col) by the player in activeSlot.
func (that *Board) evaluate(row, col int, marker Marker, activeSlot int) RoundResult {
	switch {
	case that.completesLine(row, col, marker):
		if activeSlot == 0 {
			return ResultWinA
		}
		return ResultWinB
	case that.IsFull():
		return ResultDraw
	default:
		return ResultInProgress
	}
}

func (that RoundResult) MarshalText() ([]byte, error) {
	return []byte(that.String()), nil
}

func (that *RoundResult) UnmarshalText(text []byte) error {
	for _, result := range []RoundResult{ResultInProgress, ResultWinA, ResultWinB, ResultDraw} {
		if result.String() == string(text) {
			*that = result
			return nil
		}
	}

	return fmt.Errorf("%w: unknown round result %q", apperror.ErrInvalidSnapshot, text)
}
