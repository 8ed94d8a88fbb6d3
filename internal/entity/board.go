package entity

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
)

const BoardSize = 3

// Board is a width×height grid addressed by (row, col). Empty cells hold the zero Marker.
type Board struct {
	width  int
	height int
	cells  []Marker
}

func NewBoard() *Board {
	return newBoard(BoardSize, BoardSize)
}

func newBoard(width, height int) *Board {
	return &Board{
		width:  width,
		height: height,
		cells:  make([]Marker, width*height),
	}
}

func (that *Board) Width() int {
	return that.width
}

func (that *Board) Height() int {
	return that.height
}

// PlaceAt puts marker into an empty cell. Occupied cells are never overwritten.
func (that *Board) PlaceAt(row, col int, marker Marker) error {
	idx, err := that.index(row, col)
	if err != nil {
		return err
	}

	if !that.cells[idx].IsEmpty() {
		return fmt.Errorf("%w: row %d, col %d", apperror.ErrCellOccupied, row, col)
	}

	that.cells[idx] = marker

	return nil
}

// MarkerAt returns the marker in the cell, or the zero Marker when it is empty.
func (that *Board) MarkerAt(row, col int) (Marker, error) {
	idx, err := that.index(row, col)
	if err != nil {
		return Marker{}, err
	}

	return that.cells[idx], nil
}

func (that *Board) IsEmptyAt(row, col int) (bool, error) {
	marker, err := that.MarkerAt(row, col)
	if err != nil {
		return false, err
	}

	return marker.IsEmpty(), nil
}

func (that *Board) IsFull() bool {
	for _, cell := range that.cells {
		if cell.IsEmpty() {
			return false
		}
	}

	return true
}

func (that *Board) Clear() {
	for i := range that.cells {
		that.cells[i] = Marker{}
	}
}

func (that *Board) index(row, col int) (int, error) {
	if row < 0 || row >= that.height || col < 0 || col >= that.width {
		return 0, fmt.Errorf("%w: row %d, col %d on %dx%d board", apperror.ErrOutOfRange, row, col, that.width, that.height)
	}

	return row*that.width + col, nil
}
