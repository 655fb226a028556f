package janggi

import (
	"errors"
	"fmt"
	"slices"
)

var (
	ErrOffBoard         = errors.New("square is off the board")
	ErrSquareOccupied   = errors.New("square is already occupied")
	ErrDuplicateGeneral = errors.New("color already has a general")
	ErrMissingGeneral   = errors.New("color has no general")
)

// Board is the occupancy grid together with each color's registry of live
// pieces. Row 0 and column 0 of the grid are never used.
type Board struct {
	grid     [Rows + 1][Cols + 1]*Piece
	pieces   [numColors][]*Piece
	generals [numColors]*Piece
}

func NewBoard() *Board {
	return &Board{}
}

// Place puts a new piece on the board and in its owner's registry.
func (that *Board) Place(kind Kind, color Color, at Coordinate) (*Piece, error) {
	if !at.Valid() {
		return nil, fmt.Errorf("%w: %s", ErrOffBoard, at)
	}

	if kind < 0 || kind >= numKinds {
		return nil, fmt.Errorf("%w: %d", ErrUnknownKind, int8(kind))
	}

	if color != Blue && color != Red {
		return nil, fmt.Errorf("%w: %d", ErrUnknownColor, int8(color))
	}

	if that.At(at) != nil {
		return nil, fmt.Errorf("%w: %s", ErrSquareOccupied, at)
	}

	if kind == General && that.generals[color] != nil {
		return nil, fmt.Errorf("%w: %s", ErrDuplicateGeneral, color)
	}

	piece := NewPiece(kind, color, at)
	that.grid[at.Row][at.Col] = piece
	that.pieces[color] = append(that.pieces[color], piece)

	if kind == General {
		that.generals[color] = piece
	}

	return piece, nil
}

// At returns the piece on c, or nil for an empty or off-board square.
func (that *Board) At(c Coordinate) *Piece {
	if !c.Valid() {
		return nil
	}
	return that.grid[c.Row][c.Col]
}

// Pieces returns color's live pieces in registry order. The slice must not be modified.
func (that *Board) Pieces(color Color) []*Piece {
	return that.pieces[color]
}

func (that *Board) General(color Color) *Piece {
	return that.generals[color]
}

// verify checks that both generals are present.
func (that *Board) verify() error {
	for _, color := range []Color{Blue, Red} {
		if that.generals[color] == nil {
			return fmt.Errorf("%w: %s", ErrMissingGeneral, color)
		}
	}
	return nil
}

// detach drops p from its registry and returns the index it held.
func (that *Board) detach(p *Piece) int {
	registry := that.pieces[p.color]
	idx := slices.Index(registry, p)
	if idx < 0 {
		return -1
	}
	that.pieces[p.color] = slices.Delete(registry, idx, idx+1)
	return idx
}

// attach puts p back into its registry at idx.
func (that *Board) attach(p *Piece, idx int) {
	that.pieces[p.color] = slices.Insert(that.pieces[p.color], idx, p)
}

// move relocates the piece on from to to and returns the captured piece, if any.
// Grid cell and piece position are updated together.
func (that *Board) move(from, to Coordinate) (mover, captured *Piece, capturedIdx int) {
	mover = that.At(from)
	capturedIdx = -1

	if target := that.At(to); target != nil && target != mover {
		captured = target
		capturedIdx = that.detach(captured)
	}

	that.grid[from.Row][from.Col] = nil
	that.grid[to.Row][to.Col] = mover
	mover.pos = to

	return mover, captured, capturedIdx
}

// unmove reverses move.
func (that *Board) unmove(from, to Coordinate, mover, captured *Piece, capturedIdx int) {
	that.grid[to.Row][to.Col] = captured
	that.grid[from.Row][from.Col] = mover
	mover.pos = from

	if captured != nil {
		that.attach(captured, capturedIdx)
	}
}

// probe applies from->to, evaluates fn on the resulting position and always
// restores the original position before returning, including when fn panics.
// Nothing else may touch the board while a probe is running.
func (that *Board) probe(from, to Coordinate, fn func() bool) bool {
	mover, captured, capturedIdx := that.move(from, to)
	defer that.unmove(from, to, mover, captured, capturedIdx)

	return fn()
}
