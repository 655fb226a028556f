package janggi

import (
	"errors"
	"fmt"
)

var (
	ErrNoPieceAtOrigin  = errors.New("no piece at origin")
	ErrFriendlyOccupied = errors.New("destination is occupied by a friendly piece")
	ErrNoPath           = errors.New("piece has no path to destination")
	ErrSelfCheck        = errors.New("move leaves own general in check")
)

// Validate checks whether the piece on from may move to to, ignoring whose
// turn it is. The board is left exactly as it was found.
func (that *Board) Validate(from, to Coordinate) error {
	if !from.Valid() || !to.Valid() {
		return fmt.Errorf("%w: %s -> %s", ErrOffBoard, from, to)
	}

	mover := that.At(from)
	if mover == nil {
		return fmt.Errorf("%w: %s", ErrNoPieceAtOrigin, from)
	}

	if target := that.At(to); target != nil && target != mover && target.color == mover.color {
		return fmt.Errorf("%w: %s", ErrFriendlyOccupied, to)
	}

	if !mover.HasPathTo(to, that) {
		return fmt.Errorf("%w: %s %s -> %s", ErrNoPath, mover, from, to)
	}

	selfCheck := that.probe(from, to, func() bool {
		return that.IsInCheck(mover.color)
	})
	if selfCheck {
		return fmt.Errorf("%w: %s %s -> %s", ErrSelfCheck, mover, from, to)
	}

	return nil
}

// AttemptMove reports whether the move from -> to is legal for the piece on from.
func (that *Board) AttemptMove(from, to Coordinate) bool {
	return that.Validate(from, to) == nil
}

// LegalDestinations lists every square the piece on from can legally move to,
// its own square included when passing is legal.
func (that *Board) LegalDestinations(from Coordinate) []Coordinate {
	if that.At(from) == nil {
		return nil
	}

	var destinations []Coordinate
	for _, sq := range AllSquares() {
		if that.AttemptMove(from, sq) {
			destinations = append(destinations, sq)
		}
	}

	return destinations
}

// HasLegalMove reports whether any piece of color can make a move other than
// passing. It scans the whole board and is meant for diagnostics, not for the
// checkmate decision.
func (that *Board) HasLegalMove(color Color) bool {
	for _, piece := range append([]*Piece(nil), that.pieces[color]...) {
		from := piece.pos
		for _, sq := range AllSquares() {
			if sq != from && that.AttemptMove(from, sq) {
				return true
			}
		}
	}
	return false
}
