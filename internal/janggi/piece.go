package janggi

import (
	"errors"
	"fmt"
)

var ErrUnknownKind = errors.New("unknown piece kind")

type Kind int8

const (
	General Kind = iota
	Guard
	Horse
	Elephant
	Chariot
	Cannon
	Soldier

	numKinds
)

var kindNames = [numKinds]string{
	General:  "general",
	Guard:    "guard",
	Horse:    "horse",
	Elephant: "elephant",
	Chariot:  "chariot",
	Cannon:   "cannon",
	Soldier:  "soldier",
}

func (k Kind) String() string {
	if k < 0 || k >= numKinds {
		return fmt.Sprintf("kind(%d)", int8(k))
	}
	return kindNames[k]
}

func (k Kind) MarshalText() ([]byte, error) {
	if k < 0 || k >= numKinds {
		return nil, fmt.Errorf("%w: %d", ErrUnknownKind, int8(k))
	}
	return []byte(kindNames[k]), nil
}

func (k *Kind) UnmarshalText(text []byte) error {
	for kind, name := range kindNames {
		if name == string(text) {
			*k = Kind(kind)
			return nil
		}
	}
	return fmt.Errorf("%w: %q", ErrUnknownKind, string(text))
}

// Piece is owned by a Board; its position only changes together with the grid cell it occupies.
type Piece struct {
	kind  Kind
	color Color
	pos   Coordinate
}

func NewPiece(kind Kind, color Color, pos Coordinate) *Piece {
	return &Piece{kind: kind, color: color, pos: pos}
}

func (p *Piece) Kind() Kind {
	return p.kind
}

func (p *Piece) Color() Color {
	return p.color
}

func (p *Piece) Position() Coordinate {
	return p.pos
}

func (p *Piece) String() string {
	return p.color.String() + " " + p.kind.String()
}

// HasPathTo reports whether the piece can reach dst on b, ignoring turn order
// and self-check. A piece always has a path to its own square.
func (p *Piece) HasPathTo(dst Coordinate, b *Board) bool {
	if dst == p.pos {
		return true
	}
	if !dst.Valid() {
		return false
	}
	return capabilities[p.kind].hasPathTo(p, dst, b)
}

// BlockingSquares returns the squares a defender could occupy to cut the
// piece's line to dst. jumped is only consulted for cannons and is excluded
// from their result.
func (p *Piece) BlockingSquares(dst, jumped Coordinate) []Coordinate {
	return capabilities[p.kind].blockingSquares(p, dst, jumped)
}

// JumpedSquare returns the square of the single piece a cannon hops over on its
// way to dst.
func (p *Piece) JumpedSquare(dst Coordinate, b *Board) (Coordinate, bool) {
	if p.kind != Cannon {
		return Coordinate{}, false
	}

	squares, ok := between(p.pos, dst)
	if !ok {
		return Coordinate{}, false
	}

	for _, sq := range squares {
		if b.At(sq) != nil {
			return sq, true
		}
	}

	return Coordinate{}, false
}
