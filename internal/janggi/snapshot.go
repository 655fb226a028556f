package janggi

import (
	"errors"
	"fmt"
)

var ErrUnknownState = errors.New("unknown game state")

// PieceSnapshot is the serialisable form of a piece.
type PieceSnapshot struct {
	Kind  Kind  `json:"kind"`
	Color Color `json:"color"`
	Row   int   `json:"row"`
	Col   int   `json:"col"`
}

// Snapshot is the serialisable form of a game. Pieces are listed blue
// registry first, then red, each in registry order.
type Snapshot struct {
	Turn   Color           `json:"turn"`
	State  State           `json:"state"`
	Pieces []PieceSnapshot `json:"pieces"`
}

func (that *Game) Snapshot() Snapshot {
	snapshot := Snapshot{
		Turn:  that.turn,
		State: that.state,
	}

	for _, color := range []Color{Blue, Red} {
		for _, p := range that.board.pieces[color] {
			snapshot.Pieces = append(snapshot.Pieces, PieceSnapshot{
				Kind:  p.kind,
				Color: p.color,
				Row:   p.pos.Row,
				Col:   p.pos.Col,
			})
		}
	}

	return snapshot
}

// Restore rebuilds a game from a snapshot.
func Restore(snapshot Snapshot) (*Game, error) {
	switch snapshot.State {
	case Unfinished, BlueWon, RedWon:
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownState, snapshot.State)
	}

	if snapshot.Turn != Blue && snapshot.Turn != Red {
		return nil, fmt.Errorf("%w: %d", ErrUnknownColor, int8(snapshot.Turn))
	}

	board := NewBoard()
	for _, p := range snapshot.Pieces {
		at := Coordinate{Row: p.Row, Col: p.Col}
		if _, err := board.Place(p.Kind, p.Color, at); err != nil {
			return nil, fmt.Errorf("failed to place %s %s: %w", p.Color, p.Kind, err)
		}
	}

	if err := board.verify(); err != nil {
		return nil, err
	}

	return &Game{
		board: board,
		turn:  snapshot.Turn,
		state: snapshot.State,
	}, nil
}
