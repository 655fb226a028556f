package janggi

import (
	"errors"
	"fmt"
)

const (
	Rows = 10
	Cols = 9
)

var ErrUnknownColor = errors.New("unknown color")

// Color identifies one of the two sides. Blue starts at the bottom (rows 7-10) and moves first.
type Color int8

const (
	Blue Color = iota
	Red

	numColors = 2
)

func (c Color) Opponent() Color {
	if c == Blue {
		return Red
	}
	return Blue
}

func (c Color) String() string {
	switch c {
	case Blue:
		return "blue"
	case Red:
		return "red"
	default:
		return fmt.Sprintf("color(%d)", int8(c))
	}
}

func (c Color) MarshalText() ([]byte, error) {
	if c != Blue && c != Red {
		return nil, fmt.Errorf("%w: %d", ErrUnknownColor, int8(c))
	}
	return []byte(c.String()), nil
}

func (c *Color) UnmarshalText(text []byte) error {
	parsed, err := ParseColor(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

func ParseColor(s string) (Color, error) {
	switch s {
	case "blue":
		return Blue, nil
	case "red":
		return Red, nil
	default:
		return Blue, fmt.Errorf("%w: %q", ErrUnknownColor, s)
	}
}

// Coordinate is a (row, column) square, rows 1-10 top to bottom, columns 1-9 left to right.
type Coordinate struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func (c Coordinate) Valid() bool {
	return c.Row >= 1 && c.Row <= Rows && c.Col >= 1 && c.Col <= Cols
}

func (c Coordinate) Offset(dr, dc int) Coordinate {
	return Coordinate{Row: c.Row + dr, Col: c.Col + dc}
}

func (c Coordinate) String() string {
	return fmt.Sprintf("(%d,%d)", c.Row, c.Col)
}

// AllSquares lists every square of the board in row-major order.
func AllSquares() []Coordinate {
	squares := make([]Coordinate, 0, Rows*Cols)
	for row := 1; row <= Rows; row++ {
		for col := 1; col <= Cols; col++ {
			squares = append(squares, Coordinate{Row: row, Col: col})
		}
	}
	return squares
}

func sign(n int) int {
	switch {
	case n > 0:
		return 1
	case n < 0:
		return -1
	default:
		return 0
	}
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
