package janggi

// palace is a 3x3 zone described by its top row; columns are always 4-6.
type palace struct {
	top int
}

var palaces = [numColors]palace{
	Blue: {top: 8},
	Red:  {top: 1},
}

func (p palace) contains(c Coordinate) bool {
	return c.Row >= p.top && c.Row <= p.top+2 && c.Col >= 4 && c.Col <= 6
}

func (p palace) center() Coordinate {
	return Coordinate{Row: p.top + 1, Col: 5}
}

// onDiagonal reports whether c is the center or one of the four corners, the
// only squares joined by the palace's diagonal lines.
func (p palace) onDiagonal(c Coordinate) bool {
	if !p.contains(c) {
		return false
	}
	return (c.Row-p.top)%2 == (c.Col-4)%2
}

func (p palace) squares() []Coordinate {
	squares := make([]Coordinate, 0, 9)
	for row := p.top; row <= p.top+2; row++ {
		for col := 4; col <= 6; col++ {
			squares = append(squares, Coordinate{Row: row, Col: col})
		}
	}
	return squares
}

func InPalace(color Color, c Coordinate) bool {
	return palaces[color].contains(c)
}

func PalaceCenter(color Color) Coordinate {
	return palaces[color].center()
}

// PalaceSquares returns the nine squares of color's palace.
func PalaceSquares(color Color) []Coordinate {
	return palaces[color].squares()
}

// palaceOf returns the palace holding both a and b.
func palaceOf(a, b Coordinate) (palace, bool) {
	for _, p := range palaces {
		if p.contains(a) && p.contains(b) {
			return p, true
		}
	}
	return palace{}, false
}

// diagonalLink reports whether a and b lie on the same palace diagonal line:
// corner to center, center to corner, or corner to the opposite corner.
func diagonalLink(a, b Coordinate) bool {
	p, ok := palaceOf(a, b)
	if !ok || a == b {
		return false
	}
	if !p.onDiagonal(a) || !p.onDiagonal(b) {
		return false
	}
	return abs(a.Row-b.Row) == abs(a.Col-b.Col)
}
