// Package notation converts squares to and from their textual form and renders boards as text.
//
// A square is written as a column letter a-i followed by a row number 1-10,
// e.g. "a4" is row 4, column 1.
package notation

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/rocketscienceinc/janggi-backend/internal/apperror"
	"github.com/rocketscienceinc/janggi-backend/internal/janggi"
)

const columnLetters = "abcdefghi"

// ParseSquare parses a square such as "e9".
func ParseSquare(s string) (janggi.Coordinate, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if len(s) < 2 || len(s) > 3 {
		return janggi.Coordinate{}, fmt.Errorf("%w: %q", apperror.ErrInvalidCoordinate, s)
	}

	col := strings.IndexByte(columnLetters, s[0]) + 1
	if col == 0 {
		return janggi.Coordinate{}, fmt.Errorf("%w: column %q", apperror.ErrInvalidCoordinate, s[:1])
	}

	// strconv accepts signs and leading zeros; only 1-10 spelled plainly are squares.
	digits := s[1:]
	if digits[0] < '1' || digits[0] > '9' {
		return janggi.Coordinate{}, fmt.Errorf("%w: row %q", apperror.ErrInvalidCoordinate, digits)
	}

	row, err := strconv.Atoi(digits)
	if err != nil || row > janggi.Rows {
		return janggi.Coordinate{}, fmt.Errorf("%w: row %q", apperror.ErrInvalidCoordinate, digits)
	}

	return janggi.Coordinate{Row: row, Col: col}, nil
}

// ParseMove parses an origin and a destination square.
func ParseMove(from, to string) (janggi.Coordinate, janggi.Coordinate, error) {
	origin, err := ParseSquare(from)
	if err != nil {
		return janggi.Coordinate{}, janggi.Coordinate{}, fmt.Errorf("origin: %w", err)
	}

	destination, err := ParseSquare(to)
	if err != nil {
		return janggi.Coordinate{}, janggi.Coordinate{}, fmt.Errorf("destination: %w", err)
	}

	return origin, destination, nil
}

// FormatSquare is the inverse of ParseSquare. Off-board coordinates format as "?".
func FormatSquare(c janggi.Coordinate) string {
	if !c.Valid() {
		return "?"
	}
	return string(columnLetters[c.Col-1]) + strconv.Itoa(c.Row)
}

func FormatSquares(squares []janggi.Coordinate) []string {
	formatted := make([]string, 0, len(squares))
	for _, sq := range squares {
		formatted = append(formatted, FormatSquare(sq))
	}
	return formatted
}
