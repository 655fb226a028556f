package notation

import (
	"fmt"
	"strings"

	"github.com/rocketscienceinc/janggi-backend/internal/janggi"
)

var kindSymbols = map[janggi.Kind]byte{
	janggi.General:  'G',
	janggi.Guard:    'A',
	janggi.Horse:    'H',
	janggi.Elephant: 'E',
	janggi.Chariot:  'R',
	janggi.Cannon:   'C',
	janggi.Soldier:  'S',
}

// Symbol returns the one-letter symbol of a piece: upper case for blue, lower case for red.
func Symbol(p *janggi.Piece) byte {
	symbol, ok := kindSymbols[p.Kind()]
	if !ok {
		symbol = '?'
	}

	if p.Color() == janggi.Red {
		symbol += 'a' - 'A'
	}

	return symbol
}

// Render draws the board with row numbers on the left and column letters on
// top, preceded by a status line.
func Render(game *janggi.Game) string {
	var sb strings.Builder

	sb.WriteString(statusLine(game))
	sb.WriteString("\n")

	sb.WriteString("    ")
	for col := 1; col <= janggi.Cols; col++ {
		sb.WriteByte(columnLetters[col-1])
		sb.WriteByte(' ')
	}
	sb.WriteString("\n")

	board := game.Board()
	for row := 1; row <= janggi.Rows; row++ {
		fmt.Fprintf(&sb, "%3d ", row)
		for col := 1; col <= janggi.Cols; col++ {
			sb.WriteByte(squareSymbol(board, janggi.Coordinate{Row: row, Col: col}))
			sb.WriteByte(' ')
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

func squareSymbol(board *janggi.Board, c janggi.Coordinate) byte {
	if p := board.At(c); p != nil {
		return Symbol(p)
	}

	if janggi.InPalace(janggi.Blue, c) || janggi.InPalace(janggi.Red, c) {
		return '+'
	}

	return '.'
}

func statusLine(game *janggi.Game) string {
	switch game.State() {
	case janggi.BlueWon:
		return "BLUE WON"
	case janggi.RedWon:
		return "RED WON"
	}

	line := strings.ToUpper(game.Turn().String()) + "'S TURN"
	if game.IsInCheck(game.Turn()) {
		line += " (CHECK)"
	}

	return line
}
