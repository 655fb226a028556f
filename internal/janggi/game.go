package janggi

import (
	"fmt"

	"github.com/rocketscienceinc/janggi-backend/internal/apperror"
)

type State string

const (
	Unfinished State = "UNFINISHED"
	BlueWon    State = "BLUE_WON"
	RedWon     State = "RED_WON"
)

func wonBy(color Color) State {
	if color == Blue {
		return BlueWon
	}
	return RedWon
}

// Game owns a board, whose turn it is and the outcome.
type Game struct {
	board *Board
	turn  Color
	state State
}

// NewGame starts a game from the opening layout with blue to move.
func NewGame() *Game {
	return &Game{
		board: NewOpeningBoard(),
		turn:  Blue,
		state: Unfinished,
	}
}

func (that *Game) State() State {
	return that.state
}

func (that *Game) Turn() Color {
	return that.turn
}

func (that *Game) IsFinished() bool {
	return that.state != Unfinished
}

// Board exposes the position for read-only use.
func (that *Game) Board() *Board {
	return that.board
}

func (that *Game) IsInCheck(color Color) bool {
	return that.board.IsInCheck(color)
}

// MakeMove commits a move for the side to move. Moving a piece onto its own
// square passes the turn. A rejected move leaves the game untouched.
func (that *Game) MakeMove(from, to Coordinate) error {
	if that.IsFinished() {
		return apperror.ErrGameFinished
	}

	mover := that.board.At(from)
	if mover == nil {
		return fmt.Errorf("%w: %s", ErrNoPieceAtOrigin, from)
	}

	if mover.color != that.turn {
		return fmt.Errorf("%w: %s to move", apperror.ErrNotYourTurn, that.turn)
	}

	if err := that.board.Validate(from, to); err != nil {
		return err
	}

	that.board.move(from, to)
	that.turn = that.turn.Opponent()

	if that.board.IsInCheck(that.turn) && that.board.IsCheckmate(that.turn) {
		that.state = wonBy(mover.color)
	}

	return nil
}

// LegalDestinations lists the legal moves of the piece on from when it belongs
// to the side to move.
func (that *Game) LegalDestinations(from Coordinate) []Coordinate {
	if that.IsFinished() {
		return nil
	}

	piece := that.board.At(from)
	if piece == nil || piece.color != that.turn {
		return nil
	}

	return that.board.LegalDestinations(from)
}
