package entity

import (
	"errors"
	"fmt"

	"github.com/rocketscienceinc/janggi-backend/internal/apperror"
	"github.com/rocketscienceinc/janggi-backend/internal/janggi"
	"github.com/rocketscienceinc/janggi-backend/internal/notation"
)

const (
	StatusFinished = "finished"
	StatusOngoing  = "ongoing"
	StatusWaiting  = "waiting"
)

var ErrUnknownGameStatus = errors.New("unknown game status")

type Game struct {
	ID       string          `json:"id"`
	Status   string          `json:"status"`
	Winner   string          `json:"winner,omitempty"`
	Turn     string          `json:"player_turn"`
	InCheck  bool            `json:"in_check"`
	Position janggi.Snapshot `json:"position"`
	Players  []*Player       `json:"players,omitempty"`
}

// NewGame returns a waiting game set up in the opening position.
func NewGame(id string) *Game {
	engine := janggi.NewGame()

	return &Game{
		ID:       id,
		Status:   StatusWaiting,
		Turn:     engine.Turn().String(),
		Position: engine.Snapshot(),
	}
}

// Engine rebuilds the rules engine from the stored position.
func (that *Game) Engine() (*janggi.Game, error) {
	engine, err := janggi.Restore(that.Position)
	if err != nil {
		return nil, fmt.Errorf("failed to restore position of game %s: %w", that.ID, err)
	}

	return engine, nil
}

// MakeMove plays from -> to, both in square notation, on behalf of color.
// On error the game is left untouched.
func (that *Game) MakeMove(color janggi.Color, from, to string) error {
	if err := that.ConfirmOngoingState(); err != nil {
		return err
	}

	origin, destination, err := notation.ParseMove(from, to)
	if err != nil {
		return err
	}

	engine, err := that.Engine()
	if err != nil {
		return err
	}

	if engine.Turn() != color {
		return fmt.Errorf("%w: %s to move", apperror.ErrNotYourTurn, engine.Turn())
	}

	if err = engine.MakeMove(origin, destination); err != nil {
		return fmt.Errorf("move %s-%s rejected: %w", from, to, err)
	}

	that.apply(engine)

	return nil
}

// LegalDestinations lists, in square notation, where the piece on from may go.
func (that *Game) LegalDestinations(from string) ([]string, error) {
	origin, err := notation.ParseSquare(from)
	if err != nil {
		return nil, err
	}

	engine, err := that.Engine()
	if err != nil {
		return nil, err
	}

	return notation.FormatSquares(engine.LegalDestinations(origin)), nil
}

func (that *Game) apply(engine *janggi.Game) {
	that.Position = engine.Snapshot()
	that.Turn = engine.Turn().String()
	that.InCheck = engine.IsInCheck(engine.Turn())

	switch engine.State() {
	case janggi.BlueWon:
		that.finish(janggi.Blue)
	case janggi.RedWon:
		that.finish(janggi.Red)
	}
}

func (that *Game) finish(winner janggi.Color) {
	that.Status = StatusFinished
	that.Winner = winner.String()
	that.Turn = ""
}

func (that *Game) IsFinished() bool {
	return that.Status == StatusFinished
}

func (that *Game) IsOngoing() bool {
	return that.Status == StatusOngoing
}

func (that *Game) IsWaiting() bool {
	return that.Status == StatusWaiting
}

func (that *Game) ConfirmOngoingState() error {
	switch {
	case that.IsWaiting():
		return apperror.ErrGameIsNotStarted
	case that.IsFinished():
		return apperror.ErrGameFinished
	case that.IsOngoing():
		return nil
	default:
		return fmt.Errorf("%w: %s", ErrUnknownGameStatus, that.Status)
	}
}

// PlayerByColor returns the seated player playing color, if any.
func (that *Game) PlayerByColor(color janggi.Color) (*Player, bool) {
	for _, player := range that.Players {
		if player.Color == color.String() {
			return player, true
		}
	}

	return nil, false
}
