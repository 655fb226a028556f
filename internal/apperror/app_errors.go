package apperror

import "errors"

var (
	ErrGameFinished      = errors.New("game is already finished")
	ErrGameIsNotStarted  = errors.New("game is not started")
	ErrGameIsFull        = errors.New("game already has two players")
	ErrNotYourTurn       = errors.New("it's not your turn")
	ErrNotInGame         = errors.New("player is not in a game")
	ErrGameAlreadyExists = errors.New("player is already in another game")
	ErrInvalidCoordinate = errors.New("invalid coordinate")
)
