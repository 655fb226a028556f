package rest

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/rocketscienceinc/janggi-backend/internal/apperror"
	"github.com/rocketscienceinc/janggi-backend/internal/entity"
	"github.com/rocketscienceinc/janggi-backend/internal/notation"
	"github.com/rocketscienceinc/janggi-backend/internal/repository"
)

type gameUseCase interface {
	GetGameByID(ctx context.Context, id string) (*entity.Game, error)
	LegalMoves(ctx context.Context, gameID, from string) ([]string, error)
}

type handlers struct {
	logger *slog.Logger
	games  gameUseCase
}

type movesResponse struct {
	From string   `json:"from"`
	To   []string `json:"to"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// GetGame returns the stored game without its players' session ids.
func (that *handlers) GetGame(ctx echo.Context) error {
	game, err := that.games.GetGameByID(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		return that.fail(ctx, "GetGame", err)
	}

	public := *game
	public.Players = nil

	return ctx.JSON(http.StatusOK, &public)
}

func (that *handlers) GetBoard(ctx echo.Context) error {
	game, err := that.games.GetGameByID(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		return that.fail(ctx, "GetBoard", err)
	}

	engine, err := game.Engine()
	if err != nil {
		return that.fail(ctx, "GetBoard", err)
	}

	return ctx.String(http.StatusOK, notation.Render(engine))
}

// GetMoves lists the legal destinations of the piece on ?from=.
func (that *handlers) GetMoves(ctx echo.Context) error {
	from := ctx.QueryParam("from")
	if from == "" {
		return ctx.JSON(http.StatusBadRequest, errorResponse{Error: "from is required"})
	}

	destinations, err := that.games.LegalMoves(ctx.Request().Context(), ctx.Param("id"), from)
	if err != nil {
		return that.fail(ctx, "GetMoves", err)
	}

	return ctx.JSON(http.StatusOK, movesResponse{From: from, To: destinations})
}

func (that *handlers) fail(ctx echo.Context, method string, err error) error {
	switch {
	case errors.Is(err, repository.ErrGameNotFound):
		return ctx.JSON(http.StatusNotFound, errorResponse{Error: "game not found"})
	case errors.Is(err, apperror.ErrInvalidCoordinate):
		return ctx.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	that.logger.Error("request failed", "method", method, "path", ctx.Path(), "error", err)

	return ctx.JSON(http.StatusInternalServerError, errorResponse{Error: http.StatusText(http.StatusInternalServerError)})
}
