package rest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// New builds the read-only HTTP API over stored games.
func New(logger *slog.Logger, games gameUseCase) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recover())

	h := &handlers{
		logger: logger.With("component", "rest"),
		games:  games,
	}

	e.GET("/ping", pingHandler)
	e.GET("/games/:id", h.GetGame)
	e.GET("/games/:id/board", h.GetBoard)
	e.GET("/games/:id/moves", h.GetMoves)

	return e
}

// Start serves e on port until ctx is cancelled.
func Start(ctx context.Context, e *echo.Echo, port string) error {
	e.Server.ReadTimeout = 10 * time.Second
	e.Server.WriteTimeout = 10 * time.Second
	e.Server.IdleTimeout = 30 * time.Second

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		_ = e.Shutdown(shutdownCtx)
	}()

	if err := e.Start(":" + port); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}
