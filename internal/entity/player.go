package entity

import (
	"fmt"

	"github.com/rocketscienceinc/janggi-backend/internal/apperror"
	"github.com/rocketscienceinc/janggi-backend/internal/janggi"
)

type Player struct {
	ID     string `json:"id"`
	Color  string `json:"color,omitempty"`
	GameID string `json:"game_id,omitempty"`
}

// Side returns the color the player is seated with.
func (that *Player) Side() (janggi.Color, error) {
	if that.GameID == "" {
		return janggi.Blue, apperror.ErrNotInGame
	}

	color, err := janggi.ParseColor(that.Color)
	if err != nil {
		return janggi.Blue, fmt.Errorf("player %s: %w", that.ID, err)
	}

	return color, nil
}

// Leave clears the player's seat.
func (that *Player) Leave() {
	that.Color = ""
	that.GameID = ""
}
