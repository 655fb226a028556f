package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/rocketscienceinc/janggi-backend/internal/apperror"
	"github.com/rocketscienceinc/janggi-backend/internal/entity"
	"github.com/rocketscienceinc/janggi-backend/internal/janggi"
	"github.com/rocketscienceinc/janggi-backend/internal/pkg"
	"github.com/rocketscienceinc/janggi-backend/internal/repository"
)

type playerRepo interface {
	CreateOrUpdate(ctx context.Context, player *entity.Player) error
	GetByID(ctx context.Context, id string) (*entity.Player, error)
}

type gameRepo interface {
	CreateOrUpdate(ctx context.Context, game *entity.Game) error
	GetByID(ctx context.Context, id string) (*entity.Game, error)
	DeleteByID(ctx context.Context, id string) error
}

// GameManager seats players and plays their moves against stored games.
// Changes to one game are serialised; different games proceed independently.
type GameManager struct {
	logger     *slog.Logger
	playerRepo playerRepo
	gameRepo   gameRepo

	locksMutex sync.Mutex
	locks      map[string]*sync.Mutex
}

func NewGameManager(logger *slog.Logger, playerRepo playerRepo, gameRepo gameRepo) *GameManager {
	return &GameManager{
		logger: logger.With("component", "game_manager"),

		playerRepo: playerRepo,
		gameRepo:   gameRepo,

		locks: make(map[string]*sync.Mutex),
	}
}

// GetOrCreatePlayer returns the stored player, or a new one when id is empty or unknown.
func (that *GameManager) GetOrCreatePlayer(ctx context.Context, id string) (*entity.Player, error) {
	if id == "" {
		id = pkg.GenerateNewSessionID()
	}

	player, err := that.playerRepo.GetByID(ctx, id)
	if errors.Is(err, repository.ErrPlayerNotFound) {
		return that.createPlayer(ctx, id)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get player by id: %w", err)
	}

	return player, nil
}

// GetOrCreateGame returns the player's current game or opens a new one with
// the player seated as blue.
func (that *GameManager) GetOrCreateGame(ctx context.Context, playerID string) (*entity.Game, error) {
	player, err := that.getPlayerByID(ctx, playerID)
	if err != nil {
		return nil, err
	}

	if player.GameID != "" {
		existingGame, err := that.gameRepo.GetByID(ctx, player.GameID)
		if err == nil {
			return existingGame, nil
		}

		if !errors.Is(err, repository.ErrGameNotFound) {
			return nil, fmt.Errorf("failed get game: %w", err)
		}

		// the game expired or was removed; the seat is stale
		player.Leave()
	}

	newGame, err := that.createGame(ctx, player)
	if err != nil {
		return nil, fmt.Errorf("failed create game: %w", err)
	}

	return newGame, nil
}

// ConnectToGame seats the player as red in a waiting game and starts it.
func (that *GameManager) ConnectToGame(ctx context.Context, gameID, playerID string) (*entity.Game, error) {
	unlock := that.lockGame(gameID)
	defer unlock()

	existingGame, err := that.getGameByID(ctx, gameID)
	if err != nil {
		return nil, err
	}

	player, err := that.getPlayerByID(ctx, playerID)
	if err != nil {
		return nil, err
	}

	if player.GameID == existingGame.ID {
		return existingGame, nil
	}

	if player.GameID != "" {
		return nil, fmt.Errorf("%w: %s", apperror.ErrGameAlreadyExists, player.GameID)
	}

	if !existingGame.IsWaiting() || len(existingGame.Players) >= 2 {
		return nil, fmt.Errorf("%w: game id %s", apperror.ErrGameIsFull, gameID)
	}

	player.GameID = existingGame.ID
	player.Color = janggi.Red.String()
	if err = that.updatePlayer(ctx, player); err != nil {
		return nil, err
	}

	existingGame.Status = entity.StatusOngoing
	existingGame.Players = append(existingGame.Players, player)
	if err = that.updateGame(ctx, existingGame); err != nil {
		return nil, err
	}

	that.logger.Info("game started", "gameID", existingGame.ID, "playerID", player.ID)

	return existingGame, nil
}

// MakeMove plays from -> to for the player. When the move ends the game the
// finished game is returned together with apperror.ErrGameFinished and the
// game is cleaned up.
func (that *GameManager) MakeMove(ctx context.Context, playerID, from, to string) (*entity.Game, error) {
	log := that.logger.With("method", "MakeMove", "playerID", playerID)

	player, err := that.getPlayerByID(ctx, playerID)
	if err != nil {
		return nil, err
	}

	color, err := player.Side()
	if err != nil {
		return nil, err
	}

	unlock := that.lockGame(player.GameID)
	defer unlock()

	game, err := that.getGameByID(ctx, player.GameID)
	if err != nil {
		return nil, err
	}

	log = log.With("gameID", game.ID)

	if err = game.MakeMove(color, from, to); err != nil {
		log.Debug("move rejected", "from", from, "to", to, "error", err)
		return game, err
	}

	log.Info("move committed", "color", color.String(), "from", from, "to", to)

	if game.IsFinished() {
		log.Info("checkmate", "winner", game.Winner)

		if err = that.EndGame(ctx, game); err != nil {
			return nil, err
		}

		return game, apperror.ErrGameFinished
	}

	if game.InCheck {
		log.Info("check", "color", game.Turn)
	}

	if err = that.updateGame(ctx, game); err != nil {
		return nil, err
	}

	return game, nil
}

func (that *GameManager) GetGameByID(ctx context.Context, id string) (*entity.Game, error) {
	return that.getGameByID(ctx, id)
}

func (that *GameManager) GetGameByPlayerID(ctx context.Context, playerID string) (*entity.Game, error) {
	player, err := that.getPlayerByID(ctx, playerID)
	if err != nil {
		return nil, err
	}

	if player.GameID == "" {
		return nil, apperror.ErrNotInGame
	}

	return that.getGameByID(ctx, player.GameID)
}

// LegalMoves lists the squares the piece on from may move to in the game.
func (that *GameManager) LegalMoves(ctx context.Context, gameID, from string) ([]string, error) {
	game, err := that.getGameByID(ctx, gameID)
	if err != nil {
		return nil, err
	}

	destinations, err := game.LegalDestinations(from)
	if err != nil {
		return nil, fmt.Errorf("failed to list moves: %w", err)
	}

	return destinations, nil
}

// EndGame deletes the game and frees its players' seats.
func (that *GameManager) EndGame(ctx context.Context, game *entity.Game) error {
	log := that.logger.With("method", "EndGame", "gameID", game.ID)

	if err := that.gameRepo.DeleteByID(ctx, game.ID); err != nil && !errors.Is(err, repository.ErrGameNotFound) {
		return fmt.Errorf("failed to delete game: %w", err)
	}

	for _, player := range game.Players {
		seated := &entity.Player{ID: player.ID}
		if err := that.updatePlayer(ctx, seated); err != nil {
			log.Error("failed to release player", "playerID", player.ID, "error", err)
		}
	}

	that.locksMutex.Lock()
	delete(that.locks, game.ID)
	that.locksMutex.Unlock()

	log.Info("game ended")

	return nil
}

func (that *GameManager) lockGame(id string) func() {
	that.locksMutex.Lock()
	lock, ok := that.locks[id]
	if !ok {
		lock = &sync.Mutex{}
		that.locks[id] = lock
	}
	that.locksMutex.Unlock()

	lock.Lock()
	return lock.Unlock
}

func (that *GameManager) createGame(ctx context.Context, player *entity.Player) (*entity.Game, error) {
	gameID := pkg.GenerateGameID()
	player.GameID = gameID
	player.Color = janggi.Blue.String()

	if err := that.updatePlayer(ctx, player); err != nil {
		return nil, err
	}

	newGame := entity.NewGame(gameID)
	newGame.Players = []*entity.Player{player}

	if err := that.gameRepo.CreateOrUpdate(ctx, newGame); err != nil {
		return nil, fmt.Errorf("failed to create game: %w", err)
	}

	that.logger.Info("game created", "gameID", gameID, "playerID", player.ID)

	return newGame, nil
}

func (that *GameManager) createPlayer(ctx context.Context, id string) (*entity.Player, error) {
	player := &entity.Player{
		ID: id,
	}

	if err := that.playerRepo.CreateOrUpdate(ctx, player); err != nil {
		return nil, fmt.Errorf("failed to create player: %w", err)
	}

	return player, nil
}

func (that *GameManager) getGameByID(ctx context.Context, id string) (*entity.Game, error) {
	existingGame, err := that.gameRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get game: %w", err)
	}

	return existingGame, nil
}

func (that *GameManager) updateGame(ctx context.Context, game *entity.Game) error {
	if err := that.gameRepo.CreateOrUpdate(ctx, game); err != nil {
		return fmt.Errorf("failed to update game: %w", err)
	}

	return nil
}

func (that *GameManager) getPlayerByID(ctx context.Context, id string) (*entity.Player, error) {
	player, err := that.playerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get player: %w", err)
	}

	return player, nil
}

func (that *GameManager) updatePlayer(ctx context.Context, player *entity.Player) error {
	if err := that.playerRepo.CreateOrUpdate(ctx, player); err != nil {
		return fmt.Errorf("failed to update player: %w", err)
	}

	return nil
}
