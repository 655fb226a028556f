package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rocketscienceinc/janggi-backend/internal/apperror"
	"github.com/rocketscienceinc/janggi-backend/internal/entity"
	"github.com/rocketscienceinc/janggi-backend/internal/notation"
)

const (
	actionConnect   = "connect"
	actionGameNew   = "game:new"
	actionGameJoin  = "game:join"
	actionGameMove  = "game:move"
	actionGameLeave = "game:leave"

	gameStatusLeave = "leave"
)

// Move is a move in square notation; From == To passes the turn.
type Move struct {
	From string `json:"from"`
	To   string `json:"to"`
}

type Payload struct {
	Player *entity.Player `json:"player,omitempty"`
	Game   *entity.Game   `json:"game,omitempty"`
	Move   *Move          `json:"move,omitempty"`
	Board  string         `json:"board,omitempty"`
	Error  string         `json:"error,omitempty"`
}

func (that *Server) handleConnect(ctx context.Context, msg *Message, conn *connection) error {
	log := that.logger.With("method", "handleConnect")

	var payloadReq Payload
	if err := json.Unmarshal(msg.Payload, &payloadReq); err != nil {
		return that.sendErrorResponse(conn, msg.Action, "invalid payload")
	}

	var playerID string
	if payloadReq.Player != nil {
		playerID = payloadReq.Player.ID
	}

	player, err := that.gameUseCase.GetOrCreatePlayer(ctx, playerID)
	if err != nil {
		log.Error("failed to get or create player", "error", err)
		return that.sendErrorResponse(conn, msg.Action, "failed to create a new player")
	}

	that.register(player.ID, conn)

	payloadResp := Payload{Player: player}

	if player.GameID != "" {
		game, err := that.gameUseCase.GetGameByPlayerID(ctx, player.ID)
		if err != nil {
			log.Warn("player's game is unavailable", "gameID", player.GameID, "error", err)
		} else {
			payloadResp.Game = publicGame(game)
			payloadResp.Board = renderBoard(game)
		}
	}

	if err = that.sendMessage(conn, msg.Action, payloadResp); err != nil {
		return fmt.Errorf("failed to send response: %w", err)
	}

	log.Info("player connected", "playerID", player.ID)

	return nil
}

func (that *Server) handleNewGame(ctx context.Context, msg *Message, conn *connection) error {
	log := that.logger.With("method", "handleNewGame")

	payloadReq, ok, err := that.playerPayload(msg, conn)
	if !ok {
		return err
	}

	game, err := that.gameUseCase.GetOrCreateGame(ctx, payloadReq.Player.ID)
	if err != nil {
		log.Error("failed to get or create game", "playerID", payloadReq.Player.ID, "error", err)
		return that.sendErrorResponse(conn, msg.Action, "failed to create a new game")
	}

	that.broadcast(msg.Action, game, nil)

	log.Info("game ready", "gameID", game.ID)

	return nil
}

func (that *Server) handleJoinGame(ctx context.Context, msg *Message, conn *connection) error {
	log := that.logger.With("method", "handleJoinGame")

	payloadReq, ok, err := that.playerPayload(msg, conn)
	if !ok {
		return err
	}

	if payloadReq.Game == nil || payloadReq.Game.ID == "" {
		return that.sendErrorResponse(conn, msg.Action, "game is required")
	}

	game, err := that.gameUseCase.ConnectToGame(ctx, payloadReq.Game.ID, payloadReq.Player.ID)
	if err != nil {
		log.Warn("failed to join game", "gameID", payloadReq.Game.ID, "error", err)
		return that.sendErrorResponse(conn, msg.Action, fmt.Sprintf("game %s: %v", payloadReq.Game.ID, err))
	}

	that.broadcast(msg.Action, game, nil)

	log.Info("player joined game", "gameID", game.ID, "playerID", payloadReq.Player.ID)

	return nil
}

func (that *Server) handleGameMove(ctx context.Context, msg *Message, conn *connection) error {
	log := that.logger.With("method", "handleGameMove")

	payloadReq, ok, err := that.playerPayload(msg, conn)
	if !ok {
		return err
	}

	if payloadReq.Move == nil {
		return that.sendErrorResponse(conn, msg.Action, "move is required")
	}

	move := payloadReq.Move

	game, err := that.gameUseCase.MakeMove(ctx, payloadReq.Player.ID, move.From, move.To)
	switch {
	case errors.Is(err, apperror.ErrGameFinished) && game != nil && game.IsFinished():
		that.broadcast(msg.Action, game, move)
		log.Info("game finished", "gameID", game.ID, "winner", game.Winner)
		return nil
	case err != nil:
		return that.sendErrorResponse(conn, msg.Action, err.Error())
	}

	that.broadcast(msg.Action, game, move)

	return nil
}

func (that *Server) handleGameLeave(ctx context.Context, msg *Message, conn *connection) error {
	log := that.logger.With("method", "handleGameLeave")

	payloadReq, ok, err := that.playerPayload(msg, conn)
	if !ok {
		return err
	}

	game, err := that.gameUseCase.GetGameByPlayerID(ctx, payloadReq.Player.ID)
	if err != nil {
		log.Warn("failed to find game", "playerID", payloadReq.Player.ID, "error", err)
		return that.sendErrorResponse(conn, msg.Action, "game doesn't exist")
	}

	if err = that.gameUseCase.EndGame(ctx, game); err != nil {
		log.Error("failed to end game", "gameID", game.ID, "error", err)
		return that.sendErrorResponse(conn, msg.Action, "failed to leave the game")
	}

	left := publicGame(game)
	left.Status = gameStatusLeave

	for _, player := range game.Players {
		playerConn, ok := that.connectionOf(player.ID)
		if !ok {
			continue
		}

		if err = that.sendMessage(playerConn, msg.Action, Payload{Player: player, Game: left}); err != nil {
			log.Error("failed to send game update", "playerID", player.ID, "error", err)
		}
	}

	log.Info("player left game", "gameID", game.ID, "playerID", payloadReq.Player.ID)

	return nil
}

// playerPayload decodes a payload that must name a player and binds the
// player to conn. When ok is false an error response was already sent.
func (that *Server) playerPayload(msg *Message, conn *connection) (Payload, bool, error) {
	var payloadReq Payload
	if err := json.Unmarshal(msg.Payload, &payloadReq); err != nil {
		return payloadReq, false, that.sendErrorResponse(conn, msg.Action, "invalid payload")
	}

	if payloadReq.Player == nil || payloadReq.Player.ID == "" {
		return payloadReq, false, that.sendErrorResponse(conn, msg.Action, "player is required")
	}

	that.register(payloadReq.Player.ID, conn)

	return payloadReq, true, nil
}

// broadcast sends the game state to every seated player that is connected.
func (that *Server) broadcast(action string, game *entity.Game, move *Move) {
	log := that.logger.With("method", "broadcast", "gameID", game.ID)

	board := renderBoard(game)

	for _, player := range game.Players {
		conn, ok := that.connectionOf(player.ID)
		if !ok {
			log.Warn("connection not found for player", "playerID", player.ID)
			continue
		}

		payloadResp := Payload{
			Player: player,
			Game:   publicGame(game),
			Move:   move,
			Board:  board,
		}

		if err := that.sendMessage(conn, action, payloadResp); err != nil {
			log.Error("failed to send game update", "playerID", player.ID, "error", err)
		}
	}
}

// publicGame hides the seated players; each recipient only sees itself in Payload.Player.
func publicGame(game *entity.Game) *entity.Game {
	public := *game
	public.Players = nil

	return &public
}

func renderBoard(game *entity.Game) string {
	engine, err := game.Engine()
	if err != nil {
		return ""
	}

	return notation.Render(engine)
}
