package websocket

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/rocketscienceinc/janggi-backend/internal/entity"
	"github.com/rocketscienceinc/janggi-backend/internal/pkg"
)

const sessionCookie = "user_session"

type gameUseCase interface {
	GetOrCreatePlayer(ctx context.Context, id string) (*entity.Player, error)
	GetOrCreateGame(ctx context.Context, playerID string) (*entity.Game, error)
	ConnectToGame(ctx context.Context, gameID, playerID string) (*entity.Game, error)
	MakeMove(ctx context.Context, playerID, from, to string) (*entity.Game, error)
	GetGameByPlayerID(ctx context.Context, playerID string) (*entity.Game, error)
	EndGame(ctx context.Context, game *entity.Game) error
}

type handlerFunc func(ctx context.Context, message *Message, conn *connection) error

// connection is one hijacked client socket. Writes may come from any
// goroutine broadcasting to the player, so they are serialised.
type connection struct {
	netConn net.Conn
	reader  *bufio.Reader

	writeMutex sync.Mutex
	writer     *bufio.Writer
}

func (that *connection) write(f frame) error {
	that.writeMutex.Lock()
	defer that.writeMutex.Unlock()

	return writeFrame(that.writer, f)
}

type Server struct {
	logger      *slog.Logger
	gameUseCase gameUseCase

	handlers map[string]handlerFunc

	connectionsMutex sync.RWMutex
	connections      map[string]*connection
}

func New(logger *slog.Logger, gameUseCase gameUseCase) *Server {
	server := &Server{
		logger:      logger.With("component", "websocket"),
		gameUseCase: gameUseCase,

		handlers:    make(map[string]handlerFunc),
		connections: make(map[string]*connection),
	}

	server.handlers[actionConnect] = server.handleConnect
	server.handlers[actionGameNew] = server.handleNewGame
	server.handlers[actionGameJoin] = server.handleJoinGame
	server.handlers[actionGameMove] = server.handleGameMove
	server.handlers[actionGameLeave] = server.handleGameLeave

	return server
}

// Start - starts WebSocket server and blocks until ctx is cancelled or the listener fails.
func (that *Server) Start(ctx context.Context, port string) error {
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           that.Handler(ctx),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       30 * time.Second,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			that.logger.Error("failed to shut down server", "error", err)
		}
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// Handler serves the /ws endpoint.
func (that *Server) Handler(ctx context.Context) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		that.upgradeToWebSocket(ctx, w, r)
	})

	return mux
}

// upgradeToWebSocket - performs the RFC 6455 handshake and serves the connection until it closes.
func (that *Server) upgradeToWebSocket(ctx context.Context, writer http.ResponseWriter, req *http.Request) {
	log := that.logger.With("method", "upgradeToWebSocket")

	if !strings.EqualFold(req.Header.Get("Upgrade"), "websocket") {
		http.Error(writer, "not a websocket upgrade", http.StatusBadRequest)
		return
	}

	key := req.Header.Get("Sec-WebSocket-Key")
	if key == "" {
		http.Error(writer, "missing Sec-WebSocket-Key", http.StatusBadRequest)
		return
	}

	hijacker, ok := writer.(http.Hijacker)
	if !ok {
		log.Error("web server does not support hijacking")
		http.Error(writer, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	netConn, bufrw, err := hijacker.Hijack()
	if err != nil {
		log.Error("failed to hijack connection", "error", err)
		return
	}

	defer netConn.Close()

	conn := &connection{
		netConn: netConn,
		reader:  bufrw.Reader,
		writer:  bufrw.Writer,
	}

	if err = that.writeHandshake(conn, key, req); err != nil {
		log.Error("failed to write handshake", "error", err)
		return
	}

	log.Info("WebSocket connection established", "remote", netConn.RemoteAddr().String())

	if err = that.handleMessages(ctx, conn); err != nil && !errors.Is(err, ErrConnectionClosed) {
		log.Error("error handling messages", "error", err)
	}

	that.handleDisconnect(conn)
}

func (that *Server) writeHandshake(conn *connection, key string, req *http.Request) error {
	var sb strings.Builder

	sb.WriteString("HTTP/1.1 101 Switching Protocols\r\n")
	sb.WriteString("Upgrade: websocket\r\n")
	sb.WriteString("Connection: Upgrade\r\n")
	sb.WriteString("Sec-WebSocket-Accept: " + pkg.GenerateAcceptKey(key) + "\r\n")

	if cookie := that.sessionCookie(req); cookie != nil {
		sb.WriteString("Set-Cookie: " + cookie.String() + "\r\n")
	}

	sb.WriteString("\r\n")

	conn.writeMutex.Lock()
	defer conn.writeMutex.Unlock()

	if _, err := conn.writer.WriteString(sb.String()); err != nil {
		return fmt.Errorf("failed to write response: %w", err)
	}

	if err := conn.writer.Flush(); err != nil {
		return fmt.Errorf("failed to flush response: %w", err)
	}

	return nil
}

// sessionCookie returns a new session cookie when the request carries none.
func (that *Server) sessionCookie(req *http.Request) *http.Cookie {
	log := that.logger.With("method", "sessionCookie")

	if cookie, err := req.Cookie(sessionCookie); err == nil {
		log.Debug("session cookie found", "cookie", cookie.Value)
		return nil
	}

	cookie := &http.Cookie{
		Name:    sessionCookie,
		Value:   pkg.GenerateNewSessionID(),
		Expires: time.Now().Add(24 * time.Hour),
		Path:    "/ws",
	}

	log.Debug("session cookie not found, new one created", "cookie", cookie.Value)

	return cookie
}

// handleMessages - processes messages from the client until it disconnects.
func (that *Server) handleMessages(ctx context.Context, conn *connection) error {
	log := that.logger.With("method", "handleMessages")

	pong := func(payload []byte) error {
		return conn.write(frame{isFin: true, opCode: opPong, payload: payload})
	}

	for {
		reqBody, err := readMessage(conn.reader, pong)
		if err != nil {
			return err
		}

		var message Message
		if err = json.Unmarshal(reqBody, &message); err != nil {
			log.Error("failed to unmarshal message", "error", err)
			continue
		}

		handler, ok := that.handlers[message.Action]
		if !ok {
			log.Warn("unknown action", "action", message.Action)
			if err = that.sendErrorResponse(conn, message.Action, "unknown action"); err != nil {
				return err
			}
			continue
		}

		if err = handler(ctx, &message, conn); err != nil {
			log.Error("error processing message", "action", message.Action, "error", err)
		}
	}
}

func (that *Server) register(playerID string, conn *connection) {
	that.connectionsMutex.Lock()
	that.connections[playerID] = conn
	that.connectionsMutex.Unlock()
}

func (that *Server) connectionOf(playerID string) (*connection, bool) {
	that.connectionsMutex.RLock()
	defer that.connectionsMutex.RUnlock()

	conn, ok := that.connections[playerID]
	return conn, ok
}

func (that *Server) handleDisconnect(conn *connection) {
	log := that.logger.With("method", "handleDisconnect")

	that.connectionsMutex.Lock()
	defer that.connectionsMutex.Unlock()

	for playerID, registered := range that.connections {
		if registered == conn {
			delete(that.connections, playerID)
			log.Info("player disconnected", "playerID", playerID)
		}
	}
}

func (that *Server) sendMessage(conn *connection, action string, payload Payload) error {
	messageBytes, err := encodeMessage(action, payload)
	if err != nil {
		return err
	}

	if err = conn.write(frame{isFin: true, opCode: opText, payload: messageBytes}); err != nil {
		return fmt.Errorf("failed to write frame: %w", err)
	}

	return nil
}

func (that *Server) sendErrorResponse(conn *connection, action, errorMsg string) error {
	if err := that.sendMessage(conn, action, Payload{Error: errorMsg}); err != nil {
		return fmt.Errorf("failed to send error response: %w", err)
	}

	return nil
}
