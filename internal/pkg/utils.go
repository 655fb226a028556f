package pkg

import (
	"crypto/rand"
	"crypto/sha1" //nolint: gosec // RFC 6455 mandates SHA-1 for the handshake
	"encoding/base64"
	"fmt"
	"math/big"
)

// Static GUID defined in RFC 6455 for WebSocket.
const websocketGUID = "258EAFA5-E914-47DA-95CA-C5AB0DC85B11"

const gameIDLimit = 100_000_000

// GenerateAcceptKey - generates key for WebSocket handshake.
func GenerateAcceptKey(key string) string {
	h := sha1.New() //nolint: gosec // RFC 6455 requires the use of SHA-1 for WebSocket

	h.Write([]byte(key + websocketGUID))

	return base64.StdEncoding.EncodeToString(h.Sum(nil))
}

// GenerateNewSessionID - generates a new unique sessionID.
func GenerateNewSessionID() string {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		panic(fmt.Errorf("failed to read random bytes: %w", err))
	}

	return base64.RawURLEncoding.EncodeToString(b)
}

// GenerateGameID - generates an eight digit game identifier that is easy to share.
func GenerateGameID() string {
	n, err := rand.Int(rand.Reader, big.NewInt(gameIDLimit))
	if err != nil {
		panic(fmt.Errorf("failed to generate game id: %w", err))
	}

	return fmt.Sprintf("%08d", n.Int64())
}
