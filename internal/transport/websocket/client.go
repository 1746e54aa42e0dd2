package websocket

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/iamasit07/connect4-engine/internal/domain"
	"github.com/rs/zerolog"
)

const writeWait = 10 * time.Second

type client struct {
	conn    *websocket.Conn
	writeMu sync.Mutex // gorilla allows one concurrent writer per conn
}

func (c *client) write(message any) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return c.conn.WriteJSON(message)
}

func (c *client) ping() error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	return c.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait))
}

// ConnectionManager keeps at most one socket per hosted game and pushes
// session events to it.
type ConnectionManager struct {
	connections map[string]*client // gameID → client
	mu          sync.RWMutex
	logger      zerolog.Logger
}

func NewConnectionManager(logger zerolog.Logger) *ConnectionManager {
	return &ConnectionManager{
		connections: make(map[string]*client),
		logger:      logger.With().Str("component", "WS").Logger(),
	}
}

// addConnection registers conn for gameID, closing any socket it replaces.
func (cm *ConnectionManager) addConnection(gameID string, conn *websocket.Conn) *client {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	if old, exists := cm.connections[gameID]; exists {
		cm.logger.Info().Str("gameId", gameID).Msg("replacing existing connection")
		old.conn.Close()
	}
	c := &client{conn: conn}
	cm.connections[gameID] = c
	return c
}

// removeConnectionIfMatching drops c only if it is still the registered
// socket, so a stale reader cannot unregister its replacement.
func (cm *ConnectionManager) removeConnectionIfMatching(gameID string, c *client) {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	if current, exists := cm.connections[gameID]; exists && current == c {
		delete(cm.connections, gameID)
	}
	c.conn.Close()
}

func (cm *ConnectionManager) IsConnected(gameID string) bool {
	cm.mu.RLock()
	defer cm.mu.RUnlock()
	_, exists := cm.connections[gameID]
	return exists
}

func (cm *ConnectionManager) Count() int {
	cm.mu.RLock()
	defer cm.mu.RUnlock()
	return len(cm.connections)
}

// SendMessage writes message to the game's socket. A game nobody watches is
// not an error.
func (cm *ConnectionManager) SendMessage(gameID string, message any) error {
	cm.mu.RLock()
	c, exists := cm.connections[gameID]
	cm.mu.RUnlock()

	if !exists {
		return nil
	}
	return c.write(message)
}

// Publish implements game.Notifier.
func (cm *ConnectionManager) Publish(gameID string, message domain.ServerMessage) {
	if err := cm.SendMessage(gameID, message); err != nil {
		cm.logger.Warn().Err(err).Str("gameId", gameID).Str("type", message.Type).Msg("push failed")
	}
}

// CloseGame disconnects whoever watches gameID, e.g. after the session is deleted.
func (cm *ConnectionManager) CloseGame(gameID string, reason string) {
	cm.mu.Lock()
	c, exists := cm.connections[gameID]
	delete(cm.connections, gameID)
	cm.mu.Unlock()

	if !exists {
		return
	}
	_ = c.write(domain.ErrorMessage{Type: domain.MessageError, Message: reason})
	c.conn.Close()
}

// CloseAll is used on shutdown.
func (cm *ConnectionManager) CloseAll() {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	for gameID, c := range cm.connections {
		_ = c.conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"),
			time.Now().Add(time.Second))
		c.conn.Close()
		delete(cm.connections, gameID)
	}
}
