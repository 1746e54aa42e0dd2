package websocket

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/iamasit07/connect4-engine/internal/domain"
	"github.com/iamasit07/connect4-engine/internal/service/game"
	"github.com/rs/zerolog"
)

const (
	pongWait   = 60 * time.Second
	pingPeriod = 30 * time.Second
)

type Handler struct {
	ConnManager    *ConnectionManager
	SessionManager *game.SessionManager
	Upgrader       websocket.Upgrader
	logger         zerolog.Logger
}

func NewHandler(cm *ConnectionManager, sm *game.SessionManager, allowedOrigins []string, logger zerolog.Logger) *Handler {
	allowed := make(map[string]bool, len(allowedOrigins))
	for _, origin := range allowedOrigins {
		allowed[origin] = true
	}

	return &Handler{
		ConnManager:    cm,
		SessionManager: sm,
		Upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return origin == "" || allowed[origin]
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		logger: logger.With().Str("component", "WS").Logger(),
	}
}

// HandleGameSocket serves GET /ws/games/:id.
func (h *Handler) HandleGameSocket(c *gin.Context) {
	gameID := c.Param("id")
	session, err := h.SessionManager.Lookup(gameID)
	if err != nil {
		status := http.StatusNotFound
		if errors.Is(err, game.ErrInvalidGameID) {
			status = http.StatusBadRequest
		}
		c.AbortWithStatusJSON(status, gin.H{"error": err.Error()})
		return
	}

	conn, err := h.Upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// Upgrade has already replied to the client
		h.logger.Warn().Err(err).Str("gameId", gameID).Msg("upgrade failed")
		return
	}

	cl := h.ConnManager.addConnection(gameID, conn)
	h.logger.Info().Str("gameId", gameID).Msg("client connected")
	if err := cl.write(session.StateMessage()); err != nil {
		h.ConnManager.removeConnectionIfMatching(gameID, cl)
		return
	}

	h.serve(c, gameID, cl)
}

func (h *Handler) serve(c *gin.Context, gameID string, cl *client) {
	conn := cl.conn
	done := make(chan struct{})

	defer func() {
		close(done)
		h.ConnManager.removeConnectionIfMatching(gameID, cl)
		h.logger.Info().Str("gameId", gameID).Msg("client disconnected")
	}()

	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	// keep-alive
	go func() {
		ticker := time.NewTicker(pingPeriod)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				if err := cl.ping(); err != nil {
					return
				}
			}
		}
	}()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.logger.Debug().Err(err).Str("gameId", gameID).Msg("unexpected close")
			}
			return
		}

		var msg domain.ClientMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			h.sendError(cl, "invalid message format")
			continue
		}

		if !h.processMessage(c, gameID, cl, msg) {
			return
		}
	}
}

// processMessage applies one client message. It reports false once the
// session is gone and the socket should close.
func (h *Handler) processMessage(c *gin.Context, gameID string, cl *client, msg domain.ClientMessage) bool {
	session, ok := h.SessionManager.GetSessionByGameID(gameID)
	if !ok {
		h.sendError(cl, game.ErrSessionNotFound.Error())
		return false
	}

	ctx := c.Request.Context()
	switch msg.Type {
	case domain.ClientMove:
		if msg.Column == nil {
			h.sendError(cl, domain.ErrInvalidColumn.Error()+": missing")
			break
		}
		// the session publishes the resulting events itself
		if _, err := session.HandleMove(ctx, *msg.Column); err != nil {
			h.sendError(cl, err.Error())
		}

	case domain.ClientReset:
		if _, err := session.Reset(ctx); err != nil {
			h.sendError(cl, err.Error())
		}

	default:
		h.sendError(cl, "unknown message type: "+msg.Type)
	}
	return true
}

func (h *Handler) sendError(cl *client, message string) {
	err := cl.write(domain.ErrorMessage{Type: domain.MessageError, Message: message})
	if err != nil && !errors.Is(err, websocket.ErrCloseSent) {
		h.logger.Debug().Err(err).Msg("error reply failed")
	}
}
