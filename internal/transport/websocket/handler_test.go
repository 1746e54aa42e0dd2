package websocket

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/iamasit07/connect4-engine/internal/domain"
	"github.com/iamasit07/connect4-engine/internal/service/bot"
	"github.com/iamasit07/connect4-engine/internal/service/cleanup"
	"github.com/iamasit07/connect4-engine/internal/service/game"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	server *httptest.Server
	cm     *ConnectionManager
	sm     *game.SessionManager
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cm := NewConnectionManager(zerolog.Nop())
	sm := game.NewSessionManager(bot.NewEngine(1, zerolog.Nop()), cm, zerolog.Nop())
	h := NewHandler(cm, sm, []string{"http://allowed.test"}, zerolog.Nop())

	router := gin.New()
	router.GET("/ws/games/:id", h.HandleGameSocket)
	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	return &fixture{server: server, cm: cm, sm: sm}
}

func (f *fixture) dial(t *testing.T, gameID string, header http.Header) (*websocket.Conn, *http.Response, error) {
	t.Helper()
	url := "ws" + strings.TrimPrefix(f.server.URL, "http") + "/ws/games/" + gameID
	conn, resp, err := websocket.DefaultDialer.Dial(url, header)
	if conn != nil {
		t.Cleanup(func() { conn.Close() })
	}
	return conn, resp, err
}

func col(n int) *int {
	return &n
}

func read(t *testing.T, conn *websocket.Conn) domain.ServerMessage {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	var msg domain.ServerMessage
	require.NoError(t, conn.ReadJSON(&msg))
	return msg
}

func TestGameSocket(t *testing.T) {
	f := newFixture(t)
	gs, _, err := f.sm.CreateSession(context.Background(), game.SessionOptions{Mode: game.ModeAI, Difficulty: bot.Easy})
	require.NoError(t, err)

	conn, _, err := f.dial(t, gs.GameID, nil)
	require.NoError(t, err)

	state := read(t, conn)
	require.Equal(t, domain.MessageGameState, state.Type)
	require.Equal(t, gs.GameID, state.GameID)
	require.Equal(t, domain.PlayerA, state.NextTurn)
	require.Eventually(t, func() bool { return f.cm.IsConnected(gs.GameID) }, time.Second, 10*time.Millisecond)

	require.NoError(t, conn.WriteJSON(domain.ClientMessage{Type: domain.ClientMove, Column: col(3)}))

	human := read(t, conn)
	require.Equal(t, domain.MessageMoveMade, human.Type)
	require.Equal(t, 3, *human.Column)
	require.Equal(t, 0, *human.Row)
	require.Equal(t, domain.PlayerA, human.Player)
	require.Nil(t, human.Score)

	reply := read(t, conn)
	require.Equal(t, domain.MessageMoveMade, reply.Type)
	require.Equal(t, domain.PlayerB, reply.Player)
	require.NotNil(t, reply.Score)
	require.Equal(t, domain.PlayerA, reply.NextTurn)

	require.NoError(t, conn.WriteJSON(domain.ClientMessage{Type: domain.ClientMove, Column: col(7)}))
	bad := read(t, conn)
	require.Equal(t, domain.MessageError, bad.Type)
	require.Contains(t, bad.Message, domain.ErrInvalidColumn.Error())

	require.NoError(t, conn.WriteJSON(domain.ClientMessage{Type: "resign"}))
	require.Equal(t, domain.MessageError, read(t, conn).Type)

	require.NoError(t, conn.WriteJSON(domain.ClientMessage{Type: domain.ClientReset}))
	reset := read(t, conn)
	require.Equal(t, domain.MessageGameReset, reset.Type)
	require.Zero(t, gs.Snapshot().MoveCount)
}

func TestGameSocketMoveWithoutColumn(t *testing.T) {
	f := newFixture(t)
	gs, _, err := f.sm.CreateSession(context.Background(), game.SessionOptions{Mode: game.ModeLocal})
	require.NoError(t, err)

	conn, _, err := f.dial(t, gs.GameID, nil)
	require.NoError(t, err)
	read(t, conn)

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(`{"type":"move"}`)))
	bad := read(t, conn)
	require.Equal(t, domain.MessageError, bad.Type)
	require.Contains(t, bad.Message, domain.ErrInvalidColumn.Error())
	require.Zero(t, gs.Snapshot().MoveCount)

	// an explicit zero is still a move
	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(`{"type":"move","column":0}`)))
	moved := read(t, conn)
	require.Equal(t, domain.MessageMoveMade, moved.Type)
	require.Equal(t, 0, *moved.Column)
	require.Equal(t, 1, gs.Snapshot().MoveCount)
}

func TestGameSocketUnknownGame(t *testing.T) {
	f := newFixture(t)

	_, resp, err := f.dial(t, "missing", nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	_, resp, err = f.dial(t, "00000000-0000-4000-8000-000000000000", nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestGameSocketRejectsOrigin(t *testing.T) {
	f := newFixture(t)
	gs, _, err := f.sm.CreateSession(context.Background(), game.SessionOptions{Mode: game.ModeLocal})
	require.NoError(t, err)

	_, resp, err := f.dial(t, gs.GameID, http.Header{"Origin": []string{"http://evil.test"}})
	require.Error(t, err)
	require.NotNil(t, resp)
	require.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestGameSocketReplacesConnection(t *testing.T) {
	f := newFixture(t)
	gs, _, err := f.sm.CreateSession(context.Background(), game.SessionOptions{Mode: game.ModeLocal})
	require.NoError(t, err)

	first, _, err := f.dial(t, gs.GameID, nil)
	require.NoError(t, err)
	read(t, first)

	second, _, err := f.dial(t, gs.GameID, nil)
	require.NoError(t, err)
	read(t, second)

	require.NoError(t, first.SetReadDeadline(time.Now().Add(5*time.Second)))
	_, _, err = first.ReadMessage()
	require.Error(t, err, "old socket is closed")

	require.NoError(t, second.WriteJSON(domain.ClientMessage{Type: domain.ClientMove, Column: col(0)}))
	require.Equal(t, domain.MessageMoveMade, read(t, second).Type)
	require.Equal(t, 1, f.cm.Count())
}

func TestCloseGame(t *testing.T) {
	f := newFixture(t)
	gs, _, err := f.sm.CreateSession(context.Background(), game.SessionOptions{Mode: game.ModeLocal})
	require.NoError(t, err)

	conn, _, err := f.dial(t, gs.GameID, nil)
	require.NoError(t, err)
	read(t, conn)
	require.Eventually(t, func() bool { return f.cm.IsConnected(gs.GameID) }, time.Second, 10*time.Millisecond)

	f.cm.CloseGame(gs.GameID, "game deleted")
	msg := read(t, conn)
	require.Equal(t, domain.MessageError, msg.Type)
	require.Equal(t, "game deleted", msg.Message)
	require.False(t, f.cm.IsConnected(gs.GameID))
}

func TestCleanupClosesExpiredSockets(t *testing.T) {
	f := newFixture(t)
	gs, _, err := f.sm.CreateSession(context.Background(), game.SessionOptions{Mode: game.ModeLocal})
	require.NoError(t, err)

	conn, _, err := f.dial(t, gs.GameID, nil)
	require.NoError(t, err)
	read(t, conn)
	require.Eventually(t, func() bool { return f.cm.IsConnected(gs.GameID) }, time.Second, 10*time.Millisecond)

	gs.UpdatedAt = time.Now().Add(-time.Hour)
	w := cleanup.NewWorker(f.sm, f.cm, time.Minute, time.Minute, time.Minute, zerolog.Nop())
	require.Equal(t, 1, w.RunCleanup())

	msg := read(t, conn)
	require.Equal(t, domain.MessageError, msg.Type)
	require.Equal(t, cleanup.ExpiredReason, msg.Message)
	require.False(t, f.cm.IsConnected(gs.GameID))

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	_, _, err = conn.ReadMessage()
	require.Error(t, err, "socket is closed")
}

func TestPublishWithoutListener(t *testing.T) {
	cm := NewConnectionManager(zerolog.Nop())
	require.NoError(t, cm.SendMessage("nobody", domain.ServerMessage{Type: domain.MessageGameState}))
	cm.Publish("nobody", domain.ServerMessage{Type: domain.MessageGameState})
	require.Zero(t, cm.Count())
}
