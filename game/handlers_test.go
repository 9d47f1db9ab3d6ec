package game

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sketchparty/protocol"
	"sketchparty/words"
)

func startTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	supply := words.NewSupply([]string{"rocket"})
	l := NewLobby(func() Room {
		return NewRoom(RoomConfig{
			RoundDuration: time.Minute,
			MaxRounds:     3,
			MinPlayers:    2,
			MaxPlayers:    12,
		}, supply, zerolog.Nop())
	}, NewTickerGen(), zerolog.Nop())

	started := make(chan struct{})
	go l.LobbyActor(started)
	<-started

	h := NewHandler(l, nil, zerolog.Nop())
	r := gin.New()
	r.GET("/ws", h.JoinGameHandler)

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

func dial(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	conn, resp, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	if resp != nil {
		resp.Body.Close()
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func TestJoinGameHandler_FullJoinFlow(t *testing.T) {
	srv := startTestServer(t)
	conn := dial(t, srv)

	require.NoError(t, conn.WriteJSON(map[string]any{
		"type": "joinGame",
		"data": map[string]string{"username": "ana"},
	}))

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	seen := map[string]bool{}
	for i := 0; i < 6; i++ {
		var msg struct {
			Type string `json:"type"`
		}
		require.NoError(t, conn.ReadJSON(&msg))
		seen[msg.Type] = true
		if seen[protocol.TypeGameJoined] && seen[protocol.TypeUpdatePlayerList] && seen[protocol.TypeShowStartGameButton] {
			break
		}
	}

	assert.True(t, seen[protocol.TypeGameJoined])
	assert.True(t, seen[protocol.TypeUpdatePlayerList])
	assert.True(t, seen[protocol.TypeShowStartGameButton])
}

func TestJoinGameHandler_FirstMessageMustBeJoin(t *testing.T) {
	srv := startTestServer(t)
	conn := dial(t, srv)

	require.NoError(t, conn.WriteJSON(map[string]any{
		"type": "chatMessage",
		"data": map[string]string{"text": "hello"},
	}))

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, _, err := conn.ReadMessage()
	assert.Error(t, err, "server should close the connection")
}

func TestJoinGameHandler_PlainHTTPRequestRejected(t *testing.T) {
	srv := startTestServer(t)

	resp, err := http.Get(srv.URL + "/ws")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
