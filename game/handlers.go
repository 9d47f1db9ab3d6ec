package game

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"sketchparty/protocol"
)

type Handler struct {
	lobby    Lobby
	upgrader websocket.Upgrader
	log      zerolog.Logger
}

// NewHandler wires the websocket endpoint. An empty or "*" origin list
// accepts any origin.
func NewHandler(lobby Lobby, allowedOrigins []string, log zerolog.Logger) *Handler {
	allowAny := len(allowedOrigins) == 0
	allowed := map[string]bool{}
	for _, origin := range allowedOrigins {
		if origin == "*" {
			allowAny = true
		}
		allowed[origin] = true
	}

	return &Handler{
		lobby: lobby,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				if allowAny {
					return true
				}
				return allowed[r.Header.Get("Origin")]
			},
		},
		log: log,
	}
}

// JoinGameHandler upgrades the connection, waits for the client's joinGame
// message and hands the player to the shared room.
func (h *Handler) JoinGameHandler(ctx *gin.Context) {
	conn, err := h.upgrader.Upgrade(ctx.Writer, ctx.Request, nil)
	if err != nil {
		h.log.Warn().Err(err).Str("ip", ctx.ClientIP()).Msg("websocket upgrade failed")
		return
	}
	socket := NewWebsocketConn(conn)

	username, err := awaitJoin(socket)
	if err != nil {
		h.log.Debug().Err(err).Str("ip", ctx.ClientIP()).Msg("join handshake failed")
		socket.Close()
		return
	}

	player := NewPlayer(uuid.NewString(), username, h.log)
	if err := h.lobby.JoinRoom(ctx.Request.Context(), DefaultRoomID, player); err != nil {
		h.log.Warn().Err(err).Str("player", player.Username()).Msg("join refused")
		socket.Close()
		return
	}

	go player.ReadPump(socket)
	go player.WritePump(socket)
}

// awaitJoin expects the first frame to be joinGame and extracts the
// requested username.
func awaitJoin(socket SocketConn) (string, error) {
	data, err := socket.Read()
	if err != nil {
		return "", err
	}
	ev, err := protocol.ParseClient(data)
	if err != nil {
		return "", err
	}
	join, ok := ev.(protocol.JoinGame)
	if !ok {
		return "", ErrExpectedJoin
	}
	return join.Username, nil
}
