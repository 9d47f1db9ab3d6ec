package game

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// DefaultRoomID names the shared room every connection joins. Rooms are
// keyed by id, so running several independent rooms is only a matter of
// routing different ids here.
const DefaultRoomID = "main"

type lobbyJoinRequest struct {
	roomID string
	jreq   roomJoinRequest
}

// lobby owns the room registry. Like rooms, it is an actor: the map is only
// touched by LobbyActor, everything else goes through channels.
type lobby struct {
	rooms          map[string]Room
	newRoom        func() Room
	tickerCreator  PeriodicTickerChannelCreator
	joinReqs       chan lobbyJoinRequest
	removeRoomChan chan string
	log            zerolog.Logger
}

func NewLobby(newRoom func() Room, tickerCreator PeriodicTickerChannelCreator, log zerolog.Logger) *lobby {
	return &lobby{
		rooms:          map[string]Room{},
		newRoom:        newRoom,
		tickerCreator:  tickerCreator,
		joinReqs:       make(chan lobbyJoinRequest, 256),
		removeRoomChan: make(chan string, 32),
		log:            log,
	}
}

// JoinRoom adds p to the room with roomID, creating and running the room on
// first join. Blocks until the room answered or ctx is done.
func (l *lobby) JoinRoom(ctx context.Context, roomID string, p Player) error {
	jreq := roomJoinRequest{player: p, errChan: make(chan error, 1)}
	select {
	case l.joinReqs <- lobbyJoinRequest{roomID: roomID, jreq: jreq}:
	case <-ctx.Done():
		return ctx.Err()
	}
	select {
	case err := <-jreq.errChan:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// RemoveRoom is called by a room that emptied out.
func (l *lobby) RemoveRoom(roomID string) {
	l.removeRoomChan <- roomID
}

// LobbyActor drives every room: a shared one second ticker feeds the round
// countdowns, a slower one keeps the sockets alive.
func (l *lobby) LobbyActor(started chan struct{}) {
	ticker := l.tickerCreator.Create(time.Second)
	pingTicker := l.tickerCreator.Create(time.Second * 30)

	close(started)

	for {
		select {
		case now := <-ticker:
			for _, r := range l.rooms {
				r.Tick(now)
			}
		case <-pingTicker:
			for _, r := range l.rooms {
				r.PingPlayers()
			}
		case req := <-l.joinReqs:
			l.handleJoinReq(req)
		case roomID := <-l.removeRoomChan:
			l.handleRemoveRoom(roomID)
		}
	}
}

func (l *lobby) handleJoinReq(req lobbyJoinRequest) {
	room, ok := l.rooms[req.roomID]
	if !ok {
		room = l.newRoom()
		room.SetID(req.roomID)
		room.SetParentLobby(l)
		l.rooms[req.roomID] = room
		go room.GameLoop()
		l.log.Info().Str("room", req.roomID).Msg("room created")
	}
	room.RequestJoin(req.jreq)
}

func (l *lobby) handleRemoveRoom(roomID string) {
	room, ok := l.rooms[roomID]
	if !ok {
		return
	}
	delete(l.rooms, roomID)
	room.CloseAndRelease()
	l.log.Info().Str("room", roomID).Msg("room removed")
}
