package game

import (
	"context"
	"time"

	"sketchparty/protocol"
)

// Player is the room-facing view of a connected client.
type Player interface {
	ID() string
	Username() string
	Send(data []byte) error
	Ping() error
	SetRoom(r Room)
	CancelAndRelease()
}

// Room is one game session. All of its state is owned by a single goroutine
// (GameLoop); the methods below only hand messages to that goroutine.
type Room interface {
	RequestJoin(jreq roomJoinRequest)
	Send(ctx context.Context, e ClientEnvelope)
	RemoveMe(ctx context.Context, p Player)
	Tick(now time.Time)
	PingPlayers()
	GameLoop()
	CloseAndRelease()
	SetID(id string)
	SetParentLobby(l Lobby)
}

// Lobby owns the room registry.
type Lobby interface {
	JoinRoom(ctx context.Context, roomID string, p Player) error
	RemoveRoom(roomID string)
}

// WordPicker supplies secret words and their display hints.
type WordPicker interface {
	Pick() string
	Hint(word string) string
}

// SocketConn is the narrow transport surface the player pumps need.
type SocketConn interface {
	Write(data []byte) error
	Read() ([]byte, error)
	Ping() error
	Close()
}

// PeriodicTickerChannelCreator lets tests inject controllable tick channels.
type PeriodicTickerChannelCreator interface {
	Create(duration time.Duration) <-chan time.Time
}

// ClientEnvelope pairs a decoded client event with its sender.
type ClientEnvelope struct {
	event protocol.ClientEvent
	from  Player
}

type roomJoinRequest struct {
	player  Player
	errChan chan error
}
