package game

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/valyala/fastrand"
	"golang.org/x/time/rate"

	"sketchparty/protocol"
)

const outboxSize = 256

type wsPlayer struct {
	id       string
	username string
	limiter  *rate.Limiter
	outbox   chan []byte
	pingChan chan struct{}
	room     Room
	ctx      context.Context
	cancel   context.CancelFunc
	log      zerolog.Logger
}

// NewPlayer normalizes the requested name (blank becomes a generated guest
// name) and prepares the pump channels. SetRoom must happen before the pumps
// start.
func NewPlayer(id, username string, log zerolog.Logger) *wsPlayer {
	username = strings.TrimSpace(username)
	if username == "" {
		username = guestName()
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &wsPlayer{
		id:       id,
		username: username,
		limiter:  rate.NewLimiter(4, 8),
		outbox:   make(chan []byte, outboxSize),
		pingChan: make(chan struct{}, 1),
		ctx:      ctx,
		cancel:   cancel,
		log:      log.With().Str("player", username).Logger(),
	}
}

func guestName() string {
	return fmt.Sprintf("Guest-%d", fastrand.Uint32n(1000))
}

func (p *wsPlayer) ID() string       { return p.id }
func (p *wsPlayer) Username() string { return p.username }

func (p *wsPlayer) SetRoom(r Room) { p.room = r }

func (p *wsPlayer) CancelAndRelease() { p.cancel() }

// Send queues data for the write pump without blocking the room. A full
// outbox means a slow or dead client; dropping is fine, the next
// authoritative broadcast self-heals their view.
func (p *wsPlayer) Send(data []byte) error {
	select {
	case p.outbox <- data:
		return nil
	default:
		return ErrSlowClient
	}
}

func (p *wsPlayer) Ping() error {
	select {
	case p.pingChan <- struct{}{}:
	default:
	}
	return nil
}

// ReadPump decodes inbound frames and feeds them to the room until the
// socket errors or the player is released.
func (p *wsPlayer) ReadPump(socket SocketConn) {
	defer socket.Close()

	for {
		if p.ctx.Err() != nil {
			return
		}
		data, err := socket.Read()
		if err != nil {
			if p.room != nil {
				p.room.RemoveMe(p.ctx, p)
			}
			return
		}

		ev, err := protocol.ParseClient(data)
		if err != nil {
			p.log.Debug().Err(err).Msg("dropping malformed packet")
			continue
		}
		if protocol.IsCommand(ev) && !p.limiter.Allow() {
			continue
		}
		if p.room == nil {
			continue
		}
		p.room.Send(p.ctx, ClientEnvelope{event: ev, from: p})
	}
}

// WritePump drains the outbox and ping signals onto the socket.
func (p *wsPlayer) WritePump(socket SocketConn) {
	for {
		select {
		case <-p.ctx.Done():
			return
		case data := <-p.outbox:
			if err := socket.Write(data); err != nil {
				return
			}
		case <-p.pingChan:
			if err := socket.Ping(); err != nil {
				return
			}
		}
	}
}
