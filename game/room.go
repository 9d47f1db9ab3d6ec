package game

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/enescakir/emoji"
	"github.com/rs/zerolog"

	"sketchparty/protocol"
)

const (
	guesserAward  = 100
	drawerAward   = 50
	rateUpDelta   = 5
	rateDownDelta = 2
)

const systemUser = "System"

const revealCommand = "!reveal"

// RoomConfig is the static per-room configuration.
type RoomConfig struct {
	RoundDuration time.Duration
	MaxRounds     int
	MinPlayers    int
	MaxPlayers    int
	DebugReveal   bool
}

// room runs one game session. Every field below the channels is owned by the
// GameLoop goroutine; client events, player removals and timer ticks all
// arrive through the same serialized queue, so no two mutations ever
// interleave and a correct guess and a timeout can never both advance the
// same round.
type room struct {
	cfg         RoomConfig
	words       WordPicker
	log         zerolog.Logger
	id          string
	parentLobby Lobby

	registry    registry
	gameStarted bool
	round       int
	drawerIndex int // join-order rotation cursor, -1 when no drawer yet
	drawerID    string
	currentWord string
	wordHint    string
	deadline    time.Time // zero when no countdown is live
	closing     bool

	inbox       chan ClientEnvelope
	joinReqs    chan roomJoinRequest
	removeMe    chan Player
	ticks       chan time.Time
	pingPlayers chan struct{}
	done        chan struct{}
	closeOnce   sync.Once
}

func NewRoom(cfg RoomConfig, words WordPicker, log zerolog.Logger) *room {
	return &room{
		cfg:         cfg,
		words:       words,
		log:         log,
		drawerIndex: -1,
		inbox:       make(chan ClientEnvelope, 1024),
		joinReqs:    make(chan roomJoinRequest, 32),
		removeMe:    make(chan Player, 64),
		ticks:       make(chan time.Time, 1),
		pingPlayers: make(chan struct{}, 1),
		done:        make(chan struct{}),
	}
}

func (r *room) SetID(id string) {
	r.id = id
	r.log = r.log.With().Str("room", id).Logger()
}

func (r *room) SetParentLobby(l Lobby) { r.parentLobby = l }

func (r *room) RequestJoin(jreq roomJoinRequest) {
	select {
	case r.joinReqs <- jreq:
	case <-r.done:
		jreq.errChan <- ErrRoomClosed
	}
}

func (r *room) Send(ctx context.Context, e ClientEnvelope) {
	select {
	case r.inbox <- e:
	case <-r.done:
	case <-ctx.Done():
	}
}

func (r *room) RemoveMe(ctx context.Context, p Player) {
	select {
	case r.removeMe <- p:
	case <-r.done:
	case <-ctx.Done():
	}
}

// Tick never blocks the lobby; a slow room skips a beat instead.
func (r *room) Tick(now time.Time) {
	select {
	case r.ticks <- now:
	default:
	}
}

func (r *room) PingPlayers() {
	select {
	case r.pingPlayers <- struct{}{}:
	default:
	}
}

func (r *room) CloseAndRelease() {
	r.closeOnce.Do(func() {
		close(r.done)
	})
}

// GameLoop is the room actor. It exits when the lobby closes the room.
func (r *room) GameLoop() {
	for {
		select {
		case <-r.done:
			return
		case jreq := <-r.joinReqs:
			r.handleJoinRequest(jreq)
		case p := <-r.removeMe:
			r.handleRemovePlayer(p)
		case env := <-r.inbox:
			r.handleEnvelope(env)
		case now := <-r.ticks:
			r.handleTick(now)
		case <-r.pingPlayers:
			for _, st := range r.registry.states {
				st.player.Ping()
			}
		}
	}
}

func (r *room) handleEnvelope(env ClientEnvelope) {
	switch ev := env.event.(type) {
	case protocol.ChatMessage:
		r.handleChat(env.from, ev.Text)
	case protocol.Drawing:
		r.handleDrawing(env.from, ev.Stroke)
	case protocol.ClearCanvas:
		r.handleClearCanvas(env.from)
	case protocol.StartGame:
		r.handleStartGame(env.from)
	case protocol.RateDrawing:
		r.handleRate(env.from, ev.Rating, ev.DrawerID)
	case protocol.JoinGame:
		// joining happens through joinReqs; a repeated joinGame is noise
	}
}

func (r *room) handleJoinRequest(jreq roomJoinRequest) {
	if r.closing {
		jreq.errChan <- ErrRoomClosed
		return
	}
	if r.registry.len() >= r.cfg.MaxPlayers {
		jreq.errChan <- ErrRoomFull
		return
	}

	p := jreq.player
	p.SetRoom(r)
	r.registry.add(p)
	jreq.errChan <- nil

	r.log.Info().Str("player", p.Username()).Int("players", r.registry.len()).Msg("player joined")

	r.send(p, protocol.MakeGameJoined())
	r.systemChat(fmt.Sprintf("%s %s has joined the game.", emoji.WavingHand.String(), p.Username()))
	r.broadcastPlayerList()

	r.send(p, protocol.MakeDisableDrawing())
	if r.gameStarted {
		r.send(p, protocol.MakeGameInfo(r.wordHint, r.drawerName(), r.roundInfo()))
		r.send(p, protocol.MakeSyncTimer(r.secondsLeft(time.Now())))
	} else {
		r.send(p, protocol.MakeShowStartGameButton())
	}
}

func (r *room) handleRemovePlayer(p Player) {
	st := r.registry.get(p.ID())
	if st == nil {
		return
	}
	wasDrawer := st.isDrawer
	index, _ := r.registry.remove(p.ID())
	if index <= r.drawerIndex {
		// Keep the rotation cursor on the same player, or, when the
		// drawer itself left, on its predecessor so the next advance
		// lands on the player that followed the drawer.
		r.drawerIndex--
	}
	p.CancelAndRelease()

	r.log.Info().Str("player", p.Username()).Int("players", r.registry.len()).Msg("player left")

	r.systemChat(fmt.Sprintf("%s %s has left the game.", emoji.Door.String(), p.Username()))
	r.broadcastPlayerList()

	if r.registry.len() == 0 {
		if r.gameStarted {
			r.endGame()
		}
		r.closing = true
		if r.parentLobby != nil {
			r.parentLobby.RemoveRoom(r.id)
		}
		return
	}

	if wasDrawer && r.gameStarted {
		r.systemChat("The drawer left, moving on to the next round.")
		r.advanceRound(time.Now())
	}
}

func (r *room) handleChat(from Player, text string) {
	text = strings.TrimSpace(text)
	if text == "" {
		return
	}
	st := r.registry.get(from.ID())
	if st == nil {
		return
	}

	if r.cfg.DebugReveal && text == revealCommand {
		r.send(from, protocol.MakeChatMessage(systemUser, fmt.Sprintf("The word is %q.", r.currentWord)))
		return
	}

	if r.gameStarted && !st.isDrawer && r.currentWord != "" && strings.EqualFold(text, r.currentWord) {
		r.handleCorrectGuess(st)
		return
	}

	r.broadcast(protocol.MakeChatMessage(from.Username(), text))
}

func (r *room) handleCorrectGuess(guesser *playerState) {
	guesser.score += guesserAward
	if drawer := r.registry.get(r.drawerID); drawer != nil {
		drawer.score += drawerAward
	}

	r.systemChat(fmt.Sprintf("%s %s guessed the word! It was %q.",
		emoji.PartyPopper.String(), guesser.player.Username(), r.currentWord))
	r.broadcastPlayerList()

	// Advancing replaces the deadline, so the pending timeout for this
	// round can never fire.
	r.advanceRound(time.Now())
}

func (r *room) handleDrawing(from Player, s protocol.Stroke) {
	if !r.isActiveDrawer(from) {
		// Off-turn strokes are expected from slow clients, drop quietly.
		return
	}
	r.broadcastExcept(from, protocol.MakeDrawing(s))
}

func (r *room) handleClearCanvas(from Player) {
	if !r.isActiveDrawer(from) {
		return
	}
	r.broadcast(protocol.MakeClearCanvas())
}

func (r *room) handleStartGame(from Player) {
	if r.gameStarted {
		return
	}
	if r.registry.get(from.ID()) == nil {
		return
	}
	if r.registry.len() < r.cfg.MinPlayers {
		r.send(from, protocol.MakeChatMessage(systemUser,
			fmt.Sprintf("Need at least %d players to start a game.", r.cfg.MinPlayers)))
		return
	}

	r.gameStarted = true
	r.round = 0
	r.drawerIndex = -1
	r.log.Info().Msg("game started")
	r.systemChat(fmt.Sprintf("%s Game on! Guess the word in the chat.", emoji.ArtistPalette.String()))
	r.advanceRound(time.Now())
}

func (r *room) handleRate(from Player, rating, targetID string) {
	if !r.gameStarted || r.drawerID == "" || targetID != r.drawerID {
		r.send(from, protocol.MakeChatMessage(systemUser, "There's no drawing to rate right now."))
		return
	}
	if from.ID() == r.drawerID {
		r.send(from, protocol.MakeChatMessage(systemUser, "You can't rate your own drawing."))
		return
	}
	drawer := r.registry.get(r.drawerID)
	if drawer == nil {
		return
	}

	switch rating {
	case protocol.RatingUp:
		drawer.score += rateUpDelta
		r.systemChat(fmt.Sprintf("%s %s liked %s's drawing.",
			emoji.ThumbsUp.String(), from.Username(), drawer.player.Username()))
	case protocol.RatingDown:
		// Scores may go negative, that is accepted.
		drawer.score -= rateDownDelta
		r.systemChat(fmt.Sprintf("%s %s disliked %s's drawing.",
			emoji.ThumbsDown.String(), from.Username(), drawer.player.Username()))
	default:
		return
	}
	r.broadcastPlayerList()
}

func (r *room) handleTick(now time.Time) {
	if !r.gameStarted || r.deadline.IsZero() {
		return
	}
	left := r.secondsLeft(now)
	if left > 0 {
		r.broadcast(protocol.MakeUpdateTimer(left))
		return
	}
	r.systemChat(fmt.Sprintf("%s Time's up! The word was %q.",
		emoji.AlarmClock.String(), r.currentWord))
	r.advanceRound(now)
}

// advanceRound is the single round-advance procedure: entered from
// startGame, timeout, correct guess and drawer disconnect.
func (r *room) advanceRound(now time.Time) {
	r.round++
	if r.round > r.cfg.MaxRounds || r.registry.len() < r.cfg.MinPlayers {
		r.endGame()
		return
	}

	r.broadcast(protocol.MakeClearCanvas())

	next := (r.drawerIndex + 1) % r.registry.len()
	r.drawerIndex = next
	drawer := r.registry.states[next]
	r.drawerID = drawer.player.ID()
	r.registry.setDrawer(r.drawerID)

	r.currentWord = r.words.Pick()
	r.wordHint = r.words.Hint(r.currentWord)

	r.log.Info().
		Int("round", r.round).
		Str("drawer", drawer.player.Username()).
		Msg("round advanced")

	r.broadcast(protocol.MakeGameInfo(r.wordHint, drawer.player.Username(), r.roundInfo()))
	r.send(drawer.player, protocol.MakeWordToDraw(r.currentWord))
	r.send(drawer.player, protocol.MakeEnableDrawing())
	r.broadcastExcept(drawer.player, protocol.MakeDisableDrawing())

	// Replacing the deadline is the timer cancellation: there is exactly
	// one live countdown per room, ever.
	r.deadline = now.Add(r.cfg.RoundDuration)
	r.broadcast(protocol.MakeUpdateTimer(r.secondsLeft(now)))
	r.broadcastPlayerList()
}

func (r *room) endGame() {
	r.deadline = time.Time{}
	r.gameStarted = false
	r.round = 0
	r.drawerIndex = -1
	r.drawerID = ""
	r.currentWord = ""
	r.wordHint = ""
	r.registry.clearDrawer()

	r.log.Info().Msg("game ended")

	if r.registry.len() > 0 {
		r.systemChat(fmt.Sprintf("%s Game over! Final scores:", emoji.Trophy.String()))
		for i, st := range r.registry.byScore() {
			r.systemChat(fmt.Sprintf("%d. %s: %d points", i+1, st.player.Username(), st.score))
		}
	}

	r.broadcast(protocol.MakeGameInfo("", "", ""))
	r.broadcast(protocol.MakeDisableDrawing())
	r.broadcast(protocol.MakeClearCanvas())
	r.broadcastPlayerList()
	r.broadcast(protocol.MakeShowStartGameButton())
}

func (r *room) isActiveDrawer(p Player) bool {
	return r.gameStarted && r.drawerID != "" && r.drawerID == p.ID()
}

func (r *room) drawerName() string {
	if drawer := r.registry.get(r.drawerID); drawer != nil {
		return drawer.player.Username()
	}
	return ""
}

func (r *room) roundInfo() string {
	return fmt.Sprintf("Round %d of %d", r.round, r.cfg.MaxRounds)
}

func (r *room) secondsLeft(now time.Time) int {
	left := int(r.deadline.Sub(now) / time.Second)
	if left < 0 {
		left = 0
	}
	return left
}

func (r *room) send(p Player, msg protocol.ServerMessage) {
	data, err := msg.Encode()
	if err != nil {
		r.log.Error().Err(err).Str("type", msg.Type).Msg("failed to encode message")
		return
	}
	if err := p.Send(data); err != nil {
		r.log.Debug().Str("to", p.Username()).Msg("dropping send to slow client")
	}
}

func (r *room) broadcast(msg protocol.ServerMessage) {
	data, err := msg.Encode()
	if err != nil {
		r.log.Error().Err(err).Str("type", msg.Type).Msg("failed to encode message")
		return
	}
	for _, st := range r.registry.states {
		if err := st.player.Send(data); err != nil {
			r.log.Debug().Str("to", st.player.Username()).Msg("dropping send to slow client")
		}
	}
}

func (r *room) broadcastExcept(except Player, msg protocol.ServerMessage) {
	data, err := msg.Encode()
	if err != nil {
		r.log.Error().Err(err).Str("type", msg.Type).Msg("failed to encode message")
		return
	}
	for _, st := range r.registry.states {
		if st.player == except {
			continue
		}
		if err := st.player.Send(data); err != nil {
			r.log.Debug().Str("to", st.player.Username()).Msg("dropping send to slow client")
		}
	}
}

func (r *room) systemChat(text string) {
	r.broadcast(protocol.MakeChatMessage(systemUser, text))
}

func (r *room) broadcastPlayerList() {
	infos := make([]protocol.PlayerInfo, 0, r.registry.len())
	for _, st := range r.registry.byScore() {
		infos = append(infos, protocol.PlayerInfo{
			ID:       st.player.ID(),
			Username: st.player.Username(),
			Score:    st.score,
			IsDrawer: st.isDrawer,
		})
	}
	r.broadcast(protocol.MakePlayerList(infos))
}
