// Package protocol defines the wire vocabulary between clients and the game
// server: one tagged JSON variant per event, validated at the boundary so the
// room never sees a malformed payload.
package protocol

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
)

// Inbound event types.
const (
	TypeJoinGame    = "joinGame"
	TypeChatMessage = "chatMessage"
	TypeDrawing     = "drawing"
	TypeClearCanvas = "clearCanvas"
	TypeStartGame   = "startGame"
	TypeRateDrawing = "rateDrawing"
)

// Outbound event types.
const (
	TypeGameJoined          = "gameJoined"
	TypeUpdatePlayerList    = "updatePlayerList"
	TypeUpdateGameInfo      = "updateGameInfo"
	TypeSetWordToDraw       = "setWordToDraw"
	TypeEnableDrawing       = "enableDrawing"
	TypeDisableDrawing      = "disableDrawing"
	TypeUpdateTimer         = "updateTimer"
	TypeSyncTimer           = "syncTimer"
	TypeShowStartGameButton = "showStartGameButton"
)

const (
	RatingUp   = "up"
	RatingDown = "down"

	ToolPen    = "pen"
	ToolEraser = "eraser"
)

var (
	ErrUnknownType = errors.New("unknown message type")
	ErrBadPayload  = errors.New("bad payload")
)

type envelope struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data,omitempty"`
}

// ClientEvent is implemented by every inbound variant.
type ClientEvent interface {
	clientEvent()
}

type JoinGame struct {
	Username string `json:"username"`
}

type ChatMessage struct {
	Text string `json:"text"`
}

// Stroke is one incremental line segment. Coordinates are normalized to
// [0,1] relative to the sender's canvas so differently sized canvases stay
// consistent.
type Stroke struct {
	X0    float64 `json:"x0"`
	Y0    float64 `json:"y0"`
	X1    float64 `json:"x1"`
	Y1    float64 `json:"y1"`
	Color string  `json:"color"`
	Size  float64 `json:"size"`
	Tool  string  `json:"tool"`
}

type Drawing struct {
	Stroke
}

type ClearCanvas struct{}

type StartGame struct{}

type RateDrawing struct {
	Rating   string `json:"rating"`
	DrawerID string `json:"drawerId"`
}

func (JoinGame) clientEvent()    {}
func (ChatMessage) clientEvent() {}
func (Drawing) clientEvent()     {}
func (ClearCanvas) clientEvent() {}
func (StartGame) clientEvent()   {}
func (RateDrawing) clientEvent() {}

// IsCommand reports whether an event should pass through the per-player
// command rate limiter. Strokes are exempt, they arrive on every mouse move.
func IsCommand(ev ClientEvent) bool {
	_, ok := ev.(Drawing)
	return !ok
}

// ParseClient decodes and validates one inbound message.
func ParseClient(data []byte) (ClientEvent, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadPayload, err)
	}

	switch env.Type {
	case TypeJoinGame:
		var ev JoinGame
		if err := unmarshalData(env.Data, &ev); err != nil {
			return nil, err
		}
		return ev, nil

	case TypeChatMessage:
		var ev ChatMessage
		if err := unmarshalData(env.Data, &ev); err != nil {
			return nil, err
		}
		return ev, nil

	case TypeDrawing:
		var ev Drawing
		if err := unmarshalData(env.Data, &ev); err != nil {
			return nil, err
		}
		if err := ev.Stroke.validate(); err != nil {
			return nil, err
		}
		return ev, nil

	case TypeClearCanvas:
		return ClearCanvas{}, nil

	case TypeStartGame:
		return StartGame{}, nil

	case TypeRateDrawing:
		var ev RateDrawing
		if err := unmarshalData(env.Data, &ev); err != nil {
			return nil, err
		}
		if ev.Rating != RatingUp && ev.Rating != RatingDown {
			return nil, fmt.Errorf("%w: rating %q", ErrBadPayload, ev.Rating)
		}
		return ev, nil
	}

	return nil, fmt.Errorf("%w: %q", ErrUnknownType, env.Type)
}

func unmarshalData(data json.RawMessage, v any) error {
	if len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("%w: %v", ErrBadPayload, err)
	}
	return nil
}

func (s Stroke) validate() error {
	for _, c := range []float64{s.X0, s.Y0, s.X1, s.Y1} {
		if math.IsNaN(c) || c < 0 || c > 1 {
			return fmt.Errorf("%w: coordinate %v out of [0,1]", ErrBadPayload, c)
		}
	}
	if s.Size <= 0 || s.Size > 100 {
		return fmt.Errorf("%w: brush size %v", ErrBadPayload, s.Size)
	}
	if s.Tool != ToolPen && s.Tool != ToolEraser {
		return fmt.Errorf("%w: tool %q", ErrBadPayload, s.Tool)
	}
	return nil
}
