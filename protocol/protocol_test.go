package protocol

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseClient(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		input    string
		expected ClientEvent
		wantErr  error
	}{
		{
			name:     "join with username",
			input:    `{"type":"joinGame","data":{"username":"ana"}}`,
			expected: JoinGame{Username: "ana"},
		},
		{
			name:     "join without payload",
			input:    `{"type":"joinGame"}`,
			expected: JoinGame{},
		},
		{
			name:     "chat",
			input:    `{"type":"chatMessage","data":{"text":"is it a rocket?"}}`,
			expected: ChatMessage{Text: "is it a rocket?"},
		},
		{
			name:  "drawing",
			input: `{"type":"drawing","data":{"x0":0.1,"y0":0.2,"x1":0.3,"y1":0.4,"color":"#ff0000","size":5,"tool":"pen"}}`,
			expected: Drawing{Stroke: Stroke{
				X0: 0.1, Y0: 0.2, X1: 0.3, Y1: 0.4,
				Color: "#ff0000", Size: 5, Tool: "pen",
			}},
		},
		{
			name:  "eraser stroke",
			input: `{"type":"drawing","data":{"x0":0,"y0":0,"x1":1,"y1":1,"color":"","size":20,"tool":"eraser"}}`,
			expected: Drawing{Stroke: Stroke{
				X1: 1, Y1: 1, Size: 20, Tool: "eraser",
			}},
		},
		{
			name:     "clear canvas",
			input:    `{"type":"clearCanvas"}`,
			expected: ClearCanvas{},
		},
		{
			name:     "start game",
			input:    `{"type":"startGame"}`,
			expected: StartGame{},
		},
		{
			name:     "rate up",
			input:    `{"type":"rateDrawing","data":{"rating":"up","drawerId":"abc"}}`,
			expected: RateDrawing{Rating: "up", DrawerID: "abc"},
		},
		{
			name:    "coordinate above one",
			input:   `{"type":"drawing","data":{"x0":1.5,"y0":0,"x1":0,"y1":0,"color":"#000","size":5,"tool":"pen"}}`,
			wantErr: ErrBadPayload,
		},
		{
			name:    "negative coordinate",
			input:   `{"type":"drawing","data":{"x0":-0.1,"y0":0,"x1":0,"y1":0,"color":"#000","size":5,"tool":"pen"}}`,
			wantErr: ErrBadPayload,
		},
		{
			name:    "zero brush size",
			input:   `{"type":"drawing","data":{"x0":0,"y0":0,"x1":0,"y1":0,"color":"#000","size":0,"tool":"pen"}}`,
			wantErr: ErrBadPayload,
		},
		{
			name:    "unknown tool",
			input:   `{"type":"drawing","data":{"x0":0,"y0":0,"x1":0,"y1":0,"color":"#000","size":5,"tool":"spray"}}`,
			wantErr: ErrBadPayload,
		},
		{
			name:    "bad rating",
			input:   `{"type":"rateDrawing","data":{"rating":"sideways","drawerId":"abc"}}`,
			wantErr: ErrBadPayload,
		},
		{
			name:    "unknown type",
			input:   `{"type":"launchMissiles"}`,
			wantErr: ErrUnknownType,
		},
		{
			name:    "not json",
			input:   `hello`,
			wantErr: ErrBadPayload,
		},
		{
			name:    "payload type mismatch",
			input:   `{"type":"chatMessage","data":{"text":42}}`,
			wantErr: ErrBadPayload,
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			ev, err := ParseClient([]byte(tc.input))
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, ev)
		})
	}
}

func TestIsCommand(t *testing.T) {
	t.Parallel()

	assert.False(t, IsCommand(Drawing{}))
	assert.True(t, IsCommand(ChatMessage{}))
	assert.True(t, IsCommand(StartGame{}))
	assert.True(t, IsCommand(ClearCanvas{}))
	assert.True(t, IsCommand(RateDrawing{}))
}

func TestServerMessage_Encode(t *testing.T) {
	t.Parallel()

	t.Run("round trip of the game info payload", func(t *testing.T) {
		data, err := MakeGameInfo("_ _ _", "ana", "Round 1 of 3").Encode()
		require.NoError(t, err)

		var decoded struct {
			Type string `json:"type"`
			Data struct {
				CurrentWordHint string `json:"currentWordHint"`
				DrawerName      string `json:"drawerName"`
				RoundInfo       string `json:"roundInfo"`
			} `json:"data"`
		}
		require.NoError(t, json.Unmarshal(data, &decoded))
		assert.Equal(t, TypeUpdateGameInfo, decoded.Type)
		assert.Equal(t, "_ _ _", decoded.Data.CurrentWordHint)
		assert.Equal(t, "ana", decoded.Data.DrawerName)
		assert.Equal(t, "Round 1 of 3", decoded.Data.RoundInfo)
	})

	t.Run("messages without payload omit data", func(t *testing.T) {
		data, err := MakeEnableDrawing().Encode()
		require.NoError(t, err)
		assert.JSONEq(t, `{"type":"enableDrawing"}`, string(data))
	})

	t.Run("player list keeps field names clients expect", func(t *testing.T) {
		data, err := MakePlayerList([]PlayerInfo{
			{ID: "a", Username: "ana", Score: 150, IsDrawer: true},
		}).Encode()
		require.NoError(t, err)
		assert.JSONEq(t, `{"type":"updatePlayerList","data":[{"id":"a","username":"ana","score":150,"isDrawer":true}]}`, string(data))
	})
}
