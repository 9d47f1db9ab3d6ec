package protocol

import "encoding/json"

// ServerMessage is an outbound event ready for encoding. The Make* helpers
// below are the only way the game constructs them.
type ServerMessage struct {
	Type string `json:"type"`
	Data any    `json:"data,omitempty"`
}

func (m ServerMessage) Encode() ([]byte, error) {
	return json.Marshal(m)
}

// PlayerInfo is one row of the player list as clients render it.
type PlayerInfo struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Score    int    `json:"score"`
	IsDrawer bool   `json:"isDrawer"`
}

type chatPayload struct {
	User    string `json:"user"`
	Message string `json:"message"`
}

type gameInfoPayload struct {
	CurrentWordHint string `json:"currentWordHint"`
	DrawerName      string `json:"drawerName"`
	RoundInfo       string `json:"roundInfo"`
}

type wordPayload struct {
	Word string `json:"word"`
}

type timerPayload struct {
	SecondsLeft int `json:"secondsLeft"`
}

func MakeGameJoined() ServerMessage {
	return ServerMessage{Type: TypeGameJoined}
}

func MakeChatMessage(user, message string) ServerMessage {
	return ServerMessage{Type: TypeChatMessage, Data: chatPayload{User: user, Message: message}}
}

func MakeDrawing(s Stroke) ServerMessage {
	return ServerMessage{Type: TypeDrawing, Data: s}
}

func MakeClearCanvas() ServerMessage {
	return ServerMessage{Type: TypeClearCanvas}
}

func MakePlayerList(players []PlayerInfo) ServerMessage {
	return ServerMessage{Type: TypeUpdatePlayerList, Data: players}
}

func MakeGameInfo(hint, drawerName, roundInfo string) ServerMessage {
	return ServerMessage{Type: TypeUpdateGameInfo, Data: gameInfoPayload{
		CurrentWordHint: hint,
		DrawerName:      drawerName,
		RoundInfo:       roundInfo,
	}}
}

// MakeWordToDraw carries the literal secret word, drawer-only.
func MakeWordToDraw(word string) ServerMessage {
	return ServerMessage{Type: TypeSetWordToDraw, Data: wordPayload{Word: word}}
}

func MakeEnableDrawing() ServerMessage {
	return ServerMessage{Type: TypeEnableDrawing}
}

func MakeDisableDrawing() ServerMessage {
	return ServerMessage{Type: TypeDisableDrawing}
}

func MakeUpdateTimer(secondsLeft int) ServerMessage {
	return ServerMessage{Type: TypeUpdateTimer, Data: timerPayload{SecondsLeft: secondsLeft}}
}

// MakeSyncTimer is the late-joiner catch-up variant of MakeUpdateTimer.
func MakeSyncTimer(secondsLeft int) ServerMessage {
	return ServerMessage{Type: TypeSyncTimer, Data: timerPayload{SecondsLeft: secondsLeft}}
}

func MakeShowStartGameButton() ServerMessage {
	return ServerMessage{Type: TypeShowStartGameButton}
}
