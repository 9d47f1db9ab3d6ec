package game

import "errors"

var (
	ErrRoomFull     = errors.New("room is full")
	ErrRoomClosed   = errors.New("room is closed")
	ErrExpectedJoin = errors.New("first message must be joinGame")
	ErrSlowClient   = errors.New("client outbox is full")
)
