package core

import (
	"errors"

	"github.com/dkeye/Relay/internal/domain"
)

// Request types sent by clients.
const (
	ReqFetchRoomList = "fetchRoomList"
	ReqRegisterName  = "registerName"
	ReqCreateRoom    = "createRoom"
	ReqJoinRoom      = "joinRoom"
	ReqSendChatMsg   = "sendChatMsg"
	ReqLeaveRoom     = "leaveRoom"
	ReqPing          = "ping"
)

// Event types sent by the server.
const (
	EvRoomListResult   = "roomListResult"
	EvRegisterResult   = "registerResult"
	EvCreateRoomResult = "createRoomResult"
	EvJoinRoomResult   = "joinRoomResult"
	EvChatMsg          = "chatMsg"
	EvConfirmLeft      = "confirmLeft"
	EvError            = "error"
	EvPong             = "pong"
)

// Request is the union of every client payload; unused fields stay empty.
type Request struct {
	Type      string `json:"type"`
	Token     string `json:"token,omitempty"`
	Name      string `json:"name,omitempty"`
	RoomName  string `json:"roomName,omitempty"`
	Data      string `json:"data,omitempty"`
	Timestamp int64  `json:"timestamp,omitempty"`
}

// ChatMessage is the only payload fanned out to a room. It never carries a token.
type ChatMessage struct {
	Type      string `json:"type"`
	Data      string `json:"data"`
	Name      string `json:"name"`
	Timestamp int64  `json:"timestamp"`
}

type RoomListResult struct {
	Type  string     `json:"type"`
	Rooms []RoomInfo `json:"rooms"`
}

type RegisterResult struct {
	Type    string `json:"type"`
	Success bool   `json:"success"`
	Name    string `json:"name,omitempty"`
	Token   string `json:"token,omitempty"`
	Msg     string `json:"msg"`
	Error   string `json:"error,omitempty"`
}

// RoomResult answers both createRoom and joinRoom.
type RoomResult struct {
	Type     string          `json:"type"`
	Success  bool            `json:"success"`
	RoomName domain.RoomName `json:"roomName,omitempty"`
	Error    string          `json:"error,omitempty"`
}

type ErrorEvent struct {
	Type    string `json:"type"`
	Request string `json:"request,omitempty"`
	Error   string `json:"error"`
}

// Wire codes that have no domain error behind them.
const (
	CodeBadPayload     = "bad_payload"
	CodeRateLimited    = "rate_limited"
	CodeUnknownRequest = "unknown_request"
	CodeInternal       = "internal"
)

// ErrorCode maps a domain error to its wire code.
func ErrorCode(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, domain.ErrNameTaken):
		return "name_taken"
	case errors.Is(err, domain.ErrUsernameEmpty), errors.Is(err, domain.ErrUsernameTooLong):
		return "invalid_name"
	case errors.Is(err, domain.ErrAlreadyRegistered):
		return "already_registered"
	case errors.Is(err, domain.ErrVerifyFailed):
		return "verify_failed"
	case errors.Is(err, domain.ErrRoomExists):
		return "room_exists"
	case errors.Is(err, domain.ErrRoomNameEmpty), errors.Is(err, domain.ErrRoomNameTooLong):
		return "invalid_room_name"
	case errors.Is(err, domain.ErrRoomFull):
		return "room_full"
	case errors.Is(err, domain.ErrRoomNotFound):
		return "room_not_found"
	case errors.Is(err, domain.ErrAlreadyInRoom):
		return "already_in_room"
	case errors.Is(err, domain.ErrNotInRoom):
		return "not_in_room"
	}
	return CodeInternal
}
