package domain

import "errors"

var (
	ErrUsernameTooLong = errors.New("username too long")
	ErrUsernameEmpty   = errors.New("username empty")
	ErrRoomNameTooLong = errors.New("room name too long")
	ErrRoomNameEmpty   = errors.New("room name empty")

	ErrNameTaken         = errors.New("name taken")
	ErrAlreadyRegistered = errors.New("connection already registered")
	ErrVerifyFailed      = errors.New("verify failed")
	ErrRoomExists        = errors.New("room exists")
	ErrRoomFull          = errors.New("room full")
	ErrRoomNotFound      = errors.New("room not found")
	ErrAlreadyInRoom     = errors.New("already in room")
	ErrNotInRoom         = errors.New("not in room")
)
