// Package domain contains entity without logic, just meta-data
package domain

import (
	"github.com/google/uuid"
)

const (
	MaxUsernameLen = 36
	// ServerName is the sender of system broadcasts; no client may take it.
	ServerName = "server"
)

type Token string

// Identity binds an issued token to a display name.
type Identity struct {
	Token Token  `json:"token"`
	Name  string `json:"name"`
}

// Session is what a successful verification hands back to a transition.
type Session struct {
	Token Token
	Name  string
}

// NewIdentity is a tiny helper to avoid ad-hoc struct literals in registries.
func NewIdentity(name string) (*Identity, error) {
	if err := ValidateUsername(name); err != nil {
		return nil, err
	}
	return &Identity{Token: Token(uuid.NewString()), Name: name}, nil
}

func ValidateUsername(name string) error {
	if len(name) == 0 {
		return ErrUsernameEmpty
	}
	if len(name) > MaxUsernameLen {
		return ErrUsernameTooLong
	}
	return nil
}
