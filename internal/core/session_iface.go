package core

// SessionID names one live transport connection. It is never sent to clients.
type SessionID string
