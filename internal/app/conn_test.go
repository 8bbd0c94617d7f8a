package app

import (
	"encoding/json"
	"errors"
	"sync"

	"github.com/dkeye/Relay/internal/core"
)

type fakeConn struct {
	mu     sync.Mutex
	frames []core.Frame
	full   bool
	closed bool
}

func (f *fakeConn) TrySend(fr core.Frame) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return errors.New("closed")
	}
	if f.full {
		return errors.New("full")
	}
	f.frames = append(f.frames, fr)
	return nil
}

func (f *fakeConn) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
}

func (f *fakeConn) messages() []core.ChatMessage {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]core.ChatMessage, 0, len(f.frames))
	for _, fr := range f.frames {
		var m core.ChatMessage
		_ = json.Unmarshal(fr, &m)
		out = append(out, m)
	}
	return out
}
