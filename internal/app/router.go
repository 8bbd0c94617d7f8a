package app

import (
	"encoding/json"
	"sync"

	"github.com/dkeye/Relay/internal/core"
	"github.com/dkeye/Relay/internal/domain"
	"github.com/rs/zerolog/log"
)

// Router keeps one delivery group per room and fans chat messages out to it.
// It never closes adapter-owned connections.
type Router struct {
	mu     sync.RWMutex
	groups map[domain.RoomName]map[core.SessionID]core.SignalConnection
}

func NewRouter() *Router {
	return &Router{groups: make(map[domain.RoomName]map[core.SessionID]core.SignalConnection)}
}

func (r *Router) Subscribe(room domain.RoomName, sid core.SessionID, conn core.SignalConnection) {
	r.mu.Lock()
	defer r.mu.Unlock()
	g, ok := r.groups[room]
	if !ok {
		g = make(map[core.SessionID]core.SignalConnection)
		r.groups[room] = g
	}
	g[sid] = conn
	log.Debug().Str("module", "app.router").Str("sid", string(sid)).Str("room", string(room)).Msg("subscribed")
}

func (r *Router) Unsubscribe(room domain.RoomName, sid core.SessionID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	g, ok := r.groups[room]
	if !ok {
		return
	}
	delete(g, sid)
	if len(g) == 0 {
		delete(r.groups, room)
	}
	log.Debug().Str("module", "app.router").Str("sid", string(sid)).Str("room", string(room)).Msg("unsubscribed")
}

func (r *Router) GroupSize(room domain.RoomName) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.groups[room])
}

type groupSnap struct {
	SID  core.SessionID
	Conn core.SignalConnection
}

func (r *Router) snapshot(room domain.RoomName) []groupSnap {
	r.mu.RLock()
	defer r.mu.RUnlock()
	g := r.groups[room]
	out := make([]groupSnap, 0, len(g))
	for sid, conn := range g {
		out = append(out, groupSnap{SID: sid, Conn: conn})
	}
	return out
}

// Broadcast encodes msg once and queues it on every connection of the room.
// Sends happen outside the lock; a full or closed queue drops the frame.
func (r *Router) Broadcast(room domain.RoomName, msg core.ChatMessage) core.PublishResult {
	msg.Type = core.EvChatMsg
	data, err := json.Marshal(msg)
	if err != nil {
		log.Error().Err(err).Str("module", "app.router").Msg("broadcast marshal")
		return core.PublishResult{}
	}

	res := core.PublishResult{}
	for _, snap := range r.snapshot(room) {
		if err := snap.Conn.TrySend(core.Frame(data)); err != nil {
			res.Dropped = append(res.Dropped, snap.SID)
			continue
		}
		res.SentTo++
	}
	log.Debug().Str("module", "app.router").Str("room", string(room)).Str("from", msg.Name).Int("sent_to", res.SentTo).Int("dropped", len(res.Dropped)).Msg("broadcast result")
	return res
}
