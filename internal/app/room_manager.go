package app

import (
	"sync"

	"github.com/dkeye/Relay/internal/core"
	"github.com/dkeye/Relay/internal/domain"
	"github.com/rs/zerolog/log"
)

const DefaultRoomCapacity = 100

// RoomManagerImpl keeps rooms and the name -> room index under one lock
// so membership and the index can never disagree.
type RoomManagerImpl struct {
	mu       sync.RWMutex
	capacity int
	rooms    map[domain.RoomName]*domain.Room
	roomOf   map[string]domain.RoomName
}

func NewRoomManager(capacity int) *RoomManagerImpl {
	if capacity <= 0 {
		capacity = DefaultRoomCapacity
	}
	return &RoomManagerImpl{
		capacity: capacity,
		rooms:    make(map[domain.RoomName]*domain.Room),
		roomOf:   make(map[string]domain.RoomName),
	}
}

var _ core.RoomManager = (*RoomManagerImpl)(nil)

func (f *RoomManagerImpl) CreateRoom(name domain.RoomName) error {
	room, err := domain.NewRoom(name, f.capacity)
	if err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.rooms[name]; ok {
		return domain.ErrRoomExists
	}
	f.rooms[name] = room
	log.Info().Str("module", "app.rooms").Str("room", string(name)).Msg("created room")
	return nil
}

// JoinRoom appends name to the room's members. A name already in a room
// must leave it first.
func (f *RoomManagerImpl) JoinRoom(name string, roomName domain.RoomName) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	room, ok := f.rooms[roomName]
	if !ok {
		return domain.ErrRoomNotFound
	}
	if _, in := f.roomOf[name]; in {
		return domain.ErrAlreadyInRoom
	}
	if !room.HasCapacity() {
		return domain.ErrRoomFull
	}
	room.AddMember(name)
	f.roomOf[name] = roomName
	log.Info().Str("module", "app.rooms").Str("room", string(roomName)).Str("name", name).Int("count", room.MemberCount()).Msg("member joined")
	return nil
}

func (f *RoomManagerImpl) RoomOf(name string) (domain.RoomName, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	roomName, ok := f.roomOf[name]
	return roomName, ok
}

// RemoveUser takes name out of whatever room it is in and reports that room.
func (f *RoomManagerImpl) RemoveUser(name string) (domain.RoomName, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	roomName, ok := f.roomOf[name]
	if !ok {
		return "", false
	}
	if room, exists := f.rooms[roomName]; exists {
		room.RemoveMember(name)
	}
	delete(f.roomOf, name)
	log.Info().Str("module", "app.rooms").Str("room", string(roomName)).Str("name", name).Msg("member removed")
	return roomName, true
}

func (f *RoomManagerImpl) Members(roomName domain.RoomName) ([]string, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	room, ok := f.rooms[roomName]
	if !ok {
		return nil, false
	}
	out := make([]string, len(room.Members))
	copy(out, room.Members)
	return out, true
}

func (f *RoomManagerImpl) List() []core.RoomInfo {
	f.mu.RLock()
	defer f.mu.RUnlock()
	out := make([]core.RoomInfo, 0, len(f.rooms))
	for name, r := range f.rooms {
		out = append(out, core.RoomInfo{Name: name, UserCount: r.MemberCount(), Capacity: r.Capacity})
	}
	return out
}

func (f *RoomManagerImpl) Count() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return len(f.rooms)
}
