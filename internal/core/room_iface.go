package core

import (
	"github.com/dkeye/Relay/internal/domain"
)

// PublishResult reports delivery stats/backpressure to orchestrator.
type PublishResult struct {
	SentTo  int
	Dropped []SessionID
}

type RoomInfo struct {
	Name      domain.RoomName `json:"name"`
	UserCount int             `json:"userCount"`
	Capacity  int             `json:"capacity"`
}

// RoomManager owns every room and the name -> room index.
// Implementations must make each method atomic.
type RoomManager interface {
	CreateRoom(name domain.RoomName) error
	JoinRoom(name string, room domain.RoomName) error
	RoomOf(name string) (domain.RoomName, bool)
	RemoveUser(name string) (domain.RoomName, bool)
	Members(room domain.RoomName) ([]string, bool)
	List() []RoomInfo
	Count() int
}
