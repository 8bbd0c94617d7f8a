package app

import (
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/dkeye/Relay/internal/domain"
)

func TestCreateRoomDuplicate(t *testing.T) {
	rm := NewRoomManager(2)
	if err := rm.CreateRoom("lobby"); err != nil {
		t.Fatalf("CreateRoom: %v", err)
	}
	if err := rm.JoinRoom("alice", "lobby"); err != nil {
		t.Fatalf("JoinRoom: %v", err)
	}
	if err := rm.CreateRoom("lobby"); !errors.Is(err, domain.ErrRoomExists) {
		t.Errorf("second CreateRoom err = %v, want ErrRoomExists", err)
	}
	members, _ := rm.Members("lobby")
	if len(members) != 1 || members[0] != "alice" {
		t.Errorf("members = %v, want [alice]", members)
	}
	if err := rm.CreateRoom(""); !errors.Is(err, domain.ErrRoomNameEmpty) {
		t.Errorf("empty name err = %v", err)
	}
}

func TestJoinCapacity(t *testing.T) {
	rm := NewRoomManager(2)
	_ = rm.CreateRoom("lobby")

	if err := rm.JoinRoom("a", "lobby"); err != nil {
		t.Fatalf("join a: %v", err)
	}
	if err := rm.JoinRoom("b", "lobby"); err != nil {
		t.Fatalf("join b: %v", err)
	}
	if err := rm.JoinRoom("c", "lobby"); !errors.Is(err, domain.ErrRoomFull) {
		t.Fatalf("join c err = %v, want ErrRoomFull", err)
	}
	if _, ok := rm.RoomOf("c"); ok {
		t.Error("rejected join left a roomOf entry")
	}

	rm.RemoveUser("a")
	if err := rm.JoinRoom("c", "lobby"); err != nil {
		t.Fatalf("join c after leave: %v", err)
	}
	members, _ := rm.Members("lobby")
	if fmt.Sprint(members) != "[b c]" {
		t.Errorf("members = %v, want [b c]", members)
	}
}

func TestJoinErrors(t *testing.T) {
	rm := NewRoomManager(10)
	_ = rm.CreateRoom("a")
	_ = rm.CreateRoom("b")

	if err := rm.JoinRoom("alice", "missing"); !errors.Is(err, domain.ErrRoomNotFound) {
		t.Errorf("missing room err = %v", err)
	}
	if err := rm.JoinRoom("alice", "a"); err != nil {
		t.Fatal(err)
	}
	if err := rm.JoinRoom("alice", "b"); !errors.Is(err, domain.ErrAlreadyInRoom) {
		t.Errorf("second room err = %v, want ErrAlreadyInRoom", err)
	}
	if room, _ := rm.RoomOf("alice"); room != "a" {
		t.Errorf("RoomOf = %q, want a", room)
	}
}

func TestRemoveUserIdempotent(t *testing.T) {
	rm := NewRoomManager(10)
	_ = rm.CreateRoom("lobby")
	_ = rm.JoinRoom("alice", "lobby")

	room, ok := rm.RemoveUser("alice")
	if !ok || room != "lobby" {
		t.Errorf("RemoveUser = %q,%v", room, ok)
	}
	if _, ok := rm.RemoveUser("alice"); ok {
		t.Error("second RemoveUser reported a removal")
	}
	if _, ok := rm.RoomOf("alice"); ok {
		t.Error("RoomOf still set")
	}
	members, _ := rm.Members("lobby")
	if len(members) != 0 {
		t.Errorf("members = %v", members)
	}
}

func TestListSnapshot(t *testing.T) {
	rm := NewRoomManager(3)
	_ = rm.CreateRoom("a")
	_ = rm.CreateRoom("b")
	_ = rm.JoinRoom("x", "a")

	got := map[domain.RoomName]int{}
	for _, info := range rm.List() {
		if info.Capacity != 3 {
			t.Errorf("%s capacity = %d", info.Name, info.Capacity)
		}
		got[info.Name] = info.UserCount
	}
	if len(got) != 2 || got["a"] != 1 || got["b"] != 0 {
		t.Errorf("List = %v", got)
	}
	if rm.Count() != 2 {
		t.Errorf("Count = %d", rm.Count())
	}
}

func TestConcurrentJoinsRespectCapacity(t *testing.T) {
	const capacity = 5
	rm := NewRoomManager(capacity)
	_ = rm.CreateRoom("a")
	_ = rm.CreateRoom("b")

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			name := fmt.Sprintf("user-%d", i)
			room := domain.RoomName("a")
			if i%2 == 1 {
				room = "b"
			}
			_ = rm.JoinRoom(name, room)
			if i%3 == 0 {
				rm.RemoveUser(name)
			}
		}(i)
	}
	wg.Wait()

	total := 0
	seen := map[string]domain.RoomName{}
	for _, room := range []domain.RoomName{"a", "b"} {
		members, _ := rm.Members(room)
		if len(members) > capacity {
			t.Errorf("room %s has %d members, capacity %d", room, len(members), capacity)
		}
		for _, m := range members {
			if prev, dup := seen[m]; dup {
				t.Errorf("%s in both %s and %s", m, prev, room)
			}
			seen[m] = room
			if r, ok := rm.RoomOf(m); !ok || r != room {
				t.Errorf("RoomOf(%s) = %q,%v, want %s", m, r, ok, room)
			}
		}
		total += len(members)
	}

	rm.mu.RLock()
	indexed := len(rm.roomOf)
	rm.mu.RUnlock()
	if indexed != total {
		t.Errorf("roomOf entries = %d, members = %d", indexed, total)
	}
}
