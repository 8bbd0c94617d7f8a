package domain

const MaxRoomNameLen = 36

type RoomName string

// Room keeps its members in join order.
type Room struct {
	Name     RoomName
	Capacity int
	Members  []string
}

func NewRoom(name RoomName, capacity int) (*Room, error) {
	if err := ValidateRoomName(name); err != nil {
		return nil, err
	}
	return &Room{Name: name, Capacity: capacity}, nil
}

func ValidateRoomName(name RoomName) error {
	if len(name) == 0 {
		return ErrRoomNameEmpty
	}
	if len(name) > MaxRoomNameLen {
		return ErrRoomNameTooLong
	}
	return nil
}

func (r *Room) MemberCount() int { return len(r.Members) }

func (r *Room) HasCapacity() bool { return len(r.Members) < r.Capacity }

func (r *Room) AddMember(name string) {
	r.Members = append(r.Members, name)
}

// RemoveMember drops the first occurrence of name and reports whether it was present.
func (r *Room) RemoveMember(name string) bool {
	for i, m := range r.Members {
		if m == name {
			r.Members = append(r.Members[:i], r.Members[i+1:]...)
			return true
		}
	}
	return false
}
