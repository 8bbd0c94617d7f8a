package orch

import (
	"github.com/dkeye/Relay/internal/core"
	"github.com/dkeye/Relay/internal/domain"
	"github.com/rs/zerolog/log"
)

// CreateRoom creates roomName and, on success, joins the caller to it.
func (c *Controller) CreateRoom(token, name, roomName string) {
	sess, err := c.verify(token, name)
	if err == nil {
		err = c.o.Rooms.CreateRoom(domain.RoomName(roomName))
	}
	if err != nil {
		log.Info().Err(err).Str("module", "orch").Str("sid", string(c.sid)).Str("room", roomName).Msg("create room rejected")
		c.replyRoom(core.EvCreateRoomResult, core.ReqCreateRoom, "", err)
		return
	}
	c.replyRoom(core.EvCreateRoomResult, core.ReqCreateRoom, domain.RoomName(roomName), nil)
	c.join(sess, domain.RoomName(roomName))
}

func (c *Controller) JoinRoom(token, name, roomName string) {
	sess, err := c.verify(token, name)
	if err != nil {
		c.replyRoom(core.EvJoinRoomResult, core.ReqJoinRoom, "", err)
		return
	}
	c.join(sess, domain.RoomName(roomName))
}

func (c *Controller) join(sess *domain.Session, roomName domain.RoomName) {
	if err := c.o.Rooms.JoinRoom(sess.Name, roomName); err != nil {
		log.Info().Err(err).Str("module", "orch").Str("sid", string(c.sid)).Str("room", string(roomName)).Msg("join rejected")
		c.replyRoom(core.EvJoinRoomResult, core.ReqJoinRoom, "", err)
		return
	}
	c.o.Router.Subscribe(roomName, c.sid, c.conn)
	c.room = roomName
	c.state = StateInRoom
	c.replyRoom(core.EvJoinRoomResult, core.ReqJoinRoom, roomName, nil)
	c.o.systemMessage(roomName, "user joined: "+sess.Name)
}

// LeaveRoom returns the caller to the named state and tells the room it left.
func (c *Controller) LeaveRoom(token, name string) {
	sess, err := c.verify(token, name)
	if err != nil {
		log.Warn().Str("module", "orch").Str("sid", string(c.sid)).Msg("leave room: failed verify")
		c.fail(core.ReqLeaveRoom, err)
		return
	}
	roomName, ok := c.o.Rooms.RoomOf(sess.Name)
	if !ok {
		c.fail(core.ReqLeaveRoom, domain.ErrNotInRoom)
		return
	}
	c.o.Router.Unsubscribe(roomName, c.sid)
	c.send(struct {
		Type string `json:"type"`
	}{Type: core.EvConfirmLeft})
	c.o.systemMessage(roomName, "user left: "+sess.Name)
	c.o.Rooms.RemoveUser(sess.Name)
	c.o.Metrics.ObserveRequest(core.ReqLeaveRoom, "")
	c.room = ""
	c.state = StateNamed
	log.Info().Str("module", "orch").Str("sid", string(c.sid)).Str("name", sess.Name).Str("room", string(roomName)).Msg("left room")
}

func (c *Controller) replyRoom(evType, request string, roomName domain.RoomName, err error) {
	res := core.RoomResult{
		Type:     evType,
		Success:  err == nil,
		RoomName: roomName,
		Error:    core.ErrorCode(err),
	}
	c.o.Metrics.ObserveRequest(request, res.Error)
	c.send(res)
}
