package orch

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dkeye/Relay/internal/core"
	"github.com/dkeye/Relay/internal/domain"
	"github.com/rs/zerolog/log"
)

type State int

const (
	StateAnonymous State = iota
	StateNamed
	StateInRoom
	StateDisconnected
)

func (s State) String() string {
	switch s {
	case StateAnonymous:
		return "anonymous"
	case StateNamed:
		return "named"
	case StateInRoom:
		return "in_room"
	case StateDisconnected:
		return "disconnected"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// Controller runs the protocol for one connection. Its methods must be
// called from a single goroutine (the connection's read pump).
type Controller struct {
	o    *Orchestrator
	sid  core.SessionID
	conn core.SignalConnection

	state State
	token domain.Token
	name  string
	room  domain.RoomName
}

func (c *Controller) SessionID() core.SessionID { return c.sid }
func (c *Controller) State() State              { return c.state }
func (c *Controller) Name() string              { return c.name }

// verify accepts only the identity issued on this very connection.
func (c *Controller) verify(token, name string) (*domain.Session, error) {
	if c.state == StateAnonymous || c.state == StateDisconnected || domain.Token(token) != c.token {
		return nil, domain.ErrVerifyFailed
	}
	return c.o.Identities.Verify(domain.Token(token), name)
}

func (c *Controller) FetchRoomList() {
	c.send(core.RoomListResult{Type: core.EvRoomListResult, Rooms: c.o.Rooms.List()})
}

func (c *Controller) Register(name string) {
	if c.state != StateAnonymous {
		c.replyRegister(core.RegisterResult{Msg: "Already registered."}, domain.ErrAlreadyRegistered)
		return
	}
	token, err := c.o.Identities.Register(name)
	if err != nil {
		log.Info().Err(err).Str("module", "orch").Str("sid", string(c.sid)).Str("name", name).Msg("register rejected")
		c.replyRegister(core.RegisterResult{Msg: registerFailMsg(err)}, err)
		return
	}
	c.token = token
	c.name = name
	c.state = StateNamed
	c.replyRegister(core.RegisterResult{
		Success: true,
		Name:    name,
		Token:   string(token),
		Msg:     "Welcome " + name + "!",
	}, nil)
	c.FetchRoomList()
}

func registerFailMsg(err error) string {
	switch {
	case errors.Is(err, domain.ErrNameTaken):
		return "Sorry, name taken."
	case errors.Is(err, domain.ErrUsernameEmpty):
		return "Please pick a name."
	case errors.Is(err, domain.ErrUsernameTooLong):
		return fmt.Sprintf("Names are at most %d characters.", domain.MaxUsernameLen)
	}
	return "Registration failed."
}

func (c *Controller) SendChat(token, name, data string, timestamp int64) {
	sess, err := c.verify(token, name)
	if err != nil {
		log.Warn().Str("module", "orch").Str("sid", string(c.sid)).Msg("send msg: failed verify")
		c.fail(core.ReqSendChatMsg, err)
		return
	}
	if data == "" {
		c.FailCode(core.ReqSendChatMsg, core.CodeBadPayload)
		return
	}
	room, ok := c.o.Rooms.RoomOf(sess.Name)
	if !ok {
		c.fail(core.ReqSendChatMsg, domain.ErrRoomNotFound)
		return
	}
	c.o.Metrics.ObserveRequest(core.ReqSendChatMsg, "")
	c.o.deliver(room, core.ChatMessage{Data: data, Name: sess.Name, Timestamp: timestamp})
}

// Disconnect is terminal and idempotent. No goodbye is broadcast.
func (c *Controller) Disconnect() {
	if c.state == StateDisconnected {
		return
	}
	if c.room != "" {
		c.o.Router.Unsubscribe(c.room, c.sid)
	}
	if c.token != "" {
		if name, ok := c.o.Identities.LookupName(c.token); ok {
			c.o.Rooms.RemoveUser(name)
		}
		c.o.Identities.Remove(c.token)
	}
	c.o.Registry.Unbind(c.sid)
	c.o.Metrics.ConnClosed()
	log.Info().Str("module", "orch").Str("sid", string(c.sid)).Str("name", c.name).Str("state", c.state.String()).Msg("disconnected")
	c.state = StateDisconnected
	c.room = ""
}

func (c *Controller) replyRegister(res core.RegisterResult, err error) {
	res.Type = core.EvRegisterResult
	res.Error = core.ErrorCode(err)
	c.o.Metrics.ObserveRequest(core.ReqRegisterName, res.Error)
	c.send(res)
}

func (c *Controller) fail(request string, err error) {
	c.FailCode(request, core.ErrorCode(err))
}

// FailCode reports a rejected request to this connection only.
func (c *Controller) FailCode(request, code string) {
	c.o.Metrics.ObserveRequest(request, code)
	c.send(core.ErrorEvent{Type: core.EvError, Request: request, Error: code})
}

func (c *Controller) send(v any) {
	b, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Str("module", "orch").Msg("send marshal")
		return
	}
	if err := c.conn.TrySend(b); err != nil {
		log.Warn().Err(err).Str("module", "orch").Str("sid", string(c.sid)).Msg("reply dropped")
	}
}
