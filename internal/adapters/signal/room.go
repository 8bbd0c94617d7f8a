package signal

import (
	"github.com/dkeye/Relay/internal/app/orch"
	"github.com/dkeye/Relay/internal/core"
	"github.com/rs/zerolog/log"
)

func (ctl *SignalWSController) handleRoomList(ctrl *orch.Controller) {
	ctrl.FetchRoomList()
}

func (ctl *SignalWSController) handleCreateRoom(ctrl *orch.Controller, p core.Request) {
	log.Info().Str("module", "signal").Str("sid", string(ctrl.SessionID())).Str("room", p.RoomName).Msg("create room")
	ctrl.CreateRoom(p.Token, p.Name, p.RoomName)
}

func (ctl *SignalWSController) handleJoin(ctrl *orch.Controller, p core.Request) {
	log.Info().Str("module", "signal").Str("sid", string(ctrl.SessionID())).Str("room", p.RoomName).Msg("join")
	ctrl.JoinRoom(p.Token, p.Name, p.RoomName)
}

// handleLeave leaves the current room; the connection itself stays open.
func (ctl *SignalWSController) handleLeave(ctrl *orch.Controller, p core.Request) {
	log.Info().Str("module", "signal").Str("sid", string(ctrl.SessionID())).Msg("leave")
	ctrl.LeaveRoom(p.Token, p.Name)
}
