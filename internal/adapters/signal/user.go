package signal

import (
	"github.com/dkeye/Relay/internal/app/orch"
	"github.com/dkeye/Relay/internal/core"
	"github.com/rs/zerolog/log"
)

func (ctl *SignalWSController) handleRegister(ctrl *orch.Controller, p core.Request) {
	log.Info().Str("module", "signal").Str("sid", string(ctrl.SessionID())).Str("name", p.Name).Msg("register")
	ctrl.Register(p.Name)
}

func (ctl *SignalWSController) handleChat(ctrl *orch.Controller, p core.Request) {
	ctrl.SendChat(p.Token, p.Name, p.Data, p.Timestamp)
}
