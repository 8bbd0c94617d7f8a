package orch

import (
	"context"
	"time"

	"github.com/dkeye/Relay/internal/app"
	"github.com/dkeye/Relay/internal/core"
	"github.com/dkeye/Relay/internal/domain"
	"github.com/dkeye/Relay/internal/metrics"
	"github.com/rs/zerolog/log"
)

// Orchestrator holds the process-wide state every Controller shares.
type Orchestrator struct {
	Identities *app.Identities
	Rooms      core.RoomManager
	Router     *app.Router
	Registry   *app.Registry
	Policy     app.Policy
	Metrics    *metrics.Metrics
}

func New(rooms core.RoomManager, policy app.Policy, m *metrics.Metrics) *Orchestrator {
	return &Orchestrator{
		Identities: app.NewIdentities(),
		Rooms:      rooms,
		Router:     app.NewRouter(),
		Registry:   app.NewRegistry(),
		Policy:     policy,
		Metrics:    m,
	}
}

// Connect registers a new transport connection and returns its controller.
// cancel must stop the connection's pumps.
func (o *Orchestrator) Connect(sid core.SessionID, conn core.SignalConnection, cancel context.CancelFunc) *Controller {
	o.Registry.Bind(sid, conn, cancel)
	o.Metrics.ConnOpened()
	return &Controller{o: o, sid: sid, conn: conn}
}

// deliver broadcasts msg to the room and applies the backpressure policy
// to every recipient that could not take it.
func (o *Orchestrator) deliver(room domain.RoomName, msg core.ChatMessage) {
	res := o.Router.Broadcast(room, msg)
	o.Metrics.ObserveDelivery(res.SentTo, len(res.Dropped))
	if o.Policy == nil {
		return
	}
	for _, sid := range res.Dropped {
		switch o.Policy.OnBackPressure(room, sid) {
		case app.KickMember:
			if o.Registry.Cancel(sid) {
				o.Metrics.ObserveKick()
				log.Warn().Str("module", "orch").Str("sid", string(sid)).Str("room", string(room)).Msg("kicked slow member")
			}
		case app.DropFrame, app.NoAction:
		}
	}
}

func (o *Orchestrator) systemMessage(room domain.RoomName, text string) {
	o.deliver(room, core.ChatMessage{
		Data:      text,
		Name:      domain.ServerName,
		Timestamp: time.Now().UnixMilli(),
	})
}

// Shutdown cancels every live connection.
func (o *Orchestrator) Shutdown() {
	o.Registry.CancelAll()
}
