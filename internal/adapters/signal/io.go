package signal

import (
	"context"
	"encoding/json"
	"time"

	"github.com/dkeye/Relay/internal/app/orch"
	"github.com/dkeye/Relay/internal/core"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

const writeWait = 5 * time.Second

func (ctl *SignalWSController) pongWait() time.Duration {
	return ctl.settings.PingPeriod * 10 / 9
}

func (ctl *SignalWSController) writePump(ctx context.Context, c *WsSignalConn) {
	ticker := time.NewTicker(ctl.settings.PingPeriod)
	defer func() {
		ticker.Stop()
		// unblocks the read pump if we stopped on a write error
		_ = c.conn.Close()
	}()
	for {
		select {
		case <-ctx.Done():
			log.Debug().Str("module", "signal").Msg("writePump ctx done")
			return
		case <-ticker.C:
			if err := c.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				log.Warn().Err(err).Str("module", "signal").Msg("writePump ping")
				return
			}
		case data, ok := <-c.send:
			if !ok {
				log.Debug().Str("module", "signal").Msg("writePump channel closed")
				return
			}
			if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				log.Error().Err(err).Str("module", "signal").Msg("writePump set deadline")
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				log.Error().Err(err).Str("module", "signal").Msg("writePump write error")
				return
			}
		}
	}
}

func (ctl *SignalWSController) readPump(ctx context.Context, ctrl *orch.Controller, c *WsSignalConn, stop func()) {
	sid := ctrl.SessionID()
	defer func() {
		log.Info().Str("module", "signal").Str("sid", string(sid)).Msg("readPump closing")
		ctrl.Disconnect()
		ctl.Limiter.Forget(sid)
		stop()
	}()

	_ = c.conn.SetReadDeadline(time.Now().Add(ctl.pongWait()))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(ctl.pongWait()))
	})

	for {
		select {
		case <-ctx.Done():
			log.Info().Str("module", "signal").Str("sid", string(sid)).Msg("readPump ctx done")
			return
		default:
			_, data, err := c.conn.ReadMessage()
			if err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
					log.Warn().Err(err).Str("module", "signal").Str("sid", string(sid)).Msg("readPump read error")
				}
				return
			}
			ctl.handleSignal(ctrl, c, data)
		}
	}
}

func (ctl *SignalWSController) handleSignal(ctrl *orch.Controller, c *WsSignalConn, data []byte) {
	// every frame costs a token, decodable or not
	if !ctl.Limiter.Allow(ctrl.SessionID()) {
		log.Warn().Str("module", "signal").Str("sid", string(ctrl.SessionID())).Msg("rate limited")
		ctrl.FailCode("", core.CodeRateLimited)
		return
	}
	var req core.Request
	if err := json.Unmarshal(data, &req); err != nil {
		log.Warn().Err(err).Str("module", "signal").Str("sid", string(ctrl.SessionID())).Msg("bad json")
		ctrl.FailCode("", core.CodeBadPayload)
		return
	}

	switch req.Type {
	case core.ReqFetchRoomList:
		ctl.handleRoomList(ctrl)
	case core.ReqRegisterName:
		ctl.handleRegister(ctrl, req)
	case core.ReqCreateRoom:
		ctl.handleCreateRoom(ctrl, req)
	case core.ReqJoinRoom:
		ctl.handleJoin(ctrl, req)
	case core.ReqSendChatMsg:
		ctl.handleChat(ctrl, req)
	case core.ReqLeaveRoom:
		ctl.handleLeave(ctrl, req)
	case core.ReqPing:
		ctl.handlePing(c)
	default:
		log.Warn().Str("module", "signal").Str("type", req.Type).Msg("unknown signal")
		ctrl.FailCode(req.Type, core.CodeUnknownRequest)
	}
}

func (ctl *SignalWSController) sendJSON(c core.SignalConnection, v any) {
	b, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Str("module", "signal").Msg("sendJSON marshal")
		return
	}
	_ = c.TrySend(b)
}
