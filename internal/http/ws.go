package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/olahol/melody"

	"github.com/hizkiajonathanbudiana/Tracker-Money/internal/events"
)

const sessionOwnerKey = "owner_id"

// wsBridge pushes change events from the in-process hub to websocket
// sessions. Each session holds its own hub subscription so one slow client
// never stalls another.
type wsBridge struct {
	m   *melody.Melody
	hub *events.Hub
}

func newWSBridge(hub *events.Hub) *wsBridge {
	m := melody.New()
	m.Config.MaxMessageSize = 4 << 10
	// Keep-alive settings matter behind cloud proxies that reap idle conns.
	m.Config.PingPeriod = 30 * time.Second
	m.Config.PongWait = 60 * time.Second

	b := &wsBridge{m: m, hub: hub}

	m.HandleConnect(func(sess *melody.Session) {
		owner, ok := sess.Get(sessionOwnerKey)
		if !ok {
			_ = sess.Close()
			return
		}
		ch, cancel := hub.Subscribe(owner.(string))
		sess.Set("unsubscribe", cancel)
		wsConnections.Inc()
		go b.pump(sess, ch)
	})

	m.HandleDisconnect(func(sess *melody.Session) {
		if cancel, ok := sess.Get("unsubscribe"); ok {
			cancel.(func())()
		}
		wsConnections.Dec()
	})

	m.HandleError(func(sess *melody.Session, err error) {
		slog.Debug("Websocket error", "error", err)
	})

	return b
}

// pump forwards hub events to one session until its subscription closes.
func (b *wsBridge) pump(sess *melody.Session, ch <-chan events.Event) {
	for ev := range ch {
		payload, err := json.Marshal(ev)
		if err != nil {
			continue
		}
		if err := sess.Write(payload); err != nil {
			return
		}
	}
}

func (b *wsBridge) Close() {
	_ = b.m.Close()
}

// handleWS upgrades an authenticated request to a websocket session scoped to
// the caller's own change feed.
func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	owner := ownerID(r)
	if err := s.ws.m.HandleRequestWithKeys(w, r, map[string]any{sessionOwnerKey: owner}); err != nil {
		slog.ErrorContext(r.Context(), "Websocket upgrade failed", "error", err, "owner_id", owner)
	}
}
