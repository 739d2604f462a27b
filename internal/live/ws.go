package live

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
)

const (
	defaultPingInterval = 25 * time.Second
	writeWait           = 10 * time.Second
	maxInboundMessage   = 1024
)

type HubConfig struct {
	PingInterval time.Duration // 0 => 25s
	SendBuffer   int           // 0 => 64
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// ServeWS streams the summary to a WebSocket client: the current summary on
// connect, then a fresh one after every change. The stream is read-only;
// anything the client sends is answered with an error envelope.
func (b *Board) ServeWS(w http.ResponseWriter, r *http.Request) {
	if b.hub == nil {
		http.Error(w, "live stream disabled", http.StatusNotFound)
		return
	}

	ws, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}

	cc := &ClientConn{
		ws:   ws,
		send: make(chan []byte, b.hub.cfg.SendBuffer),
	}
	if !b.attachSubscriber(cc) {
		_ = ws.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, "shutting down"),
			time.Now().Add(writeWait))
		_ = ws.Close()
		return
	}

	go b.hub.writeLoop(cc)

	readOnly, _ := json.Marshal(Envelope{
		Type:    typeError,
		Payload: mustJSON(ErrorPayload{Code: "read_only", Message: "summary stream does not accept messages"}),
	})

	ws.SetReadLimit(maxInboundMessage)
	for {
		if _, _, err := ws.ReadMessage(); err != nil {
			break
		}
		b.hub.sendTo(cc, readOnly)
	}

	b.hub.detach(cc)
}

func (h *Hub) writeLoop(cc *ClientConn) {
	ticker := time.NewTicker(h.cfg.PingInterval)
	defer ticker.Stop()

	for {
		select {
		case msg, ok := <-cc.send:
			if !ok {
				return
			}
			_ = cc.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if err := cc.ws.WriteMessage(websocket.TextMessage, msg); err != nil {
				h.detach(cc)
				return
			}
		case <-ticker.C:
			if err := cc.ws.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				h.detach(cc)
				return
			}
		}
	}
}
