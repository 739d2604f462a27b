package live

import (
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/gorilla/websocket"

	"example.com/scoreboard/internal/scoreboard"
)

const (
	defaultSendBuffer = 64

	typeSummary = "summary"
	typeError   = "error"
)

type ClientConn struct {
	ws   *websocket.Conn
	send chan []byte

	closeOnce sync.Once
}

func (c *ClientConn) Close() {
	c.closeOnce.Do(func() {
		close(c.send)
		if c.ws != nil {
			_ = c.ws.Close()
		}
	})
}

// Hub keeps the set of summary subscribers. Sends and closes of a client's
// channel only happen under h.mu.
type Hub struct {
	mu      sync.Mutex
	clients map[*ClientConn]struct{}
	closed  bool

	cfg     HubConfig
	metrics *Metrics
	log     *slog.Logger
}

func NewHub(cfg HubConfig, metrics *Metrics, log *slog.Logger) *Hub {
	if cfg.PingInterval <= 0 {
		cfg.PingInterval = defaultPingInterval
	}
	if cfg.SendBuffer <= 0 {
		cfg.SendBuffer = defaultSendBuffer
	}
	if log == nil {
		log = slog.Default()
	}
	return &Hub{
		clients: make(map[*ClientConn]struct{}),
		cfg:     cfg,
		metrics: metrics,
		log:     log,
	}
}

// Broadcast pushes summary to every subscriber. A subscriber whose buffer is
// full is disconnected rather than allowed to stall the board.
func (h *Hub) Broadcast(summary []scoreboard.Match) {
	msg := summaryMessage(summary)

	h.mu.Lock()
	defer h.mu.Unlock()

	for cc := range h.clients {
		select {
		case cc.send <- msg:
		default:
			h.log.Warn("dropping slow stream subscriber")
			h.dropLocked(cc)
		}
	}
}

func (h *Hub) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Close disconnects every subscriber and refuses new ones.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.closed = true
	for cc := range h.clients {
		h.dropLocked(cc)
	}
}

func (h *Hub) attach(cc *ClientConn, summary []scoreboard.Match) bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return false
	}
	h.clients[cc] = struct{}{}
	h.metrics.subscriberDelta(1)

	// fresh channel, cannot be full
	cc.send <- summaryMessage(summary)
	return true
}

func (h *Hub) detach(cc *ClientConn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[cc]; ok {
		h.dropLocked(cc)
	}
}

func (h *Hub) sendTo(cc *ClientConn, msg []byte) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[cc]; !ok {
		return
	}
	select {
	case cc.send <- msg:
	default:
	}
}

func (h *Hub) dropLocked(cc *ClientConn) {
	delete(h.clients, cc)
	cc.Close()
	h.metrics.subscriberDelta(-1)
}

func summaryMessage(summary []scoreboard.Match) []byte {
	b, _ := json.Marshal(Envelope{
		Type:    typeSummary,
		Payload: mustJSON(NewSummaryPayload(summary)),
	})
	return b
}
