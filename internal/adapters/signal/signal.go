package signal

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/shivsh94/Video-backend/internal/app"
	"github.com/shivsh94/Video-backend/internal/config"
	"github.com/shivsh94/Video-backend/internal/core"
	"github.com/shivsh94/Video-backend/internal/domain"
)

var ErrBackpressure = errors.New("backpressure")

// SignalWSController owns the WebSocket side of the signaling protocol:
// it accepts connections, runs the session lifecycle against the
// presence registry, and relays negotiation frames between peers.
type SignalWSController struct {
	Registry *app.Registry
	Peers    *PeerTable

	cfg      *config.Config
	validate *validator.Validate
	upgrader websocket.Upgrader
}

func NewSignalWSController(cfg *config.Config, reg *app.Registry) *SignalWSController {
	return &SignalWSController{
		Registry: reg,
		Peers:    NewPeerTable(),
		cfg:      cfg,
		validate: validator.New(),
		upgrader: websocket.Upgrader{
			CheckOrigin: originChecker(cfg.ClientURL),
		},
	}
}

func originChecker(allowed string) func(r *http.Request) bool {
	if allowed == "" {
		return func(r *http.Request) bool { return true }
	}
	return func(r *http.Request) bool {
		origin := strings.TrimSuffix(r.Header.Get("Origin"), "/")
		return origin == "" || origin == allowed
	}
}

type WsSignalConn struct {
	conn *websocket.Conn
	send chan core.Frame

	mu     sync.RWMutex
	closed bool
}

func (c *WsSignalConn) TrySend(f core.Frame) error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.closed {
		return errors.New("connection closed")
	}
	select {
	case c.send <- f:
	default:
		return ErrBackpressure
	}
	return nil
}

func (c *WsSignalConn) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	close(c.send)
	_ = c.conn.Close()
	c.mu.Unlock()
}

// HandleSignal upgrades the request and starts the connection's pumps.
// Each connection gets a fresh id, unique for its lifetime; that id is
// the only address other peers can reach it by.
func (ctl *SignalWSController) HandleSignal(ctx context.Context, c *gin.Context) {
	sid := domain.ConnID(uuid.NewString())

	ws, err := ctl.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Error().Err(err).Str("module", "signal").Msg("ws upgrade")
		return
	}
	log.Info().Str("module", "signal").Str("conn", string(sid)).Msg("user connected")

	conn := &WsSignalConn{
		conn: ws,
		send: make(chan core.Frame, ctl.cfg.SendBuffer),
	}
	ctl.Peers.Register(sid, conn)

	ctx, cancel := context.WithCancel(ctx)
	go ctl.writePump(ctx, conn)
	go ctl.readPump(ctx, cancel, sid, conn)
}
