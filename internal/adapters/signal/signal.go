package signal

import (
	"context"
	"errors"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"stickervote/internal/app"
	"stickervote/internal/core"
	"stickervote/internal/domain"
)

var ErrBackpressure = errors.New("backpressure")

// Controller terminates the persistent event channel: it upgrades HTTP to
// WebSocket, routes inbound commands to the coordinator and owns the
// transport resources of every connection.
type Controller struct {
	Coord *app.Coordinator

	readLimit  int64
	sendBuffer int
	limiter    *CommandLimiter
}

func NewController(coord *app.Coordinator, readLimit int64, sendBuffer int, limiter *CommandLimiter) *Controller {
	if sendBuffer <= 0 {
		sendBuffer = 32
	}
	return &Controller{
		Coord:      coord,
		readLimit:  readLimit,
		sendBuffer: sendBuffer,
		limiter:    limiter,
	}
}

// WsConn is the per-participant transport endpoint. Writes go through a
// buffered channel so no command handler ever blocks on the network.
type WsConn struct {
	conn *websocket.Conn
	send chan core.Frame

	mu     sync.RWMutex
	closed bool
}

func (c *WsConn) TrySend(f core.Frame) error {
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

func (c *WsConn) Close() {
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

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// HandleSocket upgrades the request and starts the connection's pumps. Each
// upgrade mints its own connection id: two tabs of one browser are two
// participants.
func (ctl *Controller) HandleSocket(ctx context.Context, c *gin.Context) {
	cid := domain.ConnID(uuid.NewString())
	log.Info().Str("module", "signal").Str("conn", string(cid)).Str("client", c.GetString("client_token")).Msg("new WS connection")

	ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Error().Err(err).Msg("ws upgrade")
		return
	}
	if ctl.readLimit > 0 {
		ws.SetReadLimit(ctl.readLimit)
	}

	conn := &WsConn{
		conn: ws,
		send: make(chan core.Frame, ctl.sendBuffer),
	}
	ctl.Coord.Connect(cid, conn)

	go ctl.writePump(ctx, conn)
	go ctl.readPump(ctx, cid, conn)
}
