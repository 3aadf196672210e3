package session

import (
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/michaelgov-ctrl/svg-clock/clock"
)

var (
	pongWait     = 10 * time.Second
	pingInterval = (pongWait * 9) / 10 // 90% of pongWait
)

const (
	readLimit    = 1024
	egressBuffer = 64
)

type Client struct {
	connection *websocket.Conn
	manager    Manager
	logger     *slog.Logger

	// only touched from readEvents
	clock    *clock.Clock
	renderer *wsRenderer

	// egress is used to avoid concurrent writes on the websocket connection for events
	egress    chan Event
	done      chan struct{}
	closeOnce sync.Once
}

type ClientList map[*Client]bool

func NewClient(conn *websocket.Conn, manager Manager, logger *slog.Logger) *Client {
	return &Client{
		connection: conn,
		manager:    manager,
		logger:     logger,
		egress:     make(chan Event, egressBuffer),
		done:       make(chan struct{}),
	}
}

// Clock returns the connection's clock, nil before init_clock.
func (c *Client) Clock() *clock.Clock {
	return c.clock
}

// send queues an event for the write pump. It gives up once the client is
// closed.
func (c *Client) send(t string, evt any) {
	out, err := NewOutgoingEvent(t, evt)
	if err != nil {
		c.logger.Error("error creating event", "type", t, "error", err)
		return
	}

	select {
	case c.egress <- out:
	case <-c.done:
	}
}

func (c *Client) sendError(err error) {
	c.send(EventClockError, ErrorEvent{Error: err.Error()})
}

func (c *Client) sendTime() {
	if c.clock == nil {
		return
	}

	c.send(EventTimeChanged, TimeChangedEvent{
		Time: c.clock.Time(),
		Text: c.clock.TimeString(c.clock.SecondsVisible()),
	})
}

func (c *Client) close() {
	c.closeOnce.Do(func() {
		close(c.done)
	})
}

func (c *Client) readEvents() {
	defer func() {
		c.manager.removeClient(c)
	}()

	if err := c.connection.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		c.logger.Error(err.Error())
		return
	}

	c.connection.SetReadLimit(readLimit)
	c.connection.SetPongHandler(c.pongHandler)

	for {
		_, payload, err := c.connection.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.logger.Error("error reading message", "error", err)
			}
			break
		}

		var req Event
		c.logger.Debug("received payload", "payload", string(payload))
		if err := json.Unmarshal(payload, &req); err != nil {
			c.logger.Error("error unmarshalling event", "error", err)
			break
		}

		if err := c.manager.routeEvent(req, c); err != nil {
			c.logger.Warn("error handling message", "type", req.Type, "error", err)
			c.sendError(err)
		}
	}
}

func (c *Client) writeEvents() {
	defer func() {
		c.manager.removeClient(c)
	}()

	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()

	for {
		// bottle necking to prevent abuse of concurrency from client
		select {
		case message := <-c.egress:
			data, err := json.Marshal(message)
			if err != nil {
				c.logger.Error("error marshalling message", "error", err)
				return
			}

			if err := c.connection.WriteMessage(websocket.TextMessage, data); err != nil {
				c.logger.Error("failed to send message", "error", err)
				return
			}
		case <-ticker.C:
			if err := c.connection.WriteMessage(websocket.PingMessage, []byte(``)); err != nil {
				c.logger.Error("ping error", "error", err)
				return
			}
		case <-c.done:
			if err := c.connection.WriteMessage(websocket.CloseMessage, nil); err != nil {
				c.logger.Debug("connection closed", "error", err)
			}
			return
		}
	}
}

func (c *Client) pongHandler(pongMsg string) error {
	return c.connection.SetReadDeadline(time.Now().Add(pongWait))
}
