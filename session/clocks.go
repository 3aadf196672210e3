package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"sync"

	"github.com/google/uuid"
	"github.com/michaelgov-ctrl/svg-clock/clock"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	ErrNoClock          = errors.New("no clock on this connection")
	ErrUnknownPreset    = errors.New("unknown clock preset")
	ErrUnknownEventType = errors.New("there is no such event type")
)

type ClockManager struct {
	clients   ClientList
	clientsMu sync.RWMutex

	handlers map[string]EventHandler

	ManagerOptions
	metrics *ClockManagerMetrics
}

func NewClockManager(opts ...ManagerOption) *ClockManager {
	m := &ClockManager{
		clients:  make(ClientList),
		handlers: make(map[string]EventHandler),
		metrics:  &ClockManagerMetrics{},
	}

	defaults := &ManagerOptions{
		logger:   slog.New(slog.NewTextHandler(os.Stdout, nil)),
		registry: prometheus.NewRegistry(),
		presets:  defaultPresets{},
	}

	for _, opt := range opts {
		opt(defaults)
	}

	m.ManagerOptions = *defaults

	m.registerClockManagerMetrics()
	m.registerEventHandlers()

	return m
}

func (m *ClockManager) registerEventHandlers() {
	m.handlers[EventInitClock] = m.initClockHandler
	m.handlers[EventDragStart] = m.dragHandler(clock.PhaseStart)
	m.handlers[EventDragMove] = m.dragHandler(clock.PhaseMove)
	m.handlers[EventDragEnd] = m.dragHandler(clock.PhaseEnd)
	m.handlers[EventSetTime] = m.setTimeHandler
	m.handlers[EventLayout] = m.layoutHandler
}

// Clients returns the number of connected clients.
func (m *ClockManager) Clients() int {
	m.clientsMu.RLock()
	defer m.clientsMu.RUnlock()

	return len(m.clients)
}

func (m *ClockManager) addClient(c *Client) {
	m.metrics.totalClients.Inc()
	m.metrics.currentClients.Inc()
	m.logger.Debug("new client", "remote", c.connection.RemoteAddr().String())

	m.clientsMu.Lock()
	defer m.clientsMu.Unlock()

	m.clients[c] = true
}

func (m *ClockManager) removeClient(c *Client) {
	m.clientsMu.Lock()
	defer m.clientsMu.Unlock()

	if _, ok := m.clients[c]; ok {
		m.logger.Debug("removed client", "remote", c.connection.RemoteAddr().String())

		c.connection.Close()
		c.close()
		delete(m.clients, c)
		m.metrics.currentClients.Dec()
	}
}

func (m *ClockManager) ServeWS(w http.ResponseWriter, r *http.Request) {
	m.logger.Info("new connection", "origin", r.RemoteAddr)

	upgrader := websocketUpgrader
	upgrader.CheckOrigin = m.checkOrigin

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		m.logger.Error(err.Error())
		return
	}

	client := NewClient(conn, m, m.logger)

	m.addClient(client)

	go client.readEvents()
	go client.writeEvents()
}

func (m *ClockManager) routeEvent(event Event, c *Client) error {
	handler, ok := m.handlers[event.Type]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownEventType, event.Type)
	}

	return handler(event, c)
}

func (m *ClockManager) initClockHandler(event Event, c *Client) error {
	var req InitClockEvent
	if err := json.Unmarshal(event.Payload, &req); err != nil {
		return fmt.Errorf("bad payload in request: %v", err)
	}

	cfg, ok := m.presets.Preset(req.Preset)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownPreset, req.Preset)
	}

	id := req.ContainerID
	if id == "" {
		id = "clock-" + uuid.NewString()
	}

	if c.clock != nil {
		m.logger.Debug("replacing clock", "old", c.clock.ContainerID(), "new", id)
	}

	c.renderer = newWSRenderer(cfg, c)
	c.renderer.SetOffset(req.Offset)

	c.clock = clock.New(id, c.renderer,
		clock.WithConfig(cfg),
		clock.WithLogger(m.logger.With("container", id)),
		clock.WithCallbacks(dragLogCallbacks(c)),
	)

	c.send(EventClockReady, ClockReadyEvent{
		ContainerID:    id,
		Preset:         req.Preset,
		Config:         c.clock.Config(),
		Time:           c.clock.Time(),
		SecondsVisible: c.clock.SecondsVisible(),
	})

	if req.Hour != nil {
		c.clock.SetTime(*req.Hour, timeArgs(c.clock, req.Minute, req.Second)...)
	}

	c.sendTime()

	return nil
}

func (m *ClockManager) dragHandler(phase clock.Phase) EventHandler {
	return func(event Event, c *Client) error {
		var drag DragEvent
		if err := json.Unmarshal(event.Payload, &drag); err != nil {
			return fmt.Errorf("bad payload in request: %w", err)
		}

		if c.clock == nil {
			return ErrNoClock
		}

		if drag.Offset != nil {
			c.renderer.SetOffset(*drag.Offset)
		}

		m.metrics.dragSamples.WithLabelValues(drag.Hand.String(), phase.String()).Inc()

		before := c.clock.Time()
		c.clock.Drag(drag.Hand, phase, drag.PointerEvent)
		after := c.clock.Time()

		if before.IsAM != after.IsAM {
			m.metrics.meridiemFlips.Inc()
		}

		if before != after {
			c.sendTime()
		}

		return nil
	}
}

func (m *ClockManager) setTimeHandler(event Event, c *Client) error {
	var set SetTimeEvent
	if err := json.Unmarshal(event.Payload, &set); err != nil {
		return fmt.Errorf("bad payload in request: %v", err)
	}

	if c.clock == nil {
		return ErrNoClock
	}

	c.clock.SetTime(set.Hour, timeArgs(c.clock, set.Minute, set.Second)...)
	m.metrics.setTimes.Inc()
	c.sendTime()

	return nil
}

func (m *ClockManager) layoutHandler(event Event, c *Client) error {
	var layout LayoutEvent
	if err := json.Unmarshal(event.Payload, &layout); err != nil {
		return fmt.Errorf("bad payload in request: %v", err)
	}

	if c.clock == nil {
		return ErrNoClock
	}

	c.renderer.SetOffset(layout.Offset)
	return nil
}

// timeArgs turns optional minute and second fields into SetTime's variadic
// tail. A second without a minute keeps the current minute.
func timeArgs(c *clock.Clock, minute, second *int) []int {
	switch {
	case minute == nil && second == nil:
		return nil
	case second == nil:
		return []int{*minute}
	case minute == nil:
		return []int{c.Minute(), *second}
	default:
		return []int{*minute, *second}
	}
}

func dragLogCallbacks(c *Client) clock.Callbacks {
	log := func(hand clock.Hand, phase clock.Phase) clock.DragFunc {
		return func(cl *clock.Clock, ev clock.PointerEvent) {
			offset := c.renderer.PointerOffset(cl.ContainerID())
			t := cl.Time()

			c.send(EventDragLog, DragLogEvent{
				Hand:     hand,
				Phase:    phase.String(),
				DX:       ev.DX,
				DY:       ev.DY,
				X:        ev.X,
				Y:        ev.Y,
				ElementX: ev.X - offset.Left,
				ElementY: ev.Y - offset.Top,
				Hour:     t.Hour,
				Minute:   t.Minute,
			})
		}
	}

	return clock.Callbacks{
		OnHourDragStart:   log(clock.HourHand, clock.PhaseStart),
		OnHourDragMove:    log(clock.HourHand, clock.PhaseMove),
		OnHourDragEnd:     log(clock.HourHand, clock.PhaseEnd),
		OnMinuteDragStart: log(clock.MinuteHand, clock.PhaseStart),
		OnMinuteDragMove:  log(clock.MinuteHand, clock.PhaseMove),
		OnMinuteDragEnd:   log(clock.MinuteHand, clock.PhaseEnd),
	}
}
