package session

import (
	"encoding/json"
	"fmt"

	"github.com/michaelgov-ctrl/svg-clock/clock"
)

type Event struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type EventHandler func(event Event, c *Client) error

const (
	EventInitClock = "init_clock"
	EventDragStart = "drag_start"
	EventDragMove  = "drag_move"
	EventDragEnd   = "drag_end"
	EventSetTime   = "set_time"
	EventLayout    = "layout"

	EventClockReady     = "clock_ready"
	EventRenderHand     = "render_hand"
	EventHandVisibility = "hand_visibility"
	EventTimeChanged    = "time_changed"
	EventDragLog        = "drag_log"
	EventClockError     = "clock_error"
)

// InitClockEvent creates the connection's clock. Omitted time fields leave
// the clock at 0:00:00.
type InitClockEvent struct {
	Preset      string       `json:"preset"`
	ContainerID string       `json:"container_id"`
	Offset      clock.Offset `json:"offset"`
	Hour        *int         `json:"hour,omitempty"`
	Minute      *int         `json:"minute,omitempty"`
	Second      *int         `json:"second,omitempty"`
}

// DragEvent carries one pointer sample. Offset is sent when the page moved
// the container since the last sample.
type DragEvent struct {
	Hand clock.Hand `json:"hand"`
	clock.PointerEvent
	Offset *clock.Offset `json:"offset,omitempty"`
}

// UnmarshalJSON rejects samples without a hand, which would otherwise read
// as the hour hand.
func (d *DragEvent) UnmarshalJSON(b []byte) error {
	type plain DragEvent

	var raw struct {
		plain
		Hand *clock.Hand `json:"hand"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}

	if raw.Hand == nil {
		return fmt.Errorf("drag sample: %w", clock.ErrUnknownHand)
	}

	*d = DragEvent(raw.plain)
	d.Hand = *raw.Hand

	return nil
}

type SetTimeEvent struct {
	Hour   int  `json:"hour"`
	Minute *int `json:"minute,omitempty"`
	Second *int `json:"second,omitempty"`
}

type LayoutEvent struct {
	Offset clock.Offset `json:"offset"`
}

// ClockReadyEvent is sent before the initial time is applied, so Time is
// always 0:00:00 AM. A time_changed follows.
type ClockReadyEvent struct {
	ContainerID    string          `json:"container_id"`
	Preset         string          `json:"preset"`
	Config         clock.Config    `json:"config"`
	Time           clock.TimeState `json:"time"`
	SecondsVisible bool            `json:"seconds_visible"`
}

type RenderHandEvent struct {
	Hand       clock.Hand `json:"hand"`
	Angle      float64    `json:"angle"`
	Animate    bool       `json:"animate"`
	DurationMS int64      `json:"duration_ms"`
	Easing     string     `json:"easing"`
}

type HandVisibilityEvent struct {
	Hand    clock.Hand `json:"hand"`
	Visible bool       `json:"visible"`
}

type TimeChangedEvent struct {
	Time clock.TimeState `json:"time"`
	Text string          `json:"text"`
}

// DragLogEvent mirrors a drag callback. ElementX and ElementY are the
// pointer relative to the clock container.
type DragLogEvent struct {
	Hand     clock.Hand `json:"hand"`
	Phase    string     `json:"phase"`
	DX       float64    `json:"dx"`
	DY       float64    `json:"dy"`
	X        float64    `json:"x"`
	Y        float64    `json:"y"`
	ElementX float64    `json:"element_x"`
	ElementY float64    `json:"element_y"`
	Hour     int        `json:"hour"`
	Minute   int        `json:"minute"`
}

type ErrorEvent struct {
	Error string `json:"error"`
}

func NewOutgoingEvent(t string, evt any) (Event, error) {
	data, err := json.Marshal(evt)
	if err != nil {
		return Event{}, fmt.Errorf("failed to marshal event: %v: %v", evt, err)
	}

	out := Event{
		Payload: data,
		Type:    t,
	}

	return out, nil
}
