package clock

// PointerEvent is one pointer sample as the page reported it: DX and DY are
// the distance from where the drag started, X and Y the position in page
// coordinates.
type PointerEvent struct {
	DX float64 `json:"dx"`
	DY float64 `json:"dy"`
	X  float64 `json:"x"`
	Y  float64 `json:"y"`
}

type Phase int

const (
	PhaseStart Phase = iota
	PhaseMove
	PhaseEnd
)

func (p Phase) String() string {
	switch p {
	case PhaseStart:
		return "start"
	case PhaseMove:
		return "move"
	case PhaseEnd:
		return "end"
	default:
		return "unknown"
	}
}

// DragFunc receives the clock the drag happened on and the pointer sample
// untouched. Hand state is already updated when a move callback runs.
type DragFunc func(c *Clock, ev PointerEvent)

type Callbacks struct {
	OnHourDragStart   DragFunc
	OnHourDragMove    DragFunc
	OnHourDragEnd     DragFunc
	OnMinuteDragStart DragFunc
	OnMinuteDragMove  DragFunc
	OnMinuteDragEnd   DragFunc
}

func (cb Callbacks) lookup(hand Hand, phase Phase) DragFunc {
	switch hand {
	case HourHand:
		switch phase {
		case PhaseStart:
			return cb.OnHourDragStart
		case PhaseMove:
			return cb.OnHourDragMove
		case PhaseEnd:
			return cb.OnHourDragEnd
		}
	case MinuteHand:
		switch phase {
		case PhaseStart:
			return cb.OnMinuteDragStart
		case PhaseMove:
			return cb.OnMinuteDragMove
		case PhaseEnd:
			return cb.OnMinuteDragEnd
		}
	}

	return nil
}

func (c *Clock) Draggable(hand Hand) bool {
	return c.config.Draggable(hand)
}

// Dragging reports whether a gesture on hand is between start and end.
func (c *Clock) Dragging(hand Hand) bool {
	return hand.Valid() && c.dragging[hand]
}

// Drag dispatches a sample to the matching lifecycle method.
func (c *Clock) Drag(hand Hand, phase Phase, ev PointerEvent) {
	switch phase {
	case PhaseStart:
		c.DragStart(hand, ev)
	case PhaseMove:
		c.DragMove(hand, ev)
	case PhaseEnd:
		c.DragEnd(hand, ev)
	}
}

func (c *Clock) DragStart(hand Hand, ev PointerEvent) {
	if !c.Draggable(hand) {
		return
	}

	c.dragging[hand] = true
	c.fire(hand, PhaseStart, ev)
}

// DragMove snaps the dragged hand to the pointer and sets its rotation
// without animation. Samples outside a start/end pair are ignored.
func (c *Clock) DragMove(hand Hand, ev PointerEvent) {
	if !c.Draggable(hand) {
		return
	}

	if !c.dragging[hand] {
		c.logger.Debug("move sample outside a drag", "container", c.containerID, "hand", hand.String())
		return
	}

	offset := c.renderer.PointerOffset(c.containerID)
	center := float64(c.config.Size) / 2
	raw := Bearing(center, center, ev.X-offset.Left, ev.Y-offset.Top)

	switch hand {
	case MinuteHand:
		c.dragMinute(raw)
	case HourHand:
		c.dragHour(raw)
	}

	c.fire(hand, PhaseMove, ev)
}

func (c *Clock) DragEnd(hand Hand, ev PointerEvent) {
	if !c.Draggable(hand) {
		return
	}

	c.dragging[hand] = false
	c.fire(hand, PhaseEnd, ev)
}

func (c *Clock) dragMinute(raw float64) {
	minute, hour := MinuteDrag(c.hands[MinuteHand], c.hands[HourHand], c.state.IsAM, raw, c.config.MinuteDragSnap, c.config.HourDragSnap)
	c.hands[MinuteHand], c.hands[HourHand] = minute, hour

	c.render(MinuteHand, false)
	c.render(HourHand, false)

	c.state.Minute = int(minute.Value)
	c.state.Hour = int(hour.Value)
}

func (c *Clock) dragHour(raw float64) {
	hour, isAM := HourDrag(c.hands[HourHand], c.state.IsAM, raw, c.config.HourDragSnap)
	if isAM != c.state.IsAM {
		c.logger.Debug("meridiem changed", "container", c.containerID, "am", isAM, "hour", hour.Value)
	}

	c.hands[HourHand] = hour
	c.state.IsAM = isAM
	c.state.Hour = int(hour.Value)

	c.render(HourHand, false)
}

func (c *Clock) fire(hand Hand, phase Phase, ev PointerEvent) {
	if fn := c.callbacks.lookup(hand, phase); fn != nil {
		fn(c, ev)
	}
}
