// Package clock keeps the time an analog clock shows and turns it into hand
// angles, both for programmatic updates and for hands dragged by a pointer.
//
// A Clock never draws. It tells a Renderer which angle each hand should
// have and whether to animate there. All methods are meant to be called from
// one goroutine; drag callbacks run synchronously and may call back into the
// Clock.
package clock

import (
	"log/slog"
	"os"
)

type ClockOptions struct {
	config    Config
	logger    *slog.Logger
	callbacks Callbacks
}

type Option func(*ClockOptions)

func WithConfig(cfg Config) Option {
	return func(o *ClockOptions) {
		o.config = cfg
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(o *ClockOptions) {
		o.logger = logger
	}
}

func WithCallbacks(callbacks Callbacks) Option {
	return func(o *ClockOptions) {
		o.callbacks = callbacks
	}
}

type Clock struct {
	containerID string
	renderer    Renderer

	ClockOptions

	state    TimeState
	hands    [3]HandTrack
	dragging [3]bool
}

func New(containerID string, renderer Renderer, opts ...Option) *Clock {
	defaults := &ClockOptions{
		config: DefaultConfig(),
		logger: slog.New(slog.NewTextHandler(os.Stdout, nil)),
	}

	for _, opt := range opts {
		opt(defaults)
	}

	if renderer == nil {
		renderer = nopRenderer{}
	}

	c := &Clock{
		containerID:  containerID,
		renderer:     renderer,
		ClockOptions: *defaults,
		state:        TimeState{IsAM: true},
	}

	c.config = c.normalizeConfig(c.config)
	c.hands[MinuteHand].AllowFullRotation = c.config.AllowMinuteFullRotation
	c.renderer.SetHandVisibility(SecondHand, c.config.SecondsVisible())

	return c
}

func (c *Clock) normalizeConfig(cfg Config) Config {
	normalized := cfg.Normalized()

	if normalized.HourDragSnap != cfg.HourDragSnap {
		c.logger.Debug("hour drag snap reset", "container", c.containerID, "snap", cfg.HourDragSnap, "default", normalized.HourDragSnap)
	}

	if normalized.MinuteDragSnap != cfg.MinuteDragSnap {
		c.logger.Debug("minute drag snap reset", "container", c.containerID, "snap", cfg.MinuteDragSnap, "default", normalized.MinuteDragSnap)
	}

	return normalized
}

func (c *Clock) ContainerID() string {
	return c.containerID
}

func (c *Clock) Config() Config {
	return c.config
}

func (c *Clock) SecondsVisible() bool {
	return c.config.SecondsVisible()
}

// SetTime shows hour:minute:second, animating every hand clockwise. Minute
// and second keep their current value when omitted. Out of range values
// wrap; hours above 12 fold onto the dial without changing the meridiem.
// Setting the time already shown does nothing.
func (c *Clock) SetTime(hour int, minuteSecond ...int) {
	h := normalizeHour(hour)

	m, s := c.state.Minute, c.state.Second
	if len(minuteSecond) > 0 {
		m = minuteSecond[0]
	}
	if len(minuteSecond) > 1 {
		s = minuteSecond[1]
	}
	m, s = wrap(m, 60), wrap(s, 60)

	if c.state.Hour == h && c.state.Minute == m && c.state.Second == s {
		return
	}

	c.SetSecond(s)
	c.SetMinute(m)

	c.hands[HourHand] = AdvanceHour(c.hands[HourHand], h, m)
	c.hands[HourHand].PreviousValue = c.hands[HourHand].Value
	c.render(HourHand, true)

	c.state.Hour = h
}

// SetHour changes the hour and keeps minute and second.
func (c *Clock) SetHour(hour int) {
	c.SetTime(hour)
}

// SetMinute moves the minute hand only; the hour hand keeps its glide.
func (c *Clock) SetMinute(minute int) {
	c.advance(MinuteHand, minute)
}

func (c *Clock) SetSecond(second int) {
	c.advance(SecondHand, second)
}

func (c *Clock) advance(hand Hand, value int) {
	track, moved := AdvanceHand(c.hands[hand], value)
	c.hands[hand] = track

	if moved {
		c.render(hand, true)
	}

	switch hand {
	case MinuteHand:
		c.state.Minute = int(track.Value)
	case SecondHand:
		c.state.Second = int(track.Value)
	}
}

// Time returns a snapshot of the shown time.
func (c *Clock) Time() TimeState {
	return c.state
}

func (c *Clock) TimeString(includeSeconds bool) string {
	return c.state.Format(includeSeconds)
}

func (c *Clock) Minute() int {
	return c.state.Minute
}

func (c *Clock) Second() int {
	return c.state.Second
}

func (c *Clock) IsAM() bool {
	return c.state.IsAM
}

// Track returns a copy of a hand's geometry.
func (c *Clock) Track(hand Hand) HandTrack {
	if !hand.Valid() {
		return HandTrack{}
	}

	return c.hands[hand]
}

func (c *Clock) render(hand Hand, animate bool) {
	var anim Animation
	if animate {
		anim = c.animation(hand)
	}

	c.renderer.RenderHand(hand, c.hands[hand].Rendered, anim)
}

func (c *Clock) animation(hand Hand) Animation {
	if hand == SecondHand {
		return Animation{Animate: true, Duration: c.config.Speed.Std() / 2, Easing: Bounce}
	}

	return Animation{Animate: true, Duration: c.config.Speed.Std(), Easing: EaseInOut}
}
