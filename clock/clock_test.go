package clock_test

import (
	"io"
	"log/slog"
	"math"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/michaelgov-ctrl/svg-clock/clock"
)

type renderCall struct {
	Hand  clock.Hand
	Angle float64
	Anim  clock.Animation
}

type recorder struct {
	renders    []renderCall
	visibility map[clock.Hand]bool
	offset     clock.Offset
}

func newRecorder() *recorder {
	return &recorder{visibility: make(map[clock.Hand]bool)}
}

func (r *recorder) RenderHand(hand clock.Hand, angle float64, anim clock.Animation) {
	r.renders = append(r.renders, renderCall{Hand: hand, Angle: angle, Anim: anim})
}

func (r *recorder) SetHandVisibility(hand clock.Hand, visible bool) {
	r.visibility[hand] = visible
}

func (r *recorder) PointerOffset(string) clock.Offset {
	return r.offset
}

func (r *recorder) last(hand clock.Hand) (renderCall, bool) {
	for i := len(r.renders) - 1; i >= 0; i-- {
		if r.renders[i].Hand == hand {
			return r.renders[i], true
		}
	}
	return renderCall{}, false
}

var quiet = slog.New(slog.NewTextHandler(io.Discard, nil))

func newClock(t *testing.T, cfg clock.Config, opts ...clock.Option) (*clock.Clock, *recorder) {
	t.Helper()

	rec := newRecorder()
	opts = append([]clock.Option{clock.WithConfig(cfg), clock.WithLogger(quiet)}, opts...)
	return clock.New("test-clock", rec, opts...), rec
}

func pickerConfig() clock.Config {
	cfg := clock.DefaultConfig()
	cfg.Size = 200
	cfg.HourDraggable = true
	cfg.MinuteDraggable = true
	return cfg
}

// pointAt returns the page position at bearing degrees from the centre of a
// clock of the given size placed at offset.
func pointAt(bearing float64, size int, offset clock.Offset) clock.PointerEvent {
	c := float64(size) / 2
	rad := (bearing - 180) * math.Pi / 180
	return clock.PointerEvent{
		X: offset.Left + c + 0.8*c*math.Cos(rad),
		Y: offset.Top + c + 0.8*c*math.Sin(rad),
	}
}

func TestSetTimeRoundTrip(t *testing.T) {
	testCases := []struct {
		name                 string
		hour, minute, second int
		want                 clock.TimeState
	}{
		{name: "plain", hour: 9, minute: 5, second: 7, want: clock.TimeState{Hour: 9, Minute: 5, Second: 7, IsAM: true}},
		{name: "afternoon folds onto dial", hour: 14, minute: 75, second: 130, want: clock.TimeState{Hour: 2, Minute: 15, Second: 10, IsAM: true}},
		{name: "midnight", hour: 24, minute: 0, second: 0, want: clock.TimeState{Hour: 0, IsAM: true}},
		{name: "noon stays twelve", hour: 12, minute: 60, second: 59, want: clock.TimeState{Hour: 12, Second: 59, IsAM: true}},
		{name: "thirty six hours", hour: 36, minute: 1, second: 1, want: clock.TimeState{Hour: 12, Minute: 1, Second: 1, IsAM: true}},
		{name: "negative values wrap", hour: -1, minute: -5, second: -1, want: clock.TimeState{Hour: 11, Minute: 55, Second: 59, IsAM: true}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			c, _ := newClock(t, clock.DefaultConfig())
			c.SetTime(tc.hour, tc.minute, tc.second)

			if diff := cmp.Diff(tc.want, c.Time()); diff != "" {
				t.Errorf("Time() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSetTimeKeepsOmittedFields(t *testing.T) {
	c, _ := newClock(t, clock.DefaultConfig())
	c.SetTime(3, 20, 40)

	c.SetTime(5)
	if got, want := c.Time(), (clock.TimeState{Hour: 5, Minute: 20, Second: 40, IsAM: true}); got != want {
		t.Errorf("after SetTime(5): %+v, want %+v", got, want)
	}

	c.SetTime(6, 10)
	if got, want := c.Time(), (clock.TimeState{Hour: 6, Minute: 10, Second: 40, IsAM: true}); got != want {
		t.Errorf("after SetTime(6, 10): %+v, want %+v", got, want)
	}

	c.SetHour(7)
	if got := c.Time().Hour; got != 7 {
		t.Errorf("after SetHour(7): hour = %d, want 7", got)
	}
}

func TestTimeString(t *testing.T) {
	c, _ := newClock(t, clock.DefaultConfig())

	c.SetTime(9, 5, 7)
	if got := c.TimeString(false); got != "9:05" {
		t.Errorf("TimeString(false) = %q, want %q", got, "9:05")
	}
	if got := c.TimeString(true); got != "9:05:07" {
		t.Errorf("TimeString(true) = %q, want %q", got, "9:05:07")
	}

	c.SetTime(9, 0, 9)
	if got := c.TimeString(true); got != "9:00:09" {
		t.Errorf("TimeString(true) = %q, want %q", got, "9:00:09")
	}

	if c.Minute() != 0 || c.Second() != 9 {
		t.Errorf("Minute(), Second() = %d, %d, want 0, 9", c.Minute(), c.Second())
	}
}

func TestSetTimeIsIdempotent(t *testing.T) {
	c, rec := newClock(t, clock.DefaultConfig())

	c.SetTime(3, 20, 10)
	renders := len(rec.renders)
	tracks := []clock.HandTrack{c.Track(clock.HourHand), c.Track(clock.MinuteHand), c.Track(clock.SecondHand)}

	c.SetTime(3, 20, 10)

	if len(rec.renders) != renders {
		t.Errorf("second SetTime rendered %d more times, want none", len(rec.renders)-renders)
	}

	got := []clock.HandTrack{c.Track(clock.HourHand), c.Track(clock.MinuteHand), c.Track(clock.SecondHand)}
	if diff := cmp.Diff(tracks, got); diff != "" {
		t.Errorf("tracks changed on repeated SetTime (-want +got):\n%s", diff)
	}
}

func TestMinuteFullRotation(t *testing.T) {
	t.Run("allowed", func(t *testing.T) {
		cfg := clock.DefaultConfig()
		cfg.AllowMinuteFullRotation = true
		c, rec := newClock(t, cfg)

		c.SetMinute(20)
		first := c.Track(clock.MinuteHand).Angle
		c.SetMinute(20)
		second := c.Track(clock.MinuteHand).Angle
		c.SetMinute(20)
		third := c.Track(clock.MinuteHand).Angle

		if first != 120 || second != 480 || third != 840 {
			t.Errorf("angles = %v, %v, %v, want 120, 480, 840", first, second, third)
		}
		if len(rec.renders) != 3 {
			t.Errorf("renders = %d, want 3", len(rec.renders))
		}
	})

	t.Run("not allowed", func(t *testing.T) {
		c, rec := newClock(t, clock.DefaultConfig())

		c.SetMinute(20)
		c.SetMinute(20)

		if got := c.Track(clock.MinuteHand).Angle; got != 120 {
			t.Errorf("angle = %v, want 120", got)
		}
		if len(rec.renders) != 1 {
			t.Errorf("renders = %d, want 1", len(rec.renders))
		}
	})
}

func TestHourGlidesWithMinutes(t *testing.T) {
	c, rec := newClock(t, clock.DefaultConfig())
	c.SetTime(2, 30)

	hour := c.Track(clock.HourHand)
	if hour.Rendered != 75 {
		t.Errorf("hour rendered angle = %v, want 75", hour.Rendered)
	}
	if hour.AdditionalAngle != 15 {
		t.Errorf("hour additional angle = %v, want 15", hour.AdditionalAngle)
	}

	call, ok := rec.last(clock.HourHand)
	if !ok || call.Angle != 75 {
		t.Errorf("last hour render = %+v, want angle 75", call)
	}
}

func TestHandsOnlyTurnClockwise(t *testing.T) {
	c, _ := newClock(t, clock.DefaultConfig())

	times := [][3]int{
		{11, 50, 0},
		{12, 10, 0},
		{1, 5, 30},
		{0, 0, 0},
		{23, 59, 59},
		{3, 0, 0},
		{3, 0, 1},
		{2, 59, 0},
	}

	var prev [3]float64
	for _, tm := range times {
		c.SetTime(tm[0], tm[1], tm[2])

		for i, hand := range []clock.Hand{clock.HourHand, clock.MinuteHand, clock.SecondHand} {
			angle := c.Track(hand).Angle
			if angle < prev[i] {
				t.Errorf("SetTime(%v): %s angle went back from %v to %v", tm, hand, prev[i], angle)
			}
			prev[i] = angle
		}
	}
}

func TestSetTimeAnimations(t *testing.T) {
	cfg := clock.DefaultConfig()
	cfg.Speed = clock.Milliseconds(400)
	c, rec := newClock(t, cfg)

	c.SetTime(1, 1, 1)

	want := []renderCall{
		{Hand: clock.SecondHand, Angle: 6, Anim: clock.Animation{Animate: true, Duration: 200 * time.Millisecond, Easing: clock.Bounce}},
		{Hand: clock.MinuteHand, Angle: 6, Anim: clock.Animation{Animate: true, Duration: 400 * time.Millisecond, Easing: clock.EaseInOut}},
		{Hand: clock.HourHand, Angle: 30.5, Anim: clock.Animation{Animate: true, Duration: 400 * time.Millisecond, Easing: clock.EaseInOut}},
	}

	if diff := cmp.Diff(want, rec.renders); diff != "" {
		t.Errorf("renders mismatch (-want +got):\n%s", diff)
	}
}

func TestSecondHandVisibility(t *testing.T) {
	testCases := []struct {
		name   string
		mutate func(*clock.Config)
		want   bool
	}{
		{name: "default", mutate: func(*clock.Config) {}, want: true},
		{name: "hidden", mutate: func(c *clock.Config) { c.ShowSeconds = false }, want: false},
		{name: "hour draggable", mutate: func(c *clock.Config) { c.HourDraggable = true }, want: false},
		{name: "minute draggable", mutate: func(c *clock.Config) { c.MinuteDraggable = true }, want: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := clock.DefaultConfig()
			tc.mutate(&cfg)
			c, rec := newClock(t, cfg)

			visible, ok := rec.visibility[clock.SecondHand]
			if !ok {
				t.Fatal("second hand visibility never set")
			}
			if visible != tc.want || c.SecondsVisible() != tc.want {
				t.Errorf("visible = %v (SecondsVisible %v), want %v", visible, c.SecondsVisible(), tc.want)
			}
		})
	}
}

func TestMinuteDrag(t *testing.T) {
	cfg := pickerConfig()
	c, rec := newClock(t, cfg)
	rec.offset = clock.Offset{Left: 100, Top: 50}

	c.DragStart(clock.MinuteHand, clock.PointerEvent{})
	// a quarter past sits at 3 o'clock, bearing 180
	c.DragMove(clock.MinuteHand, pointAt(186, cfg.Size, rec.offset))

	minute := c.Track(clock.MinuteHand)
	if minute.Angle != 90 || minute.Value != 15 {
		t.Errorf("minute track = %+v, want angle 90 value 15", minute)
	}

	hour := c.Track(clock.HourHand)
	if hour.AdditionalAngle != 7.5 || hour.Rendered != 7.5 || hour.Value != 0 {
		t.Errorf("hour track = %+v, want additional 7.5 rendered 7.5 value 0", hour)
	}

	for _, hand := range []clock.Hand{clock.MinuteHand, clock.HourHand} {
		call, ok := rec.last(hand)
		if !ok {
			t.Fatalf("%s never rendered", hand)
		}
		if call.Anim.Animate {
			t.Errorf("%s drag render animated: %+v", hand, call.Anim)
		}
	}

	if got := c.TimeString(false); got != "0:15" {
		t.Errorf("TimeString = %q, want %q", got, "0:15")
	}
}

func TestMinuteDragFloorsHourBase(t *testing.T) {
	c, _ := newClock(t, pickerConfig())
	c.SetTime(2, 30)

	c.DragStart(clock.MinuteHand, clock.PointerEvent{})
	// bearing 10 is between 45 and 50 past
	c.DragMove(clock.MinuteHand, pointAt(10, 200, clock.Offset{}))

	hour := c.Track(clock.HourHand)
	if hour.Angle != 60 || hour.AdditionalAngle != 22.5 || hour.Rendered != 82.5 || hour.Value != 2 {
		t.Errorf("hour track = %+v, want angle 60 additional 22.5 rendered 82.5 value 2", hour)
	}

	if got, want := c.Time(), (clock.TimeState{Hour: 2, Minute: 45, IsAM: true}); got != want {
		t.Errorf("Time() = %+v, want %+v", got, want)
	}

	// the minute offset survives an hour drag
	c.DragStart(clock.HourHand, clock.PointerEvent{})
	c.DragMove(clock.HourHand, pointAt(245, 200, clock.Offset{}))

	hour = c.Track(clock.HourHand)
	if hour.Rendered != hour.Angle+22.5 {
		t.Errorf("hour rendered = %v, want angle %v + 22.5", hour.Rendered, hour.Angle)
	}
}

func TestMinuteDragSnapFallback(t *testing.T) {
	seven := pickerConfig()
	seven.MinuteDragSnap = 7
	five := pickerConfig()

	a, _ := newClock(t, seven)
	b, _ := newClock(t, five)

	if got := a.Config().MinuteDragSnap; got != clock.DefaultMinuteDragSnap {
		t.Errorf("coerced snap = %d, want %d", got, clock.DefaultMinuteDragSnap)
	}

	for _, c := range []*clock.Clock{a, b} {
		c.DragStart(clock.MinuteHand, clock.PointerEvent{})
	}

	for _, bearing := range []float64{3, 47, 101, 133, 199, 250, 301, 355} {
		ev := pointAt(bearing, 200, clock.Offset{})
		a.DragMove(clock.MinuteHand, ev)
		b.DragMove(clock.MinuteHand, ev)

		for _, hand := range []clock.Hand{clock.MinuteHand, clock.HourHand} {
			if diff := cmp.Diff(b.Track(hand), a.Track(hand)); diff != "" {
				t.Errorf("bearing %v: %s track differs (-snap5 +snap7):\n%s", bearing, hand, diff)
			}
		}
	}
}

func TestHourDragCrossesNoonClockwise(t *testing.T) {
	c, _ := newClock(t, pickerConfig())
	c.SetTime(11)

	c.DragStart(clock.HourHand, clock.PointerEvent{})
	// just past 12 o'clock, bearing 90
	c.DragMove(clock.HourHand, pointAt(100, 200, clock.Offset{}))

	if c.IsAM() {
		t.Error("IsAM() = true after crossing 12 clockwise from 11 AM")
	}

	hour := c.Track(clock.HourHand)
	if hour.Value != 12 || hour.Angle != 360 || hour.Rendered != 360 {
		t.Errorf("hour track = %+v, want value 12 angle 360", hour)
	}

	if got := c.Time().Hour24(); got != 12 {
		t.Errorf("Hour24() = %d, want 12", got)
	}
}

// SetTime records the hour it shows as the drag history, so a later hour
// drag reads its direction from that hour rather than from midnight.
func TestSetTimeSeedsHourDragDirection(t *testing.T) {
	c, _ := newClock(t, pickerConfig())
	c.SetTime(3)

	if got := c.Track(clock.HourHand).PreviousValue; got != 3 {
		t.Fatalf("PreviousValue = %v after SetTime(3), want 3", got)
	}

	c.DragStart(clock.HourHand, clock.PointerEvent{})
	// 9 o'clock, bearing 15
	c.DragMove(clock.HourHand, pointAt(15, 200, clock.Offset{}))

	if !c.IsAM() {
		t.Error("IsAM() = false, a drag from 3 to 9 must not switch to PM")
	}

	hour := c.Track(clock.HourHand)
	if hour.Value != 9 || hour.PreviousValue != 9 {
		t.Errorf("hour track = %+v, want value and previous value 9", hour)
	}
	if got := c.Time().Hour24(); got != 9 {
		t.Errorf("Hour24() = %d, want 9", got)
	}
}

func TestDragGating(t *testing.T) {
	t.Run("not draggable", func(t *testing.T) {
		var calls int
		cb := clock.Callbacks{
			OnMinuteDragStart: func(*clock.Clock, clock.PointerEvent) { calls++ },
			OnMinuteDragMove:  func(*clock.Clock, clock.PointerEvent) { calls++ },
			OnMinuteDragEnd:   func(*clock.Clock, clock.PointerEvent) { calls++ },
		}
		c, rec := newClock(t, clock.DefaultConfig(), clock.WithCallbacks(cb))

		c.DragStart(clock.MinuteHand, clock.PointerEvent{})
		c.DragMove(clock.MinuteHand, pointAt(186, 120, clock.Offset{}))
		c.DragEnd(clock.MinuteHand, clock.PointerEvent{})

		if calls != 0 || len(rec.renders) != 0 {
			t.Errorf("calls = %d, renders = %d, want none", calls, len(rec.renders))
		}
	})

	t.Run("moves outside a gesture", func(t *testing.T) {
		c, rec := newClock(t, pickerConfig())

		c.DragMove(clock.MinuteHand, pointAt(186, 200, clock.Offset{}))
		if len(rec.renders) != 0 {
			t.Fatalf("move before start rendered %d times", len(rec.renders))
		}

		c.DragStart(clock.MinuteHand, clock.PointerEvent{})
		if !c.Dragging(clock.MinuteHand) {
			t.Fatal("Dragging() = false after start")
		}
		c.DragMove(clock.MinuteHand, pointAt(186, 200, clock.Offset{}))
		c.DragEnd(clock.MinuteHand, clock.PointerEvent{})
		renders := len(rec.renders)

		c.DragMove(clock.MinuteHand, pointAt(276, 200, clock.Offset{}))
		if len(rec.renders) != renders {
			t.Errorf("move after end rendered")
		}
		if c.Minute() != 15 {
			t.Errorf("Minute() = %d, want 15", c.Minute())
		}
	})

	t.Run("second hand never drags", func(t *testing.T) {
		c, rec := newClock(t, pickerConfig())
		c.Drag(clock.SecondHand, clock.PhaseStart, clock.PointerEvent{})
		c.Drag(clock.SecondHand, clock.PhaseMove, pointAt(186, 200, clock.Offset{}))

		if len(rec.renders) != 0 {
			t.Errorf("second hand drag rendered %d times", len(rec.renders))
		}
	})
}

func TestDragCallbacks(t *testing.T) {
	type seen struct {
		Phase  string
		Event  clock.PointerEvent
		Minute int
	}

	var got []seen
	var self *clock.Clock
	record := func(phase string) clock.DragFunc {
		return func(c *clock.Clock, ev clock.PointerEvent) {
			self = c
			got = append(got, seen{Phase: phase, Event: ev, Minute: c.Minute()})
		}
	}

	c, _ := newClock(t, pickerConfig(), clock.WithCallbacks(clock.Callbacks{
		OnMinuteDragStart: record("start"),
		OnMinuteDragMove:  record("move"),
		OnMinuteDragEnd:   record("end"),
	}))

	move := pointAt(186, 200, clock.Offset{})
	move.DX, move.DY = 12, -3

	c.DragStart(clock.MinuteHand, clock.PointerEvent{X: 1, Y: 2})
	c.DragMove(clock.MinuteHand, move)
	c.DragEnd(clock.MinuteHand, clock.PointerEvent{})

	want := []seen{
		{Phase: "start", Event: clock.PointerEvent{X: 1, Y: 2}},
		{Phase: "move", Event: move, Minute: 15},
		{Phase: "end", Minute: 15},
	}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("callbacks mismatch (-want +got):\n%s", diff)
	}
	if self != c {
		t.Error("callback did not receive the dragged clock")
	}

	// hour callbacks are not registered, the drag still works
	c.DragStart(clock.HourHand, clock.PointerEvent{})
	c.DragMove(clock.HourHand, pointAt(190, 200, clock.Offset{}))
	if len(got) != 3 {
		t.Errorf("unregistered hour callbacks recorded %d calls", len(got)-3)
	}
}

func TestCallbackMaySetTime(t *testing.T) {
	c, _ := newClock(t, pickerConfig(), clock.WithCallbacks(clock.Callbacks{
		OnMinuteDragMove: func(c *clock.Clock, _ clock.PointerEvent) {
			c.SetTime(5, 0)
		},
	}))

	c.DragStart(clock.MinuteHand, clock.PointerEvent{})
	c.DragMove(clock.MinuteHand, pointAt(186, 200, clock.Offset{}))

	if got := c.TimeString(false); got != "5:00" {
		t.Errorf("TimeString = %q, want %q", got, "5:00")
	}
}

func TestNilRenderer(t *testing.T) {
	c := clock.New("bare", nil, clock.WithLogger(quiet))
	c.SetTime(4, 30, 15)

	if got := c.TimeString(true); got != "4:30:15" {
		t.Errorf("TimeString = %q, want %q", got, "4:30:15")
	}
	if c.ContainerID() != "bare" {
		t.Errorf("ContainerID = %q, want %q", c.ContainerID(), "bare")
	}
}
