package clock

import "math"

const (
	DefaultHourDragSnap   = 1
	DefaultMinuteDragSnap = 5

	degreesPerMinute = 360.0 / 60
	degreesPerHour   = 360.0 / 12
)

// Bearing is the angle of the pointer seen from the centre, in degrees
// clockwise with 0 at 9 o'clock. A pointer on the centre has bearing 0.
func Bearing(cx, cy, px, py float64) float64 {
	dx, dy := px-cx, py-cy
	if dx == 0 && dy == 0 {
		return 0
	}

	return math.Mod(180+math.Atan2(dy, dx)*180/math.Pi+360, 360)
}

func ValidMinuteSnap(snap int) bool {
	return snap > 0 && (snap%5 == 0 || snap%15 == 0 || snap == 1)
}

func ValidHourSnap(snap int) bool {
	switch snap {
	case 1, 2, 3, 6:
		return true
	default:
		return false
	}
}

func NormalizeMinuteSnap(snap int) int {
	if !ValidMinuteSnap(snap) {
		return DefaultMinuteDragSnap
	}

	return snap
}

func NormalizeHourSnap(snap int) int {
	if !ValidHourSnap(snap) {
		return DefaultHourDragSnap
	}

	return snap
}

// SnapMinuteAngle floors a bearing to the snap grid and rebases it so that
// 0 is 12 o'clock. The result is in [0,360).
func SnapMinuteAngle(raw float64, snap int) float64 {
	step := float64(NormalizeMinuteSnap(snap)) * degreesPerMinute

	angle := raw - math.Mod(raw, step) - 90
	if angle < 0 {
		angle += 360
	}

	return angle
}

// SnapHourAngle floors a bearing to the hour snap grid. The phase of the grid
// differs for 2 and 6 hour snaps so the marks still land on 12.
func SnapHourAngle(raw float64, snap int) float64 {
	snap = NormalizeHourSnap(snap)
	step := float64(snap) * degreesPerHour

	var base float64
	switch snap {
	case 2:
		base = raw - math.Mod(raw, step) - 60
	case 6:
		base = raw - math.Mod(raw, step)
	default:
		base = raw - math.Mod(raw, step) - 90
	}

	if base < 0 {
		base += 360
	}

	return base
}

// clockwise returns the first target + n*360 that is ahead of current.
// With inclusive set, a target equal to current still counts as behind.
func clockwise(current, target float64, inclusive bool) float64 {
	behind := func(t float64) bool {
		if inclusive {
			return current >= t
		}
		return current > t
	}

	if !behind(target) {
		return target
	}

	target += math.Floor((current-target)/360) * 360
	for behind(target) {
		target += 360
	}

	return target
}

// AdvanceHand moves a minute or second track forward to value, wrapping the
// value into [0,60). It reports whether the angle moved, which only happens
// when the value changes or the track allows a full rotation.
func AdvanceHand(t HandTrack, value int) (HandTrack, bool) {
	v := float64(wrap(value, 60))

	moved := false
	if t.Value != v || t.AllowFullRotation {
		t.Angle = clockwise(t.Angle, v*degreesPerMinute, true)
		t.Rendered = t.Angle
		moved = true
	}

	t.Value = v
	return t, moved
}

// AdvanceHour moves the hour track forward to hour on the 12-hour dial plus
// the glide contributed by minute.
func AdvanceHour(t HandTrack, hour, minute int) HandTrack {
	var additional float64
	if minute > 0 {
		additional = degreesPerHour / 60 * float64(minute)
	}

	t.Angle = clockwise(t.Angle, degreesPerHour*float64(hour)+additional, false)
	t.AdditionalAngle = additional
	t.Rendered = t.Angle
	t.Value = float64(hour)

	return t
}

// MinuteDrag positions the minute hand at a raw bearing and re-derives the
// hour hand from it. The hour base is floored to the hour snap grid so that
// repeated minute drags never accumulate drift.
func MinuteDrag(minute, hour HandTrack, isAM bool, raw float64, minuteSnap, hourSnap int) (HandTrack, HandTrack) {
	angle := SnapMinuteAngle(raw, minuteSnap)

	minute.Angle = angle
	minute.Value = angle / degreesPerMinute
	minute.Rendered = angle

	step := float64(NormalizeHourSnap(hourSnap)) * degreesPerHour
	hour.AdditionalAngle = angle / 12
	hour.Angle -= math.Mod(hour.Angle, step)
	hour.Rendered = hour.Angle + hour.AdditionalAngle
	hour.Value = hourValue(hour.Angle, isAM)

	return minute, hour
}

// HourDrag positions the hour hand at a raw bearing and returns the updated
// track with the resulting meridiem.
//
// A bearing on 12 cannot tell which way the hand came from, so the direction
// is read from where the hand was: landing on 12 from anywhere but 12 or 1
// flips the meridiem, and leaving 12 backwards past 6 forces the meridiem of
// the 12 that was left.
func HourDrag(hour HandTrack, isAM bool, raw float64, snap int) (HandTrack, bool) {
	base := SnapHourAngle(raw, snap)
	v := base / degreesPerHour

	switch {
	case math.Mod(v, 12) == 0 &&
		hour.Value != 0 && hour.Value != 12 &&
		hour.PreviousValue != 13 && hour.PreviousValue != 1:
		isAM = !isAM
	case hour.PreviousValue == 0 && v > 6:
		isAM = false
	case hour.PreviousValue == 12 && v > 6:
		isAM = true
	}

	if !isAM {
		v += 12
		base += 360
	}

	hour.Value = v
	if hour.PreviousValue != hour.Value {
		hour.PreviousValue = hour.Value
	}

	hour.Angle = base
	hour.Rendered = base + hour.AdditionalAngle

	return hour, isAM
}

func hourValue(angle float64, isAM bool) float64 {
	v := math.Mod(angle/degreesPerHour, 12)
	if !isAM {
		v += 12
	}

	return v
}
