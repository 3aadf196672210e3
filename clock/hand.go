package clock

import (
	"encoding/json"
	"errors"
)

var ErrUnknownHand = errors.New("unknown clock hand")

type Hand int

const (
	HourHand Hand = iota
	MinuteHand
	SecondHand
)

// Hands lists every hand in draw order from back to front.
var Hands = [...]Hand{SecondHand, MinuteHand, HourHand}

func (h Hand) Valid() bool {
	return h >= HourHand && h <= SecondHand
}

func (h Hand) String() string {
	switch h {
	case HourHand:
		return "hour"
	case MinuteHand:
		return "minute"
	case SecondHand:
		return "second"
	default:
		return "unknown"
	}
}

func HandFromString(str string) (Hand, error) {
	switch str {
	case "hour":
		return HourHand, nil
	case "minute":
		return MinuteHand, nil
	case "second":
		return SecondHand, nil
	default:
		return 0, ErrUnknownHand
	}
}

func (h Hand) MarshalJSON() ([]byte, error) {
	if !h.Valid() {
		return nil, ErrUnknownHand
	}

	return json.Marshal(h.String())
}

func (h *Hand) UnmarshalJSON(b []byte) error {
	var str string
	if err := json.Unmarshal(b, &str); err != nil {
		return err
	}

	hand, err := HandFromString(str)
	if err != nil {
		return err
	}

	*h = hand
	return nil
}

// HandTrack is the geometry state of one hand. It is owned by the Clock and
// never attached to anything the renderer draws.
type HandTrack struct {
	// Angle in degrees clockwise from 12 o'clock. Unbounded: programmatic
	// updates only ever grow it by whole turns.
	Angle float64

	// Value is the time value the hand shows: hour in [0,24),
	// minute and second in [0,60).
	Value float64

	// PreviousValue is the last committed hour value, read by the
	// meridiem detection of an hour drag.
	PreviousValue float64

	// AdditionalAngle is the hour hand's offset contributed by the minutes.
	AdditionalAngle float64

	// AllowFullRotation forces a full turn when the same minute is set again.
	AllowFullRotation bool

	// Rendered is the last angle handed to the renderer.
	Rendered float64
}
