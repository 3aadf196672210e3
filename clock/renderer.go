package clock

import "time"

// Offset is where a widget container sits on the page.
type Offset struct {
	Left float64 `json:"left"`
	Top  float64 `json:"top"`
}

// Easing names the curve the renderer should play a rotation with.
type Easing string

const (
	Linear    Easing = "linear"
	EaseInOut Easing = "<>"
	Bounce    Easing = "bounce"
)

// CSS returns the transition-timing-function equivalent. CSS has no bounce,
// so Bounce maps to an overshooting curve.
func (e Easing) CSS() string {
	switch e {
	case EaseInOut:
		return "ease-in-out"
	case Bounce:
		return "cubic-bezier(0.34, 1.56, 0.64, 1)"
	default:
		return "linear"
	}
}

// Animation describes how a hand reaches a new angle. A zero Animation means
// set the rotation immediately.
type Animation struct {
	Animate  bool
	Duration time.Duration
	Easing   Easing
}

// Renderer draws the hands. The clock only ever hands it angles.
type Renderer interface {
	RenderHand(hand Hand, angle float64, anim Animation)
	SetHandVisibility(hand Hand, visible bool)
	PointerOffset(containerID string) Offset
}

type nopRenderer struct{}

func (nopRenderer) RenderHand(Hand, float64, Animation) {}

func (nopRenderer) SetHandVisibility(Hand, bool) {}

func (nopRenderer) PointerOffset(string) Offset { return Offset{} }
