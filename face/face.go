// Package face draws a clock.Clock. A Face is the clock's Renderer: it keeps
// the last rotation, animation and visibility of every hand and turns them
// into SVG markup or a raster image.
package face

import (
	"github.com/michaelgov-ctrl/svg-clock/clock"
)

type handState struct {
	angle   float64
	visible bool
	anim    clock.Animation
}

type Face struct {
	cfg    clock.Config
	offset clock.Offset
	hands  [3]handState
}

func New(cfg clock.Config) *Face {
	f := &Face{cfg: cfg.Normalized()}
	for i := range f.hands {
		f.hands[i].visible = true
	}

	return f
}

func (f *Face) Config() clock.Config {
	return f.cfg
}

func (f *Face) RenderHand(hand clock.Hand, angle float64, anim clock.Animation) {
	if !hand.Valid() {
		return
	}

	f.hands[hand].angle = angle
	f.hands[hand].anim = anim
}

func (f *Face) SetHandVisibility(hand clock.Hand, visible bool) {
	if !hand.Valid() {
		return
	}

	f.hands[hand].visible = visible
}

// PointerOffset returns the last offset given to SetOffset. A Face only ever
// draws one container, so the id is not consulted.
func (f *Face) PointerOffset(string) clock.Offset {
	return f.offset
}

func (f *Face) SetOffset(offset clock.Offset) {
	f.offset = offset
}

func (f *Face) Angle(hand clock.Hand) float64 {
	if !hand.Valid() {
		return 0
	}

	return f.hands[hand].angle
}

func (f *Face) Visible(hand clock.Hand) bool {
	return hand.Valid() && f.hands[hand].visible
}

// Animation is how the last rotation of hand was requested.
func (f *Face) Animation(hand clock.Hand) clock.Animation {
	if !hand.Valid() {
		return clock.Animation{}
	}

	return f.hands[hand].anim
}

func (f *Face) center() float64 {
	return float64(f.cfg.Size) / 2
}

// handLength is the hand's length in pixels.
func (f *Face) handLength(hand clock.Hand) float64 {
	return f.center() * f.cfg.Style(hand).Length / 100
}
