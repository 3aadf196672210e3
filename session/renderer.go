package session

import (
	"github.com/michaelgov-ctrl/svg-clock/clock"
	"github.com/michaelgov-ctrl/svg-clock/face"
)

// wsRenderer mirrors every hand change into a server side face and forwards
// it to the page.
type wsRenderer struct {
	*face.Face
	client *Client
}

func newWSRenderer(cfg clock.Config, c *Client) *wsRenderer {
	return &wsRenderer{
		Face:   face.New(cfg),
		client: c,
	}
}

func (r *wsRenderer) RenderHand(hand clock.Hand, angle float64, anim clock.Animation) {
	r.Face.RenderHand(hand, angle, anim)

	r.client.send(EventRenderHand, RenderHandEvent{
		Hand:       hand,
		Angle:      angle,
		Animate:    anim.Animate,
		DurationMS: anim.Duration.Milliseconds(),
		Easing:     anim.Easing.CSS(),
	})
}

func (r *wsRenderer) SetHandVisibility(hand clock.Hand, visible bool) {
	r.Face.SetHandVisibility(hand, visible)

	r.client.send(EventHandVisibility, HandVisibilityEvent{
		Hand:    hand,
		Visible: visible,
	})
}
