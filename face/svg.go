package face

import (
	"bytes"
	"fmt"
	"html"
	"io"
	"strconv"

	"github.com/michaelgov-ctrl/svg-clock/clock"
)

// WriteSVG writes the face as a standalone <svg> element. Every hand is a
// group with id "<id>-<hand>" rotated about the centre so a page script can
// keep turning it.
func (f *Face) WriteSVG(w io.Writer, id string) error {
	var buf bytes.Buffer

	size := f.cfg.Size
	fmt.Fprintf(&buf, `<svg id="%s" class="clock" width="%d" height="%d" viewBox="0 0 %d %d" xmlns="http://www.w3.org/2000/svg" xmlns:xlink="http://www.w3.org/1999/xlink">`+"\n",
		html.EscapeString(id), size, size, size, size)

	for _, hand := range clock.Hands {
		f.writeHand(&buf, id, hand, hand != clock.SecondHand)
	}

	f.writeCenter(&buf, id)

	// the second hand's bitmap sits above the centre cap
	if f.cfg.Second.Image.URL != "" {
		f.writeHand(&buf, id, clock.SecondHand, true)
	}

	buf.WriteString("</svg>\n")

	_, err := buf.WriteTo(w)
	return err
}

// SVG returns the markup WriteSVG would write.
func (f *Face) SVG(id string) string {
	var buf bytes.Buffer
	_ = f.WriteSVG(&buf, id)
	return buf.String()
}

func (f *Face) writeHand(buf *bytes.Buffer, id string, hand clock.Hand, withImage bool) {
	style := f.cfg.Style(hand)
	hasImage := style.Image.URL != ""
	if hasImage && !withImage {
		// drawn later, on top of everything
		return
	}

	c := num(f.center())
	state := f.hands[hand]

	opacity := "1"
	if !state.visible {
		opacity = "0"
	}

	fmt.Fprintf(buf, `  <g id="%s-%s" class="hand hand-%s" data-hand="%s" data-draggable="%t" transform="rotate(%s %s %s)" opacity="%s">`+"\n",
		html.EscapeString(id), hand, hand, hand, f.cfg.Draggable(hand), num(state.angle), c, c, opacity)

	if hasImage {
		writeImage(buf, style.Image, f.center())
	} else {
		fmt.Fprintf(buf, `    <line x1="%s" y1="%s" x2="%s" y2="%s" stroke="%s" stroke-width="%s" stroke-opacity="%s"/>`+"\n",
			c, c, c, num(f.center()-f.handLength(hand)),
			html.EscapeString(style.Color), num(style.StrokeWidth), num(style.StrokeOpacity))
	}

	buf.WriteString("  </g>\n")
}

func (f *Face) writeCenter(buf *bytes.Buffer, id string) {
	center := f.cfg.Center
	c := num(f.center())

	fmt.Fprintf(buf, `  <circle id="%s-center" class="center" cx="%s" cy="%s" r="%s" fill="%s" stroke="#000" stroke-width="%s" stroke-opacity="%s"/>`+"\n",
		html.EscapeString(id), c, c, num(center.Radius), html.EscapeString(center.Color), num(center.StrokeWidth), num(center.StrokeOpacity))

	if center.Image.URL != "" {
		writeImage(buf, center.Image, f.center())
	}
}

// writeImage places a bitmap so that its pivot (CX, CY) lands on the centre.
func writeImage(buf *bytes.Buffer, img clock.Image, center float64) {
	fmt.Fprintf(buf, `    <image href="%s" x="%s" y="%s" width="%s" height="%s"/>`+"\n",
		html.EscapeString(img.URL), num(center-img.CX), num(center-img.CY), num(img.Width), num(img.Height))
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
