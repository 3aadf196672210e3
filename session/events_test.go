package session_test

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/michaelgov-ctrl/svg-clock/clock"
	"github.com/michaelgov-ctrl/svg-clock/session"
)

func TestDecodeDragEvent(t *testing.T) {
	t.Run("full sample", func(t *testing.T) {
		var got session.DragEvent
		err := json.Unmarshal([]byte(`{"hand":"minute","dx":4,"dy":2,"x":190,"y":128,"offset":{"left":10,"top":20}}`), &got)
		if err != nil {
			t.Fatal(err)
		}

		want := session.DragEvent{
			Hand:         clock.MinuteHand,
			PointerEvent: clock.PointerEvent{DX: 4, DY: 2, X: 190, Y: 128},
			Offset:       &clock.Offset{Left: 10, Top: 20},
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("decoded drag mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("hour hand named", func(t *testing.T) {
		var got session.DragEvent
		if err := json.Unmarshal([]byte(`{"hand":"hour","x":1,"y":2}`), &got); err != nil {
			t.Fatal(err)
		}
		if got.Hand != clock.HourHand {
			t.Errorf("hand = %v, want %v", got.Hand, clock.HourHand)
		}
	})

	for _, payload := range []string{`{"x":1,"y":2}`, `{"hand":null,"x":1}`} {
		t.Run("missing hand "+payload, func(t *testing.T) {
			var got session.DragEvent
			err := json.Unmarshal([]byte(payload), &got)
			if !errors.Is(err, clock.ErrUnknownHand) {
				t.Errorf("err = %v, want %v", err, clock.ErrUnknownHand)
			}
		})
	}
}
