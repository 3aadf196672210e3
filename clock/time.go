package clock

import (
	"fmt"
	"strconv"
	"strings"
)

// TimeState is what the clock shows.
type TimeState struct {
	Hour   int  `json:"hour"`
	Minute int  `json:"minute"`
	Second int  `json:"second"`
	IsAM   bool `json:"is_am"`
}

func (t TimeState) Hour24() int {
	if t.IsAM {
		return t.Hour % 12
	}

	return t.Hour%12 + 12
}

// Format renders "H:MM" or "H:MM:SS". The hour is never padded.
func (t TimeState) Format(includeSeconds bool) string {
	s := fmt.Sprintf("%d:%02d", t.Hour, t.Minute)
	if includeSeconds {
		s += fmt.Sprintf(":%02d", t.Second)
	}

	return s
}

func (t TimeState) String() string {
	return t.Format(true)
}

// ParseTime reads "H", "H:MM" or "H:MM:SS". Fields are not range checked,
// the setters wrap them.
func ParseTime(str string) (hour, minute, second int, err error) {
	parts := strings.Split(strings.TrimSpace(str), ":")
	if len(parts) > 3 {
		return 0, 0, 0, fmt.Errorf("invalid time %q", str)
	}

	values := make([]int, 3)
	for i, part := range parts {
		values[i], err = strconv.Atoi(part)
		if err != nil {
			return 0, 0, 0, fmt.Errorf("invalid time %q: %w", str, err)
		}
	}

	return values[0], values[1], values[2], nil
}

func wrap(value, period int) int {
	value %= period
	if value < 0 {
		value += period
	}

	return value
}

// normalizeHour maps a 24-hour input onto the 12-hour dial without touching
// the meridiem: multiples of 24 are 0, anything above 12 drops by 12.
func normalizeHour(hour int) int {
	if hour%24 == 0 {
		return 0
	}

	hour = wrap(hour, 24)
	if hour > 12 {
		hour -= 12
	}

	return hour
}
