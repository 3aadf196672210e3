package clock

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Duration is an animation length. Written as a bare number it is
// milliseconds; strings such as "250ms" go through time.ParseDuration.
type Duration time.Duration

func Milliseconds(ms int) Duration {
	return Duration(time.Duration(ms) * time.Millisecond)
}

func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

func (d Duration) String() string {
	return time.Duration(d).String()
}

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: duration must be milliseconds or a duration string", value.Line)
	}

	parsed, err := parseDuration(value.Value)
	if err != nil {
		return fmt.Errorf("line %d: %w", value.Line, err)
	}

	*d = parsed
	return nil
}

// MarshalJSON writes milliseconds, the unit the page animates with.
func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).Milliseconds())
}

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(value * float64(time.Millisecond))
		return nil
	case string:
		parsed, err := parseDuration(value)
		if err != nil {
			return err
		}

		*d = parsed
		return nil
	default:
		return errors.New("invalid duration")
	}
}

func parseDuration(str string) (Duration, error) {
	if ms, err := strconv.ParseFloat(str, 64); err == nil {
		return Duration(ms * float64(time.Millisecond)), nil
	}

	parsed, err := time.ParseDuration(str)
	if err != nil {
		return 0, fmt.Errorf("invalid duration %q", str)
	}

	return Duration(parsed), nil
}
