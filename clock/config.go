package clock

// Image replaces a vector hand with a bitmap. CX and CY locate the pivot
// inside the bitmap.
type Image struct {
	URL    string  `yaml:"url" json:"url"`
	Width  float64 `yaml:"width" json:"width"`
	Height float64 `yaml:"height" json:"height"`
	CX     float64 `yaml:"cx" json:"cx"`
	CY     float64 `yaml:"cy" json:"cy"`
}

type HandStyle struct {
	// Length is a percentage of the dial radius.
	Length        float64 `yaml:"length" json:"length"`
	Color         string  `yaml:"color" json:"color"`
	StrokeWidth   float64 `yaml:"stroke_width" json:"stroke_width"`
	StrokeOpacity float64 `yaml:"stroke_opacity" json:"stroke_opacity"`
	Image         Image   `yaml:"image" json:"image"`
}

type CenterStyle struct {
	Radius        float64 `yaml:"radius" json:"radius"`
	Color         string  `yaml:"color" json:"color"`
	StrokeWidth   float64 `yaml:"stroke_width" json:"stroke_width"`
	StrokeOpacity float64 `yaml:"stroke_opacity" json:"stroke_opacity"`
	Image         Image   `yaml:"image" json:"image"`
}

// Config is everything a clock is constructed with. Styling is only read by
// renderers; the clock itself reads Speed, the rotation flag, the seconds
// flag and the drag settings.
type Config struct {
	Size   int         `yaml:"size" json:"size"`
	Center CenterStyle `yaml:"center" json:"center"`
	Hour   HandStyle   `yaml:"hour" json:"hour"`
	Minute HandStyle   `yaml:"minute" json:"minute"`
	Second HandStyle   `yaml:"second" json:"second"`

	Speed                   Duration `yaml:"speed" json:"speed"`
	AllowMinuteFullRotation bool     `yaml:"allow_minute_full_rotation" json:"allow_minute_full_rotation"`
	ShowSeconds             bool     `yaml:"show_seconds" json:"show_seconds"`

	HourDraggable   bool `yaml:"hour_draggable" json:"hour_draggable"`
	MinuteDraggable bool `yaml:"minute_draggable" json:"minute_draggable"`
	HourDragSnap    int  `yaml:"hour_drag_snap" json:"hour_drag_snap"`
	MinuteDragSnap  int  `yaml:"minute_drag_snap" json:"minute_drag_snap"`
}

func DefaultConfig() Config {
	return Config{
		Size: 120,
		Center: CenterStyle{
			Radius:        3,
			Color:         "#000",
			StrokeWidth:   8,
			StrokeOpacity: 0.4,
		},
		Hour: HandStyle{
			Length:        50,
			Color:         "#ffff00",
			StrokeWidth:   10,
			StrokeOpacity: 0.7,
		},
		Minute: HandStyle{
			Length:        75,
			Color:         "#ff0000",
			StrokeWidth:   5,
			StrokeOpacity: 0.8,
		},
		Second: HandStyle{
			Length:        88,
			Color:         "#000000",
			StrokeWidth:   2,
			StrokeOpacity: 1,
		},
		Speed:          Milliseconds(500),
		ShowSeconds:    true,
		HourDragSnap:   DefaultHourDragSnap,
		MinuteDragSnap: DefaultMinuteDragSnap,
	}
}

// Normalized coerces settings the clock cannot work with to their defaults.
func (c Config) Normalized() Config {
	if c.Size <= 0 {
		c.Size = DefaultConfig().Size
	}

	if c.Speed < 0 {
		c.Speed = 0
	}

	c.HourDragSnap = NormalizeHourSnap(c.HourDragSnap)
	c.MinuteDragSnap = NormalizeMinuteSnap(c.MinuteDragSnap)

	return c
}

// Style returns the styling of a hand.
func (c Config) Style(hand Hand) HandStyle {
	switch hand {
	case HourHand:
		return c.Hour
	case MinuteHand:
		return c.Minute
	default:
		return c.Second
	}
}

// SecondsVisible reports whether the second hand is shown. Draggable clocks
// are pickers and never show it.
func (c Config) SecondsVisible() bool {
	return c.ShowSeconds && !c.HourDraggable && !c.MinuteDraggable
}

func (c Config) Draggable(hand Hand) bool {
	switch hand {
	case HourHand:
		return c.HourDraggable
	case MinuteHand:
		return c.MinuteDraggable
	default:
		return false
	}
}
