package pager

import "math"

// Input is a navigation intent after raw events have been classified
type Input int

const (
	InputNone Input = iota
	InputNext
	InputPrev
	InputFirst
	InputLast
)

func (i Input) String() string {
	switch i {
	case InputNext:
		return "next"
	case InputPrev:
		return "prev"
	case InputFirst:
		return "first"
	case InputLast:
		return "last"
	default:
		return "none"
	}
}

// direction is +1 for forward inputs and -1 for backward ones
func (i Input) direction() int {
	switch i {
	case InputNext:
		return 1
	case InputPrev:
		return -1
	default:
		return 0
	}
}

// Event is a raw host input
type Event interface {
	Classify(cfg Config) Input
}

// Wheel is a mouse wheel or trackpad scroll
type Wheel struct {
	DeltaY float64
}

// Classify ignores scrolls whose magnitude does not exceed the wheel threshold.
func (w Wheel) Classify(cfg Config) Input {
	if math.Abs(w.DeltaY) <= cfg.WheelThreshold {
		return InputNone
	}
	if w.DeltaY > 0 {
		return InputNext
	}
	return InputPrev
}

// Key is a key press identified by its DOM key name
type Key struct {
	Name string
}

// Classify maps arrow, page and home/end keys; everything else is ignored.
func (k Key) Classify(Config) Input {
	switch k.Name {
	case "ArrowDown", "PageDown":
		return InputNext
	case "ArrowUp", "PageUp":
		return InputPrev
	case "Home":
		return InputFirst
	case "End":
		return InputLast
	default:
		return InputNone
	}
}

// Swipe is a completed touch gesture, from touch start to touch end
type Swipe struct {
	StartY float64
	EndY   float64
}

// Classify treats an upward finger movement as moving forward.
func (s Swipe) Classify(cfg Config) Input {
	delta := s.StartY - s.EndY
	if math.Abs(delta) <= cfg.SwipeThreshold {
		return InputNone
	}
	if delta > 0 {
		return InputNext
	}
	return InputPrev
}
