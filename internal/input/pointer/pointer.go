package pointer

// Button identifies the button that was pressed in a down event.
type Button uint8

const (
	// ButtonPrimary is the primary (usually left) button.
	ButtonPrimary Button = iota
	// ButtonSecondary is the secondary (usually right) button.
	ButtonSecondary
	// ButtonMiddle is the middle button (scroll wheel click).
	ButtonMiddle
)

// String returns a string representation of the button.
func (b Button) String() string {
	switch b {
	case ButtonPrimary:
		return "primary"
	case ButtonSecondary:
		return "secondary"
	case ButtonMiddle:
		return "middle"
	default:
		return "unknown"
	}
}

// ButtonMask is the set of buttons held during a move.
type ButtonMask uint8

const (
	MaskPrimary ButtonMask = 1 << iota
	MaskSecondary
	MaskMiddle
)

// MaskNone is the empty mask.
const MaskNone ButtonMask = 0

// Has returns true if b is held.
func (m ButtonMask) Has(b Button) bool {
	return m&(1<<b) != 0
}

// Empty returns true if no buttons are held.
func (m ButtonMask) Empty() bool {
	return m == MaskNone
}

// Origin is the top-left corner of the surface in event coordinates.
type Origin struct {
	Left float64
	Top  float64
}

// DownEvent is a button press.
type DownEvent struct {
	X, Y   float64
	Button Button
}

// MoveEvent is a pointer movement with the buttons currently held.
type MoveEvent struct {
	X, Y    float64
	Buttons ButtonMask
}
