// Package backend provides the raster surfaces and host event sources the
// editor renders to.
package backend

import "github.com/dshills/pixelstorm/internal/picture"

// Surface is a mutable raster target measured in surface pixels.
// The renderer is its only writer.
type Surface interface {
	// Resize sets the surface dimensions. Existing content is discarded.
	Resize(width, height int)

	// FillRect paints a filled rectangle with the given color.
	// Pixels outside the surface are silently ignored.
	FillRect(x, y, width, height int, color picture.Color)
}

// EventType identifies the type of host event.
type EventType int

const (
	EventNone EventType = iota
	EventKey
	EventMouse
	EventResize
	EventQuit
)

// Key represents a keyboard key.
type Key int

// Key constants for the keys the editor reacts to.
const (
	KeyNone Key = iota
	KeyRune     // Regular character (use Rune field)
	KeyEscape
	KeyEnter
	KeyTab
	KeyCtrlC
)

// ButtonMask is the set of mouse buttons held during an event.
type ButtonMask uint8

const (
	ButtonPrimary ButtonMask = 1 << iota
	ButtonSecondary
	ButtonMiddle
)

// ButtonsNone is the empty mask.
const ButtonsNone ButtonMask = 0

// Has returns true if the mask contains the given button.
func (m ButtonMask) Has(b ButtonMask) bool {
	return m&b != 0
}

// Event represents a host event.
type Event struct {
	Type EventType

	// Key event fields
	Key  Key
	Rune rune

	// Mouse event fields. Coordinates are in surface pixels relative to
	// the host's origin; Buttons is the mask held at the time of the event.
	MouseX, MouseY int
	Buttons        ButtonMask

	// Pressed holds the buttons the host saw go down with this event.
	// Hosts that only report held buttons, like terminals, leave it empty.
	Pressed ButtonMask

	// Resize event fields
	Width, Height int
}

// Backend is an interactive host: a surface plus an event source and a
// single text row for controls.
type Backend interface {
	Surface

	// Init initializes the backend for use.
	// Must be called before any other methods.
	Init() error

	// Shutdown releases backend resources.
	Shutdown()

	// Size returns the host dimensions in surface pixels.
	Size() (width, height int)

	// DrawText writes text starting at (x, y). Text is clipped to maxWidth
	// pixels; the rest of the span is cleared.
	DrawText(x, y int, text string, maxWidth int)

	// LineHeight returns the height of one text row in surface pixels.
	LineHeight() int

	// Show flushes pending drawing to the display.
	Show()

	// PollEvent waits for and returns the next host event.
	PollEvent() Event

	// PostEvent posts a synthetic event to the event queue.
	PostEvent(event Event)
}

// Fill is one recorded FillRect call.
type Fill struct {
	X, Y, Width, Height int
	Color               picture.Color
}

// NullBackend is an in-memory backend for testing. It records every fill
// and keeps a pixel buffer so tests can inspect the result.
type NullBackend struct {
	width, height int
	pixels        []picture.Color
	fills         []Fill
	resizes       int
	text          map[int]string
	events        chan Event
	hostW, hostH  int
}

// NewNullBackend creates a null backend reporting the given host size.
func NewNullBackend(hostWidth, hostHeight int) *NullBackend {
	return &NullBackend{
		hostW:  hostWidth,
		hostH:  hostHeight,
		text:   make(map[int]string),
		events: make(chan Event, 100),
	}
}

func (b *NullBackend) Init() error     { return nil }
func (b *NullBackend) Shutdown()       {}
func (b *NullBackend) Show()           {}
func (b *NullBackend) LineHeight() int { return 1 }

func (b *NullBackend) Size() (int, int) {
	return b.hostW, b.hostH
}

func (b *NullBackend) Resize(width, height int) {
	b.width = width
	b.height = height
	b.pixels = make([]picture.Color, width*height)
	b.resizes++
}

func (b *NullBackend) FillRect(x, y, width, height int, color picture.Color) {
	b.fills = append(b.fills, Fill{X: x, Y: y, Width: width, Height: height, Color: color})
	for py := y; py < y+height && py < b.height; py++ {
		for px := x; px < x+width && px < b.width; px++ {
			if px >= 0 && py >= 0 {
				b.pixels[px+py*b.width] = color
			}
		}
	}
}

func (b *NullBackend) DrawText(_, y int, text string, _ int) {
	b.text[y] = text
}

func (b *NullBackend) PollEvent() Event {
	return <-b.events
}

func (b *NullBackend) PostEvent(event Event) {
	select {
	case b.events <- event:
	default:
		// Event dropped if queue is full (non-blocking for testing)
	}
}

// SurfaceSize returns the dimensions set by the last Resize.
func (b *NullBackend) SurfaceSize() (int, int) {
	return b.width, b.height
}

// PixelAt returns the color painted at (x, y), or "" if unpainted.
func (b *NullBackend) PixelAt(x, y int) picture.Color {
	if x < 0 || x >= b.width || y < 0 || y >= b.height {
		return ""
	}
	return b.pixels[x+y*b.width]
}

// Fills returns the recorded FillRect calls.
func (b *NullBackend) Fills() []Fill {
	return b.fills
}

// FillCount returns the number of FillRect calls.
func (b *NullBackend) FillCount() int {
	return len(b.fills)
}

// ResizeCount returns the number of Resize calls.
func (b *NullBackend) ResizeCount() int {
	return b.resizes
}

// ResetFills clears the recorded fills without touching the pixels.
func (b *NullBackend) ResetFills() {
	b.fills = b.fills[:0]
}

// TextAt returns the last text drawn on row y.
func (b *NullBackend) TextAt(y int) string {
	return b.text[y]
}
