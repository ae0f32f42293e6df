package pointer

import (
	"math"

	"github.com/google/uuid"

	"github.com/dshills/pixelstorm/internal/picture"
)

// Continuation receives each new cell visited during a drag.
type Continuation func(cell picture.Point) error

// Starter begins a gesture at the pressed cell. Returning a nil
// continuation means the gesture has no drag phase.
type Starter interface {
	Start(cell picture.Point) (Continuation, error)
}

// StarterFunc adapts a function to the Starter interface.
type StarterFunc func(cell picture.Point) (Continuation, error)

// Start calls f(cell).
func (f StarterFunc) Start(cell picture.Point) (Continuation, error) {
	return f(cell)
}

// Geometry describes the grid under the pointer.
type Geometry interface {
	// CellSize returns the size of one cell in surface pixels.
	CellSize() int
	// Bounds returns the grid width and height in cells.
	Bounds() (width, height int)
}

// State is the controller state.
type State uint8

const (
	// StateIdle means no gesture is in progress.
	StateIdle State = iota
	// StateDragging means moves are being forwarded to a continuation.
	StateDragging
)

// String returns a string representation of the state.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateDragging:
		return "dragging"
	default:
		return "unknown"
	}
}

// Session describes the drag in progress.
type Session struct {
	// ID identifies the gesture in logs.
	ID uuid.UUID

	// Start is the cell where the gesture began.
	Start picture.Point

	// Last is the last cell reported to the continuation.
	Last picture.Point

	// Steps is the number of continuation calls so far.
	Steps int
}

// Controller maps pointer events on a surface to gesture calls.
// It is not safe for concurrent use; drive it from the event loop.
type Controller struct {
	geometry Geometry
	origin   Origin
	starter  Starter

	state   State
	session Session
	cont    Continuation
}

// NewController creates an idle controller.
func NewController(geometry Geometry, starter Starter) *Controller {
	return &Controller{
		geometry: geometry,
		starter:  starter,
	}
}

// SetOrigin sets where the surface sits in event coordinates.
func (c *Controller) SetOrigin(origin Origin) {
	c.origin = origin
}

// State returns the current state.
func (c *Controller) State() State {
	return c.state
}

// Session returns the drag in progress, if any.
func (c *Controller) Session() (Session, bool) {
	if c.state != StateDragging {
		return Session{}, false
	}
	return c.session, true
}

// CellAt maps event coordinates to a grid cell. The result may be outside
// the grid.
func (c *Controller) CellAt(x, y float64) picture.Point {
	size := float64(c.geometry.CellSize())
	return picture.Point{
		X: int(math.Floor((x - c.origin.Left) / size)),
		Y: int(math.Floor((y - c.origin.Top) / size)),
	}
}

// inGrid returns true if cell is inside the grid.
func (c *Controller) inGrid(cell picture.Point) bool {
	w, h := c.geometry.Bounds()
	return cell.X >= 0 && cell.X < w && cell.Y >= 0 && cell.Y < h
}

// Down handles a button press. Only the primary button starts a gesture.
// A press while dragging abandons the old drag first.
func (c *Controller) Down(ev DownEvent) error {
	if ev.Button != ButtonPrimary {
		return nil
	}
	c.end()

	cell := c.CellAt(ev.X, ev.Y)
	if !c.inGrid(cell) {
		return nil
	}

	cont, err := c.starter.Start(cell)
	if err != nil {
		return err
	}
	if cont == nil {
		return nil
	}

	c.state = StateDragging
	c.cont = cont
	c.session = Session{
		ID:    uuid.New(),
		Start: cell,
		Last:  cell,
	}
	return nil
}

// Move handles pointer movement. It is a no-op while idle.
func (c *Controller) Move(ev MoveEvent) error {
	if c.state != StateDragging {
		return nil
	}
	if ev.Buttons.Empty() {
		c.end()
		return nil
	}

	cell := c.CellAt(ev.X, ev.Y)
	if cell.Equal(c.session.Last) || !c.inGrid(cell) {
		return nil
	}

	c.session.Last = cell
	c.session.Steps++
	if err := c.cont(cell); err != nil {
		c.end()
		return err
	}
	return nil
}

// Up ends the drag in progress, as a move with no buttons would.
func (c *Controller) Up() {
	c.end()
}

// end returns the controller to idle.
func (c *Controller) end() {
	c.state = StateIdle
	c.cont = nil
	c.session = Session{}
}
