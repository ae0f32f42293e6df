package editor

import (
	"fmt"

	"github.com/dshills/pixelstorm/internal/input/pointer"
	"github.com/dshills/pixelstorm/internal/picture"
	"github.com/dshills/pixelstorm/internal/renderer"
	"github.com/dshills/pixelstorm/internal/renderer/backend"
	"github.com/dshills/pixelstorm/internal/state"
	"github.com/dshills/pixelstorm/internal/tool"
)

// Defaults for a new editor.
const (
	DefaultWidth      = 60
	DefaultHeight     = 30
	DefaultBackground = picture.Color("#f0f0f0")
	DefaultColor      = picture.Color("#000000")
	DefaultTool       = tool.NameDraw
	DefaultCellSize   = 10
)

// DefaultState returns the initial state of a fresh editor.
func DefaultState() state.State {
	pic, _ := picture.Empty(DefaultWidth, DefaultHeight, DefaultBackground)
	return state.State{
		Tool:    DefaultTool,
		Color:   DefaultColor,
		Picture: pic,
	}
}

// Control is a UI element that mirrors the state.
type Control interface {
	SyncState(st state.State)
}

// ControlFactory builds a control from the initial state.
type ControlFactory func(st state.State, dispatch state.Dispatch, tools *tool.Registry) Control

// Logger is the logging used by the editor.
type Logger interface {
	Debug(msg string, args ...any)
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...any) {}

// Config configures an Editor.
type Config struct {
	// State is the initial state.
	State state.State

	// Tools holds the selectable tools. Defaults to tool.DefaultRegistry.
	Tools *tool.Registry

	// Controls build the controls shown beside the canvas.
	Controls []ControlFactory

	// Surface is where the canvas draws.
	Surface backend.Surface

	// CellSize is the size of one picture cell in surface pixels.
	CellSize int

	// Logger receives debug messages. Optional.
	Logger Logger
}

// Editor holds the state and routes actions and pointer events.
type Editor struct {
	state    state.State
	tools    *tool.Registry
	canvas   *renderer.Canvas
	controls []Control
	pointer  *pointer.Controller
	logger   Logger

	dispatching bool
	pending     state.Action
}

// New creates an editor and renders the initial state.
func New(cfg Config) (*Editor, error) {
	if cfg.Surface == nil {
		return nil, ErrNoSurface
	}
	if cfg.State.Picture == nil {
		return nil, fmt.Errorf("%w: no picture", ErrInvalidState)
	}
	if cfg.Tools == nil {
		cfg.Tools = tool.DefaultRegistry()
	}
	if _, err := cfg.Tools.Lookup(cfg.State.Tool); err != nil {
		return nil, err
	}
	if cfg.CellSize <= 0 {
		cfg.CellSize = DefaultCellSize
	}
	if cfg.Logger == nil {
		cfg.Logger = nopLogger{}
	}

	e := &Editor{
		state:  cfg.State,
		tools:  cfg.Tools,
		canvas: renderer.NewCanvas(cfg.Surface, cfg.CellSize),
		logger: cfg.Logger,
	}
	e.pointer = pointer.NewController(e.canvas, pointer.StarterFunc(e.startTool))
	e.canvas.SyncState(e.state.Picture)

	for _, factory := range cfg.Controls {
		e.controls = append(e.controls, factory(e.state, e.Dispatch, e.tools))
	}

	return e, nil
}

// State returns the current state.
func (e *Editor) State() state.State {
	return e.state
}

// Tools returns the tool registry.
func (e *Editor) Tools() *tool.Registry {
	return e.tools
}

// Canvas returns the canvas view.
func (e *Editor) Canvas() *renderer.Canvas {
	return e.canvas
}

// Controls returns the controls in construction order.
func (e *Editor) Controls() []Control {
	return e.controls
}

// Pointer returns the gesture controller.
func (e *Editor) Pointer() *pointer.Controller {
	return e.pointer
}

// SetOrigin places the canvas on the host surface.
func (e *Editor) SetOrigin(origin pointer.Origin) {
	e.pointer.SetOrigin(origin)
}

// Dispatch merges a into the state and syncs the canvas and controls.
//
// An action naming an unregistered tool is rejected with ErrUnknownTool and
// leaves the state as it was. Dispatches made while a sync is in progress
// are merged, later fields winning, and applied as one action once that
// sync finishes.
func (e *Editor) Dispatch(a state.Action) error {
	if a.Tool != nil {
		if _, err := e.tools.Lookup(*a.Tool); err != nil {
			return err
		}
	}

	if e.dispatching {
		e.pending = e.pending.Merge(a)
		return nil
	}

	e.dispatching = true
	defer func() { e.dispatching = false }()

	e.apply(a)
	for !e.pending.IsEmpty() {
		next := e.pending
		e.pending = state.Action{}
		e.apply(next)
	}
	return nil
}

// apply replaces the state and pushes it to the views.
func (e *Editor) apply(a state.Action) {
	e.state = state.Apply(e.state, a)
	e.canvas.SyncState(e.state.Picture)
	for _, c := range e.controls {
		c.SyncState(e.state)
	}
}

// PointerDown feeds a button press to the gesture controller. Errors from
// the tool are returned and end the gesture.
func (e *Editor) PointerDown(ev pointer.DownEvent) error {
	return e.pointer.Down(ev)
}

// PointerMove feeds pointer movement to the gesture controller.
func (e *Editor) PointerMove(ev pointer.MoveEvent) error {
	return e.pointer.Move(ev)
}

// PointerUp ends the drag in progress.
func (e *Editor) PointerUp() {
	e.pointer.Up()
}

// startTool runs the selected tool for a press on cell. The continuation
// handed back to the controller reads the state afresh on every step.
func (e *Editor) startTool(cell picture.Point) (pointer.Continuation, error) {
	name := e.state.Tool
	t, err := e.tools.Lookup(name)
	if err != nil {
		return nil, err
	}

	e.logger.Debug("tool %s started at (%d, %d)", name, cell.X, cell.Y)
	cont, err := t.Start(cell, e.state, e.Dispatch)
	if err != nil || cont == nil {
		return nil, err
	}

	return func(cell picture.Point) error {
		return cont(cell, e.state)
	}, nil
}
