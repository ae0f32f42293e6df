// Package app wires the pixel editor to a host backend and runs its event
// loop.
package app

import (
	"errors"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/dshills/pixelstorm/internal/config"
	"github.com/dshills/pixelstorm/internal/control"
	"github.com/dshills/pixelstorm/internal/editor"
	"github.com/dshills/pixelstorm/internal/picture"
	"github.com/dshills/pixelstorm/internal/renderer/backend"
	"github.com/dshills/pixelstorm/internal/state"
	"github.com/dshills/pixelstorm/internal/tool"
	"github.com/dshills/pixelstorm/internal/tool/script"
)

// barSeparator joins control labels on the control bar.
const barSeparator = "  │  "

// Application runs an editor on a backend.
type Application struct {
	mu sync.Mutex

	cfg      *config.Config
	logger   *Logger
	gestures *Logger
	tools    *tool.Registry
	scripts  []*script.Script

	backend backend.Backend
	editor  *editor.Editor

	// lastButtons is the mouse mask of the previous mouse event.
	lastButtons backend.ButtonMask

	running atomic.Bool
	opts    Options
}

// Options configures the application.
type Options struct {
	// Config is the validated startup configuration. Defaults to
	// config.Default().
	Config *config.Config

	// DefaultCellSize is used when the configuration leaves the cell size
	// to the host.
	DefaultCellSize int

	// Logger receives application logs. Defaults to NullLogger.
	Logger *Logger
}

// New creates an Application and loads its tools.
func New(opts Options) (*Application, error) {
	if opts.Config == nil {
		opts.Config = config.Default()
	}
	if opts.Logger == nil {
		opts.Logger = NullLogger
	}
	if opts.DefaultCellSize <= 0 {
		opts.DefaultCellSize = 1
	}

	app := &Application{
		cfg:      opts.Config,
		logger:   opts.Logger,
		gestures: opts.Logger.WithComponent("gesture"),
		opts:     opts,
	}

	tools, scripts, err := BuildTools(opts.Config, opts.Logger.WithComponent("script"))
	if err != nil {
		return nil, &InitError{Component: "tools", Err: err}
	}
	app.tools = tools
	app.scripts = scripts

	return app, nil
}

// SetBackend sets the host backend.
// Must be called before Run().
func (app *Application) SetBackend(b backend.Backend) error {
	app.mu.Lock()
	defer app.mu.Unlock()

	if app.running.Load() {
		return ErrAlreadyRunning
	}

	app.backend = b
	return nil
}

// Run initializes the backend, builds the editor and processes host events
// until the user quits. A normal exit returns ErrQuit.
func (app *Application) Run() error {
	if !app.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer app.running.Store(false)
	defer app.closeScripts()

	app.mu.Lock()
	b := app.backend
	app.mu.Unlock()
	if b == nil {
		return ErrNoBackend
	}

	if err := b.Init(); err != nil {
		return &InitError{Component: "backend", Err: err}
	}
	defer b.Shutdown()

	ed, err := app.newEditor(b)
	if err != nil {
		return &InitError{Component: "editor", Err: err}
	}
	app.editor = ed

	w, h := ed.State().Picture.Size()
	app.logger.Info("editor started: %dx%d canvas, tool %s", w, h, ed.State().Tool)

	app.drawBar()
	b.Show()

	return app.eventLoop()
}

// newEditor creates the editor drawing to b.
func (app *Application) newEditor(b backend.Backend) (*editor.Editor, error) {
	canvas := app.cfg.Canvas
	pic, err := picture.Empty(canvas.Width, canvas.Height, canvas.Background)
	if err != nil {
		return nil, err
	}

	cellSize := canvas.CellSize
	if cellSize <= 0 {
		cellSize = app.opts.DefaultCellSize
	}

	return editor.New(editor.Config{
		State: state.State{
			Tool:    app.cfg.Editor.Tool,
			Color:   app.cfg.Editor.Color,
			Picture: pic,
		},
		Tools:    app.tools,
		Controls: control.Defaults(app.cfg.PaletteOrDefault()),
		Surface:  b,
		CellSize: cellSize,
		Logger:   app.logger.WithComponent("editor"),
	})
}

// Shutdown asks a running event loop to stop. Safe to call from any
// goroutine.
func (app *Application) Shutdown() {
	if !app.running.Load() {
		return
	}

	app.mu.Lock()
	b := app.backend
	app.mu.Unlock()
	if b != nil {
		b.PostEvent(backend.Event{Type: backend.EventQuit})
	}
}

// IsRunning returns true if the application is running.
func (app *Application) IsRunning() bool {
	return app.running.Load()
}

// Editor returns the editor, or nil before Run.
func (app *Application) Editor() *editor.Editor {
	return app.editor
}

// Tools returns the tool registry.
func (app *Application) Tools() *tool.Registry {
	return app.tools
}

// drawBar renders the control labels on the row below the canvas.
func (app *Application) drawBar() {
	if app.editor == nil {
		return
	}
	_, y := app.editor.Canvas().PixelSize()
	width, _ := app.backend.Size()
	labels := control.Labels(app.editor.Controls())
	app.backend.DrawText(0, y, strings.Join(labels, barSeparator), width)
}

// closeScripts releases the Lua states of scripted tools.
func (app *Application) closeScripts() {
	for _, s := range app.scripts {
		if err := s.Close(); err != nil {
			app.logger.Warn("closing script %s: %v", s.Name(), err)
		}
	}
}

// isQuit reports whether err asks the loop to stop.
func isQuit(err error) bool {
	return errors.Is(err, ErrQuit)
}
