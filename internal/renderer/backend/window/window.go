// Package window provides a raylib desktop window backend.
//
// The canvas lives in a RenderTexture2D that persists between frames, so
// only the cells the renderer repaints are touched; each frame blits the
// texture and the control text to the screen. raylib requires every call to
// happen on the thread that created the window, so PollEvent drives the
// frame loop and must be called from that thread.
package window

import (
	"sync"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/dshills/pixelstorm/internal/palette"
	"github.com/dshills/pixelstorm/internal/picture"
	"github.com/dshills/pixelstorm/internal/renderer/backend"
)

const (
	fontSize   = 10
	lineHeight = 16
	// textRows is the space reserved below the canvas for controls.
	textRows = 4
)

var background = rl.Color{R: 40, G: 40, B: 40, A: 255}

// Window implements backend.Backend with a raylib window.
type Window struct {
	title         string
	width, height int

	texture    rl.RenderTexture2D
	hasTexture bool
	surfaceW   int
	surfaceH   int

	text   map[int]string
	colors map[picture.Color]rl.Color

	lastX, lastY int
	lastButtons  backend.ButtonMask

	mu      sync.Mutex
	pending []backend.Event
}

// New creates a window backend with the given initial size.
func New(title string, width, height int) *Window {
	return &Window{
		title:  title,
		width:  width,
		height: height,
		text:   make(map[int]string),
		colors: make(map[picture.Color]rl.Color),
		lastX:  -1,
		lastY:  -1,
	}
}

func (w *Window) Init() error {
	rl.InitWindow(int32(w.width), int32(w.height), w.title)
	rl.SetTargetFPS(60)
	rl.SetExitKey(0)
	return nil
}

func (w *Window) Shutdown() {
	if w.hasTexture {
		rl.UnloadRenderTexture(w.texture)
		w.hasTexture = false
	}
	rl.CloseWindow()
}

func (w *Window) Size() (int, int) {
	return int(rl.GetScreenWidth()), int(rl.GetScreenHeight())
}

func (w *Window) LineHeight() int { return lineHeight }

// Resize replaces the canvas texture and grows the window to fit it.
func (w *Window) Resize(width, height int) {
	if w.hasTexture {
		rl.UnloadRenderTexture(w.texture)
	}
	w.texture = rl.LoadRenderTexture(int32(width), int32(height))
	w.hasTexture = true
	w.surfaceW = width
	w.surfaceH = height

	rl.BeginTextureMode(w.texture)
	rl.ClearBackground(rl.Color{R: 0, G: 0, B: 0, A: 0})
	rl.EndTextureMode()

	rl.SetWindowSize(max(width, w.width), height+textRows*lineHeight)
}

func (w *Window) FillRect(x, y, width, height int, color picture.Color) {
	if !w.hasTexture {
		return
	}
	rl.BeginTextureMode(w.texture)
	rl.DrawRectangle(int32(x), int32(y), int32(width), int32(height), w.resolve(color))
	rl.EndTextureMode()
}

func (w *Window) DrawText(_, y int, text string, _ int) {
	w.text[y] = text
}

// Show is a no-op; frames are presented by PollEvent.
func (w *Window) Show() {}

// PollEvent renders frames until an input event is available.
func (w *Window) PollEvent() backend.Event {
	for {
		if ev, ok := w.popPending(); ok {
			return ev
		}

		w.frame()

		if rl.WindowShouldClose() {
			return backend.Event{Type: backend.EventQuit}
		}
		w.collectInput()
	}
}

// PostEvent queues a synthetic event. Safe to call from any goroutine.
func (w *Window) PostEvent(event backend.Event) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.pending = append(w.pending, event)
}

func (w *Window) popPending() (backend.Event, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if len(w.pending) == 0 {
		return backend.Event{}, false
	}
	ev := w.pending[0]
	w.pending = w.pending[1:]
	return ev, true
}

// frame presents the canvas texture and control text.
func (w *Window) frame() {
	rl.BeginDrawing()
	rl.ClearBackground(background)

	if w.hasTexture {
		// Render textures are stored upside down.
		src := rl.Rectangle{X: 0, Y: 0, Width: float32(w.surfaceW), Height: -float32(w.surfaceH)}
		rl.DrawTextureRec(w.texture.Texture, src, rl.Vector2{X: 0, Y: 0}, rl.White)
	}

	for y, text := range w.text {
		rl.DrawText(text, 4, int32(y)+3, fontSize, rl.White)
	}

	rl.EndDrawing()
}

// collectInput turns this frame's raylib input state into events.
func (w *Window) collectInput() {
	var events []backend.Event

	pos := rl.GetMousePosition()
	x, y := int(pos.X), int(pos.Y)
	buttons := currentButtons()
	pressed := pressedButtons()
	if x != w.lastX || y != w.lastY || buttons != w.lastButtons || pressed != backend.ButtonsNone {
		events = append(events, backend.Event{
			Type:    backend.EventMouse,
			MouseX:  x,
			MouseY:  y,
			Buttons: buttons,
			Pressed: pressed,
		})
		w.lastX, w.lastY, w.lastButtons = x, y, buttons
	}

	for r := rl.GetCharPressed(); r != 0; r = rl.GetCharPressed() {
		events = append(events, backend.Event{Type: backend.EventKey, Key: backend.KeyRune, Rune: rune(r)})
	}
	if rl.IsKeyPressed(rl.KeyEscape) {
		events = append(events, backend.Event{Type: backend.EventKey, Key: backend.KeyEscape})
	}

	if len(events) > 0 {
		w.mu.Lock()
		w.pending = append(w.pending, events...)
		w.mu.Unlock()
	}
}

func currentButtons() backend.ButtonMask {
	var m backend.ButtonMask
	if rl.IsMouseButtonDown(rl.MouseLeftButton) {
		m |= backend.ButtonPrimary
	}
	if rl.IsMouseButtonDown(rl.MouseRightButton) {
		m |= backend.ButtonSecondary
	}
	if rl.IsMouseButtonDown(rl.MouseMiddleButton) {
		m |= backend.ButtonMiddle
	}
	return m
}

// pressedButtons returns the buttons that went down this frame. raylib
// reports these directly, so a release lost between frames still starts a
// new gesture.
func pressedButtons() backend.ButtonMask {
	var m backend.ButtonMask
	if rl.IsMouseButtonPressed(rl.MouseLeftButton) {
		m |= backend.ButtonPrimary
	}
	if rl.IsMouseButtonPressed(rl.MouseRightButton) {
		m |= backend.ButtonSecondary
	}
	if rl.IsMouseButtonPressed(rl.MouseMiddleButton) {
		m |= backend.ButtonMiddle
	}
	return m
}

func (w *Window) resolve(c picture.Color) rl.Color {
	if col, ok := w.colors[c]; ok {
		return col
	}

	col := rl.Magenta
	if r, g, b, err := palette.RGB(c); err == nil {
		col = rl.Color{R: r, G: g, B: b, A: 255}
	}
	w.colors[c] = col
	return col
}
