package backend

import (
	"sync"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/uniseg"

	"github.com/dshills/pixelstorm/internal/palette"
	"github.com/dshills/pixelstorm/internal/picture"
)

// Terminal implements Backend using tcell. Each terminal cell is one
// surface pixel; pixels are painted as spaces with a background color.
type Terminal struct {
	screen tcell.Screen
	mu     sync.Mutex

	// canvas size set by Resize
	width, height int

	colors map[picture.Color]tcell.Color
}

// NewTerminal creates a new terminal backend.
func NewTerminal() (*Terminal, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	return newTerminalWithScreen(screen), nil
}

func newTerminalWithScreen(screen tcell.Screen) *Terminal {
	return &Terminal{
		screen: screen,
		colors: make(map[picture.Color]tcell.Color),
	}
}

func (t *Terminal) Init() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.screen.Init(); err != nil {
		return err
	}

	// Button, drag and motion events; drags need motion reports.
	t.screen.EnableMouse()
	t.screen.HideCursor()
	t.screen.Clear()

	return nil
}

func (t *Terminal) Shutdown() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.screen.Fini()
}

func (t *Terminal) Size() (int, int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.screen.Size()
}

func (t *Terminal) Resize(width, height int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	// Clear the old canvas area before adopting the new size.
	for y := 0; y < t.height; y++ {
		for x := 0; x < t.width; x++ {
			t.screen.SetContent(x, y, ' ', nil, tcell.StyleDefault)
		}
	}
	t.width = width
	t.height = height
}

func (t *Terminal) FillRect(x, y, width, height int, color picture.Color) {
	t.mu.Lock()
	defer t.mu.Unlock()

	style := tcell.StyleDefault.Background(t.resolve(color))
	for py := y; py < y+height && py < t.height; py++ {
		for px := x; px < x+width && px < t.width; px++ {
			if px >= 0 && py >= 0 {
				t.screen.SetContent(px, py, ' ', nil, style)
			}
		}
	}
}

func (t *Terminal) DrawText(x, y int, text string, maxWidth int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	col := x
	g := uniseg.NewGraphemes(text)
	for g.Next() {
		w := g.Width()
		if col+w > x+maxWidth {
			break
		}
		runes := g.Runes()
		t.screen.SetContent(col, y, runes[0], runes[1:], tcell.StyleDefault)
		// Wide graphemes occupy the following cell too.
		for i := 1; i < w; i++ {
			t.screen.SetContent(col+i, y, ' ', nil, tcell.StyleDefault)
		}
		col += w
	}
	for ; col < x+maxWidth; col++ {
		t.screen.SetContent(col, y, ' ', nil, tcell.StyleDefault)
	}
}

// LineHeight is one terminal row.
func (t *Terminal) LineHeight() int { return 1 }

func (t *Terminal) Show() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.screen.Show()
}

func (t *Terminal) PollEvent() Event {
	ev := t.screen.PollEvent()
	return convertEvent(ev)
}

func (t *Terminal) PostEvent(event Event) {
	switch event.Type {
	case EventKey:
		tcellEv := tcell.NewEventKey(convertToTcellKey(event.Key), event.Rune, tcell.ModNone)
		_ = t.screen.PostEvent(tcellEv) // best-effort; event queue may be full
	case EventQuit:
		_ = t.screen.PostEvent(tcell.NewEventInterrupt(EventQuit))
	}
}

// resolve maps a picture color to a tcell color, caching the result.
// Must be called with t.mu held.
func (t *Terminal) resolve(c picture.Color) tcell.Color {
	if tc, ok := t.colors[c]; ok {
		return tc
	}

	tc := tcell.ColorDefault
	if r, g, b, err := palette.RGB(c); err == nil {
		tc = tcell.NewRGBColor(int32(r), int32(g), int32(b))
	}
	t.colors[c] = tc
	return tc
}

// convertEvent converts tcell events to our Event type.
func convertEvent(ev tcell.Event) Event {
	switch e := ev.(type) {
	case *tcell.EventKey:
		return Event{
			Type: EventKey,
			Key:  convertKey(e.Key()),
			Rune: e.Rune(),
		}

	case *tcell.EventMouse:
		x, y := e.Position()
		return Event{
			Type:    EventMouse,
			MouseX:  x,
			MouseY:  y,
			Buttons: convertButtons(e.Buttons()),
		}

	case *tcell.EventResize:
		w, h := e.Size()
		return Event{
			Type:   EventResize,
			Width:  w,
			Height: h,
		}

	case *tcell.EventInterrupt:
		if e.Data() == EventQuit {
			return Event{Type: EventQuit}
		}
		return Event{Type: EventNone}

	default:
		return Event{Type: EventNone}
	}
}

// convertKey converts tcell key to our Key type.
func convertKey(k tcell.Key) Key {
	switch k {
	case tcell.KeyRune:
		return KeyRune
	case tcell.KeyEscape:
		return KeyEscape
	case tcell.KeyEnter:
		return KeyEnter
	case tcell.KeyTab:
		return KeyTab
	case tcell.KeyCtrlC:
		return KeyCtrlC
	default:
		return KeyNone
	}
}

// convertToTcellKey converts our Key to tcell.Key.
func convertToTcellKey(k Key) tcell.Key {
	switch k {
	case KeyEscape:
		return tcell.KeyEscape
	case KeyEnter:
		return tcell.KeyEnter
	case KeyTab:
		return tcell.KeyTab
	case KeyCtrlC:
		return tcell.KeyCtrlC
	default:
		return tcell.KeyRune
	}
}

// convertButtons converts a tcell button mask to our ButtonMask.
// Wheel buttons are dropped.
func convertButtons(b tcell.ButtonMask) ButtonMask {
	var m ButtonMask
	if b&tcell.Button1 != 0 {
		m |= ButtonPrimary
	}
	if b&tcell.Button2 != 0 {
		m |= ButtonSecondary
	}
	if b&tcell.Button3 != 0 {
		m |= ButtonMiddle
	}
	return m
}
