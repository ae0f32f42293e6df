package editor

import (
	"errors"
	"testing"

	"github.com/dshills/pixelstorm/internal/input/pointer"
	"github.com/dshills/pixelstorm/internal/picture"
	"github.com/dshills/pixelstorm/internal/renderer/backend"
	"github.com/dshills/pixelstorm/internal/state"
	"github.com/dshills/pixelstorm/internal/tool"
)

// recordingControl keeps every state it is synced with.
type recordingControl struct {
	initial state.State
	synced  []state.State
}

func (c *recordingControl) SyncState(st state.State) {
	c.synced = append(c.synced, st)
}

func recordingFactory(out **recordingControl) ControlFactory {
	return func(st state.State, _ state.Dispatch, _ *tool.Registry) Control {
		c := &recordingControl{initial: st}
		*out = c
		return c
	}
}

func newTestEditor(t *testing.T, w, h int, bg, color picture.Color, controls ...ControlFactory) (*Editor, *backend.NullBackend) {
	t.Helper()
	pic, err := picture.Empty(w, h, bg)
	if err != nil {
		t.Fatalf("Empty: %v", err)
	}
	surface := backend.NewNullBackend(80, 24)
	e, err := New(Config{
		State:    state.State{Tool: tool.NameDraw, Color: color, Picture: pic},
		Tools:    tool.BuiltinRegistry(),
		Controls: controls,
		Surface:  surface,
		CellSize: 1,
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return e, surface
}

// cellCenter returns the surface coordinates of the middle of a cell.
func cellCenter(x, y int) (float64, float64) {
	return float64(x) + 0.5, float64(y) + 0.5
}

func TestNewRendersInitialState(t *testing.T) {
	e, surface := newTestEditor(t, 3, 2, "#ffffff", "#000000")

	if w, h := surface.SurfaceSize(); w != 3 || h != 2 {
		t.Errorf("SurfaceSize() = %dx%d, want 3x2", w, h)
	}
	if surface.FillCount() != 6 {
		t.Errorf("FillCount() = %d, want 6", surface.FillCount())
	}
	if e.Canvas().Picture() != e.State().Picture {
		t.Error("canvas does not show the initial picture")
	}
}

func TestNewErrors(t *testing.T) {
	pic, _ := picture.Empty(2, 2, "#ffffff")
	surface := backend.NewNullBackend(10, 10)

	tests := []struct {
		name    string
		cfg     Config
		wantErr error
	}{
		{"no surface", Config{State: state.State{Tool: "draw", Picture: pic}}, ErrNoSurface},
		{"no picture", Config{State: state.State{Tool: "draw"}, Surface: surface}, ErrInvalidState},
		{"unknown tool", Config{State: state.State{Tool: "erase", Picture: pic}, Surface: surface}, tool.ErrUnknownTool},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.cfg)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("New error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestDefaultState(t *testing.T) {
	st := DefaultState()

	if st.Tool != "draw" {
		t.Errorf("Tool = %q, want draw", st.Tool)
	}
	if st.Color != "#000000" {
		t.Errorf("Color = %q, want #000000", st.Color)
	}
	if w, h := st.Picture.Size(); w != 60 || h != 30 {
		t.Errorf("Size() = %dx%d, want 60x30", w, h)
	}
	if st.Picture.At(59, 29) != "#f0f0f0" {
		t.Errorf("At(59, 29) = %q, want #f0f0f0", st.Picture.At(59, 29))
	}
}

func TestPressDrawsOnePixel(t *testing.T) {
	var ctl *recordingControl
	e, surface := newTestEditor(t, 3, 3, "#ffffff", "#000000", recordingFactory(&ctl))
	surface.ResetFills()

	x, y := cellCenter(1, 1)
	if err := e.PointerDown(pointer.DownEvent{X: x, Y: y, Button: pointer.ButtonPrimary}); err != nil {
		t.Fatalf("PointerDown: %v", err)
	}

	pic := e.State().Picture
	for py := 0; py < 3; py++ {
		for px := 0; px < 3; px++ {
			want := picture.Color("#ffffff")
			if px == 1 && py == 1 {
				want = "#000000"
			}
			if got := pic.At(px, py); got != want {
				t.Errorf("At(%d, %d) = %q, want %q", px, py, got, want)
			}
		}
	}

	if surface.FillCount() != 1 {
		t.Errorf("FillCount() = %d, want 1", surface.FillCount())
	}
	if got := surface.PixelAt(1, 1); got != "#000000" {
		t.Errorf("PixelAt(1, 1) = %q, want #000000", got)
	}
	if len(ctl.synced) != 1 {
		t.Errorf("control synced %d times, want 1", len(ctl.synced))
	}
}

func TestDragDispatchesPerCell(t *testing.T) {
	var ctl *recordingControl
	e, _ := newTestEditor(t, 3, 3, "#ffffff", "#ff0000", recordingFactory(&ctl))

	x, y := cellCenter(0, 0)
	if err := e.PointerDown(pointer.DownEvent{X: x, Y: y, Button: pointer.ButtonPrimary}); err != nil {
		t.Fatalf("PointerDown: %v", err)
	}
	for _, row := range []int{1, 2} {
		x, y := cellCenter(0, row)
		if err := e.PointerMove(pointer.MoveEvent{X: x, Y: y, Buttons: pointer.MaskPrimary}); err != nil {
			t.Fatalf("PointerMove: %v", err)
		}
	}

	if len(ctl.synced) != 3 {
		t.Errorf("dispatches = %d, want 3", len(ctl.synced))
	}
	pic := e.State().Picture
	for row := 0; row < 3; row++ {
		if got := pic.At(0, row); got != "#ff0000" {
			t.Errorf("At(0, %d) = %q, want #ff0000", row, got)
		}
	}

	// Release ends the drag; further movement paints nothing.
	if err := e.PointerMove(pointer.MoveEvent{X: 2.5, Y: 2.5, Buttons: pointer.MaskNone}); err != nil {
		t.Fatalf("PointerMove: %v", err)
	}
	if err := e.PointerMove(pointer.MoveEvent{X: 1.5, Y: 2.5, Buttons: pointer.MaskPrimary}); err != nil {
		t.Fatalf("PointerMove: %v", err)
	}
	if len(ctl.synced) != 3 {
		t.Errorf("dispatches after release = %d, want 3", len(ctl.synced))
	}
}

func TestDragSameCellIgnored(t *testing.T) {
	var ctl *recordingControl
	e, _ := newTestEditor(t, 3, 3, "#ffffff", "#000000", recordingFactory(&ctl))

	if ctl.initial.Picture != e.State().Picture {
		t.Error("control was not built from the initial state")
	}

	if err := e.PointerDown(pointer.DownEvent{X: 0.1, Y: 0.1, Button: pointer.ButtonPrimary}); err != nil {
		t.Fatalf("PointerDown: %v", err)
	}
	if err := e.PointerMove(pointer.MoveEvent{X: 0.9, Y: 0.9, Buttons: pointer.MaskPrimary}); err != nil {
		t.Fatalf("PointerMove: %v", err)
	}
	if len(ctl.synced) != 1 {
		t.Errorf("dispatches = %d, want 1", len(ctl.synced))
	}
}

func TestDispatchUnknownToolLeavesState(t *testing.T) {
	var ctl *recordingControl
	e, surface := newTestEditor(t, 3, 3, "#ffffff", "#000000", recordingFactory(&ctl))
	before := e.State()
	fills := surface.FillCount()

	err := e.Dispatch(state.SetTool("erase"))
	if !errors.Is(err, tool.ErrUnknownTool) {
		t.Fatalf("Dispatch error = %v, want ErrUnknownTool", err)
	}

	after := e.State()
	if after.Tool != before.Tool || after.Color != before.Color || after.Picture != before.Picture {
		t.Errorf("state changed: %+v -> %+v", before, after)
	}
	if len(ctl.synced) != 0 {
		t.Errorf("control synced %d times, want 0", len(ctl.synced))
	}
	if surface.FillCount() != fills {
		t.Errorf("FillCount() = %d, want %d", surface.FillCount(), fills)
	}
}

func TestDispatchColorOnlyKeepsPicture(t *testing.T) {
	var ctl *recordingControl
	e, surface := newTestEditor(t, 2, 2, "#ffffff", "#000000", recordingFactory(&ctl))
	surface.ResetFills()
	before := e.State()

	if err := e.Dispatch(state.SetColor("#ff0000")); err != nil {
		t.Fatalf("Dispatch: %v", err)
	}

	after := e.State()
	if after.Color != "#ff0000" {
		t.Errorf("Color = %q, want #ff0000", after.Color)
	}
	if after.Tool != before.Tool || after.Picture != before.Picture {
		t.Error("unset fields were not carried over")
	}
	if surface.FillCount() != 0 {
		t.Errorf("FillCount() = %d, want 0", surface.FillCount())
	}
	if len(ctl.synced) != 1 {
		t.Errorf("control synced %d times, want 1", len(ctl.synced))
	}
}

func TestDispatchResizesSurface(t *testing.T) {
	e, surface := newTestEditor(t, 2, 2, "#ffffff", "#000000")

	bigger, _ := picture.Empty(4, 3, "#000000")
	if err := e.Dispatch(state.SetPicture(bigger)); err != nil {
		t.Fatalf("Dispatch: %v", err)
	}
	if w, h := surface.SurfaceSize(); w != 4 || h != 3 {
		t.Errorf("SurfaceSize() = %dx%d, want 4x3", w, h)
	}
	if w, h := e.Canvas().Bounds(); w != 4 || h != 3 {
		t.Errorf("Bounds() = %dx%d, want 4x3", w, h)
	}
}

// reentrantControl dispatches a follow-up action the first time it syncs.
type reentrantControl struct {
	dispatch state.Dispatch
	seen     []state.State
	fired    bool
	nested   error
}

func (c *reentrantControl) SyncState(st state.State) {
	c.seen = append(c.seen, st)
	if !c.fired {
		c.fired = true
		c.nested = c.dispatch(state.SetColor("#00ff00"))
	}
}

func TestDispatchReentrantIsQueued(t *testing.T) {
	var re *reentrantControl
	var after *recordingControl
	factory := func(st state.State, d state.Dispatch, _ *tool.Registry) Control {
		re = &reentrantControl{dispatch: d}
		return re
	}
	e, _ := newTestEditor(t, 2, 2, "#ffffff", "#000000", factory, recordingFactory(&after))

	if err := e.Dispatch(state.SetColor("#ff0000")); err != nil {
		t.Fatalf("Dispatch: %v", err)
	}
	if re.nested != nil {
		t.Fatalf("nested Dispatch: %v", re.nested)
	}

	// The second control sees the first dispatch before the queued one.
	if len(after.synced) != 2 {
		t.Fatalf("second control synced %d times, want 2", len(after.synced))
	}
	if after.synced[0].Color != "#ff0000" || after.synced[1].Color != "#00ff00" {
		t.Errorf("sync order = %q, %q; want #ff0000, #00ff00", after.synced[0].Color, after.synced[1].Color)
	}
	if e.State().Color != "#00ff00" {
		t.Errorf("Color = %q, want #00ff00", e.State().Color)
	}
}

func TestDispatchReentrantMerged(t *testing.T) {
	var after *recordingControl
	fired := false
	var nested []error
	factory := func(st state.State, d state.Dispatch, _ *tool.Registry) Control {
		return syncFunc(func(state.State) {
			if fired {
				return
			}
			fired = true
			nested = append(nested, d(state.SetColor("#00ff00")), d(state.SetTool(tool.NameFill)), d(state.SetColor("#0000ff")))
		})
	}
	e, _ := newTestEditor(t, 2, 2, "#ffffff", "#000000", factory, recordingFactory(&after))

	if err := e.Dispatch(state.SetColor("#ff0000")); err != nil {
		t.Fatalf("Dispatch: %v", err)
	}
	for i, err := range nested {
		if err != nil {
			t.Fatalf("nested Dispatch %d: %v", i, err)
		}
	}

	// Three queued actions arrive as a single sync.
	if len(after.synced) != 2 {
		t.Fatalf("second control synced %d times, want 2", len(after.synced))
	}
	last := after.synced[1]
	if last.Color != "#0000ff" || last.Tool != tool.NameFill {
		t.Errorf("merged sync = %q/%q, want #0000ff/fill", last.Color, last.Tool)
	}
}

// syncFunc adapts a function to Control.
type syncFunc func(state.State)

func (f syncFunc) SyncState(st state.State) { f(st) }

func TestSetOriginShiftsCells(t *testing.T) {
	e, _ := newTestEditor(t, 3, 3, "#ffffff", "#000000")
	e.SetOrigin(pointer.Origin{Left: 10, Top: 20})

	if err := e.PointerDown(pointer.DownEvent{X: 12.5, Y: 21.5, Button: pointer.ButtonPrimary}); err != nil {
		t.Fatalf("PointerDown: %v", err)
	}
	if got := e.State().Picture.At(2, 1); got != "#000000" {
		t.Errorf("At(2, 1) = %q, want #000000", got)
	}

	// A press left of the origin is outside the grid.
	before := e.State().Picture
	if err := e.PointerDown(pointer.DownEvent{X: 5, Y: 21.5, Button: pointer.ButtonPrimary}); err != nil {
		t.Fatalf("PointerDown: %v", err)
	}
	if e.State().Picture != before {
		t.Error("press outside the shifted grid changed the picture")
	}
}

func TestContinuationSeesCurrentState(t *testing.T) {
	e, _ := newTestEditor(t, 3, 1, "#ffffff", "#000000")

	if err := e.PointerDown(pointer.DownEvent{X: 0.5, Y: 0.5, Button: pointer.ButtonPrimary}); err != nil {
		t.Fatalf("PointerDown: %v", err)
	}
	if err := e.Dispatch(state.SetColor("#0000ff")); err != nil {
		t.Fatalf("Dispatch: %v", err)
	}
	if err := e.PointerMove(pointer.MoveEvent{X: 1.5, Y: 0.5, Buttons: pointer.MaskPrimary}); err != nil {
		t.Fatalf("PointerMove: %v", err)
	}

	pic := e.State().Picture
	if got := pic.At(0, 0); got != "#000000" {
		t.Errorf("At(0, 0) = %q, want #000000", got)
	}
	if got := pic.At(1, 0); got != "#0000ff" {
		t.Errorf("At(1, 0) = %q, want #0000ff", got)
	}
}

func TestNonPrimaryPressIgnored(t *testing.T) {
	var ctl *recordingControl
	e, _ := newTestEditor(t, 2, 2, "#ffffff", "#000000", recordingFactory(&ctl))

	if err := e.PointerDown(pointer.DownEvent{X: 0.5, Y: 0.5, Button: pointer.ButtonSecondary}); err != nil {
		t.Fatalf("PointerDown: %v", err)
	}
	if len(ctl.synced) != 0 {
		t.Errorf("dispatches = %d, want 0", len(ctl.synced))
	}
}

func TestToolErrorPropagates(t *testing.T) {
	boom := errors.New("boom")
	tools := tool.NewRegistry()
	_ = tools.Register("broken", tool.Func(func(picture.Point, state.State, state.Dispatch) (tool.Continuation, error) {
		return nil, boom
	}))

	pic, _ := picture.Empty(2, 2, "#ffffff")
	e, err := New(Config{
		State:   state.State{Tool: "broken", Color: "#000000", Picture: pic},
		Tools:   tools,
		Surface: backend.NewNullBackend(10, 10),
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	err = e.PointerDown(pointer.DownEvent{X: 1, Y: 1, Button: pointer.ButtonPrimary})
	if !errors.Is(err, boom) {
		t.Errorf("PointerDown error = %v, want %v", err, boom)
	}
	if e.Pointer().State() != pointer.StateIdle {
		t.Errorf("pointer state = %v, want idle", e.Pointer().State())
	}
}

func TestSwitchToolMidSession(t *testing.T) {
	e, _ := newTestEditor(t, 3, 3, "#ffffff", "#000000")

	if err := e.Dispatch(state.SetTool(tool.NameFill)); err != nil {
		t.Fatalf("Dispatch: %v", err)
	}
	if err := e.PointerDown(pointer.DownEvent{X: 0.5, Y: 0.5, Button: pointer.ButtonPrimary}); err != nil {
		t.Fatalf("PointerDown: %v", err)
	}

	pic := e.State().Picture
	if got := pic.At(2, 2); got != "#000000" {
		t.Errorf("At(2, 2) = %q, want #000000", got)
	}
	if e.Pointer().State() != pointer.StateIdle {
		t.Errorf("pointer state = %v, want idle after fill", e.Pointer().State())
	}
}
