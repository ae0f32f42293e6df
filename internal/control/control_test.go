package control

import (
	"errors"
	"testing"

	"github.com/dshills/pixelstorm/internal/editor"
	"github.com/dshills/pixelstorm/internal/palette"
	"github.com/dshills/pixelstorm/internal/picture"
	"github.com/dshills/pixelstorm/internal/renderer/backend"
	"github.com/dshills/pixelstorm/internal/state"
	"github.com/dshills/pixelstorm/internal/tool"
)

func newEditor(t *testing.T, factories ...editor.ControlFactory) *editor.Editor {
	t.Helper()
	pic, err := picture.Empty(4, 3, "#ffffff")
	if err != nil {
		t.Fatalf("Empty: %v", err)
	}
	e, err := editor.New(editor.Config{
		State:    state.State{Tool: tool.NameDraw, Color: "#000000", Picture: pic},
		Tools:    tool.BuiltinRegistry(),
		Controls: factories,
		Surface:  backend.NewNullBackend(20, 10),
		CellSize: 1,
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return e
}

func TestToolSelect(t *testing.T) {
	e := newEditor(t, ToolSelectFactory())
	ts := e.Controls()[0].(*ToolSelect)

	if got := ts.Label(); got != "🖌 Tool: draw" {
		t.Errorf("Label() = %q, want %q", got, "🖌 Tool: draw")
	}

	if err := ts.Select(tool.NameFill); err != nil {
		t.Fatalf("Select: %v", err)
	}
	if e.State().Tool != tool.NameFill {
		t.Errorf("Tool = %q, want fill", e.State().Tool)
	}
	if ts.Selected() != tool.NameFill {
		t.Errorf("Selected() = %q, want fill", ts.Selected())
	}

	if err := ts.Select("erase"); !errors.Is(err, tool.ErrUnknownTool) {
		t.Errorf("Select(erase) error = %v, want ErrUnknownTool", err)
	}
	if ts.Selected() != tool.NameFill {
		t.Errorf("Selected() = %q after rejected select, want fill", ts.Selected())
	}
}

func TestToolSelectNextWraps(t *testing.T) {
	e := newEditor(t, ToolSelectFactory())
	ts := e.Controls()[0].(*ToolSelect)

	var seen []string
	for range tool.BuiltinNames() {
		if err := ts.Next(); err != nil {
			t.Fatalf("Next: %v", err)
		}
		seen = append(seen, e.State().Tool)
	}

	want := []string{tool.NameFill, tool.NameRectangle, tool.NamePick, tool.NameDraw}
	for i := range want {
		if seen[i] != want[i] {
			t.Errorf("step %d: Tool = %q, want %q", i, seen[i], want[i])
		}
	}
}

func TestColorSelect(t *testing.T) {
	p := palette.Palette{"#000000", "#ff0000", "#0000ff"}
	e := newEditor(t, ColorSelectFactory(p))
	cs := e.Controls()[0].(*ColorSelect)

	if got := cs.Label(); got != "🎨 Color: #000000" {
		t.Errorf("Label() = %q, want %q", got, "🎨 Color: #000000")
	}

	if err := cs.Next(); err != nil {
		t.Fatalf("Next: %v", err)
	}
	if e.State().Color != "#ff0000" {
		t.Errorf("Color = %q, want #ff0000", e.State().Color)
	}

	if err := cs.Select("not-a-color"); !errors.Is(err, palette.ErrUnknownColor) {
		t.Errorf("Select error = %v, want ErrUnknownColor", err)
	}
	if cs.Current() != "#ff0000" {
		t.Errorf("Current() = %q, want #ff0000", cs.Current())
	}
}

func TestColorSelectNextFromPickedColor(t *testing.T) {
	p := palette.Palette{"#000000", "#ff0000", "#0000ff"}
	e := newEditor(t, ColorSelectFactory(p))
	cs := e.Controls()[0].(*ColorSelect)

	// Almost red, so the cycle resumes after red.
	if err := e.Dispatch(state.SetColor("#f00a0a")); err != nil {
		t.Fatalf("Dispatch: %v", err)
	}
	if err := cs.Next(); err != nil {
		t.Fatalf("Next: %v", err)
	}
	if e.State().Color != "#0000ff" {
		t.Errorf("Color = %q, want #0000ff", e.State().Color)
	}
}

func TestStatus(t *testing.T) {
	e := newEditor(t, StatusFactory())
	s := e.Controls()[0].(*Status)

	if got := s.Label(); got != "4x3 draw" {
		t.Errorf("Label() = %q, want %q", got, "4x3 draw")
	}

	bigger, _ := picture.Empty(8, 2, "#ffffff")
	if err := e.Dispatch(state.Action{Picture: bigger}.Merge(state.SetTool(tool.NamePick))); err != nil {
		t.Fatalf("Dispatch: %v", err)
	}
	if got := s.Label(); got != "8x2 pick" {
		t.Errorf("Label() = %q, want %q", got, "8x2 pick")
	}
}

func TestLabels(t *testing.T) {
	e := newEditor(t, Defaults(nil)...)

	got := Labels(e.Controls())
	want := []string{"🖌 Tool: draw", "🎨 Color: #000000", "4x3 draw"}
	if len(got) != len(want) {
		t.Fatalf("Labels() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Labels()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}
