// Package control provides the controls shown beside the canvas.
//
// Controls never change the state themselves. They dispatch actions and
// learn the outcome through SyncState.
package control

import (
	"fmt"

	"github.com/dshills/pixelstorm/internal/editor"
	"github.com/dshills/pixelstorm/internal/palette"
	"github.com/dshills/pixelstorm/internal/picture"
	"github.com/dshills/pixelstorm/internal/state"
	"github.com/dshills/pixelstorm/internal/tool"
)

// Labeler is implemented by controls that can describe themselves in a
// line of text.
type Labeler interface {
	Label() string
}

// Labels returns the labels of the controls that have one.
func Labels(controls []editor.Control) []string {
	var labels []string
	for _, c := range controls {
		if l, ok := c.(Labeler); ok {
			labels = append(labels, l.Label())
		}
	}
	return labels
}

// Defaults returns the standard control set.
func Defaults(p palette.Palette) []editor.ControlFactory {
	return []editor.ControlFactory{
		ToolSelectFactory(),
		ColorSelectFactory(p),
		StatusFactory(),
	}
}

// ToolSelect chooses the active tool.
type ToolSelect struct {
	names    []string
	selected string
	dispatch state.Dispatch
}

// NewToolSelect creates a tool selector over the registered tools.
func NewToolSelect(st state.State, dispatch state.Dispatch, tools *tool.Registry) *ToolSelect {
	return &ToolSelect{
		names:    tools.Names(),
		selected: st.Tool,
		dispatch: dispatch,
	}
}

// ToolSelectFactory returns a factory for ToolSelect.
func ToolSelectFactory() editor.ControlFactory {
	return func(st state.State, dispatch state.Dispatch, tools *tool.Registry) editor.Control {
		return NewToolSelect(st, dispatch, tools)
	}
}

// Names returns the selectable tool names.
func (c *ToolSelect) Names() []string {
	return c.names
}

// Selected returns the selected tool name.
func (c *ToolSelect) Selected() string {
	return c.selected
}

// Select dispatches a change to the named tool.
func (c *ToolSelect) Select(name string) error {
	return c.dispatch(state.SetTool(name))
}

// Next selects the tool after the current one, wrapping around.
func (c *ToolSelect) Next() error {
	if len(c.names) == 0 {
		return nil
	}
	next := c.names[0]
	for i, name := range c.names {
		if name == c.selected {
			next = c.names[(i+1)%len(c.names)]
			break
		}
	}
	return c.Select(next)
}

// SyncState implements editor.Control.
func (c *ToolSelect) SyncState(st state.State) {
	c.selected = st.Tool
}

// Label implements Labeler.
func (c *ToolSelect) Label() string {
	return "🖌 Tool: " + c.selected
}

// ColorSelect chooses the active color.
type ColorSelect struct {
	palette  palette.Palette
	current  picture.Color
	dispatch state.Dispatch
}

// NewColorSelect creates a color selector cycling through p.
func NewColorSelect(st state.State, dispatch state.Dispatch, p palette.Palette) *ColorSelect {
	if len(p) == 0 {
		p = palette.Default()
	}
	return &ColorSelect{
		palette:  p,
		current:  st.Color,
		dispatch: dispatch,
	}
}

// ColorSelectFactory returns a factory for ColorSelect.
func ColorSelectFactory(p palette.Palette) editor.ControlFactory {
	return func(st state.State, dispatch state.Dispatch, _ *tool.Registry) editor.Control {
		return NewColorSelect(st, dispatch, p)
	}
}

// Current returns the active color as last synced.
func (c *ColorSelect) Current() picture.Color {
	return c.current
}

// Palette returns the colors cycled by Next.
func (c *ColorSelect) Palette() palette.Palette {
	return c.palette
}

// Select dispatches a change to color col.
func (c *ColorSelect) Select(col picture.Color) error {
	if _, err := palette.Resolve(col); err != nil {
		return err
	}
	return c.dispatch(state.SetColor(col))
}

// Next selects the palette entry after the current color. A color outside
// the palette, such as one picked from the picture, continues from its
// nearest entry.
func (c *ColorSelect) Next() error {
	from := c.current
	if c.palette.Index(from) < 0 {
		if near, err := c.palette.Nearest(from); err == nil {
			from = near
		}
	}
	return c.Select(c.palette.Next(from))
}

// SyncState implements editor.Control.
func (c *ColorSelect) SyncState(st state.State) {
	c.current = st.Color
}

// Label implements Labeler.
func (c *ColorSelect) Label() string {
	return "🎨 Color: " + string(c.current)
}

// Status shows the picture size and the active tool.
type Status struct {
	width, height int
	tool          string
}

// NewStatus creates a status display.
func NewStatus(st state.State) *Status {
	s := &Status{}
	s.SyncState(st)
	return s
}

// StatusFactory returns a factory for Status.
func StatusFactory() editor.ControlFactory {
	return func(st state.State, _ state.Dispatch, _ *tool.Registry) editor.Control {
		return NewStatus(st)
	}
}

// SyncState implements editor.Control.
func (s *Status) SyncState(st state.State) {
	if st.Picture != nil {
		s.width, s.height = st.Picture.Size()
	}
	s.tool = st.Tool
}

// Label implements Labeler.
func (s *Status) Label() string {
	return fmt.Sprintf("%dx%d %s", s.width, s.height, s.tool)
}
