// Package state defines the editor's application state and the patches
// that move it forward.
//
// State is a value: the editor replaces it wholesale on every dispatch and
// hands copies to tools and controls, which may keep them only for the
// duration of a call. Action is a patch with one optional field per State
// field; Apply copies the fields that are set and carries the rest over.
package state

import "github.com/dshills/pixelstorm/internal/picture"

// State is an immutable snapshot of the editor.
type State struct {
	// Tool is the name of the selected tool.
	Tool string

	// Color is the active drawing color.
	Color picture.Color

	// Picture is the current picture.
	Picture *picture.Picture
}

// Action is a partial update. Nil fields are left unchanged.
type Action struct {
	Tool    *string
	Color   *picture.Color
	Picture *picture.Picture
}

// Dispatch applies an action to the editor state.
type Dispatch func(Action) error

// SetTool returns an action selecting the named tool.
func SetTool(name string) Action {
	return Action{Tool: &name}
}

// SetColor returns an action changing the active color.
func SetColor(c picture.Color) Action {
	return Action{Color: &c}
}

// SetPicture returns an action replacing the picture.
func SetPicture(p *picture.Picture) Action {
	return Action{Picture: p}
}

// Merge returns an action with the fields of both; fields set in other win.
func (a Action) Merge(other Action) Action {
	if other.Tool != nil {
		a.Tool = other.Tool
	}
	if other.Color != nil {
		a.Color = other.Color
	}
	if other.Picture != nil {
		a.Picture = other.Picture
	}
	return a
}

// IsEmpty returns true if the action sets no field.
func (a Action) IsEmpty() bool {
	return a.Tool == nil && a.Color == nil && a.Picture == nil
}

// Apply returns cur with the fields set in a replaced.
func Apply(cur State, a Action) State {
	next := cur
	if a.Tool != nil {
		next.Tool = *a.Tool
	}
	if a.Color != nil {
		next.Color = *a.Color
	}
	if a.Picture != nil {
		next.Picture = a.Picture
	}
	return next
}
