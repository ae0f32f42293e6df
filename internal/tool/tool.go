// Package tool defines the tool protocol and the built-in tools.
//
// A tool is started with the pressed cell, the current state and the
// dispatch function. It may dispatch any number of actions right away, and
// it may return a Continuation to follow the drag: the continuation is
// called with every new cell the pointer visits, together with the state
// current at that moment. Tools must not hold on to a State between calls.
package tool

import (
	"github.com/dshills/pixelstorm/internal/picture"
	"github.com/dshills/pixelstorm/internal/state"
)

// Continuation follows a drag.
type Continuation func(pos picture.Point, st state.State) error

// Tool is the protocol every tool implements.
type Tool interface {
	// Start begins a gesture at pos. A nil Continuation ends the gesture
	// after this call.
	Start(pos picture.Point, st state.State, dispatch state.Dispatch) (Continuation, error)
}

// Func adapts a function to the Tool interface.
type Func func(pos picture.Point, st state.State, dispatch state.Dispatch) (Continuation, error)

// Start calls f.
func (f Func) Start(pos picture.Point, st state.State, dispatch state.Dispatch) (Continuation, error) {
	return f(pos, st, dispatch)
}

// paint dispatches the picture with the given edits applied.
func paint(st state.State, dispatch state.Dispatch, edits []picture.Edit) error {
	next, err := st.Picture.Draw(edits)
	if err != nil {
		return err
	}
	return dispatch(state.SetPicture(next))
}
