// Package editor ties the pixel editor together.
//
// An Editor owns the application state and is its only mutator. Every
// change goes through Dispatch, which merges the action into the state and
// then pushes the new state to the canvas and to every control. Pointer
// events arrive through PointerDown and PointerMove, which run the selected
// tool against the current state.
//
// The Editor does no locking and must be driven from a single goroutine.
package editor
