package app

import (
	"errors"
	"fmt"

	"github.com/dshills/pixelstorm/internal/control"
	"github.com/dshills/pixelstorm/internal/input/pointer"
	"github.com/dshills/pixelstorm/internal/renderer/backend"
)

// eventLoop is the main application loop. Every host event is handled on
// this goroutine, which is the only one touching the editor.
func (app *Application) eventLoop() error {
	for {
		ev := app.backend.PollEvent()
		if err := app.handleBackendEvent(ev); err != nil {
			if isQuit(err) {
				app.logger.Info("quit")
				return err
			}
			app.logInteractionError(err)
		}
		app.drawBar()
		app.backend.Show()
	}
}

// handleBackendEvent processes a backend event and routes it appropriately.
// Returns ErrQuit if the application should exit.
func (app *Application) handleBackendEvent(ev backend.Event) error {
	switch ev.Type {
	case backend.EventQuit:
		return ErrQuit
	case backend.EventKey:
		return app.handleKeyEvent(ev)
	case backend.EventMouse:
		return app.handleMouseEvent(ev)
	default:
		return nil
	}
}

// handleKeyEvent maps the editor's few shortcuts.
func (app *Application) handleKeyEvent(ev backend.Event) error {
	switch ev.Key {
	case backend.KeyEscape, backend.KeyCtrlC:
		return ErrQuit
	case backend.KeyRune:
	default:
		return nil
	}

	switch ev.Rune {
	case 'q', 'Q':
		return ErrQuit
	case 't', 'T':
		if ts := app.toolSelect(); ts != nil {
			return interaction("key", "next tool", ts.Next())
		}
	case 'c', 'C':
		if cs := app.colorSelect(); cs != nil {
			return interaction("key", "next color", cs.Next())
		}
	}
	return nil
}

// handleMouseEvent turns a host mouse report into a press or a move.
//
// A button counts as pressed when the host says so in ev.Pressed, or when
// it is held now but was not in the previous report. Terminals only report
// held buttons, so there a release the terminal never delivered makes the
// next click continue the old drag; the window host reports presses and
// always starts a new gesture.
func (app *Application) handleMouseEvent(ev backend.Event) error {
	before, wasDragging := app.editor.Pointer().Session()
	err := app.routeMouse(ev)
	app.traceGesture(before, wasDragging)
	return err
}

func (app *Application) routeMouse(ev backend.Event) error {
	pressed := ev.Buttons&^app.lastButtons | ev.Pressed
	app.lastButtons = ev.Buttons

	x, y := float64(ev.MouseX), float64(ev.MouseY)
	down := func(b pointer.Button) error {
		err := app.editor.PointerDown(pointer.DownEvent{X: x, Y: y, Button: b})
		return interaction("pointer", fmt.Sprintf("%s press at (%d, %d)", b, ev.MouseX, ev.MouseY), err)
	}

	switch {
	case pressed.Has(backend.ButtonPrimary):
		return down(pointer.ButtonPrimary)
	case pressed.Has(backend.ButtonSecondary):
		return down(pointer.ButtonSecondary)
	case pressed.Has(backend.ButtonMiddle):
		return down(pointer.ButtonMiddle)
	}

	err := app.editor.PointerMove(pointer.MoveEvent{X: x, Y: y, Buttons: pointerMask(ev.Buttons)})
	return interaction("pointer", fmt.Sprintf("drag to (%d, %d)", ev.MouseX, ev.MouseY), err)
}

// traceGesture logs gestures that ended or began while handling one event.
func (app *Application) traceGesture(before pointer.Session, wasDragging bool) {
	if !app.gestures.Enabled(LogLevelDebug) {
		return
	}

	after, dragging := app.editor.Pointer().Session()
	replaced := wasDragging && dragging && after.ID != before.ID

	if wasDragging && (!dragging || replaced) {
		app.gestures.WithField("session", before.ID).
			Debug("gesture ended after %d steps", before.Steps)
	}
	if dragging && (!wasDragging || replaced) {
		app.gestures.WithField("session", after.ID).
			WithField("tool", app.editor.State().Tool).
			Debug("gesture started at (%d, %d)", after.Start.X, after.Start.Y)
	}
}

// pointerMask converts a backend button mask.
func pointerMask(b backend.ButtonMask) pointer.ButtonMask {
	m := pointer.MaskNone
	if b.Has(backend.ButtonPrimary) {
		m |= pointer.MaskPrimary
	}
	if b.Has(backend.ButtonSecondary) {
		m |= pointer.MaskSecondary
	}
	if b.Has(backend.ButtonMiddle) {
		m |= pointer.MaskMiddle
	}
	return m
}

func (app *Application) toolSelect() *control.ToolSelect {
	for _, c := range app.editor.Controls() {
		if ts, ok := c.(*control.ToolSelect); ok {
			return ts
		}
	}
	return nil
}

func (app *Application) colorSelect() *control.ColorSelect {
	for _, c := range app.editor.Controls() {
		if cs, ok := c.(*control.ColorSelect); ok {
			return cs
		}
	}
	return nil
}

// logInteractionError logs a failed input against the editor.
func (app *Application) logInteractionError(err error) {
	l := app.logger.WithComponent("editor")
	var ie *InteractionError
	if errors.As(err, &ie) {
		l = l.WithField("input", ie.Input)
	}
	l.Error("%v", err)
}
