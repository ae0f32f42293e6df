// Package picture provides the immutable pixel grid edited by pixelstorm.
//
// A Picture is a rectangular grid of colored cells stored in row-major order
// (index = x + y*width). Pictures are never modified after construction:
// every edit produces a new Picture with its own cell slice, so a single
// instance can be read from any number of goroutines.
//
// # Construction
//
//	pic, err := picture.Empty(60, 30, "#f0f0f0")
//
// # Editing
//
// Draw applies a list of edits and returns the edited copy. When several
// edits name the same cell, the last one wins:
//
//	next, err := pic.Draw([]picture.Edit{
//	    {Point: picture.Point{X: 1, Y: 1}, Color: "#000000"},
//	})
package picture
