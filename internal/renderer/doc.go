// Package renderer draws pictures onto backend surfaces.
//
// Rendering is incremental: Render compares the new picture with the one
// previously drawn and paints only the cells whose color changed, so the
// number of FillRect calls always equals the number of changed cells. A
// first render, or a change of dimensions, resizes the surface and paints
// every cell.
//
// Canvas wraps a surface with the last rendered picture and skips work
// entirely when it is handed the same picture again:
//
//	canvas := renderer.NewCanvas(surface, 10)
//	canvas.SyncState(state.Picture)
package renderer
