// Package pointer turns raw pointer events into tool gestures.
//
// A Controller is a two-state machine:
//
//	Idle ──primary down, Start returns a continuation──▶ Dragging
//	Dragging ──move with no buttons held, or Up──▶ Idle
//
// While dragging, each move is mapped to a grid cell with
// floor((pixel - origin) / cellSize). Moves that stay in the last reported
// cell are dropped, so a continuation sees each visited cell once per visit.
//
// # Leaving the grid
//
// The controller never reports a cell outside the grid. A press outside the
// grid starts nothing. Moves outside the grid during a drag are ignored and
// do not count as the last reported cell, so re-entering at any cell other
// than the one that was left resumes reporting.
//
// # Release
//
// Hosts are not required to report button releases: the first move that
// arrives with an empty button mask ends the drag, which also covers a
// release that happened outside the window.
package pointer
