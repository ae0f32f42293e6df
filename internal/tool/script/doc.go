// Package script provides tools written in Lua.
//
// A script defines a global start function and, for tools that follow the
// drag, a global drag function. Both receive the cell coordinates and a
// context table, and return a list of edits:
//
//	function start(x, y, ctx)
//	    return { { x = x, y = y, color = ctx.color } }
//	end
//
//	function drag(x, y, ctx)
//	    return { { x = x, y = y } }
//	end
//
// The context table carries color, tool, width and height. An edit without
// a color uses the active color. Coordinates are zero based. The global
// function pixel(x, y) returns the color of a cell in the current picture,
// or nil outside the grid. Returning nil or an empty list dispatches nothing.
//
// Scripts run in a state with only the base, table, string and math
// libraries opened, and every call is bounded by a timeout.
package script
