package tool

import (
	"github.com/dshills/pixelstorm/internal/picture"
	"github.com/dshills/pixelstorm/internal/state"
)

// Built-in tool names.
const (
	NameDraw      = "draw"
	NameFill      = "fill"
	NameRectangle = "rectangle"
	NamePick      = "pick"
)

// BuiltinNames returns the built-in tool names in display order.
func BuiltinNames() []string {
	return []string{NameDraw, NameFill, NameRectangle, NamePick}
}

// Builtin returns the built-in tool with the given name.
func Builtin(name string) (Tool, error) {
	switch name {
	case NameDraw:
		return Draw(), nil
	case NameFill:
		return Fill(), nil
	case NameRectangle:
		return Rectangle(), nil
	case NamePick:
		return Pick(), nil
	default:
		return nil, &UnknownToolError{Name: name}
	}
}

// Draw paints every cell the pointer passes over with the active color.
func Draw() Tool {
	return Func(func(pos picture.Point, st state.State, dispatch state.Dispatch) (Continuation, error) {
		drawPixel := func(pos picture.Point, st state.State) error {
			return paint(st, dispatch, []picture.Edit{{Point: pos, Color: st.Color}})
		}
		if err := drawPixel(pos, st); err != nil {
			return nil, err
		}
		return drawPixel, nil
	})
}

// around are the 4-connected neighbor offsets.
var around = []picture.Point{
	{X: -1, Y: 0}, {X: 1, Y: 0},
	{X: 0, Y: -1}, {X: 0, Y: 1},
}

// Fill floods the region of same-colored cells containing the pressed cell.
func Fill() Tool {
	return Func(func(pos picture.Point, st state.State, dispatch state.Dispatch) (Continuation, error) {
		pic := st.Picture
		target, err := pic.Pixel(pos.X, pos.Y)
		if err != nil {
			return nil, err
		}
		if target == st.Color {
			return nil, nil
		}

		w, h := pic.Size()
		seen := make([]bool, w*h)
		seen[pos.X+pos.Y*w] = true
		queue := []picture.Point{pos}
		edits := []picture.Edit{{Point: pos, Color: st.Color}}

		for len(queue) > 0 {
			cur := queue[0]
			queue = queue[1:]
			for _, d := range around {
				n := picture.Point{X: cur.X + d.X, Y: cur.Y + d.Y}
				if !pic.InBounds(n) || seen[n.X+n.Y*w] || pic.At(n.X, n.Y) != target {
					continue
				}
				seen[n.X+n.Y*w] = true
				queue = append(queue, n)
				edits = append(edits, picture.Edit{Point: n, Color: st.Color})
			}
		}

		return nil, paint(st, dispatch, edits)
	})
}

// Rectangle drags out a filled rectangle from the pressed cell. Every
// step redraws from the picture as it was when the gesture began, so the
// rectangle can shrink as well as grow. The starting picture is the only
// thing the continuation keeps.
func Rectangle() Tool {
	return Func(func(start picture.Point, st state.State, dispatch state.Dispatch) (Continuation, error) {
		base := st.Picture

		drawRect := func(pos picture.Point, st state.State) error {
			x0, x1 := min(start.X, pos.X), max(start.X, pos.X)
			y0, y1 := min(start.Y, pos.Y), max(start.Y, pos.Y)

			edits := make([]picture.Edit, 0, (x1-x0+1)*(y1-y0+1))
			for y := y0; y <= y1; y++ {
				for x := x0; x <= x1; x++ {
					edits = append(edits, picture.Edit{Point: picture.Point{X: x, Y: y}, Color: st.Color})
				}
			}

			next, err := base.Draw(edits)
			if err != nil {
				return err
			}
			return dispatch(state.SetPicture(next))
		}

		if err := drawRect(start, st); err != nil {
			return nil, err
		}
		return drawRect, nil
	})
}

// Pick makes the pressed cell's color the active color.
func Pick() Tool {
	return Func(func(pos picture.Point, st state.State, dispatch state.Dispatch) (Continuation, error) {
		c, err := st.Picture.Pixel(pos.X, pos.Y)
		if err != nil {
			return nil, err
		}
		return nil, dispatch(state.SetColor(c))
	})
}
