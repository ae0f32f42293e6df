package script

import (
	"context"
	"fmt"
	"math"
	"os"
	"sync"
	"time"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/pixelstorm/internal/picture"
	"github.com/dshills/pixelstorm/internal/state"
	"github.com/dshills/pixelstorm/internal/tool"
)

// DefaultTimeout bounds a single call into a script.
const DefaultTimeout = time.Second

// Lua entry points.
const (
	funcStart = "start"
	funcDrag  = "drag"
)

// Logger is the logging used by scripts.
type Logger interface {
	Debug(msg string, args ...any)
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...any) {}

// Script is a tool backed by a Lua state.
//
// gopher-lua states are not goroutine safe; the mutex serializes calls.
type Script struct {
	name    string
	timeout time.Duration
	logger  Logger

	mu      sync.Mutex
	L       *lua.LState
	current *picture.Picture
	drags   bool
	closed  bool
}

// Option configures a Script.
type Option func(*Script)

// WithTimeout sets the per-call timeout.
func WithTimeout(d time.Duration) Option {
	return func(s *Script) {
		if d > 0 {
			s.timeout = d
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l Logger) Option {
	return func(s *Script) {
		if l != nil {
			s.logger = l
		}
	}
}

// Load compiles source and returns the tool it defines.
func Load(name, source string, opts ...Option) (*Script, error) {
	s := &Script{
		name:    name,
		timeout: DefaultTimeout,
		logger:  nopLogger{},
	}
	for _, opt := range opts {
		opt(s)
	}

	L := lua.NewState(lua.Options{
		SkipOpenLibs: true,
	})
	openSafeLibraries(L)
	L.SetGlobal("pixel", L.NewFunction(s.luaPixel))
	s.L = L

	if err := s.run(func() error { return L.DoString(source) }); err != nil {
		L.Close()
		return nil, &Error{Name: name, Err: err}
	}

	if fn := L.GetGlobal(funcStart); fn.Type() != lua.LTFunction {
		L.Close()
		return nil, &Error{Name: name, Err: ErrNoStart}
	}
	s.drags = L.GetGlobal(funcDrag).Type() == lua.LTFunction

	return s, nil
}

// LoadFile reads a script from path.
func LoadFile(name, path string, opts ...Option) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &Error{Name: name, Err: fmt.Errorf("read %s: %w", path, err)}
	}
	return Load(name, string(data), opts...)
}

// openSafeLibraries opens the libraries that cannot reach the host.
func openSafeLibraries(L *lua.LState) {
	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)

	for _, name := range []string{"dofile", "loadfile", "load", "loadstring", "require"} {
		L.SetGlobal(name, lua.LNil)
	}
}

// Name returns the tool name.
func (s *Script) Name() string {
	return s.name
}

// Drags returns true if the script follows the drag.
func (s *Script) Drags() bool {
	return s.drags
}

// Start implements tool.Tool.
func (s *Script) Start(pos picture.Point, st state.State, dispatch state.Dispatch) (tool.Continuation, error) {
	if err := s.apply(funcStart, pos, st, dispatch); err != nil {
		return nil, err
	}
	if !s.drags {
		return nil, nil
	}
	return func(pos picture.Point, st state.State) error {
		return s.apply(funcDrag, pos, st, dispatch)
	}, nil
}

// apply runs fn and dispatches the edits it returns.
func (s *Script) apply(fn string, pos picture.Point, st state.State, dispatch state.Dispatch) error {
	edits, err := s.call(fn, pos, st)
	if err != nil {
		return &Error{Name: s.name, Func: fn, Err: err}
	}
	s.logger.Debug("script %s: %s(%d, %d) returned %d edits", s.name, fn, pos.X, pos.Y, len(edits))
	if len(edits) == 0 {
		return nil
	}

	next, err := st.Picture.Draw(edits)
	if err != nil {
		return &Error{Name: s.name, Func: fn, Err: err}
	}
	return dispatch(state.SetPicture(next))
}

// call invokes a global Lua function and decodes its edit list.
func (s *Script) call(fn string, pos picture.Point, st state.State) ([]picture.Edit, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil, ErrClosed
	}

	L := s.L
	s.current = st.Picture
	defer func() { s.current = nil }()

	ctxTable := L.NewTable()
	ctxTable.RawSetString("color", lua.LString(st.Color))
	ctxTable.RawSetString("tool", lua.LString(st.Tool))
	if st.Picture != nil {
		ctxTable.RawSetString("width", lua.LNumber(st.Picture.Width()))
		ctxTable.RawSetString("height", lua.LNumber(st.Picture.Height()))
	}

	top := L.GetTop()
	err := s.run(func() error {
		return L.CallByParam(lua.P{
			Fn:      L.GetGlobal(fn),
			NRet:    1,
			Protect: true,
		}, lua.LNumber(pos.X), lua.LNumber(pos.Y), ctxTable)
	})
	if err != nil {
		L.SetTop(top)
		return nil, err
	}

	ret := L.Get(-1)
	L.SetTop(top)
	return decodeEdits(ret, st.Color)
}

// run executes fn under the call timeout with panic recovery.
func (s *Script) run(fn func() error) (err error) {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	s.L.SetContext(ctx)
	defer s.L.RemoveContext()

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("lua panic: %v", r)
		}
	}()
	return fn()
}

// luaPixel implements pixel(x, y).
func (s *Script) luaPixel(L *lua.LState) int {
	x := L.CheckInt(1)
	y := L.CheckInt(2)
	if s.current == nil {
		L.Push(lua.LNil)
		return 1
	}
	c, err := s.current.Pixel(x, y)
	if err != nil {
		L.Push(lua.LNil)
		return 1
	}
	L.Push(lua.LString(c))
	return 1
}

// decodeEdits converts a Lua list of {x, y, color} tables.
func decodeEdits(v lua.LValue, fallback picture.Color) ([]picture.Edit, error) {
	if v == lua.LNil {
		return nil, nil
	}
	list, ok := v.(*lua.LTable)
	if !ok {
		return nil, fmt.Errorf("%w: got %s", ErrBadResult, v.Type())
	}

	n := list.Len()
	edits := make([]picture.Edit, 0, n)
	for i := 1; i <= n; i++ {
		entry, ok := list.RawGetInt(i).(*lua.LTable)
		if !ok {
			return nil, fmt.Errorf("%w: entry %d is not a table", ErrBadResult, i)
		}

		x, okX := cellCoord(entry.RawGetString("x"))
		y, okY := cellCoord(entry.RawGetString("y"))
		if !okX || !okY {
			return nil, fmt.Errorf("%w: entry %d needs whole-number x and y", ErrBadResult, i)
		}

		color := fallback
		switch c := entry.RawGetString("color").(type) {
		case lua.LString:
			color = picture.Color(c)
		case *lua.LNilType:
		default:
			return nil, fmt.Errorf("%w: entry %d color is %s", ErrBadResult, i, c.Type())
		}

		edits = append(edits, picture.Edit{
			Point: picture.Point{X: x, Y: y},
			Color: color,
		})
	}
	return edits, nil
}

// cellCoord converts a Lua number to a cell coordinate. Fractions, NaN and
// values beyond the int32 range are rejected rather than truncated.
func cellCoord(v lua.LValue) (int, bool) {
	n, ok := v.(lua.LNumber)
	if !ok {
		return 0, false
	}
	f := float64(n)
	if f != math.Trunc(f) || f < math.MinInt32 || f > math.MaxInt32 {
		return 0, false
	}
	return int(f), true
}

// Close releases the Lua state.
func (s *Script) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.L.Close()
	s.closed = true
	return nil
}
