package format

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/tschart/internal/logging"
)

// luaFormatter calls a compiled Lua function for every tick.
//
// gopher-lua states are not goroutine-safe, so calls are serialized.
type luaFormatter struct {
	spec    string
	timeout time.Duration
	logger  *logging.Logger

	mu     sync.Mutex
	L      *lua.LState
	fn     *lua.LFunction
	closed bool
}

func newLua(spec, body string, cfg config) (*luaFormatter, error) {
	body = strings.TrimSpace(body)
	if body == "" {
		return nil, fmt.Errorf("%w: empty body", ErrLua)
	}

	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	if err := openSafeLibraries(L); err != nil {
		L.Close()
		return nil, fmt.Errorf("%w: %v", ErrLua, err)
	}

	fn, err := compileLua(L, body)
	if err != nil {
		L.Close()
		return nil, fmt.Errorf("%w: %v", ErrLua, err)
	}

	return &luaFormatter{
		spec:    spec,
		timeout: cfg.timeout,
		logger:  cfg.logger.WithComponent("format"),
		L:       L,
		fn:      fn,
	}, nil
}

// compileLua builds the tick function from body. A body that parses as a
// single expression is returned as the result; anything else is used as the
// function's statements.
func compileLua(L *lua.LState, body string) (*lua.LFunction, error) {
	chunk, err := L.LoadString("return function(v) return (" + body + ") end")
	if err != nil {
		if chunk, err = L.LoadString("return function(v) " + body + " end"); err != nil {
			return nil, err
		}
	}
	if err := L.CallByParam(lua.P{Fn: chunk, NRet: 1, Protect: true}); err != nil {
		return nil, err
	}
	fn, ok := L.Get(-1).(*lua.LFunction)
	L.Pop(1)
	if !ok {
		return nil, errors.New("body did not compile to a function")
	}
	return fn, nil
}

// openSafeLibraries opens the libraries a formatter may use and removes the
// base functions that load code.
func openSafeLibraries(L *lua.LState) error {
	for _, lib := range []struct {
		name string
		open lua.LGFunction
	}{
		{lua.BaseLibName, lua.OpenBase},
		{lua.StringLibName, lua.OpenString},
		{lua.MathLibName, lua.OpenMath},
		{lua.TabLibName, lua.OpenTable},
	} {
		if err := L.CallByParam(lua.P{
			Fn:      L.NewFunction(lib.open),
			NRet:    0,
			Protect: true,
		}, lua.LString(lib.name)); err != nil {
			return err
		}
	}
	for _, name := range []string{"dofile", "loadfile", "load", "loadstring", "require", "module"} {
		L.SetGlobal(name, lua.LNil)
	}
	return nil
}

// Format calls the Lua function with v. A failing call logs a warning and
// falls back to the plain number.
func (f *luaFormatter) Format(v float64) string {
	s, err := f.call(v)
	if err != nil {
		f.logger.WithField("spec", f.spec).Warn("tick format failed: %v", err)
		return strconv.FormatFloat(v, 'g', -1, 64)
	}
	return s
}

func (f *luaFormatter) call(v float64) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed {
		return "", ErrClosed
	}

	ctx, cancel := context.WithTimeout(context.Background(), f.timeout)
	defer cancel()
	f.L.SetContext(ctx)
	defer f.L.RemoveContext()

	if err := f.L.CallByParam(lua.P{Fn: f.fn, NRet: 1, Protect: true}, lua.LNumber(v)); err != nil {
		return "", err
	}
	ret := f.L.Get(-1)
	f.L.Pop(1)

	if !lua.LVCanConvToString(ret) {
		return "", fmt.Errorf("returned %s, want string or number", ret.Type())
	}
	return lua.LVAsString(ret), nil
}

func (f *luaFormatter) Spec() string { return f.spec }

// Close releases the Lua state.
func (f *luaFormatter) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed {
		return nil
	}
	f.L.Close()
	f.closed = true
	return nil
}
