package codegen

import (
	"errors"
	"fmt"
	"sync"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/enumedit/internal/enumdef"
)

// Lua generator errors.
var (
	// ErrNoGenerateFunc is returned when a script defines no generate function.
	ErrNoGenerateFunc = errors.New("script does not define generate(enum)")

	// ErrBadGenerateResult is returned when generate returns a non-string.
	ErrBadGenerateResult = errors.New("generate(enum) did not return a string")
)

// LuaGenerator runs a user-supplied script that defines
//
//	function generate(enum) ... return code end
//
// where enum is a table {name, description, variants = {{name, value, doc}}}.
// The state opens only the base, string, table, and math libraries; file,
// shell, and network access are unavailable to scripts.
//
// gopher-lua states are not goroutine-safe, so Generate serializes calls
// with a mutex.
type LuaGenerator struct {
	mu     sync.Mutex
	target string
	L      *lua.LState
}

// NewLuaGenerator loads the script at path and binds it to the given target
// name.
func NewLuaGenerator(target, path string) (*LuaGenerator, error) {
	L := lua.NewState(lua.Options{SkipOpenLibs: true})

	for _, open := range []struct {
		name string
		fn   lua.LGFunction
	}{
		{lua.LoadLibName, lua.OpenPackage},
		{lua.BaseLibName, lua.OpenBase},
		{lua.StringLibName, lua.OpenString},
		{lua.TabLibName, lua.OpenTable},
		{lua.MathLibName, lua.OpenMath},
	} {
		if err := L.CallByParam(lua.P{
			Fn:      L.NewFunction(open.fn),
			NRet:    0,
			Protect: true,
		}, lua.LString(open.name)); err != nil {
			L.Close()
			return nil, fmt.Errorf("lua generator %q: %w", target, err)
		}
	}

	// Scripts get no loaders beyond what is opened above.
	L.SetGlobal("dofile", lua.LNil)
	L.SetGlobal("loadfile", lua.LNil)

	if err := L.DoFile(path); err != nil {
		L.Close()
		return nil, fmt.Errorf("lua generator %q: %w", target, err)
	}

	if L.GetGlobal("generate").Type() != lua.LTFunction {
		L.Close()
		return nil, fmt.Errorf("lua generator %q: %w", target, ErrNoGenerateFunc)
	}

	return &LuaGenerator{target: target, L: L}, nil
}

// Target returns the target name the script was registered under.
func (g *LuaGenerator) Target() string { return g.target }

// Generate calls the script's generate function with the definition.
func (g *LuaGenerator) Generate(def *enumdef.Definition) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if err := g.L.CallByParam(lua.P{
		Fn:      g.L.GetGlobal("generate"),
		NRet:    1,
		Protect: true,
	}, definitionToLua(g.L, def)); err != nil {
		return "", fmt.Errorf("lua generator %q: %w", g.target, err)
	}

	ret := g.L.Get(-1)
	g.L.Pop(1)

	str, ok := ret.(lua.LString)
	if !ok {
		return "", fmt.Errorf("lua generator %q: %w", g.target, ErrBadGenerateResult)
	}
	return string(str), nil
}

// Close releases the Lua state.
func (g *LuaGenerator) Close() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.L.Close()
}

// definitionToLua converts a definition to the table shape scripts receive.
func definitionToLua(L *lua.LState, def *enumdef.Definition) *lua.LTable {
	t := L.NewTable()
	L.SetField(t, "name", lua.LString(def.Name))
	L.SetField(t, "description", lua.LString(def.Description))

	variants := L.NewTable()
	for i, v := range def.Variants {
		vt := L.NewTable()
		L.SetField(vt, "name", lua.LString(v.Name))
		if v.Value != nil {
			L.SetField(vt, "value", lua.LNumber(*v.Value))
		} else {
			L.SetField(vt, "value", lua.LNumber(i))
		}
		L.SetField(vt, "doc", lua.LString(v.Doc))
		variants.RawSetInt(i+1, vt)
	}
	L.SetField(t, "variants", variants)
	return t
}
