package loader

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	lua "github.com/yuin/gopher-lua"

	"github.com/nathoo/ontherocks/engine/state"
)

// collector accumulates Lua definitions during file execution.
type collector struct {
	game        *lua.LTable
	ingredients []rawDef
	glasses     []rawDef
	patrons     []rawDef
	nodes       []rawDef
	rules       []rawRule
	handlers    []rawHandler
	order       int
}

func (c *collector) nextSourceOrder() int {
	c.order++
	return c.order
}

// Option configures Load.
type Option func(*options)

type options struct {
	logger *log.Logger
}

// WithLogger sends validation warnings to l instead of stderr.
func WithLogger(l *log.Logger) Option {
	return func(o *options) { o.logger = l }
}

// Load reads all .lua files from dir, compiles them into game definitions,
// validates references, and returns the immutable Defs. The Lua VM is
// discarded after loading.
func Load(dir string, opts ...Option) (*state.Defs, error) {
	o := options{logger: log.New(os.Stderr, "warning: ", 0)}
	for _, opt := range opts {
		opt(&o)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading content directory %s: %w", dir, err)
	}

	var luaFiles []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".lua") {
			luaFiles = append(luaFiles, e.Name())
		}
	}
	if len(luaFiles) == 0 {
		return nil, fmt.Errorf("no .lua files found in %s", dir)
	}

	// game.lua first, rest alphabetical.
	luaFiles = sortedLuaFiles(luaFiles)

	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	defer L.Close()
	openSafeLibs(L)
	sandbox(L)

	coll := &collector{}
	registerAPI(L, coll)

	for _, f := range luaFiles {
		if err := L.DoFile(filepath.Join(dir, f)); err != nil {
			return nil, fmt.Errorf("executing %s: %w", f, err)
		}
	}

	defs, err := compile(coll)
	if err != nil {
		return nil, fmt.Errorf("compiling content: %w", err)
	}

	warnings, err := validate(defs)
	for _, w := range warnings {
		o.logger.Print(w)
	}
	if err != nil {
		return nil, err
	}
	return defs, nil
}

// openSafeLibs opens only the safe subset of Lua standard libraries.
func openSafeLibs(L *lua.LState) {
	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)
}

// sandbox removes globals that reach outside the content directory or break
// determinism.
func sandbox(L *lua.LState) {
	for _, name := range []string{
		"dofile", "loadfile", "load", "loadstring",
		"rawset", "rawget", "rawequal",
		"collectgarbage",
	} {
		L.SetGlobal(name, lua.LNil)
	}
	if tbl, ok := L.GetGlobal("math").(*lua.LTable); ok {
		tbl.RawSetString("random", lua.LNil)
		tbl.RawSetString("randomseed", lua.LNil)
	}
}
