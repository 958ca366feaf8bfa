package scripting

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
)

// ErrNoFunction is returned when a script hook is not defined.
var ErrNoFunction = errors.New("lua function not defined")

// Engine wraps a single gopher-lua VM for enemy action scripts.
// Single-goroutine access only (game loop).
type Engine struct {
	vm  *lua.LState
	log *zap.Logger
}

// NewEngine creates a Lua engine and loads all scripts from the given directory.
// core/ loads first so shared helpers are visible to actions/.
func NewEngine(scriptsDir string, log *zap.Logger) (*Engine, error) {
	vm := lua.NewState(lua.Options{
		SkipOpenLibs: false,
	})

	vm.SetGlobal("API_VERSION", lua.LNumber(1))

	e := &Engine{vm: vm, log: log}

	for _, sub := range []string{"core", "actions"} {
		if err := e.loadDir(filepath.Join(scriptsDir, sub)); err != nil {
			vm.Close()
			return nil, fmt.Errorf("load %s scripts: %w", sub, err)
		}
	}
	return e, nil
}

// NewEngineFromSource builds an engine from inline Lua, used by tests and tools.
func NewEngineFromSource(src string, log *zap.Logger) (*Engine, error) {
	vm := lua.NewState()
	vm.SetGlobal("API_VERSION", lua.LNumber(1))
	if err := vm.DoString(src); err != nil {
		vm.Close()
		return nil, fmt.Errorf("load inline script: %w", err)
	}
	return &Engine{vm: vm, log: log}, nil
}

// loadDir loads all .lua files in a directory.
func (e *Engine) loadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // skip missing dirs
		}
		return err
	}
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".lua" {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if err := e.vm.DoFile(path); err != nil {
			return fmt.Errorf("load %s: %w", path, err)
		}
		e.log.Debug("loaded lua script", zap.String("file", path))
	}
	return nil
}

// Close releases the VM.
func (e *Engine) Close() {
	e.vm.Close()
}

// Stage selects which hook of an action script runs.
type Stage string

const (
	StageStart Stage = "start"
	StageStop  Stage = "stop"
)

// ActionContext is packed into the table passed to an action hook.
type ActionContext struct {
	Enemy    string
	BPM      float64
	Spinners int
}

// ActionResult is read back from the table an action hook returns.
type ActionResult struct {
	SpinSpeed float64
	Text      string
}

// HasAction reports whether <script>_start and <script>_stop are both defined.
func (e *Engine) HasAction(script string) bool {
	return e.vm.GetGlobal(script+"_"+string(StageStart)) != lua.LNil &&
		e.vm.GetGlobal(script+"_"+string(StageStop)) != lua.LNil
}

// RunAction calls the Lua function <script>_<stage>(ctx).
// A hook returning nil yields a zero ActionResult.
func (e *Engine) RunAction(script string, stage Stage, ctx ActionContext) (ActionResult, error) {
	name := script + "_" + string(stage)
	fn := e.vm.GetGlobal(name)
	if fn == lua.LNil {
		return ActionResult{}, fmt.Errorf("%s: %w", name, ErrNoFunction)
	}

	t := e.vm.NewTable()
	t.RawSetString("enemy", lua.LString(ctx.Enemy))
	t.RawSetString("bpm", lua.LNumber(ctx.BPM))
	t.RawSetString("spinners", lua.LNumber(ctx.Spinners))

	if err := e.vm.CallByParam(lua.P{
		Fn:      fn,
		NRet:    1,
		Protect: true,
	}, t); err != nil {
		return ActionResult{}, fmt.Errorf("call %s: %w", name, err)
	}

	result := e.vm.Get(-1)
	e.vm.Pop(1)

	switch rt := result.(type) {
	case *lua.LTable:
		return ActionResult{
			SpinSpeed: float64(lua.LVAsNumber(rt.RawGetString("spin_speed"))),
			Text:      lua.LVAsString(rt.RawGetString("text")),
		}, nil
	case *lua.LNilType:
		return ActionResult{}, nil
	default:
		return ActionResult{}, fmt.Errorf("%s returned %s, want table", name, result.Type())
	}
}
