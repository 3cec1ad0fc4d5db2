package scripting

import (
	"os"

	lua "github.com/Shopify/go-lua"
	toml "github.com/pelletier/go-toml/v2"

	"github.com/swift2d/engine/engine/core"
)

/*
 * Each Script expects two functions to exist in the Lua source:
 *
 *   Start()
 *   Update()
 *
 * and one variable:
 *
 *   Done
 *
 * Done should be set to false during Start. Start runs exactly once, during
 * Script construction. Update runs every world tick while the script is
 * attached. A tick that finds Done set to true detaches the script from its
 * world and removes it from the world's mapping.
 *
 * Optionally a script may define Save() returning a value and Load(value)
 * consuming one, for script-local state kept outside the world save file.
 */

// AssetLookup is what the scripting layer needs from the asset store.
type AssetLookup interface {
	HasTexture(name string) bool
	TextureSize(name string) (uint32, uint32, bool)
}

// WorldHook is the weak back-reference a script holds to the world it is
// attached to. Entities are addressed by index, never by raw reference, so a
// destroyed world can detach cleanly.
type WorldHook interface {
	Name() string
	Size() (uint32, uint32)
	SpawnEntity() int
	DestroyEntity(index int) bool
	EntityCount() int
	AddComponent(index int, typeName string) bool
	HasComponent(index int, typeName string) bool
	SetPosition(index int, x, y float32) bool
	Position(index int) (float32, float32, bool)
	SetVelocity(index int, x, y float32) bool
	Velocity(index int) (float32, float32, bool)
	SetTexture(index int, name string) bool
	SetEntityName(index int, name string) bool
	FindEntity(name string) (int, bool)
	EntitiesAround(x, y, radius float32) []int
}

// Context bundles the host state reachable from script code. It is passed in
// at construction instead of living in process-wide globals, so every
// dependency of a script is visible and swappable in tests.
type Context struct {
	Assets   AssetLookup
	Clock    *core.Clock
	Settings *core.Settings
}

// Script owns one interpreter sub-state, the callables registered into it,
// and the lifecycle flags of one loaded script file.
type Script struct {
	state    *lua.State
	registry *Registry
	file     string
	ctx      *Context
	world    WorldHook
}

// NewScript loads the script source, injects the host surface, runs the
// chunk and invokes Start. Start is never invoked again, not even when the
// script is re-attached to a different world.
func NewScript(file string, ctx *Context) (*Script, error) {
	if ctx == nil {
		ctx = &Context{}
	}
	l := lua.NewState()
	lua.OpenLibraries(l)

	s := &Script{
		state:    l,
		registry: NewRegistry(l),
		file:     file,
		ctx:      ctx,
	}

	s.addVariables()
	s.addFunctions()

	if err := lua.DoFile(l, file); err != nil {
		return nil, &core.ScriptRuntimeError{Script: file, Message: err.Error()}
	}

	if _, err := s.Variable("Start").Call(); err != nil {
		return nil, err
	}
	l.SetTop(0)

	return s, nil
}

// Variable returns a selection addressing the named script global.
func (s *Script) Variable(name string) *Selection {
	return &Selection{
		state:    s.state,
		registry: s.registry,
		owner:    s.file,
		kind:     selGlobal,
		name:     name,
	}
}

func (s *Script) File() string {
	return s.file
}

// Update runs the script's per-tick phase. A script runtime error aborts
// only this call; the caller decides whether to log and carry on.
func (s *Script) Update() error {
	_, err := s.Variable("Update").Call()
	s.state.SetTop(0)
	return err
}

// Done reads the script's Done global. Anything but a true boolean reads as
// not done. The flag survives re-attachment to a new world unless the script
// itself resets it.
func (s *Script) Done() bool {
	done, err := s.Variable("Done").Bool()
	if err != nil {
		return false
	}
	return done
}

// SetWorld attaches the script to a world. Lifecycle state is not reset.
func (s *Script) SetWorld(w WorldHook) {
	s.world = w
}

// ClearWorld detaches the script from its current world.
func (s *Script) ClearWorld() {
	s.world = nil
}

// World returns the current world hook, nil when unattached.
func (s *Script) World() WorldHook {
	return s.world
}

type scriptStateDoc struct {
	State interface{} `toml:"state"`
}

// SaveState asks the script's Save() for a value and persists it as TOML.
// Scripts without a Save function simply have nothing to persist.
func (s *Script) SaveState(path string) error {
	if s.Variable("Save").Type() != lua.TypeFunction {
		return nil
	}
	res, err := s.Variable("Save").Call()
	if err != nil {
		return err
	}
	var value interface{}
	if err := res.Results(&value); err != nil {
		s.state.SetTop(0)
		return err
	}
	s.state.SetTop(0)

	data, err := toml.Marshal(scriptStateDoc{State: value})
	if err != nil {
		return &core.PersistenceError{Op: "encode script state", Path: path, Err: err}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return &core.PersistenceError{Op: "write script state", Path: path, Err: err}
	}
	return nil
}

// LoadState reads previously saved script state and feeds it to Load(value).
func (s *Script) LoadState(path string) error {
	if s.Variable("Load").Type() != lua.TypeFunction {
		return nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return &core.PersistenceError{Op: "read script state", Path: path, Err: err}
	}
	var doc scriptStateDoc
	if err := toml.Unmarshal(data, &doc); err != nil {
		return &core.PersistenceError{Op: "parse script state", Path: path, Err: err}
	}
	if _, err := s.Variable("Load").Call(normalizeState(doc.State)); err != nil {
		return err
	}
	s.state.SetTop(0)
	return nil
}

// normalizeState converts TOML decode output into the marshal's value set.
func normalizeState(v interface{}) interface{} {
	switch t := v.(type) {
	case int64:
		return int(t)
	case []interface{}:
		out := make([]interface{}, len(t))
		for i, e := range t {
			out[i] = normalizeState(e)
		}
		return out
	case map[string]interface{}:
		out := make(map[string]interface{}, len(t))
		for k, e := range t {
			out[k] = normalizeState(e)
		}
		return out
	default:
		return v
	}
}

func (s *Script) addVariables() {
	settings := s.ctx.Settings
	if settings == nil {
		settings = core.DefaultSettings()
	}
	s.Variable("ScriptFile").Set(s.file)
	s.Variable("Settings").Set(map[string]interface{}{
		"fullscreen": settings.Fullscreen,
		"width":      int(settings.Width),
		"height":     int(settings.Height),
		"soundLevel": int(settings.SoundLevel),
		"musicLevel": int(settings.MusicLevel),
	})
}

// addFunctions registers the host-exposed surface. World-dependent entries
// read the current hook at invoke time and degrade to safe defaults while
// the script is unattached.
func (s *Script) addFunctions() {
	r := s.registry

	r.Register("Log", Action1[string](func(msg string) {
		core.LogInfo("[%s] %s", s.file, msg)
	}))

	r.Register("GetTime", Func0[float64](func() float64 {
		if s.ctx.Clock == nil {
			return 0
		}
		s.ctx.Clock.Update()
		return s.ctx.Clock.Elapsed()
	}))

	r.Register("IsTextureLoaded", Func1[string, bool](func(name string) bool {
		return s.ctx.Assets != nil && s.ctx.Assets.HasTexture(name)
	}))

	r.Register("GetTextureSize", Func1R2[string, int, int](func(name string) (int, int) {
		if s.ctx.Assets == nil {
			return 0, 0
		}
		w, h, ok := s.ctx.Assets.TextureSize(name)
		if !ok {
			return 0, 0
		}
		return int(w), int(h)
	}))

	r.Register("GetWorldName", Func0[string](func() string {
		if s.world == nil {
			return ""
		}
		return s.world.Name()
	}))

	r.Register("GetWorldSize", Func0R2[int, int](func() (int, int) {
		if s.world == nil {
			return 0, 0
		}
		w, h := s.world.Size()
		return int(w), int(h)
	}))

	r.Register("NewEntity", Func0[int](func() int {
		if s.world == nil {
			return -1
		}
		return s.world.SpawnEntity()
	}))

	r.Register("RemoveEntity", Func1[int, bool](func(index int) bool {
		return s.world != nil && s.world.DestroyEntity(index)
	}))

	r.Register("GetEntityCount", Func0[int](func() int {
		if s.world == nil {
			return 0
		}
		return s.world.EntityCount()
	}))

	r.Register("AddComponent", Func2[int, string, bool](func(index int, name string) bool {
		return s.world != nil && s.world.AddComponent(index, name)
	}))

	r.Register("HasComponent", Func2[int, string, bool](func(index int, name string) bool {
		return s.world != nil && s.world.HasComponent(index, name)
	}))

	r.Register("SetPosition", Action3[int, float64, float64](func(index int, x, y float64) {
		if s.world == nil {
			return
		}
		s.world.SetPosition(index, float32(x), float32(y))
	}))

	r.Register("GetPosition", Func1R2[int, float64, float64](func(index int) (float64, float64) {
		if s.world == nil {
			return 0, 0
		}
		x, y, ok := s.world.Position(index)
		if !ok {
			return 0, 0
		}
		return float64(x), float64(y)
	}))

	r.Register("SetVelocity", Action3[int, float64, float64](func(index int, x, y float64) {
		if s.world == nil {
			return
		}
		s.world.SetVelocity(index, float32(x), float32(y))
	}))

	r.Register("GetVelocity", Func1R2[int, float64, float64](func(index int) (float64, float64) {
		if s.world == nil {
			return 0, 0
		}
		x, y, ok := s.world.Velocity(index)
		if !ok {
			return 0, 0
		}
		return float64(x), float64(y)
	}))

	r.Register("SetTexture", Func2[int, string, bool](func(index int, name string) bool {
		return s.world != nil && s.world.SetTexture(index, name)
	}))

	r.Register("SetName", Func2[int, string, bool](func(index int, name string) bool {
		return s.world != nil && s.world.SetEntityName(index, name)
	}))

	r.Register("GetEntityByName", Func1[string, int](func(name string) int {
		if s.world == nil {
			return -1
		}
		index, ok := s.world.FindEntity(name)
		if !ok {
			return -1
		}
		return index
	}))

	r.Register("GetEntitiesAround", Func3[float64, float64, float64, []interface{}](func(x, y, radius float64) []interface{} {
		if s.world == nil {
			return nil
		}
		indices := s.world.EntitiesAround(float32(x), float32(y), float32(radius))
		out := make([]interface{}, len(indices))
		for i, idx := range indices {
			out[i] = idx
		}
		return out
	}))
}
