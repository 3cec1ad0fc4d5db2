package scripting

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/swift2d/engine/engine/core"
)

// stubWorld is a minimal WorldHook for exercising scripts without a real
// world behind them.
type stubWorld struct {
	name     string
	entities int
}

func (w *stubWorld) Name() string                                   { return w.name }
func (w *stubWorld) Size() (uint32, uint32)                         { return 800, 600 }
func (w *stubWorld) SpawnEntity() int                               { w.entities++; return w.entities - 1 }
func (w *stubWorld) DestroyEntity(int) bool                         { w.entities--; return true }
func (w *stubWorld) EntityCount() int                               { return w.entities }
func (w *stubWorld) AddComponent(int, string) bool                  { return true }
func (w *stubWorld) HasComponent(int, string) bool                  { return false }
func (w *stubWorld) SetPosition(int, float32, float32) bool         { return true }
func (w *stubWorld) Position(int) (float32, float32, bool)          { return 0, 0, true }
func (w *stubWorld) SetVelocity(int, float32, float32) bool         { return true }
func (w *stubWorld) Velocity(int) (float32, float32, bool)          { return 0, 0, true }
func (w *stubWorld) SetTexture(int, string) bool                    { return true }
func (w *stubWorld) SetEntityName(int, string) bool                 { return true }
func (w *stubWorld) FindEntity(string) (int, bool)                  { return 0, false }
func (w *stubWorld) EntitiesAround(float32, float32, float32) []int { return nil }

func writeScript(t *testing.T, source string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "script.lua")
	require.NoError(t, os.WriteFile(path, []byte(source), 0o644))
	return path
}

func TestStartRunsOnceAtConstruction(t *testing.T) {
	path := writeScript(t, `
starts = 0

function Start()
    Done = false
    starts = starts + 1
end

function Update()
end
`)

	s, err := NewScript(path, nil)
	require.NoError(t, err)

	assert.False(t, s.Done())

	n, err := s.Variable("starts").Int()
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestMissingStartFailsLoad(t *testing.T) {
	path := writeScript(t, "function Update()\nend\n")

	_, err := NewScript(path, nil)
	require.Error(t, err)

	var serr *core.ScriptRuntimeError
	assert.ErrorAs(t, err, &serr)
}

func TestUpdateErrorIsRecoverable(t *testing.T) {
	path := writeScript(t, `
ticks = 0

function Start()
    Done = false
end

function Update()
    ticks = ticks + 1
    if ticks == 2 then
        error("hiccup")
    end
end
`)

	s, err := NewScript(path, nil)
	require.NoError(t, err)

	require.NoError(t, s.Update())
	err = s.Update()
	var serr *core.ScriptRuntimeError
	require.ErrorAs(t, err, &serr)
	assert.Contains(t, serr.Message, "hiccup")

	// the state survives the failed call
	require.NoError(t, s.Update())
	n, _ := s.Variable("ticks").Int()
	assert.Equal(t, 3, n)
}

func TestDoneFlagLifecycle(t *testing.T) {
	path := writeScript(t, `
function Start()
    Done = false
end

function Update()
    Done = true
end
`)

	s, err := NewScript(path, nil)
	require.NoError(t, err)
	assert.False(t, s.Done())

	require.NoError(t, s.Update())
	assert.True(t, s.Done())
}

func TestWorldAttachmentAndDetachment(t *testing.T) {
	path := writeScript(t, `
function Start()
    Done = false
end

function Update()
    count = GetEntityCount()
end
`)

	s, err := NewScript(path, nil)
	require.NoError(t, err)
	assert.Nil(t, s.World())

	w := &stubWorld{name: "alpha", entities: 3}
	s.SetWorld(w)
	require.NoError(t, s.Update())

	n, _ := s.Variable("count").Int()
	assert.Equal(t, 3, n)

	s.ClearWorld()
	assert.Nil(t, s.World())

	// unattached bindings degrade to safe defaults
	require.NoError(t, s.Update())
	n, _ = s.Variable("count").Int()
	assert.Equal(t, 0, n)
}

func TestDoneSurvivesReattachment(t *testing.T) {
	path := writeScript(t, `
function Start()
    Done = false
end

function Update()
    Done = true
end
`)

	s, err := NewScript(path, nil)
	require.NoError(t, err)

	s.SetWorld(&stubWorld{name: "alpha"})
	require.NoError(t, s.Update())
	require.True(t, s.Done())
	s.ClearWorld()

	// known quirk: re-attachment does not reset lifecycle state, so the
	// flag still reads true until the script itself clears it
	s.SetWorld(&stubWorld{name: "beta"})
	assert.True(t, s.Done())
}

func TestHostErrorLeavesEntityCountUnchanged(t *testing.T) {
	path := writeScript(t, `
function Start()
    Done = false
end

function Update()
    NewEntity()
    AddComponent("whoops")
end
`)

	s, err := NewScript(path, nil)
	require.NoError(t, err)

	w := &stubWorld{name: "alpha"}
	s.SetWorld(w)

	err = s.Update()
	var serr *core.ScriptRuntimeError
	require.ErrorAs(t, err, &serr)

	// the first call landed, the malformed one aborted the script call
	// without touching anything else
	assert.Equal(t, 1, w.entities)
}

func TestSaveAndLoadState(t *testing.T) {
	source := `
function Start()
    Done = false
    visited = { "meadow" }
    gold = 25
end

function Update()
end

function Save()
    return { visited = visited, gold = gold }
end

function Load(state)
    visited = state.visited
    gold = state.gold
end
`

	s, err := NewScript(writeScript(t, source), nil)
	require.NoError(t, err)

	statePath := filepath.Join(t.TempDir(), "state.toml")
	require.NoError(t, s.SaveState(statePath))

	fresh, err := NewScript(writeScript(t, source), nil)
	require.NoError(t, err)

	// drift the fresh state, then restore
	require.NoError(t, fresh.Variable("gold").Set(0))
	require.NoError(t, fresh.LoadState(statePath))

	gold, err := fresh.Variable("gold").Int()
	require.NoError(t, err)
	assert.Equal(t, 25, gold)

	visited, err := fresh.Variable("visited").Strings()
	require.NoError(t, err)
	assert.Equal(t, []string{"meadow"}, visited)
}

func TestSaveStateWithoutSaveFunction(t *testing.T) {
	s, err := NewScript(writeScript(t, "function Start()\n    Done = false\nend\n\nfunction Update()\nend\n"), nil)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "state.toml")
	require.NoError(t, s.SaveState(path))

	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))
}
