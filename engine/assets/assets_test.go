package assets

import (
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/swift2d/engine/engine/core"
)

func writePNG(t *testing.T, path string, width, height int) {
	t.Helper()
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, image.NewRGBA(image.Rect(0, 0, width, height))))
}

func setupAssetDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "textures"), 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "scripts"), 0o755))

	writePNG(t, filepath.Join(dir, "textures", "guard.png"), 64, 48)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "textures", "bad.png"), []byte("not an image"), 0o644))

	script := `
function Start()
    Done = false
end

function Update()
end
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "scripts", "hello.lua"), []byte(script), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "scripts", "readme.txt"), []byte("notes"), 0o644))

	return dir
}

func newTestManager(t *testing.T) *Manager {
	t.Helper()
	m, err := NewManager(core.NewClock(), core.DefaultSettings())
	require.NoError(t, err)
	t.Cleanup(func() { m.Close() })
	return m
}

func TestInitializeScansAssetFolder(t *testing.T) {
	m := newTestManager(t)
	require.NoError(t, m.Initialize(setupAssetDir(t)))

	assert.True(t, m.HasTexture("guard.png"))
	w, h, ok := m.TextureSize("guard.png")
	require.True(t, ok)
	assert.Equal(t, uint32(64), w)
	assert.Equal(t, uint32(48), h)

	info, ok := m.Texture("guard.png")
	require.True(t, ok)
	assert.Equal(t, "guard.png", info.Name)
	assert.Equal(t, "png", info.Format)

	s, ok := m.Script("hello.lua")
	require.True(t, ok)
	assert.False(t, s.Done())
}

func TestFailedLoadIsDiscarded(t *testing.T) {
	m := newTestManager(t)
	require.NoError(t, m.Initialize(setupAssetDir(t)))

	assert.False(t, m.HasTexture("bad.png"))
	_, _, ok := m.TextureSize("bad.png")
	assert.False(t, ok)
}

func TestBrokenScriptIsDiscarded(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "scripts"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "scripts", "broken.lua"), []byte("this is not lua ("), 0o644))

	m := newTestManager(t)
	require.NoError(t, m.Initialize(dir))

	_, ok := m.Script("broken.lua")
	assert.False(t, ok)
}

func TestUnknownResourceTypesIgnored(t *testing.T) {
	m := newTestManager(t)
	require.NoError(t, m.Initialize(setupAssetDir(t)))

	_, ok := m.Script("readme.txt")
	assert.False(t, ok)
	assert.False(t, m.HasTexture("readme.txt"))
}

func TestResourceClassification(t *testing.T) {
	assert.Equal(t, ResourceTypeTexture, determineResourceType(filepath.Join("assets", "textures", "a.png")))
	assert.Equal(t, ResourceTypeScript, determineResourceType(filepath.Join("assets", "scripts", "a.lua")))
	assert.Equal(t, ResourceTypeNone, determineResourceType(filepath.Join("assets", "scripts", "a.txt")))
	assert.Equal(t, ResourceTypeNone, determineResourceType(filepath.Join("assets", "sounds", "a.ogg")))
}

func TestClean(t *testing.T) {
	m := newTestManager(t)
	require.NoError(t, m.Initialize(setupAssetDir(t)))
	require.True(t, m.HasTexture("guard.png"))

	m.Clean()

	assert.False(t, m.HasTexture("guard.png"))
	_, ok := m.Script("hello.lua")
	assert.False(t, ok)
}
