package assets

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"

	"github.com/swift2d/engine/engine/core"
	"github.com/swift2d/engine/engine/scripting"
)

// Manager owns every loaded asset: texture records keyed by file name and
// the shared script instances worlds attach to. A watcher goroutine keeps
// the store in sync with the asset folder.
type Manager struct {
	textures map[string]*TextureInfo
	scripts  map[string]*scripting.Script

	scriptCtx *scripting.Context
	texLoader textureLoader

	mutex sync.RWMutex

	done     chan struct{}
	fsnotify *fsnotify.Watcher
	isClosed bool
}

func NewManager(clock *core.Clock, settings *core.Settings) (*Manager, error) {
	fsWatch, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	m := &Manager{
		textures: make(map[string]*TextureInfo),
		scripts:  make(map[string]*scripting.Script),
		fsnotify: fsWatch,
		done:     make(chan struct{}),
	}
	m.scriptCtx = &scripting.Context{
		Assets:   m,
		Clock:    clock,
		Settings: settings,
	}
	return m, nil
}

// Initialize scans the asset folder recursively, loading every recognized
// resource, and starts watching for changes.
func (m *Manager) Initialize(assetsDir string) error {
	go m.start()

	return m.addRecursive(assetsDir)
}

func (m *Manager) addRecursive(name string) error {
	if m.isClosed {
		return errors.New("asset watcher already closed")
	}
	return filepath.Walk(name, func(walkPath string, fi os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if fi.IsDir() {
			return m.fsnotify.Add(walkPath)
		}
		if lerr := m.loadResource(walkPath); lerr != nil {
			// a failed entry is discarded, the scan carries on
			core.LogError(lerr.Error())
		}
		return nil
	})
}

// loadResource classifies the file by its parent folder and hands it to the
// matching loader. On failure nothing is stored.
func (m *Manager) loadResource(path string) error {
	switch determineResourceType(path) {
	case ResourceTypeTexture:
		res, err := m.texLoader.Load(path)
		if err != nil {
			return err
		}
		info := res.(*TextureInfo)
		info.Name = filepath.Base(path)

		m.mutex.Lock()
		m.textures[info.Name] = info
		m.mutex.Unlock()

		core.LogDebug("texture: %s (%dx%d %s)", path, info.Width, info.Height, info.Format)

	case ResourceTypeScript:
		s, err := scripting.NewScript(path, m.scriptCtx)
		if err != nil {
			return &core.ResourceLoadError{Path: path, Err: err}
		}

		m.mutex.Lock()
		m.scripts[filepath.Base(path)] = s
		m.mutex.Unlock()

		core.LogDebug("script: %s", path)

	default:
		if filepath.Ext(path) == ".txt" {
			core.LogDebug("ignoring %s", path)
			return nil
		}
		core.LogWarn("%s is an unknown resource type", path)
	}
	return nil
}

func determineResourceType(path string) ResourceType {
	slashed := filepath.ToSlash(path)
	switch {
	case strings.Contains(slashed, "/textures/"):
		return ResourceTypeTexture
	case strings.Contains(slashed, "/scripts/") && filepath.Ext(path) == ".lua":
		return ResourceTypeScript
	default:
		return ResourceTypeNone
	}
}

// HasTexture reports whether the named texture loaded successfully.
func (m *Manager) HasTexture(name string) bool {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	_, ok := m.textures[name]
	return ok
}

// TextureSize returns the pixel size of a loaded texture.
func (m *Manager) TextureSize(name string) (uint32, uint32, bool) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	info, ok := m.textures[name]
	if !ok {
		return 0, 0, false
	}
	return info.Width, info.Height, true
}

// Texture returns the stored record for a loaded texture.
func (m *Manager) Texture(name string) (*TextureInfo, bool) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	info, ok := m.textures[name]
	return info, ok
}

// Script returns the shared script instance loaded from the named file. The
// manager keeps ownership; worlds only attach and detach themselves.
func (m *Manager) Script(name string) (*scripting.Script, bool) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	s, ok := m.scripts[name]
	return s, ok
}

// Clean drops every stored asset.
func (m *Manager) Clean() {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.textures = make(map[string]*TextureInfo)
	m.scripts = make(map[string]*scripting.Script)
}

// Close stops the watcher goroutine.
func (m *Manager) Close() error {
	if m.isClosed {
		return nil
	}
	m.isClosed = true
	close(m.done)
	return nil
}

func (m *Manager) start() {
	for {
		select {
		case e := <-m.fsnotify.Events:
			s, err := os.Stat(e.Name)
			if err == nil && s != nil && s.IsDir() {
				if e.Op&fsnotify.Create != 0 {
					m.fsnotify.Add(e.Name)
				}
				continue
			}
			if e.Op&(fsnotify.Create|fsnotify.Write) != 0 {
				if lerr := m.loadResource(e.Name); lerr != nil {
					core.LogError(lerr.Error())
				}
			}
			if e.Op&fsnotify.Remove != 0 {
				m.removeAsset(e.Name)
				m.fsnotify.Remove(e.Name)
			}

		case e := <-m.fsnotify.Errors:
			if e != nil {
				core.LogError(e.Error())
			}

		case <-m.done:
			m.fsnotify.Close()
			return
		}
	}
}

// removeAsset drops the entry for a deleted file.
func (m *Manager) removeAsset(path string) {
	name := filepath.Base(path)

	m.mutex.Lock()
	defer m.mutex.Unlock()

	delete(m.textures, name)
	delete(m.scripts, name)
}
