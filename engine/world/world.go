package world

import (
	"sort"

	"github.com/swift2d/engine/engine/core"
	"github.com/swift2d/engine/engine/entity"
	"github.com/swift2d/engine/engine/math"
	"github.com/swift2d/engine/engine/scripting"
)

// AssetProvider is what a world needs from the asset store: texture lookups
// for the post-load fixup and shared script instances to attach. The store
// owns the scripts; the world only holds non-owning references.
type AssetProvider interface {
	scripting.AssetLookup
	Script(name string) (*scripting.Script, bool)
}

// World owns an ordered entity collection, the tile background and a mapping
// of attached scripts. It drives the per-tick update and is the unit of
// save/load.
type World struct {
	name    string
	size    math.Vec2u
	assets  AssetProvider
	tilemap *Tilemap

	entities  []*entity.Entity
	scheduler *entity.Scheduler
	scripts   map[string]*scripting.Script

	saveDir string
}

func NewWorld(name string, size math.Vec2u, assets AssetProvider) *World {
	return &World{
		name:      name,
		size:      size,
		assets:    assets,
		tilemap:   NewTilemap(size),
		scheduler: entity.NewScheduler(),
		scripts:   make(map[string]*scripting.Script),
		saveDir:   defaultSaveDir,
	}
}

// SetSaveDir overrides where this world persists itself.
func (w *World) SetSaveDir(dir string) {
	w.saveDir = dir
}

func (w *World) Name() string {
	return w.name
}

func (w *World) Tilemap() *Tilemap {
	return w.tilemap
}

// Update runs one full tick: every scheduler pass over every live entity,
// then every attached script's update phase, then the removal sweep of
// scripts whose Done flag reads true. The entity sequence is only mutated
// between passes, never during one.
func (w *World) Update(dt float32) {
	for _, e := range w.entities {
		w.scheduler.Update(e, dt)
	}

	var doneScripts []string

	for _, file := range w.scriptFiles() {
		s := w.scripts[file]

		// scripts are shared with other worlds; reclaim strays
		if s.World() != scripting.WorldHook(w) {
			s.SetWorld(w)
		}

		if err := s.Update(); err != nil {
			// only this script's call aborts; the tick carries on
			core.LogError(err.Error())
		}

		if s.Done() {
			doneScripts = append(doneScripts, file)
		}
	}

	for _, file := range doneScripts {
		w.RemoveScript(file)
		core.EventFire(core.EventContext{Type: core.EVENT_CODE_SCRIPT_DONE, Data: file})
	}
}

func (w *World) scriptFiles() []string {
	files := make([]string, 0, len(w.scripts))
	for file := range w.scripts {
		files = append(files, file)
	}
	sort.Strings(files)
	return files
}

// AddEntity creates an empty entity owned by this world and returns it.
func (w *World) AddEntity() *entity.Entity {
	e := entity.NewEntity()
	w.entities = append(w.entities, e)
	return e
}

// RemoveEntity destroys the entity at the given index along with its
// components. A negative index counts from the end of the sequence.
func (w *World) RemoveEntity(i int) bool {
	if i >= len(w.entities) || len(w.entities)+i < 0 {
		return false
	}
	if i < 0 {
		i += len(w.entities)
	}
	w.entities = append(w.entities[:i], w.entities[i+1:]...)
	return true
}

// Entities returns the live entity sequence in creation order.
func (w *World) Entities() []*entity.Entity {
	return w.entities
}

// EntitiesAroundPoint returns every entity with a Physical component within
// radius of pos. A position outside the world or a non-positive radius
// yields nothing.
func (w *World) EntitiesAroundPoint(pos math.Vec2, radius float32) []*entity.Entity {
	var around []*entity.Entity

	if !(0 <= pos.X && pos.X < float32(w.size.X) && 0 <= pos.Y && pos.Y < float32(w.size.Y)) || radius <= 0 {
		return around
	}

	for _, e := range w.entities {
		if p, ok := entity.Get[*entity.Physical](e); ok {
			if math.Distance(p.Position, pos) <= radius {
				around = append(around, e)
			}
		}
	}

	return around
}

// AddScript attaches the named script from the asset store. Attaching a
// script that is already present is a no-op returning false.
func (w *World) AddScript(file string) bool {
	if _, ok := w.scripts[file]; ok {
		return false
	}
	s, ok := w.assets.Script(file)
	if !ok {
		core.LogWarn("world %q: no script %q in asset store", w.name, file)
		return false
	}
	w.scripts[file] = s
	s.SetWorld(w)
	core.EventFire(core.EventContext{Type: core.EVENT_CODE_WORLD_CHANGED, Data: w.name})
	return true
}

// RemoveScript detaches the named script. The script instance itself stays
// alive in the asset store and may attach to another world later.
func (w *World) RemoveScript(file string) bool {
	s, ok := w.scripts[file]
	if !ok {
		return false
	}
	if s.World() == scripting.WorldHook(w) {
		s.ClearWorld()
	}
	delete(w.scripts, file)
	core.EventFire(core.EventContext{Type: core.EVENT_CODE_WORLD_CHANGED, Data: w.name})
	return true
}

// HasScript reports whether the named script is currently attached.
func (w *World) HasScript(file string) bool {
	_, ok := w.scripts[file]
	return ok
}

// Close saves the world and detaches every script so none is left pointing
// at a dead world. Call before dropping the last reference.
func (w *World) Close() error {
	err := w.Save()
	for _, file := range w.scriptFiles() {
		w.RemoveScript(file)
	}
	return err
}
