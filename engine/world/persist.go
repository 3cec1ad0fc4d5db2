package world

import (
	"errors"
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/swift2d/engine/engine/core"
	"github.com/swift2d/engine/engine/entity"
	"github.com/swift2d/engine/engine/math"
)

const (
	defaultSaveDir = "data/saves"
	saveExtension  = ".world"
)

/* save file format
 *
 * One TOML document per world, rooted at a [world] table:
 *
 *   [world]
 *   [[world.entity]]
 *     [[world.entity.component]]
 *     type = "Physical"
 *       [[world.entity.component.field]]
 *       name = "positionX"
 *       value = "400"
 *
 * Entities, components and fields all keep document order, so a load
 * reconstructs the exact sequence that was saved.
 */

type worldDoc struct {
	World *worldRecord `toml:"world"`
}

type worldRecord struct {
	Entities []entityRecord `toml:"entity,omitempty"`
}

type entityRecord struct {
	Components []componentRecord `toml:"component,omitempty"`
}

type componentRecord struct {
	Type   string        `toml:"type"`
	Fields []fieldRecord `toml:"field,omitempty"`
}

type fieldRecord struct {
	Name  string `toml:"name"`
	Value string `toml:"value"`
}

// SavePath returns where this world persists itself, derived from its name.
func (w *World) SavePath() string {
	return filepath.Join(w.saveDir, w.name+saveExtension)
}

// Save writes the whole world document, replacing any previous content at
// the target. Failures are reported, never raised; the in-memory world is
// untouched either way.
func (w *World) Save() error {
	file := w.SavePath()

	record := &worldRecord{}
	for _, e := range w.entities {
		var er entityRecord
		for _, c := range e.Components() {
			cr := componentRecord{Type: c.TypeName()}
			for _, f := range c.Serialize() {
				cr.Fields = append(cr.Fields, fieldRecord{Name: f.Name, Value: f.Value})
			}
			er.Components = append(er.Components, cr)
		}
		record.Entities = append(record.Entities, er)
	}

	data, err := toml.Marshal(worldDoc{World: record})
	if err != nil {
		perr := &core.PersistenceError{Op: "encode world", Path: file, Err: err}
		core.LogError(perr.Error())
		return perr
	}

	if err := os.MkdirAll(w.saveDir, 0o755); err != nil {
		perr := &core.PersistenceError{Op: "save world", Path: file, Err: err}
		core.LogError(perr.Error())
		return perr
	}
	if err := os.WriteFile(file, data, 0o644); err != nil {
		perr := &core.PersistenceError{Op: "save world", Path: file, Err: err}
		core.LogError(perr.Error())
		return perr
	}
	return nil
}

// Load reconstructs entities from the world's save file in document order:
// addEntity, then add each component by name, then unserialize its fields.
// A Drawable gets its texture resolved through the asset store afterwards.
func (w *World) Load() error {
	file := w.SavePath()

	data, err := os.ReadFile(file)
	if err != nil {
		perr := &core.PersistenceError{Op: "load world", Path: file, Err: err}
		core.LogError(perr.Error())
		return perr
	}

	var doc worldDoc
	if err := toml.Unmarshal(data, &doc); err != nil {
		perr := &core.PersistenceError{Op: "parse world", Path: file, Err: err}
		core.LogError(perr.Error())
		return perr
	}
	if doc.World == nil {
		perr := &core.PersistenceError{Op: "parse world", Path: file, Err: errors.New(`missing "world" root table`)}
		core.LogWarn(perr.Error())
		return perr
	}

	for _, er := range doc.World.Entities {
		e := w.AddEntity()
		for _, cr := range er.Components {
			c := e.Add(cr.Type)
			if c == nil {
				core.LogWarn("world %q: unknown component type %q in save file", w.name, cr.Type)
				continue
			}

			variables := make(map[string]string, len(cr.Fields))
			for _, f := range cr.Fields {
				if f.Name != "" && f.Value != "" {
					variables[f.Name] = f.Value
				}
			}
			c.Unserialize(variables)

			if cr.Type == "Drawable" {
				w.fixupDrawable(e)
			}
		}
	}

	return nil
}

// fixupDrawable resolves a freshly loaded Drawable's texture through the
// asset store and sizes the sprite from it.
func (w *World) fixupDrawable(e *entity.Entity) {
	d, ok := entity.Get[*entity.Drawable](e)
	if !ok || w.assets == nil {
		return
	}
	width, height, ok := w.assets.TextureSize(d.Texture)
	if !ok {
		core.LogWarn("world %q: texture %q not loaded, drawable keeps zero size", w.name, d.Texture)
		return
	}
	d.Sprite.Size = math.Vec2u{X: width, Y: height}
}
