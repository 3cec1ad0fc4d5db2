package world

import (
	"github.com/swift2d/engine/engine/entity"
	"github.com/swift2d/engine/engine/math"
)

// scripting.WorldHook implementation. Scripts address entities by index into
// the live sequence; a stale index simply misses.

func (w *World) Size() (uint32, uint32) {
	return w.size.X, w.size.Y
}

func (w *World) entityAt(index int) *entity.Entity {
	if index < 0 || index >= len(w.entities) {
		return nil
	}
	return w.entities[index]
}

func (w *World) SpawnEntity() int {
	w.AddEntity()
	return len(w.entities) - 1
}

func (w *World) DestroyEntity(index int) bool {
	return w.RemoveEntity(index)
}

func (w *World) EntityCount() int {
	return len(w.entities)
}

func (w *World) AddComponent(index int, typeName string) bool {
	e := w.entityAt(index)
	if e == nil {
		return false
	}
	return e.Add(typeName) != nil
}

func (w *World) HasComponent(index int, typeName string) bool {
	e := w.entityAt(index)
	return e != nil && e.Has(typeName)
}

func (w *World) SetPosition(index int, x, y float32) bool {
	e := w.entityAt(index)
	if e == nil {
		return false
	}
	p, ok := entity.Get[*entity.Physical](e)
	if !ok {
		return false
	}
	p.Position = math.Vec2{X: x, Y: y}
	return true
}

func (w *World) Position(index int) (float32, float32, bool) {
	e := w.entityAt(index)
	if e == nil {
		return 0, 0, false
	}
	p, ok := entity.Get[*entity.Physical](e)
	if !ok {
		return 0, 0, false
	}
	return p.Position.X, p.Position.Y, true
}

func (w *World) SetVelocity(index int, x, y float32) bool {
	e := w.entityAt(index)
	if e == nil {
		return false
	}
	m, ok := entity.Get[*entity.Movable](e)
	if !ok {
		return false
	}
	m.Velocity = math.Vec2{X: x, Y: y}
	return true
}

func (w *World) Velocity(index int) (float32, float32, bool) {
	e := w.entityAt(index)
	if e == nil {
		return 0, 0, false
	}
	m, ok := entity.Get[*entity.Movable](e)
	if !ok {
		return 0, 0, false
	}
	return m.Velocity.X, m.Velocity.Y, true
}

func (w *World) SetTexture(index int, name string) bool {
	e := w.entityAt(index)
	if e == nil {
		return false
	}
	d, ok := entity.Get[*entity.Drawable](e)
	if !ok {
		return false
	}
	d.Texture = name
	if w.assets != nil {
		if width, height, ok := w.assets.TextureSize(name); ok {
			d.Sprite.Size = math.Vec2u{X: width, Y: height}
		}
	}
	return true
}

func (w *World) SetEntityName(index int, name string) bool {
	e := w.entityAt(index)
	if e == nil {
		return false
	}
	n, ok := entity.Get[*entity.Name](e)
	if !ok {
		return false
	}
	n.Value = name
	return true
}

func (w *World) FindEntity(name string) (int, bool) {
	for i, e := range w.entities {
		if n, ok := entity.Get[*entity.Name](e); ok && n.Value == name {
			return i, true
		}
	}
	return 0, false
}

func (w *World) EntitiesAround(x, y, radius float32) []int {
	var indices []int
	around := w.EntitiesAroundPoint(math.Vec2{X: x, Y: y}, radius)
	for _, a := range around {
		for i, e := range w.entities {
			if e == a {
				indices = append(indices, i)
				break
			}
		}
	}
	return indices
}
