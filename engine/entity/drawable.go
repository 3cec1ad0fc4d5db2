package entity

import "github.com/swift2d/engine/engine/math"

// Sprite is the draw state kept alongside a Drawable. It is runtime-only:
// the draw pass syncs it from Physical, and the texture fixup after a world
// load sizes it from the asset store.
type Sprite struct {
	Position math.Vec2
	Size     math.Vec2u
}

// Drawable marks an entity as renderable. Only the texture name is
// persisted; the sprite is rebuilt on load.
type Drawable struct {
	Texture string
	Sprite  Sprite
}

func NewDrawable() *Drawable {
	return &Drawable{}
}

func (d *Drawable) TypeName() string {
	return "Drawable"
}

func (d *Drawable) Serialize() []Field {
	return []Field{
		{Name: "texture", Value: d.Texture},
	}
}

func (d *Drawable) Unserialize(variables map[string]string) {
	if v, ok := variables["texture"]; ok {
		d.Texture = v
	}
}
