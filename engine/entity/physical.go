package entity

import "github.com/swift2d/engine/engine/math"

// Physical gives an entity a position and a size in world space.
type Physical struct {
	Position         math.Vec2
	PreviousPosition math.Vec2
	Size             math.Vec2u
}

func NewPhysical() *Physical {
	return &Physical{}
}

func (p *Physical) TypeName() string {
	return "Physical"
}

func (p *Physical) Serialize() []Field {
	return []Field{
		{Name: "positionX", Value: formatFloat(p.Position.X)},
		{Name: "positionY", Value: formatFloat(p.Position.Y)},
		{Name: "sizeX", Value: formatUint(p.Size.X)},
		{Name: "sizeY", Value: formatUint(p.Size.Y)},
	}
}

func (p *Physical) Unserialize(variables map[string]string) {
	if v, ok := variables["positionX"]; ok {
		if f, ok := parseFloat(v); ok {
			p.Position.X = f
		}
	}
	if v, ok := variables["positionY"]; ok {
		if f, ok := parseFloat(v); ok {
			p.Position.Y = f
		}
	}
	if v, ok := variables["sizeX"]; ok {
		if n, ok := parseUint(v); ok {
			p.Size.X = n
		}
	}
	if v, ok := variables["sizeY"]; ok {
		if n, ok := parseUint(v); ok {
			p.Size.Y = n
		}
	}
}
