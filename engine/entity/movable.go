package entity

import "github.com/swift2d/engine/engine/math"

// Movable gives an entity a velocity plus the speed the movement pass uses
// when a direction is applied.
type Movable struct {
	Velocity math.Vec2
	Speed    float32
}

func NewMovable() *Movable {
	return &Movable{}
}

func (m *Movable) TypeName() string {
	return "Movable"
}

func (m *Movable) Serialize() []Field {
	return []Field{
		{Name: "velocityX", Value: formatFloat(m.Velocity.X)},
		{Name: "velocityY", Value: formatFloat(m.Velocity.Y)},
		{Name: "speed", Value: formatFloat(m.Speed)},
	}
}

func (m *Movable) Unserialize(variables map[string]string) {
	if v, ok := variables["velocityX"]; ok {
		if f, ok := parseFloat(v); ok {
			m.Velocity.X = f
		}
	}
	if v, ok := variables["velocityY"]; ok {
		if f, ok := parseFloat(v); ok {
			m.Velocity.Y = f
		}
	}
	if v, ok := variables["speed"]; ok {
		if f, ok := parseFloat(v); ok {
			m.Speed = f
		}
	}
}
