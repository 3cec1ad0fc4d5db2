package math

// Vec2 represents a 2D vector
type Vec2 struct {
	X, Y float32
}

// Vec2u represents a 2D vector of unsigned sizes (tile counts, pixel sizes).
type Vec2u struct {
	X, Y uint32
}

func NewVec2(x, y float32) Vec2 {
	return Vec2{X: x, Y: y}
}

func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{X: v.X + o.X, Y: v.Y + o.Y}
}

func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{X: v.X - o.X, Y: v.Y - o.Y}
}

func (v Vec2) Scale(s float32) Vec2 {
	return Vec2{X: v.X * s, Y: v.Y * s}
}
