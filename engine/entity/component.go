package entity

import "strconv"

// Field is one serialized component variable, in declaration order.
type Field struct {
	Name  string
	Value string
}

// Component is a named, polymorphic data record attached to an entity.
// Serialize returns ordered field/value pairs; Unserialize tolerates unknown
// and missing fields so old save files keep loading.
type Component interface {
	TypeName() string
	Serialize() []Field
	Unserialize(variables map[string]string)
}

// constructors is the closed name-to-variant table built at startup. The
// component set is fixed; adding a type means adding a row here.
var constructors = map[string]func() Component{
	"Physical": func() Component { return NewPhysical() },
	"Movable":  func() Component { return NewMovable() },
	"Drawable": func() Component { return NewDrawable() },
	"Name":     func() Component { return NewName() },
}

// NewComponent constructs a component of the named concrete type.
func NewComponent(typeName string) (Component, bool) {
	ctor, ok := constructors[typeName]
	if !ok {
		return nil, false
	}
	return ctor(), true
}

func formatFloat(f float32) string {
	return strconv.FormatFloat(float64(f), 'g', -1, 32)
}

func parseFloat(s string) (float32, bool) {
	f, err := strconv.ParseFloat(s, 32)
	if err != nil {
		return 0, false
	}
	return float32(f), true
}

func formatUint(n uint32) string {
	return strconv.FormatUint(uint64(n), 10)
}

func parseUint(s string) (uint32, bool) {
	n, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, false
	}
	return uint32(n), true
}
