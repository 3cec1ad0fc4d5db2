package entity

import "github.com/google/uuid"

// Entity is an opaque identity owning zero or more components. It has no
// behavior of its own; systems operate on the components. An entity is owned
// exclusively by its world and destroyed by explicit removal.
type Entity struct {
	id         uuid.UUID
	components []Component
}

func NewEntity() *Entity {
	return &Entity{id: uuid.New()}
}

func (e *Entity) ID() uuid.UUID {
	return e.id
}

// Add constructs and attaches a component of the named concrete type. If the
// entity already has one it is returned unchanged; a second Add with the
// same name is a no-op. Unknown type names return nil.
func (e *Entity) Add(typeName string) Component {
	if existing := e.Get(typeName); existing != nil {
		return existing
	}
	c, ok := NewComponent(typeName)
	if !ok {
		return nil
	}
	e.components = append(e.components, c)
	return c
}

// Get returns the component of the named type, nil when absent. Callers
// either check Has first or treat absence as non-fatal.
func (e *Entity) Get(typeName string) Component {
	for _, c := range e.components {
		if c.TypeName() == typeName {
			return c
		}
	}
	return nil
}

func (e *Entity) Has(typeName string) bool {
	return e.Get(typeName) != nil
}

// Components returns the owned components in attachment order, which keeps
// serialization deterministic.
func (e *Entity) Components() []Component {
	return e.components
}

// Get returns the entity's component of concrete type T.
func Get[T Component](e *Entity) (T, bool) {
	for _, c := range e.components {
		if t, ok := c.(T); ok {
			return t, true
		}
	}
	var zero T
	return zero, false
}

// Has reports whether the entity owns a component of concrete type T.
func Has[T Component](e *Entity) bool {
	_, ok := Get[T](e)
	return ok
}
