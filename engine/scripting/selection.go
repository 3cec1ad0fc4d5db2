package scripting

import (
	lua "github.com/Shopify/go-lua"

	"github.com/swift2d/engine/engine/core"
	"github.com/swift2d/engine/engine/math"
)

type selectionKind int

const (
	// a named script global
	selGlobal selectionKind = iota
	// a field of the enclosing selection
	selField
	// a 1-based array element of the enclosing selection
	selElement
	// a live call result at a fixed stack slot
	selResult
	// the empty selection produced by a call with no results
	selNone
)

// Selection is a handle to a script global, a table field, an array element
// or the result(s) of a just-executed call. Indexing never fails by itself;
// absence only surfaces as a MarshalError once a conversion is requested.
type Selection struct {
	state    *lua.State
	registry *Registry
	owner    string

	kind   selectionKind
	name   string
	n      int
	parent *Selection
}

// resolve pushes the referenced value onto the stack. Exactly one value is
// pushed on success; missing fields resolve to nil.
func (s *Selection) resolve() {
	switch s.kind {
	case selNone:
		s.state.PushNil()
	case selGlobal:
		s.state.Global(s.name)
	case selField:
		s.parent.resolve()
		if s.state.TypeOf(-1) == lua.TypeTable {
			s.state.Field(-1, s.name)
		} else {
			s.state.PushNil()
		}
		s.state.Remove(-2)
	case selElement:
		s.parent.resolve()
		if s.state.TypeOf(-1) == lua.TypeTable {
			s.state.RawGetInt(-1, s.n)
		} else {
			s.state.PushNil()
		}
		s.state.Remove(-2)
	case selResult:
		s.state.PushValue(s.n)
	}
}

func (s *Selection) describe() string {
	switch s.kind {
	case selField:
		return s.parent.describe() + "." + s.name
	case selElement:
		return s.parent.describe()
	case selNone:
		return "(empty)"
	default:
		return s.name
	}
}

// Call invokes the named global as a function, packing the given host values
// as arguments. A script-side failure comes back as a ScriptRuntimeError
// carrying the interpreter's message; the engine keeps running. The returned
// selection addresses the call's results, or is empty when there are none.
func (s *Selection) Call(args ...interface{}) (*Selection, error) {
	base := s.state.Top()
	s.state.Global(s.name)

	for _, a := range args {
		if err := pushValue(s.state, a); err != nil {
			s.state.SetTop(base)
			return nil, err
		}
	}

	if err := s.state.ProtectedCall(len(args), lua.MultipleReturns, 0); err != nil {
		msg := err.Error()
		s.state.SetTop(base)
		return nil, &core.ScriptRuntimeError{Script: s.owner, Message: msg}
	}

	nresults := s.state.Top() - base
	if nresults == 0 {
		return &Selection{state: s.state, registry: s.registry, owner: s.owner, kind: selNone}, nil
	}
	return &Selection{
		state:    s.state,
		registry: s.registry,
		owner:    s.owner,
		kind:     selResult,
		name:     s.name + " return",
		n:        base + 1,
	}, nil
}

// Results extracts a fixed-arity tuple from the most recent call's results
// into the given pointers, left to right, matching the script function's
// `return a, b, c`.
func (s *Selection) Results(out ...interface{}) error {
	if s.kind != selResult {
		return core.NewMarshalError("%s has no call results", s.describe())
	}
	avail := s.state.Top() - s.n + 1
	if len(out) > avail {
		return core.NewMarshalError("%s has %d results, want %d", s.describe(), avail, len(out))
	}
	for i, o := range out {
		if err := assign(toValue(s.state, s.n+i), o); err != nil {
			return err
		}
	}
	return nil
}

// Set binds a host value as the named script global. Registering a Callable
// routes through the registry so the function's lifetime is tied to the
// interpreter state.
func (s *Selection) Set(v interface{}) error {
	if s.kind != selGlobal {
		return core.NewMarshalError("cannot assign to %s", s.describe())
	}
	if c, ok := v.(Callable); ok {
		s.registry.Register(s.name, c)
		return nil
	}
	if err := pushValue(s.state, v); err != nil {
		return err
	}
	s.state.SetGlobal(s.name)
	return nil
}

// Field returns a child selection referencing a table field. No script code
// runs; a missing key is only observable at conversion time.
func (s *Selection) Field(name string) *Selection {
	return &Selection{state: s.state, registry: s.registry, owner: s.owner, kind: selField, name: name, parent: s}
}

// At returns a child selection referencing the i-th (1-based) array element.
func (s *Selection) At(i int) *Selection {
	return &Selection{state: s.state, registry: s.registry, owner: s.owner, kind: selElement, n: i, parent: s}
}

// Type reports the interpreter-side type of the referenced value.
func (s *Selection) Type() lua.Type {
	s.resolve()
	t := s.state.TypeOf(-1)
	s.state.Pop(1)
	return t
}

func (s *Selection) Number() (float64, error) {
	s.resolve()
	defer s.state.Pop(1)
	if s.state.TypeOf(-1) != lua.TypeNumber {
		return 0, core.NewMarshalError("%s is not a number", s.describe())
	}
	n, _ := s.state.ToNumber(-1)
	return n, nil
}

func (s *Selection) Int() (int, error) {
	n, err := s.Number()
	if err != nil {
		return 0, err
	}
	return int(n), nil
}

func (s *Selection) Bool() (bool, error) {
	s.resolve()
	defer s.state.Pop(1)
	if s.state.TypeOf(-1) != lua.TypeBoolean {
		return false, core.NewMarshalError("%s is not a boolean", s.describe())
	}
	return s.state.ToBoolean(-1), nil
}

func (s *Selection) String() (string, error) {
	s.resolve()
	switch s.state.TypeOf(-1) {
	case lua.TypeString, lua.TypeNumber:
		str, _ := s.state.ToString(-1)
		s.state.Pop(1)
		return str, nil
	}
	s.state.Pop(1)
	return "", core.NewMarshalError("%s is not a string", s.describe())
}

func (s *Selection) Vec2() (math.Vec2, error) {
	table, err := s.Table()
	if err != nil {
		return math.Vec2{}, err
	}
	return coerce[math.Vec2](table)
}

// Numbers converts the selection to an ordered numeric sequence.
func (s *Selection) Numbers() ([]float64, error) {
	seq, err := s.sequence()
	if err != nil {
		return nil, err
	}
	out := make([]float64, len(seq))
	for i, v := range seq {
		n, err := coerce[float64](v)
		if err != nil {
			return nil, err
		}
		out[i] = n
	}
	return out, nil
}

// Strings converts the selection to an ordered string sequence.
func (s *Selection) Strings() ([]string, error) {
	seq, err := s.sequence()
	if err != nil {
		return nil, err
	}
	out := make([]string, len(seq))
	for i, v := range seq {
		str, ok := v.(string)
		if !ok {
			return nil, core.NewMarshalError("%s element %d is not a string", s.describe(), i+1)
		}
		out[i] = str
	}
	return out, nil
}

// Table converts the selection to a string-keyed mapping.
func (s *Selection) Table() (map[string]interface{}, error) {
	s.resolve()
	defer s.state.Pop(1)
	if s.state.TypeOf(-1) != lua.TypeTable {
		return nil, core.NewMarshalError("%s is not a table", s.describe())
	}
	return tableToMap(s.state, -1), nil
}

// Value reads the selection as a generic engine-native value.
func (s *Selection) Value() interface{} {
	s.resolve()
	defer s.state.Pop(1)
	return toValue(s.state, -1)
}

func (s *Selection) sequence() ([]interface{}, error) {
	s.resolve()
	defer s.state.Pop(1)
	if s.state.TypeOf(-1) != lua.TypeTable {
		return nil, core.NewMarshalError("%s is not a sequence", s.describe())
	}
	v := tableToGo(s.state, -1)
	if seq, ok := v.([]interface{}); ok {
		return seq, nil
	}
	if m, ok := v.(map[string]interface{}); ok && len(m) == 0 {
		return nil, nil
	}
	return nil, core.NewMarshalError("%s is not a sequence", s.describe())
}

// assign writes a marshalled value into a typed destination pointer.
func assign(v interface{}, out interface{}) error {
	switch p := out.(type) {
	case *interface{}:
		*p = v
	case *float64:
		n, err := coerce[float64](v)
		if err != nil {
			return err
		}
		*p = n
	case *float32:
		n, err := coerce[float32](v)
		if err != nil {
			return err
		}
		*p = n
	case *int:
		n, err := coerce[int](v)
		if err != nil {
			return err
		}
		*p = n
	case *string:
		s, ok := v.(string)
		if !ok {
			return core.NewMarshalError("cannot convert %T to string", v)
		}
		*p = s
	case *bool:
		b, ok := v.(bool)
		if !ok {
			return core.NewMarshalError("cannot convert %T to bool", v)
		}
		*p = b
	case *math.Vec2:
		vec, err := coerce[math.Vec2](v)
		if err != nil {
			return err
		}
		*p = vec
	case *map[string]interface{}:
		m, ok := v.(map[string]interface{})
		if !ok {
			return core.NewMarshalError("cannot convert %T to mapping", v)
		}
		*p = m
	default:
		return core.NewMarshalError("unsupported destination type %T", out)
	}
	return nil
}
