package scripting

import (
	stdmath "math"
	"sort"

	lua "github.com/Shopify/go-lua"

	"github.com/swift2d/engine/engine/core"
	"github.com/swift2d/engine/engine/math"
)

// pushValue converts an engine-native value to the interpreter's
// representation and leaves it on top of the stack. Vectors become
// two-field tables, slices become 1-based array tables and string-keyed
// maps become tables with keys pushed in sorted order.
func pushValue(l *lua.State, v interface{}) error {
	switch t := v.(type) {
	case nil:
		l.PushNil()
	case bool:
		l.PushBoolean(t)
	case int:
		l.PushInteger(t)
	case int32:
		l.PushInteger(int(t))
	case int64:
		l.PushInteger(int(t))
	case uint32:
		l.PushInteger(int(t))
	case float32:
		l.PushNumber(float64(t))
	case float64:
		l.PushNumber(t)
	case string:
		l.PushString(t)
	case math.Vec2:
		l.NewTable()
		l.PushNumber(float64(t.X))
		l.SetField(-2, "x")
		l.PushNumber(float64(t.Y))
		l.SetField(-2, "y")
	case []string:
		l.NewTable()
		for i, s := range t {
			l.PushString(s)
			l.RawSetInt(-2, i+1)
		}
	case []int:
		l.NewTable()
		for i, n := range t {
			l.PushInteger(n)
			l.RawSetInt(-2, i+1)
		}
	case []float64:
		l.NewTable()
		for i, n := range t {
			l.PushNumber(n)
			l.RawSetInt(-2, i+1)
		}
	case []interface{}:
		l.NewTable()
		for i, e := range t {
			if err := pushValue(l, e); err != nil {
				l.Pop(1)
				return err
			}
			l.RawSetInt(-2, i+1)
		}
	case map[string]string:
		l.NewTable()
		for _, k := range sortedKeys(t) {
			l.PushString(t[k])
			l.SetField(-2, k)
		}
	case map[string]interface{}:
		l.NewTable()
		for _, k := range sortedKeys(t) {
			if err := pushValue(l, t[k]); err != nil {
				l.Pop(1)
				return err
			}
			l.SetField(-2, k)
		}
	default:
		return core.NewMarshalError("unsupported host value of type %T", v)
	}
	return nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// toValue reads the value at the given stack index back into an
// engine-native representation without consuming it.
func toValue(l *lua.State, index int) interface{} {
	switch l.TypeOf(index) {
	case lua.TypeString:
		value, _ := l.ToString(index)
		return value
	case lua.TypeNumber:
		value, _ := l.ToNumber(index)
		return normalizeNumber(value)
	case lua.TypeBoolean:
		return l.ToBoolean(index)
	case lua.TypeTable:
		return tableToGo(l, index)
	default:
		return nil
	}
}

func tableToMap(l *lua.State, index int) map[string]interface{} {
	output := map[string]interface{}{}
	if l.TypeOf(index) != lua.TypeTable {
		return output
	}

	index = l.AbsIndex(index)
	l.PushNil()
	for l.Next(index) {
		if l.TypeOf(-2) == lua.TypeString {
			key, _ := l.ToString(-2)
			output[key] = toValue(l, -1)
		}
		l.Pop(1)
	}
	return output
}

// tableToGo turns a table into a slice when its keys form the contiguous
// range 1..n, and into a string-keyed map otherwise.
func tableToGo(l *lua.State, index int) interface{} {
	if l.TypeOf(index) != lua.TypeTable {
		return nil
	}

	index = l.AbsIndex(index)
	isArray := true
	maxIndex := 0
	count := 0
	l.PushNil()
	for l.Next(index) {
		if isArray {
			if l.TypeOf(-2) != lua.TypeNumber {
				isArray = false
			} else if idx, ok := l.ToInteger(-2); ok && idx > 0 {
				count++
				if idx > maxIndex {
					maxIndex = idx
				}
			} else {
				isArray = false
			}
		}
		l.Pop(1)
	}

	if isArray && count > 0 && maxIndex == count {
		result := make([]interface{}, 0, maxIndex)
		for i := 1; i <= maxIndex; i++ {
			l.RawGetInt(index, i)
			result = append(result, toValue(l, -1))
			l.Pop(1)
		}
		return result
	}

	return tableToMap(l, index)
}

func normalizeNumber(value float64) interface{} {
	if stdmath.Mod(value, 1) == 0 {
		return int(value)
	}
	return value
}

// coerce converts a marshalled script value to the concrete type a host
// callable expects. Script numbers arrive as int when integral and float64
// otherwise, so numeric targets accept both.
func coerce[T any](v interface{}) (T, error) {
	var zero T
	if t, ok := v.(T); ok {
		return t, nil
	}
	switch any(zero).(type) {
	case int:
		if f, ok := v.(float64); ok {
			return any(int(f)).(T), nil
		}
	case float64:
		if i, ok := v.(int); ok {
			return any(float64(i)).(T), nil
		}
	case float32:
		switch n := v.(type) {
		case float64:
			return any(float32(n)).(T), nil
		case int:
			return any(float32(n)).(T), nil
		}
	case math.Vec2:
		if m, ok := v.(map[string]interface{}); ok {
			x, errX := coerce[float32](m["x"])
			y, errY := coerce[float32](m["y"])
			if errX == nil && errY == nil {
				return any(math.Vec2{X: x, Y: y}).(T), nil
			}
		}
	}
	return zero, core.NewMarshalError("cannot convert %T to %T", v, zero)
}
