package scripting

import (
	lua "github.com/Shopify/go-lua"

	"github.com/swift2d/engine/engine/core"
)

// Callable is the closed interface every host function exposed to scripts is
// wrapped in. Arguments arrive already marshalled; results are marshalled on
// the way back out. A returned *core.MarshalError aborts the script call with
// a script-visible runtime error.
type Callable interface {
	Arity() int
	Invoke(args []interface{}) ([]interface{}, error)
}

// Adapter shapes, one per supported (return, arity) combination. Host code
// wraps plain functions in the matching shape when registering them.

type Action0 func()

func (f Action0) Arity() int { return 0 }

func (f Action0) Invoke([]interface{}) ([]interface{}, error) {
	f()
	return nil, nil
}

type Action1[A any] func(A)

func (f Action1[A]) Arity() int { return 1 }

func (f Action1[A]) Invoke(args []interface{}) ([]interface{}, error) {
	a, err := coerce[A](args[0])
	if err != nil {
		return nil, err
	}
	f(a)
	return nil, nil
}

type Action2[A, B any] func(A, B)

func (f Action2[A, B]) Arity() int { return 2 }

func (f Action2[A, B]) Invoke(args []interface{}) ([]interface{}, error) {
	a, err := coerce[A](args[0])
	if err != nil {
		return nil, err
	}
	b, err := coerce[B](args[1])
	if err != nil {
		return nil, err
	}
	f(a, b)
	return nil, nil
}

type Action3[A, B, C any] func(A, B, C)

func (f Action3[A, B, C]) Arity() int { return 3 }

func (f Action3[A, B, C]) Invoke(args []interface{}) ([]interface{}, error) {
	a, err := coerce[A](args[0])
	if err != nil {
		return nil, err
	}
	b, err := coerce[B](args[1])
	if err != nil {
		return nil, err
	}
	c, err := coerce[C](args[2])
	if err != nil {
		return nil, err
	}
	f(a, b, c)
	return nil, nil
}

type Func0[R any] func() R

func (f Func0[R]) Arity() int { return 0 }

func (f Func0[R]) Invoke([]interface{}) ([]interface{}, error) {
	return []interface{}{f()}, nil
}

type Func1[A, R any] func(A) R

func (f Func1[A, R]) Arity() int { return 1 }

func (f Func1[A, R]) Invoke(args []interface{}) ([]interface{}, error) {
	a, err := coerce[A](args[0])
	if err != nil {
		return nil, err
	}
	return []interface{}{f(a)}, nil
}

type Func2[A, B, R any] func(A, B) R

func (f Func2[A, B, R]) Arity() int { return 2 }

func (f Func2[A, B, R]) Invoke(args []interface{}) ([]interface{}, error) {
	a, err := coerce[A](args[0])
	if err != nil {
		return nil, err
	}
	b, err := coerce[B](args[1])
	if err != nil {
		return nil, err
	}
	return []interface{}{f(a, b)}, nil
}

type Func3[A, B, C, R any] func(A, B, C) R

func (f Func3[A, B, C, R]) Arity() int { return 3 }

func (f Func3[A, B, C, R]) Invoke(args []interface{}) ([]interface{}, error) {
	a, err := coerce[A](args[0])
	if err != nil {
		return nil, err
	}
	b, err := coerce[B](args[1])
	if err != nil {
		return nil, err
	}
	c, err := coerce[C](args[2])
	if err != nil {
		return nil, err
	}
	return []interface{}{f(a, b, c)}, nil
}

// Func0R2 returns a pair, for script-side destructuring assignment.
type Func0R2[R1, R2 any] func() (R1, R2)

func (f Func0R2[R1, R2]) Arity() int { return 0 }

func (f Func0R2[R1, R2]) Invoke([]interface{}) ([]interface{}, error) {
	r1, r2 := f()
	return []interface{}{r1, r2}, nil
}

type Func1R2[A, R1, R2 any] func(A) (R1, R2)

func (f Func1R2[A, R1, R2]) Arity() int { return 1 }

func (f Func1R2[A, R1, R2]) Invoke(args []interface{}) ([]interface{}, error) {
	a, err := coerce[A](args[0])
	if err != nil {
		return nil, err
	}
	r1, r2 := f(a)
	return []interface{}{r1, r2}, nil
}

// Registry owns the host callables exposed to one interpreter state. Entries
// live as long as the state; re-registering a name releases the previous
// wrapper and rebinds the script global.
type Registry struct {
	state   *lua.State
	entries map[string]Callable
}

func NewRegistry(l *lua.State) *Registry {
	return &Registry{
		state:   l,
		entries: make(map[string]Callable),
	}
}

// Register stores the callable under name and binds it as a script global.
// The trampoline resolves the entry at call time, so replacement takes
// effect even for script code that captured the old global.
func (r *Registry) Register(name string, c Callable) {
	r.entries[name] = c
	r.state.PushGoFunction(r.trampoline(name))
	r.state.SetGlobal(name)
}

func (r *Registry) Lookup(name string) (Callable, bool) {
	c, ok := r.entries[name]
	return c, ok
}

func (r *Registry) trampoline(name string) lua.Function {
	return func(l *lua.State) int {
		c, ok := r.entries[name]
		if !ok {
			lua.Errorf(l, "no host function %q", name)
			return 0
		}

		n := l.Top()
		if n != c.Arity() {
			err := core.NewMarshalError("%s expects %d arguments, got %d", name, c.Arity(), n)
			lua.Errorf(l, "%s", err.Error())
			return 0
		}

		args := make([]interface{}, n)
		for i := 1; i <= n; i++ {
			args[i-1] = toValue(l, i)
		}

		results, err := c.Invoke(args)
		if err != nil {
			lua.Errorf(l, "%s: %s", name, err.Error())
			return 0
		}

		for _, res := range results {
			if perr := pushValue(l, res); perr != nil {
				lua.Errorf(l, "%s: %s", name, perr.Error())
				return 0
			}
		}
		return len(results)
	}
}
