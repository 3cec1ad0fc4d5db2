package core

import "fmt"

// MarshalError reports a type or arity mismatch at the host/script boundary.
// It is recoverable: the interpreter layer surfaces it as a script runtime
// error and only the offending call aborts.
type MarshalError struct {
	Reason string
}

func (e *MarshalError) Error() string {
	return "marshal: " + e.Reason
}

func NewMarshalError(format string, args ...interface{}) *MarshalError {
	return &MarshalError{Reason: fmt.Sprintf(format, args...)}
}

// ScriptRuntimeError carries the interpreter's error text for a failed
// script call. It propagates to the caller instead of taking the engine down.
type ScriptRuntimeError struct {
	Script  string
	Message string
}

func (e *ScriptRuntimeError) Error() string {
	if e.Script == "" {
		return "script: " + e.Message
	}
	return "script " + e.Script + ": " + e.Message
}

// PersistenceError reports a save file open/parse/write failure.
type PersistenceError struct {
	Op   string
	Path string
	Err  error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s %q: %v", e.Op, e.Path, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// ResourceLoadError reports a single asset that failed to load. The failed
// entry is discarded by the asset manager, so a partial failure never leaves
// a malformed record in the store.
type ResourceLoadError struct {
	Path string
	Err  error
}

func (e *ResourceLoadError) Error() string {
	return fmt.Sprintf("load resource %q: %v", e.Path, e.Err)
}

func (e *ResourceLoadError) Unwrap() error {
	return e.Err
}
