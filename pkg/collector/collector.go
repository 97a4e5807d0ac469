package collector

import "fmt"

// Source is the value protocol every form input exposes. Value returns the
// input's current committed value and never lags a prior SetValue or user
// commit. SetValue pushes a new value into the input, refreshing its display
// state without firing its change callback.
type Source interface {
	Value() any
	SetValue(value any) error
}

// Handle is a typed view over a Source. The zero Handle is invalid; use For
// to build one.
type Handle[T any] struct {
	src Source
}

// For wraps src in a typed handle.
func For[T any](src Source) Handle[T] {
	return Handle[T]{src: src}
}

// Valid reports whether the handle is bound to a source.
func (h Handle[T]) Valid() bool {
	return h.src != nil
}

// Get returns the source's current value. A nil or mismatched value yields
// the zero value of T.
func (h Handle[T]) Get() T {
	var zero T
	if h.src == nil {
		return zero
	}
	v, ok := h.src.Value().(T)
	if !ok {
		return zero
	}
	return v
}

// Set pushes v into the source without firing its change callback.
func (h Handle[T]) Set(v T) error {
	if h.src == nil {
		return fmt.Errorf("collector: handle is not bound")
	}
	return h.src.SetValue(v)
}

// Source returns the underlying untyped source.
func (h Handle[T]) Source() Source {
	return h.src
}
