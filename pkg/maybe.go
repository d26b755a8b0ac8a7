package pkg

import "fmt"

// Maybe holds an optional value. The zero value is empty.
//
// Maybe is comparable whenever T is, so it can be used inside map keys.
type Maybe[T any] struct {
	value T
	ok    bool
}

// Some wraps a present value.
func Some[T any](value T) Maybe[T] {
	return Maybe[T]{value: value, ok: true}
}

// None returns an empty Maybe.
func None[T any]() Maybe[T] {
	return Maybe[T]{}
}

// FromPointer returns Some(*p) for a non-nil pointer and None otherwise.
func FromPointer[T any](p *T) Maybe[T] {
	if p == nil {
		return None[T]()
	}

	return Some(*p)
}

// Get returns the value and whether it is present.
func (m Maybe[T]) Get() (T, bool) {
	return m.value, m.ok
}

// IsSome reports whether a value is present.
func (m Maybe[T]) IsSome() bool {
	return m.ok
}

// IsNone reports whether the value is absent.
func (m Maybe[T]) IsNone() bool {
	return !m.ok
}

// OrElse returns the value or fallback when empty.
func (m Maybe[T]) OrElse(fallback T) T {
	if m.ok {
		return m.value
	}

	return fallback
}

// Pointer returns a pointer to a copy of the value, or nil.
func (m Maybe[T]) Pointer() *T {
	if !m.ok {
		return nil
	}

	v := m.value

	return &v
}

func (m Maybe[T]) String() string {
	if !m.ok {
		return "none"
	}

	return fmt.Sprintf("%v", m.value)
}
