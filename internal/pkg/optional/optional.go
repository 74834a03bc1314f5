// Package optional models a value that is either present or absent, so that
// "leave unchanged" and "set to the zero value" stay distinguishable.
package optional

// Value holds a T together with a presence flag. The zero Value is absent.
type Value[T any] struct {
	value   T
	present bool
}

// Of returns a present Value holding v.
func Of[T any](v T) Value[T] {
	return Value[T]{value: v, present: true}
}

// None returns an absent Value.
func None[T any]() Value[T] {
	return Value[T]{}
}

// FromPtr returns Of(*p) for a non-nil p and None otherwise.
func FromPtr[T any](p *T) Value[T] {
	if p == nil {
		return None[T]()
	}
	return Of(*p)
}

// IsPresent reports whether the value was supplied.
func (v Value[T]) IsPresent() bool {
	return v.present
}

// Get returns the held value and whether it is present.
func (v Value[T]) Get() (T, bool) {
	return v.value, v.present
}

// OrElse returns the held value, or fallback when absent.
func (v Value[T]) OrElse(fallback T) T {
	if !v.present {
		return fallback
	}
	return v.value
}

// Ptr returns a pointer to a copy of the held value, or nil when absent.
func (v Value[T]) Ptr() *T {
	if !v.present {
		return nil
	}
	value := v.value
	return &value
}
