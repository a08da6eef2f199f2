package optional

// Optional holds a value of type T or nothing. The zero value is empty.
type Optional[T any] struct {
	value T
	ok    bool
}

// Some wraps a present value
func Some[T any](value T) Optional[T] {
	return Optional[T]{value: value, ok: true}
}

// None returns an empty Optional
func None[T any]() Optional[T] {
	return Optional[T]{}
}

// FromPointer returns None for a nil pointer and Some of the pointed-to value otherwise
func FromPointer[T any](ptr *T) Optional[T] {
	if ptr == nil {
		return None[T]()
	}
	return Some(*ptr)
}

// Get returns the value and whether it is present
func (o Optional[T]) Get() (T, bool) {
	return o.value, o.ok
}

// IsPresent reports whether a value is held
func (o Optional[T]) IsPresent() bool {
	return o.ok
}

// OrElse returns the held value or fallback when empty
func (o Optional[T]) OrElse(fallback T) T {
	if o.ok {
		return o.value
	}
	return fallback
}
