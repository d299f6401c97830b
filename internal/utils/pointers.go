package utils

// Ptr returns a pointer to v. Useful for building partial updates whose unset
// fields are nil.
func Ptr[T any](v T) *T {
	return &v
}

// Value dereferences v, or returns the zero value when v is nil.
func Value[T any](v *T) T {
	if v == nil {
		return *new(T)
	}
	return *v
}
