package utils

// ValueOr dereferences v, falling back to def for a nil pointer.
func ValueOr[T any](v *T, def T) T {
	if v == nil {
		return def
	}
	return *v
}

// Ptr is used for the optional fields of create and patch payloads.
func Ptr[T any](v T) *T {
	return &v
}
