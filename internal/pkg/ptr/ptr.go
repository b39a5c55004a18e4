package ptr

func To[T any](v T) *T {
	return &v
}

// NilIfZero maps the zero value to nil, for optional columns.
func NilIfZero[T comparable](v T) *T {
	var zero T
	if v == zero {
		return nil
	}
	return &v
}
