package ptr

// To returns a pointer to the given value. Handy for optional DTO fields
// and test fixtures.
func To[T any](v T) *T {
	return &v
}

func Deref[T any](p *T, fallback T) T {
	if p == nil {
		return fallback
	}
	return *p
}
