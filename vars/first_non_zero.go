package vars

// FirstNonZero picks the first set value, so flags can come before config
// files and config files before defaults.
func FirstNonZero[T comparable](values ...T) T {
	var zero T
	for _, value := range values {
		if value != zero {
			return value
		}
	}
	return zero
}
