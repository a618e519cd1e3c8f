package vars

// FirstNonZero returns the first value that is not the zero value, in argument order.
// Flag values go first so they override config files.
func FirstNonZero[T comparable](values ...T) T {
	for _, value := range values {
		var zero T
		if value == zero {
			continue
		}
		return value
	}
	var zero T
	return zero
}
