package vars

// DerefOrZero returns *ptr, or the zero value for nil.
func DerefOrZero[T any](ptr *T) (ret T) {
	if ptr == nil {
		return
	}
	return *ptr
}
