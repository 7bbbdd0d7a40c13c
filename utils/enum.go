package utils

// CycleEnumPtr steps an enum in [0, max] by direction, wrapping at both ends
func CycleEnumPtr[T ~int](current *T, direction int, max T) {
	*current = (*current + T(direction) + max + 1) % (max + 1)
}
