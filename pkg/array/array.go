package array

// Returns the index of the first element that is true on the condition.
// Otherwise, returns -1.
func Some[T any](arr []T, cond func(T) bool) int {
	for i := 0; i < len(arr); i++ {
		if cond(arr[i]) {
			return i
		}
	}
	return -1
}

// Returns true if the array contains the given value.
func Contains[T comparable](arr []T, value T) bool {
	return Some(arr, func(elem T) bool {
		return elem == value
	}) > -1
}

// Removes the last element of the array and returns it along with the
// shortened array. The boolean is false when the array is empty.
func Pop[T any](arr []T) ([]T, T, bool) {
	var last T
	if len(arr) == 0 {
		return arr, last, false
	}
	last = arr[len(arr)-1]
	return arr[:len(arr)-1], last, true
}

// Returns a copy of the array that shares no backing storage with it.
func Clone[T any](arr []T) []T {
	if arr == nil {
		return nil
	}
	p := make([]T, len(arr))
	copy(p, arr)
	return p
}
