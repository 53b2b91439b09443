// Package mapper holds generic helpers for converting entity slices.
package mapper

// MapSlice applies mapFunc to each element. The result is never nil so that
// empty lists encode as [] rather than null.
func MapSlice[T any, R any](items []T, mapFunc func(T) R) []R {
	result := make([]R, 0, len(items))
	for _, item := range items {
		result = append(result, mapFunc(item))
	}
	return result
}

// KeyBy indexes items by the key keyFunc returns. Later items win on
// duplicate keys.
func KeyBy[K comparable, T any](items []T, keyFunc func(T) K) map[K]T {
	result := make(map[K]T, len(items))
	for _, item := range items {
		result[keyFunc(item)] = item
	}
	return result
}
