// Package analytics derives report view-models from the product, customer,
// and transaction collections. Every function is pure: inputs are never
// modified, there is no I/O, and the current time is always passed in.
package analytics

// truncate caps s at limit entries; a negative limit yields an empty result
func truncate[T any](s []T, limit int) []T {
	if limit < 0 {
		limit = 0
	}
	if len(s) > limit {
		return s[:limit]
	}
	return s
}
