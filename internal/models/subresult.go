package models

// SubResult is one arm of a fan-out. A degraded arm carries the reason
// instead of a payload; callers inspect the tag rather than string-match
// on error markers. A failing arm never aborts its siblings.
type SubResult[T any] struct {
	Value    T
	Degraded bool
	Reason   string
}

// OkResult wraps a successful sub-fetch payload.
func OkResult[T any](v T) SubResult[T] {
	return SubResult[T]{Value: v}
}

// DegradedResult records a non-load-bearing sub-fetch failure.
func DegradedResult[T any](reason string) SubResult[T] {
	return SubResult[T]{Degraded: true, Reason: reason}
}
