package ai

// Parsed is the outcome of scraping structured data out of free-form model
// text. Fallback is set when Value is a default rather than what the model
// produced; Reason says why.
type Parsed[T any] struct {
	Value    T
	Fallback bool
	Reason   string
}

func Ok[T any](v T) Parsed[T] {
	return Parsed[T]{Value: v}
}

func FallbackTo[T any](v T, reason string) Parsed[T] {
	return Parsed[T]{Value: v, Fallback: true, Reason: reason}
}
