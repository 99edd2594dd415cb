package ports

// ValueIterator is a one-shot iterator over header or attribute values.
// Once exhausted it cannot be restarted.
type ValueIterator interface {
	Next() bool
	Value() string
}

// HeaderView is the read side of a request whose headers may carry
// synthesized values layered over the natively received ones.
type HeaderView interface {
	// FirstValue returns the native value if present, otherwise the first
	// synthesized value.
	FirstValue(name string) (string, bool)

	// AllValues iterates native values followed by synthesized values.
	AllValues(name string) ValueIterator

	// Names iterates the union of native and synthesized names.
	Names() ValueIterator
}
