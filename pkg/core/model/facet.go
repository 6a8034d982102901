package model

// Origin records who produced a facet value
type Origin int

const (
	// OriginNone marks an absent facet (never written)
	OriginNone Origin = iota
	// OriginManual marks a value set explicitly by a person. The engine never overwrites it.
	OriginManual
	// OriginGenerated marks a value produced by the assignment engine
	OriginGenerated
)

func (o Origin) String() string {
	switch o {
	case OriginManual:
		return "manual"
	case OriginGenerated:
		return "generated"
	default:
		return "none"
	}
}

// Facet is a value tagged with its origin, so the value and its provenance cannot drift apart.
// The zero value is an absent facet.
type Facet[T any] struct {
	value  T
	origin Origin
}

// Manual tags v as set by a person
func Manual[T any](v T) Facet[T] {
	return Facet[T]{value: v, origin: OriginManual}
}

// Generated tags v as produced by the engine
func Generated[T any](v T) Facet[T] {
	return Facet[T]{value: v, origin: OriginGenerated}
}

// Value returns the facet value, or the zero value of T when absent
func (f Facet[T]) Value() T {
	return f.value
}

func (f Facet[T]) Origin() Origin {
	return f.origin
}

func (f Facet[T]) IsSet() bool {
	return f.origin != OriginNone
}

func (f Facet[T]) IsManual() bool {
	return f.origin == OriginManual
}

func (f Facet[T]) IsGenerated() bool {
	return f.origin == OriginGenerated
}
