package gen

import "github.com/syssam/scaffold/schema/field"

// NameFormatter renders target-language spellings for the emitters.
type NameFormatter interface {
	// TypeName returns the target-language type name for the given
	// value type. Nillable selects the absent-capable rendering for
	// value kinds (e.g. "int?" in C#); reference kinds are returned
	// unchanged.
	TypeName(t field.TypeInfo, nillable bool) string
	// Literal quotes s as a string literal, escaping as the target
	// language requires.
	Literal(s string) string
}

// ClassEmitter generates the complete source text of one class from one
// entity. Implementations are pure: two calls with an unmodified entity
// yield byte-identical text, and no state is retained between calls.
type ClassEmitter interface {
	// Extension returns the filename extension of emitted files,
	// including the leading dot.
	Extension() string
	// Generate returns the class text for the entity inside the given
	// namespace (or package). When markup is enabled the output carries
	// declarative schema markup on the class and its members, in target
	// languages that have such a construct.
	//
	// Generate fails only with an ArgumentError, and only for a nil
	// entity or an empty namespace.
	Generate(entity *Entity, namespace string, markup bool) (string, error)
}
