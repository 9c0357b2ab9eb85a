// Package field describes the semantic value types of scaffolded properties.
//
// A Kind names the abstract value type a database column maps to (string,
// 32-bit integer, timestamp, ...), independent of any target language. The
// language emitters translate a Kind into a concrete type name, so the same
// metadata model can drive C# and Go output.
package field

import "fmt"

// Kind is the semantic value type of a property.
type Kind uint8

// Kinds of property value types.
const (
	KindInvalid Kind = iota
	KindBool
	KindInt16
	KindInt32
	KindInt64
	KindFloat32
	KindFloat64
	KindDecimal
	KindString
	KindTime
	KindUUID
	KindBytes
	// KindOther is a value type outside the built-in set. The concrete
	// target-language name and import namespace travel on the TypeInfo.
	KindOther
	endKinds
)

var kindNames = [...]string{
	KindInvalid: "invalid",
	KindBool:    "bool",
	KindInt16:   "int16",
	KindInt32:   "int32",
	KindInt64:   "int64",
	KindFloat32: "float32",
	KindFloat64: "float64",
	KindDecimal: "decimal",
	KindString:  "string",
	KindTime:    "time",
	KindUUID:    "uuid",
	KindBytes:   "bytes",
	KindOther:   "other",
}

// String returns the kind name used in schema descriptions.
func (k Kind) String() string {
	if k < endKinds {
		return kindNames[k]
	}
	return kindNames[KindInvalid]
}

// ParseKind returns the kind named by s in a schema description.
func ParseKind(s string) (Kind, error) {
	for k := KindBool; k < endKinds; k++ {
		if kindNames[k] == s {
			return k, nil
		}
	}
	return KindInvalid, fmt.Errorf("field: unknown kind %q", s)
}

// Valid reports if the kind is one of the declared kinds.
func (k Kind) Valid() bool {
	return k > KindInvalid && k < endKinds
}

// Numeric reports if the kind is an integer or floating-point kind.
func (k Kind) Numeric() bool {
	return k >= KindInt16 && k <= KindDecimal
}

// TypeInfo holds the value-type information of a property.
type TypeInfo struct {
	Kind Kind
	// Ident is the concrete target-language type name for KindOther,
	// e.g. "Geometry".
	Ident string
	// Namespace is the import namespace Ident lives in, e.g.
	// "NetTopologySuite.Geometries". Empty for built-in kinds.
	Namespace string
}

// Nullable reports whether the type itself can represent an absent value.
// Reference-shaped kinds (strings, byte arrays, custom class types) can;
// plain value kinds cannot and need an explicit optional wrapper instead.
func (t TypeInfo) Nullable() bool {
	switch t.Kind {
	case KindString, KindBytes, KindOther:
		return true
	default:
		return false
	}
}

// String returns the kind name, or the custom identifier for KindOther.
func (t TypeInfo) String() string {
	if t.Kind == KindOther && t.Ident != "" {
		return t.Ident
	}
	return t.Kind.String()
}
