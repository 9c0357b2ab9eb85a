package inspect

import (
	"strconv"
	"strings"

	"github.com/syssam/scaffold/schema/field"
)

// storeKinds maps normalized store-type bases to semantic value kinds.
// The table is shared across dialects; dialect-specific synonyms all
// normalize onto these bases.
var storeKinds = map[string]field.Kind{
	"bool":                        field.KindBool,
	"boolean":                     field.KindBool,
	"tinyint":                     field.KindBool,
	"smallint":                    field.KindInt16,
	"int2":                        field.KindInt16,
	"int":                         field.KindInt32,
	"integer":                     field.KindInt32,
	"int4":                        field.KindInt32,
	"mediumint":                   field.KindInt32,
	"serial":                      field.KindInt32,
	"bigint":                      field.KindInt64,
	"int8":                        field.KindInt64,
	"bigserial":                   field.KindInt64,
	"real":                        field.KindFloat32,
	"float4":                      field.KindFloat32,
	"float":                       field.KindFloat64,
	"double":                      field.KindFloat64,
	"double precision":            field.KindFloat64,
	"float8":                      field.KindFloat64,
	"decimal":                     field.KindDecimal,
	"numeric":                     field.KindDecimal,
	"money":                       field.KindDecimal,
	"char":                        field.KindString,
	"character":                   field.KindString,
	"varchar":                     field.KindString,
	"character varying":           field.KindString,
	"nchar":                       field.KindString,
	"nvarchar":                    field.KindString,
	"text":                        field.KindString,
	"tinytext":                    field.KindString,
	"mediumtext":                  field.KindString,
	"longtext":                    field.KindString,
	"clob":                        field.KindString,
	"json":                        field.KindString,
	"jsonb":                       field.KindString,
	"xml":                         field.KindString,
	"enum":                        field.KindString,
	"date":                        field.KindTime,
	"datetime":                    field.KindTime,
	"timestamp":                   field.KindTime,
	"timestamptz":                 field.KindTime,
	"timestamp with time zone":    field.KindTime,
	"timestamp without time zone": field.KindTime,
	"uuid":                        field.KindUUID,
	"uniqueidentifier":            field.KindUUID,
	"blob":                        field.KindBytes,
	"tinyblob":                    field.KindBytes,
	"mediumblob":                  field.KindBytes,
	"longblob":                    field.KindBytes,
	"bytea":                       field.KindBytes,
	"binary":                      field.KindBytes,
	"varbinary":                   field.KindBytes,
}

// mapStoreType maps a raw store type such as "varchar(200)" to its
// semantic value type, the declared maximum length when the store type
// carries one, and the column-type annotation to record. The annotation
// is recorded only when the store type carries facts the value type
// alone does not imply (precision, unsigned ranges, unknown types).
func mapStoreType(storeType string) (field.TypeInfo, *int, string) {
	base, args := splitStoreType(storeType)
	unsigned := strings.HasSuffix(base, " unsigned")
	base = strings.TrimSuffix(base, " unsigned")

	kind, ok := storeKinds[base]
	switch {
	case !ok:
		// Unknown store types round-trip through the annotation and
		// emit as strings rather than failing the reflection.
		return field.TypeInfo{Kind: field.KindString}, nil, storeType
	case base == "tinyint" && len(args) > 0 && args[0] != "1":
		// tinyint(1) is the conventional boolean; wider tinyints are
		// small integers.
		return field.TypeInfo{Kind: field.KindInt16}, nil, storeType
	}
	if unsigned && kind >= field.KindInt16 && kind <= field.KindInt64 {
		// The unsigned range does not fit the signed kind of the same
		// width; widen and keep the store type on record.
		switch kind {
		case field.KindInt16:
			kind = field.KindInt32
		default:
			kind = field.KindInt64
		}
		return field.TypeInfo{Kind: kind}, nil, storeType
	}

	var maxLength *int
	if kind == field.KindString || kind == field.KindBytes {
		if n, ok := storeLength(base, args); ok {
			maxLength = &n
		}
	}

	var annotation string
	if kind == field.KindDecimal {
		annotation = storeType
	}
	return field.TypeInfo{Kind: kind}, maxLength, annotation
}

// splitStoreType splits "varchar(200) unsigned" into its normalized base
// and argument list.
func splitStoreType(storeType string) (base string, args []string) {
	s := strings.ToLower(strings.TrimSpace(storeType))
	open := strings.IndexByte(s, '(')
	if open < 0 {
		return s, nil
	}
	close := strings.IndexByte(s, ')')
	if close < open {
		return s, nil
	}
	base = strings.TrimSpace(s[:open] + s[close+1:])
	for _, a := range strings.Split(s[open+1:close], ",") {
		args = append(args, strings.TrimSpace(a))
	}
	return base, args
}

// storeLength extracts the declared length argument of sized string and
// binary store types. Unbounded types such as text carry no length.
func storeLength(base string, args []string) (int, bool) {
	switch base {
	case "char", "character", "varchar", "character varying", "nchar", "nvarchar", "binary", "varbinary":
	default:
		return 0, false
	}
	if len(args) == 0 {
		return 0, false
	}
	n, err := strconv.Atoi(args[0])
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}
