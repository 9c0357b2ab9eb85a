package inspect

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/scaffold/schema/field"
)

func TestMapStoreType(t *testing.T) {
	tests := []struct {
		storeType  string
		kind       field.Kind
		maxLength  int
		annotation string
	}{
		{storeType: "int", kind: field.KindInt32},
		{storeType: "INTEGER", kind: field.KindInt32},
		{storeType: "bigint", kind: field.KindInt64},
		{storeType: "smallint", kind: field.KindInt16},
		{storeType: "tinyint(1)", kind: field.KindBool},
		{storeType: "tinyint", kind: field.KindBool},
		{storeType: "boolean", kind: field.KindBool},
		{storeType: "real", kind: field.KindFloat32},
		{storeType: "double precision", kind: field.KindFloat64},
		{storeType: "varchar(200)", kind: field.KindString, maxLength: 200},
		{storeType: "character varying(50)", kind: field.KindString, maxLength: 50},
		{storeType: "nvarchar(128)", kind: field.KindString, maxLength: 128},
		{storeType: "char(2)", kind: field.KindString, maxLength: 2},
		{storeType: "text", kind: field.KindString},
		{storeType: "jsonb", kind: field.KindString},
		{storeType: "datetime", kind: field.KindTime},
		{storeType: "timestamp with time zone", kind: field.KindTime},
		{storeType: "uuid", kind: field.KindUUID},
		{storeType: "bytea", kind: field.KindBytes},
		{storeType: "varbinary(16)", kind: field.KindBytes, maxLength: 16},
		{storeType: "blob", kind: field.KindBytes},
	}
	for _, tt := range tests {
		t.Run(tt.storeType, func(t *testing.T) {
			info, maxLength, annotation := mapStoreType(tt.storeType)
			assert.Equal(t, tt.kind, info.Kind)
			assert.Equal(t, tt.annotation, annotation)
			if tt.maxLength == 0 {
				assert.Nil(t, maxLength)
			} else {
				require.NotNil(t, maxLength)
				assert.Equal(t, tt.maxLength, *maxLength)
			}
		})
	}
}

func TestMapStoreType_Annotated(t *testing.T) {
	t.Run("unknown type emits as annotated string", func(t *testing.T) {
		info, maxLength, annotation := mapStoreType("geometry")
		assert.Equal(t, field.KindString, info.Kind)
		assert.Nil(t, maxLength)
		assert.Equal(t, "geometry", annotation)
	})

	t.Run("wide tinyint is an annotated small integer", func(t *testing.T) {
		info, _, annotation := mapStoreType("tinyint(4)")
		assert.Equal(t, field.KindInt16, info.Kind)
		assert.Equal(t, "tinyint(4)", annotation)
	})

	t.Run("decimal keeps its precision on record", func(t *testing.T) {
		info, maxLength, annotation := mapStoreType("decimal(10,2)")
		assert.Equal(t, field.KindDecimal, info.Kind)
		assert.Nil(t, maxLength)
		assert.Equal(t, "decimal(10,2)", annotation)
	})
}

func TestMapStoreType_Unsigned(t *testing.T) {
	tests := []struct {
		storeType string
		kind      field.Kind
	}{
		{"smallint unsigned", field.KindInt32},
		{"int unsigned", field.KindInt64},
		{"int(11) unsigned", field.KindInt64},
		{"bigint unsigned", field.KindInt64},
	}
	for _, tt := range tests {
		t.Run(tt.storeType, func(t *testing.T) {
			info, maxLength, annotation := mapStoreType(tt.storeType)
			assert.Equal(t, tt.kind, info.Kind)
			assert.Nil(t, maxLength)
			assert.Equal(t, tt.storeType, annotation)
		})
	}
}

func TestSplitStoreType(t *testing.T) {
	base, args := splitStoreType("varchar(200)")
	assert.Equal(t, "varchar", base)
	assert.Equal(t, []string{"200"}, args)

	base, args = splitStoreType("decimal(10, 2)")
	assert.Equal(t, "decimal", base)
	assert.Equal(t, []string{"10", "2"}, args)

	base, args = splitStoreType("int(11) unsigned")
	assert.Equal(t, "int unsigned", base)
	assert.Equal(t, []string{"11"}, args)

	base, args = splitStoreType("text")
	assert.Equal(t, "text", base)
	assert.Nil(t, args)
}
