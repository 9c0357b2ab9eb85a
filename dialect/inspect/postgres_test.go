package inspect

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostgresInspect(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("FROM information_schema.tables").
		WithArgs("sales").
		WillReturnRows(sqlmock.NewRows([]string{"table_name"}).AddRow("orders"))

	mock.ExpectQuery("FROM information_schema.columns").
		WithArgs("sales", "orders").
		WillReturnRows(sqlmock.NewRows([]string{"column_name", "ordinal_position", "data_type", "is_nullable", "character_maximum_length"}).
			AddRow("id", 1, "integer", "NO", 0).
			AddRow("reference", 2, "character varying", "YES", 40).
			AddRow("placed_at", 3, "timestamp with time zone", "NO", 0))

	mock.ExpectQuery("constraint_type = 'PRIMARY KEY'").
		WithArgs("sales", "orders").
		WillReturnRows(sqlmock.NewRows([]string{"column_name"}).AddRow("id"))

	mock.ExpectQuery("constraint_type = 'FOREIGN KEY'").
		WithArgs("sales", "orders").
		WillReturnRows(sqlmock.NewRows([]string{"constraint_name", "column_name", "table_name", "column_name"}))

	p := NewPostgres(db, &Options{Schema: "sales"})
	d, err := p.Inspect(context.Background())
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())

	assert.Equal(t, "public", d.DefaultSchema)
	require.Len(t, d.Entities, 1)
	order := d.Entities[0]
	assert.Equal(t, "Order", order.Name)
	assert.Equal(t, "orders", order.Table)
	assert.Equal(t, "sales", order.Schema)

	require.Len(t, order.Properties, 3)
	ref := order.Properties[1]
	assert.Equal(t, "Reference", ref.Name)
	assert.Equal(t, "string", ref.Type)
	assert.True(t, ref.Nillable)
	require.NotNil(t, ref.MaxLength)
	assert.Equal(t, 40, *ref.MaxLength)

	placed := order.Properties[2]
	assert.Equal(t, "PlacedAt", placed.Name)
	assert.Equal(t, "time", placed.Type)
}

func TestPostgresInspect_DefaultSchemaUnmarked(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("FROM information_schema.tables").
		WithArgs("public").
		WillReturnRows(sqlmock.NewRows([]string{"table_name"}).AddRow("blogs"))
	mock.ExpectQuery("FROM information_schema.columns").
		WithArgs("public", "blogs").
		WillReturnRows(sqlmock.NewRows([]string{"column_name", "ordinal_position", "data_type", "is_nullable", "character_maximum_length"}).
			AddRow("id", 1, "integer", "NO", 0))
	mock.ExpectQuery("constraint_type = 'PRIMARY KEY'").
		WithArgs("public", "blogs").
		WillReturnRows(sqlmock.NewRows([]string{"column_name"}).AddRow("id"))
	mock.ExpectQuery("constraint_type = 'FOREIGN KEY'").
		WithArgs("public", "blogs").
		WillReturnRows(sqlmock.NewRows([]string{"constraint_name", "column_name", "table_name", "column_name"}))

	p := NewPostgres(db, nil)
	d, err := p.Inspect(context.Background())
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())

	require.Len(t, d.Entities, 1)
	assert.Empty(t, d.Entities[0].Schema)
}
