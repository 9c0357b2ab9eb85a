package inspect

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/scaffold/compiler/gen"
	"github.com/syssam/scaffold/compiler/load"
)

func blogTables() []Table {
	return []Table{
		{
			Name: "blogs",
			Columns: []Column{
				{Name: "id", Position: 1, StoreType: "integer"},
				{Name: "title", Position: 2, StoreType: "varchar(200)", Nullable: true},
			},
			PrimaryKey: []string{"id"},
		},
		{
			Name: "posts",
			Columns: []Column{
				{Name: "id", Position: 1, StoreType: "integer"},
				{Name: "blog_id", Position: 2, StoreType: "integer"},
			},
			PrimaryKey: []string{"id"},
			ForeignKeys: []ForeignKeyRef{
				{Columns: []string{"blog_id"}, RefTable: "blogs", RefColumns: []string{"id"}},
			},
		},
	}
}

func TestBuildDescription(t *testing.T) {
	d := buildDescription("blogging", blogTables(), "")
	require.Len(t, d.Entities, 2)

	blog, post := d.Entities[0], d.Entities[1]
	assert.Equal(t, "Blog", blog.Name)
	assert.Equal(t, "blogs", blog.Table)
	assert.Equal(t, "Post", post.Name)

	require.Len(t, blog.Properties, 2)
	title := blog.Properties[1]
	assert.Equal(t, "Title", title.Name)
	assert.Equal(t, "string", title.Type)
	assert.Equal(t, "title", title.Column)
	assert.True(t, title.Nillable)
	require.NotNil(t, title.MaxLength)
	assert.Equal(t, 200, *title.MaxLength)

	require.Len(t, post.Navigations, 1)
	owner := post.Navigations[0]
	assert.Equal(t, "Blog", owner.Name)
	assert.Equal(t, "Blog", owner.Target)
	assert.True(t, owner.ToPrincipal)
	assert.False(t, owner.Collection)
	require.NotNil(t, owner.ForeignKey)
	assert.Equal(t, []string{"BlogId"}, owner.ForeignKey.Properties)
	assert.True(t, owner.ForeignKey.PrincipalKey)
	assert.Equal(t, "Posts", owner.Inverse)

	require.Len(t, blog.Navigations, 1)
	posts := blog.Navigations[0]
	assert.Equal(t, "Posts", posts.Name)
	assert.Equal(t, "Post", posts.Target)
	assert.True(t, posts.Collection)
	assert.False(t, posts.ToPrincipal)
	assert.Equal(t, "Blog", posts.Inverse)
}

func TestBuildDescription_ResolvesModel(t *testing.T) {
	// The round trip through the loader is the real consumer contract.
	d := buildDescription("blogging", blogTables(), "")
	m, err := d.Model()
	require.NoError(t, err)

	post := m.Entity("Post")
	require.NotNil(t, post)
	owner := post.Navigation("Blog")
	require.NotNil(t, owner)
	assert.Equal(t, gen.DependentToPrincipal, owner.Direction)
	require.NotNil(t, owner.Inverse)
	assert.Equal(t, "Posts", owner.Inverse.Name)
}

func TestBuildDescription_ImplicitPrimaryKeyReference(t *testing.T) {
	tables := blogTables()
	tables[1].ForeignKeys[0].RefColumns = nil

	d := buildDescription("", tables, "")
	owner := d.Entities[1].Navigations[0]
	require.NotNil(t, owner.ForeignKey)
	assert.True(t, owner.ForeignKey.PrincipalKey)
}

func TestBuildDescription_AlternateKeyReference(t *testing.T) {
	tables := blogTables()
	tables[1].ForeignKeys[0].RefColumns = []string{"title"}

	d := buildDescription("", tables, "")
	owner := d.Entities[1].Navigations[0]
	require.NotNil(t, owner.ForeignKey)
	assert.False(t, owner.ForeignKey.PrincipalKey)
}

func TestBuildDescription_ExcludedReference(t *testing.T) {
	// A foreign key into a table that was not reflected produces no
	// navigation on either side.
	tables := blogTables()[1:]

	d := buildDescription("", tables, "")
	require.Len(t, d.Entities, 1)
	assert.Empty(t, d.Entities[0].Navigations)
}

func TestBuildDescription_SelfReference(t *testing.T) {
	tables := []Table{
		{
			Name: "employees",
			Columns: []Column{
				{Name: "id", Position: 1, StoreType: "integer"},
				{Name: "manager_id", Position: 2, StoreType: "integer", Nullable: true},
			},
			PrimaryKey: []string{"id"},
			ForeignKeys: []ForeignKeyRef{
				{Columns: []string{"manager_id"}, RefTable: "employees", RefColumns: []string{"id"}},
			},
		},
	}

	d := buildDescription("", tables, "")
	require.Len(t, d.Entities, 1)
	e := d.Entities[0]
	require.Len(t, e.Navigations, 2)

	// The entity name is taken, so the single side gets a suffix.
	assert.Equal(t, "EmployeeNavigation", e.Navigations[0].Name)
	assert.True(t, e.Navigations[0].ToPrincipal)
	assert.Equal(t, "Employees", e.Navigations[1].Name)
	assert.True(t, e.Navigations[1].Collection)
	assert.Equal(t, "Employees", e.Navigations[0].Inverse)
	assert.Equal(t, "EmployeeNavigation", e.Navigations[1].Inverse)
}

func TestMemberName(t *testing.T) {
	e := &load.EntityDescription{
		Name: "Post",
		Properties: []*load.PropertyDescription{
			{Name: "BlogId"},
		},
		Navigations: []*load.NavigationDescription{
			{Name: "Blog"},
		},
	}
	assert.Equal(t, "Author", memberName(e, "Author"))
	assert.Equal(t, "BlogIdNavigation", memberName(e, "BlogId"))
	assert.Equal(t, "BlogNavigation", memberName(e, "Blog"))
	assert.Equal(t, "PostNavigation", memberName(e, "Post"))

	e.Navigations = append(e.Navigations, &load.NavigationDescription{Name: "BlogNavigation"})
	assert.Equal(t, "BlogNavigation2", memberName(e, "Blog"))
}

func TestSameColumns(t *testing.T) {
	assert.True(t, sameColumns([]string{"id"}, []string{"id"}))
	assert.True(t, sameColumns([]string{"a", "b"}, []string{"b", "a"}))
	assert.False(t, sameColumns([]string{"a"}, []string{"b"}))
	assert.False(t, sameColumns([]string{"a"}, []string{"a", "b"}))
	assert.False(t, sameColumns(nil, nil))
}

func TestOpen_UnsupportedDialect(t *testing.T) {
	_, err := Open("oracle", "dsn", nil)
	assert.ErrorIs(t, err, gen.ErrMissingConfig)
}

func TestOptionsExcluded(t *testing.T) {
	o := &Options{Exclude: []string{"schema_migrations"}}
	assert.True(t, o.excluded("schema_migrations"))
	assert.False(t, o.excluded("blogs"))
}
