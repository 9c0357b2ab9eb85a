package golang

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/scaffold/compiler/gen"
	"github.com/syssam/scaffold/schema/field"
)

func intPtr(n int) *int { return &n }

func blogModel() *gen.Model {
	m := &gen.Model{Name: "Blogging"}
	blog := &gen.Entity{Name: "Blog", Model: m, Table: "Blogs"}
	post := &gen.Entity{Name: "Post", Model: m}
	blog.Properties = []*gen.Property{
		{Name: "Id", Entity: blog, Type: field.TypeInfo{Kind: field.KindInt32}, Ordinal: 0},
		{Name: "Title", Entity: blog, Type: field.TypeInfo{Kind: field.KindString}, Ordinal: 1, MaxLength: intPtr(200)},
	}
	post.Properties = []*gen.Property{
		{Name: "Id", Entity: post, Type: field.TypeInfo{Kind: field.KindInt32}, Ordinal: 0},
		{Name: "BlogId", Entity: post, Type: field.TypeInfo{Kind: field.KindInt32}, Ordinal: 1, Column: "blog_id"},
		{Name: "PublishedOn", Entity: post, Type: field.TypeInfo{Kind: field.KindTime}, Nillable: true, Ordinal: 2},
	}
	fk := &gen.ForeignKey{Properties: []string{"BlogId"}, PrincipalKey: true}
	posts := &gen.Navigation{
		Name: "Posts", Entity: blog, Type: post,
		Multiplicity: gen.Collection, Direction: gen.PrincipalToDependent, ForeignKey: fk,
	}
	owner := &gen.Navigation{
		Name: "Blog", Entity: post, Type: blog,
		Multiplicity: gen.Single, Direction: gen.DependentToPrincipal, ForeignKey: fk,
	}
	posts.Inverse, owner.Inverse = owner, posts
	blog.Navigations = []*gen.Navigation{posts}
	post.Navigations = []*gen.Navigation{owner}
	m.Entities = []*gen.Entity{blog, post}
	return m
}

func TestGenerate_Struct(t *testing.T) {
	m := blogModel()
	e := NewEmitter()

	out, err := e.Generate(m.Entity("Post"), "models", false)
	require.NoError(t, err)

	assert.Contains(t, out, "// Code generated by scaffold. DO NOT EDIT.")
	assert.Contains(t, out, "package models")
	assert.Contains(t, out, "type Post struct {")
	assert.Regexp(t, `Id\s+int32`, out)
	assert.Regexp(t, `BlogId\s+int32`, out)
	assert.Regexp(t, `PublishedOn\s+\*time\.Time`, out)
	assert.Contains(t, out, `"time"`)
	assert.Regexp(t, `Blog\s+\*Blog`, out)
	assert.Contains(t, out, "// Post is the data model of the Posts table.")
	// scalar fields precede navigations
	assert.Less(t, strings.Index(out, "PublishedOn"), strings.Index(out, "*Blog"))
}

func TestGenerate_CollectionNavigation(t *testing.T) {
	m := blogModel()

	out, err := NewEmitter().Generate(m.Entity("Blog"), "models", false)
	require.NoError(t, err)

	assert.Regexp(t, `Posts\s+\[\]\*Post`, out)
	assert.Contains(t, out, `json:"posts,omitempty"`)
	assert.Contains(t, out, "// Blog is the data model of the Blogs table.")
}

func TestGenerate_Tags(t *testing.T) {
	m := blogModel()

	t.Run("json only", func(t *testing.T) {
		out, err := NewEmitter().Generate(m.Entity("Post"), "models", false)
		require.NoError(t, err)
		assert.Contains(t, out, `json:"blogId,omitempty"`)
		assert.NotContains(t, out, `db:`)
	})

	t.Run("db tags with markup", func(t *testing.T) {
		out, err := NewEmitter().Generate(m.Entity("Post"), "models", true)
		require.NoError(t, err)
		assert.Contains(t, out, `db:"blog_id"`)
		assert.Contains(t, out, `db:"id"`)
	})
}

func TestGenerate_QualifiedTypes(t *testing.T) {
	m := &gen.Model{Name: "M"}
	e := &gen.Entity{Name: "Event", Model: m}
	e.Properties = []*gen.Property{
		{Name: "Id", Entity: e, Type: field.TypeInfo{Kind: field.KindUUID}, Ordinal: 0},
		{Name: "Payload", Entity: e, Type: field.TypeInfo{Kind: field.KindBytes}, Nillable: true, Ordinal: 1},
	}
	m.Entities = []*gen.Entity{e}

	out, err := NewEmitter().Generate(e, "models", false)
	require.NoError(t, err)

	assert.Contains(t, out, "uuid.UUID")
	assert.Contains(t, out, `"github.com/google/uuid"`)
	assert.Regexp(t, `Payload\s+\[\]byte`, out)
}

func TestGenerate_InvalidArguments(t *testing.T) {
	e := NewEmitter()

	_, err := e.Generate(nil, "models", false)
	assert.ErrorIs(t, err, gen.ErrInvalidArgument)

	_, err = e.Generate(blogModel().Entity("Blog"), "", false)
	assert.ErrorIs(t, err, gen.ErrInvalidArgument)
}

func TestExtension(t *testing.T) {
	assert.Equal(t, ".go", NewEmitter().Extension())
}
