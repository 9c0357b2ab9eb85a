package gen

// AnnotationSource answers schema-fact queries for an entity, a property,
// or the model itself. Absence is reported as an empty string or a false
// second return, never as a sentinel value.
//
// The default implementation reads the facts recorded on the metadata
// model; alternative sources can overlay facts from elsewhere without
// touching the model.
type AnnotationSource interface {
	// TableName returns the explicit table name of the entity.
	TableName(e *Entity) string
	// TableSchema returns the explicit schema of the entity's table.
	TableSchema(e *Entity) string
	// DefaultSchema returns the model-wide default schema.
	DefaultSchema(m *Model) string
	// ColumnName returns the explicit column name of the property.
	ColumnName(p *Property) string
	// ColumnType returns the explicit store type of the property.
	ColumnType(p *Property) string
	// MaxLength returns the declared maximum length of the property.
	MaxLength(p *Property) (int, bool)
	// EntityComment returns the documentation comment of the entity.
	EntityComment(e *Entity) string
	// PropertyComment returns the documentation comment of the property.
	PropertyComment(p *Property) string
}

// SchemaAnnotations is the AnnotationSource backed by the facts the
// reflection process recorded on the model.
type SchemaAnnotations struct{}

// TableName returns the explicit table name of the entity.
func (SchemaAnnotations) TableName(e *Entity) string { return e.Table }

// TableSchema returns the explicit schema of the entity's table.
func (SchemaAnnotations) TableSchema(e *Entity) string { return e.Schema }

// DefaultSchema returns the model-wide default schema.
func (SchemaAnnotations) DefaultSchema(m *Model) string { return m.DefaultSchema }

// ColumnName returns the explicit column name of the property.
func (SchemaAnnotations) ColumnName(p *Property) string { return p.Column }

// ColumnType returns the explicit store type of the property.
func (SchemaAnnotations) ColumnType(p *Property) string { return p.ColumnType }

// MaxLength returns the declared maximum length of the property.
func (SchemaAnnotations) MaxLength(p *Property) (int, bool) {
	if p.MaxLength == nil {
		return 0, false
	}
	return *p.MaxLength, true
}

// EntityComment returns the "comment" annotation of the entity.
func (SchemaAnnotations) EntityComment(e *Entity) string {
	return e.Annotations.String("comment")
}

// PropertyComment returns the "comment" annotation of the property.
func (SchemaAnnotations) PropertyComment(p *Property) string {
	return p.Annotations.String("comment")
}

// Verify SchemaAnnotations implements AnnotationSource at compile time.
var _ AnnotationSource = SchemaAnnotations{}
