package inspect

import (
	"strings"
	"unicode"

	"github.com/go-openapi/inflect"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// EntityName derives the class name for a table: the singularized table
// name in PascalCase. "blog_posts" becomes "BlogPost".
func EntityName(table string) string {
	return pascal(inflect.Singularize(table))
}

// PropertyName derives the member name for a column: the column name in
// PascalCase. "blog_id" becomes "BlogId".
func PropertyName(column string) string {
	return pascal(column)
}

// pascal converts a snake_case, kebab-case or space-separated identifier
// to PascalCase. Runs that are already mixed-case keep their interior
// casing ("blogID" becomes "BlogID").
func pascal(s string) string {
	caser := cases.Title(language.English, cases.NoLower)
	var b strings.Builder
	for _, part := range splitWords(s) {
		if part == strings.ToUpper(part) && len(part) > 1 {
			// All-caps runs such as "URL" read better title-cased
			// than passed through.
			part = strings.ToLower(part)
			b.WriteString(caser.String(part))
			continue
		}
		b.WriteString(caser.String(part))
	}
	return b.String()
}

// splitWords splits an identifier on separators, dropping empty parts.
func splitWords(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return r == '_' || r == '-' || r == '.' || unicode.IsSpace(r)
	})
}
