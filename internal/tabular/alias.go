package tabular

import "strings"

// Resolve returns the first non-empty value among aliases. Each alias is
// tried as an exact header name first and then by normalized key. When no
// alias yields a value, fallback is returned.
func Resolve(row Row, aliases []string, fallback string) string {
	for _, alias := range aliases {
		if v, ok := row.Lookup(alias); ok {
			if v = strings.TrimSpace(v); v != "" {
				return v
			}
		}
		if v, ok := row.LookupNormalized(alias); ok {
			if v = strings.TrimSpace(v); v != "" {
				return v
			}
		}
	}
	return fallback
}

// Field is a semantic attribute bound to the header spellings that may
// carry it, most preferred first.
type Field struct {
	Name    string
	Aliases []string
}

// NewField creates a Field.
func NewField(name string, aliases ...string) Field {
	return Field{Name: name, Aliases: aliases}
}

// String resolves the field from row.
func (f Field) String(row Row, fallback string) string {
	return Resolve(row, f.Aliases, fallback)
}

// Number resolves the field and coerces it with ToNumber.
func (f Field) Number(row Row, fallback float64) float64 {
	return ToNumber(Resolve(row, f.Aliases, ""), fallback)
}

// Present reports whether any alias yields a non-empty value.
func (f Field) Present(row Row) bool {
	return Resolve(row, f.Aliases, "") != ""
}
