package tabular

import (
	"strings"
	"unicode"
)

// Header holds the column names of a document, trimmed but otherwise
// spelled exactly as in the source.
type Header struct {
	names   []string
	literal map[string]int
	norm    map[string]int
}

// NewHeader builds a header from a raw header record. When a name repeats,
// the later column wins.
func NewHeader(record []string) *Header {
	h := &Header{
		names:   make([]string, len(record)),
		literal: make(map[string]int, len(record)),
		norm:    make(map[string]int, len(record)),
	}
	for i, name := range record {
		name = strings.TrimSpace(name)
		h.names[i] = name
		h.literal[name] = i
		if key := NormalizeKey(name); key != "" {
			h.norm[key] = i
		}
	}
	return h
}

// Names returns a copy of the column names in order.
func (h *Header) Names() []string {
	if h == nil {
		return nil
	}
	out := make([]string, len(h.names))
	copy(out, h.names)
	return out
}

// Len returns the number of columns.
func (h *Header) Len() int {
	if h == nil {
		return 0
	}
	return len(h.names)
}

// Index returns the column position for an exact (trimmed) name.
func (h *Header) Index(name string) (int, bool) {
	if h == nil {
		return 0, false
	}
	i, ok := h.literal[strings.TrimSpace(name)]
	return i, ok
}

// NormalizedIndex returns the column position whose normalized name equals
// NormalizeKey(name).
func (h *Header) NormalizedIndex(name string) (int, bool) {
	if h == nil {
		return 0, false
	}
	key := NormalizeKey(name)
	if key == "" {
		return 0, false
	}
	i, ok := h.norm[key]
	return i, ok
}

// Row is one data record paired with its header. Rows are read-only.
type Row struct {
	header *Header
	values []string
}

// NewRow pairs a record with a header by position. Values are trimmed,
// positions past the header are ignored and missing positions are empty.
func NewRow(header *Header, record []string) Row {
	values := make([]string, header.Len())
	for i := range values {
		if i < len(record) {
			values[i] = strings.TrimSpace(record[i])
		}
	}
	return Row{header: header, values: values}
}

// Header returns the header this row was built against.
func (r Row) Header() *Header {
	return r.header
}

// Lookup returns the value under an exact header name.
func (r Row) Lookup(name string) (string, bool) {
	i, ok := r.header.Index(name)
	if !ok {
		return "", false
	}
	return r.values[i], true
}

// Get returns the value under an exact header name, or "".
func (r Row) Get(name string) string {
	v, _ := r.Lookup(name)
	return v
}

// LookupNormalized returns the value whose normalized header matches the
// normalized form of name.
func (r Row) LookupNormalized(name string) (string, bool) {
	i, ok := r.header.NormalizedIndex(name)
	if !ok {
		return "", false
	}
	return r.values[i], true
}

// Values returns a copy of the values in header order.
func (r Row) Values() []string {
	out := make([]string, len(r.values))
	copy(out, r.values)
	return out
}

// Map returns the row keyed by literal header name.
func (r Row) Map() map[string]string {
	m := make(map[string]string, len(r.values))
	if r.header == nil {
		return m
	}
	for name, i := range r.header.literal {
		m[name] = r.values[i]
	}
	return m
}

// NormalizedMap returns the row keyed by normalized header name.
func (r Row) NormalizedMap() map[string]string {
	m := make(map[string]string, len(r.values))
	if r.header == nil {
		return m
	}
	for key, i := range r.header.norm {
		m[key] = r.values[i]
	}
	return m
}

// IsEmpty reports whether every value is empty.
func (r Row) IsEmpty() bool {
	for _, v := range r.values {
		if v != "" {
			return false
		}
	}
	return true
}

// NormalizeKey folds a header name into a lookup key: lower case, letters
// and digits only. "Home Team ID" becomes "hometeamid".
func NormalizeKey(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(unicode.ToLower(r))
		}
	}
	return b.String()
}
