package tabular

import "strings"

const bom = "\uFEFF"

// Tokenize splits raw CSV text into records.
//
// Records made only of empty or whitespace fields are dropped, which also
// skips blank lines. A leading byte-order mark is ignored.
func Tokenize(text string) [][]string {
	text = strings.TrimPrefix(text, bom)

	var (
		records  [][]string
		record   []string
		field    strings.Builder
		inQuotes bool
		pending  bool // field or record holds content not yet emitted
	)

	endField := func() {
		record = append(record, field.String())
		field.Reset()
	}
	endRecord := func() {
		endField()
		if !isBlank(record) {
			records = append(records, record)
		}
		record = nil
		pending = false
	}

	for i := 0; i < len(text); i++ {
		c := text[i]

		switch {
		case c == '"':
			pending = true
			if !inQuotes {
				inQuotes = true
				continue
			}
			if i+1 < len(text) && text[i+1] == '"' {
				field.WriteByte('"')
				i++
				continue
			}
			inQuotes = false

		case c == ',' && !inQuotes:
			endField()
			pending = true

		case (c == '\n' || c == '\r') && !inQuotes:
			if c == '\r' && i+1 < len(text) && text[i+1] == '\n' {
				i++
			}
			endRecord()

		default:
			field.WriteByte(c)
			pending = true
		}
	}

	if pending || field.Len() > 0 || len(record) > 0 {
		endRecord()
	}

	return records
}

func isBlank(record []string) bool {
	for _, v := range record {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
