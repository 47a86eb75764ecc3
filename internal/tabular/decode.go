package tabular

// Table is a decoded document.
type Table struct {
	Header *Header
	Rows   []Row
}

// Len returns the number of data rows.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Rows)
}

// Parse decodes CSV text. The first record is the header and every later
// record becomes a Row; rows with no values are dropped. Parse only fails
// when the text is not CSV (see CheckCSV).
func Parse(text string) (*Table, error) {
	if err := CheckCSV(text); err != nil {
		return nil, err
	}

	records := Tokenize(text)
	if len(records) == 0 {
		return &Table{Header: NewHeader(nil)}, nil
	}

	header := NewHeader(records[0])
	rows := make([]Row, 0, len(records)-1)
	for _, record := range records[1:] {
		row := NewRow(header, record)
		if row.IsEmpty() {
			continue
		}
		rows = append(rows, row)
	}

	return &Table{Header: header, Rows: rows}, nil
}

// ParseRows is Parse returning only the rows.
func ParseRows(text string) ([]Row, error) {
	t, err := Parse(text)
	if err != nil {
		return nil, err
	}
	return t.Rows, nil
}
