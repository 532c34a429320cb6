package sequence

// Table is an immutable reference table keyed by normalized protocol name.
// Several records may share a key; lookups return the first in table order.
type Table struct {
	byKey map[string][]Record
	rows  []Record
}

// NewTable indexes records in the order given. Each record's Name is run
// through NormalizeKey so table keys and query keys always agree. Records
// whose key normalizes to the empty string are dropped.
func NewTable(records []Record) *Table {
	normalized := make([]Record, len(records))
	for i, rec := range records {
		rec.Name = NormalizeKey(rec.Name)
		normalized[i] = rec
	}
	return NewKeyedTable(normalized)
}

// NewKeyedTable indexes records whose Name already holds a normalized key,
// such as rows read back from Table.Records. Names are used as-is:
// NormalizeKey does not fully collapse runs of five or more spaces, so
// normalizing twice could change a key. Records with an empty Name are dropped.
func NewKeyedTable(records []Record) *Table {
	t := &Table{
		byKey: make(map[string][]Record, len(records)),
		rows:  make([]Record, 0, len(records)),
	}
	for _, rec := range records {
		if rec.Name == "" {
			continue
		}
		t.byKey[rec.Name] = append(t.byKey[rec.Name], rec)
		t.rows = append(t.rows, rec)
	}
	return t
}

// Lookup returns the first record stored under an already-normalized key.
func (t *Table) Lookup(key string) (Record, bool) {
	if t == nil {
		return Record{}, false
	}
	matches := t.byKey[key]
	if len(matches) == 0 {
		return Record{}, false
	}
	return matches[0], true
}

// Records returns a copy of every row in table order.
func (t *Table) Records() []Record {
	if t == nil {
		return nil
	}
	out := make([]Record, len(t.rows))
	copy(out, t.rows)
	return out
}

// Len returns the number of rows.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.rows)
}

// KeyCount returns the number of distinct keys.
func (t *Table) KeyCount() int {
	if t == nil {
		return 0
	}
	return len(t.byKey)
}

// Duplicates returns the number of rows shadowed by an earlier row with the same key.
func (t *Table) Duplicates() int {
	return t.Len() - t.KeyCount()
}
