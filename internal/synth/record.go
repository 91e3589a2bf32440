// Package synth turns structured queries into plausible synthetic result
// rows. It never executes anything: the executor picks one of four fixed
// synthesis strategies and the synthesizer fabricates rows from the schema
// registry's generators.
package synth

import (
	"bytes"
	"encoding/json"
)

// Record is a single synthetic result row. Columns keep the order the table
// schema declares them in, including through JSON marshaling.
type Record struct {
	columns []string
	values  map[string]any
}

// NewRecord returns an empty record with capacity for n columns.
func NewRecord(n int) Record {
	return Record{
		columns: make([]string, 0, n),
		values:  make(map[string]any, n),
	}
}

// Set appends a column value, preserving insertion order. Setting an
// existing column overwrites its value without reordering.
func (r *Record) Set(column string, value any) {
	if _, exists := r.values[column]; !exists {
		r.columns = append(r.columns, column)
	}

	r.values[column] = value
}

// Columns returns the column names in insertion order.
func (r Record) Columns() []string {
	out := make([]string, len(r.columns))
	copy(out, r.columns)

	return out
}

// Get returns the value for a column.
func (r Record) Get(column string) (any, bool) {
	v, ok := r.values[column]
	return v, ok
}

// Len returns the number of columns in the record.
func (r Record) Len() int {
	return len(r.columns)
}

// MarshalJSON emits the record as a JSON object whose keys appear in column
// order rather than the alphabetical order of a plain map.
func (r Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteByte('{')

	for i, col := range r.columns {
		if i > 0 {
			buf.WriteByte(',')
		}

		key, err := json.Marshal(col)
		if err != nil {
			return nil, err
		}

		buf.Write(key)
		buf.WriteByte(':')

		val, err := json.Marshal(r.values[col])
		if err != nil {
			return nil, err
		}

		buf.Write(val)
	}

	buf.WriteByte('}')

	return buf.Bytes(), nil
}

// UnmarshalJSON restores a record from a JSON object. Column order follows
// the object's key order.
func (r *Record) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	// Opening brace.
	if _, err := dec.Token(); err != nil {
		return err
	}

	*r = NewRecord(0)

	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}

		key, _ := keyTok.(string)

		var value any
		if err := dec.Decode(&value); err != nil {
			return err
		}

		if num, ok := value.(json.Number); ok {
			if i, err := num.Int64(); err == nil {
				value = int(i)
			} else if f, err := num.Float64(); err == nil {
				value = f
			}
		}

		r.Set(key, value)
	}

	return nil
}
