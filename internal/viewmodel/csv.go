package viewmodel

import (
	"bytes"
	"encoding/csv"
	"strconv"
)

const (
	CSVFileName    = "crypto_data.csv"
	CSVContentType = "text/csv;charset=utf-8"
)

// Field is one key/value cell of an exported row.
type Field struct {
	Key   string
	Value any
}

// Record is anything that can be exported as an ordered list of fields.
type Record interface {
	Fields() []Field
}

// ExportCSV writes the header from the first record's keys, then one line per
// record. Keys missing from later records export as empty cells. Lines are
// joined by "\n" without a trailing newline; values are quoted only when they
// contain a comma, quote or newline.
func ExportCSV[R Record](records []R) (string, error) {
	if len(records) == 0 {
		return "", nil
	}

	header := make([]string, 0)
	for _, f := range records[0].Fields() {
		header = append(header, f.Key)
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(header); err != nil {
		return "", err
	}
	for _, rec := range records {
		values := make(map[string]any)
		for _, f := range rec.Fields() {
			values[f.Key] = f.Value
		}
		line := make([]string, len(header))
		for i, key := range header {
			line[i] = cellString(values[key])
		}
		if err := w.Write(line); err != nil {
			return "", err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", err
	}
	return string(bytes.TrimSuffix(buf.Bytes(), []byte("\n"))), nil
}

func cellString(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case float64:
		return formatPlain(x)
	case float32:
		return formatPlain(float64(x))
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case bool:
		return strconv.FormatBool(x)
	default:
		return ""
	}
}

// Row is an ad hoc exported record.
type Row []Field

func (r Row) Fields() []Field { return r }
