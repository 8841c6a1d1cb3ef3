package tabular

import (
	"bytes"
	"encoding/csv"
	"errors"
	"io"
	"strings"

	"askcaira/backend/models"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

func parseCSV(content []byte) (*Table, error) {
	r := csv.NewReader(bytes.NewReader(bytes.TrimPrefix(content, utf8BOM)))
	r.FieldsPerRecord = -1 // checked below with a friendlier message
	r.LazyQuotes = true

	header, err := nextRecord(r)
	if errors.Is(err, io.EOF) {
		return nil, parseErrorf(FormatCSV, err, "File appears to be empty or could not be parsed")
	}
	if err != nil {
		return nil, parseErrorf(FormatCSV, err, "CSV parsing failed: %v", err)
	}
	headers := normalizeHeaders(header)

	rows := []models.Row{}
	for {
		rec, err := nextRecord(r)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, parseErrorf(FormatCSV, err, "CSV parsing failed: %v", err)
		}
		if len(rec) != len(headers) {
			line, _ := r.FieldPos(0)
			return nil, parseErrorf(FormatCSV, nil, "CSV parsing failed: row at line %d has %d fields, expected %d", line, len(rec), len(headers))
		}
		rows = append(rows, buildRow(headers, rec))
	}
	return &Table{Headers: headers, Rows: rows}, nil
}

// nextRecord skips whitespace-only lines, which encoding/csv reports as a
// single blank field.
func nextRecord(r *csv.Reader) ([]string, error) {
	for {
		rec, err := r.Read()
		if err != nil {
			return nil, err
		}
		if len(rec) == 1 && strings.TrimSpace(rec[0]) == "" {
			continue
		}
		return rec, nil
	}
}
