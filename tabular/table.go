package tabular

import (
	"regexp"
	"strconv"
	"strings"

	"askcaira/backend/models"
)

// Table is a parsed upload: ordered headers plus one row object per record.
type Table struct {
	Headers []string
	Rows    []models.Row
}

// Parse converts an uploaded CSV or Excel buffer into a Table.
func Parse(content []byte, filename, mimeType string) (*Table, error) {
	format, err := DetectFormat(filename, mimeType)
	if err != nil {
		return nil, err
	}
	var t *Table
	switch format {
	case FormatCSV:
		t, err = parseCSV(content)
	default:
		t, err = parseExcel(content)
	}
	if err != nil {
		return nil, err
	}
	if len(t.Rows) == 0 {
		return nil, parseErrorf(format, nil, "File appears to be empty or could not be parsed")
	}
	return t, nil
}

var numberRe = regexp.MustCompile(`^\s*-?(\d+\.?|\.\d+|\d+\.\d+)([eE][-+]?\d+)?\s*$`)

// typedValue applies scalar typing: numbers become float64, true/false
// become bool, the empty string becomes nil, anything else stays a string.
func typedValue(raw string) any {
	if raw == "" {
		return nil
	}
	switch raw {
	case "true", "TRUE":
		return true
	case "false", "FALSE":
		return false
	}
	if numberRe.MatchString(raw) {
		if f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64); err == nil {
			return f
		}
	}
	return raw
}

// normalizeHeaders trims header cells, names blank ones by position and
// suffixes repeats so every column name is unique.
func normalizeHeaders(raw []string) []string {
	headers := make([]string, len(raw))
	used := make(map[string]bool, len(raw))
	for i, v := range raw {
		h := strings.TrimSpace(v)
		if h == "" {
			h = "Col" + strconv.Itoa(i)
		}
		name := h
		for n := 1; used[name]; n++ {
			name = h + "_" + strconv.Itoa(n)
		}
		used[name] = true
		headers[i] = name
	}
	return headers
}

func buildRow(headers []string, cells []string) models.Row {
	row := make(models.Row, len(headers))
	for j, h := range headers {
		if j < len(cells) {
			row[h] = typedValue(cells[j])
		} else {
			row[h] = nil
		}
	}
	return row
}
