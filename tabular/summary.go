package tabular

import (
	"strings"
	"time"

	"askcaira/backend/models"
)

const (
	sampleRows  = 5
	previewRows = 100
	typeSample  = 100
)

// Summarize reduces a table to the digest used as model context.
func Summarize(fileName string, t *Table) models.DataSummary {
	return models.DataSummary{
		FileName:    fileName,
		TotalRows:   len(t.Rows),
		Columns:     t.Headers,
		ColumnTypes: InferColumnTypes(t),
		SampleData:  firstRows(t.Rows, sampleRows),
		DataPreview: firstRows(t.Rows, previewRows),
	}
}

// InferColumnTypes classifies each column from the first non-empty value
// among its first 100 rows. Later values are not consulted.
func InferColumnTypes(t *Table) map[string]models.ColumnType {
	sample := firstRows(t.Rows, typeSample)
	out := make(map[string]models.ColumnType, len(t.Headers))
	for _, h := range t.Headers {
		out[h] = models.ColumnUnknown
		for _, r := range sample {
			v, ok := r[h]
			if !ok || v == nil || v == "" {
				continue
			}
			out[h] = classify(v)
			break
		}
	}
	return out
}

func classify(v any) models.ColumnType {
	switch x := v.(type) {
	case float64, float32, int, int64:
		return models.ColumnNumber
	case bool:
		return models.ColumnBoolean
	case string:
		if looksLikeDate(x) {
			return models.ColumnDate
		}
	}
	return models.ColumnText
}

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"2006/01/02",
	"01/02/2006",
	"1/2/2006",
	"01/02/2006 15:04",
	"Jan 2, 2006",
	"January 2, 2006",
	"2 Jan 2006",
	"02 Jan 2006",
	"Mon, 02 Jan 2006 15:04:05 MST",
}

func looksLikeDate(s string) bool {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if _, err := time.Parse(layout, s); err == nil {
			return true
		}
	}
	return false
}

func firstRows(rows []models.Row, n int) []models.Row {
	if len(rows) <= n {
		return rows
	}
	cp := make([]models.Row, n)
	copy(cp, rows[:n])
	return cp
}
