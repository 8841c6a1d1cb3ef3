package tabular

import (
	"path/filepath"
	"strings"
)

type Format string

const (
	FormatCSV   Format = "csv"
	FormatExcel Format = "excel"
)

// DetectFormat picks the parser from the file extension, falling back to the
// MIME type. A misspelt spreadsheet extension is rejected with a suggestion
// even when the MIME type would have matched.
func DetectFormat(filename, mimeType string) (Format, error) {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(filename)), ".")
	switch ext {
	case "csv":
		return FormatCSV, nil
	case "xlsx", "xls":
		return FormatExcel, nil
	}
	if looksLikeXLSXTypo(ext) {
		return "", &UnsupportedFormatError{FileName: filename, MIMEType: mimeType, Extension: ext, Suggestion: ".xlsx"}
	}
	mt := strings.ToLower(strings.TrimSpace(mimeType))
	if i := strings.Index(mt, ";"); i >= 0 {
		mt = strings.TrimSpace(mt[:i])
	}
	switch {
	case mt == "text/csv":
		return FormatCSV, nil
	case strings.Contains(mt, "spreadsheet"), strings.Contains(mt, "excel"):
		return FormatExcel, nil
	}
	return "", &UnsupportedFormatError{FileName: filename, MIMEType: mimeType, Extension: ext}
}

func looksLikeXLSXTypo(ext string) bool {
	if ext == "" {
		return false
	}
	if strings.Contains(ext, "exlx") {
		return true
	}
	return strings.ContainsRune(ext, 'x') && editDistance(ext, "xlsx") <= 2
}

// editDistance is a plain Levenshtein distance.
func editDistance(a, b string) int {
	la, lb := len(a), len(b)
	if la == 0 {
		return lb
	}
	if lb == 0 {
		return la
	}
	prev := make([]int, lb+1)
	cur := make([]int, lb+1)
	for j := 0; j <= lb; j++ {
		prev[j] = j
	}
	for i := 1; i <= la; i++ {
		cur[0] = i
		for j := 1; j <= lb; j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			cur[j] = min(prev[j]+1, cur[j-1]+1, prev[j-1]+cost)
		}
		prev, cur = cur, prev
	}
	return prev[lb]
}
