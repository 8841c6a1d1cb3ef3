package tabular

import "fmt"

// ParseError reports content that could not be turned into a table.
type ParseError struct {
	Format Format
	Cause  string
	Err    error
}

func (e *ParseError) Error() string {
	return e.Cause
}

func (e *ParseError) Unwrap() error { return e.Err }

func parseErrorf(format Format, err error, msg string, args ...any) *ParseError {
	return &ParseError{Format: format, Cause: fmt.Sprintf(msg, args...), Err: err}
}

// UnsupportedFormatError is returned before any parsing when neither the
// extension nor the MIME type names a supported format.
type UnsupportedFormatError struct {
	FileName   string
	MIMEType   string
	Extension  string
	Suggestion string // likely intended extension, e.g. ".xlsx"
}

func (e *UnsupportedFormatError) Error() string {
	if e.Suggestion != "" {
		return fmt.Sprintf("Invalid file extension %q. Did you mean %q? Please ensure your file has the correct Excel extension (.xlsx or .xls).", e.Extension, e.Suggestion)
	}
	ext := e.Extension
	if ext == "" {
		ext = "(none)"
	}
	return fmt.Sprintf("Unsupported file extension: %s. Please upload a CSV (.csv) or Excel (.xlsx, .xls) file.", ext)
}
