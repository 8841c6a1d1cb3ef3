package models

import "time"

type ColumnType string

const (
	ColumnNumber  ColumnType = "number"
	ColumnBoolean ColumnType = "boolean"
	ColumnDate    ColumnType = "date"
	ColumnText    ColumnType = "text"
	ColumnUnknown ColumnType = "unknown"
)

const (
	FileStatusReady = "ready"

	ModeChat      = "chat"
	ModeVisualize = "visualize"
)

// Row is one parsed record keyed by header name. Values are float64, bool,
// string or nil.
type Row map[string]any

// DataSummary is the bounded digest of a parsed table sent to the model.
type DataSummary struct {
	FileName    string                `json:"fileName"`
	TotalRows   int                   `json:"totalRows"`
	Columns     []string              `json:"columns"`
	ColumnTypes map[string]ColumnType `json:"columnTypes"`
	SampleData  []Row                 `json:"sampleData"`
	DataPreview []Row                 `json:"dataPreview"`
}

type ChartRecommendation struct {
	Type    string `json:"type"`
	XAxis   string `json:"xAxis"`
	YAxis   string `json:"yAxis"`
	Title   string `json:"title"`
	Insight string `json:"insight"`
}

type ChartRecommendations struct {
	Recommendations []ChartRecommendation `json:"recommendations"`
}

type FileRecord struct {
	ID                   string               `json:"id"`
	UserID               string               `json:"userId"`
	OriginalFileName     string               `json:"originalFileName"`
	DisplayName          string               `json:"displayName"`
	UploadDate           time.Time            `json:"uploadDate"`
	FileType             string               `json:"fileType"`
	Size                 int64                `json:"size"`
	Status               string               `json:"status"`
	Mode                 string               `json:"mode"`
	RowCount             int                  `json:"rowCount"`
	ColumnCount          int                  `json:"columnCount"`
	DataSummary          DataSummary          `json:"dataSummary"`
	ChartRecommendations ChartRecommendations `json:"chartRecommendations"`
	// GeneratedHTML is the legacy single-field visualization, kept for old rows.
	GeneratedHTML *string   `json:"generatedHTML,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}
