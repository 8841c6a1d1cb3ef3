package services

import (
	"time"

	"askcaira/backend/models"
)

// FileView is the client-facing shape of a file record.
type FileView struct {
	ID                   string                      `json:"id"`
	Name                 string                      `json:"name"`
	DisplayName          string                      `json:"displayName"`
	UploadDate           time.Time                   `json:"uploadDate"`
	FileType             string                      `json:"fileType"`
	Size                 int64                       `json:"size"`
	Status               string                      `json:"status"`
	Mode                 string                      `json:"mode"`
	RowCount             int                         `json:"rowCount"`
	ColumnCount          int                         `json:"columnCount"`
	ChartRecommendations models.ChartRecommendations `json:"chartRecommendations"`
	DataSummary          *models.DataSummary         `json:"dataSummary,omitempty"`
	HasVisualization     bool                        `json:"hasVisualization"`
	GeneratedHTML        *string                     `json:"generatedHTML"`
	ChatID               *string                     `json:"chatId"`
}

func newFileView(f *models.FileRecord) FileView {
	return FileView{
		ID:                   f.ID,
		Name:                 f.OriginalFileName,
		DisplayName:          f.DisplayName,
		UploadDate:           f.UploadDate,
		FileType:             f.FileType,
		Size:                 f.Size,
		Status:               f.Status,
		Mode:                 f.Mode,
		RowCount:             f.RowCount,
		ColumnCount:          f.ColumnCount,
		ChartRecommendations: f.ChartRecommendations,
	}
}

func strPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
