package services

import (
	"context"
	"errors"

	"askcaira/backend/cache"
	"askcaira/backend/database"
	"askcaira/backend/logger"
)

type FileService struct {
	store database.Store
	cache cache.FileCache
	log   *logger.Logger
}

func NewFileService(store database.Store, fc cache.FileCache, log *logger.Logger) *FileService {
	return &FileService{store: store, cache: fc, log: log.With("service", "FileService")}
}

// List returns the user's files, newest first, each with the latest
// visualization from its chat. Rows written before visualizations moved
// into chat messages fall back to their own generated_html.
func (s *FileService) List(ctx context.Context, userID string) ([]FileView, error) {
	files, err := s.store.ListFiles(ctx, userID)
	if err != nil {
		return nil, newError(KindUpstream, "Failed to retrieve files", err)
	}
	out := make([]FileView, 0, len(files))
	for i := range files {
		f := &files[i]
		v := newFileView(f)
		summary := f.DataSummary
		v.DataSummary = &summary

		thread, err := s.store.GetChatForFile(ctx, f.ID, userID)
		if err != nil {
			s.log.Warn("load chat for file failed", "file_id", f.ID, "error", err)
		}
		if thread != nil {
			v.ChatID = strPtr(thread.ID)
		}
		if m := thread.LatestVisualization(); m != nil {
			v.HasVisualization = true
			v.GeneratedHTML = m.VisualizationHTML
		} else if f.GeneratedHTML != nil && *f.GeneratedHTML != "" {
			v.HasVisualization = true
			v.GeneratedHTML = f.GeneratedHTML
		}
		out = append(out, v)
	}
	return out, nil
}

func (s *FileService) Delete(ctx context.Context, userID, fileID string) error {
	if fileID == "" {
		return newError(KindValidation, "File ID is required", nil)
	}
	err := s.store.DeleteFile(ctx, fileID, userID)
	if errors.Is(err, database.ErrNotFound) {
		return newError(KindNotFound, "File not found or access denied", err)
	}
	if err != nil {
		return newError(KindUpstream, "Failed to delete file", err)
	}
	if err := s.cache.Delete(ctx, userID, fileID); err != nil {
		s.log.Warn("cache delete failed", "file_id", fileID, "error", err)
	}
	return nil
}
