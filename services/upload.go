package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"askcaira/backend/ai"
	"askcaira/backend/cache"
	"askcaira/backend/database"
	"askcaira/backend/logger"
	"askcaira/backend/models"
	"askcaira/backend/tabular"
)

const visualizationCreatedText = "✅ **Visualization Created Successfully!**\n\nI've generated interactive charts based on your data. You can see them in the visualization panel above!"

type UploadInput struct {
	UserID   string
	FileName string
	MIMEType string
	Size     int64
	Content  []byte
	Mode     string
}

type UploadResult struct {
	File    FileView
	Message string
}

type UploadService struct {
	store    database.Store
	ai       *ai.Orchestrator
	cache    cache.FileCache
	log      *logger.Logger
	maxBytes int64
}

func NewUploadService(store database.Store, orch *ai.Orchestrator, fc cache.FileCache, log *logger.Logger, maxBytes int64) *UploadService {
	return &UploadService{
		store:    store,
		ai:       orch,
		cache:    fc,
		log:      log.With("service", "UploadService"),
		maxBytes: maxBytes,
	}
}

// uploadState is threaded through the pipeline steps.
type uploadState struct {
	in      UploadInput
	table   *tabular.Table
	summary models.DataSummary
	recs    models.ChartRecommendations
	html    string
	file    *models.FileRecord
	chatID  string
}

type uploadStep struct {
	name string
	run  func(ctx context.Context, st *uploadState) error
}

func (s *UploadService) steps() []uploadStep {
	return []uploadStep{
		{"validate", s.validate},
		{"parse", s.parse},
		{"summarize", s.summarize},
		{"recommend", s.recommend},
		{"visualize", s.visualize},
		{"save file", s.saveFile},
		{"create chat", s.createChat},
		{"attach visualization", s.attachVisualization},
	}
}

// Process runs every step in order and stops at the first error. Only
// validation, parsing and the file write can fail the upload; the AI and
// chat steps degrade.
func (s *UploadService) Process(ctx context.Context, in UploadInput) (*UploadResult, error) {
	st := &uploadState{in: in}
	for _, step := range s.steps() {
		start := time.Now()
		if err := step.run(ctx, st); err != nil {
			s.log.Warn("upload step failed", "step", step.name, "file", in.FileName, "user_id", in.UserID, "error", err)
			return nil, err
		}
		s.log.Debug("upload step done", "step", step.name, "file", in.FileName, "took", time.Since(start))
	}

	view := newFileView(st.file)
	view.GeneratedHTML = strPtr(st.html)
	view.HasVisualization = st.html != "" && st.chatID != ""
	view.ChatID = strPtr(st.chatID)

	n := len(st.recs.Recommendations)
	if n == 0 {
		n = 1
	}
	return &UploadResult{
		File: view,
		Message: fmt.Sprintf("Successfully processed %d rows with %d columns and generated %d visualizations",
			len(st.table.Rows), len(st.table.Headers), n),
	}, nil
}

func (s *UploadService) debug(in UploadInput, err error) map[string]any {
	return map[string]any{
		"fileName":      in.FileName,
		"fileType":      in.MIMEType,
		"fileSize":      in.Size,
		"originalError": err.Error(),
	}
}

func (s *UploadService) validate(_ context.Context, st *uploadState) error {
	in := st.in
	if in.FileName == "" {
		return newError(KindValidation, "No file provided", nil)
	}
	if s.maxBytes > 0 && in.Size > s.maxBytes {
		return newError(KindValidation, fmt.Sprintf("File size must be less than %dMB", s.maxBytes/(1024*1024)), nil)
	}
	if _, err := tabular.DetectFormat(in.FileName, in.MIMEType); err != nil {
		e := newError(KindUnsupportedFormat, err.Error(), err)
		e.Debug = s.debug(in, err)
		return e
	}
	return nil
}

func (s *UploadService) parse(_ context.Context, st *uploadState) error {
	t, err := tabular.Parse(st.in.Content, st.in.FileName, st.in.MIMEType)
	if err != nil {
		kind := KindParse
		var ue *tabular.UnsupportedFormatError
		if errors.As(err, &ue) {
			kind = KindUnsupportedFormat
		}
		e := newError(kind, err.Error(), err)
		e.Debug = s.debug(st.in, err)
		return e
	}
	st.table = t
	return nil
}

func (s *UploadService) summarize(_ context.Context, st *uploadState) error {
	st.summary = tabular.Summarize(st.in.FileName, st.table)
	return nil
}

func (s *UploadService) recommend(ctx context.Context, st *uploadState) error {
	st.recs = s.ai.RecommendCharts(ctx, st.summary).Value
	return nil
}

func (s *UploadService) visualize(ctx context.Context, st *uploadState) error {
	html, err := s.ai.GenerateVisualization(ctx, st.summary, st.recs)
	if err != nil {
		s.log.Warn("visualization skipped", "file", st.in.FileName, "error", err)
		return nil
	}
	st.html = html
	return nil
}

func (s *UploadService) saveFile(ctx context.Context, st *uploadState) error {
	mode := st.in.Mode
	if mode != models.ModeChat {
		mode = models.ModeVisualize
	}
	rec := &models.FileRecord{
		UserID:               st.in.UserID,
		OriginalFileName:     st.in.FileName,
		DisplayName:          st.in.FileName + " - Processed Data",
		UploadDate:           time.Now().UTC(),
		FileType:             st.in.MIMEType,
		Size:                 st.in.Size,
		Status:               models.FileStatusReady,
		Mode:                 mode,
		RowCount:             len(st.table.Rows),
		ColumnCount:          len(st.table.Headers),
		DataSummary:          st.summary,
		ChartRecommendations: st.recs,
	}
	if _, err := s.store.CreateFileRecord(ctx, rec); err != nil {
		return newError(KindUpstream, "Internal server error during file processing", err)
	}
	st.file = rec
	if err := s.cache.Set(ctx, rec); err != nil {
		s.log.Warn("cache set failed", "file_id", rec.ID, "error", err)
	}
	return nil
}

// createChat seeds the thread with the welcome message. A failure leaves the
// upload successful without a chat, unless the client is gone, in which case
// the file record is removed again.
func (s *UploadService) createChat(ctx context.Context, st *uploadState) error {
	if ctx.Err() == nil {
		id, err := s.store.CreateChatForFile(ctx, st.file.ID, st.in.UserID, welcomeText(st))
		if err == nil {
			st.chatID = id
			return nil
		}
		if ctx.Err() == nil {
			s.log.Error("create chat failed", "file_id", st.file.ID, "error", err)
			return nil
		}
	}
	return s.compensate(ctx, st)
}

func (s *UploadService) compensate(ctx context.Context, st *uploadState) error {
	dctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()
	if err := s.store.DeleteFile(dctx, st.file.ID, st.in.UserID); err != nil {
		s.log.Error("orphan file cleanup failed", "file_id", st.file.ID, "error", err)
	}
	if err := s.cache.Delete(dctx, st.in.UserID, st.file.ID); err != nil {
		s.log.Warn("cache delete failed", "file_id", st.file.ID, "error", err)
	}
	return newError(KindUpstream, "Internal server error during file processing", ctx.Err())
}

func (s *UploadService) attachVisualization(ctx context.Context, st *uploadState) error {
	if st.chatID == "" || st.html == "" {
		return nil
	}
	html := st.html
	_, err := s.store.AddMessageToChat(ctx, st.chatID, models.Message{
		Type:              models.MessageAssistant,
		Content:           visualizationCreatedText,
		HasVisualization:  true,
		VisualizationHTML: &html,
		Metadata: map[string]any{
			"chartRecommendations": st.recs,
			"generatedAt":          time.Now().UTC(),
		},
	})
	if err != nil {
		s.log.Error("attach visualization failed", "chat_id", st.chatID, "error", err)
	}
	return nil
}

func welcomeText(st *uploadState) string {
	var b strings.Builder
	fmt.Fprintf(&b, "I've analyzed your file %q and created interactive visualizations! \n\n", st.in.FileName)
	b.WriteString("**Data Summary:**\n")
	fmt.Fprintf(&b, "📊 %d rows, %d columns\n", len(st.table.Rows), len(st.table.Headers))
	if n := len(st.recs.Recommendations); n > 0 {
		fmt.Fprintf(&b, "📈 Generated %d chart recommendations\n\n", n)
		b.WriteString("\n**Generated Charts:**\n")
		for i, r := range st.recs.Recommendations {
			if i > 0 {
				b.WriteString("\n")
			}
			fmt.Fprintf(&b, "• %s: %s", r.Title, r.Insight)
		}
	} else {
		b.WriteString("📈 Generated several chart recommendations\n\n")
	}
	b.WriteString("\n\n✨ **Your visualization is ready!** You can see the interactive charts in the visualization panel, or ask me questions about your data.")
	return b.String()
}
