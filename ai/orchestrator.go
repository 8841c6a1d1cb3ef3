package ai

import (
	"context"
	"fmt"

	"askcaira/backend/logger"
	"askcaira/backend/models"
)

const missingFileReply = "I couldn't find the file data. Please try uploading the file again."

// Orchestrator turns summaries and questions into prompts and model replies
// into structured results.
type Orchestrator struct {
	gen Generator
	log *logger.Logger
}

func NewOrchestrator(gen Generator, log *logger.Logger) *Orchestrator {
	return &Orchestrator{gen: gen, log: log.With("service", "Orchestrator")}
}

// RecommendCharts never fails: transport errors and unparseable replies both
// come back as the fallback recommendation.
func (o *Orchestrator) RecommendCharts(ctx context.Context, s models.DataSummary) Parsed[models.ChartRecommendations] {
	text, err := o.gen.GenerateContent(ctx, recommendationPrompt(s))
	if err != nil {
		o.log.Warn("chart recommendation request failed", "file", s.FileName, "error", err)
		return FallbackTo(FallbackRecommendations(s.Columns), "request failed: "+err.Error())
	}
	res := ParseRecommendations(text, s.Columns)
	if res.Fallback {
		o.log.Warn("chart recommendation fallback", "file", s.FileName, "reason", res.Reason)
	}
	return res
}

// GenerateVisualization returns the model's HTML page with fences removed.
// The markup is not validated.
func (o *Orchestrator) GenerateVisualization(ctx context.Context, s models.DataSummary, recs models.ChartRecommendations) (string, error) {
	text, err := o.gen.GenerateContent(ctx, uploadVisualizationPrompt(s, recs))
	if err != nil {
		return "", fmt.Errorf("generate visualization: %w", err)
	}
	return StripCodeFences(text), nil
}

type AnalysisRequest struct {
	Message string
	File    *models.FileRecord
	History []models.ChatHistoryEntry
}

type AnalysisResult struct {
	Response          string
	HasVisualization  bool
	VisualizationHTML *string
	// Requested is true when the message was classified as chart-seeking.
	Requested bool
}

// Analyze answers a question about one file. Errors never escape: they are
// turned into an apologetic reply.
func (o *Orchestrator) Analyze(ctx context.Context, req AnalysisRequest) AnalysisResult {
	if req.File == nil {
		return AnalysisResult{Response: missingFileReply}
	}
	dc := dataContext(req.File, req.History)
	if !NeedsVisualization(req.Message) {
		text, err := o.gen.GenerateContent(ctx, chatAnalysisPrompt(req.Message, dc))
		if err != nil {
			return o.Failed(req.Message, req.File.ID, err)
		}
		return AnalysisResult{Response: text}
	}

	text, err := o.gen.GenerateContent(ctx, chatVisualizationPrompt(req.Message, dc))
	if err != nil {
		return o.Failed(req.Message, req.File.ID, err)
	}
	split := SplitAnalysisResponse(text)
	if split.Fallback {
		o.log.Debug("analysis split fallback", "file_id", req.File.ID, "reason", split.Reason)
	}
	return AnalysisResult{
		Response:          split.Value.Text,
		HasVisualization:  split.Value.HTML != nil,
		VisualizationHTML: split.Value.HTML,
		Requested:         true,
	}
}

// Failed is the reply for a turn that could not be answered, whether the
// model or the file lookup broke.
func (o *Orchestrator) Failed(message, fileID string, err error) AnalysisResult {
	o.log.Error("analysis request failed", "file_id", fileID, "error", err)
	return AnalysisResult{
		Response:  fmt.Sprintf("I encountered an error while analyzing your data: %v. Please try rephrasing your question.", err),
		Requested: NeedsVisualization(message),
	}
}
