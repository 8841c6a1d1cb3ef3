package services

import (
	"context"
	"errors"
	"strings"

	"askcaira/backend/ai"
	"askcaira/backend/cache"
	"askcaira/backend/database"
	"askcaira/backend/logger"
	"askcaira/backend/models"
	"askcaira/backend/utils"
)

const (
	modeGeneral = "general"
	storedTurns = 3
)

type ChatInput struct {
	Message string
	FileID  string
	Mode    string
	History []models.ChatHistoryEntry
}

type ChatService struct {
	store database.Store
	ai    *ai.Orchestrator
	cache cache.FileCache
	log   *logger.Logger
}

func NewChatService(store database.Store, orch *ai.Orchestrator, fc cache.FileCache, log *logger.Logger) *ChatService {
	return &ChatService{store: store, ai: orch, cache: fc, log: log.With("service", "ChatService")}
}

// Send answers one turn. With a file id the turn is persisted; a failed save
// is logged and the reply still goes out with a time-derived chat id.
func (s *ChatService) Send(ctx context.Context, userID string, in ChatInput) (*models.ChatResponse, error) {
	if strings.TrimSpace(in.Message) == "" {
		return nil, newError(KindValidation, "Message is required", nil)
	}

	var res ai.AnalysisResult
	if in.Mode == modeGeneral || in.FileID == "" {
		res.Response = ai.GeneralResponse(in.Message)
	} else {
		file, err := s.loadFile(ctx, userID, in.FileID)
		if err != nil {
			res = s.ai.Failed(in.Message, in.FileID, err)
		} else {
			res = s.ai.Analyze(ctx, ai.AnalysisRequest{
				Message: in.Message,
				File:    file,
				History: s.history(ctx, userID, in),
			})
		}
	}

	out := &models.ChatResponse{
		Response:         res.Response,
		HasVisualization: res.HasVisualization,
		ExtractedHTML:    res.VisualizationHTML,
	}
	if in.FileID != "" {
		thread, err := s.store.SaveOrUpdateChat(ctx, in.FileID, userID, []models.Message{
			{Type: models.MessageUser, Content: in.Message},
			{
				Type:              models.MessageAssistant,
				Content:           res.Response,
				HasVisualization:  res.HasVisualization,
				VisualizationHTML: res.VisualizationHTML,
				Metadata:          map[string]any{"visualizationRequested": res.Requested},
			},
		})
		if err != nil {
			s.log.Error("save chat failed", "file_id", in.FileID, "user_id", userID, "error", err)
		} else {
			out.ChatID = thread.ID
		}
	}
	if out.ChatID == "" {
		out.ChatID = utils.NewMessageID()
	}
	return out, nil
}

// loadFile returns nil, nil when the file is missing so the reply explains
// that instead of failing the request. Other store errors are returned as is.
func (s *ChatService) loadFile(ctx context.Context, userID, fileID string) (*models.FileRecord, error) {
	if f, err := s.cache.Get(ctx, userID, fileID); err != nil {
		s.log.Warn("cache get failed", "file_id", fileID, "error", err)
	} else if f != nil {
		return f, nil
	}

	f, err := s.store.GetFile(ctx, fileID, userID)
	if errors.Is(err, database.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if err := s.cache.Set(ctx, f); err != nil {
		s.log.Warn("cache set failed", "file_id", fileID, "error", err)
	}
	return f, nil
}

// history prefers what the client sent and falls back to the stored thread.
func (s *ChatService) history(ctx context.Context, userID string, in ChatInput) []models.ChatHistoryEntry {
	if len(in.History) > 0 {
		return in.History
	}
	thread, err := s.store.GetChatForFile(ctx, in.FileID, userID)
	if err != nil {
		s.log.Warn("load chat history failed", "file_id", in.FileID, "error", err)
		return nil
	}
	if thread == nil {
		return nil
	}
	msgs := thread.Messages
	if len(msgs) > storedTurns {
		msgs = msgs[len(msgs)-storedTurns:]
	}
	out := make([]models.ChatHistoryEntry, 0, len(msgs))
	for _, m := range msgs {
		out = append(out, models.ChatHistoryEntry{Type: m.Type, Content: m.Content})
	}
	return out
}

// Messages returns the stored thread for a file.
func (s *ChatService) Messages(ctx context.Context, userID, fileID string) (*models.ChatThread, error) {
	if fileID == "" {
		return nil, newError(KindValidation, "File ID is required", nil)
	}
	thread, err := s.store.GetChatForFile(ctx, fileID, userID)
	if err != nil {
		return nil, newError(KindUpstream, "Failed to retrieve chat messages", err)
	}
	if thread == nil {
		return nil, newError(KindNotFound, "Chat not found for this file", nil)
	}
	return thread, nil
}
