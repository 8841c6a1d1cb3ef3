package database

import (
	"context"
	"errors"
	"time"

	"askcaira/backend/models"
	"askcaira/backend/utils"
)

// ErrNotFound is returned when a record does not exist or is not owned by
// the requesting user.
var ErrNotFound = errors.New("record not found")

const (
	welcomeChatTitle = "Analysis Chat"
	upsertChatTitle  = "Data Analysis Chat"
	welcomeMessageID = "1"
)

// Store is every persistence operation the services need. All file and chat
// lookups are scoped by the owning user id.
type Store interface {
	CreateFileRecord(ctx context.Context, rec *models.FileRecord) (string, error)
	GetFile(ctx context.Context, id, userID string) (*models.FileRecord, error)
	ListFiles(ctx context.Context, userID string) ([]models.FileRecord, error)
	DeleteFile(ctx context.Context, id, userID string) error

	// CreateChatForFile seeds the thread with one assistant message when
	// welcome is non-empty.
	CreateChatForFile(ctx context.Context, fileID, userID, welcome string) (string, error)
	AddMessageToChat(ctx context.Context, chatID string, msg models.Message) (*models.Message, error)
	// GetChatForFile returns nil, nil when the file has no thread yet.
	GetChatForFile(ctx context.Context, fileID, userID string) (*models.ChatThread, error)
	SaveOrUpdateChat(ctx context.Context, fileID, userID string, msgs []models.Message) (*models.ChatThread, error)
	UpdateChatMessage(ctx context.Context, chatID, messageID string, upd models.MessageUpdate) error

	Close()
}

// normalizeMessage fills the fields callers usually leave blank.
func normalizeMessage(m models.Message, now time.Time) models.Message {
	if m.ID == "" {
		m.ID = utils.NewMessageID()
	}
	if m.Type == "" {
		m.Type = models.MessageUser
	}
	if m.Timestamp.IsZero() {
		m.Timestamp = now
	}
	if m.Metadata == nil {
		m.Metadata = map[string]any{}
	}
	if !m.HasVisualization {
		m.VisualizationHTML = nil
	}
	return m
}

func normalizeMessages(msgs []models.Message, now time.Time) []models.Message {
	out := make([]models.Message, len(msgs))
	for i, m := range msgs {
		out[i] = normalizeMessage(m, now)
	}
	return out
}

func welcomeMessage(text string, now time.Time) models.Message {
	return models.Message{
		ID:        welcomeMessageID,
		Type:      models.MessageAssistant,
		Content:   text,
		Timestamp: now,
		Metadata:  map[string]any{},
	}
}

func applyUpdate(m *models.Message, upd models.MessageUpdate) {
	m.Content = upd.Content
	m.HasVisualization = upd.HasVisualization
	m.VisualizationHTML = upd.VisualizationHTML
	if !m.HasVisualization {
		m.VisualizationHTML = nil
	}
	if upd.Metadata != nil {
		m.Metadata = upd.Metadata
	}
}
