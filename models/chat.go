package models

import "time"

const (
	MessageUser      = "user"
	MessageAssistant = "assistant"
	MessageSystem    = "system"
)

type Message struct {
	ID                string         `json:"id"`
	Type              string         `json:"type"`
	Content           string         `json:"content"`
	Timestamp         time.Time      `json:"timestamp"`
	HasVisualization  bool           `json:"hasVisualization"`
	VisualizationHTML *string        `json:"visualizationHTML"`
	Metadata          map[string]any `json:"metadata"`
}

// MessageUpdate carries the editable fields of a stored message.
type MessageUpdate struct {
	Content           string
	HasVisualization  bool
	VisualizationHTML *string
	Metadata          map[string]any
}

type ChatThread struct {
	ID        string    `json:"id"`
	FileID    string    `json:"fileId"`
	UserID    string    `json:"userId"`
	Title     string    `json:"title"`
	Messages  []Message `json:"messages"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// LatestVisualization returns the newest message carrying both the flag and
// the HTML, or nil.
func (t *ChatThread) LatestVisualization() *Message {
	if t == nil {
		return nil
	}
	for i := len(t.Messages) - 1; i >= 0; i-- {
		m := t.Messages[i]
		if m.HasVisualization && m.VisualizationHTML != nil && *m.VisualizationHTML != "" {
			return &t.Messages[i]
		}
	}
	return nil
}
