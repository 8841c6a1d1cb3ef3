package models

type ChatHistoryEntry struct {
	Type    string `json:"type"`
	Content string `json:"content"`
}

type ChatRequest struct {
	Message     string             `json:"message"`
	FileID      string             `json:"fileId"`
	ChatHistory []ChatHistoryEntry `json:"chatHistory"`
	Mode        string             `json:"mode"`
}

type ChatResponse struct {
	Response         string  `json:"response"`
	ChatID           string  `json:"chatId"`
	HasVisualization bool    `json:"hasVisualization"`
	ExtractedHTML    *string `json:"extractedHTML"`
}
