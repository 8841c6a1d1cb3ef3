package ai

import (
	"fmt"
	"strings"
	"unicode"
)

// GeneralResponse answers file-less chat turns from canned text without
// calling the model.
func GeneralResponse(message string) string {
	lower := strings.ToLower(message)
	words := strings.FieldsFunc(lower, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	has := func(w string) bool {
		for _, x := range words {
			if x == w {
				return true
			}
		}
		return false
	}

	switch {
	case strings.Contains(lower, "hello") || has("hi") || has("hey"):
		return "Hello! I'm Caira, your AI assistant. How can I help you today?"
	case strings.Contains(lower, "what") && strings.Contains(lower, "you"):
		return "I'm an AI assistant created to help you with various tasks, answer questions, and analyze data. I can help with general inquiries or analyze CSV/Excel files when you upload them."
	case strings.Contains(lower, "how") && strings.Contains(lower, "work"):
		return "I work by processing your questions and providing helpful responses. For data analysis, you can upload CSV or Excel files, and I'll help you understand your data, find patterns, and generate insights."
	case strings.Contains(lower, "data") || strings.Contains(lower, "csv") || strings.Contains(lower, "file"):
		return "I can help you analyze data! Upload a CSV or Excel file using the attachment button, and I'll be able to answer questions about your data, find patterns, generate insights, and create visualizations."
	}
	return fmt.Sprintf("I understand you're asking about %q. While I'd love to provide a detailed analysis, I'm currently a demo assistant. For the best experience, try uploading a CSV file so I can help analyze your data and provide specific insights!", message)
}
