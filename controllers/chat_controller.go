package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"askcaira/backend/logger"
	"askcaira/backend/models"
	"askcaira/backend/services"
)

func ChatSend(svc *services.ChatService, log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.ChatRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Message is required"})
			return
		}
		out, err := svc.Send(c.Request.Context(), userID(c), services.ChatInput{
			Message: req.Message,
			FileID:  req.FileID,
			Mode:    req.Mode,
			History: req.ChatHistory,
		})
		if err != nil {
			respondError(c, log, err)
			return
		}
		c.JSON(http.StatusOK, out)
	}
}

type messageView struct {
	ID                string    `json:"id"`
	Type              string    `json:"type"`
	Content           string    `json:"content"`
	Timestamp         time.Time `json:"timestamp"`
	HasVisualization  bool      `json:"hasVisualization"`
	VisualizationHTML *string   `json:"visualizationHTML"`
}

func ChatMessages(svc *services.ChatService, log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		thread, err := svc.Messages(c.Request.Context(), userID(c), c.Query("fileId"))
		if err != nil {
			se := services.AsError(err)
			if se.Kind == services.KindNotFound {
				c.JSON(http.StatusNotFound, gin.H{"success": false, "error": se.Message})
				return
			}
			respondError(c, log, err)
			return
		}
		msgs := make([]messageView, 0, len(thread.Messages))
		for _, m := range thread.Messages {
			msgs = append(msgs, messageView{
				ID:                m.ID,
				Type:              m.Type,
				Content:           m.Content,
				Timestamp:         m.Timestamp,
				HasVisualization:  m.HasVisualization,
				VisualizationHTML: m.VisualizationHTML,
			})
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "messages": msgs, "chatId": thread.ID})
	}
}
