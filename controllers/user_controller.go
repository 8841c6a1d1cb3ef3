package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"askcaira/backend/logger"
	"askcaira/backend/services"
)

// Me echoes the caller's identity with a count of their files.
func Me(svc *services.FileService, log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		uid := userID(c)
		files, err := svc.List(c.Request.Context(), uid)
		if err != nil {
			respondError(c, log, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"userId": uid, "fileCount": len(files)})
	}
}
