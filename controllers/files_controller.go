package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"askcaira/backend/logger"
	"askcaira/backend/services"
)

func FilesList(svc *services.FileService, log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		files, err := svc.List(c.Request.Context(), userID(c))
		if err != nil {
			respondError(c, log, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "files": files})
	}
}

func FilesDelete(svc *services.FileService, log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := svc.Delete(c.Request.Context(), userID(c), c.Query("id")); err != nil {
			respondError(c, log, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "File deleted successfully"})
	}
}

func Health() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}
