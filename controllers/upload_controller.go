package controllers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"askcaira/backend/config"
	"askcaira/backend/logger"
	"askcaira/backend/services"
)

// Upload accepts a multipart "file" (CSV or Excel) and an optional "mode".
func Upload(cfg config.Config, svc *services.UploadService, log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		fh, err := c.FormFile("file")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "No file provided"})
			return
		}
		in := services.UploadInput{
			UserID:   userID(c),
			FileName: fh.Filename,
			MIMEType: fh.Header.Get("Content-Type"),
			Size:     fh.Size,
			Mode:     c.PostForm("mode"),
		}
		if fh.Size <= cfg.MaxUploadBytes {
			f, err := fh.Open()
			if err != nil {
				respondError(c, log, err)
				return
			}
			in.Content, err = io.ReadAll(io.LimitReader(f, cfg.MaxUploadBytes+1))
			f.Close()
			if err != nil {
				respondError(c, log, err)
				return
			}
		}

		res, err := svc.Process(c.Request.Context(), in)
		if err != nil {
			respondError(c, log, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"file":    res.File,
			"message": res.Message,
		})
	}
}
