package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"askcaira/backend/logger"
	"askcaira/backend/services"
)

var kindStatus = map[services.Kind]int{
	services.KindAuth:              http.StatusUnauthorized,
	services.KindValidation:        http.StatusBadRequest,
	services.KindParse:             http.StatusBadRequest,
	services.KindUnsupportedFormat: http.StatusBadRequest,
	services.KindNotFound:          http.StatusNotFound,
	services.KindUpstream:          http.StatusInternalServerError,
}

// respondError logs err and writes {"error": msg} with the status for its
// kind. Parse failures also carry a debug object.
func respondError(c *gin.Context, log *logger.Logger, err error) {
	se := services.AsError(err)
	status, ok := kindStatus[se.Kind]
	if !ok {
		status = http.StatusInternalServerError
	}
	_ = c.Error(err)
	if status >= http.StatusInternalServerError {
		log.Error("request failed", "path", c.FullPath(), "kind", se.Kind, "error", err)
	} else {
		log.Debug("request rejected", "path", c.FullPath(), "kind", se.Kind, "error", err)
	}

	body := gin.H{"error": se.Message}
	if se.Debug != nil {
		body["debug"] = se.Debug
	}
	c.AbortWithStatusJSON(status, body)
}

func userID(c *gin.Context) string {
	return c.GetString("user_id")
}
