package routes

import (
	"github.com/gin-gonic/gin"

	"askcaira/backend/config"
	"askcaira/backend/controllers"
	"askcaira/backend/logger"
	"askcaira/backend/middlewares"
	"askcaira/backend/services"
)

type Services struct {
	Upload *services.UploadService
	Chat   *services.ChatService
	Files  *services.FileService
}

func Register(r *gin.Engine, cfg config.Config, svc Services, log *logger.Logger) {
	r.GET("/healthz", controllers.Health())

	api := r.Group("/api")
	api.Use(middlewares.Auth(cfg.JWTSecret, cfg.JWTIssuer))
	{
		// Upload CSV/XLSX, recommend charts and build the first visualization
		api.POST("/upload", controllers.Upload(cfg, svc.Upload, log))
		// Chat about an uploaded file (or general chat without one)
		api.POST("/chat", controllers.ChatSend(svc.Chat, log))
		api.GET("/chat/messages", controllers.ChatMessages(svc.Chat, log))
		// Files
		api.GET("/me", controllers.Me(svc.Files, log))
		api.GET("/files", controllers.FilesList(svc.Files, log))
		api.DELETE("/files", controllers.FilesDelete(svc.Files, log))
	}
}
