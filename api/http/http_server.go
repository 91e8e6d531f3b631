package http

import (
	"FitBuddy/internal/config"
	"FitBuddy/internal/initial"
	jwtMiddleware "FitBuddy/internal/middleware/jwt"
	"FitBuddy/internal/modules/ai/infrastructure/llm"
	chatService "FitBuddy/internal/modules/chat/application/service"
	chatPersistence "FitBuddy/internal/modules/chat/infrastructure/persistence"
	chatHandler "FitBuddy/internal/modules/chat/interface/http"
	"FitBuddy/pkg/ssl"

	cors "github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

var GE *gin.Engine

func init() {
	GE = gin.Default()
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{"*"}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
	GE.Use(cors.New(corsConfig))
	GE.Use(ssl.TlsHandler(config.GetConfig().MainConfig.Host, config.GetConfig().MainConfig.Port))

	sessionRepo := chatPersistence.NewSessionRepository(initial.GormDB)
	messageRepo := chatPersistence.NewMessageRepository(initial.GormDB)
	settingsRepo := chatPersistence.NewModelSettingsRepository(initial.GormDB)

	router := llm.NewRouter(config.GetConfig())

	settingsSvc := chatService.NewSettingsService(settingsRepo)
	sessionSvc := chatService.NewSessionService(sessionRepo, messageRepo)
	chatSvc := chatService.NewChatService(router, settingsSvc, sessionRepo, messageRepo)

	chatH := chatHandler.NewChatHandler(chatSvc, sessionSvc)
	sessionH := chatHandler.NewSessionHandler(sessionSvc)
	settingsH := chatHandler.NewSettingsHandler(settingsSvc)
	modelH := chatHandler.NewModelHandler(chatSvc)

	// 游客可用：无令牌按游客处理，带令牌注入用户身份
	public := GE.Group("/")
	public.Use(jwtMiddleware.OptionalAuth())
	public.POST("/chat", chatH.Chat)
	public.POST("/followup", chatH.FollowUps)
	public.GET("/suggestions", chatH.Suggestions)
	public.GET("/models/tags", modelH.Tags)
	public.POST("/models/unload", modelH.Unload)
	public.GET("/models/settings", settingsH.Get)
	public.GET("/history", sessionH.History)

	authed := GE.Group("/")
	authed.Use(jwtMiddleware.Auth())
	authed.POST("/models/settings", settingsH.Save)
	authed.GET("/sessions", sessionH.List)
	authed.PATCH("/sessions", sessionH.Rename)
	authed.DELETE("/sessions", sessionH.Delete)
	authed.POST("/sessions/migrate", sessionH.Migrate)
	authed.DELETE("/history", sessionH.ClearHistory)
	authed.DELETE("/chat/message", chatH.DeleteMessage)
}
