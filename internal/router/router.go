package router

import (
	"net/http"
	"slices"

	"totem-quiz-backend/internal/config"
	"totem-quiz-backend/internal/events"
	"totem-quiz-backend/internal/handlers"
	"totem-quiz-backend/internal/middleware"
	"totem-quiz-backend/internal/services"
	"totem-quiz-backend/internal/ws"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type Services struct {
	Registration *services.RegistrationService
	Games        *services.GameService
	Dashboard    *services.DashboardService
	Auth         *services.AuthService
}

func New(cfg *config.Config, svc Services, hub *ws.Hub, bus *events.Bus) *gin.Engine {
	participantHandler := handlers.NewParticipantHandler(svc.Registration, bus)
	gameHandler := handlers.NewGameHandler(svc.Games, bus)
	adminHandler := handlers.NewAdminHandler(svc.Auth, svc.Dashboard, bus)
	wsHandler := handlers.NewWSHandler(hub, svc.Games, cfg.AllowedOrigins)

	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestID(), middleware.Logging())

	corsCfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", middleware.HeaderRequestID},
		ExposeHeaders:    []string{middleware.HeaderRequestID},
		AllowCredentials: true,
	}
	if slices.Contains(cfg.AllowedOrigins, "*") {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = cfg.AllowedOrigins
	}
	r.Use(cors.New(corsCfg))

	r.Static(cfg.Uploads.URLPrefix, cfg.Uploads.Dir)
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	r.GET("/ws/dashboard", wsHandler.DashboardFeed)
	r.GET("/ws/games/:id", wsHandler.GameFeed)

	api := r.Group("/api")
	{
		participants := api.Group("/participants")
		{
			participants.POST("", participantHandler.CreateParticipant)
			participants.GET("", participantHandler.ListParticipants)
		}

		games := api.Group("/games")
		{
			games.POST("", gameHandler.CreateGame)
			games.GET("", gameHandler.ListGames)
			games.GET("/:id", gameHandler.GetGame)
			games.PATCH("/:id", gameHandler.UpdateGameStatus)
			games.DELETE("/:id", gameHandler.DeleteGame)
		}

		admin := api.Group("/admin")
		{
			admin.POST("/login", adminHandler.Login)
			admin.GET("/dashboard", middleware.AdminAuth(svc.Auth), adminHandler.Dashboard)
			admin.POST("/games", middleware.AdminAuth(svc.Auth), adminHandler.LaunchGame)
		}
	}

	return r
}
