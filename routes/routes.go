package routes

import (
	"Magnate/controllers"
	"Magnate/services/ledger"
	utils "Magnate/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// SetupRoutes configures all API routes
func SetupRoutes(router *gin.Engine, db *gorm.DB, registry *ledger.Registry, log *zap.Logger) {
	// utils global
	router.Use(utils.ErrorHandler())
	router.Use(utils.RequestLogger(log))

	// API routes group
	api := router.Group("/")

	api.GET("/ping", controllers.Ping)

	api.GET("/session", controllers.CurrentSession(registry))

	games := api.Group("/games")
	{
		games.POST("", controllers.CreateGame(registry))

		games.GET("/:game_id", controllers.GetGameInfo(db))

		games.POST("/:game_id/join", controllers.JoinGame(registry))

		games.POST("/:game_id/leave", controllers.LeaveGame())

		games.POST("/:game_id/players", controllers.AddPlayer(registry))

		games.POST("/:game_id/start", controllers.StartGame(registry))

		games.GET("/:game_id/snapshot", controllers.GetSnapshot(registry))

		games.GET("/:game_id/net_worth", controllers.GetNetWorth(registry))
	}
}
