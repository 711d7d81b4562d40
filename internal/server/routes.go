package routes

import (
	"github.com/AgusMolinaCode/Radar_Api.git/internal/middleware"
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(router *gin.Engine) {
	// Catálogo de tokens
	router.GET("/tokens", middleware.GetTokens)
	router.GET("/tokens/:id", middleware.GetToken)

	// Posiciones simuladas
	router.POST("/positions", middleware.CreatePosition)
	router.GET("/positions", middleware.GetPositions)
	router.GET("/positions/:id", middleware.GetPositionDetails)
	router.POST("/positions/:id/add", middleware.AddToPosition)
	router.POST("/positions/:id/reduce", middleware.ReducePosition)
	router.PUT("/positions/:id", middleware.AdjustPosition)
	router.DELETE("/positions/:id", middleware.ClosePosition)
	router.POST("/positions/:id/demote", middleware.DemotePosition)

	// Resumen e historial del portafolio
	router.GET("/portfolio/summary", middleware.GetPortfolioSummary)
	router.GET("/portfolio/history", middleware.GetPortfolioHistory)

	// Seguimiento: vista combinada y vista exclusiva de favoritos
	router.GET("/tracked", middleware.GetTracked)
	router.GET("/favorites", middleware.GetFavorites)
	router.POST("/watchlist/:tokenId", middleware.ToggleWatchlist)
	router.POST("/favorites/:tokenId/promote", middleware.PromoteToken)

	// Reglas de alerta
	router.GET("/alerts", middleware.GetAlerts)
	router.POST("/alerts", middleware.CreateAlert)
	router.PUT("/alerts/:id", middleware.UpdateAlert)
	router.PATCH("/alerts/:id/toggle", middleware.ToggleAlert)
	router.DELETE("/alerts/:id", middleware.DeleteAlert)

	// Configuración y perfil
	router.GET("/settings", middleware.GetSettings)
	router.PUT("/settings", middleware.SaveSettings)
	router.PUT("/settings/weights", middleware.RebalanceWeights)
	router.PUT("/settings/risk-profile", middleware.ApplyRiskProfile)
	router.GET("/profile", middleware.GetProfile)
	router.PUT("/profile", middleware.UpdateProfile)

	// Estrategias de salida
	router.GET("/strategies", middleware.GetStrategies)
	router.GET("/strategies/:id", middleware.GetStrategyDetails)
}
