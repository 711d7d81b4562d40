package middleware

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/AgusMolinaCode/Radar_Api.git/internal/services"
)

// GetPortfolioSummary devuelve las métricas del portafolio para las
// tarjetas KPI del tablero
func GetPortfolioSummary(c *gin.Context) {
	summary, err := positionRepo.GetSummary()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error al calcular el resumen del portafolio"})
		return
	}

	response := gin.H{"summary": summary}
	if priceUpdater != nil {
		response["prices_updated_at"] = priceUpdater.LastUpdated()
	}

	c.JSON(http.StatusOK, response)
}

// GetPortfolioHistory devuelve los snapshots diarios del valor del
// portafolio para graficar
func GetPortfolioHistory(c *gin.Context) {
	daysStr := c.DefaultQuery("days", "30")
	days, err := strconv.Atoi(daysStr)
	if err != nil || days <= 0 {
		days = 30
	}

	snapshots, err := snapshotRepo.GetSnapshots(days)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error al obtener el historial"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"snapshots": snapshots})
}

// GetStrategies devuelve las estrategias de salida disponibles
func GetStrategies(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"strategies": services.ListStrategies()})
}

// GetStrategyDetails devuelve la descripción de una estrategia de salida
func GetStrategyDetails(c *gin.Context) {
	strategy, err := services.DescribeStrategy(c.Param("id"))
	if err != nil {
		if errors.Is(err, services.ErrEstrategiaDesconocida) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Estrategia de salida desconocida"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, strategy)
}
