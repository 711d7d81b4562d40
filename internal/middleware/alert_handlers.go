package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/AgusMolinaCode/Radar_Api.git/internal/models"
	"github.com/AgusMolinaCode/Radar_Api.git/internal/repository"
)

// GetAlerts obtiene todas las reglas de alerta, las más recientes primero
func GetAlerts(c *gin.Context) {
	alerts, err := alertRepo.GetAlerts()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error al obtener las alertas"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"alerts": alerts})
}

// CreateAlert crea una nueva regla de alerta
func CreateAlert(c *gin.Context) {
	var input models.AlertRuleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	rule, err := alertRepo.CreateAlert(input)
	if err != nil {
		respondAlertError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Alerta creada exitosamente",
		"alert":   rule,
	})
}

// UpdateAlert actualiza una regla de alerta existente
func UpdateAlert(c *gin.Context) {
	alertID := c.Param("id")

	var input models.AlertRuleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	rule, err := alertRepo.UpdateAlert(alertID, input)
	if err != nil {
		respondAlertError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Alerta actualizada exitosamente",
		"alert":   rule,
	})
}

// ToggleAlert activa o pausa una regla de alerta
func ToggleAlert(c *gin.Context) {
	alertID := c.Param("id")

	rule, err := alertRepo.ToggleAlert(alertID)
	if err != nil {
		respondAlertError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"alert": rule})
}

// DeleteAlert elimina una regla de alerta
func DeleteAlert(c *gin.Context) {
	alertID := c.Param("id")

	if err := alertRepo.DeleteAlert(alertID); err != nil {
		respondAlertError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Alerta eliminada exitosamente"})
}

func respondAlertError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, repository.ErrAlertaNoEncontrada):
		c.JSON(http.StatusNotFound, gin.H{"error": "Alerta no encontrada"})
	case errors.Is(err, repository.ErrUmbralInvalido):
		c.JSON(http.StatusBadRequest, gin.H{"error": "El umbral debe ser un número válido"})
	case errors.Is(err, repository.ErrTokenInvalido):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Criptomoneda no encontrada"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
