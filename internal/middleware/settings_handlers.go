package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/AgusMolinaCode/Radar_Api.git/internal/models"
	"github.com/AgusMolinaCode/Radar_Api.git/internal/services"
)

// GetSettings devuelve el último snapshot de configuración guardado
func GetSettings(c *gin.Context) {
	settings, err := settingsRepo.LoadSettings()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error al cargar la configuración"})
		return
	}

	c.JSON(http.StatusOK, settings)
}

// SaveSettings guarda el snapshot completo de configuración. Este es el
// único punto donde los cambios del usuario se comprometen a disco.
func SaveSettings(c *gin.Context) {
	var settings models.AppSettings
	if err := c.ShouldBindJSON(&settings); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if settings.Weights.Sum() != 100 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Los pesos deben sumar exactamente 100"})
		return
	}

	if err := settingsRepo.SaveSettings(settings); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error al guardar la configuración"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "Configuración guardada exitosamente",
		"settings": settings,
	})
}

// RebalanceInput son los datos del deslizador de pesos
type RebalanceInput struct {
	Weights    models.ScoreWeights `json:"weights"`
	ChangedKey string              `json:"changed_key" binding:"required"`
	NewValue   int                 `json:"new_value"`
}

// RebalanceWeights recalcula los tres pesos tras mover un deslizador.
// Es un cálculo puro: no persiste nada hasta que el usuario guarda.
func RebalanceWeights(c *gin.Context) {
	var input RebalanceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	weights, err := services.RebalanceWeights(input.Weights, input.ChangedKey, input.NewValue)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Clave de peso desconocida"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"weights":      weights,
		"risk_profile": models.RiskProfileCustom,
	})
}

// ApplyRiskProfile aplica un preset de riesgo sobre la configuración
// guardada. El preset sobreescribe pesos y umbrales en bloque.
func ApplyRiskProfile(c *gin.Context) {
	var input struct {
		Profile string `json:"profile" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	settings, err := settingsRepo.LoadSettings()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error al cargar la configuración"})
		return
	}

	settings, err = services.ApplyRiskProfile(settings, input.Profile)
	if err != nil {
		if errors.Is(err, services.ErrPerfilDesconocido) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Perfil de riesgo desconocido"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if err := settingsRepo.SaveSettings(settings); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error al guardar la configuración"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "Perfil de riesgo aplicado",
		"settings": settings,
	})
}

// GetProfile devuelve el perfil local del usuario
func GetProfile(c *gin.Context) {
	profile, err := settingsRepo.LoadProfile()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error al cargar el perfil"})
		return
	}

	c.JSON(http.StatusOK, profile)
}

// UpdateProfile guarda el perfil local del usuario
func UpdateProfile(c *gin.Context) {
	var profile models.UserProfile
	if err := c.ShouldBindJSON(&profile); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := settingsRepo.SaveProfile(profile); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error al guardar el perfil"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Perfil actualizado exitosamente",
		"profile": profile,
	})
}
