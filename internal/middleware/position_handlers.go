package middleware

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/AgusMolinaCode/Radar_Api.git/internal/models"
	"github.com/AgusMolinaCode/Radar_Api.git/internal/repository"
	"github.com/AgusMolinaCode/Radar_Api.git/internal/services"
)

// CreatePosition abre una nueva posición simulada sobre un token
func CreatePosition(c *gin.Context) {
	var input models.TransactionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if input.TokenID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Debe seleccionar un token"})
		return
	}

	pos, err := positionRepo.OpenPosition(input, time.Now())
	if err != nil {
		respondPositionError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":  "Posición creada exitosamente",
		"position": pos,
	})
}

// GetPositions obtiene todas las posiciones abiertas con su P&L actualizado
func GetPositions(c *gin.Context) {
	positions, err := positionRepo.GetPositions()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error al obtener las posiciones"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"positions": positions})
}

// GetPositionDetails obtiene una posición con su historial completo
func GetPositionDetails(c *gin.Context) {
	positionID := c.Param("id")

	pos, err := positionRepo.GetPosition(positionID)
	if err != nil {
		respondPositionError(c, err)
		return
	}

	c.JSON(http.StatusOK, pos)
}

// AddToPosition aumenta una posición existente (compra adicional).
// El precio de entrada pasa a ser el promedio ponderado.
func AddToPosition(c *gin.Context) {
	applyPositionAction(c, models.ActionAdd, "Posición aumentada")
}

// ReducePosition vende parte de una posición. La base de costo se reduce
// al precio de entrada promedio original.
func ReducePosition(c *gin.Context) {
	applyPositionAction(c, models.ActionReduce, "Posición reducida")
}

// AdjustPosition corrige manualmente los totales de una posición
func AdjustPosition(c *gin.Context) {
	applyPositionAction(c, models.ActionAdjust, "Posición ajustada")
}

func applyPositionAction(c *gin.Context, action, message string) {
	positionID := c.Param("id")

	var input models.TransactionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	pos, err := positionRepo.ApplyTransaction(positionID, action, input, time.Now())
	if err != nil {
		respondPositionError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  message,
		"position": pos,
	})
}

// ClosePosition cierra una posición y la elimina del libro
func ClosePosition(c *gin.Context) {
	positionID := c.Param("id")

	if err := positionRepo.ClosePosition(positionID); err != nil {
		respondPositionError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Posición cerrada exitosamente"})
}

// DemotePosition cierra una posición y devuelve el token a la watchlist
func DemotePosition(c *gin.Context) {
	positionID := c.Param("id")

	if err := watchlistRepo.Demote(positionID); err != nil {
		respondPositionError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Posición cerrada, el token vuelve a seguimiento"})
}

// respondPositionError traduce los errores del libro de posiciones a
// respuestas HTTP
func respondPositionError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, repository.ErrPosicionNoEncontrada):
		c.JSON(http.StatusNotFound, gin.H{"error": "Posición no encontrada"})
	case errors.Is(err, repository.ErrTokenInvalido):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Criptomoneda no encontrada"})
	case errors.Is(err, services.ErrCantidadInsuficiente):
		c.JSON(http.StatusConflict, gin.H{"error": "No se puede vender más de lo que se posee"})
	case errors.Is(err, services.ErrEntradaInvalida):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrEstrategiaDesconocida):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Estrategia de salida desconocida"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
