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

// GetTokens devuelve el catálogo de tokens con sus últimas cotizaciones
func GetTokens(c *gin.Context) {
	tokens, err := tokenRepo.GetTokens()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error al obtener los tokens"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"tokens": tokens})
}

// GetToken devuelve un token del catálogo con su estado de seguimiento y,
// si la tiene, su posición abierta
func GetToken(c *gin.Context) {
	tokenID := c.Param("id")

	token, err := tokenRepo.GetToken(tokenID)
	if err != nil {
		if errors.Is(err, repository.ErrTokenInvalido) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Criptomoneda no encontrada"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	// Refrescar la cotización del símbolo; si el feed no responde se sirve
	// la última conocida y el token conserva su precio almacenado
	if quote, err := services.GetTokenQuote(token.Symbol); err == nil {
		token.PriceUsd = quote.PriceUsd
		token.Change24hPct = quote.Change24hPct
		token.UpdatedAt = quote.LastUpdated
	}

	response := gin.H{
		"token":    token,
		"tracking": watchlistRepo.Classify(tokenID),
	}
	if pos, err := positionRepo.GetPositionByToken(tokenID); err == nil {
		services.RefreshPnl(pos, token.PriceUsd)
		response["position"] = pos
	}

	c.JSON(http.StatusOK, response)
}

// ToggleWatchlist agrega o quita un token del seguimiento
func ToggleWatchlist(c *gin.Context) {
	tokenID := c.Param("tokenId")

	watched, err := watchlistRepo.ToggleWatch(tokenID)
	if err != nil {
		if errors.Is(err, repository.ErrTokenInvalido) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Criptomoneda no encontrada"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	message := "Token quitado del seguimiento"
	if watched {
		message = "Token agregado al seguimiento"
	}
	c.JSON(http.StatusOK, gin.H{"message": message, "watched": watched})
}

// GetFavorites devuelve la vista exclusiva: tokens en seguimiento sin
// posición abierta
func GetFavorites(c *gin.Context) {
	favorites, err := watchlistRepo.GetFavorites()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error al obtener los favoritos"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"favorites": favorites})
}

// GetTracked devuelve la vista combinada: watchlist y posiciones juntas
func GetTracked(c *gin.Context) {
	tracked, err := watchlistRepo.GetTracked()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error al obtener los tokens en seguimiento"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"tracked": tracked})
}

// PromoteToken abre una posición sobre un token en seguimiento y lo quita
// de la vista de favoritos
func PromoteToken(c *gin.Context) {
	var input models.TransactionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	input.TokenID = c.Param("tokenId")

	pos, err := watchlistRepo.Promote(input, time.Now())
	if err != nil {
		respondPositionError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":  "Posición abierta, el token sale de favoritos",
		"position": pos,
	})
}
