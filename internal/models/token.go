package models

import "time"

// Estados posibles de un token en el radar
const (
	TokenStatusVerified = "VERIFIED"
	TokenStatusWarning  = "WARNING"
	TokenStatusHighRisk = "HIGH RISK"
	TokenStatusTrending = "TRENDING"
)

// Token es la información de referencia de una criptomoneda detectada por el radar
type Token struct {
	ID           string    `json:"id"`
	Name         string    `json:"name" binding:"required"`
	Symbol       string    `json:"symbol" binding:"required"`
	Address      string    `json:"address"`
	Chain        string    `json:"chain"`
	Score        int       `json:"score"`
	Status       string    `json:"status"`
	PriceUsd     float64   `json:"price_usd"`
	Change24hPct float64   `json:"change_24h_pct"`
	LiquidityUsd float64   `json:"liquidity_usd"`
	Volume24hUsd float64   `json:"volume_24h_usd"`
	Holders      int       `json:"holders"`
	UpdatedAt    time.Time `json:"updated_at"` // Última actualización de la cotización
}

// TokenQuote es la cotización puntual que devuelve el servicio de precios
type TokenQuote struct {
	PriceUsd     float64   `json:"price_usd"`
	Change24hPct float64   `json:"change_24h_pct"`
	LastUpdated  time.Time `json:"last_updated"`
}

// Estados de seguimiento de un token
const (
	TrackingNone        = "untracked"
	TrackingWatchedOnly = "watched_only"
	TrackingHasPosition = "has_position"
)

// TrackedToken combina el token con su rol de seguimiento para las vistas
type TrackedToken struct {
	Token    Token     `json:"token"`
	Tracking string    `json:"tracking"`
	Position *Position `json:"position,omitempty"` // Presente solo cuando tracking == has_position
}
