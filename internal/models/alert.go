package models

import (
	"time"

	"github.com/google/uuid"
)

// Operadores de comparación para reglas de alerta
const (
	OperatorGreater   = ">"
	OperatorLess      = "<"
	OperatorChangePct = "%"
)

// Tipos de métricas sobre las que se define una alerta
const (
	AlertTypePriceAction = "Price Action"
	AlertTypeVolume      = "Volume"
	AlertTypeLiquidity   = "Liquidity"
	AlertTypeHolders     = "Holders"
)

// Frecuencias de notificación
const (
	AlertFreqRealTime = "Real-time"
	AlertFreqHourly   = "Hourly"
	AlertFreqDaily    = "Daily"
)

// AlertRule representa una regla de alerta sobre un token.
// Este servicio solo almacena las reglas; la evaluación contra datos
// en vivo corre por cuenta de un colaborador externo.
type AlertRule struct {
	ID           string    `json:"id"`
	TokenID      string    `json:"token_id"`
	TokenName    string    `json:"token_name"`
	TokenSymbol  string    `json:"token_symbol"`
	TokenAddress string    `json:"token_address"`
	Chain        string    `json:"chain"`
	Type         string    `json:"type" binding:"required"`
	Operator     string    `json:"operator" binding:"required"`
	Threshold    float64   `json:"threshold"`
	Frequency    string    `json:"frequency"`
	IsEnabled    bool      `json:"is_enabled"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// AlertRuleInput son los datos del formulario de creación/edición de alertas.
// El umbral llega como texto porque el campo del formulario es libre.
type AlertRuleInput struct {
	TokenID   string `json:"token_id" binding:"required"`
	Type      string `json:"type"`
	Operator  string `json:"operator"`
	Threshold string `json:"threshold" binding:"required"`
	Frequency string `json:"frequency"`
}

// GenerateUUID - Función auxiliar para generar identificadores únicos
func GenerateUUID() string {
	return uuid.NewString()
}
