package models

import "time"

// Tipos de acciones que se pueden aplicar a una posición
const (
	ActionOpen   = "OPEN"
	ActionAdd    = "ADD"
	ActionReduce = "REDUCE"
	ActionAdjust = "ADJUST"
	ActionClose  = "CLOSE"
)

// Identificadores de estrategias de salida
const (
	StrategyConservative = "conservative"
	StrategyStandard     = "standard"
	StrategyMoonshot     = "moonshot"
)

// PositionHistoryItem registra una transacción aplicada a una posición.
// El historial se mantiene ordenado del más reciente al más antiguo.
type PositionHistoryItem struct {
	ID         string    `json:"id"`
	PositionID string    `json:"position_id"`
	Date       time.Time `json:"date"`
	Type       string    `json:"type"`
	PriceUsd   float64   `json:"price_usd"`
	Quantity   float64   `json:"quantity"`
	ValueUsd   float64   `json:"value_usd"` // Valor total de la transacción (compra o venta)
}

// Position representa una posición simulada sobre un token
type Position struct {
	ID             string    `json:"id"`
	TokenID        string    `json:"token_id"`
	TokenName      string    `json:"token_name"`
	TokenSymbol    string    `json:"token_symbol"`
	Chain          string    `json:"chain"`
	InvestmentUsd  float64   `json:"investment_usd"`   // Base de costo restante, nunca negativa
	EntryPriceUsd  float64   `json:"entry_price_usd"`  // Precio de entrada promedio ponderado
	Quantity       float64   `json:"quantity"`         // Cantidad actual, nunca negativa
	ExitStrategyID string    `json:"exit_strategy_id"` // Etiqueta informativa, no ejecuta ventas
	EntryDate      time.Time `json:"entry_date"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`

	// Campos derivados, recalculados contra la cotización actual antes de responder
	CurrentPriceUsd float64 `json:"current_price_usd"`
	PnlUsd          float64 `json:"pnl_usd"`
	PnlPct          float64 `json:"pnl_pct"`

	History []PositionHistoryItem `json:"history,omitempty"`
}

// TransactionInput son los datos que envía el formulario para abrir o modificar una posición
type TransactionInput struct {
	TokenID        string  `json:"token_id"`
	InvestedUsd    float64 `json:"invested_usd" binding:"required,gt=0"`
	ExecutionPrice float64 `json:"execution_price" binding:"required,gt=0"`
	ExitStrategyID string  `json:"exit_strategy_id,omitempty"`
}
