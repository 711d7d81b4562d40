package models

import "time"

// PortfolioSummary es el resumen del portafolio para las tarjetas KPI
type PortfolioSummary struct {
	TotalInvestedUsd float64 `json:"total_invested_usd"`
	TotalValueUsd    float64 `json:"total_value_usd"`
	UnrealizedPnlUsd float64 `json:"unrealized_pnl_usd"`
	PnlPct           float64 `json:"pnl_pct"`
	OpenPositions    int     `json:"open_positions"`
}

// InvestmentSnapshot guarda el valor del portafolio en un día determinado,
// junto con el máximo y mínimo observados dentro de ese día
type InvestmentSnapshot struct {
	ID               string    `json:"id"`
	Date             time.Time `json:"date"`
	TotalValue       float64   `json:"total_value"`
	TotalInvested    float64   `json:"total_invested"`
	Profit           float64   `json:"profit"`
	ProfitPercentage float64   `json:"profit_percentage"`
	MaxValue         float64   `json:"max_value"`
	MinValue         float64   `json:"min_value"`
	CreatedAt        time.Time `json:"created_at"`
}
