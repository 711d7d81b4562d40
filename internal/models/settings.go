package models

// Perfiles de riesgo disponibles
const (
	RiskProfileConservative = "conservative"
	RiskProfileBalanced     = "balanced"
	RiskProfileAggressive   = "aggressive"
	RiskProfileCustom       = "custom" // Cuando el usuario edita los pesos a mano
)

// Claves de los tres pesos de puntuación
const (
	WeightKeyTech     = "tech"
	WeightKeySecurity = "security"
	WeightKeySocial   = "social"
)

// ScoreWeights son los pesos de puntuación tech/security/social.
// Invariante: siempre suman exactamente 100 y cada uno está en [0,100].
type ScoreWeights struct {
	Tech     int `json:"tech"`
	Security int `json:"security"`
	Social   int `json:"social"`
}

// Sum devuelve la suma de los tres pesos
func (w ScoreWeights) Sum() int {
	return w.Tech + w.Security + w.Social
}

// AlertThresholds son los umbrales globales de detección
type AlertThresholds struct {
	MinLiquidityUsd float64 `json:"min_liquidity_usd"`
	WhaleBuyUsd     float64 `json:"whale_buy_usd"`
}

// AppSettings es el snapshot completo de configuración del radar.
// Se persiste solo cuando el usuario guarda explícitamente.
type AppSettings struct {
	Weights         ScoreWeights    `json:"weights"`
	Thresholds      AlertThresholds `json:"thresholds"`
	AutoRefresh     bool            `json:"auto_refresh"`
	RefreshInterval string          `json:"refresh_interval"`
	RiskProfile     string          `json:"risk_profile"`
}

// DefaultSettings devuelve la configuración inicial (perfil balanceado)
func DefaultSettings() AppSettings {
	return AppSettings{
		Weights:         ScoreWeights{Tech: 40, Security: 35, Social: 25},
		Thresholds:      AlertThresholds{MinLiquidityUsd: 50000, WhaleBuyUsd: 5000},
		AutoRefresh:     true,
		RefreshInterval: "1m",
		RiskProfile:     RiskProfileBalanced,
	}
}
