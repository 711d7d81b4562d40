package services

import (
	"errors"
	"math"

	"github.com/AgusMolinaCode/Radar_Api.git/internal/models"
)

// Errores de configuración
var (
	ErrPesoDesconocido   = errors.New("clave de peso desconocida")
	ErrPerfilDesconocido = errors.New("perfil de riesgo desconocido")
)

// riskPreset agrupa los valores que un perfil de riesgo aplica en bloque
type riskPreset struct {
	Weights    models.ScoreWeights
	Thresholds models.AlertThresholds
}

// Presets de riesgo: seleccionar uno sobreescribe pesos y umbrales de forma
// atómica, sin pasar por el rebalanceo
var riskPresets = map[string]riskPreset{
	models.RiskProfileConservative: {
		Weights:    models.ScoreWeights{Tech: 20, Security: 70, Social: 10},
		Thresholds: models.AlertThresholds{MinLiquidityUsd: 100000, WhaleBuyUsd: 10000},
	},
	models.RiskProfileBalanced: {
		Weights:    models.ScoreWeights{Tech: 40, Security: 35, Social: 25},
		Thresholds: models.AlertThresholds{MinLiquidityUsd: 50000, WhaleBuyUsd: 5000},
	},
	models.RiskProfileAggressive: {
		Weights:    models.ScoreWeights{Tech: 60, Security: 10, Social: 30},
		Thresholds: models.AlertThresholds{MinLiquidityUsd: 10000, WhaleBuyUsd: 1000},
	},
}

// RebalanceWeights ajusta un peso y redistribuye el resto entre los otros dos
// de forma que la suma quede siempre en exactamente 100.
//
// El segundo peso restante se deriva por resta en lugar de redondearse de
// forma independiente; redondear los dos por separado es el error clásico
// que deja la suma en 99 o 101.
func RebalanceWeights(weights models.ScoreWeights, changedKey string, newValue int) (models.ScoreWeights, error) {
	if newValue < 0 {
		newValue = 0
	}
	if newValue > 100 {
		newValue = 100
	}

	var otherA, otherB int
	switch changedKey {
	case models.WeightKeyTech:
		otherA, otherB = weights.Security, weights.Social
	case models.WeightKeySecurity:
		otherA, otherB = weights.Tech, weights.Social
	case models.WeightKeySocial:
		otherA, otherB = weights.Tech, weights.Security
	default:
		return weights, ErrPesoDesconocido
	}

	remaining := 100 - newValue
	otherTotal := otherA + otherB

	var newA, newB int
	if otherTotal == 0 {
		// Si los otros dos están en cero, repartir en partes iguales;
		// el resto impar cae en el segundo
		newA = remaining / 2
		newB = remaining - newA
	} else {
		// Distribución proporcional: se redondea el primero y el segundo
		// se deriva por resta para garantizar la suma exacta
		newA = int(math.Round(float64(otherA) / float64(otherTotal) * float64(remaining)))
		newB = remaining - newA
	}

	// Protección contra artefactos negativos del redondeo
	if newA < 0 {
		newA = 0
	}
	if newB < 0 {
		newB = 0
	}

	result := weights
	switch changedKey {
	case models.WeightKeyTech:
		result.Tech, result.Security, result.Social = newValue, newA, newB
	case models.WeightKeySecurity:
		result.Security, result.Tech, result.Social = newValue, newA, newB
	case models.WeightKeySocial:
		result.Social, result.Tech, result.Security = newValue, newA, newB
	}
	return result, nil
}

// ApplyWeightChange aplica el rebalanceo sobre la configuración y marca el
// perfil de riesgo como personalizado
func ApplyWeightChange(settings models.AppSettings, changedKey string, newValue int) (models.AppSettings, error) {
	weights, err := RebalanceWeights(settings.Weights, changedKey, newValue)
	if err != nil {
		return settings, err
	}
	settings.Weights = weights
	settings.RiskProfile = models.RiskProfileCustom
	return settings, nil
}

// ApplyRiskProfile sobreescribe pesos y umbrales con el preset indicado
func ApplyRiskProfile(settings models.AppSettings, profile string) (models.AppSettings, error) {
	preset, exists := riskPresets[profile]
	if !exists {
		return settings, ErrPerfilDesconocido
	}
	settings.RiskProfile = profile
	settings.Weights = preset.Weights
	settings.Thresholds = preset.Thresholds
	return settings, nil
}
