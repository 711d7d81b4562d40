package services

import "github.com/AgusMolinaCode/Radar_Api.git/internal/models"

// Tabla fija de estrategias de salida. Son datos descriptivos adjuntos a la
// posición; el sistema nunca ejecuta ninguna venta por su cuenta.
var exitStrategies = map[string]models.ExitStrategy{
	models.StrategyConservative: {
		ID:          models.StrategyConservative,
		Label:       "Conservative",
		Description: "Low risk. Focus on securing capital early and protecting against downside.",
		Timeline:    []string{"Sell 25% @ 1.5x", "Sell 50% @ 2x (Profit)", "Stop Loss @ -10%"},
	},
	models.StrategyStandard: {
		ID:          models.StrategyStandard,
		Label:       "Standard",
		Description: "Balanced. Sell 50% at 2x to break even, then hold the rest as a \"Moonbag\" (risk-free position).",
		Timeline:    []string{"Sell 50% @ 2x (Breakeven)", "Sell 25% @ 5x", "Hold 25% (Moonbag)"},
	},
	models.StrategyMoonshot: {
		ID:          models.StrategyMoonshot,
		Label:       "Moonshot",
		Description: "Aggressive. Aiming for \"Valhalla\" (life-changing gains). Willing to hold through volatility.",
		Timeline:    []string{"Sell 15% @ 3x", "Sell 35% @ 10x", "Hold 50% for Valhalla"},
	},
}

// Orden de presentación de las estrategias
var strategyOrder = []string{
	models.StrategyConservative,
	models.StrategyStandard,
	models.StrategyMoonshot,
}

// DescribeStrategy devuelve la descripción de una estrategia de salida
func DescribeStrategy(id string) (models.ExitStrategy, error) {
	strategy, exists := exitStrategies[id]
	if !exists {
		return models.ExitStrategy{}, ErrEstrategiaDesconocida
	}
	return strategy, nil
}

// ValidStrategy indica si el identificador corresponde a una estrategia conocida
func ValidStrategy(id string) bool {
	_, exists := exitStrategies[id]
	return exists
}

// ListStrategies devuelve todas las estrategias en orden de presentación
func ListStrategies() []models.ExitStrategy {
	result := make([]models.ExitStrategy, 0, len(strategyOrder))
	for _, id := range strategyOrder {
		result = append(result, exitStrategies[id])
	}
	return result
}
