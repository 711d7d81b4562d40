package services

import (
	"errors"
	"time"

	"github.com/AgusMolinaCode/Radar_Api.git/internal/models"
)

// Errores del libro de posiciones
var (
	ErrEntradaInvalida       = errors.New("el monto y el precio de ejecución deben ser mayores a cero")
	ErrCantidadInsuficiente  = errors.New("no se puede vender más de lo que se posee")
	ErrEstrategiaDesconocida = errors.New("estrategia de salida desconocida")
)

// Un residuo por debajo de este umbral se ajusta a cero para evitar
// restos negativos de la aritmética de punto flotante
const residualEpsilon = 1e-9

// ComputePnl calcula la ganancia/pérdida no realizada de una posición
// contra el precio actual. Con inversión cero el porcentaje es 0 por
// convención, nunca NaN ni infinito.
func ComputePnl(quantity, investmentUsd, currentPrice float64) (pnlUsd, pnlPct float64) {
	pnlUsd = quantity*currentPrice - investmentUsd
	if investmentUsd > 0 {
		pnlPct = (pnlUsd / investmentUsd) * 100
	}
	return pnlUsd, pnlPct
}

// RefreshPnl recalcula los campos derivados de la posición con la cotización dada
func RefreshPnl(pos *models.Position, currentPrice float64) {
	pos.CurrentPriceUsd = currentPrice
	pos.PnlUsd, pos.PnlPct = ComputePnl(pos.Quantity, pos.InvestmentUsd, currentPrice)
}

// OpenPosition crea una nueva posición a partir de la transacción inicial.
// La cantidad se deriva del monto invertido y el precio de ejecución.
func OpenPosition(token models.Token, input models.TransactionInput, currentPrice float64, now time.Time) (*models.Position, error) {
	if input.InvestedUsd <= 0 || input.ExecutionPrice <= 0 {
		return nil, ErrEntradaInvalida
	}

	strategyID := input.ExitStrategyID
	if strategyID == "" {
		strategyID = models.StrategyStandard
	}
	if !ValidStrategy(strategyID) {
		return nil, ErrEstrategiaDesconocida
	}

	quantity := input.InvestedUsd / input.ExecutionPrice
	positionID := models.GenerateUUID()

	pos := &models.Position{
		ID:             positionID,
		TokenID:        token.ID,
		TokenName:      token.Name,
		TokenSymbol:    token.Symbol,
		Chain:          token.Chain,
		InvestmentUsd:  input.InvestedUsd,
		EntryPriceUsd:  input.ExecutionPrice,
		Quantity:       quantity,
		ExitStrategyID: strategyID,
		EntryDate:      now,
		CreatedAt:      now,
		UpdatedAt:      now,
		History: []models.PositionHistoryItem{
			{
				ID:         models.GenerateUUID(),
				PositionID: positionID,
				Date:       now,
				Type:       models.ActionOpen,
				PriceUsd:   input.ExecutionPrice,
				Quantity:   quantity,
				ValueUsd:   input.InvestedUsd,
			},
		},
	}

	RefreshPnl(pos, currentPrice)
	return pos, nil
}

// ApplyTransaction aplica una acción ADD, REDUCE o ADJUST sobre una posición
// existente y devuelve la posición resultante con su historial extendido.
// La posición recibida no se modifica: si la operación falla, el estado
// queda intacto.
func ApplyTransaction(existing *models.Position, action string, input models.TransactionInput, currentPrice float64, now time.Time) (*models.Position, error) {
	if input.InvestedUsd <= 0 || input.ExecutionPrice <= 0 {
		return nil, ErrEntradaInvalida
	}

	txnQty := input.InvestedUsd / input.ExecutionPrice

	pos := clonePosition(existing)

	switch action {
	case models.ActionAdd:
		// Promedio ponderado: el nuevo precio de entrada es el costo total
		// dividido por la cantidad total
		newQty := existing.Quantity + txnQty
		newInvest := existing.InvestmentUsd + input.InvestedUsd
		pos.Quantity = newQty
		pos.InvestmentUsd = newInvest
		pos.EntryPriceUsd = newInvest / newQty

	case models.ActionReduce:
		if txnQty > existing.Quantity+residualEpsilon {
			return nil, ErrCantidadInsuficiente
		}
		// La base de costo se reduce en proporción a la cantidad vendida,
		// valuada al precio de entrada promedio original. El precio de
		// entrada no cambia en una venta.
		costBasisRemoved := txnQty * existing.EntryPriceUsd
		pos.Quantity = clampResidual(existing.Quantity - txnQty)
		pos.InvestmentUsd = clampResidual(existing.InvestmentUsd - costBasisRemoved)
		if pos.Quantity == 0 {
			pos.InvestmentUsd = 0
		}

	case models.ActionAdjust:
		// Corrección manual: los valores del formulario son totales absolutos
		pos.InvestmentUsd = input.InvestedUsd
		pos.EntryPriceUsd = input.ExecutionPrice
		pos.Quantity = txnQty
		if input.ExitStrategyID != "" {
			if !ValidStrategy(input.ExitStrategyID) {
				return nil, ErrEstrategiaDesconocida
			}
			pos.ExitStrategyID = input.ExitStrategyID
		}

	default:
		return nil, ErrEntradaInvalida
	}

	item := models.PositionHistoryItem{
		ID:         models.GenerateUUID(),
		PositionID: pos.ID,
		Date:       now,
		Type:       action,
		PriceUsd:   input.ExecutionPrice,
		Quantity:   txnQty,
		ValueUsd:   input.InvestedUsd,
	}
	// Historial del más reciente al más antiguo
	pos.History = append([]models.PositionHistoryItem{item}, existing.History...)
	pos.UpdatedAt = now

	RefreshPnl(pos, currentPrice)
	return pos, nil
}

func clonePosition(p *models.Position) *models.Position {
	copia := *p
	copia.History = nil
	return &copia
}

func clampResidual(v float64) float64 {
	if v < residualEpsilon {
		return 0
	}
	return v
}
