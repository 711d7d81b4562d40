package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AgusMolinaCode/Radar_Api.git/internal/models"
)

func TestOpenPositionPersistsWithHistory(t *testing.T) {
	db := newTestDB(t)
	tokens := NewTokenRepository(db)
	positions := NewPositionRepository(db, tokens)

	seedToken(t, tokens, "sol-wif", "WIF", 0.001)
	now := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)

	pos, err := positions.OpenPosition(models.TransactionInput{
		TokenID:        "sol-wif",
		InvestedUsd:    1000,
		ExecutionPrice: 0.001,
	}, now)
	require.NoError(t, err)

	loaded, err := positions.GetPosition(pos.ID)
	require.NoError(t, err)
	assert.InDelta(t, 1000000, loaded.Quantity, 1e-6)
	assert.InDelta(t, 1000, loaded.InvestmentUsd, 1e-9)
	assert.InDelta(t, 0.001, loaded.EntryPriceUsd, 1e-12)
	assert.Equal(t, models.StrategyStandard, loaded.ExitStrategyID)
	assert.Equal(t, "WIF", loaded.TokenSymbol)

	require.Len(t, loaded.History, 1)
	assert.Equal(t, models.ActionOpen, loaded.History[0].Type)

	// Los campos derivados se recalculan con el precio del catálogo
	assert.InDelta(t, 0.001, loaded.CurrentPriceUsd, 1e-12)
	assert.InDelta(t, 0, loaded.PnlUsd, 1e-6)
}

func TestOpenPositionUnknownToken(t *testing.T) {
	db := newTestDB(t)
	tokens := NewTokenRepository(db)
	positions := NewPositionRepository(db, tokens)

	_, err := positions.OpenPosition(models.TransactionInput{
		TokenID:        "sol-ghost",
		InvestedUsd:    100,
		ExecutionPrice: 0.01,
	}, time.Now())
	assert.ErrorIs(t, err, ErrTokenInvalido)
}

func TestApplyTransactionRoundTrip(t *testing.T) {
	db := newTestDB(t)
	tokens := NewTokenRepository(db)
	positions := NewPositionRepository(db, tokens)

	seedToken(t, tokens, "sol-wif", "WIF", 0.001)
	now := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)

	pos, err := positions.OpenPosition(models.TransactionInput{
		TokenID:        "sol-wif",
		InvestedUsd:    1000,
		ExecutionPrice: 0.001,
	}, now)
	require.NoError(t, err)

	// Compra adicional: promedio ponderado
	updated, err := positions.ApplyTransaction(pos.ID, models.ActionAdd, models.TransactionInput{
		InvestedUsd:    500,
		ExecutionPrice: 0.002,
	}, now.Add(time.Hour))
	require.NoError(t, err)
	assert.InDelta(t, 1250000, updated.Quantity, 1e-6)
	assert.InDelta(t, 0.0012, updated.EntryPriceUsd, 1e-12)

	// Venta parcial: la base de costo baja en proporción
	updated, err = positions.ApplyTransaction(pos.ID, models.ActionReduce, models.TransactionInput{
		InvestedUsd:    300,
		ExecutionPrice: 0.0015,
	}, now.Add(2*time.Hour))
	require.NoError(t, err)
	assert.InDelta(t, 1050000, updated.Quantity, 1e-6)
	assert.InDelta(t, 1260, updated.InvestmentUsd, 1e-9)
	assert.InDelta(t, 0.0012, updated.EntryPriceUsd, 1e-12)

	// Recargar desde la base: el estado persistido coincide y el historial
	// queda del más reciente al más antiguo
	loaded, err := positions.GetPosition(pos.ID)
	require.NoError(t, err)
	assert.InDelta(t, 1050000, loaded.Quantity, 1e-6)
	assert.InDelta(t, 1260, loaded.InvestmentUsd, 1e-9)

	require.Len(t, loaded.History, 3)
	assert.Equal(t, models.ActionReduce, loaded.History[0].Type)
	assert.Equal(t, models.ActionAdd, loaded.History[1].Type)
	assert.Equal(t, models.ActionOpen, loaded.History[2].Type)
}

func TestApplyTransactionOvershootLeavesStateIntact(t *testing.T) {
	db := newTestDB(t)
	tokens := NewTokenRepository(db)
	positions := NewPositionRepository(db, tokens)

	seedToken(t, tokens, "sol-wif", "WIF", 0.001)
	now := time.Now()

	pos, err := positions.OpenPosition(models.TransactionInput{
		TokenID:        "sol-wif",
		InvestedUsd:    100,
		ExecutionPrice: 0.001,
	}, now)
	require.NoError(t, err)

	_, err = positions.ApplyTransaction(pos.ID, models.ActionReduce, models.TransactionInput{
		InvestedUsd:    500,
		ExecutionPrice: 0.001,
	}, now.Add(time.Minute))
	require.Error(t, err)

	loaded, err := positions.GetPosition(pos.ID)
	require.NoError(t, err)
	assert.InDelta(t, 100, loaded.InvestmentUsd, 1e-9)
	assert.Len(t, loaded.History, 1)
}

func TestGetPositionByToken(t *testing.T) {
	db := newTestDB(t)
	tokens := NewTokenRepository(db)
	positions := NewPositionRepository(db, tokens)

	seedToken(t, tokens, "sol-wif", "WIF", 0.002)
	opened, err := positions.OpenPosition(models.TransactionInput{
		TokenID:        "sol-wif",
		InvestedUsd:    1000,
		ExecutionPrice: 0.001,
	}, time.Now())
	require.NoError(t, err)

	pos, err := positions.GetPositionByToken("sol-wif")
	require.NoError(t, err)
	assert.Equal(t, opened.ID, pos.ID)
	// Derivados recalculados contra el precio actual del catálogo
	assert.InDelta(t, 0.002, pos.CurrentPriceUsd, 1e-12)
	assert.InDelta(t, 1000, pos.PnlUsd, 1e-6)

	assert.True(t, positions.HasPosition("sol-wif"))

	_, err = positions.GetPositionByToken("sol-bonk")
	assert.ErrorIs(t, err, ErrPosicionNoEncontrada)
	assert.False(t, positions.HasPosition("sol-bonk"))
}

func TestClosePositionDeletesHistory(t *testing.T) {
	db := newTestDB(t)
	tokens := NewTokenRepository(db)
	positions := NewPositionRepository(db, tokens)

	seedToken(t, tokens, "sol-wif", "WIF", 0.001)
	pos, err := positions.OpenPosition(models.TransactionInput{
		TokenID:        "sol-wif",
		InvestedUsd:    100,
		ExecutionPrice: 0.001,
	}, time.Now())
	require.NoError(t, err)

	require.NoError(t, positions.ClosePosition(pos.ID))

	_, err = positions.GetPosition(pos.ID)
	assert.ErrorIs(t, err, ErrPosicionNoEncontrada)

	var count int
	require.NoError(t, db.QueryRow(
		`SELECT COUNT(*) FROM position_history WHERE position_id = ?`, pos.ID,
	).Scan(&count))
	assert.Zero(t, count)

	// Cerrar de nuevo falla porque la posición ya no existe
	assert.ErrorIs(t, positions.ClosePosition(pos.ID), ErrPosicionNoEncontrada)
}

func TestGetSummary(t *testing.T) {
	db := newTestDB(t)
	tokens := NewTokenRepository(db)
	positions := NewPositionRepository(db, tokens)

	now := time.Now()

	// Portafolio vacío: todo en cero, sin divisiones inválidas
	summary, err := positions.GetSummary()
	require.NoError(t, err)
	assert.Zero(t, summary.OpenPositions)
	assert.Zero(t, summary.PnlPct)

	seedToken(t, tokens, "sol-wif", "WIF", 0.002)
	seedToken(t, tokens, "sol-bonk", "BONK", 0.00001)

	// 1000 USD @ 0.001, ahora a 0.002: vale 2000
	_, err = positions.OpenPosition(models.TransactionInput{
		TokenID:        "sol-wif",
		InvestedUsd:    1000,
		ExecutionPrice: 0.001,
	}, now)
	require.NoError(t, err)

	// 500 USD @ 0.00002, ahora a 0.00001: vale 250
	_, err = positions.OpenPosition(models.TransactionInput{
		TokenID:        "sol-bonk",
		InvestedUsd:    500,
		ExecutionPrice: 0.00002,
	}, now.Add(time.Minute))
	require.NoError(t, err)

	summary, err = positions.GetSummary()
	require.NoError(t, err)
	assert.Equal(t, 2, summary.OpenPositions)
	assert.InDelta(t, 1500, summary.TotalInvestedUsd, 1e-6)
	assert.InDelta(t, 2250, summary.TotalValueUsd, 1e-6)
	assert.InDelta(t, 750, summary.UnrealizedPnlUsd, 1e-6)
	assert.InDelta(t, 50, summary.PnlPct, 1e-6)
}
