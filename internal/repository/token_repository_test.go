package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AgusMolinaCode/Radar_Api.git/internal/models"
)

func TestUpsertAndGetToken(t *testing.T) {
	db := newTestDB(t)
	tokens := NewTokenRepository(db)

	seeded := seedToken(t, tokens, "sol-wif", "WIF", 0.0012)

	got, err := tokens.GetToken("sol-wif")
	require.NoError(t, err)
	assert.Equal(t, seeded.Name, got.Name)
	assert.Equal(t, "WIF", got.Symbol)
	assert.InDelta(t, 0.0012, got.PriceUsd, 1e-12)

	// Upsert sobre el mismo ID actualiza en lugar de duplicar
	seeded.PriceUsd = 0.002
	seeded.Score = 90
	require.NoError(t, tokens.UpsertToken(seeded))

	all, err := tokens.GetTokens()
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.InDelta(t, 0.002, all[0].PriceUsd, 1e-12)
	assert.Equal(t, 90, all[0].Score)
}

func TestGetTokenNotFound(t *testing.T) {
	db := newTestDB(t)
	tokens := NewTokenRepository(db)

	_, err := tokens.GetToken("eth-ghost")
	assert.ErrorIs(t, err, ErrTokenInvalido)

	_, err = tokens.GetPrice("eth-ghost")
	assert.ErrorIs(t, err, ErrTokenInvalido)

	assert.False(t, tokens.TokenExists("eth-ghost"))
}

func TestGetTokensOrderedByScore(t *testing.T) {
	db := newTestDB(t)
	tokens := NewTokenRepository(db)

	low := seedToken(t, tokens, "sol-aaa", "AAA", 0.1)
	low.Score = 10
	require.NoError(t, tokens.UpsertToken(low))

	high := seedToken(t, tokens, "sol-bbb", "BBB", 0.2)
	high.Score = 95
	require.NoError(t, tokens.UpsertToken(high))

	all, err := tokens.GetTokens()
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "sol-bbb", all[0].ID)
	assert.Equal(t, "sol-aaa", all[1].ID)
}

func TestUpdateQuotesBySymbol(t *testing.T) {
	db := newTestDB(t)
	tokens := NewTokenRepository(db)

	seedToken(t, tokens, "sol-wif", "WIF", 0.001)
	seedToken(t, tokens, "sol-bonk", "BONK", 0.00002)

	err := tokens.UpdateQuotes(map[string]models.TokenQuote{
		"WIF": {PriceUsd: 0.0015, Change24hPct: 12.5, LastUpdated: time.Now()},
	})
	require.NoError(t, err)

	price, err := tokens.GetPrice("sol-wif")
	require.NoError(t, err)
	assert.InDelta(t, 0.0015, price, 1e-12)

	// Los tokens sin cotización nueva no cambian
	price, err = tokens.GetPrice("sol-bonk")
	require.NoError(t, err)
	assert.InDelta(t, 0.00002, price, 1e-12)
}
