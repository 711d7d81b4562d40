package repository

import (
	"database/sql"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/require"

	"github.com/AgusMolinaCode/Radar_Api.git/internal/database"
	"github.com/AgusMolinaCode/Radar_Api.git/internal/models"
)

// newTestDB abre una base SQLite en memoria con el esquema completo.
// Se limita a una sola conexión porque cada conexión en memoria es una
// base distinta.
func newTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, database.CreateTables(db))
	return db
}

// seedToken inserta un token de prueba en el catálogo
func seedToken(t *testing.T, tokens *TokenRepository, id, symbol string, price float64) models.Token {
	t.Helper()

	token := models.Token{
		ID:           id,
		Name:         symbol + " Coin",
		Symbol:       symbol,
		Address:      "0x" + id,
		Chain:        "sol",
		Score:        72,
		Status:       models.TokenStatusVerified,
		PriceUsd:     price,
		LiquidityUsd: 250000,
	}
	require.NoError(t, tokens.UpsertToken(token))
	return token
}
