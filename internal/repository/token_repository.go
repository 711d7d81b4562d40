package repository

import (
	"database/sql"
	"errors"

	"github.com/AgusMolinaCode/Radar_Api.git/internal/models"
)

var ErrTokenInvalido = errors.New("el token seleccionado no existe en el catálogo")

type TokenRepository struct {
	db *sql.DB
}

func NewTokenRepository(db *sql.DB) *TokenRepository {
	return &TokenRepository{db: db}
}

const tokenColumns = `id, name, symbol, address, chain, score, status,
	price_usd, change_24h_pct, liquidity_usd, volume_24h_usd, holders, updated_at`

func scanToken(row interface{ Scan(...any) error }) (models.Token, error) {
	var t models.Token
	err := row.Scan(
		&t.ID,
		&t.Name,
		&t.Symbol,
		&t.Address,
		&t.Chain,
		&t.Score,
		&t.Status,
		&t.PriceUsd,
		&t.Change24hPct,
		&t.LiquidityUsd,
		&t.Volume24hUsd,
		&t.Holders,
		&t.UpdatedAt,
	)
	return t, err
}

// UpsertToken inserta o actualiza un token del catálogo
func (r *TokenRepository) UpsertToken(t models.Token) error {
	query := `
		INSERT INTO tokens (id, name, symbol, address, chain, score, status,
			price_usd, change_24h_pct, liquidity_usd, volume_24h_usd, holders, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			symbol = excluded.symbol,
			chain = excluded.chain,
			score = excluded.score,
			status = excluded.status,
			price_usd = excluded.price_usd,
			change_24h_pct = excluded.change_24h_pct,
			liquidity_usd = excluded.liquidity_usd,
			volume_24h_usd = excluded.volume_24h_usd,
			holders = excluded.holders,
			updated_at = excluded.updated_at`

	_, err := r.db.Exec(query,
		t.ID, t.Name, t.Symbol, t.Address, t.Chain, t.Score, t.Status,
		t.PriceUsd, t.Change24hPct, t.LiquidityUsd, t.Volume24hUsd, t.Holders, t.UpdatedAt,
	)
	return err
}

// UpdateQuotes actualiza las cotizaciones de los tokens por símbolo
func (r *TokenRepository) UpdateQuotes(quotes map[string]models.TokenQuote) error {
	query := `
		UPDATE tokens
		SET price_usd = ?, change_24h_pct = ?, updated_at = ?
		WHERE UPPER(symbol) = ?`

	for symbol, quote := range quotes {
		if _, err := r.db.Exec(query, quote.PriceUsd, quote.Change24hPct, quote.LastUpdated, symbol); err != nil {
			return err
		}
	}
	return nil
}

// GetTokens devuelve el catálogo completo ordenado por puntaje descendente
func (r *TokenRepository) GetTokens() ([]models.Token, error) {
	query := `SELECT ` + tokenColumns + ` FROM tokens ORDER BY score DESC`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tokens []models.Token
	for rows.Next() {
		t, err := scanToken(rows)
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, t)
	}
	return tokens, rows.Err()
}

// GetToken obtiene un token del catálogo por su ID
func (r *TokenRepository) GetToken(id string) (*models.Token, error) {
	query := `SELECT ` + tokenColumns + ` FROM tokens WHERE id = ?`

	t, err := scanToken(r.db.QueryRow(query, id))
	if err == sql.ErrNoRows {
		return nil, ErrTokenInvalido
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// TokenExists verifica si un token está en el catálogo
func (r *TokenRepository) TokenExists(id string) bool {
	var one int
	err := r.db.QueryRow(`SELECT 1 FROM tokens WHERE id = ?`, id).Scan(&one)
	return err == nil
}

// GetPrice devuelve el último precio conocido de un token del catálogo
func (r *TokenRepository) GetPrice(tokenID string) (float64, error) {
	var price float64
	err := r.db.QueryRow(`SELECT price_usd FROM tokens WHERE id = ?`, tokenID).Scan(&price)
	if err == sql.ErrNoRows {
		return 0, ErrTokenInvalido
	}
	return price, err
}
