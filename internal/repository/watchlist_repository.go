package repository

import (
	"database/sql"
	"time"

	"github.com/AgusMolinaCode/Radar_Api.git/internal/models"
	"github.com/AgusMolinaCode/Radar_Api.git/internal/services"
)

// WatchlistRepository mantiene el conjunto de tokens en seguimiento y lo
// concilia con las posiciones abiertas. La clasificación es neutral: cada
// vista decide si muestra los dos roles juntos o excluye los tokens con
// posición.
type WatchlistRepository struct {
	db        *sql.DB
	tokens    *TokenRepository
	positions *PositionRepository
}

func NewWatchlistRepository(db *sql.DB, tokens *TokenRepository, positions *PositionRepository) *WatchlistRepository {
	return &WatchlistRepository{db: db, tokens: tokens, positions: positions}
}

// ToggleWatch agrega o quita un token del conjunto de seguimiento.
// Devuelve true si el token quedó en seguimiento.
func (r *WatchlistRepository) ToggleWatch(tokenID string) (bool, error) {
	if !r.tokens.TokenExists(tokenID) {
		return false, ErrTokenInvalido
	}

	if r.IsWatched(tokenID) {
		_, err := r.db.Exec(`DELETE FROM watchlist WHERE token_id = ?`, tokenID)
		return false, err
	}

	_, err := r.db.Exec(
		`INSERT INTO watchlist (token_id, created_at) VALUES (?, ?)`,
		tokenID, time.Now(),
	)
	return true, err
}

// IsWatched indica si el token está en el conjunto explícito de seguimiento
func (r *WatchlistRepository) IsWatched(tokenID string) bool {
	var one int
	err := r.db.QueryRow(`SELECT 1 FROM watchlist WHERE token_id = ?`, tokenID).Scan(&one)
	return err == nil
}

// Classify determina el estado de seguimiento de un token. Una posición
// abierta manda sobre la membresía en la watchlist.
func (r *WatchlistRepository) Classify(tokenID string) string {
	if r.positions.HasPosition(tokenID) {
		return models.TrackingHasPosition
	}
	if r.IsWatched(tokenID) {
		return models.TrackingWatchedOnly
	}
	return models.TrackingNone
}

// Promote abre una posición sobre un token en seguimiento y lo quita del
// conjunto explícito: un token con posición viva ya no aparece en la vista
// de favoritos. Las dos escrituras van en la misma transacción SQL, así que
// o el token queda con posición y fuera de favoritos, o nada cambia.
func (r *WatchlistRepository) Promote(input models.TransactionInput, now time.Time) (pos *models.Position, err error) {
	token, err := r.tokens.GetToken(input.TokenID)
	if err != nil {
		return nil, err
	}

	pos, err = services.OpenPosition(*token, input, token.PriceUsd, now)
	if err != nil {
		return nil, err
	}

	tx, err := r.db.Begin()
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			tx.Rollback()
			return
		}
		err = tx.Commit()
	}()

	err = insertPosition(tx, pos)
	if err != nil {
		return nil, err
	}

	_, err = tx.Exec(`DELETE FROM watchlist WHERE token_id = ?`, input.TokenID)
	if err != nil {
		return nil, err
	}
	return pos, nil
}

// Demote cierra una posición y devuelve el token al conjunto de seguimiento
// para que no se pierda silenciosamente del radar
func (r *WatchlistRepository) Demote(positionID string) error {
	pos, err := r.positions.GetPosition(positionID)
	if err != nil {
		return err
	}

	if err := r.positions.ClosePosition(positionID); err != nil {
		return err
	}

	if !r.IsWatched(pos.TokenID) {
		_, err = r.db.Exec(
			`INSERT INTO watchlist (token_id, created_at) VALUES (?, ?)`,
			pos.TokenID, time.Now(),
		)
	}
	return err
}

// GetWatchedTokenIDs devuelve los IDs del conjunto explícito de seguimiento
func (r *WatchlistRepository) GetWatchedTokenIDs() ([]string, error) {
	rows, err := r.db.Query(`SELECT token_id FROM watchlist ORDER BY created_at`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// GetFavorites devuelve la vista exclusiva: tokens en watchlist que NO
// tienen una posición abierta
func (r *WatchlistRepository) GetFavorites() ([]models.TrackedToken, error) {
	ids, err := r.GetWatchedTokenIDs()
	if err != nil {
		return nil, err
	}

	var favorites []models.TrackedToken
	for _, id := range ids {
		if r.positions.HasPosition(id) {
			continue
		}
		token, err := r.tokens.GetToken(id)
		if err != nil {
			// Token retirado del catálogo: lo omitimos de la vista
			continue
		}
		favorites = append(favorites, models.TrackedToken{
			Token:    *token,
			Tracking: models.TrackingWatchedOnly,
		})
	}
	return favorites, nil
}

// GetTracked devuelve la vista combinada: la unión de la watchlist y los
// tokens con posición abierta, cada uno con su rol
func (r *WatchlistRepository) GetTracked() ([]models.TrackedToken, error) {
	var tracked []models.TrackedToken
	seen := make(map[string]bool)

	positions, err := r.positions.GetPositions()
	if err != nil {
		return nil, err
	}
	for i := range positions {
		pos := positions[i]
		token, err := r.tokens.GetToken(pos.TokenID)
		if err != nil {
			continue
		}
		tracked = append(tracked, models.TrackedToken{
			Token:    *token,
			Tracking: models.TrackingHasPosition,
			Position: &pos,
		})
		seen[pos.TokenID] = true
	}

	ids, err := r.GetWatchedTokenIDs()
	if err != nil {
		return nil, err
	}
	for _, id := range ids {
		if seen[id] {
			continue
		}
		token, err := r.tokens.GetToken(id)
		if err != nil {
			continue
		}
		tracked = append(tracked, models.TrackedToken{
			Token:    *token,
			Tracking: models.TrackingWatchedOnly,
		})
	}
	return tracked, nil
}
