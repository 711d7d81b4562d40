package repository

import (
	"database/sql"
	"errors"
	"time"

	"github.com/AgusMolinaCode/Radar_Api.git/internal/models"
	"github.com/AgusMolinaCode/Radar_Api.git/internal/services"
)

var ErrPosicionNoEncontrada = errors.New("posición no encontrada")

type PositionRepository struct {
	db     *sql.DB
	tokens *TokenRepository
}

func NewPositionRepository(db *sql.DB, tokens *TokenRepository) *PositionRepository {
	return &PositionRepository{db: db, tokens: tokens}
}

// OpenPosition abre una nueva posición aplicando la transacción inicial.
// El nombre, símbolo y cadena del token se copian al crearla y no se
// vuelven a sincronizar después.
func (r *PositionRepository) OpenPosition(input models.TransactionInput, now time.Time) (pos *models.Position, err error) {
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

	return pos, nil
}

// ApplyTransaction aplica una acción ADD, REDUCE o ADJUST sobre una posición
// existente. O bien la posición y su historial quedan actualizados de forma
// consistente, o la transacción SQL se revierte y el estado no cambia.
func (r *PositionRepository) ApplyTransaction(positionID, action string, input models.TransactionInput, now time.Time) (updated *models.Position, err error) {
	existing, err := r.GetPosition(positionID)
	if err != nil {
		return nil, err
	}

	currentPrice, err := r.tokens.GetPrice(existing.TokenID)
	if err != nil {
		// Sin cotización seguimos operando con el último precio derivable
		currentPrice = existing.CurrentPriceUsd
	}

	updated, err = services.ApplyTransaction(existing, action, input, currentPrice, now)
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

	_, err = tx.Exec(
		`UPDATE positions
		SET investment_usd = ?, entry_price_usd = ?, quantity = ?,
			exit_strategy_id = ?, updated_at = ?
		WHERE id = ?`,
		updated.InvestmentUsd, updated.EntryPriceUsd, updated.Quantity,
		updated.ExitStrategyID, updated.UpdatedAt, updated.ID,
	)
	if err != nil {
		return nil, err
	}

	err = insertHistory(tx, updated.ID, updated.History[0])
	if err != nil {
		return nil, err
	}

	return updated, nil
}

// ClosePosition elimina la posición y su historial. La posición cerrada no
// se archiva: quien necesite auditar cierres debe copiarla antes de cerrar.
func (r *PositionRepository) ClosePosition(positionID string) error {
	result, err := r.db.Exec(`DELETE FROM positions WHERE id = ?`, positionID)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrPosicionNoEncontrada
	}

	// El borrado en cascada depende de PRAGMA foreign_keys, así que
	// limpiamos el historial explícitamente
	_, err = r.db.Exec(`DELETE FROM position_history WHERE position_id = ?`, positionID)
	return err
}

// GetPosition obtiene una posición con su historial completo (del más
// reciente al más antiguo) y la ganancia/pérdida recalculada
func (r *PositionRepository) GetPosition(positionID string) (*models.Position, error) {
	pos, err := r.scanPosition(r.db.QueryRow(
		`SELECT `+positionColumns+` FROM positions WHERE id = ?`, positionID,
	))
	if err == sql.ErrNoRows {
		return nil, ErrPosicionNoEncontrada
	}
	if err != nil {
		return nil, err
	}

	history, err := r.getHistory(positionID)
	if err != nil {
		return nil, err
	}
	pos.History = history

	r.refreshDerived(pos)
	return pos, nil
}

// GetPositions devuelve todas las posiciones abiertas (sin historial),
// con los campos derivados recalculados contra la última cotización
func (r *PositionRepository) GetPositions() ([]models.Position, error) {
	rows, err := r.db.Query(
		`SELECT ` + positionColumns + ` FROM positions ORDER BY entry_date DESC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var positions []models.Position
	for rows.Next() {
		pos, err := r.scanPosition(rows)
		if err != nil {
			return nil, err
		}
		r.refreshDerived(pos)
		positions = append(positions, *pos)
	}
	return positions, rows.Err()
}

// GetPositionByToken busca la posición abierta sobre un token, si existe
func (r *PositionRepository) GetPositionByToken(tokenID string) (*models.Position, error) {
	pos, err := r.scanPosition(r.db.QueryRow(
		`SELECT `+positionColumns+` FROM positions WHERE token_id = ? LIMIT 1`, tokenID,
	))
	if err == sql.ErrNoRows {
		return nil, ErrPosicionNoEncontrada
	}
	if err != nil {
		return nil, err
	}
	r.refreshDerived(pos)
	return pos, nil
}

// HasPosition indica si existe una posición abierta sobre el token
func (r *PositionRepository) HasPosition(tokenID string) bool {
	var one int
	err := r.db.QueryRow(`SELECT 1 FROM positions WHERE token_id = ? LIMIT 1`, tokenID).Scan(&one)
	return err == nil
}

// GetSummary calcula el resumen del portafolio para las tarjetas KPI
func (r *PositionRepository) GetSummary() (*models.PortfolioSummary, error) {
	positions, err := r.GetPositions()
	if err != nil {
		return nil, err
	}

	summary := &models.PortfolioSummary{OpenPositions: len(positions)}
	for _, pos := range positions {
		summary.TotalInvestedUsd += pos.InvestmentUsd
		summary.TotalValueUsd += pos.Quantity * pos.CurrentPriceUsd
	}
	summary.UnrealizedPnlUsd = summary.TotalValueUsd - summary.TotalInvestedUsd
	if summary.TotalInvestedUsd > 0 {
		summary.PnlPct = (summary.UnrealizedPnlUsd / summary.TotalInvestedUsd) * 100
	}
	return summary, nil
}

const positionColumns = `id, token_id, token_name, token_symbol, chain,
	investment_usd, entry_price_usd, quantity, exit_strategy_id,
	entry_date, created_at, updated_at`

func (r *PositionRepository) scanPosition(row interface{ Scan(...any) error }) (*models.Position, error) {
	var pos models.Position
	err := row.Scan(
		&pos.ID,
		&pos.TokenID,
		&pos.TokenName,
		&pos.TokenSymbol,
		&pos.Chain,
		&pos.InvestmentUsd,
		&pos.EntryPriceUsd,
		&pos.Quantity,
		&pos.ExitStrategyID,
		&pos.EntryDate,
		&pos.CreatedAt,
		&pos.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &pos, nil
}

func (r *PositionRepository) getHistory(positionID string) ([]models.PositionHistoryItem, error) {
	rows, err := r.db.Query(
		`SELECT id, position_id, date, type, price_usd, quantity, value_usd
		FROM position_history
		WHERE position_id = ?
		ORDER BY date DESC`, positionID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var history []models.PositionHistoryItem
	for rows.Next() {
		var item models.PositionHistoryItem
		err := rows.Scan(
			&item.ID, &item.PositionID, &item.Date, &item.Type,
			&item.PriceUsd, &item.Quantity, &item.ValueUsd,
		)
		if err != nil {
			return nil, err
		}
		history = append(history, item)
	}
	return history, rows.Err()
}

// refreshDerived recalcula los campos derivados con el último precio del
// catálogo; si el token ya no está, la posición queda con precio cero
func (r *PositionRepository) refreshDerived(pos *models.Position) {
	price, err := r.tokens.GetPrice(pos.TokenID)
	if err != nil {
		price = 0
	}
	services.RefreshPnl(pos, price)
}

// insertPosition escribe la posición recién abierta y su primera entrada de
// historial dentro de la transacción dada
func insertPosition(tx *sql.Tx, pos *models.Position) error {
	_, err := tx.Exec(
		`INSERT INTO positions (id, token_id, token_name, token_symbol, chain,
			investment_usd, entry_price_usd, quantity, exit_strategy_id,
			entry_date, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		pos.ID, pos.TokenID, pos.TokenName, pos.TokenSymbol, pos.Chain,
		pos.InvestmentUsd, pos.EntryPriceUsd, pos.Quantity, pos.ExitStrategyID,
		pos.EntryDate, pos.CreatedAt, pos.UpdatedAt,
	)
	if err != nil {
		return err
	}
	return insertHistory(tx, pos.ID, pos.History[0])
}

func insertHistory(tx *sql.Tx, positionID string, item models.PositionHistoryItem) error {
	_, err := tx.Exec(
		`INSERT INTO position_history (id, position_id, date, type, price_usd, quantity, value_usd)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		item.ID, positionID, item.Date, item.Type, item.PriceUsd, item.Quantity, item.ValueUsd,
	)
	return err
}
