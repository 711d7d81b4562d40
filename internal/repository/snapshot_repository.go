package repository

import (
	"database/sql"
	"log"
	"time"

	"github.com/AgusMolinaCode/Radar_Api.git/internal/models"
)

// SnapshotRepository guarda el historial diario del valor del portafolio
type SnapshotRepository struct {
	db *sql.DB
}

func NewSnapshotRepository(db *sql.DB) *SnapshotRepository {
	return &SnapshotRepository{db: db}
}

// SaveDailySnapshot registra el valor actual del portafolio en el snapshot
// del día, actualizando el máximo y mínimo observados dentro del día.
// Con valores en cero (portafolio vacío) no se guarda nada.
func (r *SnapshotRepository) SaveDailySnapshot(summary models.PortfolioSummary) error {
	if summary.TotalValueUsd <= 0 || summary.TotalInvestedUsd <= 0 {
		log.Printf("No se guardó el snapshot porque los valores no son válidos: totalValue=%f, totalInvested=%f",
			summary.TotalValueUsd, summary.TotalInvestedUsd)
		return nil
	}

	// Truncar al inicio del día para agrupar las muestras del mismo día
	now := time.Now()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	nextDay := dayStart.AddDate(0, 0, 1)

	var existingID string
	var maxValue, minValue float64
	err := r.db.QueryRow(
		`SELECT id, max_value, min_value
		FROM investment_snapshots
		WHERE date >= ? AND date < ?
		LIMIT 1`, dayStart, nextDay,
	).Scan(&existingID, &maxValue, &minValue)

	if err == sql.ErrNoRows {
		_, err = r.db.Exec(
			`INSERT INTO investment_snapshots (id, date, total_value,
				total_invested, profit, profit_percentage, max_value, min_value, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			models.GenerateUUID(), dayStart, summary.TotalValueUsd,
			summary.TotalInvestedUsd, summary.UnrealizedPnlUsd, summary.PnlPct,
			summary.TotalValueUsd, summary.TotalValueUsd, now,
		)
		return err
	}
	if err != nil {
		return err
	}

	if summary.TotalValueUsd > maxValue {
		maxValue = summary.TotalValueUsd
	}
	if summary.TotalValueUsd < minValue {
		minValue = summary.TotalValueUsd
	}

	_, err = r.db.Exec(
		`UPDATE investment_snapshots
		SET total_value = ?, total_invested = ?, profit = ?,
			profit_percentage = ?, max_value = ?, min_value = ?
		WHERE id = ?`,
		summary.TotalValueUsd, summary.TotalInvestedUsd,
		summary.UnrealizedPnlUsd, summary.PnlPct, maxValue, minValue, existingID,
	)
	return err
}

// GetSnapshots devuelve los snapshots de los últimos días indicados,
// del más antiguo al más reciente para graficar
func (r *SnapshotRepository) GetSnapshots(days int) ([]models.InvestmentSnapshot, error) {
	if days <= 0 {
		days = 30
	}
	since := time.Now().AddDate(0, 0, -days)

	rows, err := r.db.Query(
		`SELECT id, date, total_value, total_invested, profit,
			profit_percentage, max_value, min_value, created_at
		FROM investment_snapshots
		WHERE date >= ?
		ORDER BY date ASC`, since,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var snapshots []models.InvestmentSnapshot
	for rows.Next() {
		var s models.InvestmentSnapshot
		err := rows.Scan(
			&s.ID, &s.Date, &s.TotalValue, &s.TotalInvested, &s.Profit,
			&s.ProfitPercentage, &s.MaxValue, &s.MinValue, &s.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		snapshots = append(snapshots, s)
	}
	return snapshots, rows.Err()
}
