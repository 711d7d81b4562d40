package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AgusMolinaCode/Radar_Api.git/internal/models"
)

func TestSaveDailySnapshotUpdatesSameDay(t *testing.T) {
	db := newTestDB(t)
	snapshots := NewSnapshotRepository(db)

	require.NoError(t, snapshots.SaveDailySnapshot(models.PortfolioSummary{
		TotalInvestedUsd: 1000,
		TotalValueUsd:    1500,
		UnrealizedPnlUsd: 500,
		PnlPct:           50,
	}))

	// Una segunda muestra el mismo día actualiza el snapshot en lugar de
	// crear otro, y extiende el mínimo observado
	require.NoError(t, snapshots.SaveDailySnapshot(models.PortfolioSummary{
		TotalInvestedUsd: 1000,
		TotalValueUsd:    1200,
		UnrealizedPnlUsd: 200,
		PnlPct:           20,
	}))

	all, err := snapshots.GetSnapshots(7)
	require.NoError(t, err)
	require.Len(t, all, 1)

	assert.InDelta(t, 1200, all[0].TotalValue, 1e-9)
	assert.InDelta(t, 1500, all[0].MaxValue, 1e-9)
	assert.InDelta(t, 1200, all[0].MinValue, 1e-9)
}

func TestSaveDailySnapshotSkipsEmptyPortfolio(t *testing.T) {
	db := newTestDB(t)
	snapshots := NewSnapshotRepository(db)

	// Con el portafolio en cero no se guarda nada
	require.NoError(t, snapshots.SaveDailySnapshot(models.PortfolioSummary{}))

	all, err := snapshots.GetSnapshots(0)
	require.NoError(t, err)
	assert.Empty(t, all)
}
