package middleware

import (
	"github.com/AgusMolinaCode/Radar_Api.git/internal/database"
	"github.com/AgusMolinaCode/Radar_Api.git/internal/repository"
	"github.com/AgusMolinaCode/Radar_Api.git/internal/services"
)

// Repositorios compartidos por los handlers
var (
	tokenRepo     *repository.TokenRepository
	positionRepo  *repository.PositionRepository
	watchlistRepo *repository.WatchlistRepository
	alertRepo     *repository.AlertRepository
	settingsRepo  *repository.SettingsRepository
	snapshotRepo  *repository.SnapshotRepository

	priceUpdater *services.PriceUpdater
)

// InitRadar inicializa los repositorios con la conexión a la base de datos
func InitRadar() {
	tokenRepo = repository.NewTokenRepository(database.DB)
	positionRepo = repository.NewPositionRepository(database.DB, tokenRepo)
	watchlistRepo = repository.NewWatchlistRepository(database.DB, tokenRepo, positionRepo)
	alertRepo = repository.NewAlertRepository(database.DB, tokenRepo)
	settingsRepo = repository.NewSettingsRepository(database.DB)
	snapshotRepo = repository.NewSnapshotRepository(database.DB)
}

// SetPriceUpdater hace disponible el actualizador de precios para los handlers
func SetPriceUpdater(updater *services.PriceUpdater) {
	priceUpdater = updater
}
