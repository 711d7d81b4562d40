package services

import (
	"log"
	"strings"
	"sync"
	"time"

	"github.com/AgusMolinaCode/Radar_Api.git/internal/models"
)

// Interfaces mínimas sobre los repositorios que necesita el actualizador
type TokenCatalogInterface interface {
	GetTokens() ([]models.Token, error)
	UpsertToken(models.Token) error
	UpdateQuotes(map[string]models.TokenQuote) error
}

type PortfolioSummaryInterface interface {
	GetSummary() (*models.PortfolioSummary, error)
}

type SnapshotStoreInterface interface {
	SaveDailySnapshot(models.PortfolioSummary) error
}

// PriceUpdater es un servicio que refresca las cotizaciones del catálogo
// periódicamente y registra el snapshot diario del portafolio
type PriceUpdater struct {
	interval  time.Duration
	catalog   TokenCatalogInterface
	portfolio PortfolioSummaryInterface
	snapshots SnapshotStoreInterface

	isRunning   bool
	stopChan    chan struct{}
	mutex       sync.Mutex
	lastUpdated time.Time
}

// NewPriceUpdater crea un nuevo servicio de actualización de precios
func NewPriceUpdater(interval time.Duration, catalog TokenCatalogInterface, portfolio PortfolioSummaryInterface, snapshots SnapshotStoreInterface) *PriceUpdater {
	return &PriceUpdater{
		interval:  interval,
		catalog:   catalog,
		portfolio: portfolio,
		snapshots: snapshots,
		stopChan:  make(chan struct{}),
	}
}

// Start inicia el ciclo de actualización en segundo plano
func (p *PriceUpdater) Start() {
	p.mutex.Lock()
	if p.isRunning {
		p.mutex.Unlock()
		return
	}
	p.isRunning = true
	p.mutex.Unlock()

	go func() {
		// Primera actualización inmediata para no servir un catálogo vacío
		p.RefreshNow()

		ticker := time.NewTicker(p.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				p.RefreshNow()
			case <-p.stopChan:
				return
			}
		}
	}()
}

// Stop detiene el ciclo de actualización
func (p *PriceUpdater) Stop() {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	if !p.isRunning {
		return
	}
	p.isRunning = false
	close(p.stopChan)
}

// LastUpdated devuelve el momento de la última actualización exitosa
func (p *PriceUpdater) LastUpdated() time.Time {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	return p.lastUpdated
}

// RefreshNow ejecuta una pasada de actualización: trae el feed, actualiza el
// catálogo y guarda el snapshot diario. Si el feed no responde, el catálogo
// conserva las últimas cotizaciones conocidas.
func (p *PriceUpdater) RefreshNow() {
	feed, err := FetchTokenFeed()
	if err != nil {
		log.Printf("No se pudo actualizar el feed de tokens: %v", err)
		return
	}

	existing, err := p.catalog.GetTokens()
	if err != nil {
		log.Printf("Error leyendo el catálogo de tokens: %v", err)
		return
	}

	known := make(map[string]bool, len(existing))
	for _, t := range existing {
		known[strings.ToUpper(t.Symbol)] = true
	}

	now := time.Now()
	quotes := make(map[string]models.TokenQuote)
	for _, ft := range feed {
		symbol := strings.ToUpper(ft.Symbol)
		if known[symbol] {
			quotes[symbol] = models.TokenQuote{
				PriceUsd:     ft.PriceUsd,
				Change24hPct: ft.Change24hPct,
				LastUpdated:  now,
			}
			continue
		}

		// Token nuevo detectado por el feed: entra al catálogo como tendencia
		token := models.Token{
			ID:           strings.ToLower(ft.Chain + "-" + ft.Symbol),
			Name:         ft.Name,
			Symbol:       ft.Symbol,
			Chain:        ft.Chain,
			Score:        50,
			Status:       models.TokenStatusTrending,
			PriceUsd:     ft.PriceUsd,
			Change24hPct: ft.Change24hPct,
			UpdatedAt:    now,
		}
		if err := p.catalog.UpsertToken(token); err != nil {
			log.Printf("Error registrando el token %s: %v", ft.Symbol, err)
		}
	}

	if len(quotes) > 0 {
		if err := p.catalog.UpdateQuotes(quotes); err != nil {
			log.Printf("Error actualizando cotizaciones: %v", err)
			return
		}
	}

	summary, err := p.portfolio.GetSummary()
	if err != nil {
		log.Printf("Error calculando el resumen del portafolio: %v", err)
	} else if err := p.snapshots.SaveDailySnapshot(*summary); err != nil {
		log.Printf("Error guardando el snapshot diario: %v", err)
	}

	p.mutex.Lock()
	p.lastUpdated = now
	p.mutex.Unlock()
}
