package database

import (
	"database/sql"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
)

var DB *sql.DB

func InitDB() error {
	// Crear el directorio database si no existe
	if err := os.MkdirAll("database", 0755); err != nil {
		return err
	}

	var err error
	DB, err = sql.Open("sqlite3", filepath.Join("database", "radar.db"))
	if err != nil {
		return err
	}

	return CreateTables(DB)
}

// CreateTables crea el esquema completo sobre la conexión dada.
// Se expone para poder inicializar bases en memoria en los tests.
func CreateTables(db *sql.DB) error {
	// Catálogo de tokens detectados por el radar, con su última cotización
	createTokensTableSQL := `
	CREATE TABLE IF NOT EXISTS tokens (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		symbol TEXT NOT NULL,
		address TEXT,
		chain TEXT,
		score INTEGER DEFAULT 0,
		status TEXT,
		price_usd REAL DEFAULT 0,
		change_24h_pct REAL DEFAULT 0,
		liquidity_usd REAL DEFAULT 0,
		volume_24h_usd REAL DEFAULT 0,
		holders INTEGER DEFAULT 0,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);`

	if _, err := db.Exec(createTokensTableSQL); err != nil {
		return err
	}

	// Posiciones simuladas abiertas
	createPositionsTableSQL := `
	CREATE TABLE IF NOT EXISTS positions (
		id TEXT PRIMARY KEY,
		token_id TEXT NOT NULL,
		token_name TEXT NOT NULL,
		token_symbol TEXT NOT NULL,
		chain TEXT,
		investment_usd REAL NOT NULL,
		entry_price_usd REAL NOT NULL,
		quantity REAL NOT NULL,
		exit_strategy_id TEXT NOT NULL DEFAULT 'standard',
		entry_date DATETIME NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);`

	if _, err := db.Exec(createPositionsTableSQL); err != nil {
		return err
	}

	// Historial inmutable de transacciones por posición
	createHistoryTableSQL := `
	CREATE TABLE IF NOT EXISTS position_history (
		id TEXT PRIMARY KEY,
		position_id TEXT NOT NULL,
		date DATETIME NOT NULL,
		type TEXT NOT NULL,
		price_usd REAL NOT NULL,
		quantity REAL NOT NULL,
		value_usd REAL NOT NULL,
		FOREIGN KEY(position_id) REFERENCES positions(id) ON DELETE CASCADE
	);`

	if _, err := db.Exec(createHistoryTableSQL); err != nil {
		return err
	}

	// Conjunto explícito de tokens en seguimiento (watchlist)
	createWatchlistTableSQL := `
	CREATE TABLE IF NOT EXISTS watchlist (
		token_id TEXT PRIMARY KEY,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);`

	if _, err := db.Exec(createWatchlistTableSQL); err != nil {
		return err
	}

	// Reglas de alerta; se permiten duplicados por diseño
	createAlertRulesTableSQL := `
	CREATE TABLE IF NOT EXISTS alert_rules (
		id TEXT PRIMARY KEY,
		token_id TEXT NOT NULL,
		token_name TEXT NOT NULL,
		token_symbol TEXT NOT NULL,
		token_address TEXT,
		chain TEXT,
		type TEXT NOT NULL,
		operator TEXT NOT NULL,
		threshold REAL NOT NULL,
		frequency TEXT NOT NULL,
		is_enabled INTEGER DEFAULT 1,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);`

	if _, err := db.Exec(createAlertRulesTableSQL); err != nil {
		return err
	}

	// Almacén clave/valor para los snapshots de configuración y perfil
	createAppSettingsTableSQL := `
	CREATE TABLE IF NOT EXISTS app_settings (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);`

	if _, err := db.Exec(createAppSettingsTableSQL); err != nil {
		return err
	}

	// Historial diario del valor del portafolio
	createSnapshotsTableSQL := `
	CREATE TABLE IF NOT EXISTS investment_snapshots (
		id TEXT PRIMARY KEY,
		date DATETIME NOT NULL,
		total_value REAL NOT NULL,
		total_invested REAL NOT NULL,
		profit REAL NOT NULL,
		profit_percentage REAL NOT NULL,
		max_value REAL DEFAULT 0,
		min_value REAL DEFAULT 0,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);`

	if _, err := db.Exec(createSnapshotsTableSQL); err != nil {
		return err
	}

	// Índices para las consultas más frecuentes
	createIndexesSQL := `
	CREATE INDEX IF NOT EXISTS idx_position_history_position_date
	ON position_history(position_id, date);
	CREATE INDEX IF NOT EXISTS idx_positions_token ON positions(token_id);
	CREATE INDEX IF NOT EXISTS idx_investment_snapshots_date
	ON investment_snapshots(date);`

	if _, err := db.Exec(createIndexesSQL); err != nil {
		return err
	}

	// Ejecutar migraciones para actualizar el esquema
	return RunMigrations(db)
}
