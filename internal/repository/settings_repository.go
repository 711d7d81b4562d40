package repository

import (
	"database/sql"
	"encoding/json"
	"time"

	"github.com/AgusMolinaCode/Radar_Api.git/internal/models"
)

// Claves del almacén clave/valor de configuración
const (
	settingsKey = "app_settings"
	profileKey  = "user_profile"
)

// SettingsRepository persiste los snapshots de configuración y perfil como
// JSON en una tabla clave/valor. El estado en memoria solo se escribe acá
// cuando el usuario guarda explícitamente.
type SettingsRepository struct {
	db *sql.DB
}

func NewSettingsRepository(db *sql.DB) *SettingsRepository {
	return &SettingsRepository{db: db}
}

func (r *SettingsRepository) loadValue(key string, target any) (bool, error) {
	var raw string
	err := r.db.QueryRow(`SELECT value FROM app_settings WHERE key = ?`, key).Scan(&raw)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal([]byte(raw), target); err != nil {
		return false, err
	}
	return true, nil
}

func (r *SettingsRepository) saveValue(key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}

	_, err = r.db.Exec(
		`INSERT INTO app_settings (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, string(raw), time.Now(),
	)
	return err
}

// LoadSettings devuelve el último snapshot guardado, o la configuración
// por defecto si nunca se guardó
func (r *SettingsRepository) LoadSettings() (models.AppSettings, error) {
	settings := models.DefaultSettings()
	if _, err := r.loadValue(settingsKey, &settings); err != nil {
		return models.DefaultSettings(), err
	}
	return settings, nil
}

// SaveSettings guarda el snapshot completo de configuración
func (r *SettingsRepository) SaveSettings(settings models.AppSettings) error {
	return r.saveValue(settingsKey, settings)
}

// LoadProfile devuelve el perfil guardado, o el perfil por defecto
func (r *SettingsRepository) LoadProfile() (models.UserProfile, error) {
	profile := models.DefaultProfile()
	if _, err := r.loadValue(profileKey, &profile); err != nil {
		return models.DefaultProfile(), err
	}
	return profile, nil
}

// SaveProfile guarda el perfil del usuario
func (r *SettingsRepository) SaveProfile(profile models.UserProfile) error {
	profile.UpdatedAt = time.Now()
	return r.saveValue(profileKey, profile)
}
