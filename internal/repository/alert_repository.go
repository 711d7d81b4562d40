package repository

import (
	"database/sql"
	"errors"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/AgusMolinaCode/Radar_Api.git/internal/models"
)

var (
	ErrAlertaNoEncontrada = errors.New("regla de alerta no encontrada")
	ErrUmbralInvalido     = errors.New("el umbral debe ser un número válido")
)

// AlertRepository maneja las reglas de alerta. Solo las almacena: la
// evaluación contra datos en vivo no ocurre en este servicio. Se permiten
// reglas duplicadas para el mismo token y métrica.
type AlertRepository struct {
	db     *sql.DB
	tokens *TokenRepository
}

func NewAlertRepository(db *sql.DB, tokens *TokenRepository) *AlertRepository {
	return &AlertRepository{db: db, tokens: tokens}
}

// parseThreshold valida que el umbral del formulario sea un número finito
func parseThreshold(raw string) (float64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, ErrUmbralInvalido
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, ErrUmbralInvalido
	}
	return value, nil
}

// CreateAlert crea una nueva regla de alerta con los datos del token
// copiados al momento de la creación
func (r *AlertRepository) CreateAlert(input models.AlertRuleInput) (*models.AlertRule, error) {
	threshold, err := parseThreshold(input.Threshold)
	if err != nil {
		return nil, err
	}

	token, err := r.tokens.GetToken(input.TokenID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	rule := &models.AlertRule{
		ID:           models.GenerateUUID(),
		TokenID:      token.ID,
		TokenName:    token.Name,
		TokenSymbol:  token.Symbol,
		TokenAddress: token.Address,
		Chain:        token.Chain,
		Type:         input.Type,
		Operator:     input.Operator,
		Threshold:    threshold,
		Frequency:    input.Frequency,
		IsEnabled:    true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if rule.Type == "" {
		rule.Type = models.AlertTypePriceAction
	}
	if rule.Operator == "" {
		rule.Operator = models.OperatorGreater
	}
	if rule.Frequency == "" {
		rule.Frequency = models.AlertFreqRealTime
	}

	_, err = r.db.Exec(
		`INSERT INTO alert_rules (id, token_id, token_name, token_symbol,
			token_address, chain, type, operator, threshold, frequency,
			is_enabled, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rule.ID, rule.TokenID, rule.TokenName, rule.TokenSymbol,
		rule.TokenAddress, rule.Chain, rule.Type, rule.Operator,
		rule.Threshold, rule.Frequency, rule.IsEnabled, rule.CreatedAt, rule.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return rule, nil
}

// UpdateAlert actualiza una regla existente con nuevos datos del formulario
func (r *AlertRepository) UpdateAlert(id string, input models.AlertRuleInput) (*models.AlertRule, error) {
	existing, err := r.GetAlert(id)
	if err != nil {
		return nil, err
	}

	threshold, err := parseThreshold(input.Threshold)
	if err != nil {
		return nil, err
	}

	token, err := r.tokens.GetToken(input.TokenID)
	if err != nil {
		return nil, err
	}

	updated := *existing
	updated.TokenID = token.ID
	updated.TokenName = token.Name
	updated.TokenSymbol = token.Symbol
	updated.TokenAddress = token.Address
	updated.Chain = token.Chain
	updated.Threshold = threshold
	updated.UpdatedAt = time.Now()
	if input.Type != "" {
		updated.Type = input.Type
	}
	if input.Operator != "" {
		updated.Operator = input.Operator
	}
	if input.Frequency != "" {
		updated.Frequency = input.Frequency
	}

	_, err = r.db.Exec(
		`UPDATE alert_rules
		SET token_id = ?, token_name = ?, token_symbol = ?, token_address = ?,
			chain = ?, type = ?, operator = ?, threshold = ?, frequency = ?,
			updated_at = ?
		WHERE id = ?`,
		updated.TokenID, updated.TokenName, updated.TokenSymbol,
		updated.TokenAddress, updated.Chain, updated.Type, updated.Operator,
		updated.Threshold, updated.Frequency, updated.UpdatedAt, id,
	)
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// ToggleAlert activa o pausa una regla
func (r *AlertRepository) ToggleAlert(id string) (*models.AlertRule, error) {
	result, err := r.db.Exec(
		`UPDATE alert_rules SET is_enabled = NOT is_enabled, updated_at = ? WHERE id = ?`,
		time.Now(), id,
	)
	if err != nil {
		return nil, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, ErrAlertaNoEncontrada
	}
	return r.GetAlert(id)
}

// DeleteAlert elimina una regla
func (r *AlertRepository) DeleteAlert(id string) error {
	result, err := r.db.Exec(`DELETE FROM alert_rules WHERE id = ?`, id)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrAlertaNoEncontrada
	}
	return nil
}

const alertColumns = `id, token_id, token_name, token_symbol, token_address,
	chain, type, operator, threshold, frequency, is_enabled, created_at, updated_at`

// GetAlert obtiene una regla por su ID
func (r *AlertRepository) GetAlert(id string) (*models.AlertRule, error) {
	rule, err := scanAlert(r.db.QueryRow(
		`SELECT `+alertColumns+` FROM alert_rules WHERE id = ?`, id,
	))
	if err == sql.ErrNoRows {
		return nil, ErrAlertaNoEncontrada
	}
	if err != nil {
		return nil, err
	}
	return rule, nil
}

// GetAlerts devuelve todas las reglas, las más recientes primero
func (r *AlertRepository) GetAlerts() ([]models.AlertRule, error) {
	rows, err := r.db.Query(
		`SELECT ` + alertColumns + ` FROM alert_rules ORDER BY created_at DESC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rules []models.AlertRule
	for rows.Next() {
		rule, err := scanAlert(rows)
		if err != nil {
			return nil, err
		}
		rules = append(rules, *rule)
	}
	return rules, rows.Err()
}

func scanAlert(row interface{ Scan(...any) error }) (*models.AlertRule, error) {
	var rule models.AlertRule
	err := row.Scan(
		&rule.ID,
		&rule.TokenID,
		&rule.TokenName,
		&rule.TokenSymbol,
		&rule.TokenAddress,
		&rule.Chain,
		&rule.Type,
		&rule.Operator,
		&rule.Threshold,
		&rule.Frequency,
		&rule.IsEnabled,
		&rule.CreatedAt,
		&rule.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &rule, nil
}
