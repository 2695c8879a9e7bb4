package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"restaurant_pos_backend/internal/models"
)

// SettingsRepository defines the interface for application setting persistence.
type SettingsRepository interface {
	Upsert(setting *models.ApplicationSetting) error
	GetByKey(key string) (*models.ApplicationSetting, error)
	GetAll() ([]models.ApplicationSetting, error)
}

type settingsRepository struct {
	db *sql.DB
}

// NewSettingsRepository creates a new instance of SettingsRepository.
func NewSettingsRepository(db *sql.DB) SettingsRepository {
	return &settingsRepository{db: db}
}

func (r *settingsRepository) Upsert(setting *models.ApplicationSetting) error {
	query := `INSERT INTO application_settings (setting_key, setting_value, description, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $4)
	          ON CONFLICT (setting_key) DO UPDATE
	          SET setting_value = EXCLUDED.setting_value, description = EXCLUDED.description,
	              updated_at = EXCLUDED.updated_at
	          RETURNING id, created_at`
	setting.UpdatedAt = time.Now()
	err := r.db.QueryRow(query, setting.SettingKey, setting.SettingValue, setting.Description, setting.UpdatedAt).
		Scan(&setting.ID, &setting.CreatedAt)
	if err != nil {
		return fmt.Errorf("%w: upserting setting '%s': %v", ErrDatabaseError, setting.SettingKey, err)
	}
	return nil
}

func (r *settingsRepository) GetByKey(key string) (*models.ApplicationSetting, error) {
	setting := &models.ApplicationSetting{}
	query := `SELECT id, setting_key, setting_value, description, created_at, updated_at
	          FROM application_settings WHERE setting_key = $1`
	err := r.db.QueryRow(query, key).Scan(
		&setting.ID, &setting.SettingKey, &setting.SettingValue, &setting.Description,
		&setting.CreatedAt, &setting.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting setting '%s': %v", ErrDatabaseError, key, err)
	}
	return setting, nil
}

func (r *settingsRepository) GetAll() ([]models.ApplicationSetting, error) {
	settings := []models.ApplicationSetting{}
	query := `SELECT id, setting_key, setting_value, description, created_at, updated_at
	          FROM application_settings ORDER BY setting_key`
	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("%w: querying settings: %v", ErrDatabaseError, err)
	}
	defer rows.Close()
	for rows.Next() {
		var s models.ApplicationSetting
		err := rows.Scan(&s.ID, &s.SettingKey, &s.SettingValue, &s.Description, &s.CreatedAt, &s.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("%w: scanning setting: %v", ErrDatabaseError, err)
		}
		settings = append(settings, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating settings: %v", ErrDatabaseError, err)
	}
	return settings, nil
}
