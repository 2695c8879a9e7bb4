package services

import (
	"encoding/json"
	"errors"
	"fmt"

	"restaurant_pos_backend/internal/models"
	"restaurant_pos_backend/internal/repositories"
)

var ErrUnknownSettingsSection = errors.New("unknown settings section")

// SettingsService assembles and persists the flat configuration object.
// Consumers (billing, order manager) read it at call time, not at startup,
// so a settings edit applies to the next checkout.
type SettingsService interface {
	Get() (models.AppSettings, error)
	UpdateSection(section string, payload json.RawMessage) (models.AppSettings, error)
}

type settingsService struct {
	settingsRepo repositories.SettingsRepository
	tableService TableService
}

// NewSettingsService creates a new instance of SettingsService.
func NewSettingsService(sr repositories.SettingsRepository, ts TableService) SettingsService {
	return &settingsService{settingsRepo: sr, tableService: ts}
}

func (s *settingsService) Get() (models.AppSettings, error) {
	settings := models.DefaultAppSettings()
	sections := map[string]interface{}{
		models.SettingKeyRestaurant: &settings.Restaurant,
		models.SettingKeyOperations: &settings.Operations,
		models.SettingKeyTax:        &settings.Tax,
	}
	for key, target := range sections {
		stored, err := s.settingsRepo.GetByKey(key)
		if err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				continue // unsaved section keeps its default
			}
			return models.AppSettings{}, fmt.Errorf("failed to load settings section '%s': %w", key, err)
		}
		if stored.SettingValue == nil {
			continue
		}
		if err := json.Unmarshal([]byte(*stored.SettingValue), target); err != nil {
			return models.AppSettings{}, fmt.Errorf("failed to decode settings section '%s': %w", key, err)
		}
	}
	return settings, nil
}

// UpdateSection validates and stores one section. A maxTables change resizes
// the table registry immediately, which can fail if it would drop an occupied
// table; in that case nothing is persisted.
func (s *settingsService) UpdateSection(section string, payload json.RawMessage) (models.AppSettings, error) {
	current, err := s.Get()
	if err != nil {
		return models.AppSettings{}, err
	}

	var value interface{}
	switch section {
	case models.SettingKeyRestaurant:
		target := current.Restaurant
		if err := json.Unmarshal(payload, &target); err != nil {
			return models.AppSettings{}, fmt.Errorf("%w: %v", ErrValidation, err)
		}
		value = target
	case models.SettingKeyOperations:
		target := current.Operations
		if err := json.Unmarshal(payload, &target); err != nil {
			return models.AppSettings{}, fmt.Errorf("%w: %v", ErrValidation, err)
		}
		if target.MaxTables < 1 {
			return models.AppSettings{}, fmt.Errorf("%w: max_tables must be at least 1", ErrValidation)
		}
		if target.MaxTables != current.Operations.MaxTables {
			if _, err := s.tableService.Resize(target.MaxTables); err != nil {
				return models.AppSettings{}, err
			}
		}
		value = target
	case models.SettingKeyTax:
		target := current.Tax
		if err := json.Unmarshal(payload, &target); err != nil {
			return models.AppSettings{}, fmt.Errorf("%w: %v", ErrValidation, err)
		}
		if target.GSTRate < 0 || target.GSTRate > 1 {
			return models.AppSettings{}, fmt.Errorf("%w: gst_rate must be between 0 and 1", ErrValidation)
		}
		if target.ServiceChargeRate < 0 || target.ServiceChargeRate > 1 {
			return models.AppSettings{}, fmt.Errorf("%w: service_charge_rate must be between 0 and 1", ErrValidation)
		}
		value = target
	default:
		return models.AppSettings{}, fmt.Errorf("%w: %s", ErrUnknownSettingsSection, section)
	}

	encoded, err := json.Marshal(value)
	if err != nil {
		return models.AppSettings{}, fmt.Errorf("failed to encode settings section '%s': %w", section, err)
	}
	encodedStr := string(encoded)
	setting := models.ApplicationSetting{SettingKey: section, SettingValue: &encodedStr}
	if err := s.settingsRepo.Upsert(&setting); err != nil {
		return models.AppSettings{}, fmt.Errorf("failed to save settings section '%s': %w", section, err)
	}

	return s.Get()
}
