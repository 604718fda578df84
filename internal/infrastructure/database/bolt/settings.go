package bolt

import (
	"context"
	"encoding/json"
	"fmt"

	"go.etcd.io/bbolt"

	"ummatcal/internal/domain/entity"
	"ummatcal/internal/domain/repository"
	appErrors "ummatcal/internal/pkg/errors"
)

var dailySettingsKey = []byte("daily_notification_settings")

type storedDailySettings struct {
	Enabled bool `json:"isEnabled"`
	Hour    int  `json:"hour"`
	Minute  int  `json:"minute"`
}

type settingsRepository struct {
	store *Store
}

// NewSettingsRepository creates the bbolt-backed SettingsRepository.
func NewSettingsRepository(store *Store) repository.SettingsRepository {
	return &settingsRepository{store: store}
}

// DailySettings returns the stored digest configuration, or defaults
// when nothing has been saved yet.
func (r *settingsRepository) DailySettings(ctx context.Context) (entity.DailySettings, error) {
	settings := entity.DefaultDailySettings()
	err := r.store.db.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket(settingsBucket).Get(dailySettingsKey)
		if data == nil {
			return nil
		}
		var rec storedDailySettings
		if err := json.Unmarshal(data, &rec); err != nil {
			return fmt.Errorf("corrupt daily settings: %w", err)
		}
		settings = entity.DailySettings{Enabled: rec.Enabled, Hour: rec.Hour, Minute: rec.Minute}
		return nil
	})
	if err != nil {
		return entity.DailySettings{}, fmt.Errorf("%w: %v", appErrors.ErrStorage, err)
	}
	return settings, nil
}

// SaveDailySettings persists the digest configuration.
func (r *settingsRepository) SaveDailySettings(ctx context.Context, settings entity.DailySettings) error {
	rec := storedDailySettings{Enabled: settings.Enabled, Hour: settings.Hour, Minute: settings.Minute}
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("%w: %v", appErrors.ErrStorage, err)
	}
	err = r.store.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(settingsBucket).Put(dailySettingsKey, data)
	})
	if err != nil {
		return fmt.Errorf("%w: failed to save daily settings: %v", appErrors.ErrStorage, err)
	}
	return nil
}
