package repository

import (
	"context"

	"ummatcal/internal/domain/entity"
)

// SettingsRepository persists the daily digest configuration.
type SettingsRepository interface {
	// DailySettings returns the stored configuration, or the defaults
	// when nothing has been saved yet.
	DailySettings(ctx context.Context) (entity.DailySettings, error)
	// SaveDailySettings persists the configuration.
	SaveDailySettings(ctx context.Context, settings entity.DailySettings) error
}
