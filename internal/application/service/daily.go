package service

import (
	"context"
	"time"

	"ummatcal/internal/application/dto"
	"ummatcal/internal/domain/entity"
)

// DailyDigestService schedules the daily date notification: one push
// per day at the configured time, covering a rolling window of upcoming
// days.
type DailyDigestService interface {
	// Settings returns the current digest configuration.
	Settings(ctx context.Context) (entity.DailySettings, error)
	// UpdateSettings persists a new configuration and refreshes the
	// scheduled window accordingly.
	UpdateSettings(ctx context.Context, req dto.DailySettingsRequest) (entity.DailySettings, error)
	// Refresh rebuilds the scheduled window from the stored settings.
	// Run at startup and after every settings change.
	Refresh(ctx context.Context) error
}

// DateTextProvider renders the digest body for a given day. The Hijri
// calendar lookup lives behind this boundary.
type DateTextProvider interface {
	DateText(day time.Time) string
}

// DateTextFunc adapts a plain function to DateTextProvider.
type DateTextFunc func(day time.Time) string

// DateText implements DateTextProvider.
func (f DateTextFunc) DateText(day time.Time) string { return f(day) }
