package service

import (
	"context"
	"fmt"
	"time"

	"ummatcal/internal/application/dto"
	"ummatcal/internal/domain/entity"
	"ummatcal/internal/domain/gateway"
	"ummatcal/internal/domain/repository"
	appErrors "ummatcal/internal/pkg/errors"
	"ummatcal/internal/pkg/logger"
)

// dailyWindowDays is the length of the pre-scheduled digest window.
// Deterministic per-day handles let a refresh replace or cancel the
// whole window without tracking returned ids.
const (
	dailyWindowDays   = 35
	dailyHandlePrefix = "daily:"
	dailyTitle        = "Ummat Calendar"
)

type dailyDigestService struct {
	settingsRepo repository.SettingsRepository
	gw           gateway.NotificationGateway
	dates        DateTextProvider
	log          logger.Logger
}

// NewDailyDigestService creates a new instance of the DailyDigestService
// implementation.
func NewDailyDigestService(
	settingsRepo repository.SettingsRepository,
	gw gateway.NotificationGateway,
	dates DateTextProvider,
	log logger.Logger,
) DailyDigestService {
	return &dailyDigestService{
		settingsRepo: settingsRepo,
		gw:           gw,
		dates:        dates,
		log:          log,
	}
}

// Settings returns the current digest configuration.
func (s *dailyDigestService) Settings(ctx context.Context) (entity.DailySettings, error) {
	return s.settingsRepo.DailySettings(ctx)
}

// UpdateSettings persists the configuration and refreshes the window.
func (s *dailyDigestService) UpdateSettings(ctx context.Context, req dto.DailySettingsRequest) (entity.DailySettings, error) {
	settings := entity.DailySettings{Enabled: req.Enabled, Hour: req.Hour, Minute: req.Minute}
	if !settings.Valid() {
		return entity.DailySettings{}, fmt.Errorf("%w: invalid digest time %02d:%02d", appErrors.ErrValidation, req.Hour, req.Minute)
	}

	if err := s.settingsRepo.SaveDailySettings(ctx, settings); err != nil {
		return entity.DailySettings{}, err
	}
	if err := s.Refresh(ctx); err != nil {
		return entity.DailySettings{}, err
	}
	return settings, nil
}

// Refresh rebuilds the digest window: when enabled, one trigger per
// upcoming day at the configured time; when disabled, the deterministic
// handles of the whole window are cancelled. Per-day scheduling
// failures are logged and do not abort the loop.
func (s *dailyDigestService) Refresh(ctx context.Context) error {
	settings, err := s.settingsRepo.DailySettings(ctx)
	if err != nil {
		return err
	}

	now := time.Now()
	scheduled := 0

	for i := 0; i < dailyWindowDays; i++ {
		day := now.AddDate(0, 0, i)
		at := time.Date(day.Year(), day.Month(), day.Day(), settings.Hour, settings.Minute, 0, 0, day.Location())
		handle := dailyHandlePrefix + at.Format("2006-01-02")

		if !settings.Enabled || !at.After(now) {
			if err := s.gw.Cancel(ctx, handle); err != nil {
				s.log.Warn(fmt.Sprintf("Failed to cancel digest trigger %s: %v", handle, err))
			}
			continue
		}

		_, err := s.gw.Schedule(ctx, gateway.Request{
			Title:     dailyTitle,
			Body:      s.dates.DateText(at),
			TriggerAt: at,
			Payload:   gateway.Payload{ReminderID: handle, Alert: "daily"},
			Handle:    handle,
		})
		if err != nil {
			s.log.Error(fmt.Sprintf("Failed to schedule digest trigger %s, continuing", handle), err)
			continue
		}
		scheduled++
	}

	s.log.Info(fmt.Sprintf("Daily digest refresh complete, %d triggers scheduled (enabled=%t)", scheduled, settings.Enabled))
	return nil
}
