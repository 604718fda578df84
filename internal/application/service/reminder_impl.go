package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"ummatcal/internal/application/dto"
	"ummatcal/internal/domain/entity"
	"ummatcal/internal/domain/gateway"
	"ummatcal/internal/domain/repository"
	appErrors "ummatcal/internal/pkg/errors"
	"ummatcal/internal/pkg/logger"
)

type reminderService struct {
	repo repository.ReminderRepository
	gw   gateway.NotificationGateway
	log  logger.Logger

	// mu serializes every operation's read-modify-write of the shared
	// reminder list; ready gates user-initiated operations behind the
	// startup reconciliation.
	mu        sync.Mutex
	ready     chan struct{}
	readyOnce sync.Once

	lastID int64
}

// NewReminderService creates a new instance of the ReminderService
// implementation.
func NewReminderService(
	repo repository.ReminderRepository,
	gw gateway.NotificationGateway,
	log logger.Logger,
) ReminderService {
	return &reminderService{
		repo:  repo,
		gw:    gw,
		log:   log,
		ready: make(chan struct{}),
	}
}

// Initialize runs startup reconciliation, then opens the gate even if
// reconciliation failed so a broken store cannot deadlock the API; the
// error is returned for the caller to report.
func (s *reminderService) Initialize(ctx context.Context) error {
	err := s.ReconcileAll(ctx)
	s.readyOnce.Do(func() { close(s.ready) })
	return err
}

func (s *reminderService) awaitReady(ctx context.Context) error {
	select {
	case <-s.ready:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// nextID assigns a timestamp-derived id, bumped when two creations land
// in the same millisecond. Caller holds s.mu.
func (s *reminderService) nextID() string {
	id := time.Now().UnixMilli()
	if id <= s.lastID {
		id = s.lastID + 1
	}
	s.lastID = id
	return strconv.FormatInt(id, 10)
}

// fromInput validates the request and builds a normalized reminder
// without an id or scheduled handles.
func (s *reminderService) fromInput(input dto.ReminderInput) (entity.Reminder, error) {
	if strings.TrimSpace(input.Title) == "" {
		return entity.Reminder{}, fmt.Errorf("%w: title is required", appErrors.ErrValidation)
	}
	if input.Date.IsZero() {
		return entity.Reminder{}, fmt.Errorf("%w: date is required", appErrors.ErrValidation)
	}
	if input.SnoozeMinutes < 0 {
		return entity.Reminder{}, fmt.Errorf("%w: snoozeMinutes must not be negative", appErrors.ErrValidation)
	}
	if input.SoundID != "" {
		if _, ok := entity.SoundByID(input.SoundID); !ok {
			return entity.Reminder{}, fmt.Errorf("%w: unknown sound %q", appErrors.ErrValidation, input.SoundID)
		}
	}

	alerts := make([]entity.Alert, 0, len(input.Alerts))
	for _, tag := range input.Alerts {
		alert, err := entity.ParseAlert(tag)
		if err != nil {
			return entity.Reminder{}, fmt.Errorf("%w: %v", appErrors.ErrValidation, err)
		}
		alerts = append(alerts, alert)
	}

	r := entity.Reminder{
		Title:         strings.TrimSpace(input.Title),
		Description:   strings.TrimSpace(input.Description),
		Date:          input.Date,
		SnoozeMinutes: input.SnoozeMinutes,
		SoundID:       input.SoundID,
		Alerts:        alerts,
	}
	r.Normalize()
	return r, nil
}

// triggerBody composes the notification body for one alert. Lead alerts
// name their offset so the user knows the event has not started yet.
func triggerBody(r entity.Reminder, alert entity.Alert) string {
	if alert.Kind == entity.AlertAtTime {
		return r.Description
	}
	if r.Description == "" {
		return alert.Label()
	}
	return alert.Label() + "\n" + r.Description
}

// scheduleTriggers schedules one trigger per alert whose instant is
// still in the future. Alerts already elapsed are silently skipped:
// they remain listed on the reminder but get no handle. In strict mode
// a scheduling failure cancels the handles already obtained and aborts;
// otherwise it is logged and the remaining alerts proceed.
func (s *reminderService) scheduleTriggers(ctx context.Context, r entity.Reminder, strict bool) ([]string, error) {
	now := time.Now()
	handles := make([]string, 0, len(r.Alerts))

	for _, alert := range r.Alerts {
		triggerAt := r.Date.Add(-alert.Offset())
		if !triggerAt.After(now) {
			s.log.Debug(fmt.Sprintf("Skipping elapsed alert %s of reminder %s", alert, r.ID))
			continue
		}

		handle, err := s.gw.Schedule(ctx, gateway.Request{
			Title:      r.Title,
			Body:       triggerBody(r, alert),
			TriggerAt:  triggerAt,
			Payload:    gateway.Payload{ReminderID: r.ID, Alert: alert.String()},
			ChannelID:  gateway.ChannelForSound(r.SoundID),
			CategoryID: gateway.CategoryAlarmActions,
		})
		if err != nil {
			if !strict {
				s.log.Error(fmt.Sprintf("Failed to schedule alert %s of reminder %s, continuing", alert, r.ID), err)
				continue
			}
			for _, h := range handles {
				if cancelErr := s.gw.Cancel(ctx, h); cancelErr != nil {
					s.log.Error(fmt.Sprintf("Failed to cancel trigger %s while aborting", h), cancelErr)
				}
			}
			return nil, err
		}
		handles = append(handles, handle)
	}
	return handles, nil
}

// cancelTriggers best-effort cancels every handle; individual failures
// are logged and do not abort.
func (s *reminderService) cancelTriggers(ctx context.Context, r entity.Reminder) {
	for _, handle := range r.NotificationIDs {
		if err := s.gw.Cancel(ctx, handle); err != nil {
			s.log.Error(fmt.Sprintf("Failed to cancel trigger %s of reminder %s", handle, r.ID), err)
		}
	}
}

func (s *reminderService) findByID(reminders []entity.Reminder, id string) (entity.Reminder, bool) {
	for _, r := range reminders {
		if r.ID == id {
			return r, true
		}
	}
	return entity.Reminder{}, false
}

// GetReminders returns all reminders, upcoming first by date, expired
// ones after.
func (s *reminderService) GetReminders(ctx context.Context) ([]entity.Reminder, error) {
	if err := s.awaitReady(ctx); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	reminders, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	entity.SortReminders(reminders, time.Now())
	return reminders, nil
}

// AddReminder creates and schedules a new reminder.
func (s *reminderService) AddReminder(ctx context.Context, input dto.ReminderInput) (entity.Reminder, error) {
	if err := s.awaitReady(ctx); err != nil {
		return entity.Reminder{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	r, err := s.fromInput(input)
	if err != nil {
		return entity.Reminder{}, err
	}

	granted, err := s.gw.EnsurePermission(ctx)
	if err != nil {
		return entity.Reminder{}, fmt.Errorf("%w: %v", appErrors.ErrPermissionDenied, err)
	}
	if !granted {
		return entity.Reminder{}, appErrors.ErrPermissionDenied
	}

	r.ID = s.nextID()

	handles, err := s.scheduleTriggers(ctx, r, true)
	if err != nil {
		return entity.Reminder{}, err
	}
	r.NotificationIDs = handles

	if err := s.repo.Upsert(ctx, r); err != nil {
		s.log.Error(fmt.Sprintf("Failed to persist reminder %s", r.ID), err)
		return entity.Reminder{}, err
	}

	s.log.Info(fmt.Sprintf("Created reminder %s (%q) with %d scheduled triggers", r.ID, r.Title, len(handles)))
	return r, nil
}

// UpdateReminder replaces a reminder's fields and its scheduled
// triggers. Old handles are always cancelled before new ones are
// scheduled, so no trigger referencing stale field values survives.
func (s *reminderService) UpdateReminder(ctx context.Context, id string, input dto.ReminderInput) (entity.Reminder, error) {
	if err := s.awaitReady(ctx); err != nil {
		return entity.Reminder{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.updateLocked(ctx, id, input)
}

func (s *reminderService) updateLocked(ctx context.Context, id string, input dto.ReminderInput) (entity.Reminder, error) {
	reminders, err := s.repo.List(ctx)
	if err != nil {
		return entity.Reminder{}, err
	}
	existing, found := s.findByID(reminders, id)
	if !found {
		return entity.Reminder{}, fmt.Errorf("%w: %s", appErrors.ErrReminderNotFound, id)
	}

	r, err := s.fromInput(input)
	if err != nil {
		return entity.Reminder{}, err
	}

	granted, err := s.gw.EnsurePermission(ctx)
	if err != nil {
		return entity.Reminder{}, fmt.Errorf("%w: %v", appErrors.ErrPermissionDenied, err)
	}
	if !granted {
		return entity.Reminder{}, appErrors.ErrPermissionDenied
	}

	s.cancelTriggers(ctx, existing)

	r.ID = id
	handles, err := s.scheduleTriggers(ctx, r, true)
	if err != nil {
		return entity.Reminder{}, err
	}
	r.NotificationIDs = handles

	if err := s.repo.Upsert(ctx, r); err != nil {
		s.log.Error(fmt.Sprintf("Failed to persist updated reminder %s", id), err)
		return entity.Reminder{}, err
	}

	s.log.Info(fmt.Sprintf("Updated reminder %s, %d triggers rescheduled", id, len(handles)))
	return r, nil
}

// DeleteReminder cancels every outstanding trigger and removes the
// record.
func (s *reminderService) DeleteReminder(ctx context.Context, id string) error {
	if err := s.awaitReady(ctx); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	reminders, err := s.repo.List(ctx)
	if err != nil {
		return err
	}
	existing, found := s.findByID(reminders, id)
	if !found {
		return fmt.Errorf("%w: %s", appErrors.ErrReminderNotFound, id)
	}

	s.cancelTriggers(ctx, existing)

	if err := s.repo.RemoveByID(ctx, id); err != nil {
		s.log.Error(fmt.Sprintf("Failed to remove reminder %s", id), err)
		return err
	}

	s.log.Info(fmt.Sprintf("Deleted reminder %s", id))
	return nil
}

// Snooze handles a SNOOZE action. The branch is selected from the
// currently persisted reminder: a single at-time alert means the event
// itself moves forward; anything else gets exactly one supplementary
// trigger appended, leaving the event date untouched so lead alerts
// stay in sync. A reminder deleted since delivery is a silent no-op.
func (s *reminderService) Snooze(ctx context.Context, payload gateway.Payload, firedHandle string) error {
	if err := s.awaitReady(ctx); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	reminders, err := s.repo.List(ctx)
	if err != nil {
		return err
	}
	r, found := s.findByID(reminders, payload.ReminderID)
	if !found {
		s.log.Debug(fmt.Sprintf("Snooze for reminder %s ignored, record no longer exists", payload.ReminderID))
		return nil
	}

	snoozeFor := time.Duration(r.SnoozeMinutes) * time.Minute

	if r.HasSingleAtTimeAlert() {
		input := dto.ReminderInput{
			Title:         r.Title,
			Description:   r.Description,
			Date:          r.Date.Add(snoozeFor),
			SnoozeMinutes: r.SnoozeMinutes,
			SoundID:       r.SoundID,
			Alerts:        entity.AlertTags(r.Alerts),
		}
		if _, err := s.updateLocked(ctx, r.ID, input); err != nil {
			return err
		}
		s.log.Info(fmt.Sprintf("Snoozed reminder %s, event moved %d minutes forward", r.ID, r.SnoozeMinutes))
		return nil
	}

	// The snoozed trigger fires even when the nominal event date has
	// already passed: the user asked for one more nudge.
	handle, err := s.gw.Schedule(ctx, gateway.Request{
		Title:      r.Title,
		Body:       r.Description,
		TriggerAt:  time.Now().Add(snoozeFor),
		Payload:    gateway.Payload{ReminderID: r.ID, Alert: payload.Alert, IsSnooze: true},
		ChannelID:  gateway.ChannelForSound(r.SoundID),
		CategoryID: gateway.CategoryAlarmActions,
	})
	if err != nil {
		s.log.Error(fmt.Sprintf("Failed to schedule snooze trigger for reminder %s", r.ID), err)
		return err
	}

	r.NotificationIDs = append(r.NotificationIDs, handle)
	if err := s.repo.Upsert(ctx, r); err != nil {
		s.log.Error(fmt.Sprintf("Failed to persist snooze trigger for reminder %s", r.ID), err)
		return err
	}

	s.log.Info(fmt.Sprintf("Snoozed reminder %s for %d minutes, supplementary trigger %s", r.ID, r.SnoozeMinutes, handle))
	return nil
}

// ReconcileAll wipes every outstanding platform trigger and rebuilds
// the schedule from the persisted collection. The platform cannot
// enumerate outstanding triggers, so wipe-and-rebuild is the only
// crash-safe strategy. Per-reminder scheduling failures are logged and
// never abort the loop.
func (s *reminderService) ReconcileAll(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.gw.CancelAll(ctx); err != nil {
		s.log.Error("Failed to cancel outstanding triggers during reconciliation", err)
	}

	reminders, err := s.repo.List(ctx)
	if err != nil {
		return err
	}

	now := time.Now()
	rescheduled := 0
	expired := 0

	for i := range reminders {
		if reminders[i].Date.After(now) {
			handles, err := s.scheduleTriggers(ctx, reminders[i], false)
			if err != nil {
				// Tolerant mode never returns an error, but keep the
				// loop safe against future changes.
				s.log.Error(fmt.Sprintf("Failed to reschedule reminder %s during reconciliation", reminders[i].ID), err)
				handles = []string{}
			}
			reminders[i].NotificationIDs = handles
			rescheduled++
		} else {
			reminders[i].NotificationIDs = []string{}
			expired++
		}
	}

	if err := s.repo.ReplaceAll(ctx, reminders); err != nil {
		s.log.Error("Failed to persist reconciled reminder list", err)
		return err
	}

	s.log.Info(fmt.Sprintf("Reconciliation complete. Rescheduled: %d, expired: %d", rescheduled, expired))
	return nil
}
