package service

import (
	"context"

	"ummatcal/internal/application/dto"
	"ummatcal/internal/domain/entity"
	"ummatcal/internal/domain/gateway"
)

// ReminderService defines the interface for the reminder scheduling
// engine: it owns the translation of a user-authored reminder into
// scheduled notification triggers and the reconciliation of that state
// across restarts, edits, deletions, and snoozes.
type ReminderService interface {
	// Initialize runs startup reconciliation and opens the gate that
	// user-initiated operations wait on. Intended to run once at
	// application start, before the HTTP surface accepts traffic.
	Initialize(ctx context.Context) error
	// GetReminders returns all reminders, upcoming first.
	GetReminders(ctx context.Context) ([]entity.Reminder, error)
	// AddReminder creates a reminder and schedules one trigger per
	// alert whose instant is still in the future.
	AddReminder(ctx context.Context, input dto.ReminderInput) (entity.Reminder, error)
	// UpdateReminder cancels the reminder's outstanding triggers and
	// reschedules from the new field values.
	UpdateReminder(ctx context.Context, id string, input dto.ReminderInput) (entity.Reminder, error)
	// DeleteReminder cancels all outstanding triggers and removes the
	// record.
	DeleteReminder(ctx context.Context, id string) error
	// Snooze handles a SNOOZE action for a delivered notification. A
	// reminder whose only alert fires at the event time has its event
	// moved forward by its snooze duration; any other reminder gets one
	// supplementary trigger without its date moving. Snoozing a
	// since-deleted reminder is a no-op.
	Snooze(ctx context.Context, payload gateway.Payload, firedHandle string) error
	// ReconcileAll wipes every outstanding platform trigger and
	// rebuilds the schedule from the persisted collection. Idempotent.
	ReconcileAll(ctx context.Context) error
}
