package repository

import (
	"context"

	"ummatcal/internal/domain/entity"
)

// ReminderRepository defines the interface for reminder persistence.
// The store holds the whole collection under a single key; every write
// replaces the serialized list as a unit, so there is no partial-record
// update at the storage layer.
type ReminderRepository interface {
	// List retrieves all reminders, normalized to the canonical model
	// (legacy records migrated, defaults applied).
	List(ctx context.Context) ([]entity.Reminder, error)
	// Upsert replaces the reminder with the same ID, or appends it.
	Upsert(ctx context.Context, reminder entity.Reminder) error
	// RemoveByID drops one reminder from the collection.
	RemoveByID(ctx context.Context, id string) error
	// ReplaceAll persists the given collection in one batch write
	// (used by startup reconciliation).
	ReplaceAll(ctx context.Context, reminders []entity.Reminder) error
}
