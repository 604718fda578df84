package bolt

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.etcd.io/bbolt"

	"ummatcal/internal/domain/entity"
	"ummatcal/internal/domain/repository"
	appErrors "ummatcal/internal/pkg/errors"
	"ummatcal/internal/pkg/logger"
)

// Key the serialized reminder list lives under, carried over from the
// mobile releases so existing installs keep their data.
var reminderListKey = []byte("@ummat_calendar_reminders")

// storedReminder is the on-disk JSON shape. Legacy records may carry a
// singular notificationId instead of the notificationIds list and may
// lack alerts entirely; migrate absorbs both.
type storedReminder struct {
	ID                   string    `json:"id"`
	Title                string    `json:"title"`
	Description          string    `json:"description,omitempty"`
	Date                 time.Time `json:"date"`
	SnoozeMinutes        int       `json:"snoozeMinutes,omitempty"`
	SoundID              string    `json:"soundId,omitempty"`
	Alerts               []string  `json:"alerts,omitempty"`
	NotificationIDs      []string  `json:"notificationIds,omitempty"`
	LegacyNotificationID *string   `json:"notificationId,omitempty"`
}

type reminderRepository struct {
	store *Store
	log   logger.Logger
}

// NewReminderRepository creates the bbolt-backed ReminderRepository.
func NewReminderRepository(store *Store, log logger.Logger) repository.ReminderRepository {
	return &reminderRepository{store: store, log: log}
}

// migrate converts one stored record into the canonical in-memory model.
// Optional legacy fields do not exist beyond this boundary.
func (r *reminderRepository) migrate(rec storedReminder) entity.Reminder {
	rem := entity.Reminder{
		ID:              rec.ID,
		Title:           rec.Title,
		Description:     rec.Description,
		Date:            rec.Date,
		SnoozeMinutes:   rec.SnoozeMinutes,
		SoundID:         rec.SoundID,
		NotificationIDs: rec.NotificationIDs,
	}

	for _, tag := range rec.Alerts {
		alert, err := entity.ParseAlert(tag)
		if err != nil {
			r.log.Warn(fmt.Sprintf("Reminder %s carries an unrecognized alert tag, treating as at-time: %v", rec.ID, err))
		}
		rem.Alerts = append(rem.Alerts, alert)
	}

	if rem.NotificationIDs == nil {
		if rec.LegacyNotificationID != nil && *rec.LegacyNotificationID != "" {
			rem.NotificationIDs = []string{*rec.LegacyNotificationID}
		} else {
			rem.NotificationIDs = []string{}
		}
	}

	rem.Normalize()
	return rem
}

func encode(rem entity.Reminder) storedReminder {
	return storedReminder{
		ID:              rem.ID,
		Title:           rem.Title,
		Description:     rem.Description,
		Date:            rem.Date,
		SnoozeMinutes:   rem.SnoozeMinutes,
		SoundID:         rem.SoundID,
		Alerts:          entity.AlertTags(rem.Alerts),
		NotificationIDs: rem.NotificationIDs,
	}
}

func (r *reminderRepository) readList(tx *bbolt.Tx) ([]storedReminder, error) {
	data := tx.Bucket(remindersBucket).Get(reminderListKey)
	if data == nil {
		return nil, nil
	}
	var records []storedReminder
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("corrupt reminder list: %w", err)
	}
	return records, nil
}

func writeList(tx *bbolt.Tx, records []storedReminder) error {
	if records == nil {
		records = []storedReminder{}
	}
	data, err := json.Marshal(records)
	if err != nil {
		return err
	}
	return tx.Bucket(remindersBucket).Put(reminderListKey, data)
}

// List retrieves all reminders, migrated and normalized.
func (r *reminderRepository) List(ctx context.Context) ([]entity.Reminder, error) {
	var reminders []entity.Reminder
	err := r.store.db.View(func(tx *bbolt.Tx) error {
		records, err := r.readList(tx)
		if err != nil {
			return err
		}
		reminders = make([]entity.Reminder, 0, len(records))
		for _, rec := range records {
			reminders = append(reminders, r.migrate(rec))
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", appErrors.ErrStorage, err)
	}
	return reminders, nil
}

// Upsert replaces the record with the same ID or appends a new one,
// persisting the whole list in one write.
func (r *reminderRepository) Upsert(ctx context.Context, reminder entity.Reminder) error {
	err := r.store.db.Update(func(tx *bbolt.Tx) error {
		records, err := r.readList(tx)
		if err != nil {
			return err
		}
		rec := encode(reminder)
		replaced := false
		for i := range records {
			if records[i].ID == rec.ID {
				records[i] = rec
				replaced = true
				break
			}
		}
		if !replaced {
			records = append(records, rec)
		}
		return writeList(tx, records)
	})
	if err != nil {
		return fmt.Errorf("%w: failed to upsert reminder %s: %v", appErrors.ErrStorage, reminder.ID, err)
	}
	return nil
}

// RemoveByID drops one record and persists the remainder.
func (r *reminderRepository) RemoveByID(ctx context.Context, id string) error {
	err := r.store.db.Update(func(tx *bbolt.Tx) error {
		records, err := r.readList(tx)
		if err != nil {
			return err
		}
		kept := records[:0]
		for _, rec := range records {
			if rec.ID != id {
				kept = append(kept, rec)
			}
		}
		return writeList(tx, kept)
	})
	if err != nil {
		return fmt.Errorf("%w: failed to remove reminder %s: %v", appErrors.ErrStorage, id, err)
	}
	return nil
}

// ReplaceAll persists the given collection in a single batch write.
func (r *reminderRepository) ReplaceAll(ctx context.Context, reminders []entity.Reminder) error {
	records := make([]storedReminder, len(reminders))
	for i, rem := range reminders {
		records[i] = encode(rem)
	}
	err := r.store.db.Update(func(tx *bbolt.Tx) error {
		return writeList(tx, records)
	})
	if err != nil {
		return fmt.Errorf("%w: failed to replace reminder list: %v", appErrors.ErrStorage, err)
	}
	return nil
}
