package entity

import (
	"sort"
	"time"
)

// DefaultSnoozeMinutes is applied when a reminder does not carry a
// positive snooze duration.
const DefaultSnoozeMinutes = 10

// Reminder is a user-authored calendar reminder together with the
// handles of its currently scheduled notification triggers.
type Reminder struct {
	ID              string
	Title           string
	Description     string
	Date            time.Time
	SnoozeMinutes   int
	SoundID         string
	Alerts          []Alert
	NotificationIDs []string
}

// Normalize fills the defaults required by the data model: at least one
// alert, a positive snooze duration, a known sound, and an event time
// truncated to the minute.
func (r *Reminder) Normalize() {
	if len(r.Alerts) == 0 {
		r.Alerts = []Alert{AtTime()}
	}
	if r.SnoozeMinutes <= 0 {
		r.SnoozeMinutes = DefaultSnoozeMinutes
	}
	if _, ok := SoundByID(r.SoundID); !ok {
		r.SoundID = DefaultSoundID
	}
	r.Date = r.Date.Truncate(time.Minute)
}

// IsExpired reports whether the reminder's event time has passed.
func (r *Reminder) IsExpired(now time.Time) bool {
	return r.Date.Before(now)
}

// HasSingleAtTimeAlert reports whether the reminder's only alert fires
// exactly at the event time. Snoozing such a reminder moves the event
// itself instead of appending a supplementary trigger.
func (r *Reminder) HasSingleAtTimeAlert() bool {
	return len(r.Alerts) == 1 && r.Alerts[0].Kind == AlertAtTime
}

// SortReminders orders reminders for display: upcoming ones first by
// date ascending, expired ones last by date ascending.
func SortReminders(reminders []Reminder, now time.Time) {
	sort.SliceStable(reminders, func(i, j int) bool {
		expiredI := reminders[i].IsExpired(now)
		expiredJ := reminders[j].IsExpired(now)
		if expiredI != expiredJ {
			return !expiredI
		}
		return reminders[i].Date.Before(reminders[j].Date)
	})
}
