package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestNormalizeAppliesDefaults(t *testing.T) {
	r := Reminder{
		Title: "Eid prayer",
		Date:  time.Date(2026, 3, 20, 8, 30, 45, 123, time.UTC),
	}
	r.Normalize()

	require.Equal(t, []Alert{AtTime()}, r.Alerts)
	require.Equal(t, DefaultSnoozeMinutes, r.SnoozeMinutes)
	require.Equal(t, DefaultSoundID, r.SoundID)
	require.Equal(t, time.Date(2026, 3, 20, 8, 30, 0, 0, time.UTC), r.Date)
}

func TestNormalizeKeepsExplicitValues(t *testing.T) {
	r := Reminder{
		Title:         "Fast begins",
		Date:          time.Date(2026, 3, 1, 5, 0, 0, 0, time.UTC),
		SnoozeMinutes: 25,
		SoundID:       "bell",
		Alerts:        []Alert{{Kind: AlertOneDayBefore}},
	}
	r.Normalize()

	require.Equal(t, 25, r.SnoozeMinutes)
	require.Equal(t, "bell", r.SoundID)
	require.Equal(t, []Alert{{Kind: AlertOneDayBefore}}, r.Alerts)
}

func TestNormalizeReplacesUnknownSound(t *testing.T) {
	r := Reminder{Title: "x", SoundID: "airhorn"}
	r.Normalize()
	require.Equal(t, DefaultSoundID, r.SoundID)
}

func TestHasSingleAtTimeAlert(t *testing.T) {
	r := Reminder{Alerts: []Alert{AtTime()}}
	require.True(t, r.HasSingleAtTimeAlert())

	r.Alerts = []Alert{AtTime(), {Kind: AlertOneDayBefore}}
	require.False(t, r.HasSingleAtTimeAlert())

	r.Alerts = []Alert{{Kind: AlertOneDayBefore}}
	require.False(t, r.HasSingleAtTimeAlert())
}

func TestSortRemindersUpcomingFirstExpiredLast(t *testing.T) {
	now := time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC)
	reminders := []Reminder{
		{ID: "expired-late", Date: now.Add(-1 * time.Hour)},
		{ID: "soon", Date: now.Add(2 * time.Hour)},
		{ID: "expired-early", Date: now.Add(-48 * time.Hour)},
		{ID: "later", Date: now.Add(72 * time.Hour)},
	}

	SortReminders(reminders, now)

	ids := make([]string, len(reminders))
	for i, r := range reminders {
		ids[i] = r.ID
	}
	require.Equal(t, []string{"soon", "later", "expired-early", "expired-late"}, ids)
}
