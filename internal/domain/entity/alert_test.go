package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestAlertOffset(t *testing.T) {
	require.Equal(t, time.Duration(0), AtTime().Offset())
	require.Equal(t, 24*time.Hour, Alert{Kind: AlertOneDayBefore}.Offset())
	require.Equal(t, 48*time.Hour, Alert{Kind: AlertTwoDaysBefore}.Offset())
	require.Equal(t, 7*24*time.Hour, Alert{Kind: AlertOneWeekBefore}.Offset())
	require.Equal(t, 7*24*time.Hour, Alert{Kind: AlertCustomDays, Days: 7}.Offset())
	require.Equal(t, 3*24*time.Hour, Alert{Kind: AlertCustomDays, Days: 3}.Offset())
}

func TestParseAlertRoundTrip(t *testing.T) {
	tags := []string{"at_time", "1_day_before", "2_days_before", "1_week_before", "custom:5"}
	for _, tag := range tags {
		alert, err := ParseAlert(tag)
		require.NoError(t, err, tag)
		require.Equal(t, tag, alert.String())
	}
}

func TestParseAlertUnknownTagFallsBackToAtTime(t *testing.T) {
	alert, err := ParseAlert("3_hours_before")
	require.Error(t, err)
	require.Equal(t, AtTime(), alert)
}

func TestParseAlertRejectsBadCustomDays(t *testing.T) {
	for _, tag := range []string{"custom:", "custom:abc", "custom:0", "custom:-2"} {
		alert, err := ParseAlert(tag)
		require.Error(t, err, tag)
		require.Equal(t, AtTime(), alert)
	}
}

func TestAlertLabel(t *testing.T) {
	require.Equal(t, "At time", AtTime().Label())
	require.Equal(t, "1 day before", Alert{Kind: AlertOneDayBefore}.Label())
	require.Equal(t, "10 days before", Alert{Kind: AlertCustomDays, Days: 10}.Label())
}

func TestAlertTags(t *testing.T) {
	alerts := []Alert{AtTime(), {Kind: AlertOneWeekBefore}, {Kind: AlertCustomDays, Days: 2}}
	require.Equal(t, []string{"at_time", "1_week_before", "custom:2"}, AlertTags(alerts))
}
