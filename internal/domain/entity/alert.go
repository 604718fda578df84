package entity

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// AlertKind enumerates the supported lead-time alert variants.
type AlertKind int

const (
	// AlertAtTime fires exactly at the reminder's event time.
	AlertAtTime AlertKind = iota
	// AlertOneDayBefore fires 24 hours before the event.
	AlertOneDayBefore
	// AlertTwoDaysBefore fires 48 hours before the event.
	AlertTwoDaysBefore
	// AlertOneWeekBefore fires 7 days before the event.
	AlertOneWeekBefore
	// AlertCustomDays fires a user-chosen number of days before the event.
	AlertCustomDays
)

// Tagged-string encoding used by the persistence layer and the API.
const (
	tagAtTime        = "at_time"
	tagOneDayBefore  = "1_day_before"
	tagTwoDaysBefore = "2_days_before"
	tagOneWeekBefore = "1_week_before"
	customPrefix     = "custom:"
)

// Alert is one lead-time offset of a reminder. Days is only meaningful
// for AlertCustomDays.
type Alert struct {
	Kind AlertKind
	Days int
}

// AtTime is the default alert applied when a reminder has none.
func AtTime() Alert {
	return Alert{Kind: AlertAtTime}
}

// Offset returns the lead time before the event at which the alert fires.
func (a Alert) Offset() time.Duration {
	switch a.Kind {
	case AlertAtTime:
		return 0
	case AlertOneDayBefore:
		return 24 * time.Hour
	case AlertTwoDaysBefore:
		return 48 * time.Hour
	case AlertOneWeekBefore:
		return 7 * 24 * time.Hour
	case AlertCustomDays:
		return time.Duration(a.Days) * 24 * time.Hour
	default:
		return 0
	}
}

// String returns the tagged-string encoding of the alert.
func (a Alert) String() string {
	switch a.Kind {
	case AlertAtTime:
		return tagAtTime
	case AlertOneDayBefore:
		return tagOneDayBefore
	case AlertTwoDaysBefore:
		return tagTwoDaysBefore
	case AlertOneWeekBefore:
		return tagOneWeekBefore
	case AlertCustomDays:
		return customPrefix + strconv.Itoa(a.Days)
	default:
		return tagAtTime
	}
}

// Label returns the display text for the alert.
func (a Alert) Label() string {
	switch a.Kind {
	case AlertAtTime:
		return "At time"
	case AlertOneDayBefore:
		return "1 day before"
	case AlertTwoDaysBefore:
		return "2 days before"
	case AlertOneWeekBefore:
		return "1 week before"
	case AlertCustomDays:
		return fmt.Sprintf("%d days before", a.Days)
	default:
		return ""
	}
}

// ParseAlert decodes a tagged string into an Alert. An unrecognized tag
// resolves to the zero-offset at-time alert together with an error so the
// caller can log the data-integrity warning instead of failing the load.
func ParseAlert(tag string) (Alert, error) {
	switch tag {
	case tagAtTime:
		return Alert{Kind: AlertAtTime}, nil
	case tagOneDayBefore:
		return Alert{Kind: AlertOneDayBefore}, nil
	case tagTwoDaysBefore:
		return Alert{Kind: AlertTwoDaysBefore}, nil
	case tagOneWeekBefore:
		return Alert{Kind: AlertOneWeekBefore}, nil
	}
	if strings.HasPrefix(tag, customPrefix) {
		days, err := strconv.Atoi(strings.TrimPrefix(tag, customPrefix))
		if err != nil || days < 1 {
			return AtTime(), fmt.Errorf("invalid custom alert tag %q", tag)
		}
		return Alert{Kind: AlertCustomDays, Days: days}, nil
	}
	return AtTime(), fmt.Errorf("unknown alert tag %q", tag)
}

// AlertTags encodes a slice of alerts into their tagged strings.
func AlertTags(alerts []Alert) []string {
	tags := make([]string, len(alerts))
	for i, a := range alerts {
		tags[i] = a.String()
	}
	return tags
}
