package gateway

import (
	"context"
	"time"
)

// Interactive action identifiers exposed on delivered notifications.
const (
	ActionDismiss = "DISMISS"
	ActionSnooze  = "SNOOZE"
)

// CategoryAlarmActions is the interactive category carrying the
// {DISMISS, SNOOZE} action pair.
const CategoryAlarmActions = "alarm-actions"

// ChannelForSound returns the delivery channel id pre-declared for a
// sound. Channel properties cannot change after creation, so one channel
// exists per catalogue sound.
func ChannelForSound(soundID string) string {
	return "ummat_reminders_v6_" + soundID
}

// Payload identifies which reminder and alert produced a trigger. It is
// attached at schedule time and returned verbatim with responses.
type Payload struct {
	ReminderID string `json:"reminderId"`
	Alert      string `json:"alert,omitempty"`
	IsSnooze   bool   `json:"isSnooze,omitempty"`
}

// Request describes one one-shot trigger to schedule.
type Request struct {
	Title     string
	Body      string
	TriggerAt time.Time
	Payload   Payload
	// ChannelID selects the sound; empty means the default sound channel.
	ChannelID string
	// CategoryID selects the interactive action set; empty means none.
	CategoryID string
	// Handle, when non-empty, is used instead of a generated one. A
	// trigger already scheduled under the same handle is replaced.
	// Used for deterministic daily digest ids.
	Handle string
}

// Response is delivered when the user interacts with a notification's
// action buttons.
type Response struct {
	ActionID string
	Payload  Payload
	Handle   string
}

// ResponseFunc receives user responses. Exactly one logical subscriber
// is expected process-wide.
type ResponseFunc func(Response)

// NotificationGateway abstracts the platform's absolute-time one-shot
// notification facility.
type NotificationGateway interface {
	// EnsurePermission prepares the delivery platform: pre-declares one
	// channel per catalogue sound and the alarm action category, and
	// reports whether notifications may be scheduled. A false return is
	// non-fatal; callers must not schedule and should surface it.
	EnsurePermission(ctx context.Context) (bool, error)
	// Schedule requests a one-shot fire at the request's trigger instant
	// and returns the cancellable handle. Scheduling an instant in the
	// past is undefined; callers pre-filter.
	Schedule(ctx context.Context, req Request) (string, error)
	// Cancel revokes an outstanding trigger. Cancelling an unknown or
	// already-fired handle is a no-op.
	Cancel(ctx context.Context, handle string) error
	// CancelAll revokes every outstanding trigger regardless of owner.
	CancelAll(ctx context.Context) error
	// Dismiss removes an already-delivered notification. Best-effort.
	Dismiss(ctx context.Context, handle string) error
	// OnResponse registers the process-wide response listener and
	// returns its unsubscribe function.
	OnResponse(fn ResponseFunc) (unsubscribe func())
	// Shutdown stops the gateway's internal timer machinery.
	Shutdown()
}
