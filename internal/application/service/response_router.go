package service

import (
	"context"
	"fmt"
	"time"

	"ummatcal/internal/domain/gateway"
	"ummatcal/internal/pkg/logger"
)

// ResponseRouter is the single process-wide subscriber to notification
// responses. It dismisses the delivered notification first and then
// delegates SNOOZE actions to the reminder service; every other action
// has no scheduling side effect.
type ResponseRouter struct {
	gw          gateway.NotificationGateway
	reminderSvc ReminderService
	log         logger.Logger
	unsubscribe func()
}

// NewResponseRouter creates the router without subscribing it yet.
func NewResponseRouter(gw gateway.NotificationGateway, reminderSvc ReminderService, log logger.Logger) *ResponseRouter {
	return &ResponseRouter{gw: gw, reminderSvc: reminderSvc, log: log}
}

// Start registers the router as the gateway's response listener.
func (r *ResponseRouter) Start() {
	r.unsubscribe = r.gw.OnResponse(r.handle)
	r.log.Info("Notification response router started.")
}

// Shutdown unsubscribes the router.
func (r *ResponseRouter) Shutdown() {
	if r.unsubscribe != nil {
		r.unsubscribe()
		r.unsubscribe = nil
	}
}

func (r *ResponseRouter) handle(res gateway.Response) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Dismiss before any scheduling work so a rapid double-tap cannot
	// produce two visible notifications for the same firing.
	if err := r.gw.Dismiss(ctx, res.Handle); err != nil {
		r.log.Warn(fmt.Sprintf("Failed to dismiss notification %s: %v", res.Handle, err))
	}

	if res.ActionID != gateway.ActionSnooze {
		r.log.Debug(fmt.Sprintf("Notification %s action %s handled with dismiss only", res.Handle, res.ActionID))
		return
	}

	if err := r.reminderSvc.Snooze(ctx, res.Payload, res.Handle); err != nil {
		r.log.Error(fmt.Sprintf("Failed to snooze reminder %s", res.Payload.ReminderID), err)
	}
}
