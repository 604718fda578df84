package notification

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"

	"ummatcal/internal/domain/entity"
	"ummatcal/internal/domain/gateway"
	appErrors "ummatcal/internal/pkg/errors"
	"ummatcal/internal/pkg/logger"
)

// Delivery is one notification handed to the push platform.
type Delivery struct {
	Title   string
	Body    string
	Sound   string
	Handle  string
	Actions []string
}

// Pusher is the delivery platform behind the gateway.
type Pusher interface {
	Configured() bool
	Push(ctx context.Context, d Delivery) error
}

type trigger struct {
	entryID cron.EntryID
	req     gateway.Request
}

// Gateway implements gateway.NotificationGateway on top of a
// seconds-precision cron runner: every trigger is a one-shot job keyed
// by an opaque handle, removed from the runner once it fires.
type Gateway struct {
	cron   *cron.Cron
	pusher Pusher
	log    logger.Logger

	mu         sync.Mutex
	pending    map[string]trigger
	delivered  map[string]gateway.Payload
	channels   map[string]entity.Sound
	categories map[string][]string
	registered bool
	responseFn gateway.ResponseFunc

	stopOnce sync.Once
}

// NewGateway creates and starts the gateway.
func NewGateway(pusher Pusher, log logger.Logger) *Gateway {
	c := cron.New(cron.WithSeconds())
	c.Start()
	log.Info("Notification gateway started.")
	return &Gateway{
		cron:       c,
		pusher:     pusher,
		log:        log,
		pending:    make(map[string]trigger),
		delivered:  make(map[string]gateway.Payload),
		channels:   make(map[string]entity.Sound),
		categories: make(map[string][]string),
	}
}

// formatCronSpec generates a seconds-precision cron spec for a specific
// instant. The runner evaluates specs in local time, so the instant is
// converted first; the job fires once and is removed before it could
// recur.
func formatCronSpec(t time.Time) string {
	t = t.In(time.Local)
	// Seconds Minutes Hours DayOfMonth Month DayOfWeek
	return fmt.Sprintf("%d %d %d %d %d *", t.Second(), t.Minute(), t.Hour(), t.Day(), t.Month())
}

// EnsurePermission pre-declares one delivery channel per catalogue sound
// and the alarm action category, then reports whether the delivery
// platform is ready to accept schedules.
func (g *Gateway) EnsurePermission(ctx context.Context) (bool, error) {
	g.mu.Lock()
	if !g.registered {
		for _, s := range entity.Sounds() {
			g.channels[gateway.ChannelForSound(s.ID)] = s
		}
		g.categories[gateway.CategoryAlarmActions] = []string{gateway.ActionDismiss, gateway.ActionSnooze}
		g.registered = true
		g.log.Info(fmt.Sprintf("Registered %d notification channels and the %s category", len(g.channels), gateway.CategoryAlarmActions))
	}
	g.mu.Unlock()

	return g.pusher.Configured(), nil
}

// Schedule registers a one-shot trigger and returns its handle. A
// request carrying its own handle replaces any trigger already
// scheduled under it.
func (g *Gateway) Schedule(ctx context.Context, req gateway.Request) (string, error) {
	handle := req.Handle
	if handle == "" {
		handle = uuid.NewString()
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if existing, ok := g.pending[handle]; ok {
		g.cron.Remove(existing.entryID)
		delete(g.pending, handle)
	}

	entryID, err := g.cron.AddFunc(formatCronSpec(req.TriggerAt), func() {
		g.fire(handle)
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", appErrors.ErrScheduling, err)
	}

	g.pending[handle] = trigger{entryID: entryID, req: req}
	g.log.Debug(fmt.Sprintf("Scheduled trigger %s at %v (entry %d)", handle, req.TriggerAt, entryID))
	return handle, nil
}

// fireTolerance bounds how far the wall clock may sit from a trigger's
// instant at delivery time. Cron specs carry no year, so a trigger more
// than a year out matches an earlier annual recurrence; such a firing
// is skipped and the entry stays pending until the right year.
const fireTolerance = time.Minute

// fire delivers one trigger and retires its cron entry.
func (g *Gateway) fire(handle string) {
	g.mu.Lock()
	t, ok := g.pending[handle]
	if !ok {
		g.mu.Unlock()
		return
	}
	if drift := time.Until(t.req.TriggerAt); drift > fireTolerance || drift < -fireTolerance {
		g.mu.Unlock()
		g.log.Debug(fmt.Sprintf("Trigger %s fired %v away from its instant, leaving it pending", handle, drift))
		return
	}
	delete(g.pending, handle)
	g.cron.Remove(t.entryID)
	g.delivered[handle] = t.req.Payload

	sound := g.soundForChannelLocked(t.req.ChannelID)
	actions := g.categories[t.req.CategoryID]
	g.mu.Unlock()

	d := Delivery{
		Title:   t.req.Title,
		Body:    t.req.Body,
		Sound:   sound.File,
		Handle:  handle,
		Actions: actions,
	}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := g.pusher.Push(ctx, d); err != nil {
		g.log.Error(fmt.Sprintf("Failed to deliver notification %s", handle), err)
		return
	}
	g.log.Info(fmt.Sprintf("Delivered notification %s (%s)", handle, t.req.Title))
}

func (g *Gateway) soundForChannelLocked(channelID string) entity.Sound {
	if channelID == "" {
		channelID = gateway.ChannelForSound(entity.DefaultSoundID)
	}
	sound, ok := g.channels[channelID]
	if !ok {
		g.log.Warn(fmt.Sprintf("Unknown notification channel %q, using default sound", channelID))
		sound, _ = entity.SoundByID(entity.DefaultSoundID)
	}
	return sound
}

// Cancel revokes an outstanding trigger. Unknown handles are a no-op.
func (g *Gateway) Cancel(ctx context.Context, handle string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	t, ok := g.pending[handle]
	if !ok {
		return nil
	}
	g.cron.Remove(t.entryID)
	delete(g.pending, handle)
	g.log.Debug(fmt.Sprintf("Cancelled trigger %s", handle))
	return nil
}

// CancelAll revokes every outstanding trigger. Used by reconciliation,
// which also makes it the natural point to drop correlation state for
// delivered notifications the user never acted on; without the prune
// the delivered map grows for the life of the process.
func (g *Gateway) CancelAll(ctx context.Context) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	for handle, t := range g.pending {
		g.cron.Remove(t.entryID)
		delete(g.pending, handle)
	}
	g.delivered = make(map[string]gateway.Payload)
	g.log.Info("Cancelled all outstanding triggers")
	return nil
}

// Dismiss retires a delivered notification's correlation state. The
// push platform offers no way to retract a delivered message, so this
// is bookkeeping only.
func (g *Gateway) Dismiss(ctx context.Context, handle string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	delete(g.delivered, handle)
	g.log.Debug(fmt.Sprintf("Dismissed notification %s", handle))
	return nil
}

// OnResponse registers the process-wide response listener.
func (g *Gateway) OnResponse(fn gateway.ResponseFunc) func() {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.responseFn != nil {
		g.log.Warn("Replacing an existing notification response listener")
	}
	g.responseFn = fn

	return func() {
		g.mu.Lock()
		defer g.mu.Unlock()
		g.responseFn = nil
	}
}

// HandleResponse feeds one user interaction into the registered
// listener, correlating the handle with the payload recorded at
// delivery time. Called by the webhook layer.
func (g *Gateway) HandleResponse(actionID, handle string) {
	g.mu.Lock()
	payload, known := g.delivered[handle]
	fn := g.responseFn
	g.mu.Unlock()

	if !known {
		g.log.Warn(fmt.Sprintf("Response for unknown notification %s (action %s)", handle, actionID))
	}
	if fn == nil {
		g.log.Warn("Notification response received but no listener is registered")
		return
	}
	fn(gateway.Response{ActionID: actionID, Payload: payload, Handle: handle})
}

// Shutdown stops the cron runner and waits for running jobs.
func (g *Gateway) Shutdown() {
	g.stopOnce.Do(func() {
		ctx := g.cron.Stop()
		<-ctx.Done()
		g.log.Info("Notification gateway stopped.")
	})
}
