package service

import (
	"context"
	"errors"
	"strconv"
	"sync"

	"ummatcal/internal/domain/entity"
	"ummatcal/internal/domain/gateway"
)

var errScheduleRefused = errors.New("schedule refused")

type testLogger struct{}

func (testLogger) Error(msg string, err error) {}
func (testLogger) Warn(msg string)             {}
func (testLogger) Info(msg string)             {}
func (testLogger) Debug(msg string)            {}

// fakeReminderRepo is an in-memory ReminderRepository.
type fakeReminderRepo struct {
	mu        sync.Mutex
	reminders []entity.Reminder

	listErr    error
	upsertErr  error
	replaceErr error
}

func (f *fakeReminderRepo) List(ctx context.Context) ([]entity.Reminder, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]entity.Reminder, len(f.reminders))
	copy(out, f.reminders)
	return out, nil
}

func (f *fakeReminderRepo) Upsert(ctx context.Context, reminder entity.Reminder) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.upsertErr != nil {
		return f.upsertErr
	}
	for i := range f.reminders {
		if f.reminders[i].ID == reminder.ID {
			f.reminders[i] = reminder
			return nil
		}
	}
	f.reminders = append(f.reminders, reminder)
	return nil
}

func (f *fakeReminderRepo) RemoveByID(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	kept := f.reminders[:0]
	for _, r := range f.reminders {
		if r.ID != id {
			kept = append(kept, r)
		}
	}
	f.reminders = kept
	return nil
}

func (f *fakeReminderRepo) ReplaceAll(ctx context.Context, reminders []entity.Reminder) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.replaceErr != nil {
		return f.replaceErr
	}
	f.reminders = make([]entity.Reminder, len(reminders))
	copy(f.reminders, reminders)
	return nil
}

func (f *fakeReminderRepo) byID(id string) (entity.Reminder, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.reminders {
		if r.ID == id {
			return r, true
		}
	}
	return entity.Reminder{}, false
}

// fakeSettingsRepo is an in-memory SettingsRepository.
type fakeSettingsRepo struct {
	mu       sync.Mutex
	settings entity.DailySettings
	saved    int
}

func newFakeSettingsRepo() *fakeSettingsRepo {
	return &fakeSettingsRepo{settings: entity.DefaultDailySettings()}
}

func (f *fakeSettingsRepo) DailySettings(ctx context.Context) (entity.DailySettings, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.settings, nil
}

func (f *fakeSettingsRepo) SaveDailySettings(ctx context.Context, settings entity.DailySettings) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.settings = settings
	f.saved++
	return nil
}

// fakeGateway records scheduling traffic without any timer machinery.
// Handles are sequential ("h1", "h2", ...) unless the request carries
// its own.
type fakeGateway struct {
	mu sync.Mutex

	granted       bool
	permissionErr error
	scheduleErr   error
	// failBodies aborts Schedule for requests whose body matches,
	// for exercising partial-failure paths.
	failBodies map[string]bool

	seq       int
	pending   map[string]gateway.Request
	cancelled []string
	cancelAll int
	dismissed []string

	responseFn gateway.ResponseFunc
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{granted: true, pending: make(map[string]gateway.Request)}
}

func (f *fakeGateway) EnsurePermission(ctx context.Context) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.granted, f.permissionErr
}

func (f *fakeGateway) Schedule(ctx context.Context, req gateway.Request) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.scheduleErr != nil {
		return "", f.scheduleErr
	}
	if f.failBodies[req.Body] {
		return "", errScheduleRefused
	}
	handle := req.Handle
	if handle == "" {
		f.seq++
		handle = "h" + strconv.Itoa(f.seq)
	}
	f.pending[handle] = req
	return handle, nil
}

func (f *fakeGateway) Cancel(ctx context.Context, handle string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.pending, handle)
	f.cancelled = append(f.cancelled, handle)
	return nil
}

func (f *fakeGateway) CancelAll(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pending = make(map[string]gateway.Request)
	f.cancelAll++
	return nil
}

func (f *fakeGateway) Dismiss(ctx context.Context, handle string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.dismissed = append(f.dismissed, handle)
	return nil
}

func (f *fakeGateway) OnResponse(fn gateway.ResponseFunc) func() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.responseFn = fn
	return func() {
		f.mu.Lock()
		defer f.mu.Unlock()
		f.responseFn = nil
	}
}

func (f *fakeGateway) Shutdown() {}

func (f *fakeGateway) request(handle string) (gateway.Request, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	req, ok := f.pending[handle]
	return req, ok
}

func (f *fakeGateway) pendingCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.pending)
}

func (f *fakeGateway) cancelledHandles() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.cancelled))
	copy(out, f.cancelled)
	return out
}
