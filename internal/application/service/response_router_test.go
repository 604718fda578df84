package service

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"ummatcal/internal/domain/gateway"
)

type spyReminderService struct {
	ReminderService
	mu       sync.Mutex
	snoozed  []gateway.Payload
	snoozeAt []int // index into the gateway's dismissed slice at call time
	gw       *fakeGateway
}

func (s *spyReminderService) Snooze(ctx context.Context, payload gateway.Payload, firedHandle string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snoozed = append(s.snoozed, payload)
	s.gw.mu.Lock()
	s.snoozeAt = append(s.snoozeAt, len(s.gw.dismissed))
	s.gw.mu.Unlock()
	return nil
}

func TestRouterDismissesBeforeSnoozing(t *testing.T) {
	gw := newFakeGateway()
	spy := &spyReminderService{gw: gw}
	router := NewResponseRouter(gw, spy, testLogger{})
	router.Start()
	defer router.Shutdown()

	payload := gateway.Payload{ReminderID: "r1", Alert: "at_time"}
	gw.responseFn(gateway.Response{ActionID: gateway.ActionSnooze, Payload: payload, Handle: "h1"})

	require.Equal(t, []string{"h1"}, gw.dismissed)
	require.Equal(t, []gateway.Payload{payload}, spy.snoozed)
	// The dismiss had already happened when Snooze ran.
	require.Equal(t, []int{1}, spy.snoozeAt)
}

func TestRouterDismissActionDoesNotSnooze(t *testing.T) {
	gw := newFakeGateway()
	spy := &spyReminderService{gw: gw}
	router := NewResponseRouter(gw, spy, testLogger{})
	router.Start()
	defer router.Shutdown()

	gw.responseFn(gateway.Response{ActionID: gateway.ActionDismiss, Handle: "h2"})

	require.Equal(t, []string{"h2"}, gw.dismissed)
	require.Empty(t, spy.snoozed)
}

func TestRouterShutdownUnsubscribes(t *testing.T) {
	gw := newFakeGateway()
	spy := &spyReminderService{gw: gw}
	router := NewResponseRouter(gw, spy, testLogger{})
	router.Start()
	require.NotNil(t, gw.responseFn)

	router.Shutdown()
	require.Nil(t, gw.responseFn)
}
