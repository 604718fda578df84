package line

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"ummatcal/internal/domain/gateway"
	"ummatcal/internal/infrastructure/notification"
)

func TestParseActionTextRoundTrip(t *testing.T) {
	for _, actionID := range []string{gateway.ActionSnooze, gateway.ActionDismiss} {
		text := actionText(actionID, "handle-123")
		a, h, ok := ParseActionText(text)
		require.True(t, ok, text)
		require.Equal(t, actionID, a)
		require.Equal(t, "handle-123", h)
	}
}

func TestParseActionTextRejectsUnrelatedMessages(t *testing.T) {
	for _, text := range []string{
		"hello",
		"/HELP me",
		"SNOOZE abc",
		"/SNOOZE",
		"",
	} {
		_, _, ok := ParseActionText(text)
		require.False(t, ok, text)
	}
}

func TestActionLabels(t *testing.T) {
	require.Equal(t, "Remind again", actionLabel(gateway.ActionSnooze))
	require.Equal(t, "OK", actionLabel(gateway.ActionDismiss))
}

func TestUnconfiguredClientRefusesPush(t *testing.T) {
	c := &Client{}
	require.False(t, c.Configured())

	err := c.Push(context.Background(), notification.Delivery{Title: "x"})
	require.Error(t, err)

	_, err = c.ParseRequest(nil)
	require.Error(t, err)
}
