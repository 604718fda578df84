package line

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"sync"

	"github.com/line/line-bot-sdk-go/v7/linebot"

	"ummatcal/internal/domain/gateway"
	"ummatcal/internal/infrastructure/notification"
	"ummatcal/internal/pkg/logger"
)

// Client wraps the linebot.Client and is the delivery platform behind
// the notification gateway. Action buttons are rendered as quick
// replies whose message text encodes the action and trigger handle.
type Client struct {
	bot    *linebot.Client
	target string
	log    logger.Logger
}

var (
	lineClientInstance *Client
	once               sync.Once
)

// NewClient creates the singleton LINE client. Missing credentials are
// not fatal: the client reports itself unconfigured and the gateway
// surfaces that as a denied permission instead of scheduling.
func NewClient(log logger.Logger) *Client {
	once.Do(func() {
		lineClientInstance = &Client{
			target: os.Getenv("LINE_PUSH_TARGET"),
			log:    log,
		}

		channelSecret := os.Getenv("CHANNEL_SECRET")
		channelToken := os.Getenv("CHANNEL_ACCESS_TOKEN")
		if channelSecret == "" || channelToken == "" {
			log.Warn("CHANNEL_SECRET and CHANNEL_ACCESS_TOKEN not set; notification delivery disabled")
			return
		}

		bot, err := linebot.New(channelSecret, channelToken)
		if err != nil {
			log.Error("Failed to create LINE client", err)
			return
		}
		lineClientInstance.bot = bot
		log.Info("Successfully created LINE client.")
	})
	return lineClientInstance
}

// Configured reports whether delivery credentials and a push target are
// available.
func (c *Client) Configured() bool {
	return c.bot != nil && c.target != ""
}

// Push delivers one notification, rendering the delivery's actions as
// quick-reply buttons.
func (c *Client) Push(ctx context.Context, d notification.Delivery) error {
	if !c.Configured() {
		return fmt.Errorf("line client not configured")
	}

	text := d.Title
	if d.Body != "" {
		text += "\n" + d.Body
	}

	var message linebot.SendingMessage = linebot.NewTextMessage(text)
	if len(d.Actions) > 0 {
		buttons := make([]*linebot.QuickReplyButton, 0, len(d.Actions))
		for _, action := range d.Actions {
			buttons = append(buttons, linebot.NewQuickReplyButton("",
				linebot.NewMessageAction(actionLabel(action), actionText(action, d.Handle))))
		}
		message = linebot.NewTextMessage(text).WithQuickReplies(linebot.NewQuickReplyItems(buttons...))
	}

	if _, err := c.bot.PushMessage(c.target, message).WithContext(ctx).Do(); err != nil {
		return err
	}
	c.log.Debug(fmt.Sprintf("Pushed notification %s (sound %s)", d.Handle, d.Sound))
	return nil
}

// ParseRequest parses incoming webhook requests.
func (c *Client) ParseRequest(r *http.Request) ([]*linebot.Event, error) {
	if c.bot == nil {
		return nil, fmt.Errorf("line client not configured")
	}
	return c.bot.ParseRequest(r)
}

func actionLabel(actionID string) string {
	switch actionID {
	case gateway.ActionSnooze:
		return "Remind again"
	case gateway.ActionDismiss:
		return "OK"
	default:
		return actionID
	}
}

// actionText is the message a quick-reply button sends back; the
// webhook handler parses it to recover the action and handle.
func actionText(actionID, handle string) string {
	return fmt.Sprintf("/%s %s", actionID, handle)
}

// ParseActionText recovers (actionID, handle) from a quick-reply
// message produced by actionText. ok is false for unrelated messages.
func ParseActionText(text string) (actionID, handle string, ok bool) {
	var a, h string
	if _, err := fmt.Sscanf(text, "/%s %s", &a, &h); err != nil {
		return "", "", false
	}
	if a != gateway.ActionSnooze && a != gateway.ActionDismiss {
		return "", "", false
	}
	return a, h, true
}
