package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/line/line-bot-sdk-go/v7/linebot"

	lineClient "ummatcal/internal/infrastructure/line"
	"ummatcal/internal/infrastructure/notification"
	"ummatcal/internal/pkg/logger"
)

// LineHandler handles incoming LINE webhook events. Quick-reply taps
// on delivered notifications arrive here as text messages encoding the
// action and the trigger handle; they are fed into the gateway, which
// drives the response router.
type LineHandler struct {
	lineClient *lineClient.Client
	gw         *notification.Gateway
	log        logger.Logger
}

// NewLineHandler creates a new LineHandler.
func NewLineHandler(client *lineClient.Client, gw *notification.Gateway, log logger.Logger) *LineHandler {
	return &LineHandler{lineClient: client, gw: gw, log: log}
}

// HandleWebhook is the entry point for webhook requests.
func (h *LineHandler) HandleWebhook(c echo.Context) error {
	events, err := h.lineClient.ParseRequest(c.Request())
	if err != nil {
		if errors.Is(err, linebot.ErrInvalidSignature) {
			h.log.Warn("Invalid LINE signature received")
			return c.String(http.StatusBadRequest, "Invalid signature")
		}
		h.log.Error("Failed to parse LINE webhook request", err)
		return c.String(http.StatusInternalServerError, "Error parsing request")
	}

	for _, event := range events {
		if event.Type != linebot.EventTypeMessage {
			h.log.Debug(fmt.Sprintf("Ignoring event type: %s", event.Type))
			continue
		}
		message, ok := event.Message.(*linebot.TextMessage)
		if !ok {
			continue
		}

		actionID, handle, ok := lineClient.ParseActionText(message.Text)
		if !ok {
			h.log.Debug(fmt.Sprintf("Ignoring unrelated message: %s", message.Text))
			continue
		}

		h.log.Info(fmt.Sprintf("Notification response: action=%s handle=%s", actionID, handle))
		h.gw.HandleResponse(actionID, handle)
	}

	return c.String(http.StatusOK, "OK")
}
