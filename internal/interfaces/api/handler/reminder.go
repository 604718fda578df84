package handler

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"ummatcal/internal/application/dto"
	"ummatcal/internal/application/service"
	"ummatcal/internal/domain/entity"
	appErrors "ummatcal/internal/pkg/errors"
	"ummatcal/internal/pkg/logger"
)

// ReminderHandler exposes the reminder engine to the UI layer.
type ReminderHandler struct {
	reminderSvc service.ReminderService
	log         logger.Logger
}

// NewReminderHandler creates a new ReminderHandler.
func NewReminderHandler(reminderSvc service.ReminderService, log logger.Logger) *ReminderHandler {
	return &ReminderHandler{reminderSvc: reminderSvc, log: log}
}

// List returns all reminders, upcoming first.
func (h *ReminderHandler) List(c echo.Context) error {
	reminders, err := h.reminderSvc.GetReminders(c.Request().Context())
	if err != nil {
		return h.writeError(c, err)
	}
	return c.JSON(http.StatusOK, dto.ToReminderResponseList(reminders, time.Now()))
}

// Create creates a new reminder and schedules its triggers.
func (h *ReminderHandler) Create(c echo.Context) error {
	var input dto.ReminderInput
	if err := c.Bind(&input); err != nil {
		return c.JSON(http.StatusBadRequest, errorBody("invalid request body"))
	}

	reminder, err := h.reminderSvc.AddReminder(c.Request().Context(), input)
	if err != nil {
		return h.writeError(c, err)
	}
	return c.JSON(http.StatusCreated, dto.ToReminderResponse(reminder, time.Now()))
}

// Update replaces a reminder's fields and reschedules its triggers.
func (h *ReminderHandler) Update(c echo.Context) error {
	var input dto.ReminderInput
	if err := c.Bind(&input); err != nil {
		return c.JSON(http.StatusBadRequest, errorBody("invalid request body"))
	}

	reminder, err := h.reminderSvc.UpdateReminder(c.Request().Context(), c.Param("id"), input)
	if err != nil {
		return h.writeError(c, err)
	}
	return c.JSON(http.StatusOK, dto.ToReminderResponse(reminder, time.Now()))
}

// Delete removes a reminder and cancels its triggers.
func (h *ReminderHandler) Delete(c echo.Context) error {
	if err := h.reminderSvc.DeleteReminder(c.Request().Context(), c.Param("id")); err != nil {
		return h.writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// Sounds returns the notification sound catalogue.
func (h *ReminderHandler) Sounds(c echo.Context) error {
	return c.JSON(http.StatusOK, dto.ToSoundResponseList(entity.Sounds()))
}

func (h *ReminderHandler) writeError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, appErrors.ErrPermissionDenied):
		return c.JSON(http.StatusForbidden, errorBody("enable notifications to set reminders"))
	case errors.Is(err, appErrors.ErrValidation):
		return c.JSON(http.StatusBadRequest, errorBody(err.Error()))
	case errors.Is(err, appErrors.ErrReminderNotFound):
		return c.JSON(http.StatusNotFound, errorBody("reminder not found"))
	case errors.Is(err, appErrors.ErrScheduling):
		h.log.Error("Scheduling failed while handling request", err)
		return c.JSON(http.StatusBadGateway, errorBody("failed to schedule notification"))
	default:
		h.log.Error(fmt.Sprintf("Request %s %s failed", c.Request().Method, c.Request().URL.Path), err)
		return c.JSON(http.StatusInternalServerError, errorBody(appErrors.ErrInternalServer.Error()))
	}
}

func errorBody(msg string) map[string]string {
	return map[string]string{"error": msg}
}
