package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"ummatcal/internal/application/dto"
	"ummatcal/internal/application/service"
	appErrors "ummatcal/internal/pkg/errors"
	"ummatcal/internal/pkg/logger"
)

// SettingsHandler exposes the daily digest configuration.
type SettingsHandler struct {
	dailySvc service.DailyDigestService
	log      logger.Logger
}

// NewSettingsHandler creates a new SettingsHandler.
func NewSettingsHandler(dailySvc service.DailyDigestService, log logger.Logger) *SettingsHandler {
	return &SettingsHandler{dailySvc: dailySvc, log: log}
}

// GetDaily returns the current daily digest configuration.
func (h *SettingsHandler) GetDaily(c echo.Context) error {
	settings, err := h.dailySvc.Settings(c.Request().Context())
	if err != nil {
		h.log.Error("Failed to load daily digest settings", err)
		return c.JSON(http.StatusInternalServerError, errorBody(appErrors.ErrInternalServer.Error()))
	}
	return c.JSON(http.StatusOK, dto.ToDailySettingsResponse(settings))
}

// PutDaily updates the daily digest configuration and refreshes the
// scheduled window.
func (h *SettingsHandler) PutDaily(c echo.Context) error {
	var req dto.DailySettingsRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorBody("invalid request body"))
	}

	settings, err := h.dailySvc.UpdateSettings(c.Request().Context(), req)
	if err != nil {
		if errors.Is(err, appErrors.ErrValidation) {
			return c.JSON(http.StatusBadRequest, errorBody(err.Error()))
		}
		h.log.Error("Failed to update daily digest settings", err)
		return c.JSON(http.StatusInternalServerError, errorBody(appErrors.ErrInternalServer.Error()))
	}
	return c.JSON(http.StatusOK, dto.ToDailySettingsResponse(settings))
}
