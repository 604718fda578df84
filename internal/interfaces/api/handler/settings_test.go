package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"ummatcal/internal/application/dto"
	"ummatcal/internal/domain/entity"
	appErrors "ummatcal/internal/pkg/errors"
)

type stubDailyService struct {
	settings entity.DailySettings
	err      error
	gotReq   dto.DailySettingsRequest
}

func (s *stubDailyService) Settings(ctx context.Context) (entity.DailySettings, error) {
	return s.settings, s.err
}

func (s *stubDailyService) UpdateSettings(ctx context.Context, req dto.DailySettingsRequest) (entity.DailySettings, error) {
	s.gotReq = req
	if s.err != nil {
		return entity.DailySettings{}, s.err
	}
	return entity.DailySettings{Enabled: req.Enabled, Hour: req.Hour, Minute: req.Minute}, nil
}

func (s *stubDailyService) Refresh(ctx context.Context) error { return s.err }

func TestGetDailyReturnsSettings(t *testing.T) {
	svc := &stubDailyService{settings: entity.DailySettings{Enabled: true, Hour: 7, Minute: 30}}
	h := NewSettingsHandler(svc, testLogger{})

	rec := doRequest(t, http.MethodGet, "/api/settings/daily", "", h.GetDaily, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var got dto.DailySettingsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.True(t, got.Enabled)
	require.Equal(t, 7, got.Hour)
	require.Equal(t, 30, got.Minute)
}

func TestPutDailyUpdatesSettings(t *testing.T) {
	svc := &stubDailyService{}
	h := NewSettingsHandler(svc, testLogger{})

	body := `{"isEnabled":false,"hour":21,"minute":15}`
	rec := doRequest(t, http.MethodPut, "/api/settings/daily", body, h.PutDaily, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, dto.DailySettingsRequest{Enabled: false, Hour: 21, Minute: 15}, svc.gotReq)
}

func TestPutDailyValidationErrorMapsToBadRequest(t *testing.T) {
	svc := &stubDailyService{err: appErrors.ErrValidation}
	h := NewSettingsHandler(svc, testLogger{})

	body := `{"isEnabled":true,"hour":24,"minute":0}`
	rec := doRequest(t, http.MethodPut, "/api/settings/daily", body, h.PutDaily, nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}
