package dto

import "ummatcal/internal/domain/entity"

// DailySettingsRequest updates the daily digest configuration.
type DailySettingsRequest struct {
	Enabled bool `json:"isEnabled"`
	Hour    int  `json:"hour"`
	Minute  int  `json:"minute"`
}

// DailySettingsResponse reports the daily digest configuration.
type DailySettingsResponse struct {
	Enabled bool `json:"isEnabled"`
	Hour    int  `json:"hour"`
	Minute  int  `json:"minute"`
}

// ToDailySettingsResponse converts the entity to its DTO.
func ToDailySettingsResponse(s entity.DailySettings) DailySettingsResponse {
	return DailySettingsResponse{Enabled: s.Enabled, Hour: s.Hour, Minute: s.Minute}
}
