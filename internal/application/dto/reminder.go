package dto

import (
	"time"

	"ummatcal/internal/domain/entity"
)

// ReminderResponse is the DTO for sending reminder information to the
// client. Notification handles are scheduler-internal and not exposed.
type ReminderResponse struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Description   string    `json:"description,omitempty"`
	Date          time.Time `json:"date"`
	SnoozeMinutes int       `json:"snoozeMinutes"`
	SoundID       string    `json:"soundId"`
	Alerts        []string  `json:"alerts"`
	Expired       bool      `json:"expired"`
}

// ToReminderResponse converts an entity.Reminder to a ReminderResponse DTO.
func ToReminderResponse(r entity.Reminder, now time.Time) ReminderResponse {
	return ReminderResponse{
		ID:            r.ID,
		Title:         r.Title,
		Description:   r.Description,
		Date:          r.Date,
		SnoozeMinutes: r.SnoozeMinutes,
		SoundID:       r.SoundID,
		Alerts:        entity.AlertTags(r.Alerts),
		Expired:       r.IsExpired(now),
	}
}

// ToReminderResponseList converts a slice of entity.Reminder to DTOs.
func ToReminderResponseList(reminders []entity.Reminder, now time.Time) []ReminderResponse {
	list := make([]ReminderResponse, len(reminders))
	for i, r := range reminders {
		list[i] = ToReminderResponse(r, now)
	}
	return list
}

// ReminderInput is the DTO for creating or updating a reminder. Alerts
// use the tagged-string encoding; an empty list defaults to at-time.
type ReminderInput struct {
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	Date          time.Time `json:"date"`
	SnoozeMinutes int       `json:"snoozeMinutes"`
	SoundID       string    `json:"soundId"`
	Alerts        []string  `json:"alerts"`
}

// SoundResponse is one entry of the sound catalogue.
type SoundResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// ToSoundResponseList converts the sound catalogue to DTOs.
func ToSoundResponseList(sounds []entity.Sound) []SoundResponse {
	list := make([]SoundResponse, len(sounds))
	for i, s := range sounds {
		list[i] = SoundResponse{ID: s.ID, Name: s.Name}
	}
	return list
}
