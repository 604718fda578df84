package entity

// DefaultSoundID is the canonical sound used when a reminder does not
// pick one explicitly.
const DefaultSoundID = "default"

// Sound is one entry of the fixed notification sound catalogue. File is
// the alarm asset bound to the sound's delivery channel.
type Sound struct {
	ID   string
	Name string
	File string
}

var soundCatalogue = []Sound{
	{ID: DefaultSoundID, Name: "Classic Alarm", File: "custom_alarm_1.ogg"},
	{ID: "digital", Name: "Digital Watch", File: "digital_watch_alarm_long.ogg"},
	{ID: "mechanical", Name: "Morning Clock", File: "custom_morning_clock.ogg"},
	{ID: "bell", Name: "Bell", File: "custom_classic_alarm.ogg"},
	{ID: "spaceship", Name: "Spaceship", File: "custom_vintage_warning.ogg"},
	{ID: "melody", Name: "Melody", File: "custom_hall_alert.ogg"},
	{ID: "soft_chime", Name: "Soft Chime", File: "custom_alert_alarm.ogg"},
}

// Sounds returns the full sound catalogue.
func Sounds() []Sound {
	out := make([]Sound, len(soundCatalogue))
	copy(out, soundCatalogue)
	return out
}

// SoundByID looks up a sound in the catalogue.
func SoundByID(id string) (Sound, bool) {
	for _, s := range soundCatalogue {
		if s.ID == id {
			return s, true
		}
	}
	return Sound{}, false
}
