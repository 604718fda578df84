package entity

// DailySettings configures the daily date digest notification.
type DailySettings struct {
	Enabled bool
	Hour    int
	Minute  int
}

// DefaultDailySettings returns the out-of-the-box digest configuration:
// enabled, delivered at 08:00.
func DefaultDailySettings() DailySettings {
	return DailySettings{Enabled: true, Hour: 8, Minute: 0}
}

// Valid reports whether the configured time of day is well-formed.
func (s DailySettings) Valid() bool {
	return s.Hour >= 0 && s.Hour <= 23 && s.Minute >= 0 && s.Minute <= 59
}
