package preset

func hour(h int) *int { return &h }

// BuiltIn returns the predefined rehearsal profiles.
func BuiltIn() map[string]Preset {
	return map[string]Preset{
		"quick-check": {
			Name:          "quick-check",
			Description:   "One severe hour in fast time to see a burst-prone pace.",
			Severity:      "severe",
			DurationHours: 1,
		},
		"workday": {
			Name:          "workday",
			Description:   "A moderate office day from 09:00.",
			Severity:      "moderate",
			DurationHours: 8,
			StartHour:     hour(9),
		},
		"calm-day": {
			Name:          "calm-day",
			Description:   "A full mild day from 08:00.",
			Severity:      "mild",
			DurationHours: 24,
			StartHour:     hour(8),
		},
		"flare-day": {
			Name:          "flare-day",
			Description:   "A full severe day from 08:00, crossing the night.",
			Severity:      "severe",
			DurationHours: 24,
			StartHour:     hour(8),
		},
		"evening-rehearsal": {
			Name:          "evening-rehearsal",
			Description:   "Four moderate hours with live alerts.",
			Severity:      "moderate",
			DurationHours: 4,
			Realtime:      true,
		},
	}
}
