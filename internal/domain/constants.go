package domain

// Default booking policy values
const (
	DefaultOpenTime              = "09:00"
	DefaultCloseTime             = "18:00"
	DefaultLessonDurationMinutes = 60
)

// Business validation constants
const (
	MinLessonDurationMinutes = 15
	MaxLessonDurationMinutes = 240
	MaxNotesLength           = 500
	MinutesPerHour           = 60
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)
