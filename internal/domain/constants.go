package domain

// Default configuration values
const (
	DefaultSlotDurationMinutes = 30
	DefaultTimezone            = "UTC"
)

// Business validation constants
const (
	MinSlotDurationMinutes = 5
	MaxSlotDurationMinutes = 240
	MaxNotesLength         = 1000
	MaxAbsenceReasonLength = 255
	MaxRulesPerSchedule    = 7 * 6
)

// Time format constants
const (
	TimeFormat     = "15:04"            // HH:MM
	DateFormat     = "2006-01-02"       // YYYY-MM-DD
	DateTimeFormat = "2006-01-02T15:04" // local wall-clock date-time without offset
)
