package domain

// DateLayout is the calendar-date format used in persisted state and logs.
const DateLayout = "2006-01-02"

// Course field values as returned by the MyGES agenda API.
const (
	// UnknownTeacher is the literal marker the API uses when no teacher is assigned.
	UnknownTeacher = "N/A"

	// TypeIndependentStudy marks unsupervised self-study slots ("Libre").
	// These are never shown to the user.
	TypeIndependentStudy = "Libre"

	// ModalityRemote marks remote/e-learning sessions.
	ModalityRemote = "Distanciel"
)

// ScheduleEventType is the message-metadata marker stamped on every schedule
// announcement the bot sends. The history-scan recovery path matches it
// exactly instead of guessing from message text.
const ScheduleEventType = "myges_schedule_announcement"

// DefaultTimezone is the timezone the daily ticks are evaluated in.
const DefaultTimezone = "Europe/Paris"
