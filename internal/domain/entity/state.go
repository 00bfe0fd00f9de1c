package entity

// ScheduleState is the single persisted record of what the bot last posted.
// It is a cache of "what we last confidently posted": the channel itself is
// the source of truth when state is lost, so every field here can be
// re-derived from the history-scan recovery path.
type ScheduleState struct {
	// Date is the calendar date the posted schedule refers to, in "2006-01-02" format.
	Date string

	// Courses is the exact filtered course list that was posted for Date,
	// kept verbatim for later deep comparison.
	Courses []Course

	// MessageID is the id of the live summary message.
	// Empty when no message was posted (empty day).
	MessageID string

	// ChannelID is the target channel.
	ChannelID string

	// LeadMessageID is the id of the plain-text announcement preceding the
	// summary, or empty if none was sent.
	LeadMessageID string
}
