package contract

import (
	"context"
	"time"

	"github.com/diegoclair/slack-agenda-bot/internal/domain/entity"
)

// ChatClient defines the messaging operations the reconciler needs against
// its single channel. Message formatting lives behind this interface.
type ChatClient interface {
	// SendText posts a plain-text announcement and returns its message id.
	SendText(ctx context.Context, channelID, text string) (string, error)

	// PostSchedule posts the formatted schedule summary for the given date
	// and returns its message id.
	PostSchedule(ctx context.Context, channelID string, date time.Time, courses []entity.Course) (string, error)

	// DeleteMessage removes a message by id. Deleting a message that is
	// already gone is not an error.
	DeleteMessage(ctx context.Context, channelID, messageID string) error

	// GetMessage reports whether a message with the given id still exists.
	GetMessage(ctx context.Context, channelID, messageID string) (bool, error)

	// ListScheduleMessages scans the most recent channel history and returns
	// the ids of messages this bot posted as schedule announcements. Used to
	// clean up after state loss.
	ListScheduleMessages(ctx context.Context, channelID string, limit int) ([]string, error)
}
