// Package chat implements the Slack side of the bot: sending, deleting and
// recognizing schedule announcements in the target channel.
package chat

import (
	"context"
	"fmt"
	"time"

	"github.com/diegoclair/slack-agenda-bot/internal/domain"
	"github.com/diegoclair/slack-agenda-bot/internal/domain/contract"
	"github.com/diegoclair/slack-agenda-bot/internal/domain/entity"
	"github.com/slack-go/slack"
)

// slackAPI is the subset of the Slack client this adapter uses.
type slackAPI interface {
	PostMessageContext(ctx context.Context, channelID string, options ...slack.MsgOption) (string, string, error)
	DeleteMessageContext(ctx context.Context, channel, messageTimestamp string) (string, string, error)
	GetConversationHistoryContext(ctx context.Context, params *slack.GetConversationHistoryParameters) (*slack.GetConversationHistoryResponse, error)
}

type Client struct {
	api slackAPI
}

func New(api *slack.Client) *Client {
	return &Client{api: api}
}

// marker returns the metadata stamped on every message the bot sends, so the
// history scan can recognize them exactly instead of matching on text.
func marker() slack.MsgOption {
	return slack.MsgOptionMetadata(slack.SlackMetadata{
		EventType: domain.ScheduleEventType,
	})
}

func (c *Client) SendText(ctx context.Context, channelID, text string) (string, error) {
	_, messageID, err := c.api.PostMessageContext(ctx, channelID,
		slack.MsgOptionText(text, false),
		marker(),
	)
	if err != nil {
		return "", fmt.Errorf("failed to send message: %w", err)
	}
	return messageID, nil
}

func (c *Client) PostSchedule(ctx context.Context, channelID string, date time.Time, courses []entity.Course) (string, error) {
	blocks := BuildScheduleBlocks(date, courses)

	_, messageID, err := c.api.PostMessageContext(ctx, channelID,
		slack.MsgOptionText(fmt.Sprintf("Planning du %s", date.Format("02/01/2006")), false),
		slack.MsgOptionBlocks(blocks...),
		marker(),
	)
	if err != nil {
		return "", fmt.Errorf("failed to post schedule: %w", err)
	}
	return messageID, nil
}

func (c *Client) DeleteMessage(ctx context.Context, channelID, messageID string) error {
	_, _, err := c.api.DeleteMessageContext(ctx, channelID, messageID)
	if err != nil {
		// Already gone is fine.
		if err.Error() == "message_not_found" {
			return nil
		}
		return fmt.Errorf("failed to delete message %s: %w", messageID, err)
	}
	return nil
}

func (c *Client) GetMessage(ctx context.Context, channelID, messageID string) (bool, error) {
	resp, err := c.api.GetConversationHistoryContext(ctx, &slack.GetConversationHistoryParameters{
		ChannelID: channelID,
		Latest:    messageID,
		Oldest:    messageID,
		Inclusive: true,
		Limit:     1,
	})
	if err != nil {
		return false, fmt.Errorf("failed to fetch message %s: %w", messageID, err)
	}

	for _, msg := range resp.Messages {
		if msg.Timestamp == messageID {
			return true, nil
		}
	}
	return false, nil
}

func (c *Client) ListScheduleMessages(ctx context.Context, channelID string, limit int) ([]string, error) {
	resp, err := c.api.GetConversationHistoryContext(ctx, &slack.GetConversationHistoryParameters{
		ChannelID:          channelID,
		Limit:              limit,
		IncludeAllMetadata: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch channel history: %w", err)
	}

	var messageIDs []string
	for _, msg := range resp.Messages {
		if msg.Metadata.EventType == domain.ScheduleEventType {
			messageIDs = append(messageIDs, msg.Timestamp)
		}
	}
	return messageIDs, nil
}

// compile-time interface check
var _ contract.ChatClient = (*Client)(nil)
