package service

import (
	"context"
	"fmt"
	"time"

	"github.com/diegoclair/slack-agenda-bot/internal/domain"
	"github.com/diegoclair/slack-agenda-bot/internal/domain/contract"
	"github.com/diegoclair/slack-agenda-bot/internal/domain/entity"
	"github.com/sirupsen/logrus"
)

// TickOutcome describes what a scheduler tick ended up doing.
type TickOutcome string

const (
	// OutcomeNoAction means there was no stored baseline to reconcile against.
	OutcomeNoAction TickOutcome = "no_action"
	// OutcomePosted means a fresh schedule was posted for the target date.
	OutcomePosted TickOutcome = "posted"
	// OutcomeNoChange means the live schedule still matches what was posted.
	OutcomeNoChange TickOutcome = "no_change"
	// OutcomeReposted means a change was detected and the message was replaced.
	OutcomeReposted TickOutcome = "reposted"
	// OutcomeSkippedEmpty means the target day has no relevant courses.
	OutcomeSkippedEmpty TickOutcome = "skipped_empty"
)

const (
	eveningLeadText = "🔔 *Rappel du planning de demain :*"
	morningLeadText = "🔔 *Mise à jour du planning d'aujourd'hui :* (changement détecté)"

	historyScanLimit = 20
)

type reconcilerService struct {
	repo      contract.ScheduleRepo
	agenda    contract.AgendaClient
	chat      contract.ChatClient
	channelID string
	loc       *time.Location

	// Ticks at or after this hour (in loc) target tomorrow; earlier ticks
	// reconcile today's already-posted schedule.
	eveningStartHour int

	now func() time.Time
	log *logrus.Entry
}

func newReconciler(
	repo contract.ScheduleRepo,
	agenda contract.AgendaClient,
	chat contract.ChatClient,
	channelID string,
	loc *time.Location,
	eveningStartHour int,
	now func() time.Time,
	log *logrus.Entry,
) *reconcilerService {
	if now == nil {
		now = time.Now
	}
	return &reconcilerService{
		repo:             repo,
		agenda:           agenda,
		chat:             chat,
		channelID:        channelID,
		loc:              loc,
		eveningStartHour: eveningStartHour,
		now:              now,
		log:              log,
	}
}

// RunTick executes one reconciliation pass. The window is derived from the
// current wall-clock time in the configured timezone: evening ticks start a
// fresh posting cycle for tomorrow, morning ticks only reconcile today's
// already-posted schedule.
//
// A returned error means the tick was aborted without changing persisted
// state; the next scheduled tick retries naturally.
func (s *reconcilerService) RunTick(ctx context.Context) (TickOutcome, error) {
	now := s.now().In(s.loc)

	if now.Hour() >= s.eveningStartHour {
		return s.runEveningTick(ctx, now)
	}
	return s.runMorningTick(ctx, now)
}

// runEveningTick unconditionally starts a fresh posting cycle for tomorrow.
func (s *reconcilerService) runEveningTick(ctx context.Context, now time.Time) (TickOutcome, error) {
	target := now.AddDate(0, 0, 1)
	dateStr := target.Format(domain.DateLayout)

	// Fetch before touching anything: a failed fetch must never wipe a
	// valid posted schedule.
	courses, err := s.coursesForDay(ctx, target)
	if err != nil {
		return OutcomeNoAction, fmt.Errorf("failed to fetch agenda for %s: %w", dateStr, err)
	}

	state, err := s.repo.Load()
	if err != nil {
		// Corrupt or unreadable state is treated as absent: the channel
		// itself is the fallback source of truth.
		s.log.WithError(err).Warn("Stored state unreadable, relying on history scan")
		state = nil
	}

	s.deleteStoredMessages(ctx, state)
	s.cleanupHistory(ctx)

	if len(courses) == 0 {
		s.log.WithField("date", dateStr).Info("No relevant courses, skipping announcement")
		if err := s.saveState(dateStr, courses, "", ""); err != nil {
			return OutcomeNoAction, err
		}
		return OutcomeSkippedEmpty, nil
	}

	leadID, msgID, err := s.postSchedule(ctx, target, courses, eveningLeadText)
	if err != nil {
		return OutcomeNoAction, err
	}

	if err := s.saveState(dateStr, courses, msgID, leadID); err != nil {
		return OutcomeNoAction, err
	}

	s.log.WithFields(logrus.Fields{"date": dateStr, "courses": len(courses)}).Info("Posted schedule")
	return OutcomePosted, nil
}

// runMorningTick reconciles today's posted schedule against the live agenda.
// It never creates a post where none existed: without a stored baseline for
// today there is nothing to compare, and reposting blindly would spam the
// channel.
func (s *reconcilerService) runMorningTick(ctx context.Context, now time.Time) (TickOutcome, error) {
	dateStr := now.Format(domain.DateLayout)

	courses, err := s.coursesForDay(ctx, now)
	if err != nil {
		return OutcomeNoAction, fmt.Errorf("failed to fetch agenda for %s: %w", dateStr, err)
	}

	state, err := s.repo.Load()
	if err != nil {
		s.log.WithError(err).Warn("Stored state unreadable, skipping reconciliation")
		state = nil
	}

	if state == nil || state.Date != dateStr {
		s.log.WithField("date", dateStr).Info("No stored baseline for today, nothing to reconcile")
		return OutcomeNoAction, nil
	}

	if entity.CoursesEqual(courses, state.Courses) {
		s.log.WithField("date", dateStr).Debug("Schedule unchanged")
		return OutcomeNoChange, nil
	}

	s.log.WithField("date", dateStr).Info("Schedule changed, replacing announcement")

	s.deleteStoredMessages(ctx, state)
	s.cleanupHistory(ctx)

	if len(courses) == 0 {
		if err := s.saveState(dateStr, courses, "", ""); err != nil {
			return OutcomeNoAction, err
		}
		return OutcomeSkippedEmpty, nil
	}

	leadID, msgID, err := s.postSchedule(ctx, now, courses, morningLeadText)
	if err != nil {
		return OutcomeNoAction, err
	}

	if err := s.saveState(dateStr, courses, msgID, leadID); err != nil {
		return OutcomeNoAction, err
	}

	return OutcomeReposted, nil
}

// coursesForDay fetches the raw agenda for the full 24-hour span of the given
// date and narrows it to relevant courses.
func (s *reconcilerService) coursesForDay(ctx context.Context, date time.Time) ([]entity.Course, error) {
	start := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, s.loc)
	end := time.Date(date.Year(), date.Month(), date.Day(), 23, 59, 59, 999000000, s.loc)

	raw, err := s.agenda.FetchAgenda(ctx, start, end)
	if err != nil {
		return nil, err
	}

	return RelevantCourses(raw), nil
}

// postSchedule sends the lead announcement followed by the formatted summary.
// A failed lead is logged and skipped: a summary without its lead beats total
// silence. A failed summary aborts the tick so no state records it.
func (s *reconcilerService) postSchedule(ctx context.Context, date time.Time, courses []entity.Course, leadText string) (leadID, msgID string, err error) {
	leadID, err = s.chat.SendText(ctx, s.channelID, leadText)
	if err != nil {
		s.log.WithError(err).Warn("Failed to send lead announcement, posting summary anyway")
		leadID = ""
	}

	msgID, err = s.chat.PostSchedule(ctx, s.channelID, date, courses)
	if err != nil {
		return "", "", fmt.Errorf("failed to post schedule message: %w", err)
	}

	return leadID, msgID, nil
}

// deleteStoredMessages removes the messages recorded in state, tolerating
// messages that are already gone.
func (s *reconcilerService) deleteStoredMessages(ctx context.Context, state *entity.ScheduleState) {
	if state == nil {
		return
	}

	for _, messageID := range []string{state.MessageID, state.LeadMessageID} {
		if messageID == "" {
			continue
		}

		found, err := s.chat.GetMessage(ctx, s.channelID, messageID)
		if err != nil {
			s.log.WithError(err).WithField("message_id", messageID).Warn("Failed to look up stored message")
			continue
		}
		if !found {
			continue
		}

		if err := s.chat.DeleteMessage(ctx, s.channelID, messageID); err != nil {
			s.log.WithError(err).WithField("message_id", messageID).Warn("Failed to delete stored message")
		}
	}
}

// cleanupHistory scans recent channel history and deletes any schedule
// announcement this bot posted earlier. This is the recovery path for state
// lost across restarts: the local disk is wiped on redeploys, the channel
// is not. Failures are logged and non-fatal.
func (s *reconcilerService) cleanupHistory(ctx context.Context) {
	messageIDs, err := s.chat.ListScheduleMessages(ctx, s.channelID, historyScanLimit)
	if err != nil {
		s.log.WithError(err).Warn("Failed to scan channel history for cleanup")
		return
	}

	for _, messageID := range messageIDs {
		if err := s.chat.DeleteMessage(ctx, s.channelID, messageID); err != nil {
			s.log.WithError(err).WithField("message_id", messageID).Warn("Failed to delete old announcement")
			continue
		}
		s.log.WithField("message_id", messageID).Debug("Deleted old announcement")
	}
}

func (s *reconcilerService) saveState(date string, courses []entity.Course, messageID, leadMessageID string) error {
	state := &entity.ScheduleState{
		Date:          date,
		Courses:       courses,
		MessageID:     messageID,
		ChannelID:     s.channelID,
		LeadMessageID: leadMessageID,
	}

	if err := s.repo.Save(state); err != nil {
		return fmt.Errorf("failed to save schedule state: %w", err)
	}

	return nil
}
