package service

import (
	"context"
	"fmt"
	"time"

	"github.com/diegoclair/slack-agenda-bot/internal/domain"
	"github.com/diegoclair/slack-agenda-bot/internal/domain/contract"
	"github.com/diegoclair/slack-agenda-bot/internal/domain/entity"
)

// queryService answers on-demand agenda queries. It is stateless and
// read-only: it reuses the fetch+filter path but never touches the stored
// schedule state or the channel.
type queryService struct {
	agenda contract.AgendaClient
	loc    *time.Location
}

func newQuery(agenda contract.AgendaClient, loc *time.Location) *queryService {
	return &queryService{
		agenda: agenda,
		loc:    loc,
	}
}

// CoursesForDay returns the relevant courses for the full 24-hour span of the
// given date.
func (s *queryService) CoursesForDay(ctx context.Context, date time.Time) ([]entity.Course, error) {
	date = date.In(s.loc)
	start := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, s.loc)
	end := time.Date(date.Year(), date.Month(), date.Day(), 23, 59, 59, 999000000, s.loc)

	raw, err := s.agenda.FetchAgenda(ctx, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch agenda for %s: %w", date.Format(domain.DateLayout), err)
	}

	return RelevantCourses(raw), nil
}
