package contract

import (
	"context"
	"time"

	"github.com/diegoclair/slack-agenda-bot/internal/domain/entity"
)

// AgendaQueryService is the read-only, stateless query surface used by the
// slash-command handler. It bypasses the reconciler entirely.
type AgendaQueryService interface {
	CoursesForDay(ctx context.Context, date time.Time) ([]entity.Course, error)
}
