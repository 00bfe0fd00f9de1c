package contract

import (
	"context"
	"time"

	"github.com/diegoclair/slack-agenda-bot/internal/domain/entity"
)

// AgendaClient defines the contract for the school portal agenda source.
// Implementations handle authentication and token refresh transparently.
type AgendaClient interface {
	// FetchAgenda returns the raw course list for the given range.
	// A fetch failure is always surfaced as an error, never coerced to an
	// empty list, so callers can tell "no courses" from "fetch failed".
	FetchAgenda(ctx context.Context, start, end time.Time) ([]entity.Course, error)
}
