package contract

import (
	"github.com/diegoclair/slack-agenda-bot/internal/domain/entity"
)

// ScheduleRepo defines the contract for the single-slot schedule state store.
// Only the reconciler reads or writes it, and never concurrently.
type ScheduleRepo interface {
	// Load returns the stored state, or nil when nothing was saved yet.
	// It errors only on an unreadable or corrupt storage medium.
	Load() (*entity.ScheduleState, error)

	// Save replaces the stored record wholesale. The write is durable
	// before Save returns.
	Save(state *entity.ScheduleState) error
}
