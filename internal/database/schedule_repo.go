package database

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/diegoclair/slack-agenda-bot/internal/domain/contract"
	"github.com/diegoclair/slack-agenda-bot/internal/domain/entity"
)

// scheduleRepository persists the single "posted schedule" record in a
// one-row table. Every save replaces the whole row.
type scheduleRepository struct {
	db dbConn
}

func NewScheduleRepository(db *DB) contract.ScheduleRepo {
	return &scheduleRepository{db: db.conn}
}

func newScheduleRepo(db dbConn) *scheduleRepository {
	return &scheduleRepository{db: db}
}

func (r *scheduleRepository) Load() (*entity.ScheduleState, error) {
	state := &entity.ScheduleState{}
	query := `
		SELECT date, courses, message_id, channel_id, lead_message_id
		FROM schedule_state
		WHERE id = 1
	`

	var coursesJSON string
	err := r.db.QueryRow(query).Scan(
		&state.Date,
		&coursesJSON,
		&state.MessageID,
		&state.ChannelID,
		&state.LeadMessageID,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load schedule state: %w", err)
	}

	if err := json.Unmarshal([]byte(coursesJSON), &state.Courses); err != nil {
		return nil, fmt.Errorf("failed to decode stored courses: %w", err)
	}

	return state, nil
}

func (r *scheduleRepository) Save(state *entity.ScheduleState) error {
	query := `
		INSERT INTO schedule_state (id, date, courses, message_id, channel_id, lead_message_id, updated_at)
		VALUES (1, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			date = excluded.date,
			courses = excluded.courses,
			message_id = excluded.message_id,
			channel_id = excluded.channel_id,
			lead_message_id = excluded.lead_message_id,
			updated_at = excluded.updated_at
	`

	courses := state.Courses
	if courses == nil {
		courses = []entity.Course{}
	}
	coursesJSON, err := json.Marshal(courses)
	if err != nil {
		return fmt.Errorf("failed to marshal courses: %w", err)
	}

	_, err = r.db.Exec(query,
		state.Date,
		string(coursesJSON),
		state.MessageID,
		state.ChannelID,
		state.LeadMessageID,
		time.Now(),
	)
	if err != nil {
		return fmt.Errorf("failed to save schedule state: %w", err)
	}

	return nil
}
