package service

import (
	"context"
	"testing"
	"time"

	"github.com/diegoclair/slack-agenda-bot/internal/domain/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const testChannelID = "C0AGENDA01"

var (
	courseGo = entity.Course{
		Name:     "Go avancé",
		StartTS:  1760947200000,
		EndTS:    1760958000000,
		Teacher:  "Alice Martin",
		Type:     "CM",
		Modality: "Présentiel",
		Rooms:    []entity.Room{{Name: "B402", Campus: "Paris"}},
	}
	courseSQL = entity.Course{
		Name:     "Bases de données",
		StartTS:  1760961600000,
		EndTS:    1760972400000,
		Teacher:  "Bob Durand",
		Type:     "TD",
		Modality: "Présentiel",
		Rooms:    []entity.Room{{Name: "A101", Campus: "Paris"}},
	}
)

// 08:00 local: morning window (reconcile today).
func morningClock() time.Time {
	return time.Date(2026, 3, 2, 8, 0, 0, 0, time.FixedZone("CET", 3600))
}

// 18:00 local: evening window (post tomorrow).
func eveningClock() time.Time {
	return time.Date(2026, 3, 2, 18, 0, 0, 0, time.FixedZone("CET", 3600))
}

func Test_reconcilerService_RunTick_Morning(t *testing.T) {
	today := "2026-03-02"

	tests := []struct {
		name        string
		buildMock   func(m allMocks)
		wantOutcome TickOutcome
		wantErr     bool
	}{
		{
			name: "Should do nothing when no state is stored",
			buildMock: func(m allMocks) {
				m.mockAgendaClient.EXPECT().
					FetchAgenda(gomock.Any(), gomock.Any(), gomock.Any()).
					Return([]entity.Course{courseGo}, nil).Times(1)

				m.mockScheduleRepo.EXPECT().Load().Return(nil, nil).Times(1)
				// No sends, no deletes, no saves.
			},
			wantOutcome: OutcomeNoAction,
		},
		{
			name: "Should do nothing when stored state is for another date",
			buildMock: func(m allMocks) {
				m.mockAgendaClient.EXPECT().
					FetchAgenda(gomock.Any(), gomock.Any(), gomock.Any()).
					Return([]entity.Course{courseGo}, nil).Times(1)

				m.mockScheduleRepo.EXPECT().Load().Return(&entity.ScheduleState{
					Date:      "2026-03-01",
					Courses:   []entity.Course{courseGo},
					MessageID: "111.222",
					ChannelID: testChannelID,
				}, nil).Times(1)
			},
			wantOutcome: OutcomeNoAction,
		},
		{
			name: "Should detect no change when courses match exactly",
			buildMock: func(m allMocks) {
				m.mockAgendaClient.EXPECT().
					FetchAgenda(gomock.Any(), gomock.Any(), gomock.Any()).
					Return([]entity.Course{courseGo, courseSQL}, nil).Times(1)

				m.mockScheduleRepo.EXPECT().Load().Return(&entity.ScheduleState{
					Date:      today,
					Courses:   []entity.Course{courseGo, courseSQL},
					MessageID: "111.222",
					ChannelID: testChannelID,
				}, nil).Times(1)
			},
			wantOutcome: OutcomeNoChange,
		},
		{
			name: "Should repost when a room changes",
			buildMock: func(m allMocks) {
				changed := courseSQL
				changed.Rooms = []entity.Room{{Name: "C305", Campus: "Paris"}}

				m.mockAgendaClient.EXPECT().
					FetchAgenda(gomock.Any(), gomock.Any(), gomock.Any()).
					Return([]entity.Course{courseGo, changed}, nil).Times(1)

				m.mockScheduleRepo.EXPECT().Load().Return(&entity.ScheduleState{
					Date:          today,
					Courses:       []entity.Course{courseGo, courseSQL},
					MessageID:     "111.222",
					ChannelID:     testChannelID,
					LeadMessageID: "111.111",
				}, nil).Times(1)

				m.mockChatClient.EXPECT().
					GetMessage(gomock.Any(), testChannelID, "111.222").
					Return(true, nil).Times(1)
				m.mockChatClient.EXPECT().
					DeleteMessage(gomock.Any(), testChannelID, "111.222").
					Return(nil).Times(1)
				m.mockChatClient.EXPECT().
					GetMessage(gomock.Any(), testChannelID, "111.111").
					Return(true, nil).Times(1)
				m.mockChatClient.EXPECT().
					DeleteMessage(gomock.Any(), testChannelID, "111.111").
					Return(nil).Times(1)

				m.mockChatClient.EXPECT().
					ListScheduleMessages(gomock.Any(), testChannelID, historyScanLimit).
					Return(nil, nil).Times(1)

				m.mockChatClient.EXPECT().
					SendText(gomock.Any(), testChannelID, morningLeadText).
					Return("333.111", nil).Times(1)
				m.mockChatClient.EXPECT().
					PostSchedule(gomock.Any(), testChannelID, gomock.Any(), []entity.Course{courseGo, changed}).
					Return("333.222", nil).Times(1)

				m.mockScheduleRepo.EXPECT().
					Save(gomock.Any()).
					DoAndReturn(func(state *entity.ScheduleState) error {
						require.Equal(t, today, state.Date)
						require.Equal(t, []entity.Course{courseGo, changed}, state.Courses)
						require.Equal(t, "333.222", state.MessageID)
						require.Equal(t, "333.111", state.LeadMessageID)
						require.Equal(t, testChannelID, state.ChannelID)
						return nil
					}).Times(1)
			},
			wantOutcome: OutcomeReposted,
		},
		{
			name: "Should record empty day without posting when courses clear out",
			buildMock: func(m allMocks) {
				m.mockAgendaClient.EXPECT().
					FetchAgenda(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil, nil).Times(1)

				m.mockScheduleRepo.EXPECT().Load().Return(&entity.ScheduleState{
					Date:      today,
					Courses:   []entity.Course{courseGo},
					MessageID: "111.222",
					ChannelID: testChannelID,
				}, nil).Times(1)

				m.mockChatClient.EXPECT().
					GetMessage(gomock.Any(), testChannelID, "111.222").
					Return(true, nil).Times(1)
				m.mockChatClient.EXPECT().
					DeleteMessage(gomock.Any(), testChannelID, "111.222").
					Return(nil).Times(1)

				m.mockChatClient.EXPECT().
					ListScheduleMessages(gomock.Any(), testChannelID, historyScanLimit).
					Return(nil, nil).Times(1)

				m.mockScheduleRepo.EXPECT().
					Save(gomock.Any()).
					DoAndReturn(func(state *entity.ScheduleState) error {
						require.Equal(t, today, state.Date)
						require.Empty(t, state.Courses)
						require.Empty(t, state.MessageID)
						require.Empty(t, state.LeadMessageID)
						return nil
					}).Times(1)
			},
			wantOutcome: OutcomeSkippedEmpty,
		},
		{
			name: "Should stay quiet when day is still empty",
			buildMock: func(m allMocks) {
				m.mockAgendaClient.EXPECT().
					FetchAgenda(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil, nil).Times(1)

				m.mockScheduleRepo.EXPECT().Load().Return(&entity.ScheduleState{
					Date:      today,
					Courses:   []entity.Course{},
					ChannelID: testChannelID,
				}, nil).Times(1)
			},
			wantOutcome: OutcomeNoChange,
		},
		{
			name: "Should tolerate stored message already gone",
			buildMock: func(m allMocks) {
				m.mockAgendaClient.EXPECT().
					FetchAgenda(gomock.Any(), gomock.Any(), gomock.Any()).
					Return([]entity.Course{courseSQL}, nil).Times(1)

				m.mockScheduleRepo.EXPECT().Load().Return(&entity.ScheduleState{
					Date:      today,
					Courses:   []entity.Course{courseGo},
					MessageID: "111.222",
					ChannelID: testChannelID,
				}, nil).Times(1)

				// Message no longer exists: no delete attempt, no failure.
				m.mockChatClient.EXPECT().
					GetMessage(gomock.Any(), testChannelID, "111.222").
					Return(false, nil).Times(1)

				m.mockChatClient.EXPECT().
					ListScheduleMessages(gomock.Any(), testChannelID, historyScanLimit).
					Return(nil, nil).Times(1)

				m.mockChatClient.EXPECT().
					SendText(gomock.Any(), testChannelID, morningLeadText).
					Return("444.111", nil).Times(1)
				m.mockChatClient.EXPECT().
					PostSchedule(gomock.Any(), testChannelID, gomock.Any(), []entity.Course{courseSQL}).
					Return("444.222", nil).Times(1)

				m.mockScheduleRepo.EXPECT().Save(gomock.Any()).Return(nil).Times(1)
			},
			wantOutcome: OutcomeReposted,
		},
		{
			name: "Should abort tick on fetch failure without touching state or channel",
			buildMock: func(m allMocks) {
				m.mockAgendaClient.EXPECT().
					FetchAgenda(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil, assert.AnError).Times(1)
			},
			wantOutcome: OutcomeNoAction,
			wantErr:     true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, ctrl := newServiceTestMock(t)
			defer ctrl.Finish()

			tt.buildMock(m)

			rec := newTestReconciler(t, m, testChannelID, morningClock())

			outcome, err := rec.RunTick(context.Background())
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tt.wantOutcome, outcome)
		})
	}
}

func Test_reconcilerService_RunTick_Evening(t *testing.T) {
	tomorrow := "2026-03-03"

	tests := []struct {
		name        string
		buildMock   func(m allMocks)
		wantOutcome TickOutcome
		wantErr     bool
	}{
		{
			name: "Should post tomorrow's schedule and persist state",
			buildMock: func(m allMocks) {
				m.mockAgendaClient.EXPECT().
					FetchAgenda(gomock.Any(), gomock.Any(), gomock.Any()).
					Return([]entity.Course{courseGo, courseSQL}, nil).Times(1)

				m.mockScheduleRepo.EXPECT().Load().Return(&entity.ScheduleState{
					Date:      "2026-03-02",
					Courses:   []entity.Course{courseGo},
					MessageID: "111.222",
					ChannelID: testChannelID,
				}, nil).Times(1)

				m.mockChatClient.EXPECT().
					GetMessage(gomock.Any(), testChannelID, "111.222").
					Return(true, nil).Times(1)
				m.mockChatClient.EXPECT().
					DeleteMessage(gomock.Any(), testChannelID, "111.222").
					Return(nil).Times(1)

				m.mockChatClient.EXPECT().
					ListScheduleMessages(gomock.Any(), testChannelID, historyScanLimit).
					Return(nil, nil).Times(1)

				m.mockChatClient.EXPECT().
					SendText(gomock.Any(), testChannelID, eveningLeadText).
					Return("555.111", nil).Times(1)
				m.mockChatClient.EXPECT().
					PostSchedule(gomock.Any(), testChannelID, gomock.Any(), []entity.Course{courseGo, courseSQL}).
					DoAndReturn(func(_ context.Context, _ string, date time.Time, _ []entity.Course) (string, error) {
						require.Equal(t, tomorrow, date.Format("2006-01-02"))
						return "555.222", nil
					}).Times(1)

				m.mockScheduleRepo.EXPECT().
					Save(gomock.Any()).
					DoAndReturn(func(state *entity.ScheduleState) error {
						require.Equal(t, tomorrow, state.Date)
						require.Equal(t, "555.222", state.MessageID)
						require.Equal(t, "555.111", state.LeadMessageID)
						return nil
					}).Times(1)
			},
			wantOutcome: OutcomePosted,
		},
		{
			name: "Should recover from lost state via history scan",
			buildMock: func(m allMocks) {
				m.mockAgendaClient.EXPECT().
					FetchAgenda(gomock.Any(), gomock.Any(), gomock.Any()).
					Return([]entity.Course{courseGo}, nil).Times(1)

				// Local disk wiped: no state at all.
				m.mockScheduleRepo.EXPECT().Load().Return(nil, nil).Times(1)

				// Old announcements are still in the channel.
				m.mockChatClient.EXPECT().
					ListScheduleMessages(gomock.Any(), testChannelID, historyScanLimit).
					Return([]string{"777.111", "777.222"}, nil).Times(1)
				m.mockChatClient.EXPECT().
					DeleteMessage(gomock.Any(), testChannelID, "777.111").
					Return(nil).Times(1)
				m.mockChatClient.EXPECT().
					DeleteMessage(gomock.Any(), testChannelID, "777.222").
					Return(nil).Times(1)

				m.mockChatClient.EXPECT().
					SendText(gomock.Any(), testChannelID, eveningLeadText).
					Return("888.111", nil).Times(1)
				m.mockChatClient.EXPECT().
					PostSchedule(gomock.Any(), testChannelID, gomock.Any(), []entity.Course{courseGo}).
					Return("888.222", nil).Times(1)

				m.mockScheduleRepo.EXPECT().Save(gomock.Any()).Return(nil).Times(1)
			},
			wantOutcome: OutcomePosted,
		},
		{
			name: "Should treat corrupt state as absent and still post",
			buildMock: func(m allMocks) {
				m.mockAgendaClient.EXPECT().
					FetchAgenda(gomock.Any(), gomock.Any(), gomock.Any()).
					Return([]entity.Course{courseGo}, nil).Times(1)

				m.mockScheduleRepo.EXPECT().Load().Return(nil, assert.AnError).Times(1)

				m.mockChatClient.EXPECT().
					ListScheduleMessages(gomock.Any(), testChannelID, historyScanLimit).
					Return(nil, nil).Times(1)

				m.mockChatClient.EXPECT().
					SendText(gomock.Any(), testChannelID, eveningLeadText).
					Return("999.111", nil).Times(1)
				m.mockChatClient.EXPECT().
					PostSchedule(gomock.Any(), testChannelID, gomock.Any(), []entity.Course{courseGo}).
					Return("999.222", nil).Times(1)

				m.mockScheduleRepo.EXPECT().Save(gomock.Any()).Return(nil).Times(1)
			},
			wantOutcome: OutcomePosted,
		},
		{
			name: "Should skip empty day but still record state",
			buildMock: func(m allMocks) {
				m.mockAgendaClient.EXPECT().
					FetchAgenda(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil, nil).Times(1)

				m.mockScheduleRepo.EXPECT().Load().Return(nil, nil).Times(1)

				m.mockChatClient.EXPECT().
					ListScheduleMessages(gomock.Any(), testChannelID, historyScanLimit).
					Return(nil, nil).Times(1)

				m.mockScheduleRepo.EXPECT().
					Save(gomock.Any()).
					DoAndReturn(func(state *entity.ScheduleState) error {
						require.Equal(t, tomorrow, state.Date)
						require.Empty(t, state.Courses)
						require.Empty(t, state.MessageID)
						return nil
					}).Times(1)
			},
			wantOutcome: OutcomeSkippedEmpty,
		},
		{
			name: "Should keep going when history cleanup fails",
			buildMock: func(m allMocks) {
				m.mockAgendaClient.EXPECT().
					FetchAgenda(gomock.Any(), gomock.Any(), gomock.Any()).
					Return([]entity.Course{courseGo}, nil).Times(1)

				m.mockScheduleRepo.EXPECT().Load().Return(nil, nil).Times(1)

				m.mockChatClient.EXPECT().
					ListScheduleMessages(gomock.Any(), testChannelID, historyScanLimit).
					Return(nil, assert.AnError).Times(1)

				m.mockChatClient.EXPECT().
					SendText(gomock.Any(), testChannelID, eveningLeadText).
					Return("121.111", nil).Times(1)
				m.mockChatClient.EXPECT().
					PostSchedule(gomock.Any(), testChannelID, gomock.Any(), []entity.Course{courseGo}).
					Return("121.222", nil).Times(1)

				m.mockScheduleRepo.EXPECT().Save(gomock.Any()).Return(nil).Times(1)
			},
			wantOutcome: OutcomePosted,
		},
		{
			name: "Should post without lead when lead send fails",
			buildMock: func(m allMocks) {
				m.mockAgendaClient.EXPECT().
					FetchAgenda(gomock.Any(), gomock.Any(), gomock.Any()).
					Return([]entity.Course{courseGo}, nil).Times(1)

				m.mockScheduleRepo.EXPECT().Load().Return(nil, nil).Times(1)

				m.mockChatClient.EXPECT().
					ListScheduleMessages(gomock.Any(), testChannelID, historyScanLimit).
					Return(nil, nil).Times(1)

				m.mockChatClient.EXPECT().
					SendText(gomock.Any(), testChannelID, eveningLeadText).
					Return("", assert.AnError).Times(1)
				m.mockChatClient.EXPECT().
					PostSchedule(gomock.Any(), testChannelID, gomock.Any(), []entity.Course{courseGo}).
					Return("131.222", nil).Times(1)

				m.mockScheduleRepo.EXPECT().
					Save(gomock.Any()).
					DoAndReturn(func(state *entity.ScheduleState) error {
						require.Equal(t, "131.222", state.MessageID)
						require.Empty(t, state.LeadMessageID)
						return nil
					}).Times(1)
			},
			wantOutcome: OutcomePosted,
		},
		{
			name: "Should abort without saving when summary post fails",
			buildMock: func(m allMocks) {
				m.mockAgendaClient.EXPECT().
					FetchAgenda(gomock.Any(), gomock.Any(), gomock.Any()).
					Return([]entity.Course{courseGo}, nil).Times(1)

				m.mockScheduleRepo.EXPECT().Load().Return(nil, nil).Times(1)

				m.mockChatClient.EXPECT().
					ListScheduleMessages(gomock.Any(), testChannelID, historyScanLimit).
					Return(nil, nil).Times(1)

				m.mockChatClient.EXPECT().
					SendText(gomock.Any(), testChannelID, eveningLeadText).
					Return("141.111", nil).Times(1)
				m.mockChatClient.EXPECT().
					PostSchedule(gomock.Any(), testChannelID, gomock.Any(), []entity.Course{courseGo}).
					Return("", assert.AnError).Times(1)
				// No Save: state must only record confirmed sends.
			},
			wantOutcome: OutcomeNoAction,
			wantErr:     true,
		},
		{
			name: "Should abort before any delete when fetch fails",
			buildMock: func(m allMocks) {
				m.mockAgendaClient.EXPECT().
					FetchAgenda(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil, assert.AnError).Times(1)
				// A transient fetch failure must never wipe a valid schedule.
			},
			wantOutcome: OutcomeNoAction,
			wantErr:     true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, ctrl := newServiceTestMock(t)
			defer ctrl.Finish()

			tt.buildMock(m)

			rec := newTestReconciler(t, m, testChannelID, eveningClock())

			outcome, err := rec.RunTick(context.Background())
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tt.wantOutcome, outcome)
		})
	}
}

func Test_reconcilerService_WindowSelection(t *testing.T) {
	// A tick just before the evening boundary reconciles today; at the
	// boundary it posts tomorrow. The boundary hour is configuration.
	m, ctrl := newServiceTestMock(t)
	defer ctrl.Finish()

	m.mockAgendaClient.EXPECT().
		FetchAgenda(gomock.Any(), gomock.Any(), gomock.Any()).
		Return([]entity.Course{courseGo}, nil).Times(1)
	m.mockScheduleRepo.EXPECT().Load().Return(nil, nil).Times(1)

	beforeBoundary := time.Date(2026, 3, 2, 14, 59, 0, 0, time.FixedZone("CET", 3600))
	rec := newTestReconciler(t, m, testChannelID, beforeBoundary)

	outcome, err := rec.RunTick(context.Background())
	require.NoError(t, err)
	assert.Equal(t, OutcomeNoAction, outcome, "pre-boundary tick must never post")
}
