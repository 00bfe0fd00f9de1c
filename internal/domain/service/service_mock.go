package service

import (
	"testing"
	"time"

	"github.com/diegoclair/slack-agenda-bot/mocks"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type allMocks struct {
	mockScheduleRepo *mocks.MockScheduleRepo
	mockAgendaClient *mocks.MockAgendaClient
	mockChatClient   *mocks.MockChatClient
}

func newServiceTestMock(t *testing.T) (m allMocks, ctrl *gomock.Controller) {
	t.Helper()

	ctrl = gomock.NewController(t)

	m = allMocks{
		mockScheduleRepo: mocks.NewMockScheduleRepo(ctrl),
		mockAgendaClient: mocks.NewMockAgendaClient(ctrl),
		mockChatClient:   mocks.NewMockChatClient(ctrl),
	}

	return
}

// newTestReconciler builds a reconciler pinned to a fixed clock so window
// selection is deterministic in tests.
func newTestReconciler(t *testing.T, m allMocks, channelID string, now time.Time) *reconcilerService {
	t.Helper()

	loc := now.Location()
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)

	rec := newReconciler(
		m.mockScheduleRepo,
		m.mockAgendaClient,
		m.mockChatClient,
		channelID,
		loc,
		15,
		func() time.Time { return now },
		log.WithField("component", "reconciler"),
	)
	require.NotNil(t, rec)

	return rec
}
