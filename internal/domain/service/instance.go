package service

import (
	"time"

	"github.com/diegoclair/slack-agenda-bot/internal/domain/contract"
	"github.com/sirupsen/logrus"
)

type Instance struct {
	Reconciler *reconcilerService
	Query      *queryService
}

func NewInstance(
	repo contract.ScheduleRepo,
	agenda contract.AgendaClient,
	chat contract.ChatClient,
	channelID string,
	loc *time.Location,
	eveningStartHour int,
	log *logrus.Logger,
) *Instance {
	return &Instance{
		Reconciler: newReconciler(repo, agenda, chat, channelID, loc, eveningStartHour, time.Now, log.WithField("component", "reconciler")),
		Query:      newQuery(agenda, loc),
	}
}
