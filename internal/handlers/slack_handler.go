package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/diegoclair/slack-agenda-bot/internal/chat"
	"github.com/diegoclair/slack-agenda-bot/internal/domain/contract"
	slackcmd "github.com/diegoclair/slack-agenda-bot/internal/slack"
	"github.com/sirupsen/logrus"
	"github.com/slack-go/slack"
)

// SlackHandler serves the on-demand agenda query. It is read-only and
// stateless: the reconciler and its stored state are never involved.
type SlackHandler struct {
	queryService  contract.AgendaQueryService
	parser        *slackcmd.Parser
	signingSecret string
	loc           *time.Location
	now           func() time.Time
	log           *logrus.Entry
}

func New(queryService contract.AgendaQueryService, parser *slackcmd.Parser, signingSecret string, loc *time.Location, log *logrus.Logger) *SlackHandler {
	return &SlackHandler{
		queryService:  queryService,
		parser:        parser,
		signingSecret: signingSecret,
		loc:           loc,
		now:           time.Now,
		log:           log.WithField("component", "handlers"),
	}
}

func (h *SlackHandler) HandleSlashCommand(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	r.Body = io.NopCloser(bytes.NewBuffer(body))

	// Verify Slack signature
	verifier, err := slack.NewSecretsVerifier(r.Header, h.signingSecret)
	if err != nil {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	if _, err := verifier.Write(body); err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	if err := verifier.Ensure(); err != nil {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	s, err := slack.SlashCommandParse(r)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	cmd, err := h.parser.Parse(s.Text)
	if err != nil {
		h.respondEphemeral(w, "❌ "+err.Error()+"\n\n"+h.parser.GetHelpText())
		return
	}

	if cmd.Type == slackcmd.CmdHelp {
		h.respondEphemeral(w, h.parser.GetHelpText())
		return
	}

	date := h.now().In(h.loc)
	if cmd.Type == slackcmd.CmdTomorrow {
		date = date.AddDate(0, 0, 1)
	}

	courses, err := h.queryService.CoursesForDay(r.Context(), date)
	if err != nil {
		h.log.WithError(err).Error("On-demand agenda query failed")
		h.respondEphemeral(w, "❌ Impossible de récupérer le planning. Réessaie plus tard.")
		return
	}

	response := &slack.Msg{
		ResponseType: slack.ResponseTypeInChannel,
		Blocks:       slack.Blocks{BlockSet: chat.BuildScheduleBlocks(date, courses)},
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

func (h *SlackHandler) respondEphemeral(w http.ResponseWriter, text string) {
	response := &slack.Msg{
		ResponseType: slack.ResponseTypeEphemeral,
		Text:         text,
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}
