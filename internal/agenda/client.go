// Package agenda implements the MyGES (Kordis) agenda client.
//
// The portal uses an OAuth implicit grant: a basic-auth GET against the
// authorize endpoint answers with a redirect whose fragment carries the
// access token. The client logs in lazily and refreshes the token once when
// the API answers 401.
package agenda

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"time"

	"github.com/diegoclair/slack-agenda-bot/internal/domain/entity"
)

const (
	DefaultAuthURL   = "https://authentication.kordis.fr/oauth/authorize?response_type=token&client_id=skolae-app"
	DefaultAgendaURL = "https://api.kordis.fr/me/agenda"

	defaultTimeout = 15 * time.Second
)

// ErrAuth is returned on bad credentials or an unexpected response shape
// from the authentication endpoint.
var ErrAuth = errors.New("agenda authentication failed")

var accessTokenRe = regexp.MustCompile(`access_token=([^&]*)`)

type Config struct {
	Email    string
	Password string

	// AuthURL and AgendaURL default to the Kordis endpoints.
	AuthURL   string
	AgendaURL string

	Timeout time.Duration
}

type Client struct {
	email     string
	password  string
	authURL   string
	agendaURL string

	httpClient *http.Client
	token      string
}

func New(cfg Config) *Client {
	if cfg.AuthURL == "" {
		cfg.AuthURL = DefaultAuthURL
	}
	if cfg.AgendaURL == "" {
		cfg.AgendaURL = DefaultAgendaURL
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = defaultTimeout
	}

	return &Client{
		email:     cfg.Email,
		password:  cfg.Password,
		authURL:   cfg.AuthURL,
		agendaURL: cfg.AgendaURL,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
			// The token lives in the redirect Location header, so the
			// redirect must not be followed.
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
	}
}

// login obtains a fresh access token.
func (c *Client) login(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.authURL, nil)
	if err != nil {
		return fmt.Errorf("failed to build auth request: %w", err)
	}
	req.SetBasicAuth(c.email, c.password)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("auth request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusFound {
		return fmt.Errorf("%w: unexpected status %d", ErrAuth, resp.StatusCode)
	}

	match := accessTokenRe.FindStringSubmatch(resp.Header.Get("Location"))
	if match == nil {
		return fmt.Errorf("%w: no access token in redirect location", ErrAuth)
	}

	c.token = match[1]
	return nil
}

// FetchAgenda returns the raw course list for the given range. Failures are
// surfaced as errors so callers can tell an empty day from a failed fetch.
func (c *Client) FetchAgenda(ctx context.Context, start, end time.Time) ([]entity.Course, error) {
	if c.token == "" {
		if err := c.login(ctx); err != nil {
			return nil, err
		}
	}

	resp, err := c.fetchOnce(ctx, start, end)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode == http.StatusUnauthorized {
		// Token expired: re-authenticate once and retry.
		resp.Body.Close()
		if err := c.login(ctx); err != nil {
			return nil, err
		}
		resp, err = c.fetchOnce(ctx, start, end)
		if err != nil {
			return nil, err
		}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("agenda request failed with status %d", resp.StatusCode)
	}

	var body struct {
		Result []agendaItem `json:"result"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("failed to decode agenda response: %w", err)
	}

	courses := make([]entity.Course, 0, len(body.Result))
	for _, item := range body.Result {
		courses = append(courses, item.toCourse())
	}
	return courses, nil
}

func (c *Client) fetchOnce(ctx context.Context, start, end time.Time) (*http.Response, error) {
	url := fmt.Sprintf("%s?start=%d&end=%d", c.agendaURL, start.UnixMilli(), end.UnixMilli())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build agenda request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("agenda request failed: %w", err)
	}
	return resp, nil
}

// agendaItem mirrors the wire format of one agenda entry.
type agendaItem struct {
	Name      string `json:"name"`
	StartDate int64  `json:"start_date"`
	EndDate   int64  `json:"end_date"`
	Type      string `json:"type"`
	Modality  string `json:"modality"`
	Rooms     []struct {
		Name   string `json:"name"`
		Campus string `json:"campus"`
	} `json:"rooms"`
	Discipline struct {
		Teacher string `json:"teacher"`
	} `json:"discipline"`
}

func (i agendaItem) toCourse() entity.Course {
	course := entity.Course{
		Name:     i.Name,
		StartTS:  i.StartDate,
		EndTS:    i.EndDate,
		Teacher:  i.Discipline.Teacher,
		Type:     i.Type,
		Modality: i.Modality,
	}
	for _, r := range i.Rooms {
		course.Rooms = append(course.Rooms, entity.Room{Name: r.Name, Campus: r.Campus})
	}
	return course
}
