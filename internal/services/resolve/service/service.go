// Package service implements the identity and record provider clients
package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"rinkbot/internal/core/nhl"
	"rinkbot/internal/core/summon"
	perr "rinkbot/internal/platform/errors"
	"rinkbot/internal/platform/logger"
)

const (
	suggestBaseDefault = "https://suggest.svc.nhl.com/svc/suggest/v1/minplayers"
	statsBaseDefault   = "https://statsapi.web.nhl.com/api/v1/people"
	suggestLimit       = 300

	yearByYearName = "yearByYear"
	careerName     = "careerRegularSeason"
)

// Config carries the provider endpoints
type Config struct {
	SuggestBase string
	StatsBase   string
}

// Service implements domain.IdentityPort and domain.RecordPort over the two
// upstream HTTP providers
type Service struct {
	http *http.Client
	cfg  Config
	log  logger.Logger
}

// New constructs a provider client. client may carry the process-wide timeout;
// nil means the default client
func New(client *http.Client, cfg Config) *Service {
	if client == nil {
		client = http.DefaultClient
	}
	if cfg.SuggestBase == "" {
		cfg.SuggestBase = suggestBaseDefault
	}
	if cfg.StatsBase == "" {
		cfg.StatsBase = statsBaseDefault
	}
	return &Service{
		http: client,
		cfg:  cfg,
		log:  *logger.Named("resolve"),
	}
}

// getJSON issues a GET and decodes the body, classifying transport and
// decode failures separately
func (s *Service) getJSON(ctx context.Context, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return perr.Wrapf(err, perr.ErrorCodeUnknown, "new request %s", url)
	}
	resp, err := s.http.Do(req)
	if err != nil {
		return perr.Wrapf(err, perr.ErrorCodeTransientFetch, "get %s", url)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return perr.TransientFetchf("get %s: status %d", url, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return perr.Wrapf(err, perr.ErrorCodeMalformedPayload, "decode %s", url)
	}
	return nil
}

// suggestPayload is the identity provider's envelope: each suggestion is a
// pipe-delimited record whose first field is the subject id and whose tail
// carries a "first-last" slug
type suggestPayload struct {
	Suggestions []string `json:"suggestions"`
}

// Resolve queries the suggest index with the normalized last-name token and
// returns the id of the first suggestion containing the compound match key.
// First match wins; there is no ranking beyond provider order
func (s *Service) Resolve(ctx context.Context, first, last string) (string, error) {
	query := summon.QueryToken(last)
	key := summon.MatchKey(first, last)
	s.log.Debug().Str("key", key).Msg("grabbing id")

	url := fmt.Sprintf("%s/%s/%d", s.cfg.SuggestBase, query, suggestLimit)
	var payload suggestPayload
	if err := s.getJSON(ctx, url, &payload); err != nil {
		return "", err
	}

	for _, sug := range payload.Suggestions {
		if !strings.Contains(strings.ToLower(sug), key) {
			continue
		}
		id, _, _ := strings.Cut(sug, "|")
		if id != "" {
			return id, nil
		}
	}
	return "", perr.Unresolvedf("no suggestion matched %q", key)
}

// statsPayload mirrors the record provider's envelope down to the split level
type statsPayload struct {
	People []struct {
		FullName        string       `json:"fullName"`
		PrimaryNumber   string       `json:"primaryNumber"`
		PrimaryPosition nhl.Position `json:"primaryPosition"`
		CurrentTeam     *nhl.Team    `json:"currentTeam"`
		Stats           []struct {
			Type struct {
				DisplayName string `json:"displayName"`
			} `json:"type"`
			Splits []nhl.Split `json:"splits"`
		} `json:"stats"`
	} `json:"people"`
}

// Fetch pulls the season-by-season and career record for a subject id.
// A payload missing its top-level structure (no person, no year-by-year
// series, no career split) is malformed and aborts the caller's run;
// missing leaf fields stay nil and render as blanks downstream
func (s *Service) Fetch(ctx context.Context, subjectID string) (*nhl.Player, error) {
	s.log.Debug().Str("subject", subjectID).Msg("getting player stats")

	url := fmt.Sprintf(
		"%s/%s?expand=person.stats&stats=%s,%s&expand=stats.team&site=en_nhl",
		s.cfg.StatsBase, subjectID, yearByYearName, careerName,
	)
	var payload statsPayload
	if err := s.getJSON(ctx, url, &payload); err != nil {
		return nil, err
	}

	if len(payload.People) == 0 {
		return nil, perr.MalformedPayloadf("subject %s: no people in payload", subjectID)
	}
	person := payload.People[0]

	p := &nhl.Player{
		FullName:        person.FullName,
		PrimaryNumber:   person.PrimaryNumber,
		PrimaryPosition: person.PrimaryPosition,
		CurrentTeam:     person.CurrentTeam,
	}
	for _, group := range person.Stats {
		switch group.Type.DisplayName {
		case yearByYearName:
			p.Seasons = group.Splits
		case careerName:
			if len(group.Splits) > 0 {
				split := group.Splits[0]
				p.Career = &split
			}
		}
	}
	if p.Seasons == nil {
		return nil, perr.MalformedPayloadf("subject %s: no year-by-year series", subjectID)
	}
	if p.Career == nil {
		return nil, perr.MalformedPayloadf("subject %s: no career aggregate", subjectID)
	}
	return p, nil
}
