package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	perr "rinkbot/internal/platform/errors"
)

func TestResolveFirstMatchWins(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_, _ = w.Write([]byte(`{"suggestions":[
			"8470595|Brind'Amour|Rod|1|0|6' 1\"|200|Raleigh|NC|USA|1970-08-09|CAR|C|17|rod-brindamour",
			"8470596|Brindley|Rob|1|0|6' 0\"|190|x|x|USA|1990-01-01|BUF|C|22|rob-brindley"
		]}`))
	}))
	defer srv.Close()

	s := New(srv.Client(), Config{SuggestBase: srv.URL, StatsBase: srv.URL})
	id, err := s.Resolve(context.Background(), "rod", "brind'amour")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if id != "8470595" {
		t.Fatalf("id: %q", id)
	}
	// the query path uses the apostrophe-stripped token
	if !strings.HasSuffix(gotPath, "/brindamour/300") {
		t.Fatalf("query path: %q", gotPath)
	}
}

func TestResolveNoMatch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"suggestions":["1|Smith|John|...|john-smith"]}`))
	}))
	defer srv.Close()

	s := New(srv.Client(), Config{SuggestBase: srv.URL, StatsBase: srv.URL})
	_, err := s.Resolve(context.Background(), "rod", "brind'amour")
	if !perr.IsCode(err, perr.ErrorCodeUnresolved) {
		t.Fatalf("want Unresolved, got %v", err)
	}
}

func TestResolveTransientOnBadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	s := New(srv.Client(), Config{SuggestBase: srv.URL, StatsBase: srv.URL})
	_, err := s.Resolve(context.Background(), "rod", "brindamour")
	if !perr.IsCode(err, perr.ErrorCodeTransientFetch) {
		t.Fatalf("want TransientFetch, got %v", err)
	}
}

func TestResolveTransientOnTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	srv.Close() // kill it so the dial fails

	s := New(http.DefaultClient, Config{SuggestBase: srv.URL, StatsBase: srv.URL})
	_, err := s.Resolve(context.Background(), "rod", "brindamour")
	if !perr.IsCode(err, perr.ErrorCodeTransientFetch) {
		t.Fatalf("want TransientFetch, got %v", err)
	}
}

func TestResolveMalformedOnBadJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"suggestions": not json`))
	}))
	defer srv.Close()

	s := New(srv.Client(), Config{SuggestBase: srv.URL, StatsBase: srv.URL})
	_, err := s.Resolve(context.Background(), "rod", "brindamour")
	if !perr.IsCode(err, perr.ErrorCodeMalformedPayload) {
		t.Fatalf("want MalformedPayload, got %v", err)
	}
}

const statsBody = `{
  "people": [{
    "fullName": "Rod Brind'Amour",
    "primaryNumber": "17",
    "primaryPosition": {"code": "C", "name": "Center"},
    "currentTeam": {"name": "Carolina Hurricanes"},
    "stats": [
      {"type": {"displayName": "yearByYear"}, "splits": [
        {"season": "19891990", "league": {"id": 133}, "team": {"abbreviation": "STL", "officialSiteUrl": "http://blues.nhl.com"}, "stat": {"goals": 26, "assists": 35}},
        {"season": "19881989", "league": {"name": "Some Junior League"}, "team": {"abbreviation": "NDU"}, "stat": {"goals": 40}}
      ]},
      {"type": {"displayName": "careerRegularSeason"}, "splits": [
        {"stat": {"goals": 452, "assists": 732, "points": 1184}}
      ]}
    ]
  }]
}`

func TestFetchBuildsPlayer(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		_, _ = w.Write([]byte(statsBody))
	}))
	defer srv.Close()

	s := New(srv.Client(), Config{SuggestBase: srv.URL, StatsBase: srv.URL})
	p, err := s.Fetch(context.Background(), "8470595")
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}

	if p.FullName != "Rod Brind'Amour" || p.PrimaryPosition.Code != "C" {
		t.Fatalf("player header: %+v", p)
	}
	if len(p.Seasons) != 2 {
		t.Fatalf("seasons: %d", len(p.Seasons))
	}
	if !p.Seasons[0].NHLSeason() || p.Seasons[1].NHLSeason() {
		t.Fatalf("league qualification wrong")
	}
	if p.Career == nil || p.Career.Stat == nil || *p.Career.Stat.Goals != 452 {
		t.Fatalf("career: %+v", p.Career)
	}
	// leaf fields absent from the payload stay nil
	if p.Seasons[0].Stat.Points != nil {
		t.Fatalf("missing leaf should stay nil")
	}
	if !strings.Contains(gotQuery, "yearByYear") || !strings.Contains(gotQuery, "careerRegularSeason") {
		t.Fatalf("expand query: %q", gotQuery)
	}
}

func TestFetchMalformedPayloads(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{"no people", `{"people": []}`},
		{"no year by year", `{"people": [{"fullName": "X", "stats": [{"type": {"displayName": "careerRegularSeason"}, "splits": [{}]}]}]}`},
		{"no career", `{"people": [{"fullName": "X", "stats": [{"type": {"displayName": "yearByYear"}, "splits": [{}]}]}]}`},
		{"career with empty splits", `{"people": [{"fullName": "X", "stats": [{"type": {"displayName": "yearByYear"}, "splits": [{}]}, {"type": {"displayName": "careerRegularSeason"}, "splits": []}]}]}`},
	}
	for _, c := range cases {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(c.body))
		}))
		s := New(srv.Client(), Config{SuggestBase: srv.URL, StatsBase: srv.URL})
		_, err := s.Fetch(context.Background(), "1")
		srv.Close()
		if !perr.IsCode(err, perr.ErrorCodeMalformedPayload) {
			t.Fatalf("%s: want MalformedPayload, got %v", c.name, err)
		}
	}
}

func TestNewDefaults(t *testing.T) {
	s := New(nil, Config{})
	if s.http == nil {
		t.Fatalf("nil client should default")
	}
	if s.cfg.SuggestBase == "" || s.cfg.StatsBase == "" {
		t.Fatalf("bases should default: %+v", s.cfg)
	}
}
