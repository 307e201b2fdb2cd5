// Package render turns a resolved player record into the markdown reply body.
//
// Render is pure and deterministic: the same record and options always produce
// byte-identical output. Missing leaf stats become single-space cells so the
// table columns stay aligned; a season entry with no stat block is skipped
// without aborting the rest of the table
package render

import (
	"strconv"
	"strings"

	"rinkbot/internal/core/nhl"
)

// maxSeasonRows caps how many qualifying season entries the table shows
const maxSeasonRows = 5

// hoverMarker is the hidden structural prefix the subreddit stylesheet keys
// its hover-table styling on. It must match the stylesheet constant
const hoverMarker = "#####&#009;\n\n######&#009;\n\n####&#009;  \n"

const (
	skaterHeader = "Team|Season|Goals|Assists|Points|PIM|FO%|Games Played    \n--:|--:|--:|--:|--:|--:|--:|--:  \n"
	goalieHeader = "Team|Season|Save %|GAA|Shutouts|Wins|Games Played    \n--:|--:|--:|--:|--:|--:|--:  \n"
)

// Options carries the bits of the reply that are operator-specific
type Options struct {
	// FooterContact is the handle shown in the attribution footer, e.g. "/u/pacefalmd"
	FooterContact string
}

// Render formats the full reply: person line, hidden hover marker, the
// skater or goalie table with up to five NHL season rows oldest-to-newest,
// exactly one career row, and the attribution footer
func Render(p *nhl.Player, opts Options) string {
	var b strings.Builder

	b.WriteString(personLine(p))
	b.WriteString(hoverMarker)

	goalie := p.IsGoalie()
	if goalie {
		b.WriteString(goalieHeader)
	} else {
		b.WriteString(skaterHeader)
	}

	// newest first, keep up to maxSeasonRows qualifying slots; an NHL entry
	// with a missing stat block consumes its slot but emits no row
	rows := make([]string, 0, maxSeasonRows)
	slots := 0
	for i := len(p.Seasons) - 1; i >= 0 && slots < maxSeasonRows; i-- {
		s := &p.Seasons[i]
		if !s.NHLSeason() {
			continue
		}
		slots++
		if s.Stat == nil {
			continue
		}
		rows = append(rows, row(s, goalie))
	}

	// collected newest-to-oldest; emit oldest-to-newest
	for i := len(rows) - 1; i >= 0; i-- {
		b.WriteString(rows[i])
	}

	if c := p.Career; c != nil {
		career := nhl.Split{
			Season: "Career",
			Team:   &nhl.Team{Abbreviation: "NHL", OfficialSiteURL: "http://nhl.com"},
			Stat:   c.Stat,
		}
		b.WriteString(row(&career, goalie))
	}

	b.WriteString("\n\n")
	b.WriteString(footer(opts.FooterContact))
	return b.String()
}

// personLine is "{fullName} - {position} - {number} - {team}  \n" with
// blank-ish defaults for anything missing
func personLine(p *nhl.Player) string {
	team := "N/A"
	if p.CurrentTeam != nil && p.CurrentTeam.Name != "" {
		team = p.CurrentTeam.Name
	}
	return blankIfEmpty(p.FullName) + " - " +
		blankIfEmpty(p.PrimaryPosition.Name) + " - " +
		blankIfEmpty(p.PrimaryNumber) + " - " +
		team + "  \n"
}

// row emits one markdown table row for a season or career split
func row(s *nhl.Split, goalie bool) string {
	abbr, site := "NHL", "http://nhl.com"
	if s.Team != nil {
		if s.Team.Abbreviation != "" {
			abbr = s.Team.Abbreviation
		}
		if s.Team.OfficialSiteURL != "" {
			site = s.Team.OfficialSiteURL
		}
	}

	var st nhl.Stat
	if s.Stat != nil {
		st = *s.Stat
	}

	cells := []string{"[" + abbr + "](" + site + ")", blankIfEmpty(s.Season)}
	if goalie {
		cells = append(cells,
			fmtFloat(st.SavePercentage),
			fmtFloat(st.GoalAgainstAverage),
			fmtInt(st.Shutouts),
			fmtInt(st.Wins),
			fmtInt(st.Games),
		)
	} else {
		cells = append(cells,
			fmtInt(st.Goals),
			fmtInt(st.Assists),
			fmtInt(st.Points),
			fmtInt(st.PIM),
			fmtFloat(st.FaceOffPct)+"%",
			fmtInt(st.Games),
		)
	}
	return strings.Join(cells, "|") + "    \n"
}

func footer(contact string) string {
	if contact == "" {
		contact = "the operator"
	}
	return "^^^issues? ^^^contact ^^^" + contact
}

// fmtInt renders a missing value as a single blank so columns keep their width
func fmtInt(v *int) string {
	if v == nil {
		return " "
	}
	return strconv.Itoa(*v)
}

// fmtFloat uses the shortest exact representation, matching upstream values
// like 0.914 or 55.6 digit for digit
func fmtFloat(v *float64) string {
	if v == nil {
		return " "
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

func blankIfEmpty(s string) string {
	if s == "" {
		return " "
	}
	return s
}
