// Package nhl defines the subject-record model shared by the stats provider
// client and the reply renderer. Leaf stat fields are pointers: the upstream
// payload omits them freely and a missing value renders as a blank cell,
// not a zero
package nhl

// LeagueID is the league identifier season entries must carry to qualify
// for the reply table
const LeagueID = 133

// Position is a player's primary position
type Position struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// Team identifies the club attached to a season entry or a player
type Team struct {
	Name            string `json:"name"`
	Abbreviation    string `json:"abbreviation"`
	OfficialSiteURL string `json:"officialSiteUrl"`
}

// League identifies the league a season entry was played in.
// ID is a pointer: junior/European entries often omit it
type League struct {
	ID   *int   `json:"id"`
	Name string `json:"name"`
}

// Stat holds the per-season (or career) counting stats.
// Skater and goalie fields share one shape; the renderer picks which to show
type Stat struct {
	Goals              *int     `json:"goals"`
	Assists            *int     `json:"assists"`
	Points             *int     `json:"points"`
	PIM                *int     `json:"pim"`
	FaceOffPct         *float64 `json:"faceOffPct"`
	Games              *int     `json:"games"`
	SavePercentage     *float64 `json:"savePercentage"`
	GoalAgainstAverage *float64 `json:"goalAgainstAverage"`
	Shutouts           *int     `json:"shutouts"`
	Wins               *int     `json:"wins"`
}

// Split is one season entry (or the career aggregate) for a player
type Split struct {
	Season string  `json:"season"`
	League *League `json:"league"`
	Team   *Team   `json:"team"`
	Stat   *Stat   `json:"stat"`
}

// Player is the resolved subject record the renderer consumes.
// Seasons are ordered oldest to newest, as served upstream
type Player struct {
	FullName        string
	PrimaryNumber   string
	PrimaryPosition Position
	CurrentTeam     *Team
	Seasons         []Split
	Career          *Split
}

// IsGoalie reports whether the goalie table variant applies
func (p *Player) IsGoalie() bool { return p.PrimaryPosition.Code == "G" }

// NHLSeason reports whether the split carries the qualifying league id
func (s *Split) NHLSeason() bool {
	return s.League != nil && s.League.ID != nil && *s.League.ID == LeagueID
}
