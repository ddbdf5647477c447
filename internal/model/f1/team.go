package f1

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

var teamFields = []string{"name", "teamKey"}

const seasonSuffix = "_season"

// SeasonStats is the per-season block of a team index entry, stored under a
// "<year>_season" member.
type SeasonStats struct {
	Position *int     `json:"season_position"`
	Points   *float64 `json:"season_points"`
}

// Team is an entry of the team index. TeamKey is always derived from Name.
type Team struct {
	Name    string              `json:"name"`
	TeamKey string              `json:"teamKey"`
	Seasons map[int]SeasonStats `json:"-"`
	Extra   Extra               `json:"-"`
}

func (t *Team) UnmarshalJSON(data []byte) error {
	members, err := decodeMembers(data)
	if err != nil {
		return err
	}

	team := Team{
		Name:  strings.TrimSpace(memberString(members, "name")),
		Extra: extraMembers(members, teamFields...),
	}
	for name, raw := range members {
		year, ok := seasonYear(name)
		if !ok {
			continue
		}
		stats, ok := decodeSeasonStats(raw)
		if !ok {
			// A malformed season block reads as "no stats".
			continue
		}
		if team.Seasons == nil {
			team.Seasons = make(map[int]SeasonStats)
		}
		team.Seasons[year] = stats
	}

	*t = team
	return nil
}

func decodeSeasonStats(raw json.RawMessage) (SeasonStats, bool) {
	members, err := decodeMembers(raw)
	if err != nil || members == nil {
		return SeasonStats{}, false
	}
	var stats SeasonStats
	if n, ok := memberFinite(members, "season_position"); ok {
		pos := int(n)
		stats.Position = &pos
	}
	if n, ok := memberFinite(members, "season_points"); ok {
		stats.Points = &n
	}
	return stats, true
}

func (t Team) MarshalJSON() ([]byte, error) {
	type plain Team
	return encodeWithExtra(plain(t), t.Extra)
}

// Season returns the stats block for the given year.
func (t Team) Season(year int) (SeasonStats, bool) {
	stats, ok := t.Seasons[year]
	return stats, ok
}

// SeasonKey is the member name holding a season's stats.
func SeasonKey(year int) string {
	return fmt.Sprintf("%d%s", year, seasonSuffix)
}

func seasonYear(member string) (int, bool) {
	prefix, ok := strings.CutSuffix(member, seasonSuffix)
	if !ok || prefix == "" {
		return 0, false
	}
	year, err := strconv.Atoi(prefix)
	if err != nil {
		return 0, false
	}
	return year, true
}

// TeamSummary is the compact per-team row of the summary table.
type TeamSummary struct {
	TeamKey        string   `json:"teamKey"`
	Name           string   `json:"name"`
	SeasonPosition *int     `json:"season_position"`
	SeasonPoints   *float64 `json:"season_points"`
}

// Summary projects the team onto a summary row for the given season.
func (t Team) Summary(year int) TeamSummary {
	stats, _ := t.Season(year)
	return TeamSummary{
		TeamKey:        t.TeamKey,
		Name:           t.Name,
		SeasonPosition: stats.Position,
		SeasonPoints:   stats.Points,
	}
}

// SortPos orders summary rows; teams without a position sort last.
func (s TeamSummary) SortPos() int {
	if s.SeasonPosition == nil {
		return MissingPosition
	}
	return *s.SeasonPosition
}
