package query

import (
	"sort"
	"strings"

	"github.com/zhouzirui/f1-api/backend/internal/model/f1"
)

// Constructors filters constructor standings by points and orders them by
// position; rows without a position come last.
func Constructors(rows []f1.Constructor, points PointsRange) []f1.Constructor {
	out := make([]f1.Constructor, 0, len(rows))
	for _, c := range rows {
		if points.active() && !points.Match(optionalPoints(c.Points)) {
			continue
		}
		out = append(out, c)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].SortPos() < out[j].SortPos()
	})
	return out
}

// Teams returns the team index entries whose key or name contains q,
// case-insensitively. An empty q returns every team.
func Teams(teams []f1.Team, q string) []f1.Team {
	needle := strings.ToLower(q)
	out := make([]f1.Team, 0, len(teams))
	for _, t := range teams {
		if needle != "" && !strings.Contains(t.TeamKey, needle) && !containsFold(t.Name, needle) {
			continue
		}
		out = append(out, t)
	}
	return out
}

// TeamSummaries projects the team index onto season summary rows ordered by
// season position.
func TeamSummaries(teams []f1.Team, season int) []f1.TeamSummary {
	rows := make([]f1.TeamSummary, 0, len(teams))
	for _, t := range teams {
		rows = append(rows, t.Summary(season))
	}
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].SortPos() < rows[j].SortPos()
	})
	return rows
}
