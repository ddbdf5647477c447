package query

import (
	"net/url"
	"sort"
	"strings"

	"github.com/zhouzirui/f1-api/backend/internal/model/f1"
)

// DriverFilter selects drivers by team key and points.
type DriverFilter struct {
	Team   string
	Points PointsRange
}

// DriverFilterFromQuery reads team, minPoints and maxPoints.
func DriverFilterFromQuery(values url.Values) DriverFilter {
	return DriverFilter{
		Team:   values.Get("team"),
		Points: PointsRangeFromQuery(values),
	}
}

// Drivers returns the drivers matching f, in source order.
func Drivers(drivers []f1.Driver, f DriverFilter) []f1.Driver {
	out := make([]f1.Driver, 0, len(drivers))
	for _, d := range drivers {
		if f.Team != "" && !strings.EqualFold(d.TeamKey, f.Team) {
			continue
		}
		if !f.Points.Match(d.Points) {
			continue
		}
		out = append(out, d)
	}
	return out
}

// Standings projects drivers onto standings rows ordered by position.
func Standings(drivers []f1.Driver) []f1.StandingRow {
	rows := make([]f1.StandingRow, 0, len(drivers))
	for _, d := range drivers {
		rows = append(rows, d.Standing())
	}
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Pos < rows[j].Pos
	})
	return rows
}
