package query

import (
	"net/url"
	"sort"
	"strings"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/zhouzirui/f1-api/backend/internal/model/f1"
)

// RaceSort names a race ordering.
type RaceSort string

const (
	SortDate      RaceSort = "date"
	SortGrandPrix RaceSort = "grand_prix"
	SortWinner    RaceSort = "winner"
	SortTeam      RaceSort = "team"
)

// ParseRaceSort maps the sort parameter onto a known ordering. "name" is an
// alias of grand_prix and "position" of date. Unknown values keep source
// order and report false.
func ParseRaceSort(raw string) (RaceSort, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "date", "position":
		return SortDate, true
	case "grand_prix", "grandprix", "name":
		return SortGrandPrix, true
	case "winner":
		return SortWinner, true
	case "team":
		return SortTeam, true
	default:
		return "", false
	}
}

// RaceQuery holds the race listing parameters.
type RaceQuery struct {
	Q      string
	Team   string
	Winner string
	From   *time.Time
	To     *time.Time
	Sort   RaceSort
	Desc   bool
}

// RaceQueryFromQuery reads q, team, winner, from, to, sort and order.
// Unparseable date bounds are ignored.
func RaceQueryFromQuery(values url.Values) RaceQuery {
	q := RaceQuery{
		Q:      values.Get("q"),
		Team:   values.Get("team"),
		Winner: values.Get("winner"),
		Desc:   strings.EqualFold(values.Get("order"), "desc"),
	}
	q.Sort, _ = ParseRaceSort(values.Get("sort"))
	if t, ok := f1.ParseDateBound(values.Get("from")); ok {
		q.From = &t
	}
	if t, ok := f1.ParseDateBound(values.Get("to")); ok {
		q.To = &t
	}
	return q
}

// Races filters and orders races. Rows without a date are dropped when a
// date bound is set. The sort is stable, so equal keys keep source order in
// both directions.
func Races(races []f1.Race, q RaceQuery) []f1.Race {
	needle := strings.ToLower(q.Q)
	teamKey := f1.Slugify(q.Team)
	winnerSlug := f1.Slugify(q.Winner)

	out := make([]f1.Race, 0, len(races))
	for _, r := range races {
		if needle != "" && !containsFold(r.GrandPrix, needle) && !containsFold(r.Winner, needle) && !containsFold(r.Team, needle) {
			continue
		}
		if q.Team != "" && r.TeamKey != teamKey {
			continue
		}
		if q.Winner != "" && r.WinnerSlug != winnerSlug {
			continue
		}
		if !inDateRange(r, q.From, q.To) {
			continue
		}
		out = append(out, r)
	}

	cmp := raceComparator(q.Sort)
	if cmp == nil {
		return out
	}
	sort.SliceStable(out, func(i, j int) bool {
		if q.Desc {
			return cmp(out[j], out[i]) < 0
		}
		return cmp(out[i], out[j]) < 0
	})
	return out
}

func inDateRange(r f1.Race, from, to *time.Time) bool {
	if from == nil && to == nil {
		return true
	}
	at, ok := r.Timestamp()
	if !ok {
		return false
	}
	if from != nil && at.Before(*from) {
		return false
	}
	if to != nil && at.After(*to) {
		return false
	}
	return true
}

func raceComparator(key RaceSort) func(a, b f1.Race) int {
	switch key {
	case SortDate:
		return func(a, b f1.Race) int {
			ta, tb := raceMillis(a), raceMillis(b)
			switch {
			case ta < tb:
				return -1
			case ta > tb:
				return 1
			}
			return 0
		}
	case SortGrandPrix, SortWinner, SortTeam:
		// Collator keeps internal buffers and is not safe to share.
		col := collate.New(language.English)
		field := func(r f1.Race) string {
			switch key {
			case SortWinner:
				return r.Winner
			case SortTeam:
				return r.Team
			}
			return r.GrandPrix
		}
		return func(a, b f1.Race) int {
			return col.CompareString(field(a), field(b))
		}
	default:
		return nil
	}
}

// raceMillis treats races without a date as the epoch.
func raceMillis(r f1.Race) int64 {
	at, ok := r.Timestamp()
	if !ok {
		return 0
	}
	return at.UnixMilli()
}
