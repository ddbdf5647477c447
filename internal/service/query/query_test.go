package query_test

import (
	"net/url"
	"testing"

	"github.com/zhouzirui/f1-api/backend/internal/model/f1"
	"github.com/zhouzirui/f1-api/backend/internal/service/query"
)

func intPtr(v int) *int { return &v }

func floatPtr(v float64) *float64 { return &v }

func sampleDrivers() []f1.Driver {
	return []f1.Driver{
		{Pos: 2, Driver: "Lando Norris", Slug: "lando-norris", TeamKey: "mclaren", Points: 374},
		{Pos: 1, Driver: "Max Verstappen", Slug: "max-verstappen", TeamKey: "red-bull", Points: 575},
		{Pos: 3, Driver: "Oscar Piastri", Slug: "oscar-piastri", TeamKey: "mclaren", Points: 374},
		{Pos: 4, Driver: "Charles Leclerc", Slug: "charles-leclerc", TeamKey: "ferrari", Points: 356},
	}
}

func sampleRaces() []f1.Race {
	records := []f1.RaceRecord{
		{GrandPrix: "Japan", Date: "6 Apr", Winner: "Max Verstappen", Team: "Red Bull Racing Honda RBPT"},
		{GrandPrix: "Australia", Date: "16 Mar", Winner: "Lando Norris", Team: "McLaren Mercedes"},
		{GrandPrix: "China", Date: "23 Mar", Winner: "Oscar Piastri", Team: "McLaren Mercedes"},
		{GrandPrix: "Bahrain", Date: "13 Apr", Winner: "Oscar Piastri", Team: "McLaren Mercedes"},
		{GrandPrix: "Emilia-Romagna", Date: "TBC", Winner: "Max Verstappen", Team: "Red Bull Racing Honda RBPT"},
	}
	races := make([]f1.Race, 0, len(records))
	for _, r := range records {
		races = append(races, r.Normalize(2025))
	}
	return races
}

func slugs(drivers []f1.Driver) []string {
	out := make([]string, 0, len(drivers))
	for _, d := range drivers {
		out = append(out, d.Slug)
	}
	return out
}

func grandPrix(races []f1.Race) []string {
	out := make([]string, 0, len(races))
	for _, r := range races {
		out = append(out, r.GrandPrixSlug)
	}
	return out
}

func equal(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestDriversMinPointsExcludesBelow(t *testing.T) {
	f := query.DriverFilterFromQuery(url.Values{"minPoints": {"576"}})
	got := query.Drivers(sampleDrivers(), f)
	for _, d := range got {
		if d.Slug == "max-verstappen" {
			t.Fatal("expected max-verstappen to be filtered out")
		}
	}
	if len(got) != 0 {
		t.Fatalf("expected no drivers, got %v", slugs(got))
	}
}

func TestDriversMinMaxIntersection(t *testing.T) {
	drivers := sampleDrivers()
	atLeast := query.Drivers(drivers, query.DriverFilterFromQuery(url.Values{"minPoints": {"374"}}))
	both := query.Drivers(atLeast, query.DriverFilterFromQuery(url.Values{"maxPoints": {"374"}}))

	want := []string{"lando-norris", "oscar-piastri"}
	if !equal(slugs(both), want) {
		t.Fatalf("expected %v, got %v", want, slugs(both))
	}
}

func TestDriversTeamIsCaseInsensitive(t *testing.T) {
	got := query.Drivers(sampleDrivers(), query.DriverFilterFromQuery(url.Values{"team": {"McLaren"}}))
	if !equal(slugs(got), []string{"lando-norris", "oscar-piastri"}) {
		t.Fatalf("unexpected drivers %v", slugs(got))
	}
}

func TestDriversNonNumericPointsMatchNothing(t *testing.T) {
	got := query.Drivers(sampleDrivers(), query.DriverFilterFromQuery(url.Values{"minPoints": {"lots"}}))
	if len(got) != 0 {
		t.Fatalf("expected no drivers, got %v", slugs(got))
	}
}

func TestDriversBlankPointsIsZero(t *testing.T) {
	got := query.Drivers(sampleDrivers(), query.DriverFilterFromQuery(url.Values{"minPoints": {""}}))
	if len(got) != len(sampleDrivers()) {
		t.Fatalf("expected every driver, got %v", slugs(got))
	}
}

func TestDriversDoesNotMutateSource(t *testing.T) {
	drivers := sampleDrivers()
	_ = query.Standings(drivers)
	if drivers[0].Slug != "lando-norris" {
		t.Fatal("source slice was reordered")
	}
}

func TestStandingsOrderedByPosition(t *testing.T) {
	rows := query.Standings(sampleDrivers())
	for i, row := range rows {
		if row.Pos != i+1 {
			t.Fatalf("row %d has pos %d", i, row.Pos)
		}
	}
}

func TestConstructorsSortAndFilter(t *testing.T) {
	rows := []f1.Constructor{
		{TeamKey: "ferrari", Pos: intPtr(2), Points: floatPtr(652)},
		{TeamKey: "haas"},
		{TeamKey: "mclaren", Pos: intPtr(1), Points: floatPtr(666)},
	}

	got := query.Constructors(rows, query.PointsRange{})
	if got[0].TeamKey != "mclaren" || got[1].TeamKey != "ferrari" || got[2].TeamKey != "haas" {
		t.Fatalf("unexpected order %+v", got)
	}

	filtered := query.Constructors(rows, query.PointsRangeFromQuery(url.Values{"minPoints": {"0"}}))
	if len(filtered) != 2 {
		t.Fatalf("expected rows without points to be excluded, got %d", len(filtered))
	}
}

func TestTeamsSearch(t *testing.T) {
	teams := []f1.Team{
		{Name: "Red Bull Racing", TeamKey: "red-bull-racing"},
		{Name: "Racing Bulls", TeamKey: "racing-bulls"},
		{Name: "Ferrari", TeamKey: "ferrari"},
	}

	if got := query.Teams(teams, "BULL"); len(got) != 2 {
		t.Fatalf("expected two bull teams, got %d", len(got))
	}
	if got := query.Teams(teams, "bull-racing"); len(got) != 1 || got[0].TeamKey != "red-bull-racing" {
		t.Fatalf("expected key match, got %+v", got)
	}
	if got := query.Teams(teams, ""); len(got) != 3 {
		t.Fatalf("expected every team, got %d", len(got))
	}
}

func TestTeamSummariesSorted(t *testing.T) {
	teams := []f1.Team{
		{Name: "Ferrari", TeamKey: "ferrari", Seasons: map[int]f1.SeasonStats{2025: {Position: intPtr(2)}}},
		{Name: "Haas", TeamKey: "haas"},
		{Name: "McLaren", TeamKey: "mclaren", Seasons: map[int]f1.SeasonStats{2025: {Position: intPtr(1), Points: floatPtr(666)}}},
	}

	rows := query.TeamSummaries(teams, 2025)
	if rows[0].TeamKey != "mclaren" || rows[2].TeamKey != "haas" {
		t.Fatalf("unexpected order %+v", rows)
	}
	if rows[2].SeasonPosition != nil {
		t.Fatal("expected nil position for team without stats")
	}
}

func TestRacesDateOrderReverses(t *testing.T) {
	races := sampleRaces()[:4]

	asc := query.Races(races, query.RaceQueryFromQuery(url.Values{"sort": {"date"}, "order": {"asc"}}))
	desc := query.Races(races, query.RaceQueryFromQuery(url.Values{"sort": {"date"}, "order": {"desc"}}))

	wantAsc := []string{"australia", "china", "japan", "bahrain"}
	if !equal(grandPrix(asc), wantAsc) {
		t.Fatalf("expected %v, got %v", wantAsc, grandPrix(asc))
	}
	for i := range asc {
		if asc[i].GrandPrixSlug != desc[len(desc)-1-i].GrandPrixSlug {
			t.Fatalf("desc is not the reverse of asc: %v vs %v", grandPrix(asc), grandPrix(desc))
		}
	}
}

func TestRacesDefaultSortIsDate(t *testing.T) {
	got := query.Races(sampleRaces(), query.RaceQueryFromQuery(url.Values{}))
	if got[0].GrandPrixSlug != "emilia-romagna" {
		t.Fatalf("expected undated race first, got %v", grandPrix(got))
	}
}

func TestRacesSortByName(t *testing.T) {
	got := query.Races(sampleRaces(), query.RaceQueryFromQuery(url.Values{"sort": {"grand_prix"}}))
	want := []string{"australia", "bahrain", "china", "emilia-romagna", "japan"}
	if !equal(grandPrix(got), want) {
		t.Fatalf("expected %v, got %v", want, grandPrix(got))
	}
}

func TestRacesUnknownSortKeepsOrder(t *testing.T) {
	races := sampleRaces()
	got := query.Races(races, query.RaceQueryFromQuery(url.Values{"sort": {"laps"}}))
	if !equal(grandPrix(got), grandPrix(races)) {
		t.Fatalf("expected source order, got %v", grandPrix(got))
	}
}

func TestRacesFilters(t *testing.T) {
	races := sampleRaces()

	byTeam := query.Races(races, query.RaceQueryFromQuery(url.Values{"team": {"McLaren Mercedes"}}))
	if len(byTeam) != 3 {
		t.Fatalf("expected 3 mclaren wins, got %v", grandPrix(byTeam))
	}

	byWinner := query.Races(races, query.RaceQueryFromQuery(url.Values{"winner": {"max-verstappen"}}))
	if len(byWinner) != 2 {
		t.Fatalf("expected 2 verstappen wins, got %v", grandPrix(byWinner))
	}

	byText := query.Races(races, query.RaceQueryFromQuery(url.Values{"q": {"PIASTRI"}}))
	if len(byText) != 2 {
		t.Fatalf("expected 2 piastri races, got %v", grandPrix(byText))
	}
}

func TestRacesDateRangeExcludesUndated(t *testing.T) {
	got := query.Races(sampleRaces(), query.RaceQueryFromQuery(url.Values{
		"from": {"2025-03-20"},
		"to":   {"2025-04-06T00:00:00Z"},
	}))

	want := []string{"china", "japan"}
	if !equal(grandPrix(got), want) {
		t.Fatalf("expected %v, got %v", want, grandPrix(got))
	}
}

func TestRacesInvalidBoundIgnored(t *testing.T) {
	got := query.Races(sampleRaces(), query.RaceQueryFromQuery(url.Values{"from": {"soon"}}))
	if len(got) != len(sampleRaces()) {
		t.Fatalf("expected unparseable bound to be ignored, got %v", grandPrix(got))
	}
}
