package dataset

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/zhouzirui/f1-api/backend/internal/telemetry"
)

const (
	driversJSON = `{"season": 2025, "drivers": [
		{"pos": 1, "driver": "Max Verstappen", "slug": "max-verstappen", "nationality": "NED", "team": "Red Bull Racing", "teamKey": "red-bull", "points": 575},
		{"pos": 2, "driver": "Lando Norris", "slug": "lando-norris", "nationality": "GBR", "team": "McLaren", "teamKey": "mclaren", "points": 374}
	]}`
	constructorsJSON = `{"season": 2025, "constructorStandings": [
		{"pos": 1, "teamKey": "mclaren", "team": "McLaren", "points": 666}
	]}`
	teamIndexJSON = `{"teams": [
		{"name": "McLaren", "2025_season": {"season_position": 1, "season_points": 666}},
		{"name": "Mclaren!"}
	]}`
	racesJSON = `[{"GrandPrix": "Australia", "Date": "16 Mar", "Winner": "Lando Norris", "Team": "McLaren Mercedes", "Laps": 57, "Time": "1:42:06.304"}]`
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
}

func testConfig(dir string) Config {
	return Config{
		Files: Files{
			Dir:          dir,
			Drivers:      "drivers.json",
			Constructors: "teams.json",
			TeamIndex:    "index.json",
			Races:        "races.json",
		},
		DefaultSeason: 2025,
	}
}

func TestLoadAllFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "drivers.json", driversJSON)
	writeFile(t, dir, "teams.json", constructorsJSON)
	writeFile(t, dir, "index.json", teamIndexJSON)
	writeFile(t, dir, "races.json", racesJSON)

	store, report := Load(testConfig(dir), telemetry.Discard())

	counts := store.Counts()
	if counts.Drivers != 2 || counts.Constructors != 1 || counts.Teams != 2 || counts.Races != 1 {
		t.Fatalf("unexpected counts %+v", counts)
	}
	for _, f := range report.Files {
		if !f.Loaded {
			t.Fatalf("expected %s to load, got error %q", f.Name, f.Error)
		}
	}
	if len(report.Collisions) != 1 || report.Collisions[0].Key != "mclaren" {
		t.Fatalf("expected mclaren collision, got %+v", report.Collisions)
	}
	if store.Season() != 2025 {
		t.Fatalf("unexpected season %d", store.Season())
	}
}

func TestLoadMalformedDriversFallsBack(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "drivers.json", driversJSON[:40])
	writeFile(t, dir, "teams.json", constructorsJSON)

	store, report := Load(testConfig(dir), telemetry.Discard())

	if got := store.Counts().Drivers; got != 0 {
		t.Fatalf("expected no drivers, got %d", got)
	}
	if got := store.Counts().Constructors; got != 1 {
		t.Fatalf("expected constructors to survive, got %d", got)
	}
	if report.Files[0].Loaded || report.Files[0].Error == "" {
		t.Fatalf("expected drivers failure to be reported, got %+v", report.Files[0])
	}
	if report.Files[3].Loaded {
		t.Fatal("expected missing races file to be reported")
	}
	if store.DriversSeason() != nil {
		t.Fatal("expected nil drivers season after fallback")
	}
	if store.Season() != 2025 {
		t.Fatalf("expected constructors season, got %d", store.Season())
	}
}

func TestLoadJSONKeepsFallbackOnError(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "bad.json", `{"teams": [{"name": "McLaren"}`)

	fallback := teamIndexDocument{}
	got, status := LoadJSON(telemetry.Discard(), dir, "bad.json", fallback)
	if status.Loaded {
		t.Fatal("expected decode failure")
	}
	if len(got.Teams) != 0 {
		t.Fatalf("expected fallback document, got %+v", got)
	}
}

func TestLoadAcceptsNumericStrings(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "drivers.json", `{"season": 2025, "drivers": [
		{"pos": 1, "driver": "Max Verstappen", "team": "Red Bull Racing", "points": 575},
		{"pos": "2", "driver": "Lando Norris", "team": "McLaren", "points": "374"}
	]}`)
	writeFile(t, dir, "teams.json", `{"season": 2025, "constructorStandings": [{"pos": "1", "teamKey": "mclaren"}]}`)
	writeFile(t, dir, "index.json", `{"teams": [{"name": 7}]}`)

	store, report := Load(testConfig(dir), telemetry.Discard())

	counts := store.Counts()
	if counts.Drivers != 2 || counts.Constructors != 1 || counts.Teams != 1 {
		t.Fatalf("unexpected counts %+v", counts)
	}
	for _, f := range report.Files[:3] {
		if !f.Loaded {
			t.Fatalf("expected %s to load, got error %q", f.Name, f.Error)
		}
	}
	norris, ok := store.FindDriver("lando-norris")
	if !ok || norris.Pos != 2 || norris.Points != 374 {
		t.Fatalf("unexpected driver %+v", norris)
	}
	if row, ok := store.FindConstructor("mclaren"); !ok || row.SortPos() != 1 {
		t.Fatalf("unexpected constructor %+v", row)
	}
}

func TestCandidatePaths(t *testing.T) {
	if got := candidatePaths("data", "f.json"); len(got) != 2 || got[0] != filepath.Join("data", "f.json") || got[1] != "f.json" {
		t.Fatalf("unexpected paths %v", got)
	}
	if got := candidatePaths(".", "f.json"); len(got) != 1 {
		t.Fatalf("expected a single path for the working directory, got %v", got)
	}
	if got := candidatePaths("data", ""); got != nil {
		t.Fatalf("expected no paths for empty name, got %v", got)
	}
}
