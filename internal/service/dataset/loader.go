// Package dataset reads the season data files once at start-up and turns
// them into an immutable f1.Store.
package dataset

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/zhouzirui/f1-api/backend/internal/model/f1"
)

// Files names the data documents and the directory they live in.
type Files struct {
	Dir          string
	Drivers      string
	Constructors string
	TeamIndex    string
	Races        string
}

// Config controls a Load.
type Config struct {
	Files         Files
	DefaultSeason int
}

// FileStatus describes how one data file was loaded.
type FileStatus struct {
	Name   string `json:"name"`
	Path   string `json:"path,omitempty"`
	Loaded bool   `json:"loaded"`
	Error  string `json:"error,omitempty"`
}

// Report summarises a Load for logging and the datacheck tool.
type Report struct {
	Files      []FileStatus   `json:"files"`
	Counts     f1.Counts      `json:"counts"`
	Collisions []f1.Collision `json:"collisions,omitempty"`
}

type driversDocument struct {
	Season  *int        `json:"season"`
	Drivers []f1.Driver `json:"drivers"`
}

type constructorsDocument struct {
	Season               *int             `json:"season"`
	ConstructorStandings []f1.Constructor `json:"constructorStandings"`
}

type teamIndexDocument struct {
	Teams []f1.Team `json:"teams"`
}

// Load reads every configured file. A file that is missing or malformed is
// replaced by an empty document, so Load always yields a usable store.
func Load(cfg Config, logger *slog.Logger) (*f1.Store, Report) {
	if logger == nil {
		logger = slog.Default()
	}

	var report Report

	drivers, status := LoadJSON(logger, cfg.Files.Dir, cfg.Files.Drivers, driversDocument{})
	report.Files = append(report.Files, status)

	constructors, status := LoadJSON(logger, cfg.Files.Dir, cfg.Files.Constructors, constructorsDocument{})
	report.Files = append(report.Files, status)

	teams, status := LoadJSON(logger, cfg.Files.Dir, cfg.Files.TeamIndex, teamIndexDocument{})
	report.Files = append(report.Files, status)

	races, status := LoadJSON(logger, cfg.Files.Dir, cfg.Files.Races, []f1.RaceRecord{})
	report.Files = append(report.Files, status)

	store := f1.NewStore(f1.Data{
		DriversSeason:      drivers.Season,
		ConstructorsSeason: constructors.Season,
		DefaultSeason:      cfg.DefaultSeason,
		Drivers:            drivers.Drivers,
		Constructors:       constructors.ConstructorStandings,
		Teams:              teams.Teams,
		Races:              races,
	})

	report.Counts = store.Counts()
	report.Collisions = store.Collisions()
	for _, c := range report.Collisions {
		logger.Warn("duplicate lookup key, last record wins",
			"collection", c.Collection,
			"key", c.Key,
			"kept", c.Kept,
			"dropped", c.Dropped,
		)
	}

	logger.Info("dataset loaded",
		"season", store.Season(),
		"drivers", report.Counts.Drivers,
		"constructors", report.Counts.Constructors,
		"teams", report.Counts.Teams,
		"races", report.Counts.Races,
	)

	return store, report
}

// LoadJSON decodes the named file into a fresh T. On any failure it logs
// and returns fallback untouched.
func LoadJSON[T any](logger *slog.Logger, dir, name string, fallback T) (T, FileStatus) {
	status := FileStatus{Name: name}

	path, raw, err := readFirst(candidatePaths(dir, name))
	status.Path = path
	if err == nil {
		var doc T
		if err = json.Unmarshal(raw, &doc); err == nil {
			status.Loaded = true
			return doc, status
		}
		err = errors.Wrapf(err, "decode %s", path)
	}

	status.Error = err.Error()
	logger.Warn("failed to load data file, using empty fallback", "file", name, "error", err)
	return fallback, status
}

// candidatePaths lists where name may live: under dir first, then as given.
func candidatePaths(dir, name string) []string {
	if name == "" {
		return nil
	}
	if dir == "" || filepath.IsAbs(name) {
		return []string{name}
	}
	joined := filepath.Join(dir, name)
	if joined == filepath.Clean(name) {
		return []string{joined}
	}
	return []string{joined, name}
}

func readFirst(paths []string) (string, []byte, error) {
	if len(paths) == 0 {
		return "", nil, errors.New("no file configured")
	}

	var firstErr error
	for _, path := range paths {
		raw, err := os.ReadFile(path)
		if err == nil {
			return path, raw, nil
		}
		if firstErr == nil {
			firstErr = errors.Wrapf(err, "read %s", path)
		}
	}
	return paths[0], nil, firstErr
}
