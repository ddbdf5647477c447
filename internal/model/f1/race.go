package f1

import (
	"strconv"
	"strings"
	"time"
)

// ISOLayout matches the millisecond UTC form used by browsers' toISOString.
const ISOLayout = "2006-01-02T15:04:05.000Z"

// RaceRecord is a raw row of the races file. Source files disagree on key
// casing, so both spellings are accepted.
type RaceRecord struct {
	GrandPrix string
	Date      string
	Winner    string
	Team      string
	Laps      float64
	Time      string
}

func (r *RaceRecord) UnmarshalJSON(data []byte) error {
	members, err := decodeMembers(data)
	if err != nil {
		return err
	}

	// Laps keeps fractional values; anything non-numeric reads as 0.
	laps, _ := memberFinite(members, "Laps")

	*r = RaceRecord{
		GrandPrix: strings.TrimSpace(memberString(members, "GrandPrix", "grand_prix")),
		Date:      strings.TrimSpace(memberString(members, "Date")),
		Winner:    strings.TrimSpace(memberString(members, "Winner", "winner")),
		Team:      strings.TrimSpace(memberString(members, "Team", "team")),
		Laps:      laps,
		Time:      strings.TrimSpace(memberString(members, "Time")),
	}
	return nil
}

// Race is a normalised grand prix result.
type Race struct {
	GrandPrix     string  `json:"GrandPrix"`
	Date          string  `json:"Date"`
	Winner        string  `json:"Winner"`
	Team          string  `json:"Team"`
	Laps          float64 `json:"Laps"`
	Time          string  `json:"Time"`
	GrandPrixSlug string  `json:"grandPrixSlug"`
	WinnerSlug    string  `json:"winnerSlug"`
	TeamKey       string  `json:"teamKey"`
	DateISO       *string `json:"dateISO"`

	at time.Time
}

// Normalize derives the slugs and the season-qualified date of a record.
func (r RaceRecord) Normalize(season int) Race {
	race := Race{
		GrandPrix:     r.GrandPrix,
		Date:          r.Date,
		Winner:        r.Winner,
		Team:          r.Team,
		Laps:          r.Laps,
		Time:          r.Time,
		GrandPrixSlug: Slugify(r.GrandPrix),
		WinnerSlug:    Slugify(r.Winner),
		TeamKey:       Slugify(r.Team),
	}
	if at, ok := ParseRaceDate(r.Date, season); ok {
		iso := at.Format(ISOLayout)
		race.DateISO = &iso
		race.at = at
	}
	return race
}

// Timestamp reports the race date; false when the source date did not parse.
func (r Race) Timestamp() (time.Time, bool) {
	if r.DateISO == nil {
		return time.Time{}, false
	}
	if !r.at.IsZero() {
		return r.at, true
	}
	at, err := time.Parse(ISOLayout, *r.DateISO)
	if err != nil {
		return time.Time{}, false
	}
	return at, true
}

var dayMonthLayouts = []string{
	"2 Jan 2006",
	"2 January 2006",
	"Jan 2 2006",
	"January 2 2006",
	"Jan 2, 2006",
	"January 2, 2006",
}

// ParseRaceDate interprets a day-month string such as "16 Mar" in the given
// season, in UTC. Full ISO dates are accepted as is.
func ParseRaceDate(date string, season int) (time.Time, bool) {
	value := strings.Join(strings.Fields(date), " ")
	if value == "" {
		return time.Time{}, false
	}

	if t, err := time.Parse("2006-01-02", value); err == nil {
		return t.UTC(), true
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t.UTC(), true
	}

	withYear := value + " " + strconv.Itoa(season)
	for _, layout := range dayMonthLayouts {
		if t, err := time.ParseInLocation(layout, withYear, time.UTC); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// ParseDateBound parses a from/to query bound: RFC 3339 or YYYY-MM-DD (UTC).
func ParseDateBound(raw string) (time.Time, bool) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return time.Time{}, false
	}
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02T15:04:05", "2006-01-02"} {
		if t, err := time.ParseInLocation(layout, value, time.UTC); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}
