package f1

import "strings"

var driverFields = []string{"pos", "driver", "slug", "nationality", "team", "teamKey", "points"}

// Driver is one row of the drivers' championship.
type Driver struct {
	Pos         int     `json:"pos"`
	Driver      string  `json:"driver"`
	Slug        string  `json:"slug"`
	Nationality string  `json:"nationality"`
	Team        string  `json:"team"`
	TeamKey     string  `json:"teamKey"`
	Points      float64 `json:"points"`
	Extra       Extra   `json:"-"`
}

// UnmarshalJSON decodes the typed fields and keeps everything else in Extra.
// Numbers may arrive as strings. A pos that does not read as a number becomes
// MissingPosition and unreadable points become 0, so one odd member never
// rejects the row.
func (d *Driver) UnmarshalJSON(data []byte) error {
	members, err := decodeMembers(data)
	if err != nil {
		return err
	}

	pos := MissingPosition
	if n, ok := memberFinite(members, "pos"); ok {
		pos = int(n)
	}
	points, _ := memberFinite(members, "points")

	*d = Driver{
		Pos:         pos,
		Driver:      strings.TrimSpace(memberString(members, "driver")),
		Slug:        strings.TrimSpace(memberString(members, "slug")),
		Nationality: strings.TrimSpace(memberString(members, "nationality")),
		Team:        strings.TrimSpace(memberString(members, "team")),
		TeamKey:     strings.TrimSpace(memberString(members, "teamKey")),
		Points:      points,
		Extra:       extraMembers(members, driverFields...),
	}
	return nil
}

// MarshalJSON emits the typed fields followed by the preserved extras.
func (d Driver) MarshalJSON() ([]byte, error) {
	type plain Driver
	return encodeWithExtra(plain(d), d.Extra)
}

// withDefaults fills the keys a data file may leave out.
func (d Driver) withDefaults() Driver {
	if d.Slug == "" {
		d.Slug = Slugify(d.Driver)
	}
	if d.TeamKey == "" {
		d.TeamKey = Slugify(d.Team)
	}
	return d
}

// StandingRow is the compact projection served by the standings table.
type StandingRow struct {
	Pos         int     `json:"pos"`
	Driver      string  `json:"driver"`
	Slug        string  `json:"slug"`
	Nationality string  `json:"nationality"`
	Team        string  `json:"team"`
	TeamKey     string  `json:"teamKey"`
	Points      float64 `json:"points"`
}

// Standing projects the driver onto a standings row.
func (d Driver) Standing() StandingRow {
	return StandingRow{
		Pos:         d.Pos,
		Driver:      d.Driver,
		Slug:        d.Slug,
		Nationality: d.Nationality,
		Team:        d.Team,
		TeamKey:     d.TeamKey,
		Points:      d.Points,
	}
}
