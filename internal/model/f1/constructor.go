package f1

import "strings"

var constructorFields = []string{"teamKey", "pos", "points"}

// Constructor is one row of the constructors' championship. Pos and Points
// are optional in the source data; any other member is kept in Extra.
type Constructor struct {
	TeamKey string   `json:"teamKey"`
	Pos     *int     `json:"pos,omitempty"`
	Points  *float64 `json:"points,omitempty"`
	Extra   Extra    `json:"-"`
}

// UnmarshalJSON accepts numeric strings for pos and points; a value that does
// not read as a number leaves the field unset.
func (c *Constructor) UnmarshalJSON(data []byte) error {
	members, err := decodeMembers(data)
	if err != nil {
		return err
	}

	row := Constructor{
		TeamKey: strings.TrimSpace(memberString(members, "teamKey")),
		Extra:   extraMembers(members, constructorFields...),
	}
	if n, ok := memberFinite(members, "pos"); ok {
		pos := int(n)
		row.Pos = &pos
	}
	if n, ok := memberFinite(members, "points"); ok {
		row.Points = &n
	}
	*c = row
	return nil
}

func (c Constructor) MarshalJSON() ([]byte, error) {
	type plain Constructor
	return encodeWithExtra(plain(c), c.Extra)
}

// SortPos is the position used for ordering; rows without one sort last.
func (c Constructor) SortPos() int {
	if c.Pos == nil {
		return MissingPosition
	}
	return *c.Pos
}

// MissingPosition orders unranked rows after every ranked one.
const MissingPosition = 999
