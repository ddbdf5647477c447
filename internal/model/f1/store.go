package f1

// DefaultSeason is used when neither data file names a season.
const DefaultSeason = 2025

// Data is the raw material a Store is built from.
type Data struct {
	DriversSeason      *int
	ConstructorsSeason *int
	DefaultSeason      int
	Drivers            []Driver
	Constructors       []Constructor
	Teams              []Team
	Races              []RaceRecord
}

// Counts summarises how many records each collection holds.
type Counts struct {
	Drivers      int `json:"drivers"`
	Constructors int `json:"constructors"`
	Teams        int `json:"teams"`
	Races        int `json:"races"`
}

// Store is the read-only dataset served by the API. It is built once and
// never mutated, so concurrent readers need no locking.
type Store struct {
	season             int
	driversSeason      *int
	constructorsSeason *int

	drivers      []Driver
	constructors []Constructor
	teams        []Team
	races        []Race

	driverIdx      map[string]int
	constructorIdx map[string]int
	teamIdx        map[string]int
	raceIdx        map[string]int

	collisions []Collision
}

// NewStore normalises data and builds the lookup indexes.
func NewStore(data Data) *Store {
	s := &Store{
		driversSeason:      data.DriversSeason,
		constructorsSeason: data.ConstructorsSeason,
	}
	s.season = resolveSeason(data)

	s.drivers = make([]Driver, 0, len(data.Drivers))
	for _, d := range data.Drivers {
		s.drivers = append(s.drivers, d.withDefaults())
	}

	s.constructors = append([]Constructor{}, data.Constructors...)

	s.teams = make([]Team, 0, len(data.Teams))
	for _, t := range data.Teams {
		t.TeamKey = Slugify(t.Name)
		s.teams = append(s.teams, t)
	}

	s.races = make([]Race, 0, len(data.Races))
	for _, r := range data.Races {
		s.races = append(s.races, r.Normalize(s.season))
	}

	var collisions []Collision
	s.driverIdx, collisions = BuildIndex("drivers", s.drivers,
		func(d Driver) string { return d.Slug },
		func(d Driver) string { return d.Driver })
	s.collisions = append(s.collisions, collisions...)

	s.constructorIdx, collisions = BuildIndex("constructors", s.constructors,
		func(c Constructor) string { return c.TeamKey },
		func(c Constructor) string { return c.TeamKey })
	s.collisions = append(s.collisions, collisions...)

	s.teamIdx, collisions = BuildIndex("teams", s.teams,
		func(t Team) string { return t.TeamKey },
		func(t Team) string { return t.Name })
	s.collisions = append(s.collisions, collisions...)

	s.raceIdx, collisions = BuildIndex("races", s.races,
		func(r Race) string { return r.GrandPrixSlug },
		func(r Race) string { return r.GrandPrix })
	s.collisions = append(s.collisions, collisions...)

	return s
}

func resolveSeason(data Data) int {
	switch {
	case data.DriversSeason != nil && *data.DriversSeason != 0:
		return *data.DriversSeason
	case data.ConstructorsSeason != nil && *data.ConstructorsSeason != 0:
		return *data.ConstructorsSeason
	case data.DefaultSeason != 0:
		return data.DefaultSeason
	default:
		return DefaultSeason
	}
}

// Season is the season the dataset describes.
func (s *Store) Season() int { return s.season }

// DriversSeason is the season named by the drivers file, nil when absent.
func (s *Store) DriversSeason() *int { return s.driversSeason }

// ConstructorsSeason is the season named by the constructors file, nil when absent.
func (s *Store) ConstructorsSeason() *int { return s.constructorsSeason }

// Counts reports the collection sizes.
func (s *Store) Counts() Counts {
	return Counts{
		Drivers:      len(s.drivers),
		Constructors: len(s.constructors),
		Teams:        len(s.teams),
		Races:        len(s.races),
	}
}

// Collisions lists the keys shared by more than one record.
func (s *Store) Collisions() []Collision {
	return append([]Collision(nil), s.collisions...)
}

// Drivers returns a copy of the driver list in file order.
func (s *Store) Drivers() []Driver {
	return append([]Driver(nil), s.drivers...)
}

// Constructors returns a copy of the constructor list in file order.
func (s *Store) Constructors() []Constructor {
	return append([]Constructor(nil), s.constructors...)
}

// Teams returns a copy of the team index in file order.
func (s *Store) Teams() []Team {
	return append([]Team(nil), s.teams...)
}

// Races returns a copy of the race list in file order.
func (s *Store) Races() []Race {
	return append([]Race(nil), s.races...)
}

// FindDriver looks a driver up by slug, case-insensitively.
func (s *Store) FindDriver(slug string) (Driver, bool) {
	i, ok := s.driverIdx[NormalizeKey(slug)]
	if !ok {
		return Driver{}, false
	}
	return s.drivers[i], true
}

// FindConstructor looks a constructor standing up by team key.
func (s *Store) FindConstructor(teamKey string) (Constructor, bool) {
	i, ok := s.constructorIdx[NormalizeKey(teamKey)]
	if !ok {
		return Constructor{}, false
	}
	return s.constructors[i], true
}

// FindTeam looks a team index entry up by its derived key.
func (s *Store) FindTeam(teamKey string) (Team, bool) {
	i, ok := s.teamIdx[NormalizeKey(teamKey)]
	if !ok {
		return Team{}, false
	}
	return s.teams[i], true
}

// FindRace looks a race up by grand prix slug.
func (s *Store) FindRace(grandPrixSlug string) (Race, bool) {
	i, ok := s.raceIdx[NormalizeKey(grandPrixSlug)]
	if !ok {
		return Race{}, false
	}
	return s.races[i], true
}
