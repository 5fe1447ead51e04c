package entities

// Season is one role-stint inside a team-stint. Year and jersey number are optional metadata.
type Season struct {
	Year         string `json:"year,omitempty" yaml:"year,omitempty"`
	JerseyNumber string `json:"jersey_number,omitempty" yaml:"jersey_number,omitempty"`
	Role         string `json:"role" yaml:"role"`
}

// TeamStint records a spell at a single team.
type TeamStint struct {
	Team    string   `json:"team" yaml:"team"`
	Seasons []Season `json:"seasons" yaml:"seasons"`
}

// Entity is a player in the pool. Entities are treated as immutable once loaded.
type Entity struct {
	Name        string      `json:"name" yaml:"name"`
	Nationality string      `json:"nationality" yaml:"nationality"`
	TeamHistory []TeamStint `json:"teamHistory,omitempty" yaml:"teamHistory,omitempty"`
}

// PlayedFor reports whether the entity has a stint at the named team.
func (e Entity) PlayedFor(team string) bool {
	for _, stint := range e.TeamHistory {
		if stint.Team == team {
			return true
		}
	}
	return false
}

// HadRole reports whether any season of any stint carries the named role.
func (e Entity) HadRole(role string) bool {
	for _, stint := range e.TeamHistory {
		for _, season := range stint.Seasons {
			if season.Role == role {
				return true
			}
		}
	}
	return false
}
