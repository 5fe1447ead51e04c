package entities

import "strings"

// Record is the on-disk or on-the-wire roster entry. It accepts either the structured
// teamHistory shape or the flat teams string; the structured history wins when both are set.
type Record struct {
	Name        string      `json:"name" yaml:"name"`
	Nationality string      `json:"nationality" yaml:"nationality"`
	TeamHistory []TeamStint `json:"teamHistory,omitempty" yaml:"teamHistory,omitempty"`
	Teams       string      `json:"teams,omitempty" yaml:"teams,omitempty"`
}

// ToEntity normalizes the record into an Entity.
func (r Record) ToEntity() Entity {
	if len(r.TeamHistory) == 0 && strings.TrimSpace(r.Teams) != "" {
		return RawEntity{Name: r.Name, Nationality: r.Nationality, Teams: r.Teams}.ToEntity()
	}
	history := make([]TeamStint, 0, len(r.TeamHistory))
	for _, stint := range r.TeamHistory {
		team := strings.TrimSpace(stint.Team)
		if team == "" {
			continue
		}
		seasons := make([]Season, 0, len(stint.Seasons))
		for _, season := range stint.Seasons {
			season.Role = strings.TrimSpace(season.Role)
			if season.Role == "" {
				continue
			}
			seasons = append(seasons, season)
		}
		history = append(history, TeamStint{Team: team, Seasons: seasons})
	}
	return Entity{
		Name:        strings.TrimSpace(r.Name),
		Nationality: NormalizeNationality(r.Nationality),
		TeamHistory: history,
	}
}

// FromRecords converts records into a pool, dropping nameless entries.
func FromRecords(records []Record) []Entity {
	pool := make([]Entity, 0, len(records))
	for _, r := range records {
		e := r.ToEntity()
		if e.Name == "" {
			continue
		}
		pool = append(pool, e)
	}
	return pool
}
