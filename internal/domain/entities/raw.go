package entities

import (
	"path"
	"regexp"
	"strings"
)

// RawEntity is the flat roster shape where the whole career is one string, e.g.
// "Barcelona: (2004-2021, Forward) | PSG: (2021-2023, Forward)".
type RawEntity struct {
	Name        string `json:"name" yaml:"name"`
	Nationality string `json:"nationality" yaml:"nationality"`
	Teams       string `json:"teams" yaml:"teams"`
}

var seasonPattern = regexp.MustCompile(`\(([\d\s-]*),\s*([^)]+)\)`)

// ToEntity converts the raw shape into an Entity, parsing each team segment separately.
func (r RawEntity) ToEntity() Entity {
	return Entity{
		Name:        strings.TrimSpace(r.Name),
		Nationality: NormalizeNationality(r.Nationality),
		TeamHistory: ParseTeams(r.Teams),
	}
}

// ParseTeams parses "Team: (years, role), (years, role) | Team: ..." into team stints.
// Segments without a team name are skipped.
func ParseTeams(raw string) []TeamStint {
	var stints []TeamStint
	for _, segment := range strings.Split(raw, "|") {
		team, rest, ok := strings.Cut(segment, ":")
		if !ok {
			continue
		}
		team = strings.TrimSpace(team)
		if team == "" {
			continue
		}
		stint := TeamStint{Team: team, Seasons: []Season{}}
		for _, m := range seasonPattern.FindAllStringSubmatch(rest, -1) {
			role := strings.TrimSpace(m[2])
			if role == "" {
				continue
			}
			stint.Seasons = append(stint.Seasons, Season{
				Year: strings.TrimSpace(m[1]),
				Role: role,
			})
		}
		stints = append(stints, stint)
	}
	return stints
}

// NormalizeNationality trims the value and collapses flag image paths
// ("https://cdn/flags/brazil.png") to their basename without extension.
func NormalizeNationality(raw string) string {
	raw = strings.TrimSpace(raw)
	if !strings.Contains(raw, "/") {
		return raw
	}
	base := path.Base(raw)
	return strings.TrimSuffix(base, path.Ext(base))
}
