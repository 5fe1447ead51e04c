package grid

import (
	"sort"

	"github.com/preston-bernstein/trivia-grid-service/internal/domain/entities"
)

// Features holds the deduplicated values found in the pool for each dimension.
type Features struct {
	Teams         []string `json:"teams"`
	Roles         []string `json:"roles"`
	Nationalities []string `json:"nationalities"`
}

// Values returns the feature values for a dimension.
func (f Features) Values(dim Dimension) []string {
	switch dim {
	case DimensionTeam:
		return f.Teams
	case DimensionRole:
		return f.Roles
	case DimensionNationality:
		return f.Nationalities
	default:
		return nil
	}
}

// Extract scans the pool once and returns its teams, roles and nationalities.
// Values keep first-seen order; excluded teams are dropped and the remaining teams
// are stably sorted by priority, preferred first. Empty values are ignored.
func Extract(pool []entities.Entity, policy TeamPolicy) Features {
	teams := newOrderedSet()
	roles := newOrderedSet()
	nationalities := newOrderedSet()

	for _, e := range pool {
		nationalities.add(e.Nationality)
		for _, stint := range e.TeamHistory {
			if !policy.IsExcluded(stint.Team) {
				teams.add(stint.Team)
			}
			for _, season := range stint.Seasons {
				roles.add(season.Role)
			}
		}
	}

	sortedTeams := teams.values
	sort.SliceStable(sortedTeams, func(i, j int) bool {
		return policy.Priority(sortedTeams[i]) > policy.Priority(sortedTeams[j])
	})

	return Features{
		Teams:         sortedTeams,
		Roles:         roles.values,
		Nationalities: nationalities.values,
	}
}

type orderedSet struct {
	seen   map[string]struct{}
	values []string
}

func newOrderedSet() *orderedSet {
	return &orderedSet{seen: make(map[string]struct{}), values: []string{}}
}

func (s *orderedSet) add(v string) {
	if v == "" {
		return
	}
	if _, ok := s.seen[v]; ok {
		return
	}
	s.seen[v] = struct{}{}
	s.values = append(s.values, v)
}
