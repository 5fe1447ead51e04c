package grid

import "strings"

// Team priority scores.
const (
	PriorityExcluded  = -1
	PriorityLow       = 1
	PriorityDefault   = 2
	PriorityPreferred = 3
)

// DefaultExcludedTeams lists youth, reserve and placeholder teams that never make a header.
var DefaultExcludedTeams = []string{
	"Youth Team",
	"Reserve Team",
	"B Team",
	"Academy",
	"U21",
	"U19",
	"U18",
	"Unknown",
	"Free Agent",
	"Amateur",
	"Local Club",
	"Training Camp",
}

// DefaultLowPriorityTeams lists lower-division markers that are used only when needed.
var DefaultLowPriorityTeams = []string{
	"Championship Teams",
	"Second Division",
	"League Two",
	"Third Division",
	"Lower Division Teams",
}

// DefaultPreferredTeams lists well-known clubs that headers are biased toward.
var DefaultPreferredTeams = []string{
	"Galatasaray",
	"Fenerbahçe",
	"Beşiktaş",
	"Trabzonspor",
	"Barcelona",
	"Real Madrid",
	"Manchester United",
	"Manchester City",
	"Liverpool",
	"Chelsea",
	"Arsenal",
	"Tottenham",
	"Bayern Munich",
	"Borussia Dortmund",
	"PSG",
	"Juventus",
	"AC Milan",
	"Inter",
	"Atletico Madrid",
	"Sevilla",
	"Valencia",
	"Ajax",
	"Porto",
	"Benfica",
	"Napoli",
	"Roma",
	"Lazio",
}

// TeamPolicy decides which team values are excluded and how the rest are ranked.
// Lists are compared case-insensitively after trimming.
type TeamPolicy struct {
	Excluded    []string
	Preferred   []string
	LowPriority []string
}

// DefaultTeamPolicy returns the built-in exclusion and preference lists.
func DefaultTeamPolicy() TeamPolicy {
	return TeamPolicy{
		Excluded:    append([]string(nil), DefaultExcludedTeams...),
		Preferred:   append([]string(nil), DefaultPreferredTeams...),
		LowPriority: append([]string(nil), DefaultLowPriorityTeams...),
	}
}

// IsExcluded reports whether the team contains, or is contained by, any excluded entry.
func (p TeamPolicy) IsExcluded(team string) bool {
	return containsEither(p.Excluded, team)
}

// IsPreferred reports whether the team equals a preferred entry.
func (p TeamPolicy) IsPreferred(team string) bool {
	normalized := normalizeTeam(team)
	for _, preferred := range p.Preferred {
		if normalizeTeam(preferred) == normalized {
			return true
		}
	}
	return false
}

// Priority returns the team's rank: -1 excluded, 3 preferred, 1 low priority, 2 otherwise.
func (p TeamPolicy) Priority(team string) int {
	switch {
	case p.IsExcluded(team):
		return PriorityExcluded
	case p.IsPreferred(team):
		return PriorityPreferred
	case containsEither(p.LowPriority, team):
		return PriorityLow
	default:
		return PriorityDefault
	}
}

func containsEither(list []string, team string) bool {
	normalized := normalizeTeam(team)
	for _, entry := range list {
		candidate := normalizeTeam(entry)
		if candidate == "" {
			continue
		}
		if strings.Contains(normalized, candidate) || strings.Contains(candidate, normalized) {
			return true
		}
	}
	return false
}

func normalizeTeam(team string) string {
	return strings.ToLower(strings.TrimSpace(team))
}
