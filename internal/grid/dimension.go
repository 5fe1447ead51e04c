package grid

import "github.com/preston-bernstein/trivia-grid-service/internal/domain/entities"

// Dimension is one of the categorical axes an entity is classified along.
type Dimension string

const (
	DimensionTeam        Dimension = "team"
	DimensionRole        Dimension = "role"
	DimensionNationality Dimension = "nationality"
)

// Valid reports whether d is a known dimension.
func (d Dimension) Valid() bool {
	switch d {
	case DimensionTeam, DimensionRole, DimensionNationality:
		return true
	default:
		return false
	}
}

// Header is a concrete feature value within a dimension, used as a row or column header.
type Header struct {
	Value     string    `json:"value" yaml:"value"`
	Dimension Dimension `json:"type" yaml:"type"`
}

// Matches reports whether the entity satisfies the (dimension, value) predicate.
// Team values the policy excludes never match.
func Matches(e entities.Entity, dim Dimension, value string, policy TeamPolicy) bool {
	switch dim {
	case DimensionNationality:
		return e.Nationality == value
	case DimensionTeam:
		return !policy.IsExcluded(value) && e.PlayedFor(value)
	case DimensionRole:
		return e.HadRole(value)
	default:
		return false
	}
}

// pairingAllowed reports whether a row dimension may be crossed with a column dimension.
// Role x role and nationality x nationality are degenerate; team x team is a separate
// "played for both" query and only allowed when team pairs are enabled.
func pairingAllowed(row, col Dimension, teamPairs bool) bool {
	if row != col {
		return true
	}
	return row == DimensionTeam && teamPairs
}
