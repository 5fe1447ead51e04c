package grid

// Difficulty tiers derived from answer counts.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Kind tags ordinary intersections apart from "played for both" queries.
type Kind string

const (
	KindStandard Kind = "standard"
	KindTeamPair Kind = "team-pair"
)

// Candidate is a precomputed (row value, column value) pair and its answers.
type Candidate struct {
	Row          Header     `json:"row"`
	Col          Header     `json:"col"`
	Answers      []string   `json:"answers"`
	Count        int        `json:"count"`
	Difficulty   Difficulty `json:"difficulty"`
	Score        int        `json:"score"`
	TeamPriority int        `json:"teamPriority"`
	Kind         Kind       `json:"questionType"`
}

// Pairing names the dimension pair of a candidate, e.g. "team-role".
func (c Candidate) Pairing() string {
	return pairingName(c.Row.Dimension, c.Col.Dimension)
}

func pairingName(row, col Dimension) string {
	return string(row) + "-" + string(col)
}

func difficultyFor(kind Kind, count int, cfg Config) Difficulty {
	if kind == KindTeamPair {
		switch {
		case count >= 4:
			return DifficultyEasy
		case count >= 2:
			return DifficultyMedium
		default:
			return DifficultyHard
		}
	}
	switch {
	case count >= cfg.PreferredMax+2:
		return DifficultyEasy
	case count >= cfg.PreferredMin && count <= cfg.PreferredMax:
		return DifficultyMedium
	default:
		return DifficultyHard
	}
}

func scoreFor(row, col Header, count int, cfg Config) int {
	score := 0
	switch {
	case count >= cfg.PreferredMin && count <= cfg.PreferredMax:
		score += 100
	case count >= cfg.MinAnswers:
		score += 70
	default:
		score += 30
	}

	switch pairingName(row.Dimension, col.Dimension) {
	case pairingName(DimensionTeam, DimensionRole), pairingName(DimensionRole, DimensionTeam):
		score += 30
	case pairingName(DimensionTeam, DimensionNationality), pairingName(DimensionNationality, DimensionTeam):
		score += 20
	case pairingName(DimensionRole, DimensionNationality), pairingName(DimensionNationality, DimensionRole):
		score += 15
	case pairingName(DimensionTeam, DimensionTeam):
		score += 50
	}

	rowPreferred := row.Dimension == DimensionTeam && cfg.Policy.IsPreferred(row.Value)
	colPreferred := col.Dimension == DimensionTeam && cfg.Policy.IsPreferred(col.Value)
	if rowPreferred {
		score += 25
	}
	if colPreferred {
		score += 25
	}
	if rowPreferred && colPreferred {
		score += 40
	}
	return score
}

func teamPriorityFor(row, col Header, policy TeamPolicy) int {
	total := 0
	for _, h := range []Header{row, col} {
		if h.Dimension == DimensionTeam {
			total += policy.Priority(h.Value)
		}
	}
	return total
}
