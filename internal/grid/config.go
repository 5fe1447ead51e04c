package grid

// Default engine tuning.
const (
	DefaultMinAnswers         = 3
	DefaultPreferredMin       = 4
	DefaultPreferredMax       = 7
	DefaultMinValidCells      = 7
	DefaultMaxAttempts        = 50
	DefaultTeamPairMinAnswers = 2
	DefaultPreferredBias      = 0.6
)

// Config tunes index construction and grid assembly.
type Config struct {
	// MinAnswers is the smallest matching-entity count a cell may have.
	MinAnswers int
	// PreferredMin and PreferredMax bound the answer counts that make the best puzzles.
	PreferredMin int
	PreferredMax int
	// MinValidCells is the number of valid cells a grid needs to be accepted.
	MinValidCells int
	// MaxAttempts caps randomized header selections per assembly.
	MaxAttempts int
	// TeamPairs enables "played for both" team x team candidates.
	TeamPairs bool
	// TeamPairMinAnswers is the lower bar for precomputing and grading team-pair
	// candidates. A grid cell still needs MinAnswers.
	TeamPairMinAnswers int
	// PreferredBias is the probability a team row header is drawn from preferred teams.
	PreferredBias float64
	Policy        TeamPolicy
	// Fallbacks are hand-authored header sets tried after random attempts run out.
	Fallbacks []Template
}

// DefaultConfig returns the standard engine tuning with the built-in team policy.
func DefaultConfig() Config {
	return Config{
		MinAnswers:         DefaultMinAnswers,
		PreferredMin:       DefaultPreferredMin,
		PreferredMax:       DefaultPreferredMax,
		MinValidCells:      DefaultMinValidCells,
		MaxAttempts:        DefaultMaxAttempts,
		TeamPairMinAnswers: DefaultTeamPairMinAnswers,
		PreferredBias:      DefaultPreferredBias,
		Policy:             DefaultTeamPolicy(),
		Fallbacks:          DefaultTemplates(),
	}
}

func (c Config) withDefaults() Config {
	if c.MinAnswers <= 0 {
		c.MinAnswers = DefaultMinAnswers
	}
	if c.PreferredMin <= 0 {
		c.PreferredMin = DefaultPreferredMin
	}
	if c.PreferredMax < c.PreferredMin {
		c.PreferredMax = c.PreferredMin + (DefaultPreferredMax - DefaultPreferredMin)
	}
	if c.MinValidCells <= 0 || c.MinValidCells > CellCount {
		c.MinValidCells = DefaultMinValidCells
	}
	if c.MaxAttempts <= 0 {
		c.MaxAttempts = DefaultMaxAttempts
	}
	if c.TeamPairMinAnswers <= 0 {
		c.TeamPairMinAnswers = DefaultTeamPairMinAnswers
	}
	if c.PreferredBias < 0 || c.PreferredBias > 1 {
		c.PreferredBias = DefaultPreferredBias
	}
	return c
}
