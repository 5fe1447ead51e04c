package grid

import (
	"sort"
	"strings"
	"time"

	"github.com/preston-bernstein/trivia-grid-service/internal/domain/entities"
)

type cellKey struct {
	rowValue string
	rowDim   Dimension
	colValue string
	colDim   Dimension
}

func keyFor(row, col Header) cellKey {
	return cellKey{rowValue: row.Value, rowDim: row.Dimension, colValue: col.Value, colDim: col.Dimension}
}

// Index is the immutable result of precomputation. It is safe for concurrent reads.
type Index struct {
	cfg           Config
	version       uint64
	features      Features
	candidates    []Candidate
	playable      int
	lookup        map[cellKey]int
	support       map[Header]int
	entityCount   int
	excludedTeams int
	buildDuration time.Duration
}

// dimensionPairs are the cross-dimension pairings precomputed for every pool.
var dimensionPairs = [][2]Dimension{
	{DimensionTeam, DimensionRole},
	{DimensionTeam, DimensionNationality},
	{DimensionRole, DimensionNationality},
}

// BuildIndex extracts features from the pool and precomputes every candidate whose
// matching-entity count reaches the configured threshold.
func BuildIndex(pool []entities.Entity, cfg Config) *Index {
	start := time.Now()
	cfg = cfg.withDefaults()
	features := Extract(pool, cfg.Policy)

	members := make(map[Header][]int)
	for _, dim := range []Dimension{DimensionTeam, DimensionRole, DimensionNationality} {
		for _, value := range features.Values(dim) {
			h := Header{Value: value, Dimension: dim}
			members[h] = memberIndexes(pool, h, cfg.Policy)
		}
	}

	idx := &Index{
		cfg:           cfg,
		features:      features,
		lookup:        make(map[cellKey]int),
		support:       make(map[Header]int, len(members)),
		entityCount:   len(pool),
		excludedTeams: countExcludedTeams(pool, cfg.Policy),
	}
	for h, m := range members {
		idx.support[h] = len(m)
	}

	var candidates []Candidate
	for _, pair := range dimensionPairs {
		for _, rowValue := range features.Values(pair[0]) {
			row := Header{Value: rowValue, Dimension: pair[0]}
			for _, colValue := range features.Values(pair[1]) {
				col := Header{Value: colValue, Dimension: pair[1]}
				if c, ok := buildCandidate(pool, row, col, members, KindStandard, cfg.MinAnswers, cfg); ok {
					candidates = append(candidates, c)
				}
			}
		}
	}

	if cfg.TeamPairs {
		teams := features.Teams
		for i := 0; i < len(teams); i++ {
			for j := i + 1; j < len(teams); j++ {
				row := Header{Value: teams[i], Dimension: DimensionTeam}
				col := Header{Value: teams[j], Dimension: DimensionTeam}
				if c, ok := buildCandidate(pool, row, col, members, KindTeamPair, cfg.TeamPairMinAnswers, cfg); ok {
					candidates = append(candidates, c)
				}
			}
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].TeamPriority != candidates[j].TeamPriority {
			return candidates[i].TeamPriority > candidates[j].TeamPriority
		}
		return candidates[i].Score > candidates[j].Score
	})
	for i, c := range candidates {
		idx.lookup[keyFor(c.Row, c.Col)] = i
		if c.Count >= cfg.MinAnswers {
			idx.playable++
		}
	}
	idx.candidates = candidates
	idx.buildDuration = time.Since(start)
	return idx
}

func buildCandidate(pool []entities.Entity, row, col Header, members map[Header][]int, kind Kind, threshold int, cfg Config) (Candidate, bool) {
	matched := intersect(members[row], members[col])
	if len(matched) < threshold {
		return Candidate{}, false
	}
	answers := uniqueNames(pool, matched)
	if len(answers) < threshold {
		return Candidate{}, false
	}
	return Candidate{
		Row:          row,
		Col:          col,
		Answers:      answers,
		Count:        len(answers),
		Difficulty:   difficultyFor(kind, len(answers), cfg),
		Score:        scoreFor(row, col, len(answers), cfg),
		TeamPriority: teamPriorityFor(row, col, cfg.Policy),
		Kind:         kind,
	}, true
}

// memberIndexes returns the ascending pool positions of entities matching the header.
func memberIndexes(pool []entities.Entity, h Header, policy TeamPolicy) []int {
	var out []int
	for i, e := range pool {
		if Matches(e, h.Dimension, h.Value, policy) {
			out = append(out, i)
		}
	}
	return out
}

func intersect(a, b []int) []int {
	var out []int
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i] == b[j]:
			out = append(out, a[i])
			i++
			j++
		case a[i] < b[j]:
			i++
		default:
			j++
		}
	}
	return out
}

// uniqueNames collapses entity names case-insensitively, skipping blank names.
func uniqueNames(pool []entities.Entity, positions []int) []string {
	seen := make(map[string]struct{}, len(positions))
	names := make([]string, 0, len(positions))
	for _, p := range positions {
		name := strings.TrimSpace(pool[p].Name)
		if name == "" {
			continue
		}
		key := strings.ToLower(name)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		names = append(names, name)
	}
	return names
}

func countExcludedTeams(pool []entities.Entity, policy TeamPolicy) int {
	excluded := make(map[string]struct{})
	for _, e := range pool {
		for _, stint := range e.TeamHistory {
			if stint.Team != "" && policy.IsExcluded(stint.Team) {
				excluded[stint.Team] = struct{}{}
			}
		}
	}
	return len(excluded)
}

// WithVersion returns a copy of the index stamped with a catalog version.
// The copy shares the underlying read-only data.
func (idx *Index) WithVersion(v uint64) *Index {
	clone := *idx
	clone.version = v
	return &clone
}

// Version is the catalog version the index was published under, or 0.
func (idx *Index) Version() uint64 { return idx.version }

// Config returns the normalized configuration the index was built with.
func (idx *Index) Config() Config { return idx.cfg }

// Features returns the extracted feature values.
func (idx *Index) Features() Features { return idx.features }

// Len reports the number of candidates.
func (idx *Index) Len() int { return len(idx.candidates) }

// Candidates returns the candidates sorted by team priority then score.
func (idx *Index) Candidates() []Candidate {
	out := make([]Candidate, len(idx.candidates))
	copy(out, idx.candidates)
	return out
}

// CanGenerate reports whether at least count candidates can fill a cell. Team-pair
// candidates below MinAnswers are kept for stats but never placed, so they do not count.
func (idx *Index) CanGenerate(count int) bool {
	return idx != nil && idx.playable >= count
}

// Lookup resolves the candidate for a (row, col) header pair in either stored
// orientation. The returned candidate is oriented as requested.
func (idx *Index) Lookup(row, col Header) (Candidate, bool) {
	if i, ok := idx.lookup[keyFor(row, col)]; ok {
		return idx.candidates[i], true
	}
	if i, ok := idx.lookup[keyFor(col, row)]; ok {
		c := idx.candidates[i]
		c.Row, c.Col = row, col
		return c, true
	}
	return Candidate{}, false
}

// Support reports how many entities match a single header.
func (idx *Index) Support(h Header) int { return idx.support[h] }

// Stats summarizes an index.
type Stats struct {
	Entities       int                `json:"entities"`
	Teams          int                `json:"teams"`
	Roles          int                `json:"roles"`
	Nationalities  int                `json:"nationalities"`
	ExcludedTeams  int                `json:"excludedTeams"`
	Candidates     int                `json:"candidates"`
	ByDifficulty   map[Difficulty]int `json:"byDifficulty"`
	ByPairing      map[string]int     `json:"byPairing"`
	AverageAnswers float64            `json:"averageAnswers"`
	Version        uint64             `json:"version"`
	BuildMillis    int64              `json:"buildMs"`
}

// Stats reports counts over the index.
func (idx *Index) Stats() Stats {
	s := Stats{
		Entities:      idx.entityCount,
		Teams:         len(idx.features.Teams),
		Roles:         len(idx.features.Roles),
		Nationalities: len(idx.features.Nationalities),
		ExcludedTeams: idx.excludedTeams,
		Candidates:    len(idx.candidates),
		ByDifficulty:  make(map[Difficulty]int),
		ByPairing:     make(map[string]int),
		Version:       idx.version,
		BuildMillis:   idx.buildDuration.Milliseconds(),
	}
	total := 0
	for _, c := range idx.candidates {
		s.ByDifficulty[c.Difficulty]++
		s.ByPairing[c.Pairing()]++
		total += c.Count
	}
	if len(idx.candidates) > 0 {
		s.AverageAnswers = float64(total) / float64(len(idx.candidates))
	}
	return s
}

// BuildDuration reports how long precomputation took.
func (idx *Index) BuildDuration() time.Duration { return idx.buildDuration }
