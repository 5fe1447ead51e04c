package grid

import (
	"context"
	"math/rand/v2"
	"sync/atomic"
)

// freshRetries bounds how many grids AssembleFresh draws looking for a new signature.
const freshRetries = 5

// Assembler draws grids from an Index. It holds no per-call state and may be shared.
type Assembler struct {
	index   *Index
	cfg     Config
	layouts []layout
	newRand func() *rand.Rand
}

// Option configures an Assembler.
type Option func(*Assembler)

// WithSeed makes assembly deterministic: the n-th call uses a PCG stream derived from
// seed and n.
func WithSeed(seed uint64) Option {
	return func(a *Assembler) {
		var calls atomic.Uint64
		a.newRand = func() *rand.Rand {
			return rand.New(rand.NewPCG(seed, calls.Add(1)))
		}
	}
}

// NewAssembler builds an assembler over idx using the index's configuration.
func NewAssembler(idx *Index, opts ...Option) *Assembler {
	a := &Assembler{
		index:   idx,
		cfg:     idx.Config(),
		layouts: viableLayouts(idx.Features(), idx.Config().TeamPairs),
		newRand: func() *rand.Rand {
			return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
		},
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// CanGenerate reports whether the index holds at least count candidates.
func (a *Assembler) CanGenerate(count int) bool {
	return a.index.CanGenerate(count)
}

// Assemble runs randomized header selection up to the attempt cap, returning at once
// on a fully valid grid and otherwise the best grid meeting the acceptance threshold.
// When no attempt qualifies it tries the fallback templates. The context is checked
// between attempts; a grid that already qualifies is still returned after cancellation.
func (a *Assembler) Assemble(ctx context.Context) (Grid, error) {
	rng := a.newRand()

	var (
		best     Grid
		haveBest bool
		attempts int
		cause    error
	)
	for attempts < a.cfg.MaxAttempts && len(a.layouts) > 0 {
		if err := ctx.Err(); err != nil {
			cause = err
			break
		}
		attempts++
		g, ok := a.attempt(rng, a.layouts[rng.IntN(len(a.layouts))])
		if !ok {
			continue
		}
		if !haveBest || g.ValidCells > best.ValidCells {
			best, haveBest = g, true
		}
		if g.ValidCells == CellCount {
			break
		}
	}

	if haveBest && best.ValidCells >= a.cfg.MinValidCells {
		return a.finish(best, attempts, false), nil
	}

	if cause == nil {
		for _, t := range a.templates() {
			g, ok := a.fromTemplate(t)
			if !ok {
				continue
			}
			if g.ValidCells >= a.cfg.MinValidCells {
				return a.finish(g, attempts, true), nil
			}
			if !haveBest || g.ValidCells > best.ValidCells {
				best, haveBest = g, true
			}
		}
	}

	genErr := &GenerationError{
		Attempts:   attempts,
		Required:   a.cfg.MinValidCells,
		Candidates: a.index.Len(),
		Cause:      cause,
	}
	if haveBest {
		genErr.BestValid = best.ValidCells
		genErr.Failures = best.Failures()
	}
	return Grid{}, genErr
}

// AssembleFresh assembles a grid whose signature differs from previous. After a
// bounded number of draws it returns the last grid even if it repeats.
func (a *Assembler) AssembleFresh(ctx context.Context, previous string) (Grid, error) {
	var g Grid
	for i := 0; i < freshRetries; i++ {
		var err error
		g, err = a.Assemble(ctx)
		if err != nil {
			return Grid{}, err
		}
		if previous == "" || g.Signature != previous {
			return g, nil
		}
	}
	return g, nil
}

func (a *Assembler) finish(g Grid, attempts int, fallback bool) Grid {
	g.Attempts = attempts
	g.Fallback = fallback
	g.IndexVersion = a.index.Version()
	g.Signature = computeSignature(g.Rows, g.Cols)
	return g
}

// attempt selects headers for one layout and resolves the nine cells.
func (a *Assembler) attempt(rng *rand.Rand, l layout) (Grid, bool) {
	used := make(map[string]struct{}, 2*Size)
	rowDims, colDims := l.rows, l.cols
	rng.Shuffle(Size, func(i, j int) { rowDims[i], rowDims[j] = rowDims[j], rowDims[i] })
	rng.Shuffle(Size, func(i, j int) { colDims[i], colDims[j] = colDims[j], colDims[i] })

	var rows, cols [Size]Header
	for i, dim := range rowDims {
		h, ok := a.pickRow(rng, dim, used)
		if !ok {
			return Grid{}, false
		}
		rows[i] = h
		used[h.Value] = struct{}{}
	}
	for i, dim := range colDims {
		h, ok := a.pickCol(rng, dim, rows, used)
		if !ok {
			return Grid{}, false
		}
		cols[i] = h
		used[h.Value] = struct{}{}
	}
	return a.resolve(rows, cols), true
}

// pickRow draws an unused value able to reach the answer threshold, favouring
// preferred teams with probability PreferredBias.
func (a *Assembler) pickRow(rng *rand.Rand, dim Dimension, used map[string]struct{}) (Header, bool) {
	pool := a.available(dim, used)
	if len(pool) == 0 {
		return Header{}, false
	}
	if dim == DimensionTeam && rng.Float64() < a.cfg.PreferredBias {
		var preferred []Header
		for _, h := range pool {
			if a.cfg.Policy.IsPreferred(h.Value) {
				preferred = append(preferred, h)
			}
		}
		if len(preferred) > 0 {
			pool = preferred
		}
	}
	return pool[rng.IntN(len(pool))], true
}

// pickCol chooses, among unused values, one that forms valid cells with the most rows.
// Ties are broken at random.
func (a *Assembler) pickCol(rng *rand.Rand, dim Dimension, rows [Size]Header, used map[string]struct{}) (Header, bool) {
	pool := a.available(dim, used)
	if len(pool) == 0 {
		return Header{}, false
	}
	bestSupport := -1
	var ties []Header
	for _, h := range pool {
		support := 0
		for _, row := range rows {
			if a.validCell(row, h) {
				support++
			}
		}
		switch {
		case support > bestSupport:
			bestSupport = support
			ties = append(ties[:0], h)
		case support == bestSupport:
			ties = append(ties, h)
		}
	}
	return ties[rng.IntN(len(ties))], true
}

func (a *Assembler) available(dim Dimension, used map[string]struct{}) []Header {
	var out []Header
	for _, v := range a.index.Features().Values(dim) {
		if _, taken := used[v]; taken {
			continue
		}
		h := Header{Value: v, Dimension: dim}
		if a.index.Support(h) < a.cfg.MinAnswers {
			continue
		}
		out = append(out, h)
	}
	return out
}

func (a *Assembler) validCell(row, col Header) bool {
	if !pairingAllowed(row.Dimension, col.Dimension, a.cfg.TeamPairs) {
		return false
	}
	c, ok := a.index.Lookup(row, col)
	return ok && c.Count >= a.cfg.MinAnswers
}

func (a *Assembler) resolve(rows, cols [Size]Header) Grid {
	g := Grid{Rows: rows, Cols: cols}
	for r := 0; r < Size; r++ {
		for c := 0; c < Size; c++ {
			cell := a.resolveCell(rows[r], cols[c])
			if cell.Valid {
				g.ValidCells++
			}
			g.Cells[r][c] = cell
		}
	}
	return g
}

func (a *Assembler) resolveCell(row, col Header) Cell {
	cell := Cell{Row: row, Col: col, Answers: []string{}}
	if !pairingAllowed(row.Dimension, col.Dimension, a.cfg.TeamPairs) {
		cell.Reason = ReasonDegeneratePairing
		return cell
	}
	cand, ok := a.index.Lookup(row, col)
	if !ok {
		cell.Reason = ReasonNoCombination
		return cell
	}
	if cand.Count < a.cfg.MinAnswers {
		cell.Reason = ReasonBelowMinimum
		cell.Count = cand.Count
		return cell
	}
	cell.Answers = append([]string(nil), cand.Answers...)
	cell.Count = cand.Count
	cell.Difficulty = cand.Difficulty
	cell.Kind = cand.Kind
	cell.Valid = true
	return cell
}

func (a *Assembler) templates() []Template {
	out := append([]Template(nil), a.cfg.Fallbacks...)
	return append(out, derivedTemplates(a.index)...)
}

// fromTemplate resolves a template, rejecting ones that repeat a header value or use
// a dimension outside the known set.
func (a *Assembler) fromTemplate(t Template) (Grid, bool) {
	seen := make(map[string]struct{}, 2*Size)
	for _, h := range append(t.Rows[:], t.Cols[:]...) {
		if h.Value == "" || !h.Dimension.Valid() {
			return Grid{}, false
		}
		if h.Dimension == DimensionTeam && a.cfg.Policy.IsExcluded(h.Value) {
			return Grid{}, false
		}
		if _, dup := seen[h.Value]; dup {
			return Grid{}, false
		}
		seen[h.Value] = struct{}{}
	}
	return a.resolve(t.Rows, t.Cols), true
}
