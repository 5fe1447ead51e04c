package grid

var allDimensions = [...]Dimension{DimensionTeam, DimensionRole, DimensionNationality}

// layout assigns a dimension to every row and column slot.
type layout struct {
	rows [Size]Dimension
	cols [Size]Dimension
}

// viableLayouts enumerates every row/column dimension mix whose nine pairings are
// allowed and whose dimensions have enough distinct values to fill the slots.
func viableLayouts(f Features, teamPairs bool) []layout {
	axes := dimensionTriples()
	var out []layout
	for _, rows := range axes {
		for _, cols := range axes {
			l := layout{rows: rows, cols: cols}
			if l.allowed(teamPairs) && l.fits(f) {
				out = append(out, l)
			}
		}
	}
	return out
}

// dimensionTriples returns every multiset of three dimensions in canonical order.
func dimensionTriples() [][Size]Dimension {
	var out [][Size]Dimension
	for i := range allDimensions {
		for j := i; j < len(allDimensions); j++ {
			for k := j; k < len(allDimensions); k++ {
				out = append(out, [Size]Dimension{allDimensions[i], allDimensions[j], allDimensions[k]})
			}
		}
	}
	return out
}

func (l layout) allowed(teamPairs bool) bool {
	for _, r := range l.rows {
		for _, c := range l.cols {
			if !pairingAllowed(r, c, teamPairs) {
				return false
			}
		}
	}
	return true
}

func (l layout) fits(f Features) bool {
	need := make(map[Dimension]int, len(allDimensions))
	for _, d := range l.rows {
		need[d]++
	}
	for _, d := range l.cols {
		need[d]++
	}
	for d, n := range need {
		if len(f.Values(d)) < n {
			return false
		}
	}
	return true
}
