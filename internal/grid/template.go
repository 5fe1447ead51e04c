package grid

import "sort"

// Template is a fixed set of headers tried when random selection cannot reach the
// acceptance threshold.
type Template struct {
	Name string       `json:"name" yaml:"name"`
	Rows [Size]Header `json:"rows" yaml:"rows"`
	Cols [Size]Header `json:"cols" yaml:"cols"`
}

func teamHeader(v string) Header {
	return Header{Value: v, Dimension: DimensionTeam}
}

func roleHeader(v string) Header {
	return Header{Value: v, Dimension: DimensionRole}
}

func nationalityHeader(v string) Header {
	return Header{Value: v, Dimension: DimensionNationality}
}

// DefaultTemplates are hand-authored header sets known to work against typical rosters.
func DefaultTemplates() []Template {
	return []Template{
		{
			Name: "classic-clubs-by-position",
			Rows: [Size]Header{teamHeader("Barcelona"), teamHeader("Real Madrid"), teamHeader("Manchester United")},
			Cols: [Size]Header{roleHeader("Forward"), roleHeader("Midfielder"), roleHeader("Defender")},
		},
		{
			Name: "istanbul-clubs-by-nation",
			Rows: [Size]Header{teamHeader("Galatasaray"), teamHeader("Fenerbahçe"), teamHeader("Beşiktaş")},
			Cols: [Size]Header{nationalityHeader("Turkey"), nationalityHeader("Brazil"), nationalityHeader("Argentina")},
		},
		{
			Name: "european-giants-by-nation",
			Rows: [Size]Header{teamHeader("Bayern Munich"), teamHeader("Juventus"), teamHeader("PSG")},
			Cols: [Size]Header{nationalityHeader("France"), nationalityHeader("Germany"), nationalityHeader("Spain")},
		},
	}
}

// derivedTemplates crosses the top-priority teams with the best supported roles and
// nationalities of the indexed pool.
func derivedTemplates(idx *Index) []Template {
	teams := idx.features.Teams
	if len(teams) < Size {
		return nil
	}
	var rows [Size]Header
	for i := range rows {
		rows[i] = teamHeader(teams[i])
	}

	var out []Template
	if roles := idx.topValues(DimensionRole); len(roles) >= Size {
		t := Template{Name: "derived-teams-by-role", Rows: rows}
		for i := range t.Cols {
			t.Cols[i] = roleHeader(roles[i])
		}
		out = append(out, t)
	}
	if nats := idx.topValues(DimensionNationality); len(nats) >= Size {
		t := Template{Name: "derived-teams-by-nation", Rows: rows}
		for i := range t.Cols {
			t.Cols[i] = nationalityHeader(nats[i])
		}
		out = append(out, t)
	}
	return out
}

// topValues returns a dimension's values ordered by entity support, most first.
func (idx *Index) topValues(dim Dimension) []string {
	values := append([]string(nil), idx.features.Values(dim)...)
	sort.SliceStable(values, func(i, j int) bool {
		return idx.Support(Header{Value: values[i], Dimension: dim}) > idx.Support(Header{Value: values[j], Dimension: dim})
	})
	return values
}
