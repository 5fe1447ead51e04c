package grid

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/preston-bernstein/trivia-grid-service/internal/domain/entities"
	"github.com/preston-bernstein/trivia-grid-service/internal/testutil"
)

func TestTeamPolicyPriority(t *testing.T) {
	policy := DefaultTeamPolicy()
	cases := []struct {
		team string
		want int
	}{
		{"Barcelona", PriorityPreferred},
		{"  barcelona ", PriorityPreferred},
		{"Barcelona Youth Team", PriorityExcluded},
		{"Academy", PriorityExcluded},
		{"unknown", PriorityExcluded},
		{"Second Division", PriorityLow},
		{"Celtic", PriorityDefault},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, policy.Priority(tc.team), tc.team)
	}
}

func TestTeamPolicyContainmentWorksBothWays(t *testing.T) {
	policy := TeamPolicy{Excluded: []string{"Reserve Team"}}
	assert.True(t, policy.IsExcluded("Ajax Reserve Team"))
	assert.True(t, policy.IsExcluded("reserve"))
	assert.False(t, policy.IsExcluded("Ajax"))

	empty := TeamPolicy{Excluded: []string{"", "  "}}
	assert.False(t, empty.IsExcluded("Ajax"))
}

func TestExtractDedupesFiltersAndOrders(t *testing.T) {
	pool := []entities.Entity{
		testutil.SampleEntity("A", "Scotland", "Celtic", "Forward"),
		testutil.SampleEntity("B", "Spain", "Second Division", "Defender"),
		testutil.SampleEntity("C", "Spain", "Barcelona", "Forward"),
		testutil.SampleEntity("D", "", "Barcelona Youth Team", ""),
		testutil.SampleEntity("E", "Scotland", "Celtic", "Goalkeeper"),
	}

	f := Extract(pool, DefaultTeamPolicy())

	assert.Equal(t, []string{"Barcelona", "Celtic", "Second Division"}, f.Teams)
	assert.Equal(t, []string{"Forward", "Defender", "Goalkeeper"}, f.Roles)
	assert.Equal(t, []string{"Scotland", "Spain"}, f.Nationalities)
	assert.Equal(t, f.Roles, f.Values(DimensionRole))
	assert.Nil(t, f.Values(Dimension("league")))
}

func TestExtractEmptyPool(t *testing.T) {
	f := Extract(nil, DefaultTeamPolicy())
	assert.Empty(t, f.Teams)
	assert.Empty(t, f.Roles)
	assert.Empty(t, f.Nationalities)
}

func TestMatchesDispatch(t *testing.T) {
	policy := DefaultTeamPolicy()
	e := testutil.SampleEntity("A", "Turkey", "Galatasaray", "Forward")
	youth := testutil.SampleEntity("B", "Turkey", "Galatasaray U21", "Forward")

	assert.True(t, Matches(e, DimensionNationality, "Turkey", policy))
	assert.False(t, Matches(e, DimensionNationality, "Spain", policy))
	assert.True(t, Matches(e, DimensionTeam, "Galatasaray", policy))
	assert.False(t, Matches(youth, DimensionTeam, "Galatasaray U21", policy))
	assert.True(t, Matches(e, DimensionRole, "Forward", policy))
	assert.False(t, Matches(e, Dimension("league"), "Forward", policy))
}

func TestPairingAllowed(t *testing.T) {
	assert.True(t, pairingAllowed(DimensionTeam, DimensionRole, false))
	assert.True(t, pairingAllowed(DimensionNationality, DimensionRole, false))
	assert.False(t, pairingAllowed(DimensionRole, DimensionRole, true))
	assert.False(t, pairingAllowed(DimensionNationality, DimensionNationality, true))
	assert.False(t, pairingAllowed(DimensionTeam, DimensionTeam, false))
	assert.True(t, pairingAllowed(DimensionTeam, DimensionTeam, true))
}
