package testutil

import (
	"fmt"

	"github.com/preston-bernstein/trivia-grid-service/internal/domain/entities"
)

// Synthetic pool dimensions used across tests.
var (
	PoolTeams         = []string{"Galatasaray", "Barcelona", "Celtic", "Porto", "Ajax"}
	PoolRoles         = []string{"Forward", "Midfielder", "Defender", "Goalkeeper"}
	PoolNationalities = []string{"Turkey", "Spain", "Scotland", "Portugal", "Netherlands", "Brazil"}
)

// SyntheticPool builds n entities spread over five teams, four roles and six
// nationalities. Entity i plays for teams i, i+1 and i+2 (mod 5), one season each,
// with role (i+k) mod 4 in its k-th stint. With n >= 50 every cross-dimension pair
// has at least three matching entities.
func SyntheticPool(n int) []entities.Entity {
	pool := make([]entities.Entity, 0, n)
	for i := 0; i < n; i++ {
		e := entities.Entity{
			Name:        fmt.Sprintf("Player %02d", i),
			Nationality: PoolNationalities[i%len(PoolNationalities)],
		}
		for k := 0; k < 3; k++ {
			e.TeamHistory = append(e.TeamHistory, entities.TeamStint{
				Team: PoolTeams[(i+k)%len(PoolTeams)],
				Seasons: []entities.Season{
					{Year: fmt.Sprintf("%d", 2010+k), Role: PoolRoles[(i+k)%len(PoolRoles)]},
				},
			})
		}
		pool = append(pool, e)
	}
	return pool
}

// SampleEntity returns a single entity with one stint.
func SampleEntity(name, nationality, team, role string) entities.Entity {
	return entities.Entity{
		Name:        name,
		Nationality: nationality,
		TeamHistory: []entities.TeamStint{
			{Team: team, Seasons: []entities.Season{{Year: "2020", Role: role}}},
		},
	}
}
