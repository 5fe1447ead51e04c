package fixture

import (
	"context"
	"fmt"

	"github.com/preston-bernstein/trivia-grid-service/internal/domain/entities"
)

// Name identifies the fixture source in logs and metrics.
const Name = "fixture"

var (
	clubs = []string{
		"Galatasaray", "Fenerbahçe", "Beşiktaş", "Trabzonspor",
		"Barcelona", "Real Madrid", "Manchester United", "Liverpool",
		"Bayern Munich", "Juventus", "PSG", "Celtic",
	}
	roles         = []string{"Forward", "Midfielder", "Defender", "Goalkeeper", "Winger"}
	nationalities = []string{"Turkey", "Brazil", "Argentina", "Spain", "France", "Germany", "England", "Portugal"}
	firstNames    = []string{
		"Emre", "Lucas", "Diego", "Sergio", "Antoine", "Thomas", "Harry", "João",
		"Arda", "Rafael", "Pablo", "Kerem", "Hugo", "Leon", "Jack", "Bruno",
		"Mert", "Thiago", "Marco", "Oğuz",
	}
	lastNames = []string{
		"Yılmaz", "Silva", "Fernández", "Ramos", "Martin", "Müller",
		"Walker", "Costa", "Kaya", "Pereira", "Moreno", "Demir",
	}
)

const poolSize = 240

// Provider serves a deterministic synthetic pool, useful for local runs and bootstrapping.
type Provider struct {
	pool []entities.Entity
}

// New creates a fixture provider.
func New() *Provider {
	return &Provider{pool: Pool()}
}

// Name identifies the provider.
func (p *Provider) Name() string { return Name }

// LoadEntities returns a copy of the fixture pool.
func (p *Provider) LoadEntities(ctx context.Context) ([]entities.Entity, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out := make([]entities.Entity, len(p.pool))
	copy(out, p.pool)
	return out, nil
}

// Pool builds the fixture pool. Every entity has three club stints; every seventh one
// also starts at an academy side, which the grid engine excludes.
func Pool() []entities.Entity {
	pool := make([]entities.Entity, 0, poolSize)
	for i := 0; i < poolSize; i++ {
		e := entities.Entity{
			Name:        firstNames[i%len(firstNames)] + " " + lastNames[i/len(firstNames)],
			Nationality: nationalities[(i/3)%len(nationalities)],
		}
		start := 2004 + i%10
		if i%7 == 0 {
			e.TeamHistory = append(e.TeamHistory, entities.TeamStint{
				Team:    clubs[i%len(clubs)] + " Youth Team",
				Seasons: []entities.Season{{Year: fmt.Sprintf("%d-%d", start-3, start), Role: roles[i%len(roles)]}},
			})
		}
		for k := 0; k < 3; k++ {
			from := start + 3*k
			e.TeamHistory = append(e.TeamHistory, entities.TeamStint{
				Team: clubs[(i+5*k)%len(clubs)],
				Seasons: []entities.Season{{
					Year:         fmt.Sprintf("%d-%d", from, from+3),
					JerseyNumber: fmt.Sprint(1 + (i+k)%30),
					Role:         roles[(i+k)%len(roles)],
				}},
			})
		}
		pool = append(pool, e)
	}
	return pool
}
