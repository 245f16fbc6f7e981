package battle

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"

	"golang.org/x/sync/errgroup"

	"github.com/ross1116/pokeref/internal/pokemon"
)

var (
	// ErrRosterFetch wraps any failure to load one of the six combatants.
	ErrRosterFetch = errors.New("battle: roster fetch failed")
	ErrInvalidTeam = fmt.Errorf("battle: a team is exactly %d ids in 1..%d", TeamSize, pokemon.KantoCount)
)

// Source loads a creature by national dex id. *pokemon.Client satisfies it.
type Source interface {
	GetPokemon(ctx context.Context, id int) (*pokemon.Pokemon, error)
}

func ValidateTeam(ids []int) error {
	if len(ids) != TeamSize {
		return ErrInvalidTeam
	}
	for _, id := range ids {
		if id < 1 || id > pokemon.KantoCount {
			return ErrInvalidTeam
		}
	}
	return nil
}

// FetchRoster loads every id in parallel, at most parallel at a time, and
// returns the combatants in id order. Any failure aborts the whole roster.
func FetchRoster(ctx context.Context, src Source, ids []int, parallel int) ([]*Combatant, error) {
	out := make([]*Combatant, len(ids))
	g, ctx := errgroup.WithContext(ctx)
	if parallel > 0 {
		g.SetLimit(parallel)
	}
	for i, id := range ids {
		g.Go(func() error {
			p, err := src.GetPokemon(ctx, id)
			if err != nil {
				return fmt.Errorf("%w: id %d: %w", ErrRosterFetch, id, err)
			}
			c, err := NewCombatant(p)
			if err != nil {
				return fmt.Errorf("%w: id %d: %w", ErrRosterFetch, id, err)
			}
			out[i] = c
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// RandomOpponentIDs draws the opponent team uniformly from the Kanto dex.
func RandomOpponentIDs(rng *rand.Rand) []int {
	return pokemon.RandomSquad(rng, TeamSize)
}

// Setup validates the player's picks, draws an opponent team and loads all
// six combatants before the battle starts.
func Setup(ctx context.Context, src Source, playerIDs []int, rng *rand.Rand, parallel int) (*Battle, error) {
	if err := ValidateTeam(playerIDs); err != nil {
		return nil, err
	}
	ids := append(append([]int(nil), playerIDs...), RandomOpponentIDs(rng)...)
	roster, err := FetchRoster(ctx, src, ids, parallel)
	if err != nil {
		return nil, err
	}
	var player, opponent Team
	copy(player[:], roster[:TeamSize])
	copy(opponent[:], roster[TeamSize:])
	return NewBattle(player, opponent)
}
