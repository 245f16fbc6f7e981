// Package quiz builds multiple-choice questions and keeps score through the
// progress tracker.
package quiz

import (
	"context"
	"fmt"
	"math/rand/v2"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/ross1116/pokeref/internal/pokemon"
)

type Kind string

const (
	TypeMatchup  Kind = "type-matchup"
	PokemonGuess Kind = "pokemon-guess"
)

const (
	OptionCount = 4
	guessPrompt = "Who's that Pokémon?"
)

type Question struct {
	ID          string   `json:"id"`
	Kind        Kind     `json:"kind"`
	Prompt      string   `json:"prompt"`
	Options     []string `json:"options"`
	Answer      string   `json:"-"`
	Explanation string   `json:"-"`
	Sprite      string   `json:"sprite,omitempty"`
}

// Source loads creatures for guess questions. *pokemon.Client satisfies it.
type Source interface {
	GetPokemon(ctx context.Context, id int) (*pokemon.Pokemon, error)
}

// Generator draws questions. rng is not safe for concurrent use, so every
// draw happens under mu; network calls do not.
type Generator struct {
	mu  sync.Mutex
	src Source
	rng *rand.Rand
}

func NewGenerator(src Source, rng *rand.Rand) *Generator {
	return &Generator{src: src, rng: rng}
}

func (g *Generator) shuffle(options []string) {
	g.rng.Shuffle(len(options), func(i, j int) {
		options[i], options[j] = options[j], options[i]
	})
}

// TypeMatchup asks which type is super effective against a random defender.
func (g *Generator) TypeMatchup() Question {
	g.mu.Lock()
	defer g.mu.Unlock()

	defender := pokemon.AllTypes[g.rng.IntN(len(pokemon.AllTypes))]
	answer := pokemon.SuperEffectiveAgainst(defender)

	wrong := make([]string, 0, len(pokemon.AllTypes)-1)
	for _, t := range pokemon.AllTypes {
		if t != answer {
			wrong = append(wrong, t)
		}
	}
	g.shuffle(wrong)

	options := append([]string{answer}, wrong[:OptionCount-1]...)
	g.shuffle(options)

	return Question{
		ID:          uuid.NewString(),
		Kind:        TypeMatchup,
		Prompt:      fmt.Sprintf("Which type is super effective against %s?", titleCase(defender)),
		Options:     options,
		Answer:      answer,
		Explanation: fmt.Sprintf("%s is super effective against %s!", titleCase(answer), titleCase(defender)),
	}
}

// PokemonGuess shows a sprite and offers its name among three distractors.
func (g *Generator) PokemonGuess(ctx context.Context) (Question, error) {
	g.mu.Lock()
	id := pokemon.RandomID(g.rng)
	ids := append([]int{id}, pokemon.RandomDistinct(g.rng, OptionCount-1, id)...)
	g.mu.Unlock()

	names := make([]string, len(ids))
	eg, ctx := errgroup.WithContext(ctx)
	for i, id := range ids {
		eg.Go(func() error {
			p, err := g.src.GetPokemon(ctx, id)
			if err != nil {
				return fmt.Errorf("quiz: load option %d: %w", id, err)
			}
			names[i] = p.Name
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return Question{}, err
	}

	answer := names[0]
	options := append([]string(nil), names...)
	g.mu.Lock()
	g.shuffle(options)
	g.mu.Unlock()

	return Question{
		ID:          uuid.NewString(),
		Kind:        PokemonGuess,
		Prompt:      guessPrompt,
		Options:     options,
		Answer:      answer,
		Explanation: fmt.Sprintf("It's %s!", titleCase(answer)),
		Sprite:      pokemon.SpriteURL(id),
	}, nil
}

// Next picks either kind of question with equal odds.
func (g *Generator) Next(ctx context.Context) (Question, error) {
	g.mu.Lock()
	matchup := g.rng.IntN(2) == 0
	g.mu.Unlock()

	if matchup {
		return g.TypeMatchup(), nil
	}
	return g.PokemonGuess(ctx)
}

func titleCase(s string) string {
	return cases.Title(language.English).String(s)
}
