// Package guess runs the silhouette game: show a creature, take one guess,
// keep a win streak.
package guess

import (
	"context"
	"errors"
	"math/rand/v2"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/ross1116/pokeref/internal/pokemon"
	"github.com/ross1116/pokeref/internal/textnorm"
)

var (
	ErrNoRound    = errors.New("guess: no round in play")
	ErrRoundOver  = errors.New("guess: round already decided")
	ErrStaleRound = errors.New("guess: round is no longer in play")
)

type Source interface {
	GetPokemon(ctx context.Context, id int) (*pokemon.Pokemon, error)
}

// Streaker is the part of *progress.Tracker the game writes to.
type Streaker interface {
	Streak() int
	IncrementStreak(ctx context.Context) int
	ResetStreak(ctx context.Context) int
}

type Round struct {
	RoundID string `json:"roundId"`
	ID      int    `json:"id"`
	Name    string `json:"-"`
	Sprite  string `json:"sprite"`
}

type Verdict struct {
	Guess   string `json:"guess"`
	Correct bool   `json:"correct"`
	Answer  string `json:"answer"`
	Streak  int    `json:"streak"`
}

type Game struct {
	mu      sync.Mutex
	src     Source
	rng     *rand.Rand
	streak  Streaker
	round   *Round
	decided bool
}

func NewGame(src Source, rng *rand.Rand, streak Streaker) *Game {
	return &Game{src: src, rng: rng, streak: streak}
}

// NewRound loads a random Kanto creature and puts it in play.
func (g *Game) NewRound(ctx context.Context) (Round, error) {
	g.mu.Lock()
	id := pokemon.RandomID(g.rng)
	g.mu.Unlock()

	p, err := g.src.GetPokemon(ctx, id)
	if err != nil {
		return Round{}, err
	}
	sprite := p.Sprites.Other.OfficialArtwork.FrontDefault
	if sprite == "" {
		sprite = pokemon.SpriteURL(p.ID)
	}
	r := Round{RoundID: uuid.NewString(), ID: p.ID, Name: p.Name, Sprite: sprite}

	g.mu.Lock()
	g.round = &r
	g.decided = false
	g.mu.Unlock()
	return r, nil
}

// Open returns the round in play if it is still undecided, or starts a new one.
func (g *Game) Open(ctx context.Context) (Round, error) {
	g.mu.Lock()
	if g.round != nil && !g.decided {
		r := *g.round
		g.mu.Unlock()
		return r, nil
	}
	g.mu.Unlock()
	return g.NewRound(ctx)
}

// Skip abandons the round in play without touching the streak and starts a
// new one.
func (g *Game) Skip(ctx context.Context) (Round, error) {
	g.mu.Lock()
	g.round = nil
	g.decided = false
	g.mu.Unlock()
	return g.NewRound(ctx)
}

// Current returns the round in play.
func (g *Game) Current() (Round, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.round == nil {
		return Round{}, false
	}
	return *g.round, true
}

// Check grades a guess for the round roundID, or for whatever round is in
// play when roundID is empty. A blank guess is ignored and reports ok == false.
func (g *Game) Check(ctx context.Context, roundID, guess string) (v Verdict, ok bool, err error) {
	guess = strings.TrimSpace(guess)
	if guess == "" {
		return Verdict{}, false, nil
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	if g.round == nil {
		return Verdict{}, false, ErrNoRound
	}
	if roundID != "" && roundID != g.round.RoundID {
		return Verdict{}, false, ErrStaleRound
	}
	if g.decided {
		return Verdict{}, false, ErrRoundOver
	}
	g.decided = true

	v = Verdict{
		Guess:   guess,
		Correct: textnorm.Equal(guess, g.round.Name),
		Answer:  g.round.Name,
	}
	if v.Correct {
		v.Streak = g.streak.IncrementStreak(ctx)
	} else {
		v.Streak = g.streak.ResetStreak(ctx)
	}
	return v, true, nil
}

func (g *Game) Streak() int {
	return g.streak.Streak()
}
