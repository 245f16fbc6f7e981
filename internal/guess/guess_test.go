package guess

import (
	"context"
	"errors"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ross1116/pokeref/internal/pokemon"
)

type fixedSource struct {
	name string
	err  error
}

func (s fixedSource) GetPokemon(_ context.Context, id int) (*pokemon.Pokemon, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &pokemon.Pokemon{ID: id, Name: s.name}, nil
}

type counter struct{ n int }

func (c *counter) Streak() int                         { return c.n }
func (c *counter) IncrementStreak(context.Context) int { c.n++; return c.n }
func (c *counter) ResetStreak(context.Context) int     { c.n = 0; return 0 }

func newGame(name string) (*Game, *counter) {
	c := &counter{}
	return NewGame(fixedSource{name: name}, rand.New(rand.NewPCG(1, 2)), c), c
}

func TestRound(t *testing.T) {
	g, _ := newGame("mr-mime")
	_, ok := g.Current()
	assert.False(t, ok)

	r, err := g.NewRound(context.Background())
	require.NoError(t, err)
	assert.GreaterOrEqual(t, r.ID, 1)
	assert.LessOrEqual(t, r.ID, pokemon.KantoCount)
	assert.Equal(t, pokemon.SpriteURL(r.ID), r.Sprite)

	cur, ok := g.Current()
	assert.True(t, ok)
	assert.Equal(t, r, cur)
}

func TestCheckCorrectAndWrong(t *testing.T) {
	ctx := context.Background()
	g, c := newGame("mr-mime")

	_, _, err := g.Check(ctx, "", "pikachu")
	assert.ErrorIs(t, err, ErrNoRound)

	_, err = g.NewRound(ctx)
	require.NoError(t, err)
	v, ok, err := g.Check(ctx, "", "  Mr Mime ")
	require.NoError(t, err)
	require.True(t, ok)
	assert.True(t, v.Correct)
	assert.Equal(t, 1, v.Streak)

	_, _, err = g.Check(ctx, "", "mr-mime")
	assert.ErrorIs(t, err, ErrRoundOver)
	assert.Equal(t, 1, c.n)

	_, err = g.NewRound(ctx)
	require.NoError(t, err)
	v, ok, err = g.Check(ctx, "", "pikachu")
	require.NoError(t, err)
	require.True(t, ok)
	assert.False(t, v.Correct)
	assert.Equal(t, "mr-mime", v.Answer)
	assert.Equal(t, 0, v.Streak)
	assert.Equal(t, 0, g.Streak())
}

func TestBlankGuessIgnored(t *testing.T) {
	ctx := context.Background()
	g, c := newGame("eevee")
	c.n = 4
	_, err := g.NewRound(ctx)
	require.NoError(t, err)

	_, ok, err := g.Check(ctx, "", "   ")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, 4, c.n)

	v, ok, err := g.Check(ctx, "", "EEVEE")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 5, v.Streak)
}

func TestNewRoundFailure(t *testing.T) {
	boom := errors.New("boom")
	g := NewGame(fixedSource{err: boom}, rand.New(rand.NewPCG(1, 2)), &counter{})
	_, err := g.NewRound(context.Background())
	assert.ErrorIs(t, err, boom)
}

func TestOpenReusesUndecidedRound(t *testing.T) {
	ctx := context.Background()
	g, _ := newGame("eevee")

	first, err := g.Open(ctx)
	require.NoError(t, err)
	again, err := g.Open(ctx)
	require.NoError(t, err)
	assert.Equal(t, first, again)

	_, ok, err := g.Check(ctx, "", "eevee")
	require.NoError(t, err)
	require.True(t, ok)
	assert.True(t, g.decided)

	_, err = g.Open(ctx)
	require.NoError(t, err)
	assert.False(t, g.decided)
}

func TestCheckRejectsStaleRound(t *testing.T) {
	ctx := context.Background()
	g, c := newGame("eevee")

	old, err := g.NewRound(ctx)
	require.NoError(t, err)
	cur, err := g.NewRound(ctx)
	require.NoError(t, err)
	require.NotEqual(t, old.RoundID, cur.RoundID)

	_, _, err = g.Check(ctx, old.RoundID, "eevee")
	assert.ErrorIs(t, err, ErrStaleRound)
	assert.Equal(t, 0, c.n)

	v, ok, err := g.Check(ctx, cur.RoundID, "eevee")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.True(t, v.Correct)
}

func TestSkipDrawsNewRoundKeepingStreak(t *testing.T) {
	ctx := context.Background()
	g, c := newGame("eevee")
	c.n = 3

	first, err := g.Open(ctx)
	require.NoError(t, err)
	next, err := g.Skip(ctx)
	require.NoError(t, err)
	assert.NotEqual(t, first.RoundID, next.RoundID)
	assert.Equal(t, 3, c.n)

	_, _, err = g.Check(ctx, first.RoundID, "eevee")
	assert.ErrorIs(t, err, ErrStaleRound)

	again, err := g.Open(ctx)
	require.NoError(t, err)
	assert.Equal(t, next, again)
}

func TestSkipFailureLeavesNoRound(t *testing.T) {
	g := NewGame(fixedSource{err: errors.New("down")}, rand.New(rand.NewPCG(1, 2)), &counter{})
	_, err := g.Skip(context.Background())
	assert.Error(t, err)
	_, ok := g.Current()
	assert.False(t, ok)
}
