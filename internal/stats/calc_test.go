package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ross1116/pokeref/internal/pokemon"
)

func block() *pokemon.Pokemon {
	return &pokemon.Pokemon{Stats: []pokemon.BaseStats{
		{BaseStat: 45, Stat: pokemon.ApiResource{Name: HP}},
		{BaseStat: 49, Stat: pokemon.ApiResource{Name: Attack}},
		{BaseStat: 49, Stat: pokemon.ApiResource{Name: Defense}},
		{BaseStat: 45, Stat: pokemon.ApiResource{Name: Speed}},
	}}
}

func TestGetStat(t *testing.T) {
	p := block()
	assert.Equal(t, 45, GetStat(p, HP))
	assert.Equal(t, 49, GetStat(p, Attack))
	assert.Equal(t, 0, GetStat(p, SpecialAttack))
}

func TestMapAndTotal(t *testing.T) {
	p := block()
	assert.Equal(t, map[string]int{HP: 45, Attack: 49, Defense: 49, Speed: 45}, Map(p))
	assert.Equal(t, 188, Total(p))
}
