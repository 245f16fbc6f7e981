package stats

import "github.com/ross1116/pokeref/internal/pokemon"

const (
	HP             = "hp"
	Attack         = "attack"
	Defense        = "defense"
	SpecialAttack  = "special-attack"
	SpecialDefense = "special-defense"
	Speed          = "speed"
)

// Order is the display order of the six base stats.
var Order = []string{HP, Attack, Defense, SpecialAttack, SpecialDefense, Speed}

// GetStat returns the named base stat, or 0 when the block lacks it.
func GetStat(p *pokemon.Pokemon, statName string) int {
	for _, stat := range p.Stats {
		if stat.Stat.Name == statName {
			return stat.BaseStat
		}
	}
	return 0
}

// Map flattens the stat block into name -> base stat.
func Map(p *pokemon.Pokemon) map[string]int {
	m := make(map[string]int, len(p.Stats))
	for _, stat := range p.Stats {
		m[stat.Stat.Name] = stat.BaseStat
	}
	return m
}

func Total(p *pokemon.Pokemon) int {
	total := 0
	for _, stat := range p.Stats {
		total += stat.BaseStat
	}
	return total
}
