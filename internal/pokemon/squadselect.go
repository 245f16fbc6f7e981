package pokemon

import "math/rand/v2"

// KantoCount is the size of the id range the games draw from (1..151).
const KantoCount = 151

// RandomID returns a uniformly random id in 1..KantoCount.
func RandomID(rng *rand.Rand) int {
	return rng.IntN(KantoCount) + 1
}

// RandomSquad returns n ids drawn independently from 1..KantoCount.
// Repeats are allowed, matching how opponent teams are rolled.
func RandomSquad(rng *rand.Rand, n int) []int {
	ids := make([]int, n)
	for i := range ids {
		ids[i] = RandomID(rng)
	}
	return ids
}

// RandomDistinct returns n distinct ids from 1..KantoCount, none equal to exclude.
func RandomDistinct(rng *rand.Rand, n, exclude int) []int {
	pool := make([]int, 0, KantoCount)
	for id := 1; id <= KantoCount; id++ {
		if id != exclude {
			pool = append(pool, id)
		}
	}
	rng.Shuffle(len(pool), func(i, j int) {
		pool[i], pool[j] = pool[j], pool[i]
	})
	if n > len(pool) {
		n = len(pool)
	}
	return pool[:n]
}
