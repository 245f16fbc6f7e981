package battle

import "math/rand/v2"

type Side int

const (
	Player Side = iota
	Opponent
)

func (s Side) Other() Side {
	if s == Player {
		return Opponent
	}
	return Player
}

func (s Side) String() string {
	if s == Opponent {
		return "opponent"
	}
	return "player"
}

func (s Side) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// ChooseMove picks one of c's moves uniformly at random.
func ChooseMove(rng *rand.Rand, c *Combatant) int {
	if len(c.Moves) <= 1 {
		return 0
	}
	return rng.IntN(len(c.Moves))
}
