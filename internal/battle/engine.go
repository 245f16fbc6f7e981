package battle

import "math"

// Damage returns the hit dealt by a move of the given power. There are no
// crits, type multipliers or random rolls, and the result is at least 1.
func Damage(attack, defense, power int) int {
	if defense <= 0 {
		defense = 1
	}
	base := float64(2*Level/5 + 2)
	dmg := int(math.Floor(base*float64(power)*(float64(attack)/float64(defense))/50 + 2))
	if dmg < 1 {
		dmg = 1
	}
	return dmg
}

// Submit applies the first half of a turn: the acting side's move lands and
// the defender's HP drops. It returns false, leaving the battle untouched,
// when the battle is over, it is not side's turn, a previous hit has not been
// settled yet, or moveIndex is out of range.
func (b *Battle) Submit(side Side, moveIndex int) bool {
	if b.Over() || b.Processing || side != b.TurnOwner {
		return false
	}
	attacker := b.Active(side)
	if moveIndex < 0 || moveIndex >= len(attacker.Moves) {
		return false
	}
	defender := b.Active(side.Other())
	move := attacker.Moves[moveIndex]

	if side == Opponent {
		b.logf("Wild %s used %s!", attacker.Name, move.Name)
	} else {
		b.logf("%s used %s!", attacker.Name, move.Name)
	}

	dmg := Damage(attacker.Attack, defender.Defense, move.Power)
	defender.HP = max(0, defender.HP-dmg)
	b.LastHit = &Hit{Attacker: side, Move: move.Name, Damage: dmg}
	b.Processing = true
	return true
}

// Settle finishes the pending turn: it handles a faint, a forced switch-in or
// the end of the battle, then hands the turn over. It does nothing unless a
// Submit is pending.
func (b *Battle) Settle() {
	if !b.Processing {
		return
	}
	b.Processing = false

	attacker := b.TurnOwner
	loser := attacker.Other()
	defender := b.Active(loser)
	if !defender.Fainted() {
		b.TurnOwner = loser
		return
	}

	if loser == Opponent {
		b.logf("Wild %s fainted!", defender.Name)
	} else {
		b.logf("%s fainted!", defender.Name)
	}

	idx := b.activeIndex(loser)
	if *idx >= TeamSize-1 {
		if attacker == Player {
			b.Outcome = PlayerVictory
			b.logf("You defeated every opponent!")
		} else {
			b.Outcome = OpponentVictory
			b.logf("All of your team fainted!")
		}
		return
	}

	*idx++
	next := b.team(loser)[*idx]
	next.HP = next.MaxHP
	if loser == Opponent {
		b.logf("Wild %s appeared!", next.Name)
	} else {
		b.logf("Go, %s!", next.Name)
	}
	// the side that just switched in moves next
	b.TurnOwner = loser
}

// Resolve runs a whole turn with no display delay between the hit and its
// consequences.
func (b *Battle) Resolve(side Side, moveIndex int) bool {
	if !b.Submit(side, moveIndex) {
		return false
	}
	b.Settle()
	return true
}
