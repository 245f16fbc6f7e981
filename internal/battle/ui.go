package battle

import (
	"fmt"
	"io"
	"strings"
)

const hpBarWidth = 20

func hpBar(hp, maxHP int) string {
	if maxHP <= 0 {
		maxHP = 1
	}
	filled := hp * hpBarWidth / maxHP
	if hp > 0 && filled == 0 {
		filled = 1
	}
	return "[" + strings.Repeat("#", filled) + strings.Repeat("-", hpBarWidth-filled) + "]"
}

// DisplaySnapshot writes the battlefield as plain text.
func DisplaySnapshot(w io.Writer, snap Snapshot) {
	fmt.Fprintln(w, "\n=== BATTLEFIELD STATUS ===")
	fmt.Fprintf(w, "Wild %s %s %d/%d\n", snap.Opponent.Name, hpBar(snap.Opponent.HP, snap.Opponent.MaxHP), snap.Opponent.HP, snap.Opponent.MaxHP)
	fmt.Fprintf(w, "Your %s %s %d/%d\n", snap.Player.Name, hpBar(snap.Player.HP, snap.Player.MaxHP), snap.Player.HP, snap.Player.MaxHP)
	fmt.Fprintf(w, "Team slot %d/%d vs %d/%d\n", snap.PlayerActive+1, TeamSize, snap.OpponentActive+1, TeamSize)
	fmt.Fprintln(w, "==================================")
	for _, line := range snap.Log {
		fmt.Fprintln(w, line)
	}

	switch snap.Outcome {
	case PlayerVictory:
		fmt.Fprintln(w, "\nYou win!")
	case OpponentVictory:
		fmt.Fprintln(w, "\nYou lose!")
	}
}

// DisplayMoveOptions lists the player's moves, numbered from 1.
func DisplayMoveOptions(w io.Writer, moves []Move) {
	fmt.Fprintln(w, "\nMoveset:")
	for i, m := range moves {
		fmt.Fprintf(w, "%d. %s (%s, power %d)\n", i+1, m.Name, m.Type, m.Power)
	}
}
