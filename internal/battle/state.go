package battle

import (
	"fmt"

	"github.com/ross1116/pokeref/internal/pokemon"
	"github.com/ross1116/pokeref/internal/stats"
)

const (
	TeamSize = 3
	MaxMoves = 4
	Level    = 50
)

type Move struct {
	Name  string `json:"name"`
	Power int    `json:"power"`
	Type  string `json:"type"`
}

// DefaultMove is handed to a combatant none of whose moves are in the power table.
var DefaultMove = Move{Name: "tackle", Power: 40, Type: "normal"}

// Combatant is the per-battle snapshot of one creature. Only HP changes once
// a battle has started.
type Combatant struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	HP          int    `json:"hp"`
	MaxHP       int    `json:"maxHp"`
	Attack      int    `json:"attack"`
	Defense     int    `json:"defense"`
	Speed       int    `json:"speed"`
	Moves       []Move `json:"moves"`
	SpriteFront string `json:"spriteFront"`
	SpriteBack  string `json:"spriteBack"`
}

// NewCombatant builds a snapshot from a fetched creature. It keeps up to
// MaxMoves moves from the known-power table, in the creature's own order, and
// falls back to DefaultMove so the move set is never empty.
func NewCombatant(p *pokemon.Pokemon) (*Combatant, error) {
	if p == nil {
		return nil, fmt.Errorf("battle: nil pokemon")
	}

	known := pokemon.FilterKnownMoves(p, MaxMoves)
	moves := make([]Move, 0, MaxMoves)
	for _, m := range known {
		entry := pokemon.KnownMovePowers[m.Name]
		moves = append(moves, Move{Name: m.Name, Power: entry.Power, Type: entry.Type})
	}
	if len(moves) == 0 {
		moves = append(moves, DefaultMove)
	}

	hp := stats.GetStat(p, stats.HP)
	if hp < 1 {
		hp = 1
	}
	return &Combatant{
		ID:          p.ID,
		Name:        p.Name,
		HP:          hp,
		MaxHP:       hp,
		Attack:      stats.GetStat(p, stats.Attack),
		Defense:     stats.GetStat(p, stats.Defense),
		Speed:       stats.GetStat(p, stats.Speed),
		Moves:       moves,
		SpriteFront: pokemon.SpriteURL(p.ID),
		SpriteBack:  pokemon.BackSpriteURL(p.ID),
	}, nil
}

func (c *Combatant) Fainted() bool {
	return c.HP <= 0
}

func (c *Combatant) clone() *Combatant {
	cp := *c
	cp.Moves = append([]Move(nil), c.Moves...)
	return &cp
}

// Team is fixed at battle start; its order is the switch-in order.
type Team [TeamSize]*Combatant

type Outcome int

const (
	Ongoing Outcome = iota
	PlayerVictory
	OpponentVictory
)

func (o Outcome) String() string {
	switch o {
	case PlayerVictory:
		return "player-victory"
	case OpponentVictory:
		return "opponent-victory"
	default:
		return "ongoing"
	}
}

func (o Outcome) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

// Hit records the last damaging move, for display.
type Hit struct {
	Attacker Side   `json:"attacker"`
	Move     string `json:"move"`
	Damage   int    `json:"damage"`
}

// Battle is the whole state of one battle. It is mutated only through
// Submit and Settle.
type Battle struct {
	PlayerTeam     Team
	OpponentTeam   Team
	PlayerActive   int
	OpponentActive int
	TurnOwner      Side
	Log            []string
	Processing     bool
	Outcome        Outcome
	LastHit        *Hit
}

// NewBattle starts a battle with both slot-0 combatants at full HP and the
// player to move.
func NewBattle(player, opponent Team) (*Battle, error) {
	for i := range TeamSize {
		if player[i] == nil || opponent[i] == nil {
			return nil, fmt.Errorf("battle: team slot %d is empty", i)
		}
	}
	b := &Battle{
		PlayerTeam:   player,
		OpponentTeam: opponent,
		TurnOwner:    Player,
	}
	b.PlayerTeam[0].HP = b.PlayerTeam[0].MaxHP
	b.OpponentTeam[0].HP = b.OpponentTeam[0].MaxHP
	b.logf("Wild %s appeared!", b.OpponentTeam[0].Name)
	b.logf("Go, %s!", b.PlayerTeam[0].Name)
	return b, nil
}

func (b *Battle) team(s Side) *Team {
	if s == Player {
		return &b.PlayerTeam
	}
	return &b.OpponentTeam
}

func (b *Battle) activeIndex(s Side) *int {
	if s == Player {
		return &b.PlayerActive
	}
	return &b.OpponentActive
}

// Active returns the combatant currently fighting for s.
func (b *Battle) Active(s Side) *Combatant {
	return b.team(s)[*b.activeIndex(s)]
}

func (b *Battle) Over() bool {
	return b.Outcome != Ongoing
}

func (b *Battle) logf(format string, args ...any) {
	b.Log = append(b.Log, fmt.Sprintf(format, args...))
}

// Clone returns a deep copy.
func (b *Battle) Clone() *Battle {
	cp := *b
	for i := range TeamSize {
		cp.PlayerTeam[i] = b.PlayerTeam[i].clone()
		cp.OpponentTeam[i] = b.OpponentTeam[i].clone()
	}
	cp.Log = append([]string(nil), b.Log...)
	if b.LastHit != nil {
		h := *b.LastHit
		cp.LastHit = &h
	}
	return &cp
}

type CombatantView struct {
	Name        string `json:"name"`
	HP          int    `json:"hp"`
	MaxHP       int    `json:"maxHp"`
	SpriteFront string `json:"spriteFront"`
	SpriteBack  string `json:"spriteBack"`
	Moves       []Move `json:"moves"`
}

// Snapshot is the read-only projection handed to presentation layers.
type Snapshot struct {
	Player         CombatantView `json:"player"`
	Opponent       CombatantView `json:"opponent"`
	PlayerActive   int           `json:"playerActive"`
	OpponentActive int           `json:"opponentActive"`
	Log            []string      `json:"log"`
	TurnOwner      Side          `json:"turnOwner"`
	InputDisabled  bool          `json:"inputDisabled"`
	Outcome        Outcome       `json:"outcome"`
	LastHit        *Hit          `json:"lastHit,omitempty"`
}

// LogTail is how many log lines a Snapshot carries.
const LogTail = 2

func view(c *Combatant) CombatantView {
	return CombatantView{
		Name:        c.Name,
		HP:          c.HP,
		MaxHP:       c.MaxHP,
		SpriteFront: c.SpriteFront,
		SpriteBack:  c.SpriteBack,
		Moves:       append([]Move(nil), c.Moves...),
	}
}

func (b *Battle) Snapshot() Snapshot {
	tail := b.Log
	if len(tail) > LogTail {
		tail = tail[len(tail)-LogTail:]
	}
	snap := Snapshot{
		Player:         view(b.Active(Player)),
		Opponent:       view(b.Active(Opponent)),
		PlayerActive:   b.PlayerActive,
		OpponentActive: b.OpponentActive,
		Log:            append([]string(nil), tail...),
		TurnOwner:      b.TurnOwner,
		InputDisabled:  b.Over() || b.Processing || b.TurnOwner != Player,
		Outcome:        b.Outcome,
	}
	if b.LastHit != nil {
		h := *b.LastHit
		snap.LastHit = &h
	}
	return snap
}
