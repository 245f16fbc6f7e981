package pokemon

// AllTypes lists the 18 elemental types in dex order.
var AllTypes = []string{
	"normal", "fire", "water", "electric", "grass", "ice",
	"fighting", "poison", "ground", "flying", "psychic", "bug",
	"rock", "ghost", "dragon", "dark", "steel", "fairy",
}

// SuperEffective maps a defending type to the attacking type the quiz treats
// as its answer. Types missing here answer "normal".
var SuperEffective = map[string]string{
	"water":  "grass",
	"fire":   "water",
	"grass":  "fire",
	"ground": "water",
	"rock":   "water",
}

func SuperEffectiveAgainst(defender string) string {
	if t, ok := SuperEffective[defender]; ok {
		return t
	}
	return "normal"
}
