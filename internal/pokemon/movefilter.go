package pokemon

import "github.com/ross1116/pokeref/internal/textnorm"

// KnownMove is an entry of the fixed power table used by the battle engine.
type KnownMove struct {
	Power int
	Type  string
}

// KnownMovePowers maps normalized move names to their power and type. Moves
// missing from this table never make it into a battle move set.
var KnownMovePowers = map[string]KnownMove{
	"pound":         {40, "normal"},
	"scratch":       {40, "normal"},
	"tackle":        {40, "normal"},
	"quick-attack":  {40, "normal"},
	"cut":           {50, "normal"},
	"headbutt":      {70, "normal"},
	"slam":          {80, "normal"},
	"body-slam":     {85, "normal"},
	"strength":      {80, "normal"},
	"take-down":     {90, "normal"},
	"double-edge":   {120, "normal"},
	"mega-punch":    {80, "normal"},
	"mega-kick":     {120, "normal"},
	"ember":         {40, "fire"},
	"fire-punch":    {75, "fire"},
	"flamethrower":  {90, "fire"},
	"fire-blast":    {110, "fire"},
	"water-gun":     {40, "water"},
	"bubble":        {40, "water"},
	"bubble-beam":   {65, "water"},
	"surf":          {90, "water"},
	"hydro-pump":    {110, "water"},
	"vine-whip":     {45, "grass"},
	"razor-leaf":    {55, "grass"},
	"mega-drain":    {40, "grass"},
	"petal-dance":   {120, "grass"},
	"solar-beam":    {120, "grass"},
	"thunder-shock": {40, "electric"},
	"thunder-punch": {75, "electric"},
	"thunderbolt":   {90, "electric"},
	"thunder":       {110, "electric"},
	"ice-punch":     {75, "ice"},
	"ice-beam":      {90, "ice"},
	"blizzard":      {110, "ice"},
	"aurora-beam":   {65, "ice"},
	"karate-chop":   {50, "fighting"},
	"low-kick":      {50, "fighting"},
	"submission":    {80, "fighting"},
	"poison-sting":  {15, "poison"},
	"acid":          {40, "poison"},
	"sludge":        {65, "poison"},
	"earthquake":    {100, "ground"},
	"dig":           {80, "ground"},
	"bone-club":     {65, "ground"},
	"gust":          {40, "flying"},
	"wing-attack":   {60, "flying"},
	"peck":          {35, "flying"},
	"drill-peck":    {80, "flying"},
	"fly":           {90, "flying"},
	"confusion":     {50, "psychic"},
	"psybeam":       {65, "psychic"},
	"psychic":       {90, "psychic"},
	"bite":          {60, "dark"},
	"rock-throw":    {50, "rock"},
	"rock-slide":    {75, "rock"},
	"lick":          {30, "ghost"},
	"dragon-rage":   {40, "dragon"},
	"twineedle":     {25, "bug"},
	"pin-missile":   {25, "bug"},
	"leech-life":    {80, "bug"},
}

// FilterKnownMoves walks the creature's moves in order and returns up to limit
// entries whose normalized name is in KnownMovePowers. The returned names are
// the normalized ones.
func FilterKnownMoves(p *Pokemon, limit int) []ApiResource {
	var moves []ApiResource
	seen := make(map[string]bool)
	for _, slot := range p.Moves {
		if len(moves) == limit {
			break
		}
		name := textnorm.Normalize(slot.Move.Name)
		if _, ok := KnownMovePowers[name]; !ok || seen[name] {
			continue
		}
		seen[name] = true
		moves = append(moves, ApiResource{Name: name, URL: slot.Move.URL})
	}
	return moves
}
