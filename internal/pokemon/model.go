package pokemon

import (
	"strconv"
	"strings"
)

type Pokemon struct {
	ID      int         `json:"id"`
	Name    string      `json:"name"`
	Height  int         `json:"height"` // decimetres
	Weight  int         `json:"weight"` // hectograms
	Types   []TypeSlot  `json:"types"`
	Sprites Sprites     `json:"sprites"`
	Stats   []BaseStats `json:"stats"`
	Moves   []MoveSlot  `json:"moves"`
}

type BaseStats struct {
	BaseStat int         `json:"base_stat"`
	Stat     ApiResource `json:"stat"`
}

type TypeSlot struct {
	Slot int         `json:"slot"`
	Type ApiResource `json:"type"`
}

type Sprites struct {
	FrontDefault string       `json:"front_default"`
	BackDefault  string       `json:"back_default"`
	Other        OtherSprites `json:"other"`
}

type OtherSprites struct {
	OfficialArtwork struct {
		FrontDefault string `json:"front_default"`
	} `json:"official-artwork"`
}

type MoveSlot struct {
	Move ApiResource `json:"move"`
}

type ApiResource struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// ID parses the numeric id PokeAPI puts in the last path segment of a
// resource URL ("https://pokeapi.co/api/v2/pokemon/25/" -> 25). It returns 0
// when the URL carries no id.
func (r ApiResource) ID() int {
	parts := strings.Split(strings.TrimSuffix(r.URL, "/"), "/")
	if len(parts) == 0 {
		return 0
	}
	id, err := strconv.Atoi(parts[len(parts)-1])
	if err != nil {
		return 0
	}
	return id
}

type NamedResourceList struct {
	Count    int           `json:"count"`
	Next     string        `json:"next"`
	Previous string        `json:"previous"`
	Results  []ApiResource `json:"results"`
}

type Species struct {
	FlavorTextEntries []FlavorText `json:"flavor_text_entries"`
	Genera            []Genus      `json:"genera"`
}

type FlavorText struct {
	FlavorText string      `json:"flavor_text"`
	Language   ApiResource `json:"language"`
}

type Genus struct {
	Genus    string      `json:"genus"`
	Language ApiResource `json:"language"`
}

type TypeDetail struct {
	ID      int           `json:"id"`
	Name    string        `json:"name"`
	Pokemon []TypePokemon `json:"pokemon"`
}

type TypePokemon struct {
	Slot    int         `json:"slot"`
	Pokemon ApiResource `json:"pokemon"`
}

// TypeNames returns the creature's type names in slot order.
func (p *Pokemon) TypeNames() []string {
	names := make([]string, 0, len(p.Types))
	for _, t := range p.Types {
		names = append(names, t.Type.Name)
	}
	return names
}
