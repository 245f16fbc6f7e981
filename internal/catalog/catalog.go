// Package catalog answers the browsing screens: the dex list, a detail page,
// search and the type explorer.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"go.uber.org/zap"

	"github.com/ross1116/pokeref/internal/pokemon"
	"github.com/ross1116/pokeref/internal/stats"
)

const (
	DefaultPageSize = 151
	SearchPoolSize  = 1000
	TypeListLimit   = 60
)

var ErrUnknownType = errors.New("catalog: unknown type")

// Source is the subset of *pokemon.Client the catalog reads from.
type Source interface {
	GetPokemon(ctx context.Context, id int) (*pokemon.Pokemon, error)
	GetSpecies(ctx context.Context, id int) (*pokemon.Species, error)
	ListPokemon(ctx context.Context, limit, offset int) (*pokemon.NamedResourceList, error)
	GetType(ctx context.Context, name string) (*pokemon.TypeDetail, error)
}

type Entry struct {
	ID     int    `json:"id"`
	Name   string `json:"name"`
	Sprite string `json:"sprite"`
}

type Detail struct {
	ID         int            `json:"id"`
	Name       string         `json:"name"`
	Types      []string       `json:"types"`
	HeightM    float64        `json:"heightM"`
	WeightKg   float64        `json:"weightKg"`
	Stats      map[string]int `json:"stats"`
	StatTotal  int            `json:"statTotal"`
	Sprite     string         `json:"sprite"`
	Artwork    string         `json:"artwork"`
	Genus      string         `json:"genus,omitempty"`
	FlavorText string         `json:"flavorText,omitempty"`
}

type Catalog struct {
	src    Source
	logger *zap.Logger
}

func New(src Source, logger *zap.Logger) *Catalog {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Catalog{src: src, logger: logger}
}

func entriesFrom(list []pokemon.ApiResource) []Entry {
	out := make([]Entry, 0, len(list))
	for _, r := range list {
		id := r.ID()
		if id == 0 {
			continue
		}
		out = append(out, Entry{ID: id, Name: r.Name, Sprite: pokemon.SpriteURL(id)})
	}
	return out
}

// Page lists creatures in dex order.
func (c *Catalog) Page(ctx context.Context, limit, offset int) ([]Entry, error) {
	if limit <= 0 {
		limit = DefaultPageSize
	}
	list, err := c.src.ListPokemon(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	return entriesFrom(list.Results), nil
}

// Detail loads a creature and its species text. A species failure only
// leaves Genus and FlavorText empty.
func (c *Catalog) Detail(ctx context.Context, id int) (*Detail, error) {
	p, err := c.src.GetPokemon(ctx, id)
	if err != nil {
		return nil, err
	}

	d := &Detail{
		ID:        p.ID,
		Name:      p.Name,
		Types:     p.TypeNames(),
		HeightM:   float64(p.Height) / 10,
		WeightKg:  float64(p.Weight) / 10,
		Stats:     stats.Map(p),
		StatTotal: stats.Total(p),
		Sprite:    p.Sprites.FrontDefault,
		Artwork:   p.Sprites.Other.OfficialArtwork.FrontDefault,
	}
	if d.Sprite == "" {
		d.Sprite = pokemon.SpriteURL(p.ID)
	}

	species, err := c.src.GetSpecies(ctx, p.ID)
	if err != nil {
		c.logger.Warn("species lookup failed", zap.Int("id", p.ID), zap.Error(err))
		return d, nil
	}
	d.Genus = englishGenus(species)
	d.FlavorText = englishFlavor(species)
	return d, nil
}

func englishGenus(s *pokemon.Species) string {
	for _, g := range s.Genera {
		if g.Language.Name == "en" {
			return g.Genus
		}
	}
	return ""
}

func englishFlavor(s *pokemon.Species) string {
	for _, f := range s.FlavorTextEntries {
		if f.Language.Name == "en" {
			return cleanFlavor(f.FlavorText)
		}
	}
	return ""
}

// cleanFlavor collapses the form feeds and hard line breaks of game text.
func cleanFlavor(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Search matches term as a case-insensitive substring of creature names. With
// a type it searches only that type; without one it searches the first
// SearchPoolSize creatures.
func (c *Catalog) Search(ctx context.Context, term, typeName string) ([]Entry, error) {
	term = strings.ToLower(strings.TrimSpace(term))
	typeName = strings.ToLower(strings.TrimSpace(typeName))
	if term == "" && typeName == "" {
		return []Entry{}, nil
	}

	var pool []Entry
	if typeName != "" {
		all, err := c.typeMembers(ctx, typeName)
		if err != nil {
			return nil, err
		}
		pool = all
	} else {
		list, err := c.src.ListPokemon(ctx, SearchPoolSize, 0)
		if err != nil {
			return nil, err
		}
		pool = entriesFrom(list.Results)
	}

	out := make([]Entry, 0)
	for _, e := range pool {
		if strings.Contains(strings.ToLower(e.Name), term) {
			out = append(out, e)
		}
	}
	return out, nil
}

// ByType lists the first TypeListLimit creatures of a type.
func (c *Catalog) ByType(ctx context.Context, typeName string) ([]Entry, error) {
	all, err := c.typeMembers(ctx, strings.ToLower(strings.TrimSpace(typeName)))
	if err != nil {
		return nil, err
	}
	if len(all) > TypeListLimit {
		all = all[:TypeListLimit]
	}
	return all, nil
}

func (c *Catalog) typeMembers(ctx context.Context, typeName string) ([]Entry, error) {
	if !IsType(typeName) {
		return nil, fmt.Errorf("%w: %q", ErrUnknownType, typeName)
	}
	detail, err := c.src.GetType(ctx, typeName)
	if err != nil {
		return nil, err
	}
	refs := make([]pokemon.ApiResource, 0, len(detail.Pokemon))
	for _, tp := range detail.Pokemon {
		refs = append(refs, tp.Pokemon)
	}
	return entriesFrom(refs), nil
}

// Types returns the 18 type names in dex order.
func (c *Catalog) Types() []string {
	return append([]string(nil), pokemon.AllTypes...)
}

func IsType(name string) bool {
	return slices.Contains(pokemon.AllTypes, name)
}
