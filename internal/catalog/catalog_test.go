package catalog_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ross1116/pokeref/internal/catalog"
	"github.com/ross1116/pokeref/internal/pokemon"
)

const bulbasaurJSON = `{
	"id": 1,
	"name": "bulbasaur",
	"height": 7,
	"weight": 69,
	"types": [
		{"slot": 1, "type": {"name": "grass"}},
		{"slot": 2, "type": {"name": "poison"}}
	],
	"sprites": {"front_default": "front.png", "other": {"official-artwork": {"front_default": "art.png"}}},
	"stats": [
		{"base_stat": 45, "stat": {"name": "hp"}},
		{"base_stat": 49, "stat": {"name": "attack"}},
		{"base_stat": 49, "stat": {"name": "defense"}},
		{"base_stat": 65, "stat": {"name": "special-attack"}},
		{"base_stat": 65, "stat": {"name": "special-defense"}},
		{"base_stat": 45, "stat": {"name": "speed"}}
	]
}`

const bulbasaurSpeciesJSON = `{
	"flavor_text_entries": [
		{"flavor_text": "Un texte", "language": {"name": "fr"}},
		{"flavor_text": "A strange seed was\nplanted on its\fback at birth.", "language": {"name": "en"}}
	],
	"genera": [
		{"genus": "Pokémon Graine", "language": {"name": "fr"}},
		{"genus": "Seed Pokémon", "language": {"name": "en"}}
	]
}`

func resources(kind string, names ...string) string {
	parts := make([]string, 0, len(names))
	for i, n := range names {
		parts = append(parts, fmt.Sprintf(`{"name": %q, "url": "https://pokeapi.co/api/v2/%s/%d/"}`, n, kind, i+1))
	}
	return strings.Join(parts, ",")
}

func newCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/pokemon/1/", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, bulbasaurJSON)
	})
	mux.HandleFunc("/pokemon-species/1/", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, bulbasaurSpeciesJSON)
	})
	mux.HandleFunc("/pokemon/2/", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"id": 2, "name": "ivysaur", "height": 10, "weight": 130}`)
	})
	mux.HandleFunc("/pokemon-species/2/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	mux.HandleFunc("/pokemon", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `{"count": 4, "results": [%s]}`,
			resources("pokemon", "bulbasaur", "ivysaur", "venusaur", "charmander"))
	})
	mux.HandleFunc("/type/fire/", func(w http.ResponseWriter, r *http.Request) {
		var members []string
		for i := 1; i <= 70; i++ {
			members = append(members, fmt.Sprintf(`{"slot": 1, "pokemon": {"name": "fire-%d", "url": "https://pokeapi.co/api/v2/pokemon/%d/"}}`, i, i))
		}
		members = append(members, `{"slot": 1, "pokemon": {"name": "charizard", "url": "https://pokeapi.co/api/v2/pokemon/6/"}}`)
		fmt.Fprintf(w, `{"id": 10, "name": "fire", "pokemon": [%s]}`, strings.Join(members, ","))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	return catalog.New(pokemon.NewClient(pokemon.ClientConfig{BaseURL: srv.URL}), nil)
}

func TestPage(t *testing.T) {
	c := newCatalog(t)
	entries, err := c.Page(context.Background(), 0, 0)
	require.NoError(t, err)
	require.Len(t, entries, 4)
	assert.Equal(t, catalog.Entry{ID: 1, Name: "bulbasaur", Sprite: pokemon.SpriteURL(1)}, entries[0])
	assert.Equal(t, 4, entries[3].ID)
}

func TestDetail(t *testing.T) {
	c := newCatalog(t)
	d, err := c.Detail(context.Background(), 1)
	require.NoError(t, err)

	assert.Equal(t, "bulbasaur", d.Name)
	assert.Equal(t, []string{"grass", "poison"}, d.Types)
	assert.InDelta(t, 0.7, d.HeightM, 1e-9)
	assert.InDelta(t, 6.9, d.WeightKg, 1e-9)
	assert.Equal(t, 45, d.Stats["hp"])
	assert.Equal(t, 318, d.StatTotal)
	assert.Equal(t, "front.png", d.Sprite)
	assert.Equal(t, "art.png", d.Artwork)
	assert.Equal(t, "Seed Pokémon", d.Genus)
	assert.Equal(t, "A strange seed was planted on its back at birth.", d.FlavorText)
}

func TestDetailSpeciesFailureIsNonFatal(t *testing.T) {
	c := newCatalog(t)
	d, err := c.Detail(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, "ivysaur", d.Name)
	assert.Empty(t, d.Genus)
	assert.Empty(t, d.FlavorText)
	assert.Equal(t, pokemon.SpriteURL(2), d.Sprite)
}

func TestDetailNotFound(t *testing.T) {
	c := newCatalog(t)
	_, err := c.Detail(context.Background(), 99)
	assert.ErrorIs(t, err, pokemon.ErrNotFound)
}

func TestSearch(t *testing.T) {
	c := newCatalog(t)
	ctx := context.Background()

	got, err := c.Search(ctx, "  SAUR ", "")
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "venusaur", got[2].Name)

	got, err = c.Search(ctx, "chari", "Fire")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, 6, got[0].ID)

	got, err = c.Search(ctx, "", "")
	require.NoError(t, err)
	assert.Empty(t, got)

	_, err = c.Search(ctx, "x", "plasma")
	assert.ErrorIs(t, err, catalog.ErrUnknownType)
}

func TestByTypeCapsList(t *testing.T) {
	c := newCatalog(t)
	got, err := c.ByType(context.Background(), "fire")
	require.NoError(t, err)
	assert.Len(t, got, catalog.TypeListLimit)
	assert.Equal(t, "fire-1", got[0].Name)
}

func TestTypes(t *testing.T) {
	c := newCatalog(t)
	types := c.Types()
	assert.Len(t, types, 18)
	assert.Equal(t, "normal", types[0])
	assert.Equal(t, "fairy", types[17])
	assert.True(t, catalog.IsType("dragon"))
	assert.False(t, catalog.IsType("Dragon"))
}
