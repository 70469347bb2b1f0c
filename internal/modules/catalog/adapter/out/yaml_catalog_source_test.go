package out_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	catalogout "gothere/internal/modules/catalog/adapter/out"
)

func TestEmbeddedCatalogLoads(t *testing.T) {
	t.Parallel()
	cat, err := catalogout.NewYAMLCatalogSource("").Load(context.Background())
	require.NoError(t, err)
	require.NoError(t, cat.Validate())

	want := map[string][]string{
		"partner": {"deep", "funny", "nostalgic", "daring", "flirty", "real"},
		"friend":  {"deep", "funny", "nostalgic", "daring", "real"},
		"group":   {"deep", "funny", "nostalgic", "daring"},
		"parent":  {"deep", "funny", "nostalgic", "daring", "real"},
		"sibling": {"deep", "funny", "nostalgic", "daring", "real"},
		"kid":     {"deep", "funny", "nostalgic", "real"},
		"date":    {"deep", "funny", "daring", "flirty", "real"},
	}
	require.Equal(t, want, cat.Combos())
	for rel, vibes := range want {
		for _, vibe := range vibes {
			require.Len(t, cat.Deck(rel, vibe), 20, "%s/%s", rel, vibe)
		}
	}
	require.Equal(t, 680, cat.TotalPrompts())
}

func TestAliasedDecksAreIndependentCopies(t *testing.T) {
	t.Parallel()
	cat, err := catalogout.DecodeCatalog([]byte(`
relationships: [{id: a}, {id: b}]
vibes: [{id: deep}]
prompts:
  deep: &deep [one, two]
decks:
  a: {deep: *deep}
  b: {deep: *deep}
`))
	require.NoError(t, err)
	cat.Decks["a"]["deep"][0] = "changed"
	require.Equal(t, "one", cat.Deck("b", "deep")[0])
}

func TestCatalogFromFile(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
relationships: [{id: coworker, label: Coworker, emoji: "💼"}]
vibes: [{id: funny, label: Funny, color: "#F59E0B"}]
decks:
  coworker: {funny: [first, second]}
`), 0o644))

	cat, err := catalogout.NewYAMLCatalogSource(path).Load(context.Background())
	require.NoError(t, err)
	require.Equal(t, []string{"first", "second"}, cat.Deck("coworker", "funny"))
	require.Equal(t, "Coworker", cat.Relationships[0].Label)
}

func TestCatalogRejectsUnknownKeysAndMissingFile(t *testing.T) {
	t.Parallel()
	_, err := catalogout.DecodeCatalog([]byte("relationships: []\nthemes: []\n"))
	require.Error(t, err)

	_, err = catalogout.NewYAMLCatalogSource(filepath.Join(t.TempDir(), "missing.yaml")).Load(context.Background())
	require.Error(t, err)
}
