package domain_test

import (
	"strings"
	"testing"

	"gothere/internal/modules/catalog/domain"
)

func sampleCatalog() domain.Catalog {
	return domain.Catalog{
		Relationships: []domain.Relationship{{ID: "partner"}, {ID: "kid"}, {ID: "ghost"}},
		Vibes:         []domain.Vibe{{ID: "deep"}, {ID: "funny"}, {ID: "flirty"}},
		Decks: map[string]map[string][]string{
			"partner": {"flirty": {"p1"}, "deep": {"d1", "d2"}},
			"kid":     {"funny": {"k1"}, "flirty": {}},
		},
	}
}

func TestAvailableVibesFollowsCatalogOrder(t *testing.T) {
	t.Parallel()
	cat := sampleCatalog()
	got := cat.AvailableVibes("partner")
	if strings.Join(got, ",") != "deep,flirty" {
		t.Fatalf("expected deep,flirty, got %v", got)
	}
	if got := cat.AvailableVibes("kid"); strings.Join(got, ",") != "funny" {
		t.Fatalf("empty decks must be skipped, got %v", got)
	}
	if cat.HasCombination("kid", "flirty") || !cat.HasCombination("partner", "deep") {
		t.Fatalf("unexpected availability")
	}
}

func TestCombosSkipsRelationshipsWithoutDecks(t *testing.T) {
	t.Parallel()
	cat := sampleCatalog()
	combos := cat.Combos()
	if _, ok := combos["ghost"]; ok {
		t.Fatalf("relationship without decks must not appear")
	}
	if len(combos) != 2 {
		t.Fatalf("expected 2 relationships, got %d", len(combos))
	}
	if got := cat.TotalPrompts(); got != 4 {
		t.Fatalf("expected 4 prompts, got %d", got)
	}
}

func TestValidateRejectsBrokenCatalogs(t *testing.T) {
	t.Parallel()
	cases := map[string]func(*domain.Catalog){
		"duplicate relationship": func(c *domain.Catalog) {
			c.Relationships = append(c.Relationships, domain.Relationship{ID: "kid"})
		},
		"reserved vibe": func(c *domain.Catalog) {
			c.Vibes = append(c.Vibes, domain.Vibe{ID: domain.MixedVibeID})
		},
		"unknown deck relationship": func(c *domain.Catalog) {
			c.Decks["alien"] = map[string][]string{"deep": {"x"}}
		},
		"unknown deck vibe": func(c *domain.Catalog) {
			c.Decks["kid"]["spicy"] = []string{"x"}
		},
	}
	for name, mutate := range cases {
		cat := sampleCatalog()
		mutate(&cat)
		if err := cat.Validate(); err == nil {
			t.Fatalf("%s: expected validation error", name)
		}
	}
	if err := sampleCatalog().Validate(); err != nil {
		t.Fatalf("sample catalog must validate: %v", err)
	}
}
