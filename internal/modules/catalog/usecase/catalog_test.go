package usecase_test

import (
	"context"
	"errors"
	"testing"

	catalogout "gothere/internal/modules/catalog/adapter/out"
	"gothere/internal/modules/catalog/domain"
	catalogin "gothere/internal/modules/catalog/port/in"
	"gothere/internal/modules/catalog/service"
	"gothere/internal/modules/catalog/usecase"
	apperrors "gothere/internal/platform/errors"
)

type countingSource struct {
	loads int
	cat   domain.Catalog
	err   error
}

func (s *countingSource) Load(context.Context) (domain.Catalog, error) {
	s.loads++
	return s.cat, s.err
}

func newDefaultInteractor() catalogin.Usecase {
	svc := service.NewCatalogService(catalogout.NewYAMLCatalogSource(""), nil)
	return usecase.NewInteractor(svc)
}

func TestVibesAppendsMixedEntry(t *testing.T) {
	t.Parallel()
	uc := newDefaultInteractor()
	vibes, err := uc.Vibes(context.Background(), "partner")
	if err != nil {
		t.Fatalf("vibes: %v", err)
	}
	if len(vibes) != 7 {
		t.Fatalf("expected 6 vibes plus mixed, got %d", len(vibes))
	}
	mixed := vibes[len(vibes)-1]
	if !mixed.Mixed || mixed.ID != domain.MixedVibeID || mixed.DeckLength != 120 {
		t.Fatalf("unexpected mixed entry: %+v", mixed)
	}
}

func TestVibesUnknownRelationship(t *testing.T) {
	t.Parallel()
	if _, err := newDefaultInteractor().Vibes(context.Background(), "alien"); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDeckReturnsCopy(t *testing.T) {
	t.Parallel()
	uc := newDefaultInteractor()
	deck, err := uc.Deck(context.Background(), "kid", "real")
	if err != nil {
		t.Fatalf("deck: %v", err)
	}
	deck.Prompts[0] = "mutated"
	again, _ := uc.Deck(context.Background(), "kid", "real")
	if again.Prompts[0] == "mutated" {
		t.Fatalf("deck output must not alias the catalog")
	}
	if _, err := uc.Deck(context.Background(), "kid", "flirty"); !errors.Is(err, apperrors.ErrUnknownCombination) {
		t.Fatalf("expected ErrUnknownCombination, got %v", err)
	}
	if _, err := uc.Deck(context.Background(), "group", domain.MixedVibeID); !errors.Is(err, apperrors.ErrUnknownCombination) {
		t.Fatalf("mixed has no stored deck, got %v", err)
	}
}

func TestSnapshotAndRelationships(t *testing.T) {
	t.Parallel()
	uc := newDefaultInteractor()
	snap, err := uc.Snapshot(context.Background())
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	if snap.Total != 680 || len(snap.Combos["group"]) != 4 {
		t.Fatalf("unexpected snapshot: total=%d group=%v", snap.Total, snap.Combos["group"])
	}
	rels, err := uc.Relationships(context.Background())
	if err != nil {
		t.Fatalf("relationships: %v", err)
	}
	if len(rels) != 7 || rels[0].ID != "partner" || rels[0].DeckLength != 120 {
		t.Fatalf("unexpected relationships: %+v", rels)
	}
}

func TestCatalogLoadedOnceAndValidated(t *testing.T) {
	t.Parallel()
	src := &countingSource{cat: domain.Catalog{
		Relationships: []domain.Relationship{{ID: "a"}},
		Vibes:         []domain.Vibe{{ID: "x"}},
		Decks:         map[string]map[string][]string{"a": {"x": {"q"}}},
	}}
	uc := usecase.NewInteractor(service.NewCatalogService(src, nil))
	for i := 0; i < 3; i++ {
		if _, err := uc.Relationships(context.Background()); err != nil {
			t.Fatalf("relationships: %v", err)
		}
	}
	if src.loads != 1 {
		t.Fatalf("expected a single load, got %d", src.loads)
	}

	bad := &countingSource{cat: domain.Catalog{Vibes: []domain.Vibe{{ID: domain.MixedVibeID}}}}
	if _, err := usecase.NewInteractor(service.NewCatalogService(bad, nil)).Snapshot(context.Background()); err == nil {
		t.Fatalf("expected validation error")
	}
}
