package usecase

import (
	"context"

	"gothere/internal/modules/catalog/domain"
	"gothere/internal/modules/catalog/dto"
	catalogin "gothere/internal/modules/catalog/port/in"
	"gothere/internal/modules/catalog/service"
	apperrors "gothere/internal/platform/errors"
)

type Interactor struct {
	svc *service.CatalogService
}

func NewInteractor(svc *service.CatalogService) catalogin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) Relationships(ctx context.Context) ([]dto.RelationshipOutput, error) {
	cat, err := i.svc.Catalog(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.RelationshipOutput, 0, len(cat.Relationships))
	for _, r := range cat.Relationships {
		vibes := cat.AvailableVibes(r.ID)
		if len(vibes) == 0 {
			continue
		}
		total := 0
		for _, v := range vibes {
			total += len(cat.Deck(r.ID, v))
		}
		out = append(out, dto.RelationshipOutput{
			ID:         r.ID,
			Label:      r.Label,
			Emoji:      r.Emoji,
			VibeCount:  len(vibes),
			DeckLength: total,
		})
	}
	return out, nil
}

// Vibes lists the playable vibes for a relationship. Relationships with at
// least two vibes get a trailing mixed entry.
func (i *Interactor) Vibes(ctx context.Context, relationshipID string) ([]dto.VibeOutput, error) {
	cat, err := i.svc.Catalog(ctx)
	if err != nil {
		return nil, err
	}
	if _, ok := cat.Relationship(relationshipID); !ok {
		return nil, apperrors.ErrNotFound
	}
	ids := cat.AvailableVibes(relationshipID)
	out := make([]dto.VibeOutput, 0, len(ids)+1)
	mixedLen := 0
	for _, id := range ids {
		v, _ := cat.Vibe(id)
		n := len(cat.Deck(relationshipID, id))
		mixedLen += n
		out = append(out, dto.VibeOutput{ID: v.ID, Label: v.Label, Emoji: v.Emoji, Color: v.Color, DeckLength: n})
	}
	if len(ids) >= 2 {
		out = append(out, dto.VibeOutput{ID: domain.MixedVibeID, Label: "Mixed", Emoji: "🎲", DeckLength: mixedLen, Mixed: true})
	}
	return out, nil
}

func (i *Interactor) Deck(ctx context.Context, relationshipID, vibeID string) (dto.DeckOutput, error) {
	cat, err := i.svc.Catalog(ctx)
	if err != nil {
		return dto.DeckOutput{}, err
	}
	if !cat.HasCombination(relationshipID, vibeID) {
		return dto.DeckOutput{}, apperrors.ErrUnknownCombination
	}
	prompts := cat.Deck(relationshipID, vibeID)
	return dto.DeckOutput{
		RelationshipID: relationshipID,
		VibeID:         vibeID,
		Prompts:        append([]string(nil), prompts...),
	}, nil
}

func (i *Interactor) Snapshot(ctx context.Context) (dto.SnapshotOutput, error) {
	cat, err := i.svc.Catalog(ctx)
	if err != nil {
		return dto.SnapshotOutput{}, err
	}
	decks := make(map[string]map[string][]string, len(cat.Decks))
	for rel, vibes := range cat.Combos() {
		decks[rel] = make(map[string][]string, len(vibes))
		for _, v := range vibes {
			decks[rel][v] = append([]string(nil), cat.Deck(rel, v)...)
		}
	}
	return dto.SnapshotOutput{Decks: decks, Combos: cat.Combos(), Total: cat.TotalPrompts()}, nil
}
