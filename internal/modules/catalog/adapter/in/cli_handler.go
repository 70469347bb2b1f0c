package in

import (
	"context"

	catalogdto "gothere/internal/modules/catalog/dto"
	catalogin "gothere/internal/modules/catalog/port/in"
)

type CLIHandler struct {
	usecase catalogin.Usecase
}

func NewCLIHandler(usecase catalogin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Relationships(ctx context.Context) ([]catalogdto.RelationshipOutput, error) {
	return h.usecase.Relationships(ctx)
}

func (h CLIHandler) Vibes(ctx context.Context, relationshipID string) ([]catalogdto.VibeOutput, error) {
	return h.usecase.Vibes(ctx, relationshipID)
}

func (h CLIHandler) Deck(ctx context.Context, relationshipID, vibeID string) (catalogdto.DeckOutput, error) {
	return h.usecase.Deck(ctx, relationshipID, vibeID)
}
