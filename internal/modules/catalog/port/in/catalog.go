package in

import (
	"context"

	"gothere/internal/modules/catalog/dto"
)

type Usecase interface {
	Relationships(ctx context.Context) ([]dto.RelationshipOutput, error)
	Vibes(ctx context.Context, relationshipID string) ([]dto.VibeOutput, error)
	Deck(ctx context.Context, relationshipID, vibeID string) (dto.DeckOutput, error)
	Snapshot(ctx context.Context) (dto.SnapshotOutput, error)
}
