package in

import (
	"context"

	"gothere/internal/modules/progress/dto"
)

type Usecase interface {
	Start(ctx context.Context) (dto.StateOutput, error)
	Snapshot(ctx context.Context) (dto.StateOutput, error)
	Deck(ctx context.Context, relationshipID, vibeID string) (dto.DeckOutput, error)
	MarkSeen(ctx context.Context, input dto.MarkSeenInput) (dto.MarkSeenOutput, error)
	Save(ctx context.Context, input dto.SaveInput) (dto.SaveOutput, error)
	Unsave(ctx context.Context, input dto.SaveInput) (dto.SaveOutput, error)
	DismissOnboarding(ctx context.Context) (dto.StateOutput, error)
	EvaluateBadges(ctx context.Context) (dto.EvaluateOutput, error)
	Saved(ctx context.Context, filter dto.SavedFilter) ([]dto.SavedQuestionOutput, error)
	Journey(ctx context.Context) (dto.JourneyOutput, error)
	Badges(ctx context.Context) ([]dto.BadgeOutput, error)
	SessionSummary(ctx context.Context) (dto.SessionSummaryOutput, error)
	Export(ctx context.Context) ([]byte, error)
	ExportSaved(ctx context.Context, input dto.ExportSavedInput) (dto.ExportSavedOutput, error)
}
