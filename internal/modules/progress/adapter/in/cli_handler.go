package in

import (
	"context"

	progressdto "gothere/internal/modules/progress/dto"
	progressin "gothere/internal/modules/progress/port/in"
)

type CLIHandler struct {
	usecase progressin.Usecase
}

func NewCLIHandler(usecase progressin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Start(ctx context.Context) (progressdto.StateOutput, error) {
	return h.usecase.Start(ctx)
}

func (h CLIHandler) Deck(ctx context.Context, relationshipID, vibeID string) (progressdto.DeckOutput, error) {
	return h.usecase.Deck(ctx, relationshipID, vibeID)
}

func (h CLIHandler) MarkSeen(ctx context.Context, relationshipID, vibeID string, index int) (progressdto.MarkSeenOutput, error) {
	return h.usecase.MarkSeen(ctx, progressdto.MarkSeenInput{RelationshipID: relationshipID, VibeID: vibeID, Index: index})
}

func (h CLIHandler) Save(ctx context.Context, question, relationshipID, vibeID string) (progressdto.SaveOutput, error) {
	return h.usecase.Save(ctx, progressdto.SaveInput{Question: question, RelationshipID: relationshipID, VibeID: vibeID})
}

func (h CLIHandler) Unsave(ctx context.Context, question, relationshipID, vibeID string) (progressdto.SaveOutput, error) {
	return h.usecase.Unsave(ctx, progressdto.SaveInput{Question: question, RelationshipID: relationshipID, VibeID: vibeID})
}

func (h CLIHandler) DismissOnboarding(ctx context.Context) (progressdto.StateOutput, error) {
	return h.usecase.DismissOnboarding(ctx)
}

func (h CLIHandler) EvaluateBadges(ctx context.Context) (progressdto.EvaluateOutput, error) {
	return h.usecase.EvaluateBadges(ctx)
}

func (h CLIHandler) Saved(ctx context.Context, relationshipID, vibeID, query string) ([]progressdto.SavedQuestionOutput, error) {
	return h.usecase.Saved(ctx, progressdto.SavedFilter{RelationshipID: relationshipID, VibeID: vibeID, Query: query})
}

func (h CLIHandler) Journey(ctx context.Context) (progressdto.JourneyOutput, error) {
	return h.usecase.Journey(ctx)
}

func (h CLIHandler) Badges(ctx context.Context) ([]progressdto.BadgeOutput, error) {
	return h.usecase.Badges(ctx)
}

func (h CLIHandler) SessionSummary(ctx context.Context) (progressdto.SessionSummaryOutput, error) {
	return h.usecase.SessionSummary(ctx)
}

func (h CLIHandler) Export(ctx context.Context) ([]byte, error) {
	return h.usecase.Export(ctx)
}

func (h CLIHandler) ExportSaved(ctx context.Context, path string) (progressdto.ExportSavedOutput, error) {
	return h.usecase.ExportSaved(ctx, progressdto.ExportSavedInput{Path: path})
}
