package usecase

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"golang.org/x/text/cases"

	catalogdto "gothere/internal/modules/catalog/dto"
	catalogin "gothere/internal/modules/catalog/port/in"
	"gothere/internal/modules/progress/domain"
	"gothere/internal/modules/progress/dto"
	progressin "gothere/internal/modules/progress/port/in"
	"gothere/internal/modules/progress/service"
	"gothere/internal/platform/clock"
	apperrors "gothere/internal/platform/errors"
	"gothere/internal/platform/id"
	"gothere/internal/platform/logger"
)

// Interactor holds the single in-memory State of a session. Every
// operation runs under mu, so a mutation is read, replaced, persisted and
// published before the next one starts.
type Interactor struct {
	svc     *service.ProgressService
	catalog catalogin.Usecase
	clock   clock.Clock
	idGen   id.Generator
	log     *logger.Logger

	mu      sync.Mutex
	started bool
	snap    catalogdto.SnapshotOutput
	state   domain.State
	swipes  int
	session sessionStats
}

type sessionStats struct {
	id        string
	startedAt time.Time
	viewed    int
	saved     int
	badges    []string
}

func NewInteractor(svc *service.ProgressService, catalog catalogin.Usecase, clk clock.Clock, idGen id.Generator, log *logger.Logger) progressin.Usecase {
	if log == nil {
		log = logger.Nop()
	}
	return &Interactor{svc: svc, catalog: catalog, clock: clk, idGen: idGen, log: log}
}

func (i *Interactor) Start(ctx context.Context) (dto.StateOutput, error) {
	i.mu.Lock()
	defer i.mu.Unlock()
	if err := i.ensureStarted(ctx); err != nil {
		return dto.StateOutput{}, err
	}
	return i.stateOutput(), nil
}

// ensureStarted loads the persisted state once per session, aligns it with
// the catalog and applies the day rollover. Callers hold mu.
func (i *Interactor) ensureStarted(ctx context.Context) error {
	if i.started {
		return nil
	}
	if i.catalog == nil {
		return apperrors.ErrCatalogNotAvailable
	}
	snap, err := i.catalog.Snapshot(ctx)
	if err != nil {
		return fmt.Errorf("load catalog snapshot: %w", err)
	}
	i.snap = snap

	loaded := i.svc.Load(ctx)
	next, reconciled := domain.Reconcile(loaded, i.deckLength)
	next = domain.RollOverStreak(next, i.today())
	if reconciled || next.Streak != loaded.Streak {
		i.svc.Persist(ctx, next)
	}
	if next.Streak != loaded.Streak {
		i.log.Info("streak reset", "previous", loaded.Streak, "last_active", loaded.LastActiveDate.String())
	}
	i.state = next
	i.swipes = i.svc.LoadSwipeCount(ctx)
	i.session = sessionStats{id: i.idGen.New(), startedAt: i.clock.Now()}
	i.started = true
	i.log = i.log.With("session", i.session.id)
	i.log.Info("progress session started",
		"streak", next.Streak,
		"total_viewed", next.TotalViewed(),
		"saved", len(next.SavedQuestions),
		"reconciled", reconciled,
	)
	return nil
}

func (i *Interactor) Snapshot(ctx context.Context) (dto.StateOutput, error) {
	i.mu.Lock()
	defer i.mu.Unlock()
	if err := i.ensureStarted(ctx); err != nil {
		return dto.StateOutput{}, err
	}
	return i.stateOutput(), nil
}

func (i *Interactor) Deck(ctx context.Context, relationshipID, vibeID string) (dto.DeckOutput, error) {
	i.mu.Lock()
	defer i.mu.Unlock()
	if err := i.ensureStarted(ctx); err != nil {
		return dto.DeckOutput{}, err
	}
	n := i.deckLength(relationshipID, vibeID)
	if n == 0 {
		return dto.DeckOutput{}, apperrors.ErrUnknownCombination
	}

	var cards []domain.MixedCard
	if vibeID == domain.MixedVibeID {
		cards = domain.BuildMixedDeck(relationshipID, snapshotDecks(i.snap))
	} else {
		for _, text := range i.snap.Decks[relationshipID][vibeID] {
			cards = append(cards, domain.MixedCard{Text: text, SourceVibe: vibeID})
		}
	}

	out := dto.DeckOutput{
		RelationshipID: relationshipID,
		VibeID:         vibeID,
		Mixed:          vibeID == domain.MixedVibeID,
		Cards:          make([]dto.CardOutput, 0, len(cards)),
		CurrentIndex:   domain.NextUnseenIndex(i.state, relationshipID, vibeID, n),
		SeenCount:      i.state.SeenCount(relationshipID, vibeID),
		Total:          n,
		Completed:      i.state.IsCompleted(relationshipID, vibeID),
		ShowOnboarding: i.state.FirstUse,
		Encouragement:  domain.Encouragement(i.swipes),
	}
	for idx, card := range cards {
		out.Cards = append(out.Cards, dto.CardOutput{
			Index:      idx,
			Text:       card.Text,
			SourceVibe: card.SourceVibe,
			Rare:       domain.IsRareCard(relationshipID, vibeID, idx),
			Seen:       i.state.HasSeen(relationshipID, vibeID, idx),
			Saved:      i.state.IsSaved(card.Text, relationshipID, card.SourceVibe),
		})
	}
	return out, nil
}

// MarkSeen records one prompt view: streak rollover, seen set, qualifying
// increment, then at most one new badge.
func (i *Interactor) MarkSeen(ctx context.Context, input dto.MarkSeenInput) (dto.MarkSeenOutput, error) {
	i.mu.Lock()
	defer i.mu.Unlock()
	if err := i.ensureStarted(ctx); err != nil {
		return dto.MarkSeenOutput{}, err
	}
	rel, vibe := input.RelationshipID, input.VibeID
	n := i.deckLength(rel, vibe)
	if n == 0 {
		return dto.MarkSeenOutput{}, apperrors.ErrUnknownCombination
	}
	if input.Index < 0 || input.Index >= n {
		return dto.MarkSeenOutput{}, fmt.Errorf("%w: index %d outside deck of %d", apperrors.ErrInvalidInput, input.Index, n)
	}

	today := i.today()
	before := i.state
	next := domain.RollOverStreak(before, today)
	next = domain.RecordSeen(next, rel, vibe, input.Index, n, today)
	next, increased := domain.ApplyQualifyingView(next, today)
	next, badge, unlocked := domain.Evaluate(next, i.snap.Combos)
	i.commit(ctx, next)
	i.session.viewed++
	i.swipes++
	i.svc.PersistSwipeCount(ctx, i.swipes)

	out := dto.MarkSeenOutput{
		SeenCount:       next.SeenCount(rel, vibe),
		Total:           n,
		StreakIncreased: increased,
		Encouragement:   domain.Encouragement(i.swipes),
	}
	nextIndex, ok := domain.AdvanceIndex(next, rel, vibe, input.Index, n)
	out.NextIndex = nextIndex
	out.DeckComplete = !ok
	if !before.HasSeen(rel, vibe, input.Index) {
		if m, hit := domain.MilestoneFor(next.TotalViewed(), out.SeenCount); hit {
			out.Milestone = m.Message
		}
	}
	if increased {
		i.log.Info("streak extended", "streak", next.Streak, "day", today.String())
	}
	if unlocked {
		out.Badge = i.recordBadge(badge)
	}
	out.State = i.stateOutput()
	return out, nil
}

func (i *Interactor) Save(ctx context.Context, input dto.SaveInput) (dto.SaveOutput, error) {
	i.mu.Lock()
	defer i.mu.Unlock()
	if err := i.ensureStarted(ctx); err != nil {
		return dto.SaveOutput{}, err
	}
	if err := i.validateSave(input); err != nil {
		return dto.SaveOutput{}, err
	}
	question := strings.TrimSpace(input.Question)
	next := domain.RollOverStreak(i.state, i.today())
	changed := !next.IsSaved(question, input.RelationshipID, input.VibeID)
	next = domain.SaveQuestion(next, question, input.RelationshipID, input.VibeID, i.clock.Now())
	next, badge, unlocked := domain.Evaluate(next, i.snap.Combos)
	i.commit(ctx, next)
	if changed {
		i.session.saved++
	}

	out := dto.SaveOutput{Saved: true, Changed: changed, SavedCount: len(next.SavedQuestions)}
	if unlocked {
		out.Badge = i.recordBadge(badge)
	}
	return out, nil
}

func (i *Interactor) Unsave(ctx context.Context, input dto.SaveInput) (dto.SaveOutput, error) {
	i.mu.Lock()
	defer i.mu.Unlock()
	if err := i.ensureStarted(ctx); err != nil {
		return dto.SaveOutput{}, err
	}
	question := strings.TrimSpace(input.Question)
	if question == "" {
		return dto.SaveOutput{}, fmt.Errorf("%w: question is required", apperrors.ErrInvalidInput)
	}
	next := domain.RollOverStreak(i.state, i.today())
	changed := next.IsSaved(question, input.RelationshipID, input.VibeID)
	next = domain.UnsaveQuestion(next, question, input.RelationshipID, input.VibeID)
	next, badge, unlocked := domain.Evaluate(next, i.snap.Combos)
	i.commit(ctx, next)

	out := dto.SaveOutput{Saved: false, Changed: changed, SavedCount: len(next.SavedQuestions)}
	if unlocked {
		out.Badge = i.recordBadge(badge)
	}
	return out, nil
}

func (i *Interactor) validateSave(input dto.SaveInput) error {
	if strings.TrimSpace(input.Question) == "" {
		return fmt.Errorf("%w: question is required", apperrors.ErrInvalidInput)
	}
	if i.deckLength(input.RelationshipID, input.VibeID) == 0 {
		return apperrors.ErrUnknownCombination
	}
	return nil
}

func (i *Interactor) DismissOnboarding(ctx context.Context) (dto.StateOutput, error) {
	i.mu.Lock()
	defer i.mu.Unlock()
	if err := i.ensureStarted(ctx); err != nil {
		return dto.StateOutput{}, err
	}
	if i.state.FirstUse {
		next := domain.RollOverStreak(i.state, i.today())
		i.commit(ctx, domain.DismissOnboarding(next))
	}
	return i.stateOutput(), nil
}

// EvaluateBadges surfaces the next pending badge, if any. The TUI calls it
// after a badge modal closes so queued unlocks show one at a time.
func (i *Interactor) EvaluateBadges(ctx context.Context) (dto.EvaluateOutput, error) {
	i.mu.Lock()
	defer i.mu.Unlock()
	if err := i.ensureStarted(ctx); err != nil {
		return dto.EvaluateOutput{}, err
	}
	next, badge, unlocked := domain.Evaluate(i.state, i.snap.Combos)
	if !unlocked {
		return dto.EvaluateOutput{}, nil
	}
	i.commit(ctx, next)
	return dto.EvaluateOutput{Badge: i.recordBadge(badge)}, nil
}

// Saved lists saved questions newest first.
func (i *Interactor) Saved(ctx context.Context, filter dto.SavedFilter) ([]dto.SavedQuestionOutput, error) {
	i.mu.Lock()
	defer i.mu.Unlock()
	if err := i.ensureStarted(ctx); err != nil {
		return nil, err
	}
	fold := cases.Fold()
	query := fold.String(strings.TrimSpace(filter.Query))
	saved := i.state.SavedQuestions
	out := make([]dto.SavedQuestionOutput, 0, len(saved))
	for idx := len(saved) - 1; idx >= 0; idx-- {
		q := saved[idx]
		if filter.RelationshipID != "" && q.RelationshipID != filter.RelationshipID {
			continue
		}
		if filter.VibeID != "" && q.VibeID != filter.VibeID {
			continue
		}
		if query != "" && !strings.Contains(fold.String(q.Question), query) {
			continue
		}
		out = append(out, dto.SavedQuestionOutput{
			Question:       q.Question,
			RelationshipID: q.RelationshipID,
			VibeID:         q.VibeID,
			SavedAt:        q.SavedAt,
		})
	}
	return out, nil
}

func (i *Interactor) Journey(ctx context.Context) (dto.JourneyOutput, error) {
	i.mu.Lock()
	defer i.mu.Unlock()
	if err := i.ensureStarted(ctx); err != nil {
		return dto.JourneyOutput{}, err
	}
	rels, err := i.catalog.Relationships(ctx)
	if err != nil {
		return dto.JourneyOutput{}, err
	}

	out := dto.JourneyOutput{
		TotalViewed:   i.state.TotalViewed(),
		TotalPossible: i.snap.Total,
		Streak:        i.state.Streak,
		SavedCount:    len(i.state.SavedQuestions),
		Badges:        i.badgeOutputs(),
	}
	out.Percent = percent(out.TotalViewed, out.TotalPossible)
	for _, rel := range rels {
		for _, vibe := range i.snap.Combos[rel.ID] {
			total := len(i.snap.Decks[rel.ID][vibe])
			seen := i.state.SeenCount(rel.ID, vibe)
			out.Combos = append(out.Combos, dto.ComboProgressOutput{
				RelationshipID: rel.ID,
				VibeID:         vibe,
				Seen:           seen,
				Total:          total,
				Percent:        percent(seen, total),
				Completed:      i.state.IsCompleted(rel.ID, vibe),
			})
		}
	}
	return out, nil
}

func (i *Interactor) Badges(ctx context.Context) ([]dto.BadgeOutput, error) {
	i.mu.Lock()
	defer i.mu.Unlock()
	if err := i.ensureStarted(ctx); err != nil {
		return nil, err
	}
	return i.badgeOutputs(), nil
}

func (i *Interactor) SessionSummary(ctx context.Context) (dto.SessionSummaryOutput, error) {
	i.mu.Lock()
	defer i.mu.Unlock()
	if err := i.ensureStarted(ctx); err != nil {
		return dto.SessionSummaryOutput{}, err
	}
	return dto.SessionSummaryOutput{
		SessionID:      i.session.id,
		StartedAt:      i.session.startedAt,
		Viewed:         i.session.viewed,
		Saved:          i.session.saved,
		BadgesUnlocked: append([]string(nil), i.session.badges...),
		Streak:         i.state.Streak,
	}, nil
}

// Export returns the current state in its persisted JSON form.
func (i *Interactor) Export(ctx context.Context) ([]byte, error) {
	i.mu.Lock()
	defer i.mu.Unlock()
	if err := i.ensureStarted(ctx); err != nil {
		return nil, err
	}
	return domain.Encode(i.state)
}

func (i *Interactor) ExportSaved(ctx context.Context, input dto.ExportSavedInput) (dto.ExportSavedOutput, error) {
	i.mu.Lock()
	defer i.mu.Unlock()
	if err := i.ensureStarted(ctx); err != nil {
		return dto.ExportSavedOutput{}, err
	}
	if strings.TrimSpace(input.Path) == "" {
		return dto.ExportSavedOutput{}, fmt.Errorf("%w: export path is required", apperrors.ErrInvalidInput)
	}
	relLabels, vibeLabels, err := i.labels(ctx)
	if err != nil {
		return dto.ExportSavedOutput{}, err
	}
	note := domain.BuildSavedNote(i.state.SavedQuestions, relLabels, vibeLabels, i.clock.Now())
	path, err := i.svc.WriteSavedNote(ctx, input.Path, note)
	if err != nil {
		return dto.ExportSavedOutput{}, fmt.Errorf("export saved questions: %w", err)
	}
	return dto.ExportSavedOutput{Path: path, Count: note.Count}, nil
}

func (i *Interactor) labels(ctx context.Context) (map[string]string, map[string]string, error) {
	rels, err := i.catalog.Relationships(ctx)
	if err != nil {
		return nil, nil, err
	}
	relLabels := map[string]string{}
	vibeLabels := map[string]string{}
	for _, rel := range rels {
		relLabels[rel.ID] = rel.Label
		vibes, err := i.catalog.Vibes(ctx, rel.ID)
		if err != nil {
			return nil, nil, err
		}
		for _, v := range vibes {
			vibeLabels[v.ID] = v.Label
		}
	}
	return relLabels, vibeLabels, nil
}

func (i *Interactor) commit(ctx context.Context, next domain.State) {
	i.state = next
	i.svc.Persist(ctx, next)
}

func (i *Interactor) recordBadge(a domain.Achievement) *dto.BadgeOutput {
	i.session.badges = append(i.session.badges, a.ID)
	i.log.Info("badge unlocked", "badge", a.ID)
	out := badgeOutput(a, true)
	return &out
}

func (i *Interactor) badgeOutputs() []dto.BadgeOutput {
	all := domain.Achievements()
	out := make([]dto.BadgeOutput, 0, len(all))
	for _, a := range all {
		out = append(out, badgeOutput(a, i.state.IsUnlocked(a.ID)))
	}
	return out
}

func (i *Interactor) stateOutput() dto.StateOutput {
	viewedToday := i.state.QuestionsViewedToday
	if i.state.LastActiveDate != i.today() {
		viewedToday = 0
	}
	return dto.StateOutput{
		Streak:         i.state.Streak,
		TotalViewed:    i.state.TotalViewed(),
		ViewedToday:    viewedToday,
		LastActiveDate: i.state.LastActiveDate.String(),
		SavedCount:     len(i.state.SavedQuestions),
		UnlockedBadges: append([]string(nil), i.state.UnlockedBadges...),
		FirstUse:       i.state.FirstUse,
		Swipes:         i.swipes,
		Degraded:       i.svc.Degraded(),
	}
}

// deckLength is the catalog length of a combination. The mixed pseudo-vibe
// only exists for relationships with at least two vibes.
func (i *Interactor) deckLength(relationshipID, vibeID string) int {
	if vibeID != domain.MixedVibeID {
		return len(i.snap.Decks[relationshipID][vibeID])
	}
	vibes := i.snap.Combos[relationshipID]
	if len(vibes) < 2 {
		return 0
	}
	total := 0
	for _, v := range vibes {
		total += len(i.snap.Decks[relationshipID][v])
	}
	return total
}

func (i *Interactor) today() domain.Day {
	return domain.DayOf(i.clock.Now())
}

func badgeOutput(a domain.Achievement, unlocked bool) dto.BadgeOutput {
	return dto.BadgeOutput{ID: a.ID, Name: a.Name, Description: a.Description, Icon: a.Icon, Unlocked: unlocked}
}

func percent(part, whole int) int {
	if whole <= 0 {
		return 0
	}
	p := part * 100 / whole
	if p > 100 {
		return 100
	}
	return p
}

// snapshotDecks adapts the catalog snapshot to the selection engine.
type snapshotDecks catalogdto.SnapshotOutput

func (s snapshotDecks) Deck(relationshipID, vibeID string) []string {
	return s.Decks[relationshipID][vibeID]
}

func (s snapshotDecks) AvailableVibes(relationshipID string) []string {
	return s.Combos[relationshipID]
}
