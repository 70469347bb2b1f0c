package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"gothere/internal/bootstrap"
	progressdto "gothere/internal/modules/progress/dto"
	"gothere/internal/platform/config"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var dataDir string

	root := &cobra.Command{
		Use:           "gothere",
		Short:         "Conversation prompts for the people in your life",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&dataDir, "data", ".", "directory holding .gothere state")

	root.AddCommand(newTUICmd(&dataDir))
	root.AddCommand(newCatalogCmd(&dataDir))
	root.AddCommand(newDrawCmd(&dataDir))
	root.AddCommand(newSeenCmd(&dataDir))
	root.AddCommand(newSaveCmd(&dataDir))
	root.AddCommand(newUnsaveCmd(&dataDir))
	root.AddCommand(newSavedCmd(&dataDir))
	root.AddCommand(newJourneyCmd(&dataDir))
	root.AddCommand(newBadgesCmd(&dataDir))
	root.AddCommand(newOnboardingCmd(&dataDir))
	root.AddCommand(newStateCmd(&dataDir))
	return root
}

func loadApp(dataDir string) (*bootstrap.App, error) {
	cfg, err := config.Load(dataDir)
	if err != nil {
		return nil, err
	}
	return bootstrap.New(cfg)
}

// withApp runs fn against a freshly wired app and releases it afterwards.
func withApp(dataDir string, fn func(app *bootstrap.App) error) (err error) {
	app, err := loadApp(dataDir)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := app.Close(); err == nil && closeErr != nil {
			err = closeErr
		}
	}()
	return fn(app)
}

func newTUICmd(dataDir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Run the gothere terminal UI",
		RunE: func(_ *cobra.Command, _ []string) error {
			return withApp(*dataDir, bootstrap.RunTUI)
		},
	}
}

func newCatalogCmd(dataDir *string) *cobra.Command {
	catalog := &cobra.Command{Use: "catalog", Short: "Browse relationships, vibes and prompts"}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List relationships and their vibes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(*dataDir, func(app *bootstrap.App) error {
				ctx := context.Background()
				rels, err := app.CatalogCLI.Relationships(ctx)
				if err != nil {
					return err
				}
				for _, rel := range rels {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s %s (%s) prompts=%d\n", rel.Emoji, rel.Label, rel.ID, rel.DeckLength)
					vibes, err := app.CatalogCLI.Vibes(ctx, rel.ID)
					if err != nil {
						return err
					}
					for _, v := range vibes {
						_, _ = fmt.Fprintf(cmd.OutOrStdout(), "  %s %s (%s) %d\n", v.Emoji, v.Label, v.ID, v.DeckLength)
					}
				}
				return nil
			})
		},
	}

	deckCmd := &cobra.Command{
		Use:   "deck <relationship> <vibe>",
		Short: "Print a deck in catalog order",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(*dataDir, func(app *bootstrap.App) error {
				deck, err := app.CatalogCLI.Deck(context.Background(), args[0], args[1])
				if err != nil {
					return err
				}
				for i, p := range deck.Prompts {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%2d. %s\n", i, p)
				}
				return nil
			})
		},
	}

	catalog.AddCommand(listCmd, deckCmd)
	return catalog
}

func newDrawCmd(dataDir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "draw <relationship> <vibe>",
		Short: "Show the next unseen card of a deck",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(*dataDir, func(app *bootstrap.App) error {
				deck, err := app.ProgressCLI.Deck(context.Background(), args[0], args[1])
				if err != nil {
					return err
				}
				if len(deck.Cards) == 0 {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), "deck is empty")
					return nil
				}
				card := deck.Cards[deck.CurrentIndex]
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "[%d] %s\n", card.Index, card.Text)
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\n", cardTags(deck, card))
				if deck.Completed {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), "deck complete, cards repeat from here")
				}
				return nil
			})
		},
	}
}

func newSeenCmd(dataDir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "seen <relationship> <vibe> <index>",
		Short: "Record that a card has been viewed",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := strconv.Atoi(args[2])
			if err != nil {
				return fmt.Errorf("invalid index %q: %w", args[2], err)
			}
			return withApp(*dataDir, func(app *bootstrap.App) error {
				out, err := app.ProgressCLI.MarkSeen(context.Background(), args[0], args[1], index)
				if err != nil {
					return err
				}
				w := cmd.OutOrStdout()
				_, _ = fmt.Fprintf(w, "seen %d/%d streak=%d total=%d\n", out.SeenCount, out.Total, out.State.Streak, out.State.TotalViewed)
				if out.DeckComplete {
					_, _ = fmt.Fprintln(w, "deck complete")
				} else {
					_, _ = fmt.Fprintf(w, "next=%d\n", out.NextIndex)
				}
				if out.StreakIncreased {
					_, _ = fmt.Fprintf(w, "🔥 streak is now %d days\n", out.State.Streak)
				}
				if out.Milestone != "" {
					_, _ = fmt.Fprintln(w, out.Milestone)
				}
				printBadge(w, out.Badge)
				return nil
			})
		},
	}
}

func newSaveCmd(dataDir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "save <relationship> <vibe> <question>",
		Short: "Save a question for later",
		Args:  cobra.MinimumNArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(*dataDir, func(app *bootstrap.App) error {
				out, err := app.ProgressCLI.Save(context.Background(), strings.Join(args[2:], " "), args[0], args[1])
				if err != nil {
					return err
				}
				if out.Changed {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "saved (%d total)\n", out.SavedCount)
				} else {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "already saved (%d total)\n", out.SavedCount)
				}
				printBadge(cmd.OutOrStdout(), out.Badge)
				return nil
			})
		},
	}
}

func newUnsaveCmd(dataDir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "unsave <relationship> <vibe> <question>",
		Short: "Remove a saved question",
		Args:  cobra.MinimumNArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(*dataDir, func(app *bootstrap.App) error {
				out, err := app.ProgressCLI.Unsave(context.Background(), strings.Join(args[2:], " "), args[0], args[1])
				if err != nil {
					return err
				}
				if out.Changed {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "removed (%d left)\n", out.SavedCount)
				} else {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), "not saved")
				}
				return nil
			})
		},
	}
}

func newSavedCmd(dataDir *string) *cobra.Command {
	var relationshipID, vibeID, query string

	saved := &cobra.Command{
		Use:   "saved",
		Short: "List saved questions, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(*dataDir, func(app *bootstrap.App) error {
				items, err := app.ProgressCLI.Saved(context.Background(), relationshipID, vibeID, query)
				if err != nil {
					return err
				}
				if len(items) == 0 {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), "nothing saved")
					return nil
				}
				for _, q := range items {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s  %s/%s  %s\n", q.SavedAt.Format("2006-01-02"), q.RelationshipID, q.VibeID, q.Question)
				}
				return nil
			})
		},
	}
	saved.Flags().StringVar(&relationshipID, "relationship", "", "only questions saved for this relationship")
	saved.Flags().StringVar(&vibeID, "vibe", "", "only questions saved under this vibe")
	saved.Flags().StringVar(&query, "query", "", "case-insensitive text filter")

	exportCmd := &cobra.Command{
		Use:   "export <path>",
		Short: "Write saved questions into a markdown note",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(*dataDir, func(app *bootstrap.App) error {
				out, err := app.ProgressCLI.ExportSaved(context.Background(), args[0])
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "exported %d questions to %s\n", out.Count, out.Path)
				return nil
			})
		},
	}

	saved.AddCommand(exportCmd)
	return saved
}

func newJourneyCmd(dataDir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "journey",
		Short: "Show overall progress per deck",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(*dataDir, func(app *bootstrap.App) error {
				j, err := app.ProgressCLI.Journey(context.Background())
				if err != nil {
					return err
				}
				w := cmd.OutOrStdout()
				_, _ = fmt.Fprintf(w, "viewed %d/%d (%d%%) streak=%d saved=%d\n", j.TotalViewed, j.TotalPossible, j.Percent, j.Streak, j.SavedCount)
				for _, c := range j.Combos {
					mark := " "
					if c.Completed {
						mark = "✓"
					}
					_, _ = fmt.Fprintf(w, "%s %-10s %-10s %2d/%-2d %3d%%\n", mark, c.RelationshipID, c.VibeID, c.Seen, c.Total, c.Percent)
				}
				return nil
			})
		},
	}
}

func newBadgesCmd(dataDir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "badges",
		Short: "List badges and whether they are unlocked",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(*dataDir, func(app *bootstrap.App) error {
				badges, err := app.ProgressCLI.Badges(context.Background())
				if err != nil {
					return err
				}
				for _, b := range badges {
					status := "locked"
					if b.Unlocked {
						status = "unlocked"
					}
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s %-22s %-8s %s\n", b.Icon, b.Name, status, b.Description)
				}
				return nil
			})
		},
	}
}

func newOnboardingCmd(dataDir *string) *cobra.Command {
	onboarding := &cobra.Command{Use: "onboarding", Short: "Manage the first-use hint"}
	dismissCmd := &cobra.Command{
		Use:   "dismiss",
		Short: "Stop showing the swipe hint",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(*dataDir, func(app *bootstrap.App) error {
				out, err := app.ProgressCLI.DismissOnboarding(context.Background())
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "onboarding dismissed first_use=%t\n", out.FirstUse)
				return nil
			})
		},
	}
	onboarding.AddCommand(dismissCmd)
	return onboarding
}

func newStateCmd(dataDir *string) *cobra.Command {
	state := &cobra.Command{Use: "state", Short: "Inspect stored progress"}

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Print streak and counters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(*dataDir, func(app *bootstrap.App) error {
				s, err := app.ProgressCLI.Start(context.Background())
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "streak=%d total=%d today=%d saved=%d badges=%d swipes=%d last_active=%q\n",
					s.Streak, s.TotalViewed, s.ViewedToday, s.SavedCount, len(s.UnlockedBadges), s.Swipes, s.LastActiveDate)
				if s.Degraded {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), "warning: progress is not being persisted")
				}
				return nil
			})
		},
	}

	exportCmd := &cobra.Command{
		Use:   "export",
		Short: "Print the stored progress document as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(*dataDir, func(app *bootstrap.App) error {
				raw, err := app.ProgressCLI.Export(context.Background())
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), string(raw))
				return nil
			})
		},
	}

	state.AddCommand(showCmd, exportCmd)
	return state
}

func cardTags(deck progressdto.DeckOutput, card progressdto.CardOutput) string {
	tags := []string{fmt.Sprintf("%d/%d seen", deck.SeenCount, deck.Total)}
	if deck.Mixed && card.SourceVibe != "" {
		tags = append(tags, "vibe="+card.SourceVibe)
	}
	if card.Rare {
		tags = append(tags, "rare")
	}
	if card.Saved {
		tags = append(tags, "saved")
	}
	return strings.Join(tags, " · ")
}

func printBadge(w io.Writer, badge *progressdto.BadgeOutput) {
	if badge == nil {
		return
	}
	_, _ = fmt.Fprintf(w, "%s badge unlocked: %s\n", badge.Icon, badge.Name)
}
