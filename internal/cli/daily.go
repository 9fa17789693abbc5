package cli

import (
	"sort"

	"github.com/spf13/cobra"

	apperrors "proptrack/internal/errors"
	"proptrack/internal/models"
)

// addDailyCommands adds daily journal entry commands. Entries are keyed by
// date and upserted; their manual P&L only counts for days without trades.
func addDailyCommands(rootCmd *cobra.Command, app *App) {
	cmd := &cobra.Command{
		Use:   "daily",
		Short: "Manage daily journal entries",
		Long: `Record a manual P&L or note for a calendar day.

A day's P&L always comes from its trades when any exist; the manual value
is only used for days with no trade rows.`,
	}

	cmd.AddCommand(newDailySetCmd(app))
	cmd.AddCommand(newDailyListCmd(app))
	cmd.AddCommand(newDailyDeleteCmd(app))

	rootCmd.AddCommand(cmd)
}

func newDailySetCmd(app *App) *cobra.Command {
	var (
		pnl   float64
		notes string
	)

	cmd := &cobra.Command{
		Use:   "set <date>",
		Short: "Create or update a daily entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			ctx := cmd.Context()

			date := args[0]
			if !ValidDate(date) {
				return apperrors.NewValidationError("date", date, "must be YYYY-MM-DD")
			}

			entries, err := app.Store.DailyEntries(ctx)
			if err != nil {
				return err
			}

			entry := models.DailyEntry{Date: date}
			idx := -1
			for i, e := range entries {
				if e.Date == date {
					entry = e
					idx = i
					break
				}
			}
			if cmd.Flags().Changed("pnl") {
				v := pnl
				entry.PnL = &v
			}
			if cmd.Flags().Changed("notes") {
				entry.Notes = notes
			}

			if idx >= 0 {
				entries[idx] = entry
			} else {
				entries = append(entries, entry)
			}
			if err := app.Store.SetDailyEntries(ctx, entries); err != nil {
				return err
			}
			app.afterMutation()

			output.Success("Daily entry for %s saved", date)
			return nil
		},
	}

	cmd.Flags().Float64Var(&pnl, "pnl", 0, "Manual P&L for the day")
	cmd.Flags().StringVar(&notes, "notes", "", "Free-form notes")
	return cmd
}

func newDailyListCmd(app *App) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List daily entries",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)

			entries, err := app.Store.DailyEntries(cmd.Context())
			if err != nil {
				return err
			}
			sort.Slice(entries, func(i, j int) bool {
				return entries[i].Date > entries[j].Date
			})
			if limit > 0 && len(entries) > limit {
				entries = entries[:limit]
			}

			if output.IsJSON() {
				return output.JSON(entries)
			}
			if len(entries) == 0 {
				output.Info("No daily entries recorded.")
				return nil
			}

			table := NewTable(output, "Date", "P&L", "Notes")
			for _, e := range entries {
				pnlText := output.DimText("-")
				if e.PnL != nil {
					pnlText = output.FormatPnL(*e.PnL)
				}
				table.AddRow(e.Date, pnlText, TruncateString(e.Notes, 50))
			}
			table.Render()
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 30, "Show only the most recent N entries")
	return cmd
}

func newDailyDeleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <date>",
		Short: "Delete a daily entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			ctx := cmd.Context()

			entries, err := app.Store.DailyEntries(ctx)
			if err != nil {
				return err
			}
			idx := -1
			for i, e := range entries {
				if e.Date == args[0] {
					idx = i
					break
				}
			}
			if idx < 0 {
				return apperrors.NewNotFoundError("daily entry", args[0])
			}
			entries = append(entries[:idx], entries[idx+1:]...)

			if err := app.Store.SetDailyEntries(ctx, entries); err != nil {
				return err
			}
			app.afterMutation()

			output.Success("Daily entry for %s deleted", args[0])
			return nil
		},
	}
}
