package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"proptrack/internal/journal"
	"proptrack/internal/models"
)

func addCSVCommands(rootCmd *cobra.Command, app *App) {
	exportCmd := &cobra.Command{
		Use:   "export <file>",
		Short: "Export trades to a CSV file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)

			trades, err := app.Store.Trades(cmd.Context())
			if err != nil {
				return err
			}
			trades = models.SortChronological(trades)

			f, err := os.Create(args[0])
			if err != nil {
				return fmt.Errorf("creating %s: %w", args[0], err)
			}
			defer f.Close()

			if err := journal.ExportTrades(f, trades); err != nil {
				return err
			}
			if err := f.Close(); err != nil {
				return err
			}
			output.Success("Exported %d trade(s) to %s", len(trades), args[0])
			return nil
		},
	}

	var merge bool
	importCmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Import trades from a CSV file",
		Long:  "Import trades from CSV. By default imported rows replace the trade collection; --merge appends them instead, skipping duplicate ids.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			ctx := cmd.Context()

			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("opening %s: %w", args[0], err)
			}
			defer f.Close()

			imported, err := journal.ImportTrades(f)
			if err != nil {
				return err
			}

			trades := imported
			skipped := 0
			if merge {
				existing, err := app.Store.Trades(ctx)
				if err != nil {
					return err
				}
				seen := make(map[string]struct{}, len(existing))
				for _, t := range existing {
					seen[t.ID] = struct{}{}
				}
				trades = existing
				for _, t := range imported {
					if _, dup := seen[t.ID]; dup {
						skipped++
						continue
					}
					trades = append(trades, t)
				}
			}

			if err := app.Store.SetTrades(ctx, trades); err != nil {
				return err
			}
			if err := app.afterTradeMutation(ctx); err != nil {
				return err
			}

			output.Success("Imported %d trade(s) from %s", len(imported)-skipped, args[0])
			if skipped > 0 {
				output.Info("Skipped %d duplicate id(s)", skipped)
			}
			return nil
		},
	}
	importCmd.Flags().BoolVar(&merge, "merge", false, "Append to existing trades instead of replacing them")

	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
}
