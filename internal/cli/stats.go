package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"proptrack/internal/analytics"
	apperrors "proptrack/internal/errors"
	"proptrack/internal/models"
)

// addStatsCommands adds the analytics commands. All of them are pure reads
// over the trade collection, optionally date-ranged.
func addStatsCommands(rootCmd *cobra.Command, app *App) {
	rootCmd.AddCommand(newStatsCmd(app))
	rootCmd.AddCommand(newBreakdownCmd(app))
	rootCmd.AddCommand(newSequenceCmd(app))
	rootCmd.AddCommand(newFrequencyCmd(app))
}

// rangeFlags are the shared date-range / account filters.
type rangeFlags struct {
	from    string
	to      string
	account string
}

func (f *rangeFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.from, "from", "", "Earliest date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&f.to, "to", "", "Latest date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&f.account, "account", "", "Filter by account id or 'split'")
}

func (f *rangeFlags) load(app *App, cmd *cobra.Command) ([]models.Trade, error) {
	if f.from != "" && !ValidDate(f.from) {
		return nil, apperrors.NewValidationError("from", f.from, "must be YYYY-MM-DD")
	}
	if f.to != "" && !ValidDate(f.to) {
		return nil, apperrors.NewValidationError("to", f.to, "must be YYYY-MM-DD")
	}
	trades, err := app.Store.Trades(cmd.Context())
	if err != nil {
		return nil, err
	}
	return filterTrades(trades, f.from, f.to, f.account), nil
}

func newStatsCmd(app *App) *cobra.Command {
	filters := &rangeFlags{}

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Trade statistics",
		Long:  "Win rate, profit factor, expectancy, streaks, and extremes over the selected trades.",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)

			trades, err := filters.load(app, cmd)
			if err != nil {
				return err
			}
			stats := analytics.Compute(trades)

			if output.IsJSON() {
				return output.JSON(stats)
			}

			output.Bold("Trade Statistics")
			output.Printf("  Trades:          %d (%dW / %dL / %dBE)\n",
				stats.TotalTrades, stats.Wins, stats.Losses, stats.Breakevens)
			output.Printf("  Win rate:        %.2f%%\n", stats.WinRate)
			output.Printf("  Total P&L:       %s\n", output.FormatPnL(stats.TotalPnL))
			output.Printf("  Profit factor:   %s\n", analytics.FormatProfitFactor(stats.ProfitFactor))
			output.Printf("  Expectancy:      %s\n", output.FormatPnL(stats.Expectancy))
			output.Println()
			output.Printf("  Gross profit:    %s\n", FormatCurrency(stats.GrossProfit))
			output.Printf("  Gross loss:      %s\n", FormatCurrency(stats.GrossLoss))
			output.Printf("  Avg win/loss:    %s / %s\n", FormatCurrency(stats.AvgWin), FormatCurrency(stats.AvgLoss))
			output.Printf("  Largest win:     %s\n", output.FormatPnL(stats.LargestWin))
			output.Printf("  Largest loss:    %s\n", output.FormatPnL(stats.LargestLoss))
			output.Printf("  Max streaks:     %dW / %dL\n", stats.MaxConsecutiveWins, stats.MaxConsecutiveLosses)
			if stats.RiskRewardSample > 0 {
				output.Printf("  Avg R:R:         %.2f (%d trades)\n", stats.AvgRiskReward, stats.RiskRewardSample)
			}
			if stats.RatingSample > 0 {
				output.Printf("  Avg rating:      %.1f/5 (%d trades)\n", stats.AvgRating, stats.RatingSample)
			}

			curve := analytics.EquityCurve(trades)
			_, maxDD := analytics.Drawdown(curve)
			output.Printf("  Max drawdown:    %.2f%%\n", maxDD)
			return nil
		},
	}

	filters.register(cmd)
	return cmd
}

func newBreakdownCmd(app *App) *cobra.Command {
	filters := &rangeFlags{}

	cmd := &cobra.Command{
		Use:       "breakdown <dimension>",
		Short:     "Performance breakdown by dimension",
		Long:      "Group trades by one dimension: instrument, setup, weekday, hour, month, direction, size, rating, or rr.",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"instrument", "setup", "weekday", "hour", "month", "direction", "size", "rating", "rr"},
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)

			trades, err := filters.load(app, cmd)
			if err != nil {
				return err
			}

			var rows []analytics.BreakdownRow
			switch args[0] {
			case "instrument":
				rows = analytics.ByInstrument(trades)
			case "setup":
				setups, err := app.Store.TradingSetups(cmd.Context())
				if err != nil {
					return err
				}
				names := make(map[string]string, len(setups))
				for _, s := range setups {
					names[s.ID] = s.Name
				}
				rows = analytics.BySetup(trades, names)
			case "weekday":
				rows = analytics.ByDayOfWeek(trades)
			case "hour":
				rows = analytics.ByHourOfDay(trades)
			case "month":
				rows = analytics.ByMonth(trades)
			case "direction":
				rows = analytics.ByDirection(trades)
			case "size":
				rows = analytics.ByContracts(trades)
			case "rating":
				rows = analytics.ByRating(trades)
			case "rr":
				rows = analytics.ByRiskReward(trades)
			default:
				return fmt.Errorf("unknown dimension %q", args[0])
			}

			if output.IsJSON() {
				return output.JSON(rows)
			}
			if len(rows) == 0 {
				output.Info("No trades match.")
				return nil
			}

			table := NewTable(output, "Key", "Trades", "Total P&L", "Win Rate", "Avg P&L")
			for _, r := range rows {
				table.AddRow(
					r.Key,
					fmt.Sprintf("%d", r.Trades),
					output.FormatPnL(r.TotalPnL),
					fmt.Sprintf("%.1f%%", r.WinRate),
					output.FormatPnL(r.AvgPnL),
				)
			}
			table.Render()
			return nil
		},
	}

	filters.register(cmd)
	return cmd
}

func newSequenceCmd(app *App) *cobra.Command {
	filters := &rangeFlags{}

	cmd := &cobra.Command{
		Use:   "sequence",
		Short: "Performance after wins vs after losses",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)

			trades, err := filters.load(app, cmd)
			if err != nil {
				return err
			}
			seq := analytics.AfterWinLoss(trades)

			if output.IsJSON() {
				return output.JSON(seq)
			}

			table := NewTable(output, "After", "Trades", "Total P&L", "Win Rate", "Avg P&L")
			for _, row := range []struct {
				label  string
				bucket analytics.SequenceBucket
			}{
				{"win", seq.AfterWin},
				{"loss", seq.AfterLoss},
			} {
				table.AddRow(
					row.label,
					fmt.Sprintf("%d", row.bucket.Trades),
					output.FormatPnL(row.bucket.TotalPnL),
					fmt.Sprintf("%.1f%%", row.bucket.WinRate),
					output.FormatPnL(row.bucket.AvgPnL),
				)
			}
			table.Render()
			return nil
		},
	}

	filters.register(cmd)
	return cmd
}

func newFrequencyCmd(app *App) *cobra.Command {
	filters := &rangeFlags{}

	cmd := &cobra.Command{
		Use:   "frequency",
		Short: "Impact of trades-per-day on results",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)

			trades, err := filters.load(app, cmd)
			if err != nil {
				return err
			}
			buckets := analytics.FrequencyImpact(trades)

			if output.IsJSON() {
				return output.JSON(buckets)
			}

			table := NewTable(output, "Trades/Day", "Days", "Trades", "Total P&L", "Avg Day P&L")
			for _, b := range buckets {
				table.AddRow(
					b.Label,
					fmt.Sprintf("%d", b.Days),
					fmt.Sprintf("%d", b.Trades),
					output.FormatPnL(b.TotalPnL),
					output.FormatPnL(b.AvgDayPnL),
				)
			}
			table.Render()
			return nil
		},
	}

	filters.register(cmd)
	return cmd
}
