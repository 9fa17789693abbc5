package cli

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"proptrack/internal/analytics"
	"proptrack/internal/dashboard"
	apperrors "proptrack/internal/errors"
	"proptrack/internal/models"
)

func addDashboardCommands(rootCmd *cobra.Command, app *App) {
	rootCmd.AddCommand(newDashboardCmd(app))
	rootCmd.AddCommand(newCalendarCmd(app))
}

// dashboardView is the JSON shape of the dashboard command.
type dashboardView struct {
	Stats       analytics.Stats         `json:"stats"`
	Equity      []analytics.EquityPoint `json:"equity"`
	MaxDrawdown float64                 `json:"maxDrawdownPct"`
	Streak      dashboard.Streak        `json:"streak"`
	Accounts    accountsOverview        `json:"accounts"`
}

type accountsOverview struct {
	Total    int     `json:"total"`
	Active   int     `json:"active"`
	Passed   int     `json:"passed"`
	Failed   int     `json:"failed"`
	TotalPnL float64 `json:"totalPnl"`
}

func newDashboardCmd(app *App) *cobra.Command {
	var capital float64

	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Overview of accounts, equity, and streaks",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			ctx := cmd.Context()

			trades, err := app.Store.Trades(ctx)
			if err != nil {
				return err
			}
			accounts, err := app.Store.Accounts(ctx)
			if err != nil {
				return err
			}
			entries, err := app.Store.DailyEntries(ctx)
			if err != nil {
				return err
			}

			view := dashboardView{
				Stats:  analytics.Compute(trades),
				Equity: analytics.DailyEquityCurve(trades, capital),
				Streak: dashboard.CurrentStreak(dailyFromTrades(trades, entries)),
			}
			_, view.MaxDrawdown = analytics.Drawdown(analytics.EquityCurve(trades))
			for _, a := range accounts {
				view.Accounts.Total++
				view.Accounts.TotalPnL += a.ProfitLoss
				switch {
				case a.IsActive():
					view.Accounts.Active++
				case a.Status == models.StatusPassed:
					view.Accounts.Passed++
				case a.Status == models.StatusFailed || a.Status == models.StatusBreached:
					view.Accounts.Failed++
				}
			}

			if output.IsJSON() {
				return output.JSON(view)
			}

			output.Bold("Accounts")
			output.Printf("  %d total, %d active, %d passed, %d failed  (P&L %s)\n",
				view.Accounts.Total, view.Accounts.Active, view.Accounts.Passed,
				view.Accounts.Failed, output.FormatPnL(view.Accounts.TotalPnL))
			output.Println()

			output.Bold("Trading")
			output.Printf("  %d trades, %.1f%% win rate, P&L %s, profit factor %s\n",
				view.Stats.TotalTrades, view.Stats.WinRate,
				output.FormatPnL(view.Stats.TotalPnL),
				analytics.FormatProfitFactor(view.Stats.ProfitFactor))
			output.Printf("  Max drawdown: %.2f%%\n", view.MaxDrawdown)
			output.Println()

			output.Bold("Streak")
			switch view.Streak.Type {
			case dashboard.StreakGreen:
				output.Printf("  %s\n", output.Green(fmt.Sprintf("%d green day(s)", view.Streak.Count)))
			case dashboard.StreakRed:
				output.Printf("  %s\n", output.Red(fmt.Sprintf("%d red day(s)", view.Streak.Count)))
			default:
				output.Printf("  %s\n", output.DimText("no streak"))
			}

			if len(view.Equity) > 1 {
				output.Println()
				output.Bold("Equity (last %d days)", minInt(len(view.Equity)-1, 10))
				renderEquityTail(output, view.Equity, 10)
			}
			return nil
		},
	}

	cmd.Flags().Float64Var(&capital, "capital", 0, "Starting capital for the equity curve")
	return cmd
}

// dailyFromTrades resolves each day's effective P&L so the streak logic
// sees trade days and manual-only days through the same lens.
func dailyFromTrades(trades []models.Trade, entries []models.DailyEntry) []models.DailyEntry {
	dates := make(map[string]struct{})
	for _, t := range trades {
		dates[t.Date] = struct{}{}
	}
	for _, e := range entries {
		dates[e.Date] = struct{}{}
	}

	resolved := make([]models.DailyEntry, 0, len(dates))
	for date := range dates {
		if pnl, ok := dashboard.DayPnL(date, trades, entries); ok {
			p := pnl
			resolved = append(resolved, models.DailyEntry{Date: date, PnL: &p})
		}
	}
	return resolved
}

func renderEquityTail(output *Output, curve []analytics.EquityPoint, n int) {
	start := len(curve) - n
	if start < 1 {
		start = 1 // skip the synthetic anchor point
	}
	for _, p := range curve[start:] {
		output.Printf("  %s  %s\n", p.Date, output.FormatPnL(p.Equity))
	}
}

func newCalendarCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "calendar [YYYY-MM]",
		Short: "Monthly P&L calendar",
		Long:  "Render one month as a calendar of daily P&L. Defaults to the current month.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			ctx := cmd.Context()

			year, month, err := resolveMonth(args)
			if err != nil {
				return err
			}

			trades, err := app.Store.Trades(ctx)
			if err != nil {
				return err
			}
			entries, err := app.Store.DailyEntries(ctx)
			if err != nil {
				return err
			}

			cells, summary := dashboard.CalendarMonth(year, month, trades, entries)

			if output.IsJSON() {
				return output.JSON(struct {
					Days    []dashboard.DayCell    `json:"days"`
					Summary dashboard.MonthSummary `json:"summary"`
				}{cells, summary})
			}

			renderCalendar(output, year, month, cells)
			output.Println()
			output.Printf("%s: %s over %d trading day(s), %d win / %d loss (%.1f%%), %d trade(s)\n",
				summary.Month, output.FormatPnL(summary.TotalPnL), summary.TradingDays,
				summary.WinDays, summary.LossDays, summary.WinRate, summary.TradeCount)
			return nil
		},
	}
	return cmd
}

func resolveMonth(args []string) (int, time.Month, error) {
	if len(args) == 0 {
		now := time.Now()
		return now.Year(), now.Month(), nil
	}
	parts := strings.SplitN(args[0], "-", 2)
	if len(parts) != 2 {
		return 0, 0, apperrors.NewValidationError("month", args[0], "must be YYYY-MM")
	}
	year, err := strconv.Atoi(parts[0])
	if err != nil || year < 1 {
		return 0, 0, apperrors.NewValidationError("month", args[0], "must be YYYY-MM")
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 1 || m > 12 {
		return 0, 0, apperrors.NewValidationError("month", args[0], "must be YYYY-MM")
	}
	return year, time.Month(m), nil
}

// renderCalendar prints a Mon-Sun grid, one cell per day, colored by sign.
func renderCalendar(output *Output, year int, month time.Month, cells []dashboard.DayCell) {
	output.Bold("%s %d", month.String(), year)
	output.Println("  Mon      Tue      Wed      Thu      Fri      Sat      Sun")

	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	// Monday-first column index for day 1.
	col := (int(first.Weekday()) + 6) % 7

	line := strings.Repeat("         ", col)
	for i, cell := range cells {
		line += formatDayCell(output, i+1, cell)
		col++
		if col == 7 {
			output.Println(line)
			line = ""
			col = 0
		}
	}
	if line != "" {
		output.Println(line)
	}
}

func formatDayCell(output *Output, day int, cell dashboard.DayCell) string {
	if !cell.HasData {
		return fmt.Sprintf("  %2d     ", day)
	}
	text := fmt.Sprintf("%2d %+5.0f", day, cell.PnL)
	switch {
	case cell.PnL > 0:
		text = output.Green(text)
	case cell.PnL < 0:
		text = output.Red(text)
	}
	return "  " + text
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
