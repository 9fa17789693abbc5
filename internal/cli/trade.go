package cli

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	apperrors "proptrack/internal/errors"
	"proptrack/internal/models"
)

// addTradeCommands adds trade logging commands. Every mutation here runs
// the reconciler before returning, so account P&L and status are never
// stale relative to the ledger.
func addTradeCommands(rootCmd *cobra.Command, app *App) {
	cmd := &cobra.Command{
		Use:   "trade",
		Short: "Log and manage trades",
		Long:  "Record trade executions; account P&L and status follow automatically.",
	}

	cmd.AddCommand(newTradeAddCmd(app))
	cmd.AddCommand(newTradeListCmd(app))
	cmd.AddCommand(newTradeEditCmd(app))
	cmd.AddCommand(newTradeDeleteCmd(app))

	rootCmd.AddCommand(cmd)
}

type tradeFlags struct {
	date       string
	clockTime  string
	instrument string
	setupID    string
	account    string
	direction  string
	entry      float64
	exit       float64
	stopLoss   float64
	contracts  int
	pnl        float64
	result     string
	riskReward float64
	rating     int
	notes      string
}

func (f *tradeFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.date, "date", "", "Trade date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&f.clockTime, "time", "", "Clock time (HH:MM)")
	cmd.Flags().StringVar(&f.instrument, "instrument", "", "Instrument symbol")
	cmd.Flags().StringVar(&f.setupID, "setup", "", "Trading setup id")
	cmd.Flags().StringVar(&f.account, "account", "", "Account id, or 'split' to distribute across active accounts")
	cmd.Flags().StringVar(&f.direction, "direction", "long", "Direction: long or short")
	cmd.Flags().Float64Var(&f.entry, "entry", 0, "Entry price")
	cmd.Flags().Float64Var(&f.exit, "exit", 0, "Exit price")
	cmd.Flags().Float64Var(&f.stopLoss, "stop", 0, "Stop-loss price")
	cmd.Flags().IntVar(&f.contracts, "contracts", 1, "Position size")
	cmd.Flags().Float64Var(&f.pnl, "pnl", 0, "Realized profit/loss")
	cmd.Flags().StringVar(&f.result, "result", "", "Result: win, loss, or breakeven (default from pnl sign)")
	cmd.Flags().Float64Var(&f.riskReward, "rr", 0, "Risk:reward ratio")
	cmd.Flags().IntVar(&f.rating, "rating", 0, "Execution quality 1-5")
	cmd.Flags().StringVar(&f.notes, "notes", "", "Free-form notes")
}

// apply copies changed flags onto the trade, validating as it goes.
func (f *tradeFlags) apply(cmd *cobra.Command, t *models.Trade) error {
	if cmd.Flags().Changed("date") {
		if !ValidDate(f.date) {
			return apperrors.NewValidationError("date", f.date, "must be YYYY-MM-DD")
		}
		t.Date = f.date
	}
	if cmd.Flags().Changed("time") {
		if f.clockTime != "" && !ValidClockTime(f.clockTime) {
			return apperrors.NewValidationError("time", f.clockTime, "must be HH:MM")
		}
		t.Time = f.clockTime
	}
	if cmd.Flags().Changed("instrument") {
		t.Instrument = f.instrument
	}
	if cmd.Flags().Changed("setup") {
		t.SetupID = f.setupID
	}
	if cmd.Flags().Changed("account") {
		t.Account = models.ParseAccountRef(f.account)
	}
	if cmd.Flags().Changed("direction") {
		if f.direction != string(models.DirectionLong) && f.direction != string(models.DirectionShort) {
			return apperrors.NewValidationError("direction", f.direction, "must be 'long' or 'short'")
		}
		t.Direction = models.Direction(f.direction)
	}
	if cmd.Flags().Changed("entry") {
		t.Entry = f.entry
	}
	if cmd.Flags().Changed("exit") {
		exit := f.exit
		t.Exit = &exit
	}
	if cmd.Flags().Changed("stop") {
		stop := f.stopLoss
		t.StopLoss = &stop
	}
	if cmd.Flags().Changed("contracts") {
		if f.contracts < 1 {
			return apperrors.NewValidationError("contracts", f.contracts, "must be at least 1")
		}
		t.Contracts = f.contracts
	}
	if cmd.Flags().Changed("pnl") {
		t.PnL = f.pnl
	}
	if cmd.Flags().Changed("result") {
		switch models.TradeResult(f.result) {
		case models.ResultWin, models.ResultLoss, models.ResultBreakeven:
			t.Result = models.TradeResult(f.result)
		default:
			return apperrors.NewValidationError("result", f.result, "must be win, loss, or breakeven")
		}
	}
	if cmd.Flags().Changed("rr") {
		if f.riskReward <= 0 {
			return apperrors.NewValidationError("rr", f.riskReward, "must be positive")
		}
		rr := f.riskReward
		t.RiskReward = &rr
	}
	if cmd.Flags().Changed("rating") {
		if f.rating < 1 || f.rating > 5 {
			return apperrors.NewValidationError("rating", f.rating, "must be 1-5")
		}
		rating := f.rating
		t.Rating = &rating
	}
	if cmd.Flags().Changed("notes") {
		t.Notes = f.notes
	}
	return nil
}

func newTradeAddCmd(app *App) *cobra.Command {
	flags := &tradeFlags{}

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Log a trade",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			ctx := cmd.Context()

			trade := models.Trade{
				ID:        uuid.New().String(),
				Contracts: 1,
				Direction: models.DirectionLong,
			}
			if err := flags.apply(cmd, &trade); err != nil {
				return err
			}
			if trade.Date == "" {
				return apperrors.NewValidationError("date", "", "date is required")
			}
			if trade.Account.Kind == "" {
				return apperrors.NewValidationError("account", "", "account is required")
			}
			if trade.Result == "" {
				switch {
				case trade.PnL > 0:
					trade.Result = models.ResultWin
				case trade.PnL < 0:
					trade.Result = models.ResultLoss
				default:
					trade.Result = models.ResultBreakeven
				}
			}

			trades, err := app.Store.Trades(ctx)
			if err != nil {
				return err
			}
			trades = append(trades, trade)
			if err := app.Store.SetTrades(ctx, trades); err != nil {
				return err
			}
			if err := app.afterTradeMutation(ctx); err != nil {
				return err
			}

			output.Success("Trade %s logged: %s %s %s", ShortID(trade.ID), trade.Date, trade.Instrument, FormatPnL(trade.PnL))
			return nil
		},
	}

	flags.register(cmd)
	cmd.MarkFlagRequired("date")
	cmd.MarkFlagRequired("account")
	cmd.MarkFlagRequired("pnl")
	return cmd
}

func newTradeListCmd(app *App) *cobra.Command {
	var (
		from    string
		to      string
		account string
		limit   int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List trades",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)

			trades, err := app.Store.Trades(cmd.Context())
			if err != nil {
				return err
			}
			trades = filterTrades(trades, from, to, account)
			trades = models.SortChronological(trades)
			if limit > 0 && len(trades) > limit {
				trades = trades[len(trades)-limit:]
			}

			if output.IsJSON() {
				return output.JSON(trades)
			}
			if len(trades) == 0 {
				output.Info("No trades recorded.")
				return nil
			}

			table := NewTable(output, "ID", "Date", "Time", "Instrument", "Dir", "Size", "P&L", "Result", "Account")
			for _, t := range trades {
				table.AddRow(
					ShortID(t.ID),
					t.Date,
					t.Time,
					t.Instrument,
					string(t.Direction),
					fmt.Sprintf("%d", t.Contracts),
					output.FormatPnL(t.PnL),
					string(t.Result),
					shortRef(t.Account),
				)
			}
			table.Render()
			return nil
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "Earliest date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&to, "to", "", "Latest date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&account, "account", "", "Filter by account id or 'split'")
	cmd.Flags().IntVar(&limit, "limit", 0, "Show only the most recent N trades")
	return cmd
}

func newTradeEditCmd(app *App) *cobra.Command {
	flags := &tradeFlags{}

	cmd := &cobra.Command{
		Use:   "edit <trade-id>",
		Short: "Edit a trade",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			ctx := cmd.Context()

			trades, err := app.Store.Trades(ctx)
			if err != nil {
				return err
			}
			idx, err := findTrade(trades, args[0])
			if err != nil {
				return err
			}
			if err := flags.apply(cmd, &trades[idx]); err != nil {
				return err
			}

			if err := app.Store.SetTrades(ctx, trades); err != nil {
				return err
			}
			if err := app.afterTradeMutation(ctx); err != nil {
				return err
			}

			output.Success("Trade %s updated", ShortID(trades[idx].ID))
			return nil
		},
	}

	flags.register(cmd)
	return cmd
}

func newTradeDeleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <trade-id>",
		Short: "Delete a trade",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			ctx := cmd.Context()

			trades, err := app.Store.Trades(ctx)
			if err != nil {
				return err
			}
			idx, err := findTrade(trades, args[0])
			if err != nil {
				return err
			}
			removed := trades[idx]
			trades = append(trades[:idx], trades[idx+1:]...)

			if err := app.Store.SetTrades(ctx, trades); err != nil {
				return err
			}
			if err := app.afterTradeMutation(ctx); err != nil {
				return err
			}

			output.Success("Trade %s deleted", ShortID(removed.ID))
			return nil
		},
	}
}

// filterTrades applies optional date-range and account filters.
func filterTrades(trades []models.Trade, from, to, account string) []models.Trade {
	out := make([]models.Trade, 0, len(trades))
	for _, t := range trades {
		if from != "" && t.Date < from {
			continue
		}
		if to != "" && t.Date > to {
			continue
		}
		if account != "" && t.Account.String() != account {
			continue
		}
		out = append(out, t)
	}
	return out
}

// findTrade locates a trade by full id or unique prefix.
func findTrade(trades []models.Trade, id string) (int, error) {
	match := -1
	for i, t := range trades {
		if t.ID == id {
			return i, nil
		}
		if len(id) >= 4 && len(t.ID) >= len(id) && t.ID[:len(id)] == id {
			if match >= 0 {
				return 0, apperrors.Wrapf(apperrors.ErrDuplicateID, "trade id %q is ambiguous", id)
			}
			match = i
		}
	}
	if match < 0 {
		return 0, apperrors.NewNotFoundError("trade", id)
	}
	return match, nil
}

func shortRef(ref models.AccountRef) string {
	if ref.IsSplit() {
		return "split"
	}
	return ShortID(ref.AccountID)
}
