package cli

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	apperrors "proptrack/internal/errors"
	"proptrack/internal/models"
)

// addMoneyCommands adds payout and expense tracking plus the net summary.
func addMoneyCommands(rootCmd *cobra.Command, app *App) {
	payout := &cobra.Command{
		Use:   "payout",
		Short: "Track payouts received from funded accounts",
	}
	payout.AddCommand(newPayoutAddCmd(app))
	payout.AddCommand(newPayoutListCmd(app))
	rootCmd.AddCommand(payout)

	expense := &cobra.Command{
		Use:   "expense",
		Short: "Track trading-related expenses",
	}
	expense.AddCommand(newExpenseAddCmd(app))
	expense.AddCommand(newExpenseListCmd(app))
	rootCmd.AddCommand(expense)

	rootCmd.AddCommand(newSummaryCmd(app))
}

func newPayoutAddCmd(app *App) *cobra.Command {
	var (
		accountID string
		date      string
		amount    float64
		method    string
		notes     string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record a payout",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			ctx := cmd.Context()

			if amount <= 0 {
				return apperrors.NewValidationError("amount", amount, "must be positive")
			}
			if date == "" {
				date = time.Now().Format("2006-01-02")
			} else if !ValidDate(date) {
				return apperrors.NewValidationError("date", date, "must be YYYY-MM-DD")
			}

			payouts, err := app.Store.Payouts(ctx)
			if err != nil {
				return err
			}
			payouts = append(payouts, models.Payout{
				ID:        uuid.New().String(),
				AccountID: accountID,
				Date:      date,
				Amount:    amount,
				Method:    method,
				Notes:     notes,
			})
			if err := app.Store.SetPayouts(ctx, payouts); err != nil {
				return err
			}
			app.afterMutation()

			output.Success("Payout of %s recorded", FormatCurrency(amount))
			return nil
		},
	}

	cmd.Flags().StringVar(&accountID, "account", "", "Account the payout came from")
	cmd.Flags().StringVar(&date, "date", "", "Payout date (default today)")
	cmd.Flags().Float64Var(&amount, "amount", 0, "Payout amount")
	cmd.Flags().StringVar(&method, "method", "", "Payment method")
	cmd.Flags().StringVar(&notes, "notes", "", "Free-form notes")
	cmd.MarkFlagRequired("amount")
	return cmd
}

func newPayoutListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List payouts",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)

			payouts, err := app.Store.Payouts(cmd.Context())
			if err != nil {
				return err
			}
			sort.Slice(payouts, func(i, j int) bool {
				return payouts[i].Date > payouts[j].Date
			})

			if output.IsJSON() {
				return output.JSON(payouts)
			}
			if len(payouts) == 0 {
				output.Info("No payouts recorded.")
				return nil
			}

			total := 0.0
			table := NewTable(output, "Date", "Amount", "Account", "Method")
			for _, p := range payouts {
				total += p.Amount
				table.AddRow(p.Date, FormatCurrency(p.Amount), ShortID(p.AccountID), p.Method)
			}
			table.Render()
			output.Println()
			output.Bold("Total payouts: %s", FormatCurrency(total))
			return nil
		},
	}
}

func newExpenseAddCmd(app *App) *cobra.Command {
	var (
		date        string
		amount      float64
		category    string
		description string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record an expense",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			ctx := cmd.Context()

			if amount <= 0 {
				return apperrors.NewValidationError("amount", amount, "must be positive")
			}
			if date == "" {
				date = time.Now().Format("2006-01-02")
			} else if !ValidDate(date) {
				return apperrors.NewValidationError("date", date, "must be YYYY-MM-DD")
			}

			expenses, err := app.Store.Expenses(ctx)
			if err != nil {
				return err
			}
			expenses = append(expenses, models.Expense{
				ID:          uuid.New().String(),
				Date:        date,
				Amount:      amount,
				Category:    category,
				Description: description,
			})
			if err := app.Store.SetExpenses(ctx, expenses); err != nil {
				return err
			}
			app.afterMutation()

			output.Success("Expense of %s recorded", FormatCurrency(amount))
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Expense date (default today)")
	cmd.Flags().Float64Var(&amount, "amount", 0, "Expense amount")
	cmd.Flags().StringVar(&category, "category", "", "Category (evaluation fee, data, tooling, ...)")
	cmd.Flags().StringVar(&description, "description", "", "Description")
	cmd.MarkFlagRequired("amount")
	return cmd
}

func newExpenseListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List expenses",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)

			expenses, err := app.Store.Expenses(cmd.Context())
			if err != nil {
				return err
			}
			sort.Slice(expenses, func(i, j int) bool {
				return expenses[i].Date > expenses[j].Date
			})

			if output.IsJSON() {
				return output.JSON(expenses)
			}
			if len(expenses) == 0 {
				output.Info("No expenses recorded.")
				return nil
			}

			total := 0.0
			table := NewTable(output, "Date", "Amount", "Category", "Description")
			for _, e := range expenses {
				total += e.Amount
				table.AddRow(e.Date, FormatCurrency(e.Amount), e.Category, TruncateString(e.Description, 40))
			}
			table.Render()
			output.Println()
			output.Bold("Total expenses: %s", FormatCurrency(total))
			return nil
		},
	}
}

// summaryResult is the JSON shape of the net-profit summary.
type summaryResult struct {
	TradePnL float64 `json:"tradePnl"`
	Payouts  float64 `json:"payouts"`
	Expenses float64 `json:"expenses"`
	Net      float64 `json:"net"`
}

func newSummaryCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Net profit summary",
		Long:  "Combined view of trade P&L, payouts received, and expenses paid.",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			ctx := cmd.Context()

			trades, err := app.Store.Trades(ctx)
			if err != nil {
				return err
			}
			payouts, err := app.Store.Payouts(ctx)
			if err != nil {
				return err
			}
			expenses, err := app.Store.Expenses(ctx)
			if err != nil {
				return err
			}

			var result summaryResult
			for _, t := range trades {
				result.TradePnL += t.PnL
			}
			for _, p := range payouts {
				result.Payouts += p.Amount
			}
			for _, e := range expenses {
				result.Expenses += e.Amount
			}
			result.Net = result.Payouts - result.Expenses

			if output.IsJSON() {
				return output.JSON(result)
			}

			output.Bold("Summary")
			output.Printf("  Trade P&L:      %s\n", output.FormatPnL(result.TradePnL))
			output.Printf("  Payouts:        %s\n", FormatCurrency(result.Payouts))
			output.Printf("  Expenses:       %s\n", FormatCurrency(result.Expenses))
			output.Printf("  Net (cashflow): %s\n", output.FormatPnL(result.Net))
			return nil
		},
	}
}
