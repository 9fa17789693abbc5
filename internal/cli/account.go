package cli

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	apperrors "proptrack/internal/errors"
	"proptrack/internal/models"
)

// addAccountCommands adds account management commands.
func addAccountCommands(rootCmd *cobra.Command, app *App) {
	cmd := &cobra.Command{
		Use:   "account",
		Short: "Manage trading accounts",
		Long:  "Add, list, and update evaluation and funded accounts.",
	}

	cmd.AddCommand(newAccountAddCmd(app))
	cmd.AddCommand(newAccountListCmd(app))
	cmd.AddCommand(newAccountSetCmd(app))
	cmd.AddCommand(newAccountDeleteCmd(app))

	rootCmd.AddCommand(cmd)
}

func newAccountAddCmd(app *App) *cobra.Command {
	var (
		accountType  string
		firmID       string
		size         float64
		startDate    string
		maxDrawdown  float64
		profitTarget float64
		notes        string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a trading account",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			ctx := cmd.Context()

			if accountType != string(models.AccountEvaluation) && accountType != string(models.AccountFunded) {
				return apperrors.NewValidationError("type", accountType, "must be 'evaluation' or 'funded'")
			}
			if size <= 0 {
				return apperrors.NewValidationError("size", size, "must be positive")
			}
			if startDate == "" {
				startDate = time.Now().Format("2006-01-02")
			} else if !ValidDate(startDate) {
				return apperrors.NewValidationError("start", startDate, "must be YYYY-MM-DD")
			}

			account := models.Account{
				ID:          uuid.New().String(),
				Type:        models.AccountType(accountType),
				PropFirmID:  firmID,
				AccountSize: size,
				StartDate:   startDate,
				Notes:       notes,
			}
			if account.Type == models.AccountEvaluation {
				account.Status = models.StatusInProgress
			} else {
				account.Status = models.StatusActive
			}
			if maxDrawdown > 0 {
				account.MaxDrawdown = &maxDrawdown
			}
			if profitTarget > 0 {
				account.ProfitTarget = &profitTarget
			}

			accounts, err := app.Store.Accounts(ctx)
			if err != nil {
				return err
			}
			accounts = append(accounts, account)
			if err := app.Store.SetAccounts(ctx, accounts); err != nil {
				return err
			}
			app.afterMutation()

			output.Success("Account %s added (%s, %s)", ShortID(account.ID), account.Type, FormatCurrency(account.AccountSize))
			return nil
		},
	}

	cmd.Flags().StringVar(&accountType, "type", "evaluation", "Account type: evaluation or funded")
	cmd.Flags().StringVar(&firmID, "firm", "", "Prop firm id")
	cmd.Flags().Float64Var(&size, "size", 0, "Starting capital")
	cmd.Flags().StringVar(&startDate, "start", "", "Start date (YYYY-MM-DD, default today)")
	cmd.Flags().Float64Var(&maxDrawdown, "max-drawdown", 0, "Drawdown threshold that fails/breaches the account")
	cmd.Flags().Float64Var(&profitTarget, "profit-target", 0, "Profit target that passes an evaluation")
	cmd.Flags().StringVar(&notes, "notes", "", "Free-form notes")
	cmd.MarkFlagRequired("size")

	return cmd
}

func newAccountListCmd(app *App) *cobra.Command {
	var activeOnly bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List accounts",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)

			accounts, err := app.Store.Accounts(cmd.Context())
			if err != nil {
				return err
			}
			if activeOnly {
				filtered := accounts[:0]
				for _, a := range accounts {
					if a.IsActive() {
						filtered = append(filtered, a)
					}
				}
				accounts = filtered
			}

			if output.IsJSON() {
				return output.JSON(accounts)
			}
			if len(accounts) == 0 {
				output.Info("No accounts recorded.")
				return nil
			}

			table := NewTable(output, "ID", "Type", "Size", "Status", "P&L", "Started")
			for _, a := range accounts {
				table.AddRow(
					ShortID(a.ID),
					string(a.Type),
					FormatCurrency(a.AccountSize),
					output.StatusText(string(a.Status)),
					output.FormatPnL(a.ProfitLoss),
					a.StartDate,
				)
			}
			table.Render()
			return nil
		},
	}

	cmd.Flags().BoolVar(&activeOnly, "active", false, "Show only active accounts")
	return cmd
}

func newAccountSetCmd(app *App) *cobra.Command {
	var (
		status     string
		profitLoss float64
		notes      string
	)

	cmd := &cobra.Command{
		Use:   "set <account-id>",
		Short: "Update an account",
		Long: `Update an account's status, notes, or manually tracked profit/loss.

The manual profit/loss only sticks for accounts with no linked trades;
reconciliation overwrites it as soon as trades reference the account.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			ctx := cmd.Context()

			accounts, err := app.Store.Accounts(ctx)
			if err != nil {
				return err
			}
			idx, err := findAccount(accounts, args[0])
			if err != nil {
				return err
			}

			if cmd.Flags().Changed("status") {
				if !validStatus(accounts[idx].Type, models.AccountStatus(status)) {
					return apperrors.NewValidationError("status", status, "not valid for this account type")
				}
				accounts[idx].Status = models.AccountStatus(status)
				if accounts[idx].IsTerminal() && accounts[idx].EndDate == "" {
					accounts[idx].EndDate = time.Now().Format("2006-01-02")
				}
			}
			if cmd.Flags().Changed("pnl") {
				accounts[idx].ProfitLoss = profitLoss
			}
			if cmd.Flags().Changed("notes") {
				accounts[idx].Notes = notes
			}

			if err := app.Store.SetAccounts(ctx, accounts); err != nil {
				return err
			}
			app.afterMutation()

			output.Success("Account %s updated", ShortID(accounts[idx].ID))
			return nil
		},
	}

	cmd.Flags().StringVar(&status, "status", "", "New status")
	cmd.Flags().Float64Var(&profitLoss, "pnl", 0, "Manually tracked profit/loss")
	cmd.Flags().StringVar(&notes, "notes", "", "Free-form notes")
	return cmd
}

func newAccountDeleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <account-id>",
		Short: "Delete an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			ctx := cmd.Context()

			accounts, err := app.Store.Accounts(ctx)
			if err != nil {
				return err
			}
			idx, err := findAccount(accounts, args[0])
			if err != nil {
				return err
			}
			removed := accounts[idx]
			accounts = append(accounts[:idx], accounts[idx+1:]...)

			if err := app.Store.SetAccounts(ctx, accounts); err != nil {
				return err
			}
			app.afterMutation()

			output.Success("Account %s deleted", ShortID(removed.ID))
			return nil
		},
	}
}

// findAccount locates an account by full id or unique prefix.
func findAccount(accounts []models.Account, id string) (int, error) {
	match := -1
	for i, a := range accounts {
		if a.ID == id {
			return i, nil
		}
		if len(id) >= 4 && len(a.ID) >= len(id) && a.ID[:len(id)] == id {
			if match >= 0 {
				return 0, fmt.Errorf("account id %q is ambiguous", id)
			}
			match = i
		}
	}
	if match < 0 {
		return 0, apperrors.NewNotFoundError("account", id)
	}
	return match, nil
}

func validStatus(accountType models.AccountType, status models.AccountStatus) bool {
	switch accountType {
	case models.AccountEvaluation:
		return status == models.StatusInProgress || status == models.StatusPassed || status == models.StatusFailed
	case models.AccountFunded:
		return status == models.StatusActive || status == models.StatusBreached || status == models.StatusWithdrawn
	}
	return false
}
