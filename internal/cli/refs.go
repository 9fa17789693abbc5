package cli

import (
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	apperrors "proptrack/internal/errors"
	"proptrack/internal/models"
)

// addRefCommands adds prop firm and trading setup reference data commands.
func addRefCommands(rootCmd *cobra.Command, app *App) {
	firm := &cobra.Command{
		Use:   "firm",
		Short: "Manage prop firms",
	}
	firm.AddCommand(newFirmAddCmd(app))
	firm.AddCommand(newFirmListCmd(app))
	rootCmd.AddCommand(firm)

	setup := &cobra.Command{
		Use:   "setup",
		Short: "Manage trading setups",
	}
	setup.AddCommand(newSetupAddCmd(app))
	setup.AddCommand(newSetupListCmd(app))
	rootCmd.AddCommand(setup)
}

func newFirmAddCmd(app *App) *cobra.Command {
	var website, notes string

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a prop firm",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			ctx := cmd.Context()

			if args[0] == "" {
				return apperrors.NewValidationError("name", args[0], "must not be empty")
			}

			firms, err := app.Store.PropFirms(ctx)
			if err != nil {
				return err
			}
			firm := models.PropFirm{
				ID:      uuid.New().String(),
				Name:    args[0],
				Website: website,
				Notes:   notes,
			}
			firms = append(firms, firm)
			if err := app.Store.SetPropFirms(ctx, firms); err != nil {
				return err
			}
			app.afterMutation()

			output.Success("Firm %q added (%s)", firm.Name, ShortID(firm.ID))
			return nil
		},
	}

	cmd.Flags().StringVar(&website, "website", "", "Firm website")
	cmd.Flags().StringVar(&notes, "notes", "", "Free-form notes")
	return cmd
}

func newFirmListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List prop firms",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)

			firms, err := app.Store.PropFirms(cmd.Context())
			if err != nil {
				return err
			}
			if output.IsJSON() {
				return output.JSON(firms)
			}
			if len(firms) == 0 {
				output.Info("No firms recorded.")
				return nil
			}

			table := NewTable(output, "ID", "Name", "Website")
			for _, f := range firms {
				table.AddRow(ShortID(f.ID), f.Name, f.Website)
			}
			table.Render()
			return nil
		},
	}
}

func newSetupAddCmd(app *App) *cobra.Command {
	var description string

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a trading setup",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			ctx := cmd.Context()

			if args[0] == "" {
				return apperrors.NewValidationError("name", args[0], "must not be empty")
			}

			setups, err := app.Store.TradingSetups(ctx)
			if err != nil {
				return err
			}
			setup := models.TradingSetup{
				ID:          uuid.New().String(),
				Name:        args[0],
				Description: description,
			}
			setups = append(setups, setup)
			if err := app.Store.SetTradingSetups(ctx, setups); err != nil {
				return err
			}
			app.afterMutation()

			output.Success("Setup %q added (%s)", setup.Name, ShortID(setup.ID))
			return nil
		},
	}

	cmd.Flags().StringVar(&description, "description", "", "What the setup looks for")
	return cmd
}

func newSetupListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List trading setups",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)

			setups, err := app.Store.TradingSetups(cmd.Context())
			if err != nil {
				return err
			}
			if output.IsJSON() {
				return output.JSON(setups)
			}
			if len(setups) == 0 {
				output.Info("No setups recorded.")
				return nil
			}

			table := NewTable(output, "ID", "Name", "Description")
			for _, s := range setups {
				table.AddRow(ShortID(s.ID), s.Name, TruncateString(s.Description, 50))
			}
			table.Render()
			return nil
		},
	}
}
