// Package cli provides the command-line interface for the tracker.
package cli

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"proptrack/internal/config"
	"proptrack/internal/reconcile"
	"proptrack/internal/store"
	"proptrack/internal/syncer"
)

// Version information
const Version = "0.1.0"

// App holds the application dependencies.
type App struct {
	Config     *config.Config
	Logger     zerolog.Logger
	Store      store.DataStore
	Reconciler *reconcile.Reconciler
	Syncer     *syncer.Coordinator
}

// NewRootCmd creates the root command for the CLI.
func NewRootCmd(cfg *config.Config, logger zerolog.Logger) (*cobra.Command, error) {
	app := &App{
		Config: cfg,
		Logger: logger,
	}

	dataStore, err := store.NewSQLiteStore(cfg.Storage.Path)
	if err != nil {
		return nil, err
	}
	app.Store = dataStore
	app.Reconciler = reconcile.New(dataStore, logger)
	app.Syncer = syncer.New(dataStore, syncer.Config{
		Endpoint: cfg.Sync.Endpoint,
		Token:    cfg.Sync.Token,
		Debounce: cfg.Debounce(),
		Timeout:  cfg.SyncTimeout(),
	}, logger)

	rootCmd := &cobra.Command{
		Use:   "proptrack",
		Short: "Prop-firm trading performance tracker",
		Long: `proptrack is a local-first performance tracker for prop-firm traders.

Log accounts, trades, daily results, payouts, and expenses, and view the
derived analytics: win rate, profit factor, equity curve, drawdown, and
performance breakdowns. State lives in a local database; an optional sync
proxy mirrors it to a remote blob store.

Use 'proptrack help <command>' for more information about a command.
Use 'proptrack examples' to see common workflows.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if !app.Syncer.Enabled() {
				return
			}
			ctx, cancel := context.WithTimeout(context.Background(), cfg.SyncTimeout())
			defer cancel()
			if err := app.Syncer.FlushPending(ctx); err != nil {
				logger.Warn().Err(err).Msg("Sync push on exit failed")
			}
		},
	}

	rootCmd.PersistentFlags().Bool("json", false, "Output in JSON format")

	addAccountCommands(rootCmd, app)
	addTradeCommands(rootCmd, app)
	addDailyCommands(rootCmd, app)
	addMoneyCommands(rootCmd, app)
	addRefCommands(rootCmd, app)
	addStatsCommands(rootCmd, app)
	addDashboardCommands(rootCmd, app)
	addSyncCommands(rootCmd, app)
	addCSVCommands(rootCmd, app)
	addExamplesCommand(rootCmd)

	return rootCmd, nil
}

// afterTradeMutation runs the reconciler and schedules a remote push.
// Every trade create/update/delete goes through here, whatever its origin.
func (app *App) afterTradeMutation(ctx context.Context) error {
	if err := app.Reconciler.Run(ctx); err != nil {
		return err
	}
	app.Syncer.SchedulePush()
	return nil
}

// afterMutation schedules a remote push for non-trade mutations.
func (app *App) afterMutation() {
	app.Syncer.SchedulePush()
}
