package cli

import (
	"github.com/spf13/cobra"

	apperrors "proptrack/internal/errors"
)

func addSyncCommands(rootCmd *cobra.Command, app *App) {
	syncCmd := &cobra.Command{
		Use:   "sync",
		Short: "Push and pull data against the sync endpoint",
	}

	syncCmd.AddCommand(&cobra.Command{
		Use:   "push",
		Short: "Push the full local dataset to the remote",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if !app.Syncer.Enabled() {
				return apperrors.ErrSyncDisabled
			}
			if err := app.Syncer.Flush(cmd.Context()); err != nil {
				if apperrors.Is(err, apperrors.ErrSyncRejected) {
					output.Error("The remote rejected the sync token; check sync.token in the config file.")
				}
				return err
			}
			output.Success("Pushed local data to %s", app.Config.Sync.Endpoint)
			return nil
		},
	})

	syncCmd.AddCommand(&cobra.Command{
		Use:   "pull",
		Short: "Replace local data with the remote dataset",
		Long:  "Download the remote bundle and overwrite every local collection with it.",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if !app.Syncer.Enabled() {
				return apperrors.ErrSyncDisabled
			}
			if err := app.Syncer.Pull(cmd.Context()); err != nil {
				if apperrors.Is(err, apperrors.ErrSyncRejected) {
					output.Error("The remote rejected the sync token; check sync.token in the config file.")
				}
				return err
			}
			output.Success("Pulled remote data from %s", app.Config.Sync.Endpoint)
			return nil
		},
	})

	syncCmd.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "Show sync configuration and last push result",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)

			lastSync, err := app.Store.LastSync(cmd.Context())
			if err != nil {
				return err
			}
			lastPush, lastErr := app.Syncer.Status()

			if output.IsJSON() {
				view := struct {
					Enabled   bool   `json:"enabled"`
					Endpoint  string `json:"endpoint,omitempty"`
					LastSync  string `json:"lastSync,omitempty"`
					LastPush  string `json:"lastPush,omitempty"`
					LastError string `json:"lastError,omitempty"`
				}{Enabled: app.Syncer.Enabled(), Endpoint: app.Config.Sync.Endpoint}
				if !lastSync.IsZero() {
					view.LastSync = lastSync.Format("2006-01-02 15:04:05")
				}
				if !lastPush.IsZero() {
					view.LastPush = lastPush.Format("2006-01-02 15:04:05")
				}
				if lastErr != nil {
					view.LastError = lastErr.Error()
				}
				return output.JSON(view)
			}

			if !app.Syncer.Enabled() {
				output.Info("Sync is disabled. Set sync.endpoint in the config file to enable it.")
				return nil
			}
			output.Printf("Endpoint:   %s\n", app.Config.Sync.Endpoint)
			if lastSync.IsZero() {
				output.Printf("Last sync:  %s\n", output.DimText("never"))
			} else {
				output.Printf("Last sync:  %s\n", lastSync.Format("2006-01-02 15:04:05"))
			}
			if !lastPush.IsZero() {
				output.Printf("Last push:  %s\n", lastPush.Format("2006-01-02 15:04:05"))
			}
			if lastErr != nil {
				output.Printf("Last error: %s\n", output.Red(lastErr.Error()))
			}
			return nil
		},
	})

	rootCmd.AddCommand(syncCmd)
}
