package cli

import (
	"strings"

	"github.com/spf13/cobra"
)

// addExamplesCommand adds the workflow examples command.
func addExamplesCommand(rootCmd *cobra.Command) {
	rootCmd.AddCommand(newExamplesCmd())
}

func newExamplesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "examples",
		Short: "Show common workflow examples",
		Long:  "Display examples of common tracking workflows.",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)

			output.Bold("Common Workflow Examples")
			output.Println()

			examples := []struct {
				title    string
				commands []string
			}{
				{
					title: "Getting Started",
					commands: []string{
						"proptrack firm add --name 'Apex'            # Register a prop firm",
						"proptrack account add --type evaluation --size 50000 --firm Apex --target 3000 --drawdown 2500",
						"proptrack account list                      # Verify the account",
					},
				},
				{
					title: "Logging a Trading Day",
					commands: []string{
						"proptrack trade add --date 2026-03-02 --time 09:45 --instrument NQ --direction long --account a1b2 --pnl 312.50",
						"proptrack trade add --date 2026-03-02 --time 10:20 --instrument NQ --direction short --account split --pnl -150",
						"proptrack daily set 2026-03-02 --notes 'Choppy open, sat out the afternoon'",
					},
				},
				{
					title: "Reviewing Performance",
					commands: []string{
						"proptrack stats                             # Overall statistics",
						"proptrack stats --from 2026-03-01 --to 2026-03-31",
						"proptrack breakdown weekday                 # Best/worst days",
						"proptrack breakdown rr                      # Risk:reward buckets",
						"proptrack sequence                          # After-win vs after-loss",
						"proptrack frequency                         # Overtrading check",
					},
				},
				{
					title: "Dashboard and Calendar",
					commands: []string{
						"proptrack dashboard                         # Accounts, equity, streak",
						"proptrack calendar 2026-03                  # Monthly P&L calendar",
						"proptrack calendar                          # Current month",
					},
				},
				{
					title: "Money Tracking",
					commands: []string{
						"proptrack payout add --account a1b2 --date 2026-03-15 --amount 1200",
						"proptrack expense add --date 2026-03-01 --amount 165 --description 'Evaluation fee'",
						"proptrack summary                           # Net after payouts and expenses",
					},
				},
				{
					title: "Sync Across Machines",
					commands: []string{
						"proptrack sync status                       # Check configuration",
						"proptrack sync push                         # Upload local data",
						"proptrack sync pull                         # Replace local with remote",
					},
				},
				{
					title: "Backup and Migration",
					commands: []string{
						"proptrack export trades.csv                 # Dump trades to CSV",
						"proptrack import trades.csv --merge         # Bring them back, skipping duplicates",
					},
				},
				{
					title: "Scripting",
					commands: []string{
						"proptrack stats --json | jq .winRate        # Machine-readable output",
						"proptrack account list --json",
					},
				},
			}

			for _, ex := range examples {
				output.Bold(ex.title)
				for _, c := range ex.commands {
					parts := strings.SplitN(c, "#", 2)
					if len(parts) == 2 {
						output.Printf("  %s %s\n", output.Cyan(strings.TrimSpace(parts[0])), output.DimText(strings.TrimSpace(parts[1])))
					} else {
						output.Printf("  %s\n", output.Cyan(c))
					}
				}
				output.Println()
			}

			return nil
		},
	}
}
