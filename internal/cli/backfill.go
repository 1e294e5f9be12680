package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"energy-cost-insights/internal/app"
)

var (
	backfillFrom   string
	backfillTo     string
	backfillDryRun bool
)

var backfillCmd = &cobra.Command{
	Use:   "backfill",
	Short: "Fetch day-ahead prices for a date range into the database",
	RunE: func(cmd *cobra.Command, args []string) error {
		if backfillFrom == "" || backfillTo == "" {
			return fmt.Errorf("--from and --to must both be provided")
		}

		opts := app.BackfillOptions{
			From:   backfillFrom,
			To:     backfillTo,
			DryRun: backfillDryRun,
		}
		return getApp().Backfill(cmd.Context(), opts)
	},
}

func init() {
	backfillCmd.Flags().StringVar(&backfillFrom, "from", "", "First day to fetch (YYYY-MM-DD)")
	backfillCmd.Flags().StringVar(&backfillTo, "to", "", "Last day to fetch (YYYY-MM-DD)")
	backfillCmd.Flags().BoolVar(&backfillDryRun, "dry-run", false, "Fetch without writing to the database")
}
