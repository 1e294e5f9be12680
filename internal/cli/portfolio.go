package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"energy-cost-insights/internal/app"
)

var portfolioDate string

var portfolioCmd = &cobra.Command{
	Use:   "portfolio",
	Short: "Summarize all metering points for one day",
	RunE: func(cmd *cobra.Command, args []string) error {
		if portfolioDate == "" {
			return fmt.Errorf("--date must be provided")
		}
		return getApp().Portfolio(cmd.Context(), app.PortfolioOptions{Date: portfolioDate})
	},
}

func init() {
	portfolioCmd.Flags().StringVar(&portfolioDate, "date", "", "Day to summarize (YYYY-MM-DD)")
}
