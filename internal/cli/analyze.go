package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"energy-cost-insights/internal/app"
)

var (
	analyzeMeter string
	analyzeDate  string
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Analyze one metering point for one day",
	RunE: func(cmd *cobra.Command, args []string) error {
		if analyzeMeter == "" {
			return fmt.Errorf("--meter must be provided")
		}
		if analyzeDate == "" {
			return fmt.Errorf("--date must be provided")
		}

		opts := app.AnalyzeOptions{
			MeterID: analyzeMeter,
			Date:    analyzeDate,
		}
		return getApp().Analyze(cmd.Context(), opts)
	},
}

func init() {
	analyzeCmd.Flags().StringVar(&analyzeMeter, "meter", "", "Metering point ID")
	analyzeCmd.Flags().StringVar(&analyzeDate, "date", "", "Day to analyze (YYYY-MM-DD)")
}
