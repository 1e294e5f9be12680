package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"energy-cost-insights/internal/app"
)

var (
	exportMeter string
	exportDate  string
	exportCSV   string
	exportPNG   string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export one day of hourly analysis as CSV and/or a chart",
	RunE: func(cmd *cobra.Command, args []string) error {
		if exportMeter == "" {
			return fmt.Errorf("--meter must be provided")
		}
		if exportDate == "" {
			return fmt.Errorf("--date must be provided")
		}
		if exportCSV == "" && exportPNG == "" {
			return fmt.Errorf("at least one of --csv or --png must be provided")
		}

		opts := app.ExportOptions{
			MeterID: exportMeter,
			Date:    exportDate,
			CSVPath: exportCSV,
			PNGPath: exportPNG,
		}
		return getApp().Export(cmd.Context(), opts)
	},
}

func init() {
	exportCmd.Flags().StringVar(&exportMeter, "meter", "", "Metering point ID")
	exportCmd.Flags().StringVar(&exportDate, "date", "", "Day to export (YYYY-MM-DD)")
	exportCmd.Flags().StringVar(&exportCSV, "csv", "", "Path for the CSV output")
	exportCmd.Flags().StringVar(&exportPNG, "png", "", "Path for the chart output")
}
