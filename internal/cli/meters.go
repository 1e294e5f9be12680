package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"energy-cost-insights/internal/app"
)

var (
	meterID       string
	meterName     string
	meterLocation string
)

var metersCmd = &cobra.Command{
	Use:   "meters",
	Short: "Manage metering points",
}

var metersAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Register a metering point",
	RunE: func(cmd *cobra.Command, args []string) error {
		if meterID == "" {
			return fmt.Errorf("--id must be provided")
		}
		if meterName == "" {
			return fmt.Errorf("--name must be provided")
		}

		opts := app.MeterOptions{
			ID:       meterID,
			Name:     meterName,
			Location: meterLocation,
		}
		return getApp().AddMeter(cmd.Context(), opts)
	},
}

var metersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List registered metering points",
	RunE: func(cmd *cobra.Command, args []string) error {
		return getApp().ListMeters(cmd.Context())
	},
}

func init() {
	metersAddCmd.Flags().StringVar(&meterID, "id", "", "Metering point ID")
	metersAddCmd.Flags().StringVar(&meterName, "name", "", "Human readable name")
	metersAddCmd.Flags().StringVar(&meterLocation, "location", "", "Optional location label")

	metersCmd.AddCommand(metersAddCmd)
	metersCmd.AddCommand(metersListCmd)
}
