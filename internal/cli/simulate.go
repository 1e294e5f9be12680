package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	simulateUsage float64
	simulatePrice float64
)

var simulateCmd = &cobra.Command{
	Use:   "simulate-alert",
	Short: "Send a test alert through the configured channel",
	RunE: func(cmd *cobra.Command, args []string) error {
		if simulateUsage <= 0 {
			return fmt.Errorf("--usage must be greater than zero")
		}
		if simulatePrice <= 0 {
			return fmt.Errorf("--price must be greater than zero")
		}
		return getApp().SimulateAlert(cmd.Context(), simulateUsage, simulatePrice)
	},
}

func init() {
	simulateCmd.Flags().Float64Var(&simulateUsage, "usage", 0, "Simulated usage for the current hour, in kWh")
	simulateCmd.Flags().Float64Var(&simulatePrice, "price", 0, "Simulated unit price for the current hour")
}
