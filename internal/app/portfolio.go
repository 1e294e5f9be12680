package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"energy-cost-insights/internal/timeutil"
)

// Portfolio prints the dashboard summary across all metering points.
func (a *App) Portfolio(ctx context.Context, opts PortfolioOptions) error {
	store, closeStore, err := a.openStore(ctx)
	if err != nil {
		return err
	}
	if store == nil {
		return errors.New("database not configured; cannot aggregate portfolio")
	}
	if closeStore != nil {
		defer closeStore()
	}

	svc, err := a.newService(store, nil)
	if err != nil {
		return err
	}

	summary, err := svc.Portfolio(ctx, opts.Date)
	if err != nil {
		return err
	}

	currency := a.Config.Prices.Currency

	fmt.Fprintf(os.Stdout, "Portfolio - %s\n\n", opts.Date)
	fmt.Fprintf(os.Stdout, "Active meters:\t%d\n", summary.ActiveMeters)
	if len(summary.SkippedMeters) > 0 {
		fmt.Fprintf(os.Stdout, "Skipped meters:\t%s\n", strings.Join(summary.SkippedMeters, ", "))
	}
	if summary.ActiveMeters == 0 {
		fmt.Fprintln(os.Stdout, "\nno meter produced data for this date")
		return nil
	}

	fmt.Fprintf(os.Stdout, "Total usage:\t%s kWh\n", formatKWH(summary.TotalKWH))
	fmt.Fprintf(os.Stdout, "Total cost:\t%s %s\n", formatMoney(summary.TotalCost), currency)
	fmt.Fprintf(os.Stdout, "Average price:\t%s %s/kWh\n", formatPrice(summary.AveragePrice), currency)
	fmt.Fprintf(os.Stdout, "Costliest meter:\t%s (%s %s)\n", summary.HighestCostMeter, formatMoney(summary.HighestCost), currency)
	fmt.Fprintf(os.Stdout, "Overall peak hour:\t%s\n", timeutil.FormatHour(summary.OverallPeakHour))
	fmt.Fprintf(os.Stdout, "Potential savings today:\t%s %s\n", formatMoney(summary.PotentialSavingsToday), currency)

	if len(summary.TopInsights) > 0 {
		fmt.Fprintln(os.Stdout, "\nTop insights:")
		for _, insight := range summary.TopInsights {
			fmt.Fprintf(os.Stdout, "  - %s\n", insight)
		}
	}
	return nil
}
