package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"text/tabwriter"

	"energy-cost-insights/internal/engine"
	"energy-cost-insights/internal/timeutil"
)

// Analyze prints the full cost analysis for one meter and day.
func (a *App) Analyze(ctx context.Context, opts AnalyzeOptions) error {
	store, closeStore, err := a.openStore(ctx)
	if err != nil {
		return err
	}
	if store == nil {
		return errors.New("database not configured; cannot analyze")
	}
	if closeStore != nil {
		defer closeStore()
	}

	svc, err := a.newService(store, nil)
	if err != nil {
		return err
	}

	analysis, err := svc.AnalyzeDay(ctx, opts.MeterID, opts.Date)
	if errors.Is(err, engine.ErrInsufficientData) {
		fmt.Fprintf(os.Stdout, "no data available for meter %s on %s\n", opts.MeterID, opts.Date)
		return nil
	}
	if err != nil {
		return err
	}

	renderAnalysis(opts.MeterID, opts.Date, analysis)
	return nil
}

func renderAnalysis(meterID, date string, analysis engine.CostAnalysis) {
	currency := analysis.Currency
	if currency == "" {
		currency = "BGN"
	}

	fmt.Fprintf(os.Stdout, "Meter %s - %s\n\n", meterID, date)

	writer := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintf(writer, "Hour\tUsage (kWh)\tPrice (%s/kWh)\tCost (%s)\n", currency, currency)
	for _, p := range analysis.Points {
		fmt.Fprintf(writer, "%s\t%s\t%s\t%s\n",
			timeutil.FormatHour(p.Hour),
			formatKWH(p.Usage),
			formatPrice(p.Price),
			formatMoney(p.Cost),
		)
	}
	writer.Flush()

	m := analysis.Metrics
	fmt.Fprintf(os.Stdout, "\nTotal usage:\t%s kWh\n", formatKWH(m.TotalKWH))
	fmt.Fprintf(os.Stdout, "Total cost:\t%s %s\n", formatMoney(m.TotalCost), currency)
	fmt.Fprintf(os.Stdout, "Average price:\t%s %s/kWh\n", formatPrice(m.AveragePrice), currency)
	fmt.Fprintf(os.Stdout, "Peak usage:\t%s kWh at %s\n", formatKWH(m.MaxUsage), timeutil.FormatHour(m.PeakUsageHour))
	fmt.Fprintf(os.Stdout, "Peak cost:\t%s %s at %s\n", formatMoney(m.MaxCost), currency, timeutil.FormatHour(m.PeakCostHour))
	fmt.Fprintf(os.Stdout, "Efficiency score:\t%.0f/100\n", analysis.EfficiencyScore)

	if len(analysis.Suggestions) > 0 {
		fmt.Fprintln(os.Stdout, "\nSuggestions:")
		for _, s := range analysis.Suggestions {
			fmt.Fprintf(os.Stdout, "  [%s] %s", s.Priority, s.Message)
			if s.PotentialSavings != nil {
				fmt.Fprintf(os.Stdout, " (potential savings: %s %s)", formatMoney(*s.PotentialSavings), currency)
			}
			fmt.Fprintln(os.Stdout)
		}
	}
}
