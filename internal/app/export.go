package app

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	chart "github.com/wcharczuk/go-chart/v2"

	"energy-cost-insights/internal/engine"
	"energy-cost-insights/internal/timeutil"
)

// Export renders one analysed day as CSV and/or a PNG chart.
func (a *App) Export(ctx context.Context, opts ExportOptions) error {
	if opts.CSVPath == "" && opts.PNGPath == "" {
		return errors.New("at least one of --csv or --png must be provided")
	}

	store, closeStore, err := a.openStore(ctx)
	if err != nil {
		return err
	}
	if store == nil {
		return errors.New("database not configured; cannot export")
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
		a.Logger.Info().Str("meter_id", opts.MeterID).Str("date", opts.Date).Msg("no data to export")
		return nil
	}
	if err != nil {
		return err
	}

	if opts.CSVPath != "" {
		if err := writeDayCSV(opts.CSVPath, analysis, a.Config.ResolveMaxPoints(0)); err != nil {
			return err
		}
	}
	if opts.PNGPath != "" {
		if err := writeDayPNG(opts.PNGPath, opts.MeterID, opts.Date, analysis); err != nil {
			return err
		}
	}

	a.Logger.Info().Str("meter_id", opts.MeterID).Str("date", opts.Date).Msg("export complete")
	return nil
}

func writeDayCSV(path string, analysis engine.CostAnalysis, maxPoints int) error {
	if err := ensureDir(path); err != nil {
		return err
	}

	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	header := []string{"hour", "usage_kwh", "price", "cost", "currency"}
	if err := writer.Write(header); err != nil {
		return err
	}

	points := analysis.Points
	if maxPoints > 0 && len(points) > maxPoints {
		points = points[:maxPoints]
	}

	for _, p := range points {
		record := []string{
			timeutil.FormatHour(p.Hour),
			formatKWH(p.Usage),
			formatPrice(p.Price),
			formatMoney(p.Cost),
			analysis.Currency,
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}

	return writer.Error()
}

func writeDayPNG(path, meterID, date string, analysis engine.CostAnalysis) error {
	if err := ensureDir(path); err != nil {
		return err
	}

	hours := make([]float64, len(analysis.Points))
	usage := make([]float64, len(analysis.Points))
	cost := make([]float64, len(analysis.Points))
	for i, p := range analysis.Points {
		hours[i] = float64(p.Hour)
		usage[i] = p.Usage
		cost[i] = p.Cost
	}

	hourFormatter := func(v interface{}) string {
		if f, ok := v.(float64); ok {
			return timeutil.FormatHour(int(f))
		}
		return ""
	}

	graph := chart.Chart{
		Title:  fmt.Sprintf("%s %s", meterID, date),
		Width:  1280,
		Height: 720,
		XAxis: chart.XAxis{
			ValueFormatter: hourFormatter,
		},
		YAxis: chart.YAxis{
			Name: "Usage (kWh)",
		},
		YAxisSecondary: chart.YAxis{
			Name: "Cost",
		},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name:    "Usage",
				XValues: hours,
				YValues: usage,
			},
			chart.ContinuousSeries{
				Name:    "Cost",
				XValues: hours,
				YValues: cost,
				YAxis:   chart.YAxisSecondary,
			},
		},
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}

	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	return graph.Render(chart.PNG, file)
}

func ensureDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}
