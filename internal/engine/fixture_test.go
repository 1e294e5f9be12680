package engine

import (
	"time"

	"energy-cost-insights/internal/timeutil"
)

// Fixed zone keeps the tests independent of the host tzdata.
var testZone = time.FixedZone("EET", 2*60*60)

func testEngine() *Engine {
	return New(timeutil.NewNormalizer(testZone), DefaultOptions())
}

func hourStamp(hour int) int64 {
	return time.Date(2025, 1, 15, hour, 0, 0, 0, testZone).Unix()
}

// mockDay is a full 24-hour office profile. Hour 9 is the peak on both
// axes: 22.6 kWh at 0.1289 BGN/kWh. Totals: 263.7 kWh, mean price
// 0.0945, total cost 26.50 (2 dp).
func mockDay() ([]UsageRecord, []PriceRecord) {
	kwh := []float64{
		6.2, 5.8, 5.5, 7.5, 5.6, 7.4, 10.8, 13.9, 15.4, 22.6,
		13.8, 16.3, 14.8, 13.2, 12.1, 11.4, 10.9, 11.8, 13.6, 12.4,
		10.2, 8.7, 7.3, 6.5,
	}
	price := []float64{
		0.0776, 0.0753, 0.0719, 0.0705, 0.0731, 0.0743, 0.0892, 0.1034, 0.1187, 0.1289,
		0.1245, 0.1158, 0.1066, 0.0981, 0.0924, 0.0887, 0.0902, 0.0978, 0.1103, 0.1148,
		0.1021, 0.0893, 0.0801, 0.0744,
	}

	usage := make([]UsageRecord, 24)
	prices := make([]PriceRecord, 24)
	for h := 0; h < 24; h++ {
		usage[h] = UsageRecord{Timestamp: hourStamp(h), KWH: kwh[h]}
		prices[h] = PriceRecord{Timestamp: hourStamp(h), Price: price[h], Currency: "BGN"}
	}
	return usage, prices
}
