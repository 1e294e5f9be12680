package engine

// Aggregate folds raw usage and price records into the canonical 24-slot
// day. Usage records landing in the same local hour are summed; price
// records overwrite, so the last record iterated for an hour wins. Slots
// untouched by either series stay zero, and the result always has exactly
// 24 entries in ascending hour order.
func (e *Engine) Aggregate(usage []UsageRecord, prices []PriceRecord) []HourlyDataPoint {
	points := make([]HourlyDataPoint, 24)
	for h := range points {
		points[h].Hour = h
	}

	for _, rec := range usage {
		points[e.hours.HourOf(rec.Timestamp)].Usage += rec.KWH
	}
	for _, rec := range prices {
		points[e.hours.HourOf(rec.Timestamp)].Price = rec.Price
	}

	for h := range points {
		points[h].Cost = points[h].Usage * points[h].Price
	}
	return points
}
