package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"energy-cost-insights/internal/engine"
)

var (
	// ErrNotConfigured indicates the storage pool was not initialised.
	ErrNotConfigured = errors.New("storage: pool not configured")
)

const (
	upsertMeterSQL = `INSERT INTO metering_points (id, name, location)
    VALUES ($1, $2, $3)
    ON CONFLICT (id) DO UPDATE
    SET name = EXCLUDED.name,
        location = EXCLUDED.location;`

	listMetersSQL = `SELECT id, name, location, created_at
    FROM metering_points
    ORDER BY id;`

	upsertUsageSQL = `INSERT INTO usage_records (meter_id, ts, kwh)
    VALUES ($1, $2, $3)
    ON CONFLICT (meter_id, ts) DO UPDATE
    SET kwh = EXCLUDED.kwh;`

	listUsageBetweenSQL = `SELECT ts, kwh
    FROM usage_records
    WHERE meter_id = $1
      AND ts >= $2
      AND ts < $3
    ORDER BY ts;`

	upsertPriceSQL = `INSERT INTO price_records (ts, price, currency)
    VALUES ($1, $2, $3)
    ON CONFLICT (ts) DO UPDATE
    SET price = EXCLUDED.price,
        currency = EXCLUDED.currency;`

	listPricesBetweenSQL = `SELECT ts, price, currency
    FROM price_records
    WHERE ts >= $1
      AND ts < $2
    ORDER BY ts;`

	countPricesBetweenSQL = `SELECT COUNT(*)
    FROM price_records
    WHERE ts >= $1
      AND ts < $2;`

	tryAdvisoryLockSQL = `SELECT pg_try_advisory_lock($1);`
	advisoryUnlockSQL  = `SELECT pg_advisory_unlock($1);`
)

// MeterStore defines metering point persistence.
type MeterStore interface {
	UpsertMeteringPoint(ctx context.Context, meter MeteringPoint) error
	ListMeteringPoints(ctx context.Context) ([]MeteringPoint, error)
}

// UsageStore defines raw usage record persistence.
type UsageStore interface {
	UpsertUsage(ctx context.Context, meterID string, records []engine.UsageRecord) error
	ListUsageBetween(ctx context.Context, meterID string, from, to time.Time) ([]engine.UsageRecord, error)
}

// PriceStore defines spot price persistence.
type PriceStore interface {
	UpsertPrices(ctx context.Context, records []engine.PriceRecord) error
	ListPricesBetween(ctx context.Context, from, to time.Time) ([]engine.PriceRecord, error)
	CountPricesBetween(ctx context.Context, from, to time.Time) (int64, error)
}

// AdvisoryLocker exposes advisory lock helpers.
type AdvisoryLocker interface {
	TryAdvisoryLock(ctx context.Context, key int64) (unlock func(), acquired bool, err error)
}

// Store aggregates access to meters, usage, and prices.
type Store struct {
	pool *pgxpool.Pool
}

// NewStore wires a pgx pool into a Store.
func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// Close releases the underlying pool resources.
func (s *Store) Close() {
	if s == nil || s.pool == nil {
		return
	}
	s.pool.Close()
}

func (s *Store) getPool() (*pgxpool.Pool, error) {
	if s == nil || s.pool == nil {
		return nil, ErrNotConfigured
	}
	return s.pool, nil
}

// UpsertMeteringPoint registers or renames a meter.
func (s *Store) UpsertMeteringPoint(ctx context.Context, meter MeteringPoint) error {
	pool, err := s.getPool()
	if err != nil {
		return err
	}
	if _, execErr := pool.Exec(ctx, upsertMeterSQL, meter.ID, meter.Name, meter.Location); execErr != nil {
		return fmt.Errorf("upsert metering point: %w", execErr)
	}
	return nil
}

// ListMeteringPoints lists all registered meters in stable ID order.
func (s *Store) ListMeteringPoints(ctx context.Context) ([]MeteringPoint, error) {
	pool, err := s.getPool()
	if err != nil {
		return nil, err
	}

	rows, queryErr := pool.Query(ctx, listMetersSQL)
	if queryErr != nil {
		return nil, fmt.Errorf("list metering points: %w", queryErr)
	}
	defer rows.Close()

	meters := make([]MeteringPoint, 0)
	for rows.Next() {
		var m MeteringPoint
		if err := rows.Scan(&m.ID, &m.Name, &m.Location, &m.CreatedAt); err != nil {
			return nil, err
		}
		meters = append(meters, m)
	}
	if rows.Err() != nil {
		return nil, rows.Err()
	}
	return meters, nil
}

// UpsertUsage persists hourly usage readings for one meter.
func (s *Store) UpsertUsage(ctx context.Context, meterID string, records []engine.UsageRecord) error {
	pool, err := s.getPool()
	if err != nil {
		return err
	}

	for _, rec := range records {
		kwh := decimal.NewFromFloat(rec.KWH).String()
		ts := time.Unix(rec.Timestamp, 0).UTC()
		if _, execErr := pool.Exec(ctx, upsertUsageSQL, meterID, ts, kwh); execErr != nil {
			return fmt.Errorf("upsert usage record: %w", execErr)
		}
	}
	return nil
}

// ListUsageBetween loads raw usage rows for one meter within a window.
func (s *Store) ListUsageBetween(ctx context.Context, meterID string, from, to time.Time) ([]engine.UsageRecord, error) {
	pool, err := s.getPool()
	if err != nil {
		return nil, err
	}

	rows, queryErr := pool.Query(ctx, listUsageBetweenSQL, meterID, from, to)
	if queryErr != nil {
		return nil, fmt.Errorf("list usage between: %w", queryErr)
	}
	defer rows.Close()

	records := make([]engine.UsageRecord, 0)
	for rows.Next() {
		var ts time.Time
		var kwhStr string
		if err := rows.Scan(&ts, &kwhStr); err != nil {
			return nil, err
		}
		kwh, convErr := decimal.NewFromString(kwhStr)
		if convErr != nil {
			return nil, fmt.Errorf("parse kwh: %w", convErr)
		}
		records = append(records, engine.UsageRecord{
			Timestamp: ts.Unix(),
			KWH:       kwh.InexactFloat64(),
		})
	}
	if rows.Err() != nil {
		return nil, rows.Err()
	}
	return records, nil
}

// UpsertPrices persists spot prices; the latest write for an hour wins.
func (s *Store) UpsertPrices(ctx context.Context, records []engine.PriceRecord) error {
	pool, err := s.getPool()
	if err != nil {
		return err
	}

	for _, rec := range records {
		price := decimal.NewFromFloat(rec.Price).String()
		ts := time.Unix(rec.Timestamp, 0).UTC()
		if _, execErr := pool.Exec(ctx, upsertPriceSQL, ts, price, rec.Currency); execErr != nil {
			return fmt.Errorf("upsert price record: %w", execErr)
		}
	}
	return nil
}

// ListPricesBetween loads raw price rows within a window.
func (s *Store) ListPricesBetween(ctx context.Context, from, to time.Time) ([]engine.PriceRecord, error) {
	pool, err := s.getPool()
	if err != nil {
		return nil, err
	}

	rows, queryErr := pool.Query(ctx, listPricesBetweenSQL, from, to)
	if queryErr != nil {
		return nil, fmt.Errorf("list prices between: %w", queryErr)
	}
	defer rows.Close()

	records := make([]engine.PriceRecord, 0)
	for rows.Next() {
		var ts time.Time
		var priceStr, currency string
		if err := rows.Scan(&ts, &priceStr, &currency); err != nil {
			return nil, err
		}
		price, convErr := decimal.NewFromString(priceStr)
		if convErr != nil {
			return nil, fmt.Errorf("parse price: %w", convErr)
		}
		records = append(records, engine.PriceRecord{
			Timestamp: ts.Unix(),
			Price:     price.InexactFloat64(),
			Currency:  currency,
		})
	}
	if rows.Err() != nil {
		return nil, rows.Err()
	}
	return records, nil
}

// CountPricesBetween reports how many price rows exist in a window.
func (s *Store) CountPricesBetween(ctx context.Context, from, to time.Time) (int64, error) {
	pool, err := s.getPool()
	if err != nil {
		return 0, err
	}
	var count int64
	if scanErr := pool.QueryRow(ctx, countPricesBetweenSQL, from, to).Scan(&count); scanErr != nil {
		return 0, fmt.Errorf("count prices between: %w", scanErr)
	}
	return count, nil
}

// TryAdvisoryLock attempts to acquire a postgres advisory lock and returns a release func.
func (s *Store) TryAdvisoryLock(ctx context.Context, key int64) (func(), bool, error) {
	pool, err := s.getPool()
	if err != nil {
		return nil, false, err
	}

	conn, err := pool.Acquire(ctx)
	if err != nil {
		return nil, false, fmt.Errorf("acquire connection: %w", err)
	}

	var acquired bool
	if err := conn.QueryRow(ctx, tryAdvisoryLockSQL, key).Scan(&acquired); err != nil {
		conn.Release()
		return nil, false, fmt.Errorf("try advisory lock: %w", err)
	}
	if !acquired {
		conn.Release()
		return nil, false, nil
	}

	unlock := func() {
		ctxUnlock, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_, _ = conn.Exec(ctxUnlock, advisoryUnlockSQL, key)
		conn.Release()
	}
	return unlock, true, nil
}

var (
	_ MeterStore     = (*Store)(nil)
	_ UsageStore     = (*Store)(nil)
	_ PriceStore     = (*Store)(nil)
	_ AdvisoryLocker = (*Store)(nil)
)
