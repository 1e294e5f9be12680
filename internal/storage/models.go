package storage

import "time"

// MeteringPoint is one tracked meter/location.
type MeteringPoint struct {
	ID        string
	Name      string
	Location  string
	CreatedAt time.Time
}
