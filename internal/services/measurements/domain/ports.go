package domain

import "context"

// ReaderPort reads the measurement history
type ReaderPort interface {
	// Latest returns the most recent measurement for a region by capture
	// date, or (nil, nil) when no history exists
	Latest(ctx context.Context, regionID string) (*Measurement, error)

	// List pages the history newest first using a keyset cursor
	List(ctx context.Context, regionID string, after AfterKey, limit int) ([]Measurement, AfterKey, error)
}

// WriterPort appends measurements
type WriterPort interface {
	Insert(ctx context.Context, m Measurement) (id string, err error)
}
