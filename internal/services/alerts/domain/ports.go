package domain

import "context"

// WriterPort appends alerts
type WriterPort interface {
	Insert(ctx context.Context, a Alert) (id string, err error)
}

// QueryPort lists alerts for the monitor API
type QueryPort interface {
	List(ctx context.Context, regionID string, after AfterKey, limit int) ([]Alert, AfterKey, error)
}
