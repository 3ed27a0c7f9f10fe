package attendance

import (
	"context"
	"time"
)

// RecordRepository defines data access methods for attendance records.
// Every method takes organizationID and scopes its SQL to it.
type RecordRepository interface {
	// List returns one page of records matching filter plus the total count
	List(ctx context.Context, organizationID string, filter RecordFilter) ([]Record, int64, error)

	// ListBetween returns every record whose attendance_date is in [from, to]
	ListBetween(ctx context.Context, organizationID string, from, to time.Time) ([]Record, error)

	// ListRecent returns the newest records since the given date
	ListRecent(ctx context.Context, organizationID string, since time.Time, limit int) ([]Record, error)

	// GetByID retrieves a record with organization isolation
	GetByID(ctx context.Context, id string, organizationID string) (Record, error)

	// UpdateStatus changes status and remarks and returns the updated record
	UpdateStatus(ctx context.Context, organizationID string, id string, status Status, remarks *string) (Record, error)
}
