package attendance

import (
	"context"
)

// AttendanceService defines the attendance list, export and correction operations
type AttendanceService interface {
	// ListRecords returns a filtered page. On error it still returns an empty page.
	ListRecords(ctx context.Context, filter RecordFilter) (ListRecordsResponse, error)

	// ExportRecords renders every record matching filter as an xlsx workbook
	ExportRecords(ctx context.Context, filter RecordFilter) (ExportFile, error)

	// UpdateStatus manually corrects the status of one record
	UpdateStatus(ctx context.Context, req UpdateStatusRequest) (RecordResponse, error)
}
