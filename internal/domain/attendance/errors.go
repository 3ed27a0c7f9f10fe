package attendance

import "errors"

// Attendance domain errors
var (
	ErrRecordNotFound = errors.New("attendance record not found")
	ErrExportTooLarge = errors.New("too many attendance records to export, narrow the filter")
)
