package attendance

import (
	"time"
)

type Status string

const (
	StatusPresent    Status = "present"
	StatusAbsent     Status = "absent"
	StatusLate       Status = "late"
	StatusExcused    Status = "excused"
	StatusEarlyLeave Status = "early_leave"
)

// Statuses lists every status in display order
var Statuses = []Status{StatusPresent, StatusLate, StatusAbsent, StatusExcused, StatusEarlyLeave}

func (s Status) IsValid() bool {
	switch s {
	case StatusPresent, StatusAbsent, StatusLate, StatusExcused, StatusEarlyLeave:
		return true
	}
	return false
}

// Attended reports whether the member showed up (present-equivalent)
func (s Status) Attended() bool {
	return s == StatusPresent || s == StatusLate || s == StatusEarlyLeave
}

type Source string

const (
	SourceMobile  Source = "mobile"
	SourceWebsite Source = "website"
	SourceManual  Source = "manual"
)

// Record is one member's attendance for one date. Records are created on
// check-in and never deleted; corrections only change status and remarks.
type Record struct {
	ID                  string
	OrganizationID      string
	MemberID            string
	AttendanceDate      time.Time
	CheckInTime         *time.Time
	CheckOutTime        *time.Time
	Status              Status
	Source              Source
	Remarks             *string
	LateMinutes         *int
	WorkDurationMinutes *int
	CreatedAt           time.Time
	UpdatedAt           time.Time

	// Join
	MemberName     *string
	EmployeeCode   *string
	DepartmentID   *string
	DepartmentName *string
}

// EventTime is when the record last happened from the member's point of view
func (r Record) EventTime() time.Time {
	if r.CheckInTime != nil {
		return *r.CheckInTime
	}
	return r.CreatedAt
}

// StatusCounts holds per-status counters for a period
type StatusCounts struct {
	Present    int64
	Absent     int64
	Late       int64
	Excused    int64
	EarlyLeave int64
}

func (c StatusCounts) Total() int64 {
	return c.Present + c.Absent + c.Late + c.Excused + c.EarlyLeave
}

// Attended counts present-equivalent records
func (c StatusCounts) Attended() int64 {
	return c.Present + c.Late + c.EarlyLeave
}

// Add increments the counter for s
func (c *StatusCounts) Add(s Status) {
	switch s {
	case StatusPresent:
		c.Present++
	case StatusAbsent:
		c.Absent++
	case StatusLate:
		c.Late++
	case StatusExcused:
		c.Excused++
	case StatusEarlyLeave:
		c.EarlyLeave++
	}
}

// Get returns the counter for s
func (c StatusCounts) Get(s Status) int64 {
	switch s {
	case StatusPresent:
		return c.Present
	case StatusAbsent:
		return c.Absent
	case StatusLate:
		return c.Late
	case StatusExcused:
		return c.Excused
	case StatusEarlyLeave:
		return c.EarlyLeave
	}
	return 0
}
