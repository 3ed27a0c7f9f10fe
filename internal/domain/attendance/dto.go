package attendance

import (
	"math"
	"strings"

	"github.com/cmlabs-hris/attendance-reporting-go/internal/pkg/validator"
)

// ========================================
// ATTENDANCE RECORD DTOs
// ========================================

const (
	DefaultPageLimit = 20
	MaxPageLimit     = 100
	MaxSearchLength  = 100

	// MaxPage keeps (page-1)*limit inside a 32-bit OFFSET
	MaxPage = math.MaxInt32 / MaxPageLimit
)

type RecordFilter struct {
	// Search & Filter
	DateFrom     *string `json:"dateFrom,omitempty"` // YYYY-MM-DD
	DateTo       *string `json:"dateTo,omitempty"`   // YYYY-MM-DD
	Status       *string `json:"status,omitempty"`
	DepartmentID *string `json:"department,omitempty"`
	Search       *string `json:"search,omitempty"`

	// Pagination
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

func (f *RecordFilter) Validate() error {
	var errs validator.ValidationErrors

	// Page validation
	if f.Page < 0 {
		errs.Add("page", "page must be a positive number")
	}
	if f.Page == 0 {
		f.Page = 1
	}
	if f.Page > MaxPage {
		errs.Add("page", "page is too large")
	}

	// Limit validation
	if f.Limit < 0 {
		errs.Add("limit", "limit must be a positive number")
	}
	if f.Limit == 0 {
		f.Limit = DefaultPageLimit
	}
	if f.Limit > MaxPageLimit {
		errs.Add("limit", "limit must not exceed 100")
	}

	// Status validation
	if f.Status != nil && *f.Status != "" {
		if !Status(*f.Status).IsValid() {
			errs.Add("status", "status must be one of: present, absent, late, excused, early_leave")
		}
	}

	// Date validation
	var fromOK, toOK bool
	if f.DateFrom != nil && *f.DateFrom != "" {
		if _, fromOK = validator.IsValidDate(*f.DateFrom); !fromOK {
			errs.Add("dateFrom", "dateFrom must be in YYYY-MM-DD format")
		}
	}
	if f.DateTo != nil && *f.DateTo != "" {
		if _, toOK = validator.IsValidDate(*f.DateTo); !toOK {
			errs.Add("dateTo", "dateTo must be in YYYY-MM-DD format")
		}
	}
	if fromOK && toOK && *f.DateFrom > *f.DateTo {
		errs.Add("dateTo", "dateTo must not be before dateFrom")
	}

	if f.DepartmentID != nil && *f.DepartmentID != "" && !validator.IsValidUUID(*f.DepartmentID) {
		errs.Add("department", "department must be a valid UUID")
	}

	if f.Search != nil {
		trimmed := strings.TrimSpace(*f.Search)
		f.Search = &trimmed
		if len(trimmed) > MaxSearchLength {
			errs.Add("search", "search must not exceed 100 characters")
		}
	}

	return errs.Err()
}

// TotalPages is ceil(total / limit), at least 0
func TotalPages(total int64, limit int) int {
	if limit <= 0 || total <= 0 {
		return 0
	}
	return int((total + int64(limit) - 1) / int64(limit))
}

type RecordResponse struct {
	ID                  string  `json:"id"`
	MemberID            string  `json:"memberId"`
	MemberName          string  `json:"memberName"`
	EmployeeCode        *string `json:"employeeCode,omitempty"`
	DepartmentID        *string `json:"departmentId,omitempty"`
	DepartmentName      string  `json:"departmentName"`
	AttendanceDate      string  `json:"attendanceDate"`
	CheckInTime         *string `json:"checkInTime"`
	CheckOutTime        *string `json:"checkOutTime"`
	CheckInDisplay      string  `json:"checkInDisplay"`
	CheckOutDisplay     string  `json:"checkOutDisplay"`
	Status              string  `json:"status"`
	Source              string  `json:"source"`
	Remarks             *string `json:"remarks,omitempty"`
	LateMinutes         *int    `json:"lateMinutes,omitempty"`
	WorkDurationMinutes *int    `json:"workDurationMinutes,omitempty"`
	CreatedAt           string  `json:"createdAt"`
	UpdatedAt           string  `json:"updatedAt"`
}

type ListRecordsResponse struct {
	Records    []RecordResponse `json:"records"`
	Total      int64            `json:"total"`
	TotalPages int              `json:"totalPages"`
	Page       int              `json:"page"`
	Limit      int              `json:"limit"`
}

// EmptyPage is the safe value returned alongside any list error
func EmptyPage(filter RecordFilter) ListRecordsResponse {
	return ListRecordsResponse{
		Records: []RecordResponse{},
		Page:    filter.Page,
		Limit:   filter.Limit,
	}
}

type UpdateStatusRequest struct {
	ID      string  `json:"-" validate:"required,uuid"`
	Status  string  `json:"status" validate:"required,oneof=present absent late excused early_leave"`
	Remarks *string `json:"remarks" validate:"omitempty,max=500"`
}

func (r *UpdateStatusRequest) Validate() error {
	return validator.Struct(r)
}

// ExportFile is a rendered export ready to be streamed
type ExportFile struct {
	Filename    string
	ContentType string
	Content     []byte
}
