package attendance

import (
	"context"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/attendance-reporting-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-reporting-go/internal/domain/organization"
	"github.com/cmlabs-hris/attendance-reporting-go/internal/pkg/tenant"
	"github.com/cmlabs-hris/attendance-reporting-go/internal/pkg/timefmt"
)

type AttendanceServiceImpl struct {
	attendance.RecordRepository
	settings organization.SettingsProvider
	logger   *slog.Logger
	now      func() time.Time
}

func NewAttendanceService(
	records attendance.RecordRepository,
	settings organization.SettingsProvider,
	logger *slog.Logger,
) *AttendanceServiceImpl {
	return &AttendanceServiceImpl{
		RecordRepository: records,
		settings:         settings,
		logger:           logger,
		now:              time.Now,
	}
}

// displaySettings loads the organization's formatting preferences. Display
// preferences never fail a read, so errors fall back to the defaults.
func (s *AttendanceServiceImpl) displaySettings(ctx context.Context, organizationID string) organization.Settings {
	settings, err := s.settings.Settings(ctx, organizationID)
	if err != nil {
		s.logger.WarnContext(ctx, "falling back to default display settings",
			"organization_id", organizationID,
			"error", err,
		)
		return organization.DefaultSettings(organizationID)
	}
	return settings
}

// ListRecords implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) ListRecords(ctx context.Context, filter attendance.RecordFilter) (attendance.ListRecordsResponse, error) {
	if err := filter.Validate(); err != nil {
		return attendance.EmptyPage(filter), err
	}

	orgID, err := tenant.OrganizationID(ctx)
	if err != nil {
		return attendance.EmptyPage(filter), err
	}

	records, total, err := s.RecordRepository.List(ctx, orgID, filter)
	if err != nil {
		return attendance.EmptyPage(filter), err
	}

	settings := s.displaySettings(ctx, orgID)

	responses := make([]attendance.RecordResponse, 0, len(records))
	for _, r := range records {
		responses = append(responses, mapRecordToResponse(r, settings))
	}

	return attendance.ListRecordsResponse{
		Records:    responses,
		Total:      total,
		TotalPages: attendance.TotalPages(total, filter.Limit),
		Page:       filter.Page,
		Limit:      filter.Limit,
	}, nil
}

// UpdateStatus implements attendance.AttendanceService.
// Managers use this to correct a record's status after the fact.
func (s *AttendanceServiceImpl) UpdateStatus(ctx context.Context, req attendance.UpdateStatusRequest) (attendance.RecordResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.RecordResponse{}, err
	}

	member, err := tenant.FromContext(ctx)
	if err != nil {
		return attendance.RecordResponse{}, err
	}

	updated, err := s.RecordRepository.UpdateStatus(ctx, member.OrganizationID, req.ID, attendance.Status(req.Status), req.Remarks)
	if err != nil {
		return attendance.RecordResponse{}, err
	}

	s.logger.InfoContext(ctx, "attendance status corrected",
		"organization_id", member.OrganizationID,
		"record_id", updated.ID,
		"status", updated.Status,
		"updated_by", member.MemberID,
	)

	return mapRecordToResponse(updated, s.displaySettings(ctx, member.OrganizationID)), nil
}

// mapRecordToResponse converts a Record into its API shape, formatting
// times in the organization's timezone and clock preference.
func mapRecordToResponse(r attendance.Record, settings organization.Settings) attendance.RecordResponse {
	memberName := "Unknown"
	if r.MemberName != nil && *r.MemberName != "" {
		memberName = *r.MemberName
	}

	departmentName := "Unassigned"
	if r.DepartmentName != nil && *r.DepartmentName != "" {
		departmentName = *r.DepartmentName
	}

	return attendance.RecordResponse{
		ID:                  r.ID,
		MemberID:            r.MemberID,
		MemberName:          memberName,
		EmployeeCode:        r.EmployeeCode,
		DepartmentID:        r.DepartmentID,
		DepartmentName:      departmentName,
		AttendanceDate:      r.AttendanceDate.Format("2006-01-02"),
		CheckInTime:         timefmt.RFC3339Ptr(r.CheckInTime),
		CheckOutTime:        timefmt.RFC3339Ptr(r.CheckOutTime),
		CheckInDisplay:      timefmt.Format(r.CheckInTime, settings.Timezone, settings.TimeFormat),
		CheckOutDisplay:     timefmt.Format(r.CheckOutTime, settings.Timezone, settings.TimeFormat),
		Status:              string(r.Status),
		Source:              string(r.Source),
		Remarks:             r.Remarks,
		LateMinutes:         r.LateMinutes,
		WorkDurationMinutes: r.WorkDurationMinutes,
		CreatedAt:           r.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:           r.UpdatedAt.UTC().Format(time.RFC3339),
	}
}
