package attendance

import (
	"context"
	"fmt"

	"github.com/cmlabs-hris/attendance-reporting-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-reporting-go/internal/domain/organization"
	"github.com/cmlabs-hris/attendance-reporting-go/internal/pkg/tenant"
	"github.com/cmlabs-hris/attendance-reporting-go/internal/pkg/timefmt"
	"github.com/xuri/excelize/v2"
)

const (
	exportSheet       = "Attendance"
	exportContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

	// MaxExportRows caps a single workbook
	MaxExportRows = 10000
)

var exportHeader = []string{
	"Date", "Member", "Employee Code", "Department", "Status",
	"Check In", "Check Out", "Late (min)", "Work (min)", "Source", "Remarks",
}

// ExportRecords implements attendance.AttendanceService. It walks every page
// matching the filter and streams the rows into a single sheet.
func (s *AttendanceServiceImpl) ExportRecords(ctx context.Context, filter attendance.RecordFilter) (attendance.ExportFile, error) {
	filter.Page = 1
	filter.Limit = attendance.MaxPageLimit
	if err := filter.Validate(); err != nil {
		return attendance.ExportFile{}, err
	}

	orgID, err := tenant.OrganizationID(ctx)
	if err != nil {
		return attendance.ExportFile{}, err
	}

	var all []attendance.Record
	for {
		records, total, err := s.RecordRepository.List(ctx, orgID, filter)
		if err != nil {
			return attendance.ExportFile{}, err
		}
		if total > MaxExportRows {
			return attendance.ExportFile{}, attendance.ErrExportTooLarge
		}
		all = append(all, records...)
		if len(records) < filter.Limit || int64(len(all)) >= total {
			break
		}
		filter.Page++
	}

	settings := s.displaySettings(ctx, orgID)

	content, err := renderWorkbook(all, settings)
	if err != nil {
		return attendance.ExportFile{}, fmt.Errorf("failed to render attendance export: %w", err)
	}

	today := timefmt.LocalDate(s.now(), settings.Location())
	return attendance.ExportFile{
		Filename:    fmt.Sprintf("attendance-records-%s.xlsx", today.Format("20060102")),
		ContentType: exportContentType,
		Content:     content,
	}, nil
}

func renderWorkbook(records []attendance.Record, settings organization.Settings) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", exportSheet); err != nil {
		return nil, err
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"E5E7EB"}},
	})
	if err != nil {
		return nil, err
	}

	sw, err := f.NewStreamWriter(exportSheet)
	if err != nil {
		return nil, err
	}
	if err := sw.SetColWidth(1, len(exportHeader), 16); err != nil {
		return nil, err
	}

	header := make([]interface{}, len(exportHeader))
	for i, h := range exportHeader {
		header[i] = excelize.Cell{StyleID: headerStyle, Value: h}
	}
	if err := sw.SetRow("A1", header); err != nil {
		return nil, err
	}

	for i, r := range records {
		resp := mapRecordToResponse(r, settings)
		row := []interface{}{
			resp.AttendanceDate,
			resp.MemberName,
			deref(resp.EmployeeCode),
			resp.DepartmentName,
			resp.Status,
			resp.CheckInDisplay,
			resp.CheckOutDisplay,
			intOrBlank(resp.LateMinutes),
			intOrBlank(resp.WorkDurationMinutes),
			resp.Source,
			deref(resp.Remarks),
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		if err := sw.SetRow(cell, row); err != nil {
			return nil, err
		}
	}

	if err := sw.Flush(); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func intOrBlank(v *int) interface{} {
	if v == nil {
		return ""
	}
	return *v
}
