package postgresql

import (
	"fmt"
	"strings"

	"github.com/cmlabs-hris/attendance-reporting-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-reporting-go/internal/pkg/tenant"
)

const recordColumns = `
		a.id, a.organization_id, a.member_id, a.attendance_date,
		a.check_in_time, a.check_out_time, a.status, a.source, a.remarks,
		a.late_minutes, a.work_duration_minutes, a.created_at, a.updated_at,
		NULLIF(TRIM(CONCAT_WS(' ', u.first_name, u.last_name)), '') AS member_name,
		m.employee_code, m.department_id, d.name AS department_name`

// Members are joined within the same organization so a stray member_id can
// never surface another tenant's names.
const recordJoins = `
		FROM attendance_records a
		JOIN organization_members m ON m.id = a.member_id AND m.organization_id = a.organization_id
		LEFT JOIN users u ON u.id = m.user_id
		LEFT JOIN departments d ON d.id = m.department_id`

// RecordQuery is a built, parameterized list query
type RecordQuery struct {
	CountSQL   string
	CountArgs  []any
	SelectSQL  string
	SelectArgs []any
}

// recordQueryBuilder accumulates WHERE conditions and positional args
type recordQueryBuilder struct {
	conditions []string
	args       []any
}

func (b *recordQueryBuilder) arg(v any) string {
	b.args = append(b.args, v)
	return fmt.Sprintf("$%d", len(b.args))
}

func (b *recordQueryBuilder) where(format string, v ...any) {
	b.conditions = append(b.conditions, fmt.Sprintf(format, v...))
}

// escapeLike makes user input literal inside an ILIKE pattern
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

// BuildRecordQuery builds the filtered, paginated list query. The
// organization filter is always the first condition; without an
// organization no query is built.
func BuildRecordQuery(organizationID string, filter attendance.RecordFilter) (RecordQuery, error) {
	if strings.TrimSpace(organizationID) == "" {
		return RecordQuery{}, tenant.ErrNoOrganization
	}

	b := &recordQueryBuilder{}
	b.where("a.organization_id = %s", b.arg(organizationID))

	// Date range filters
	if filter.DateFrom != nil && *filter.DateFrom != "" {
		b.where("a.attendance_date >= %s::date", b.arg(*filter.DateFrom))
	}
	if filter.DateTo != nil && *filter.DateTo != "" {
		b.where("a.attendance_date <= %s::date", b.arg(*filter.DateTo))
	}

	// Status filter
	if filter.Status != nil && *filter.Status != "" {
		b.where("a.status = %s", b.arg(*filter.Status))
	}

	// Department filter
	if filter.DepartmentID != nil && *filter.DepartmentID != "" {
		b.where("m.department_id = %s", b.arg(*filter.DepartmentID))
	}

	// Free-text search over member name, employee code and remarks
	if filter.Search != nil && strings.TrimSpace(*filter.Search) != "" {
		p := b.arg("%" + escapeLike(strings.TrimSpace(*filter.Search)) + "%")
		b.where("(CONCAT_WS(' ', u.first_name, u.last_name) ILIKE %[1]s OR m.employee_code ILIKE %[1]s OR a.remarks ILIKE %[1]s)", p)
	}

	whereClause := strings.Join(b.conditions, "\n\t\t  AND ")
	countArgs := append([]any(nil), b.args...)

	limit := filter.Limit
	if limit <= 0 {
		limit = attendance.DefaultPageLimit
	}
	if limit > attendance.MaxPageLimit {
		limit = attendance.MaxPageLimit
	}
	page := filter.Page
	if page <= 0 {
		page = 1
	}
	if page > attendance.MaxPage {
		page = attendance.MaxPage
	}
	limitArg := b.arg(limit)
	offsetArg := b.arg((page - 1) * limit)

	return RecordQuery{
		CountSQL: `
		SELECT COUNT(*)` + recordJoins + `
		WHERE ` + whereClause,
		CountArgs: countArgs,
		SelectSQL: `
		SELECT` + recordColumns + recordJoins + `
		WHERE ` + whereClause + `
		ORDER BY a.created_at ASC, a.id ASC
		LIMIT ` + limitArg + ` OFFSET ` + offsetArg,
		SelectArgs: b.args,
	}, nil
}
