package postgresql

import (
	"context"
	"errors"
	"time"

	"github.com/cmlabs-hris/attendance-reporting-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-reporting-go/internal/pkg/database"
	"github.com/cmlabs-hris/attendance-reporting-go/internal/pkg/tenant"
	"github.com/jackc/pgx/v5"
)

const dateLayout = "2006-01-02"

type attendanceRepository struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.RecordRepository {
	return &attendanceRepository{db: db}
}

// scanRecord reads one row selected with recordColumns
func scanRecord(row pgx.Row) (attendance.Record, error) {
	var (
		r      attendance.Record
		status string
		source string
	)
	err := row.Scan(
		&r.ID, &r.OrganizationID, &r.MemberID, &r.AttendanceDate,
		&r.CheckInTime, &r.CheckOutTime, &status, &source, &r.Remarks,
		&r.LateMinutes, &r.WorkDurationMinutes, &r.CreatedAt, &r.UpdatedAt,
		&r.MemberName, &r.EmployeeCode, &r.DepartmentID, &r.DepartmentName,
	)
	r.Status = attendance.Status(status)
	r.Source = attendance.Source(source)
	return r, err
}

func collectRecords(rows pgx.Rows) ([]attendance.Record, error) {
	defer rows.Close()
	records := make([]attendance.Record, 0)
	for rows.Next() {
		r, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

// List implements attendance.RecordRepository.
func (a *attendanceRepository) List(ctx context.Context, organizationID string, filter attendance.RecordFilter) ([]attendance.Record, int64, error) {
	query, err := BuildRecordQuery(organizationID, filter)
	if err != nil {
		return nil, 0, err
	}

	q := GetQuerier(ctx, a.db)

	var total int64
	if err := q.QueryRow(ctx, query.CountSQL, query.CountArgs...).Scan(&total); err != nil {
		return nil, 0, database.QueryFailure("count attendance records", err)
	}
	if total == 0 {
		return []attendance.Record{}, 0, nil
	}

	rows, err := q.Query(ctx, query.SelectSQL, query.SelectArgs...)
	if err != nil {
		return nil, 0, database.QueryFailure("list attendance records", err)
	}
	records, err := collectRecords(rows)
	if err != nil {
		return nil, 0, database.QueryFailure("scan attendance records", err)
	}
	return records, total, nil
}

// ListBetween implements attendance.RecordRepository.
func (a *attendanceRepository) ListBetween(ctx context.Context, organizationID string, from, to time.Time) ([]attendance.Record, error) {
	if organizationID == "" {
		return nil, tenant.ErrNoOrganization
	}
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT` + recordColumns + recordJoins + `
		WHERE a.organization_id = $1
		  AND a.attendance_date BETWEEN $2::date AND $3::date
		ORDER BY a.created_at ASC, a.id ASC
	`
	rows, err := q.Query(ctx, query, organizationID, from.Format(dateLayout), to.Format(dateLayout))
	if err != nil {
		return nil, database.QueryFailure("list attendance records by date", err)
	}
	records, err := collectRecords(rows)
	if err != nil {
		return nil, database.QueryFailure("scan attendance records", err)
	}
	return records, nil
}

// ListRecent implements attendance.RecordRepository.
func (a *attendanceRepository) ListRecent(ctx context.Context, organizationID string, since time.Time, limit int) ([]attendance.Record, error) {
	if organizationID == "" {
		return nil, tenant.ErrNoOrganization
	}
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT` + recordColumns + recordJoins + `
		WHERE a.organization_id = $1
		  AND a.attendance_date >= $2::date
		ORDER BY COALESCE(a.check_in_time, a.created_at) DESC, a.id DESC
		LIMIT $3
	`
	rows, err := q.Query(ctx, query, organizationID, since.Format(dateLayout), limit)
	if err != nil {
		return nil, database.QueryFailure("list recent attendance records", err)
	}
	records, err := collectRecords(rows)
	if err != nil {
		return nil, database.QueryFailure("scan attendance records", err)
	}
	return records, nil
}

// GetByID implements attendance.RecordRepository.
func (a *attendanceRepository) GetByID(ctx context.Context, id string, organizationID string) (attendance.Record, error) {
	if organizationID == "" {
		return attendance.Record{}, tenant.ErrNoOrganization
	}
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT` + recordColumns + recordJoins + `
		WHERE a.id = $1 AND a.organization_id = $2
	`
	r, err := scanRecord(q.QueryRow(ctx, query, id, organizationID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Record{}, attendance.ErrRecordNotFound
		}
		return attendance.Record{}, database.QueryFailure("get attendance record", err)
	}
	return r, nil
}

// UpdateStatus implements attendance.RecordRepository. The row is locked
// for the duration of the change; nil remarks keep the existing remarks.
func (a *attendanceRepository) UpdateStatus(ctx context.Context, organizationID string, id string, status attendance.Status, remarks *string) (attendance.Record, error) {
	if organizationID == "" {
		return attendance.Record{}, tenant.ErrNoOrganization
	}

	var updated attendance.Record
	err := WithTransaction(ctx, a.db, func(txCtx context.Context) error {
		q := GetQuerier(txCtx, a.db)

		var locked string
		err := q.QueryRow(txCtx, `
			SELECT id FROM attendance_records
			WHERE id = $1 AND organization_id = $2
			FOR UPDATE
		`, id, organizationID).Scan(&locked)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return attendance.ErrRecordNotFound
			}
			return database.QueryFailure("lock attendance record", err)
		}

		_, err = q.Exec(txCtx, `
			UPDATE attendance_records
			SET status = $3, remarks = COALESCE($4, remarks), updated_at = NOW()
			WHERE id = $1 AND organization_id = $2
		`, id, organizationID, string(status), remarks)
		if err != nil {
			return database.QueryFailure("update attendance status", err)
		}

		updated, err = a.GetByID(txCtx, id, organizationID)
		return err
	})
	if err != nil {
		return attendance.Record{}, err
	}
	return updated, nil
}
