package postgresql

import (
	"context"
	"errors"

	"github.com/cmlabs-hris/attendance-reporting-go/internal/domain/organization"
	"github.com/cmlabs-hris/attendance-reporting-go/internal/pkg/database"
	"github.com/cmlabs-hris/attendance-reporting-go/internal/pkg/tenant"
	"github.com/cmlabs-hris/attendance-reporting-go/internal/pkg/timefmt"
	"github.com/jackc/pgx/v5"
)

type organizationRepository struct {
	db *database.DB
}

func NewOrganizationRepository(db *database.DB) organization.OrganizationRepository {
	return &organizationRepository{db: db}
}

// GetSettings implements organization.OrganizationRepository.
func (r *organizationRepository) GetSettings(ctx context.Context, organizationID string) (organization.Settings, error) {
	if organizationID == "" {
		return organization.Settings{}, tenant.ErrNoOrganization
	}
	q := GetQuerier(ctx, r.db)

	var (
		s      organization.Settings
		format string
	)
	err := q.QueryRow(ctx, `
		SELECT id, timezone, time_format, updated_at
		FROM organizations
		WHERE id = $1
	`, organizationID).Scan(&s.OrganizationID, &s.Timezone, &format, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return organization.Settings{}, organization.ErrOrganizationNotFound
		}
		return organization.Settings{}, database.QueryFailure("get organization settings", err)
	}
	s.TimeFormat = timefmt.TimeFormat(format)
	return s, nil
}

// UpdateSettings implements organization.OrganizationRepository.
func (r *organizationRepository) UpdateSettings(ctx context.Context, settings organization.Settings) (organization.Settings, error) {
	if settings.OrganizationID == "" {
		return organization.Settings{}, tenant.ErrNoOrganization
	}
	q := GetQuerier(ctx, r.db)

	var (
		s      organization.Settings
		format string
	)
	err := q.QueryRow(ctx, `
		UPDATE organizations
		SET timezone = $2, time_format = $3, updated_at = NOW()
		WHERE id = $1
		RETURNING id, timezone, time_format, updated_at
	`, settings.OrganizationID, settings.Timezone, string(settings.TimeFormat)).Scan(&s.OrganizationID, &s.Timezone, &format, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return organization.Settings{}, organization.ErrOrganizationNotFound
		}
		return organization.Settings{}, database.QueryFailure("update organization settings", err)
	}
	s.TimeFormat = timefmt.TimeFormat(format)
	return s, nil
}

// ListDepartments implements organization.OrganizationRepository.
func (r *organizationRepository) ListDepartments(ctx context.Context, organizationID string) ([]organization.Department, error) {
	if organizationID == "" {
		return nil, tenant.ErrNoOrganization
	}
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `
		SELECT d.id, d.name, COUNT(m.id) FILTER (WHERE m.is_active)
		FROM departments d
		LEFT JOIN organization_members m
		       ON m.department_id = d.id AND m.organization_id = d.organization_id
		WHERE d.organization_id = $1 AND d.is_active
		GROUP BY d.id, d.name
		ORDER BY d.name ASC
	`, organizationID)
	if err != nil {
		return nil, database.QueryFailure("list departments", err)
	}
	defer rows.Close()

	departments := make([]organization.Department, 0)
	for rows.Next() {
		var d organization.Department
		if err := rows.Scan(&d.ID, &d.Name, &d.MemberCount); err != nil {
			return nil, database.QueryFailure("scan department", err)
		}
		departments = append(departments, d)
	}
	if err := rows.Err(); err != nil {
		return nil, database.QueryFailure("list departments", err)
	}
	return departments, nil
}

// CountActiveMembers implements organization.OrganizationRepository.
func (r *organizationRepository) CountActiveMembers(ctx context.Context, organizationID string) (int64, error) {
	if organizationID == "" {
		return 0, tenant.ErrNoOrganization
	}
	q := GetQuerier(ctx, r.db)

	var total int64
	err := q.QueryRow(ctx, `
		SELECT COUNT(*) FROM organization_members
		WHERE organization_id = $1 AND is_active
	`, organizationID).Scan(&total)
	if err != nil {
		return 0, database.QueryFailure("count active members", err)
	}
	return total, nil
}
