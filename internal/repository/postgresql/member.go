package postgresql

import (
	"context"
	"errors"

	"github.com/cmlabs-hris/attendance-reporting-go/internal/domain/organization"
	"github.com/cmlabs-hris/attendance-reporting-go/internal/domain/user"
	"github.com/cmlabs-hris/attendance-reporting-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type memberRepository struct {
	db *database.DB
}

func NewMemberRepository(db *database.DB) organization.MembershipRepository {
	return &memberRepository{db: db}
}

// FindActiveMembership implements organization.MembershipRepository.
func (r *memberRepository) FindActiveMembership(ctx context.Context, userID string, organizationID string) (organization.Member, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, organization_id, user_id, department_id, employee_code, role, is_active, created_at
		FROM organization_members
		WHERE user_id = $1 AND is_active`
	args := []any{userID}
	if organizationID != "" {
		query += " AND organization_id = $2"
		args = append(args, organizationID)
	}
	query += `
		ORDER BY created_at ASC, id ASC
		LIMIT 1`

	var (
		m    organization.Member
		role string
	)
	err := q.QueryRow(ctx, query, args...).Scan(
		&m.ID, &m.OrganizationID, &m.UserID, &m.DepartmentID, &m.EmployeeCode, &role, &m.IsActive, &m.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return organization.Member{}, organization.ErrMembershipNotFound
		}
		return organization.Member{}, database.QueryFailure("find active membership", err)
	}
	m.Role = user.Role(role)
	return m, nil
}
