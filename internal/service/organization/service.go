package organization

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/attendance-reporting-go/internal/domain/organization"
	"github.com/cmlabs-hris/attendance-reporting-go/internal/pkg/tenant"
	"github.com/cmlabs-hris/attendance-reporting-go/internal/pkg/timefmt"
	"github.com/cmlabs-hris/attendance-reporting-go/internal/pkg/validator"
	"github.com/hashicorp/golang-lru/v2/expirable"
)

type OrganizationServiceImpl struct {
	organization.OrganizationRepository
	memberships organization.MembershipRepository
	cache       *expirable.LRU[string, organization.Settings]
	logger      *slog.Logger
}

func NewOrganizationService(
	organizations organization.OrganizationRepository,
	memberships organization.MembershipRepository,
	cacheSize int,
	cacheTTL time.Duration,
	logger *slog.Logger,
) *OrganizationServiceImpl {
	return &OrganizationServiceImpl{
		OrganizationRepository: organizations,
		memberships:            memberships,
		cache:                  expirable.NewLRU[string, organization.Settings](cacheSize, nil, cacheTTL),
		logger:                 logger,
	}
}

// ResolveMembership maps a verified user to one active membership. The
// requested organization must be one the user actively belongs to; with no
// request the user's first membership is used.
func (s *OrganizationServiceImpl) ResolveMembership(ctx context.Context, userID string, requestedOrganizationID string) (tenant.Membership, error) {
	if userID == "" {
		return tenant.Membership{}, tenant.ErrNoOrganization
	}
	if requestedOrganizationID != "" && !validator.IsValidUUID(requestedOrganizationID) {
		return tenant.Membership{}, tenant.ErrNoOrganization
	}

	member, err := s.memberships.FindActiveMembership(ctx, userID, requestedOrganizationID)
	if err != nil {
		if errors.Is(err, organization.ErrMembershipNotFound) {
			return tenant.Membership{}, tenant.ErrNoOrganization
		}
		return tenant.Membership{}, err
	}

	return tenant.Membership{
		OrganizationID: member.OrganizationID,
		MemberID:       member.ID,
		UserID:         member.UserID,
		Role:           member.Role,
	}, nil
}

// Settings implements organization.SettingsProvider with an expiring cache.
func (s *OrganizationServiceImpl) Settings(ctx context.Context, organizationID string) (organization.Settings, error) {
	if organizationID == "" {
		return organization.Settings{}, tenant.ErrNoOrganization
	}
	if settings, ok := s.cache.Get(organizationID); ok {
		return settings, nil
	}

	settings, err := s.OrganizationRepository.GetSettings(ctx, organizationID)
	if err != nil {
		return organization.Settings{}, err
	}

	// Stored values are trusted but a bad timezone must not break formatting
	if _, err := timefmt.Location(settings.Timezone); err != nil {
		s.logger.WarnContext(ctx, "organization has an unknown timezone, using UTC",
			"organization_id", organizationID,
			"timezone", settings.Timezone,
		)
		settings.Timezone = "UTC"
	}
	if _, err := timefmt.ParseTimeFormat(string(settings.TimeFormat)); err != nil {
		settings.TimeFormat = timefmt.Format24h
	}

	s.cache.Add(organizationID, settings)
	return settings, nil
}

func (s *OrganizationServiceImpl) GetSettings(ctx context.Context) (organization.SettingsResponse, error) {
	orgID, err := tenant.OrganizationID(ctx)
	if err != nil {
		return organization.SettingsResponse{}, err
	}
	settings, err := s.Settings(ctx, orgID)
	if err != nil {
		return organization.SettingsResponse{}, err
	}
	return organization.NewSettingsResponse(settings), nil
}

func (s *OrganizationServiceImpl) UpdateSettings(ctx context.Context, req organization.UpdateSettingsRequest) (organization.SettingsResponse, error) {
	if err := req.Validate(); err != nil {
		return organization.SettingsResponse{}, err
	}

	member, err := tenant.FromContext(ctx)
	if err != nil {
		return organization.SettingsResponse{}, err
	}

	format, err := timefmt.ParseTimeFormat(req.TimeFormat)
	if err != nil {
		return organization.SettingsResponse{}, validator.ValidationErrors{{Field: "time_format", Message: "time_format must be one of: 12h, 24h"}}
	}

	updated, err := s.OrganizationRepository.UpdateSettings(ctx, organization.Settings{
		OrganizationID: member.OrganizationID,
		Timezone:       req.Timezone,
		TimeFormat:     format,
	})
	if err != nil {
		return organization.SettingsResponse{}, err
	}

	s.cache.Remove(member.OrganizationID)
	s.logger.InfoContext(ctx, "organization settings updated",
		"organization_id", member.OrganizationID,
		"timezone", updated.Timezone,
		"time_format", updated.TimeFormat,
		"updated_by", member.MemberID,
	)

	return organization.NewSettingsResponse(updated), nil
}
