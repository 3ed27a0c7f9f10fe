package response

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cmlabs-hris/attendance-reporting-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-reporting-go/internal/domain/auth"
	"github.com/cmlabs-hris/attendance-reporting-go/internal/domain/organization"
	"github.com/cmlabs-hris/attendance-reporting-go/internal/domain/user"
	"github.com/cmlabs-hris/attendance-reporting-go/internal/pkg/database"
	"github.com/cmlabs-hris/attendance-reporting-go/internal/pkg/tenant"
	"github.com/cmlabs-hris/attendance-reporting-go/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, rec *httptest.ResponseRecorder) Response {
	t.Helper()
	var body Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestSuccessWithMeta(t *testing.T) {
	rec := httptest.NewRecorder()
	SuccessWithMeta(rec, []string{"a"}, &Meta{Page: 1, Limit: 20, TotalItems: 1, TotalPages: 1})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Empty(t, rec.Header().Get("Cache-Control"))
	assert.JSONEq(t, `{"success":true,"data":["a"],"meta":{"page":1,"limit":20,"totalItems":1,"totalPages":1}}`, rec.Body.String())
}

func TestHandleError(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"validation", validator.ValidationErrors{{Field: "status", Message: "invalid"}}, http.StatusUnprocessableEntity, "VALIDATION_ERROR"},
		{"no organization", tenant.ErrNoOrganization, http.StatusUnauthorized, "UNAUTHORIZED"},
		{"bad credentials", auth.ErrInvalidCredentials, http.StatusUnauthorized, "UNAUTHORIZED"},
		{"bad token", auth.ErrInvalidToken, http.StatusUnauthorized, "UNAUTHORIZED"},
		{"forbidden", user.ErrInsufficientPermissions, http.StatusForbidden, "FORBIDDEN"},
		{"record missing", fmt.Errorf("failed to update: %w", attendance.ErrRecordNotFound), http.StatusNotFound, "NOT_FOUND"},
		{"organization missing", organization.ErrOrganizationNotFound, http.StatusNotFound, "NOT_FOUND"},
		{"export too large", attendance.ErrExportTooLarge, http.StatusBadRequest, "BAD_REQUEST"},
		{"query failure", database.QueryFailure("list", errors.New("relation does not exist")), http.StatusInternalServerError, "INTERNAL_SERVER_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			rec.Header().Set("Cache-Control", "public, max-age=300")

			HandleError(rec, tt.err)

			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, "no-store", rec.Header().Get("Cache-Control"))
			body := decode(t, rec)
			assert.False(t, body.Success)
			assert.NotEmpty(t, body.Message)
			require.NotNil(t, body.Error)
			assert.Equal(t, tt.code, body.Error.Code)
		})
	}
}

func TestHandleError_HidesInternalDetails(t *testing.T) {
	rec := httptest.NewRecorder()
	HandleError(rec, database.QueryFailure("count", errors.New("password authentication failed for user app")))

	assert.NotContains(t, rec.Body.String(), "password")
	assert.Equal(t, "An unexpected error occurred", decode(t, rec).Message)
}

func TestHandleError_ValidationDetails(t *testing.T) {
	rec := httptest.NewRecorder()
	HandleError(rec, validator.ValidationErrors{{Field: "dateTo", Message: "dateTo must not be before dateFrom"}})

	body := decode(t, rec)
	assert.Equal(t, map[string]string{"dateTo": "dateTo must not be before dateFrom"}, body.Error.Details)
}

func TestHandleError_Canceled(t *testing.T) {
	rec := httptest.NewRecorder()
	HandleError(rec, context.Canceled)
	assert.Zero(t, rec.Body.Len())
}
