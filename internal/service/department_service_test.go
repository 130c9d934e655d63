package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/training-service/internal/auth"
	"github.com/spec-kit/training-service/internal/domain"
	"github.com/spec-kit/training-service/internal/events"
	"github.com/spec-kit/training-service/pkg/util/errorutil"
)

func departmentFixture(t *testing.T) (*DepartmentService, *fakeDepartmentRepo, *captureDispatcher) {
	t.Helper()
	repo := newFakeDepartmentRepo()
	dispatcher := &captureDispatcher{}
	return NewDepartmentService(repo, dispatcher), repo, dispatcher
}

func departmentActor() *auth.Principal {
	role := domain.RoleAdmin
	return testPrincipal(
		domain.Account{ID: "acct-1", Username: "admin"},
		&domain.UserProfile{CompanyID: strPtr("c1"), Role: &role},
	)
}

func TestDepartmentCreate(t *testing.T) {
	svc, _, dispatcher := departmentFixture(t)

	dept, err := svc.Create(context.Background(), departmentActor(), DepartmentInput{
		Name:        "  Engineering  ",
		Description: "builds things",
		CompanyID:   "c1",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, dept.ID)
	assert.Equal(t, "Engineering", dept.Name)

	require.Len(t, dispatcher.published, 1)
	assert.Equal(t, events.EventDepartmentCreated, dispatcher.published[0].Type)
}

func TestDepartmentCreateDuplicateNameConflicts(t *testing.T) {
	svc, _, dispatcher := departmentFixture(t)
	actor := departmentActor()

	_, err := svc.Create(context.Background(), actor, DepartmentInput{Name: "Engineering", CompanyID: "c1"})
	require.NoError(t, err)
	dispatcher.published = nil

	_, err = svc.Create(context.Background(), actor, DepartmentInput{Name: "Engineering", CompanyID: "c1"})
	require.Error(t, err)
	var domainErr *errorutil.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "CONFLICT", domainErr.Code)
	assert.Equal(t, "departments_name_company_id_key", domainErr.Details["constraint"])
	assert.Empty(t, dispatcher.published)

	// The same name is fine in another company.
	_, err = svc.Create(context.Background(), actor, DepartmentInput{Name: "Engineering", CompanyID: "c2"})
	require.NoError(t, err)
}

func TestDepartmentCreateRequiresName(t *testing.T) {
	svc, _, _ := departmentFixture(t)

	_, err := svc.Create(context.Background(), departmentActor(), DepartmentInput{Name: "   ", CompanyID: "c1"})
	require.Error(t, err)
	var domainErr *errorutil.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "VALIDATION_FAILED", domainErr.Code)
}
