package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/training-service/internal/auth"
	"github.com/spec-kit/training-service/internal/domain"
	"github.com/spec-kit/training-service/internal/events"
	"github.com/spec-kit/training-service/internal/repository"
	"github.com/spec-kit/training-service/pkg/util/errorutil"
)

// DepartmentService manages company departments.
type DepartmentService struct {
	departments repository.DepartmentRepository
	dispatcher  events.Dispatcher
}

// NewDepartmentService builds the service.
func NewDepartmentService(departments repository.DepartmentRepository, dispatcher events.Dispatcher) *DepartmentService {
	return &DepartmentService{departments: departments, dispatcher: dispatcher}
}

// DepartmentInput describes a create or update request.
type DepartmentInput struct {
	Name        string
	Description string
	CompanyID   string
}

// Create adds a department. Duplicate names within a company surface as
// a conflict from the unique constraint.
func (s *DepartmentService) Create(ctx context.Context, actor *auth.Principal, input DepartmentInput) (*domain.Department, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, errorutil.NewValidationError("department name is required", nil)
	}
	dept := &domain.Department{
		CompanyID:   input.CompanyID,
		Name:        name,
		Description: strings.TrimSpace(input.Description),
	}
	if err := s.departments.Create(ctx, dept); err != nil {
		return nil, errorutil.MapError(err)
	}
	s.announce(ctx, actor, events.EventDepartmentCreated, domain.ActionCreate,
		"Created department '"+dept.Name+"'.", dept)
	return dept, nil
}

// Update edits a department's name and description.
func (s *DepartmentService) Update(ctx context.Context, actor *auth.Principal, id string, input DepartmentInput) (*domain.Department, error) {
	dept, err := s.departments.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, errorutil.NewValidationError("department name is required", nil)
	}
	dept.Name = name
	dept.Description = strings.TrimSpace(input.Description)
	if err := s.departments.Update(ctx, dept); err != nil {
		return nil, errorutil.MapError(err)
	}
	s.announce(ctx, actor, events.EventDepartmentUpdated, domain.ActionUpdate,
		"Updated department '"+dept.Name+"'.", dept)
	return dept, nil
}

// Delete removes a department.
func (s *DepartmentService) Delete(ctx context.Context, actor *auth.Principal, id string) error {
	dept, err := s.departments.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.departments.Delete(ctx, id); err != nil {
		return err
	}
	s.announce(ctx, actor, events.EventDepartmentDeleted, domain.ActionDelete,
		"Deleted department '"+dept.Name+"'.", dept)
	return nil
}

// Get returns one department.
func (s *DepartmentService) Get(ctx context.Context, id string) (*domain.Department, error) {
	return s.departments.GetByID(ctx, id)
}

// List returns departments, company-scoped when companyID is set.
func (s *DepartmentService) List(ctx context.Context, companyID *string) ([]domain.Department, error) {
	return s.departments.List(ctx, companyID)
}

func (s *DepartmentService) announce(ctx context.Context, actor *auth.Principal, eventType events.EventType, action domain.ActivityAction, description string, dept *domain.Department) {
	companyID := dept.CompanyID
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:           uuid.NewString(),
		Type:         eventType,
		Actor:        actor.Account,
		ActorCompany: actor.CompanyID(),
		CompanyID:    &companyID,
		Action:       action,
		Description:  description,
		Details: map[string]any{
			"department_id": dept.ID,
			"name":          dept.Name,
		},
		Timestamp: time.Now(),
	})
}
