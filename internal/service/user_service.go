package service

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/training-service/internal/activity"
	"github.com/spec-kit/training-service/internal/auth"
	"github.com/spec-kit/training-service/internal/config"
	"github.com/spec-kit/training-service/internal/domain"
	"github.com/spec-kit/training-service/internal/repository"
	"github.com/spec-kit/training-service/pkg/util/errorutil"
)

// UserService manages accounts and their company profiles.
type UserService struct {
	accounts    repository.AccountRepository
	departments repository.DepartmentRepository
	activities  *activity.Logger
	bcryptCost  int
}

// UserDependencies bundles requirements for the user service.
type UserDependencies struct {
	AccountRepo    repository.AccountRepository
	DepartmentRepo repository.DepartmentRepository
	Activities     *activity.Logger
}

// UserCreateInput describes an admin-created account.
type UserCreateInput struct {
	Username     string
	Email        string
	FirstName    string
	LastName     string
	Password     string
	CompanyID    *string
	DepartmentID *string
	Role         *domain.Role
}

// UserUpdateInput describes editable account fields.
type UserUpdateInput struct {
	Username     string
	Email        string
	FirstName    string
	LastName     string
	CompanyID    *string
	DepartmentID *string
	Role         *domain.Role
}

// UserWithProfile pairs an account with its optional profile for listings.
type UserWithProfile struct {
	Account domain.Account
	Profile *domain.UserProfile
}

// NewUserService builds the service.
func NewUserService(cfg config.Config, deps UserDependencies) *UserService {
	return &UserService{
		accounts:    deps.AccountRepo,
		departments: deps.DepartmentRepo,
		activities:  deps.Activities,
		bcryptCost:  cfg.Auth.BcryptCost,
	}
}

// Create registers a new account with its profile and notifies the
// actor's audience.
func (s *UserService) Create(ctx context.Context, actor *auth.Principal, input UserCreateInput) (*domain.Account, error) {
	if _, err := s.accounts.GetByUsername(ctx, input.Username); err == nil {
		return nil, errorutil.NewConflict("username already taken", map[string]any{"username": input.Username})
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}
	if input.DepartmentID != nil {
		dept, err := s.departments.GetByID(ctx, *input.DepartmentID)
		if err != nil {
			return nil, err
		}
		if input.CompanyID != nil && dept.CompanyID != *input.CompanyID {
			return nil, errorutil.NewValidationError("department does not belong to the selected company", nil)
		}
	}

	hash, err := auth.HashPassword(input.Password, s.bcryptCost)
	if err != nil {
		return nil, err
	}
	account := &domain.Account{
		Username:     strings.TrimSpace(input.Username),
		Email:        strings.TrimSpace(input.Email),
		FirstName:    strings.TrimSpace(input.FirstName),
		LastName:     strings.TrimSpace(input.LastName),
		PasswordHash: hash,
	}
	if err := s.accounts.Create(ctx, account); err != nil {
		return nil, err
	}
	profile := &domain.UserProfile{
		AccountID:    account.ID,
		CompanyID:    input.CompanyID,
		DepartmentID: input.DepartmentID,
		Role:         input.Role,
	}
	if err := s.accounts.UpsertProfile(ctx, profile); err != nil {
		return nil, err
	}

	s.activities.Log(ctx, activity.Entry{
		Actor:         actor.Account,
		ActorCompany:  actor.CompanyID(),
		Action:        domain.ActionCreate,
		Description:   "Admin added new user '" + account.Username + "'.",
		TargetUserIDs: s.memberIDs(ctx, input.CompanyID),
		CompanyID:     input.CompanyID,
	})
	return account, nil
}

// Update edits an account and its profile; the edited user alone is
// notified.
func (s *UserService) Update(ctx context.Context, actor *auth.Principal, accountID string, input UserUpdateInput) (*domain.Account, error) {
	account, err := s.accounts.GetByID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	account.Username = strings.TrimSpace(input.Username)
	account.Email = strings.TrimSpace(input.Email)
	account.FirstName = strings.TrimSpace(input.FirstName)
	account.LastName = strings.TrimSpace(input.LastName)
	if err := s.accounts.Update(ctx, account); err != nil {
		return nil, err
	}
	profile := &domain.UserProfile{
		AccountID:    account.ID,
		CompanyID:    input.CompanyID,
		DepartmentID: input.DepartmentID,
		Role:         input.Role,
	}
	if err := s.accounts.UpsertProfile(ctx, profile); err != nil {
		return nil, err
	}

	s.activities.Log(ctx, activity.Entry{
		Actor:         actor.Account,
		ActorCompany:  actor.CompanyID(),
		Action:        domain.ActionUpdate,
		Description:   "Admin edited your profile.",
		EditedUser:    account,
		EditedCompany: input.CompanyID,
	})
	return account, nil
}

// UpdateSelf lets a user edit their own name and email.
func (s *UserService) UpdateSelf(ctx context.Context, actor *auth.Principal, firstName, lastName, email string) (*domain.Account, error) {
	account, err := s.accounts.GetByID(ctx, actor.Account.ID)
	if err != nil {
		return nil, err
	}
	account.FirstName = strings.TrimSpace(firstName)
	account.LastName = strings.TrimSpace(lastName)
	account.Email = strings.TrimSpace(email)
	if err := s.accounts.Update(ctx, account); err != nil {
		return nil, err
	}
	s.activities.Log(ctx, activity.Entry{
		Actor:        account,
		ActorCompany: actor.CompanyID(),
		Action:       domain.ActionUpdate,
		Description:  "Updated their profile.",
	})
	return account, nil
}

// Delete removes an account. Super-admin accounts cannot be deleted.
func (s *UserService) Delete(ctx context.Context, actor *auth.Principal, accountID string) error {
	account, err := s.accounts.GetByID(ctx, accountID)
	if err != nil {
		return err
	}
	if account.IsSuperAdmin {
		return errorutil.NewForbidden("super admin accounts cannot be deleted")
	}
	var company *string
	if profile, err := s.accounts.GetProfile(ctx, accountID); err == nil && profile != nil {
		company = profile.CompanyID
	}
	if err := s.accounts.Delete(ctx, accountID); err != nil {
		return err
	}
	s.activities.Log(ctx, activity.Entry{
		Actor:         actor.Account,
		ActorCompany:  actor.CompanyID(),
		Action:        domain.ActionDelete,
		Description:   "Admin deleted user '" + account.Username + "'.",
		TargetUserIDs: s.memberIDs(ctx, company),
		CompanyID:     company,
	})
	return nil
}

// Get returns one account with its profile.
func (s *UserService) Get(ctx context.Context, accountID string) (*UserWithProfile, error) {
	account, err := s.accounts.GetByID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	out := &UserWithProfile{Account: *account}
	profile, err := s.accounts.GetProfile(ctx, accountID)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}
	out.Profile = profile
	return out, nil
}

// List returns accounts with profiles, filtered and paginated.
func (s *UserService) List(ctx context.Context, filter repository.AccountFilter) ([]UserWithProfile, int, error) {
	accounts, err := s.accounts.List(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.accounts.Count(ctx, repository.AccountFilter{
		CompanyID:    filter.CompanyID,
		DepartmentID: filter.DepartmentID,
	})
	if err != nil {
		return nil, 0, err
	}
	result := make([]UserWithProfile, 0, len(accounts))
	for i := range accounts {
		item := UserWithProfile{Account: accounts[i]}
		profile, err := s.accounts.GetProfile(ctx, accounts[i].ID)
		if err != nil && !errors.Is(err, pgx.ErrNoRows) {
			return nil, 0, err
		}
		item.Profile = profile
		result = append(result, item)
	}
	return result, total, nil
}

// memberIDs lists non-super-admin accounts, optionally company-scoped,
// as the notification audience for super-admin actions.
func (s *UserService) memberIDs(ctx context.Context, companyID *string) []string {
	accounts, err := s.accounts.List(ctx, repository.AccountFilter{CompanyID: companyID})
	if err != nil {
		return nil
	}
	ids := make([]string, 0, len(accounts))
	for _, account := range accounts {
		if account.IsSuperAdmin {
			continue
		}
		ids = append(ids, account.ID)
	}
	return ids
}
