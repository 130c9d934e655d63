package dto

import (
	"github.com/spec-kit/training-service/internal/domain"
	"github.com/spec-kit/training-service/internal/service"
)

// UserCreateRequest payload for admin-created accounts.
type UserCreateRequest struct {
	Username     string  `json:"username" validate:"required,min=3,max=150"`
	Email        string  `json:"email" validate:"required,email"`
	FirstName    string  `json:"first_name" validate:"max=150"`
	LastName     string  `json:"last_name" validate:"max=150"`
	Password     string  `json:"password" validate:"required,min=8"`
	CompanyID    *string `json:"company_id" validate:"omitempty,uuid"`
	DepartmentID *string `json:"department_id" validate:"omitempty,uuid"`
	Role         *string `json:"role" validate:"omitempty,oneof=ADMIN MANAGER EMPLOYEE"`
}

// UserUpdateRequest payload for editing accounts.
type UserUpdateRequest struct {
	Username     string  `json:"username" validate:"required,min=3,max=150"`
	Email        string  `json:"email" validate:"required,email"`
	FirstName    string  `json:"first_name" validate:"max=150"`
	LastName     string  `json:"last_name" validate:"max=150"`
	CompanyID    *string `json:"company_id" validate:"omitempty,uuid"`
	DepartmentID *string `json:"department_id" validate:"omitempty,uuid"`
	Role         *string `json:"role" validate:"omitempty,oneof=ADMIN MANAGER EMPLOYEE"`
}

// SelfUpdateRequest payload for a user editing their own account.
type SelfUpdateRequest struct {
	FirstName string `json:"first_name" validate:"max=150"`
	LastName  string `json:"last_name" validate:"max=150"`
	Email     string `json:"email" validate:"required,email"`
}

// UserResponse is one account with its optional company assignment.
type UserResponse struct {
	ID           string  `json:"id"`
	Username     string  `json:"username"`
	Email        string  `json:"email"`
	FirstName    string  `json:"first_name"`
	LastName     string  `json:"last_name"`
	FullName     string  `json:"full_name"`
	IsSuperAdmin bool    `json:"is_super_admin"`
	CompanyID    *string `json:"company_id,omitempty"`
	DepartmentID *string `json:"department_id,omitempty"`
	Role         *string `json:"role,omitempty"`
}

// NewUserResponse maps an account and profile to the response shape.
func NewUserResponse(account domain.Account, profile *domain.UserProfile) UserResponse {
	resp := UserResponse{
		ID:           account.ID,
		Username:     account.Username,
		Email:        account.Email,
		FirstName:    account.FirstName,
		LastName:     account.LastName,
		FullName:     account.FullName(),
		IsSuperAdmin: account.IsSuperAdmin,
	}
	if profile != nil {
		resp.CompanyID = profile.CompanyID
		resp.DepartmentID = profile.DepartmentID
		if profile.Role != nil {
			role := string(*profile.Role)
			resp.Role = &role
		}
	}
	return resp
}

// NewUserListResponse maps a service listing.
func NewUserListResponse(items []service.UserWithProfile) []UserResponse {
	out := make([]UserResponse, 0, len(items))
	for _, item := range items {
		out = append(out, NewUserResponse(item.Account, item.Profile))
	}
	return out
}

// RoleFromString converts an optional role string to the domain type.
func RoleFromString(role *string) *domain.Role {
	if role == nil || *role == "" {
		return nil
	}
	r := domain.Role(*role)
	return &r
}
