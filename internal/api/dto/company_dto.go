package dto

import (
	"time"

	"github.com/spec-kit/training-service/internal/domain"
)

// CompanyRequest payload for creating or updating a company.
type CompanyRequest struct {
	Name     string `json:"name" validate:"required,max=255"`
	LogoPath string `json:"logo_path" validate:"max=500"`
}

// CompanyResponse is one company.
type CompanyResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	LogoPath  string    `json:"logo_path,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// NewCompanyResponse maps a domain company.
func NewCompanyResponse(c domain.Company) CompanyResponse {
	return CompanyResponse{ID: c.ID, Name: c.Name, LogoPath: c.LogoPath, CreatedAt: c.CreatedAt}
}

// DepartmentRequest payload for departments.
type DepartmentRequest struct {
	Name        string `json:"name" validate:"required,max=255"`
	Description string `json:"description" validate:"max=1000"`
	CompanyID   string `json:"company_id" validate:"omitempty,uuid"`
}

// DepartmentResponse is one department.
type DepartmentResponse struct {
	ID          string    `json:"id"`
	CompanyID   string    `json:"company_id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// NewDepartmentResponse maps a domain department.
func NewDepartmentResponse(d domain.Department) DepartmentResponse {
	return DepartmentResponse{
		ID:          d.ID,
		CompanyID:   d.CompanyID,
		Name:        d.Name,
		Description: d.Description,
		CreatedAt:   d.CreatedAt,
	}
}
