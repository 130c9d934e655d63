package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/training-service/internal/access"
	"github.com/spec-kit/training-service/internal/api/dto"
	"github.com/spec-kit/training-service/internal/service"
)

// DepartmentsHandler exposes department endpoints.
type DepartmentsHandler struct {
	departments *service.DepartmentService
}

// NewDepartmentsHandler constructs handler.
func NewDepartmentsHandler(departments *service.DepartmentService) *DepartmentsHandler {
	return &DepartmentsHandler{departments: departments}
}

// List handles GET /departments.
func (h *DepartmentsHandler) List(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	scope := companyScope(c, p)
	target := access.Target{}
	if scope != nil {
		target.CompanyID = *scope
	}
	if err := authorize(p, access.ActionViewDepartment, target); err != nil {
		return err
	}
	items, err := h.departments.List(c.UserContext(), scope)
	if err != nil {
		return err
	}
	out := make([]dto.DepartmentResponse, 0, len(items))
	for _, item := range items {
		out = append(out, dto.NewDepartmentResponse(item))
	}
	return c.JSON(fiber.Map{"data": out})
}

// Create handles POST /departments.
func (h *DepartmentsHandler) Create(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	var req dto.DepartmentRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if err := dto.Validate(req); err != nil {
		return err
	}
	companyID, err := requireMemberCompany(p, req.CompanyID)
	if err != nil {
		return err
	}
	if err := authorize(p, access.ActionCreateDepartment, access.Target{CompanyID: companyID}); err != nil {
		return err
	}
	dept, err := h.departments.Create(c.UserContext(), p, service.DepartmentInput{
		Name:        req.Name,
		Description: req.Description,
		CompanyID:   companyID,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewDepartmentResponse(*dept)})
}

// Update handles PUT /departments/:id.
func (h *DepartmentsHandler) Update(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	var req dto.DepartmentRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if err := dto.Validate(req); err != nil {
		return err
	}
	dept, err := h.departments.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	if err := authorize(p, access.ActionEditDepartment, access.Target{CompanyID: dept.CompanyID}); err != nil {
		return err
	}
	updated, err := h.departments.Update(c.UserContext(), p, dept.ID, service.DepartmentInput{
		Name:        req.Name,
		Description: req.Description,
		CompanyID:   dept.CompanyID,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewDepartmentResponse(*updated)})
}

// Delete handles DELETE /departments/:id.
func (h *DepartmentsHandler) Delete(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	dept, err := h.departments.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	if err := authorize(p, access.ActionDeleteDepartment, access.Target{CompanyID: dept.CompanyID}); err != nil {
		return err
	}
	if err := h.departments.Delete(c.UserContext(), p, dept.ID); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"message": "department deleted"}})
}
