package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/training-service/internal/access"
	"github.com/spec-kit/training-service/internal/api/dto"
	"github.com/spec-kit/training-service/internal/service"
)

// CompaniesHandler exposes tenant company endpoints.
type CompaniesHandler struct {
	companies *service.CompanyService
}

// NewCompaniesHandler constructs handler.
func NewCompaniesHandler(companies *service.CompanyService) *CompaniesHandler {
	return &CompaniesHandler{companies: companies}
}

// List handles GET /companies. Members see only their own company.
func (h *CompaniesHandler) List(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	if p.Account.IsSuperAdmin {
		items, err := h.companies.List(c.UserContext())
		if err != nil {
			return err
		}
		out := make([]dto.CompanyResponse, 0, len(items))
		for _, item := range items {
			out = append(out, dto.NewCompanyResponse(item))
		}
		return c.JSON(fiber.Map{"data": out})
	}

	own := p.CompanyID()
	if own == nil {
		return c.JSON(fiber.Map{"data": []dto.CompanyResponse{}})
	}
	if err := authorize(p, access.ActionViewCompany, access.Target{CompanyID: *own}); err != nil {
		return err
	}
	company, err := h.companies.Get(c.UserContext(), *own)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": []dto.CompanyResponse{dto.NewCompanyResponse(*company)}})
}

// Get handles GET /companies/:id.
func (h *CompaniesHandler) Get(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	if err := authorize(p, access.ActionViewCompany, access.Target{CompanyID: c.Params("id")}); err != nil {
		return err
	}
	company, err := h.companies.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewCompanyResponse(*company)})
}

// Create handles POST /companies.
func (h *CompaniesHandler) Create(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	if err := authorize(p, access.ActionCreateCompany, access.Target{}); err != nil {
		return err
	}
	var req dto.CompanyRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if err := dto.Validate(req); err != nil {
		return err
	}
	company, err := h.companies.Create(c.UserContext(), p, req.Name, req.LogoPath)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewCompanyResponse(*company)})
}

// Update handles PUT /companies/:id.
func (h *CompaniesHandler) Update(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	if err := authorize(p, access.ActionEditCompany, access.Target{CompanyID: c.Params("id")}); err != nil {
		return err
	}
	var req dto.CompanyRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if err := dto.Validate(req); err != nil {
		return err
	}
	company, err := h.companies.Update(c.UserContext(), p, c.Params("id"), req.Name, req.LogoPath)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewCompanyResponse(*company)})
}

// Delete handles DELETE /companies/:id.
func (h *CompaniesHandler) Delete(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	if err := authorize(p, access.ActionDeleteCompany, access.Target{CompanyID: c.Params("id")}); err != nil {
		return err
	}
	if err := h.companies.Delete(c.UserContext(), p, c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"message": "company deleted"}})
}
