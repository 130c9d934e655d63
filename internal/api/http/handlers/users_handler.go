package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/training-service/internal/access"
	"github.com/spec-kit/training-service/internal/api/dto"
	"github.com/spec-kit/training-service/internal/domain"
	"github.com/spec-kit/training-service/internal/repository"
	"github.com/spec-kit/training-service/internal/service"
)

// UsersHandler exposes account management endpoints.
type UsersHandler struct {
	users *service.UserService
}

// NewUsersHandler constructs handler.
func NewUsersHandler(users *service.UserService) *UsersHandler {
	return &UsersHandler{users: users}
}

// Create handles POST /users.
func (h *UsersHandler) Create(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	var req dto.UserCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	target := access.Target{}
	if req.CompanyID != nil {
		target.CompanyID = *req.CompanyID
	}
	if role := dto.RoleFromString(req.Role); role != nil {
		target.AssignRole = *role
	}
	if err := authorize(p, access.ActionCreateUser, target); err != nil {
		return err
	}

	account, err := h.users.Create(c.UserContext(), p, service.UserCreateInput{
		Username:     req.Username,
		Email:        req.Email,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Password:     req.Password,
		CompanyID:    req.CompanyID,
		DepartmentID: req.DepartmentID,
		Role:         dto.RoleFromString(req.Role),
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"data": dto.NewUserResponse(*account, &domain.UserProfile{
			AccountID:    account.ID,
			CompanyID:    req.CompanyID,
			DepartmentID: req.DepartmentID,
			Role:         dto.RoleFromString(req.Role),
		}),
	})
}

// List handles GET /users.
func (h *UsersHandler) List(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	scope := companyScope(c, p)
	target := access.Target{}
	if scope != nil {
		target.CompanyID = *scope
	}
	if err := authorize(p, access.ActionViewUsers, target); err != nil {
		return err
	}

	limit, offset := pagination(c)
	filter := repository.AccountFilter{CompanyID: scope, Limit: limit, Offset: offset}
	if dept := c.Query("department_id"); dept != "" {
		filter.DepartmentID = &dept
	}
	items, total, err := h.users.List(c.UserContext(), filter)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"data": dto.NewUserListResponse(items),
		"meta": fiber.Map{"total": total, "limit": limit, "offset": offset},
	})
}

// Get handles GET /users/:id.
func (h *UsersHandler) Get(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	item, err := h.users.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	target := access.Target{OwnerID: item.Account.ID}
	if item.Profile != nil && item.Profile.CompanyID != nil {
		target.CompanyID = *item.Profile.CompanyID
	}
	if p.Account.ID != item.Account.ID {
		if err := authorize(p, access.ActionViewUsers, target); err != nil {
			return err
		}
	}
	return c.JSON(fiber.Map{"data": dto.NewUserResponse(item.Account, item.Profile)})
}

// Update handles PUT /users/:id.
func (h *UsersHandler) Update(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	var req dto.UserUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	item, err := h.users.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}

	// Authorization runs against the profile on record, never against
	// whatever company the request body claims; otherwise a company admin
	// could edit a foreign user by naming their own company.
	target := access.Target{OwnerID: item.Account.ID}
	if item.Profile != nil && item.Profile.CompanyID != nil {
		target.CompanyID = *item.Profile.CompanyID
	}
	if role := dto.RoleFromString(req.Role); role != nil {
		target.AssignRole = *role
	}
	if err := authorize(p, access.ActionEditUser, target); err != nil {
		return err
	}
	if req.CompanyID != nil && *req.CompanyID != target.CompanyID {
		// Moving the user also needs edit rights in the destination company.
		dest := target
		dest.CompanyID = *req.CompanyID
		if err := authorize(p, access.ActionEditUser, dest); err != nil {
			return err
		}
	}

	account, err := h.users.Update(c.UserContext(), p, c.Params("id"), service.UserUpdateInput{
		Username:     req.Username,
		Email:        req.Email,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		CompanyID:    req.CompanyID,
		DepartmentID: req.DepartmentID,
		Role:         dto.RoleFromString(req.Role),
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"data": dto.NewUserResponse(*account, &domain.UserProfile{
			AccountID:    account.ID,
			CompanyID:    req.CompanyID,
			DepartmentID: req.DepartmentID,
			Role:         dto.RoleFromString(req.Role),
		}),
	})
}

// UpdateSelf handles PUT /me.
func (h *UsersHandler) UpdateSelf(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	var req dto.SelfUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if err := dto.Validate(req); err != nil {
		return err
	}
	account, err := h.users.UpdateSelf(c.UserContext(), p, req.FirstName, req.LastName, req.Email)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewUserResponse(*account, p.Profile)})
}

// Me handles GET /me.
func (h *UsersHandler) Me(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewUserResponse(*p.Account, p.Profile)})
}

// Delete handles DELETE /users/:id.
func (h *UsersHandler) Delete(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	item, err := h.users.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	target := access.Target{OwnerID: item.Account.ID}
	if item.Profile != nil && item.Profile.CompanyID != nil {
		target.CompanyID = *item.Profile.CompanyID
	}
	if err := authorize(p, access.ActionDeleteUser, target); err != nil {
		return err
	}
	if err := h.users.Delete(c.UserContext(), p, c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"message": "user deleted"}})
}
