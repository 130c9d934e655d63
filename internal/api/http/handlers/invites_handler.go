package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/training-service/internal/access"
	"github.com/spec-kit/training-service/internal/api/dto"
	"github.com/spec-kit/training-service/internal/service"
)

// InvitesHandler exposes admin invitation endpoints.
type InvitesHandler struct {
	invites *service.InviteService
}

// NewInvitesHandler constructs handler.
func NewInvitesHandler(invites *service.InviteService) *InvitesHandler {
	return &InvitesHandler{invites: invites}
}

// Invite handles POST /invite-admin.
func (h *InvitesHandler) Invite(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	var req dto.InviteAdminRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if err := dto.Validate(req); err != nil {
		return err
	}
	if err := authorize(p, access.ActionInviteAdmin, access.Target{CompanyID: req.CompanyID}); err != nil {
		return err
	}
	invite, err := h.invites.Invite(c.UserContext(), p, req.Email, req.CompanyID)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"data": fiber.Map{
			"email":      invite.Email,
			"company_id": invite.CompanyID,
			"expires_at": invite.ExpiresAt,
		},
	})
}

// Accept handles POST /accept-invite. The token authenticates the
// caller, so the route is public.
func (h *InvitesHandler) Accept(c *fiber.Ctx) error {
	var req dto.AcceptInviteRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if err := dto.Validate(req); err != nil {
		return err
	}
	account, err := h.invites.Accept(c.UserContext(), service.AcceptInviteInput{
		Token:     req.Token,
		Username:  req.Username,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Password:  req.Password,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"data": fiber.Map{
			"id":       account.ID,
			"username": account.Username,
			"email":    account.Email,
		},
	})
}
