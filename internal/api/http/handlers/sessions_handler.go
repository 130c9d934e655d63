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

// SessionsHandler exposes training session endpoints.
type SessionsHandler struct {
	sessions *service.SessionService
}

// NewSessionsHandler constructs handler.
func NewSessionsHandler(sessions *service.SessionService) *SessionsHandler {
	return &SessionsHandler{sessions: sessions}
}

// Dashboard handles GET /dashboard.
func (h *SessionsHandler) Dashboard(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	scope := companyScope(c, p)
	target := access.Target{}
	if scope != nil {
		target.CompanyID = *scope
	}
	if err := authorize(p, access.ActionViewSessions, target); err != nil {
		return err
	}
	stats, err := h.sessions.Dashboard(c.UserContext(), scope)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewDashboardResponse(*stats)})
}

// List handles GET /sessions with search, status filter and pagination.
func (h *SessionsHandler) List(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	scope := companyScope(c, p)
	target := access.Target{}
	if scope != nil {
		target.CompanyID = *scope
	}
	if err := authorize(p, access.ActionViewSessions, target); err != nil {
		return err
	}

	limit, offset := pagination(c)
	filter := repository.SessionFilter{
		CompanyID:  scope,
		SortByDate: c.Query("sort") == "date",
		SortDesc:   c.Query("order") == "desc",
		Limit:      limit,
		Offset:     offset,
	}
	if q := c.Query("q"); q != "" {
		filter.SearchTerm = &q
	}
	if status := c.Query("status"); status != "" {
		filter.Statuses = []domain.SessionStatus{domain.SessionStatus(status)}
	}
	items, total, err := h.sessions.List(c.UserContext(), filter)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"data": dto.NewSessionListResponse(items),
		"meta": fiber.Map{"total": total, "limit": limit, "offset": offset},
	})
}

// Create handles POST /sessions.
func (h *SessionsHandler) Create(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	var req dto.SessionRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if err := dto.Validate(req); err != nil {
		return err
	}
	if err := authorize(p, access.ActionCreateSession, access.Target{CompanyID: req.CompanyID}); err != nil {
		return err
	}
	session, err := h.sessions.Create(c.UserContext(), p, req.ToInput())
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewSessionResponse(*session)})
}

// Get handles GET /sessions/:id.
func (h *SessionsHandler) Get(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	session, err := h.sessions.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	if err := authorize(p, access.ActionViewSessions, access.Target{CompanyID: session.CompanyID}); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewSessionResponse(*session)})
}

// Update handles PUT /sessions/:id.
func (h *SessionsHandler) Update(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	var req dto.SessionRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if err := dto.Validate(req); err != nil {
		return err
	}
	session, err := h.sessions.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	if err := authorize(p, access.ActionEditSession, access.Target{
		CompanyID: session.CompanyID,
		OwnerID:   session.ConductedBy,
	}); err != nil {
		return err
	}
	updated, err := h.sessions.Update(c.UserContext(), p, session.ID, req.ToInput())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewSessionResponse(*updated)})
}

// Delete handles DELETE /sessions/:id.
func (h *SessionsHandler) Delete(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	session, err := h.sessions.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	if err := authorize(p, access.ActionDeleteSession, access.Target{
		CompanyID: session.CompanyID,
		OwnerID:   session.ConductedBy,
	}); err != nil {
		return err
	}
	if err := h.sessions.Delete(c.UserContext(), p, session.ID); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"message": "session deleted"}})
}
