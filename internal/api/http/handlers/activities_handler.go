package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/training-service/internal/api/dto"
	"github.com/spec-kit/training-service/internal/service"
)

// ActivitiesHandler exposes the notification feed endpoints.
type ActivitiesHandler struct {
	activities *service.ActivityService
}

// NewActivitiesHandler constructs handler.
func NewActivitiesHandler(activities *service.ActivityService) *ActivitiesHandler {
	return &ActivitiesHandler{activities: activities}
}

// List handles GET /recent-activities. Fetching the feed marks it read.
func (h *ActivitiesHandler) List(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	limit, offset := pagination(c)
	items, err := h.activities.List(c.UserContext(), p.Account.ID, limit, offset)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewActivityListResponse(items)})
}

// UnreadCount handles GET /notifications/count.
func (h *ActivitiesHandler) UnreadCount(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	count, err := h.activities.UnreadToday(c.UserContext(), p.Account.ID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"unread_today": count}})
}
