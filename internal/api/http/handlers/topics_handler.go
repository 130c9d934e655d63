package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/training-service/internal/access"
	"github.com/spec-kit/training-service/internal/api/dto"
	"github.com/spec-kit/training-service/internal/service"
)

// TopicsHandler exposes external learning topic endpoints.
type TopicsHandler struct {
	topics *service.TopicService
}

// NewTopicsHandler constructs handler.
func NewTopicsHandler(topics *service.TopicService) *TopicsHandler {
	return &TopicsHandler{topics: topics}
}

// List handles GET /topics, the learning view feed.
func (h *TopicsHandler) List(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	scope := companyScope(c, p)
	target := access.Target{}
	if scope != nil {
		target.CompanyID = *scope
	}
	if err := authorize(p, access.ActionViewTopics, target); err != nil {
		return err
	}
	limit, offset := pagination(c)
	items, err := h.topics.List(c.UserContext(), scope, limit, offset)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewTopicListResponse(items)})
}

// Create handles POST /topics.
func (h *TopicsHandler) Create(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	var req dto.TopicRequest
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
	if err := authorize(p, access.ActionCreateTopic, access.Target{CompanyID: companyID}); err != nil {
		return err
	}
	topic, err := h.topics.Create(c.UserContext(), p, service.TopicInput{
		Title:     req.Title,
		URL:       req.URL,
		CompanyID: companyID,
		IsActive:  req.IsActive,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewTopicResponse(*topic)})
}

// Update handles PUT /topics/:id.
func (h *TopicsHandler) Update(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	var req dto.TopicRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if err := dto.Validate(req); err != nil {
		return err
	}
	topic, err := h.topics.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	if err := authorize(p, access.ActionEditTopic, access.Target{CompanyID: topic.CompanyID}); err != nil {
		return err
	}
	updated, err := h.topics.Update(c.UserContext(), p, topic.ID, service.TopicInput{
		Title:     req.Title,
		URL:       req.URL,
		CompanyID: topic.CompanyID,
		IsActive:  req.IsActive,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewTopicResponse(*updated)})
}

// Delete handles DELETE /topics/:id.
func (h *TopicsHandler) Delete(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	topic, err := h.topics.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	if err := authorize(p, access.ActionDeleteTopic, access.Target{CompanyID: topic.CompanyID}); err != nil {
		return err
	}
	if err := h.topics.Delete(c.UserContext(), p, topic.ID); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"message": "topic deleted"}})
}
