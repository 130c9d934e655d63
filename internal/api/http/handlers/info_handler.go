package handlers

import (
	"fmt"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/training-service/internal/api/dto"
	"github.com/spec-kit/training-service/internal/config"
	"github.com/spec-kit/training-service/internal/mailer"
)

// faqEntries is the static help content served to every user.
var faqEntries = []fiber.Map{
	{
		"question": "How do I schedule a training session?",
		"answer":   "Open Sessions and choose Add Session. Pick a topic, a conductor from your company and a date.",
	},
	{
		"question": "Why can I not see sessions from another company?",
		"answer":   "Sessions are scoped to your company. Only platform administrators see every company.",
	},
	{
		"question": "How do I cancel a session?",
		"answer":   "Edit the session, set its status to Cancelled and provide a cancellation reason.",
	},
	{
		"question": "How do session imports work?",
		"answer":   "Upload a spreadsheet with the standard columns. Rows with unknown assignees or bad dates are skipped and reported.",
	},
}

// InfoHandler serves the FAQ and the support contact form.
type InfoHandler struct {
	mail         mailer.Mailer
	supportInbox string
}

// NewInfoHandler constructs handler.
func NewInfoHandler(cfg config.MailConfig, mail mailer.Mailer) *InfoHandler {
	return &InfoHandler{mail: mail, supportInbox: cfg.SupportInbox}
}

// FAQ handles GET /faq.
func (h *InfoHandler) FAQ(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"data": faqEntries})
}

// SupportRequest payload for the support form.
type SupportRequest struct {
	Subject string `json:"subject" validate:"required,max=255"`
	Message string `json:"message" validate:"required,max=5000"`
}

// Support handles POST /support by forwarding the message to the
// configured support inbox.
func (h *InfoHandler) Support(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	var req SupportRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	body := fmt.Sprintf("From: %s (%s)\n\n%s", p.Account.FullName(), p.Account.Email, req.Message)
	if err := h.mail.Send(c.UserContext(), mailer.Message{
		To:      h.supportInbox,
		Subject: "[support] " + req.Subject,
		Body:    body,
	}); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"message": "support request sent"}})
}
