package handlers

import (
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/spec-kit/training-service/internal/access"
	"github.com/spec-kit/training-service/internal/api/dto"
	"github.com/spec-kit/training-service/internal/config"
	"github.com/spec-kit/training-service/internal/service"
)

// BrandingHandler exposes the install branding profile and the setup
// checklist.
type BrandingHandler struct {
	branding *service.BrandingService
	uploads  config.UploadConfig
}

// NewBrandingHandler constructs handler.
func NewBrandingHandler(branding *service.BrandingService, uploads config.UploadConfig) *BrandingHandler {
	return &BrandingHandler{branding: branding, uploads: uploads}
}

// GetProfile handles GET /company-profile.
func (h *BrandingHandler) GetProfile(c *fiber.Ctx) error {
	if _, err := principal(c); err != nil {
		return err
	}
	profile, err := h.branding.Profile(c.UserContext())
	if err != nil {
		return err
	}
	if profile == nil {
		return c.JSON(fiber.Map{"data": nil})
	}
	return c.JSON(fiber.Map{"data": dto.NewBrandingResponse(*profile)})
}

// SaveProfile handles PUT /company-profile.
func (h *BrandingHandler) SaveProfile(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	if err := authorize(p, access.ActionEditBranding, access.Target{}); err != nil {
		return err
	}
	var req dto.BrandingRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if err := dto.Validate(req); err != nil {
		return err
	}
	profile, err := h.branding.SaveProfile(c.UserContext(), p, service.BrandingInput{
		DisplayName:  req.DisplayName,
		LogoPath:     req.LogoPath,
		SupportEmail: req.SupportEmail,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewBrandingResponse(*profile)})
}

// UploadLogo handles PUT /company-profile/logo. The file lands under the
// configured uploads directory with a random name; only the stored path
// goes into the database.
func (h *BrandingHandler) UploadLogo(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	if err := authorize(p, access.ActionEditBranding, access.Target{}); err != nil {
		return err
	}
	file, err := c.FormFile("logo")
	if err != nil {
		return fiber.NewError(http.StatusBadRequest, "logo file is required")
	}
	if h.uploads.MaxSizeByte > 0 && file.Size > h.uploads.MaxSizeByte {
		return fiber.NewError(http.StatusRequestEntityTooLarge, "logo file too large")
	}
	ext := strings.ToLower(filepath.Ext(file.Filename))
	switch ext {
	case ".png", ".jpg", ".jpeg", ".svg":
	default:
		return fiber.NewError(http.StatusBadRequest, "unsupported logo format")
	}

	path := filepath.Join(h.uploads.Dir, uuid.NewString()+ext)
	if err := c.SaveFile(file, path); err != nil {
		return err
	}
	profile, err := h.branding.SaveLogo(c.UserContext(), path)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewBrandingResponse(*profile)})
}

// Checklist handles GET /setup-checklist.
func (h *BrandingHandler) Checklist(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	if err := authorize(p, access.ActionViewChecklist, access.Target{}); err != nil {
		return err
	}
	items, err := h.branding.Checklist(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewChecklistResponse(items)})
}

// ToggleChecklist handles PUT /setup-checklist/:id.
func (h *BrandingHandler) ToggleChecklist(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	if err := authorize(p, access.ActionEditBranding, access.Target{}); err != nil {
		return err
	}
	var req dto.ChecklistToggleRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if err := h.branding.SetChecklistDone(c.UserContext(), c.Params("id"), req.Done); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"message": "checklist updated"}})
}
