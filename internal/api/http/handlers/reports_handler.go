package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/training-service/internal/access"
	"github.com/spec-kit/training-service/internal/service"
	"github.com/spec-kit/training-service/pkg/util/errorutil"
)

// ReportsHandler exposes session export and import endpoints.
type ReportsHandler struct {
	reports *service.ReportService
}

// NewReportsHandler constructs handler.
func NewReportsHandler(reports *service.ReportService) *ReportsHandler {
	return &ReportsHandler{reports: reports}
}

// ExportXLSX handles GET /export-sessions.
func (h *ReportsHandler) ExportXLSX(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	scope := companyScope(c, p)
	target := access.Target{}
	if scope != nil {
		target.CompanyID = *scope
	}
	if err := authorize(p, access.ActionExportSessions, target); err != nil {
		return err
	}
	data, filename, err := h.reports.ExportXLSX(c.UserContext(), p, scope)
	if err != nil {
		return err
	}
	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(data)
}

// ExportPDF handles GET /export-sessions-pdf.
func (h *ReportsHandler) ExportPDF(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	scope := companyScope(c, p)
	target := access.Target{}
	if scope != nil {
		target.CompanyID = *scope
	}
	if err := authorize(p, access.ActionExportSessions, target); err != nil {
		return err
	}
	data, filename, err := h.reports.ExportPDF(c.UserContext(), p, scope)
	if err != nil {
		return err
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(data)
}

// ImportXLSX handles POST /import-sessions with a multipart "file" part.
func (h *ReportsHandler) ImportXLSX(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	companyID, err := requireMemberCompany(p, c.Query("company_id"))
	if err != nil {
		return err
	}
	if err := authorize(p, access.ActionImportSessions, access.Target{CompanyID: companyID}); err != nil {
		return err
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return fiber.NewError(http.StatusBadRequest, "file upload required")
	}
	file, err := fileHeader.Open()
	if err != nil {
		return errorutil.NewValidationError("could not open uploaded file", nil)
	}
	defer file.Close()

	summary, err := h.reports.ImportXLSX(c.UserContext(), p, file, companyID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"data": fiber.Map{
			"created": summary.Created,
			"updated": summary.Updated,
			"skipped": summary.Skipped,
		},
	})
}
