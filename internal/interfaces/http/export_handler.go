package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/vertragswerk/contracts-api/internal/application/dto"
	"github.com/vertragswerk/contracts-api/internal/application/usecase"
)

// ExportHandler Downloads: Datenblatt (PDF), Liste (Excel), ERP-Dokument (XML).
type ExportHandler struct {
	uc *usecase.ExportUseCase
}

// NewExportHandler baut den Handler.
func NewExportHandler(uc *usecase.ExportUseCase) *ExportHandler {
	return &ExportHandler{uc: uc}
}

// DataSheetPDF godoc
// @Summary      Vertragsdatenblatt als PDF
// @Tags         exports
// @Produce      application/pdf
// @Param        id  path  string  true  "Vertrags-ID"
// @Success      200  {file}    file
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/contracts/{id}/datasheet.pdf [get]
func (h *ExportHandler) DataSheetPDF(c *fiber.Ctx) error {
	data, filename, err := h.uc.DataSheetPDF(c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return sendDownload(c, data, filename, "application/pdf")
}

// ListExcel godoc
// @Summary      Gefilterte Vertragsliste als Excel
// @Tags         exports
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        search  query  string  false  "Teilstring über Vertragsnummer, Kundenname, Kundennummer"
// @Param        status  query  int     false  "Exakter Status (0-4)"
// @Success      200  {file}    file
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/contracts/export.xlsx [get]
func (h *ExportHandler) ListExcel(c *fiber.Ctx) error {
	status, err := parseStatusQuery(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	data, filename, err := h.uc.ListExcel(c.Query("search"), status)
	if err != nil {
		return writeError(c, err)
	}
	return sendDownload(c, data, filename, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
}

// ERPDocumentXML godoc
// @Summary      ERP-Übergabedokument eines Vertrags als XML
// @Tags         exports
// @Produce      application/xml
// @Param        id  path  string  true  "Vertrags-ID"
// @Success      200  {file}    file
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/contracts/{id}/erp.xml [get]
func (h *ExportHandler) ERPDocumentXML(c *fiber.Ctx) error {
	data, filename, err := h.uc.ERPDocumentXML(c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return sendDownload(c, data, filename, "application/xml")
}

func sendDownload(c *fiber.Ctx, data []byte, filename, contentType string) error {
	c.Set(fiber.HeaderContentType, contentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename=%q`, filename))
	return c.Send(data)
}
