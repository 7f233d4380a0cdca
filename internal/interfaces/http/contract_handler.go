package http

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/vertragswerk/contracts-api/internal/application/dto"
	"github.com/vertragswerk/contracts-api/internal/application/usecase"
	"github.com/vertragswerk/contracts-api/internal/domain"
	"github.com/vertragswerk/contracts-api/internal/domain/entity"
)

// ContractHandler HTTP-Endpunkte für das Vertragsaggregat.
type ContractHandler struct {
	uc *usecase.ContractUseCase
}

// NewContractHandler baut den Handler.
func NewContractHandler(uc *usecase.ContractUseCase) *ContractHandler {
	return &ContractHandler{uc: uc}
}

// List godoc
// @Summary      Verträge listen (Suche, Statusfilter, Paginierung)
// @Tags         contracts
// @Produce      json
// @Param        search    query  string  false  "Teilstring über Vertragsnummer, Kundenname, Kundennummer"
// @Param        status    query  int     false  "Exakter Status (0-4)"
// @Param        page      query  int     false  "Seite (1-basiert)"  default(1)
// @Param        pageSize  query  int     false  "Seitengröße"        default(25)
// @Success      200  {array}   dto.ContractResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Header       200  {integer}  X-Total-Count  "Gesamtzahl vor Paginierung"
// @Router       /api/contracts [get]
func (h *ContractHandler) List(c *fiber.Ctx) error {
	search := c.Query("search")
	status, err := parseStatusQuery(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	page := dto.PageRequest{
		Page:     c.QueryInt("page", 0),
		PageSize: c.QueryInt("pageSize", 0),
	}
	h.uc.NormalizePage(&page)

	items, total, err := h.uc.List(search, status, page)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}

	c.Set("X-Total-Count", strconv.Itoa(total))
	c.Set("X-Page", strconv.Itoa(page.Page))
	c.Set("X-Page-Size", strconv.Itoa(page.PageSize))
	return c.JSON(items)
}

// GetByID godoc
// @Summary      Vertrag lesen (inkl. Preise und Vertragskunden)
// @Tags         contracts
// @Produce      json
// @Param        id   path  string  true  "Vertrags-ID"
// @Success      200  {object}  dto.ContractResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/contracts/{id} [get]
func (h *ContractHandler) GetByID(c *fiber.Ctx) error {
	id := c.Params("id")
	out, err := h.uc.GetByID(id)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	if out == nil {
		return notFound(c)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Vertrag anlegen
// @Tags         contracts
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ContractInput  true  "Vertragsdaten"
// @Success      201   {object}  dto.ContractResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/contracts [post]
func (h *ContractHandler) Create(c *fiber.Ctx) error {
	var in dto.ContractInput
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Create(GetActor(c), in)
	if err != nil {
		return writeError(c, err)
	}
	c.Set("Location", fmt.Sprintf("/api/contracts/%s", out.ID))
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update godoc
// @Summary      Vertrag aktualisieren (vollständiger Ersatz)
// @Tags         contracts
// @Accept       json
// @Produce      json
// @Param        id    path  string             true  "Vertrags-ID"
// @Param        body  body  dto.ContractInput  true  "Vertragsdaten"
// @Success      200   {object}  dto.ContractResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/contracts/{id} [put]
func (h *ContractHandler) Update(c *fiber.Ctx) error {
	id := c.Params("id")
	var in dto.ContractInput
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Update(GetActor(c), id, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Vertrag löschen (Preise und Vertragskunden kaskadieren)
// @Tags         contracts
// @Param        id  path  string  true  "Vertrags-ID"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/contracts/{id} [delete]
func (h *ContractHandler) Delete(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := h.uc.Delete(id); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// SetPrices godoc
// @Summary      Preisliste eines Vertrags komplett ersetzen
// @Tags         contracts
// @Accept       json
// @Produce      json
// @Param        id    path  string                   true  "Vertrags-ID"
// @Param        body  body  []dto.ContractPriceInput true  "Neue Preisliste"
// @Success      200   {object}  dto.ContractResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/contracts/{id}/prices [put]
func (h *ContractHandler) SetPrices(c *fiber.Ctx) error {
	id := c.Params("id")
	var in []dto.ContractPriceInput
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.SetPrices(GetActor(c), id, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// SetContractCustomers godoc
// @Summary      Vertragskunden eines Vertrags komplett ersetzen
// @Tags         contracts
// @Accept       json
// @Produce      json
// @Param        id    path  string                      true  "Vertrags-ID"
// @Param        body  body  []dto.ContractCustomerInput true  "Neue Zuordnungen"
// @Success      200   {object}  dto.ContractResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/contracts/{id}/contract-customers [put]
func (h *ContractHandler) SetContractCustomers(c *fiber.Ctx) error {
	id := c.Params("id")
	var in []dto.ContractCustomerInput
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.SetContractCustomers(GetActor(c), id, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// parseStatusQuery liest den optionalen Statusfilter; unbekannte Werte sind 400.
func parseStatusQuery(c *fiber.Ctx) (*entity.ContractStatus, error) {
	raw := c.Query("status")
	if raw == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return nil, fmt.Errorf("status muss eine Zahl sein")
	}
	status := entity.ContractStatus(n)
	if !status.Valid() {
		return nil, fmt.Errorf("unbekannter Status %d", n)
	}
	return &status, nil
}

// writeError übersetzt Anwendungsfehler in HTTP-Antworten.
func writeError(c *fiber.Ctx, err error) error {
	if ve, ok := domain.AsValidationError(err); ok {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code:    "VALIDATION",
			Message: "Eingabe ungültig",
			Fields:  ve.Fields,
		})
	}
	if errors.Is(err, domain.ErrNotFound) {
		return notFound(c)
	}
	if errors.Is(err, domain.ErrInUse) {
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "IN_USE", Message: "Datensatz wird noch verwendet"})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}

func notFound(c *fiber.Ctx) error {
	return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "Vertrag nicht gefunden"})
}

func invalidBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "ungültiger Anfragekörper"})
}
