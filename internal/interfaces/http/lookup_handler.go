package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/vertragswerk/contracts-api/internal/application/dto"
	"github.com/vertragswerk/contracts-api/internal/application/usecase"
)

// LookupHandler liefert die Auswahllisten für die Vertragserfassung.
type LookupHandler struct {
	uc *usecase.LookupUseCase
}

// NewLookupHandler baut den Handler.
func NewLookupHandler(uc *usecase.LookupUseCase) *LookupHandler {
	return &LookupHandler{uc: uc}
}

// Customers godoc
// @Summary      Aktive Kunden für Dropdowns
// @Tags         lookups
// @Produce      json
// @Success      200  {array}  dto.LookupItem
// @Router       /api/lookups/customers [get]
func (h *LookupHandler) Customers(c *fiber.Ctx) error {
	out, err := h.uc.Customers()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// Mandants godoc
// @Summary      Aktive Mandanten für Dropdowns
// @Tags         lookups
// @Produce      json
// @Success      200  {array}  dto.LookupItem
// @Router       /api/lookups/mandants [get]
func (h *LookupHandler) Mandants(c *fiber.Ctx) error {
	out, err := h.uc.Mandants()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// ContractGroups godoc
// @Summary      Aktive Vertragsgruppen für Dropdowns
// @Tags         lookups
// @Produce      json
// @Success      200  {array}  dto.LookupItem
// @Router       /api/lookups/contract-groups [get]
func (h *LookupHandler) ContractGroups(c *fiber.Ctx) error {
	out, err := h.uc.ContractGroups()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// Currencies godoc
// @Summary      Aktive Währungen für Dropdowns
// @Tags         lookups
// @Produce      json
// @Success      200  {array}  dto.CurrencyLookupItem
// @Router       /api/lookups/currencies [get]
func (h *LookupHandler) Currencies(c *fiber.Ctx) error {
	out, err := h.uc.Currencies()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// PriceTypes godoc
// @Summary      Aktive Preisarten für Dropdowns
// @Tags         lookups
// @Produce      json
// @Success      200  {array}  dto.PriceTypeLookupItem
// @Router       /api/lookups/price-types [get]
func (h *LookupHandler) PriceTypes(c *fiber.Ctx) error {
	out, err := h.uc.PriceTypes()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// ContractStatuses godoc
// @Summary      Vertragsstatus-Werte mit Anzeigetext
// @Tags         lookups
// @Produce      json
// @Success      200  {array}  dto.EnumItem
// @Router       /api/lookups/contract-statuses [get]
func (h *LookupHandler) ContractStatuses(c *fiber.Ctx) error {
	return c.JSON(h.uc.ContractStatuses())
}

// ContractTypes godoc
// @Summary      Vertragsarten mit Anzeigetext
// @Tags         lookups
// @Produce      json
// @Success      200  {array}  dto.EnumItem
// @Router       /api/lookups/contract-types [get]
func (h *LookupHandler) ContractTypes(c *fiber.Ctx) error {
	return c.JSON(h.uc.ContractTypes())
}
