package usecase

import (
	"fmt"

	"github.com/vertragswerk/contracts-api/internal/application/dto"
	"github.com/vertragswerk/contracts-api/internal/domain/entity"
	"github.com/vertragswerk/contracts-api/internal/domain/repository"
)

// LookupUseCase liefert die Katalogdaten für Dropdowns sowie die statischen
// Enum-Listen. Nur aktive Katalogeinträge werden angeboten.
type LookupUseCase struct {
	customers  repository.CustomerRepository
	mandants   repository.MandantRepository
	groups     repository.ContractGroupRepository
	currencies repository.CurrencyRepository
	priceTypes repository.PriceTypeRepository
}

// NewLookupUseCase baut den Anwendungsfall.
func NewLookupUseCase(
	customers repository.CustomerRepository,
	mandants repository.MandantRepository,
	groups repository.ContractGroupRepository,
	currencies repository.CurrencyRepository,
	priceTypes repository.PriceTypeRepository,
) *LookupUseCase {
	return &LookupUseCase{
		customers:  customers,
		mandants:   mandants,
		groups:     groups,
		currencies: currencies,
		priceTypes: priceTypes,
	}
}

func display(code, name string) string {
	return fmt.Sprintf("%s - %s", code, name)
}

// Customers aktive Kunden, Display = "Kundennummer - Name".
func (uc *LookupUseCase) Customers() ([]dto.LookupItem, error) {
	list, err := uc.customers.ListActive()
	if err != nil {
		return nil, fmt.Errorf("kunden listen: %w", err)
	}
	out := make([]dto.LookupItem, 0, len(list))
	for _, c := range list {
		out = append(out, dto.LookupItem{
			ID:      c.ID,
			Code:    c.CustomerNumber,
			Name:    c.Name,
			Display: display(c.CustomerNumber, c.Name),
		})
	}
	return out, nil
}

// Mandants aktive Mandanten.
func (uc *LookupUseCase) Mandants() ([]dto.LookupItem, error) {
	list, err := uc.mandants.ListActive()
	if err != nil {
		return nil, fmt.Errorf("mandanten listen: %w", err)
	}
	out := make([]dto.LookupItem, 0, len(list))
	for _, m := range list {
		out = append(out, dto.LookupItem{ID: m.ID, Code: m.Code, Name: m.Name, Display: display(m.Code, m.Name)})
	}
	return out, nil
}

// ContractGroups aktive Vertragsgruppen.
func (uc *LookupUseCase) ContractGroups() ([]dto.LookupItem, error) {
	list, err := uc.groups.ListActive()
	if err != nil {
		return nil, fmt.Errorf("vertragsgruppen listen: %w", err)
	}
	out := make([]dto.LookupItem, 0, len(list))
	for _, g := range list {
		out = append(out, dto.LookupItem{ID: g.ID, Code: g.Code, Name: g.Name, Display: display(g.Code, g.Name)})
	}
	return out, nil
}

// Currencies aktive Währungen inkl. Symbol.
func (uc *LookupUseCase) Currencies() ([]dto.CurrencyLookupItem, error) {
	list, err := uc.currencies.ListActive()
	if err != nil {
		return nil, fmt.Errorf("währungen listen: %w", err)
	}
	out := make([]dto.CurrencyLookupItem, 0, len(list))
	for _, c := range list {
		out = append(out, dto.CurrencyLookupItem{
			LookupItem: dto.LookupItem{ID: c.ID, Code: c.Code, Name: c.Name, Display: display(c.Code, c.Name)},
			Symbol:     c.Symbol,
		})
	}
	return out, nil
}

// PriceTypes aktive Preisarten inkl. Standard-Einheit.
func (uc *LookupUseCase) PriceTypes() ([]dto.PriceTypeLookupItem, error) {
	list, err := uc.priceTypes.ListActive()
	if err != nil {
		return nil, fmt.Errorf("preisarten listen: %w", err)
	}
	out := make([]dto.PriceTypeLookupItem, 0, len(list))
	for _, pt := range list {
		out = append(out, dto.PriceTypeLookupItem{
			LookupItem:  dto.LookupItem{ID: pt.ID, Code: pt.Code, Name: pt.Name, Display: display(pt.Code, pt.Name)},
			DefaultUnit: pt.DefaultUnit,
		})
	}
	return out, nil
}

// ContractStatuses statische Liste der Status-Werte mit deutschen Labels.
func (uc *LookupUseCase) ContractStatuses() []dto.EnumItem {
	statuses := entity.AllContractStatuses()
	out := make([]dto.EnumItem, 0, len(statuses))
	for _, s := range statuses {
		out = append(out, dto.EnumItem{Value: int(s), Display: s.Label()})
	}
	return out
}

// ContractTypes statische Liste der Vertragsarten.
func (uc *LookupUseCase) ContractTypes() []dto.EnumItem {
	types := entity.AllContractTypes()
	out := make([]dto.EnumItem, 0, len(types))
	for _, t := range types {
		out = append(out, dto.EnumItem{Value: int(t), Display: t.Label()})
	}
	return out
}
