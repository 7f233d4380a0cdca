package memory

import (
	"time"

	"github.com/vertragswerk/contracts-api/internal/domain/entity"
)

// Feste IDs, damit Clients und Tests reproduzierbar referenzieren können.
const (
	SeedCurrencyEUR   = "11111111-1111-1111-1111-111111111111"
	SeedMandant1      = "22222222-2222-2222-2222-222222222222"
	SeedGroupSK       = "33333333-3333-3333-3333-333333333333"
	SeedPriceTypeAP   = "44444444-4444-4444-4444-444444444444"
	SeedPriceTypeGP   = "44444444-4444-4444-4444-444444444445"
	SeedCustomerEVU   = "55555555-5555-5555-5555-555555555555"
	SeedCustomerStadt = "55555555-5555-5555-5555-555555555556"
)

// Seed befüllt die Kataloge mit den Stammdaten des Altbestands.
func (s *Store) Seed() {
	s.mu.Lock()
	defer s.mu.Unlock()

	audit := entity.Audit{
		CreatedAt: time.Now().UTC(),
		CreatedBy: "System",
		UpdatedAt: time.Now().UTC(),
		UpdatedBy: "System",
	}

	s.currencies[SeedCurrencyEUR] = &entity.Currency{
		ID: SeedCurrencyEUR, Code: "EUR", Name: "Euro", Symbol: "€", IsActive: true, Audit: audit,
	}

	s.mandants[SeedMandant1] = &entity.Mandant{
		ID: SeedMandant1, Code: "M1", Name: "Mandant 1", Description: "Hauptmandant", IsActive: true, Audit: audit,
	}

	s.groups[SeedGroupSK] = &entity.ContractGroup{
		ID: SeedGroupSK, Code: "SK", Name: "Sonderkunden", Description: "Vertrags-Sonderkunden EVU", IsActive: true, Audit: audit,
	}

	s.priceTypes[SeedPriceTypeAP] = &entity.PriceType{
		ID: SeedPriceTypeAP, Code: "AP", Name: "Arbeitspreis", Description: "Arbeitspreis pro kWh", DefaultUnit: "kWh", IsActive: true, Audit: audit,
	}
	s.priceTypes[SeedPriceTypeGP] = &entity.PriceType{
		ID: SeedPriceTypeGP, Code: "GP", Name: "Grundpreis", Description: "Monatlicher Grundpreis", DefaultUnit: "Monat", IsActive: true, Audit: audit,
	}

	s.customers[SeedCustomerEVU] = &entity.Customer{
		ID:             SeedCustomerEVU,
		CustomerNumber: "K-12345",
		Name:           "EVU Musterkunde GmbH",
		Address:        "Musterstraße 123",
		PostalCode:     "12345",
		City:           "Musterstadt",
		Email:          "kontakt@evu-musterkunde.de",
		Phone:          "+49 123 456789",
		IsActive:       true,
		Audit:          audit,
	}
	s.customers[SeedCustomerStadt] = &entity.Customer{
		ID:             SeedCustomerStadt,
		CustomerNumber: "K-67890",
		Name:           "Stadtwerke Beispielstadt AG",
		Address:        "Energieweg 45",
		PostalCode:     "67890",
		City:           "Beispielstadt",
		Email:          "info@stadtwerke-beispiel.de",
		Phone:          "+49 987 654321",
		IsActive:       true,
		Audit:          audit,
	}
}
