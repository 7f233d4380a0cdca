package usecase

import (
	"fmt"
	"unicode/utf8"

	"github.com/vertragswerk/contracts-api/internal/application/dto"
	"github.com/vertragswerk/contracts-api/internal/domain"
	"github.com/vertragswerk/contracts-api/internal/domain/entity"
	"github.com/vertragswerk/contracts-api/internal/domain/repository"
)

const (
	maxContractNumberLen = 50
	maxResponsibleLen    = 100
	maxNotesLen          = 2000
	maxNoticePeriod      = 120
)

// ValidationRules optionale Invarianten, die der Altbestand nie serverseitig
// geprüft hat. Konfigurierbar statt stillschweigend verschärft.
type ValidationRules struct {
	// DateRange: Vertragsbeginn vor Vertragsende, Ende Pflicht bei befristeten Verträgen.
	DateRange bool
	// PriceOverlap: keine überlappenden Gültigkeitsfenster je Preisart am selben Vertrag.
	PriceOverlap bool
}

// ContractValidator prüft Verträge vor jedem Schreibvorgang gegen den aktuellen
// Stand des Stores. Reine Prüfung ohne Seiteneffekte; die eigentliche Mutation
// macht der Aufrufer erst nach sauberem Ergebnis.
type ContractValidator struct {
	contracts  repository.ContractRepository
	customers  repository.CustomerRepository
	mandants   repository.MandantRepository
	groups     repository.ContractGroupRepository
	currencies repository.CurrencyRepository
	priceTypes repository.PriceTypeRepository
	rules      ValidationRules
}

// NewContractValidator baut den Prüfer.
func NewContractValidator(
	contracts repository.ContractRepository,
	customers repository.CustomerRepository,
	mandants repository.MandantRepository,
	groups repository.ContractGroupRepository,
	currencies repository.CurrencyRepository,
	priceTypes repository.PriceTypeRepository,
	rules ValidationRules,
) *ContractValidator {
	return &ContractValidator{
		contracts:  contracts,
		customers:  customers,
		mandants:   mandants,
		groups:     groups,
		currencies: currencies,
		priceTypes: priceTypes,
		rules:      rules,
	}
}

// ValidateCreate prüft eine Neuanlage. Rückgabe nil oder *domain.ValidationError.
func (v *ContractValidator) ValidateCreate(in dto.ContractInput) error {
	ve := domain.NewValidationError()
	v.checkInput(in, ve)
	if in.ContractNumber != "" {
		if err := v.checkNumberFree(in.ContractNumber, "", ve); err != nil {
			return err
		}
	}
	if err := v.checkReferences(in, ve); err != nil {
		return err
	}
	return ve.ErrOrNil()
}

// ValidateUpdate prüft eine Aktualisierung. Die Vertragsnummer wird nur bei
// Änderung erneut auf Eindeutigkeit geprüft.
func (v *ContractValidator) ValidateUpdate(existing *entity.Contract, in dto.ContractInput) error {
	ve := domain.NewValidationError()
	v.checkInput(in, ve)
	if in.ContractNumber != "" && in.ContractNumber != existing.ContractNumber {
		if err := v.checkNumberFree(in.ContractNumber, existing.ID, ve); err != nil {
			return err
		}
	}
	if err := v.checkReferences(in, ve); err != nil {
		return err
	}
	return ve.ErrOrNil()
}

func (v *ContractValidator) checkInput(in dto.ContractInput, ve *domain.ValidationError) {
	// Längen zählen Zeichen, nicht Bytes; Umlaute dürfen das Limit nicht verkürzen.
	if in.ContractNumber == "" {
		ve.Add("contractNumber", "Vertragsnummer ist erforderlich")
	} else if utf8.RuneCountInString(in.ContractNumber) > maxContractNumberLen {
		ve.Add("contractNumber", "Vertragsnummer darf maximal 50 Zeichen lang sein")
	}
	if in.CustomerID == "" {
		ve.Add("customerId", "Kunde ist erforderlich")
	}
	if in.MandantID == "" {
		ve.Add("mandantId", "Mandant ist erforderlich")
	}
	if in.ContractGroupID == "" {
		ve.Add("contractGroupId", "Vertragsgruppe ist erforderlich")
	}
	if in.CurrencyID == "" {
		ve.Add("currencyId", "Währung ist erforderlich")
	}
	if !entity.ContractType(in.ContractType).Valid() {
		ve.Add("contractType", fmt.Sprintf("Unbekannte Vertragsart %d", in.ContractType))
	}
	if in.Status != nil && !entity.ContractStatus(*in.Status).Valid() {
		ve.Add("status", fmt.Sprintf("Unbekannter Status %d", *in.Status))
	}
	if in.StartDate.IsZero() {
		ve.Add("startDate", "Vertragsbeginn ist erforderlich")
	}
	if in.BillingStartDate.IsZero() {
		ve.Add("billingStartDate", "Abrechnungsbeginn ist erforderlich")
	}
	if in.NoticePeriodMonths < 0 || in.NoticePeriodMonths > maxNoticePeriod {
		ve.Add("noticePeriodMonths", "Kündigungsfrist muss zwischen 0 und 120 Monaten liegen")
	}
	if utf8.RuneCountInString(in.ResponsibleSales) > maxResponsibleLen {
		ve.Add("responsibleSales", "Maximal 100 Zeichen")
	}
	if utf8.RuneCountInString(in.ResponsibleAccounting) > maxResponsibleLen {
		ve.Add("responsibleAccounting", "Maximal 100 Zeichen")
	}
	if utf8.RuneCountInString(in.ResponsiblePricing) > maxResponsibleLen {
		ve.Add("responsiblePricing", "Maximal 100 Zeichen")
	}
	if utf8.RuneCountInString(in.Notes) > maxNotesLen {
		ve.Add("notes", "Bemerkungen dürfen maximal 2000 Zeichen lang sein")
	}
	if v.rules.DateRange {
		if !in.IsUnlimited && in.EndDate == nil {
			ve.Add("endDate", "Vertragsende ist bei befristeten Verträgen erforderlich")
		}
		if in.EndDate != nil && !in.StartDate.Before(*in.EndDate) {
			ve.Add("endDate", "Vertragsende muss nach dem Vertragsbeginn liegen")
		}
	}
}

// checkNumberFree Vorab-Prüfung auf Dubletten für eine sprechende Meldung.
// Der Unique-Index im Store bleibt die eigentliche Absicherung.
func (v *ContractValidator) checkNumberFree(number, excludeID string, ve *domain.ValidationError) error {
	other, err := v.contracts.GetByNumber(number)
	if err != nil {
		return fmt.Errorf("vertragsnummer prüfen: %w", err)
	}
	if other != nil && other.ID != excludeID {
		ve.Add("contractNumber", fmt.Sprintf("Vertragsnummer %s existiert bereits", number))
	}
	return nil
}

func (v *ContractValidator) checkReferences(in dto.ContractInput, ve *domain.ValidationError) error {
	if in.CustomerID != "" {
		ok, err := v.customers.Exists(in.CustomerID)
		if err != nil {
			return fmt.Errorf("kunde prüfen: %w", err)
		}
		if !ok {
			ve.Add("customerId", "Kunde nicht gefunden")
		}
	}
	if in.MandantID != "" {
		ok, err := v.mandants.Exists(in.MandantID)
		if err != nil {
			return fmt.Errorf("mandant prüfen: %w", err)
		}
		if !ok {
			ve.Add("mandantId", "Mandant nicht gefunden")
		}
	}
	if in.ContractGroupID != "" {
		ok, err := v.groups.Exists(in.ContractGroupID)
		if err != nil {
			return fmt.Errorf("vertragsgruppe prüfen: %w", err)
		}
		if !ok {
			ve.Add("contractGroupId", "Vertragsgruppe nicht gefunden")
		}
	}
	if in.CurrencyID != "" {
		ok, err := v.currencies.Exists(in.CurrencyID)
		if err != nil {
			return fmt.Errorf("währung prüfen: %w", err)
		}
		if !ok {
			ve.Add("currencyId", "Währung nicht gefunden")
		}
	}
	return nil
}

// ValidatePrices prüft die komplette Preisliste eines Vertrags vor dem Ersetzen.
func (v *ContractValidator) ValidatePrices(inputs []dto.ContractPriceInput) error {
	ve := domain.NewValidationError()
	for i, in := range inputs {
		field := fmt.Sprintf("prices[%d]", i)
		if in.PriceTypeID == "" {
			ve.Add(field+".priceTypeId", "Preisart ist erforderlich")
		} else {
			ok, err := v.priceTypes.Exists(in.PriceTypeID)
			if err != nil {
				return fmt.Errorf("preisart prüfen: %w", err)
			}
			if !ok {
				ve.Add(field+".priceTypeId", "Preisart nicht gefunden")
			}
		}
		if in.ValidFrom.IsZero() {
			ve.Add(field+".validFrom", "Gültig-ab ist erforderlich")
		}
		if in.Amount.IsNegative() {
			ve.Add(field+".amount", "Betrag darf nicht negativ sein")
		}
	}
	if v.rules.PriceOverlap {
		v.checkPriceOverlap(inputs, ve)
	}
	return ve.ErrOrNil()
}

func (v *ContractValidator) checkPriceOverlap(inputs []dto.ContractPriceInput, ve *domain.ValidationError) {
	for i := range inputs {
		for j := i + 1; j < len(inputs); j++ {
			if inputs[i].PriceTypeID == "" || inputs[i].PriceTypeID != inputs[j].PriceTypeID {
				continue
			}
			a := entity.ContractPrice{ValidFrom: inputs[i].ValidFrom, ValidTo: inputs[i].ValidTo}
			b := entity.ContractPrice{ValidFrom: inputs[j].ValidFrom, ValidTo: inputs[j].ValidTo}
			if a.Overlaps(b) {
				ve.Add(fmt.Sprintf("prices[%d].validFrom", j),
					"Gültigkeitszeitraum überschneidet sich mit einem Preis derselben Preisart")
			}
		}
	}
}

// ValidateContractCustomers prüft die Kundenzuordnungen eines Vertrags.
func (v *ContractValidator) ValidateContractCustomers(inputs []dto.ContractCustomerInput) error {
	ve := domain.NewValidationError()
	for i, in := range inputs {
		field := fmt.Sprintf("contractCustomers[%d]", i)
		if in.CustomerID == "" {
			ve.Add(field+".customerId", "Kunde ist erforderlich")
		} else {
			ok, err := v.customers.Exists(in.CustomerID)
			if err != nil {
				return fmt.Errorf("kunde prüfen: %w", err)
			}
			if !ok {
				ve.Add(field+".customerId", "Kunde nicht gefunden")
			}
		}
		if !entity.ContractCustomerRole(in.Role).Valid() {
			ve.Add(field+".role", fmt.Sprintf("Unbekannte Rolle %d", in.Role))
		}
		if in.AdvancePaymentAmount.IsNegative() {
			ve.Add(field+".advancePaymentAmount", "Abschlagsbetrag darf nicht negativ sein")
		}
		if in.AdvancePaymentCycle < 1 {
			ve.Add(field+".advancePaymentCycle", "Abschlagszyklus muss mindestens 1 Monat sein")
		}
	}
	return ve.ErrOrNil()
}
