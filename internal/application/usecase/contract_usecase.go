package usecase

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/vertragswerk/contracts-api/internal/application/dto"
	"github.com/vertragswerk/contracts-api/internal/domain"
	"github.com/vertragswerk/contracts-api/internal/domain/entity"
	"github.com/vertragswerk/contracts-api/internal/domain/repository"
)

// PageDefaults Seitengrößen für die Vertragsliste.
type PageDefaults struct {
	Default int
	Max     int
}

// ContractUseCase Anwendungsfälle rund um das Vertragsaggregat. Die Akteurs-
// Identität wird bei jeder Mutation explizit mitgegeben, kein globaler
// "aktueller Benutzer".
type ContractUseCase struct {
	repo      repository.ContractRepository
	validator *ContractValidator
	pages     PageDefaults
}

// NewContractUseCase baut den Anwendungsfall.
func NewContractUseCase(repo repository.ContractRepository, validator *ContractValidator, pages PageDefaults) *ContractUseCase {
	if pages.Default <= 0 {
		pages.Default = 25
	}
	return &ContractUseCase{repo: repo, validator: validator, pages: pages}
}

// NormalizePage wendet die konfigurierten Seitengrenzen an. Idempotent; List
// normalisiert ebenfalls, die Handler brauchen die Werte aber für die Header.
func (uc *ContractUseCase) NormalizePage(p *dto.PageRequest) {
	p.Normalize(uc.pages.Default, uc.pages.Max)
}

// Create legt einen Vertrag an: erst Prüfung, dann Mutation, dann das
// aufgelöste Lesemodell als Antwort. Status-Default ist Aktiv.
func (uc *ContractUseCase) Create(actor string, in dto.ContractInput) (*dto.ContractResponse, error) {
	if err := uc.validator.ValidateCreate(in); err != nil {
		return nil, err
	}

	status := entity.StatusActive
	if in.Status != nil {
		status = entity.ContractStatus(*in.Status)
	}
	now := time.Now().UTC()
	contract := &entity.Contract{
		ID:                    uuid.New().String(),
		ContractNumber:        in.ContractNumber,
		CustomerID:            in.CustomerID,
		MandantID:             in.MandantID,
		ContractGroupID:       in.ContractGroupID,
		CurrencyID:            in.CurrencyID,
		ContractType:          entity.ContractType(in.ContractType),
		Status:                status,
		StartDate:             in.StartDate,
		EndDate:               in.EndDate,
		IsUnlimited:           in.IsUnlimited,
		NoticePeriodMonths:    in.NoticePeriodMonths,
		NoticeDeadline:        in.NoticeDeadline,
		AutoRenew:             in.AutoRenew,
		BillingStartDate:      in.BillingStartDate,
		ResponsibleSales:      in.ResponsibleSales,
		ResponsibleAccounting: in.ResponsibleAccounting,
		ResponsiblePricing:    in.ResponsiblePricing,
		Notes:                 in.Notes,
	}
	contract.Stamp(actor, now)

	if err := uc.repo.Create(contract); err != nil {
		// Unique-Index hat im Rennen zweier gleichzeitiger Anlagen gewonnen.
		if errors.Is(err, domain.ErrDuplicateContractNumber) {
			return nil, duplicateNumberError(in.ContractNumber)
		}
		return nil, fmt.Errorf("vertrag anlegen: %w", err)
	}
	return uc.reload(contract.ID)
}

// GetByID liefert den Vertrag inkl. Preisen und Vertragskunden; nil, nil wenn unbekannt.
func (uc *ContractUseCase) GetByID(id string) (*dto.ContractResponse, error) {
	view, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, fmt.Errorf("vertrag laden: %w", err)
	}
	if view == nil {
		return nil, nil
	}
	out := dto.FromContractView(view)
	return &out, nil
}

// List filtert (Suche über Vertragsnummer, Kundenname, Kundennummer; exakter
// Status), ordnet nach Anlagezeit absteigend und paginiert 1-basiert.
func (uc *ContractUseCase) List(search string, status *entity.ContractStatus, page dto.PageRequest) ([]dto.ContractResponse, int, error) {
	page.Normalize(uc.pages.Default, uc.pages.Max)
	items, total, err := uc.repo.List(repository.ContractFilter{
		Search:   search,
		Status:   status,
		Page:     page.Page,
		PageSize: page.PageSize,
	})
	if err != nil {
		return nil, 0, fmt.Errorf("verträge listen: %w", err)
	}
	out := make([]dto.ContractResponse, 0, len(items))
	for _, v := range items {
		out = append(out, dto.FromContractView(v))
	}
	return out, total, nil
}

// Update ersetzt alle veränderbaren Felder komplett (kein Patch) und stempelt
// den Akteur. domain.ErrNotFound, wenn der Vertrag nicht existiert.
func (uc *ContractUseCase) Update(actor, id string, in dto.ContractInput) (*dto.ContractResponse, error) {
	view, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, fmt.Errorf("vertrag laden: %w", err)
	}
	if view == nil {
		return nil, domain.ErrNotFound
	}
	existing := view.Contract
	if err := uc.validator.ValidateUpdate(&existing, in); err != nil {
		return nil, err
	}

	status := existing.Status
	if in.Status != nil {
		status = entity.ContractStatus(*in.Status)
	}
	updated := existing
	updated.ContractNumber = in.ContractNumber
	updated.CustomerID = in.CustomerID
	updated.MandantID = in.MandantID
	updated.ContractGroupID = in.ContractGroupID
	updated.CurrencyID = in.CurrencyID
	updated.ContractType = entity.ContractType(in.ContractType)
	updated.Status = status
	updated.StartDate = in.StartDate
	updated.EndDate = in.EndDate
	updated.IsUnlimited = in.IsUnlimited
	updated.NoticePeriodMonths = in.NoticePeriodMonths
	updated.NoticeDeadline = in.NoticeDeadline
	updated.AutoRenew = in.AutoRenew
	updated.BillingStartDate = in.BillingStartDate
	updated.ResponsibleSales = in.ResponsibleSales
	updated.ResponsibleAccounting = in.ResponsibleAccounting
	updated.ResponsiblePricing = in.ResponsiblePricing
	updated.Notes = in.Notes
	updated.Touch(actor, time.Now().UTC())

	if err := uc.repo.Update(&updated); err != nil {
		if errors.Is(err, domain.ErrDuplicateContractNumber) {
			return nil, duplicateNumberError(in.ContractNumber)
		}
		return nil, fmt.Errorf("vertrag aktualisieren: %w", err)
	}
	return uc.reload(id)
}

// Delete entfernt den Vertrag; Preise und Kundenzuordnungen kaskadieren atomar.
func (uc *ContractUseCase) Delete(id string) error {
	view, err := uc.repo.GetByID(id)
	if err != nil {
		return fmt.Errorf("vertrag laden: %w", err)
	}
	if view == nil {
		return domain.ErrNotFound
	}
	if err := uc.repo.Delete(id); err != nil {
		return fmt.Errorf("vertrag löschen: %w", err)
	}
	return nil
}

// SetPrices ersetzt die Preisliste eines Vertrags komplett.
func (uc *ContractUseCase) SetPrices(actor, contractID string, inputs []dto.ContractPriceInput) (*dto.ContractResponse, error) {
	view, err := uc.repo.GetByID(contractID)
	if err != nil {
		return nil, fmt.Errorf("vertrag laden: %w", err)
	}
	if view == nil {
		return nil, domain.ErrNotFound
	}
	if err := uc.validator.ValidatePrices(inputs); err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	prices := make([]entity.ContractPrice, 0, len(inputs))
	for _, in := range inputs {
		p := entity.ContractPrice{
			ID:          uuid.New().String(),
			ContractID:  contractID,
			PriceTypeID: in.PriceTypeID,
			ValidFrom:   in.ValidFrom,
			ValidTo:     in.ValidTo,
			Amount:      in.Amount,
			Unit:        in.Unit,
			Description: in.Description,
		}
		p.Stamp(actor, now)
		prices = append(prices, p)
	}
	if err := uc.repo.ReplacePrices(contractID, prices); err != nil {
		return nil, fmt.Errorf("preise ersetzen: %w", err)
	}
	return uc.reload(contractID)
}

// SetContractCustomers ersetzt die Kundenzuordnungen eines Vertrags komplett.
func (uc *ContractUseCase) SetContractCustomers(actor, contractID string, inputs []dto.ContractCustomerInput) (*dto.ContractResponse, error) {
	view, err := uc.repo.GetByID(contractID)
	if err != nil {
		return nil, fmt.Errorf("vertrag laden: %w", err)
	}
	if view == nil {
		return nil, domain.ErrNotFound
	}
	if err := uc.validator.ValidateContractCustomers(inputs); err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	assignments := make([]entity.ContractCustomer, 0, len(inputs))
	for _, in := range inputs {
		cc := entity.ContractCustomer{
			ID:                   uuid.New().String(),
			ContractID:           contractID,
			CustomerID:           in.CustomerID,
			CustomerNumber:       in.CustomerNumber,
			Role:                 entity.ContractCustomerRole(in.Role),
			AdvancePaymentAmount: in.AdvancePaymentAmount,
			AdvancePaymentCycle:  in.AdvancePaymentCycle,
			PaymentTerms:         in.PaymentTerms,
			AccountingReference:  in.AccountingReference,
		}
		cc.Stamp(actor, now)
		assignments = append(assignments, cc)
	}
	if err := uc.repo.ReplaceContractCustomers(contractID, assignments); err != nil {
		return nil, fmt.Errorf("vertragskunden ersetzen: %w", err)
	}
	return uc.reload(contractID)
}

func (uc *ContractUseCase) reload(id string) (*dto.ContractResponse, error) {
	view, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, fmt.Errorf("vertrag nachladen: %w", err)
	}
	if view == nil {
		return nil, domain.ErrNotFound
	}
	out := dto.FromContractView(view)
	return &out, nil
}

func duplicateNumberError(number string) *domain.ValidationError {
	ve := domain.NewValidationError()
	ve.Add("contractNumber", fmt.Sprintf("Vertragsnummer %s existiert bereits", number))
	return ve
}
