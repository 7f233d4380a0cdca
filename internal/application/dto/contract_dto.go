package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/vertragswerk/contracts-api/internal/domain/entity"
)

// ContractInput Eingabe für Anlegen und Aktualisieren eines Vertrags.
// Update ersetzt alle veränderbaren Felder komplett (kein Patch).
type ContractInput struct {
	ContractNumber        string     `json:"contractNumber"`
	CustomerID            string     `json:"customerId"`
	MandantID             string     `json:"mandantId"`
	ContractGroupID       string     `json:"contractGroupId"`
	CurrencyID            string     `json:"currencyId"`
	ContractType          int        `json:"contractType"`
	Status                *int       `json:"status"` // nil beim Anlegen = Aktiv
	StartDate             time.Time  `json:"startDate"`
	EndDate               *time.Time `json:"endDate"`
	IsUnlimited           bool       `json:"isUnlimited"`
	NoticePeriodMonths    int        `json:"noticePeriodMonths"`
	NoticeDeadline        *time.Time `json:"noticeDeadline"`
	AutoRenew             bool       `json:"autoRenew"`
	BillingStartDate      time.Time  `json:"billingStartDate"`
	ResponsibleSales      string     `json:"responsibleSales"`
	ResponsibleAccounting string     `json:"responsibleAccounting"`
	ResponsiblePricing    string     `json:"responsiblePricing"`
	Notes                 string     `json:"notes"`
}

// ContractPriceInput Eingabe eines Vertragspreises.
type ContractPriceInput struct {
	PriceTypeID string          `json:"priceTypeId"`
	ValidFrom   time.Time       `json:"validFrom"`
	ValidTo     *time.Time      `json:"validTo"`
	Amount      decimal.Decimal `json:"amount"`
	Unit        string          `json:"unit"`
	Description string          `json:"description"`
}

// ContractCustomerInput Eingabe einer Kundenzuordnung.
type ContractCustomerInput struct {
	CustomerID           string          `json:"customerId"`
	CustomerNumber       string          `json:"customerNumber"`
	Role                 int             `json:"role"`
	AdvancePaymentAmount decimal.Decimal `json:"advancePaymentAmount"`
	AdvancePaymentCycle  int             `json:"advancePaymentCycle"`
	PaymentTerms         string          `json:"paymentTerms"`
	AccountingReference  string          `json:"accountingReference"`
}

// ContractResponse Rückgabe eines Vertrags mit aufgelösten Anzeigefeldern.
type ContractResponse struct {
	ID                    string                     `json:"id"`
	ContractNumber        string                     `json:"contractNumber"`
	CustomerID            string                     `json:"customerId"`
	CustomerName          string                     `json:"customerName"`
	CustomerNumber        string                     `json:"customerNumber"`
	MandantID             string                     `json:"mandantId"`
	MandantName           string                     `json:"mandantName"`
	ContractGroupID       string                     `json:"contractGroupId"`
	ContractGroupName     string                     `json:"contractGroupName"`
	ContractType          int                        `json:"contractType"`
	ContractTypeDisplay   string                     `json:"contractTypeDisplay"`
	Status                int                        `json:"status"`
	StatusDisplay         string                     `json:"statusDisplay"`
	StartDate             time.Time                  `json:"startDate"`
	EndDate               *time.Time                 `json:"endDate"`
	IsUnlimited           bool                       `json:"isUnlimited"`
	NoticePeriodMonths    int                        `json:"noticePeriodMonths"`
	NoticeDeadline        *time.Time                 `json:"noticeDeadline"`
	AutoRenew             bool                       `json:"autoRenew"`
	BillingStartDate      time.Time                  `json:"billingStartDate"`
	ResponsibleSales      string                     `json:"responsibleSales"`
	ResponsibleAccounting string                     `json:"responsibleAccounting"`
	ResponsiblePricing    string                     `json:"responsiblePricing"`
	CurrencyID            string                     `json:"currencyId"`
	CurrencyCode          string                     `json:"currencyCode"`
	Notes                 string                     `json:"notes"`
	Prices                []ContractPriceResponse    `json:"prices,omitempty"`
	ContractCustomers     []ContractCustomerResponse `json:"contractCustomers,omitempty"`
	CreatedAt             time.Time                  `json:"createdAt"`
	CreatedBy             string                     `json:"createdBy"`
	UpdatedAt             time.Time                  `json:"updatedAt"`
	UpdatedBy             string                     `json:"updatedBy"`
}

// ContractPriceResponse Rückgabe eines Vertragspreises.
type ContractPriceResponse struct {
	ID          string          `json:"id"`
	PriceTypeID string          `json:"priceTypeId"`
	ValidFrom   time.Time       `json:"validFrom"`
	ValidTo     *time.Time      `json:"validTo"`
	Amount      decimal.Decimal `json:"amount"`
	Unit        string          `json:"unit"`
	Description string          `json:"description"`
}

// ContractCustomerResponse Rückgabe einer Kundenzuordnung.
type ContractCustomerResponse struct {
	ID                   string          `json:"id"`
	CustomerID           string          `json:"customerId"`
	CustomerNumber       string          `json:"customerNumber"`
	Role                 int             `json:"role"`
	RoleDisplay          string          `json:"roleDisplay"`
	AdvancePaymentAmount decimal.Decimal `json:"advancePaymentAmount"`
	AdvancePaymentCycle  int             `json:"advancePaymentCycle"`
	PaymentTerms         string          `json:"paymentTerms"`
	AccountingReference  string          `json:"accountingReference"`
}

// FromContractView bildet das Lesemodell auf die API-Antwort ab.
// Reine, totale Funktion: unbekannte Enum-Altwerte landen als Zahl im Display.
// Bei unbefristeten Verträgen wird ein gespeichertes Enddatum unterdrückt.
func FromContractView(v *entity.ContractView) ContractResponse {
	endDate := v.EndDate
	if v.IsUnlimited {
		endDate = nil
	}
	out := ContractResponse{
		ID:                    v.ID,
		ContractNumber:        v.ContractNumber,
		CustomerID:            v.CustomerID,
		CustomerName:          v.CustomerName,
		CustomerNumber:        v.CustomerNumber,
		MandantID:             v.MandantID,
		MandantName:           v.MandantName,
		ContractGroupID:       v.ContractGroupID,
		ContractGroupName:     v.ContractGroupName,
		ContractType:          int(v.ContractType),
		ContractTypeDisplay:   v.ContractType.Label(),
		Status:                int(v.Status),
		StatusDisplay:         v.Status.Label(),
		StartDate:             v.StartDate,
		EndDate:               endDate,
		IsUnlimited:           v.IsUnlimited,
		NoticePeriodMonths:    v.NoticePeriodMonths,
		NoticeDeadline:        v.NoticeDeadline,
		AutoRenew:             v.AutoRenew,
		BillingStartDate:      v.BillingStartDate,
		ResponsibleSales:      v.ResponsibleSales,
		ResponsibleAccounting: v.ResponsibleAccounting,
		ResponsiblePricing:    v.ResponsiblePricing,
		CurrencyID:            v.CurrencyID,
		CurrencyCode:          v.CurrencyCode,
		Notes:                 v.Notes,
		CreatedAt:             v.CreatedAt,
		CreatedBy:             v.CreatedBy,
		UpdatedAt:             v.UpdatedAt,
		UpdatedBy:             v.UpdatedBy,
	}
	for _, p := range v.Prices {
		out.Prices = append(out.Prices, ContractPriceResponse{
			ID:          p.ID,
			PriceTypeID: p.PriceTypeID,
			ValidFrom:   p.ValidFrom,
			ValidTo:     p.ValidTo,
			Amount:      p.Amount,
			Unit:        p.Unit,
			Description: p.Description,
		})
	}
	for _, cc := range v.ContractCustomers {
		out.ContractCustomers = append(out.ContractCustomers, ContractCustomerResponse{
			ID:                   cc.ID,
			CustomerID:           cc.CustomerID,
			CustomerNumber:       cc.CustomerNumber,
			Role:                 int(cc.Role),
			RoleDisplay:          cc.Role.Label(),
			AdvancePaymentAmount: cc.AdvancePaymentAmount,
			AdvancePaymentCycle:  cc.AdvancePaymentCycle,
			PaymentTerms:         cc.PaymentTerms,
			AccountingReference:  cc.AccountingReference,
		})
	}
	return out
}
