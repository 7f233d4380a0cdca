package entity

import "time"

// Contract Vertrags-Sonderkunde. Hauptentität für EVU-Verträge außerhalb des ERP.
// Referenzen auf die Kataloge sind reine Fremdschlüssel; die Auflösung zu
// Anzeigefeldern passiert beim Lesen (ContractView), nicht über Objektgraphen.
type Contract struct {
	ID                    string
	ContractNumber        string
	CustomerID            string
	MandantID             string
	ContractGroupID       string
	CurrencyID            string
	ContractType          ContractType
	Status                ContractStatus
	StartDate             time.Time
	EndDate               *time.Time // null = unbefristet
	IsUnlimited           bool
	NoticePeriodMonths    int // 0–120
	NoticeDeadline        *time.Time
	AutoRenew             bool
	BillingStartDate      time.Time
	ResponsibleSales      string
	ResponsibleAccounting string
	ResponsiblePricing    string
	Notes                 string
	Audit
}

// ContractView Lesemodell eines Vertrags: Stammdaten plus denormalisierte
// Anzeigefelder der referenzierten Kataloge und die abhängigen Sammlungen.
type ContractView struct {
	Contract
	CustomerName      string
	CustomerNumber    string
	MandantName       string
	ContractGroupName string
	CurrencyCode      string
	Prices            []ContractPrice
	ContractCustomers []ContractCustomer
}
