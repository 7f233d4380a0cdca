package entity

import "github.com/shopspring/decimal"

// ContractCustomer Zuordnung eines Kunden zu einem Vertrag mit Abschlags-
// und Zahlungsinformationen. Wird mit dem Vertrag gelöscht, der Kunde selbst nicht.
type ContractCustomer struct {
	ID                   string
	ContractID           string
	CustomerID           string
	CustomerNumber       string
	Role                 ContractCustomerRole
	AdvancePaymentAmount decimal.Decimal
	AdvancePaymentCycle  int // Monate
	PaymentTerms         string
	AccountingReference  string
	Audit
}
