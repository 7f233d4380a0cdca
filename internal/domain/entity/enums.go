package entity

import "strconv"

// ContractStatus Status eines Vertrags (numerische Werte wie im Datenbestand).
type ContractStatus int

const (
	StatusInNegotiation ContractStatus = 0
	StatusActive        ContractStatus = 1
	StatusTerminated    ContractStatus = 2
	StatusEnded         ContractStatus = 3
	StatusSuspended     ContractStatus = 4
)

var statusLabels = map[ContractStatus]string{
	StatusInNegotiation: "In Verhandlung",
	StatusActive:        "Aktiv",
	StatusTerminated:    "Gekündigt",
	StatusEnded:         "Beendet",
	StatusSuspended:     "Ausgesetzt",
}

// Valid meldet, ob der Wert ein bekannter Status ist. Unbekannte Werte werden
// an der API-Grenze abgelehnt, nicht stillschweigend durchgereicht.
func (s ContractStatus) Valid() bool {
	_, ok := statusLabels[s]
	return ok
}

// Label deutsche Anzeige; für unbekannte Altwerte fällt sie auf die Zahl zurück.
func (s ContractStatus) Label() string {
	if l, ok := statusLabels[s]; ok {
		return l
	}
	return strconv.Itoa(int(s))
}

// AllContractStatuses in Anzeige-Reihenfolge.
func AllContractStatuses() []ContractStatus {
	return []ContractStatus{StatusInNegotiation, StatusActive, StatusTerminated, StatusEnded, StatusSuspended}
}

// ContractType Art eines Vertrags.
type ContractType int

const (
	TypeSale             ContractType = 0
	TypeSupplier         ContractType = 1
	TypeSalesOpportunity ContractType = 2
)

var typeLabels = map[ContractType]string{
	TypeSale:             "Verkauf",
	TypeSupplier:         "Lieferant",
	TypeSalesOpportunity: "Verkaufschance",
}

func (t ContractType) Valid() bool {
	_, ok := typeLabels[t]
	return ok
}

func (t ContractType) Label() string {
	if l, ok := typeLabels[t]; ok {
		return l
	}
	return strconv.Itoa(int(t))
}

// AllContractTypes in Anzeige-Reihenfolge.
func AllContractTypes() []ContractType {
	return []ContractType{TypeSale, TypeSupplier, TypeSalesOpportunity}
}

// ContractCustomerRole Rolle eines zugeordneten Kunden im Vertrag.
type ContractCustomerRole int

const (
	RoleContractPartner  ContractCustomerRole = 0
	RoleInvoiceRecipient ContractCustomerRole = 1
	RoleBoth             ContractCustomerRole = 2
)

var roleLabels = map[ContractCustomerRole]string{
	RoleContractPartner:  "Vertragspartner",
	RoleInvoiceRecipient: "Rechnungsempfänger",
	RoleBoth:             "Beides",
}

func (r ContractCustomerRole) Valid() bool {
	_, ok := roleLabels[r]
	return ok
}

func (r ContractCustomerRole) Label() string {
	if l, ok := roleLabels[r]; ok {
		return l
	}
	return strconv.Itoa(int(r))
}
