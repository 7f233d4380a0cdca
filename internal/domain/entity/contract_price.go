package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// ContractPrice Vertragspreis mit Gültigkeitszeitraum.
type ContractPrice struct {
	ID          string
	ContractID  string
	PriceTypeID string
	ValidFrom   time.Time
	ValidTo     *time.Time // null = unbegrenzt gültig
	Amount      decimal.Decimal
	Unit        string // z.B. kWh, Monat, Jahr
	Description string
	Audit
}

// Overlaps meldet, ob sich zwei Gültigkeitszeiträume überschneiden.
// Ein offenes ValidTo zählt als unendlich.
func (p ContractPrice) Overlaps(other ContractPrice) bool {
	if p.ValidTo != nil && !other.ValidFrom.Before(*p.ValidTo) {
		return false
	}
	if other.ValidTo != nil && !p.ValidFrom.Before(*other.ValidTo) {
		return false
	}
	return true
}
