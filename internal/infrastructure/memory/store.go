// Package memory implementiert die Persistenz-Ports als In-Memory-Store.
// Der MVP lief ohne externe Datenbank; der Store dient weiterhin als
// Entwicklungs- und Testtreiber (DB_DRIVER=memory).
//
// Ein einzelner RWMutex schützt den gesamten Zustand: jede Schreiboperation
// läuft damit als kritischer Abschnitt, insbesondere Eindeutigkeitsprüfung
// und Einfügen der Vertragsnummer in einem Zug.
package memory

import (
	"sync"

	"github.com/vertragswerk/contracts-api/internal/domain/entity"
)

// Store hält alle Tabellen des Vertragsbestands im Speicher.
type Store struct {
	mu sync.RWMutex

	contracts         map[string]*entity.Contract
	prices            map[string][]entity.ContractPrice    // je Vertrag
	contractCustomers map[string][]entity.ContractCustomer // je Vertrag

	customers  map[string]*entity.Customer
	mandants   map[string]*entity.Mandant
	groups     map[string]*entity.ContractGroup
	currencies map[string]*entity.Currency
	priceTypes map[string]*entity.PriceType
}

// NewStore leerer Store.
func NewStore() *Store {
	return &Store{
		contracts:         map[string]*entity.Contract{},
		prices:            map[string][]entity.ContractPrice{},
		contractCustomers: map[string][]entity.ContractCustomer{},
		customers:         map[string]*entity.Customer{},
		mandants:          map[string]*entity.Mandant{},
		groups:            map[string]*entity.ContractGroup{},
		currencies:        map[string]*entity.Currency{},
		priceTypes:        map[string]*entity.PriceType{},
	}
}

// view baut das Lesemodell eines Vertrags unter gehaltenem Lock.
func (s *Store) view(c *entity.Contract) *entity.ContractView {
	v := &entity.ContractView{Contract: *c}
	if cu, ok := s.customers[c.CustomerID]; ok {
		v.CustomerName = cu.Name
		v.CustomerNumber = cu.CustomerNumber
	}
	if m, ok := s.mandants[c.MandantID]; ok {
		v.MandantName = m.Name
	}
	if g, ok := s.groups[c.ContractGroupID]; ok {
		v.ContractGroupName = g.Name
	}
	if cur, ok := s.currencies[c.CurrencyID]; ok {
		v.CurrencyCode = cur.Code
	}
	v.Prices = append([]entity.ContractPrice(nil), s.prices[c.ID]...)
	v.ContractCustomers = append([]entity.ContractCustomer(nil), s.contractCustomers[c.ID]...)
	return v
}
