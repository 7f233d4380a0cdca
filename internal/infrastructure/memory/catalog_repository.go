package memory

import (
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/vertragswerk/contracts-api/internal/domain"
	"github.com/vertragswerk/contracts-api/internal/domain/entity"
	"github.com/vertragswerk/contracts-api/internal/domain/repository"
)

// Deutsche Kollation für die Namenssortierung der Kataloge (Umlaute!).
var germanCollator = collate.New(language.German)

var (
	_ repository.CustomerRepository      = (*CustomerRepo)(nil)
	_ repository.MandantRepository       = (*MandantRepo)(nil)
	_ repository.ContractGroupRepository = (*ContractGroupRepo)(nil)
	_ repository.CurrencyRepository      = (*CurrencyRepo)(nil)
	_ repository.PriceTypeRepository     = (*PriceTypeRepo)(nil)
)

// CustomerRepo In-Memory-Katalog der Kunden.
type CustomerRepo struct{ s *Store }

func NewCustomerRepository(s *Store) *CustomerRepo { return &CustomerRepo{s: s} }

func (r *CustomerRepo) ListActive() ([]*entity.Customer, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []*entity.Customer
	for _, c := range r.s.customers {
		if c.IsActive {
			cc := *c
			out = append(out, &cc)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return germanCollator.CompareString(out[i].Name, out[j].Name) < 0
	})
	return out, nil
}

func (r *CustomerRepo) GetByID(id string) (*entity.Customer, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if c, ok := r.s.customers[id]; ok {
		cc := *c
		return &cc, nil
	}
	return nil, nil
}

func (r *CustomerRepo) Exists(id string) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	_, ok := r.s.customers[id]
	return ok, nil
}

func (r *CustomerRepo) Create(customer *entity.Customer) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c := *customer
	r.s.customers[c.ID] = &c
	return nil
}

// Delete ist restrict: solange ein Vertrag oder eine Kundenzuordnung auf den
// Kunden zeigt, wird abgelehnt.
func (r *CustomerRepo) Delete(id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.customers[id]; !ok {
		return domain.ErrNotFound
	}
	for _, c := range r.s.contracts {
		if c.CustomerID == id {
			return domain.ErrInUse
		}
	}
	for _, ccs := range r.s.contractCustomers {
		for _, cc := range ccs {
			if cc.CustomerID == id {
				return domain.ErrInUse
			}
		}
	}
	delete(r.s.customers, id)
	return nil
}

// MandantRepo In-Memory-Katalog der Mandanten.
type MandantRepo struct{ s *Store }

func NewMandantRepository(s *Store) *MandantRepo { return &MandantRepo{s: s} }

func (r *MandantRepo) ListActive() ([]*entity.Mandant, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []*entity.Mandant
	for _, m := range r.s.mandants {
		if m.IsActive {
			mm := *m
			out = append(out, &mm)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return germanCollator.CompareString(out[i].Name, out[j].Name) < 0
	})
	return out, nil
}

func (r *MandantRepo) GetByID(id string) (*entity.Mandant, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if m, ok := r.s.mandants[id]; ok {
		mm := *m
		return &mm, nil
	}
	return nil, nil
}

func (r *MandantRepo) Exists(id string) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	_, ok := r.s.mandants[id]
	return ok, nil
}

func (r *MandantRepo) Create(mandant *entity.Mandant) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	m := *mandant
	r.s.mandants[m.ID] = &m
	return nil
}

func (r *MandantRepo) Delete(id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.mandants[id]; !ok {
		return domain.ErrNotFound
	}
	for _, c := range r.s.contracts {
		if c.MandantID == id {
			return domain.ErrInUse
		}
	}
	delete(r.s.mandants, id)
	return nil
}

// ContractGroupRepo In-Memory-Katalog der Vertragsgruppen.
type ContractGroupRepo struct{ s *Store }

func NewContractGroupRepository(s *Store) *ContractGroupRepo { return &ContractGroupRepo{s: s} }

func (r *ContractGroupRepo) ListActive() ([]*entity.ContractGroup, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []*entity.ContractGroup
	for _, g := range r.s.groups {
		if g.IsActive {
			gg := *g
			out = append(out, &gg)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return germanCollator.CompareString(out[i].Name, out[j].Name) < 0
	})
	return out, nil
}

func (r *ContractGroupRepo) GetByID(id string) (*entity.ContractGroup, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if g, ok := r.s.groups[id]; ok {
		gg := *g
		return &gg, nil
	}
	return nil, nil
}

func (r *ContractGroupRepo) Exists(id string) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	_, ok := r.s.groups[id]
	return ok, nil
}

func (r *ContractGroupRepo) Create(group *entity.ContractGroup) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	g := *group
	r.s.groups[g.ID] = &g
	return nil
}

func (r *ContractGroupRepo) Delete(id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.groups[id]; !ok {
		return domain.ErrNotFound
	}
	for _, c := range r.s.contracts {
		if c.ContractGroupID == id {
			return domain.ErrInUse
		}
	}
	delete(r.s.groups, id)
	return nil
}

// CurrencyRepo In-Memory-Katalog der Währungen; Sortierung nach ISO-Code.
type CurrencyRepo struct{ s *Store }

func NewCurrencyRepository(s *Store) *CurrencyRepo { return &CurrencyRepo{s: s} }

func (r *CurrencyRepo) ListActive() ([]*entity.Currency, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []*entity.Currency
	for _, c := range r.s.currencies {
		if c.IsActive {
			cc := *c
			out = append(out, &cc)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out, nil
}

func (r *CurrencyRepo) GetByID(id string) (*entity.Currency, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if c, ok := r.s.currencies[id]; ok {
		cc := *c
		return &cc, nil
	}
	return nil, nil
}

func (r *CurrencyRepo) Exists(id string) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	_, ok := r.s.currencies[id]
	return ok, nil
}

func (r *CurrencyRepo) Create(currency *entity.Currency) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c := *currency
	r.s.currencies[c.ID] = &c
	return nil
}

func (r *CurrencyRepo) Delete(id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.currencies[id]; !ok {
		return domain.ErrNotFound
	}
	for _, c := range r.s.contracts {
		if c.CurrencyID == id {
			return domain.ErrInUse
		}
	}
	delete(r.s.currencies, id)
	return nil
}

// PriceTypeRepo In-Memory-Katalog der Preisarten.
type PriceTypeRepo struct{ s *Store }

func NewPriceTypeRepository(s *Store) *PriceTypeRepo { return &PriceTypeRepo{s: s} }

func (r *PriceTypeRepo) ListActive() ([]*entity.PriceType, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []*entity.PriceType
	for _, pt := range r.s.priceTypes {
		if pt.IsActive {
			p := *pt
			out = append(out, &p)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return germanCollator.CompareString(out[i].Name, out[j].Name) < 0
	})
	return out, nil
}

func (r *PriceTypeRepo) GetByID(id string) (*entity.PriceType, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if pt, ok := r.s.priceTypes[id]; ok {
		p := *pt
		return &p, nil
	}
	return nil, nil
}

func (r *PriceTypeRepo) Exists(id string) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	_, ok := r.s.priceTypes[id]
	return ok, nil
}

func (r *PriceTypeRepo) Create(priceType *entity.PriceType) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	pt := *priceType
	r.s.priceTypes[pt.ID] = &pt
	return nil
}

func (r *PriceTypeRepo) Delete(id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.priceTypes[id]; !ok {
		return domain.ErrNotFound
	}
	for _, prices := range r.s.prices {
		for _, p := range prices {
			if p.PriceTypeID == id {
				return domain.ErrInUse
			}
		}
	}
	delete(r.s.priceTypes, id)
	return nil
}
