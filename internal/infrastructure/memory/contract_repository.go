package memory

import (
	"sort"
	"strings"

	"github.com/vertragswerk/contracts-api/internal/domain"
	"github.com/vertragswerk/contracts-api/internal/domain/entity"
	"github.com/vertragswerk/contracts-api/internal/domain/repository"
)

var _ repository.ContractRepository = (*ContractRepo)(nil)

// ContractRepo In-Memory-Implementierung des Vertrags-Ports.
type ContractRepo struct {
	s *Store
}

// NewContractRepository baut den Adapter über dem Store.
func NewContractRepository(s *Store) *ContractRepo {
	return &ContractRepo{s: s}
}

// Create fügt den Vertrag ein. Die Eindeutigkeit der Vertragsnummer wird im
// selben kritischen Abschnitt geprüft wie das Einfügen.
func (r *ContractRepo) Create(contract *entity.Contract) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, other := range r.s.contracts {
		if other.ContractNumber == contract.ContractNumber {
			return domain.ErrDuplicateContractNumber
		}
	}
	c := *contract
	r.s.contracts[c.ID] = &c
	return nil
}

func (r *ContractRepo) GetByID(id string) (*entity.ContractView, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	c, ok := r.s.contracts[id]
	if !ok {
		return nil, nil
	}
	return r.s.view(c), nil
}

func (r *ContractRepo) GetByNumber(contractNumber string) (*entity.Contract, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, c := range r.s.contracts {
		if c.ContractNumber == contractNumber {
			out := *c
			return &out, nil
		}
	}
	return nil, nil
}

// List filtert über Vertragsnummer, Kundenname und Kundennummer (Teilstring,
// groß-/kleinschreibungssensitiv wie im Altsystem), ordnet nach Anlagezeit
// absteigend mit ID als Tie-Break und schneidet die angefragte Seite heraus.
func (r *ContractRepo) List(filter repository.ContractFilter) ([]*entity.ContractView, int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	matched := make([]*entity.ContractView, 0, len(r.s.contracts))
	for _, c := range r.s.contracts {
		if filter.Status != nil && c.Status != *filter.Status {
			continue
		}
		v := r.s.view(c)
		if filter.Search != "" &&
			!strings.Contains(v.ContractNumber, filter.Search) &&
			!strings.Contains(v.CustomerName, filter.Search) &&
			!strings.Contains(v.CustomerNumber, filter.Search) {
			continue
		}
		matched = append(matched, v)
	}

	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].CreatedAt.After(matched[j].CreatedAt)
		}
		return matched[i].ID > matched[j].ID
	})

	total := len(matched)
	if filter.PageSize <= 0 {
		return matched, total, nil
	}
	start := (filter.Page - 1) * filter.PageSize
	if start >= total {
		return []*entity.ContractView{}, total, nil
	}
	end := start + filter.PageSize
	if end > total {
		end = total
	}
	return matched[start:end], total, nil
}

// Update ersetzt den Datensatz; Nummern-Eindeutigkeit wieder im selben Abschnitt.
func (r *ContractRepo) Update(contract *entity.Contract) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.contracts[contract.ID]; !ok {
		return domain.ErrNotFound
	}
	for id, other := range r.s.contracts {
		if id != contract.ID && other.ContractNumber == contract.ContractNumber {
			return domain.ErrDuplicateContractNumber
		}
	}
	c := *contract
	r.s.contracts[c.ID] = &c
	return nil
}

// Delete entfernt Vertrag, Preise und Kundenzuordnungen in einem Zug.
func (r *ContractRepo) Delete(id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.contracts[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.s.contracts, id)
	delete(r.s.prices, id)
	delete(r.s.contractCustomers, id)
	return nil
}

func (r *ContractRepo) ReplacePrices(contractID string, prices []entity.ContractPrice) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.contracts[contractID]; !ok {
		return domain.ErrNotFound
	}
	r.s.prices[contractID] = append([]entity.ContractPrice(nil), prices...)
	return nil
}

func (r *ContractRepo) ReplaceContractCustomers(contractID string, customers []entity.ContractCustomer) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.contracts[contractID]; !ok {
		return domain.ErrNotFound
	}
	r.s.contractCustomers[contractID] = append([]entity.ContractCustomer(nil), customers...)
	return nil
}
