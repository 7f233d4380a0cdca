package repository

import "github.com/vertragswerk/contracts-api/internal/domain/entity"

// ContractFilter Parameter der Vertragsliste (Suche, Status, Seite).
// Page ist 1-basiert. PageSize <= 0 bedeutet unbegrenzt (kompletter
// Treffersatz, z.B. für Exporte); die HTTP-Schicht normalisiert PageSize
// vorher auf den konfigurierten Default.
type ContractFilter struct {
	Search   string
	Status   *entity.ContractStatus
	Page     int
	PageSize int
}

// ContractRepository Persistenz-Port für das Vertragsaggregat.
//
// Create und Update melden domain.ErrDuplicateContractNumber, wenn der
// Unique-Index auf der Vertragsnummer verletzt wird. Damit ist die
// Eindeutigkeit im selben Schreibvorgang abgesichert und nicht nur per
// Vorab-Prüfung (check-then-act).
type ContractRepository interface {
	Create(contract *entity.Contract) error
	// GetByID liefert das Lesemodell inkl. Preisen und Vertragskunden; nil, nil wenn nicht vorhanden.
	GetByID(id string) (*entity.ContractView, error)
	// GetByNumber liefert den Vertrag zur Nummer; nil, nil wenn nicht vorhanden.
	GetByNumber(contractNumber string) (*entity.Contract, error)
	// List filtert, ordnet (created_at absteigend, id als Tie-Break) und paginiert.
	// totalCount ist die Mächtigkeit der gefilterten Menge vor der Paginierung.
	List(filter ContractFilter) (items []*entity.ContractView, totalCount int, err error)
	Update(contract *entity.Contract) error
	// Delete entfernt den Vertrag samt Preisen und Vertragskunden (Kaskade, atomar).
	Delete(id string) error
	// ReplacePrices / ReplaceContractCustomers ersetzen die abhängigen Sammlungen komplett.
	ReplacePrices(contractID string, prices []entity.ContractPrice) error
	ReplaceContractCustomers(contractID string, customers []entity.ContractCustomer) error
}
