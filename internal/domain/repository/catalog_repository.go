package repository

import "github.com/vertragswerk/contracts-api/internal/domain/entity"

// Katalog-Ports. Die Kataloge werden von Verträgen referenziert, nie besessen;
// Delete ist überall restrict: domain.ErrInUse, solange noch ein Vertrag
// bzw. Vertragspreis auf den Datensatz zeigt.

type CustomerRepository interface {
	// ListActive liefert aktive Kunden, sortiert nach Name.
	ListActive() ([]*entity.Customer, error)
	GetByID(id string) (*entity.Customer, error)
	Exists(id string) (bool, error)
	Create(customer *entity.Customer) error
	Delete(id string) error
}

type MandantRepository interface {
	ListActive() ([]*entity.Mandant, error)
	GetByID(id string) (*entity.Mandant, error)
	Exists(id string) (bool, error)
	Create(mandant *entity.Mandant) error
	Delete(id string) error
}

type ContractGroupRepository interface {
	ListActive() ([]*entity.ContractGroup, error)
	GetByID(id string) (*entity.ContractGroup, error)
	Exists(id string) (bool, error)
	Create(group *entity.ContractGroup) error
	Delete(id string) error
}

type CurrencyRepository interface {
	// ListActive liefert aktive Währungen, sortiert nach Code.
	ListActive() ([]*entity.Currency, error)
	GetByID(id string) (*entity.Currency, error)
	Exists(id string) (bool, error)
	Create(currency *entity.Currency) error
	Delete(id string) error
}

type PriceTypeRepository interface {
	ListActive() ([]*entity.PriceType, error)
	GetByID(id string) (*entity.PriceType, error)
	Exists(id string) (bool, error)
	Create(priceType *entity.PriceType) error
	Delete(id string) error
}
