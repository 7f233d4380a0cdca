package postgres

import (
	"context"
	"fmt"

	"github.com/vertragswerk/contracts-api/internal/domain"
	"github.com/vertragswerk/contracts-api/internal/domain/entity"
	"github.com/vertragswerk/contracts-api/internal/domain/repository"
)

// Katalog-Repositories. Gleiches Muster für alle fünf Stammdaten-Tabellen;
// Delete läuft gegen die FK-Restriktionen und übersetzt 23503 in ErrInUse.

var (
	_ repository.CustomerRepository      = (*CustomerRepo)(nil)
	_ repository.MandantRepository       = (*MandantRepo)(nil)
	_ repository.ContractGroupRepository = (*ContractGroupRepo)(nil)
	_ repository.CurrencyRepository      = (*CurrencyRepo)(nil)
	_ repository.PriceTypeRepository     = (*PriceTypeRepo)(nil)
)

type CustomerRepo struct {
	q Querier
}

func NewCustomerRepository(q Querier) *CustomerRepo {
	return &CustomerRepo{q: q}
}

const customerColumns = `id, customer_number, name, address, postal_code, city, email, phone, is_active,
	created_at, created_by, updated_at, updated_by`

func scanCustomer(row interface{ Scan(dest ...any) error }) (*entity.Customer, error) {
	var c entity.Customer
	err := row.Scan(
		&c.ID, &c.CustomerNumber, &c.Name, &c.Address, &c.PostalCode, &c.City, &c.Email, &c.Phone, &c.IsActive,
		&c.CreatedAt, &c.CreatedBy, &c.UpdatedAt, &c.UpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CustomerRepo) ListActive() ([]*entity.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE is_active = TRUE ORDER BY name, id`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}
	defer rows.Close()
	var out []*entity.Customer
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, fmt.Errorf("scan customer: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *CustomerRepo) GetByID(id string) (*entity.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE id = $1`
	rows, err := r.q.Query(context.Background(), query, id)
	if err != nil {
		return nil, fmt.Errorf("get customer: %w", err)
	}
	defer rows.Close()
	if !rows.Next() {
		return nil, rows.Err()
	}
	c, err := scanCustomer(rows)
	if err != nil {
		return nil, fmt.Errorf("scan customer: %w", err)
	}
	return c, nil
}

func (r *CustomerRepo) Exists(id string) (bool, error) {
	return existsRow(r.q, `SELECT EXISTS (SELECT 1 FROM customers WHERE id = $1)`, id)
}

func (r *CustomerRepo) Create(customer *entity.Customer) error {
	const query = `
		INSERT INTO customers (` + customerColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(context.Background(), query,
		customer.ID, customer.CustomerNumber, customer.Name, customer.Address,
		customer.PostalCode, customer.City, customer.Email, customer.Phone, customer.IsActive,
		customer.CreatedAt, customer.CreatedBy, customer.UpdatedAt, customer.UpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("insert customer: %w", err)
	}
	return nil
}

func (r *CustomerRepo) Delete(id string) error {
	return deleteRestrict(r.q, "customers", id)
}

type MandantRepo struct {
	q Querier
}

func NewMandantRepository(q Querier) *MandantRepo {
	return &MandantRepo{q: q}
}

const mandantColumns = `id, code, name, description, is_active, created_at, created_by, updated_at, updated_by`

func scanMandant(row interface{ Scan(dest ...any) error }) (*entity.Mandant, error) {
	var m entity.Mandant
	err := row.Scan(
		&m.ID, &m.Code, &m.Name, &m.Description, &m.IsActive,
		&m.CreatedAt, &m.CreatedBy, &m.UpdatedAt, &m.UpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *MandantRepo) ListActive() ([]*entity.Mandant, error) {
	query := `SELECT ` + mandantColumns + ` FROM mandants WHERE is_active = TRUE ORDER BY name, id`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list mandants: %w", err)
	}
	defer rows.Close()
	var out []*entity.Mandant
	for rows.Next() {
		m, err := scanMandant(rows)
		if err != nil {
			return nil, fmt.Errorf("scan mandant: %w", err)
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (r *MandantRepo) GetByID(id string) (*entity.Mandant, error) {
	query := `SELECT ` + mandantColumns + ` FROM mandants WHERE id = $1`
	rows, err := r.q.Query(context.Background(), query, id)
	if err != nil {
		return nil, fmt.Errorf("get mandant: %w", err)
	}
	defer rows.Close()
	if !rows.Next() {
		return nil, rows.Err()
	}
	m, err := scanMandant(rows)
	if err != nil {
		return nil, fmt.Errorf("scan mandant: %w", err)
	}
	return m, nil
}

func (r *MandantRepo) Exists(id string) (bool, error) {
	return existsRow(r.q, `SELECT EXISTS (SELECT 1 FROM mandants WHERE id = $1)`, id)
}

func (r *MandantRepo) Create(mandant *entity.Mandant) error {
	const query = `
		INSERT INTO mandants (` + mandantColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		mandant.ID, mandant.Code, mandant.Name, mandant.Description, mandant.IsActive,
		mandant.CreatedAt, mandant.CreatedBy, mandant.UpdatedAt, mandant.UpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("insert mandant: %w", err)
	}
	return nil
}

func (r *MandantRepo) Delete(id string) error {
	return deleteRestrict(r.q, "mandants", id)
}

type ContractGroupRepo struct {
	q Querier
}

func NewContractGroupRepository(q Querier) *ContractGroupRepo {
	return &ContractGroupRepo{q: q}
}

const contractGroupColumns = `id, code, name, description, is_active, created_at, created_by, updated_at, updated_by`

func scanContractGroup(row interface{ Scan(dest ...any) error }) (*entity.ContractGroup, error) {
	var g entity.ContractGroup
	err := row.Scan(
		&g.ID, &g.Code, &g.Name, &g.Description, &g.IsActive,
		&g.CreatedAt, &g.CreatedBy, &g.UpdatedAt, &g.UpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &g, nil
}

func (r *ContractGroupRepo) ListActive() ([]*entity.ContractGroup, error) {
	query := `SELECT ` + contractGroupColumns + ` FROM contract_groups WHERE is_active = TRUE ORDER BY name, id`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list contract_groups: %w", err)
	}
	defer rows.Close()
	var out []*entity.ContractGroup
	for rows.Next() {
		g, err := scanContractGroup(rows)
		if err != nil {
			return nil, fmt.Errorf("scan contract_group: %w", err)
		}
		out = append(out, g)
	}
	return out, rows.Err()
}

func (r *ContractGroupRepo) GetByID(id string) (*entity.ContractGroup, error) {
	query := `SELECT ` + contractGroupColumns + ` FROM contract_groups WHERE id = $1`
	rows, err := r.q.Query(context.Background(), query, id)
	if err != nil {
		return nil, fmt.Errorf("get contract_group: %w", err)
	}
	defer rows.Close()
	if !rows.Next() {
		return nil, rows.Err()
	}
	g, err := scanContractGroup(rows)
	if err != nil {
		return nil, fmt.Errorf("scan contract_group: %w", err)
	}
	return g, nil
}

func (r *ContractGroupRepo) Exists(id string) (bool, error) {
	return existsRow(r.q, `SELECT EXISTS (SELECT 1 FROM contract_groups WHERE id = $1)`, id)
}

func (r *ContractGroupRepo) Create(group *entity.ContractGroup) error {
	const query = `
		INSERT INTO contract_groups (` + contractGroupColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		group.ID, group.Code, group.Name, group.Description, group.IsActive,
		group.CreatedAt, group.CreatedBy, group.UpdatedAt, group.UpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("insert contract_group: %w", err)
	}
	return nil
}

func (r *ContractGroupRepo) Delete(id string) error {
	return deleteRestrict(r.q, "contract_groups", id)
}

type CurrencyRepo struct {
	q Querier
}

func NewCurrencyRepository(q Querier) *CurrencyRepo {
	return &CurrencyRepo{q: q}
}

const currencyColumns = `id, code, name, symbol, is_active, created_at, created_by, updated_at, updated_by`

func scanCurrency(row interface{ Scan(dest ...any) error }) (*entity.Currency, error) {
	var c entity.Currency
	err := row.Scan(
		&c.ID, &c.Code, &c.Name, &c.Symbol, &c.IsActive,
		&c.CreatedAt, &c.CreatedBy, &c.UpdatedAt, &c.UpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CurrencyRepo) ListActive() ([]*entity.Currency, error) {
	query := `SELECT ` + currencyColumns + ` FROM currencies WHERE is_active = TRUE ORDER BY code`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list currencies: %w", err)
	}
	defer rows.Close()
	var out []*entity.Currency
	for rows.Next() {
		c, err := scanCurrency(rows)
		if err != nil {
			return nil, fmt.Errorf("scan currency: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *CurrencyRepo) GetByID(id string) (*entity.Currency, error) {
	query := `SELECT ` + currencyColumns + ` FROM currencies WHERE id = $1`
	rows, err := r.q.Query(context.Background(), query, id)
	if err != nil {
		return nil, fmt.Errorf("get currency: %w", err)
	}
	defer rows.Close()
	if !rows.Next() {
		return nil, rows.Err()
	}
	c, err := scanCurrency(rows)
	if err != nil {
		return nil, fmt.Errorf("scan currency: %w", err)
	}
	return c, nil
}

func (r *CurrencyRepo) Exists(id string) (bool, error) {
	return existsRow(r.q, `SELECT EXISTS (SELECT 1 FROM currencies WHERE id = $1)`, id)
}

func (r *CurrencyRepo) Create(currency *entity.Currency) error {
	const query = `
		INSERT INTO currencies (` + currencyColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		currency.ID, currency.Code, currency.Name, currency.Symbol, currency.IsActive,
		currency.CreatedAt, currency.CreatedBy, currency.UpdatedAt, currency.UpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("insert currency: %w", err)
	}
	return nil
}

func (r *CurrencyRepo) Delete(id string) error {
	return deleteRestrict(r.q, "currencies", id)
}

type PriceTypeRepo struct {
	q Querier
}

func NewPriceTypeRepository(q Querier) *PriceTypeRepo {
	return &PriceTypeRepo{q: q}
}

const priceTypeColumns = `id, code, name, description, default_unit, is_active, created_at, created_by, updated_at, updated_by`

func scanPriceType(row interface{ Scan(dest ...any) error }) (*entity.PriceType, error) {
	var p entity.PriceType
	err := row.Scan(
		&p.ID, &p.Code, &p.Name, &p.Description, &p.DefaultUnit, &p.IsActive,
		&p.CreatedAt, &p.CreatedBy, &p.UpdatedAt, &p.UpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PriceTypeRepo) ListActive() ([]*entity.PriceType, error) {
	query := `SELECT ` + priceTypeColumns + ` FROM price_types WHERE is_active = TRUE ORDER BY name, id`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list price_types: %w", err)
	}
	defer rows.Close()
	var out []*entity.PriceType
	for rows.Next() {
		p, err := scanPriceType(rows)
		if err != nil {
			return nil, fmt.Errorf("scan price_type: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *PriceTypeRepo) GetByID(id string) (*entity.PriceType, error) {
	query := `SELECT ` + priceTypeColumns + ` FROM price_types WHERE id = $1`
	rows, err := r.q.Query(context.Background(), query, id)
	if err != nil {
		return nil, fmt.Errorf("get price_type: %w", err)
	}
	defer rows.Close()
	if !rows.Next() {
		return nil, rows.Err()
	}
	p, err := scanPriceType(rows)
	if err != nil {
		return nil, fmt.Errorf("scan price_type: %w", err)
	}
	return p, nil
}

func (r *PriceTypeRepo) Exists(id string) (bool, error) {
	return existsRow(r.q, `SELECT EXISTS (SELECT 1 FROM price_types WHERE id = $1)`, id)
}

func (r *PriceTypeRepo) Create(priceType *entity.PriceType) error {
	const query = `
		INSERT INTO price_types (` + priceTypeColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		priceType.ID, priceType.Code, priceType.Name, priceType.Description, priceType.DefaultUnit, priceType.IsActive,
		priceType.CreatedAt, priceType.CreatedBy, priceType.UpdatedAt, priceType.UpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("insert price_type: %w", err)
	}
	return nil
}

func (r *PriceTypeRepo) Delete(id string) error {
	return deleteRestrict(r.q, "price_types", id)
}

func existsRow(q Querier, query, id string) (bool, error) {
	var exists bool
	if err := q.QueryRow(context.Background(), query, id).Scan(&exists); err != nil {
		return false, fmt.Errorf("exists: %w", err)
	}
	return exists, nil
}

// deleteRestrict löscht einen Katalogeintrag; solange Verträge bzw. Preise
// darauf zeigen, blockt die FK-Restriktion und wir melden ErrInUse.
func deleteRestrict(q Querier, table, id string) error {
	tag, err := q.Exec(context.Background(), `DELETE FROM `+table+` WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrInUse
		}
		return fmt.Errorf("delete %s: %w", table, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
