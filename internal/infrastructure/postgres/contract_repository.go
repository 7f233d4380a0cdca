package postgres

import (
	"context"
	"fmt"

	"github.com/vertragswerk/contracts-api/internal/domain"
	"github.com/vertragswerk/contracts-api/internal/domain/entity"
	"github.com/vertragswerk/contracts-api/internal/domain/repository"
)

var _ repository.ContractRepository = (*ContractRepo)(nil)

// ContractRepo PostgreSQL-Implementierung des Vertrags-Ports (Pool oder Tx).
type ContractRepo struct {
	q      Querier
	runner *TxRunner
}

// NewContractRepository baut den Adapter über dem Pool; der Runner klammert
// die Replace-Operationen in eine Transaktion.
func NewContractRepository(q Querier, runner *TxRunner) *ContractRepo {
	return &ContractRepo{q: q, runner: runner}
}

// Spaltensatz des Lesemodells: Vertrag plus aufgelöste Katalog-Anzeigefelder.
const contractViewColumns = `
	c.id, c.contract_number,
	c.customer_id, c.mandant_id, c.contract_group_id, c.currency_id,
	c.contract_type, c.status,
	c.start_date, c.end_date, c.is_unlimited,
	c.notice_period_months, c.notice_deadline, c.auto_renew, c.billing_start_date,
	c.responsible_sales, c.responsible_accounting, c.responsible_pricing, c.notes,
	c.created_at, c.created_by, c.updated_at, c.updated_by,
	cu.name AS customer_name, cu.customer_number,
	m.name AS mandant_name,
	g.name AS contract_group_name,
	cur.code AS currency_code`

const contractViewJoins = `
	FROM contracts c
	JOIN customers cu ON cu.id = c.customer_id
	JOIN mandants m ON m.id = c.mandant_id
	JOIN contract_groups g ON g.id = c.contract_group_id
	JOIN currencies cur ON cur.id = c.currency_id`

func scanContractView(row interface{ Scan(dest ...any) error }) (*entity.ContractView, error) {
	var v entity.ContractView
	err := row.Scan(
		&v.ID, &v.ContractNumber,
		&v.CustomerID, &v.MandantID, &v.ContractGroupID, &v.CurrencyID,
		&v.ContractType, &v.Status,
		&v.StartDate, &v.EndDate, &v.IsUnlimited,
		&v.NoticePeriodMonths, &v.NoticeDeadline, &v.AutoRenew, &v.BillingStartDate,
		&v.ResponsibleSales, &v.ResponsibleAccounting, &v.ResponsiblePricing, &v.Notes,
		&v.CreatedAt, &v.CreatedBy, &v.UpdatedAt, &v.UpdatedBy,
		&v.CustomerName, &v.CustomerNumber,
		&v.MandantName,
		&v.ContractGroupName,
		&v.CurrencyCode,
	)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// Create fügt den Vertrag ein. Der Unique-Index uq_contracts_number entscheidet
// Duplikate im selben Statement wie das Einfügen (kein check-then-act-Fenster).
func (r *ContractRepo) Create(contract *entity.Contract) error {
	const query = `
		INSERT INTO contracts (
			id, contract_number, customer_id, mandant_id, contract_group_id, currency_id,
			contract_type, status, start_date, end_date, is_unlimited,
			notice_period_months, notice_deadline, auto_renew, billing_start_date,
			responsible_sales, responsible_accounting, responsible_pricing, notes,
			created_at, created_by, updated_at, updated_by
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11,
			$12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23
		)`
	_, err := r.q.Exec(context.Background(), query,
		contract.ID, contract.ContractNumber,
		contract.CustomerID, contract.MandantID, contract.ContractGroupID, contract.CurrencyID,
		contract.ContractType, contract.Status,
		contract.StartDate, contract.EndDate, contract.IsUnlimited,
		contract.NoticePeriodMonths, contract.NoticeDeadline, contract.AutoRenew, contract.BillingStartDate,
		contract.ResponsibleSales, contract.ResponsibleAccounting, contract.ResponsiblePricing, contract.Notes,
		contract.CreatedAt, contract.CreatedBy, contract.UpdatedAt, contract.UpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateContractNumber
		}
		return fmt.Errorf("insert contract: %w", err)
	}
	return nil
}

// GetByID lädt das Lesemodell samt Preisen und Kundenzuordnungen.
func (r *ContractRepo) GetByID(id string) (*entity.ContractView, error) {
	ctx := context.Background()
	query := `SELECT ` + contractViewColumns + contractViewJoins + ` WHERE c.id = $1`
	rows, err := r.q.Query(ctx, query, id)
	if err != nil {
		return nil, fmt.Errorf("get contract: %w", err)
	}
	defer rows.Close()
	if !rows.Next() {
		return nil, rows.Err()
	}
	v, err := scanContractView(rows)
	if err != nil {
		return nil, fmt.Errorf("scan contract: %w", err)
	}
	rows.Close()

	if v.Prices, err = r.loadPrices(ctx, id); err != nil {
		return nil, err
	}
	if v.ContractCustomers, err = r.loadContractCustomers(ctx, id); err != nil {
		return nil, err
	}
	return v, nil
}

func (r *ContractRepo) loadPrices(ctx context.Context, contractID string) ([]entity.ContractPrice, error) {
	const query = `
		SELECT id, contract_id, price_type_id, valid_from, valid_to, amount, unit, description,
		       created_at, created_by, updated_at, updated_by
		FROM contract_prices WHERE contract_id = $1 ORDER BY valid_from, id`
	rows, err := r.q.Query(ctx, query, contractID)
	if err != nil {
		return nil, fmt.Errorf("list contract_prices: %w", err)
	}
	defer rows.Close()
	var out []entity.ContractPrice
	for rows.Next() {
		var p entity.ContractPrice
		if err := rows.Scan(
			&p.ID, &p.ContractID, &p.PriceTypeID, &p.ValidFrom, &p.ValidTo,
			&p.Amount, &p.Unit, &p.Description,
			&p.CreatedAt, &p.CreatedBy, &p.UpdatedAt, &p.UpdatedBy,
		); err != nil {
			return nil, fmt.Errorf("scan contract_price: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *ContractRepo) loadContractCustomers(ctx context.Context, contractID string) ([]entity.ContractCustomer, error) {
	const query = `
		SELECT id, contract_id, customer_id, customer_number, role,
		       advance_payment_amount, advance_payment_cycle, payment_terms, accounting_reference,
		       created_at, created_by, updated_at, updated_by
		FROM contract_customers WHERE contract_id = $1 ORDER BY created_at, id`
	rows, err := r.q.Query(ctx, query, contractID)
	if err != nil {
		return nil, fmt.Errorf("list contract_customers: %w", err)
	}
	defer rows.Close()
	var out []entity.ContractCustomer
	for rows.Next() {
		var cc entity.ContractCustomer
		if err := rows.Scan(
			&cc.ID, &cc.ContractID, &cc.CustomerID, &cc.CustomerNumber, &cc.Role,
			&cc.AdvancePaymentAmount, &cc.AdvancePaymentCycle, &cc.PaymentTerms, &cc.AccountingReference,
			&cc.CreatedAt, &cc.CreatedBy, &cc.UpdatedAt, &cc.UpdatedBy,
		); err != nil {
			return nil, fmt.Errorf("scan contract_customer: %w", err)
		}
		out = append(out, cc)
	}
	return out, rows.Err()
}

func (r *ContractRepo) GetByNumber(contractNumber string) (*entity.Contract, error) {
	const query = `
		SELECT id, contract_number, customer_id, mandant_id, contract_group_id, currency_id,
		       contract_type, status, start_date, end_date, is_unlimited,
		       notice_period_months, notice_deadline, auto_renew, billing_start_date,
		       responsible_sales, responsible_accounting, responsible_pricing, notes,
		       created_at, created_by, updated_at, updated_by
		FROM contracts WHERE contract_number = $1`
	rows, err := r.q.Query(context.Background(), query, contractNumber)
	if err != nil {
		return nil, fmt.Errorf("get contract by number: %w", err)
	}
	defer rows.Close()
	if !rows.Next() {
		return nil, rows.Err()
	}
	var c entity.Contract
	if err := rows.Scan(
		&c.ID, &c.ContractNumber, &c.CustomerID, &c.MandantID, &c.ContractGroupID, &c.CurrencyID,
		&c.ContractType, &c.Status, &c.StartDate, &c.EndDate, &c.IsUnlimited,
		&c.NoticePeriodMonths, &c.NoticeDeadline, &c.AutoRenew, &c.BillingStartDate,
		&c.ResponsibleSales, &c.ResponsibleAccounting, &c.ResponsiblePricing, &c.Notes,
		&c.CreatedAt, &c.CreatedBy, &c.UpdatedAt, &c.UpdatedBy,
	); err != nil {
		return nil, fmt.Errorf("scan contract: %w", err)
	}
	return &c, nil
}

// List filtert (Teilstring über Vertragsnummer, Kundenname, Kundennummer;
// exakter Status), ordnet nach created_at absteigend mit id als Tie-Break und
// paginiert. totalCount kommt per Window-Funktion aus derselben Abfrage.
func (r *ContractRepo) List(filter repository.ContractFilter) ([]*entity.ContractView, int, error) {
	query := `SELECT ` + contractViewColumns + `, COUNT(*) OVER() AS total_count` + contractViewJoins + ` WHERE 1=1`
	args := []any{}
	if filter.Search != "" {
		args = append(args, "%"+likeEscape(filter.Search)+"%")
		n := len(args)
		query += fmt.Sprintf(
			` AND (c.contract_number LIKE $%d ESCAPE '\' OR cu.name LIKE $%d ESCAPE '\' OR cu.customer_number LIKE $%d ESCAPE '\')`, n, n, n)
	}
	if filter.Status != nil {
		args = append(args, int(*filter.Status))
		query += fmt.Sprintf(" AND c.status = $%d", len(args))
	}
	query += " ORDER BY c.created_at DESC, c.id DESC"
	if filter.PageSize > 0 {
		args = append(args, filter.PageSize, (filter.Page-1)*filter.PageSize)
		query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)-1, len(args))
	}

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list contracts: %w", err)
	}
	defer rows.Close()

	var (
		out   []*entity.ContractView
		total int
	)
	for rows.Next() {
		var v entity.ContractView
		if err := rows.Scan(
			&v.ID, &v.ContractNumber,
			&v.CustomerID, &v.MandantID, &v.ContractGroupID, &v.CurrencyID,
			&v.ContractType, &v.Status,
			&v.StartDate, &v.EndDate, &v.IsUnlimited,
			&v.NoticePeriodMonths, &v.NoticeDeadline, &v.AutoRenew, &v.BillingStartDate,
			&v.ResponsibleSales, &v.ResponsibleAccounting, &v.ResponsiblePricing, &v.Notes,
			&v.CreatedAt, &v.CreatedBy, &v.UpdatedAt, &v.UpdatedBy,
			&v.CustomerName, &v.CustomerNumber,
			&v.MandantName,
			&v.ContractGroupName,
			&v.CurrencyCode,
			&total,
		); err != nil {
			return nil, 0, fmt.Errorf("scan contract: %w", err)
		}
		out = append(out, &v)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	if out == nil {
		// Seite jenseits des Endes: totalCount separat nachzählen.
		total, err = r.countFiltered(filter)
		if err != nil {
			return nil, 0, err
		}
		return []*entity.ContractView{}, total, nil
	}
	return out, total, nil
}

func (r *ContractRepo) countFiltered(filter repository.ContractFilter) (int, error) {
	query := `SELECT COUNT(*)` + contractViewJoins + ` WHERE 1=1`
	args := []any{}
	if filter.Search != "" {
		args = append(args, "%"+likeEscape(filter.Search)+"%")
		n := len(args)
		query += fmt.Sprintf(
			` AND (c.contract_number LIKE $%d ESCAPE '\' OR cu.name LIKE $%d ESCAPE '\' OR cu.customer_number LIKE $%d ESCAPE '\')`, n, n, n)
	}
	if filter.Status != nil {
		args = append(args, int(*filter.Status))
		query += fmt.Sprintf(" AND c.status = $%d", len(args))
	}
	var total int
	if err := r.q.QueryRow(context.Background(), query, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("count contracts: %w", err)
	}
	return total, nil
}

// Update ersetzt alle veränderbaren Felder; Duplikate entscheidet der Index.
func (r *ContractRepo) Update(contract *entity.Contract) error {
	const query = `
		UPDATE contracts SET
			contract_number = $2, customer_id = $3, mandant_id = $4, contract_group_id = $5, currency_id = $6,
			contract_type = $7, status = $8, start_date = $9, end_date = $10, is_unlimited = $11,
			notice_period_months = $12, notice_deadline = $13, auto_renew = $14, billing_start_date = $15,
			responsible_sales = $16, responsible_accounting = $17, responsible_pricing = $18, notes = $19,
			updated_at = $20, updated_by = $21
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query,
		contract.ID, contract.ContractNumber,
		contract.CustomerID, contract.MandantID, contract.ContractGroupID, contract.CurrencyID,
		contract.ContractType, contract.Status,
		contract.StartDate, contract.EndDate, contract.IsUnlimited,
		contract.NoticePeriodMonths, contract.NoticeDeadline, contract.AutoRenew, contract.BillingStartDate,
		contract.ResponsibleSales, contract.ResponsibleAccounting, contract.ResponsiblePricing, contract.Notes,
		contract.UpdatedAt, contract.UpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateContractNumber
		}
		return fmt.Errorf("update contract: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete entfernt den Vertrag; Preise und Kundenzuordnungen kaskadieren per FK.
func (r *ContractRepo) Delete(id string) error {
	tag, err := r.q.Exec(context.Background(), `DELETE FROM contracts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete contract: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ReplacePrices ersetzt die Preisliste. Löschen und Neueinfügen committen
// über den TxRunner als eine Einheit.
func (r *ContractRepo) ReplacePrices(contractID string, prices []entity.ContractPrice) error {
	ctx := context.Background()
	if r.runner != nil {
		return r.runner.Run(ctx, func(q Querier) error {
			return (&ContractRepo{q: q}).ReplacePrices(contractID, prices)
		})
	}
	if _, err := r.q.Exec(ctx, `DELETE FROM contract_prices WHERE contract_id = $1`, contractID); err != nil {
		return fmt.Errorf("delete contract_prices: %w", err)
	}
	const query = `
		INSERT INTO contract_prices (
			id, contract_id, price_type_id, valid_from, valid_to, amount, unit, description,
			created_at, created_by, updated_at, updated_by
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	for _, p := range prices {
		if _, err := r.q.Exec(ctx, query,
			p.ID, p.ContractID, p.PriceTypeID, p.ValidFrom, p.ValidTo,
			p.Amount, p.Unit, p.Description,
			p.CreatedAt, p.CreatedBy, p.UpdatedAt, p.UpdatedBy,
		); err != nil {
			return fmt.Errorf("insert contract_price: %w", err)
		}
	}
	return nil
}

// ReplaceContractCustomers ersetzt die Kundenzuordnungen (im TxRunner).
func (r *ContractRepo) ReplaceContractCustomers(contractID string, customers []entity.ContractCustomer) error {
	ctx := context.Background()
	if r.runner != nil {
		return r.runner.Run(ctx, func(q Querier) error {
			return (&ContractRepo{q: q}).ReplaceContractCustomers(contractID, customers)
		})
	}
	if _, err := r.q.Exec(ctx, `DELETE FROM contract_customers WHERE contract_id = $1`, contractID); err != nil {
		return fmt.Errorf("delete contract_customers: %w", err)
	}
	const query = `
		INSERT INTO contract_customers (
			id, contract_id, customer_id, customer_number, role,
			advance_payment_amount, advance_payment_cycle, payment_terms, accounting_reference,
			created_at, created_by, updated_at, updated_by
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	for _, cc := range customers {
		if _, err := r.q.Exec(ctx, query,
			cc.ID, cc.ContractID, cc.CustomerID, cc.CustomerNumber, cc.Role,
			cc.AdvancePaymentAmount, cc.AdvancePaymentCycle, cc.PaymentTerms, cc.AccountingReference,
			cc.CreatedAt, cc.CreatedBy, cc.UpdatedAt, cc.UpdatedBy,
		); err != nil {
			return fmt.Errorf("insert contract_customer: %w", err)
		}
	}
	return nil
}
