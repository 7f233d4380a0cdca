package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Schema des Vertragsbestands. Der Unique-Index auf der Vertragsnummer und
// die RESTRICT/CASCADE-Fremdschlüssel sind Teil der Invarianten, nicht nur
// der Anwendungslogik.
var migrationStatements = []string{
	`CREATE TABLE IF NOT EXISTS customers (
		id UUID PRIMARY KEY,
		customer_number VARCHAR(50) NOT NULL,
		name VARCHAR(200) NOT NULL,
		address VARCHAR(200) NOT NULL DEFAULT '',
		postal_code VARCHAR(10) NOT NULL DEFAULT '',
		city VARCHAR(100) NOT NULL DEFAULT '',
		email VARCHAR(100) NOT NULL DEFAULT '',
		phone VARCHAR(50) NOT NULL DEFAULT '',
		is_active BOOLEAN NOT NULL DEFAULT TRUE,
		created_at TIMESTAMPTZ NOT NULL,
		created_by VARCHAR(100) NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL,
		updated_by VARCHAR(100) NOT NULL
	);`,
	`CREATE UNIQUE INDEX IF NOT EXISTS uq_customers_number ON customers (customer_number);`,
	`CREATE TABLE IF NOT EXISTS mandants (
		id UUID PRIMARY KEY,
		code VARCHAR(20) NOT NULL,
		name VARCHAR(200) NOT NULL,
		description VARCHAR(500) NOT NULL DEFAULT '',
		is_active BOOLEAN NOT NULL DEFAULT TRUE,
		created_at TIMESTAMPTZ NOT NULL,
		created_by VARCHAR(100) NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL,
		updated_by VARCHAR(100) NOT NULL
	);`,
	`CREATE UNIQUE INDEX IF NOT EXISTS uq_mandants_code ON mandants (code);`,
	`CREATE TABLE IF NOT EXISTS contract_groups (
		id UUID PRIMARY KEY,
		code VARCHAR(20) NOT NULL,
		name VARCHAR(200) NOT NULL,
		description VARCHAR(500) NOT NULL DEFAULT '',
		is_active BOOLEAN NOT NULL DEFAULT TRUE,
		created_at TIMESTAMPTZ NOT NULL,
		created_by VARCHAR(100) NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL,
		updated_by VARCHAR(100) NOT NULL
	);`,
	`CREATE UNIQUE INDEX IF NOT EXISTS uq_contract_groups_code ON contract_groups (code);`,
	`CREATE TABLE IF NOT EXISTS currencies (
		id UUID PRIMARY KEY,
		code VARCHAR(3) NOT NULL,
		name VARCHAR(100) NOT NULL,
		symbol VARCHAR(5) NOT NULL,
		is_active BOOLEAN NOT NULL DEFAULT TRUE,
		created_at TIMESTAMPTZ NOT NULL,
		created_by VARCHAR(100) NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL,
		updated_by VARCHAR(100) NOT NULL
	);`,
	`CREATE UNIQUE INDEX IF NOT EXISTS uq_currencies_code ON currencies (code);`,
	`CREATE TABLE IF NOT EXISTS price_types (
		id UUID PRIMARY KEY,
		code VARCHAR(20) NOT NULL,
		name VARCHAR(100) NOT NULL,
		description VARCHAR(500) NOT NULL DEFAULT '',
		default_unit VARCHAR(50) NOT NULL DEFAULT '',
		is_active BOOLEAN NOT NULL DEFAULT TRUE,
		created_at TIMESTAMPTZ NOT NULL,
		created_by VARCHAR(100) NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL,
		updated_by VARCHAR(100) NOT NULL
	);`,
	`CREATE UNIQUE INDEX IF NOT EXISTS uq_price_types_code ON price_types (code);`,
	`CREATE TABLE IF NOT EXISTS contracts (
		id UUID PRIMARY KEY,
		contract_number VARCHAR(50) NOT NULL,
		customer_id UUID NOT NULL REFERENCES customers(id) ON DELETE RESTRICT,
		mandant_id UUID NOT NULL REFERENCES mandants(id) ON DELETE RESTRICT,
		contract_group_id UUID NOT NULL REFERENCES contract_groups(id) ON DELETE RESTRICT,
		currency_id UUID NOT NULL REFERENCES currencies(id) ON DELETE RESTRICT,
		contract_type SMALLINT NOT NULL,
		status SMALLINT NOT NULL,
		start_date TIMESTAMPTZ NOT NULL,
		end_date TIMESTAMPTZ,
		is_unlimited BOOLEAN NOT NULL DEFAULT FALSE,
		notice_period_months SMALLINT NOT NULL DEFAULT 3 CHECK (notice_period_months BETWEEN 0 AND 120),
		notice_deadline TIMESTAMPTZ,
		auto_renew BOOLEAN NOT NULL DEFAULT FALSE,
		billing_start_date TIMESTAMPTZ NOT NULL,
		responsible_sales VARCHAR(100) NOT NULL DEFAULT '',
		responsible_accounting VARCHAR(100) NOT NULL DEFAULT '',
		responsible_pricing VARCHAR(100) NOT NULL DEFAULT '',
		notes VARCHAR(2000) NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL,
		created_by VARCHAR(100) NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL,
		updated_by VARCHAR(100) NOT NULL
	);`,
	`CREATE UNIQUE INDEX IF NOT EXISTS uq_contracts_number ON contracts (contract_number);`,
	`CREATE INDEX IF NOT EXISTS idx_contracts_created_at ON contracts (created_at DESC, id DESC);`,
	`CREATE INDEX IF NOT EXISTS idx_contracts_status ON contracts (status);`,
	`CREATE TABLE IF NOT EXISTS contract_prices (
		id UUID PRIMARY KEY,
		contract_id UUID NOT NULL REFERENCES contracts(id) ON DELETE CASCADE,
		price_type_id UUID NOT NULL REFERENCES price_types(id) ON DELETE RESTRICT,
		valid_from TIMESTAMPTZ NOT NULL,
		valid_to TIMESTAMPTZ,
		amount NUMERIC(18,4) NOT NULL,
		unit VARCHAR(50) NOT NULL DEFAULT '',
		description VARCHAR(500) NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL,
		created_by VARCHAR(100) NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL,
		updated_by VARCHAR(100) NOT NULL
	);`,
	`CREATE INDEX IF NOT EXISTS idx_contract_prices_contract ON contract_prices (contract_id);`,
	`CREATE TABLE IF NOT EXISTS contract_customers (
		id UUID PRIMARY KEY,
		contract_id UUID NOT NULL REFERENCES contracts(id) ON DELETE CASCADE,
		customer_id UUID NOT NULL REFERENCES customers(id) ON DELETE RESTRICT,
		customer_number VARCHAR(50) NOT NULL DEFAULT '',
		role SMALLINT NOT NULL DEFAULT 0,
		advance_payment_amount NUMERIC(18,2) NOT NULL DEFAULT 0,
		advance_payment_cycle SMALLINT NOT NULL DEFAULT 1,
		payment_terms VARCHAR(500) NOT NULL DEFAULT '',
		accounting_reference VARCHAR(100) NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL,
		created_by VARCHAR(100) NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL,
		updated_by VARCHAR(100) NOT NULL
	);`,
	`CREATE INDEX IF NOT EXISTS idx_contract_customers_contract ON contract_customers (contract_id);`,
}

// Stammdaten des Altbestands, idempotent eingespielt.
var seedStatements = []string{
	`INSERT INTO currencies (id, code, name, symbol, is_active, created_at, created_by, updated_at, updated_by)
	 VALUES ('11111111-1111-1111-1111-111111111111', 'EUR', 'Euro', '€', TRUE, now(), 'System', now(), 'System')
	 ON CONFLICT (id) DO NOTHING;`,
	`INSERT INTO mandants (id, code, name, description, is_active, created_at, created_by, updated_at, updated_by)
	 VALUES ('22222222-2222-2222-2222-222222222222', 'M1', 'Mandant 1', 'Hauptmandant', TRUE, now(), 'System', now(), 'System')
	 ON CONFLICT (id) DO NOTHING;`,
	`INSERT INTO contract_groups (id, code, name, description, is_active, created_at, created_by, updated_at, updated_by)
	 VALUES ('33333333-3333-3333-3333-333333333333', 'SK', 'Sonderkunden', 'Vertrags-Sonderkunden EVU', TRUE, now(), 'System', now(), 'System')
	 ON CONFLICT (id) DO NOTHING;`,
	`INSERT INTO price_types (id, code, name, description, default_unit, is_active, created_at, created_by, updated_at, updated_by)
	 VALUES
		('44444444-4444-4444-4444-444444444444', 'AP', 'Arbeitspreis', 'Arbeitspreis pro kWh', 'kWh', TRUE, now(), 'System', now(), 'System'),
		('44444444-4444-4444-4444-444444444445', 'GP', 'Grundpreis', 'Monatlicher Grundpreis', 'Monat', TRUE, now(), 'System', now(), 'System')
	 ON CONFLICT (id) DO NOTHING;`,
	`INSERT INTO customers (id, customer_number, name, address, postal_code, city, email, phone, is_active, created_at, created_by, updated_at, updated_by)
	 VALUES
		('55555555-5555-5555-5555-555555555555', 'K-12345', 'EVU Musterkunde GmbH', 'Musterstraße 123', '12345', 'Musterstadt', 'kontakt@evu-musterkunde.de', '+49 123 456789', TRUE, now(), 'System', now(), 'System'),
		('55555555-5555-5555-5555-555555555556', 'K-67890', 'Stadtwerke Beispielstadt AG', 'Energieweg 45', '67890', 'Beispielstadt', 'info@stadtwerke-beispiel.de', '+49 987 654321', TRUE, now(), 'System', now(), 'System')
	 ON CONFLICT (id) DO NOTHING;`,
}

// Migrate legt das Schema an und spielt optional die Stammdaten ein.
func Migrate(ctx context.Context, pool *pgxpool.Pool, seed bool) error {
	for i, stmt := range migrationStatements {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("migration %d: %w", i+1, err)
		}
	}
	if seed {
		for i, stmt := range seedStatements {
			if _, err := pool.Exec(ctx, stmt); err != nil {
				return fmt.Errorf("seed %d: %w", i+1, err)
			}
		}
	}
	return nil
}
