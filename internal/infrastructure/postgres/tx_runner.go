package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// TxRunner führt Callbacks innerhalb einer PostgreSQL-Transaktion aus.
// Die Repositories laufen über Querier und damit unverändert auf der Tx.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner baut den Runner über dem Pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run startet eine Transaktion, ruft fn mit der Tx als Querier auf und
// committet; jeder Fehler rollt zurück.
func (r *TxRunner) Run(ctx context.Context, fn func(q Querier) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
