package core

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// ImportStore is the persistence sink for accepted orders. HashExists answers
// "was this order imported before"; InsertOrder persists the order and claims
// its hash in the same transaction, so a pre-check followed by an insert
// cannot race another import of the same file: the second writer loses the
// hash claim and reports inserted=false.
type ImportStore interface {
	HashExists(ctx context.Context, hash string) (bool, error)
	// InsertOrder persists the row. inserted=false means another run claimed
	// the hash between our existence check and the insert.
	InsertOrder(ctx context.Context, row *NormalizedRow) (inserted bool, err error)
}

type pgImportStore struct {
	pool      *pgxpool.Pool
	companyID int
}

// NewImportStore builds the pgx-backed ImportStore for one tenant company.
func NewImportStore(pool *pgxpool.Pool, companyID int) ImportStore {
	return &pgImportStore{pool: pool, companyID: companyID}
}

func (s *pgImportStore) HashExists(ctx context.Context, hash string) (bool, error) {
	var exists bool
	err := s.pool.QueryRow(ctx,
		"SELECT EXISTS (SELECT 1 FROM import_hashes WHERE company_id = $1 AND hash = $2)",
		s.companyID, hash,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check import hash: %w", err)
	}
	return exists, nil
}

func (s *pgImportStore) InsertOrder(ctx context.Context, row *NormalizedRow) (bool, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to begin import transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	// Claim the hash first. ON CONFLICT DO NOTHING makes the claim atomic
	// across concurrent runs; zero rows affected means someone else won.
	tag, err := tx.Exec(ctx,
		"INSERT INTO import_hashes (company_id, hash) VALUES ($1, $2) ON CONFLICT DO NOTHING",
		s.companyID, row.Hash,
	)
	if err != nil {
		return false, fmt.Errorf("failed to claim import hash: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return false, nil
	}

	var orderID int
	err = tx.QueryRow(ctx, `
		INSERT INTO imported_orders
			(company_id, customer_id, invoice_number, order_date, area, notes, import_hash)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`, s.companyID, row.CompanyID, row.InvoiceNumber, row.OrderDate, row.Area, row.Notes, row.Hash).Scan(&orderID)
	if err != nil {
		return false, fmt.Errorf("failed to insert imported order: %w", err)
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO imported_order_lines
			(order_id, product_id, item_name, quantity, unit, unit_price, line_total)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, orderID, row.ProductID, row.ItemName, row.Quantity, row.Unit, row.Price, row.LineTotal)
	if err != nil {
		return false, fmt.Errorf("failed to insert imported order line: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return false, fmt.Errorf("failed to commit imported order: %w", err)
	}
	return true, nil
}
