package core

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Directory resolves raw names from a source file to canonical entity IDs.
// "Not found" is data (ok=false), not an error. An error means the lookup
// itself failed and the run should abort.
//
// Fuzzy matching is deliberately out of scope here; implementations match
// exactly (case-insensitively) against the master records.
type Directory interface {
	// ResolveCompany resolves a customer name to its canonical company ID.
	ResolveCompany(ctx context.Context, name string) (int, bool, error)
	// ResolveProduct resolves an item name or code to its product ID.
	ResolveProduct(ctx context.Context, ref string) (int, bool, error)
}

// pgDirectory looks entities up in the master tables, scoped to one tenant
// company. Matches are case-insensitive on name, exact on code.
type pgDirectory struct {
	pool      *pgxpool.Pool
	companyID int
}

// NewDirectory builds the pgx-backed Directory for one tenant company.
func NewDirectory(pool *pgxpool.Pool, companyID int) Directory {
	return &pgDirectory{pool: pool, companyID: companyID}
}

func (d *pgDirectory) ResolveCompany(ctx context.Context, name string) (int, bool, error) {
	var id int
	err := d.pool.QueryRow(ctx, `
		SELECT id FROM customers
		WHERE company_id = $1 AND (lower(name) = lower($2) OR code = $2)
	`, d.companyID, strings.TrimSpace(name)).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("failed to resolve customer %q: %w", name, err)
	}
	return id, true, nil
}

func (d *pgDirectory) ResolveProduct(ctx context.Context, ref string) (int, bool, error) {
	var id int
	err := d.pool.QueryRow(ctx, `
		SELECT id FROM products
		WHERE company_id = $1 AND is_active = true AND (lower(name) = lower($2) OR code = $2)
	`, d.companyID, strings.TrimSpace(ref)).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("failed to resolve product %q: %w", ref, err)
	}
	return id, true, nil
}

// ResolveCompanyID looks up the tenant company's internal ID from its code.
func ResolveCompanyID(ctx context.Context, pool *pgxpool.Pool, companyCode string) (int, error) {
	var id int
	err := pool.QueryRow(ctx, "SELECT id FROM companies WHERE company_code = $1", companyCode).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, fmt.Errorf("company code %s not found", companyCode)
		}
		return 0, fmt.Errorf("failed to resolve company %s: %w", companyCode, err)
	}
	return id, nil
}
