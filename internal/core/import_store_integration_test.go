package core_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"

	"syncolow/internal/core"
)

func setupTestDB(t *testing.T) *pgxpool.Pool {
	_ = godotenv.Load("../../.env")

	// Use a dedicated TEST database to avoid wiping the live app database.
	// Set TEST_DATABASE_URL in your .env or environment to run integration tests.
	dbURL := os.Getenv("TEST_DATABASE_URL")
	if dbURL == "" {
		t.Skip("TEST_DATABASE_URL not set, skipping integration test to protect live database")
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dbURL)
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}

	_, err = pool.Exec(ctx, `
		TRUNCATE TABLE imported_order_lines, imported_orders, import_hashes, products, customers, companies CASCADE;

		INSERT INTO companies (id, company_code, name) VALUES (1, 'ACME', 'Test Company');

		INSERT INTO customers (id, company_id, code, name) VALUES
		(10, 1, 'C-1', 'Acme GmbH');

		INSERT INTO products (id, company_id, code, name, is_active) VALUES
		(20, 1, 'P-1', 'Widget', true),
		(21, 1, 'P-2', 'Retired Widget', false);
	`)
	if err != nil {
		t.Fatalf("Failed to seed test database: %v", err)
	}

	return pool
}

func testNormalizedRow(hash string) *core.NormalizedRow {
	date := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	return &core.NormalizedRow{
		RowIndex:      1,
		InvoiceNumber: "INV-1",
		OrderDate:     &date,
		CustomerName:  "Acme GmbH",
		CompanyID:     10,
		ItemName:      "Widget",
		ProductID:     20,
		Quantity:      decimal.NewFromInt(5),
		Unit:          "pcs",
		Price:         decimal.RequireFromString("10.50"),
		LineTotal:     decimal.RequireFromString("52.50"),
		Hash:          hash,
	}
}

func TestImportStore_HashClaim(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()

	store := core.NewImportStore(pool, 1)
	ctx := context.Background()

	exists, err := store.HashExists(ctx, "aaaabbbbccccdddd")
	if err != nil {
		t.Fatal(err)
	}
	if exists {
		t.Fatal("hash exists before any insert")
	}

	inserted, err := store.InsertOrder(ctx, testNormalizedRow("aaaabbbbccccdddd"))
	if err != nil {
		t.Fatal(err)
	}
	if !inserted {
		t.Fatal("first insert lost the hash claim")
	}

	exists, err = store.HashExists(ctx, "aaaabbbbccccdddd")
	if err != nil {
		t.Fatal(err)
	}
	if !exists {
		t.Fatal("hash not visible after insert")
	}

	// A second insert of the same hash must lose the claim without erroring
	// and must not write a second order.
	inserted, err = store.InsertOrder(ctx, testNormalizedRow("aaaabbbbccccdddd"))
	if err != nil {
		t.Fatal(err)
	}
	if inserted {
		t.Fatal("duplicate insert claimed the hash again")
	}

	var orders int
	if err := pool.QueryRow(ctx, "SELECT count(*) FROM imported_orders").Scan(&orders); err != nil {
		t.Fatal(err)
	}
	if orders != 1 {
		t.Fatalf("imported_orders count = %d, want 1", orders)
	}
}

func TestDirectory_Resolution(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()

	dir := core.NewDirectory(pool, 1)
	ctx := context.Background()

	id, ok, err := dir.ResolveCompany(ctx, "acme gmbh")
	if err != nil {
		t.Fatal(err)
	}
	if !ok || id != 10 {
		t.Errorf("ResolveCompany = (%d, %v), want (10, true)", id, ok)
	}

	_, ok, err = dir.ResolveCompany(ctx, "Nonexistent Ltd")
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Error("unknown customer resolved")
	}

	id, ok, err = dir.ResolveProduct(ctx, "P-1")
	if err != nil {
		t.Fatal(err)
	}
	if !ok || id != 20 {
		t.Errorf("ResolveProduct by code = (%d, %v), want (20, true)", id, ok)
	}

	_, ok, err = dir.ResolveProduct(ctx, "Retired Widget")
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Error("inactive product resolved")
	}
}

func TestResolveCompanyID(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()

	ctx := context.Background()
	id, err := core.ResolveCompanyID(ctx, pool, "ACME")
	if err != nil {
		t.Fatal(err)
	}
	if id != 1 {
		t.Errorf("id = %d, want 1", id)
	}

	if _, err := core.ResolveCompanyID(ctx, pool, "NOPE"); err == nil {
		t.Error("unknown company code did not error")
	}
}
