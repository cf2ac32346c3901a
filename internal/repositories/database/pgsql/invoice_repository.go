package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/helvetibooks/fibu_backend/internal/core/domain"
	portsrepo "github.com/helvetibooks/fibu_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxSalesInvoiceRepository struct {
	pool *pgxpool.Pool
}

// newPgxSalesInvoiceRepository creates a read-only repository over sales
// invoice data for the VAT calculator.
func newPgxSalesInvoiceRepository(pool *pgxpool.Pool) portsrepo.SalesInvoiceReader {
	return &PgxSalesInvoiceRepository{pool: pool}
}

var _ portsrepo.SalesInvoiceReader = (*PgxSalesInvoiceRepository)(nil)

// FindFinalizedSales returns sales invoices dated within [from, to] whose
// status counts towards the VAT period, lines included.
func (r *PgxSalesInvoiceRepository) FindFinalizedSales(ctx context.Context, companyID string, from, to time.Time) ([]domain.SalesInvoice, error) {
	query := `
		SELECT invoice_id, company_id, invoice_date, status
		FROM sales_invoices
		WHERE company_id = $1 AND invoice_date BETWEEN $2 AND $3
		  AND status IN ('SENT', 'PAID', 'PARTIALLY_PAID')
		ORDER BY invoice_date;
	`
	rows, err := r.pool.Query(ctx, query, companyID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query sales invoices for company %s: %w", companyID, err)
	}
	defer rows.Close()

	invoices := []domain.SalesInvoice{}
	index := map[string]int{}
	for rows.Next() {
		var inv domain.SalesInvoice
		if err := rows.Scan(&inv.InvoiceID, &inv.CompanyID, &inv.InvoiceDate, &inv.Status); err != nil {
			return nil, fmt.Errorf("failed to scan sales invoice row: %w", err)
		}
		index[inv.InvoiceID] = len(invoices)
		invoices = append(invoices, inv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating sales invoice rows: %w", err)
	}
	if len(invoices) == 0 {
		return invoices, nil
	}

	invoiceIDs := make([]string, 0, len(invoices))
	for _, inv := range invoices {
		invoiceIDs = append(invoiceIDs, inv.InvoiceID)
	}

	lineQuery := `
		SELECT invoice_id, quantity, unit_price, vat_rate_category
		FROM sales_invoice_lines
		WHERE invoice_id = ANY($1)
		ORDER BY invoice_id, sort_order;
	`
	lineRows, err := r.pool.Query(ctx, lineQuery, invoiceIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query sales invoice lines: %w", err)
	}
	defer lineRows.Close()

	for lineRows.Next() {
		var invoiceID string
		var line domain.SalesInvoiceLine
		if err := lineRows.Scan(&invoiceID, &line.Quantity, &line.UnitPrice, &line.VatRateCategory); err != nil {
			return nil, fmt.Errorf("failed to scan sales invoice line row: %w", err)
		}
		if i, ok := index[invoiceID]; ok {
			invoices[i].Lines = append(invoices[i].Lines, line)
		}
	}
	if err := lineRows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating sales invoice line rows: %w", err)
	}

	return invoices, nil
}

type PgxPurchaseInvoiceRepository struct {
	pool *pgxpool.Pool
}

// newPgxPurchaseInvoiceRepository creates a read-only repository over purchase
// invoice data for the VAT calculator.
func newPgxPurchaseInvoiceRepository(pool *pgxpool.Pool) portsrepo.PurchaseInvoiceReader {
	return &PgxPurchaseInvoiceRepository{pool: pool}
}

var _ portsrepo.PurchaseInvoiceReader = (*PgxPurchaseInvoiceRepository)(nil)

// FindFinalizedPurchases returns purchase invoices dated within [from, to]
// whose status contributes input tax.
func (r *PgxPurchaseInvoiceRepository) FindFinalizedPurchases(ctx context.Context, companyID string, from, to time.Time) ([]domain.PurchaseInvoice, error) {
	query := `
		SELECT invoice_id, company_id, invoice_date, status, vat_amount
		FROM purchase_invoices
		WHERE company_id = $1 AND invoice_date BETWEEN $2 AND $3
		  AND status IN ('APPROVED', 'PAID')
		ORDER BY invoice_date;
	`
	rows, err := r.pool.Query(ctx, query, companyID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query purchase invoices for company %s: %w", companyID, err)
	}
	defer rows.Close()

	invoices := []domain.PurchaseInvoice{}
	for rows.Next() {
		var inv domain.PurchaseInvoice
		if err := rows.Scan(&inv.InvoiceID, &inv.CompanyID, &inv.InvoiceDate, &inv.Status, &inv.VatAmount); err != nil {
			return nil, fmt.Errorf("failed to scan purchase invoice row: %w", err)
		}
		invoices = append(invoices, inv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating purchase invoice rows: %w", err)
	}

	return invoices, nil
}
