package repositories

import (
	"context"
	"time"

	"github.com/helvetibooks/fibu_backend/internal/core/domain"
)

// SalesInvoiceReader supplies finalized sales invoices to the VAT calculator.
// The invoice modules themselves are external collaborators; this core only
// reads them.
type SalesInvoiceReader interface {
	// FindFinalizedSales returns sales invoices dated within [from, to] whose
	// status is SENT, PAID or PARTIALLY_PAID, lines included.
	FindFinalizedSales(ctx context.Context, companyID string, from, to time.Time) ([]domain.SalesInvoice, error)
}

// PurchaseInvoiceReader supplies finalized purchase invoices to the VAT
// calculator.
type PurchaseInvoiceReader interface {
	// FindFinalizedPurchases returns purchase invoices dated within [from, to]
	// whose status is APPROVED or PAID.
	FindFinalizedPurchases(ctx context.Context, companyID string, from, to time.Time) ([]domain.PurchaseInvoice, error)
}
