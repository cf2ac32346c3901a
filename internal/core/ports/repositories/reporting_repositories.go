package repositories

import (
	"context"
	"time"

	"github.com/helvetibooks/fibu_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ReportingRepository supplies aggregated ledger data. A single call runs as
// one SQL aggregation, so every row reflects the same committed snapshot of
// the ledger.
type ReportingRepository interface {
	// GetAccountBalanceData sums debit and credit across all lines of posted
	// entries for one account, optionally bounded by entry date. Entries whose
	// status moved on to REVERSED still count; their history is offset by the
	// reversal entry's own lines.
	GetAccountBalanceData(ctx context.Context, companyID, accountID string, from, to *time.Time) (decimal.Decimal, decimal.Decimal, error)

	// GetTrialBalanceData aggregates per-account debit/credit totals over the
	// date range for every active account, ordered by account number.
	GetTrialBalanceData(ctx context.Context, companyID string, from, to time.Time) ([]domain.TrialBalanceRow, error)
}
