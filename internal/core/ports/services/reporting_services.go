package services

import (
	"context"
	"time"

	"github.com/helvetibooks/fibu_backend/internal/core/domain"
)

// ReportingSvcFacade exposes ledger aggregation reads.
type ReportingSvcFacade interface {
	// AccountBalance returns the debit/credit totals and net balance of one
	// account over an optional date range, posted entries only.
	AccountBalance(ctx context.Context, companyID, accountID string, from, to *time.Time) (*domain.AccountBalance, error)

	// TrialBalance returns the per-account totals over a date range, ordered
	// by account number, rows with no activity omitted.
	TrialBalance(ctx context.Context, companyID string, from, to time.Time) ([]domain.TrialBalanceRow, error)
}
