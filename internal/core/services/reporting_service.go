package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/helvetibooks/fibu_backend/internal/apperrors"
	"github.com/helvetibooks/fibu_backend/internal/core/domain"
	portsrepo "github.com/helvetibooks/fibu_backend/internal/core/ports/repositories"
	portssvc "github.com/helvetibooks/fibu_backend/internal/core/ports/services"
)

// reportingService computes ledger aggregations.
type reportingService struct {
	BaseService
	reportingRepo portsrepo.ReportingRepository
	accountRepo   portsrepo.AccountReader
}

// NewReportingService creates a new reporting service.
func NewReportingService(reportingRepo portsrepo.ReportingRepository, accountRepo portsrepo.AccountReader) portssvc.ReportingSvcFacade {
	return &reportingService{
		reportingRepo: reportingRepo,
		accountRepo:   accountRepo,
	}
}

var _ portssvc.ReportingSvcFacade = (*reportingService)(nil)

// AccountBalance returns the debit/credit totals and net balance of one
// account over an optional date range.
func (s *reportingService) AccountBalance(ctx context.Context, companyID, accountID string, from, to *time.Time) (*domain.AccountBalance, error) {
	if from != nil && to != nil && to.Before(*from) {
		return nil, fmt.Errorf("%w: 'to' date %s precedes 'from' date %s", apperrors.ErrValidation, to.Format("2006-01-02"), from.Format("2006-01-02"))
	}

	if _, err := s.accountRepo.FindAccountByID(ctx, companyID, accountID); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to resolve account for balance", slog.String("account_id", accountID))
		}
		return nil, err
	}

	debit, credit, err := s.reportingRepo.GetAccountBalanceData(ctx, companyID, accountID, from, to)
	if err != nil {
		s.LogError(ctx, err, "Failed to aggregate account balance", slog.String("account_id", accountID))
		return nil, fmt.Errorf("failed to compute account balance: %w", err)
	}

	return &domain.AccountBalance{
		AccountID:   accountID,
		DebitTotal:  debit,
		CreditTotal: credit,
		Balance:     debit.Sub(credit),
	}, nil
}

// TrialBalance returns per-account totals over the date range, ordered by
// account number. Accounts with no activity in the range are omitted.
func (s *reportingService) TrialBalance(ctx context.Context, companyID string, from, to time.Time) ([]domain.TrialBalanceRow, error) {
	if to.Before(from) {
		return nil, fmt.Errorf("%w: 'to' date %s precedes 'from' date %s", apperrors.ErrValidation, to.Format("2006-01-02"), from.Format("2006-01-02"))
	}

	rows, err := s.reportingRepo.GetTrialBalanceData(ctx, companyID, from, to)
	if err != nil {
		s.LogError(ctx, err, "Failed to aggregate trial balance", slog.String("company_id", companyID))
		return nil, fmt.Errorf("failed to compute trial balance: %w", err)
	}

	active := rows[:0]
	for _, row := range rows {
		if row.DebitTotal.IsZero() && row.CreditTotal.IsZero() {
			continue
		}
		active = append(active, row)
	}
	return active, nil
}
