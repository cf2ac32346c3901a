package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/helvetibooks/fibu_backend/internal/core/domain"
	portsrepo "github.com/helvetibooks/fibu_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// reportingRepository implements the ReportingRepository interface
type reportingRepository struct {
	BaseRepository
}

// newReportingRepository creates a new reporting repository
func newReportingRepository(db *pgxpool.Pool) portsrepo.ReportingRepository {
	return &reportingRepository{
		BaseRepository: BaseRepository{Pool: db},
	}
}

// GetAccountBalanceData sums debit and credit across all lines of posted
// entries for one account. Entries whose status moved on to REVERSED still
// count; their history is offset by the reversal entry's own lines.
func (r *reportingRepository) GetAccountBalanceData(ctx context.Context, companyID, accountID string, from, to *time.Time) (decimal.Decimal, decimal.Decimal, error) {
	query := `
		SELECT
			COALESCE(SUM(l.debit), 0) AS total_debit,
			COALESCE(SUM(l.credit), 0) AS total_credit
		FROM journal_lines l
		JOIN journal_entries e ON l.entry_id = e.entry_id
		WHERE e.company_id = $1
			AND l.account_id = $2
			AND e.status IN ('POSTED', 'REVERSED')
			AND ($3::timestamptz IS NULL OR e.entry_date >= $3)
			AND ($4::timestamptz IS NULL OR e.entry_date <= $4)
	`

	var totalDebit, totalCredit decimal.Decimal
	if err := r.Pool.QueryRow(ctx, query, companyID, accountID, from, to).Scan(&totalDebit, &totalCredit); err != nil {
		return decimal.Zero, decimal.Zero, fmt.Errorf("error querying account balance data: %w", err)
	}

	return totalDebit, totalCredit, nil
}

// GetTrialBalanceData aggregates per-account debit/credit totals over the
// date range for every active account, ordered by account number.
func (r *reportingRepository) GetTrialBalanceData(ctx context.Context, companyID string, from, to time.Time) ([]domain.TrialBalanceRow, error) {
	query := `
		SELECT
			a.account_id,
			a.account_number,
			a.name AS account_name,
			a.account_type,
			COALESCE(SUM(l.debit), 0) AS total_debit,
			COALESCE(SUM(l.credit), 0) AS total_credit
		FROM accounts a
		LEFT JOIN (
			SELECT l.account_id, l.debit, l.credit
			FROM journal_lines l
			JOIN journal_entries e ON l.entry_id = e.entry_id
			WHERE e.company_id = $1
				AND e.status IN ('POSTED', 'REVERSED')
				AND e.entry_date BETWEEN $2 AND $3
		) l ON l.account_id = a.account_id
		WHERE a.company_id = $1
			AND a.is_active = TRUE
		GROUP BY a.account_id, a.account_number, a.name, a.account_type
		ORDER BY a.account_number
	`

	rows, err := r.Pool.Query(ctx, query, companyID, from, to)
	if err != nil {
		return nil, fmt.Errorf("error querying trial balance data: %w", err)
	}
	defer rows.Close()

	var result []domain.TrialBalanceRow
	for rows.Next() {
		var row domain.TrialBalanceRow
		var accountType string

		if err := rows.Scan(
			&row.AccountID,
			&row.AccountNumber,
			&row.AccountName,
			&accountType,
			&row.DebitTotal,
			&row.CreditTotal,
		); err != nil {
			return nil, fmt.Errorf("error scanning trial balance row: %w", err)
		}

		row.AccountType = domain.AccountType(accountType)
		row.Balance = row.DebitTotal.Sub(row.CreditTotal)
		result = append(result, row)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating trial balance rows: %w", err)
	}

	if len(result) == 0 {
		// Return empty slice instead of nil
		return []domain.TrialBalanceRow{}, nil
	}

	return result, nil
}
