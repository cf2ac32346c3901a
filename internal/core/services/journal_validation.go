package services

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/helvetibooks/fibu_backend/internal/apperrors"
	"github.com/helvetibooks/fibu_backend/internal/core/domain"
	"github.com/helvetibooks/fibu_backend/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

var (
	ErrEntryUnbalanced = errors.New("journal entry debits and credits do not balance")
	ErrEntryMinLines   = errors.New("journal entry must have at least two lines")
	ErrNegativeAmount  = errors.New("line amounts must not be negative")
	ErrAccountNotFound = errors.New("account not found")
	ErrAccountInactive = errors.New("account is inactive")
)

// validateEntryLines enforces the balance and referential invariants on a
// proposed set of lines. It is a pure check with no side effects; accounts
// must already be fetched for the calling company.
//
// Every rejection wraps apperrors.ErrValidation and names the specific
// discrepancy or identifiers so the caller can present a precise message.
func validateEntryLines(companyID string, lines []domain.JournalLine, accounts map[string]domain.Account) error {
	if len(lines) < 2 {
		return fmt.Errorf("%w: %w", apperrors.ErrValidation, ErrEntryMinLines)
	}

	for _, line := range lines {
		if line.Debit.IsNegative() || line.Credit.IsNegative() {
			return fmt.Errorf("%w: %w: account %s (debit %s, credit %s)",
				apperrors.ErrValidation, ErrNegativeAmount, line.AccountID, line.Debit.String(), line.Credit.String())
		}
	}

	if accounting.Imbalance(lines).GreaterThan(domain.BalanceTolerance) {
		totalDebit, totalCredit := accounting.SumSides(lines)
		return fmt.Errorf("%w: %w: total debit is %s and total credit is %s",
			apperrors.ErrValidation, ErrEntryUnbalanced, totalDebit.String(), totalCredit.String())
	}

	var missing []string
	for _, id := range distinctAccountIDs(lines) {
		acc, found := accounts[id]
		if !found || acc.CompanyID != companyID {
			missing = append(missing, id)
			continue
		}
		if !acc.IsActive {
			return fmt.Errorf("%w: %w: account %s", apperrors.ErrValidation, ErrAccountInactive, id)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %w: %s", apperrors.ErrValidation, ErrAccountNotFound, strings.Join(missing, ", "))
	}

	return nil
}

// distinctAccountIDs returns the sorted distinct account IDs referenced by the lines.
func distinctAccountIDs(lines []domain.JournalLine) []string {
	seen := make(map[string]struct{}, len(lines))
	result := make([]string, 0, len(lines))
	for _, line := range lines {
		if _, ok := seen[line.AccountID]; !ok {
			seen[line.AccountID] = struct{}{}
			result = append(result, line.AccountID)
		}
	}
	sort.Strings(result)
	return result
}

// totalDebitSide returns the entry total: the sum of the debit side. For a
// balanced entry both sides carry the same economic value.
func totalDebitSide(lines []domain.JournalLine) decimal.Decimal {
	total := decimal.Zero
	for _, line := range lines {
		total = total.Add(line.Debit)
	}
	return total
}
