package accounting

import (
	"github.com/helvetibooks/fibu_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// SumSides returns the total debit and total credit across a set of lines.
func SumSides(lines []domain.JournalLine) (decimal.Decimal, decimal.Decimal) {
	totalDebit := decimal.Zero
	totalCredit := decimal.Zero
	for _, line := range lines {
		totalDebit = totalDebit.Add(line.Debit)
		totalCredit = totalCredit.Add(line.Credit)
	}
	return totalDebit, totalCredit
}

// Imbalance returns |totalDebit - totalCredit| for a set of lines.
func Imbalance(lines []domain.JournalLine) decimal.Decimal {
	totalDebit, totalCredit := SumSides(lines)
	return totalDebit.Sub(totalCredit).Abs()
}
