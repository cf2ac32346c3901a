package dto

import (
	"time"

	"github.com/helvetibooks/fibu_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// TrialBalanceRowResponse is one row of the trial balance report.
type TrialBalanceRowResponse struct {
	AccountID     string          `json:"accountID"`
	AccountNumber string          `json:"accountNumber"`
	AccountName   string          `json:"accountName"`
	AccountType   string          `json:"accountType"`
	DebitTotal    decimal.Decimal `json:"debitTotal"`
	CreditTotal   decimal.Decimal `json:"creditTotal"`
	Balance       decimal.Decimal `json:"balance"`
}

// TrialBalanceResponse is the full trial balance report payload.
type TrialBalanceResponse struct {
	From time.Time                 `json:"from"`
	To   time.Time                 `json:"to"`
	Rows []TrialBalanceRowResponse `json:"rows"`
}

// AccountBalanceResponse is the aggregated activity of one account.
type AccountBalanceResponse struct {
	AccountID   string          `json:"accountID"`
	DebitTotal  decimal.Decimal `json:"debitTotal"`
	CreditTotal decimal.Decimal `json:"creditTotal"`
	Balance     decimal.Decimal `json:"balance"`
}

// ToTrialBalanceRowResponses converts domain trial balance rows to DTOs.
func ToTrialBalanceRowResponses(rows []domain.TrialBalanceRow) []TrialBalanceRowResponse {
	out := make([]TrialBalanceRowResponse, len(rows))
	for i, r := range rows {
		out[i] = TrialBalanceRowResponse{
			AccountID:     r.AccountID,
			AccountNumber: r.AccountNumber,
			AccountName:   r.AccountName,
			AccountType:   string(r.AccountType),
			DebitTotal:    r.DebitTotal,
			CreditTotal:   r.CreditTotal,
			Balance:       r.Balance,
		}
	}
	return out
}

// ToAccountBalanceResponse converts a domain.AccountBalance to its DTO.
func ToAccountBalanceResponse(b *domain.AccountBalance) AccountBalanceResponse {
	return AccountBalanceResponse{
		AccountID:   b.AccountID,
		DebitTotal:  b.DebitTotal,
		CreditTotal: b.CreditTotal,
		Balance:     b.Balance,
	}
}
