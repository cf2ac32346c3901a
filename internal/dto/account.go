package dto

import (
	"github.com/helvetibooks/fibu_backend/internal/core/domain"
)

// CreateAccountRequest defines the payload for creating an account.
type CreateAccountRequest struct {
	AccountNumber string `json:"accountNumber" binding:"required"`
	Name          string `json:"name" binding:"required"`
	AccountType   string `json:"accountType" binding:"required,oneof=ASSET LIABILITY EQUITY REVENUE EXPENSE"`
	CurrencyCode  string `json:"currencyCode" binding:"required,len=3"`
}

// AccountResponse defines the data returned for an account.
type AccountResponse struct {
	AccountID     string `json:"accountID"`
	AccountNumber string `json:"accountNumber"`
	Name          string `json:"name"`
	AccountType   string `json:"accountType"`
	CurrencyCode  string `json:"currencyCode"`
	IsActive      bool   `json:"isActive"`
}

// ToAccountResponse converts a domain.Account to an AccountResponse DTO.
func ToAccountResponse(a *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:     a.AccountID,
		AccountNumber: a.AccountNumber,
		Name:          a.Name,
		AccountType:   string(a.AccountType),
		CurrencyCode:  a.CurrencyCode,
		IsActive:      a.IsActive,
	}
}

// ToAccountResponses converts a slice of domain.Account to []AccountResponse.
func ToAccountResponses(accounts []domain.Account) []AccountResponse {
	responses := make([]AccountResponse, len(accounts))
	for i := range accounts {
		responses[i] = ToAccountResponse(&accounts[i])
	}
	return responses
}
