package models

// AccountType defines the fundamental accounting type of an account.
type AccountType string

const (
	Asset     AccountType = "ASSET"
	Liability AccountType = "LIABILITY"
	Equity    AccountType = "EQUITY"
	Revenue   AccountType = "REVENUE"
	Expense   AccountType = "EXPENSE"
)

// Account mirrors the accounts table row.
type Account struct {
	AccountID     string      `json:"accountID"`
	CompanyID     string      `json:"companyID"`
	AccountNumber string      `json:"accountNumber"`
	Name          string      `json:"name"`
	AccountType   AccountType `json:"accountType"`
	CurrencyCode  string      `json:"currencyCode"`
	IsActive      bool        `json:"isActive"`
	AuditFields
}
