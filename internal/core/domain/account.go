package domain

// AccountType defines the fundamental accounting type of an account.
type AccountType string

const (
	Asset     AccountType = "ASSET"
	Liability AccountType = "LIABILITY"
	Equity    AccountType = "EQUITY"
	Revenue   AccountType = "REVENUE"
	Expense   AccountType = "EXPENSE"
)

// Account represents an entry in the chart of accounts. The ledger core only
// reads accounts; creation and deactivation are administrative glue.
type Account struct {
	AccountID     string      `json:"accountID"`     // Primary Key (UUID)
	CompanyID     string      `json:"companyID"`     // FK -> companies.company_id (NON-NULL)
	AccountNumber string      `json:"accountNumber"` // Chart-of-accounts number, e.g. "1020"
	Name          string      `json:"name"`          // Display name
	AccountType   AccountType `json:"accountType"`   // ASSET, LIABILITY, etc.
	CurrencyCode  string      `json:"currencyCode"`  // ISO code, e.g. CHF
	IsActive      bool        `json:"isActive"`      // Inactive accounts cannot be booked against
	AuditFields
}
