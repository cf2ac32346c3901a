package repositories

import (
	"context"

	"github.com/helvetibooks/fibu_backend/internal/core/domain"
)

// AccountReader defines read operations against the chart of accounts. All
// lookups are company-scoped; a miss never reveals whether the account exists
// for another company.
type AccountReader interface {
	// FindAccountByID retrieves a single account within a company.
	FindAccountByID(ctx context.Context, companyID, accountID string) (*domain.Account, error)

	// FindAccountsByIDs retrieves the given accounts within a company, keyed by
	// account ID. Missing IDs are simply absent from the map.
	FindAccountsByIDs(ctx context.Context, companyID string, accountIDs []string) (map[string]domain.Account, error)

	// ListActiveAccounts retrieves every active account of a company, ordered
	// by account number.
	ListActiveAccounts(ctx context.Context, companyID string) ([]domain.Account, error)
}

// AccountWriter defines the administrative write operations on the chart of
// accounts.
type AccountWriter interface {
	// SaveAccount persists a new account.
	SaveAccount(ctx context.Context, account domain.Account) error

	// SetAccountActive flips the active flag of an account.
	SetAccountActive(ctx context.Context, companyID, accountID string, active bool, updatedBy string) error
}

// AccountRepositoryFacade combines all account repository interfaces.
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
}
