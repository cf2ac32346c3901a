package services

import (
	"context"

	"github.com/helvetibooks/fibu_backend/internal/core/domain"
	"github.com/helvetibooks/fibu_backend/internal/dto"
)

// AccountSvcFacade exposes chart-of-accounts operations. The ledger core only
// reads accounts; the write operations are administrative glue.
type AccountSvcFacade interface {
	CreateAccount(ctx context.Context, companyID string, req dto.CreateAccountRequest, creatorUserID string) (*domain.Account, error)
	GetAccountByID(ctx context.Context, companyID, accountID string) (*domain.Account, error)
	GetAccountsByIDs(ctx context.Context, companyID string, accountIDs []string) (map[string]domain.Account, error)
	ListActiveAccounts(ctx context.Context, companyID string) ([]domain.Account, error)
	DeactivateAccount(ctx context.Context, companyID, accountID, userID string) error
}
