package repositories

import (
	"context"

	"github.com/helvetibooks/fibu_backend/internal/core/domain"
)

// VatReturnReader defines read operations for VAT returns.
type VatReturnReader interface {
	// FindReturnByID retrieves a return within a company.
	FindReturnByID(ctx context.Context, companyID, returnID string) (*domain.VatReturn, error)

	// FindReturnByPeriod retrieves the return for a specific settlement period,
	// if one exists.
	FindReturnByPeriod(ctx context.Context, companyID string, year int, kind domain.VatPeriodKind, periodIndex int) (*domain.VatReturn, error)

	// ListReturnsByCompany retrieves all returns of a company, newest period first.
	ListReturnsByCompany(ctx context.Context, companyID string) ([]domain.VatReturn, error)
}

// VatReturnWriter defines write operations for VAT returns.
type VatReturnWriter interface {
	// SaveReturn persists a new return. Returns ErrDuplicate when the
	// (company, year, kind, index) period is already taken.
	SaveReturn(ctx context.Context, ret domain.VatReturn) error

	// UpdateReturn persists the full state of an existing return.
	UpdateReturn(ctx context.Context, ret domain.VatReturn) error

	// DeleteReturn removes a return.
	DeleteReturn(ctx context.Context, companyID, returnID string) error
}

// VatReturnRepositoryFacade combines the VAT return repository interfaces.
type VatReturnRepositoryFacade interface {
	VatReturnReader
	VatReturnWriter
}
