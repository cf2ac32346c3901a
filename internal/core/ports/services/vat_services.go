package services

import (
	"context"

	"github.com/helvetibooks/fibu_backend/internal/core/domain"
	"github.com/helvetibooks/fibu_backend/internal/dto"
)

// VatSvcFacade exposes the VAT return lifecycle and period calculation.
type VatSvcFacade interface {
	// CreateReturn opens a return for a settlement period. At most one return
	// may exist per (company, year, period kind, index).
	CreateReturn(ctx context.Context, companyID string, req dto.CreateVatReturnRequest, creatorUserID string) (*domain.VatReturn, error)

	// GetReturnByID retrieves a return.
	GetReturnByID(ctx context.Context, companyID, returnID string) (*domain.VatReturn, error)

	// ListReturns retrieves all returns of a company.
	ListReturns(ctx context.Context, companyID string) ([]domain.VatReturn, error)

	// CalculateReturn recomputes the declaration snapshot from finalized
	// invoices within the return's period window. Forbidden once submitted.
	CalculateReturn(ctx context.Context, companyID, returnID, userID string) (*domain.VatReturn, error)

	// SubmitReturn transitions a calculated return to submitted, stamping
	// submission metadata.
	SubmitReturn(ctx context.Context, companyID, returnID string, req dto.SubmitVatReturnRequest, userID string) (*domain.VatReturn, error)

	// UpdateReturn merges patch fields into the return. Forbidden once accepted.
	UpdateReturn(ctx context.Context, companyID, returnID string, req dto.UpdateVatReturnRequest, userID string) (*domain.VatReturn, error)

	// DeleteReturn removes a draft return.
	DeleteReturn(ctx context.Context, companyID, returnID, userID string) error

	// ExportReturn renders the statutory declaration document for the return's
	// current snapshot. Does not mutate state.
	ExportReturn(ctx context.Context, companyID, returnID string) ([]byte, error)
}
