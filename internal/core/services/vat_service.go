package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/helvetibooks/fibu_backend/internal/apperrors"
	"github.com/helvetibooks/fibu_backend/internal/core/domain"
	portsrepo "github.com/helvetibooks/fibu_backend/internal/core/ports/repositories"
	portssvc "github.com/helvetibooks/fibu_backend/internal/core/ports/services"
	"github.com/helvetibooks/fibu_backend/internal/dto"
	"github.com/helvetibooks/fibu_backend/internal/utils/ech0217"
)

// vatService owns the VAT return lifecycle and the period calculation.
type vatService struct {
	BaseService
	vatRepo      portsrepo.VatReturnRepositoryFacade
	salesRepo    portsrepo.SalesInvoiceReader
	purchaseRepo portsrepo.PurchaseInvoiceReader
	rateSchedule domain.VatRateSchedule
}

// NewVatService creates a new VAT service. The rate schedule comes from
// configuration and must cover every period the company settles.
func NewVatService(
	vatRepo portsrepo.VatReturnRepositoryFacade,
	salesRepo portsrepo.SalesInvoiceReader,
	purchaseRepo portsrepo.PurchaseInvoiceReader,
	rateSchedule domain.VatRateSchedule,
) portssvc.VatSvcFacade {
	return &vatService{
		vatRepo:      vatRepo,
		salesRepo:    salesRepo,
		purchaseRepo: purchaseRepo,
		rateSchedule: rateSchedule,
	}
}

var _ portssvc.VatSvcFacade = (*vatService)(nil)

// ResolvePeriodWindow computes the inclusive [from, to] date window of a
// settlement period. Dates are UTC; the end date is the last day of the
// period, so February resolves correctly in leap years.
func ResolvePeriodWindow(year int, kind domain.VatPeriodKind, index int) (time.Time, time.Time, error) {
	switch kind {
	case domain.PeriodMonthly:
		if index < 1 || index > 12 {
			return time.Time{}, time.Time{}, fmt.Errorf("%w: month index %d out of range 1..12", apperrors.ErrValidation, index)
		}
		from := time.Date(year, time.Month(index), 1, 0, 0, 0, 0, time.UTC)
		to := from.AddDate(0, 1, -1)
		return from, to, nil
	case domain.PeriodQuarterly:
		if index < 1 || index > 4 {
			return time.Time{}, time.Time{}, fmt.Errorf("%w: quarter index %d out of range 1..4", apperrors.ErrValidation, index)
		}
		from := time.Date(year, time.Month((index-1)*3+1), 1, 0, 0, 0, 0, time.UTC)
		to := from.AddDate(0, 3, -1)
		return from, to, nil
	case domain.PeriodYearly:
		if index != 0 {
			return time.Time{}, time.Time{}, fmt.Errorf("%w: yearly period takes no index, got %d", apperrors.ErrValidation, index)
		}
		from := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
		to := time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC)
		return from, to, nil
	default:
		return time.Time{}, time.Time{}, fmt.Errorf("%w: unknown period kind %q", apperrors.ErrValidation, kind)
	}
}

// CreateReturn opens a draft return for a settlement period. The period is
// exclusive per company; a second return for the same period is rejected.
func (s *vatService) CreateReturn(ctx context.Context, companyID string, req dto.CreateVatReturnRequest, creatorUserID string) (*domain.VatReturn, error) {
	kind := domain.VatPeriodKind(req.PeriodKind)
	if _, _, err := ResolvePeriodWindow(req.Year, kind, req.PeriodIndex); err != nil {
		return nil, err
	}

	existing, err := s.vatRepo.FindReturnByPeriod(ctx, companyID, req.Year, kind, req.PeriodIndex)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		s.LogError(ctx, err, "Failed to check period for existing return", slog.String("company_id", companyID))
		return nil, fmt.Errorf("failed to check settlement period: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: return %s already covers this period", apperrors.ErrDuplicate, existing.ReturnNumber)
	}

	now := time.Now().UTC()
	ret := domain.VatReturn{
		ReturnID:     uuid.NewString(),
		CompanyID:    companyID,
		ReturnNumber: domain.FormatReturnNumber(req.Year, kind, req.PeriodIndex),
		VatNumber:    req.VatNumber,
		Year:         req.Year,
		PeriodKind:   kind,
		PeriodIndex:  req.PeriodIndex,
		Method:       domain.VatMethod(req.Method),
		Status:       domain.VatReturnDraft,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.vatRepo.SaveReturn(ctx, ret); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			// Lost a race against a concurrent create for the same period.
			return nil, fmt.Errorf("%w: a return already covers this period", apperrors.ErrDuplicate)
		}
		s.LogError(ctx, err, "Failed to save VAT return", slog.String("company_id", companyID))
		return nil, fmt.Errorf("failed to save VAT return: %w", err)
	}

	s.LogInfo(ctx, "VAT return created", slog.String("return_id", ret.ReturnID), slog.String("return_number", ret.ReturnNumber))
	return &ret, nil
}

// GetReturnByID retrieves a return.
func (s *vatService) GetReturnByID(ctx context.Context, companyID, returnID string) (*domain.VatReturn, error) {
	ret, err := s.vatRepo.FindReturnByID(ctx, companyID, returnID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find VAT return", slog.String("return_id", returnID))
		}
		return nil, err
	}
	return ret, nil
}

// ListReturns retrieves all returns of a company, newest period first.
func (s *vatService) ListReturns(ctx context.Context, companyID string) ([]domain.VatReturn, error) {
	returns, err := s.vatRepo.ListReturnsByCompany(ctx, companyID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list VAT returns", slog.String("company_id", companyID))
		return nil, fmt.Errorf("failed to retrieve VAT returns: %w", err)
	}
	return returns, nil
}

// CalculateReturn recomputes the declaration snapshot from the finalized
// invoices dated within the return's period window. Running it twice without
// invoice changes yields the same snapshot. The manually corrected input-tax
// buckets survive recalculation; only the material bucket is source-fed.
func (s *vatService) CalculateReturn(ctx context.Context, companyID, returnID, userID string) (*domain.VatReturn, error) {
	ret, err := s.vatRepo.FindReturnByID(ctx, companyID, returnID)
	if err != nil {
		return nil, err
	}

	if ret.Status != domain.VatReturnDraft && ret.Status != domain.VatReturnCalculated {
		return nil, fmt.Errorf("%w: return %s has status %s and can no longer be recalculated", apperrors.ErrConflict, ret.ReturnNumber, ret.Status)
	}

	from, to, err := ResolvePeriodWindow(ret.Year, ret.PeriodKind, ret.PeriodIndex)
	if err != nil {
		return nil, err
	}

	rates, err := s.rateSchedule.RatesAt(to)
	if err != nil {
		s.LogError(ctx, err, "No VAT rates for period", slog.String("return_id", returnID))
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
	}

	sales, err := s.salesRepo.FindFinalizedSales(ctx, companyID, from, to)
	if err != nil {
		s.LogError(ctx, err, "Failed to load sales invoices for period", slog.String("return_id", returnID))
		return nil, fmt.Errorf("failed to load sales invoices: %w", err)
	}
	purchases, err := s.purchaseRepo.FindFinalizedPurchases(ctx, companyID, from, to)
	if err != nil {
		s.LogError(ctx, err, "Failed to load purchase invoices for period", slog.String("return_id", returnID))
		return nil, fmt.Errorf("failed to load purchase invoices: %w", err)
	}

	decl := computeDeclaration(sales, purchases, rates)
	decl.InputTaxInvestments = ret.Declaration.InputTaxInvestments
	decl.InputTaxServices = ret.Declaration.InputTaxServices

	now := time.Now().UTC()
	ret.Declaration = decl
	applyTotals(ret)
	ret.Status = domain.VatReturnCalculated
	ret.CalculatedAt = &now
	ret.LastUpdatedAt = now
	ret.LastUpdatedBy = userID

	if err := s.vatRepo.UpdateReturn(ctx, *ret); err != nil {
		s.LogError(ctx, err, "Failed to persist calculated VAT return", slog.String("return_id", returnID))
		return nil, fmt.Errorf("failed to update VAT return: %w", err)
	}

	s.LogInfo(ctx, "VAT return calculated",
		slog.String("return_id", returnID),
		slog.String("net_payable", ret.NetPayable.StringFixed(2)),
		slog.Int("sales_invoices", len(sales)),
		slog.Int("purchase_invoices", len(purchases)))
	return ret, nil
}

// computeDeclaration buckets finalized invoices into the declaration fields.
// Revenue is qty times unit price per line; output tax per tier is the tier's
// revenue times its rate, rounded to centimes at the tier level.
func computeDeclaration(sales []domain.SalesInvoice, purchases []domain.PurchaseInvoice, rates domain.VatRates) domain.VatDeclarationData {
	var decl domain.VatDeclarationData
	for _, inv := range sales {
		for _, line := range inv.Lines {
			amount := line.Quantity.Mul(line.UnitPrice)
			decl.TotalRevenue = decl.TotalRevenue.Add(amount)
			switch line.VatRateCategory {
			case domain.RateStandard:
				decl.RevenueStandard = decl.RevenueStandard.Add(amount)
			case domain.RateReduced:
				decl.RevenueReduced = decl.RevenueReduced.Add(amount)
			case domain.RateSpecial:
				decl.RevenueSpecial = decl.RevenueSpecial.Add(amount)
			case domain.RateExempt:
				decl.RevenueExempt = decl.RevenueExempt.Add(amount)
			default:
				decl.RevenueOther = decl.RevenueOther.Add(amount)
			}
		}
	}

	decl.OutputTaxStandard = decl.RevenueStandard.Mul(rates.Standard).Round(2)
	decl.OutputTaxReduced = decl.RevenueReduced.Mul(rates.Reduced).Round(2)
	decl.OutputTaxSpecial = decl.RevenueSpecial.Mul(rates.Special).Round(2)

	for _, inv := range purchases {
		decl.InputTaxMaterial = decl.InputTaxMaterial.Add(inv.VatAmount)
	}
	decl.InputTaxMaterial = decl.InputTaxMaterial.Round(2)
	return decl
}

// applyTotals derives the return's total fields from its declaration snapshot.
func applyTotals(ret *domain.VatReturn) {
	d := ret.Declaration
	ret.TotalOutputTax = d.OutputTaxStandard.Add(d.OutputTaxReduced).Add(d.OutputTaxSpecial)
	ret.TotalInputTax = d.InputTaxMaterial.Add(d.InputTaxInvestments).Add(d.InputTaxServices)
	ret.NetPayable = ret.TotalOutputTax.Sub(ret.TotalInputTax)
}

// SubmitReturn transitions a calculated return to submitted. The snapshot is
// frozen from here on; corrections require a status move back via update.
func (s *vatService) SubmitReturn(ctx context.Context, companyID, returnID string, req dto.SubmitVatReturnRequest, userID string) (*domain.VatReturn, error) {
	ret, err := s.vatRepo.FindReturnByID(ctx, companyID, returnID)
	if err != nil {
		return nil, err
	}

	if ret.Status != domain.VatReturnCalculated {
		return nil, fmt.Errorf("%w: return %s has status %s, only CALCULATED returns can be submitted", apperrors.ErrConflict, ret.ReturnNumber, ret.Status)
	}

	now := time.Now().UTC()
	submittedAt := req.SubmissionDate.UTC()
	ret.Status = domain.VatReturnSubmitted
	ret.SubmittedAt = &submittedAt
	ret.SubmissionMethod = req.SubmissionMethod
	ret.SubmissionReference = req.SubmissionReference
	ret.LastUpdatedAt = now
	ret.LastUpdatedBy = userID

	if err := s.vatRepo.UpdateReturn(ctx, *ret); err != nil {
		s.LogError(ctx, err, "Failed to submit VAT return", slog.String("return_id", returnID))
		return nil, fmt.Errorf("failed to submit VAT return: %w", err)
	}

	s.LogInfo(ctx, "VAT return submitted", slog.String("return_id", returnID), slog.String("return_number", ret.ReturnNumber))
	return ret, nil
}

// UpdateReturn merges patch fields into the return. An accepted return is
// final and rejects any further change. Input-tax corrections recompute the
// totals from the merged snapshot.
func (s *vatService) UpdateReturn(ctx context.Context, companyID, returnID string, req dto.UpdateVatReturnRequest, userID string) (*domain.VatReturn, error) {
	ret, err := s.vatRepo.FindReturnByID(ctx, companyID, returnID)
	if err != nil {
		return nil, err
	}

	if ret.Status == domain.VatReturnAccepted {
		return nil, fmt.Errorf("%w: return %s is accepted and can no longer be changed", apperrors.ErrConflict, ret.ReturnNumber)
	}

	if req.Status != nil {
		ret.Status = domain.VatReturnStatus(*req.Status)
	}
	if req.Notes != nil {
		ret.Notes = *req.Notes
	}
	if req.SubmissionReference != nil {
		ret.SubmissionReference = *req.SubmissionReference
	}

	recompute := false
	if req.InputTaxInvestments != nil {
		if req.InputTaxInvestments.IsNegative() {
			return nil, fmt.Errorf("%w: input tax must not be negative", apperrors.ErrValidation)
		}
		ret.Declaration.InputTaxInvestments = *req.InputTaxInvestments
		recompute = true
	}
	if req.InputTaxServices != nil {
		if req.InputTaxServices.IsNegative() {
			return nil, fmt.Errorf("%w: input tax must not be negative", apperrors.ErrValidation)
		}
		ret.Declaration.InputTaxServices = *req.InputTaxServices
		recompute = true
	}
	if recompute {
		applyTotals(ret)
	}

	now := time.Now().UTC()
	ret.LastUpdatedAt = now
	ret.LastUpdatedBy = userID

	if err := s.vatRepo.UpdateReturn(ctx, *ret); err != nil {
		s.LogError(ctx, err, "Failed to update VAT return", slog.String("return_id", returnID))
		return nil, fmt.Errorf("failed to update VAT return: %w", err)
	}

	s.LogInfo(ctx, "VAT return updated", slog.String("return_id", returnID))
	return ret, nil
}

// DeleteReturn removes a draft return. Anything past draft is history.
func (s *vatService) DeleteReturn(ctx context.Context, companyID, returnID, userID string) error {
	ret, err := s.vatRepo.FindReturnByID(ctx, companyID, returnID)
	if err != nil {
		return err
	}

	if ret.Status != domain.VatReturnDraft {
		return fmt.Errorf("%w: return %s has status %s, only DRAFT returns can be deleted", apperrors.ErrConflict, ret.ReturnNumber, ret.Status)
	}

	if err := s.vatRepo.DeleteReturn(ctx, companyID, returnID); err != nil {
		s.LogError(ctx, err, "Failed to delete VAT return", slog.String("return_id", returnID))
		return fmt.Errorf("failed to delete VAT return: %w", err)
	}

	s.LogInfo(ctx, "VAT return deleted", slog.String("return_id", returnID), slog.String("deleted_by", userID))
	return nil
}

// ExportReturn renders the declaration document from the persisted snapshot.
// It never mutates the return and works in any status; a draft simply exports
// an all-zero snapshot.
func (s *vatService) ExportReturn(ctx context.Context, companyID, returnID string) ([]byte, error) {
	ret, err := s.vatRepo.FindReturnByID(ctx, companyID, returnID)
	if err != nil {
		return nil, err
	}

	doc, err := ech0217.Marshal(ech0217.BuildDeclaration(*ret))
	if err != nil {
		s.LogError(ctx, err, "Failed to render VAT declaration", slog.String("return_id", returnID))
		return nil, fmt.Errorf("failed to render declaration: %w", err)
	}
	return doc, nil
}
