package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/helvetibooks/fibu_backend/internal/apperrors"
	"github.com/helvetibooks/fibu_backend/internal/core/domain"
	portsrepo "github.com/helvetibooks/fibu_backend/internal/core/ports/repositories"
	portssvc "github.com/helvetibooks/fibu_backend/internal/core/ports/services"
	"github.com/helvetibooks/fibu_backend/internal/core/services"
	"github.com/helvetibooks/fibu_backend/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock VatReturnRepository ---
type MockVatReturnRepository struct {
	mock.Mock
}

var _ portsrepo.VatReturnRepositoryFacade = (*MockVatReturnRepository)(nil)

func (m *MockVatReturnRepository) FindReturnByID(ctx context.Context, companyID, returnID string) (*domain.VatReturn, error) {
	args := m.Called(ctx, companyID, returnID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.VatReturn), args.Error(1)
}

func (m *MockVatReturnRepository) FindReturnByPeriod(ctx context.Context, companyID string, year int, kind domain.VatPeriodKind, periodIndex int) (*domain.VatReturn, error) {
	args := m.Called(ctx, companyID, year, kind, periodIndex)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.VatReturn), args.Error(1)
}

func (m *MockVatReturnRepository) ListReturnsByCompany(ctx context.Context, companyID string) ([]domain.VatReturn, error) {
	args := m.Called(ctx, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.VatReturn), args.Error(1)
}

func (m *MockVatReturnRepository) SaveReturn(ctx context.Context, ret domain.VatReturn) error {
	args := m.Called(ctx, ret)
	return args.Error(0)
}

func (m *MockVatReturnRepository) UpdateReturn(ctx context.Context, ret domain.VatReturn) error {
	args := m.Called(ctx, ret)
	return args.Error(0)
}

func (m *MockVatReturnRepository) DeleteReturn(ctx context.Context, companyID, returnID string) error {
	args := m.Called(ctx, companyID, returnID)
	return args.Error(0)
}

// --- Mock invoice readers ---
type MockSalesInvoiceReader struct {
	mock.Mock
}

var _ portsrepo.SalesInvoiceReader = (*MockSalesInvoiceReader)(nil)

func (m *MockSalesInvoiceReader) FindFinalizedSales(ctx context.Context, companyID string, from, to time.Time) ([]domain.SalesInvoice, error) {
	args := m.Called(ctx, companyID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SalesInvoice), args.Error(1)
}

type MockPurchaseInvoiceReader struct {
	mock.Mock
}

var _ portsrepo.PurchaseInvoiceReader = (*MockPurchaseInvoiceReader)(nil)

func (m *MockPurchaseInvoiceReader) FindFinalizedPurchases(ctx context.Context, companyID string, from, to time.Time) ([]domain.PurchaseInvoice, error) {
	args := m.Called(ctx, companyID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PurchaseInvoice), args.Error(1)
}

// --- Test Suite Setup ---
type VatServiceTestSuite struct {
	suite.Suite
	mockVatRepo      *MockVatReturnRepository
	mockSalesRepo    *MockSalesInvoiceReader
	mockPurchaseRepo *MockPurchaseInvoiceReader
	service          portssvc.VatSvcFacade
	companyID        string
	userID           string
}

func (suite *VatServiceTestSuite) SetupTest() {
	suite.mockVatRepo = new(MockVatReturnRepository)
	suite.mockSalesRepo = new(MockSalesInvoiceReader)
	suite.mockPurchaseRepo = new(MockPurchaseInvoiceReader)

	schedule := domain.VatRateSchedule{
		{
			EffectiveFrom: time.Date(2018, time.January, 1, 0, 0, 0, 0, time.UTC),
			VatRates: domain.VatRates{
				Standard: decimal.RequireFromString("0.077"),
				Reduced:  decimal.RequireFromString("0.025"),
				Special:  decimal.RequireFromString("0.037"),
			},
		},
		{
			EffectiveFrom: time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC),
			VatRates: domain.VatRates{
				Standard: decimal.RequireFromString("0.081"),
				Reduced:  decimal.RequireFromString("0.026"),
				Special:  decimal.RequireFromString("0.038"),
			},
		},
	}
	suite.service = services.NewVatService(suite.mockVatRepo, suite.mockSalesRepo, suite.mockPurchaseRepo, schedule)

	suite.companyID = uuid.NewString()
	suite.userID = uuid.NewString()
}

func (suite *VatServiceTestSuite) draftReturn(year int, kind domain.VatPeriodKind, index int) *domain.VatReturn {
	return &domain.VatReturn{
		ReturnID:     uuid.NewString(),
		CompanyID:    suite.companyID,
		ReturnNumber: domain.FormatReturnNumber(year, kind, index),
		VatNumber:    "CHE-123.456.789 MWST",
		Year:         year,
		PeriodKind:   kind,
		PeriodIndex:  index,
		Method:       domain.MethodAgreed,
		Status:       domain.VatReturnDraft,
	}
}

// --- Period window resolution ---

func (suite *VatServiceTestSuite) TestResolvePeriodWindow() {
	cases := []struct {
		name     string
		year     int
		kind     domain.VatPeriodKind
		index    int
		wantFrom time.Time
		wantTo   time.Time
		wantErr  bool
	}{
		{
			name: "monthly january", year: 2024, kind: domain.PeriodMonthly, index: 1,
			wantFrom: time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC),
			wantTo:   time.Date(2024, time.January, 31, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "monthly february leap year", year: 2024, kind: domain.PeriodMonthly, index: 2,
			wantFrom: time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC),
			wantTo:   time.Date(2024, time.February, 29, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "monthly february regular year", year: 2023, kind: domain.PeriodMonthly, index: 2,
			wantFrom: time.Date(2023, time.February, 1, 0, 0, 0, 0, time.UTC),
			wantTo:   time.Date(2023, time.February, 28, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "second quarter", year: 2024, kind: domain.PeriodQuarterly, index: 2,
			wantFrom: time.Date(2024, time.April, 1, 0, 0, 0, 0, time.UTC),
			wantTo:   time.Date(2024, time.June, 30, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "fourth quarter", year: 2024, kind: domain.PeriodQuarterly, index: 4,
			wantFrom: time.Date(2024, time.October, 1, 0, 0, 0, 0, time.UTC),
			wantTo:   time.Date(2024, time.December, 31, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "yearly", year: 2024, kind: domain.PeriodYearly, index: 0,
			wantFrom: time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC),
			wantTo:   time.Date(2024, time.December, 31, 0, 0, 0, 0, time.UTC),
		},
		{name: "month zero", year: 2024, kind: domain.PeriodMonthly, index: 0, wantErr: true},
		{name: "month thirteen", year: 2024, kind: domain.PeriodMonthly, index: 13, wantErr: true},
		{name: "quarter five", year: 2024, kind: domain.PeriodQuarterly, index: 5, wantErr: true},
		{name: "yearly with index", year: 2024, kind: domain.PeriodYearly, index: 1, wantErr: true},
		{name: "unknown kind", year: 2024, kind: domain.VatPeriodKind("WEEKLY"), index: 1, wantErr: true},
	}

	for _, tc := range cases {
		suite.Run(tc.name, func() {
			from, to, err := services.ResolvePeriodWindow(tc.year, tc.kind, tc.index)
			if tc.wantErr {
				suite.Require().Error(err)
				suite.ErrorIs(err, apperrors.ErrValidation)
				return
			}
			suite.Require().NoError(err)
			suite.Equal(tc.wantFrom, from)
			suite.Equal(tc.wantTo, to)
		})
	}
}

// --- Lifecycle ---

func (suite *VatServiceTestSuite) TestCreateReturn_Success() {
	ctx := context.Background()
	req := dto.CreateVatReturnRequest{
		VatNumber:   "CHE-123.456.789 MWST",
		Year:        2024,
		PeriodKind:  "QUARTERLY",
		PeriodIndex: 1,
		Method:      "AGREED",
	}

	suite.mockVatRepo.On("FindReturnByPeriod", ctx, suite.companyID, 2024, domain.PeriodQuarterly, 1).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockVatRepo.On("SaveReturn", ctx, mock.AnythingOfType("domain.VatReturn")).Return(nil).Once()

	ret, err := suite.service.CreateReturn(ctx, suite.companyID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Equal("MWST-2024-Q1", ret.ReturnNumber)
	suite.Equal(domain.VatReturnDraft, ret.Status)
	suite.Equal(domain.MethodAgreed, ret.Method)
	suite.mockVatRepo.AssertExpectations(suite.T())
}

func (suite *VatServiceTestSuite) TestCreateReturn_PeriodAlreadyCovered() {
	ctx := context.Background()
	existing := suite.draftReturn(2024, domain.PeriodQuarterly, 1)
	req := dto.CreateVatReturnRequest{
		VatNumber:   "CHE-123.456.789 MWST",
		Year:        2024,
		PeriodKind:  "QUARTERLY",
		PeriodIndex: 1,
		Method:      "AGREED",
	}

	suite.mockVatRepo.On("FindReturnByPeriod", ctx, suite.companyID, 2024, domain.PeriodQuarterly, 1).Return(existing, nil).Once()

	_, err := suite.service.CreateReturn(ctx, suite.companyID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
	suite.mockVatRepo.AssertNotCalled(suite.T(), "SaveReturn", mock.Anything, mock.Anything)
}

func (suite *VatServiceTestSuite) TestCalculateReturn_Success() {
	ctx := context.Background()
	ret := suite.draftReturn(2024, domain.PeriodQuarterly, 1)
	from := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, time.March, 31, 0, 0, 0, 0, time.UTC)

	sales := []domain.SalesInvoice{
		{
			InvoiceID: uuid.NewString(), CompanyID: suite.companyID, Status: domain.SalesInvoiceSent,
			Lines: []domain.SalesInvoiceLine{
				{Quantity: decimal.NewFromInt(1), UnitPrice: decimal.NewFromInt(500), VatRateCategory: domain.RateStandard},
			},
		},
		{
			InvoiceID: uuid.NewString(), CompanyID: suite.companyID, Status: domain.SalesInvoicePaid,
			Lines: []domain.SalesInvoiceLine{
				{Quantity: decimal.NewFromInt(2), UnitPrice: decimal.NewFromInt(250), VatRateCategory: domain.RateStandard},
				{Quantity: decimal.NewFromInt(1), UnitPrice: decimal.NewFromInt(100), VatRateCategory: domain.RateReduced},
			},
		},
	}
	purchases := []domain.PurchaseInvoice{
		{InvoiceID: uuid.NewString(), CompanyID: suite.companyID, Status: domain.PurchaseInvoicePaid, VatAmount: decimal.RequireFromString("24.30")},
		{InvoiceID: uuid.NewString(), CompanyID: suite.companyID, Status: domain.PurchaseInvoiceApproved, VatAmount: decimal.RequireFromString("16.20")},
	}

	suite.mockVatRepo.On("FindReturnByID", ctx, suite.companyID, ret.ReturnID).Return(ret, nil).Once()
	suite.mockSalesRepo.On("FindFinalizedSales", ctx, suite.companyID, from, to).Return(sales, nil).Once()
	suite.mockPurchaseRepo.On("FindFinalizedPurchases", ctx, suite.companyID, from, to).Return(purchases, nil).Once()
	suite.mockVatRepo.On("UpdateReturn", ctx, mock.AnythingOfType("domain.VatReturn")).Return(nil).Once()

	calculated, err := suite.service.CalculateReturn(ctx, suite.companyID, ret.ReturnID, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.VatReturnCalculated, calculated.Status)
	suite.Require().NotNil(calculated.CalculatedAt)

	d := calculated.Declaration
	suite.True(d.TotalRevenue.Equal(decimal.NewFromInt(1100)), "total revenue: %s", d.TotalRevenue)
	suite.True(d.RevenueStandard.Equal(decimal.NewFromInt(1000)))
	suite.True(d.RevenueReduced.Equal(decimal.NewFromInt(100)))
	// Q1 2024 uses the 2024 rates: 1000 * 0.081 and 100 * 0.026.
	suite.True(d.OutputTaxStandard.Equal(decimal.RequireFromString("81.00")), "output tax standard: %s", d.OutputTaxStandard)
	suite.True(d.OutputTaxReduced.Equal(decimal.RequireFromString("2.60")))
	suite.True(d.InputTaxMaterial.Equal(decimal.RequireFromString("40.50")))

	suite.True(calculated.TotalOutputTax.Equal(decimal.RequireFromString("83.60")))
	suite.True(calculated.TotalInputTax.Equal(decimal.RequireFromString("40.50")))
	suite.True(calculated.NetPayable.Equal(decimal.RequireFromString("43.10")))

	suite.mockVatRepo.AssertExpectations(suite.T())
	suite.mockSalesRepo.AssertExpectations(suite.T())
	suite.mockPurchaseRepo.AssertExpectations(suite.T())
}

func (suite *VatServiceTestSuite) TestCalculateReturn_HistoricalRates() {
	ctx := context.Background()
	ret := suite.draftReturn(2023, domain.PeriodQuarterly, 4)
	from := time.Date(2023, time.October, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2023, time.December, 31, 0, 0, 0, 0, time.UTC)

	sales := []domain.SalesInvoice{
		{
			InvoiceID: uuid.NewString(), CompanyID: suite.companyID, Status: domain.SalesInvoiceSent,
			Lines: []domain.SalesInvoiceLine{
				{Quantity: decimal.NewFromInt(1), UnitPrice: decimal.NewFromInt(1000), VatRateCategory: domain.RateStandard},
			},
		},
	}

	suite.mockVatRepo.On("FindReturnByID", ctx, suite.companyID, ret.ReturnID).Return(ret, nil).Once()
	suite.mockSalesRepo.On("FindFinalizedSales", ctx, suite.companyID, from, to).Return(sales, nil).Once()
	suite.mockPurchaseRepo.On("FindFinalizedPurchases", ctx, suite.companyID, from, to).Return([]domain.PurchaseInvoice{}, nil).Once()
	suite.mockVatRepo.On("UpdateReturn", ctx, mock.Anything).Return(nil).Once()

	calculated, err := suite.service.CalculateReturn(ctx, suite.companyID, ret.ReturnID, suite.userID)

	suite.Require().NoError(err)
	// A 2023 period settles with the pre-2024 standard rate of 7.7%.
	suite.True(calculated.Declaration.OutputTaxStandard.Equal(decimal.RequireFromString("77.00")), "output tax standard: %s", calculated.Declaration.OutputTaxStandard)
}

func (suite *VatServiceTestSuite) TestCalculateReturn_PreservesManualInputTaxBuckets() {
	ctx := context.Background()
	ret := suite.draftReturn(2024, domain.PeriodMonthly, 5)
	ret.Status = domain.VatReturnCalculated
	ret.Declaration.InputTaxInvestments = decimal.RequireFromString("120.00")
	ret.Declaration.InputTaxServices = decimal.RequireFromString("15.50")
	from := time.Date(2024, time.May, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, time.May, 31, 0, 0, 0, 0, time.UTC)

	suite.mockVatRepo.On("FindReturnByID", ctx, suite.companyID, ret.ReturnID).Return(ret, nil).Once()
	suite.mockSalesRepo.On("FindFinalizedSales", ctx, suite.companyID, from, to).Return([]domain.SalesInvoice{}, nil).Once()
	suite.mockPurchaseRepo.On("FindFinalizedPurchases", ctx, suite.companyID, from, to).Return([]domain.PurchaseInvoice{}, nil).Once()
	suite.mockVatRepo.On("UpdateReturn", ctx, mock.Anything).Return(nil).Once()

	calculated, err := suite.service.CalculateReturn(ctx, suite.companyID, ret.ReturnID, suite.userID)

	suite.Require().NoError(err)
	suite.True(calculated.Declaration.InputTaxInvestments.Equal(decimal.RequireFromString("120.00")))
	suite.True(calculated.Declaration.InputTaxServices.Equal(decimal.RequireFromString("15.50")))
	suite.True(calculated.TotalInputTax.Equal(decimal.RequireFromString("135.50")))
	// No revenue in the period, so the refund equals the input tax.
	suite.True(calculated.NetPayable.Equal(decimal.RequireFromString("-135.50")))
}

func (suite *VatServiceTestSuite) TestCalculateReturn_Idempotent() {
	ctx := context.Background()
	ret := suite.draftReturn(2024, domain.PeriodMonthly, 1)
	from := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, time.January, 31, 0, 0, 0, 0, time.UTC)

	sales := []domain.SalesInvoice{
		{
			InvoiceID: uuid.NewString(), CompanyID: suite.companyID, Status: domain.SalesInvoiceSent,
			Lines: []domain.SalesInvoiceLine{
				{Quantity: decimal.NewFromInt(2), UnitPrice: decimal.NewFromInt(500), VatRateCategory: domain.RateStandard},
			},
		},
	}
	purchases := []domain.PurchaseInvoice{
		{InvoiceID: uuid.NewString(), CompanyID: suite.companyID, Status: domain.PurchaseInvoicePaid, VatAmount: decimal.RequireFromString("40.50")},
	}

	suite.mockVatRepo.On("FindReturnByID", ctx, suite.companyID, ret.ReturnID).Return(ret, nil).Twice()
	suite.mockSalesRepo.On("FindFinalizedSales", ctx, suite.companyID, from, to).Return(sales, nil).Twice()
	suite.mockPurchaseRepo.On("FindFinalizedPurchases", ctx, suite.companyID, from, to).Return(purchases, nil).Twice()
	suite.mockVatRepo.On("UpdateReturn", ctx, mock.Anything).Return(nil).Twice()

	first, err := suite.service.CalculateReturn(ctx, suite.companyID, ret.ReturnID, suite.userID)
	suite.Require().NoError(err)
	firstDecl := first.Declaration
	firstNet := first.NetPayable

	// The second run starts from CALCULATED and must reproduce the snapshot.
	second, err := suite.service.CalculateReturn(ctx, suite.companyID, ret.ReturnID, suite.userID)
	suite.Require().NoError(err)

	suite.True(second.Declaration.RevenueStandard.Equal(firstDecl.RevenueStandard))
	suite.True(second.Declaration.OutputTaxStandard.Equal(firstDecl.OutputTaxStandard))
	suite.True(second.Declaration.InputTaxMaterial.Equal(firstDecl.InputTaxMaterial))
	suite.True(second.NetPayable.Equal(firstNet))
	suite.True(second.NetPayable.Equal(decimal.RequireFromString("40.50")))
}

func (suite *VatServiceTestSuite) TestCalculateReturn_SubmittedRejected() {
	ctx := context.Background()
	ret := suite.draftReturn(2024, domain.PeriodQuarterly, 1)
	ret.Status = domain.VatReturnSubmitted

	suite.mockVatRepo.On("FindReturnByID", ctx, suite.companyID, ret.ReturnID).Return(ret, nil).Once()

	_, err := suite.service.CalculateReturn(ctx, suite.companyID, ret.ReturnID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockSalesRepo.AssertNotCalled(suite.T(), "FindFinalizedSales", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *VatServiceTestSuite) TestSubmitReturn_Success() {
	ctx := context.Background()
	ret := suite.draftReturn(2024, domain.PeriodQuarterly, 1)
	ret.Status = domain.VatReturnCalculated
	submissionDate := time.Date(2024, time.April, 20, 10, 0, 0, 0, time.UTC)
	req := dto.SubmitVatReturnRequest{
		SubmissionDate:      submissionDate,
		SubmissionMethod:    "ePortal",
		SubmissionReference: "EP-2024-778899",
	}

	suite.mockVatRepo.On("FindReturnByID", ctx, suite.companyID, ret.ReturnID).Return(ret, nil).Once()
	suite.mockVatRepo.On("UpdateReturn", ctx, mock.AnythingOfType("domain.VatReturn")).Return(nil).Once()

	submitted, err := suite.service.SubmitReturn(ctx, suite.companyID, ret.ReturnID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.VatReturnSubmitted, submitted.Status)
	suite.Require().NotNil(submitted.SubmittedAt)
	suite.Equal(submissionDate, *submitted.SubmittedAt)
	suite.Equal("ePortal", submitted.SubmissionMethod)
	suite.Equal("EP-2024-778899", submitted.SubmissionReference)
	suite.mockVatRepo.AssertExpectations(suite.T())
}

func (suite *VatServiceTestSuite) TestSubmitReturn_DraftRejected() {
	ctx := context.Background()
	ret := suite.draftReturn(2024, domain.PeriodQuarterly, 1)
	req := dto.SubmitVatReturnRequest{SubmissionDate: time.Now()}

	suite.mockVatRepo.On("FindReturnByID", ctx, suite.companyID, ret.ReturnID).Return(ret, nil).Once()

	_, err := suite.service.SubmitReturn(ctx, suite.companyID, ret.ReturnID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
}

func (suite *VatServiceTestSuite) TestUpdateReturn_AcceptedIsFinal() {
	ctx := context.Background()
	ret := suite.draftReturn(2024, domain.PeriodQuarterly, 1)
	ret.Status = domain.VatReturnAccepted
	notes := "Nachtrag"

	suite.mockVatRepo.On("FindReturnByID", ctx, suite.companyID, ret.ReturnID).Return(ret, nil).Once()

	_, err := suite.service.UpdateReturn(ctx, suite.companyID, ret.ReturnID, dto.UpdateVatReturnRequest{Notes: &notes}, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockVatRepo.AssertNotCalled(suite.T(), "UpdateReturn", mock.Anything, mock.Anything)
}

func (suite *VatServiceTestSuite) TestUpdateReturn_InputTaxPatchRecomputesTotals() {
	ctx := context.Background()
	ret := suite.draftReturn(2024, domain.PeriodQuarterly, 1)
	ret.Status = domain.VatReturnCalculated
	ret.Declaration.OutputTaxStandard = decimal.RequireFromString("81.00")
	ret.Declaration.InputTaxMaterial = decimal.RequireFromString("40.50")
	ret.TotalOutputTax = decimal.RequireFromString("81.00")
	ret.TotalInputTax = decimal.RequireFromString("40.50")
	ret.NetPayable = decimal.RequireFromString("40.50")
	investments := decimal.RequireFromString("10.00")

	suite.mockVatRepo.On("FindReturnByID", ctx, suite.companyID, ret.ReturnID).Return(ret, nil).Once()
	suite.mockVatRepo.On("UpdateReturn", ctx, mock.Anything).Return(nil).Once()

	updated, err := suite.service.UpdateReturn(ctx, suite.companyID, ret.ReturnID, dto.UpdateVatReturnRequest{InputTaxInvestments: &investments}, suite.userID)

	suite.Require().NoError(err)
	suite.True(updated.TotalInputTax.Equal(decimal.RequireFromString("50.50")))
	suite.True(updated.NetPayable.Equal(decimal.RequireFromString("30.50")))
}

func (suite *VatServiceTestSuite) TestUpdateReturn_NegativeInputTaxRejected() {
	ctx := context.Background()
	ret := suite.draftReturn(2024, domain.PeriodQuarterly, 1)
	ret.Status = domain.VatReturnCalculated
	negative := decimal.RequireFromString("-5.00")

	suite.mockVatRepo.On("FindReturnByID", ctx, suite.companyID, ret.ReturnID).Return(ret, nil).Once()

	_, err := suite.service.UpdateReturn(ctx, suite.companyID, ret.ReturnID, dto.UpdateVatReturnRequest{InputTaxServices: &negative}, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *VatServiceTestSuite) TestDeleteReturn_DraftOnly() {
	ctx := context.Background()
	ret := suite.draftReturn(2024, domain.PeriodMonthly, 3)

	suite.mockVatRepo.On("FindReturnByID", ctx, suite.companyID, ret.ReturnID).Return(ret, nil).Once()
	suite.mockVatRepo.On("DeleteReturn", ctx, suite.companyID, ret.ReturnID).Return(nil).Once()

	err := suite.service.DeleteReturn(ctx, suite.companyID, ret.ReturnID, suite.userID)

	suite.Require().NoError(err)
	suite.mockVatRepo.AssertExpectations(suite.T())
}

func (suite *VatServiceTestSuite) TestDeleteReturn_CalculatedRejected() {
	ctx := context.Background()
	ret := suite.draftReturn(2024, domain.PeriodMonthly, 3)
	ret.Status = domain.VatReturnCalculated

	suite.mockVatRepo.On("FindReturnByID", ctx, suite.companyID, ret.ReturnID).Return(ret, nil).Once()

	err := suite.service.DeleteReturn(ctx, suite.companyID, ret.ReturnID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockVatRepo.AssertNotCalled(suite.T(), "DeleteReturn", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *VatServiceTestSuite) TestExportReturn_DraftExportsZeroSnapshot() {
	ctx := context.Background()
	ret := suite.draftReturn(2024, domain.PeriodQuarterly, 1)

	suite.mockVatRepo.On("FindReturnByID", ctx, suite.companyID, ret.ReturnID).Return(ret, nil).Once()

	doc, err := suite.service.ExportReturn(ctx, suite.companyID, ret.ReturnID)

	suite.Require().NoError(err)
	suite.Contains(string(doc), "<payableAmount>0.00</payableAmount>")
}

func (suite *VatServiceTestSuite) TestExportReturn_Success() {
	ctx := context.Background()
	ret := suite.draftReturn(2024, domain.PeriodQuarterly, 1)
	ret.Status = domain.VatReturnCalculated
	ret.Declaration.RevenueStandard = decimal.NewFromInt(1000)
	ret.Declaration.OutputTaxStandard = decimal.RequireFromString("81.00")
	ret.TotalOutputTax = decimal.RequireFromString("81.00")
	ret.NetPayable = decimal.RequireFromString("81.00")

	suite.mockVatRepo.On("FindReturnByID", ctx, suite.companyID, ret.ReturnID).Return(ret, nil).Once()

	doc, err := suite.service.ExportReturn(ctx, suite.companyID, ret.ReturnID)

	suite.Require().NoError(err)
	suite.Contains(string(doc), "VATDeclaration")
	suite.Contains(string(doc), ret.VatNumber)
}

func TestVatServiceTestSuite(t *testing.T) {
	suite.Run(t, new(VatServiceTestSuite))
}
