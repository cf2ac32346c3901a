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

// --- Mock JournalRepository ---
type MockJournalRepository struct {
	mock.Mock
}

// Ensure MockJournalRepository implements portsrepo.JournalRepositoryFacade
var _ portsrepo.JournalRepositoryFacade = (*MockJournalRepository)(nil)

func (m *MockJournalRepository) FindEntryByID(ctx context.Context, companyID, entryID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, companyID, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockJournalRepository) FindLinesByEntryID(ctx context.Context, entryID string) ([]domain.JournalLine, error) {
	args := m.Called(ctx, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.JournalLine), args.Error(1)
}

func (m *MockJournalRepository) ListEntriesByCompany(ctx context.Context, companyID string, limit int, nextToken *string, includeReversals bool) ([]domain.JournalEntry, *string, error) {
	args := m.Called(ctx, companyID, limit, nextToken, includeReversals)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var returnedNextToken *string
	if args.Get(1) != nil {
		tokenVal := args.Get(1).(string)
		returnedNextToken = &tokenVal
	}
	return args.Get(0).([]domain.JournalEntry), returnedNextToken, args.Error(2)
}

func (m *MockJournalRepository) ListLinesByAccountID(ctx context.Context, companyID, accountID string, limit int, nextToken *string) ([]domain.JournalLine, *string, error) {
	args := m.Called(ctx, companyID, accountID, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var returnedNextToken *string
	if args.Get(1) != nil {
		tokenVal := args.Get(1).(string)
		returnedNextToken = &tokenVal
	}
	return args.Get(0).([]domain.JournalLine), returnedNextToken, args.Error(2)
}

func (m *MockJournalRepository) SaveEntry(ctx context.Context, entry domain.JournalEntry, lines []domain.JournalLine) error {
	args := m.Called(ctx, entry, lines)
	return args.Error(0)
}

func (m *MockJournalRepository) ReplaceEntryLines(ctx context.Context, entry domain.JournalEntry, lines []domain.JournalLine) error {
	args := m.Called(ctx, entry, lines)
	return args.Error(0)
}

func (m *MockJournalRepository) UpdateEntryStatus(ctx context.Context, entryID string, status domain.JournalEntryStatus, postedAt *time.Time, updatedBy string, updatedAt time.Time) error {
	args := m.Called(ctx, entryID, status, postedAt, updatedBy, updatedAt)
	return args.Error(0)
}

func (m *MockJournalRepository) SaveReversal(ctx context.Context, reversal domain.JournalEntry, lines []domain.JournalLine, originalEntryID string, updatedBy string, updatedAt time.Time) error {
	args := m.Called(ctx, reversal, lines, originalEntryID, updatedBy, updatedAt)
	return args.Error(0)
}

func (m *MockJournalRepository) DeleteEntry(ctx context.Context, companyID, entryID string) error {
	args := m.Called(ctx, companyID, entryID)
	return args.Error(0)
}

func (m *MockJournalRepository) NextEntryNumber(ctx context.Context, companyID string, year int) (int64, error) {
	args := m.Called(ctx, companyID, year)
	return args.Get(0).(int64), args.Error(1)
}

// --- Mock AccountRepository ---
type MockAccountRepository struct {
	mock.Mock
}

var _ portsrepo.AccountRepositoryFacade = (*MockAccountRepository)(nil)

func (m *MockAccountRepository) FindAccountByID(ctx context.Context, companyID, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, companyID, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountsByIDs(ctx context.Context, companyID string, accountIDs []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, companyID, accountIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) ListActiveAccounts(ctx context.Context, companyID string) ([]domain.Account, error) {
	args := m.Called(ctx, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) SetAccountActive(ctx context.Context, companyID, accountID string, active bool, updatedBy string) error {
	args := m.Called(ctx, companyID, accountID, active, updatedBy)
	return args.Error(0)
}

// --- Test Suite Setup ---
type JournalServiceTestSuite struct {
	suite.Suite
	mockJournalRepo *MockJournalRepository
	mockAccountRepo *MockAccountRepository
	service         portssvc.JournalSvcFacade
	bankAccount     domain.Account
	revenueAccount  domain.Account
	companyID       string
	userID          string
}

func (suite *JournalServiceTestSuite) SetupTest() {
	suite.mockJournalRepo = new(MockJournalRepository)
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.service = services.NewJournalService(suite.mockJournalRepo, suite.mockAccountRepo)

	suite.companyID = uuid.NewString()
	suite.userID = uuid.NewString()

	suite.bankAccount = domain.Account{
		AccountID:     uuid.NewString(),
		CompanyID:     suite.companyID,
		AccountNumber: "1020",
		Name:          "Bank",
		AccountType:   domain.Asset,
		CurrencyCode:  "CHF",
		IsActive:      true,
	}
	suite.revenueAccount = domain.Account{
		AccountID:     uuid.NewString(),
		CompanyID:     suite.companyID,
		AccountNumber: "3200",
		Name:          "Warenertrag",
		AccountType:   domain.Revenue,
		CurrencyCode:  "CHF",
		IsActive:      true,
	}
}

func (suite *JournalServiceTestSuite) accountsMap() map[string]domain.Account {
	return map[string]domain.Account{
		suite.bankAccount.AccountID:    suite.bankAccount,
		suite.revenueAccount.AccountID: suite.revenueAccount,
	}
}

func (suite *JournalServiceTestSuite) balancedCreateRequest(amount decimal.Decimal) dto.CreateJournalEntryRequest {
	return dto.CreateJournalEntryRequest{
		Date:        time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC),
		Description: "Barverkauf",
		Lines: []dto.CreateJournalLineRequest{
			{AccountID: suite.bankAccount.AccountID, Debit: amount},
			{AccountID: suite.revenueAccount.AccountID, Credit: amount},
		},
	}
}

// --- Test Cases ---

func (suite *JournalServiceTestSuite) TestCreateEntry_Success() {
	ctx := context.Background()
	req := suite.balancedCreateRequest(decimal.NewFromInt(100))

	suite.mockAccountRepo.On("FindAccountsByIDs", ctx, suite.companyID, mock.Anything).Return(suite.accountsMap(), nil).Once()
	suite.mockJournalRepo.On("NextEntryNumber", ctx, suite.companyID, 2024).Return(int64(1), nil).Once()
	suite.mockJournalRepo.On("SaveEntry", ctx, mock.AnythingOfType("domain.JournalEntry"), mock.AnythingOfType("[]domain.JournalLine")).Return(nil).Once()

	entry, err := suite.service.CreateEntry(ctx, suite.companyID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(entry)
	suite.Equal("JB-2024-00001", entry.EntryNumber)
	suite.Equal(domain.EntryDraft, entry.Status)
	suite.Equal(domain.DocumentManual, entry.DocumentType)
	suite.True(entry.TotalAmount.Equal(decimal.NewFromInt(100)))
	suite.Equal(suite.userID, entry.CreatedBy)
	suite.Require().Len(entry.Lines, 2)
	suite.Equal(0, entry.Lines[0].SortOrder)
	suite.Equal(1, entry.Lines[1].SortOrder)

	suite.mockAccountRepo.AssertExpectations(suite.T())
	suite.mockJournalRepo.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestCreateEntry_Unbalanced() {
	ctx := context.Background()
	req := dto.CreateJournalEntryRequest{
		Date:        time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC),
		Description: "Unausgeglichen",
		Lines: []dto.CreateJournalLineRequest{
			{AccountID: suite.bankAccount.AccountID, Debit: decimal.NewFromInt(100)},
			{AccountID: suite.revenueAccount.AccountID, Credit: decimal.RequireFromString("99.98")},
		},
	}

	suite.mockAccountRepo.On("FindAccountsByIDs", ctx, suite.companyID, mock.Anything).Return(suite.accountsMap(), nil).Once()

	_, err := suite.service.CreateEntry(ctx, suite.companyID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.ErrorIs(err, services.ErrEntryUnbalanced)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "SaveEntry", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestCreateEntry_WithinTolerance() {
	ctx := context.Background()
	req := dto.CreateJournalEntryRequest{
		Date:        time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC),
		Description: "Rundungsdifferenz",
		Lines: []dto.CreateJournalLineRequest{
			{AccountID: suite.bankAccount.AccountID, Debit: decimal.RequireFromString("100.00")},
			{AccountID: suite.revenueAccount.AccountID, Credit: decimal.RequireFromString("99.99")},
		},
	}

	suite.mockAccountRepo.On("FindAccountsByIDs", ctx, suite.companyID, mock.Anything).Return(suite.accountsMap(), nil).Once()
	suite.mockJournalRepo.On("NextEntryNumber", ctx, suite.companyID, 2024).Return(int64(7), nil).Once()
	suite.mockJournalRepo.On("SaveEntry", ctx, mock.Anything, mock.Anything).Return(nil).Once()

	entry, err := suite.service.CreateEntry(ctx, suite.companyID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Equal("JB-2024-00007", entry.EntryNumber)
}

func (suite *JournalServiceTestSuite) TestCreateEntry_InactiveAccount() {
	ctx := context.Background()
	inactive := suite.revenueAccount
	inactive.IsActive = false
	accounts := map[string]domain.Account{
		suite.bankAccount.AccountID: suite.bankAccount,
		inactive.AccountID:          inactive,
	}
	req := suite.balancedCreateRequest(decimal.NewFromInt(50))

	suite.mockAccountRepo.On("FindAccountsByIDs", ctx, suite.companyID, mock.Anything).Return(accounts, nil).Once()

	_, err := suite.service.CreateEntry(ctx, suite.companyID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrAccountInactive)
}

func (suite *JournalServiceTestSuite) TestCreateEntry_RetriesOnNumberCollision() {
	ctx := context.Background()
	req := suite.balancedCreateRequest(decimal.NewFromInt(200))

	suite.mockAccountRepo.On("FindAccountsByIDs", ctx, suite.companyID, mock.Anything).Return(suite.accountsMap(), nil).Once()
	suite.mockJournalRepo.On("NextEntryNumber", ctx, suite.companyID, 2024).Return(int64(41), nil).Once()
	suite.mockJournalRepo.On("NextEntryNumber", ctx, suite.companyID, 2024).Return(int64(42), nil).Once()
	// First save collides with an existing number, the retry succeeds.
	suite.mockJournalRepo.On("SaveEntry", ctx, mock.Anything, mock.Anything).Return(apperrors.ErrDuplicate).Once()
	suite.mockJournalRepo.On("SaveEntry", ctx, mock.Anything, mock.Anything).Return(nil).Once()

	entry, err := suite.service.CreateEntry(ctx, suite.companyID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Equal("JB-2024-00042", entry.EntryNumber)
	suite.mockJournalRepo.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestPostEntry_Success() {
	ctx := context.Background()
	entryID := uuid.NewString()
	draft := &domain.JournalEntry{
		EntryID:     entryID,
		CompanyID:   suite.companyID,
		EntryNumber: "JB-2024-00003",
		Status:      domain.EntryDraft,
	}

	suite.mockJournalRepo.On("FindEntryByID", ctx, suite.companyID, entryID).Return(draft, nil).Once()
	suite.mockJournalRepo.On("UpdateEntryStatus", ctx, entryID, domain.EntryPosted, mock.AnythingOfType("*time.Time"), suite.userID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	posted, err := suite.service.PostEntry(ctx, suite.companyID, entryID, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.EntryPosted, posted.Status)
	suite.Require().NotNil(posted.PostedAt)
	suite.mockJournalRepo.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestPostEntry_AlreadyPosted() {
	ctx := context.Background()
	entryID := uuid.NewString()
	posted := &domain.JournalEntry{
		EntryID:     entryID,
		CompanyID:   suite.companyID,
		EntryNumber: "JB-2024-00004",
		Status:      domain.EntryPosted,
	}

	suite.mockJournalRepo.On("FindEntryByID", ctx, suite.companyID, entryID).Return(posted, nil).Once()

	_, err := suite.service.PostEntry(ctx, suite.companyID, entryID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "UpdateEntryStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestReverseEntry_Success() {
	ctx := context.Background()
	entryID := uuid.NewString()
	costCenter := uuid.NewString()
	original := &domain.JournalEntry{
		EntryID:     entryID,
		CompanyID:   suite.companyID,
		EntryNumber: "JB-2024-00010",
		Description: "Warenverkauf",
		Status:      domain.EntryPosted,
		TotalAmount: decimal.NewFromInt(500),
	}
	originalLines := []domain.JournalLine{
		{LineID: uuid.NewString(), EntryID: entryID, AccountID: suite.bankAccount.AccountID, Debit: decimal.NewFromInt(500), Credit: decimal.Zero, SortOrder: 0, CostCenterID: &costCenter},
		{LineID: uuid.NewString(), EntryID: entryID, AccountID: suite.revenueAccount.AccountID, Debit: decimal.Zero, Credit: decimal.NewFromInt(500), SortOrder: 1},
	}

	suite.mockJournalRepo.On("FindEntryByID", ctx, suite.companyID, entryID).Return(original, nil).Once()
	suite.mockJournalRepo.On("FindLinesByEntryID", ctx, entryID).Return(originalLines, nil).Once()
	suite.mockJournalRepo.On("NextEntryNumber", ctx, suite.companyID, 2024).Return(int64(11), nil).Once()
	suite.mockJournalRepo.On("SaveReversal", ctx, mock.AnythingOfType("domain.JournalEntry"), mock.AnythingOfType("[]domain.JournalLine"), entryID, suite.userID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	reversalDate := time.Date(2024, time.April, 1, 0, 0, 0, 0, time.UTC)
	reversal, err := suite.service.ReverseEntry(ctx, suite.companyID, entryID, reversalDate, "Falschbuchung", suite.userID)

	suite.Require().NoError(err)
	suite.Equal("JB-2024-00011", reversal.EntryNumber)
	suite.Equal(domain.EntryPosted, reversal.Status)
	suite.Equal(domain.DocumentReversal, reversal.DocumentType)
	suite.Equal(original.EntryNumber, reversal.Reference)
	suite.Contains(reversal.Description, "Storno: Warenverkauf")
	suite.Contains(reversal.Description, "Falschbuchung")
	suite.Require().NotNil(reversal.ReversesEntry)
	suite.Equal(entryID, *reversal.ReversesEntry)

	// Debit and credit sides swap, sort order and cost centers survive.
	suite.Require().Len(reversal.Lines, 2)
	suite.True(reversal.Lines[0].Credit.Equal(decimal.NewFromInt(500)))
	suite.True(reversal.Lines[0].Debit.IsZero())
	suite.Equal(costCenter, *reversal.Lines[0].CostCenterID)
	suite.True(reversal.Lines[1].Debit.Equal(decimal.NewFromInt(500)))
	suite.Equal(1, reversal.Lines[1].SortOrder)

	suite.mockJournalRepo.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestReverseEntry_DraftRejected() {
	ctx := context.Background()
	entryID := uuid.NewString()
	draft := &domain.JournalEntry{
		EntryID:     entryID,
		CompanyID:   suite.companyID,
		EntryNumber: "JB-2024-00012",
		Status:      domain.EntryDraft,
	}

	suite.mockJournalRepo.On("FindEntryByID", ctx, suite.companyID, entryID).Return(draft, nil).Once()

	_, err := suite.service.ReverseEntry(ctx, suite.companyID, entryID, time.Now(), "", suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
}

func (suite *JournalServiceTestSuite) TestReverseEntry_ReversalOfReversalRejected() {
	ctx := context.Background()
	entryID := uuid.NewString()
	originalID := uuid.NewString()
	reversalEntry := &domain.JournalEntry{
		EntryID:       entryID,
		CompanyID:     suite.companyID,
		EntryNumber:   "JB-2024-00013",
		Status:        domain.EntryPosted,
		ReversesEntry: &originalID,
	}

	suite.mockJournalRepo.On("FindEntryByID", ctx, suite.companyID, entryID).Return(reversalEntry, nil).Once()

	_, err := suite.service.ReverseEntry(ctx, suite.companyID, entryID, time.Now(), "", suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "SaveReversal", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestUpdateEntry_PostedRejected() {
	ctx := context.Background()
	entryID := uuid.NewString()
	posted := &domain.JournalEntry{
		EntryID:     entryID,
		CompanyID:   suite.companyID,
		EntryNumber: "JB-2024-00014",
		Status:      domain.EntryPosted,
	}
	newDescription := "Korrektur"

	suite.mockJournalRepo.On("FindEntryByID", ctx, suite.companyID, entryID).Return(posted, nil).Once()

	_, err := suite.service.UpdateEntry(ctx, suite.companyID, entryID, dto.UpdateJournalEntryRequest{Description: &newDescription}, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
}

func (suite *JournalServiceTestSuite) TestDeleteEntry_DraftOnly() {
	ctx := context.Background()
	entryID := uuid.NewString()
	draft := &domain.JournalEntry{
		EntryID:     entryID,
		CompanyID:   suite.companyID,
		EntryNumber: "JB-2024-00015",
		Status:      domain.EntryDraft,
	}

	suite.mockJournalRepo.On("FindEntryByID", ctx, suite.companyID, entryID).Return(draft, nil).Once()
	suite.mockJournalRepo.On("DeleteEntry", ctx, suite.companyID, entryID).Return(nil).Once()

	err := suite.service.DeleteEntry(ctx, suite.companyID, entryID, suite.userID)

	suite.Require().NoError(err)
	suite.mockJournalRepo.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestDeleteEntry_PostedRejected() {
	ctx := context.Background()
	entryID := uuid.NewString()
	posted := &domain.JournalEntry{
		EntryID:     entryID,
		CompanyID:   suite.companyID,
		EntryNumber: "JB-2024-00016",
		Status:      domain.EntryPosted,
	}

	suite.mockJournalRepo.On("FindEntryByID", ctx, suite.companyID, entryID).Return(posted, nil).Once()

	err := suite.service.DeleteEntry(ctx, suite.companyID, entryID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "DeleteEntry", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestGetEntryByID_NotFound() {
	ctx := context.Background()
	entryID := uuid.NewString()

	suite.mockJournalRepo.On("FindEntryByID", ctx, suite.companyID, entryID).Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.GetEntryByID(ctx, suite.companyID, entryID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func TestJournalServiceTestSuite(t *testing.T) {
	suite.Run(t, new(JournalServiceTestSuite))
}
