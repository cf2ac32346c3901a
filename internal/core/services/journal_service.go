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
)

// maxNumberingAttempts bounds the retry loop around entry number assignment.
// The sequence itself is atomic; retries only matter when a restored backup
// left the counter behind the highest persisted number.
const maxNumberingAttempts = 3

// reversalPrefix marks the description of a reversal entry.
const reversalPrefix = "Storno: "

// journalService owns the journal entry lifecycle.
type journalService struct {
	BaseService
	journalRepo portsrepo.JournalRepositoryFacade
	accountRepo portsrepo.AccountReader
}

// NewJournalService creates a new journal service.
func NewJournalService(journalRepo portsrepo.JournalRepositoryFacade, accountRepo portsrepo.AccountReader) portssvc.JournalSvcFacade {
	return &journalService{
		journalRepo: journalRepo,
		accountRepo: accountRepo,
	}
}

// Ensure journalService implements the JournalSvcFacade interface
var _ portssvc.JournalSvcFacade = (*journalService)(nil)

// buildLines converts request lines to domain lines with sort order equal to
// input order.
func buildLines(entryID string, reqLines []dto.CreateJournalLineRequest, now time.Time, userID string) []domain.JournalLine {
	lines := make([]domain.JournalLine, len(reqLines))
	for i, lr := range reqLines {
		lines[i] = domain.JournalLine{
			LineID:       uuid.NewString(),
			EntryID:      entryID,
			AccountID:    lr.AccountID,
			Debit:        lr.Debit,
			Credit:       lr.Credit,
			CostCenterID: lr.CostCenterID,
			Description:  lr.Description,
			SortOrder:    i,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     userID,
				LastUpdatedAt: now,
				LastUpdatedBy: userID,
			},
		}
	}
	return lines
}

// validateLinesAgainstRegistry fetches the referenced accounts and runs the
// line validator.
func (s *journalService) validateLinesAgainstRegistry(ctx context.Context, companyID string, lines []domain.JournalLine) error {
	accountIDs := distinctAccountIDs(lines)
	accounts, err := s.accountRepo.FindAccountsByIDs(ctx, companyID, accountIDs)
	if err != nil {
		s.LogError(ctx, err, "Failed to fetch accounts for entry validation", slog.String("company_id", companyID))
		return fmt.Errorf("failed to fetch accounts: %w", err)
	}
	return validateEntryLines(companyID, lines, accounts)
}

// CreateEntry creates a new draft journal entry after validation, assigning
// the next sequential entry number for the company and year.
func (s *journalService) CreateEntry(ctx context.Context, companyID string, req dto.CreateJournalEntryRequest, creatorUserID string) (*domain.JournalEntry, error) {
	now := time.Now().UTC()
	entryID := uuid.NewString()

	lines := buildLines(entryID, req.Lines, now, creatorUserID)
	if err := s.validateLinesAgainstRegistry(ctx, companyID, lines); err != nil {
		return nil, err
	}

	documentType := domain.DocumentType(req.DocumentType)
	if documentType == "" {
		documentType = domain.DocumentManual
	}

	entry := domain.JournalEntry{
		EntryID:      entryID,
		CompanyID:    companyID,
		EntryDate:    req.Date,
		Description:  req.Description,
		Reference:    req.Reference,
		DocumentType: documentType,
		DocumentID:   req.DocumentID,
		Status:       domain.EntryDraft,
		TotalAmount:  totalDebitSide(lines),
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	year := req.Date.Year()
	var lastErr error
	for attempt := 0; attempt < maxNumberingAttempts; attempt++ {
		sequence, err := s.journalRepo.NextEntryNumber(ctx, companyID, year)
		if err != nil {
			s.LogError(ctx, err, "Failed to obtain next entry number", slog.String("company_id", companyID), slog.Int("year", year))
			return nil, fmt.Errorf("failed to obtain entry number: %w", err)
		}
		entry.EntryNumber = domain.FormatEntryNumber(year, sequence)

		err = s.journalRepo.SaveEntry(ctx, entry, lines)
		if err == nil {
			s.LogInfo(ctx, "Journal entry created", slog.String("entry_id", entry.EntryID), slog.String("entry_number", entry.EntryNumber))
			entry.Lines = lines
			return &entry, nil
		}
		if !errors.Is(err, apperrors.ErrDuplicate) {
			s.LogError(ctx, err, "Failed to save journal entry", slog.String("company_id", companyID))
			return nil, fmt.Errorf("failed to save journal entry: %w", err)
		}
		// Number collision: re-derive and retry.
		s.LogWarn(ctx, "Entry number collision, retrying", slog.String("entry_number", entry.EntryNumber), slog.Int("attempt", attempt+1))
		lastErr = err
	}
	return nil, fmt.Errorf("entry numbering conflict persisted after %d attempts: %w", maxNumberingAttempts, lastErr)
}

// GetEntryByID retrieves an entry with its lines.
func (s *journalService) GetEntryByID(ctx context.Context, companyID, entryID string) (*domain.JournalEntry, error) {
	entry, err := s.journalRepo.FindEntryByID(ctx, companyID, entryID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find journal entry", slog.String("entry_id", entryID))
		}
		return nil, err
	}

	lines, err := s.journalRepo.FindLinesByEntryID(ctx, entryID)
	if err != nil {
		s.LogError(ctx, err, "Failed to fetch lines for journal entry", slog.String("entry_id", entryID))
		return nil, fmt.Errorf("failed to retrieve lines for entry %s: %w", entryID, apperrors.ErrInternal)
	}
	entry.Lines = lines
	return entry, nil
}

// ListEntries retrieves a paginated list of entries for a company.
func (s *journalService) ListEntries(ctx context.Context, companyID string, params dto.ListJournalEntriesParams) (*dto.ListJournalEntriesResponse, error) {
	entries, nextToken, err := s.journalRepo.ListEntriesByCompany(ctx, companyID, params.Limit, params.NextToken, params.IncludeReversals)
	if err != nil {
		s.LogError(ctx, err, "Failed to list journal entries", slog.String("company_id", companyID))
		return nil, fmt.Errorf("failed to retrieve journal entries: %w", err)
	}

	responses := make([]dto.JournalEntryResponse, len(entries))
	for i := range entries {
		responses[i] = dto.ToJournalEntryResponse(&entries[i])
	}
	return &dto.ListJournalEntriesResponse{Entries: responses, NextToken: nextToken}, nil
}

// UpdateEntry patches a draft entry. If lines are supplied the whole owned
// line set is replaced atomically and the total recomputed.
func (s *journalService) UpdateEntry(ctx context.Context, companyID, entryID string, req dto.UpdateJournalEntryRequest, userID string) (*domain.JournalEntry, error) {
	entry, err := s.journalRepo.FindEntryByID(ctx, companyID, entryID)
	if err != nil {
		return nil, err
	}

	if entry.Status != domain.EntryDraft {
		return nil, fmt.Errorf("%w: entry %s has status %s, only DRAFT entries can be updated", apperrors.ErrConflict, entry.EntryNumber, entry.Status)
	}

	now := time.Now().UTC()
	if req.Date != nil {
		entry.EntryDate = *req.Date
	}
	if req.Description != nil {
		entry.Description = *req.Description
	}
	if req.Reference != nil {
		entry.Reference = *req.Reference
	}
	entry.LastUpdatedAt = now
	entry.LastUpdatedBy = userID

	var lines []domain.JournalLine
	if req.Lines != nil {
		lines = buildLines(entry.EntryID, req.Lines, now, userID)
		if err := s.validateLinesAgainstRegistry(ctx, companyID, lines); err != nil {
			return nil, err
		}
		entry.TotalAmount = totalDebitSide(lines)
	}

	if err := s.journalRepo.ReplaceEntryLines(ctx, *entry, lines); err != nil {
		s.LogError(ctx, err, "Failed to update journal entry", slog.String("entry_id", entryID))
		return nil, fmt.Errorf("failed to update journal entry: %w", err)
	}

	s.LogInfo(ctx, "Journal entry updated", slog.String("entry_id", entryID))
	entry.Lines = lines
	return entry, nil
}

// PostEntry freezes a draft entry as posted history. No recalculation occurs;
// the entry was validated when its lines were last written.
func (s *journalService) PostEntry(ctx context.Context, companyID, entryID, userID string) (*domain.JournalEntry, error) {
	entry, err := s.journalRepo.FindEntryByID(ctx, companyID, entryID)
	if err != nil {
		return nil, err
	}

	if entry.Status != domain.EntryDraft {
		return nil, fmt.Errorf("%w: entry %s has status %s, only DRAFT entries can be posted", apperrors.ErrConflict, entry.EntryNumber, entry.Status)
	}

	now := time.Now().UTC()
	if err := s.journalRepo.UpdateEntryStatus(ctx, entryID, domain.EntryPosted, &now, userID, now); err != nil {
		s.LogError(ctx, err, "Failed to post journal entry", slog.String("entry_id", entryID))
		return nil, fmt.Errorf("failed to post journal entry: %w", err)
	}

	s.LogInfo(ctx, "Journal entry posted", slog.String("entry_id", entryID), slog.String("entry_number", entry.EntryNumber))
	entry.Status = domain.EntryPosted
	entry.PostedAt = &now
	entry.LastUpdatedAt = now
	entry.LastUpdatedBy = userID
	return entry, nil
}

// ReverseEntry creates the offsetting entry for a posted entry and marks the
// original reversed. Both writes happen in one repository transaction.
func (s *journalService) ReverseEntry(ctx context.Context, companyID, entryID string, reversalDate time.Time, reason string, userID string) (*domain.JournalEntry, error) {
	original, err := s.journalRepo.FindEntryByID(ctx, companyID, entryID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			s.LogWarn(ctx, "Original entry not found for reversal", slog.String("entry_id", entryID))
		}
		return nil, err
	}

	if original.Status != domain.EntryPosted {
		return nil, fmt.Errorf("%w: entry %s has status %s, only POSTED entries can be reversed", apperrors.ErrConflict, original.EntryNumber, original.Status)
	}
	if original.ReversesEntry != nil {
		return nil, fmt.Errorf("%w: entry %s is itself a reversal and cannot be reversed", apperrors.ErrConflict, original.EntryNumber)
	}

	originalLines, err := s.journalRepo.FindLinesByEntryID(ctx, entryID)
	if err != nil {
		s.LogError(ctx, err, "Failed to fetch lines for reversal", slog.String("entry_id", entryID))
		return nil, fmt.Errorf("failed to retrieve original lines: %w", err)
	}

	now := time.Now().UTC()
	reversalID := uuid.NewString()

	description := reversalPrefix + original.Description
	if reason != "" {
		description = fmt.Sprintf("%s (%s)", description, reason)
	}

	reversal := domain.JournalEntry{
		EntryID:       reversalID,
		CompanyID:     companyID,
		EntryDate:     reversalDate,
		Description:   description,
		Reference:     original.EntryNumber,
		DocumentType:  domain.DocumentReversal,
		Status:        domain.EntryPosted,
		TotalAmount:   original.TotalAmount,
		ReversesEntry: &original.EntryID,
		PostedAt:      &now,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	// Swapping each line's sides preserves the balance invariant, so the
	// reversal is posted directly.
	reversalLines := make([]domain.JournalLine, len(originalLines))
	for i, orig := range originalLines {
		reversalLines[i] = domain.JournalLine{
			LineID:       uuid.NewString(),
			EntryID:      reversalID,
			AccountID:    orig.AccountID,
			Debit:        orig.Credit,
			Credit:       orig.Debit,
			CostCenterID: orig.CostCenterID,
			Description:  orig.Description,
			SortOrder:    orig.SortOrder,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     userID,
				LastUpdatedAt: now,
				LastUpdatedBy: userID,
			},
		}
	}

	year := reversalDate.Year()
	var lastErr error
	for attempt := 0; attempt < maxNumberingAttempts; attempt++ {
		sequence, err := s.journalRepo.NextEntryNumber(ctx, companyID, year)
		if err != nil {
			s.LogError(ctx, err, "Failed to obtain entry number for reversal", slog.String("company_id", companyID))
			return nil, fmt.Errorf("failed to obtain entry number: %w", err)
		}
		reversal.EntryNumber = domain.FormatEntryNumber(year, sequence)

		err = s.journalRepo.SaveReversal(ctx, reversal, reversalLines, original.EntryID, userID, now)
		if err == nil {
			s.LogInfo(ctx, "Journal entry reversed",
				slog.String("original_entry_id", original.EntryID),
				slog.String("reversal_entry_id", reversalID),
				slog.String("reversal_entry_number", reversal.EntryNumber))
			reversal.Lines = reversalLines
			return &reversal, nil
		}
		if !errors.Is(err, apperrors.ErrDuplicate) {
			s.LogError(ctx, err, "Failed to save reversal entry", slog.String("entry_id", entryID))
			return nil, fmt.Errorf("failed to save reversal entry: %w", err)
		}
		s.LogWarn(ctx, "Entry number collision on reversal, retrying", slog.String("entry_number", reversal.EntryNumber), slog.Int("attempt", attempt+1))
		lastErr = err
	}
	return nil, fmt.Errorf("entry numbering conflict persisted after %d attempts: %w", maxNumberingAttempts, lastErr)
}

// DeleteEntry removes a draft entry and its lines.
func (s *journalService) DeleteEntry(ctx context.Context, companyID, entryID, userID string) error {
	entry, err := s.journalRepo.FindEntryByID(ctx, companyID, entryID)
	if err != nil {
		return err
	}

	if entry.Status != domain.EntryDraft {
		return fmt.Errorf("%w: entry %s has status %s, only DRAFT entries can be deleted", apperrors.ErrConflict, entry.EntryNumber, entry.Status)
	}

	if err := s.journalRepo.DeleteEntry(ctx, companyID, entryID); err != nil {
		s.LogError(ctx, err, "Failed to delete journal entry", slog.String("entry_id", entryID))
		return fmt.Errorf("failed to delete journal entry: %w", err)
	}

	s.LogInfo(ctx, "Journal entry deleted", slog.String("entry_id", entryID), slog.String("deleted_by", userID))
	return nil
}

// ListLinesByAccount retrieves a paginated list of posted lines for one account.
func (s *journalService) ListLinesByAccount(ctx context.Context, companyID, accountID string, params dto.ListJournalLinesParams) (*dto.ListJournalLinesResponse, error) {
	limit := params.Limit
	if limit <= 0 {
		limit = 20
	}

	lines, nextToken, err := s.journalRepo.ListLinesByAccountID(ctx, companyID, accountID, limit, params.NextToken)
	if err != nil {
		s.LogError(ctx, err, "Failed to list lines by account", slog.String("account_id", accountID))
		return nil, fmt.Errorf("failed to retrieve lines: %w", err)
	}

	return &dto.ListJournalLinesResponse{
		Lines:     dto.ToJournalLineResponses(lines),
		NextToken: nextToken,
	}, nil
}
