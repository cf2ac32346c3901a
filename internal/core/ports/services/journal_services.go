package services

import (
	"context"
	"time"

	"github.com/helvetibooks/fibu_backend/internal/core/domain"
	"github.com/helvetibooks/fibu_backend/internal/dto"
)

// JournalSvcFacade exposes the journal entry lifecycle: creation, draft
// updates, posting, reversal, deletion and reads.
type JournalSvcFacade interface {
	// CreateEntry validates the proposed lines, assigns the next sequential
	// entry number and persists the entry as a draft.
	CreateEntry(ctx context.Context, companyID string, req dto.CreateJournalEntryRequest, creatorUserID string) (*domain.JournalEntry, error)

	// GetEntryByID retrieves an entry with its lines.
	GetEntryByID(ctx context.Context, companyID, entryID string) (*domain.JournalEntry, error)

	// ListEntries retrieves a paginated list of entries.
	ListEntries(ctx context.Context, companyID string, params dto.ListJournalEntriesParams) (*dto.ListJournalEntriesResponse, error)

	// UpdateEntry patches a draft entry; supplying lines replaces the line set.
	UpdateEntry(ctx context.Context, companyID, entryID string, req dto.UpdateJournalEntryRequest, userID string) (*domain.JournalEntry, error)

	// PostEntry freezes a draft entry as posted history.
	PostEntry(ctx context.Context, companyID, entryID, userID string) (*domain.JournalEntry, error)

	// ReverseEntry creates and posts the offsetting entry for a posted entry
	// and marks the original reversed, atomically.
	ReverseEntry(ctx context.Context, companyID, entryID string, reversalDate time.Time, reason string, userID string) (*domain.JournalEntry, error)

	// DeleteEntry removes a draft entry.
	DeleteEntry(ctx context.Context, companyID, entryID, userID string) error

	// ListLinesByAccount retrieves a paginated list of posted lines for one account.
	ListLinesByAccount(ctx context.Context, companyID, accountID string, params dto.ListJournalLinesParams) (*dto.ListJournalLinesResponse, error)
}
