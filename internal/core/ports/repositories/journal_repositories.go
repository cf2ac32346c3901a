package repositories

import (
	"context"
	"time"

	"github.com/helvetibooks/fibu_backend/internal/core/domain"
)

// JournalEntryReader defines read operations for journal data.
type JournalEntryReader interface {
	// FindEntryByID retrieves a specific entry within a company, without lines.
	FindEntryByID(ctx context.Context, companyID, entryID string) (*domain.JournalEntry, error)

	// FindLinesByEntryID retrieves all lines of an entry ordered by sort order.
	FindLinesByEntryID(ctx context.Context, entryID string) ([]domain.JournalLine, error)

	// ListEntriesByCompany retrieves a paginated list of entries using
	// token-based pagination. It returns the entries, a token for the next
	// page, and an error.
	ListEntriesByCompany(ctx context.Context, companyID string, limit int, nextToken *string, includeReversals bool) ([]domain.JournalEntry, *string, error)

	// ListLinesByAccountID retrieves a paginated list of lines booked against
	// an account, posted entries only.
	ListLinesByAccountID(ctx context.Context, companyID, accountID string, limit int, nextToken *string) ([]domain.JournalLine, *string, error)
}

// JournalEntryWriter defines write operations for journal data. Multi-row
// writes run inside a single database transaction in the implementation.
type JournalEntryWriter interface {
	// SaveEntry persists a new entry and its lines atomically.
	SaveEntry(ctx context.Context, entry domain.JournalEntry, lines []domain.JournalLine) error

	// ReplaceEntryLines updates a draft entry's header and atomically replaces
	// its owned line set.
	ReplaceEntryLines(ctx context.Context, entry domain.JournalEntry, lines []domain.JournalLine) error

	// UpdateEntryStatus transitions an entry's status, stamping the posting
	// time when present.
	UpdateEntryStatus(ctx context.Context, entryID string, status domain.JournalEntryStatus, postedAt *time.Time, updatedBy string, updatedAt time.Time) error

	// SaveReversal persists the reversal entry with its lines and marks the
	// original entry REVERSED with bidirectional links, as one atomic unit.
	SaveReversal(ctx context.Context, reversal domain.JournalEntry, lines []domain.JournalLine, originalEntryID string, updatedBy string, updatedAt time.Time) error

	// DeleteEntry removes an entry and its lines.
	DeleteEntry(ctx context.Context, companyID, entryID string) error
}

// EntryNumberSequencer mints sequential entry numbers.
type EntryNumberSequencer interface {
	// NextEntryNumber atomically increments and returns the per-(company, year)
	// sequence value. Concurrent callers never observe the same value.
	NextEntryNumber(ctx context.Context, companyID string, year int) (int64, error)
}

// JournalRepositoryFacade combines all journal-related repository interfaces.
type JournalRepositoryFacade interface {
	JournalEntryReader
	JournalEntryWriter
	EntryNumberSequencer
}
