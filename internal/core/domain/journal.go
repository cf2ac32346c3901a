package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// JournalEntryStatus indicates the lifecycle state of a journal entry.
type JournalEntryStatus string

const (
	EntryDraft    JournalEntryStatus = "DRAFT"
	EntryPosted   JournalEntryStatus = "POSTED"
	EntryReversed JournalEntryStatus = "REVERSED"
)

// DocumentType identifies the business document a journal entry originates from.
type DocumentType string

const (
	DocumentManual   DocumentType = "MANUAL"
	DocumentInvoice  DocumentType = "INVOICE"
	DocumentReceipt  DocumentType = "RECEIPT"
	DocumentReversal DocumentType = "REVERSAL"
)

// JournalEntry represents a single, balanced financial event composed of
// multiple debit/credit lines.
//
// Once posted, an entry and its lines are immutable history; the only further
// transition is to REVERSED, which happens when a paired reversal entry is
// created. Reversal never deletes lines, so the audit trail stays intact.
type JournalEntry struct {
	EntryID          string             `json:"entryID"`     // Primary Key (UUID)
	CompanyID        string             `json:"companyID"`   // Owning company
	EntryNumber      string             `json:"entryNumber"` // e.g. JB-2024-00042, unique per company
	EntryDate        time.Time          `json:"entryDate"`   // Date the event occurred
	Description      string             `json:"description"`
	Reference        string             `json:"reference"`    // Source document number, free text
	DocumentType     DocumentType       `json:"documentType"` // Originating document kind
	DocumentID       *string            `json:"documentID"`   // Optional pointer to the source document
	Status           JournalEntryStatus `json:"status"`
	TotalAmount      decimal.Decimal    `json:"totalAmount"`      // Sum of the debit side
	ReversedByEntry  *string            `json:"reversedByEntry"`  // Entry that reverses this one
	ReversesEntry    *string            `json:"reversesEntry"`    // Entry this one reverses
	PostedAt         *time.Time         `json:"postedAt"`         // Set when the entry is posted
	Lines            []JournalLine      `json:"lines,omitempty"`  // Often loaded separately
	AuditFields
}

// JournalLine is a single line of a journal entry, carrying a debit and/or
// credit amount against one account. The recording convention is one non-zero
// side per line, but both columns exist and both are summed for the balance
// check.
type JournalLine struct {
	LineID       string          `json:"lineID"`    // Primary Key (UUID)
	EntryID      string          `json:"entryID"`   // FK -> JournalEntry (Not Null)
	AccountID    string          `json:"accountID"` // FK -> Account (Not Null)
	Debit        decimal.Decimal `json:"debit"`     // >= 0
	Credit       decimal.Decimal `json:"credit"`    // >= 0
	CostCenterID *string         `json:"costCenterID"`
	Description  string          `json:"description"`
	SortOrder    int             `json:"sortOrder"` // Stable display order within the entry
	AuditFields
}

// BalanceTolerance is the maximum permitted difference between the debit and
// credit sides of an entry. It absorbs rounding from upstream systems.
var BalanceTolerance = decimal.RequireFromString("0.01")

// FormatEntryNumber renders the human-readable entry number for a
// per-(company, year) sequence value.
func FormatEntryNumber(year int, sequence int64) string {
	return fmt.Sprintf("JB-%d-%05d", year, sequence)
}
