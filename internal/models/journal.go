package models

import (
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

// JournalEntry mirrors the journal_entries table row.
type JournalEntry struct {
	EntryID         string             `json:"entryID"`
	CompanyID       string             `json:"companyID"`
	EntryNumber     string             `json:"entryNumber"`
	EntryDate       time.Time          `json:"entryDate"`
	Description     string             `json:"description"`
	Reference       string             `json:"reference"`
	DocumentType    string             `json:"documentType"`
	DocumentID      *string            `json:"documentID"`
	Status          JournalEntryStatus `json:"status"`
	TotalAmount     decimal.Decimal    `json:"totalAmount"`
	ReversedByEntry *string            `json:"reversedByEntry"`
	ReversesEntry   *string            `json:"reversesEntry"`
	PostedAt        *time.Time         `json:"postedAt"`
	AuditFields
}

// JournalLine mirrors the journal_lines table row.
type JournalLine struct {
	LineID       string          `json:"lineID"`
	EntryID      string          `json:"entryID"`
	AccountID    string          `json:"accountID"`
	Debit        decimal.Decimal `json:"debit"`
	Credit       decimal.Decimal `json:"credit"`
	CostCenterID *string         `json:"costCenterID"`
	Description  string          `json:"description"`
	SortOrder    int             `json:"sortOrder"`
	AuditFields
}
