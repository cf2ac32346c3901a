package dto

import (
	"time"

	"github.com/helvetibooks/fibu_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateJournalLineRequest is one proposed line of a journal entry. A line
// carries a debit and/or credit amount; the usual recording pattern is one
// non-zero side per line.
type CreateJournalLineRequest struct {
	AccountID    string          `json:"accountID" binding:"required"`
	Debit        decimal.Decimal `json:"debit"`
	Credit       decimal.Decimal `json:"credit"`
	CostCenterID *string         `json:"costCenterID"`
	Description  string          `json:"description"`
}

// CreateJournalEntryRequest defines the payload for creating a journal entry.
type CreateJournalEntryRequest struct {
	Date         time.Time                  `json:"date" binding:"required"`
	Description  string                     `json:"description" binding:"required"`
	Reference    string                     `json:"reference"`
	DocumentType string                     `json:"documentType" binding:"omitempty,oneof=MANUAL INVOICE RECEIPT"`
	DocumentID   *string                    `json:"documentID"`
	Lines        []CreateJournalLineRequest `json:"lines" binding:"required,min=2,dive"`
}

// UpdateJournalEntryRequest defines the patch payload for a draft entry.
// Supplying Lines replaces the entire owned line set.
type UpdateJournalEntryRequest struct {
	Date        *time.Time                 `json:"date"`
	Description *string                    `json:"description"`
	Reference   *string                    `json:"reference"`
	Lines       []CreateJournalLineRequest `json:"lines" binding:"omitempty,min=2,dive"`
}

// ReverseJournalEntryRequest defines the payload for reversing a posted entry.
type ReverseJournalEntryRequest struct {
	ReversalDate time.Time `json:"reversalDate" binding:"required"`
	Reason       string    `json:"reason"`
}

// ListJournalEntriesParams holds query parameters for listing entries.
type ListJournalEntriesParams struct {
	Limit            int     `form:"limit"`
	NextToken        *string `form:"nextToken"`
	IncludeReversals bool    `form:"includeReversals"`
}

// ListJournalLinesParams holds query parameters for listing lines of an account.
type ListJournalLinesParams struct {
	Limit     int     `form:"limit"`
	NextToken *string `form:"nextToken"`
}

// JournalLineResponse defines the data returned for a journal line.
type JournalLineResponse struct {
	LineID       string          `json:"lineID"`
	AccountID    string          `json:"accountID"`
	Debit        decimal.Decimal `json:"debit"`
	Credit       decimal.Decimal `json:"credit"`
	CostCenterID *string         `json:"costCenterID,omitempty"`
	Description  string          `json:"description,omitempty"`
	SortOrder    int             `json:"sortOrder"`
}

// JournalEntryResponse defines the data returned for a journal entry.
type JournalEntryResponse struct {
	EntryID         string                `json:"entryID"`
	EntryNumber     string                `json:"entryNumber"`
	Date            time.Time             `json:"date"`
	Description     string                `json:"description"`
	Reference       string                `json:"reference,omitempty"`
	DocumentType    string                `json:"documentType"`
	DocumentID      *string               `json:"documentID,omitempty"`
	Status          string                `json:"status"`
	TotalAmount     decimal.Decimal       `json:"totalAmount"`
	ReversedByEntry *string               `json:"reversedByEntry,omitempty"`
	ReversesEntry   *string               `json:"reversesEntry,omitempty"`
	PostedAt        *time.Time            `json:"postedAt,omitempty"`
	Lines           []JournalLineResponse `json:"lines,omitempty"`
	CreatedAt       time.Time             `json:"createdAt"`
	CreatedBy       string                `json:"createdBy"`
}

// ListJournalEntriesResponse is the paginated list payload.
type ListJournalEntriesResponse struct {
	Entries   []JournalEntryResponse `json:"entries"`
	NextToken *string                `json:"nextToken,omitempty"`
}

// ListJournalLinesResponse is the paginated line list payload.
type ListJournalLinesResponse struct {
	Lines     []JournalLineResponse `json:"lines"`
	NextToken *string               `json:"nextToken,omitempty"`
}

// ToJournalLineResponse converts a domain.JournalLine to a JournalLineResponse DTO.
func ToJournalLineResponse(l *domain.JournalLine) JournalLineResponse {
	return JournalLineResponse{
		LineID:       l.LineID,
		AccountID:    l.AccountID,
		Debit:        l.Debit,
		Credit:       l.Credit,
		CostCenterID: l.CostCenterID,
		Description:  l.Description,
		SortOrder:    l.SortOrder,
	}
}

// ToJournalLineResponses converts a slice of domain.JournalLine to []JournalLineResponse.
func ToJournalLineResponses(lines []domain.JournalLine) []JournalLineResponse {
	responses := make([]JournalLineResponse, len(lines))
	for i := range lines {
		responses[i] = ToJournalLineResponse(&lines[i])
	}
	return responses
}

// ToJournalEntryResponse converts a domain.JournalEntry to a JournalEntryResponse DTO.
func ToJournalEntryResponse(e *domain.JournalEntry) JournalEntryResponse {
	resp := JournalEntryResponse{
		EntryID:         e.EntryID,
		EntryNumber:     e.EntryNumber,
		Date:            e.EntryDate,
		Description:     e.Description,
		Reference:       e.Reference,
		DocumentType:    string(e.DocumentType),
		DocumentID:      e.DocumentID,
		Status:          string(e.Status),
		TotalAmount:     e.TotalAmount,
		ReversedByEntry: e.ReversedByEntry,
		ReversesEntry:   e.ReversesEntry,
		PostedAt:        e.PostedAt,
		CreatedAt:       e.CreatedAt,
		CreatedBy:       e.CreatedBy,
	}
	if len(e.Lines) > 0 {
		resp.Lines = ToJournalLineResponses(e.Lines)
	}
	return resp
}
