package mapping

import (
	"github.com/helvetibooks/fibu_backend/internal/core/domain"
	"github.com/helvetibooks/fibu_backend/internal/models"
)

// ToModelJournalEntry converts a domain JournalEntry to a model JournalEntry.
func ToModelJournalEntry(d domain.JournalEntry) models.JournalEntry {
	return models.JournalEntry{
		EntryID:         d.EntryID,
		CompanyID:       d.CompanyID,
		EntryNumber:     d.EntryNumber,
		EntryDate:       d.EntryDate,
		Description:     d.Description,
		Reference:       d.Reference,
		DocumentType:    string(d.DocumentType),
		DocumentID:      d.DocumentID,
		Status:          models.JournalEntryStatus(d.Status),
		TotalAmount:     d.TotalAmount,
		ReversedByEntry: d.ReversedByEntry,
		ReversesEntry:   d.ReversesEntry,
		PostedAt:        d.PostedAt,
		AuditFields:     ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainJournalEntry converts a model JournalEntry to a domain JournalEntry.
func ToDomainJournalEntry(m models.JournalEntry) domain.JournalEntry {
	return domain.JournalEntry{
		EntryID:         m.EntryID,
		CompanyID:       m.CompanyID,
		EntryNumber:     m.EntryNumber,
		EntryDate:       m.EntryDate,
		Description:     m.Description,
		Reference:       m.Reference,
		DocumentType:    domain.DocumentType(m.DocumentType),
		DocumentID:      m.DocumentID,
		Status:          domain.JournalEntryStatus(m.Status),
		TotalAmount:     m.TotalAmount,
		ReversedByEntry: m.ReversedByEntry,
		ReversesEntry:   m.ReversesEntry,
		PostedAt:        m.PostedAt,
		AuditFields:     ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelJournalLine converts a domain JournalLine to a model JournalLine.
func ToModelJournalLine(d domain.JournalLine) models.JournalLine {
	return models.JournalLine{
		LineID:       d.LineID,
		EntryID:      d.EntryID,
		AccountID:    d.AccountID,
		Debit:        d.Debit,
		Credit:       d.Credit,
		CostCenterID: d.CostCenterID,
		Description:  d.Description,
		SortOrder:    d.SortOrder,
		AuditFields:  ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainJournalLine converts a model JournalLine to a domain JournalLine.
func ToDomainJournalLine(m models.JournalLine) domain.JournalLine {
	return domain.JournalLine{
		LineID:       m.LineID,
		EntryID:      m.EntryID,
		AccountID:    m.AccountID,
		Debit:        m.Debit,
		Credit:       m.Credit,
		CostCenterID: m.CostCenterID,
		Description:  m.Description,
		SortOrder:    m.SortOrder,
		AuditFields:  ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainJournalLineSlice converts a slice of model JournalLines to domain JournalLines.
func ToDomainJournalLineSlice(ms []models.JournalLine) []domain.JournalLine {
	out := make([]domain.JournalLine, len(ms))
	for i, m := range ms {
		out[i] = ToDomainJournalLine(m)
	}
	return out
}
