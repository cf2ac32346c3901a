package mapping

import (
	"github.com/helvetibooks/fibu_backend/internal/core/domain"
	"github.com/helvetibooks/fibu_backend/internal/models"
)

// ToModelVatReturn converts a domain VatReturn to a model VatReturn.
func ToModelVatReturn(d domain.VatReturn) models.VatReturn {
	return models.VatReturn{
		ReturnID:     d.ReturnID,
		CompanyID:    d.CompanyID,
		ReturnNumber: d.ReturnNumber,
		VatNumber:    d.VatNumber,
		Year:         d.Year,
		PeriodKind:   string(d.PeriodKind),
		PeriodIndex:  d.PeriodIndex,
		Method:       string(d.Method),
		Status:       string(d.Status),

		TotalRevenue:    d.Declaration.TotalRevenue,
		RevenueStandard: d.Declaration.RevenueStandard,
		RevenueReduced:  d.Declaration.RevenueReduced,
		RevenueSpecial:  d.Declaration.RevenueSpecial,
		RevenueExempt:   d.Declaration.RevenueExempt,
		RevenueOther:    d.Declaration.RevenueOther,

		OutputTaxStandard: d.Declaration.OutputTaxStandard,
		OutputTaxReduced:  d.Declaration.OutputTaxReduced,
		OutputTaxSpecial:  d.Declaration.OutputTaxSpecial,

		InputTaxMaterial:    d.Declaration.InputTaxMaterial,
		InputTaxInvestments: d.Declaration.InputTaxInvestments,
		InputTaxServices:    d.Declaration.InputTaxServices,

		TotalOutputTax: d.TotalOutputTax,
		TotalInputTax:  d.TotalInputTax,
		NetPayable:     d.NetPayable,

		Notes:               d.Notes,
		CalculatedAt:        d.CalculatedAt,
		SubmittedAt:         d.SubmittedAt,
		SubmissionMethod:    d.SubmissionMethod,
		SubmissionReference: d.SubmissionReference,
		AuditFields:         ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainVatReturn converts a model VatReturn to a domain VatReturn.
func ToDomainVatReturn(m models.VatReturn) domain.VatReturn {
	return domain.VatReturn{
		ReturnID:     m.ReturnID,
		CompanyID:    m.CompanyID,
		ReturnNumber: m.ReturnNumber,
		VatNumber:    m.VatNumber,
		Year:         m.Year,
		PeriodKind:   domain.VatPeriodKind(m.PeriodKind),
		PeriodIndex:  m.PeriodIndex,
		Method:       domain.VatMethod(m.Method),
		Status:       domain.VatReturnStatus(m.Status),
		Declaration: domain.VatDeclarationData{
			TotalRevenue:    m.TotalRevenue,
			RevenueStandard: m.RevenueStandard,
			RevenueReduced:  m.RevenueReduced,
			RevenueSpecial:  m.RevenueSpecial,
			RevenueExempt:   m.RevenueExempt,
			RevenueOther:    m.RevenueOther,

			OutputTaxStandard: m.OutputTaxStandard,
			OutputTaxReduced:  m.OutputTaxReduced,
			OutputTaxSpecial:  m.OutputTaxSpecial,

			InputTaxMaterial:    m.InputTaxMaterial,
			InputTaxInvestments: m.InputTaxInvestments,
			InputTaxServices:    m.InputTaxServices,
		},
		TotalOutputTax: m.TotalOutputTax,
		TotalInputTax:  m.TotalInputTax,
		NetPayable:     m.NetPayable,

		Notes:               m.Notes,
		CalculatedAt:        m.CalculatedAt,
		SubmittedAt:         m.SubmittedAt,
		SubmissionMethod:    m.SubmissionMethod,
		SubmissionReference: m.SubmissionReference,
		AuditFields:         ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainVatReturnSlice converts a slice of model VatReturns to domain VatReturns.
func ToDomainVatReturnSlice(ms []models.VatReturn) []domain.VatReturn {
	out := make([]domain.VatReturn, len(ms))
	for i, m := range ms {
		out[i] = ToDomainVatReturn(m)
	}
	return out
}
