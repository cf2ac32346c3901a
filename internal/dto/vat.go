package dto

import (
	"time"

	"github.com/helvetibooks/fibu_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateVatReturnRequest defines the payload for opening a VAT return.
type CreateVatReturnRequest struct {
	VatNumber   string `json:"vatNumber" binding:"required"`
	Year        int    `json:"year" binding:"required,min=2000,max=2100"`
	PeriodKind  string `json:"periodKind" binding:"required,oneof=MONTHLY QUARTERLY YEARLY"`
	PeriodIndex int    `json:"periodIndex"`
	Method      string `json:"method" binding:"required,oneof=AGREED RECEIVED"`
}

// SubmitVatReturnRequest defines the payload for submitting a calculated return.
type SubmitVatReturnRequest struct {
	SubmissionDate      time.Time `json:"submissionDate" binding:"required"`
	SubmissionMethod    string    `json:"submissionMethod"`
	SubmissionReference string    `json:"submissionReference"`
}

// UpdateVatReturnRequest defines the patch payload for a return. Input-tax
// fields allow manual corrections of the investment and services buckets the
// purchase source cannot feed yet; totals are recomputed after the merge.
type UpdateVatReturnRequest struct {
	Status              *string          `json:"status" binding:"omitempty,oneof=DRAFT CALCULATED SUBMITTED ACCEPTED REJECTED"`
	Notes               *string          `json:"notes"`
	SubmissionReference *string          `json:"submissionReference"`
	InputTaxInvestments *decimal.Decimal `json:"inputTaxInvestments"`
	InputTaxServices    *decimal.Decimal `json:"inputTaxServices"`
}

// VatDeclarationResponse is the computed declaration snapshot.
type VatDeclarationResponse struct {
	TotalRevenue    decimal.Decimal `json:"totalRevenue"`
	RevenueStandard decimal.Decimal `json:"revenueStandard"`
	RevenueReduced  decimal.Decimal `json:"revenueReduced"`
	RevenueSpecial  decimal.Decimal `json:"revenueSpecial"`
	RevenueExempt   decimal.Decimal `json:"revenueExempt"`
	RevenueOther    decimal.Decimal `json:"revenueOther"`

	OutputTaxStandard decimal.Decimal `json:"outputTaxStandard"`
	OutputTaxReduced  decimal.Decimal `json:"outputTaxReduced"`
	OutputTaxSpecial  decimal.Decimal `json:"outputTaxSpecial"`

	InputTaxMaterial    decimal.Decimal `json:"inputTaxMaterial"`
	InputTaxInvestments decimal.Decimal `json:"inputTaxInvestments"`
	InputTaxServices    decimal.Decimal `json:"inputTaxServices"`
}

// VatReturnResponse defines the data returned for a VAT return.
type VatReturnResponse struct {
	ReturnID     string                 `json:"returnID"`
	ReturnNumber string                 `json:"returnNumber"`
	VatNumber    string                 `json:"vatNumber"`
	Year         int                    `json:"year"`
	PeriodKind   string                 `json:"periodKind"`
	PeriodIndex  int                    `json:"periodIndex"`
	Method       string                 `json:"method"`
	Status       string                 `json:"status"`
	Declaration  VatDeclarationResponse `json:"declaration"`

	TotalOutputTax decimal.Decimal `json:"totalOutputTax"`
	TotalInputTax  decimal.Decimal `json:"totalInputTax"`
	NetPayable     decimal.Decimal `json:"netPayable"`

	Notes               string     `json:"notes,omitempty"`
	CalculatedAt        *time.Time `json:"calculatedAt,omitempty"`
	SubmittedAt         *time.Time `json:"submittedAt,omitempty"`
	SubmissionMethod    string     `json:"submissionMethod,omitempty"`
	SubmissionReference string     `json:"submissionReference,omitempty"`
}

// ToVatReturnResponse converts a domain.VatReturn to a VatReturnResponse DTO.
func ToVatReturnResponse(r *domain.VatReturn) VatReturnResponse {
	d := r.Declaration
	return VatReturnResponse{
		ReturnID:     r.ReturnID,
		ReturnNumber: r.ReturnNumber,
		VatNumber:    r.VatNumber,
		Year:         r.Year,
		PeriodKind:   string(r.PeriodKind),
		PeriodIndex:  r.PeriodIndex,
		Method:       string(r.Method),
		Status:       string(r.Status),
		Declaration: VatDeclarationResponse{
			TotalRevenue:    d.TotalRevenue,
			RevenueStandard: d.RevenueStandard,
			RevenueReduced:  d.RevenueReduced,
			RevenueSpecial:  d.RevenueSpecial,
			RevenueExempt:   d.RevenueExempt,
			RevenueOther:    d.RevenueOther,

			OutputTaxStandard: d.OutputTaxStandard,
			OutputTaxReduced:  d.OutputTaxReduced,
			OutputTaxSpecial:  d.OutputTaxSpecial,

			InputTaxMaterial:    d.InputTaxMaterial,
			InputTaxInvestments: d.InputTaxInvestments,
			InputTaxServices:    d.InputTaxServices,
		},
		TotalOutputTax: r.TotalOutputTax,
		TotalInputTax:  r.TotalInputTax,
		NetPayable:     r.NetPayable,

		Notes:               r.Notes,
		CalculatedAt:        r.CalculatedAt,
		SubmittedAt:         r.SubmittedAt,
		SubmissionMethod:    r.SubmissionMethod,
		SubmissionReference: r.SubmissionReference,
	}
}

// ToVatReturnResponses converts a slice of domain.VatReturn to []VatReturnResponse.
func ToVatReturnResponses(returns []domain.VatReturn) []VatReturnResponse {
	responses := make([]VatReturnResponse, len(returns))
	for i := range returns {
		responses[i] = ToVatReturnResponse(&returns[i])
	}
	return responses
}
