package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// VatReturn mirrors the vat_returns table row. The declaration snapshot is
// stored as flat numeric columns so it can be queried and exported without
// JSON gymnastics.
type VatReturn struct {
	ReturnID     string `json:"returnID"`
	CompanyID    string `json:"companyID"`
	ReturnNumber string `json:"returnNumber"`
	VatNumber    string `json:"vatNumber"`
	Year         int    `json:"year"`
	PeriodKind   string `json:"periodKind"`
	PeriodIndex  int    `json:"periodIndex"`
	Method       string `json:"method"`
	Status       string `json:"status"`

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

	TotalOutputTax decimal.Decimal `json:"totalOutputTax"`
	TotalInputTax  decimal.Decimal `json:"totalInputTax"`
	NetPayable     decimal.Decimal `json:"netPayable"`

	Notes               string     `json:"notes"`
	CalculatedAt        *time.Time `json:"calculatedAt"`
	SubmittedAt         *time.Time `json:"submittedAt"`
	SubmissionMethod    string     `json:"submissionMethod"`
	SubmissionReference string     `json:"submissionReference"`
	AuditFields
}
