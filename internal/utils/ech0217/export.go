// Package ech0217 renders a VAT return as a statutory declaration document
// following the shape of the eCH-0217 Swiss VAT declaration schema.
//
// Field names and nesting are a compliance contract consumed by external tax
// authorities; they are versioned via SchemaVersion and must not be renamed
// casually.
package ech0217

import (
	"encoding/xml"
	"fmt"

	"github.com/helvetibooks/fibu_backend/internal/core/domain"
)

// SchemaVersion identifies the declaration layout in use.
const SchemaVersion = "1.0"

// TurnoverTaxRate is one taxable revenue bucket with its applied rate.
type TurnoverTaxRate struct {
	RateCategory string `xml:"rateCategory,attr"`
	Turnover     string `xml:"turnover"`
	TaxAmount    string `xml:"taxAmount"`
}

// InputTax carries the deductible input tax buckets.
type InputTax struct {
	MaterialAndServices string `xml:"materialAndServices"`
	Investments         string `xml:"investments"`
	Services            string `xml:"services"`
	Total               string `xml:"total"`
}

// Declaration is the root element of the exported VAT declaration.
type Declaration struct {
	XMLName       xml.Name `xml:"VATDeclaration"`
	SchemaVersion string   `xml:"schemaVersion,attr"`

	DeclarationID string `xml:"declarationID"` // The return's number
	UID           string `xml:"uid"`           // Company tax identifier
	Year          int    `xml:"year"`
	PeriodKind    string `xml:"periodKind"`
	PeriodIndex   int    `xml:"periodIndex,omitempty"`
	Method        string `xml:"accountingMethod"`

	TotalRevenue  string            `xml:"totalRevenue"`
	OtherRevenue  string            `xml:"otherRevenue"` // Export and other non-taxable revenue
	ExemptRevenue string            `xml:"exemptRevenue"`
	Turnovers     []TurnoverTaxRate `xml:"turnoverTax>rate"`

	InputTax InputTax `xml:"inputTax"`

	TotalOutputTax string `xml:"totalOutputTax"`
	TotalInputTax  string `xml:"totalInputTax"`
	PayableAmount  string `xml:"payableAmount"` // Negative means refund
}

// BuildDeclaration maps a VAT return snapshot into the export document. It
// reads the persisted snapshot only and never recomputes anything.
func BuildDeclaration(ret domain.VatReturn) Declaration {
	d := ret.Declaration
	return Declaration{
		SchemaVersion: SchemaVersion,
		DeclarationID: ret.ReturnNumber,
		UID:           ret.VatNumber,
		Year:          ret.Year,
		PeriodKind:    string(ret.PeriodKind),
		PeriodIndex:   ret.PeriodIndex,
		Method:        string(ret.Method),

		TotalRevenue:  d.TotalRevenue.StringFixed(2),
		OtherRevenue:  d.RevenueOther.StringFixed(2),
		ExemptRevenue: d.RevenueExempt.StringFixed(2),
		Turnovers: []TurnoverTaxRate{
			{RateCategory: string(domain.RateStandard), Turnover: d.RevenueStandard.StringFixed(2), TaxAmount: d.OutputTaxStandard.StringFixed(2)},
			{RateCategory: string(domain.RateReduced), Turnover: d.RevenueReduced.StringFixed(2), TaxAmount: d.OutputTaxReduced.StringFixed(2)},
			{RateCategory: string(domain.RateSpecial), Turnover: d.RevenueSpecial.StringFixed(2), TaxAmount: d.OutputTaxSpecial.StringFixed(2)},
		},
		InputTax: InputTax{
			MaterialAndServices: d.InputTaxMaterial.StringFixed(2),
			Investments:         d.InputTaxInvestments.StringFixed(2),
			Services:            d.InputTaxServices.StringFixed(2),
			Total:               ret.TotalInputTax.StringFixed(2),
		},
		TotalOutputTax: ret.TotalOutputTax.StringFixed(2),
		TotalInputTax:  ret.TotalInputTax.StringFixed(2),
		PayableAmount:  ret.NetPayable.StringFixed(2),
	}
}

// Marshal renders the declaration as an XML document with header.
func Marshal(d Declaration) ([]byte, error) {
	body, err := xml.MarshalIndent(d, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal VAT declaration: %w", err)
	}
	return append([]byte(xml.Header), body...), nil
}
