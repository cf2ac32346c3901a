package ech0217

import (
	"encoding/xml"
	"strings"
	"testing"
	"time"

	"github.com/helvetibooks/fibu_backend/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleReturn() domain.VatReturn {
	calculatedAt := time.Date(2024, 7, 10, 9, 0, 0, 0, time.UTC)
	return domain.VatReturn{
		ReturnID:     "ret-1",
		CompanyID:    "comp-1",
		ReturnNumber: "MWST-2024-Q2",
		VatNumber:    "CHE-123.456.789 MWST",
		Year:         2024,
		PeriodKind:   domain.PeriodQuarterly,
		PeriodIndex:  2,
		Method:       domain.MethodAgreed,
		Status:       domain.VatReturnCalculated,
		Declaration: domain.VatDeclarationData{
			TotalRevenue:      decimal.RequireFromString("1000"),
			RevenueStandard:   decimal.RequireFromString("1000"),
			OutputTaxStandard: decimal.RequireFromString("81"),
			InputTaxMaterial:  decimal.RequireFromString("40.5"),
		},
		TotalOutputTax: decimal.RequireFromString("81"),
		TotalInputTax:  decimal.RequireFromString("40.5"),
		NetPayable:     decimal.RequireFromString("40.5"),
		CalculatedAt:   &calculatedAt,
	}
}

func TestBuildDeclaration(t *testing.T) {
	d := BuildDeclaration(sampleReturn())

	assert.Equal(t, SchemaVersion, d.SchemaVersion)
	assert.Equal(t, "MWST-2024-Q2", d.DeclarationID)
	assert.Equal(t, "CHE-123.456.789 MWST", d.UID)
	assert.Equal(t, "1000.00", d.TotalRevenue)
	require.Len(t, d.Turnovers, 3)
	assert.Equal(t, "STANDARD", d.Turnovers[0].RateCategory)
	assert.Equal(t, "81.00", d.Turnovers[0].TaxAmount)
	assert.Equal(t, "0.00", d.Turnovers[1].Turnover)
	assert.Equal(t, "40.50", d.InputTax.MaterialAndServices)
	assert.Equal(t, "0.00", d.InputTax.Investments)
	assert.Equal(t, "40.50", d.PayableAmount)
}

func TestMarshalStableFieldNames(t *testing.T) {
	out, err := Marshal(BuildDeclaration(sampleReturn()))
	require.NoError(t, err)

	xmlStr := string(out)
	assert.True(t, strings.HasPrefix(xmlStr, xml.Header), "output should carry the XML header")

	// These element names are a compliance contract; renaming them breaks
	// downstream consumers.
	for _, elem := range []string{
		"<VATDeclaration", "schemaVersion=\"1.0\"", "<declarationID>",
		"<uid>", "<turnoverTax>", "<inputTax>", "<payableAmount>",
	} {
		assert.Contains(t, xmlStr, elem)
	}
}
