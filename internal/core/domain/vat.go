package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// VatReturnStatus indicates the lifecycle state of a VAT return.
type VatReturnStatus string

const (
	VatReturnDraft      VatReturnStatus = "DRAFT"
	VatReturnCalculated VatReturnStatus = "CALCULATED"
	VatReturnSubmitted  VatReturnStatus = "SUBMITTED"
	VatReturnAccepted   VatReturnStatus = "ACCEPTED"
	VatReturnRejected   VatReturnStatus = "REJECTED"
)

// VatPeriodKind is the granularity of a VAT settlement period.
type VatPeriodKind string

const (
	PeriodMonthly   VatPeriodKind = "MONTHLY"
	PeriodQuarterly VatPeriodKind = "QUARTERLY"
	PeriodYearly    VatPeriodKind = "YEARLY"
)

// VatMethod is the accounting method the return is settled under.
type VatMethod string

const (
	// MethodAgreed settles on the invoice date (vereinbarte Entgelte).
	MethodAgreed VatMethod = "AGREED"
	// MethodReceived settles on the payment date (vereinnahmte Entgelte).
	MethodReceived VatMethod = "RECEIVED"
)

// VatRateCategory classifies a revenue line by statutory rate tier.
type VatRateCategory string

const (
	RateStandard VatRateCategory = "STANDARD" // Normalsatz
	RateReduced  VatRateCategory = "REDUCED"  // Reduzierter Satz
	RateSpecial  VatRateCategory = "SPECIAL"  // Sondersatz Beherbergung
	RateExempt   VatRateCategory = "EXEMPT"   // Ausgenommene Leistungen
	RateOther    VatRateCategory = "OTHER"    // Export and other non-taxable revenue
)

// VatDeclarationData is the computed snapshot of a return's declaration
// fields. It is persisted verbatim so a submitted return keeps the numbers it
// was submitted with, regardless of later invoice edits.
type VatDeclarationData struct {
	TotalRevenue    decimal.Decimal `json:"totalRevenue"`
	RevenueStandard decimal.Decimal `json:"revenueStandard"`
	RevenueReduced  decimal.Decimal `json:"revenueReduced"`
	RevenueSpecial  decimal.Decimal `json:"revenueSpecial"`
	RevenueExempt   decimal.Decimal `json:"revenueExempt"`
	RevenueOther    decimal.Decimal `json:"revenueOther"`

	OutputTaxStandard decimal.Decimal `json:"outputTaxStandard"`
	OutputTaxReduced  decimal.Decimal `json:"outputTaxReduced"`
	OutputTaxSpecial  decimal.Decimal `json:"outputTaxSpecial"`

	// Input tax is tracked in three independent buckets. The purchase source
	// currently feeds only the material bucket; the others accumulate once a
	// finer-grained source exists.
	InputTaxMaterial    decimal.Decimal `json:"inputTaxMaterial"`
	InputTaxInvestments decimal.Decimal `json:"inputTaxInvestments"`
	InputTaxServices    decimal.Decimal `json:"inputTaxServices"`
}

// VatReturn represents a statutory VAT declaration for one settlement period.
type VatReturn struct {
	ReturnID     string             `json:"returnID"`  // Primary Key (UUID)
	CompanyID    string             `json:"companyID"` // Owning company
	ReturnNumber string             `json:"returnNumber"`
	VatNumber    string             `json:"vatNumber"` // Company tax identifier, e.g. CHE-123.456.789 MWST
	Year         int                `json:"year"`
	PeriodKind   VatPeriodKind      `json:"periodKind"`
	PeriodIndex  int                `json:"periodIndex"` // Month 1-12 or quarter 1-4; 0 for yearly
	Method       VatMethod          `json:"method"`
	Status       VatReturnStatus    `json:"status"`
	Declaration  VatDeclarationData `json:"declaration"`

	TotalOutputTax decimal.Decimal `json:"totalOutputTax"`
	TotalInputTax  decimal.Decimal `json:"totalInputTax"`
	NetPayable     decimal.Decimal `json:"netPayable"` // Negative means refund

	Notes               string     `json:"notes"`
	CalculatedAt        *time.Time `json:"calculatedAt"`
	SubmittedAt         *time.Time `json:"submittedAt"`
	SubmissionMethod    string     `json:"submissionMethod"`
	SubmissionReference string     `json:"submissionReference"`
	AuditFields
}

// PeriodCode renders the period part of the return number: M01..M12, Q1..Q4
// or JAHR for a yearly settlement.
func PeriodCode(kind VatPeriodKind, index int) string {
	switch kind {
	case PeriodMonthly:
		return fmt.Sprintf("M%02d", index)
	case PeriodQuarterly:
		return fmt.Sprintf("Q%d", index)
	default:
		return "JAHR"
	}
}

// FormatReturnNumber renders the human-readable return number.
func FormatReturnNumber(year int, kind VatPeriodKind, index int) string {
	return fmt.Sprintf("MWST-%d-%s", year, PeriodCode(kind, index))
}

// VatRates holds the statutory rates in force at a point in time.
type VatRates struct {
	Standard decimal.Decimal `json:"standard"`
	Reduced  decimal.Decimal `json:"reduced"`
	Special  decimal.Decimal `json:"special"`
}

// VatRatePeriod is one revision of the statutory rates with its validity start.
type VatRatePeriod struct {
	EffectiveFrom time.Time `json:"effectiveFrom"`
	VatRates
}

// VatRateSchedule is the versioned rate configuration, ordered by
// EffectiveFrom ascending. Rates change over time; a historical declaration
// must recompute with the rates in force during its period, never the current
// ones.
type VatRateSchedule []VatRatePeriod

// RatesAt returns the rates in force at the given date, i.e. the latest
// revision whose EffectiveFrom is not after the date.
func (s VatRateSchedule) RatesAt(date time.Time) (VatRates, error) {
	var found *VatRatePeriod
	for i := range s {
		if !s[i].EffectiveFrom.After(date) {
			found = &s[i]
		}
	}
	if found == nil {
		return VatRates{}, fmt.Errorf("no VAT rates configured for date %s", date.Format("2006-01-02"))
	}
	return found.VatRates, nil
}
