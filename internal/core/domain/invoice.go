package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// SalesInvoiceStatus is the lifecycle state of a sales invoice. Only finalized
// invoices (sent, paid, partially paid) count towards a VAT period.
type SalesInvoiceStatus string

const (
	SalesInvoiceDraft         SalesInvoiceStatus = "DRAFT"
	SalesInvoiceSent          SalesInvoiceStatus = "SENT"
	SalesInvoicePaid          SalesInvoiceStatus = "PAID"
	SalesInvoicePartiallyPaid SalesInvoiceStatus = "PARTIALLY_PAID"
)

// PurchaseInvoiceStatus is the lifecycle state of a purchase invoice. Only
// approved or paid invoices contribute input tax.
type PurchaseInvoiceStatus string

const (
	PurchaseInvoicePending  PurchaseInvoiceStatus = "PENDING"
	PurchaseInvoiceApproved PurchaseInvoiceStatus = "APPROVED"
	PurchaseInvoicePaid     PurchaseInvoiceStatus = "PAID"
)

// SalesInvoiceLine is the slice of a sales invoice the VAT calculator needs.
type SalesInvoiceLine struct {
	Quantity        decimal.Decimal `json:"quantity"`
	UnitPrice       decimal.Decimal `json:"unitPrice"`
	VatRateCategory VatRateCategory `json:"vatRateCategory"`
}

// SalesInvoice is the read model of a sales invoice consumed by the VAT
// calculator. The invoice module itself lives outside this core.
type SalesInvoice struct {
	InvoiceID   string             `json:"invoiceID"`
	CompanyID   string             `json:"companyID"`
	InvoiceDate time.Time          `json:"invoiceDate"`
	Status      SalesInvoiceStatus `json:"status"`
	Lines       []SalesInvoiceLine `json:"lines"`
}

// PurchaseInvoice is the read model of a purchase invoice consumed by the VAT
// calculator; only the recorded VAT amount matters here.
type PurchaseInvoice struct {
	InvoiceID   string                `json:"invoiceID"`
	CompanyID   string                `json:"companyID"`
	InvoiceDate time.Time             `json:"invoiceDate"`
	Status      PurchaseInvoiceStatus `json:"status"`
	VatAmount   decimal.Decimal       `json:"vatAmount"`
}
