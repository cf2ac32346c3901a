package repositories

// RepositoryProvider bundles every repository implementation for injection
// into the service container.
type RepositoryProvider struct {
	AccountRepo   AccountRepositoryFacade
	JournalRepo   JournalRepositoryFacade
	VatReturnRepo VatReturnRepositoryFacade
	SalesRepo     SalesInvoiceReader
	PurchaseRepo  PurchaseInvoiceReader
	ReportingRepo ReportingRepository
}
