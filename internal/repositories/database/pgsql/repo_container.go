package pgsql

import (
	portsrepo "github.com/helvetibooks/fibu_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewRepositoryProvider wires every pgsql repository over one shared pool.
func NewRepositoryProvider(dbPool *pgxpool.Pool) *portsrepo.RepositoryProvider {
	return &portsrepo.RepositoryProvider{
		AccountRepo:   newPgxAccountRepository(dbPool),
		JournalRepo:   newPgxJournalRepository(dbPool),
		VatReturnRepo: newPgxVatReturnRepository(dbPool),
		SalesRepo:     newPgxSalesInvoiceRepository(dbPool),
		PurchaseRepo:  newPgxPurchaseInvoiceRepository(dbPool),
		ReportingRepo: newReportingRepository(dbPool),
	}
}
