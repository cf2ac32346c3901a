package services

import (
	"github.com/helvetibooks/fibu_backend/internal/core/domain"
	portsrepo "github.com/helvetibooks/fibu_backend/internal/core/ports/repositories"
	portssvc "github.com/helvetibooks/fibu_backend/internal/core/ports/services"
)

// NewServiceContainer wires every service with its repositories.
func NewServiceContainer(repos *portsrepo.RepositoryProvider, rateSchedule domain.VatRateSchedule) *portssvc.ServiceContainer {
	return &portssvc.ServiceContainer{
		Account:   NewAccountService(repos.AccountRepo),
		Journal:   NewJournalService(repos.JournalRepo, repos.AccountRepo),
		Reporting: NewReportingService(repos.ReportingRepo, repos.AccountRepo),
		Vat:       NewVatService(repos.VatReturnRepo, repos.SalesRepo, repos.PurchaseRepo, rateSchedule),
	}
}
