package services

import (
	portsrepo "github.com/paycove/payroll_engine/internal/core/ports/repositories"
	portssvc "github.com/paycove/payroll_engine/internal/core/ports/services"
)

// Collaborators groups the external systems the run lifecycle talks to.
type Collaborators struct {
	Directory  portssvc.EmployeeDirectory
	Attendance portssvc.AttendanceSource
	Sales      portssvc.SalesSource
	Disburser  portssvc.Disburser
	Notifier   portssvc.RunNotifier
}

// NewServiceContainer wires every application service against the repository
// provider and the external collaborators.
func NewServiceContainer(repos *portsrepo.RepositoryProvider, collab Collaborators) *portssvc.ServiceContainer {
	generator := NewGeneratorService()
	return &portssvc.ServiceContainer{
		Run: NewRunService(
			repos.RunRepo,
			repos.ComponentRepo,
			repos.ProfileRepo,
			repos.TaxYearRepo,
			repos.ConfigRepo,
			generator,
			collab.Directory,
			collab.Attendance,
			collab.Sales,
			collab.Disburser,
			collab.Notifier,
		),
		Adjustment: NewAdjustmentService(repos.RunRepo, repos.ConfigRepo),
		Component:  NewComponentService(repos.ComponentRepo),
		Profile:    NewProfileService(repos.ProfileRepo),
		TaxYear:    NewTaxYearService(repos.TaxYearRepo),
		Config:     NewConfigService(repos.ConfigRepo),
	}
}
